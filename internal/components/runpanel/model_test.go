package runpanel

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"runtui/sdk/runfeed"
)

func actionEvent(i int) runfeed.RawEvent {
	return runfeed.RawEvent{
		Type:      "action",
		Content:   json.RawMessage(fmt.Sprintf(`{"tool":"step_%d","input":{}}`, i)),
		Timestamp: int64(1700000000 + i),
	}
}

func TestViewEmptyWithoutRun(t *testing.T) {
	m := New(80, 0)
	if got := m.View(); got != "" {
		t.Errorf("expected empty view, got %q", got)
	}
}

func TestViewWindowsEvents(t *testing.T) {
	m := New(80, 0)
	run := runfeed.NewRun("r1", "do things")
	run.ApplyStatus("running")
	for i := 0; i < 8; i++ {
		run.AppendEvent(actionEvent(i))
	}
	m.SetRun(run)

	out := m.View()
	if !strings.Contains(out, "3 earlier events") {
		t.Errorf("expected hidden-events line, got:\n%s", out)
	}
	if strings.Contains(out, "step_0") {
		t.Errorf("oldest event should be hidden:\n%s", out)
	}
	if !strings.Contains(out, "step_7") {
		t.Errorf("newest event should be visible:\n%s", out)
	}

	m.ToggleShowAll()
	out = m.View()
	if strings.Contains(out, "earlier events") {
		t.Errorf("expanded view still hides events:\n%s", out)
	}
	if !strings.Contains(out, "step_0") {
		t.Errorf("expanded view missing oldest event:\n%s", out)
	}
}

func TestViewFailedRunOffersRetry(t *testing.T) {
	m := New(80, 0)
	run := runfeed.NewRun("r1", "do things")
	run.ApplyStatus("running")
	run.Finish("failed", "", "backend exploded")
	m.SetRun(run)

	out := m.View()
	if !strings.Contains(out, "backend exploded") {
		t.Errorf("expected error message, got:\n%s", out)
	}
	if !strings.Contains(out, "ctrl+r to retry") {
		t.Errorf("expected retry hint, got:\n%s", out)
	}
}

func TestViewCompletedRunShowsSummary(t *testing.T) {
	m := New(80, 0)
	run := runfeed.NewRun("r1", "do things")
	run.ApplyStatus("running")
	run.Finish("completed", "all done", "")
	m.SetRun(run)

	out := m.View()
	if !strings.Contains(out, "Completed") {
		t.Errorf("expected terminal label, got:\n%s", out)
	}
	if !strings.Contains(out, "all done") {
		t.Errorf("expected summary, got:\n%s", out)
	}
	if strings.Contains(out, "cancel") {
		t.Errorf("terminal run should not offer cancel:\n%s", out)
	}
}

func TestViewSlowNotice(t *testing.T) {
	m := New(80, 0)
	run := runfeed.NewRun("r1", "do things")
	run.ApplyStatus("queued")
	m.SetRun(run)
	m.SetSlow(true)

	if out := m.View(); !strings.Contains(out, "slow") {
		t.Errorf("expected slow-connection notice, got:\n%s", out)
	}
}
