package runfeed_test

import (
	"encoding/json"
	"testing"

	"runtui/sdk/runfeed"
)

func TestStatusFlags(t *testing.T) {
	tests := []struct {
		status      runfeed.Status
		cancellable bool
		active      bool
		waiting     bool
		terminal    bool
	}{
		{runfeed.StatusIdle, false, false, false, false},
		{runfeed.StatusStarting, true, true, true, false},
		{runfeed.StatusQueued, true, true, true, false},
		{runfeed.StatusPlanning, true, true, false, false},
		{runfeed.StatusRunning, true, true, false, false},
		{runfeed.StatusVerifying, true, true, false, false},
		{runfeed.StatusReplanning, true, true, false, false},
		{runfeed.StatusPaused, true, false, false, false},
		{runfeed.StatusCancelling, false, true, false, false},
		{runfeed.StatusCompleted, false, false, false, true},
		{runfeed.StatusFailed, false, false, false, true},
		{runfeed.StatusCancelled, false, false, false, true},
		{runfeed.StatusUnknown, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.Cancellable(); got != tt.cancellable {
				t.Errorf("Cancellable() = %v, want %v", got, tt.cancellable)
			}
			if got := tt.status.Active(); got != tt.active {
				t.Errorf("Active() = %v, want %v", got, tt.active)
			}
			if got := tt.status.Waiting(); got != tt.waiting {
				t.Errorf("Waiting() = %v, want %v", got, tt.waiting)
			}
			if got := tt.status.Terminal(); got != tt.terminal {
				t.Errorf("Terminal() = %v, want %v", got, tt.terminal)
			}
		})
	}
}

func TestParseStatusUnknownIsNeutral(t *testing.T) {
	s := runfeed.ParseStatus("warp_speed")
	if s != runfeed.StatusUnknown {
		t.Fatalf("ParseStatus = %q, want unknown", s)
	}
	if s.Cancellable() || s.Active() || s.Waiting() || s.Terminal() {
		t.Errorf("unknown status set a flag")
	}
	if s.Label() == "" {
		t.Errorf("unknown status has no label")
	}
}

func TestRunStatusWalk(t *testing.T) {
	r := runfeed.NewRun("run-1", "summarize q4")

	for _, raw := range []string{"starting", "queued", "running"} {
		if !r.ApplyStatus(raw) {
			t.Fatalf("ApplyStatus(%q) reported no change", raw)
		}
		if !r.Status.Cancellable() {
			t.Errorf("status %q not cancellable", raw)
		}
	}

	r.ApplyStatus("completed")
	if r.Status != runfeed.StatusCompleted {
		t.Fatalf("status = %q, want completed", r.Status)
	}
	if r.Status.Cancellable() {
		t.Errorf("completed run still cancellable")
	}
}

func TestRunTerminalIsFrozen(t *testing.T) {
	r := runfeed.NewRun("run-2", "hello")
	r.ApplyStatus("running")
	r.AppendEvent(runfeed.RawEvent{Type: "action", Content: json.RawMessage(`{}`), Timestamp: 1})
	r.Finish("failed", "", "backend exploded")

	if r.Error != "backend exploded" {
		t.Fatalf("Error = %q", r.Error)
	}

	// Everything after a terminal status is a defensive no-op.
	if r.ApplyStatus("running") {
		t.Errorf("terminal run accepted a status push")
	}
	r.AppendEvent(runfeed.RawEvent{Type: "action", Content: json.RawMessage(`{}`), Timestamp: 2})
	if len(r.Events) != 1 {
		t.Errorf("terminal run accepted an event")
	}
	r.SetSteps([]runfeed.Step{{Title: "late"}})
	if len(r.Steps) != 0 {
		t.Errorf("terminal run accepted steps")
	}
	r.Finish("completed", "nope", "")
	if r.Status != runfeed.StatusFailed || r.Summary != "" {
		t.Errorf("terminal run re-finished: %+v", r)
	}
}
