package runfeed_test

import (
	"testing"

	"runtui/sdk/runfeed"
)

func TestEstimateProgress(t *testing.T) {
	events := runfeed.NormalizeEvents([]runfeed.RawEvent{
		rawEvent("action", `{"tool":"read"}`, 1),
		rawEvent("observation", `{"output":"a"}`, 2),
		rawEvent("action", `{"tool":"write"}`, 3),
		rawEvent("observation", `{"output":"b","status":"error"}`, 4),
		rawEvent("result", `{"output":"c"}`, 5),
	})

	t.Run("explicit steps win", func(t *testing.T) {
		steps := []runfeed.Step{{Title: "1"}, {Title: "2"}, {Title: "3"}, {Title: "4"}}
		p := runfeed.EstimateProgress(events, steps)
		// ok observations/results: the first observation and the result.
		if p.Completed != 2 || p.Total != 4 {
			t.Errorf("progress = %+v, want {2 4}", p)
		}
		if p.Percent() != 50 {
			t.Errorf("percent = %d, want 50", p.Percent())
		}
	})

	t.Run("action count fallback", func(t *testing.T) {
		p := runfeed.EstimateProgress(events, nil)
		if p.Completed != 2 || p.Total != 2 {
			t.Errorf("progress = %+v, want {2 2}", p)
		}
		if p.Percent() != 100 {
			t.Errorf("percent = %d, want 100", p.Percent())
		}
	})

	t.Run("completed fallback keeps ratio sane", func(t *testing.T) {
		noActions := runfeed.NormalizeEvents([]runfeed.RawEvent{
			rawEvent("observation", `{"output":"a"}`, 1),
			rawEvent("result", `{"output":"b"}`, 2),
		})
		p := runfeed.EstimateProgress(noActions, nil)
		if p.Completed != 2 || p.Total != 2 {
			t.Errorf("progress = %+v, want {2 2}", p)
		}
	})

	t.Run("empty feed", func(t *testing.T) {
		p := runfeed.EstimateProgress(nil, nil)
		if p.Completed != 0 || p.Total != 0 {
			t.Errorf("progress = %+v, want {0 0}", p)
		}
		if p.Percent() != 0 {
			t.Errorf("percent = %d, want 0 for zero total", p.Percent())
		}
	})

	t.Run("percent capped", func(t *testing.T) {
		p := runfeed.Progress{Completed: 7, Total: 4}
		if p.Percent() != 100 {
			t.Errorf("percent = %d, want 100", p.Percent())
		}
	})
}
