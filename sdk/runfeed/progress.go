package runfeed

import "math"

// Progress is the estimated completion of a run.
type Progress struct {
	Completed int
	Total     int
}

// EstimateProgress derives run progress from the normalized feed. Completed
// counts successful observations and results. Total prefers the explicit step
// list, then the number of actions, then falls back to Completed so the ratio
// never exceeds one.
func EstimateProgress(events []NormalizedEvent, steps []Step) Progress {
	var completed, actions int
	for _, ev := range events {
		if ev.Status == EventOK && (ev.Kind == KindObservation || ev.Kind == KindResult) {
			completed++
		}
		if ev.Kind == KindAction {
			actions++
		}
	}

	total := len(steps)
	if total == 0 {
		total = actions
	}
	if total == 0 {
		total = completed
	}
	return Progress{Completed: completed, Total: total}
}

// Percent returns the progress as a whole percentage, capped at 100. A zero
// total reads as 0%, not a division error.
func (p Progress) Percent() int {
	if p.Total == 0 {
		return 0
	}
	pct := int(math.Round(float64(p.Completed) / float64(p.Total) * 100))
	if pct > 100 {
		return 100
	}
	return pct
}
