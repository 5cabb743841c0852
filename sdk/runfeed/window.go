package runfeed

// DefaultWindowSize is how many recent events the collapsed feed shows.
const DefaultWindowSize = 5

// EventWindow is a bounded view over the normalized feed: by default only the
// most recent Size events are visible, with a count of what is hidden.
type EventWindow struct {
	Size int
}

// NewEventWindow returns a window of the default size.
func NewEventWindow() EventWindow {
	return EventWindow{Size: DefaultWindowSize}
}

// Visible returns the events to render. With showAll the full feed is
// returned; otherwise the last Size entries.
func (w EventWindow) Visible(events []NormalizedEvent, showAll bool) []NormalizedEvent {
	size := w.Size
	if size <= 0 {
		size = DefaultWindowSize
	}
	if showAll || len(events) <= size {
		return events
	}
	return events[len(events)-size:]
}

// HiddenCount returns how many earlier events the window is concealing.
func (w EventWindow) HiddenCount(events []NormalizedEvent, showAll bool) int {
	hidden := len(events) - len(w.Visible(events, showAll))
	if hidden < 0 {
		return 0
	}
	return hidden
}
