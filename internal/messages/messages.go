package messages

import "runtui/sdk/runfeed"

// Frames pushed by the transport collaborator.

// StatusMsg is a pushed lifecycle status for a run. Terminal statuses carry
// the backend's summary or error alongside.
type StatusMsg struct {
	RunID   string
	Status  string
	Summary string
	Error   string
}

// EventMsg appends one raw event to the run's feed.
type EventMsg struct {
	RunID string
	Event runfeed.RawEvent
}

// StepsMsg replaces the run's explicit step list.
type StepsMsg struct {
	RunID string
	Steps []runfeed.Step
}

// TokenMsg is a delta of the assistant's streaming text.
type TokenMsg struct {
	Content string
}

// ErrorMsg reports a transport-level failure.
type ErrorMsg struct {
	Message string
}

// Internal app messages.

// StreamStartMsg announces that a run stream opened.
type StreamStartMsg struct {
	RunID string
}

// StreamEndMsg announces that the stream closed.
type StreamEndMsg struct{}

// WaitTickMsg drives the slow-connection timer. Gen identifies the timer
// generation: ticks from a superseded generation are dropped.
type WaitTickMsg struct {
	Gen int
}
