package runfeed

import "time"

// Status is the lifecycle state of an agent run. The backend owns transitions
// and pushes them as plain strings; the client never computes them locally.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusStarting   Status = "starting"
	StatusQueued     Status = "queued"
	StatusPlanning   Status = "planning"
	StatusRunning    Status = "running"
	StatusVerifying  Status = "verifying"
	StatusReplanning Status = "replanning"
	StatusPaused     Status = "paused"
	StatusCancelling Status = "cancelling"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusCancelled  Status = "cancelled"

	// StatusUnknown is the neutral fallback for status strings this client
	// does not recognize. It renders like idle and sets no flags.
	StatusUnknown Status = "unknown"
)

// SlowAfter is how long a run may sit in a waiting state before the UI shows
// a slow-connection notice.
const SlowAfter = 10 * time.Second

var knownStatuses = map[Status]struct{}{
	StatusIdle:       {},
	StatusStarting:   {},
	StatusQueued:     {},
	StatusPlanning:   {},
	StatusRunning:    {},
	StatusVerifying:  {},
	StatusReplanning: {},
	StatusPaused:     {},
	StatusCancelling: {},
	StatusCompleted:  {},
	StatusFailed:     {},
	StatusCancelled:  {},
}

// ParseStatus maps a pushed status string to a Status. Unknown strings map to
// StatusUnknown rather than erroring so a newer backend never breaks the UI.
func ParseStatus(raw string) Status {
	s := Status(raw)
	if _, ok := knownStatuses[s]; ok {
		return s
	}
	return StatusUnknown
}

// Cancellable reports whether a cancel request makes sense in this state.
func (s Status) Cancellable() bool {
	switch s {
	case StatusStarting, StatusRunning, StatusQueued, StatusPlanning,
		StatusVerifying, StatusPaused, StatusReplanning:
		return true
	}
	return false
}

// Active reports whether the run is doing work (drives the spinner).
func (s Status) Active() bool {
	switch s {
	case StatusStarting, StatusRunning, StatusQueued, StatusPlanning,
		StatusVerifying, StatusCancelling, StatusReplanning:
		return true
	}
	return false
}

// Waiting reports whether the run is waiting on the backend to pick it up.
// The slow-connection timer runs only while this is true.
func (s Status) Waiting() bool {
	return s == StatusStarting || s == StatusQueued
}

// Terminal reports whether the run has reached a final state. Terminal runs
// accept no further mutations.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCancelled
}

// Label returns the human-facing label for the status line.
func (s Status) Label() string {
	switch s {
	case StatusIdle:
		return "Idle"
	case StatusStarting:
		return "Starting"
	case StatusQueued:
		return "Queued"
	case StatusPlanning:
		return "Planning"
	case StatusRunning:
		return "Running"
	case StatusVerifying:
		return "Verifying"
	case StatusReplanning:
		return "Replanning"
	case StatusPaused:
		return "Paused"
	case StatusCancelling:
		return "Cancelling"
	case StatusCompleted:
		return "Completed"
	case StatusFailed:
		return "Failed"
	case StatusCancelled:
		return "Cancelled"
	}
	return "Working"
}

// Step is one entry of the backend's explicit plan for a run.
type Step struct {
	Title string `json:"title"`
	Done  bool   `json:"done,omitempty"`
}

// Run is the client-side view of one agent execution. It is created when a
// message triggers agent execution, mutated by pushed statuses and events,
// and frozen once the status is terminal.
type Run struct {
	ID          string
	Status      Status
	UserMessage string
	Steps       []Step
	Events      []RawEvent
	Summary     string
	Error       string
}

// NewRun creates a run in the idle state.
func NewRun(id, userMessage string) *Run {
	return &Run{
		ID:          id,
		Status:      StatusIdle,
		UserMessage: userMessage,
	}
}

// ApplyStatus applies a pushed status string. Once terminal, the run ignores
// further pushes. Returns whether the status changed.
func (r *Run) ApplyStatus(raw string) bool {
	if r.Status.Terminal() {
		return false
	}
	next := ParseStatus(raw)
	if next == r.Status {
		return false
	}
	r.Status = next
	return true
}

// AppendEvent adds a raw event to the run's stream. Events arriving after a
// terminal status are dropped.
func (r *Run) AppendEvent(ev RawEvent) {
	if r.Status.Terminal() {
		return
	}
	r.Events = append(r.Events, ev)
}

// SetSteps replaces the explicit step list. No-op once terminal.
func (r *Run) SetSteps(steps []Step) {
	if r.Status.Terminal() {
		return
	}
	r.Steps = steps
}

// Finish records the collaborator-supplied summary or error alongside the
// terminal status push that delivered them.
func (r *Run) Finish(status, summary, errMsg string) {
	if r.Status.Terminal() {
		return
	}
	r.Status = ParseStatus(status)
	r.Summary = summary
	r.Error = errMsg
}
