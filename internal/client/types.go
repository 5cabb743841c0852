package client

import (
	"encoding/json"

	"runtui/sdk/runfeed"
)

// RunRequest starts a new run for a user message. Retries carry the original
// run ID so the backend can correlate.
type RunRequest struct {
	Message    string  `json:"message"`
	RetryOfRun *string `json:"retry_of_run,omitempty"`
}

// Wire shapes of the streamed frames. The backend owns these; they are
// decoded once at this boundary and turned into messages.

type statusFrame struct {
	RunID   string `json:"run_id"`
	Status  string `json:"status"`
	Summary string `json:"summary,omitempty"`
	Error   string `json:"error,omitempty"`
}

type stepsFrame struct {
	RunID string         `json:"run_id"`
	Steps []runfeed.Step `json:"steps"`
}

type eventFrame struct {
	RunID string           `json:"run_id"`
	Event runfeed.RawEvent `json:"event"`
}

type tokenFrame struct {
	Content string `json:"content"`
}

type errorFrame struct {
	Message string `json:"message"`
}

// wsFrame is the websocket envelope: the same frames the SSE stream carries,
// with the event name inline.
type wsFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}
