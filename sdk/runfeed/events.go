package runfeed

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// RawEvent is one record of the backend's append-only event feed. The content
// shape is owned by the backend; this package only reads it.
type RawEvent struct {
	Type      string          `json:"type"`
	Content   json.RawMessage `json:"content"`
	Timestamp int64           `json:"timestamp"`
}

// EventKind classifies a normalized event.
type EventKind string

const (
	KindAction      EventKind = "action"
	KindObservation EventKind = "observation"
	KindResult      EventKind = "result"
	KindPlan        EventKind = "plan"
	KindError       EventKind = "error"

	// KindNote is the neutral fallback for raw types this client does not
	// recognize.
	KindNote EventKind = "note"
)

// EventStatus is the coarse outcome label of a normalized event.
type EventStatus string

const (
	EventOK      EventStatus = "ok"
	EventWarn    EventStatus = "warn"
	EventErr     EventStatus = "err"
	EventPending EventStatus = "pending"
)

// Payload is the kind-discriminated content of a normalized event. It is
// validated once at the normalization boundary so downstream code never has
// to re-inspect raw shapes.
type Payload interface {
	payloadKind() EventKind
}

// ActionPayload describes a tool invocation the agent started.
type ActionPayload struct {
	Tool  string         `json:"tool"`
	Input map[string]any `json:"input"`
}

// ObservationPayload carries what the agent saw after an action.
type ObservationPayload struct {
	Output string `json:"output"`
}

// ResultPayload carries an intermediate or final produced result.
type ResultPayload struct {
	Output string `json:"output"`
}

// PlanPayload carries the agent's announced step list.
type PlanPayload struct {
	Steps []string `json:"steps"`
}

// ErrorPayload carries a failure report from the backend.
type ErrorPayload struct {
	Message string `json:"message"`
}

// NotePayload preserves unrecognized content verbatim.
type NotePayload struct {
	Raw json.RawMessage
}

func (ActionPayload) payloadKind() EventKind      { return KindAction }
func (ObservationPayload) payloadKind() EventKind { return KindObservation }
func (ResultPayload) payloadKind() EventKind      { return KindResult }
func (PlanPayload) payloadKind() EventKind        { return KindPlan }
func (ErrorPayload) payloadKind() EventKind       { return KindError }
func (NotePayload) payloadKind() EventKind        { return KindNote }

// NormalizedEvent is the canonical display form of a raw event. Derived,
// recomputed, never persisted.
type NormalizedEvent struct {
	ID         string
	Kind       EventKind
	Status     EventStatus
	Title      string
	Summary    string
	Confidence float64
	Payload    Payload
	Hint       string
}

// Namespace for derived event IDs. Fixed so IDs are stable across
// recomputations of the same feed.
var eventIDNamespace = uuid.MustParse("9f2c7af1-53d4-4b86-b1a4-6e1c0a8f4d27")

var rawKinds = map[string]EventKind{
	"action":      KindAction,
	"tool_use":    KindAction,
	"observation": KindObservation,
	"tool_result": KindObservation,
	"result":      KindResult,
	"final":       KindResult,
	"plan":        KindPlan,
	"error":       KindError,
}

var kindHints = map[EventKind]string{
	KindAction:      "wrench",
	KindObservation: "eye",
	KindResult:      "check",
	KindPlan:        "list",
	KindError:       "alert",
	KindNote:        "dot",
}

// NormalizeEvents maps a raw event feed to its canonical display form: same
// length, same order, pure. Unknown types become neutral notes.
func NormalizeEvents(raw []RawEvent) []NormalizedEvent {
	out := make([]NormalizedEvent, len(raw))
	for i, ev := range raw {
		out[i] = normalizeEvent(ev, i)
	}
	return out
}

func normalizeEvent(ev RawEvent, index int) NormalizedEvent {
	kind, known := rawKinds[strings.ToLower(ev.Type)]
	if !known {
		kind = KindNote
	}

	ne := NormalizedEvent{
		ID:      deriveEventID(ev, index),
		Kind:    kind,
		Status:  deriveStatus(kind, ev.Content),
		Payload: decodePayload(kind, ev.Content),
		Hint:    kindHints[kind],
	}
	ne.Title = deriveTitle(kind, ev)
	ne.Summary = gjson.GetBytes(ev.Content, "summary").String()
	if ne.Summary == "" {
		ne.Summary = payloadExcerpt(ne.Payload)
	}
	if c := gjson.GetBytes(ev.Content, "confidence"); c.Exists() {
		ne.Confidence = clamp01(c.Float())
	}
	return ne
}

// deriveEventID produces a stable ID for list diffing. The slice index keeps
// duplicate events at equal timestamps apart.
func deriveEventID(ev RawEvent, index int) string {
	name := fmt.Sprintf("%s|%d|%d", ev.Type, ev.Timestamp, index)
	return uuid.NewSHA1(eventIDNamespace, []byte(name)).String()
}

func deriveStatus(kind EventKind, content json.RawMessage) EventStatus {
	switch strings.ToLower(gjson.GetBytes(content, "status").String()) {
	case "ok", "success", "done", "completed":
		return EventOK
	case "warn", "warning":
		return EventWarn
	case "err", "error", "failed":
		return EventErr
	case "pending", "running", "in_progress":
		return EventPending
	}

	// No explicit status field: infer from the kind.
	switch kind {
	case KindError:
		return EventErr
	case KindAction:
		return EventPending
	default:
		return EventOK
	}
}

func deriveTitle(kind EventKind, ev RawEvent) string {
	if t := gjson.GetBytes(ev.Content, "title").String(); t != "" {
		return t
	}
	switch kind {
	case KindAction:
		if tool := gjson.GetBytes(ev.Content, "tool").String(); tool != "" {
			return tool
		}
		return "Action"
	case KindObservation:
		return "Observation"
	case KindResult:
		return "Result"
	case KindPlan:
		return "Plan"
	case KindError:
		return "Error"
	}
	return humanizeType(ev.Type)
}

func decodePayload(kind EventKind, content json.RawMessage) Payload {
	switch kind {
	case KindAction:
		var p ActionPayload
		if json.Unmarshal(content, &p) == nil {
			return p
		}
	case KindObservation:
		var p ObservationPayload
		if json.Unmarshal(content, &p) == nil {
			return p
		}
	case KindResult:
		var p ResultPayload
		if json.Unmarshal(content, &p) == nil {
			return p
		}
	case KindPlan:
		var p PlanPayload
		if json.Unmarshal(content, &p) == nil {
			return p
		}
	case KindError:
		var p ErrorPayload
		if json.Unmarshal(content, &p) == nil {
			return p
		}
		// An error event whose content is a bare string is still an error.
		var msg string
		if json.Unmarshal(content, &msg) == nil {
			return ErrorPayload{Message: msg}
		}
	}
	return NotePayload{Raw: content}
}

func payloadExcerpt(p Payload) string {
	var text string
	switch v := p.(type) {
	case ObservationPayload:
		text = v.Output
	case ResultPayload:
		text = v.Output
	case ErrorPayload:
		text = v.Message
	case PlanPayload:
		text = strings.Join(v.Steps, ", ")
	}
	return firstLine(text, 80)
}

func firstLine(s string, max int) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > max {
		s = s[:max-1] + "…"
	}
	return s
}

func humanizeType(raw string) string {
	raw = strings.NewReplacer("_", " ", ".", " ", "-", " ").Replace(raw)
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "Event"
	}
	return strings.ToUpper(raw[:1]) + raw[1:]
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// Normalizer memoizes NormalizeEvents keyed on the identity of the raw slice.
// The feed is append-only, so a new backing array or length means new data.
type Normalizer struct {
	lastRaw []RawEvent
	lastOut []NormalizedEvent
	primed  bool
}

// Normalize returns the canonical view of raw, recomputing only when the
// slice identity changes.
func (n *Normalizer) Normalize(raw []RawEvent) []NormalizedEvent {
	if n.primed && sameEventSlice(n.lastRaw, raw) {
		return n.lastOut
	}
	n.lastRaw = raw
	n.lastOut = NormalizeEvents(raw)
	n.primed = true
	return n.lastOut
}

func sameEventSlice(a, b []RawEvent) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &b[0]
}
