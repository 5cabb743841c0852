package runfeed

import (
	"regexp"
	"strings"
)

// PartialBlockState describes an in-flight (still-open) document fence. It
// exists so the UI can show a "generating" indicator before the block closes.
type PartialBlockState struct {
	IsDocument bool
	Type       DocumentType
	Title      string
	IsComplete bool
}

var contentMarkerRe = regexp.MustCompile(`"content"\s*:`)

// EvaluatePartial inspects a possibly truncated fence body. The completion
// check is deliberately syntactic (a content key plus a trailing brace)
// rather than a streaming JSON parse: it runs on every incremental render.
// A content value that itself contains an unescaped brace can therefore
// signal completion early; the tracker below makes sure it never regresses.
func EvaluatePartial(body string) PartialBlockState {
	var st PartialBlockState

	if m := typeFieldRe.FindStringSubmatch(body); m != nil {
		st.IsDocument = true
		st.Type = DocumentType(m[1])
		if t := titleFieldRe.FindStringSubmatch(body); t != nil {
			st.Title = unescapeQuotes(t[1])
		}
		trimmed := strings.TrimSpace(body)
		st.IsComplete = contentMarkerRe.MatchString(body) && strings.HasSuffix(trimmed, "}")
		return st
	}

	// The type may not have streamed in yet. If the body already looks like
	// the start of a document object, report a typeless document so the UI
	// can show a generic indicator.
	trimmed := strings.TrimSpace(body)
	if strings.HasPrefix(trimmed, "{") && looksLikeDocumentStart(trimmed) {
		st.IsDocument = true
	}
	return st
}

var documentKeys = []string{"type", "title", "content"}

// looksLikeDocumentStart reports whether a truncated body could still grow
// into a document object: an opening brace followed by nothing, or by a
// (possibly partial) document key.
func looksLikeDocumentStart(trimmed string) bool {
	for _, k := range documentKeys {
		if strings.Contains(trimmed, `"`+k) {
			return true
		}
	}
	rest := strings.TrimSpace(trimmed[1:])
	if rest == "" {
		return true
	}
	if rest[0] != '"' {
		return false
	}
	partial := rest[1:]
	if i := strings.IndexByte(partial, '"'); i >= 0 {
		partial = partial[:i]
	}
	for _, k := range documentKeys {
		if strings.HasPrefix(k, partial) {
			return true
		}
	}
	return false
}

const docFenceMarker = "```document"

// OpenFenceBody locates a trailing document fence that has no closing marker
// yet and returns its byte offset and current body. Closed fences belong to
// Parse and are not reported here.
func OpenFenceBody(content string) (start int, body string, ok bool) {
	idx := strings.LastIndex(content, docFenceMarker)
	if idx < 0 {
		return 0, "", false
	}
	rest := content[idx+len(docFenceMarker):]
	nl := strings.IndexByte(rest, '\n')
	if nl < 0 {
		// The marker line itself is still streaming in.
		return idx, "", true
	}
	body = rest[nl+1:]
	if strings.Contains(body, "```") {
		return 0, "", false
	}
	return idx, body, true
}

// PartialTracker pins down what EvaluatePartial has already established for a
// growing fence body: once a type is detected it never changes, and
// IsComplete never flips back to false. Feeding successively longer prefixes
// of the same stream is therefore monotonic by construction.
type PartialTracker struct {
	start   int
	state   PartialBlockState
	tracked bool
}

// Observe evaluates the body of the fence starting at the given offset. A
// fence at a new offset resets the tracker; the same fence only accumulates.
func (t *PartialTracker) Observe(start int, body string) PartialBlockState {
	if !t.tracked || t.start != start {
		t.start = start
		t.state = PartialBlockState{}
		t.tracked = true
	}

	st := EvaluatePartial(body)
	if t.state.IsDocument {
		st.IsDocument = true
	}
	if t.state.Type != "" {
		st.Type = t.state.Type
	}
	if st.Title == "" {
		st.Title = t.state.Title
	}
	if t.state.IsComplete {
		st.IsComplete = true
	}
	t.state = st
	return st
}

// Reset clears the tracker, e.g. when a new assistant message starts.
func (t *PartialTracker) Reset() {
	*t = PartialTracker{}
}
