package runfeed

import (
	"encoding/json"
	"regexp"
	"strings"
)

// DocumentType identifies the artifact a document fence describes.
type DocumentType string

const (
	DocWord  DocumentType = "word"
	DocExcel DocumentType = "excel"
	DocPPT   DocumentType = "ppt"
)

// DocumentBlock is a structured artifact extracted from a closed document
// fence. Immutable once produced.
type DocumentBlock struct {
	Type    DocumentType `json:"type"`
	Title   string       `json:"title"`
	Content string       `json:"content"`
}

// Result is what Parse hands to the renderer: the prose with extracted fence
// spans removed, and the documents those spans described, in order.
type Result struct {
	CleanText string
	Documents []DocumentBlock
}

// Only closed fences are candidates. A trailing fence with no closing marker
// is still in flight and stays in the text untouched.
var docFenceRe = regexp.MustCompile("(?s)```document[ \t]*\n(.*?)```")

var (
	contentKeyRe   = regexp.MustCompile(`"content"\s*:\s*"`)
	typeFieldRe    = regexp.MustCompile(`"type"\s*:\s*"(word|excel|ppt)"`)
	titleFieldRe   = regexp.MustCompile(`"title"\s*:\s*"((?:[^"\\]|\\.)*)"`)
	contentFieldRe = regexp.MustCompile(`(?s)"content"\s*:\s*"(.*)"`)
)

// Parse extracts document blocks from streamed markdown. Pure and idempotent:
// the same input always yields the same result, and the input is never
// mutated. A closed fence that defeats both the strict parse and the regex
// fallback is left verbatim in CleanText so the user sees it instead of it
// silently disappearing.
func Parse(content string) Result {
	matches := docFenceRe.FindAllStringSubmatchIndex(content, -1)
	if len(matches) == 0 {
		return Result{CleanText: strings.TrimSpace(content)}
	}

	var docs []DocumentBlock
	var clean strings.Builder
	last := 0
	for _, m := range matches {
		body := content[m[2]:m[3]]
		doc, ok := decodeDocument(body)
		if !ok {
			GetLogger().Warn("leaving malformed document fence in text", "body_len", len(body))
			continue
		}
		clean.WriteString(content[last:m[0]])
		last = m[1]
		docs = append(docs, doc)
	}
	clean.WriteString(content[last:])

	return Result{
		CleanText: strings.TrimSpace(clean.String()),
		Documents: docs,
	}
}

// decodeDocument tries the strict JSON path first, then the staged regex
// fallback. Either way the content field's escape sequences are restored to
// literal newlines.
func decodeDocument(body string) (DocumentBlock, bool) {
	fixed := escapeContentField(body)

	// Content decodes through a pointer so a missing field is distinguishable
	// from an empty string; the shape requires the field to be present.
	var raw struct {
		Type    string  `json:"type"`
		Title   string  `json:"title"`
		Content *string `json:"content"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(fixed)), &raw); err == nil && raw.Content != nil {
		doc := DocumentBlock{
			Type:    DocumentType(raw.Type),
			Title:   raw.Title,
			Content: unescapeDocContent(*raw.Content),
		}
		if validDocument(doc) {
			return doc, true
		}
	}

	return recoverDocument(body)
}

func validDocument(doc DocumentBlock) bool {
	switch doc.Type {
	case DocWord, DocExcel, DocPPT:
	default:
		return false
	}
	return strings.TrimSpace(doc.Title) != ""
}

// recoverDocument extracts the three fields independently from the raw fence
// body. Each regex stands alone so a broken field does not take the other two
// down with it; all three must land for the block to be accepted.
func recoverDocument(body string) (DocumentBlock, bool) {
	typeMatch := typeFieldRe.FindStringSubmatch(body)
	titleMatch := titleFieldRe.FindStringSubmatch(body)
	contentMatch := contentFieldRe.FindStringSubmatch(body)
	if typeMatch == nil || titleMatch == nil || contentMatch == nil {
		return DocumentBlock{}, false
	}

	doc := DocumentBlock{
		Type:    DocumentType(typeMatch[1]),
		Title:   unescapeQuotes(titleMatch[1]),
		Content: unescapeDocContent(contentMatch[1]),
	}
	if !validDocument(doc) {
		return DocumentBlock{}, false
	}
	return doc, true
}

// escapeContentField escapes raw newline, carriage-return and tab characters
// found inside the string value of the "content" field. The generator emits
// them literally instead of JSON-escaped; nothing outside that one field is
// touched.
func escapeContentField(body string) string {
	loc := contentKeyRe.FindStringIndex(body)
	if loc == nil {
		return body
	}

	var b strings.Builder
	b.Grow(len(body) + 16)
	b.WriteString(body[:loc[1]])

	escaped := false
	for i := loc[1]; i < len(body); i++ {
		c := body[i]
		if escaped {
			b.WriteByte(c)
			escaped = false
			continue
		}
		switch c {
		case '\\':
			b.WriteByte(c)
			escaped = true
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '"':
			// Closing quote of the content value; the rest is untouched.
			b.WriteString(body[i:])
			return b.String()
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// unescapeDocContent restores escaped newline sequences (single or double
// escaped) to literal characters.
func unescapeDocContent(s string) string {
	s = strings.ReplaceAll(s, "\\\\n", "\n")
	s = strings.ReplaceAll(s, "\\\\t", "\t")
	s = strings.ReplaceAll(s, "\\\\r", "\r")
	s = strings.ReplaceAll(s, "\\n", "\n")
	s = strings.ReplaceAll(s, "\\t", "\t")
	s = strings.ReplaceAll(s, "\\r", "\r")
	return unescapeQuotes(s)
}

func unescapeQuotes(s string) string {
	return strings.ReplaceAll(s, `\"`, `"`)
}

// Parser memoizes Parse on input equality. Streaming renders re-run on every
// frame with the same text most of the time; the comparison is far cheaper
// than the regex and recovery machinery.
type Parser struct {
	lastInput  string
	lastResult Result
	primed     bool
}

// Parse returns the cached result when the input has not changed.
func (p *Parser) Parse(content string) Result {
	if p.primed && content == p.lastInput {
		return p.lastResult
	}
	p.lastInput = content
	p.lastResult = Parse(content)
	p.primed = true
	return p.lastResult
}
