package runfeed

import "regexp"

// SegmentKind tags a piece of clean text for the renderer.
type SegmentKind string

const (
	SegmentText   SegmentKind = "text"
	SegmentPython SegmentKind = "python"
)

// Segment is one ordered piece of the assistant's text: either prose for the
// markdown renderer or python code for the sandbox collaborator.
type Segment struct {
	Kind    SegmentKind
	Content string
}

var codeFenceRe = regexp.MustCompile("(?s)```(?:python|py)[ \t]*\n(.*?)```")

// ExtractSegments splits clean text into ordered prose and python segments.
// No characters are dropped: concatenating the segments plus the fence
// markers reconstructs the input up to whitespace at the boundaries.
func ExtractSegments(cleanText string) []Segment {
	matches := codeFenceRe.FindAllStringSubmatchIndex(cleanText, -1)
	if len(matches) == 0 {
		if cleanText == "" {
			return nil
		}
		return []Segment{{Kind: SegmentText, Content: cleanText}}
	}

	var segments []Segment
	last := 0
	for _, m := range matches {
		if before := cleanText[last:m[0]]; before != "" {
			segments = append(segments, Segment{Kind: SegmentText, Content: before})
		}
		segments = append(segments, Segment{Kind: SegmentPython, Content: cleanText[m[2]:m[3]]})
		last = m[1]
	}
	if after := cleanText[last:]; after != "" {
		segments = append(segments, Segment{Kind: SegmentText, Content: after})
	}
	return segments
}
