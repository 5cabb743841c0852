package runfeed_test

import (
	"strings"
	"testing"

	"runtui/sdk/runfeed"
)

func TestEvaluatePartial(t *testing.T) {
	tests := []struct {
		name string
		body string
		want runfeed.PartialBlockState
	}{
		{
			name: "truncated mid title",
			body: `{"type":"word","title":"Q4 `,
			want: runfeed.PartialBlockState{IsDocument: true, Type: runfeed.DocWord},
		},
		{
			name: "type and full title",
			body: `{"type":"excel","title":"Budget","content":"a`,
			want: runfeed.PartialBlockState{IsDocument: true, Type: runfeed.DocExcel, Title: "Budget"},
		},
		{
			name: "complete body",
			body: `{"type":"ppt","title":"Deck","content":"s1"}`,
			want: runfeed.PartialBlockState{IsDocument: true, Type: runfeed.DocPPT, Title: "Deck", IsComplete: true},
		},
		{
			name: "content key but no closing brace",
			body: `{"type":"word","title":"T","content":"still going`,
			want: runfeed.PartialBlockState{IsDocument: true, Type: runfeed.DocWord, Title: "T"},
		},
		{
			name: "object start before type is knowable",
			body: `{"ti`,
			want: runfeed.PartialBlockState{IsDocument: true},
		},
		{
			name: "bare opening brace",
			body: `{`,
			want: runfeed.PartialBlockState{IsDocument: true},
		},
		{
			name: "not a document",
			body: `plain prose`,
			want: runfeed.PartialBlockState{},
		},
		{
			name: "object with foreign keys",
			body: `{"foo":1`,
			want: runfeed.PartialBlockState{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := runfeed.EvaluatePartial(tt.body)
			if got != tt.want {
				t.Errorf("EvaluatePartial(%q) = %+v, want %+v", tt.body, got, tt.want)
			}
		})
	}
}

func TestPartialTrackerMonotonic(t *testing.T) {
	full := `{"type":"word","title":"Report","content":"body text"}`

	var tr runfeed.PartialTracker
	var sawType, sawComplete bool
	for i := 1; i <= len(full); i++ {
		st := tr.Observe(0, full[:i])

		if sawType && st.Type != runfeed.DocWord {
			t.Fatalf("prefix %d: type regressed to %q", i, st.Type)
		}
		if st.Type == runfeed.DocWord {
			sawType = true
		}
		if sawComplete && !st.IsComplete {
			t.Fatalf("prefix %d: IsComplete regressed", i)
		}
		if st.IsComplete {
			sawComplete = true
		}
	}
	if !sawType || !sawComplete {
		t.Fatalf("full body never reported type=%v complete=%v", sawType, sawComplete)
	}
}

func TestPartialTrackerResetsOnNewFence(t *testing.T) {
	var tr runfeed.PartialTracker

	st := tr.Observe(10, `{"type":"word","title":"A","content":"x"}`)
	if !st.IsComplete || st.Type != runfeed.DocWord {
		t.Fatalf("first fence: %+v", st)
	}

	// A fence at a different offset is a different block.
	st = tr.Observe(200, `{"type":"excel"`)
	if st.IsComplete {
		t.Errorf("new fence inherited IsComplete from the old one")
	}
	if st.Type != runfeed.DocExcel {
		t.Errorf("new fence Type = %q, want excel", st.Type)
	}
}

func TestOpenFenceBody(t *testing.T) {
	t.Run("open fence reported", func(t *testing.T) {
		content := "text\n```document\n{\"type\":\"word\",\"title\":\"Q4 "
		start, body, ok := runfeed.OpenFenceBody(content)
		if !ok {
			t.Fatal("expected an open fence")
		}
		if start != strings.Index(content, "```document") {
			t.Errorf("start = %d", start)
		}
		if !strings.HasPrefix(body, `{"type":"word"`) {
			t.Errorf("body = %q", body)
		}
	})

	t.Run("closed fence not reported", func(t *testing.T) {
		content := "```document\n{\"type\":\"word\",\"title\":\"T\",\"content\":\"c\"}\n```\ndone"
		if _, _, ok := runfeed.OpenFenceBody(content); ok {
			t.Error("closed fence reported as open")
		}
	})

	t.Run("no fence", func(t *testing.T) {
		if _, _, ok := runfeed.OpenFenceBody("just prose"); ok {
			t.Error("prose reported as open fence")
		}
	})
}

func TestParseAndHeuristicAgreeMidStream(t *testing.T) {
	// Scenario: the stream ends inside a fence. Parse extracts nothing and
	// the heuristic reports an in-flight word document.
	content := "```document\n{\"type\":\"word\",\"title\":\"Q4 "

	res := runfeed.Parse(content)
	if len(res.Documents) != 0 {
		t.Fatalf("Documents = %d, want 0", len(res.Documents))
	}

	_, body, ok := runfeed.OpenFenceBody(content)
	if !ok {
		t.Fatal("open fence not detected")
	}
	st := runfeed.EvaluatePartial(body)
	if !st.IsDocument || st.Type != runfeed.DocWord || st.IsComplete {
		t.Errorf("state = %+v, want in-flight word document", st)
	}
}
