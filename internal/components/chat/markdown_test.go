package chat

import (
	"strings"
	"testing"
)

func swapRenderer(t *testing.T) {
	t.Helper()
	mu.Lock()
	old := renderer
	renderer = nil
	mu.Unlock()
	t.Cleanup(func() {
		mu.Lock()
		renderer = old
		mu.Unlock()
	})
}

func TestRenderMarkdownFallsBackWhenUninitialized(t *testing.T) {
	swapRenderer(t)

	const in = "# Heading\n\nplain text"
	if got := RenderMarkdown(in); got != in {
		t.Errorf("uninitialized renderer altered text: %q", got)
	}
}

func TestInitMarkdown(t *testing.T) {
	swapRenderer(t)

	if err := InitMarkdown(60); err != nil {
		t.Fatalf("InitMarkdown(60) error = %v", err)
	}
	if out := RenderMarkdown("hello **world**"); !strings.Contains(out, "world") {
		t.Errorf("rendered output lost content: %q", out)
	}
}

func TestInitMarkdownClampsTinyWidth(t *testing.T) {
	swapRenderer(t)

	if err := InitMarkdown(-3); err != nil {
		t.Fatalf("InitMarkdown(-3) error = %v", err)
	}
	if out := RenderMarkdown("short"); !strings.Contains(out, "short") {
		t.Errorf("clamped renderer lost content: %q", out)
	}
}
