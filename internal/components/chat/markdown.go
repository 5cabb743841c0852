package chat

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// The renderer is shared across renders and rebuilt on resize. Guarded
// because stream goroutines can race a resize.
var (
	mu       sync.RWMutex
	renderer *glamour.TermRenderer
)

const minWrapWidth = 20

// InitMarkdown (re)builds the shared renderer for the given wrap width.
// Widths below the minimum are clamped rather than rejected, so a cramped
// terminal still renders.
func InitMarkdown(width int) error {
	if width < minWrapWidth {
		width = minWrapWidth
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return err
	}

	mu.Lock()
	renderer = r
	mu.Unlock()
	return nil
}

// RenderMarkdown renders markdown to terminal format. Any failure, whether
// the renderer was never initialized or the render itself errors, degrades to
// the plain input so the text is never lost.
func RenderMarkdown(content string) string {
	mu.RLock()
	r := renderer
	mu.RUnlock()

	if r == nil {
		return content
	}
	out, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n") + "\n"
}
