package runpanel

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"runtui/internal/components/spinner"
	"runtui/internal/styles"
	"runtui/sdk/runfeed"
)

var statusGlyphs = map[runfeed.EventStatus]string{
	runfeed.EventOK:      "✓",
	runfeed.EventWarn:    "!",
	runfeed.EventErr:     "✗",
	runfeed.EventPending: "·",
}

var hintGlyphs = map[string]string{
	"wrench": "🔧",
	"eye":    "👁",
	"check":  "✅",
	"list":   "📋",
	"alert":  "⚠",
	"dot":    "•",
}

// Model renders the live run: status line with spinner, progress bar, the
// bounded event window, and terminal summary or error. It holds no feed
// state of its own beyond the run pointer the app shares with it.
type Model struct {
	run        *runfeed.Run
	spinner    spinner.Model
	normalizer runfeed.Normalizer
	window     runfeed.EventWindow

	showAll bool
	slow    bool

	width int
}

// New creates an empty run panel. windowSize bounds the visible event list;
// zero means the default.
func New(width, windowSize int) Model {
	w := runfeed.NewEventWindow()
	if windowSize > 0 {
		w.Size = windowSize
	}
	return Model{
		spinner: spinner.New(),
		window:  w,
		width:   width,
	}
}

// SetRun points the panel at a run. Passing nil clears it.
func (m *Model) SetRun(r *runfeed.Run) tea.Cmd {
	m.run = r
	m.showAll = false
	m.slow = false
	return m.syncSpinner()
}

// Run returns the run the panel is showing.
func (m Model) Run() *runfeed.Run {
	return m.run
}

// SetWidth resizes the panel.
func (m *Model) SetWidth(width int) {
	m.width = width
}

// SetSlow toggles the slow-connection notice.
func (m *Model) SetSlow(slow bool) {
	m.slow = slow
}

// ToggleShowAll flips between the bounded window and the full event list.
func (m *Model) ToggleShowAll() {
	m.showAll = !m.showAll
}

// ShowingAll reports whether the full event list is expanded.
func (m Model) ShowingAll() bool {
	return m.showAll
}

// StatusChanged lets the panel react to a run status transition, starting or
// stopping the spinner.
func (m *Model) StatusChanged() tea.Cmd {
	return m.syncSpinner()
}

func (m *Model) syncSpinner() tea.Cmd {
	if m.run != nil && m.run.Status.Active() {
		return m.spinner.Start()
	}
	m.spinner.Stop()
	return nil
}

// Update advances the spinner.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

// View renders the panel. Empty when no run is attached.
func (m Model) View() string {
	if m.run == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.statusLine())
	b.WriteString("\n")

	events := m.normalizer.Normalize(m.run.Events)
	if bar := m.progressBar(events); bar != "" {
		b.WriteString(bar)
		b.WriteString("\n")
	}

	if hidden := m.window.HiddenCount(events, m.showAll); hidden > 0 {
		b.WriteString(styles.HiddenEvents.Render(fmt.Sprintf("  … %d earlier events (ctrl+a to expand)", hidden)))
		b.WriteString("\n")
	}
	for _, ev := range m.window.Visible(events, m.showAll) {
		b.WriteString(m.eventLine(ev))
		b.WriteString("\n")
	}

	if m.slow {
		b.WriteString(styles.SlowConnection.Render("  Still waiting on the backend — connection may be slow."))
		b.WriteString("\n")
	}

	switch m.run.Status {
	case runfeed.StatusCompleted:
		if m.run.Summary != "" {
			b.WriteString(styles.StatusDone.Render("  " + m.run.Summary))
			b.WriteString("\n")
		}
	case runfeed.StatusFailed:
		msg := m.run.Error
		if msg == "" {
			msg = "run failed"
		}
		b.WriteString(styles.StatusError.Render("  " + msg))
		b.WriteString("\n")
		b.WriteString(styles.EventSummary.Render("  ctrl+r to retry"))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) statusLine() string {
	st := m.run.Status
	label := st.Label()

	var style = styles.StatusActive
	switch {
	case st == runfeed.StatusCompleted:
		style = styles.StatusDone
	case st == runfeed.StatusFailed || st == runfeed.StatusCancelled:
		style = styles.StatusError
	}

	line := style.Render(label)
	if sp := m.spinner.View(); sp != "" {
		line = sp + " " + line
	}
	if st.Cancellable() {
		line += styles.EventSummary.Render("  (ctrl+x to cancel)")
	}
	return line
}

// progressBar renders a textual bar from the estimator. Hidden for terminal
// runs and when nothing is countable yet.
func (m Model) progressBar(events []runfeed.NormalizedEvent) string {
	if m.run.Status.Terminal() {
		return ""
	}
	p := runfeed.EstimateProgress(events, m.run.Steps)
	if p.Total == 0 {
		return ""
	}

	width := 24
	filled := width * p.Percent() / 100
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("  %s %d%% (%d/%d)",
		styles.StatusActive.Render(bar), p.Percent(), p.Completed, p.Total)
}

func (m Model) eventLine(ev runfeed.NormalizedEvent) string {
	glyphStyle := styles.EventGlyphPending
	switch ev.Status {
	case runfeed.EventOK:
		glyphStyle = styles.EventGlyphOK
	case runfeed.EventWarn:
		glyphStyle = styles.EventGlyphWarn
	case runfeed.EventErr:
		glyphStyle = styles.EventGlyphErr
	}
	glyph := glyphStyle.Render(statusGlyphs[ev.Status])

	icon := hintGlyphs[ev.Hint]
	if icon == "" {
		icon = hintGlyphs["dot"]
	}

	line := fmt.Sprintf("  %s %s %s", glyph, icon, styles.EventTitle.Render(ev.Title))
	if ev.Summary != "" {
		line += " " + styles.EventSummary.Render("— "+ev.Summary)
	}
	if ev.Confidence > 0 {
		line += " " + styles.EventSummary.Render(fmt.Sprintf("(%.0f%%)", ev.Confidence*100))
	}
	return line
}
