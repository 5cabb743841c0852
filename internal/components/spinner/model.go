package spinner

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"runtui/internal/styles"
)

var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const interval = 80 * time.Millisecond

// TickMsg is sent when the spinner should advance.
type TickMsg struct {
	ID int
}

// Model is a small activity indicator. Each instance carries an ID so stale
// ticks from a stopped spinner are dropped instead of reviving it.
type Model struct {
	id     int
	frame  int
	active bool
}

var nextID int

// New creates a spinner.
func New() Model {
	nextID++
	return Model{id: nextID}
}

// Start activates the spinner and begins ticking.
func (m *Model) Start() tea.Cmd {
	if m.active {
		return nil
	}
	m.active = true
	return m.tick()
}

// Stop deactivates the spinner. In-flight ticks become no-ops.
func (m *Model) Stop() {
	m.active = false
}

// Active reports whether the spinner is running.
func (m Model) Active() bool {
	return m.active
}

// Update advances the animation.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if tick, ok := msg.(TickMsg); ok {
		if tick.ID != m.id || !m.active {
			return m, nil
		}
		m.frame = (m.frame + 1) % len(frames)
		return m, m.tick()
	}
	return m, nil
}

// View renders the current frame.
func (m Model) View() string {
	if !m.active {
		return ""
	}
	return lipgloss.NewStyle().Foreground(styles.Primary).Render(frames[m.frame])
}

func (m Model) tick() tea.Cmd {
	id := m.id
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return TickMsg{ID: id}
	})
}
