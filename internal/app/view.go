package app

import (
	"strings"

	"runtui/internal/styles"
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(styles.Header.Render("runtui — agent console"))
	b.WriteString("\n")

	b.WriteString(m.chat.View())
	b.WriteString("\n")

	if pv := m.panel.View(); pv != "" {
		b.WriteString(pv)
	}

	if m.streaming {
		b.WriteString(styles.EventSummary.Render("  streaming… input disabled"))
		b.WriteString("\n")
	} else {
		b.WriteString(styles.InputBorder.Width(m.width - 4).Render(m.input.View()))
		b.WriteString("\n")
	}

	b.WriteString(m.statusBar())
	return b.String()
}

func (m *Model) statusBar() string {
	if m.errText != "" {
		return styles.StatusBarError.Render("error: " + m.errText)
	}
	if m.notice != "" {
		return styles.StatusBar.Render(m.notice)
	}

	hints := []string{"enter send", "ctrl+x cancel", "ctrl+a events"}
	if _, ok := m.chat.SelectedCode(); ok {
		hints = append(hints, "ctrl+n/p code", "ctrl+y copy", "ctrl+e run code")
	}
	if _, ok := m.chat.SelectedDocument(); ok {
		hints = append(hints, "ctrl+o preview")
	}
	if m.run != nil && m.run.Status.Terminal() {
		hints = append(hints, "ctrl+r retry")
	}
	hints = append(hints, "ctrl+c quit")
	return styles.StatusBar.Render(strings.Join(hints, " · "))
}
