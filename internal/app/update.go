package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"runtui/internal/client"
	"runtui/internal/components/spinner"
	"runtui/internal/messages"
	"runtui/sdk/runfeed"
)

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.panel, cmd = m.panel.Update(msg)
		return m, cmd

	case messages.StreamStartMsg:
		m.adoptRunID(msg.RunID)
		return m, nil

	case messages.StatusMsg:
		return m.handleStatus(msg)

	case messages.EventMsg:
		if m.run != nil {
			m.adoptRunID(msg.RunID)
			m.run.AppendEvent(msg.Event)
			m.layout()
		}
		return m, nil

	case messages.StepsMsg:
		if m.run != nil {
			m.run.SetSteps(msg.Steps)
		}
		return m, nil

	case messages.TokenMsg:
		m.chat.AppendToken(msg.Content)
		return m, nil

	case messages.ErrorMsg:
		m.errText = msg.Message
		m.log.Warn("transport error", "message", msg.Message)
		return m, nil

	case messages.StreamEndMsg:
		m.endStream()
		m.layout()
		return m, m.panel.StatusChanged()

	case messages.WaitTickMsg:
		return m.handleWaitTick(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.chat, cmd = m.chat.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.chat.PreviewOpen() {
		switch msg.String() {
		case "esc", "ctrl+o", "q":
			m.chat.ClosePreview()
		case "ctrl+c":
			return m.quit()
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m.quit()

	case "enter":
		return m, m.sendMessage()

	case "ctrl+x":
		if m.run != nil && m.run.Status.Cancellable() {
			return m, m.client.CancelCmd(m.run.ID)
		}
		return m, nil

	case "ctrl+r":
		if m.run != nil && m.run.Status == runfeed.StatusFailed {
			return m, m.retryRun()
		}
		return m, nil

	case "ctrl+a":
		m.panel.ToggleShowAll()
		m.layout()
		return m, nil

	case "ctrl+n":
		m.chat.NextCode()
		return m, nil

	case "ctrl+p":
		m.chat.PrevCode()
		return m, nil

	case "ctrl+e":
		if code, ok := m.chat.SelectedCode(); ok && m.run != nil {
			return m, m.client.ExecuteCmd(m.run.ID, code)
		}
		return m, nil

	case "ctrl+y":
		if code, ok := m.chat.SelectedCode(); ok {
			if err := clipboard.WriteAll(code); err != nil {
				m.errText = fmt.Sprintf("copy failed: %v", err)
			} else {
				m.notice = "code copied"
			}
		}
		return m, nil

	case "ctrl+o":
		m.chat.TogglePreview()
		return m, nil

	case "pgup", "pgdown", "ctrl+u", "ctrl+d":
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	if m.streamCancel != nil {
		m.streamCancel()
	}
	return m, tea.Quit
}

// sendMessage starts a fresh run for the typed message. One run at a time:
// while a stream is open the input is ignored.
func (m *Model) sendMessage() tea.Cmd {
	if m.streaming || m.program == nil {
		return nil
	}
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return nil
	}
	m.input.Reset()
	m.errText = ""
	m.notice = ""

	return m.startRun(client.RunRequest{Message: text}, text)
}

// retryRun re-submits the failed run's message as a fresh run, tagged with
// the original run ID.
func (m *Model) retryRun() tea.Cmd {
	if m.streaming || m.run == nil {
		return nil
	}
	origID := m.run.ID
	text := m.run.UserMessage
	m.errText = ""
	return m.startRun(client.RunRequest{Message: text, RetryOfRun: &origID}, text)
}

func (m *Model) startRun(req client.RunRequest, userMessage string) tea.Cmd {
	m.run = runfeed.NewRun("", userMessage)
	m.streaming = true
	m.slow = false
	m.panel.SetSlow(false)

	m.chat.StartRun(m.nextMessageID(), userMessage)
	panelCmd := m.panel.SetRun(m.run)
	m.layout()

	ctx, cancel := context.WithCancel(context.Background())
	m.streamCancel = cancel
	streamCmd := m.client.StreamRun(ctx, req, m.program)

	return tea.Batch(streamCmd, panelCmd, textinput.Blink)
}

func (m *Model) endStream() {
	m.streaming = false
	m.chat.EndStream()
	m.stopWaitTimer()
	if m.streamCancel != nil {
		m.streamCancel()
		m.streamCancel = nil
	}
}

// adoptRunID learns the run's backend ID from the first frame that carries
// one. The SSE stream also names the run in its X-Run-Id response header, but
// the websocket stream only names it inside the frames, so every frame kind
// that carries a run_id feeds through here.
func (m *Model) adoptRunID(id string) {
	if m.run != nil && m.run.ID == "" && id != "" {
		m.run.ID = id
	}
}

func (m *Model) handleStatus(msg messages.StatusMsg) (tea.Model, tea.Cmd) {
	if m.run == nil {
		return m, nil
	}
	m.adoptRunID(msg.RunID)
	if next := runfeed.ParseStatus(msg.Status); next.Terminal() {
		m.run.Finish(msg.Status, msg.Summary, msg.Error)
	} else {
		m.run.ApplyStatus(msg.Status)
	}

	var cmds []tea.Cmd
	cmds = append(cmds, m.panel.StatusChanged())
	cmds = append(cmds, m.syncWaitTimer())
	m.layout()
	return m, tea.Batch(cmds...)
}

// syncWaitTimer starts or stops the slow-connection timer to match the run's
// waiting flag. Every transition bumps the generation so ticks from the old
// timer die quietly.
func (m *Model) syncWaitTimer() tea.Cmd {
	waiting := m.run != nil && m.run.Status.Waiting()
	if !waiting {
		m.stopWaitTimer()
		return nil
	}
	if m.waitActive {
		// Already timing; the clock spans consecutive waiting states.
		return nil
	}
	m.waitGen++
	m.waitActive = true
	m.waitTicks = 0
	return m.waitTick()
}

func (m *Model) stopWaitTimer() {
	m.waitGen++
	m.waitActive = false
	m.waitTicks = 0
	if m.slow {
		m.slow = false
		m.panel.SetSlow(false)
	}
}

func (m *Model) waitTick() tea.Cmd {
	gen := m.waitGen
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return messages.WaitTickMsg{Gen: gen}
	})
}

func (m *Model) handleWaitTick(msg messages.WaitTickMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.waitGen {
		return m, nil
	}
	if m.run == nil || !m.run.Status.Waiting() {
		m.stopWaitTimer()
		return m, nil
	}
	m.waitTicks++
	if time.Duration(m.waitTicks)*time.Second >= runfeed.SlowAfter {
		if !m.slow {
			m.slow = true
			m.panel.SetSlow(true)
			m.layout()
		}
		return m, nil
	}
	return m, m.waitTick()
}
