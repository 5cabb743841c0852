package app

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"runtui/internal/client"
	"runtui/internal/components/chat"
	"runtui/internal/components/runpanel"
	"runtui/internal/config"
	"runtui/sdk/runfeed"
)

// Model is the root bubbletea model. It owns the single conversation, the
// current run, and the stream lifecycle; the components under it are pure
// renderers over that state.
type Model struct {
	cfg    config.Config
	client *client.Client
	log    *runfeed.Logger

	// program is set after tea.NewProgram so stream goroutines can push
	// frames back in with p.Send.
	program *tea.Program

	store *runfeed.ArtifactStore
	chat  chat.Model
	panel runpanel.Model
	input textinput.Model

	run          *runfeed.Run
	streaming    bool
	streamCancel context.CancelFunc

	// Slow-connection timer. waitGen identifies the current timer
	// generation; bumping it orphans any ticks still in flight.
	waitGen    int
	waitActive bool
	waitTicks  int
	slow       bool

	msgCount int

	width  int
	height int

	errText string
	notice  string
}

// New creates the root model from resolved configuration.
func New(cfg config.Config, c *client.Client) *Model {
	input := textinput.New()
	input.Placeholder = "Ask the agent anything..."
	input.CharLimit = 4000
	input.Focus()

	store := runfeed.NewArtifactStore()

	m := &Model{
		cfg:    cfg,
		client: c,
		log:    runfeed.GetLogger().With("component", "app"),
		store:  store,
		chat:   chat.New(80, 20, store),
		panel:  runpanel.New(80, cfg.WindowSize),
		input:  input,
	}
	if cfg.ShowAllEvents {
		m.panel.ToggleShowAll()
	}
	return m
}

// SetProgram hands the model its running program so stream commands can
// deliver messages from their goroutines.
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// layout distributes the terminal height: header and status bar are one row
// each, the input box three, the run panel takes what it renders, the chat
// viewport gets the rest.
func (m *Model) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	panelH := 0
	if pv := m.panel.View(); pv != "" {
		panelH = lipgloss.Height(pv)
	}
	chatH := m.height - 1 - panelH - 3 - 1
	if chatH < 3 {
		chatH = 3
	}
	m.chat.SetSize(m.width, chatH)
	m.panel.SetWidth(m.width)
	m.input.Width = m.width - 6
}

func (m *Model) nextMessageID() string {
	m.msgCount++
	return fmt.Sprintf("msg-%d", m.msgCount)
}
