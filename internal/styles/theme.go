package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED")
	Secondary = lipgloss.Color("#10B981")
	Warning   = lipgloss.Color("#F59E0B")
	Error     = lipgloss.Color("#EF4444")
	Muted     = lipgloss.Color("#6B7280")
	White     = lipgloss.Color("#FFFFFF")
	LightGray = lipgloss.Color("#E5E7EB")

	// Message styles
	UserLabel = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	UserMessage = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(White).
			Bold(true)

	AssistantLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	AssistantMessage = lipgloss.NewStyle().
				Padding(0, 1).
				Foreground(LightGray)

	// Run panel styles
	StatusActive = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	StatusDone = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	StatusError = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	EventTitle = lipgloss.NewStyle().
			Foreground(LightGray)

	EventSummary = lipgloss.NewStyle().
			Foreground(Muted)

	EventGlyphOK = lipgloss.NewStyle().
			Foreground(Secondary)

	EventGlyphWarn = lipgloss.NewStyle().
			Foreground(Warning)

	EventGlyphErr = lipgloss.NewStyle().
			Foreground(Error)

	EventGlyphPending = lipgloss.NewStyle().
				Foreground(Muted)

	HiddenEvents = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	SlowConnection = lipgloss.NewStyle().
			Foreground(Warning).
			Italic(true)

	// Document card styles
	DocCard = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Secondary).
		Padding(0, 1)

	DocCardSelected = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	DocTitle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	DocType = lipgloss.NewStyle().
		Foreground(Muted).
		Italic(true)

	DocGenerating = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Code block styles
	CodeBlock = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Muted).
			Padding(0, 1)

	CodeBlockSelected = lipgloss.NewStyle().
				Border(lipgloss.ThickBorder()).
				BorderForeground(Primary).
				Padding(0, 1)

	CodeLang = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Input styles
	InputBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	// Status bar styles
	StatusBar = lipgloss.NewStyle().
			Foreground(Muted).
			Padding(0, 1)

	StatusBarError = lipgloss.NewStyle().
			Foreground(Error).
			Padding(0, 1)

	// Header
	Header = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true).
		Padding(0, 1)

	// Cursor for streaming
	StreamingCursor = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	// Preview overlay
	Preview = lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(Primary).
		Padding(1, 2)
)
