package chat

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"runtui/sdk/runfeed"
)

// Model renders the streaming assistant answer: prose through the markdown
// renderer, python segments as navigable code blocks, document fences as
// artifact cards. All text reduction goes through the runfeed core; this
// component only composes what comes back.
type Model struct {
	viewport viewport.Model

	userMessage string
	messageID   string
	text        string
	isStreaming bool

	parser  runfeed.Parser
	tracker runfeed.PartialTracker
	store   *runfeed.ArtifactStore
	log     *runfeed.Logger

	segments  []runfeed.Segment
	documents []runfeed.DocumentBlock
	partial   runfeed.PartialBlockState
	inFlight  bool

	codeIdx int // selected python segment, -1 when none
	docIdx  int // selected document card, -1 when none

	previewOpen bool

	width  int
	height int
}

// New creates a chat model backed by the given artifact store. The caller
// owns the store's lifetime.
func New(width, height int, store *runfeed.ArtifactStore) Model {
	vp := viewport.New(width, height)
	vp.SetContent("")
	return Model{
		viewport: vp,
		store:    store,
		log:      runfeed.GetLogger().With("component", "chat"),
		codeIdx:  -1,
		docIdx:   -1,
		width:    width,
		height:   height,
	}
}

// Init initializes the chat component.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetSize resizes the component. A renderer rebuild failure is logged and
// rendering degrades to plain text instead of going dark.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	if err := InitMarkdown(width - 4); err != nil {
		m.log.Warn("markdown renderer rebuild failed", "width", width, "error", err)
	}
	m.refresh()
}

// StartRun begins a new streaming answer for the given user message.
func (m *Model) StartRun(messageID, userMessage string) {
	m.userMessage = userMessage
	m.messageID = messageID
	m.text = ""
	m.isStreaming = true
	m.parser = runfeed.Parser{}
	m.tracker.Reset()
	m.segments = nil
	m.documents = nil
	m.partial = runfeed.PartialBlockState{}
	m.inFlight = false
	m.codeIdx = -1
	m.docIdx = -1
	m.previewOpen = false
	m.refresh()
}

// AppendToken appends a streamed text delta.
func (m *Model) AppendToken(delta string) {
	m.text += delta
	m.refresh()
}

// EndStream marks the answer complete.
func (m *Model) EndStream() {
	m.isStreaming = false
	m.inFlight = false
	m.refresh()
}

// Update handles scrolling.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the chat viewport, or the document preview overlay when open.
func (m Model) View() string {
	if m.previewOpen {
		if doc, ok := m.SelectedDocument(); ok {
			return m.renderPreview(doc)
		}
	}
	return m.viewport.View()
}

// refresh re-reduces the raw text and rebuilds the viewport content. The
// parser is memoized, so calling this on every message is cheap when the
// text has not changed.
func (m *Model) refresh() {
	res := m.parser.Parse(m.text)
	m.documents = res.Documents
	m.segments = runfeed.ExtractSegments(res.CleanText)

	for i, doc := range m.documents {
		m.store.Put(runfeed.ArtifactKey{MessageID: m.messageID, Index: i}, doc)
	}
	if m.docIdx >= len(m.documents) {
		m.docIdx = len(m.documents) - 1
	}
	if m.docIdx < 0 && len(m.documents) > 0 {
		m.docIdx = 0
	}
	m.clampCodeSelection()

	m.inFlight = false
	if m.isStreaming {
		if start, body, ok := runfeed.OpenFenceBody(m.text); ok {
			m.partial = m.tracker.Observe(start, body)
			m.inFlight = m.partial.IsDocument
		}
	}

	atBottom := m.viewport.AtBottom()
	m.viewport.SetContent(m.renderContent())
	if atBottom || m.isStreaming {
		m.viewport.GotoBottom()
	}
}

func (m *Model) clampCodeSelection() {
	count := m.codeSegmentCount()
	if count == 0 {
		m.codeIdx = -1
		return
	}
	if m.codeIdx < 0 {
		m.codeIdx = 0
	}
	if m.codeIdx >= count {
		m.codeIdx = count - 1
	}
}

func (m Model) codeSegmentCount() int {
	n := 0
	for _, seg := range m.segments {
		if seg.Kind == runfeed.SegmentPython {
			n++
		}
	}
	return n
}

// NextCode selects the next python segment.
func (m *Model) NextCode() {
	if count := m.codeSegmentCount(); count > 0 && m.codeIdx < count-1 {
		m.codeIdx++
		m.viewport.SetContent(m.renderContent())
	}
}

// PrevCode selects the previous python segment.
func (m *Model) PrevCode() {
	if m.codeIdx > 0 {
		m.codeIdx--
		m.viewport.SetContent(m.renderContent())
	}
}

// SelectedCode returns the currently selected python segment verbatim.
func (m Model) SelectedCode() (string, bool) {
	if m.codeIdx < 0 {
		return "", false
	}
	n := 0
	for _, seg := range m.segments {
		if seg.Kind != runfeed.SegmentPython {
			continue
		}
		if n == m.codeIdx {
			return seg.Content, true
		}
		n++
	}
	return "", false
}

// CycleDocument moves the document card selection.
func (m *Model) CycleDocument() {
	if len(m.documents) == 0 {
		return
	}
	m.docIdx = (m.docIdx + 1) % len(m.documents)
	m.viewport.SetContent(m.renderContent())
}

// SelectedDocument returns the selected document from the artifact store.
func (m Model) SelectedDocument() (runfeed.DocumentBlock, bool) {
	if m.docIdx < 0 {
		return runfeed.DocumentBlock{}, false
	}
	return m.store.Get(runfeed.ArtifactKey{MessageID: m.messageID, Index: m.docIdx})
}

// TogglePreview opens or closes the document preview overlay.
func (m *Model) TogglePreview() {
	if _, ok := m.SelectedDocument(); !ok {
		m.previewOpen = false
		return
	}
	m.previewOpen = !m.previewOpen
}

// PreviewOpen reports whether the preview overlay is showing.
func (m Model) PreviewOpen() bool {
	return m.previewOpen
}

// ClosePreview closes the overlay.
func (m *Model) ClosePreview() {
	m.previewOpen = false
}

// HasContent reports whether anything has been rendered yet.
func (m Model) HasContent() bool {
	return m.userMessage != "" || m.text != ""
}

// Clear resets the conversation view.
func (m *Model) Clear() {
	m.userMessage = ""
	m.messageID = ""
	m.text = ""
	m.isStreaming = false
	m.segments = nil
	m.documents = nil
	m.tracker.Reset()
	m.codeIdx = -1
	m.docIdx = -1
	m.previewOpen = false
	m.store.Clear()
	m.viewport.SetContent("")
}
