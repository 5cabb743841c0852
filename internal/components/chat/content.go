package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"runtui/internal/styles"
	"runtui/sdk/runfeed"
)

func docTypeLabel(t runfeed.DocumentType) string {
	switch t {
	case runfeed.DocWord:
		return "Word document"
	case runfeed.DocExcel:
		return "Excel spreadsheet"
	case runfeed.DocPPT:
		return "PowerPoint presentation"
	}
	return "Document"
}

// renderContent composes the conversation view: the user message, the
// assistant prose with python segments boxed, document cards, and while
// streaming a cursor plus the in-flight document indicator.
func (m Model) renderContent() string {
	var b strings.Builder

	if m.userMessage != "" {
		b.WriteString(styles.UserLabel.Render("You"))
		b.WriteString("\n")
		b.WriteString(styles.UserMessage.Render(m.userMessage))
		b.WriteString("\n\n")
	}

	if m.text != "" || m.isStreaming {
		b.WriteString(styles.AssistantLabel.Render("Assistant"))
		b.WriteString("\n")
	}

	codeIdx := 0
	for _, seg := range m.segments {
		switch seg.Kind {
		case runfeed.SegmentPython:
			b.WriteString(m.renderCode(seg.Content, codeIdx))
			b.WriteString("\n")
			codeIdx++
		default:
			text := seg.Content
			if strings.TrimSpace(text) == "" {
				continue
			}
			b.WriteString(RenderMarkdown(text))
		}
	}

	for i, doc := range m.documents {
		b.WriteString(m.renderCard(doc, i))
		b.WriteString("\n")
	}

	if m.isStreaming {
		if m.inFlight {
			b.WriteString(styles.DocGenerating.Render(m.inFlightLabel()))
			b.WriteString("\n")
		}
		b.WriteString(styles.StreamingCursor.Render("▌"))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) inFlightLabel() string {
	label := "document"
	if m.partial.Type != "" {
		label = docTypeLabel(m.partial.Type)
	}
	if m.partial.Title != "" {
		return fmt.Sprintf("Generating %s: %s…", strings.ToLower(label), m.partial.Title)
	}
	return fmt.Sprintf("Generating %s…", strings.ToLower(label))
}

func (m Model) renderCode(code string, idx int) string {
	style := styles.CodeBlock
	if idx == m.codeIdx {
		style = styles.CodeBlockSelected
	}
	header := styles.CodeLang.Render("python")
	body := strings.TrimRight(code, "\n")
	width := m.width - 6
	if width < 10 {
		width = 10
	}
	return style.Width(width).Render(header + "\n" + body)
}

func (m Model) renderCard(doc runfeed.DocumentBlock, idx int) string {
	style := styles.DocCard
	if idx == m.docIdx {
		style = styles.DocCardSelected
	}
	title := styles.DocTitle.Render(doc.Title)
	kind := styles.DocType.Render(docTypeLabel(doc.Type))
	lines := strings.Count(doc.Content, "\n") + 1
	meta := styles.EventSummary.Render(fmt.Sprintf("%d lines", lines))
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, title, kind, meta))
}

// renderPreview shows the full content of the selected document in place of
// the conversation.
func (m Model) renderPreview(doc runfeed.DocumentBlock) string {
	width := m.width - 8
	if width < 20 {
		width = 20
	}
	header := styles.DocTitle.Render(doc.Title) + "  " + styles.DocType.Render(docTypeLabel(doc.Type))
	hint := styles.EventSummary.Render("esc to close")
	body := doc.Content
	if doc.Type == runfeed.DocWord {
		body = RenderMarkdown(doc.Content)
	}
	content := lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", hint)
	return styles.Preview.Width(width).Render(content)
}
