package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	log "github.com/sirupsen/logrus"
)

// MarkdownRenderer formats replies for terminal display
type MarkdownRenderer struct {
	renderer *glamour.TermRenderer
}

// NewMarkdownRenderer creates a renderer wrapping at width columns
func NewMarkdownRenderer(width int) (*MarkdownRenderer, error) {
	if width <= 0 {
		width = defaultWidth
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
		glamour.WithPreservedNewLines(),
	)
	if err != nil {
		return nil, err
	}
	return &MarkdownRenderer{renderer: r}, nil
}

// Render returns text formatted as markdown. On failure the text is returned unchanged.
func (m *MarkdownRenderer) Render(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	rendered, err := m.renderer.Render(text)
	if err != nil {
		log.WithError(err).Warn("Markdown rendering failed")
		return text
	}
	return strings.TrimRight(rendered, "\n")
}
