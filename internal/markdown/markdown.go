// Package markdown renders markdown for the terminal.
package markdown

import (
	"github.com/charmbracelet/glamour"
)

// Render markdown content word-wrapped to the given width. Falls back to the
// raw content when rendering fails, so a malformed document is still shown.
func Render(content string, width int) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
