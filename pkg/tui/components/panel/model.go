// Package panel renders framed panels for reader overlays.
package panel

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/thought/pkg/tui/theme"
)

// Model renders a framed panel with a title, a block of content and an
// optional hint line.
type Model struct {
	title string
	body  string
	hint  string
	width int

	frameStyle lipgloss.Style
	titleStyle lipgloss.Style
	bodyStyle  lipgloss.Style
	hintStyle  lipgloss.Style
}

// New returns an empty panel styled by th.
func New(th theme.Theme) Model {
	return Model{
		frameStyle: th.Panel.Frame,
		titleStyle: th.Panel.Title,
		bodyStyle:  th.Panel.Body,
		hintStyle:  th.Footer.Help,
	}
}

// SetContent replaces the title and body. body may span several lines.
func (m *Model) SetContent(title, body string) {
	m.title = title
	m.body = body
}

// SetHint sets the line printed under the body.
func (m *Model) SetHint(hint string) { m.hint = hint }

// SetWidth fixes the outer width; zero sizes the panel to its content.
func (m *Model) SetWidth(w int) { m.width = w }

// View returns the rendered panel.
func (m Model) View() string {
	var content []string
	if m.title != "" {
		content = append(content, m.titleStyle.Render(m.title), "")
	}
	if m.body != "" {
		content = append(content, m.bodyStyle.Render(m.body))
	}
	if m.hint != "" {
		content = append(content, "", m.hintStyle.Render(m.hint))
	}
	frame := m.frameStyle
	if m.width > 0 {
		frame = frame.Width(m.width)
	}
	return frame.Render(strings.Join(content, "\n"))
}
