package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const (
	// LayoutCompactWidth hides secondary header fields below this width.
	LayoutCompactWidth = 100
	// LayoutSplitWidth is the narrowest terminal that shows the itinerary
	// pane beside the flight list.
	LayoutSplitWidth = 110

	LogReadLimit       = 2000
	LogRefreshInterval = 2 * time.Second
)

// renderTitledBox draws a rounded box of exactly width x height cells with
// title set into the top edge:
//
//	╭─ Title ──────╮
//	│ content      │
//	╰──────────────╯
//
// Content lines past the box height are dropped. The focused box uses the
// focus border and background.
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	borderColor, fill := m.theme.Border, m.theme.SurfaceAlt
	if focused {
		borderColor, fill = m.theme.BorderFocus, m.theme.FocusBg
	}
	bg := NewBgStyle(fill)
	edge := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColor))
	heading := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))
	border := lipgloss.RoundedBorder()

	inner := max(width-2, 1)
	title = truncate(title, max(inner-4, 0))
	rest := max(inner-lipgloss.Width(title)-3, 0)

	var b strings.Builder
	b.WriteString(bg.Render(border.TopLeft+border.Top, edge))
	b.WriteString(bg.Render(" "+title+" ", heading))
	b.WriteString(bg.Render(strings.Repeat(border.Top, rest)+border.TopRight, edge))

	body := lipgloss.NewStyle().Width(inner).MaxWidth(inner).Background(bg.Color())
	lines := strings.Split(content, "\n")
	for i := range max(height-2, 1) {
		line := ""
		if i < len(lines) {
			line = lines[i]
		}
		b.WriteString("\n")
		b.WriteString(bg.Render(border.Left, edge) + body.Render(line) + bg.Render(border.Right, edge))
	}

	b.WriteString("\n")
	b.WriteString(bg.Render(border.BottomLeft+strings.Repeat(border.Bottom, inner)+border.BottomRight, edge))
	return b.String()
}
