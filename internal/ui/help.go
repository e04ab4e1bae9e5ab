package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

var helpGroupTitles = []string{"Search", "Lists", "Results", "General"}

// renderHelp renders the key reference as a centred overlay, two groups per
// column.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Warning)).Width(11)

	var columns [2][]string
	for i, group := range m.keys.FullHelp() {
		rows := []string{styles.AccentText.Bold(true).Render(helpGroupTitles[i])}
		for _, b := range group {
			if !b.Enabled() {
				continue
			}
			h := b.Help()
			rows = append(rows, keyStyle.Render(h.Key)+styles.Text.Render(h.Desc))
		}
		col := &columns[i%2]
		if len(*col) > 0 {
			*col = append(*col, "")
		}
		*col = append(*col, rows...)
	}

	colStyle := lipgloss.NewStyle().Width(38)
	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.Text.Bold(true).Render("Keyboard shortcuts"),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top,
			colStyle.Render(strings.Join(columns[0], "\n")),
			colStyle.Render(strings.Join(columns[1], "\n")),
		),
		"",
		styles.FaintText.Render("Letter keys type into the focused field. Any key closes this."),
	)

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal.Render(body),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

// helpLine renders a binding as "key desc" for inline hints.
func helpLine(b key.Binding) string {
	h := b.Help()
	return h.Key + " " + h.Desc
}
