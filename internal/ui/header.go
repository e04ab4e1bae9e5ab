package ui

import (
	"strings"
)

// renderHeader renders the status bar: logo, data source, route and
// activity.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth

	parts := []string{bg.Render(appName, styles.Logo)}

	badge, badgeStyle := styles.ModeBadge(m.live())
	parts = append(parts, bg.Render(badge, badgeStyle))

	if m.query != nil {
		route := m.query.Origin.RoutingSkyID() + " → " + m.query.Destination.RoutingSkyID()
		parts = append(parts, bg.Render(route, styles.Text))
		if !compact {
			when := formatDay(m.query.Departure)
			if m.query.Return != nil {
				when += " – " + formatDay(*m.query.Return)
			}
			parts = append(parts,
				bg.Render(when, styles.MutedText),
				bg.Render(formatPassengers(m.query.Passengers), styles.MutedText),
				bg.Render(m.query.CabinClass.Label(), styles.MutedText),
			)
		}
	}

	if m.view == ViewResults || m.view == ViewDetails {
		count := len(m.snapshot.Flights)
		parts = append(parts,
			bg.Render("Flights:", styles.MutedText)+bg.Space()+bg.Render(itoa(count), styles.Text))
	}

	if m.anyLoading() {
		parts = append(parts, bg.Render(m.spinner.View(), styles.AccentText)+bg.Space()+
			bg.Render("Searching...", styles.AccentText))
	} else if !m.snapshot.LastUpdated.IsZero() && !compact {
		parts = append(parts, bg.Render(m.snapshot.LastUpdated.Format("15:04:05"), styles.FaintText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// renderCommandBar renders the command hints for the active view.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.view {
	case ViewResults:
		commands = []cmd{
			{"j/k", "Navigate"},
			{"enter", "Details"},
			{"c", "Calendar"},
			{"esc", "New search"},
			{"L", "Logs"},
			{"?", "More"},
		}
	case ViewDetails:
		commands = []cmd{
			{"j/k", "Scroll"},
			{"esc", "Results"},
			{"L", "Logs"},
			{"?", "More"},
		}
	case ViewLogs:
		commands = []cmd{
			{"j/k", "Scroll"},
			{"g/G", "Top/Bottom"},
			{"r", "Refresh"},
			{"esc", "Back"},
		}
	default:
		if m.form.textFocused() {
			commands = []cmd{
				{"tab", "Next"},
				{"↑/↓", "Suggestions"},
				{"enter", "Select"},
				{"ctrl+s", "Swap"},
				{"ctrl+c", "Quit"},
			}
		} else {
			commands = []cmd{
				{"tab", "Next"},
				{"←/→", "Change"},
				{"enter", "Search"},
				{"L", "Logs"},
				{"?", "More"},
			}
		}
	}

	colon := bg.Sep(":")
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, bg.Spaces(2)))
}
