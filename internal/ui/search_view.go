package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/farefinder/internal/search"
)

const formLabelWidth = 14

// renderSearch renders the search form.
func (m Model) renderSearch() string {
	height := m.contentHeight()
	width := min(m.width, 72)

	bgColor := m.theme.FocusBg
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)
	f := m.form

	rows := []string{
		bg.Render(tagline, styles.FaintText),
		"",
		m.formRow(fieldTrip, "Trip", m.selector(f.trip.Label(), fieldTrip)),
		m.formRow(fieldOrigin, "From", f.origin.view(m, bgColor)),
		m.formRow(fieldDestination, "To", f.destination.view(m, bgColor)),
		m.formRow(fieldDeparture, "Depart", f.departure.View()),
	}
	if f.trip.NeedsReturn() {
		rows = append(rows, m.formRow(fieldReturn, "Return", f.ret.View()))
	}
	rows = append(rows,
		m.formRow(fieldAdults, "Adults", m.counter(search.Adults)),
		m.formRow(fieldChildren, "Children", m.counter(search.Children)),
		m.formRow(fieldInfants, "Infants", m.counter(search.Infants)),
		m.formRow(fieldCabin, "Cabin", m.selector(f.cabin.Label(), fieldCabin)),
		m.formRow(fieldSort, "Sort by", m.selector(f.sort.Label(), fieldSort)),
		"",
		m.submitButton(),
	)
	if f.err != "" {
		rows = append(rows, "", bg.Render("✗ "+f.err, styles.DangerText))
	}
	if f.trip == search.TripMultiCity {
		rows = append(rows, "", bg.Render("Multi-city searches the first leg only.", styles.FaintText))
	}

	box := m.renderTitledBox("Search flights", strings.Join(rows, "\n"), width, height, true)
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, box)
}

// formRow renders a labelled row, marking it when focused.
func (m Model) formRow(field formField, label, value string) string {
	bgColor := m.theme.FocusBg
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)

	marker, labelStyle := "  ", styles.MutedText
	if m.form.focus == field {
		marker, labelStyle = "› ", styles.AccentText.Bold(true)
	}

	prefix := bg.Render(marker, styles.AccentText) + bg.Render(padRight(label, formLabelWidth), labelStyle)
	lines := strings.Split(value, "\n")
	indent := bg.Spaces(2 + formLabelWidth)
	for i := range lines {
		if i == 0 {
			lines[i] = prefix + lines[i]
			continue
		}
		lines[i] = indent + lines[i]
	}
	return strings.Join(lines, "\n")
}

func (m Model) selector(value string, field formField) string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	bg := NewBgStyle(m.theme.FocusBg)
	if m.form.focus == field {
		return bg.Render("‹ "+value+" ›", styles.Text.Bold(true))
	}
	return bg.Render(value, styles.Text)
}

func (m Model) counter(kind search.PassengerKind) string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	bg := NewBgStyle(m.theme.FocusBg)
	n := m.form.passengers.Count(kind)

	minus := styles.FaintText
	if m.form.passengers.CanDecrement(kind) {
		minus = styles.AccentText
	}
	return bg.Render("−", minus) + bg.Space() +
		bg.Render(padRight(itoa(n), 2), styles.Text.Bold(true)) +
		bg.Render("+", styles.AccentText)
}

func (m Model) submitButton() string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	bg := NewBgStyle(m.theme.FocusBg)

	if m.snapshot.Loading {
		return bg.Spaces(2) + m.spinner.View() + bg.Space() + bg.Render("Searching flights...", styles.AccentText)
	}
	label := " Search flights "
	if m.form.focus == fieldSubmit {
		return bg.Spaces(2) + styles.Selected.Bold(true).Render(label) + bg.Spaces(2) +
			bg.Render(helpLine(m.keys.Submit), styles.FaintText)
	}
	return bg.Spaces(2) + bg.Render("["+label+"]", styles.MutedText)
}
