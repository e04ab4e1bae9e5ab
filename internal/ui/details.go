package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/farefinder/internal/flights"
)

// handleDetailsKey processes keyboard input for the flight details view.
func (m Model) handleDetailsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.view = ViewResults
	case key.Matches(msg, m.keys.Down):
		m.detailViewport.ScrollDown(1)
	case key.Matches(msg, m.keys.Up):
		m.detailViewport.ScrollUp(1)
	case key.Matches(msg, m.keys.HalfPageDown):
		m.detailViewport.HalfPageDown()
	case key.Matches(msg, m.keys.HalfPageUp):
		m.detailViewport.HalfPageUp()
	case key.Matches(msg, m.keys.Top):
		m.detailViewport.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.detailViewport.GotoBottom()
	}
	return m, nil
}

func (m Model) renderDetails() string {
	title := "Flight details"
	if d := m.snapshot.Details; d != nil {
		title = formatRoute(d.Itinerary)
	}
	return m.renderTitledBox(title, m.detailViewport.View(), m.width, m.contentHeight(), true)
}

// updateDetailViewport refreshes the details viewport content.
func (m *Model) updateDetailViewport() {
	if !m.ready {
		return
	}
	m.detailViewport.SetContent(m.detailContent(m.detailViewport.Width))
}

func (m Model) detailContent(width int) string {
	bgColor := m.theme.FocusBg
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)

	d := m.snapshot.Details
	if d == nil {
		switch {
		case m.snapshot.Loading:
			return bg.Render(m.spinner.View()+" Loading flight details...", styles.AccentText)
		case m.snapshot.HasError():
			return bg.Render("Details are unavailable for this flight.", styles.DangerText)
		default:
			return bg.Render("No details loaded.", styles.MutedText)
		}
	}

	currency := m.defaults.Currency
	it := d.Itinerary
	lines := []string{
		bg.Render(it.Price.Display(currency), styles.DealText) + bg.Spaces(2) +
			bg.Render(formatCarriers(it), styles.Text) + bg.Spaces(2) +
			bg.Render(formatDuration(it.TotalDuration()), styles.MutedText),
		"",
		bg.Render("Legs", styles.AccentText.Bold(true)),
	}
	for i, leg := range it.Legs {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, legLines(leg, width, styles, bg)...)
	}

	lines = append(lines, "", bg.Render("Booking options", styles.AccentText.Bold(true)))
	if len(d.PricingOptions) == 0 {
		lines = append(lines, bg.Render("No booking options returned.", styles.MutedText))
	}
	for _, opt := range d.PricingOptions {
		lines = append(lines, pricingLines(opt, currency, width, styles, bg)...)
	}
	return strings.Join(lines, "\n")
}

func pricingLines(opt flights.PricingOption, currency string, width int, styles Styles, bg BgStyle) []string {
	total := flights.FormatAmount(currency, opt.TotalPrice)
	lines := []string{
		bg.Render(total, styles.Text.Bold(true)) + bg.Space() +
			bg.Render(fmt.Sprintf("via %s", plural(len(opt.Agents), "agent", "agents")), styles.MutedText),
	}
	for _, a := range opt.Agents {
		line := "  " + padRight(truncate(a.Name, 24), 24) + " " + flights.FormatAmount(currency, a.Price)
		if a.URL != "" {
			line += "  " + truncateMiddle(a.URL, max(width-len(line)-2, 8))
		}
		lines = append(lines, bg.Render(line, styles.InfoText))
	}
	return lines
}
