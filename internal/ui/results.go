package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/farefinder/internal/flights"
)

// calendarHeight is the height of the price calendar strip, borders included.
const calendarHeight = 4

// handleResultsKey processes keyboard input for the results list.
func (m Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.snapshot.Flights)
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.session.ClearResults()
		m.snapshot.Flights = nil
		m.snapshot.PriceCalendar = nil
		m.snapshot.Details = nil
		m.query = nil
		m.view = ViewSearch
		return m, m.form.setFocus(fieldOrigin)

	case key.Matches(msg, m.keys.Down):
		if m.selected < n-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Top):
		m.selected = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selected = max(n-1, 0)
	case key.Matches(msg, m.keys.HalfPageDown):
		m.selected = min(m.selected+m.listHeight()/2, max(n-1, 0))
	case key.Matches(msg, m.keys.HalfPageUp):
		m.selected = max(m.selected-m.listHeight()/2, 0)

	case key.Matches(msg, m.keys.Calendar):
		return m, m.toggleCalendar()

	case key.Matches(msg, m.keys.Details):
		return m, m.openDetails()
	}
	return m, nil
}

// toggleCalendar shows or hides the price calendar, fetching it the first
// time it is shown for a search.
func (m *Model) toggleCalendar() tea.Cmd {
	m.showCalendar = !m.showCalendar
	if !m.showCalendar || m.snapshot.PriceCalendar != nil || m.snapshot.Loading || m.query == nil {
		return nil
	}
	session, params := m.session, flights.CalendarFrom(m.params)
	ctx := m.ctx
	return runCmd(func() { session.FetchPriceCalendar(ctx, params) })
}

// openDetails loads details for the selected itinerary.
func (m *Model) openDetails() tea.Cmd {
	it, ok := m.selectedItinerary()
	if !ok || m.snapshot.Loading {
		return nil
	}
	m.snapshot.Details = nil
	m.view = ViewDetails
	m.detailViewport.GotoTop()
	m.updateDetailViewport()

	session, ctx, id := m.session, m.ctx, it.ID
	return runCmd(func() { session.FetchFlightDetails(ctx, id) })
}

func (m Model) selectedItinerary() (flights.Itinerary, bool) {
	if m.selected < 0 || m.selected >= len(m.snapshot.Flights) {
		return flights.Itinerary{}, false
	}
	return m.snapshot.Flights[m.selected], true
}

// listHeight is the number of rows available inside the list box.
func (m Model) listHeight() int {
	h := m.contentHeight()
	if m.showCalendar {
		h -= calendarHeight
	}
	return max(h-2, 1)
}

// renderResults renders the results list, the detail pane and the optional
// price calendar strip.
func (m Model) renderResults() string {
	height := m.contentHeight()
	var calendar string
	if m.showCalendar {
		calendar = m.renderCalendar(m.width)
		height -= calendarHeight
	}

	listWidth := m.width
	var detail string
	if m.width >= LayoutSplitWidth {
		listWidth = m.width * 3 / 5
		detailWidth := m.width - listWidth
		title := "Itinerary"
		if it, ok := m.selectedItinerary(); ok {
			title = formatRoute(it)
		}
		detail = m.renderTitledBox(title, m.renderItinerary(detailWidth-2), detailWidth, height, false)
	}

	title := "Flights"
	if n := len(m.snapshot.Flights); n > 0 {
		title = fmt.Sprintf("Flights (%d)", n)
	}
	list := m.renderTitledBox(title, m.renderFlightList(listWidth-2, height-2), listWidth, height, true)

	body := list
	if detail != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, list, detail)
	}
	if calendar != "" {
		return calendar + "\n" + body
	}
	return body
}

// renderFlightList renders one row per itinerary, scrolled to keep the
// selection visible.
func (m Model) renderFlightList(width, height int) string {
	bgColor := m.theme.FocusBg
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)

	its := m.snapshot.Flights
	if len(its) == 0 {
		switch {
		case m.snapshot.Loading:
			return bg.Render(m.spinner.View()+" Searching flights...", styles.AccentText)
		case m.snapshot.HasError():
			return bg.Render("Search failed.", styles.DangerText)
		default:
			return bg.Render("No flights found for this search.", styles.MutedText)
		}
	}

	start := 0
	if m.selected >= height {
		start = m.selected - height + 1
	}
	end := min(start+height, len(its))
	cheapest := cheapestIndex(its)

	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		rows = append(rows, m.flightRow(its[i], i == m.selected, i == cheapest, width))
	}
	return strings.Join(rows, "\n")
}

func (m Model) flightRow(it flights.Itinerary, selected, cheapest bool, width int) string {
	currency := m.defaults.Currency
	price := padRight(it.Price.Display(currency), 12)

	var times, stops string
	if len(it.Legs) > 0 {
		first, last := it.Legs[0], it.Legs[len(it.Legs)-1]
		times = formatClock(first.DepartureTime()) + "–" + formatClock(last.ArrivalTime())
		stops = formatStops(first.StopCount)
	}
	line := fmt.Sprintf("%s %s  %s  %s  %s",
		price,
		padRight(times, 11),
		padRight(formatDuration(it.TotalDuration()), 8),
		padRight(stops, 8),
		formatCarriers(it),
	)
	line = truncate(line, width)

	if selected {
		return m.theme.Styles().Selected.Width(width).Render(line)
	}

	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	bg := NewBgStyle(m.theme.FocusBg)
	priceStyle := styles.Text.Bold(true)
	if cheapest {
		priceStyle = styles.DealText
	}
	rest := strings.TrimPrefix(line, price)
	if len(rest) == len(line) {
		return bg.Render(line, styles.Text)
	}
	return bg.Render(price, priceStyle) + bg.Render(rest, styles.Text)
}

// renderItinerary renders the legs of the selected itinerary.
func (m Model) renderItinerary(width int) string {
	bgColor := m.theme.SurfaceAlt
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)

	it, ok := m.selectedItinerary()
	if !ok {
		return bg.Render("Select a flight to see its legs.", styles.FaintText)
	}

	lines := []string{
		bg.Render(it.Price.Display(m.defaults.Currency), styles.DealText) + bg.Spaces(2) +
			bg.Render(formatDuration(it.TotalDuration())+" total", styles.MutedText),
		"",
	}
	for i, leg := range it.Legs {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, legLines(leg, width, styles, bg)...)
	}
	lines = append(lines, "", bg.Render(helpLine(m.keys.Details), styles.FaintText))
	return strings.Join(lines, "\n")
}

func legLines(leg flights.Leg, width int, styles Styles, bg BgStyle) []string {
	header := leg.Origin.DisplayCode + " → " + leg.Destination.DisplayCode
	if day := formatDay(leg.DepartureTime()); day != "" {
		header += "  " + day
	}
	lines := []string{
		bg.Render(truncate(header, width), styles.AccentText.Bold(true)),
		bg.Render(formatClock(leg.DepartureTime())+" "+truncate(leg.Origin.Name, width-6), styles.Text),
		bg.Render(formatClock(leg.ArrivalTime())+" "+truncate(leg.Destination.Name, width-6), styles.Text),
		bg.Render(truncate(formatDuration(leg.Duration())+" · "+formatStops(leg.StopCount)+" · "+
			strings.Join(leg.CarrierNames(), ", "), width), styles.MutedText),
	}
	for _, seg := range leg.Segments {
		text := fmt.Sprintf("  %s %s→%s", seg.FlightNumber, seg.Origin.DisplayCode, seg.Destination.DisplayCode)
		lines = append(lines, bg.Render(truncate(text, width), styles.FaintText))
	}
	return lines
}

// renderCalendar renders the price calendar as a single strip of days.
func (m Model) renderCalendar(width int) string {
	bgColor := m.theme.SurfaceAlt
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)

	var content string
	cal := m.snapshot.PriceCalendar
	switch {
	case cal == nil && m.snapshot.Loading:
		content = m.spinner.View() + bg.Space() + bg.Render("Loading prices...", styles.AccentText)
	case cal == nil || len(cal.Days) == 0:
		content = bg.Render("No calendar prices available.", styles.MutedText)
	default:
		cheapest, _ := cal.Cheapest()
		cells := make([]string, 0, len(cal.Days))
		for _, day := range cal.Days {
			label := day.Date
			if len(label) == len("2006-01-02") {
				label = label[5:]
			}
			style := styles.Text
			if day.Date == cheapest.Date {
				style = styles.DealText
			}
			cells = append(cells, bg.Render(label, styles.MutedText)+bg.Space()+
				bg.Render(day.Price.Display(m.defaults.Currency), style))
		}
		content = bg.Join(cells, "   ")
	}
	return m.renderTitledBox("Price calendar", content, width, calendarHeight, false)
}
