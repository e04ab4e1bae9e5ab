package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/five82/farefinder/internal/flights"
	"github.com/five82/farefinder/internal/search"
)

// formatDuration renders a flight duration as "1h 30m".
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int(d.Round(time.Minute) / time.Minute)
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// formatClock renders a 24-hour "15:04", or "--:--" for a zero time.
func formatClock(t time.Time) string {
	if t.IsZero() {
		return "--:--"
	}
	return t.Format("15:04")
}

// formatDay renders "Tue, Jul 15".
func formatDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Mon, Jan 2")
}

// formatStops renders a stop count as "Direct", "1 stop" or "2 stops".
func formatStops(n int) string {
	if n <= 0 {
		return "Direct"
	}
	return plural(n, "stop", "stops")
}

// formatCarriers joins the marketing carriers of every leg, without repeats.
func formatCarriers(it flights.Itinerary) string {
	names := lo.Uniq(lo.FlatMap(it.Legs, func(l flights.Leg, _ int) []string {
		return l.CarrierNames()
	}))
	if len(names) == 0 {
		return "Unknown carrier"
	}
	return strings.Join(names, ", ")
}

// formatPassengers renders "2 adults, 1 child".
func formatPassengers(p search.Passengers) string {
	parts := []string{plural(p.Adults, "adult", "adults")}
	if p.Children > 0 {
		parts = append(parts, plural(p.Children, "child", "children"))
	}
	if p.Infants > 0 {
		parts = append(parts, plural(p.Infants, "infant", "infants"))
	}
	return strings.Join(parts, ", ")
}

// formatRoute renders "ILR → LOS" for an itinerary.
func formatRoute(it flights.Itinerary) string {
	if len(it.Legs) == 0 {
		return ""
	}
	codes := []string{it.Legs[0].Origin.DisplayCode}
	for _, leg := range it.Legs {
		codes = append(codes, leg.Destination.DisplayCode)
	}
	return strings.Join(codes, " → ")
}

// cheapestIndex returns the index of the lowest-priced itinerary, or -1.
func cheapestIndex(its []flights.Itinerary) int {
	best := -1
	for i, it := range its {
		if best < 0 || it.Price.Raw < its[best].Price.Raw {
			best = i
		}
	}
	return best
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

const ellipsis = "…"

// truncate trims value to limit runes, ending in an ellipsis when cut.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	r := []rune(value)
	if limit <= 0 || len(r) <= limit {
		return value
	}
	if limit == 1 {
		return string(r[:1])
	}
	return string(r[:limit-1]) + ellipsis
}

// truncateMiddle keeps both ends of value, which suits file paths.
func truncateMiddle(value string, limit int) string {
	value = strings.TrimSpace(value)
	r := []rune(value)
	if limit <= 0 || len(r) <= limit {
		return value
	}
	if limit <= 2 {
		return string(r[:limit])
	}
	head := (limit - 1) / 2
	tail := limit - 1 - head
	return string(r[:head]) + ellipsis + string(r[len(r)-tail:])
}

// padRight pads s with spaces to width runes.
func padRight(s string, width int) string {
	if n := width - len([]rune(s)); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

// plural renders "1 adult" or "2 adults".
func plural(n int, singular, pluralForm string) string {
	word := pluralForm
	if n == 1 {
		word = singular
	}
	return itoa(n) + " " + word
}
