package ui

import (
	"testing"
	"time"

	"github.com/five82/farefinder/internal/flights"
	"github.com/five82/farefinder/internal/search"
)

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		name string
		in   time.Duration
		want string
	}{
		{"negative", -time.Minute, "0h 0m"},
		{"minutes", 45 * time.Minute, "0h 45m"},
		{"hour_and_half", 90 * time.Minute, "1h 30m"},
		{"long_haul", 13*time.Hour + 5*time.Minute, "13h 5m"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := formatDuration(tc.in); got != tc.want {
				t.Fatalf("formatDuration(%v) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestFormatClockAndDay(t *testing.T) {
	if got := formatClock(time.Time{}); got != "--:--" {
		t.Fatalf("formatClock(zero) = %q", got)
	}
	ts := time.Date(2025, 7, 15, 8, 5, 0, 0, time.UTC)
	if got := formatClock(ts); got != "08:05" {
		t.Fatalf("formatClock = %q, want 08:05", got)
	}
	if got := formatDay(ts); got != "Tue, Jul 15" {
		t.Fatalf("formatDay = %q, want Tue, Jul 15", got)
	}
	if got := formatDay(time.Time{}); got != "" {
		t.Fatalf("formatDay(zero) = %q, want empty", got)
	}
}

func TestFormatStops(t *testing.T) {
	for n, want := range map[int]string{0: "Direct", 1: "1 stop", 2: "2 stops"} {
		if got := formatStops(n); got != want {
			t.Fatalf("formatStops(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestFormatCarriersDeduplicates(t *testing.T) {
	it := flights.MockItineraries()[0]
	it.Legs = append(it.Legs, it.Legs[0])
	if got := formatCarriers(it); got != "Arik Air" {
		t.Fatalf("formatCarriers = %q, want Arik Air", got)
	}
	if got := formatCarriers(flights.Itinerary{}); got != "Unknown carrier" {
		t.Fatalf("formatCarriers(empty) = %q", got)
	}
}

func TestFormatPassengers(t *testing.T) {
	p := search.Passengers{Adults: 2, Children: 1}
	if got := formatPassengers(p); got != "2 adults, 1 child" {
		t.Fatalf("formatPassengers = %q", got)
	}
	if got := formatPassengers(search.DefaultPassengers()); got != "1 adult" {
		t.Fatalf("formatPassengers(default) = %q", got)
	}
}

func TestFormatRouteAndCheapest(t *testing.T) {
	its := flights.MockItineraries()
	if got := formatRoute(its[0]); got != "ILR → LOS" {
		t.Fatalf("formatRoute = %q", got)
	}
	if got := cheapestIndex(its); got != 1 {
		t.Fatalf("cheapestIndex = %d, want 1", got)
	}
	if got := cheapestIndex(nil); got != -1 {
		t.Fatalf("cheapestIndex(nil) = %d, want -1", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Lagos (LOS)", 20); got != "Lagos (LOS)" {
		t.Fatalf("truncate short = %q", got)
	}
	if got := truncate("Murtala Muhammed International", 10); got != "Murtala M…" {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("abcdef", 2); got != "a…" {
		t.Fatalf("truncate limit 2 = %q", got)
	}
}

func TestTruncateMiddle(t *testing.T) {
	if got := truncateMiddle("  ", 10); got != "" {
		t.Fatalf("truncateMiddle blank = %q, want empty", got)
	}
	got := truncateMiddle("/home/user/.local/state/farefinder/app.log", 16)
	if got != "/home/u…/app.log" {
		t.Fatalf("truncateMiddle = %q", got)
	}
}

func TestPadRightAndPlural(t *testing.T) {
	if got := padRight("ab", 4); got != "ab  " {
		t.Fatalf("padRight = %q", got)
	}
	if got := padRight("abcdef", 4); got != "abcdef" {
		t.Fatalf("padRight long = %q", got)
	}
	if got := plural(1, "infant", "infants"); got != "1 infant" {
		t.Fatalf("plural(1) = %q", got)
	}
	if got := plural(3, "infant", "infants"); got != "3 infants" {
		t.Fatalf("plural(3) = %q", got)
	}
}
