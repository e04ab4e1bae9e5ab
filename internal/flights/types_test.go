package flights

import (
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"
)

func httpBody(s string) io.ReadCloser {
	return io.NopCloser(strings.NewReader(s))
}

func TestAirportRoutingFallsBackToTopLevelIDs(t *testing.T) {
	a := Airport{SkyID: "LOS", EntityID: "67890"}
	if a.RoutingSkyID() != "LOS" || a.RoutingEntityID() != "67890" {
		t.Fatalf("routing ids = %q/%q, want LOS/67890", a.RoutingSkyID(), a.RoutingEntityID())
	}
	a.Navigation.RelevantFlightParams = FlightParams{SkyID: "LAGO", EntityID: "27544"}
	if a.RoutingSkyID() != "LAGO" || a.RoutingEntityID() != "27544" {
		t.Fatalf("routing ids = %q/%q, want LAGO/27544", a.RoutingSkyID(), a.RoutingEntityID())
	}
}

func TestAirportLabel(t *testing.T) {
	if got := (Airport{SkyID: "X"}).Label(); got != "X" {
		t.Fatalf("Label = %q, want X", got)
	}
	if got := (Airport{Presentation: Presentation{Title: "Lagos"}}).Label(); got != "Lagos" {
		t.Fatalf("Label = %q, want Lagos", got)
	}
	if got := MockAirports()[1].Label(); got != "Lagos (LOS)" {
		t.Fatalf("Label = %q, want Lagos (LOS)", got)
	}
}

func TestLegHelpers(t *testing.T) {
	leg := MockItineraries()[0].Legs[0]
	if got := leg.CarrierNames(); len(got) != 1 || got[0] != "Arik Air" {
		t.Fatalf("CarrierNames = %v, want [Arik Air]", got)
	}
	dep := leg.DepartureTime()
	if dep.IsZero() || dep.Hour() != 8 || dep.Minute() != 0 {
		t.Fatalf("DepartureTime = %v, want 08:00", dep)
	}
	if leg.ArrivalTime().Sub(dep) != leg.Duration() {
		t.Fatalf("arrival-departure = %v, want %v", leg.ArrivalTime().Sub(dep), leg.Duration())
	}

	empty := Leg{Carriers: Carriers{Marketing: []Carrier{{Name: " "}}}}
	if got := empty.CarrierNames(); len(got) != 0 {
		t.Fatalf("CarrierNames = %v, want empty", got)
	}
	if !empty.DepartureTime().IsZero() {
		t.Fatalf("DepartureTime on empty leg should be zero")
	}
}

func TestParseTimeLayouts(t *testing.T) {
	if parseTime("2025-12-13T10:11:12Z").IsZero() {
		t.Fatalf("parseTime should parse RFC3339")
	}
	got := parseTime("2025-07-15T08:00:00")
	if got.Year() != 2025 || got.Month() != time.July || got.Day() != 15 {
		t.Fatalf("parseTime = %v, want 2025-07-15", got)
	}
	if !parseTime("garbage").IsZero() {
		t.Fatalf("parseTime(garbage) should be zero")
	}
}

func TestItineraryTotalDuration(t *testing.T) {
	it := Itinerary{Legs: []Leg{{DurationInMinutes: 90}, {DurationInMinutes: 75}}}
	if got := it.TotalDuration(); got != 165*time.Minute {
		t.Fatalf("TotalDuration = %v, want 165m", got)
	}
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		currency string
		amount   float64
		want     string
	}{
		{"USD", 0, "USD 0"},
		{"USD", 999, "USD 999"},
		{"USD", 1000, "USD 1,000"},
		{"NGN", 45000, "NGN 45,000"},
		{"", 1234567.6, "1,234,568"},
		{"USD", -2500, "-USD 2,500"},
	}
	for _, tc := range cases {
		if got := FormatAmount(tc.currency, tc.amount); got != tc.want {
			t.Fatalf("FormatAmount(%q, %v) = %q, want %q", tc.currency, tc.amount, got, tc.want)
		}
	}
}

func TestPriceDisplay(t *testing.T) {
	if got := (Price{Raw: 10, Formatted: "₦10"}).Display("USD"); got != "₦10" {
		t.Fatalf("Display = %q, want provider string", got)
	}
	if got := (Price{Raw: 1500}).Display("USD"); got != "USD 1,500" {
		t.Fatalf("Display = %q, want USD 1,500", got)
	}
}

func TestPriceCalendarCheapest(t *testing.T) {
	if _, ok := (PriceCalendar{}).Cheapest(); ok {
		t.Fatalf("Cheapest on empty calendar should report false")
	}
	day, ok := MockPriceCalendar().Cheapest()
	if !ok || day.Date != "2025-07-18" {
		t.Fatalf("Cheapest = %#v, want 2025-07-18", day)
	}
}

func TestEnvelopeAccessorsDefaultToEmpty(t *testing.T) {
	var flights FlightsResponse
	if err := json.Unmarshal([]byte(`{"status":true}`), &flights); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if its := flights.Itineraries(); its == nil || len(its) != 0 {
		t.Fatalf("Itineraries = %#v, want empty slice", its)
	}

	var airports AirportsResponse
	if err := json.Unmarshal([]byte(`{"status":true,"data":null}`), &airports); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got := airports.Airports(); got == nil || len(got) != 0 {
		t.Fatalf("Airports = %#v, want empty slice", got)
	}

	var nearby NearbyResponse
	if err := json.Unmarshal([]byte(`{"status":true,"data":{"nearby":[{"skyId":"ABV"}]}}`), &nearby); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got := nearby.Airports(); len(got) != 1 || got[0].SkyID != "ABV" {
		t.Fatalf("nearby Airports = %#v, want ABV only", got)
	}

	var cal PriceCalendarResponse
	if err := json.Unmarshal([]byte(`{"status":true,"data":{}}`), &cal); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if days := cal.Calendar("USD").Days; days == nil || len(days) != 0 {
		t.Fatalf("Calendar days = %#v, want empty slice", days)
	}

	var details FlightDetailsResponse
	if err := json.Unmarshal([]byte(`{"status":true}`), &details); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if d := details.Details(); d.Itinerary.ID != "" {
		t.Fatalf("Details = %#v, want zero value", d)
	}
}

func TestEnvelopeFailure(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		failed bool
	}{
		{"ok", `{"status":true}`, false},
		{"false without message", `{"status":false}`, false},
		{"false with message", `{"status":false,"message":"quota"}`, true},
		{"false with structured message", `{"status":false,"message":[{"date":"bad"}]}`, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var resp AirportsResponse
			if err := json.Unmarshal([]byte(tc.body), &resp); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if _, failed := resp.failure(); failed != tc.failed {
				t.Fatalf("failure() = %v, want %v", failed, tc.failed)
			}
		})
	}
}
