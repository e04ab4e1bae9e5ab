package state

import (
	"testing"
	"time"

	"github.com/five82/farefinder/internal/flights"
)

func TestStore_ZeroValue(t *testing.T) {
	var s Store
	snap := s.Snapshot()
	if snap.Loading || snap.HasError() {
		t.Fatalf("zero snapshot = %#v, want idle without error", snap)
	}
	if snap.Airports != nil || snap.Flights != nil || snap.PriceCalendar != nil || snap.Details != nil {
		t.Fatalf("zero snapshot should hold no results: %#v", snap)
	}
}

func TestStore_BeginClearsErrorAndSetsLoading(t *testing.T) {
	var s Store
	s.SetError("Failed to search flights. Please try again.")

	before := time.Now()
	s.Begin()

	snap := s.Snapshot()
	if !snap.Loading {
		t.Fatalf("Loading = false after Begin")
	}
	if snap.HasError() {
		t.Fatalf("Error = %q after Begin, want empty", snap.Error)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}

	s.Finish()
	if s.Snapshot().Loading {
		t.Fatalf("Loading = true after Finish")
	}
}

func TestStore_SnapshotClonesResults(t *testing.T) {
	var s Store
	s.SetAirports(flights.MockAirports())
	s.SetFlights(flights.MockItineraries())
	s.SetPriceCalendar(flights.MockPriceCalendar())
	details, _ := flights.MockFlightDetails("mock-flight-1")
	s.SetDetails(details)

	snap := s.Snapshot()
	snap.Airports[0].SkyID = "XXX"
	snap.Flights[0].ID = "changed"
	snap.PriceCalendar.Days[0].Price.Raw = -1
	snap.Details.PricingOptions[0].TotalPrice = -1

	again := s.Snapshot()
	if again.Airports[0].SkyID != "ILR" {
		t.Fatalf("airports not cloned: %q", again.Airports[0].SkyID)
	}
	if again.Flights[0].ID != "mock-flight-1" {
		t.Fatalf("flights not cloned: %q", again.Flights[0].ID)
	}
	if again.PriceCalendar.Days[0].Price.Raw != 45000 {
		t.Fatalf("calendar not cloned: %v", again.PriceCalendar.Days[0].Price.Raw)
	}
	if again.Details.PricingOptions[0].TotalPrice == -1 {
		t.Fatalf("details not cloned")
	}
}

func TestStore_SettersCopyInput(t *testing.T) {
	var s Store
	input := flights.MockAirports()
	s.SetAirports(input)
	input[0].SkyID = "XXX"

	if got := s.Snapshot().Airports[0].SkyID; got != "ILR" {
		t.Fatalf("SetAirports kept caller slice: %q", got)
	}
}

func TestStore_ClearResultsLeavesLoading(t *testing.T) {
	var s Store
	s.SetAirports(flights.MockAirports())
	s.SetFlights(flights.MockItineraries())
	s.SetPriceCalendar(flights.MockPriceCalendar())
	s.Begin()
	s.SetError("boom")

	s.ClearResults()

	snap := s.Snapshot()
	if snap.Airports != nil || snap.Flights != nil || snap.PriceCalendar != nil || snap.Details != nil {
		t.Fatalf("ClearResults left results: %#v", snap)
	}
	if snap.HasError() {
		t.Fatalf("ClearResults left error %q", snap.Error)
	}
	if !snap.Loading {
		t.Fatalf("ClearResults must not touch Loading")
	}
}

func TestStore_ClearErrorKeepsResults(t *testing.T) {
	var s Store
	s.SetFlights(flights.MockItineraries())
	s.SetError("boom")

	s.ClearError()

	snap := s.Snapshot()
	if snap.HasError() {
		t.Fatalf("Error = %q, want empty", snap.Error)
	}
	if len(snap.Flights) != 2 {
		t.Fatalf("ClearError dropped flights: %d", len(snap.Flights))
	}
}

func TestStore_UpdatesCoalesce(t *testing.T) {
	var s Store
	updates := s.Updates()

	s.SetError("a")
	s.ClearError()
	s.Begin()

	select {
	case <-updates:
	case <-time.After(time.Second):
		t.Fatalf("no update signal after mutations")
	}
	select {
	case <-updates:
		t.Fatalf("signals should coalesce into one pending update")
	default:
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	var s Store
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			s.Begin()
			s.SetFlights(flights.MockItineraries())
			s.Finish()
		}
	}()
	for i := 0; i < 200; i++ {
		_ = s.Snapshot()
	}
	<-done
	if s.Snapshot().Loading {
		t.Fatalf("Loading = true after final Finish")
	}
}
