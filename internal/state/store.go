package state

import (
	"sync"
	"time"

	"github.com/five82/farefinder/internal/flights"
)

// Snapshot is the search state visible to the UI.
type Snapshot struct {
	Loading       bool
	Error         string // empty when no error is active
	Airports      []flights.Airport
	Flights       []flights.Itinerary
	PriceCalendar *flights.PriceCalendar // nil until fetched
	Details       *flights.FlightDetails // nil until fetched
	LastUpdated   time.Time
}

// HasError reports whether an error message is active.
func (s Snapshot) HasError() bool {
	return s.Error != ""
}

// Store serialises mutations of one search session's state. The zero value
// is ready to use.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot

	once    sync.Once
	updates chan struct{}
}

// Updates returns a channel that receives a signal after mutations. Signals
// coalesce: a reader that falls behind sees one pending signal, not many.
func (s *Store) Updates() <-chan struct{} {
	return s.channel()
}

// Begin marks a request as started: the previous error is cleared before
// loading is set, in one step.
func (s *Store) Begin() {
	s.mutate(func(snap *Snapshot) {
		snap.Error = ""
		snap.Loading = true
	})
}

// Finish releases the loading flag.
func (s *Store) Finish() {
	s.mutate(func(snap *Snapshot) {
		snap.Loading = false
	})
}

// SetError records a user-facing error message.
func (s *Store) SetError(msg string) {
	s.mutate(func(snap *Snapshot) {
		snap.Error = msg
	})
}

// ClearError clears only the error message.
func (s *Store) ClearError() {
	s.mutate(func(snap *Snapshot) {
		snap.Error = ""
	})
}

// SetAirports replaces the airport suggestion list.
func (s *Store) SetAirports(airports []flights.Airport) {
	s.mutate(func(snap *Snapshot) {
		snap.Airports = cloneSlice(airports)
	})
}

// SetFlights replaces the itinerary list.
func (s *Store) SetFlights(itineraries []flights.Itinerary) {
	s.mutate(func(snap *Snapshot) {
		snap.Flights = cloneSlice(itineraries)
	})
}

// SetPriceCalendar replaces the price calendar.
func (s *Store) SetPriceCalendar(cal flights.PriceCalendar) {
	s.mutate(func(snap *Snapshot) {
		dup := flights.PriceCalendar{Days: cloneSlice(cal.Days)}
		snap.PriceCalendar = &dup
	})
}

// ClearDetails drops the loaded itinerary details.
func (s *Store) ClearDetails() {
	s.mutate(func(snap *Snapshot) {
		snap.Details = nil
	})
}

// SetDetails replaces the selected itinerary's details.
func (s *Store) SetDetails(details flights.FlightDetails) {
	s.mutate(func(snap *Snapshot) {
		dup := details
		dup.PricingOptions = cloneSlice(details.PricingOptions)
		snap.Details = &dup
	})
}

// ClearResults empties every result field and the error. Loading is left
// untouched so an in-flight request still releases it.
func (s *Store) ClearResults() {
	s.mutate(func(snap *Snapshot) {
		snap.Airports = nil
		snap.Flights = nil
		snap.PriceCalendar = nil
		snap.Details = nil
		snap.Error = ""
	})
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Airports = cloneSlice(s.snapshot.Airports)
	snap.Flights = cloneSlice(s.snapshot.Flights)
	if s.snapshot.PriceCalendar != nil {
		dup := flights.PriceCalendar{Days: cloneSlice(s.snapshot.PriceCalendar.Days)}
		snap.PriceCalendar = &dup
	}
	if s.snapshot.Details != nil {
		dup := *s.snapshot.Details
		dup.PricingOptions = cloneSlice(s.snapshot.Details.PricingOptions)
		snap.Details = &dup
	}
	return snap
}

func (s *Store) mutate(fn func(*Snapshot)) {
	s.mu.Lock()
	fn(&s.snapshot)
	s.snapshot.LastUpdated = time.Now()
	s.mu.Unlock()

	select {
	case s.channel() <- struct{}{}:
	default:
	}
}

func (s *Store) channel() chan struct{} {
	s.once.Do(func() {
		s.updates = make(chan struct{}, 1)
	})
	return s.updates
}

func cloneSlice[T any](items []T) []T {
	if items == nil {
		return nil
	}
	dup := make([]T, len(items))
	copy(dup, items)
	return dup
}
