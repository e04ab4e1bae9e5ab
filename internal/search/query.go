package search

import (
	"errors"
	"fmt"
	"time"

	"github.com/five82/farefinder/internal/flights"
)

// DateLayout is the calendar date format used by the flight API.
const DateLayout = "2006-01-02"

var (
	ErrMissingOrigin      = errors.New("select an origin airport")
	ErrMissingDestination = errors.New("select a destination airport")
	ErrSameAirport        = errors.New("origin and destination must differ")
	ErrMissingDeparture   = errors.New("departure date is required")
	ErrMissingReturn      = errors.New("return date is required for round trips")
	ErrReturnBeforeDepart = errors.New("return date is before departure")
)

// TripType selects how many legs a search asks for.
type TripType string

const (
	TripRound     TripType = "round"
	TripOneWay    TripType = "one-way"
	TripMultiCity TripType = "multi-city"
)

var tripTypes = []TripType{TripRound, TripOneWay, TripMultiCity}

// Next cycles to the following trip type.
func (t TripType) Next() TripType { return next(tripTypes, t) }

// NeedsReturn reports whether a return date is part of the query.
func (t TripType) NeedsReturn() bool { return t == TripRound }

func (t TripType) Label() string {
	switch t {
	case TripOneWay:
		return "One way"
	case TripMultiCity:
		return "Multi-city"
	default:
		return "Round trip"
	}
}

// CabinClass is the service tier.
type CabinClass string

const (
	CabinEconomy        CabinClass = "economy"
	CabinPremiumEconomy CabinClass = "premium_economy"
	CabinBusiness       CabinClass = "business"
	CabinFirst          CabinClass = "first"
)

var cabinClasses = []CabinClass{CabinEconomy, CabinPremiumEconomy, CabinBusiness, CabinFirst}

func (c CabinClass) Next() CabinClass { return next(cabinClasses, c) }

func (c CabinClass) Label() string {
	switch c {
	case CabinPremiumEconomy:
		return "Premium economy"
	case CabinBusiness:
		return "Business"
	case CabinFirst:
		return "First"
	default:
		return "Economy"
	}
}

// ParseCabinClass maps a stored value back to a CabinClass, falling back to
// economy for unknown input.
func ParseCabinClass(s string) CabinClass {
	for _, c := range cabinClasses {
		if string(c) == s {
			return c
		}
	}
	return CabinEconomy
}

// SortBy is the result ordering requested from the provider.
type SortBy string

const (
	SortBest     SortBy = "best"
	SortCheapest SortBy = "cheapest"
	SortFastest  SortBy = "fastest"
)

var sortOrders = []SortBy{SortBest, SortCheapest, SortFastest}

func (s SortBy) Next() SortBy { return next(sortOrders, s) }

func (s SortBy) Label() string {
	switch s {
	case SortCheapest:
		return "Cheapest"
	case SortFastest:
		return "Fastest"
	default:
		return "Best"
	}
}

// ParseSortBy maps a stored value back to a SortBy, falling back to best.
func ParseSortBy(s string) SortBy {
	for _, o := range sortOrders {
		if string(o) == s {
			return o
		}
	}
	return SortBest
}

func next[T comparable](all []T, cur T) T {
	for i, v := range all {
		if v == cur {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

// PassengerKind indexes a passenger count.
type PassengerKind int

const (
	Adults PassengerKind = iota
	Children
	Infants
)

func (k PassengerKind) String() string {
	switch k {
	case Children:
		return "children"
	case Infants:
		return "infants"
	default:
		return "adults"
	}
}

// Passengers holds traveller counts. Adults never drop below one; children
// and infants never below zero.
type Passengers struct {
	Adults   int
	Children int
	Infants  int
}

// DefaultPassengers is one adult.
func DefaultPassengers() Passengers {
	return Passengers{Adults: 1}
}

// Increment adds one passenger of kind.
func (p *Passengers) Increment(kind PassengerKind) {
	*p.field(kind)++
}

// Decrement removes one passenger of kind. It is a no-op at the floor.
func (p *Passengers) Decrement(kind PassengerKind) {
	f := p.field(kind)
	if *f > floor(kind) {
		*f--
	}
}

// CanDecrement reports whether Decrement would change kind.
func (p Passengers) CanDecrement(kind PassengerKind) bool {
	return *p.field(kind) > floor(kind)
}

// Count returns the number of passengers of kind.
func (p Passengers) Count(kind PassengerKind) int {
	return *p.field(kind)
}

// Total is the sum of all counts.
func (p Passengers) Total() int {
	return p.Adults + p.Children + p.Infants
}

func (p *Passengers) field(kind PassengerKind) *int {
	switch kind {
	case Children:
		return &p.Children
	case Infants:
		return &p.Infants
	default:
		return &p.Adults
	}
}

func floor(kind PassengerKind) int {
	if kind == Adults {
		return 1
	}
	return 0
}

// Form is the raw, possibly incomplete, state of the search form.
type Form struct {
	TripType    TripType
	Origin      *flights.Airport
	Destination *flights.Airport
	Departure   time.Time
	Return      time.Time
	Passengers  Passengers
	CabinClass  CabinClass
	SortBy      SortBy
}

// SearchQuery is a validated search submission. It is built fresh per
// submission and not modified afterwards.
type SearchQuery struct {
	TripType    TripType
	Origin      flights.Airport
	Destination flights.Airport
	Departure   time.Time
	Return      *time.Time // set only for round trips
	Passengers  Passengers
	CabinClass  CabinClass
	SortBy      SortBy
}

// NewSearchQuery validates f. One-way and multi-city queries never carry a
// return date, whatever the form holds.
func NewSearchQuery(f Form) (SearchQuery, error) {
	if f.Origin == nil {
		return SearchQuery{}, ErrMissingOrigin
	}
	if f.Destination == nil {
		return SearchQuery{}, ErrMissingDestination
	}
	if f.Origin.RoutingSkyID() == f.Destination.RoutingSkyID() &&
		f.Origin.RoutingEntityID() == f.Destination.RoutingEntityID() {
		return SearchQuery{}, ErrSameAirport
	}
	if f.Departure.IsZero() {
		return SearchQuery{}, ErrMissingDeparture
	}

	tripType := f.TripType
	if tripType == "" {
		tripType = TripRound
	}
	q := SearchQuery{
		TripType:    tripType,
		Origin:      *f.Origin,
		Destination: *f.Destination,
		Departure:   dateOnly(f.Departure),
		Passengers:  f.Passengers,
		CabinClass:  f.CabinClass,
		SortBy:      f.SortBy,
	}
	if q.Passengers.Adults < 1 {
		q.Passengers.Adults = 1
	}
	if q.Passengers.Children < 0 {
		q.Passengers.Children = 0
	}
	if q.Passengers.Infants < 0 {
		q.Passengers.Infants = 0
	}
	if q.CabinClass == "" {
		q.CabinClass = CabinEconomy
	}
	if q.SortBy == "" {
		q.SortBy = SortBest
	}

	if tripType.NeedsReturn() {
		if f.Return.IsZero() {
			return SearchQuery{}, ErrMissingReturn
		}
		ret := dateOnly(f.Return)
		if ret.Before(q.Departure) {
			return SearchQuery{}, fmt.Errorf("%w: %s < %s", ErrReturnBeforeDepart,
				ret.Format(DateLayout), q.Departure.Format(DateLayout))
		}
		q.Return = &ret
	}
	return q, nil
}

// Defaults carries the market settings that are not part of the form.
type Defaults struct {
	Currency    string
	Market      string
	CountryCode string
}

// Params converts the query into gateway parameters.
func (q SearchQuery) Params(d Defaults) flights.SearchParams {
	p := flights.SearchParams{
		OriginSkyID:         q.Origin.RoutingSkyID(),
		OriginEntityID:      q.Origin.RoutingEntityID(),
		DestinationSkyID:    q.Destination.RoutingSkyID(),
		DestinationEntityID: q.Destination.RoutingEntityID(),
		Date:                q.Departure.Format(DateLayout),
		Adults:              q.Passengers.Adults,
		Children:            q.Passengers.Children,
		Infants:             q.Passengers.Infants,
		CabinClass:          string(q.CabinClass),
		Currency:            d.Currency,
		Market:              d.Market,
		CountryCode:         d.CountryCode,
		SortBy:              string(q.SortBy),
	}
	if q.Return != nil {
		p.ReturnDate = q.Return.Format(DateLayout)
	}
	return p.WithDefaults()
}

// ParseDate parses a YYYY-MM-DD date in local time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
