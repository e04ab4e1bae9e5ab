package flights

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
)

// Defaults applied to SearchParams fields left empty.
const (
	DefaultCabinClass  = "economy"
	DefaultCurrency    = "USD"
	DefaultMarket      = "US"
	DefaultCountryCode = "US"
	DefaultSortBy      = "best"
)

var (
	ErrMissingOrigin      = errors.New("origin sky id and entity id are required")
	ErrMissingDestination = errors.New("destination sky id and entity id are required")
	ErrMissingDate        = errors.New("departure date is required")
	ErrMissingItineraryID = errors.New("itinerary id is required")
)

// SearchParams is the structured query for /searchFlights.
type SearchParams struct {
	OriginSkyID         string
	DestinationSkyID    string
	OriginEntityID      string
	DestinationEntityID string
	Date                string // YYYY-MM-DD
	ReturnDate          string // empty for one-way
	Adults              int
	Children            int
	Infants             int
	CabinClass          string
	Currency            string
	Market              string
	CountryCode         string
	SortBy              string
}

// WithDefaults returns a copy with every unset optional field filled in.
func (p SearchParams) WithDefaults() SearchParams {
	if p.Adults < 1 {
		p.Adults = 1
	}
	if p.Children < 0 {
		p.Children = 0
	}
	if p.Infants < 0 {
		p.Infants = 0
	}
	p.CabinClass = orDefault(p.CabinClass, DefaultCabinClass)
	p.Currency = orDefault(p.Currency, DefaultCurrency)
	p.Market = orDefault(p.Market, DefaultMarket)
	p.CountryCode = orDefault(p.CountryCode, DefaultCountryCode)
	p.SortBy = orDefault(p.SortBy, DefaultSortBy)
	return p
}

// Validate checks the required routing fields.
func (p SearchParams) Validate() error {
	if blank(p.OriginSkyID) || blank(p.OriginEntityID) {
		return ErrMissingOrigin
	}
	if blank(p.DestinationSkyID) || blank(p.DestinationEntityID) {
		return ErrMissingDestination
	}
	if blank(p.Date) {
		return ErrMissingDate
	}
	return nil
}

// Values encodes the params as query parameters. returnDate is only present
// when set.
func (p SearchParams) Values() url.Values {
	p = p.WithDefaults()
	values := url.Values{}
	values.Set("originSkyId", p.OriginSkyID)
	values.Set("destinationSkyId", p.DestinationSkyID)
	values.Set("originEntityId", p.OriginEntityID)
	values.Set("destinationEntityId", p.DestinationEntityID)
	values.Set("date", p.Date)
	if rd := strings.TrimSpace(p.ReturnDate); rd != "" {
		values.Set("returnDate", rd)
	}
	values.Set("adults", strconv.Itoa(p.Adults))
	values.Set("children", strconv.Itoa(p.Children))
	values.Set("infants", strconv.Itoa(p.Infants))
	values.Set("cabinClass", p.CabinClass)
	values.Set("currency", p.Currency)
	values.Set("market", p.Market)
	values.Set("countryCode", p.CountryCode)
	values.Set("sortBy", p.SortBy)
	return values
}

// CalendarParams is the query for /getPriceCalendar.
type CalendarParams struct {
	OriginSkyID         string
	DestinationSkyID    string
	OriginEntityID      string
	DestinationEntityID string
	Date                string
	Currency            string
}

// CalendarFrom derives calendar params from a flight search.
func CalendarFrom(p SearchParams) CalendarParams {
	return CalendarParams{
		OriginSkyID:         p.OriginSkyID,
		DestinationSkyID:    p.DestinationSkyID,
		OriginEntityID:      p.OriginEntityID,
		DestinationEntityID: p.DestinationEntityID,
		Date:                p.Date,
		Currency:            p.Currency,
	}
}

// Validate checks the required routing fields.
func (p CalendarParams) Validate() error {
	if blank(p.OriginSkyID) || blank(p.OriginEntityID) {
		return ErrMissingOrigin
	}
	if blank(p.DestinationSkyID) || blank(p.DestinationEntityID) {
		return ErrMissingDestination
	}
	if blank(p.Date) {
		return ErrMissingDate
	}
	return nil
}

// Values encodes the params as query parameters.
func (p CalendarParams) Values() url.Values {
	values := url.Values{}
	values.Set("originSkyId", p.OriginSkyID)
	values.Set("destinationSkyId", p.DestinationSkyID)
	values.Set("originEntityId", p.OriginEntityID)
	values.Set("destinationEntityId", p.DestinationEntityID)
	values.Set("date", p.Date)
	values.Set("currency", orDefault(p.Currency, DefaultCurrency))
	return values
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
