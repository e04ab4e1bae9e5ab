package flights

import "strings"

// Envelope fields shared by every provider response. Status false with a
// message signals a provider-side failure even on HTTP 200.
type envelope struct {
	Status  bool `json:"status"`
	Message any  `json:"message,omitempty"`
}

func (e envelope) failure() (string, bool) {
	if e.Status {
		return "", false
	}
	switch msg := e.Message.(type) {
	case string:
		if strings.TrimSpace(msg) != "" {
			return msg, true
		}
	case nil:
	default:
		return "provider reported failure", true
	}
	return "", false
}

// AirportsResponse mirrors /searchAirport.
type AirportsResponse struct {
	envelope
	Data []Airport `json:"data"`
}

// Airports returns the airport list, never nil.
func (r AirportsResponse) Airports() []Airport {
	if r.Data == nil {
		return []Airport{}
	}
	return r.Data
}

// NearbyResponse mirrors /getNearByAirports.
type NearbyResponse struct {
	envelope
	Data *struct {
		Current *Airport  `json:"current"`
		Nearby  []Airport `json:"nearby"`
	} `json:"data"`
}

// Airports returns the current airport (when present) followed by nearby ones.
func (r NearbyResponse) Airports() []Airport {
	out := []Airport{}
	if r.Data == nil {
		return out
	}
	if r.Data.Current != nil {
		out = append(out, *r.Data.Current)
	}
	return append(out, r.Data.Nearby...)
}

// FlightsResponse mirrors /searchFlights.
type FlightsResponse struct {
	envelope
	Data *struct {
		Itineraries []Itinerary `json:"itineraries"`
	} `json:"data"`
}

// Itineraries returns the itinerary list, never nil.
func (r FlightsResponse) Itineraries() []Itinerary {
	if r.Data == nil || r.Data.Itineraries == nil {
		return []Itinerary{}
	}
	return r.Data.Itineraries
}

// PriceCalendarResponse mirrors /getPriceCalendar.
type PriceCalendarResponse struct {
	envelope
	Data *struct {
		Flights *struct {
			Days []struct {
				Day   string  `json:"day"`
				Group string  `json:"group"`
				Price float64 `json:"price"`
			} `json:"days"`
		} `json:"flights"`
	} `json:"data"`
}

// Calendar converts the provider's day list, formatting prices in currency.
func (r PriceCalendarResponse) Calendar(currency string) PriceCalendar {
	cal := PriceCalendar{Days: []CalendarDay{}}
	if r.Data == nil || r.Data.Flights == nil {
		return cal
	}
	for _, d := range r.Data.Flights.Days {
		cal.Days = append(cal.Days, CalendarDay{
			Date:  d.Day,
			Group: d.Group,
			Price: Price{Raw: d.Price, Formatted: FormatAmount(currency, d.Price)},
		})
	}
	return cal
}

// FlightDetailsResponse mirrors /getFlightDetails.
type FlightDetailsResponse struct {
	envelope
	Data *FlightDetails `json:"data"`
}

// Details returns the decoded details, zero-valued when absent.
func (r FlightDetailsResponse) Details() FlightDetails {
	if r.Data == nil {
		return FlightDetails{}
	}
	return *r.Data
}
