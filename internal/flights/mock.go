package flights

import (
	"math"
	"sort"

	"github.com/samber/lo"
)

// Mock dataset served when no credential is configured, and used by callers
// as a fallback when the live API fails. Every accessor returns a fresh copy.

func mockAirport(skyID, entityID, title, subtitle string, lat, lng float64) Airport {
	return Airport{
		SkyID:    skyID,
		EntityID: entityID,
		Presentation: Presentation{
			Title:           title,
			SuggestionTitle: title + " (" + skyID + ")",
			Subtitle:        subtitle,
		},
		Navigation: Navigation{
			EntityID:      entityID,
			EntityType:    "AIRPORT",
			LocalizedName: title,
			RelevantFlightParams: FlightParams{
				SkyID:           skyID,
				EntityID:        entityID,
				FlightPlaceType: "AIRPORT",
				LocalizedName:   title,
			},
		},
		Coordinates: &Coordinates{Lat: lat, Lng: lng},
	}
}

// MockAirports returns the full mock airport list.
func MockAirports() []Airport {
	return []Airport{
		mockAirport("ILR", "12345", "Ilorin", "Nigeria", 8.4402, 4.4939),
		mockAirport("LOS", "67890", "Lagos", "Nigeria", 6.5774, 3.3212),
		mockAirport("ABV", "11111", "Abuja", "Nigeria", 9.0068, 7.2632),
	}
}

// FilterMockAirports returns the mock airports whose title or suggestion
// title contains query, case-insensitively.
func FilterMockAirports(query string) []Airport {
	return lo.Filter(MockAirports(), func(a Airport, _ int) bool {
		return a.Matches(query)
	})
}

// NearestMockAirports returns the mock airports ordered by Euclidean distance
// in degrees from (lat, lng).
func NearestMockAirports(lat, lng float64) []Airport {
	airports := MockAirports()
	distance := func(a Airport) float64 {
		return math.Hypot(a.Coordinates.Lat-lat, a.Coordinates.Lng-lng)
	}
	sort.SliceStable(airports, func(i, j int) bool {
		return distance(airports[i]) < distance(airports[j])
	})
	return airports
}

func mockLeg(from, fromName, to, toName, dep, arr string, minutes int, carrierID, carrierName, flightNumber string) Leg {
	return Leg{
		Origin:            Place{ID: from, Name: fromName, DisplayCode: from},
		Destination:       Place{ID: to, Name: toName, DisplayCode: to},
		Departure:         dep,
		Arrival:           arr,
		DurationInMinutes: minutes,
		Carriers: Carriers{Marketing: []Carrier{
			{ID: carrierID, Name: carrierName},
		}},
		Segments: []Segment{{
			Origin:           SegmentPlace{FlightPlaceID: from, DisplayCode: from, Name: fromName},
			Destination:      SegmentPlace{FlightPlaceID: to, DisplayCode: to, Name: toName},
			Departure:        dep,
			Arrival:          arr,
			DurationInMin:    minutes,
			FlightNumber:     flightNumber,
			MarketingCarrier: Carrier{ID: carrierID, Name: carrierName},
		}},
	}
}

// MockItineraries returns the fixed two-itinerary result list.
func MockItineraries() []Itinerary {
	return []Itinerary{
		{
			ID:    "mock-flight-1",
			Price: Price{Raw: 45000, Formatted: "₦45,000"},
			Legs: []Leg{mockLeg("ILR", "Ilorin", "LOS", "Lagos",
				"2025-07-15T08:00:00", "2025-07-15T09:30:00", 90, "AA", "Arik Air", "AA123")},
		},
		{
			ID:    "mock-flight-2",
			Price: Price{Raw: 38000, Formatted: "₦38,000"},
			Legs: []Leg{mockLeg("ILR", "Ilorin", "ABV", "Abuja",
				"2025-07-15T10:00:00", "2025-07-15T11:15:00", 75, "DA", "Dana Air", "DA456")},
		},
	}
}

// MockItinerary looks up a mock itinerary by id.
func MockItinerary(id string) (Itinerary, bool) {
	return lo.Find(MockItineraries(), func(it Itinerary) bool {
		return it.ID == id
	})
}

// MockFlightDetails returns details for a mock itinerary.
func MockFlightDetails(id string) (FlightDetails, bool) {
	it, ok := MockItinerary(id)
	if !ok {
		return FlightDetails{}, false
	}
	return FlightDetails{
		Itinerary: it,
		PricingOptions: []PricingOption{{
			TotalPrice: it.Price.Raw,
			Agents: []Agent{{
				Name:  it.Legs[0].CarrierNames()[0],
				Price: it.Price.Raw,
			}},
		}},
	}, true
}

// MockPriceCalendar returns the fixed five-day calendar.
func MockPriceCalendar() PriceCalendar {
	day := func(date string, raw float64, formatted string) CalendarDay {
		return CalendarDay{Date: date, Price: Price{Raw: raw, Formatted: formatted}}
	}
	return PriceCalendar{Days: []CalendarDay{
		day("2025-07-15", 45000, "₦45,000"),
		day("2025-07-16", 42000, "₦42,000"),
		day("2025-07-17", 48000, "₦48,000"),
		day("2025-07-18", 39000, "₦39,000"),
		day("2025-07-19", 44000, "₦44,000"),
	}}
}
