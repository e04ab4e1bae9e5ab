package flights

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/samber/lo"
)

// legTimestampLayout is the zone-less local time the provider uses for legs.
const legTimestampLayout = "2006-01-02T15:04:05"

// Airport is a place suggestion returned by the airport lookup endpoints.
type Airport struct {
	SkyID        string       `json:"skyId"`
	EntityID     string       `json:"entityId"`
	Presentation Presentation `json:"presentation"`
	Navigation   Navigation   `json:"navigation"`
	Coordinates  *Coordinates `json:"coordinates,omitempty"`
}

// Presentation carries the display strings for an airport.
type Presentation struct {
	Title           string `json:"title"`
	SuggestionTitle string `json:"suggestionTitle"`
	Subtitle        string `json:"subtitle"`
}

// Navigation holds the routing parameters used verbatim by flight searches.
type Navigation struct {
	EntityID             string       `json:"entityId"`
	EntityType           string       `json:"entityType"`
	LocalizedName        string       `json:"localizedName"`
	RelevantFlightParams FlightParams `json:"relevantFlightParams"`
}

// FlightParams is the code + entity id pair passed to searchFlights.
type FlightParams struct {
	SkyID           string `json:"skyId"`
	EntityID        string `json:"entityId"`
	FlightPlaceType string `json:"flightPlaceType"`
	LocalizedName   string `json:"localizedName"`
}

// Coordinates is a latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// RoutingSkyID returns the sky id for flight searches, falling back to the
// top-level code when the navigation block is absent.
func (a Airport) RoutingSkyID() string {
	if id := strings.TrimSpace(a.Navigation.RelevantFlightParams.SkyID); id != "" {
		return id
	}
	return a.SkyID
}

// RoutingEntityID returns the entity id for flight searches, with the same
// fallback as RoutingSkyID.
func (a Airport) RoutingEntityID() string {
	if id := strings.TrimSpace(a.Navigation.RelevantFlightParams.EntityID); id != "" {
		return id
	}
	return a.EntityID
}

// Label returns the best available display string.
func (a Airport) Label() string {
	if a.Presentation.SuggestionTitle != "" {
		return a.Presentation.SuggestionTitle
	}
	if a.Presentation.Title != "" {
		return a.Presentation.Title
	}
	return a.SkyID
}

// Matches reports whether query is a case-insensitive substring of the
// airport's title or suggestion title.
func (a Airport) Matches(query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(a.Presentation.Title), q) ||
		strings.Contains(strings.ToLower(a.Presentation.SuggestionTitle), q)
}

// Price is an amount plus the provider's pre-formatted display string.
type Price struct {
	Raw       float64 `json:"raw"`
	Formatted string  `json:"formatted"`
}

// Display returns the formatted price, deriving one when the provider omitted it.
func (p Price) Display(currency string) string {
	if strings.TrimSpace(p.Formatted) != "" {
		return p.Formatted
	}
	return FormatAmount(currency, p.Raw)
}

// Itinerary is a priced combination of legs.
type Itinerary struct {
	ID    string `json:"id"`
	Price Price  `json:"price"`
	Legs  []Leg  `json:"legs"`
}

// TotalDuration sums the leg durations.
func (it Itinerary) TotalDuration() time.Duration {
	total := 0
	for _, leg := range it.Legs {
		total += leg.DurationInMinutes
	}
	return time.Duration(total) * time.Minute
}

// Place is a leg endpoint.
type Place struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayCode string `json:"displayCode"`
	City        string `json:"city,omitempty"`
}

// Carrier is an operating or marketing airline.
type Carrier struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	LogoURL string `json:"logoUrl"`
}

// Carriers groups the airlines on a leg.
type Carriers struct {
	Marketing []Carrier `json:"marketing"`
}

// Segment is a single flight within a leg.
type Segment struct {
	Origin           SegmentPlace `json:"origin"`
	Destination      SegmentPlace `json:"destination"`
	Departure        string       `json:"departure"`
	Arrival          string       `json:"arrival"`
	DurationInMin    int          `json:"durationInMinutes"`
	FlightNumber     string       `json:"flightNumber"`
	MarketingCarrier Carrier      `json:"marketingCarrier"`
}

// SegmentPlace is a segment endpoint.
type SegmentPlace struct {
	FlightPlaceID string `json:"flightPlaceId"`
	DisplayCode   string `json:"displayCode"`
	Name          string `json:"name"`
}

// Leg is one directional journey of an itinerary.
type Leg struct {
	ID                string    `json:"id,omitempty"`
	Origin            Place     `json:"origin"`
	Destination       Place     `json:"destination"`
	Departure         string    `json:"departure"`
	Arrival           string    `json:"arrival"`
	DurationInMinutes int       `json:"durationInMinutes"`
	StopCount         int       `json:"stopCount"`
	Carriers          Carriers  `json:"carriers"`
	Segments          []Segment `json:"segments"`
}

// CarrierNames returns the marketing carrier names in order.
func (l Leg) CarrierNames() []string {
	return lo.FilterMap(l.Carriers.Marketing, func(c Carrier, _ int) (string, bool) {
		name := strings.TrimSpace(c.Name)
		return name, name != ""
	})
}

// DepartureTime parses the departure timestamp; zero when unparseable.
func (l Leg) DepartureTime() time.Time {
	return parseTime(l.Departure)
}

// ArrivalTime parses the arrival timestamp; zero when unparseable.
func (l Leg) ArrivalTime() time.Time {
	return parseTime(l.Arrival)
}

// Duration returns the leg duration.
func (l Leg) Duration() time.Duration {
	return time.Duration(l.DurationInMinutes) * time.Minute
}

// CalendarDay is one entry of a price calendar.
type CalendarDay struct {
	Date  string `json:"date"`
	Group string `json:"group,omitempty"`
	Price Price  `json:"price"`
}

// PriceCalendar is a list of per-date prices.
type PriceCalendar struct {
	Days []CalendarDay `json:"days"`
}

// Cheapest returns the lowest priced day and false when the calendar is empty.
func (c PriceCalendar) Cheapest() (CalendarDay, bool) {
	if len(c.Days) == 0 {
		return CalendarDay{}, false
	}
	return lo.MinBy(c.Days, func(a, b CalendarDay) bool {
		return a.Price.Raw < b.Price.Raw
	}), true
}

// PricingOption is a bookable offer returned by getFlightDetails.
type PricingOption struct {
	TotalPrice float64 `json:"totalPrice"`
	Agents     []Agent `json:"agents"`
}

// Agent is a seller of a pricing option.
type Agent struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	URL   string  `json:"url,omitempty"`
}

// FlightDetails is the expanded view of a single itinerary.
type FlightDetails struct {
	Itinerary      Itinerary       `json:"itinerary"`
	PricingOptions []PricingOption `json:"pricingOptions"`
}

// FormatAmount renders amount with thousands separators, prefixed by currency.
func FormatAmount(currency string, amount float64) string {
	rounded := math.Round(amount)
	negative := rounded < 0
	if negative {
		rounded = -rounded
	}
	digits := addThousandsSeparator(fmt.Sprintf("%.0f", rounded), ',')
	out := digits
	if c := strings.TrimSpace(currency); c != "" {
		out = c + " " + digits
	}
	if negative {
		out = "-" + out
	}
	return out
}

func addThousandsSeparator(s string, sep byte) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	var b strings.Builder
	b.Grow(n + (n-1)/3)
	lead := n % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(s[:lead])
	for i := lead; i < n; i += 3 {
		b.WriteByte(sep)
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	if t, err := time.Parse(legTimestampLayout, value); err == nil {
		return t
	}
	return time.Time{}
}
