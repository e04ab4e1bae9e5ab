package search

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/five82/farefinder/internal/flights"
	"github.com/five82/farefinder/internal/state"
)

// MinQueryLength is the shortest airport query sent to the gateway.
const MinQueryLength = 2

// User-facing failure messages, one per operation kind.
const (
	MsgAirportsFailed = "Failed to search airports. Please try again."
	MsgFlightsFailed  = "Failed to search flights. Please try again."
	MsgCalendarFailed = "Failed to fetch price calendar. Please try again."
	MsgNearbyFailed   = "Failed to find nearby airports. Please try again."
	MsgDetailsFailed  = "Failed to load flight details. Please try again."
)

// Gateway is the subset of flights.Gateway the controller calls.
type Gateway interface {
	SearchAirports(ctx context.Context, query string) ([]flights.Airport, error)
	NearbyAirports(ctx context.Context, lat, lng float64) ([]flights.Airport, error)
	SearchFlights(ctx context.Context, params flights.SearchParams) ([]flights.Itinerary, error)
	PriceCalendar(ctx context.Context, params flights.CalendarParams) (flights.PriceCalendar, error)
	FlightDetails(ctx context.Context, itineraryID string) (flights.FlightDetails, error)
}

// Controller runs search workflows against one state.Store. Every
// workflow clears the error and raises Loading, calls the gateway, stores
// the result or a failure message plus mock fallback, and always lowers
// Loading before returning.
//
// Overlapping calls of the same kind are not serialised: the last one to
// finish writes the state.
type Controller struct {
	gateway  Gateway
	store    *state.Store
	logger   *zap.Logger
	debounce *Debouncer
}

// Option customises a Controller.
type Option func(*Controller)

// WithLogger sets the logger for workflow events. Nil keeps the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithDebounce overrides the airport query quiet period.
func WithDebounce(d time.Duration) Option {
	return func(c *Controller) {
		c.debounce = NewDebouncer(d)
	}
}

// NewController binds a gateway to a store. A nil store gets a fresh one.
func NewController(gw Gateway, store *state.Store, opts ...Option) *Controller {
	if store == nil {
		store = &state.Store{}
	}
	c := &Controller{
		gateway:  gw,
		store:    store,
		logger:   zap.NewNop(),
		debounce: NewDebouncer(AirportQueryDelay),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Store returns the state this controller writes.
func (c *Controller) Store() *state.Store {
	return c.store
}

// Snapshot is shorthand for Store().Snapshot().
func (c *Controller) Snapshot() state.Snapshot {
	return c.store.Snapshot()
}

// SearchAirports looks up airports for query. Queries shorter than
// MinQueryLength clear the suggestions without calling the gateway.
func (c *Controller) SearchAirports(ctx context.Context, query string) {
	if utf8.RuneCountInString(query) < MinQueryLength {
		c.store.SetAirports(nil)
		return
	}

	done := c.begin("search airports", zap.String("query", query))
	defer done()

	airports, err := c.gateway.SearchAirports(ctx, query)
	if err != nil {
		c.fail(MsgAirportsFailed, err)
		airports = flights.FilterMockAirports(query)
	}
	c.store.SetAirports(airports)
}

// QueueAirportSearch runs SearchAirports after the debounce period. A newer
// call before the period elapses replaces this one.
func (c *Controller) QueueAirportSearch(ctx context.Context, query string) {
	c.debounce.Trigger(func() {
		c.SearchAirports(ctx, query)
	})
}

// CancelPending drops a queued airport query that has not fired yet.
func (c *Controller) CancelPending() bool {
	return c.debounce.Cancel()
}

// NearbyAirports lists airports close to a coordinate.
func (c *Controller) NearbyAirports(ctx context.Context, lat, lng float64) {
	done := c.begin("nearby airports", zap.Float64("lat", lat), zap.Float64("lng", lng))
	defer done()

	airports, err := c.gateway.NearbyAirports(ctx, lat, lng)
	if err != nil {
		c.fail(MsgNearbyFailed, err)
		airports = flights.NearestMockAirports(lat, lng)
	}
	c.store.SetAirports(airports)
}

// SearchFlights runs a flight search. Previous itineraries are cleared
// before the call.
func (c *Controller) SearchFlights(ctx context.Context, params flights.SearchParams) {
	done := c.begin("search flights",
		zap.String("origin", params.OriginSkyID),
		zap.String("destination", params.DestinationSkyID),
		zap.String("date", params.Date),
	)
	defer done()
	c.store.SetFlights(nil)

	itineraries, err := c.gateway.SearchFlights(ctx, params)
	if err != nil {
		c.fail(MsgFlightsFailed, err)
		itineraries = flights.MockItineraries()
	}
	c.store.SetFlights(itineraries)
}

// FetchPriceCalendar loads per-date prices for a route.
func (c *Controller) FetchPriceCalendar(ctx context.Context, params flights.CalendarParams) {
	done := c.begin("price calendar",
		zap.String("origin", params.OriginSkyID),
		zap.String("destination", params.DestinationSkyID),
	)
	defer done()

	cal, err := c.gateway.PriceCalendar(ctx, params)
	if err != nil {
		c.fail(MsgCalendarFailed, err)
		cal = flights.MockPriceCalendar()
	}
	c.store.SetPriceCalendar(cal)
}

// FetchFlightDetails loads details for one itinerary. On failure the mock
// details are used when the id belongs to the mock dataset.
func (c *Controller) FetchFlightDetails(ctx context.Context, itineraryID string) {
	done := c.begin("flight details", zap.String("itinerary", itineraryID))
	defer done()
	c.store.ClearDetails()

	details, err := c.gateway.FlightDetails(ctx, itineraryID)
	if err != nil {
		c.fail(MsgDetailsFailed, err)
		mock, ok := flights.MockFlightDetails(itineraryID)
		if !ok {
			return
		}
		details = mock
	}
	c.store.SetDetails(details)
}

// ClearResults empties every result and the error. Loading is untouched.
func (c *Controller) ClearResults() {
	c.store.ClearResults()
}

// ClearError dismisses the current error.
func (c *Controller) ClearError() {
	c.store.ClearError()
}

// begin starts a workflow and returns the cleanup that releases Loading.
func (c *Controller) begin(op string, fields ...zap.Field) func() {
	id := uuid.NewString()
	logger := c.logger.With(zap.String("op", op), zap.String("request_id", id))
	logger.Debug("search started", fields...)

	c.store.Begin()
	start := time.Now()
	return func() {
		c.store.Finish()
		logger.Debug("search finished", zap.Duration("elapsed", time.Since(start)))
	}
}

func (c *Controller) fail(msg string, err error) {
	c.logger.Warn("search failed, using mock data", zap.String("message", msg), zap.Error(err))
	c.store.SetError(msg)
}
