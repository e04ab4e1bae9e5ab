package flights

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ErrItineraryNotFound is returned by the mock path for unknown itinerary ids.
var ErrItineraryNotFound = errors.New("itinerary not found")

// Gateway chooses, per call, between the live Provider and the mock dataset.
// It is stateless between calls; the only side effect is the network request.
type Gateway struct {
	provider  Provider
	creds     CredentialFunc
	logger    *zap.Logger
	currency  string
	mockDelay time.Duration
}

// GatewayOption customises a Gateway.
type GatewayOption func(*Gateway)

// WithLogger sets the logger used for transport failures.
func WithLogger(l *zap.Logger) GatewayOption {
	return func(g *Gateway) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithMockDelay simulates latency on the mock flight-search path.
func WithMockDelay(d time.Duration) GatewayOption {
	return func(g *Gateway) {
		if d >= 0 {
			g.mockDelay = d
		}
	}
}

// WithCurrency sets the currency used to format live calendar prices.
func WithCurrency(currency string) GatewayOption {
	return func(g *Gateway) {
		g.currency = orDefault(currency, DefaultCurrency)
	}
}

// NewGateway wires a provider and a credential source.
func NewGateway(provider Provider, creds CredentialFunc, opts ...GatewayOption) *Gateway {
	if creds == nil {
		creds = StaticCredentials(Credentials{})
	}
	g := &Gateway{
		provider: provider,
		creds:    creds,
		logger:   zap.NewNop(),
		currency: DefaultCurrency,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Live reports whether the next call will hit the live API. It is evaluated
// fresh each time.
func (g *Gateway) Live() bool {
	return g.provider != nil && g.creds().Configured()
}

// SearchAirports returns airports matching query.
func (g *Gateway) SearchAirports(ctx context.Context, query string) ([]Airport, error) {
	if !g.Live() {
		return FilterMockAirports(query), nil
	}
	resp, err := g.provider.SearchAirport(ctx, query)
	if err != nil {
		return nil, g.fail("search airports", err, zap.String("query", query))
	}
	return resp.Airports(), nil
}

// NearbyAirports returns airports close to (lat, lng).
func (g *Gateway) NearbyAirports(ctx context.Context, lat, lng float64) ([]Airport, error) {
	if !g.Live() {
		return NearestMockAirports(lat, lng), nil
	}
	resp, err := g.provider.NearbyAirports(ctx, lat, lng)
	if err != nil {
		return nil, g.fail("nearby airports", err, zap.Float64("lat", lat), zap.Float64("lng", lng))
	}
	return resp.Airports(), nil
}

// SearchFlights returns itineraries for params.
func (g *Gateway) SearchFlights(ctx context.Context, params SearchParams) ([]Itinerary, error) {
	if !g.Live() {
		if err := sleep(ctx, g.mockDelay); err != nil {
			return nil, err
		}
		return MockItineraries(), nil
	}
	resp, err := g.provider.SearchFlights(ctx, params.WithDefaults())
	if err != nil {
		return nil, g.fail("search flights", err,
			zap.String("origin", params.OriginSkyID),
			zap.String("destination", params.DestinationSkyID),
			zap.String("date", params.Date))
	}
	return resp.Itineraries(), nil
}

// PriceCalendar returns per-day prices for a route.
func (g *Gateway) PriceCalendar(ctx context.Context, params CalendarParams) (PriceCalendar, error) {
	if !g.Live() {
		return MockPriceCalendar(), nil
	}
	resp, err := g.provider.PriceCalendar(ctx, params)
	if err != nil {
		return PriceCalendar{}, g.fail("price calendar", err,
			zap.String("origin", params.OriginSkyID),
			zap.String("destination", params.DestinationSkyID))
	}
	return resp.Calendar(orDefault(params.Currency, g.currency)), nil
}

// FlightDetails returns the expanded itinerary for id.
func (g *Gateway) FlightDetails(ctx context.Context, itineraryID string) (FlightDetails, error) {
	if !g.Live() {
		details, ok := MockFlightDetails(itineraryID)
		if !ok {
			return FlightDetails{}, fmt.Errorf("%w: %s", ErrItineraryNotFound, itineraryID)
		}
		return details, nil
	}
	resp, err := g.provider.FlightDetails(ctx, itineraryID)
	if err != nil {
		return FlightDetails{}, g.fail("flight details", err, zap.String("itinerary_id", itineraryID))
	}
	return resp.Details(), nil
}

// fail logs a live-path failure and hands the error back to the caller.
func (g *Gateway) fail(op string, err error, fields ...zap.Field) error {
	fields = append(fields, zap.String("op", op), zap.Error(err))
	g.logger.Error("flight api request failed", fields...)
	return fmt.Errorf("%s: %w", op, err)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
