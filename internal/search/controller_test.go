package search

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/five82/farefinder/internal/flights"
	"github.com/five82/farefinder/internal/state"
)

var errTransport = errors.New("dial tcp: connection refused")

// fakeGateway records calls and can fail or panic on demand.
type fakeGateway struct {
	mu       sync.Mutex
	err      error
	panicMsg string
	queries  []string
	calls    int

	airports    []flights.Airport
	itineraries []flights.Itinerary
	calendar    flights.PriceCalendar
	details     flights.FlightDetails

	// observed is the store snapshot at the moment the gateway was called.
	observed state.Snapshot
	store    *state.Store
}

func (f *fakeGateway) record(query string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if query != "" {
		f.queries = append(f.queries, query)
	}
	if f.store != nil {
		f.observed = f.store.Snapshot()
	}
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	return f.err
}

func (f *fakeGateway) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeGateway) SearchAirports(ctx context.Context, query string) ([]flights.Airport, error) {
	if err := f.record(query); err != nil {
		return nil, err
	}
	return f.airports, nil
}

func (f *fakeGateway) NearbyAirports(ctx context.Context, lat, lng float64) ([]flights.Airport, error) {
	if err := f.record(""); err != nil {
		return nil, err
	}
	return f.airports, nil
}

func (f *fakeGateway) SearchFlights(ctx context.Context, params flights.SearchParams) ([]flights.Itinerary, error) {
	if err := f.record(""); err != nil {
		return nil, err
	}
	return f.itineraries, nil
}

func (f *fakeGateway) PriceCalendar(ctx context.Context, params flights.CalendarParams) (flights.PriceCalendar, error) {
	if err := f.record(""); err != nil {
		return flights.PriceCalendar{}, err
	}
	return f.calendar, nil
}

func (f *fakeGateway) FlightDetails(ctx context.Context, itineraryID string) (flights.FlightDetails, error) {
	if err := f.record(itineraryID); err != nil {
		return flights.FlightDetails{}, err
	}
	return f.details, nil
}

func mockGateway() *flights.Gateway {
	return flights.NewGateway(nil, flights.StaticCredentials(flights.Credentials{Key: flights.PlaceholderKey}))
}

func validParams() flights.SearchParams {
	return flights.SearchParams{
		OriginSkyID: "ILR", OriginEntityID: "12345",
		DestinationSkyID: "LOS", DestinationEntityID: "67890",
		Date: "2025-07-15",
	}
}

func titles(airports []flights.Airport) []string {
	return lo.Map(airports, func(a flights.Airport, _ int) string { return a.Presentation.SuggestionTitle })
}

func TestSearchAirports_ShortQuerySkipsGateway(t *testing.T) {
	for _, query := range []string{"", "l", "é"} {
		gw := &fakeGateway{}
		c := NewController(gw, nil)
		c.Store().SetAirports(flights.MockAirports())

		c.SearchAirports(context.Background(), query)

		require.Zero(t, gw.callCount(), "query %q", query)
		snap := c.Snapshot()
		require.Empty(t, snap.Airports)
		require.False(t, snap.Loading)
	}
}

func TestSearchAirports_MockFilterWithoutCredential(t *testing.T) {
	cases := map[string][]string{
		"lag":    {"Lagos (LOS)"},
		"NIG":    {},
		"ilorin": {"Ilorin (ILR)"},
		"(abv)":  {"Abuja (ABV)"},
		"xyz":    {},
	}
	for query, want := range cases {
		c := NewController(mockGateway(), nil)
		c.SearchAirports(context.Background(), query)

		snap := c.Snapshot()
		require.Equal(t, want, titles(snap.Airports), "query %q", query)
		require.False(t, snap.Loading)
		require.False(t, snap.HasError())
	}
}

func TestSearchAirports_LagScenario(t *testing.T) {
	c := NewController(mockGateway(), nil)
	c.SearchAirports(context.Background(), "lag")

	got := titles(c.Snapshot().Airports)
	require.Contains(t, got, "Lagos (LOS)")
	require.NotContains(t, got, "Abuja (ABV)")
}

func TestSearchAirports_FailureFallsBackToFilteredMock(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	gw := &fakeGateway{err: errTransport}
	c := NewController(gw, nil, WithLogger(zap.New(core)))

	c.SearchAirports(context.Background(), "lag")

	snap := c.Snapshot()
	require.Equal(t, MsgAirportsFailed, snap.Error)
	require.Equal(t, []string{"Lagos (LOS)"}, titles(snap.Airports))
	require.False(t, snap.Loading)
	require.Equal(t, 1, logs.FilterMessage("search failed, using mock data").Len())
}

func TestSearchFlights_MockScenario(t *testing.T) {
	c := NewController(mockGateway(), nil)
	c.SearchFlights(context.Background(), validParams())

	snap := c.Snapshot()
	require.Equal(t, flights.MockItineraries(), snap.Flights)
	require.False(t, snap.Loading)
	require.False(t, snap.HasError())
}

func TestSearchFlights_FailurePopulatesMock(t *testing.T) {
	gw := &fakeGateway{err: errTransport}
	c := NewController(gw, nil)

	c.SearchFlights(context.Background(), validParams())

	snap := c.Snapshot()
	require.Equal(t, MsgFlightsFailed, snap.Error)
	require.Equal(t, flights.MockItineraries(), snap.Flights)
	require.False(t, snap.Loading)
}

func TestSearchFlights_ClearsPreviousResultsAndErrorBeforeCall(t *testing.T) {
	store := &state.Store{}
	store.SetFlights(flights.MockItineraries())
	store.SetError("old failure")
	gw := &fakeGateway{store: store, itineraries: []flights.Itinerary{{ID: "live-1"}}}
	c := NewController(gw, store)

	c.SearchFlights(context.Background(), validParams())

	require.True(t, gw.observed.Loading)
	require.False(t, gw.observed.HasError())
	require.Empty(t, gw.observed.Flights)

	snap := c.Snapshot()
	require.Len(t, snap.Flights, 1)
	require.Equal(t, "live-1", snap.Flights[0].ID)
}

func TestFetchPriceCalendar(t *testing.T) {
	c := NewController(mockGateway(), nil)
	c.FetchPriceCalendar(context.Background(), flights.CalendarFrom(validParams()))

	snap := c.Snapshot()
	require.NotNil(t, snap.PriceCalendar)
	require.Len(t, snap.PriceCalendar.Days, 5)
	require.False(t, snap.Loading)

	failing := NewController(&fakeGateway{err: errTransport}, nil)
	failing.FetchPriceCalendar(context.Background(), flights.CalendarParams{})

	snap = failing.Snapshot()
	require.Equal(t, MsgCalendarFailed, snap.Error)
	require.Equal(t, flights.MockPriceCalendar(), *snap.PriceCalendar)
	require.False(t, snap.Loading)
}

func TestNearbyAirports(t *testing.T) {
	gw := &fakeGateway{airports: []flights.Airport{{SkyID: "LIVE"}}}
	c := NewController(gw, nil)
	c.NearbyAirports(context.Background(), 6.5, 3.3)
	require.Equal(t, "LIVE", c.Snapshot().Airports[0].SkyID)

	failing := NewController(&fakeGateway{err: errTransport}, nil)
	failing.NearbyAirports(context.Background(), 6.5, 3.3)

	snap := failing.Snapshot()
	require.Equal(t, MsgNearbyFailed, snap.Error)
	require.Equal(t, "LOS", snap.Airports[0].SkyID)
	require.False(t, snap.Loading)
}

func TestFetchFlightDetails(t *testing.T) {
	c := NewController(mockGateway(), nil)
	c.FetchFlightDetails(context.Background(), "mock-flight-1")
	snap := c.Snapshot()
	require.NotNil(t, snap.Details)
	require.Equal(t, "mock-flight-1", snap.Details.Itinerary.ID)

	failing := NewController(&fakeGateway{err: errTransport}, nil)
	failing.FetchFlightDetails(context.Background(), "mock-flight-2")
	snap = failing.Snapshot()
	require.Equal(t, MsgDetailsFailed, snap.Error)
	require.Equal(t, "mock-flight-2", snap.Details.Itinerary.ID)

	unknown := NewController(&fakeGateway{err: errTransport}, nil)
	unknown.FetchFlightDetails(context.Background(), "live-123")
	snap = unknown.Snapshot()
	require.Equal(t, MsgDetailsFailed, snap.Error)
	require.Nil(t, snap.Details)
	require.False(t, snap.Loading)
}

func TestFetchFlightDetails_FailureDropsPreviousDetails(t *testing.T) {
	gw := &fakeGateway{details: flights.FlightDetails{Itinerary: flights.Itinerary{ID: "live-A"}}}
	c := NewController(gw, nil)

	c.FetchFlightDetails(context.Background(), "live-A")
	require.NotNil(t, c.Snapshot().Details)

	gw.err = errTransport
	c.FetchFlightDetails(context.Background(), "live-B")
	snap := c.Snapshot()
	require.Equal(t, MsgDetailsFailed, snap.Error)
	require.Nil(t, snap.Details)
	require.False(t, snap.Loading)
}

func TestLoadingReleasedWhenGatewayPanics(t *testing.T) {
	c := NewController(&fakeGateway{panicMsg: "boom"}, nil)

	require.Panics(t, func() {
		c.SearchFlights(context.Background(), validParams())
	})
	require.False(t, c.Snapshot().Loading)
}

func TestClearResultsAndClearError(t *testing.T) {
	store := &state.Store{}
	c := NewController(mockGateway(), store)
	c.SearchFlights(context.Background(), validParams())
	c.FetchPriceCalendar(context.Background(), flights.CalendarParams{})
	c.SearchAirports(context.Background(), "lagos")
	store.Begin()
	store.SetError("x")

	c.ClearError()
	snap := c.Snapshot()
	require.False(t, snap.HasError())
	require.NotEmpty(t, snap.Flights)

	store.SetError("x")
	c.ClearResults()
	snap = c.Snapshot()
	require.Empty(t, snap.Airports)
	require.Empty(t, snap.Flights)
	require.Nil(t, snap.PriceCalendar)
	require.False(t, snap.HasError())
	require.True(t, snap.Loading, "ClearResults must leave loading untouched")
}

func TestQueueAirportSearch_OnlyLastQueryFires(t *testing.T) {
	gw := &fakeGateway{}
	c := NewController(gw, nil, WithDebounce(20*time.Millisecond))

	for _, q := range []string{"la", "lag", "lago"} {
		c.QueueAirportSearch(context.Background(), q)
	}

	require.Eventually(t, func() bool { return gw.callCount() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)

	gw.mu.Lock()
	defer gw.mu.Unlock()
	require.Equal(t, []string{"lago"}, gw.queries)
}

func TestCancelPending(t *testing.T) {
	gw := &fakeGateway{}
	c := NewController(gw, nil, WithDebounce(30*time.Millisecond))

	c.QueueAirportSearch(context.Background(), "lagos")
	require.True(t, c.CancelPending())
	require.False(t, c.CancelPending())

	time.Sleep(60 * time.Millisecond)
	require.Zero(t, gw.callCount())
}

func TestControllerLogsRequestIDs(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	c := NewController(mockGateway(), nil, WithLogger(zap.New(core)))

	c.SearchAirports(context.Background(), "lagos")

	started := logs.FilterMessage("search started").All()
	finished := logs.FilterMessage("search finished").All()
	require.Len(t, started, 1)
	require.Len(t, finished, 1)
	id := started[0].ContextMap()["request_id"]
	require.NotEmpty(t, id)
	require.Equal(t, id, finished[0].ContextMap()["request_id"])
	require.Equal(t, "search airports", started[0].ContextMap()["op"])
}
