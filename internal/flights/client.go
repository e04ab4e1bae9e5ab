package flights

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Provider is the live API surface. *Client implements it; tests substitute
// their own.
type Provider interface {
	SearchAirport(ctx context.Context, query string) (AirportsResponse, error)
	NearbyAirports(ctx context.Context, lat, lng float64) (NearbyResponse, error)
	SearchFlights(ctx context.Context, params SearchParams) (FlightsResponse, error)
	PriceCalendar(ctx context.Context, params CalendarParams) (PriceCalendarResponse, error)
	FlightDetails(ctx context.Context, itineraryID string) (FlightDetailsResponse, error)
}

// Ensure Client implements Provider at compile time.
var _ Provider = (*Client)(nil)

// ErrStatus is wrapped by errors for non-2xx responses.
var ErrStatus = errors.New("unexpected status")

// ErrUpstream is wrapped when the provider answers 200 with status=false.
var ErrUpstream = errors.New("provider reported failure")

// HTTPClient is the subset of *http.Client the Client needs.
type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// Client talks to the Sky Scrapper flight API.
type Client struct {
	baseURL   *url.URL
	http      HTTPClient
	creds     CredentialFunc
	limiter   *rate.Limiter
	userAgent string
}

// Option customises a Client.
type Option func(*Client)

const (
	defaultBaseURL   = "https://sky-scrapper.p.rapidapi.com"
	defaultUserAgent = "farefinder/0.1"
	apiPrefix        = "/api/v1/flights"
)

// WithHTTPClient replaces the transport.
func WithHTTPClient(h HTTPClient) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithRateLimit throttles outgoing requests. Non-positive rps disables throttling.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithTimeout sets a per-request timeout on the default transport. Zero keeps
// the http.Client default of no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if hc, ok := c.http.(*http.Client); ok && d > 0 {
			hc.Timeout = d
		}
	}
}

// NewClient builds a Client for baseURL. creds is consulted on every request.
func NewClient(baseURL string, creds CredentialFunc, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if creds == nil {
		creds = func() Credentials { return Credentials{} }
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{},
		creds:     creds,
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// SearchAirport looks up airports and cities matching query.
func (c *Client) SearchAirport(ctx context.Context, query string) (AirportsResponse, error) {
	values := url.Values{}
	values.Set("query", query)
	var payload AirportsResponse
	if err := c.get(ctx, "searchAirport", values, &payload); err != nil {
		return AirportsResponse{}, err
	}
	return payload, checkEnvelope(payload.envelope)
}

// NearbyAirports lists airports around a coordinate.
func (c *Client) NearbyAirports(ctx context.Context, lat, lng float64) (NearbyResponse, error) {
	values := url.Values{}
	values.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	values.Set("lng", strconv.FormatFloat(lng, 'f', -1, 64))
	var payload NearbyResponse
	if err := c.get(ctx, "getNearByAirports", values, &payload); err != nil {
		return NearbyResponse{}, err
	}
	return payload, checkEnvelope(payload.envelope)
}

// SearchFlights runs an itinerary search.
func (c *Client) SearchFlights(ctx context.Context, params SearchParams) (FlightsResponse, error) {
	if err := params.Validate(); err != nil {
		return FlightsResponse{}, err
	}
	var payload FlightsResponse
	if err := c.get(ctx, "searchFlights", params.Values(), &payload); err != nil {
		return FlightsResponse{}, err
	}
	return payload, checkEnvelope(payload.envelope)
}

// PriceCalendar fetches per-day prices for a route.
func (c *Client) PriceCalendar(ctx context.Context, params CalendarParams) (PriceCalendarResponse, error) {
	if err := params.Validate(); err != nil {
		return PriceCalendarResponse{}, err
	}
	var payload PriceCalendarResponse
	if err := c.get(ctx, "getPriceCalendar", params.Values(), &payload); err != nil {
		return PriceCalendarResponse{}, err
	}
	return payload, checkEnvelope(payload.envelope)
}

// FlightDetails fetches a single itinerary.
func (c *Client) FlightDetails(ctx context.Context, itineraryID string) (FlightDetailsResponse, error) {
	if blank(itineraryID) {
		return FlightDetailsResponse{}, ErrMissingItineraryID
	}
	values := url.Values{}
	values.Set("itineraryId", itineraryID)
	var payload FlightDetailsResponse
	if err := c.get(ctx, "getFlightDetails", values, &payload); err != nil {
		return FlightDetailsResponse{}, err
	}
	return payload, checkEnvelope(payload.envelope)
}

func (c *Client) get(ctx context.Context, endpoint string, values url.Values, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	rel := &url.URL{Path: apiPrefix + "/" + endpoint, RawQuery: values.Encode()}
	return c.doURL(ctx, http.MethodGet, rel, dest)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, dest any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit: %w", err)
		}
	}

	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	creds := c.creds()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-RapidAPI-Key", creds.Key)
	req.Header.Set("X-RapidAPI-Host", creds.Host)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("api %s returned status %d: %w", rel.Path, resp.StatusCode, ErrStatus)
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func checkEnvelope(e envelope) error {
	if msg, failed := e.failure(); failed {
		return fmt.Errorf("%w: %s", ErrUpstream, msg)
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
