// Package flights is the search gateway for the Sky Scrapper flight API.
//
// # Overview
//
// The package has three layers:
//
//   - client.go: HTTP client for the five /api/v1/flights endpoints
//   - mock.go: the fixed dataset used when no credential is configured
//   - gateway.go: the facade that picks live or mock per call
//
// types.go and envelope.go describe the wire schema. Nested response fields
// that the provider may omit are modelled as pointers or nil slices, and each
// envelope exposes accessors (Airports, Itineraries, Calendar, Details) that
// turn absent data into empty values, so callers never nil-check deep paths.
//
// # Live or Mock
//
// Gateway.Live is evaluated on every call: a provider must be wired and the
// credential function must return a non-placeholder key. Either way the
// output types are identical.
//
// # Errors
//
// On the live path the gateway logs a failure and returns it wrapped with the
// operation name. It never substitutes mock data itself; that fallback is the
// caller's decision (see package search).
//
// Client errors:
//   - "rate limit: ..." when the limiter wait is cancelled
//   - "execute request: ..." for transport failures
//   - "api <path> returned status <n>" wrapping ErrStatus
//   - "decode response: ..." for malformed JSON
//   - ErrUpstream when the provider answers status=false with a message
//
// # Request Headers
//
// Every request carries X-RapidAPI-Key, X-RapidAPI-Host, Accept and a
// farefinder User-Agent. Credentials are read per request.
package flights
