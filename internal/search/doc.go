// Package search is the search state controller.
//
// A Controller owns one state.Store and runs the asynchronous workflows
// against a Gateway: airport lookup, nearby airports, flight search, price
// calendar and flight details. Each workflow follows the same steps:
//
//  1. Validate input. An airport query shorter than MinQueryLength clears
//     the suggestions and returns without a gateway call.
//  2. Clear the error and raise Loading (state.Store.Begin).
//  3. Call the gateway. On success store the result. On failure store the
//     fixed Msg*Failed message and fill the result from the mock dataset.
//  4. Lower Loading in a deferred call, so it is released even on panic.
//
// Airport typing goes through QueueAirportSearch, which debounces by
// AirportQueryDelay. In-flight requests are never cancelled; the last
// response to arrive wins.
//
// The UI gives each autocomplete field its own Controller and Store, and a
// third pair holds the flight results.
//
// NewSearchQuery turns the raw Form into a validated SearchQuery, and
// SearchQuery.Params produces the gateway's flights.SearchParams.
package search
