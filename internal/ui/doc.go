// Package ui provides the terminal user interface for farefinder.
//
// The UI is a Bubble Tea program. It never calls the flight gateway
// directly: every request goes through a search.Controller, and results
// come back as store snapshots. Each store is watched by a command that
// blocks on state.Store.Updates and is re-armed after every delivery.
//
// Three controllers back the UI:
//
//   - Session: flight search, price calendar and flight details
//   - Origin and Destination: one autocomplete field each, so suggestions
//     for one field never replace the other's
//
// # Views
//
//   - Search: trip type, airports, dates, passengers, cabin and sort order
//   - Results: itinerary list with a leg breakdown and a price calendar strip
//   - Details: booking options for one itinerary
//   - Logs: the application's own log file, reread every few seconds
//
// Submitting is disabled while a session request is in flight. Errors are
// shown in a banner until dismissed with x (ctrl+x while typing).
package ui
