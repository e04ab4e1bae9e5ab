// Package state holds the search state shared between the controllers in
// package search and the UI.
//
// A Store is written by one controller and read by the UI. Mutations go
// through named methods (Begin, Finish, SetFlights, ClearResults, ...) so
// each transition is applied under the write lock as one step; readers take
// a Snapshot, which copies every result slice.
//
// # Change Notification
//
// Updates returns a channel with a buffer of one. Every mutation attempts a
// non-blocking send, so a burst of changes leaves exactly one pending signal.
// The UI waits on it from a tea.Cmd and re-reads the snapshot.
//
// # Loading and Errors
//
// Begin clears the error before raising Loading. Finish only lowers Loading.
// ClearResults wipes results and the error but leaves Loading alone, so a
// request that is still running releases the flag when it returns.
//
// The zero value is ready to use:
//
//	store := &state.Store{}
package state
