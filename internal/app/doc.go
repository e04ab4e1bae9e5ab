// Package app is the composition root of farefinder.
//
// Run loads configuration, opens the log file, and builds one flight
// gateway shared by three search controllers (session, origin field,
// destination field), each with its own state.Store. It then hands them to
// the UI and blocks until the user quits or the context is cancelled.
//
// # Credentials
//
// The gateway reads the API credential through a CredentialSource on every
// call. A background poller rereads the dotenv file and environment every
// credential_refresh_seconds (30 by default), so adding RAPIDAPI_KEY to .env
// switches the app from mock to live data without a restart. Failed reads
// keep the previous credential and back off exponentially up to five
// minutes.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - config.toml present but invalid
//   - log directory cannot be created
//   - invalid base_url
//
// Everything after startup is recoverable: request failures are shown in
// the UI and answered with mock data, and preference files that cannot be
// read fall back to defaults.
package app
