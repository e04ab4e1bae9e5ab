// Package config loads farefinder's runtime configuration.
//
// # Sources
//
// Load merges three sources, later ones winning for the fields they own:
//
//  1. Built-in defaults (see Defaults)
//  2. A TOML file, ~/.config/farefinder/config.toml unless a path is given
//  3. The environment, optionally seeded from a dotenv file (.env by default)
//
// A missing TOML or dotenv file is not an error. A TOML file that exists but
// fails to parse is.
//
// # TOML Format
//
//	base_url = "https://sky-scrapper.p.rapidapi.com"
//	currency = "USD"
//	market = "US"
//	country_code = "US"
//	log_dir = "~/.local/share/farefinder/logs"
//	log_level = "info"
//	requests_per_second = 5
//	burst = 5
//	mock_delay_ms = 1500
//	request_timeout_ms = 0
//	credential_refresh_seconds = 30
//	home_lat = 8.44
//	home_lng = 4.49
//
// Every field is optional. Blank strings and non-positive rates fall back to
// the defaults. Currency, market and country codes are upper-cased. The home
// coordinates enable nearby-airport lookups and must be set together.
//
// # Credentials
//
// The upstream API key never lives in the TOML file. It is read from
// RAPIDAPI_KEY, and the host header value from RAPIDAPI_HOST (defaulting to
// sky-scrapper.p.rapidapi.com). An empty key, or the placeholder
// "your_rapidapi_key_here", makes the application run on its built-in mock
// dataset; that decision is made by the flights package on every call.
//
// ReadCredentials rereads only the credential, for the background refresh.
// Unlike Load it leaves the process environment untouched.
//
// # Path Expansion
//
// Tilde paths are expanded against the user's home directory and relative
// paths are made absolute.
package config
