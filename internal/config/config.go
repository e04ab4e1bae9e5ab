package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything farefinder reads at startup.
type Config struct {
	BaseURL           string
	APIKey            string
	APIHost           string
	Currency          string
	Market            string
	CountryCode       string
	LogDir            string
	LogLevel          string
	RequestsPerSecond float64
	Burst             int
	MockDelay         time.Duration
	RequestTimeout    time.Duration

	// Home is the location used for nearby-airport lookups; nil when unset.
	Home *Coordinates

	// CredentialRefresh is how often the credential is reread from the
	// dotenv file and environment. Zero disables rereading.
	CredentialRefresh time.Duration
}

// Coordinates is a latitude/longitude pair in degrees.
type Coordinates struct {
	Lat float64
	Lng float64
}

// Credentials is the environment-sourced API credential.
type Credentials struct {
	APIKey  string
	APIHost string
}

const (
	defaultConfigPath        = "~/.config/farefinder/config.toml"
	defaultDotenvPath        = ".env"
	defaultLogDir            = "~/.local/share/farefinder/logs"
	defaultBaseURL           = "https://sky-scrapper.p.rapidapi.com"
	defaultAPIHost           = "sky-scrapper.p.rapidapi.com"
	defaultCurrency          = "USD"
	defaultMarket            = "US"
	defaultCountryCode       = "US"
	defaultLogLevel          = "info"
	defaultRequestsPerSecond = 5
	defaultBurst             = 5
	defaultMockDelay         = 1500 * time.Millisecond
	defaultCredentialRefresh = 30 * time.Second
)

// credentialEnv is the environment-sourced half of the configuration.
type credentialEnv struct {
	APIKey  string `env:"RAPIDAPI_KEY"`
	APIHost string `env:"RAPIDAPI_HOST"`
}

// fileConfig mirrors config.toml. Pointers distinguish unset from zero.
type fileConfig struct {
	BaseURL           string   `toml:"base_url"`
	Currency          string   `toml:"currency"`
	Market            string   `toml:"market"`
	CountryCode       string   `toml:"country_code"`
	LogDir            string   `toml:"log_dir"`
	LogLevel          string   `toml:"log_level"`
	RequestsPerSecond *float64 `toml:"requests_per_second"`
	Burst             *int     `toml:"burst"`
	MockDelayMS       *int     `toml:"mock_delay_ms"`
	RequestTimeoutMS  *int     `toml:"request_timeout_ms"`
	HomeLat           *float64 `toml:"home_lat"`
	HomeLng           *float64 `toml:"home_lng"`
	CredentialRefresh *int     `toml:"credential_refresh_seconds"`
}

// Defaults returns the configuration used when no file or environment is present.
func Defaults() Config {
	return Config{
		BaseURL:           defaultBaseURL,
		APIHost:           defaultAPIHost,
		Currency:          defaultCurrency,
		Market:            defaultMarket,
		CountryCode:       defaultCountryCode,
		LogDir:            mustExpand(defaultLogDir),
		LogLevel:          defaultLogLevel,
		RequestsPerSecond: defaultRequestsPerSecond,
		Burst:             defaultBurst,
		MockDelay:         defaultMockDelay,
		CredentialRefresh: defaultCredentialRefresh,
	}
}

// Load reads the TOML file at path (falling back to defaults when missing),
// then the optional dotenv file, then the process environment.
func Load(path, dotenvPath string) (Config, error) {
	cfg := Defaults()

	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}
	if err := loadFile(resolved, &cfg); err != nil {
		return Config{}, err
	}

	if err := loadDotenv(dotenvPath); err != nil {
		return Config{}, err
	}

	var creds credentialEnv
	if err := env.Parse(&creds); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	cfg.APIKey = strings.TrimSpace(creds.APIKey)
	if host := strings.TrimSpace(creds.APIHost); host != "" {
		cfg.APIHost = host
	}

	return cfg, nil
}

// ReadCredentials rereads the credential without touching the process
// environment. Process variables take precedence over the dotenv file, as
// in Load. A blank host falls back to the default.
func ReadCredentials(dotenvPath string) (Credentials, error) {
	if strings.TrimSpace(dotenvPath) == "" {
		dotenvPath = defaultDotenvPath
	}
	vars, err := godotenv.Read(dotenvPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Credentials{}, fmt.Errorf("read dotenv: %w", err)
		}
		vars = map[string]string{}
	}
	for k, v := range env.ToMap(os.Environ()) {
		if v != "" {
			vars[k] = v
		}
	}

	var raw credentialEnv
	if err := env.ParseWithOptions(&raw, env.Options{Environment: vars}); err != nil {
		return Credentials{}, fmt.Errorf("parse environment: %w", err)
	}
	creds := Credentials{
		APIKey:  strings.TrimSpace(raw.APIKey),
		APIHost: strings.TrimSpace(raw.APIHost),
	}
	if creds.APIHost == "" {
		creds.APIHost = defaultAPIHost
	}
	return creds, nil
}

// LogPath returns the path of the application log file.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogDir) == "" {
		return mustExpand(defaultLogDir + "/farefinder.log")
	}
	return filepath.Join(c.LogDir, "farefinder.log")
}

func loadFile(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var raw fileConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	setTrimmed(&cfg.BaseURL, raw.BaseURL)
	setTrimmed(&cfg.Currency, strings.ToUpper(raw.Currency))
	setTrimmed(&cfg.Market, strings.ToUpper(raw.Market))
	setTrimmed(&cfg.CountryCode, strings.ToUpper(raw.CountryCode))
	setTrimmed(&cfg.LogLevel, strings.ToLower(raw.LogLevel))
	if dir := strings.TrimSpace(raw.LogDir); dir != "" {
		cfg.LogDir = mustExpand(dir)
	}
	if raw.RequestsPerSecond != nil && *raw.RequestsPerSecond > 0 {
		cfg.RequestsPerSecond = *raw.RequestsPerSecond
	}
	if raw.Burst != nil && *raw.Burst > 0 {
		cfg.Burst = *raw.Burst
	}
	if raw.MockDelayMS != nil && *raw.MockDelayMS >= 0 {
		cfg.MockDelay = time.Duration(*raw.MockDelayMS) * time.Millisecond
	}
	if raw.RequestTimeoutMS != nil && *raw.RequestTimeoutMS >= 0 {
		cfg.RequestTimeout = time.Duration(*raw.RequestTimeoutMS) * time.Millisecond
	}
	switch {
	case raw.HomeLat != nil && raw.HomeLng != nil:
		lat, lng := *raw.HomeLat, *raw.HomeLng
		if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
			return fmt.Errorf("home_lat/home_lng out of range: %v, %v", lat, lng)
		}
		cfg.Home = &Coordinates{Lat: lat, Lng: lng}
	case raw.HomeLat != nil || raw.HomeLng != nil:
		return errors.New("home_lat and home_lng must be set together")
	}
	if raw.CredentialRefresh != nil && *raw.CredentialRefresh >= 0 {
		cfg.CredentialRefresh = time.Duration(*raw.CredentialRefresh) * time.Second
	}
	return nil
}

func loadDotenv(path string) error {
	if strings.TrimSpace(path) == "" {
		path = defaultDotenvPath
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load dotenv: %w", err)
	}
	return nil
}

func setTrimmed(dst *string, value string) {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		*dst = trimmed
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
