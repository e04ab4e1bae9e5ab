package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/five82/farefinder/internal/config"
	"github.com/five82/farefinder/internal/logging"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Defaults()
	cfg.LogDir = t.TempDir()
	cfg.MockDelay = 0
	cfg.CredentialRefresh = 0
	return cfg
}

func TestBuildWithoutCredentialUsesMockData(t *testing.T) {
	cfg := testConfig(t)
	opts := Options{PrefsPath: filepath.Join(t.TempDir(), "prefs.toml")}

	uiOpts, err := build(context.Background(), cfg, opts, logging.Nop())
	if err != nil {
		t.Fatalf("build returned error: %v", err)
	}
	if uiOpts.Live() {
		t.Fatalf("Live() = true without a credential")
	}
	if uiOpts.Session.Store() == uiOpts.Origin.Store() || uiOpts.Origin.Store() == uiOpts.Destination.Store() {
		t.Fatalf("controllers must not share a store")
	}
	if uiOpts.Defaults.Currency != "USD" {
		t.Fatalf("Defaults.Currency = %q, want USD", uiOpts.Defaults.Currency)
	}
	if uiOpts.Home != nil {
		t.Fatalf("Home = %+v, want nil", uiOpts.Home)
	}
	if uiOpts.Prefs.Theme == "" {
		t.Fatalf("Prefs should fall back to defaults")
	}

	uiOpts.Origin.SearchAirports(context.Background(), "lag")
	if got := uiOpts.Origin.Snapshot().Airports; len(got) != 1 || got[0].SkyID != "LOS" {
		t.Fatalf("mock airports = %+v, want LOS", got)
	}
}

func TestBuildWithCredentialIsLive(t *testing.T) {
	cfg := testConfig(t)
	cfg.APIKey = "real-key"
	cfg.Home = &config.Coordinates{Lat: 8.44, Lng: 4.49}

	uiOpts, err := build(context.Background(), cfg, Options{}, logging.Nop())
	if err != nil {
		t.Fatalf("build returned error: %v", err)
	}
	if !uiOpts.Live() {
		t.Fatalf("Live() = false with a credential")
	}
	if uiOpts.Home == nil || uiOpts.Home.Lat != 8.44 {
		t.Fatalf("Home = %+v, want 8.44/4.49", uiOpts.Home)
	}
}

func TestBuildRejectsInvalidBaseURL(t *testing.T) {
	cfg := testConfig(t)
	cfg.BaseURL = "://bad"

	if _, err := build(context.Background(), cfg, Options{}, logging.Nop()); err == nil {
		t.Fatalf("build returned nil error for invalid base url")
	}
}
