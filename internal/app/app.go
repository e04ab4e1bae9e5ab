package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/five82/farefinder/internal/config"
	"github.com/five82/farefinder/internal/flights"
	"github.com/five82/farefinder/internal/logging"
	"github.com/five82/farefinder/internal/prefs"
	"github.com/five82/farefinder/internal/search"
	"github.com/five82/farefinder/internal/state"
	"github.com/five82/farefinder/internal/ui"
)

// Options configure the farefinder application.
type Options struct {
	ConfigPath string // empty uses ~/.config/farefinder/config.toml
	PrefsPath  string // empty uses ~/.config/farefinder/prefs.toml
	DotenvPath string // empty uses ./.env
}

// Run boots the farefinder TUI until the context is cancelled or the user
// quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath, opts.DotenvPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.LogPath(), cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	uiOpts, err := build(ctx, cfg, opts, logger)
	if err != nil {
		return err
	}

	logger.Info("farefinder starting",
		zap.Bool("live", uiOpts.Live()),
		zap.String("base_url", cfg.BaseURL),
		zap.String("currency", cfg.Currency),
	)
	err = ui.Run(uiOpts)
	logger.Info("farefinder stopped", zap.Error(err))
	return err
}

// build wires the gateway, controllers and preferences into UI options.
func build(ctx context.Context, cfg config.Config, opts Options, logger *zap.Logger) (ui.Options, error) {
	creds := NewCredentialSource(flights.Credentials{Key: cfg.APIKey, Host: cfg.APIHost})

	client, err := flights.NewClient(cfg.BaseURL, creds.Get,
		flights.WithRateLimit(cfg.RequestsPerSecond, cfg.Burst),
		flights.WithTimeout(cfg.RequestTimeout),
	)
	if err != nil {
		return ui.Options{}, fmt.Errorf("init flight client: %w", err)
	}

	gateway := flights.NewGateway(client, creds.Get,
		flights.WithLogger(logger.Named("gateway")),
		flights.WithMockDelay(cfg.MockDelay),
		flights.WithCurrency(cfg.Currency),
	)

	if cfg.CredentialRefresh > 0 {
		StartPoller(ctx, creds, func() (flights.Credentials, error) {
			c, err := config.ReadCredentials(opts.DotenvPath)
			if err != nil {
				return flights.Credentials{}, err
			}
			return flights.Credentials{Key: c.APIKey, Host: c.APIHost}, nil
		}, cfg.CredentialRefresh, logger.Named("credentials"))
	}

	newController := func(name string) *search.Controller {
		return search.NewController(gateway, &state.Store{}, search.WithLogger(logger.Named(name)))
	}

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	var home *flights.Coordinates
	if cfg.Home != nil {
		home = &flights.Coordinates{Lat: cfg.Home.Lat, Lng: cfg.Home.Lng}
	}

	return ui.Options{
		Context:     ctx,
		Session:     newController("session"),
		Origin:      newController("origin"),
		Destination: newController("destination"),
		Defaults: search.Defaults{
			Currency:    cfg.Currency,
			Market:      cfg.Market,
			CountryCode: cfg.CountryCode,
		},
		Live:      gateway.Live,
		Home:      home,
		LogPath:   cfg.LogPath(),
		Prefs:     userPrefs,
		PrefsPath: opts.PrefsPath,
	}, nil
}
