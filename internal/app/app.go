// Package app initializes and holds long-lived application services,
// acting as a dependency injection container.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/verbumdei/lectio/internal/archive"
	"github.com/verbumdei/lectio/internal/cache"
	"github.com/verbumdei/lectio/internal/clock/system"
	"github.com/verbumdei/lectio/internal/config"
	"github.com/verbumdei/lectio/internal/fetch"
	"github.com/verbumdei/lectio/internal/logging"
	"github.com/verbumdei/lectio/internal/parser"
	"github.com/verbumdei/lectio/internal/service"
)

// App holds the shared, long-lived services for the application.
// It is initialized once at startup and handed to the commands.
type App struct {
	cfg      config.Config
	logger   *zap.Logger
	readings *service.Service
	durable  *cache.Postgres
}

// New builds the full service graph from configuration. Optional
// pieces (durable cache, page archive) are probed here: a failed
// probe logs a warning and the app runs without them.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	memory := cache.NewMemory()
	tiers := []cache.Tier{memory}

	var durable *cache.Postgres
	if cfg.Cache.PostgresDSN != "" {
		durable, err = cache.NewPostgres(ctx, cache.PostgresConfig{
			DSN:   cfg.Cache.PostgresDSN,
			Table: cfg.Cache.Table,
		})
		if err != nil {
			logger.Warn("durable cache unavailable, continuing without it", zap.Error(err))
			durable = nil
		} else {
			tiers = append(tiers, durable)
		}
	}

	fetcher, err := fetch.NewCollyFetcher(fetch.CollyConfig{
		UserAgent:      cfg.Upstream.UserAgent,
		RequestTimeout: cfg.UpstreamTimeout(),
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("init fetcher: %w", err)
	}

	racer := fetch.NewRacer(fetch.RacerConfig{
		Routes:   fetch.Routes(cfg.Race.Routes),
		Deadline: cfg.RaceDeadline(),
		Stagger:  cfg.RaceStagger(),
	}, logger)

	var archiver service.Archiver
	if cfg.Archive.Dir != "" {
		sink, err := archive.NewFileSystemSink(cfg.Archive.Dir, cfg.Archive.MaxBytes, logger)
		if err != nil {
			logger.Warn("page archive unavailable, continuing without it", zap.Error(err))
		} else {
			archiver = sink
		}
	}

	readings := service.New(service.Options{
		BaseURL: cfg.Upstream.BaseURL,
		Fetcher: fetcher,
		Racer:   racer,
		Env:     fetch.StaticEnvironment(cfg.Race.DirectBlocked),
		Parser:  parser.New(cfg.Upstream.BaseURL),
		Cache:   cache.NewTiered(logger, tiers...),
		Archive: archiver,
		Clock:   system.New(),
		Logger:  logger,
	})

	return &App{
		cfg:      cfg,
		logger:   logger,
		readings: readings,
		durable:  durable,
	}, nil
}

// Config returns the loaded configuration.
func (a *App) Config() config.Config {
	return a.cfg
}

// Logger returns the shared zap logger.
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Readings returns the readings service.
func (a *App) Readings() *service.Service {
	return a.readings
}

// Close releases long-lived resources.
func (a *App) Close() {
	if a.durable != nil {
		a.durable.Close()
	}
	_ = a.logger.Sync()
}
