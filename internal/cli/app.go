package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/zapponejosh/bulletin-lectionary/internal/api"
	"github.com/zapponejosh/bulletin-lectionary/internal/bulletin"
	"github.com/zapponejosh/bulletin-lectionary/internal/calendar"
	"github.com/zapponejosh/bulletin-lectionary/internal/config"
	"github.com/zapponejosh/bulletin-lectionary/internal/database"
	"github.com/zapponejosh/bulletin-lectionary/internal/lectionary"
	"github.com/zapponejosh/bulletin-lectionary/internal/logger"
)

// App is the assembled calendar and readings stack.
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	Calendar *calendar.Provider
	Readings *lectionary.Service
	Resolver *bulletin.Resolver

	// Dataset is nil when no Daily Office dataset is configured.
	Dataset *lectionary.DailyOffice

	db    *database.DB
	cache *database.Cache
}

// NewApp builds the stack described by cfg. Empty paths and URLs disable
// the matching tier. The caller must Close the App.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	app := &App{Config: cfg, Logger: logger}

	var cache lectionary.Cache
	if cfg.CachePath == "" {
		cache = lectionary.NewMemoryCache()
	} else {
		db, err := database.Open(database.DefaultConfig(cfg.CachePath), logger)
		if err != nil {
			return nil, fmt.Errorf("open cache: %w", err)
		}
		applied, err := db.Migrate(ctx)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate cache: %w", err)
		}
		version, err := db.SchemaVersion(ctx)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("read cache schema: %w", err)
		}
		logger.Info("cache ready",
			slog.String("path", cfg.CachePath),
			slog.Int("schema_version", version),
			slog.Int("migrations_applied", applied),
		)
		app.db = db
		app.cache = database.NewCache(db)
		cache = app.cache
	}

	opts := lectionary.Options{
		Cache:   cache,
		Builtin: lectionary.DefaultBuiltinTable(),
		TTL:     cfg.CacheTTL,
		Logger:  logger,
	}
	if cfg.DailyOfficePath != "" {
		app.Dataset = lectionary.NewDailyOffice(cfg.DailyOfficePath, logger)
		opts.Dataset = app.Dataset
	}
	if cfg.LectServeURL != "" {
		opts.Remote = lectionary.NewLectServe(cfg.LectServeURL, cfg.LectServeTimeout)
	}

	var authority calendar.Authority
	if cfg.CalendarAuthorityURL != "" {
		authority = calendar.NewHTTPAuthority(cfg.CalendarAuthorityURL, cfg.CalendarAuthorityTimeout)
	}

	app.Calendar = calendar.NewProvider(authority, logger)
	app.Readings = lectionary.NewService(opts)
	app.Resolver = bulletin.NewResolver(app.Calendar, app.Readings)

	logger.Debug("stack ready",
		slog.Bool("sqlite_cache", app.db != nil),
		slog.Bool("dataset", app.Dataset != nil),
		slog.Bool("remote", opts.Remote != nil),
		slog.Bool("authority", authority != nil),
	)
	return app, nil
}

// Deps returns the collaborators for the HTTP handlers.
func (a *App) Deps() api.Deps {
	deps := api.Deps{Calendar: a.Calendar, Readings: a.Readings}
	if a.db != nil {
		deps.Purger = a.cache
		deps.Health = a.db
	}
	return deps
}

// Close releases the cache database, if any.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// loadApp reads configuration, sets up logging, and builds the stack.
func loadApp(ctx context.Context, opts *RootOptions) (*App, error) {
	cfg, err := opts.LoadConfig()
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid configuration", err)
	}
	log := logger.Setup(cfg)

	app, err := NewApp(ctx, cfg, log)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to start", err)
	}
	return app, nil
}

// closeApp closes app, logging any failure.
func closeApp(app *App) {
	if err := app.Close(); err != nil {
		app.Logger.Error("error closing cache database", "error", err)
	}
}
