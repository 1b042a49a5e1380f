// Package shoppinglist assembles a shopping list application: a repository,
// a navigation stack, and the screen state aggregator that follows them.
//
// A front end calls Init once, drives navigation through App.Navigator and
// mutations through App.State, and renders the snapshots App.State publishes.
package shoppinglist

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/atomic"

	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/config"
	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/constants"
	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/i18n"
	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/internal"
	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/metrics"
	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/router"
	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/state"
	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/storage/memory"
	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/storage/sqlite"
)

// Options configures Init.
type Options struct {
	Config     config.Config         // Settings, usually from config.Load
	Repository state.Repository      // Used instead of the configured storage when set
	Registerer prometheus.Registerer // Metrics are registered here; nil leaves them unregistered
}

// App holds the running pieces of the application.
type App struct {
	Config    config.Config
	Navigator *router.Navigator
	State     *state.Aggregator
	Localizer *i18n.Localizer
	Metrics   *metrics.Metrics

	closer io.Closer
	closed atomic.Bool
}

// Init sets up logging, opens storage and starts the screen state on the
// home screen. Call Close when done.
func Init(ctx context.Context, options Options) (*App, error) {
	cfg := options.Config

	if cfg.LogPath != "" {
		internal.SetLogPath(cfg.LogPath)
	}
	if constants.IsDevMode() {
		internal.SetInternalLogLevel(slog.LevelDebug)
	} else {
		internal.SetInternalLogLevel(slog.LevelError)
	}
	if cfg.LogLevel != "" {
		internal.SetRawLogLevel(cfg.LogLevel)
	}

	localizer, err := i18n.New(cfg.Language)
	if err != nil {
		return nil, NewInfrastructureError("load_language", err)
	}

	repo, closer, err := openRepository(ctx, cfg, options.Repository)
	if err != nil {
		return nil, err
	}

	m := metrics.New(options.Registerer)
	nav := router.NewNavigator(router.ShoppingListCurrent())
	agg := state.New(nav, repo,
		state.WithLogger(internal.GetInternalLogger()),
		state.WithRecorder(m),
	)

	internal.GetLogger().Debug("shopping list initialized",
		"storage", cfg.Storage,
		"language", localizer.Language().String(),
	)

	return &App{
		Config:    cfg,
		Navigator: nav,
		State:     agg,
		Localizer: localizer,
		Metrics:   m,
		closer:    closer,
	}, nil
}

func openRepository(ctx context.Context, cfg config.Config, override state.Repository) (state.Repository, io.Closer, error) {
	if override != nil {
		return override, nil, nil
	}

	switch cfg.Storage {
	case constants.StorageMemory:
		store := memory.New()
		return store, store, nil
	case constants.StorageSQLite:
		store, err := sqlite.Open(ctx, cfg.DatabasePath)
		if err != nil {
			return nil, nil, NewInfrastructureError("open_storage", err)
		}
		return store, store, nil
	default:
		return nil, nil, NewInfrastructureError("open_storage", fmt.Errorf("unknown storage %q", cfg.Storage))
	}
}

// Settle waits for running mutations, reloads the current screen and returns
// the first snapshot in which nothing is loading.
func (a *App) Settle(ctx context.Context) (state.ScreenState, error) {
	if a.closed.Load() {
		return state.ScreenState{}, ErrClosed
	}
	a.State.Wait()
	a.Navigator.Refresh()
	return a.State.Await(ctx, state.ScreenState.Settled)
}

// Close stops the screen state and closes the store it opened.
// A supplied Options.Repository is left open.
func (a *App) Close() error {
	if !a.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}
	a.State.Close()
	if a.closer != nil {
		if err := a.closer.Close(); err != nil {
			return NewInfrastructureError("close_storage", err)
		}
	}
	return nil
}

// SetLogPath sets the full path for the log file, including filename.
// Creates all necessary parent directories.
// Call before Init() to take effect during initialization.
func SetLogPath(path string) {
	internal.SetLogPath(path)
}

// GetLogger returns the application logger for structured logging.
func GetLogger() *slog.Logger {
	return internal.GetLogger()
}

// SetLogLevel sets the minimum log level for the application logger.
func SetLogLevel(level slog.Level) {
	internal.SetLogLevel(level)
}

// SetRawLogLevel parses and sets the log level from a string (e.g., "debug", "info", "error").
func SetRawLogLevel(level string) {
	internal.SetRawLogLevel(level)
}

// CloseLogger closes the log file, if one was opened.
func CloseLogger() {
	internal.CloseLogger()
}
