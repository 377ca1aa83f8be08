// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package daemon

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/bigeen/site/internal/config"
	"github.com/bigeen/site/internal/log"
)

// ApplyFunc applies a reloaded configuration to live components.
type ApplyFunc func(config.AppConfig)

// App owns the long-lived runtime lifecycle (config watcher, reload wiring)
// and delegates server management to Manager.
type App struct {
	logger       zerolog.Logger
	manager      Manager
	holder       *config.Holder
	apply        ApplyFunc
	reloadSignal os.Signal
}

// NewApp creates a new App orchestrator. holder and apply may be nil.
func NewApp(logger zerolog.Logger, manager Manager, holder *config.Holder, apply ApplyFunc) *App {
	return &App{
		logger:       logger,
		manager:      manager,
		holder:       holder,
		apply:        apply,
		reloadSignal: syscall.SIGHUP,
	}
}

// Run starts all owned background subsystems and blocks until ctx is cancelled or a fatal error occurs.
func (a *App) Run(ctx context.Context) error {
	if a.manager == nil {
		return ErrMissingManager
	}

	g, ctx := errgroup.WithContext(ctx)

	if a.holder != nil {
		// The watcher is best-effort: the site keeps serving the config it
		// started with.
		g.Go(func() error {
			if err := a.holder.Run(ctx); err != nil {
				a.logger.Warn().Err(err).
					Str(log.FieldEvent, "config.watcher_start_failed").
					Msg("failed to start config watcher")
			}
			return nil
		})
	}

	if a.holder != nil && a.apply != nil {
		applyCh := make(chan config.AppConfig, 1)
		a.holder.RegisterListener(applyCh)

		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return nil
				case next := <-applyCh:
					a.apply(next)
				}
			}
		})
	}

	// SIGHUP trigger for manual reload.
	if a.holder != nil && a.reloadSignal != nil {
		g.Go(func() error {
			hupChan := make(chan os.Signal, 1)
			signal.Notify(hupChan, a.reloadSignal)
			defer signal.Stop(hupChan)

			for {
				select {
				case <-ctx.Done():
					return nil
				case <-hupChan:
					a.logger.Info().
						Str(log.FieldEvent, "config.reload_signal").
						Str("signal", a.reloadSignal.String()).
						Msg("received reload signal, reloading config")
					// Reload logs its own failures.
					_ = a.holder.Reload(ctx)
				}
			}
		})
	}

	// Main server lifecycle. Start shuts the manager down itself.
	g.Go(func() error {
		return a.manager.Start(ctx)
	})

	return g.Wait()
}
