// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"context"
	"fmt"

	"github.com/bigeen/site/internal/cache"
	"github.com/bigeen/site/internal/config"
	"github.com/bigeen/site/internal/contact"
	"github.com/bigeen/site/internal/content"
	"github.com/bigeen/site/internal/daemon"
	"github.com/bigeen/site/internal/health"
	"github.com/bigeen/site/internal/log"
	"github.com/bigeen/site/internal/server"
	"github.com/bigeen/site/internal/session"
	"github.com/bigeen/site/internal/telemetry"
	"github.com/bigeen/site/internal/version"
)

type shutdownHook struct {
	name string
	fn   daemon.ShutdownHook
}

// runtime holds the long-lived components built from the startup config.
type runtime struct {
	server   *server.Server
	sessions *session.Manager
	contact  *contact.Service
	hooks    []shutdownHook
}

// newRuntime wires every component. On error the hooks registered so far
// have already been run.
func newRuntime(ctx context.Context, cfg config.AppConfig) (rt *runtime, err error) {
	rt = &runtime{}
	defer func() {
		if err != nil {
			rt.close(context.WithoutCancel(ctx))
			rt = nil
		}
	}()

	tp, err := telemetry.NewProvider(ctx, telemetry.Config{
		Enabled:        cfg.Telemetry.Enabled,
		ServiceName:    cfg.Telemetry.ServiceName,
		ServiceVersion: version.Version,
		ExporterType:   cfg.Telemetry.Exporter,
		Endpoint:       cfg.Telemetry.Endpoint,
		SamplingRate:   cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return rt, fmt.Errorf("telemetry: %w", err)
	}
	rt.addHook("telemetry", tp.Shutdown)

	store, err := rt.newCache(ctx, cfg)
	if err != nil {
		return rt, fmt.Errorf("session cache: %w", err)
	}

	reg, err := loadContent(cfg.Site.ContentFile)
	if err != nil {
		return rt, err
	}
	mode, err := content.ParseMode(cfg.Site.DefaultMode)
	if err != nil {
		return rt, fmt.Errorf("site.default_mode: %w", err)
	}

	rt.sessions = session.NewManager(store, session.Config{
		CookieName:  cfg.Session.CookieName,
		TTL:         cfg.Session.TTL.Std(),
		Secure:      cfg.Session.Secure,
		DefaultMode: mode,
	})
	rt.contact = contact.NewService(contact.NewOutbox(cfg.Contact.OutboxSize), contact.Config{
		RequireFields: cfg.Contact.RequireFields,
	})

	hm := health.NewManager(version.Version)
	hm.RegisterChecker(health.NewContentChecker(reg))
	hm.RegisterChecker(health.NewFuncChecker("sessions", true, rt.sessions.HealthCheck))
	if cfg.Site.ContentFile != "" {
		hm.RegisterChecker(health.NewFileChecker("content_file", cfg.Site.ContentFile))
	}

	rt.server, err = server.New(server.Deps{
		Config:   cfg,
		Content:  reg,
		Sessions: rt.sessions,
		Contact:  rt.contact,
		Health:   hm,
	})
	if err != nil {
		return rt, err
	}
	return rt, nil
}

func (rt *runtime) newCache(ctx context.Context, cfg config.AppConfig) (cache.Cache, error) {
	switch cfg.Session.Backend {
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		}, log.WithComponent("cache"))
		if err != nil {
			return nil, err
		}
		rt.addHook("redis", func(context.Context) error { return rc.Close() })
		return rc, nil
	default:
		mc := cache.NewMemoryCache(cfg.Session.CleanupInterval.Std())
		rt.addHook("memory_cache", func(context.Context) error {
			mc.Stop()
			return nil
		})
		return mc, nil
	}
}

func loadContent(path string) (*content.Registry, error) {
	if path == "" {
		return content.Default(), nil
	}
	reg, err := content.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("content: %w", err)
	}
	return reg, nil
}

func (rt *runtime) addHook(name string, fn daemon.ShutdownHook) {
	rt.hooks = append(rt.hooks, shutdownHook{name: name, fn: fn})
}

// register hands the hooks to the manager, which runs them in reverse.
func (rt *runtime) register(mgr daemon.Manager) {
	for _, h := range rt.hooks {
		mgr.RegisterShutdownHook(h.name, h.fn)
	}
}

// close runs the hooks directly, newest first. It is used when startup
// fails before the manager owns them.
func (rt *runtime) close(ctx context.Context) {
	for i := len(rt.hooks) - 1; i >= 0; i-- {
		_ = rt.hooks[i].fn(ctx)
	}
	rt.hooks = nil
}

// apply pushes the hot-reloadable settings of a reloaded config into the
// running components.
func (rt *runtime) apply(cfg config.AppConfig) {
	logger := log.WithComponent("reload")
	if err := log.SetLevel(cfg.LogLevel); err != nil {
		logger.Warn().Err(err).Str(log.FieldEvent, "reload.log_level_invalid").Msg("keeping log level")
	}
	rt.contact.SetRequireFields(cfg.Contact.RequireFields)
	mode, err := content.ParseMode(cfg.Site.DefaultMode)
	if err == nil {
		err = rt.sessions.SetDefaultMode(mode)
	}
	if err != nil {
		logger.Warn().Err(err).Str(log.FieldEvent, "reload.default_mode_invalid").Msg("keeping default mode")
	}
	logger.Info().
		Str(log.FieldEvent, "reload.applied").
		Str("log_level", cfg.LogLevel).
		Str("default_mode", cfg.Site.DefaultMode).
		Bool("require_fields", cfg.Contact.RequireFields).
		Msg("applied reloaded configuration")
}
