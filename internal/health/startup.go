// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package health

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/bigeen/site/internal/config"
	"github.com/bigeen/site/internal/content"
	"github.com/bigeen/site/internal/log"
)

const redisProbeTimeout = 3 * time.Second

// PerformStartupChecks verifies the runtime environment before the server
// starts: the content document loads, the listeners can bind and the
// session backend answers. Config syntax is assumed to be validated already.
func PerformStartupChecks(ctx context.Context, cfg config.AppConfig) error {
	logger := log.WithComponent("startup-check")
	logger.Info().Str(log.FieldEvent, "startup.checks_begin").Msg("running pre-flight startup checks")

	if err := checkContent(logger, cfg.Site.ContentFile); err != nil {
		return fmt.Errorf("content check failed: %w", err)
	}
	if err := checkListen(logger, "server", cfg.Server.Listen); err != nil {
		return fmt.Errorf("listener check failed: %w", err)
	}
	if cfg.Metrics.Enabled {
		if err := checkListen(logger, "metrics", cfg.Metrics.Listen); err != nil {
			return fmt.Errorf("listener check failed: %w", err)
		}
	}
	if err := checkSessionBackend(ctx, logger, cfg); err != nil {
		return fmt.Errorf("session backend check failed: %w", err)
	}

	logger.Info().Str(log.FieldEvent, "startup.checks_passed").Msg("all startup checks passed")
	return nil
}

func checkContent(logger zerolog.Logger, path string) error {
	if path == "" {
		logger.Info().Msg("using embedded site content")
		return nil
	}
	if _, err := content.LoadFile(path); err != nil {
		return err
	}
	logger.Info().Str("path", path).Msg("content file loads")
	return nil
}

// checkListen binds addr once and releases it, so a port already in use is
// reported before any component starts.
func checkListen(logger zerolog.Logger, name, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("%s listen address %q unavailable: %w", name, addr, err)
	}
	if err := ln.Close(); err != nil {
		return err
	}
	logger.Info().Str("listener", name).Str("addr", addr).Msg("listen address available")
	return nil
}

func checkSessionBackend(ctx context.Context, logger zerolog.Logger, cfg config.AppConfig) error {
	if cfg.Session.Backend != config.BackendRedis {
		logger.Warn().
			Str("session_backend", cfg.Session.Backend).
			Msg("sessions are kept in memory and are lost on restart")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() { _ = client.Close() }()

	pctx, cancel := context.WithTimeout(ctx, redisProbeTimeout)
	defer cancel()
	if err := client.Ping(pctx).Err(); err != nil {
		return fmt.Errorf("redis at %s unreachable: %w", cfg.Redis.Addr, err)
	}
	logger.Info().Str("addr", cfg.Redis.Addr).Msg("redis reachable")
	return nil
}
