// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Command bigeen serves the Bigeen Solutions site.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/bigeen/site/internal/config"
	"github.com/bigeen/site/internal/daemon"
	"github.com/bigeen/site/internal/health"
	"github.com/bigeen/site/internal/log"
	"github.com/bigeen/site/internal/metrics"
	"github.com/bigeen/site/internal/server"
	"github.com/bigeen/site/internal/version"
)

// envConfigPath names the config file when -config is not given.
const envConfigPath = "BIGEEN_CONFIG"

func main() {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "config":
			os.Exit(runConfigCLI(os.Args[2:], os.Stdout, os.Stderr))
		case "healthcheck":
			os.Exit(runHealthcheckCLI(os.Args[2:], os.Stdout, os.Stderr))
		}
	}

	showVersion := flag.Bool("version", false, "print version and exit")
	configPath := flag.String("config", os.Getenv(envConfigPath), "path to config file (YAML)")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		os.Exit(0)
	}

	// Safe defaults until the config is loaded.
	log.Configure(log.Config{
		Level:   "info",
		Service: "bigeen",
		Version: version.Version,
	})
	logger := log.WithComponent("daemon")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	path := strings.TrimSpace(*configPath)
	loader := config.NewLoader(path, version.Version)
	cfg, err := loader.Load()
	if err != nil {
		logger.Fatal().
			Err(err).
			Str(log.FieldEvent, "config.load_failed").
			Str("config_path", path).
			Msg("failed to load configuration")
	}

	log.Configure(log.Config{
		Level:   cfg.LogLevel,
		Service: "bigeen",
		Version: version.Version,
	})
	logger = log.WithComponent("daemon")

	source := "env+defaults"
	if path != "" {
		source = "file"
	}
	logger.Info().
		Str(log.FieldEvent, "config.loaded").
		Str("source", source).
		Str("path", path).
		Msg("configuration loaded")

	metrics.SetBuildInfo(version.Version, version.Commit)

	if err := health.PerformStartupChecks(ctx, cfg); err != nil {
		logger.Fatal().
			Err(err).
			Str(log.FieldEvent, "startup.check_failed").
			Msg("startup checks failed, verify configuration")
	}

	rt, err := newRuntime(ctx, cfg)
	if err != nil {
		logger.Fatal().
			Err(err).
			Str(log.FieldEvent, "startup.wiring_failed").
			Msg("failed to build site")
	}

	deps := daemon.Deps{
		Logger:      logger,
		SiteHandler: rt.server.Handler(),
	}
	if cfg.Metrics.Enabled {
		deps.MetricsHandler = server.MetricsHandler()
		deps.MetricsAddr = cfg.Metrics.Listen
	}

	mgr, err := daemon.NewManager(cfg.Server, deps)
	if err != nil {
		rt.close(ctx)
		logger.Fatal().
			Err(err).
			Str(log.FieldEvent, "manager.creation_failed").
			Msg("failed to create daemon manager")
	}
	rt.register(mgr)

	logger.Info().
		Str(log.FieldEvent, "startup").
		Str(log.FieldVersion, version.Version).
		Str("commit", version.Commit).
		Str("addr", cfg.Server.Listen).
		Str("default_mode", cfg.Site.DefaultMode).
		Str("session_backend", cfg.Session.Backend).
		Bool("metrics", cfg.Metrics.Enabled).
		Bool("tracing", cfg.Telemetry.Enabled).
		Msg("starting bigeen")

	app := daemon.NewApp(logger, mgr, config.NewHolder(cfg, loader), rt.apply)
	if err := app.Run(ctx); err != nil {
		logger.Fatal().
			Err(err).
			Str(log.FieldEvent, "daemon.failed").
			Msg("daemon failed")
	}

	logger.Info().Msg("server exiting")
}
