// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"fmt"
	"time"

	"github.com/bigeen/site/internal/content"
	"github.com/bigeen/site/internal/theme"
	"github.com/bigeen/site/internal/validate"
)

// Validate checks cfg and reports every problem at once. The returned error
// matches ErrInvalidConfig and validate.ErrInvalid.
func Validate(cfg AppConfig) error {
	v := validate.New()

	v.OneOf("log_level", cfg.LogLevel, validate.LogLevels())

	v.ListenAddr("server.listen", cfg.Server.Listen)
	v.MinDuration("server.read_timeout", cfg.Server.ReadTimeout.Std(), time.Second)
	v.MinDuration("server.write_timeout", cfg.Server.WriteTimeout.Std(), time.Second)
	v.MinDuration("server.idle_timeout", cfg.Server.IdleTimeout.Std(), time.Second)
	v.MinDuration("server.shutdown_timeout", cfg.Server.ShutdownTimeout.Std(), time.Second)
	for _, origin := range cfg.Server.AllowedOrigins {
		if origin == "*" {
			continue
		}
		v.URL("server.allowed_origins", origin, []string{"http", "https"})
	}
	v.IPOrCIDR("server.trusted_proxies", cfg.Server.TrustedProxies)

	if cfg.Metrics.Enabled {
		v.ListenAddr("metrics.listen", cfg.Metrics.Listen)
		if cfg.Metrics.Listen == cfg.Server.Listen {
			v.AddError("metrics.listen", "must differ from server.listen", cfg.Metrics.Listen)
		}
	}

	modes := make([]string, 0, 2)
	for _, m := range content.Modes() {
		modes = append(modes, string(m))
	}
	v.OneOf("site.default_mode", cfg.Site.DefaultMode, modes)
	v.ReadableFile("site.content_file", cfg.Site.ContentFile)
	v.Custom("site.accent", cfg.Site.Accent, func(any) error {
		_, err := theme.WithAlpha(cfg.Site.Accent, 1)
		return err
	})

	v.OneOf("session.backend", cfg.Session.Backend, []string{BackendMemory, BackendRedis})
	v.NotEmpty("session.cookie_name", cfg.Session.CookieName)
	v.MinDuration("session.ttl", cfg.Session.TTL.Std(), time.Minute)
	v.MinDuration("session.cleanup_interval", cfg.Session.CleanupInterval.Std(), time.Second)
	if cfg.Session.Backend == BackendRedis {
		v.NotEmpty("redis.addr", cfg.Redis.Addr)
		v.Range("redis.db", cfg.Redis.DB, 0, 15)
	}

	v.Range("contact.outbox_size", cfg.Contact.OutboxSize, 1, 100000)

	if cfg.RateLimit.Enabled {
		v.Positive("rate_limit.requests_per_minute", cfg.RateLimit.RequestsPerMinute)
		v.Positive("rate_limit.contact_per_minute", cfg.RateLimit.ContactPerMinute)
	}
	v.IPOrCIDR("rate_limit.whitelist", cfg.RateLimit.Whitelist)

	if cfg.Telemetry.Enabled {
		v.NotEmpty("telemetry.service_name", cfg.Telemetry.ServiceName)
		v.OneOf("telemetry.exporter", cfg.Telemetry.Exporter, []string{ExporterGRPC, ExporterHTTP})
		v.NotEmpty("telemetry.endpoint", cfg.Telemetry.Endpoint)
		v.FloatRange("telemetry.sampling_rate", cfg.Telemetry.SamplingRate, 0, 1)
	}

	if err := v.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
