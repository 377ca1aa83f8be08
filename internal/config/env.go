// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Environment variables recognised by the loader.
const (
	EnvLogLevel            = "BIGEEN_LOG_LEVEL"
	EnvListen              = "BIGEEN_LISTEN"
	EnvShutdownTimeout     = "BIGEEN_SHUTDOWN_TIMEOUT"
	EnvAllowedOrigins      = "BIGEEN_ALLOWED_ORIGINS"
	EnvTrustedProxies      = "BIGEEN_TRUSTED_PROXIES"
	EnvCSP                 = "BIGEEN_CSP"
	EnvMetricsEnabled      = "BIGEEN_METRICS_ENABLED"
	EnvMetricsListen       = "BIGEEN_METRICS_LISTEN"
	EnvDefaultMode         = "BIGEEN_DEFAULT_MODE"
	EnvContentFile         = "BIGEEN_CONTENT_FILE"
	EnvAccent              = "BIGEEN_ACCENT"
	EnvSessionBackend      = "BIGEEN_SESSION_BACKEND"
	EnvSessionCookie       = "BIGEEN_SESSION_COOKIE"
	EnvSessionTTL          = "BIGEEN_SESSION_TTL"
	EnvSessionSecure       = "BIGEEN_SESSION_SECURE"
	EnvRedisAddr           = "BIGEEN_REDIS_ADDR"
	EnvRedisPassword       = "BIGEEN_REDIS_PASSWORD"
	EnvRedisDB             = "BIGEEN_REDIS_DB"
	EnvContactRequire      = "BIGEEN_CONTACT_REQUIRE_FIELDS"
	EnvContactOutboxSize   = "BIGEEN_CONTACT_OUTBOX_SIZE"
	EnvRateLimitEnabled    = "BIGEEN_RATE_LIMIT_ENABLED"
	EnvRateLimitRPM        = "BIGEEN_RATE_LIMIT_RPM"
	EnvRateLimitContactRPM = "BIGEEN_RATE_LIMIT_CONTACT_RPM"
	EnvRateLimitWhitelist  = "BIGEEN_RATE_LIMIT_WHITELIST"
	EnvOTelEnabled         = "BIGEEN_OTEL_ENABLED"
	EnvOTelExporter        = "BIGEEN_OTEL_EXPORTER"
	EnvOTelEndpoint        = "BIGEEN_OTEL_ENDPOINT"
	EnvOTelSamplingRate    = "BIGEEN_OTEL_SAMPLING_RATE"
)

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

type envReader struct {
	lookup LookupFunc
	logger zerolog.Logger
	// consumed records every key the loader asked for.
	consumed map[string]struct{}
}

func isSensitive(key string) bool {
	lower := strings.ToLower(key)
	return strings.Contains(lower, "password") || strings.Contains(lower, "token") || strings.Contains(lower, "secret")
}

// raw returns the value of key; empty values count as unset.
func (e *envReader) raw(key string) (string, bool) {
	e.consumed[key] = struct{}{}
	v, ok := e.lookup(key)
	if !ok || v == "" {
		return "", false
	}
	ev := e.logger.Debug().Str("key", key).Str("source", "environment")
	if isSensitive(key) {
		ev = ev.Bool("sensitive", true)
	} else {
		ev = ev.Str("value", v)
	}
	ev.Msg("using environment variable")
	return v, true
}

func (e *envReader) str(key string, dst *string) {
	if v, ok := e.raw(key); ok {
		*dst = v
	}
}

func (e *envReader) list(key string, dst *[]string) {
	v, ok := e.raw(key)
	if !ok {
		return
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	*dst = out
}

func (e *envReader) integer(key string, dst *int) {
	v, ok := e.raw(key)
	if !ok {
		return
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		e.invalid(key, v, "integer")
		return
	}
	*dst = i
}

func (e *envReader) float(key string, dst *float64) {
	v, ok := e.raw(key)
	if !ok {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		e.invalid(key, v, "float")
		return
	}
	*dst = f
}

// boolean accepts "true", "false", "1", "0", "yes", "no" (case-insensitive).
func (e *envReader) boolean(key string, dst *bool) {
	v, ok := e.raw(key)
	if !ok {
		return
	}
	switch strings.ToLower(v) {
	case "true", "1", "yes":
		*dst = true
	case "false", "0", "no":
		*dst = false
	default:
		e.invalid(key, v, "boolean")
	}
}

func (e *envReader) duration(key string, dst *Duration) {
	v, ok := e.raw(key)
	if !ok {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.invalid(key, v, "duration")
		return
	}
	*dst = Duration(d)
}

func (e *envReader) invalid(key, value, kind string) {
	e.logger.Warn().
		Str("key", key).
		Str("value", value).
		Msgf("invalid %s in environment variable, keeping previous value", kind)
}

func (e *envReader) apply(cfg *AppConfig) {
	e.str(EnvLogLevel, &cfg.LogLevel)

	e.str(EnvListen, &cfg.Server.Listen)
	e.duration(EnvShutdownTimeout, &cfg.Server.ShutdownTimeout)
	e.list(EnvAllowedOrigins, &cfg.Server.AllowedOrigins)
	e.list(EnvTrustedProxies, &cfg.Server.TrustedProxies)
	e.str(EnvCSP, &cfg.Server.CSP)

	e.boolean(EnvMetricsEnabled, &cfg.Metrics.Enabled)
	e.str(EnvMetricsListen, &cfg.Metrics.Listen)

	e.str(EnvDefaultMode, &cfg.Site.DefaultMode)
	e.str(EnvContentFile, &cfg.Site.ContentFile)
	e.str(EnvAccent, &cfg.Site.Accent)

	e.str(EnvSessionBackend, &cfg.Session.Backend)
	e.str(EnvSessionCookie, &cfg.Session.CookieName)
	e.duration(EnvSessionTTL, &cfg.Session.TTL)
	e.boolean(EnvSessionSecure, &cfg.Session.Secure)

	e.str(EnvRedisAddr, &cfg.Redis.Addr)
	e.str(EnvRedisPassword, &cfg.Redis.Password)
	e.integer(EnvRedisDB, &cfg.Redis.DB)

	e.boolean(EnvContactRequire, &cfg.Contact.RequireFields)
	e.integer(EnvContactOutboxSize, &cfg.Contact.OutboxSize)

	e.boolean(EnvRateLimitEnabled, &cfg.RateLimit.Enabled)
	e.integer(EnvRateLimitRPM, &cfg.RateLimit.RequestsPerMinute)
	e.integer(EnvRateLimitContactRPM, &cfg.RateLimit.ContactPerMinute)
	e.list(EnvRateLimitWhitelist, &cfg.RateLimit.Whitelist)

	e.boolean(EnvOTelEnabled, &cfg.Telemetry.Enabled)
	e.str(EnvOTelExporter, &cfg.Telemetry.Exporter)
	e.str(EnvOTelEndpoint, &cfg.Telemetry.Endpoint)
	e.float(EnvOTelSamplingRate, &cfg.Telemetry.SamplingRate)
}
