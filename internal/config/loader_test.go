// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bigeen/site/internal/validate"
)

func envMap(kv map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := kv[key]
		return v, ok
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_DefaultsOnly(t *testing.T) {
	cfg, err := NewLoader("", "v1.2.3").WithLookup(envMap(nil)).Load()
	require.NoError(t, err)

	want := Defaults()
	want.Version = "v1.2.3"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
server:
  listen: ":9000"
  shutdown_timeout: 3s
  allowed_origins: ["https://bigeen.example"]
site:
  default_mode: Tech
session:
  backend: redis
  ttl: 2h
redis:
  addr: redis:6379
contact:
  require_fields: true
`)
	cfg, err := NewLoader(path, "").WithLookup(envMap(nil)).Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, ":9000", cfg.Server.Listen)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout.Std())
	assert.Equal(t, []string{"https://bigeen.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "tech", cfg.Site.DefaultMode)
	assert.Equal(t, BackendRedis, cfg.Session.Backend)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL.Std())
	assert.True(t, cfg.Contact.RequireFields)

	// Untouched keys keep their defaults.
	assert.Equal(t, Defaults().Server.ReadTimeout, cfg.Server.ReadTimeout)
	assert.Equal(t, "bigeen_session", cfg.Session.CookieName)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "site:\n  default_mode: tech\nmetrics:\n  enabled: false\n")
	loader := NewLoader(path, "").WithLookup(envMap(map[string]string{
		EnvDefaultMode:      "consult",
		EnvMetricsEnabled:   "yes",
		EnvAllowedOrigins:   "https://a.example, https://b.example,",
		EnvSessionTTL:       "90m",
		EnvRedisDB:          "3",
		EnvOTelSamplingRate: "0.25",
		EnvListen:           "",
	}))
	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, "consult", cfg.Site.DefaultMode)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 90*time.Minute, cfg.Session.TTL.Std())
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.InDelta(t, 0.25, cfg.Telemetry.SamplingRate, 1e-9)
	assert.Equal(t, ":8080", cfg.Server.Listen, "empty env value counts as unset")
	assert.Contains(t, loader.ConsumedEnvKeys, EnvRedisPassword)
}

func TestLoad_InvalidEnvKeepsPreviousValue(t *testing.T) {
	cfg, err := NewLoader("", "").WithLookup(envMap(map[string]string{
		EnvContactOutboxSize: "lots",
		EnvSessionSecure:     "maybe",
		EnvSessionTTL:        "forever",
	})).Load()
	require.NoError(t, err)
	assert.Equal(t, 256, cfg.Contact.OutboxSize)
	assert.False(t, cfg.Session.Secure)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL.Std())
}

func TestLoad_StrictParsing(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		unknown bool
	}{
		{"unknown top-level key", "colour: blue\n", true},
		{"unknown nested key", "site:\n  headline: hi\n", true},
		{"multiple documents", "log_level: info\n---\nlog_level: debug\n", false},
		{"bad duration", "session:\n  ttl: 5\n", false},
		{"malformed yaml", "server: [\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoader(writeConfig(t, tt.body), "").WithLookup(envMap(nil)).Load()
			require.Error(t, err)
			assert.Equal(t, tt.unknown, errors.Is(err, ErrUnknownConfigField))
		})
	}
}

func TestLoad_EmptyFileIsDefaults(t *testing.T) {
	cfg, err := NewLoader(writeConfig(t, ""), "").WithLookup(envMap(nil)).Load()
	require.NoError(t, err)
	assert.Equal(t, Defaults().Server, cfg.Server)
}

func TestLoad_RejectsNonYAMLExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o600))
	_, err := NewLoader(path, "").WithLookup(envMap(nil)).Load()
	assert.ErrorContains(t, err, "only YAML supported")
}

func TestLoad_ValidationFailure(t *testing.T) {
	_, err := NewLoader(writeConfig(t, "site:\n  default_mode: retro\n"), "").WithLookup(envMap(nil)).Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.ErrorIs(t, err, validate.ErrInvalid)
	assert.ErrorContains(t, err, "site.default_mode")
}

func TestLoadFile_IgnoresEnvironment(t *testing.T) {
	t.Setenv(EnvListen, ":7000")
	cfg, err := LoadFile(writeConfig(t, "server:\n  listen: \":9000\"\n"))
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Listen)
}

func TestRedact(t *testing.T) {
	cfg := Defaults()
	cfg.Redis.Password = "hunter2"
	cfg.Server.AllowedOrigins = []string{"https://a.example"}

	red := Redact(cfg)
	assert.Equal(t, "***", red.Redis.Password)
	assert.Equal(t, "hunter2", cfg.Redis.Password)

	red.Server.AllowedOrigins[0] = "mutated"
	assert.Equal(t, "https://a.example", cfg.Server.AllowedOrigins[0])

	assert.Empty(t, Redact(Defaults()).Redis.Password)
}
