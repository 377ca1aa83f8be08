// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// AppConfig is the effective daemon configuration.
type AppConfig struct {
	Version  string `yaml:"-" json:"-"`
	LogLevel string `yaml:"log_level" json:"log_level"`

	Server    ServerConfig    `yaml:"server" json:"server"`
	Metrics   MetricsConfig   `yaml:"metrics" json:"metrics"`
	Site      SiteConfig      `yaml:"site" json:"site"`
	Session   SessionConfig   `yaml:"session" json:"session"`
	Redis     RedisConfig     `yaml:"redis" json:"redis"`
	Contact   ContactConfig   `yaml:"contact" json:"contact"`
	RateLimit RateLimitConfig `yaml:"rate_limit" json:"rate_limit"`
	Telemetry TelemetryConfig `yaml:"telemetry" json:"telemetry"`
}

// ServerConfig configures the public site listener.
type ServerConfig struct {
	Listen          string   `yaml:"listen" json:"listen"`
	ReadTimeout     Duration `yaml:"read_timeout" json:"read_timeout"`
	WriteTimeout    Duration `yaml:"write_timeout" json:"write_timeout"`
	IdleTimeout     Duration `yaml:"idle_timeout" json:"idle_timeout"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout" json:"shutdown_timeout"`
	// AllowedOrigins are accepted by the CSRF check in addition to same-origin.
	AllowedOrigins []string `yaml:"allowed_origins" json:"allowed_origins"`
	// TrustedProxies may set X-Forwarded-Proto (IPs or CIDRs).
	TrustedProxies []string `yaml:"trusted_proxies" json:"trusted_proxies"`
	CSP            string   `yaml:"csp" json:"csp"`
}

// MetricsConfig configures the Prometheus listener.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Listen  string `yaml:"listen" json:"listen"`
}

// SiteConfig holds presentation settings.
type SiteConfig struct {
	DefaultMode string `yaml:"default_mode" json:"default_mode"`
	// ContentFile replaces the embedded content document when set.
	ContentFile string `yaml:"content_file" json:"content_file"`
	Accent      string `yaml:"accent" json:"accent"`
}

// SessionConfig configures visitor sessions.
type SessionConfig struct {
	Backend         string   `yaml:"backend" json:"backend"` // memory|redis
	CookieName      string   `yaml:"cookie_name" json:"cookie_name"`
	TTL             Duration `yaml:"ttl" json:"ttl"`
	Secure          bool     `yaml:"secure" json:"secure"`
	CleanupInterval Duration `yaml:"cleanup_interval" json:"cleanup_interval"`
}

// RedisConfig is used when session.backend is redis.
type RedisConfig struct {
	Addr     string `yaml:"addr" json:"addr"`
	Password string `yaml:"password" json:"password"`
	DB       int    `yaml:"db" json:"db"`
	Prefix   string `yaml:"prefix" json:"prefix"`
}

// ContactConfig configures the contact form.
type ContactConfig struct {
	RequireFields bool `yaml:"require_fields" json:"require_fields"`
	OutboxSize    int  `yaml:"outbox_size" json:"outbox_size"`
}

// RateLimitConfig configures per-client request limits.
type RateLimitConfig struct {
	Enabled           bool     `yaml:"enabled" json:"enabled"`
	RequestsPerMinute int      `yaml:"requests_per_minute" json:"requests_per_minute"`
	ContactPerMinute  int      `yaml:"contact_per_minute" json:"contact_per_minute"`
	Whitelist         []string `yaml:"whitelist" json:"whitelist"`
}

// TelemetryConfig configures OpenTelemetry tracing.
type TelemetryConfig struct {
	Enabled      bool    `yaml:"enabled" json:"enabled"`
	ServiceName  string  `yaml:"service_name" json:"service_name"`
	Exporter     string  `yaml:"exporter" json:"exporter"` // grpc|http
	Endpoint     string  `yaml:"endpoint" json:"endpoint"`
	SamplingRate float64 `yaml:"sampling_rate" json:"sampling_rate"`
}

// Duration is a time.Duration that reads and writes Go duration strings
// ("30s", "24h") in YAML and JSON.
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) String() string { return time.Duration(d).String() }

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) { return d.String(), nil }

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return fmt.Errorf("line %d: duration must be a string like \"30s\"", node.Line)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) { return json.Marshal(d.String()) }

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}
