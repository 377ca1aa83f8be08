// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"time"

	"github.com/bigeen/site/internal/content"
	"github.com/bigeen/site/internal/theme"
)

// Defaults returns the configuration used when neither file nor
// environment set a value.
func Defaults() AppConfig {
	return AppConfig{
		LogLevel: "info",
		Server: ServerConfig{
			Listen:          ":8080",
			ReadTimeout:     Duration(10 * time.Second),
			WriteTimeout:    Duration(15 * time.Second),
			IdleTimeout:     Duration(60 * time.Second),
			ShutdownTimeout: Duration(10 * time.Second),
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Listen:  ":9090",
		},
		Site: SiteConfig{
			DefaultMode: string(content.DefaultMode),
			Accent:      theme.DefaultAccent,
		},
		Session: SessionConfig{
			Backend:         BackendMemory,
			CookieName:      "bigeen_session",
			TTL:             Duration(24 * time.Hour),
			CleanupInterval: Duration(5 * time.Minute),
		},
		Redis: RedisConfig{
			Addr:   "localhost:6379",
			Prefix: "bigeen:",
		},
		Contact: ContactConfig{
			OutboxSize: 256,
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerMinute: 300,
			ContactPerMinute:  10,
		},
		Telemetry: TelemetryConfig{
			ServiceName:  "bigeen",
			Exporter:     ExporterGRPC,
			Endpoint:     "localhost:4317",
			SamplingRate: 1.0,
		},
	}
}

// Session backends and trace exporters.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"

	ExporterGRPC = "grpc"
	ExporterHTTP = "http"
)
