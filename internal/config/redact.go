// SPDX-License-Identifier: MIT

package config

// redacted replaces secret values in dumps and logs.
const redacted = "***"

// Redact returns a copy of cfg with secrets masked. Empty secrets stay empty
// so operators can see that nothing is set.
func Redact(cfg AppConfig) AppConfig {
	if cfg.Redis.Password != "" {
		cfg.Redis.Password = redacted
	}
	cfg.Server.AllowedOrigins = append([]string(nil), cfg.Server.AllowedOrigins...)
	cfg.Server.TrustedProxies = append([]string(nil), cfg.Server.TrustedProxies...)
	cfg.RateLimit.Whitelist = append([]string(nil), cfg.RateLimit.Whitelist...)
	return cfg
}
