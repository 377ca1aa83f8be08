// SPDX-License-Identifier: MIT

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/httprate"

	"github.com/bigeen/site/internal/log"
	"github.com/bigeen/site/internal/server/problem"
)

// RateLimitConfig is a per-client sliding window limit.
type RateLimitConfig struct {
	// RequestLimit is the number of requests allowed per WindowSize.
	RequestLimit int
	WindowSize   time.Duration
	// KeyFuncs extract the limit key; empty means by client IP.
	KeyFuncs []httprate.KeyFunc
	// Whitelist bypasses the limit for matching client IPs or CIDRs.
	Whitelist []string
}

// RateLimit limits requests with httprate's sliding window counter.
// Rejections are 429 problem responses with Retry-After. An invalid
// whitelist entry is logged and ignored.
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	keyFuncs := cfg.KeyFuncs
	if len(keyFuncs) == 0 {
		keyFuncs = []httprate.KeyFunc{httprate.KeyByIP}
	}
	whitelist, err := ParseCIDRs(cfg.Whitelist)
	if err != nil {
		logger := log.WithComponent("ratelimit")
		logger.Warn().Err(err).Msg("ignoring invalid rate limit whitelist")
		whitelist = nil
	}
	retryAfter := strconv.Itoa(int(cfg.WindowSize.Seconds()))

	limiter := httprate.Limit(
		cfg.RequestLimit,
		cfg.WindowSize,
		httprate.WithKeyFuncs(keyFuncs...),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Retry-After", retryAfter)
			problem.Write(w, r, http.StatusTooManyRequests, "site/rate_limited", "Too Many Requests",
				"RATE_LIMITED", "Too many requests. Please try again later.", nil)
		}),
	)

	return func(next http.Handler) http.Handler {
		limited := limiter(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(whitelist) > 0 {
				if ip := remoteIP(r); ip != nil && IsIPAllowed(ip, whitelist) {
					next.ServeHTTP(w, r)
					return
				}
			}
			limited.ServeHTTP(w, r)
		})
	}
}
