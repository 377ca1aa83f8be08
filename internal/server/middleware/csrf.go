// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package middleware

import (
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/bigeen/site/internal/server/problem"
)

// proxyHeaders disable the same-origin fallback: behind a proxy the Host
// seen here is not the one the browser used.
var proxyHeaders = []string{
	"Forwarded",
	"X-Forwarded-For",
	"X-Forwarded-Host",
	"X-Forwarded-Proto",
	"X-Forwarded-Server",
}

type originPolicy struct {
	any     bool
	allowed map[string]bool
}

func newOriginPolicy(allowedOrigins []string) originPolicy {
	p := originPolicy{allowed: make(map[string]bool)}
	for _, origin := range allowedOrigins {
		o := strings.TrimSpace(origin)
		switch {
		case o == "":
		case o == "*":
			p.any = true
		default:
			if n, ok := normalizeOrigin(o); ok {
				p.allowed[n] = true
			}
		}
	}
	return p
}

// allows reports whether a request from origin may change state. Listed
// origins always pass; otherwise only a strict same-origin request without
// forwarding headers does.
func (p originPolicy) allows(origin string, r *http.Request) bool {
	if p.any || p.allowed[origin] {
		return true
	}
	for _, h := range proxyHeaders {
		if r.Header.Get(h) != "" {
			return false
		}
	}
	return origin == strictSameOrigin(r)
}

// CSRFProtection rejects state-changing requests whose Origin (or Referer)
// is missing or untrusted. Safe methods pass untouched.
func CSRFProtection(allowedOrigins []string) func(http.Handler) http.Handler {
	policy := newOriginPolicy(allowedOrigins)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}

			origin := requestOrigin(r)
			if origin == "" {
				writeCSRFProblem(w, r, "Missing origin or referer header")
				return
			}
			if !policy.allows(origin, r) {
				writeCSRFProblem(w, r, "CSRF check failed: origin not trusted")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeCSRFProblem(w http.ResponseWriter, r *http.Request, detail string) {
	problem.Write(w, r, http.StatusForbidden, "site/csrf", "Forbidden", "CSRF_FORBIDDEN", detail, nil)
}

// requestOrigin prefers the Origin header and falls back to the Referer's
// scheme and host.
func requestOrigin(r *http.Request) string {
	if o, ok := normalizeOrigin(r.Header.Get("Origin")); ok {
		return o
	}
	ref, err := url.Parse(r.Header.Get("Referer"))
	if err != nil || ref.Scheme == "" || ref.Host == "" {
		return ""
	}
	o, _ := normalizeOrigin(ref.Scheme + "://" + ref.Host)
	return o
}

// strictSameOrigin rebuilds the origin from Host and the connection state.
func strictSameOrigin(r *http.Request) string {
	if r.Host == "" {
		return ""
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	o, _ := normalizeOrigin(scheme + "://" + r.Host)
	return o
}

// normalizeOrigin lowercases scheme and host and drops default ports.
func normalizeOrigin(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", false
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", false
	}
	host := strings.ToLower(u.Hostname())
	if host == "" || strings.ContainsAny(host, " \t\r\n/@\\") {
		return "", false
	}

	port := u.Port()
	if port != "" {
		n, err := strconv.Atoi(port)
		if err != nil || n < 1 || n > 65535 {
			return "", false
		}
	}
	if (scheme == "http" && port == "80") || (scheme == "https" && port == "443") {
		port = ""
	}

	authority := host
	if strings.Contains(host, ":") {
		authority = "[" + host + "]"
	}
	if port != "" {
		authority = net.JoinHostPort(host, port)
	}
	return scheme + "://" + authority, true
}
