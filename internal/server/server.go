// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package server assembles the public HTTP surface of the site: page routes,
// the form endpoints that mutate the session store, static assets and the
// health probes, all behind the canonical middleware stack.
package server

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/bigeen/site/internal/config"
	"github.com/bigeen/site/internal/contact"
	"github.com/bigeen/site/internal/content"
	"github.com/bigeen/site/internal/health"
	"github.com/bigeen/site/internal/log"
	"github.com/bigeen/site/internal/motion"
	"github.com/bigeen/site/internal/pages"
	"github.com/bigeen/site/internal/server/middleware"
	"github.com/bigeen/site/internal/session"
	"github.com/bigeen/site/internal/shell"
	"github.com/bigeen/site/internal/theme"
	"github.com/bigeen/site/internal/ui"
	"github.com/bigeen/site/internal/web"
)

// Route paths served outside the page table.
const (
	ModePath     = "/mode"
	StatePath    = "/api/state"
	StaticPrefix = "/static"
	HealthPath   = "/healthz"
	ReadyPath    = "/readyz"
	MetricsPath  = "/metrics"
)

// maxFormBytes bounds every form body.
const maxFormBytes = 64 << 10

var (
	ErrMissingContent  = errors.New("content registry is required")
	ErrMissingSessions = errors.New("session manager is required")
	ErrMissingContact  = errors.New("contact service is required")
	ErrMissingHealth   = errors.New("health manager is required")
)

// Deps are the collaborators of the site handler.
type Deps struct {
	Config   config.AppConfig
	Content  *content.Registry
	Sessions *session.Manager
	Contact  *contact.Service
	Health   *health.Manager

	// TracingOptions are passed to the tracing middleware, e.g. a test
	// tracer provider.
	TracingOptions []otelhttp.Option
}

// Validate checks that every required collaborator is present.
func (d Deps) Validate() error {
	var errs []error
	if d.Content == nil {
		errs = append(errs, ErrMissingContent)
	}
	if d.Sessions == nil {
		errs = append(errs, ErrMissingSessions)
	}
	if d.Contact == nil {
		errs = append(errs, ErrMissingContact)
	}
	if d.Health == nil {
		errs = append(errs, ErrMissingHealth)
	}
	return errors.Join(errs...)
}

// Server holds the rendered-site state shared by all requests.
type Server struct {
	cfg      config.AppConfig
	sessions *session.Manager
	contact  *contact.Service
	health   *health.Manager
	shell    *shell.Shell
	assets   *web.Assets
	proxies  []*net.IPNet
	tracing  []otelhttp.Option

	themeCSS  []byte
	themeETag string

	logger zerolog.Logger
}

// New builds a Server from deps.
func New(deps Deps) (*Server, error) {
	if err := deps.Validate(); err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	proxies, err := middleware.ParseCIDRs(deps.Config.Server.TrustedProxies)
	if err != nil {
		return nil, fmt.Errorf("server: trusted proxies: %w", err)
	}
	assets, err := web.NewAssets()
	if err != nil {
		return nil, fmt.Errorf("server: static assets: %w", err)
	}

	tokens := theme.Default()
	driver := motion.NewDriver()
	kit := ui.NewKit(tokens, driver)
	assembler := pages.New(kit, deps.Content, deps.Config.Site.Accent)

	css := []byte(theme.Stylesheet(tokens) + "\n" + driver.CSS())

	return &Server{
		cfg:       deps.Config,
		sessions:  deps.Sessions,
		contact:   deps.Contact,
		health:    deps.Health,
		shell:     shell.New(assembler, kit),
		assets:    assets,
		proxies:   proxies,
		tracing:   deps.TracingOptions,
		themeCSS:  css,
		themeETag: web.ETag(css),
		logger:    log.WithComponent("server"),
	}, nil
}

// Handler returns the site router.
func (s *Server) Handler() http.Handler {
	cfg := s.cfg
	stack := middleware.StackConfig{
		AllowedOrigins:        cfg.Server.AllowedOrigins,
		EnableSecurityHeaders: true,
		CSP:                   cfg.Server.CSP,
		TrustedProxies:        s.proxies,
		EnableMetrics:         true,
		TracingOptions:        s.tracing,
		EnableLogging:         true,
		EnableRateLimit:       cfg.RateLimit.Enabled,
		RequestsPerMinute:     cfg.RateLimit.RequestsPerMinute,
		RateLimitWhitelist:    cfg.RateLimit.Whitelist,
	}
	if cfg.Telemetry.Enabled {
		stack.TracingService = cfg.Telemetry.ServiceName
	}

	r := middleware.NewRouter(stack)
	r.Use(chimw.StripSlashes, chimw.GetHead)

	r.Get(HealthPath, s.health.ServeHealth)
	r.Get(ReadyPath, s.health.ServeReady)
	r.Get(shell.ThemeCSSPath, s.handleThemeCSS)
	r.Handle(StaticPrefix+"/*", http.StripPrefix(StaticPrefix, s.assets))

	r.Group(func(r chi.Router) {
		r.Use(s.sessions.Middleware)

		for _, route := range shell.Routes() {
			r.Get(route.Path, s.handlePage(route))
		}
		r.Get(StatePath, s.handleState)

		r.Group(func(r chi.Router) {
			r.Use(limitBody)
			r.Post(ModePath, s.handleMode)
			r.Post(pages.ContactFieldsPath, s.handleContactField)
			r.With(s.contactLimiter()).Post(pages.ContactSubmitPath, s.handleContactSubmit)
		})
	})

	r.NotFound(s.handleNotFound)
	r.MethodNotAllowed(s.handleMethodNotAllowed)
	return r
}

// MetricsHandler serves the Prometheus registry on the metrics listener.
func MetricsHandler() http.Handler {
	mux := chi.NewRouter()
	mux.Use(middleware.Recoverer)
	mux.Handle(MetricsPath, promhttp.Handler())
	return mux
}

// contactLimiter is the tighter per-client limit on form submissions.
func (s *Server) contactLimiter() func(http.Handler) http.Handler {
	if !s.cfg.RateLimit.Enabled || s.cfg.RateLimit.ContactPerMinute <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return middleware.RateLimit(middleware.RateLimitConfig{
		RequestLimit: s.cfg.RateLimit.ContactPerMinute,
		WindowSize:   time.Minute,
		KeyFuncs:     []httprate.KeyFunc{httprate.KeyByIP, httprate.KeyByEndpoint},
		Whitelist:    s.cfg.RateLimit.Whitelist,
	})
}

func limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
		next.ServeHTTP(w, r)
	})
}
