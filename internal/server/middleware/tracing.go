// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package middleware

import (
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/bigeen/site/internal/log"
	"github.com/bigeen/site/internal/telemetry"
)

// Tracing opens a server span per request. The span is renamed to the chi
// route pattern once routing is done so span names stay bounded.
func Tracing(service string, opts ...otelhttp.Option) func(http.Handler) http.Handler {
	opts = append([]otelhttp.Option{
		otelhttp.WithFilter(shouldTrace),
		otelhttp.WithSpanNameFormatter(spanNameFormatter),
	}, opts...)

	return func(next http.Handler) http.Handler {
		annotate := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			span := trace.SpanFromContext(r.Context())
			if !span.IsRecording() {
				return
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := routeLabel(r, "unmatched")
			span.SetName(r.Method + " " + route)
			span.SetAttributes(telemetry.HTTPAttributes(r.Method, route, urlLabel(r), status)...)
			if id := log.RequestIDFromContext(r.Context()); id != "" {
				span.SetAttributes(attribute.String(telemetry.HTTPRequestIDKey, id))
			}
		})
		return otelhttp.NewHandler(annotate, service, opts...)
	}
}

// shouldTrace skips probes and scrapes.
func shouldTrace(r *http.Request) bool {
	switch r.URL.Path {
	case "/healthz", "/readyz", "/metrics":
		return false
	}
	return true
}

func spanNameFormatter(_ string, r *http.Request) string {
	return r.Method + " " + urlLabel(r)
}

// urlLabel is the request path with query values stripped.
func urlLabel(r *http.Request) string {
	if r.URL.RawQuery != "" {
		return r.URL.Path + "?"
	}
	return r.URL.Path
}
