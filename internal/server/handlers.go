// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel/trace"
	g "maragu.dev/gomponents"

	"github.com/bigeen/site/internal/contact"
	"github.com/bigeen/site/internal/content"
	"github.com/bigeen/site/internal/log"
	"github.com/bigeen/site/internal/metrics"
	"github.com/bigeen/site/internal/pages"
	"github.com/bigeen/site/internal/server/problem"
	"github.com/bigeen/site/internal/session"
	"github.com/bigeen/site/internal/shell"
	"github.com/bigeen/site/internal/store"
	"github.com/bigeen/site/internal/telemetry"
)

// FetchHeader marks field updates sent by form.js; they get 204 instead of
// a redirect.
const (
	FetchHeader = "X-Requested-With"
	FetchValue  = "fetch"
)

func (s *Server) handlePage(route shell.Route) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := s.session(w, r)
		if !ok {
			return
		}
		mode := sess.Store.Mode()
		trace.SpanFromContext(r.Context()).SetAttributes(
			telemetry.PageAttributes(string(route.Page), string(mode))...)

		doc, err := s.shell.Page(route, sess.Store)
		if err != nil {
			s.renderError(w, r, http.StatusInternalServerError, mode, err)
			return
		}
		if s.writeHTML(w, r, http.StatusOK, doc) {
			metrics.IncPageRender(string(route.Page), string(mode))
		}
	}
}

// handleMode sets or toggles the display mode and sends the visitor back to
// the page the switch was on.
func (s *Server) handleMode(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	if !s.parseForm(w, r) {
		return
	}

	logger := log.WithComponentFromContext(r.Context(), "store")
	cancel := sess.Store.Subscribe(func(c store.ModeChange) {
		metrics.IncModeChange(string(c.New))
		logger.Info().
			Str(log.FieldEvent, "mode.changed").
			Str(log.FieldOldMode, string(c.Old)).
			Str(log.FieldNewMode, string(c.New)).
			Msg("display mode changed")
	})
	defer cancel()

	switch raw := strings.TrimSpace(r.PostFormValue("mode")); raw {
	case "", "toggle":
		sess.Store.Toggle()
	default:
		mode, err := content.ParseMode(raw)
		if err != nil {
			problem.Write(w, r, http.StatusBadRequest, "site/invalid_mode", "Bad Request",
				"INVALID_MODE", err.Error(), nil)
			return
		}
		if err := sess.Store.SetMode(mode); err != nil {
			s.internalError(w, r, err)
			return
		}
	}

	http.Redirect(w, r, returnPath(r.PostFormValue("return_to")), http.StatusSeeOther)
}

// returnPath accepts only the path of a known page. Anything else, including
// absolute and scheme-relative URLs, falls back to the home page.
func returnPath(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.Contains(raw, `\`) {
		return "/"
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host != "" || u.Scheme != "" {
		return "/"
	}
	route, ok := shell.Lookup(u.Path)
	if !ok {
		return "/"
	}
	if u.Fragment != "" {
		return route.Path + "#" + url.PathEscape(u.Fragment)
	}
	return route.Path
}

// handleContactField applies one field edit.
func (s *Server) handleContactField(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	if !s.parseForm(w, r) {
		return
	}

	field, err := store.ParseField(r.PostFormValue("field"))
	if err != nil {
		problem.Write(w, r, http.StatusBadRequest, "contact/unknown_field", "Bad Request",
			"UNKNOWN_FIELD", err.Error(), map[string]any{"fields": store.Fields()})
		return
	}
	if err := sess.Store.SetContactFormField(field, r.PostFormValue("value")); err != nil {
		s.internalError(w, r, err)
		return
	}
	metrics.IncContactFieldUpdate(string(field))

	if r.Header.Get(FetchHeader) == FetchValue {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, pages.ContactFormHref, http.StatusSeeOther)
}

// handleContactSubmit applies every posted field, then submits the form.
// The outcome lands in the store and is shown after the redirect.
func (s *Server) handleContactSubmit(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	if !s.parseForm(w, r) {
		return
	}

	for _, f := range store.Fields() {
		if values, posted := r.PostForm[string(f)]; posted && len(values) > 0 {
			if err := sess.Store.SetContactFormField(f, values[0]); err != nil {
				s.internalError(w, r, err)
				return
			}
		}
	}

	sub, err := s.contact.Submit(r.Context(), sess.Store)
	trace.SpanFromContext(r.Context()).SetAttributes(
		telemetry.ContactAttributes(string(sub.Status), len(sub.FieldErrors))...)

	// The outbox logs accepted submissions.
	logger := log.WithComponentFromContext(r.Context(), "contact")
	switch {
	case err == nil:
	case errors.Is(err, contact.ErrIncomplete):
		logger.Info().
			Str(log.FieldEvent, "contact.incomplete").
			Int("missing", len(sub.FieldErrors)).
			Msg("contact form incomplete")
	default:
		logger.Error().Err(err).
			Str(log.FieldEvent, "contact.failed").
			Msg("contact form submission failed")
	}

	http.Redirect(w, r, pages.ContactFormHref, http.StatusSeeOther)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	if err := json.NewEncoder(w).Encode(sess.Store.Snapshot()); err != nil {
		logger := log.WithContext(r.Context(), s.logger)
		logger.Error().Err(err).
			Str(log.FieldEvent, "state.encode_error").
			Msg("failed to encode state")
	}
}

func (s *Server) handleThemeCSS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("ETag", s.themeETag)
	w.Header().Set("Cache-Control", "public, max-age=3600, must-revalidate")
	if r.Header.Get("If-None-Match") == s.themeETag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	_, _ = w.Write(s.themeCSS)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	if wantsHTML(r) {
		s.renderError(w, r, http.StatusNotFound, s.peekMode(r), nil)
		return
	}
	problem.Write(w, r, http.StatusNotFound, "site/not_found", "Not Found", "NOT_FOUND", "", nil)
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	problem.Write(w, r, http.StatusMethodNotAllowed, "site/method_not_allowed", "Method Not Allowed",
		"METHOD_NOT_ALLOWED", r.Method+" is not supported on this path", nil)
}

// session returns the request session or answers 500.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := session.FromContext(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return nil, false
	}
	return sess, true
}

func (s *Server) parseForm(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			problem.Write(w, r, http.StatusRequestEntityTooLarge, "site/body_too_large", "Payload Too Large",
				"BODY_TOO_LARGE", "", map[string]any{"limit": tooLarge.Limit})
			return false
		}
		problem.Write(w, r, http.StatusBadRequest, "site/invalid_form", "Bad Request",
			"INVALID_FORM", err.Error(), nil)
		return false
	}
	return true
}

// peekMode reads the visitor's mode without creating a session.
func (s *Server) peekMode(r *http.Request) content.Mode {
	def := s.sessions.DefaultMode()
	snap, found, err := s.sessions.Peek(r)
	if err != nil || !found || !snap.Mode.Valid() {
		return def
	}
	return snap.Mode
}

func wantsHTML(r *http.Request) bool {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		return false
	}
	accept := r.Header.Get("Accept")
	return accept == "" || strings.Contains(accept, "text/html") || strings.Contains(accept, "*/*")
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	logger := log.WithContext(r.Context(), s.logger)
	logger.Error().Err(err).
		Str(log.FieldEvent, "request.failed").
		Str(log.FieldPath, r.URL.Path).
		Msg("request failed")
	problem.Write(w, r, http.StatusInternalServerError, "site/internal_error", "Internal Server Error",
		"INTERNAL_ERROR", "", nil)
}

// renderError serves the HTML error page. err, when set, is logged.
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, mode content.Mode, err error) {
	if err != nil {
		logger := log.WithContext(r.Context(), s.logger)
		logger.Error().Err(err).
			Str(log.FieldEvent, "page.render_failed").
			Str(log.FieldPath, r.URL.Path).
			Msg("page render failed")
	}
	s.writeHTML(w, r, status, s.shell.ErrorPage(status, mode, r.URL.Path))
}

// writeHTML renders doc fully before writing so a render failure can still
// produce a clean 500. It reports whether the document was sent.
func (s *Server) writeHTML(w http.ResponseWriter, r *http.Request, status int, doc g.Node) bool {
	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		s.internalError(w, r, err)
		return false
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if r.Method != http.MethodHead {
		_, _ = w.Write(buf.Bytes())
	}
	return true
}
