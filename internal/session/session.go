// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package session binds a store.Store to each visitor via a cookie and keeps
// its snapshot in a cache.Cache between requests.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bigeen/site/internal/cache"
	"github.com/bigeen/site/internal/content"
	"github.com/bigeen/site/internal/log"
	"github.com/bigeen/site/internal/metrics"
	"github.com/bigeen/site/internal/store"
)

// ErrSessionNotFound is returned by FromContext outside the middleware.
var ErrSessionNotFound = errors.New("session not found in context")

const (
	DefaultCookieName     = "bigeen_session"
	DefaultTTL            = 24 * time.Hour
	DefaultPersistTimeout = 2 * time.Second

	keyPrefix = "session:"
)

// Config controls the session cookie and lifetime.
type Config struct {
	CookieName     string
	TTL            time.Duration
	Secure         bool
	DefaultMode    content.Mode
	PersistTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.CookieName == "" {
		c.CookieName = DefaultCookieName
	}
	if c.TTL <= 0 {
		c.TTL = DefaultTTL
	}
	if !c.DefaultMode.Valid() {
		c.DefaultMode = content.DefaultMode
	}
	if c.PersistTimeout <= 0 {
		c.PersistTimeout = DefaultPersistTimeout
	}
	return c
}

// Session is the per-request view of a visitor session.
type Session struct {
	ID    string
	Store *store.Store
	// New is true when no previous state was found for ID.
	New bool
}

type ctxKey struct{}

// NewContext returns ctx carrying sess.
func NewContext(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, sess)
}

// FromContext returns the session attached by Manager.Middleware.
func FromContext(ctx context.Context) (*Session, error) {
	if sess, ok := ctx.Value(ctxKey{}).(*Session); ok && sess != nil {
		return sess, nil
	}
	return nil, ErrSessionNotFound
}

type idLock struct {
	mu   sync.Mutex
	refs int
}

// Manager resolves, restores and persists sessions.
type Manager struct {
	cfg    Config
	cache  cache.Cache
	logger zerolog.Logger
	newID  func() string

	// defaultMode overrides cfg.DefaultMode after a config reload.
	defaultMode atomic.Value

	mu    sync.Mutex
	locks map[string]*idLock
}

// NewManager returns a manager backed by c.
func NewManager(c cache.Cache, cfg Config) *Manager {
	m := &Manager{
		cfg:    cfg.withDefaults(),
		cache:  c,
		logger: log.WithComponent("session"),
		newID:  uuid.NewString,
		locks:  make(map[string]*idLock),
	}
	m.defaultMode.Store(m.cfg.DefaultMode)
	return m
}

// Config returns the effective configuration.
func (m *Manager) Config() Config {
	cfg := m.cfg
	cfg.DefaultMode = m.DefaultMode()
	return cfg
}

// DefaultMode is the mode new sessions start in.
func (m *Manager) DefaultMode() content.Mode {
	return m.defaultMode.Load().(content.Mode)
}

// SetDefaultMode changes the mode of sessions created from now on. Existing
// sessions keep their mode.
func (m *Manager) SetDefaultMode(mode content.Mode) error {
	if !mode.Valid() {
		return fmt.Errorf("session: invalid default mode %q", mode)
	}
	if prev := m.DefaultMode(); prev != mode {
		m.defaultMode.Store(mode)
		m.logger.Info().
			Str(log.FieldEvent, "session.default_mode_changed").
			Str("from", string(prev)).
			Str("to", string(mode)).
			Msg("default mode updated")
	}
	return nil
}

// lock serializes requests of one session. The returned func releases it.
func (m *Manager) lock(id string) func() {
	m.mu.Lock()
	l, ok := m.locks[id]
	if !ok {
		l = &idLock{}
		m.locks[id] = l
	}
	l.refs++
	m.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		m.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(m.locks, id)
		}
		m.mu.Unlock()
	}
}

// Middleware attaches a *Session to every request and writes its state back
// to the cache once the handler returns.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := m.cookieID(r)
		if !ok {
			id = m.newID()
		}

		unlock := m.lock(id)
		defer unlock()

		sess := &Session{ID: id, Store: store.New(m.DefaultMode()), New: true}
		if ok {
			sess.New = !m.restore(r.Context(), sess)
		}
		if sess.New {
			metrics.IncSessionCreated()
		}

		http.SetCookie(w, m.cookie(id))

		ctx := NewContext(r.Context(), sess)
		ctx = log.ContextWithSessionID(ctx, id)
		next.ServeHTTP(w, r.WithContext(ctx))

		if err := m.persist(ctx, sess); err != nil {
			metrics.IncSessionPersistError()
			logger := log.WithContext(ctx, m.logger)
			logger.Warn().Err(err).
				Str(log.FieldEvent, "session.persist_failed").
				Msg("session state not saved")
		}
	})
}

func (m *Manager) cookieID(r *http.Request) (string, bool) {
	c, err := r.Cookie(m.cfg.CookieName)
	if err != nil {
		return "", false
	}
	parsed, err := uuid.Parse(c.Value)
	if err != nil {
		return "", false
	}
	return parsed.String(), true
}

func (m *Manager) cookie(id string) *http.Cookie {
	return &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(m.cfg.TTL / time.Second),
		HttpOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// restore loads the stored snapshot into sess.Store. It reports whether
// previous state was found and applied.
func (m *Manager) restore(ctx context.Context, sess *Session) bool {
	raw, found, err := m.cache.Get(ctx, keyPrefix+sess.ID)
	if err != nil {
		metrics.IncSessionRestoreError("backend")
		m.logger.Warn().Err(err).
			Str(log.FieldSessionID, sess.ID).
			Str(log.FieldEvent, "session.restore_failed").
			Msg("session backend unavailable, starting fresh")
		return false
	}
	if !found {
		return false
	}
	var snap store.Snapshot
	if err := json.Unmarshal(raw, &snap); err == nil {
		err = sess.Store.Restore(snap)
	} else {
		err = fmt.Errorf("decode snapshot: %w", err)
	}
	if err != nil {
		metrics.IncSessionRestoreError("corrupt")
		m.logger.Warn().Err(err).
			Str(log.FieldSessionID, sess.ID).
			Str(log.FieldEvent, "session.corrupt").
			Msg("discarding unreadable session state")
		sess.Store = store.New(m.DefaultMode())
		return false
	}
	return true
}

func (m *Manager) persist(ctx context.Context, sess *Session) error {
	raw, err := json.Marshal(sess.Store.Snapshot())
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.cfg.PersistTimeout)
	defer cancel()
	if err := m.cache.Set(ctx, keyPrefix+sess.ID, raw, m.cfg.TTL); err != nil {
		return fmt.Errorf("save session %s: %w", sess.ID, err)
	}
	return nil
}

// Load returns the stored snapshot for id, if any.
func (m *Manager) Load(ctx context.Context, id string) (store.Snapshot, bool, error) {
	raw, found, err := m.cache.Get(ctx, keyPrefix+id)
	if err != nil || !found {
		return store.Snapshot{}, false, err
	}
	var snap store.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return store.Snapshot{}, false, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, true, nil
}

// Peek returns the stored snapshot addressed by the request cookie without
// creating a session or refreshing its cookie. A cookie that is not a valid
// session ID reads as absent and never reaches the cache.
func (m *Manager) Peek(r *http.Request) (store.Snapshot, bool, error) {
	id, ok := m.cookieID(r)
	if !ok {
		return store.Snapshot{}, false, nil
	}
	return m.Load(r.Context(), id)
}

// HealthCheck reports whether the backing cache is reachable.
func (m *Manager) HealthCheck(ctx context.Context) error {
	if hc, ok := m.cache.(interface{ HealthCheck(context.Context) error }); ok {
		return hc.HealthCheck(ctx)
	}
	return nil
}
