// SPDX-License-Identifier: MIT

package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/bigeen/site/internal/cache"
	"github.com/bigeen/site/internal/content"
	"github.com/bigeen/site/internal/session"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeRecords serves fixed records per mode.
type fakeRecords map[content.Mode]content.Record

func (f fakeRecords) Get(m content.Mode) content.Record { return f[m] }

func record(headline string, features int) content.Record {
	rec := content.Record{Hero: content.Hero{Headline: headline}}
	for i := range features {
		rec.Features = append(rec.Features, content.Feature{ID: string(rune('a' + i))})
	}
	return rec
}

// siteManager registers the checkers the daemon wires: content copy and the
// session backend.
func siteManager(reg Records, sessionsCritical bool, ping func(context.Context) error) *Manager {
	m := NewManager("test")
	m.RegisterChecker(NewContentChecker(reg))
	m.RegisterChecker(NewFuncChecker("sessions", sessionsCritical, ping))
	return m
}

func serveReady(t *testing.T, m *Manager, target string) (*httptest.ResponseRecorder, ReadinessResponse) {
	t.Helper()
	rec := httptest.NewRecorder()
	m.ServeReady(rec, httptest.NewRequest(http.MethodGet, target, nil))
	var resp ReadinessResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return rec, resp
}

func TestContentChecker(t *testing.T) {
	var missing *content.Registry

	tests := []struct {
		name    string
		records Records
		status  Status
		message string
		err     string
	}{
		{
			name:    "embedded_copy",
			records: content.Default(),
			status:  StatusHealthy,
			message: "2 modes",
		},
		{
			name:    "registry_not_loaded",
			records: missing,
			status:  StatusUnhealthy,
			err:     "not loaded",
		},
		{
			name: "tech_without_headline",
			records: fakeRecords{
				content.ModeConsult: record("Scale", 3),
				content.ModeTech:    record("", 3),
			},
			status: StatusUnhealthy,
			err:    "mode tech has no headline",
		},
		{
			name: "consult_without_features",
			records: fakeRecords{
				content.ModeConsult: record("Scale", 0),
				content.ModeTech:    record("Software", 3),
			},
			status:  StatusDegraded,
			message: "mode consult has no features",
		},
		{
			name: "counts_features_across_modes",
			records: fakeRecords{
				content.ModeConsult: record("Scale", 2),
				content.ModeTech:    record("Software", 3),
			},
			status:  StatusHealthy,
			message: "2 modes, 5 features",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewContentChecker(tt.records)
			assert.Equal(t, "content", c.Name())

			res := c.Check(context.Background())
			assert.Equal(t, tt.status, res.Status)
			if tt.message != "" {
				assert.Contains(t, res.Message, tt.message)
			}
			if tt.err != "" {
				assert.Contains(t, res.Error, tt.err)
			}
		})
	}
}

func TestReadiness_SessionBackendCriticality(t *testing.T) {
	down := func(context.Context) error { return errors.New("dial tcp 127.0.0.1:6379: connection refused") }
	up := func(context.Context) error { return nil }

	tests := []struct {
		name     string
		critical bool
		ping     func(context.Context) error
		code     int
		status   Status
	}{
		{name: "backend_up", critical: true, ping: up, code: http.StatusOK, status: StatusHealthy},
		{name: "critical_backend_down", critical: true, ping: down, code: http.StatusServiceUnavailable, status: StatusUnhealthy},
		{name: "optional_backend_down", critical: false, ping: down, code: http.StatusOK, status: StatusDegraded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := siteManager(content.Default(), tt.critical, tt.ping)

			rec, resp := serveReady(t, m, "/readyz?verbose=true")
			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.status, resp.Status)
			assert.Equal(t, tt.code == http.StatusOK, resp.Ready)
			assert.Equal(t, StatusHealthy, resp.Checks["content"].Status)
			assert.Equal(t, tt.status, resp.Checks["sessions"].Status)
		})
	}
}

func TestReadiness_RedisSessionBackend(t *testing.T) {
	mr := miniredis.RunT(t)
	rc, err := cache.NewRedisCache(context.Background(), cache.RedisConfig{Addr: mr.Addr(), Prefix: "bigeen:"}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = rc.Close() })

	sessions := session.NewManager(rc, session.Config{})
	m := siteManager(content.Default(), true, sessions.HealthCheck)
	m.timeout = 500 * time.Millisecond

	resp := m.Ready(context.Background())
	assert.True(t, resp.Ready)
	assert.Equal(t, "reachable", resp.Checks["sessions"].Message)

	mr.Close()
	resp = m.Ready(context.Background())
	assert.False(t, resp.Ready)
	assert.Equal(t, StatusUnhealthy, resp.Checks["sessions"].Status)
	assert.NotEmpty(t, resp.Checks["sessions"].Error)
}

func TestServeReady_HidesChecksUnlessVerbose(t *testing.T) {
	m := siteManager(content.Default(), true, func(context.Context) error { return errors.New("down") })

	rec, resp := serveReady(t, m, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Nil(t, resp.Checks)

	_, resp = serveReady(t, m, "/readyz?verbose=true")
	assert.Len(t, resp.Checks, 2)
	assert.Equal(t, "down", resp.Checks["sessions"].Error)
}

func TestServeHealth_LiveWhileSessionsDown(t *testing.T) {
	m := siteManager(content.Default(), true, func(context.Context) error { return errors.New("down") })
	m.started = time.Now().Add(-90 * time.Second)

	rec := httptest.NewRecorder()
	m.ServeHealth(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	var resp HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, StatusHealthy, resp.Status, "checks only run when verbose")
	assert.Equal(t, "test", resp.Version)
	assert.GreaterOrEqual(t, resp.Uptime, int64(90))
	assert.Nil(t, resp.Checks)

	rec = httptest.NewRecorder()
	m.ServeHealth(rec, httptest.NewRequest(http.MethodGet, "/healthz?verbose=true", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, StatusUnhealthy, resp.Status)
	assert.Equal(t, StatusUnhealthy, resp.Checks["sessions"].Status)
}

func TestManager_NoCheckersIsReady(t *testing.T) {
	resp := NewManager("test").Ready(context.Background())
	assert.True(t, resp.Ready)
	assert.Equal(t, StatusHealthy, resp.Status)
	assert.Nil(t, resp.Checks)
}

func TestManager_ChecksRunConcurrently(t *testing.T) {
	m := NewManager("test")
	for _, name := range []string{"content", "sessions", "content_file"} {
		m.RegisterChecker(NewFuncChecker(name, true, func(ctx context.Context) error {
			select {
			case <-time.After(200 * time.Millisecond):
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		}))
	}

	start := time.Now()
	resp := m.Ready(context.Background())
	assert.True(t, resp.Ready)
	assert.Len(t, resp.Checks, 3)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestManager_CheckTimeout(t *testing.T) {
	m := siteManager(content.Default(), true, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	m.timeout = 20 * time.Millisecond

	resp := m.Ready(context.Background())
	assert.False(t, resp.Ready)
	assert.Contains(t, resp.Checks["sessions"].Error, "deadline exceeded")
	assert.Equal(t, StatusHealthy, resp.Checks["content"].Status, "a slow check does not hold up the others")
}

func TestFuncChecker(t *testing.T) {
	ok := NewFuncChecker("sessions", true, func(context.Context) error { return nil })
	assert.Equal(t, "sessions", ok.Name())
	assert.Equal(t, CheckResult{Status: StatusHealthy, Message: "reachable"}, ok.Check(context.Background()))

	down := func(context.Context) error { return errors.New("connection refused") }
	assert.Equal(t, CheckResult{Status: StatusUnhealthy, Error: "connection refused"},
		NewFuncChecker("sessions", true, down).Check(context.Background()))
	assert.Equal(t, CheckResult{Status: StatusDegraded, Error: "connection refused"},
		NewFuncChecker("sessions", false, down).Check(context.Background()))
}

func TestFileChecker_ContentFile(t *testing.T) {
	dir := t.TempDir()
	valid := filepath.Join(dir, "content.yaml")
	require.NoError(t, os.WriteFile(valid, []byte("modes: {}\n"), 0o600))
	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))

	tests := map[string]struct {
		path   string
		status Status
		detail string
	}{
		"embedded_copy_only": {path: "", status: StatusHealthy, detail: "not configured"},
		"operator_file":      {path: valid, status: StatusHealthy},
		"empty_file":         {path: empty, status: StatusDegraded, detail: "file is empty"},
		"missing_file":       {path: filepath.Join(dir, "gone.yaml"), status: StatusUnhealthy, detail: "file not found"},
		"directory":          {path: dir, status: StatusUnhealthy, detail: "got directory"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c := NewFileChecker("content_file", tt.path)
			assert.Equal(t, "content_file", c.Name())

			res := c.Check(context.Background())
			assert.Equal(t, tt.status, res.Status)
			if tt.detail != "" {
				assert.Contains(t, res.Message+res.Error, tt.detail)
			}
		})
	}
}
