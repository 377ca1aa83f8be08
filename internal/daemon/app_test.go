// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package daemon

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/bigeen/site/internal/config"
	"github.com/bigeen/site/internal/log"
)

// stubManager blocks in Start until ctx is done, or fails right away when
// startErr is set.
type stubManager struct {
	started  chan struct{}
	startErr error
}

func newStubManager() *stubManager {
	return &stubManager{started: make(chan struct{})}
}

func (s *stubManager) Start(ctx context.Context) error {
	close(s.started)
	if s.startErr != nil {
		return s.startErr
	}
	<-ctx.Done()
	return nil
}

func (s *stubManager) Shutdown(context.Context) error { return nil }

func (s *stubManager) RegisterShutdownHook(string, ShutdownHook) {}

func noEnv(string) (string, bool) { return "", false }

func newAppHolder(t *testing.T, body string) (*config.Holder, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	loader := config.NewLoader(path, "test").WithLookup(noEnv)
	initial, err := loader.Load()
	require.NoError(t, err)
	return config.NewHolder(initial, loader), path
}

func TestApp_RunRequiresManager(t *testing.T) {
	app := NewApp(log.WithComponent("test"), nil, nil, nil)
	assert.ErrorIs(t, app.Run(context.Background()), ErrMissingManager)
}

func TestApp_AppliesReloadedConfig(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	holder, path := newAppHolder(t, "log_level: info\n")
	applied := make(chan config.AppConfig, 4)
	mgr := newStubManager()

	app := NewApp(log.WithComponent("test"), mgr, holder, func(cfg config.AppConfig) {
		applied <- cfg
	})
	app.reloadSignal = nil

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	select {
	case <-mgr.started:
	case <-time.After(2 * time.Second):
		t.Fatal("manager was not started")
	}

	require.NoError(t, os.WriteFile(path, []byte("log_level: debug\nsite:\n  default_mode: tech\n"), 0o600))
	require.NoError(t, holder.Reload(ctx))

	select {
	case cfg := <-applied:
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "tech", cfg.Site.DefaultMode)
	case <-time.After(2 * time.Second):
		t.Fatal("reloaded config was not applied")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestApp_ManagerErrorStopsRun(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	holder, _ := newAppHolder(t, "log_level: info\n")
	mgr := newStubManager()
	mgr.startErr = errors.New("bind failed")

	app := NewApp(log.WithComponent("test"), mgr, holder, func(config.AppConfig) {})
	app.reloadSignal = nil

	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()

	select {
	case err := <-done:
		assert.EqualError(t, err, "bind failed")
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after manager failure")
	}
}
