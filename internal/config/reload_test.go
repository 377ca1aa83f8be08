// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func newTestHolder(t *testing.T, body string) (*Holder, string) {
	t.Helper()
	path := writeConfig(t, body)
	loader := NewLoader(path, "test").WithLookup(envMap(nil))
	initial, err := loader.Load()
	require.NoError(t, err)
	h := NewHolder(initial, loader)
	h.debounce = 20 * time.Millisecond
	return h, path
}

func TestHolder_ReloadAppliesAndNotifies(t *testing.T) {
	h, path := newTestHolder(t, "log_level: info\n")
	ch := make(chan AppConfig, 1)
	h.RegisterListener(ch)

	require.NoError(t, os.WriteFile(path, []byte("log_level: debug\n"), 0o600))
	require.NoError(t, h.Reload(context.Background()))

	assert.Equal(t, "debug", h.Get().LogLevel)
	select {
	case got := <-ch:
		assert.Equal(t, "debug", got.LogLevel)
	default:
		t.Fatal("listener not notified")
	}
}

func TestHolder_ReloadKeepsOldConfigOnError(t *testing.T) {
	h, path := newTestHolder(t, "log_level: warn\n")
	ch := make(chan AppConfig, 1)
	h.RegisterListener(ch)

	require.NoError(t, os.WriteFile(path, []byte("log_level: loud\n"), 0o600))
	err := h.Reload(context.Background())
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Equal(t, "warn", h.Get().LogLevel)
	assert.Empty(t, ch)
}

func TestHolder_UnchangedReloadDoesNotNotify(t *testing.T) {
	h, _ := newTestHolder(t, "log_level: info\n")
	ch := make(chan AppConfig, 1)
	h.RegisterListener(ch)

	require.NoError(t, h.Reload(context.Background()))
	assert.Empty(t, ch)
}

func TestHolder_FullListenerIsSkipped(t *testing.T) {
	h, path := newTestHolder(t, "log_level: info\n")
	ch := make(chan AppConfig) // unbuffered, nobody reading
	h.RegisterListener(ch)

	require.NoError(t, os.WriteFile(path, []byte("log_level: error\n"), 0o600))
	require.NoError(t, h.Reload(context.Background()))
	assert.Equal(t, "error", h.Get().LogLevel)
}

func TestHolder_RunWithoutFileReturns(t *testing.T) {
	h := NewHolder(Defaults(), NewLoader("", "").WithLookup(envMap(nil)))
	assert.NoError(t, h.Run(context.Background()))
}

func TestHolder_RunReloadsOnWriteAndStops(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	h, path := newTestHolder(t, "contact:\n  require_fields: false\n")
	ch := make(chan AppConfig, 1)
	h.RegisterListener(ch)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.Run(ctx) }()

	// The watcher may not be registered yet; keep rewriting until a reload lands.
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	var got AppConfig
wait:
	for {
		select {
		case got = <-ch:
			break wait
		case <-tick.C:
			require.NoError(t, os.WriteFile(path, []byte("contact:\n  require_fields: true\n"), 0o600))
		case <-deadline:
			t.Fatal("config change not picked up")
		}
	}
	assert.True(t, got.Contact.RequireFields)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestHolder_RunIgnoresSiblingFiles(t *testing.T) {
	h, path := newTestHolder(t, "log_level: info\n")
	ch := make(chan AppConfig, 1)
	h.RegisterListener(ch)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.Run(ctx) }()

	sibling := filepath.Join(filepath.Dir(path), "other.yaml")
	require.NoError(t, os.WriteFile(sibling, []byte("log_level: debug\n"), 0o600))

	select {
	case <-ch:
		t.Fatal("sibling file triggered a reload")
	case <-time.After(200 * time.Millisecond):
	}
	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, "info", h.Get().LogLevel)
}
