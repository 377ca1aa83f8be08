// SPDX-License-Identifier: MIT

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ Cache = (*RedisCache)(nil)

// setupMiniRedis creates a test Redis server using miniredis.
func setupMiniRedis(t *testing.T) (*miniredis.Miniredis, *RedisCache) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, newRedisCacheWithClient(client, "test:", zerolog.Nop())
}

func TestRedisCache_SetGet(t *testing.T) {
	ctx := context.Background()
	mr, cache := setupMiniRedis(t)

	require.NoError(t, cache.Set(ctx, "test-key", []byte(`{"mode":"tech"}`), 5*time.Minute))

	val, found, err := cache.Get(ctx, "test-key")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, `{"mode":"tech"}`, string(val))

	// Stored under the prefix with a TTL.
	assert.True(t, mr.Exists("test:test-key"))
	assert.Equal(t, 5*time.Minute, mr.TTL("test:test-key"))

	stats := cache.Stats()
	assert.Equal(t, int64(1), stats.Sets)
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, 1, stats.CurrentSize)
}

func TestRedisCache_GetMissing(t *testing.T) {
	_, cache := setupMiniRedis(t)

	val, found, err := cache.Get(context.Background(), "nonexistent")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, val)
	assert.Equal(t, int64(1), cache.Stats().Misses)
}

func TestRedisCache_Expiration(t *testing.T) {
	ctx := context.Background()
	mr, cache := setupMiniRedis(t)

	require.NoError(t, cache.Set(ctx, "session", []byte("x"), time.Second))
	mr.FastForward(2 * time.Second)

	_, found, err := cache.Get(ctx, "session")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisCache_Delete(t *testing.T) {
	ctx := context.Background()
	mr, cache := setupMiniRedis(t)

	require.NoError(t, cache.Set(ctx, "k", []byte("v"), time.Minute))
	require.NoError(t, cache.Delete(ctx, "k"))
	assert.False(t, mr.Exists("test:k"))
}

func TestRedisCache_BackendDown(t *testing.T) {
	ctx := context.Background()
	mr, cache := setupMiniRedis(t)
	mr.Close()

	_, found, err := cache.Get(ctx, "k")
	assert.False(t, found)
	assert.Error(t, err)
	assert.Error(t, cache.Set(ctx, "k", []byte("v"), time.Minute))
	assert.Error(t, cache.HealthCheck(ctx))
}

func TestNewRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)

	cache, err := NewRedisCache(context.Background(), RedisConfig{Addr: mr.Addr(), Prefix: "p:"}, zerolog.Nop())
	require.NoError(t, err)
	defer func() { _ = cache.Close() }()

	assert.NoError(t, cache.HealthCheck(context.Background()))
}

func TestNewRedisCache_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisCache(context.Background(), RedisConfig{Addr: addr}, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis connection failed")
}
