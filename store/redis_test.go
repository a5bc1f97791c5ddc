package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/tagmine/core"
)

// 需要可用的 Redis：REDIS_ADDR=127.0.0.1:6379 go test ./store/...
func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, client.Ping(ctx).Err())

	prefix := "tagmine:test:" + t.Name() + ":"
	s := NewRedisStoreWithClient(client, prefix)
	t.Cleanup(func() {
		keys, _ := client.Keys(context.Background(), prefix+"*").Result()
		if len(keys) > 0 {
			client.Del(context.Background(), keys...)
		}
		_ = s.Close()
	})
	return s
}

func TestRedisStore_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestRedisStore(t)
	assert.Equal(t, "redis", s.Name())

	_, err := s.Get(ctx, "missing")
	assert.True(t, core.IsStoreNotFound(err))

	require.NoError(t, s.Set(ctx, "k", []byte("v")))
	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	require.NoError(t, s.Delete(ctx, "k"))
	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, s.Delete(ctx, "k"))
}

func TestRedisStore_TTL(t *testing.T) {
	ctx := context.Background()
	s := newTestRedisStore(t)

	require.NoError(t, s.Set(ctx, "k", []byte("v"), 60))
	ttl, err := s.client.TTL(ctx, s.key("k")).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 50*time.Second)

	require.NoError(t, s.Set(ctx, "forever", []byte("v")))
	ttl, err = s.client.TTL(ctx, s.key("forever")).Result()
	require.NoError(t, err)
	assert.Equal(t, time.Duration(-1), ttl)
}

func TestExpiration(t *testing.T) {
	assert.Equal(t, time.Duration(0), expiration(nil))
	assert.Equal(t, time.Duration(0), expiration([]int{-5}))
	assert.Equal(t, 30*time.Second, expiration([]int{30}))
}

func TestNewRedisStore_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	_, err := NewRedisStore(ctx, "127.0.0.1:1", 0)
	assert.Error(t, err)
}
