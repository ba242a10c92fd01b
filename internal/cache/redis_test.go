package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/clearlens/camwatch/internal/cache"
	"github.com/clearlens/camwatch/pkg/api"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, ttl time.Duration) (*cache.RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	c, err := cache.NewRedisCache(cache.Config{
		URL: "redis://" + mr.Addr(),
		TTL: ttl,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	return c, mr
}

func TestRedisCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t, 0)
	ctx := context.Background()

	acct := api.Account{ID: "42", Username: "alice", Role: "user", Salt: "s1"}
	require.NoError(t, c.SetAccount(ctx, acct))

	got, err := c.GetAccount(ctx, "42")
	require.NoError(t, err)
	require.Equal(t, acct, got)
}

func TestRedisCacheMiss(t *testing.T) {
	c, _ := newTestCache(t, 0)

	_, err := c.GetAccount(context.Background(), "missing")
	require.ErrorIs(t, err, cache.ErrMiss)
}

func TestRedisCacheDelete(t *testing.T) {
	c, _ := newTestCache(t, 0)
	ctx := context.Background()

	require.NoError(t, c.SetAccount(ctx, api.Account{ID: "42", Username: "alice", Role: "user", Salt: "s1"}))
	require.NoError(t, c.DeleteAccount(ctx, "42"))

	_, err := c.GetAccount(ctx, "42")
	require.ErrorIs(t, err, cache.ErrMiss)
}

func TestRedisCacheCorruptEntryReportsMiss(t *testing.T) {
	c, mr := newTestCache(t, 0)

	require.NoError(t, mr.Set("user:42", "{not json"))

	_, err := c.GetAccount(context.Background(), "42")
	require.ErrorIs(t, err, cache.ErrMiss)

	// The corrupt entry is also dropped.
	require.False(t, mr.Exists("user:42"))
}

func TestRedisCacheTTL(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.SetAccount(ctx, api.Account{ID: "42", Username: "alice", Role: "user", Salt: "s1"}))

	mr.FastForward(2 * time.Minute)

	_, err := c.GetAccount(ctx, "42")
	require.ErrorIs(t, err, cache.ErrMiss)
}

func TestRedisCacheInvalidURL(t *testing.T) {
	_, err := cache.NewRedisCache(cache.Config{URL: "not-a-url"})
	require.Error(t, err)
}
