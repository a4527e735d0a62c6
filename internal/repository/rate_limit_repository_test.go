package repository

import (
	"context"
	"crypto/sha256"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniredisLimiter(t *testing.T) (*miniredis.Miniredis, RateLimitRepository) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewRedisRateLimitRepository(client)
}

func TestCheckRateLimitFixedWindow(t *testing.T) {
	mr, limiter := newMiniredisLimiter(t)
	ctx := context.Background()
	key := "auth:203.0.113.7"
	stored := fmt.Sprintf("menupage:rl:%x", sha256.Sum256([]byte(key)))

	allowed, err := limiter.CheckRateLimit(ctx, key, 2, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.True(t, mr.Exists(stored))
	assert.Equal(t, time.Minute, mr.TTL(stored))

	allowed, err = limiter.CheckRateLimit(ctx, key, 2, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.CheckRateLimit(ctx, key, 2, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed)

	// Hits after the first one leave the window where it was.
	assert.Equal(t, time.Minute, mr.TTL(stored))

	mr.FastForward(time.Minute)
	assert.False(t, mr.Exists(stored))

	allowed, err = limiter.CheckRateLimit(ctx, key, 2, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestCheckRateLimitKeysAreIndependent(t *testing.T) {
	_, limiter := newMiniredisLimiter(t)
	ctx := context.Background()

	allowed, err := limiter.CheckRateLimit(ctx, "auth:a", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.CheckRateLimit(ctx, "auth:a", 1, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = limiter.CheckRateLimit(ctx, "auth:b", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestCheckRateLimitAllowsWhenRedisFails(t *testing.T) {
	mr, limiter := newMiniredisLimiter(t)
	mr.SetError("ERR server unavailable")

	allowed, err := limiter.CheckRateLimit(context.Background(), "auth:a", 1, time.Minute)
	require.Error(t, err)
	assert.True(t, allowed)
}
