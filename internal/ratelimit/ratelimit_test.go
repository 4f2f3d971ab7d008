package ratelimit

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T, perMinute int) (*RedisLimiter, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	client, err := Connect(context.Background(), mr.Addr(), "", 0, logger)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return NewRedisLimiter(client, perMinute), mr
}

func TestRedisLimiterAllowsUpToLimit(t *testing.T) {
	limiter, mr := newTestLimiter(t, 3)
	fixed := time.Date(2024, 1, 1, 12, 0, 30, 0, time.UTC)
	limiter.now = func() time.Time { return fixed }
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := limiter.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok, "request %d", i+1)
	}

	ok, err := limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = limiter.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, ok)

	key := Key("10.0.0.1", fixed)
	assert.True(t, mr.Exists(key))
	assert.Equal(t, 2*Window, mr.TTL(key))
}

func TestRedisLimiterResetsEachWindow(t *testing.T) {
	limiter, _ := newTestLimiter(t, 1)
	current := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return current }
	ctx := context.Background()

	ok, err := limiter.Allow(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = limiter.Allow(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, ok)

	current = current.Add(Window)
	ok, err = limiter.Allow(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestConnectFailsWithoutServer(t *testing.T) {
	mr := miniredis.NewMiniRedis()
	require.NoError(t, mr.Start())
	addr := mr.Addr()
	mr.Close()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	_, err := Connect(context.Background(), addr, "", 0, logger)
	assert.Error(t, err)
}
