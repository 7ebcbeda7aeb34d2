package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gomodule/redigo/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, ttl time.Duration) (*StatusCache, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	pool := &redis.Pool{
		Dial: func() (redis.Conn, error) {
			return redis.Dial("tcp", s.Addr())
		},
	}
	t.Cleanup(func() { _ = pool.Close() })
	return NewStatusCache(pool, ttl), s
}

func TestStatusCache_StartFinish(t *testing.T) {
	ctx := context.Background()
	cache, s := newTestCache(t, time.Hour)

	indexing, err := cache.IsIndexing(ctx, 5)
	require.NoError(t, err)
	assert.False(t, indexing)

	require.NoError(t, cache.IndexingStarted(ctx, 5))
	indexing, err = cache.IsIndexing(ctx, 5)
	require.NoError(t, err)
	assert.True(t, indexing)
	assert.Equal(t, time.Hour, s.TTL("analyzer:indexing:5"))

	require.NoError(t, cache.IndexingFinished(ctx, 5))
	indexing, err = cache.IsIndexing(ctx, 5)
	require.NoError(t, err)
	assert.False(t, indexing)
	assert.False(t, s.Exists("analyzer:indexing:5"))
}

func TestStatusCache_OverlappingRuns(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(t, 0)

	require.NoError(t, cache.IndexingStarted(ctx, 5))
	require.NoError(t, cache.IndexingStarted(ctx, 5))
	require.NoError(t, cache.IndexingFinished(ctx, 5))

	indexing, err := cache.IsIndexing(ctx, 5)
	require.NoError(t, err)
	assert.True(t, indexing)

	require.NoError(t, cache.IndexingFinished(ctx, 5))
	indexing, err = cache.IsIndexing(ctx, 5)
	require.NoError(t, err)
	assert.False(t, indexing)
}

func TestStatusCache_FinishWithoutStart(t *testing.T) {
	ctx := context.Background()
	cache, s := newTestCache(t, 0)

	require.NoError(t, cache.IndexingFinished(ctx, 9))
	assert.False(t, s.Exists("analyzer:indexing:9"))

	indexing, err := cache.IsIndexing(ctx, 9)
	require.NoError(t, err)
	assert.False(t, indexing)
}

func TestStatusCache_ExpiresAfterTTL(t *testing.T) {
	ctx := context.Background()
	cache, s := newTestCache(t, time.Minute)

	require.NoError(t, cache.IndexingStarted(ctx, 3))
	s.FastForward(2 * time.Minute)

	indexing, err := cache.IsIndexing(ctx, 3)
	require.NoError(t, err)
	assert.False(t, indexing)
}

func TestStatusCache_ConnectionError(t *testing.T) {
	ctx := context.Background()
	cache, s := newTestCache(t, 0)
	s.Close()

	assert.Error(t, cache.IndexingStarted(ctx, 1))
	_, err := cache.IsIndexing(ctx, 1)
	assert.Error(t, err)
}
