package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestCache(t *testing.T, ttl time.Duration) (*miniredis.Miniredis, *NarrativeCache) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := New(NewRedisClient(Config{Addr: mr.Addr()}), ttl)
	t.Cleanup(func() { _ = c.Close() })
	return mr, c
}

func TestNarrativeCache_SetGet(t *testing.T) {
	mr, c := setupTestCache(t, time.Hour)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "abc", "### Answer"))

	val, ok, err := c.Get(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "### Answer", val)
	assert.True(t, mr.Exists(keyPrefix+"abc"))
}

func TestNarrativeCache_Expires(t *testing.T) {
	mr, c := setupTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "abc", "answer"))
	mr.FastForward(2 * time.Minute)

	_, ok, err := c.Get(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNarrativeCache_ServerDown(t *testing.T) {
	mr, c := setupTestCache(t, time.Minute)
	mr.Close()

	_, ok, err := c.Get(context.Background(), "abc")
	assert.Error(t, err)
	assert.False(t, ok)
	assert.Error(t, c.Ping(context.Background()))
}
