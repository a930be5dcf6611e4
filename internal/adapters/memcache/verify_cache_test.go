package memcache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/gateway/internal/domain/auth"
)

func TestVerifyCache_SetAndGet(t *testing.T) {
	cache := NewVerifyCache()
	ctx := context.Background()

	rc := auth.RoleCheck{Authenticated: true, IsAdmin: true}
	require.NoError(t, cache.Set(ctx, "fp-1", rc, time.Minute))

	got, ok, err := cache.Get(ctx, "fp-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, rc, *got)
}

func TestVerifyCache_ExpiredEntriesMiss(t *testing.T) {
	cache := NewVerifyCache()
	current := time.Now()
	cache.now = func() time.Time { return current }
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "fp-1", auth.RoleCheck{Authenticated: true}, time.Second))

	current = current.Add(2 * time.Second)
	_, ok, err := cache.Get(ctx, "fp-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyCache_SweepOnSet(t *testing.T) {
	cache := NewVerifyCache()
	current := time.Now()
	cache.now = func() time.Time { return current }
	ctx := context.Background()

	for _, key := range []string{"a", "b", "c"} {
		require.NoError(t, cache.Set(ctx, key, auth.RoleCheck{}, time.Second))
	}

	current = current.Add(time.Minute)
	require.NoError(t, cache.Set(ctx, "d", auth.RoleCheck{}, time.Second))

	cache.mu.Lock()
	defer cache.mu.Unlock()
	assert.Len(t, cache.entries, 1)
}

func TestVerifyCache_IgnoresEmptyKeyAndZeroTTL(t *testing.T) {
	cache := NewVerifyCache()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "", auth.RoleCheck{}, time.Minute))
	require.NoError(t, cache.Set(ctx, "k", auth.RoleCheck{}, 0))

	_, ok, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}
