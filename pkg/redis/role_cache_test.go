package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withMiniredis(t *testing.T) {
	t.Helper()
	mr := miniredis.RunT(t)
	prev := GetClient()
	SetClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(prev) })
}

func TestRoleCache_SetGetInvalidate(t *testing.T) {
	withMiniredis(t)
	cache := NewRoleCache(time.Minute)
	ctx := context.Background()

	teamID, userID := uuid.New(), uuid.New()

	_, hit := cache.GetRole(ctx, teamID, userID)
	assert.False(t, hit)

	cache.SetRole(ctx, teamID, userID, "EDITOR")
	role, hit := cache.GetRole(ctx, teamID, userID)
	require.True(t, hit)
	assert.Equal(t, "EDITOR", role)

	cache.Invalidate(ctx, teamID, userID)
	_, hit = cache.GetRole(ctx, teamID, userID)
	assert.False(t, hit)
}

// Non-member lookups are cached as well, so repeated probes by strangers
// do not hammer the directory.
func TestRoleCache_NegativeEntry(t *testing.T) {
	withMiniredis(t)
	cache := NewRoleCache(time.Minute)
	ctx := context.Background()

	teamID, userID := uuid.New(), uuid.New()
	cache.SetRole(ctx, teamID, userID, "NONE")

	role, hit := cache.GetRole(ctx, teamID, userID)
	require.True(t, hit)
	assert.Equal(t, "NONE", role)
}

func TestRoleCache_KeysAreScopedPerPair(t *testing.T) {
	withMiniredis(t)
	cache := NewRoleCache(time.Minute)
	ctx := context.Background()

	teamID, alice, bob := uuid.New(), uuid.New(), uuid.New()
	cache.SetRole(ctx, teamID, alice, "OWNER")
	cache.SetRole(ctx, teamID, bob, "VIEWER")

	role, hit := cache.GetRole(ctx, teamID, alice)
	require.True(t, hit)
	assert.Equal(t, "OWNER", role)

	cache.Invalidate(ctx, teamID, alice)
	role, hit = cache.GetRole(ctx, teamID, bob)
	require.True(t, hit, "invalidating one pairing leaves the other")
	assert.Equal(t, "VIEWER", role)
}

func TestRoleCache_NilClientDegradesToMiss(t *testing.T) {
	prev := GetClient()
	SetClient(nil)
	t.Cleanup(func() { SetClient(prev) })

	cache := NewRoleCache(time.Minute)
	ctx := context.Background()
	teamID, userID := uuid.New(), uuid.New()

	cache.SetRole(ctx, teamID, userID, "EDITOR")
	_, hit := cache.GetRole(ctx, teamID, userID)
	assert.False(t, hit)
	cache.Invalidate(ctx, teamID, userID)
}

func TestNewRoleCache_DefaultTTL(t *testing.T) {
	cache := NewRoleCache(0)
	assert.Equal(t, 5*time.Minute, cache.ttl)

	cache = NewRoleCache(30 * time.Second)
	assert.Equal(t, 30*time.Second, cache.ttl)
}
