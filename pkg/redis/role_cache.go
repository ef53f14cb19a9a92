package redis

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RoleCache is a read-through cache of (team, user) → role lookups. The
// membership directory invalidates an entry on every mutation of the pairing,
// so a cached value is at most one TTL stale only if invalidation itself
// failed. Cache errors degrade to misses; the repository stays authoritative.
type RoleCache struct {
	ttl time.Duration
}

// NewRoleCache creates a role cache with the given entry TTL
func NewRoleCache(ttl time.Duration) *RoleCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RoleCache{ttl: ttl}
}

func roleKey(teamID, userID uuid.UUID) string {
	return "role:" + teamID.String() + ":" + userID.String()
}

// GetRole returns the cached role and whether the lookup hit
func (c *RoleCache) GetRole(ctx context.Context, teamID, userID uuid.UUID) (string, bool) {
	if client == nil {
		return "", false
	}
	val, err := Get(ctx, roleKey(teamID, userID))
	if err != nil {
		return "", false
	}
	return val, true
}

// SetRole stores the role for a (team, user) pairing
func (c *RoleCache) SetRole(ctx context.Context, teamID, userID uuid.UUID, role string) {
	if client == nil {
		return
	}
	// Best effort; a failed write is just a future miss.
	_ = Set(ctx, roleKey(teamID, userID), role, c.ttl)
}

// Invalidate drops the cached role for a (team, user) pairing
func (c *RoleCache) Invalidate(ctx context.Context, teamID, userID uuid.UUID) {
	if client == nil {
		return
	}
	_ = Del(ctx, roleKey(teamID, userID))
}
