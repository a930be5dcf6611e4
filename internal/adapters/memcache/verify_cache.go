// Package memcache provides the in-process verification cache used when no
// Redis is configured. Suitable for a single gateway instance; entries are
// per-process and vanish on restart, which is fine for a cache whose whole
// job is shaving duplicate role checks off one navigation.
package memcache

import (
	"context"
	"sync"
	"time"

	"github.com/openshelf/gateway/internal/domain/auth"
	"github.com/openshelf/gateway/internal/ports"
)

// Ensure compile-time conformance to the port.
var _ ports.VerifyCache = (*VerifyCache)(nil)

type entry struct {
	rc        auth.RoleCheck
	expiresAt time.Time
}

// VerifyCache is a mutex-guarded TTL map.
type VerifyCache struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

// NewVerifyCache creates an empty in-memory verification cache.
func NewVerifyCache() *VerifyCache {
	return &VerifyCache{entries: make(map[string]entry), now: time.Now}
}

func (c *VerifyCache) Get(_ context.Context, key string) (*auth.RoleCheck, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	if c.now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil, false, nil
	}
	rc := e.rc
	return &rc, true, nil
}

func (c *VerifyCache) Set(_ context.Context, key string, rc auth.RoleCheck, ttl time.Duration) error {
	if key == "" || ttl <= 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Opportunistic sweep keeps the map from accumulating dead entries
	// between navigations; the cache never grows past the set of recently
	// active credentials.
	now := c.now()
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}

	c.entries[key] = entry{rc: rc, expiresAt: now.Add(ttl)}
	return nil
}
