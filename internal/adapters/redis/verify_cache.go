// Package redis provides the Redis-backed verification cache for the edge
// guard. Entries are short-lived role-check results keyed by credential
// fingerprint; losing them is always safe.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/openshelf/gateway/internal/domain/auth"
	"github.com/openshelf/gateway/internal/ports"
)

// Ensure compile-time conformance to the port.
var _ ports.VerifyCache = (*VerifyCache)(nil)

// VerifyCache is a Redis-based verification cache for production use,
// shared across gateway replicas.
type VerifyCache struct {
	client redis.UniversalClient
	prefix string
}

// NewVerifyCache creates a Redis-based verification cache.
func NewVerifyCache(client redis.UniversalClient) *VerifyCache {
	return &VerifyCache{client: client, prefix: "verify:"}
}

// NewVerifyCacheWithPrefix creates a verification cache with a custom key prefix.
func NewVerifyCacheWithPrefix(client redis.UniversalClient, prefix string) *VerifyCache {
	return &VerifyCache{client: client, prefix: prefix}
}

func (c *VerifyCache) Get(ctx context.Context, key string) (*auth.RoleCheck, bool, error) {
	if key == "" {
		return nil, false, nil
	}

	data, err := c.client.Get(ctx, c.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var rc auth.RoleCheck
	if err := json.Unmarshal([]byte(data), &rc); err != nil {
		return nil, false, fmt.Errorf("unmarshal role check: %w", err)
	}
	return &rc, true, nil
}

func (c *VerifyCache) Set(ctx context.Context, key string, rc auth.RoleCheck, ttl time.Duration) error {
	if key == "" {
		return errors.New("cache key cannot be empty")
	}
	if ttl <= 0 {
		// A non-expiring verification would outlive credential revocation.
		return errors.New("ttl must be positive")
	}

	data, err := json.Marshal(rc)
	if err != nil {
		return fmt.Errorf("marshal role check: %w", err)
	}
	return c.client.Set(ctx, c.prefix+key, data, ttl).Err()
}
