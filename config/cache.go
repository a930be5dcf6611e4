package config

import (
	"strings"
	"time"
)

// Verification cache backends.
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// VerifyCacheConfig contains configuration for the edge-layer verification
// cache. The cache is an optional optimization and is off by default: every
// navigation then asks the backend fresh, which is the correct baseline.
type VerifyCacheConfig struct {
	// Enabled turns role-check caching on. When false no cache is
	// installed and results are never reused across requests.
	Enabled bool `env:"VERIFY_CACHE_ENABLED" envDefault:"false"`

	// Backend selects the cache store: "memory" for a per-process cache,
	// "redis" for one shared across gateway replicas.
	Backend string `env:"VERIFY_CACHE_BACKEND" envDefault:"memory"`

	// TTL is how long a verification result stays valid. Keep this short:
	// a revoked credential is honored for at most this long.
	TTL time.Duration `env:"VERIFY_CACHE_TTL" envDefault:"5s"`

	// Redis connection settings, used when Backend is "redis".
	RedisAddr     string `env:"VERIFY_CACHE_REDIS_ADDR"     envDefault:"localhost:6379"`
	RedisPassword string `env:"VERIFY_CACHE_REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"VERIFY_CACHE_REDIS_DB"       envDefault:"0"`
}

// Sanitize applies guardrails to verification cache configuration values.
func (v *VerifyCacheConfig) Sanitize() {
	v.Backend = strings.ToLower(strings.TrimSpace(v.Backend))
	if v.Backend != CacheBackendRedis {
		v.Backend = CacheBackendMemory
	}

	// Clamp the TTL so a misconfigured cache cannot hold a stale
	// verification for more than a minute.
	if v.TTL <= 0 {
		v.TTL = 5 * time.Second
	}
	if v.TTL > time.Minute {
		v.TTL = time.Minute
	}
}
