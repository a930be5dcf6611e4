package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppConfig_Defaults(t *testing.T) {
	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.Equal(t, ":3000", cfg.HTTP.Addr)
	assert.Equal(t, "access_token", cfg.HTTP.CredentialCookie)
	assert.Equal(t, "http://127.0.0.1:8000/api", cfg.Backend.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Backend.Timeout)
	assert.False(t, cfg.VerifyCache.Enabled)
	assert.Equal(t, 5*time.Second, cfg.VerifyCache.TTL)
}

func TestBackendConfig_Sanitize(t *testing.T) {
	b := BackendConfig{BaseURL: "http://backend:8000/api/", Timeout: -1}
	b.Sanitize()

	assert.Equal(t, "http://backend:8000/api", b.BaseURL)
	assert.Equal(t, 5*time.Second, b.Timeout)
}

func TestAppConfig_DevModeFromNodeEnv(t *testing.T) {
	t.Setenv("NODE_ENV", "development")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.True(t, cfg.IsDev)
}

func TestVerifyCacheConfig_SanitizeClampsTTL(t *testing.T) {
	v := VerifyCacheConfig{TTL: 10 * time.Minute}
	v.Sanitize()
	assert.Equal(t, time.Minute, v.TTL)

	v = VerifyCacheConfig{TTL: 0}
	v.Sanitize()
	assert.Equal(t, 5*time.Second, v.TTL)
}

func TestVerifyCacheConfig_SanitizeBackend(t *testing.T) {
	v := VerifyCacheConfig{Backend: " Redis "}
	v.Sanitize()
	assert.Equal(t, CacheBackendRedis, v.Backend)

	v = VerifyCacheConfig{Backend: "memcached"}
	v.Sanitize()
	assert.Equal(t, CacheBackendMemory, v.Backend)
}
