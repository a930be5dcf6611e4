package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/gateway/config"
)

func discardTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBuildGateway_Defaults(t *testing.T) {
	cfg := config.AppConfig{}
	cfg.Backend.BaseURL = "http://127.0.0.1:8000/api"
	cfg.Sanitize()

	container, err := BuildGateway(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Close() })

	assert.NotNil(t, container.API)
	assert.NotNil(t, container.Sessions)
	assert.NotNil(t, container.Edge)
}

func TestBuildVerifyCache_DisabledInstallsNoCache(t *testing.T) {
	cfg := config.VerifyCacheConfig{}
	cfg.Sanitize()
	require.False(t, cfg.Enabled)

	cache := buildVerifyCache(context.Background(), cfg, discardTestLogger(), &GatewayContainer{})
	assert.Nil(t, cache)
}

func TestBuildVerifyCache_MemoryBackend(t *testing.T) {
	cfg := config.VerifyCacheConfig{Enabled: true}
	cfg.Sanitize()

	cache := buildVerifyCache(context.Background(), cfg, discardTestLogger(), &GatewayContainer{})
	assert.NotNil(t, cache)
}

func TestBuildGateway_RedisUnreachableFallsBack(t *testing.T) {
	cfg := config.AppConfig{}
	cfg.Backend.BaseURL = "http://127.0.0.1:8000/api"
	cfg.Sanitize()
	cfg.VerifyCache.Enabled = true
	cfg.VerifyCache.Backend = config.CacheBackendRedis
	cfg.VerifyCache.RedisAddr = "127.0.0.1:1" // nothing listens here

	container, err := BuildGateway(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Close() })

	// The container holds no redis connection when the ping failed.
	assert.Nil(t, container.redisClient)
	assert.NotNil(t, container.Edge)
}
