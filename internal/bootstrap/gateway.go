package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/openshelf/gateway/config"
	"github.com/openshelf/gateway/internal/adapters/libraryapi"
	"github.com/openshelf/gateway/internal/adapters/memcache"
	redisadapter "github.com/openshelf/gateway/internal/adapters/redis"
	httpx "github.com/openshelf/gateway/internal/http"
	"github.com/openshelf/gateway/internal/ports"
	"github.com/openshelf/gateway/internal/service"
)

// GatewayContainer holds the wired session authority: the backend client,
// the per-principal session stores, and the edge guard.
type GatewayContainer struct {
	API      ports.AuthAPI
	Sessions *service.SessionManager
	Edge     *httpx.EdgeGuard

	redisClient redis.UniversalClient
}

// Close releases connections held by the container.
func (c *GatewayContainer) Close() error {
	if c.redisClient != nil {
		return c.redisClient.Close()
	}
	return nil
}

// BuildGateway wires the session authority from configuration.
func BuildGateway(ctx context.Context, cfg config.AppConfig, logger *slog.Logger) (*GatewayContainer, error) {
	if logger == nil {
		logger = slog.Default()
	}

	api, err := libraryapi.New(libraryapi.Options{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.Backend.Timeout,
		Logger:  logger.With("component", "library_api"),
	})
	if err != nil {
		return nil, fmt.Errorf("create library api client: %w", err)
	}

	container := &GatewayContainer{API: api}
	verifyCache := buildVerifyCache(ctx, cfg.VerifyCache, logger, container)

	container.Sessions = service.NewSessionManager(service.SessionManagerOptions{
		API:    api,
		Logger: logger.With("component", "sessions"),
	})

	container.Edge = httpx.NewEdgeGuard(httpx.EdgeGuardOptions{
		API:              api,
		Cache:            verifyCache,
		CacheTTL:         cfg.VerifyCache.TTL,
		CredentialCookie: cfg.HTTP.CredentialCookie,
		Logger:           logger.With("component", "edge_guard"),
	})

	return container, nil
}

// buildVerifyCache picks the verification cache backend. A nil return
// disables caching and the edge guard asks the backend on every
// navigation. With the redis backend an unreachable server degrades to
// the in-process cache rather than failing the boot.
func buildVerifyCache(
	ctx context.Context,
	cfg config.VerifyCacheConfig,
	logger *slog.Logger,
	container *GatewayContainer,
) ports.VerifyCache {
	if !cfg.Enabled {
		return nil
	}
	if cfg.Backend != config.CacheBackendRedis {
		logger.Info("verify cache using in-process store", "ttl", cfg.TTL)
		return memcache.NewVerifyCache()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("verify cache redis unreachable, using in-process cache",
			"addr", cfg.RedisAddr, "error", err)
		_ = client.Close()
		return memcache.NewVerifyCache()
	}

	container.redisClient = client
	logger.Info("verify cache using redis", "addr", cfg.RedisAddr, "ttl", cfg.TTL)
	return redisadapter.NewVerifyCache(client)
}
