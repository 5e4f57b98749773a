package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/poolpro/poolpro-backend/config"
	httpapi "github.com/poolpro/poolpro-backend/internal/api/http"
)

func newRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// OpenRedis returns nil when no address is configured; the catalog is then
// read straight from postgres.
func OpenRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, nil
	}

	client := newRedisClient(cfg)

	pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(pctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// CacheProbe returns the health pinger for the configured redis. When the
// cache client could not be opened at startup a separate client is kept for
// probing, so health keeps reporting the outage; cleanup closes it.
func CacheProbe(cfg config.RedisConfig, client *redis.Client) (ping httpapi.CachePinger, cleanup func()) {
	cleanup = func() {}
	if cfg.Addr == "" {
		return nil, cleanup
	}
	if client == nil {
		client = newRedisClient(cfg)
		probe := client
		cleanup = func() { _ = probe.Close() }
	}
	return func(ctx context.Context) error { return client.Ping(ctx).Err() }, cleanup
}
