package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/poolpro/poolpro-backend/internal/professional_calculations/domain"
)

const (
	catalogActiveKey    = "catalog:active"     // JSON array of active presets
	catalogEquipmentKey = "catalog:equipment:" // catalog:equipment:{id} -> JSON preset
	defaultCatalogTTL   = 15 * time.Minute
)

// CatalogSource is the authoritative catalog the cache reads through to
type CatalogSource interface {
	ListActive(ctx context.Context) ([]domain.EquipmentPreset, error)
	GetEquipment(ctx context.Context, id string) (*domain.EquipmentPreset, error)
}

// CatalogCache keeps a JSON snapshot of the catalog in redis. A redis
// failure degrades to reading the source directly.
type CatalogCache struct {
	client *redis.Client
	source CatalogSource
	ttl    time.Duration
	log    *zap.Logger
}

func NewCatalogCache(client *redis.Client, source CatalogSource, ttl time.Duration, log *zap.Logger) *CatalogCache {
	if ttl <= 0 {
		ttl = defaultCatalogTTL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &CatalogCache{client: client, source: source, ttl: ttl, log: log}
}

// ListActive returns the cached active catalog, loading it on a miss
func (c *CatalogCache) ListActive(ctx context.Context) ([]domain.EquipmentPreset, error) {
	data, err := c.client.Get(ctx, catalogActiveKey).Bytes()
	switch {
	case err == nil:
		var items []domain.EquipmentPreset
		if err := json.Unmarshal(data, &items); err == nil {
			return items, nil
		}
		c.log.Warn("discarding corrupt catalog snapshot", zap.String("key", catalogActiveKey))
	case errors.Is(err, redis.Nil):
	default:
		c.log.Warn("catalog cache read failed", zap.Error(err))
		return c.source.ListActive(ctx)
	}

	items, err := c.source.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.store(ctx, items); err != nil {
		c.log.Warn("catalog cache write failed", zap.Error(err))
	}
	return items, nil
}

// GetEquipment returns one preset from the cache or the source
func (c *CatalogCache) GetEquipment(ctx context.Context, id string) (*domain.EquipmentPreset, error) {
	key := catalogEquipmentKey + id
	data, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var e domain.EquipmentPreset
		if err := json.Unmarshal(data, &e); err == nil {
			return &e, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		c.log.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
	}

	e, err := c.source.GetEquipment(ctx, id)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(e); err == nil {
		if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			c.log.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return e, nil
}

// Refresh reloads the active catalog from the source and overwrites the
// snapshot. It returns the number of presets cached.
func (c *CatalogCache) Refresh(ctx context.Context) (int, error) {
	items, err := c.source.ListActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("load catalog: %w", err)
	}
	if err := c.store(ctx, items); err != nil {
		return 0, err
	}
	return len(items), nil
}

// Invalidate drops the active snapshot and every per-item entry
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	keys := []string{catalogActiveKey}
	iter := c.client.Scan(ctx, 0, catalogEquipmentKey+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan catalog keys: %w", err)
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *CatalogCache) store(ctx context.Context, items []domain.EquipmentPreset) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}

	pipe := c.client.Pipeline()
	pipe.Set(ctx, catalogActiveKey, data, c.ttl)
	for i := range items {
		raw, err := json.Marshal(&items[i])
		if err != nil {
			return fmt.Errorf("failed to marshal equipment %s: %w", items[i].ID, err)
		}
		pipe.Set(ctx, catalogEquipmentKey+items[i].ID, raw, c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store catalog: %w", err)
	}
	return nil
}
