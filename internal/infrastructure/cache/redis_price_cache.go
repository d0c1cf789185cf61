package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/retailcore/backend/internal/domain/pricing"
	"go.uber.org/zap"
)

const (
	priceKeyPrefix  = "price:"
	defaultPriceTTL = 10 * time.Minute
)

// RedisPriceCache caches price resolutions in Redis. Suitable for
// deployments where multiple instances share one cache; a cache failure is
// never surfaced to the caller, resolution just falls through to the
// repositories.
type RedisPriceCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisPriceCache creates a Redis-backed price cache and verifies the
// connection
func NewRedisPriceCache(cfg RedisConfig, logger *zap.Logger) (*RedisPriceCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisPriceCacheWithClient(client, logger), nil
}

// NewRedisPriceCacheWithClient creates a cache around an existing client
func NewRedisPriceCacheWithClient(client *redis.Client, logger *zap.Logger) *RedisPriceCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisPriceCache{
		client: client,
		ttl:    defaultPriceTTL,
		logger: logger.Named("price_cache"),
	}
}

// Get returns the cached resolution for the key, or a miss
func (c *RedisPriceCache) Get(ctx context.Context, key string) (*pricing.Resolution, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var resolution pricing.Resolution
	if err := json.Unmarshal(raw, &resolution); err != nil {
		c.logger.Warn("cache entry corrupt, dropping", zap.String("key", key), zap.Error(err))
		c.client.Del(ctx, key)
		return nil, false
	}
	return &resolution, true
}

// Set stores the resolution under the key with the cache TTL
func (c *RedisPriceCache) Set(ctx context.Context, key string, resolution *pricing.Resolution) {
	raw, err := json.Marshal(resolution)
	if err != nil {
		c.logger.Warn("cache set marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// InvalidateProduct drops every cached resolution for the product. Keys are
// namespaced "price:<product>:..." so a prefix scan finds them all.
func (c *RedisPriceCache) InvalidateProduct(ctx context.Context, productID uuid.UUID) {
	pattern := priceKeyPrefix + productID.String() + ":*"
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("cache invalidation scan failed", zap.String("pattern", pattern), zap.Error(err))
		return
	}
	if len(keys) > 0 {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			c.logger.Warn("cache invalidation delete failed", zap.Error(err))
		}
	}
}

// Close closes the underlying client
func (c *RedisPriceCache) Close() error {
	return c.client.Close()
}
