package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/barstock/backend/internal/infrastructure/config"
)

const stockKeyPrefix = "stock:"

// RedisStockCache caches on-hand quantities in Redis, suitable for
// deployments where multiple instances share cache state. Cache
// failures are logged and treated as misses; the database stays the
// source of truth.
type RedisStockCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisStockCache creates a stock cache backed by a new Redis connection
func NewRedisStockCache(cfg config.RedisConfig, ttl time.Duration, logger *zap.Logger) (*RedisStockCache, error) {
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

	return NewRedisStockCacheWithClient(client, ttl, logger), nil
}

// NewRedisStockCacheWithClient creates a stock cache with an existing
// Redis client. Useful for testing or when sharing a client across
// components.
func NewRedisStockCacheWithClient(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisStockCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisStockCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Get returns the cached quantity for (product, location), with false
// on a miss or any Redis failure.
func (c *RedisStockCache) Get(ctx context.Context, productID, locationID uuid.UUID) (decimal.Decimal, bool) {
	val, err := c.client.Get(ctx, stockKey(productID, locationID)).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("stock cache read failed", zap.Error(err))
		}
		return decimal.Zero, false
	}

	qty, err := decimal.NewFromString(val)
	if err != nil {
		c.logger.Warn("stock cache holds unparseable quantity",
			zap.String("key", stockKey(productID, locationID)),
			zap.String("value", val))
		return decimal.Zero, false
	}
	return qty, true
}

// Set stores the quantity for (product, location) with the configured TTL
func (c *RedisStockCache) Set(ctx context.Context, productID, locationID uuid.UUID, quantity decimal.Decimal) {
	if err := c.client.Set(ctx, stockKey(productID, locationID), quantity.String(), c.ttl).Err(); err != nil {
		c.logger.Warn("stock cache write failed", zap.Error(err))
	}
}

// Invalidate drops cached quantities for a product. With explicit
// locations only those keys are removed; with none, every location's
// entry for the product is scanned out.
func (c *RedisStockCache) Invalidate(ctx context.Context, productID uuid.UUID, locationIDs ...uuid.UUID) {
	if len(locationIDs) > 0 {
		keys := make([]string, len(locationIDs))
		for i, locationID := range locationIDs {
			keys[i] = stockKey(productID, locationID)
		}
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			c.logger.Warn("stock cache invalidation failed", zap.Error(err))
		}
		return
	}

	pattern := stockKeyPrefix + productID.String() + ":*"
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			c.logger.Warn("stock cache invalidation failed", zap.Error(err))
		}
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("stock cache scan failed", zap.Error(err))
	}
}

// Close releases the underlying Redis connection
func (c *RedisStockCache) Close() error {
	return c.client.Close()
}

func stockKey(productID, locationID uuid.UUID) string {
	return stockKeyPrefix + productID.String() + ":" + locationID.String()
}
