package cache

import (
	"time"

	"go.uber.org/zap"

	appinventory "github.com/barstock/backend/internal/application/inventory"
	"github.com/barstock/backend/internal/infrastructure/config"
)

// NewStockCache builds the stock cache named by the configuration:
// Redis when reachable, with an in-memory fallback so a cache outage
// never takes the service down. Returns nil when caching is disabled;
// the services treat a nil cache as a no-op.
func NewStockCache(cfg *config.Config, logger *zap.Logger) appinventory.StockCache {
	if !cfg.Cache.Enabled {
		return nil
	}

	ttl := cfg.Cache.TTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	redisCache, err := NewRedisStockCache(cfg.Redis, ttl, logger)
	if err != nil {
		logger.Warn("redis unavailable, using in-memory stock cache", zap.Error(err))
		return NewInMemoryStockCache(ttl)
	}

	logger.Info("stock cache backed by redis",
		zap.String("host", cfg.Redis.Host),
		zap.Duration("ttl", ttl))
	return redisCache
}
