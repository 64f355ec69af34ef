package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InMemoryStockCache caches on-hand quantities in process memory.
// Suitable for single-instance deployments and tests; entries expire
// lazily on read.
type InMemoryStockCache struct {
	mu      sync.RWMutex
	entries map[string]stockEntry
	ttl     time.Duration
}

type stockEntry struct {
	quantity  decimal.Decimal
	expiresAt time.Time
}

// NewInMemoryStockCache creates an in-memory stock cache with the given TTL
func NewInMemoryStockCache(ttl time.Duration) *InMemoryStockCache {
	return &InMemoryStockCache{
		entries: make(map[string]stockEntry),
		ttl:     ttl,
	}
}

// Get returns the cached quantity for (product, location)
func (c *InMemoryStockCache) Get(_ context.Context, productID, locationID uuid.UUID) (decimal.Decimal, bool) {
	c.mu.RLock()
	entry, ok := c.entries[stockKey(productID, locationID)]
	c.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return decimal.Zero, false
	}
	return entry.quantity, true
}

// Set stores the quantity for (product, location)
func (c *InMemoryStockCache) Set(_ context.Context, productID, locationID uuid.UUID, quantity decimal.Decimal) {
	c.mu.Lock()
	c.entries[stockKey(productID, locationID)] = stockEntry{
		quantity:  quantity,
		expiresAt: time.Now().Add(c.ttl),
	}
	c.mu.Unlock()
}

// Invalidate drops cached quantities for a product, either at the
// given locations or everywhere when none are named.
func (c *InMemoryStockCache) Invalidate(_ context.Context, productID uuid.UUID, locationIDs ...uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(locationIDs) > 0 {
		for _, locationID := range locationIDs {
			delete(c.entries, stockKey(productID, locationID))
		}
		return
	}

	prefix := stockKeyPrefix + productID.String() + ":"
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
}

// Len returns the number of live entries, counting expired ones that
// have not been read yet.
func (c *InMemoryStockCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
