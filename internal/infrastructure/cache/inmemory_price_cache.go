package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	apppricing "github.com/retailcore/backend/internal/application/pricing"
	"github.com/retailcore/backend/internal/domain/pricing"
)

// InMemoryPriceCache caches price resolutions in process memory. Used when
// Redis is not configured, and in tests.
type InMemoryPriceCache struct {
	mu      sync.RWMutex
	entries map[string]inMemoryEntry
	ttl     time.Duration
}

type inMemoryEntry struct {
	resolution pricing.Resolution
	expiresAt  time.Time
}

// NewInMemoryPriceCache creates an in-memory price cache
func NewInMemoryPriceCache(ttl time.Duration) *InMemoryPriceCache {
	if ttl <= 0 {
		ttl = defaultPriceTTL
	}
	return &InMemoryPriceCache{
		entries: make(map[string]inMemoryEntry),
		ttl:     ttl,
	}
}

// Get returns the cached resolution for the key, or a miss
func (c *InMemoryPriceCache) Get(_ context.Context, key string) (*pricing.Resolution, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}

	resolution := entry.resolution
	return &resolution, true
}

// Set stores the resolution under the key
func (c *InMemoryPriceCache) Set(_ context.Context, key string, resolution *pricing.Resolution) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = inMemoryEntry{
		resolution: *resolution,
		expiresAt:  time.Now().Add(c.ttl),
	}
}

// InvalidateProduct drops every cached resolution for the product
func (c *InMemoryPriceCache) InvalidateProduct(_ context.Context, productID uuid.UUID) {
	prefix := priceKeyPrefix + productID.String() + ":"
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
}

// Len returns the number of live entries, for tests and stats
func (c *InMemoryPriceCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

var (
	_ apppricing.PriceCache = (*InMemoryPriceCache)(nil)
	_ apppricing.PriceCache = (*RedisPriceCache)(nil)
)
