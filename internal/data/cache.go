package data

import (
	"sync"
	"time"
)

// ResponseCache is a small in-memory TTL cache for weather responses,
// keeping us inside the free-tier call quota while a race weekend's
// forecasts are being refreshed repeatedly. Nil receivers are valid and
// disable caching.
type ResponseCache struct {
	mu    sync.RWMutex
	store map[string]cacheEntry
	ttl   time.Duration
	now   func() time.Time
}

type cacheEntry struct {
	forecast  *Forecast
	expiresAt time.Time
}

// NewResponseCache creates a cache with the given TTL.
func NewResponseCache(ttl time.Duration) *ResponseCache {
	return &ResponseCache{
		store: make(map[string]cacheEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Get returns a cached forecast if present and not expired.
func (c *ResponseCache) Get(key string) (*Forecast, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.store[key]
	if !ok || c.now().After(e.expiresAt) {
		return nil, false
	}
	return e.forecast, true
}

// Set stores a forecast.
func (c *ResponseCache) Set(key string, fc *Forecast) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = cacheEntry{forecast: fc, expiresAt: c.now().Add(c.ttl)}
	// Opportunistic sweep keeps the map from accumulating stale entries
	// without a background goroutine.
	for k, e := range c.store {
		if c.now().After(e.expiresAt) {
			delete(c.store, k)
		}
	}
}
