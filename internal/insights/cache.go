package insights

import (
	"sync"
	"time"
)

const DefaultCacheTTL = 5 * time.Minute

type cacheKey struct {
	exerciseID string
	metric     string
}

type cacheEntry struct {
	insight   Insight
	expiresAt time.Time
}

// Cache is the in-process TTL cache in front of the remote insight service,
// keyed by exercise and metric. The clock is injected so expiry is testable.
type Cache struct {
	mx      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[cacheKey]cacheEntry
}

func NewCache(ttl time.Duration, now func() time.Time) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Cache{
		ttl:     ttl,
		now:     now,
		entries: make(map[cacheKey]cacheEntry),
	}
}

// Get returns the cached insight if present and not expired. An expired
// entry is evicted on the spot.
func (c *Cache) Get(exerciseID, metric string) (*Insight, bool) {
	c.mx.Lock()
	defer c.mx.Unlock()

	key := cacheKey{exerciseID: exerciseID, metric: metric}
	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}

	insight := entry.insight
	return &insight, true
}

func (c *Cache) Set(exerciseID, metric string, insight Insight) {
	c.mx.Lock()
	defer c.mx.Unlock()

	c.entries[cacheKey{exerciseID: exerciseID, metric: metric}] = cacheEntry{
		insight:   insight,
		expiresAt: c.now().Add(c.ttl),
	}
}

func (c *Cache) Clear() {
	c.mx.Lock()
	defer c.mx.Unlock()
	c.entries = make(map[cacheKey]cacheEntry)
}

// Sweep proactively drops all expired entries and returns how many went.
func (c *Cache) Sweep() int {
	c.mx.Lock()
	defer c.mx.Unlock()

	now := c.now()
	swept := 0
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
			swept++
		}
	}
	return swept
}

func (c *Cache) Len() int {
	c.mx.Lock()
	defer c.mx.Unlock()
	return len(c.entries)
}
