package cache

import (
	"sync"
	"time"

	"github.com/unidash/unidash/models"
)

// entry holds a cached result with its creation timestamp.
type entry struct {
	data      *models.DashboardData
	createdAt time.Time
}

// Cache memoizes scrape results for a bounded time window, keyed by target
// URL. It is safe for concurrent use. Concurrent callers missing on the same
// key may compute twice; results are idempotent and interchangeable, so the
// duplicate work is tolerated rather than serialized.
type Cache struct {
	mu        sync.RWMutex
	store     map[string]*entry
	ttl       time.Duration
	lastStore time.Time
}

// New creates a Cache with the given time-to-live. A background goroutine
// runs every 5 minutes to evict expired entries.
func New(ttl time.Duration) *Cache {
	c := &Cache{
		store: make(map[string]*entry),
		ttl:   ttl,
	}

	go c.cleanupLoop()
	return c
}

// GetOrCompute returns the memoized result for key when it is younger than
// the TTL, without invoking compute. On a miss or expiry it computes
// synchronously, stores the result and returns it. The second return value
// reports whether this was a cache hit.
func (c *Cache) GetOrCompute(key string, compute func() *models.DashboardData) (*models.DashboardData, bool) {
	c.mu.RLock()
	e, ok := c.store[key]
	c.mu.RUnlock()

	if ok && time.Since(e.createdAt) <= c.ttl {
		return e.data, true
	}

	data := compute()

	c.mu.Lock()
	c.store[key] = &entry{data: data, createdAt: time.Now()}
	c.lastStore = time.Now()
	c.mu.Unlock()

	return data, false
}

// Peek returns the memoized result for key when it is younger than the TTL,
// without computing anything on a miss.
func (c *Cache) Peek(key string) (*models.DashboardData, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.store[key]
	if !ok || time.Since(e.createdAt) > c.ttl {
		return nil, false
	}
	return e.data, true
}

// Clear drops every entry immediately, regardless of age. The next
// GetOrCompute for any key recomputes.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.store = make(map[string]*entry)
	c.mu.Unlock()
}

// Stats reports the cache's current state.
func (c *Cache) Stats() models.CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := models.CacheStats{
		Entries: len(c.store),
		TTL:     c.ttl.String(),
	}
	if !c.lastStore.IsZero() {
		stats.LastStore = c.lastStore.UTC().Format(time.RFC3339)
	}
	return stats
}

// cleanupLoop evicts entries older than the TTL every 5 minutes.
func (c *Cache) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-c.ttl)
		c.mu.Lock()
		for k, e := range c.store {
			if e.createdAt.Before(cutoff) {
				delete(c.store, k)
			}
		}
		c.mu.Unlock()
	}
}
