// Package cache provides a small in-memory TTL cache for keyword lists.
// It shields the match engine from re-reading the keyword table on every scan.
package cache

import (
	"sync"
	"time"
)

// ActiveKeywords is the single logical key the scanner uses.
const ActiveKeywords = "active_keywords"

// DefaultTTL is how long a cached keyword list stays valid.
const DefaultTTL = 5 * time.Minute

type entry struct {
	data     []string
	storedAt time.Time
}

// Cache is a mutex-guarded TTL cache. One instance is created at startup and
// passed to whoever needs it; safe for concurrent request handlers.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry
	now     func() time.Time
}

// New creates a cache with the given TTL. A non-positive TTL falls back to
// DefaultTTL.
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Set stores data under key with the current timestamp.
func (c *Cache) Set(key string, data []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{data: data, storedAt: c.now()}
}

// Get returns the cached data for key. Entries older than the TTL are
// evicted and reported as absent.
func (c *Cache) Get(key string) ([]string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.storedAt) > c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return e.data, true
}

// Clear removes the given keys, or everything when called with no keys.
func (c *Cache) Clear(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(keys) == 0 {
		c.entries = make(map[string]entry)
		return
	}
	for _, key := range keys {
		delete(c.entries, key)
	}
}
