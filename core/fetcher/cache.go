package fetcher

import (
	"sync"
	"time"
)

// cacheEntry is one memoized response body.
type cacheEntry struct {
	body   []byte
	stored time.Time
}

// memoryCache holds recent responses keyed by url.
type memoryCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

func newMemoryCache(ttl time.Duration) *memoryCache {
	return &memoryCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *memoryCache) get(url string) ([]byte, bool) {
	if c.ttl <= 0 {
		return nil, false // No caching
	}

	c.mu.RLock()
	entry, ok := c.entries[url]
	c.mu.RUnlock()

	if !ok || c.now().Sub(entry.stored) > c.ttl {
		return nil, false
	}
	return entry.body, true
}

func (c *memoryCache) set(url string, body []byte) {
	if c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	c.entries[url] = cacheEntry{body: body, stored: c.now()}
	c.mu.Unlock()
}

// flush drops every entry.
func (c *memoryCache) flush() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}

// len counts entries, expired ones included.
func (c *memoryCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
