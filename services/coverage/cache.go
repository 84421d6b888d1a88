package coverage

import (
	"sync"
	"time"

	"mountify/models"
)

type cacheEntry struct {
	coverage models.ZipCoverage
	storedAt time.Time
}

// coverageCache is an explicit TTL cache for ZIP lookups. The clock is
// injected so expiry is testable; entries are evicted lazily on read.
type coverageCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

func newCoverageCache(ttl time.Duration, now func() time.Time) *coverageCache {
	if now == nil {
		now = time.Now
	}
	return &coverageCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     now,
	}
}

func (c *coverageCache) get(zip string) (models.ZipCoverage, bool) {
	c.mu.RLock()
	entry, ok := c.entries[zip]
	c.mu.RUnlock()
	if !ok {
		return models.ZipCoverage{}, false
	}
	if c.now().Sub(entry.storedAt) > c.ttl {
		c.mu.Lock()
		delete(c.entries, zip)
		c.mu.Unlock()
		return models.ZipCoverage{}, false
	}
	return entry.coverage, true
}

func (c *coverageCache) set(zip string, cov models.ZipCoverage) {
	c.mu.Lock()
	c.entries[zip] = cacheEntry{coverage: cov, storedAt: c.now()}
	c.mu.Unlock()
}

func (c *coverageCache) invalidate(zip string) {
	c.mu.Lock()
	delete(c.entries, zip)
	c.mu.Unlock()
}

func (c *coverageCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
