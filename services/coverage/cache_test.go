package coverage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"mountify/models"
)

func TestCacheHitBeforeTTL(t *testing.T) {
	clock := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	cache := newCoverageCache(5*time.Minute, func() time.Time { return clock })

	cache.set("10001", models.ZipCoverage{Zip: "10001", Covered: true, WorkerCount: 3})

	clock = clock.Add(4 * time.Minute)
	cov, ok := cache.get("10001")
	assert.True(t, ok)
	assert.True(t, cov.Covered)
	assert.Equal(t, 3, cov.WorkerCount)
}

func TestCacheExpiresAfterTTL(t *testing.T) {
	clock := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	cache := newCoverageCache(5*time.Minute, func() time.Time { return clock })

	cache.set("10001", models.ZipCoverage{Zip: "10001", Covered: true})

	clock = clock.Add(5*time.Minute + time.Second)
	_, ok := cache.get("10001")
	assert.False(t, ok)
	// Lazy eviction removed the stale entry.
	assert.Equal(t, 0, cache.len())
}

func TestCacheInvalidate(t *testing.T) {
	cache := newCoverageCache(time.Hour, nil)
	cache.set("94110", models.ZipCoverage{Zip: "94110", Covered: true})
	cache.invalidate("94110")
	_, ok := cache.get("94110")
	assert.False(t, ok)
}

func TestCacheMissUnknownZip(t *testing.T) {
	cache := newCoverageCache(time.Hour, nil)
	_, ok := cache.get("00000")
	assert.False(t, ok)
}
