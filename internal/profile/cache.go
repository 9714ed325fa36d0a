package profile

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/wavesight/earnings-service/internal/domain"
)

// CacheSchemaVersion is the current version of the cache schema
// Increment this when the cached data structure changes to auto-invalidate old entries
const CacheSchemaVersion = "1.0"

// cachedProfileEntry wraps a profile with version metadata for cache invalidation
type cachedProfileEntry struct {
	Version  string                     `json:"version"`
	Profile  *domain.PerformanceProfile `json:"profile"`
	CachedAt time.Time                  `json:"cached_at"`
}

// profileCache provides an in-memory LRU cache for profile lookups
// with time-based expiration and version-based invalidation to prevent stale data.
type profileCache struct {
	lru *expirable.LRU[string, *cachedProfileEntry]
}

// newProfileCache creates a new profile cache with the specified size and TTL.
func newProfileCache(size int, ttl time.Duration) *profileCache {
	return &profileCache{
		lru: expirable.NewLRU[string, *cachedProfileEntry](size, nil, ttl),
	}
}

// Get retrieves a profile from the cache.
// Returns (nil, false) if not in cache, expired, or version mismatch.
// Automatically invalidates entries with mismatched versions.
func (c *profileCache) Get(userID string) (*domain.PerformanceProfile, bool) {
	entry, found := c.lru.Get(userID)
	if !found {
		return nil, false
	}

	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(userID)
		return nil, false
	}

	return entry.Profile, true
}

// Set stores a profile in the cache with the current schema version.
func (c *profileCache) Set(userID string, profile *domain.PerformanceProfile) {
	c.lru.Add(userID, &cachedProfileEntry{
		Version:  CacheSchemaVersion,
		Profile:  profile,
		CachedAt: time.Now(),
	})
}

// Invalidate removes a profile from the cache after a write.
func (c *profileCache) Invalidate(userID string) {
	c.lru.Remove(userID)
}

// Clear removes all entries from the cache.
func (c *profileCache) Clear() {
	c.lru.Purge()
}

// Len returns the number of cached profiles.
func (c *profileCache) Len() int {
	return c.lru.Len()
}
