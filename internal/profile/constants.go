package profile

import "time"

// Cache configuration defaults
const (
	// DefaultCacheSize is the default maximum number of cached profiles
	DefaultCacheSize = 1000

	// DefaultCacheTTL is the default time-to-live for cached profiles
	DefaultCacheTTL = 5 * time.Minute
)

// Environment variable keys for cache configuration
const (
	EnvProfileCacheSize = "PROFILE_CACHE_SIZE"
	EnvProfileCacheTTL  = "PROFILE_CACHE_TTL"
)
