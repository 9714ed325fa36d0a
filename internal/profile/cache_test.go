package profile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wavesight/earnings-service/internal/domain"
)

func TestProfileCache_SetGet(t *testing.T) {
	cache := newProfileCache(10, time.Minute)

	p := &domain.PerformanceProfile{UserID: "user-1", Tier: domain.TierVerified}
	cache.Set("user-1", p)

	got, found := cache.Get("user-1")
	assert.True(t, found)
	assert.Equal(t, domain.TierVerified, got.Tier)
}

func TestProfileCache_Miss(t *testing.T) {
	cache := newProfileCache(10, time.Minute)

	_, found := cache.Get("nobody")
	assert.False(t, found)
}

func TestProfileCache_Invalidate(t *testing.T) {
	cache := newProfileCache(10, time.Minute)

	cache.Set("user-1", &domain.PerformanceProfile{UserID: "user-1"})
	cache.Invalidate("user-1")

	_, found := cache.Get("user-1")
	assert.False(t, found)
}

func TestProfileCache_Expiry(t *testing.T) {
	cache := newProfileCache(10, 20*time.Millisecond)

	cache.Set("user-1", &domain.PerformanceProfile{UserID: "user-1"})
	time.Sleep(50 * time.Millisecond)

	_, found := cache.Get("user-1")
	assert.False(t, found)
}

func TestProfileCache_VersionMismatchInvalidates(t *testing.T) {
	cache := newProfileCache(10, time.Minute)

	cache.lru.Add("user-1", &cachedProfileEntry{
		Version: "0.9",
		Profile: &domain.PerformanceProfile{UserID: "user-1"},
	})

	_, found := cache.Get("user-1")
	assert.False(t, found)
	assert.Zero(t, cache.Len())
}

func TestProfileCache_Clear(t *testing.T) {
	cache := newProfileCache(10, time.Minute)

	cache.Set("user-1", &domain.PerformanceProfile{UserID: "user-1"})
	cache.Set("user-2", &domain.PerformanceProfile{UserID: "user-2"})
	cache.Clear()

	assert.Zero(t, cache.Len())
}
