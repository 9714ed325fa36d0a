package profile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/wavesight/earnings-service/internal/domain"
	"github.com/wavesight/earnings-service/internal/event"
	"github.com/wavesight/earnings-service/internal/logger"
	"github.com/wavesight/earnings-service/internal/repository"
	"github.com/wavesight/earnings-service/internal/rewards"
)

// TierStatus is the read model behind the tier endpoint: the resolved tier
// plus the display metadata the clients render.
type TierStatus struct {
	Tier       domain.Tier              `json:"tier"`
	Multiplier float64                  `json:"multiplier"`
	Progress   rewards.TierProgress     `json:"progress"`
	Monthly    rewards.MonthlyPotential `json:"monthly_potential"`
}

// CacheStats reports profile cache occupancy
type CacheStats struct {
	Entries int `json:"entries"`
}

// Service defines the interface for profile operations
type Service interface {
	GetProfile(ctx context.Context, userID string) (*domain.PerformanceProfile, error)
	EnsureProfile(ctx context.Context, userID string) (*domain.PerformanceProfile, error)

	// RecomputeTier re-derives the tier from stored counters, persists a
	// change, and publishes a tier.changed event. Returns the current tier.
	RecomputeTier(ctx context.Context, userID string) (domain.Tier, error)

	// AdvanceSession applies one submission touch atomically and returns
	// the resulting session position and daily streak.
	AdvanceSession(ctx context.Context, userID string, now time.Time) (repository.SessionState, error)

	// RecordSubmission folds one submission into the performance counters.
	RecordSubmission(ctx context.Context, userID string, quality float64) error

	RecordSubmissionOutcome(ctx context.Context, userID string, approved bool) error
	TierStatus(ctx context.Context, userID string) (*TierStatus, error)
	ResetDaily(ctx context.Context, cutoff time.Time) (int64, int64, error)
	GetCacheStats() CacheStats
}

// CacheConfig holds profile cache tuning
type CacheConfig struct {
	Size int
	TTL  time.Duration
}

// DefaultCacheConfig returns the default cache configuration
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{Size: DefaultCacheSize, TTL: DefaultCacheTTL}
}

func loadCacheConfig() CacheConfig {
	config := DefaultCacheConfig()

	if val := os.Getenv(EnvProfileCacheSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			config.Size = size
		}
	}

	if val := os.Getenv(EnvProfileCacheTTL); val != "" {
		if ttl, err := time.ParseDuration(val); err == nil && ttl > 0 {
			config.TTL = ttl
		}
	}

	return config
}

// service implements the Service interface
type service struct {
	repo  repository.Profile
	rules rewards.Ruleset
	bus   event.Bus
	cache *profileCache
}

// NewService creates a new profile service
func NewService(repo repository.Profile, rules rewards.Ruleset, bus event.Bus) Service {
	cfg := loadCacheConfig()
	return &service{
		repo:  repo,
		rules: rules,
		bus:   bus,
		cache: newProfileCache(cfg.Size, cfg.TTL),
	}
}

// GetProfile returns a profile, serving repeat reads from the cache.
func (s *service) GetProfile(ctx context.Context, userID string) (*domain.PerformanceProfile, error) {
	if p, ok := s.cache.Get(userID); ok {
		return p, nil
	}

	p, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.cache.Set(userID, p)
	return p, nil
}

// EnsureProfile returns the profile, creating a fresh learning-tier profile
// on first contact.
func (s *service) EnsureProfile(ctx context.Context, userID string) (*domain.PerformanceProfile, error) {
	p, err := s.GetProfile(ctx, userID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	log := logger.FromContext(ctx)
	fresh := &domain.PerformanceProfile{
		UserID: userID,
		Tier:   domain.TierLearning,
	}
	if err := s.repo.CreateProfile(ctx, fresh); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	log.Info("profile created", "user_id", userID)

	s.cache.Set(userID, fresh)
	return fresh, nil
}

// RecomputeTier re-derives the tier from the stored performance counters.
// The stored tier is never trusted as an input; counters are the source of
// truth and the derived value overwrites whatever was there.
func (s *service) RecomputeTier(ctx context.Context, userID string) (domain.Tier, error) {
	p, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return "", err
	}

	resolved := s.rules.ResolveTier(rewards.TierInput{
		TrendsSubmitted: p.TrendsSubmitted,
		ApprovalRate:    p.ApprovalRate,
		QualityScore:    p.QualityScore,
	})
	if resolved == p.Tier {
		return resolved, nil
	}

	if err := s.repo.UpdateTier(ctx, userID, resolved); err != nil {
		return "", fmt.Errorf("update tier: %w", err)
	}
	s.cache.Invalidate(userID)

	log := logger.FromContext(ctx)
	log.Info("tier changed", "user_id", userID, "old_tier", p.Tier, "new_tier", resolved)
	if s.bus != nil {
		if err := s.bus.Publish(ctx, event.NewTierChangedEvent(userID, p.Tier, resolved)); err != nil {
			log.Warn("tier change event publish failed", "user_id", userID, "error", err)
		}
	}

	return resolved, nil
}

// AdvanceSession delegates to the store's atomic update and keeps the cache
// coherent.
func (s *service) AdvanceSession(ctx context.Context, userID string, now time.Time) (repository.SessionState, error) {
	state, err := s.repo.AdvanceSession(ctx, userID, s.rules.SessionWindow(), now)
	if err != nil {
		return repository.SessionState{}, err
	}
	s.cache.Invalidate(userID)
	return state, nil
}

// RecordSubmission bumps the submission counter and the rolling quality
// average, then re-derives the tier from the fresh counters.
func (s *service) RecordSubmission(ctx context.Context, userID string, quality float64) error {
	if err := s.repo.RecordSubmission(ctx, userID, quality); err != nil {
		return err
	}
	s.cache.Invalidate(userID)

	_, err := s.RecomputeTier(ctx, userID)
	return err
}

// RecordSubmissionOutcome updates the approval counters after a trend
// resolves, then re-derives the tier.
func (s *service) RecordSubmissionOutcome(ctx context.Context, userID string, approved bool) error {
	if err := s.repo.RecordSubmissionOutcome(ctx, userID, approved); err != nil {
		return err
	}
	s.cache.Invalidate(userID)

	_, err := s.RecomputeTier(ctx, userID)
	return err
}

// TierStatus assembles the tier read model for a user.
func (s *service) TierStatus(ctx context.Context, userID string) (*TierStatus, error) {
	p, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	in := rewards.TierInput{
		TrendsSubmitted: p.TrendsSubmitted,
		ApprovalRate:    p.ApprovalRate,
		QualityScore:    p.QualityScore,
	}
	tier := s.rules.ResolveTier(in)

	return &TierStatus{
		Tier:       tier,
		Multiplier: s.rules.TierMultiplier(tier),
		Progress:   s.rules.Progress(tier, in),
		Monthly:    rewards.Monthly(tier),
	}, nil
}

// ResetDaily clears today_earned counters and breaks lapsed streaks. The
// cache is purged wholesale; a post-reset read must see the reset state.
func (s *service) ResetDaily(ctx context.Context, cutoff time.Time) (int64, int64, error) {
	profiles, streaks, err := s.repo.ResetDaily(ctx, cutoff)
	if err != nil {
		return 0, 0, err
	}
	s.cache.Clear()
	return profiles, streaks, nil
}

// GetCacheStats returns current cache occupancy
func (s *service) GetCacheStats() CacheStats {
	return CacheStats{Entries: s.cache.Len()}
}
