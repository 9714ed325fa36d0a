package profile

import (
	"context"
	"sync"
	"time"

	"github.com/wavesight/earnings-service/internal/domain"
	"github.com/wavesight/earnings-service/internal/repository"
)

// FakeRepository is a stateful in-memory implementation of
// repository.Profile for integration-style unit tests. It must remain in the
// profile package to avoid import cycles.
type FakeRepository struct {
	mu       sync.Mutex
	profiles map[string]*domain.PerformanceProfile
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{
		profiles: make(map[string]*domain.PerformanceProfile),
	}
}

func (f *FakeRepository) GetProfile(ctx context.Context, userID string) (*domain.PerformanceProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.profiles[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *FakeRepository) CreateProfile(ctx context.Context, profile *domain.PerformanceProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	cp := *profile
	f.profiles[profile.UserID] = &cp
	return nil
}

func (f *FakeRepository) AdvanceSession(ctx context.Context, userID string, window time.Duration, now time.Time) (repository.SessionState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.profiles[userID]
	if !ok {
		return repository.SessionState{}, domain.ErrUserNotFound
	}

	if p.LastSubmissionAt != nil && now.Sub(*p.LastSubmissionAt) <= window {
		p.SessionPosition++
	} else {
		p.SessionPosition = 1
	}

	switch {
	case p.LastSubmissionAt == nil:
		p.DailyStreak = 1
	case sameDay(*p.LastSubmissionAt, now):
		// streak unchanged
	case sameDay(p.LastSubmissionAt.AddDate(0, 0, 1), now):
		p.DailyStreak++
	default:
		p.DailyStreak = 1
	}

	ts := now
	p.LastSubmissionAt = &ts
	return repository.SessionState{Position: p.SessionPosition, DailyStreak: p.DailyStreak}, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

func (f *FakeRepository) RecordSubmission(ctx context.Context, userID string, quality float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.profiles[userID]
	if !ok {
		return domain.ErrUserNotFound
	}

	n := float64(p.TrendsSubmitted)
	p.QualityScore = (p.QualityScore*n + quality) / (n + 1)
	p.TrendsSubmitted++
	return nil
}

func (f *FakeRepository) RecordSubmissionOutcome(ctx context.Context, userID string, approved bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.profiles[userID]
	if !ok {
		return domain.ErrUserNotFound
	}

	if approved {
		p.TrendsApproved++
	}
	if p.TrendsSubmitted > 0 {
		p.ApprovalRate = float64(p.TrendsApproved) / float64(p.TrendsSubmitted)
	}
	return nil
}

func (f *FakeRepository) UpdateTier(ctx context.Context, userID string, tier domain.Tier) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.profiles[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	p.Tier = tier
	return nil
}

func (f *FakeRepository) ResetDaily(ctx context.Context, cutoff time.Time) (int64, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var profiles, streaks int64
	for _, p := range f.profiles {
		if p.TodayEarned != 0 {
			p.TodayEarned = 0
			profiles++
		}
		if p.DailyStreak > 0 && (p.LastSubmissionAt == nil || p.LastSubmissionAt.Before(cutoff)) {
			p.DailyStreak = 0
			streaks++
		}
	}
	return profiles, streaks, nil
}

// Seed inserts a profile directly, bypassing CreateProfile defaults.
func (f *FakeRepository) Seed(p domain.PerformanceProfile) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profiles[p.UserID] = &p
}

// Credit mimics the balance side effects of a ledger write.
func (f *FakeRepository) Credit(userID string, amount float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.profiles[userID]; ok {
		p.CurrentBalance += amount
		p.TotalEarned += amount
		p.TodayEarned += amount
	}
}
