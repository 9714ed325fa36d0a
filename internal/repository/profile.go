package repository

import (
	"context"
	"time"

	"github.com/wavesight/earnings-service/internal/domain"
)

// SessionState is the streak state returned by AdvanceSession, after the
// atomic update has been applied.
type SessionState struct {
	Position    int
	DailyStreak int
}

// Profile defines the interface for performance profile data access
type Profile interface {
	GetProfile(ctx context.Context, userID string) (*domain.PerformanceProfile, error)
	CreateProfile(ctx context.Context, profile *domain.PerformanceProfile) error

	// AdvanceSession applies one submission touch in a single atomic update:
	// the session position increments when the previous submission falls
	// within the window and resets to 1 otherwise, and the daily streak
	// extends on the first submission of a consecutive day. Returns the
	// post-update state.
	AdvanceSession(ctx context.Context, userID string, window time.Duration, now time.Time) (SessionState, error)

	// RecordSubmission increments trends_submitted and folds the
	// submission's quality into the rolling quality_score average, in one
	// update.
	RecordSubmission(ctx context.Context, userID string, quality float64) error

	// RecordSubmissionOutcome increments trends_approved when a trend
	// resolves as approved and recomputes the stored approval_rate from
	// the counters.
	RecordSubmissionOutcome(ctx context.Context, userID string, approved bool) error

	UpdateTier(ctx context.Context, userID string, tier domain.Tier) error

	// ResetDaily zeroes today_earned for all profiles and breaks the daily
	// streak of every user whose last submission predates cutoff. Returns
	// (profiles reset, streaks broken).
	ResetDaily(ctx context.Context, cutoff time.Time) (int64, int64, error)
}
