package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wavesight/earnings-service/internal/domain"
	"github.com/wavesight/earnings-service/internal/repository"
)

// ProfileRepository implements the profile repository for PostgreSQL
type ProfileRepository struct {
	db *pgxpool.Pool
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db}
}

const profileColumns = `user_id, tier, trends_submitted, trends_approved, approval_rate,
	quality_score, current_balance, total_earned, today_earned,
	daily_streak, session_position, last_submission_at`

func scanProfile(row pgx.Row) (*domain.PerformanceProfile, error) {
	var p domain.PerformanceProfile
	var tier string
	err := row.Scan(&p.UserID, &tier, &p.TrendsSubmitted, &p.TrendsApproved, &p.ApprovalRate,
		&p.QualityScore, &p.CurrentBalance, &p.TotalEarned, &p.TodayEarned,
		&p.DailyStreak, &p.SessionPosition, &p.LastSubmissionAt)
	if err != nil {
		return nil, err
	}
	p.Tier = domain.Tier(tier)
	return &p, nil
}

// GetProfile retrieves a user's performance profile
func (r *ProfileRepository) GetProfile(ctx context.Context, userID string) (*domain.PerformanceProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM user_profiles WHERE user_id = $1`

	p, err := scanProfile(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetProfile, err)
	}
	return p, nil
}

// CreateProfile inserts a new profile. Concurrent creation of the same user
// is not an error, the first insert wins.
func (r *ProfileRepository) CreateProfile(ctx context.Context, profile *domain.PerformanceProfile) error {
	query := `
		INSERT INTO user_profiles (user_id, tier, trends_submitted, trends_approved, approval_rate,
			quality_score, current_balance, total_earned, today_earned,
			daily_streak, session_position, last_submission_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (user_id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query,
		profile.UserID, string(profile.Tier), profile.TrendsSubmitted, profile.TrendsApproved,
		profile.ApprovalRate, profile.QualityScore, profile.CurrentBalance, profile.TotalEarned,
		profile.TodayEarned, profile.DailyStreak, profile.SessionPosition, profile.LastSubmissionAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCreateProfile, err)
	}
	return nil
}

// AdvanceSession applies one submission touch in a single atomic update.
// The session position increments while the previous submission falls inside
// the window and resets to 1 otherwise. The daily streak starts at 1, extends
// on the first submission of a consecutive UTC day, and resets after a gap.
func (r *ProfileRepository) AdvanceSession(ctx context.Context, userID string, window time.Duration, now time.Time) (repository.SessionState, error) {
	query := `
		UPDATE user_profiles SET
			session_position = CASE
				WHEN last_submission_at IS NOT NULL AND last_submission_at >= $2 THEN session_position + 1
				ELSE 1
			END,
			daily_streak = CASE
				WHEN last_submission_at IS NULL THEN 1
				WHEN date_trunc('day', last_submission_at AT TIME ZONE 'UTC') = date_trunc('day', $3::timestamptz AT TIME ZONE 'UTC')
					THEN GREATEST(daily_streak, 1)
				WHEN date_trunc('day', last_submission_at AT TIME ZONE 'UTC') = date_trunc('day', $3::timestamptz AT TIME ZONE 'UTC') - INTERVAL '1 day'
					THEN daily_streak + 1
				ELSE 1
			END,
			last_submission_at = $3,
			updated_at = NOW()
		WHERE user_id = $1
		RETURNING session_position, daily_streak
	`

	var state repository.SessionState
	err := r.db.QueryRow(ctx, query, userID, now.Add(-window), now).Scan(&state.Position, &state.DailyStreak)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.SessionState{}, domain.ErrUserNotFound
		}
		return repository.SessionState{}, fmt.Errorf("%s: %w", ErrMsgFailedToAdvanceSession, err)
	}
	return state, nil
}

// RecordSubmission folds one submission's quality into the rolling average
// and bumps the submission counter in a single update.
func (r *ProfileRepository) RecordSubmission(ctx context.Context, userID string, quality float64) error {
	query := `
		UPDATE user_profiles SET
			quality_score = (quality_score * trends_submitted + $2) / (trends_submitted + 1),
			trends_submitted = trends_submitted + 1,
			updated_at = NOW()
		WHERE user_id = $1
	`

	tag, err := r.db.Exec(ctx, query, userID, quality)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToRecordSubmission, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// RecordSubmissionOutcome bumps the approval counter for approved trends and
// recomputes the stored approval rate from the counters.
func (r *ProfileRepository) RecordSubmissionOutcome(ctx context.Context, userID string, approved bool) error {
	query := `
		UPDATE user_profiles SET
			trends_approved = trends_approved + CASE WHEN $2 THEN 1 ELSE 0 END,
			approval_rate = CASE WHEN trends_submitted > 0
				THEN (trends_approved + CASE WHEN $2 THEN 1 ELSE 0 END)::float8 / trends_submitted
				ELSE 0
			END,
			updated_at = NOW()
		WHERE user_id = $1
	`

	tag, err := r.db.Exec(ctx, query, userID, approved)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToRecordOutcome, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// UpdateTier sets a user's tier
func (r *ProfileRepository) UpdateTier(ctx context.Context, userID string, tier domain.Tier) error {
	query := `UPDATE user_profiles SET tier = $2, updated_at = NOW() WHERE user_id = $1`

	tag, err := r.db.Exec(ctx, query, userID, string(tier))
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateTier, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// ResetDaily zeroes today_earned for all profiles and breaks the daily streak
// of every user whose last submission predates cutoff, in one transaction.
// Returns (profiles reset, streaks broken).
func (r *ProfileRepository) ResetDaily(ctx context.Context, cutoff time.Time) (int64, int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	resetTag, err := tx.Exec(ctx, `
		UPDATE user_profiles SET today_earned = 0, updated_at = NOW()
		WHERE today_earned <> 0
	`)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", ErrMsgFailedToResetDaily, err)
	}

	streakTag, err := tx.Exec(ctx, `
		UPDATE user_profiles SET daily_streak = 0, session_position = 0, updated_at = NOW()
		WHERE daily_streak > 0 AND (last_submission_at IS NULL OR last_submission_at < $1)
	`, cutoff)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", ErrMsgFailedToResetStreaks, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, 0, fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return resetTag.RowsAffected(), streakTag.RowsAffected(), nil
}
