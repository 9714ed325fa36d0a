package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wavesight/earnings-service/internal/domain"
	"github.com/wavesight/earnings-service/internal/repository"
)

// TrendRepository implements the trend submission repository for PostgreSQL
type TrendRepository struct {
	db *pgxpool.Pool
}

// NewTrendRepository creates a new TrendRepository
func NewTrendRepository(db *pgxpool.Pool) *TrendRepository {
	return &TrendRepository{db: db}
}

// CreateTrend inserts a new trend submission
func (r *TrendRepository) CreateTrend(ctx context.Context, trend *domain.Trend) error {
	trendUUID, err := uuid.Parse(trend.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgInvalidTrendID, err)
	}

	signalsJSON, err := json.Marshal(trend.Signals)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalSignals, err)
	}

	query := `
		INSERT INTO trend_submissions (trend_id, spotter_id, title, description, category,
			status, signals, verify_votes, reject_votes, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err = r.db.Exec(ctx, query,
		trendUUID, trend.SpotterID, trend.Title, trend.Description, trend.Category,
		string(trend.Status), signalsJSON, trend.VerifyVotes, trend.RejectVotes, trend.SubmittedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertTrend, err)
	}
	return nil
}

// GetTrend retrieves a trend submission by ID
func (r *TrendRepository) GetTrend(ctx context.Context, trendID string) (*domain.Trend, error) {
	query := `
		SELECT trend_id, spotter_id, title, description, category,
			status, signals, verify_votes, reject_votes, submitted_at
		FROM trend_submissions
		WHERE trend_id = $1
	`

	var t domain.Trend
	var status string
	var signalsJSON []byte
	err := r.db.QueryRow(ctx, query, trendID).Scan(
		&t.ID, &t.SpotterID, &t.Title, &t.Description, &t.Category,
		&status, &signalsJSON, &t.VerifyVotes, &t.RejectVotes, &t.SubmittedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTrendNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetTrend, err)
	}
	t.Status = domain.TrendStatus(status)

	if err := json.Unmarshal(signalsJSON, &t.Signals); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUnmarshalSignals, err)
	}
	return &t, nil
}

// CastVote inserts the vote and bumps the matching counter on the trend row
// in one transaction, returning the updated tally. The unique constraint on
// (trend_id, voter_id) surfaces repeat votes as domain.ErrDuplicateVote.
func (r *TrendRepository) CastVote(ctx context.Context, vote *domain.TrendVote) (repository.VoteCounts, error) {
	voteUUID, err := uuid.Parse(vote.ID)
	if err != nil {
		return repository.VoteCounts{}, fmt.Errorf("%s: %w", ErrMsgInvalidVoteID, err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return repository.VoteCounts{}, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	_, err = tx.Exec(ctx, `
		INSERT INTO trend_votes (vote_id, trend_id, voter_id, vote, cast_at)
		VALUES ($1, $2, $3, $4, $5)
	`, voteUUID, vote.TrendID, vote.VoterID, string(vote.Vote), vote.CastAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case PgErrorCodeUniqueViolation:
				return repository.VoteCounts{}, domain.ErrDuplicateVote
			case PgErrorCodeForeignKeyViolation:
				return repository.VoteCounts{}, domain.ErrTrendNotFound
			}
		}
		return repository.VoteCounts{}, fmt.Errorf("%s: %w", ErrMsgFailedToInsertVote, err)
	}

	var counts repository.VoteCounts
	err = tx.QueryRow(ctx, `
		UPDATE trend_submissions SET
			verify_votes = verify_votes + CASE WHEN $2 = 'verify' THEN 1 ELSE 0 END,
			reject_votes = reject_votes + CASE WHEN $2 = 'reject' THEN 1 ELSE 0 END
		WHERE trend_id = $1
		RETURNING verify_votes, reject_votes
	`, vote.TrendID, string(vote.Vote)).Scan(&counts.Verify, &counts.Reject)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.VoteCounts{}, domain.ErrTrendNotFound
		}
		return repository.VoteCounts{}, fmt.Errorf("%s: %w", ErrMsgFailedToTallyVotes, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return repository.VoteCounts{}, fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return counts, nil
}

// ResolveTrend flips a pending trend to status and reports whether this call
// performed the flip. The status predicate makes concurrent resolvers settle
// a trend exactly once.
func (r *TrendRepository) ResolveTrend(ctx context.Context, trendID string, status domain.TrendStatus) (bool, error) {
	query := `UPDATE trend_submissions SET status = $2 WHERE trend_id = $1 AND status = $3`

	tag, err := r.db.Exec(ctx, query, trendID, string(status), string(domain.TrendStatusPending))
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToUpdateTrendStatus, err)
	}
	if tag.RowsAffected() > 0 {
		return true, nil
	}

	// No pending row changed: either the trend does not exist or someone
	// else settled it first.
	var current string
	err = r.db.QueryRow(ctx, `SELECT status FROM trend_submissions WHERE trend_id = $1`, trendID).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, domain.ErrTrendNotFound
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToGetTrend, err)
	}
	return false, nil
}

// ExpirePending marks pending trends submitted before cutoff as expired and
// returns how many rows changed
func (r *TrendRepository) ExpirePending(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		UPDATE trend_submissions SET status = $1
		WHERE status = $2 AND submitted_at < $3
	`

	tag, err := r.db.Exec(ctx, query,
		string(domain.TrendStatusExpired), string(domain.TrendStatusPending), cutoff)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToExpireTrends, err)
	}
	return tag.RowsAffected(), nil
}
