package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wavesight/earnings-service/internal/domain"
	"github.com/wavesight/earnings-service/internal/repository"
	"github.com/wavesight/earnings-service/internal/rewards"
)

// LedgerRepository implements the earnings ledger repository for PostgreSQL
type LedgerRepository struct {
	db *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository
func NewLedgerRepository(db *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// RecordEntry inserts the entry and updates the owning profile's balances in
// one transaction. The profile row is locked first so concurrent writes for
// the same user serialize against the daily cap. The credited amount is
// truncated to the remaining headroom under dailyCap; an exhausted cap
// records nothing and returns domain.ErrDailyCapReached.
func (r *LedgerRepository) RecordEntry(ctx context.Context, entry *domain.LedgerEntry, dailyCap float64) (repository.RecordResult, error) {
	entryUUID, err := uuid.Parse(entry.ID)
	if err != nil {
		return repository.RecordResult{}, fmt.Errorf("%s: %w", ErrMsgInvalidEntryID, err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return repository.RecordResult{}, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	var todayEarned float64
	err = tx.QueryRow(ctx,
		`SELECT today_earned FROM user_profiles WHERE user_id = $1 FOR UPDATE`,
		entry.UserID).Scan(&todayEarned)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.RecordResult{}, domain.ErrUserNotFound
		}
		return repository.RecordResult{}, fmt.Errorf("%s: %w", ErrMsgFailedToLockProfile, err)
	}

	headroom := dailyCap - todayEarned
	if headroom <= 0 {
		return repository.RecordResult{}, domain.ErrDailyCapReached
	}

	result := repository.RecordResult{Recorded: entry.Amount}
	if entry.Amount > headroom {
		result.Recorded = rewards.Round2(headroom)
		result.Truncated = true
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO earnings_ledger (entry_id, user_id, trend_id, entry_type, amount, description, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, entryUUID, entry.UserID, entry.TrendID, string(entry.Type), result.Recorded,
		entry.Description, string(entry.Status), entry.CreatedAt)
	if err != nil {
		return repository.RecordResult{}, fmt.Errorf("%s: %w", ErrMsgFailedToInsertEntry, err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE user_profiles SET
			current_balance = current_balance + $2,
			total_earned = total_earned + $2,
			today_earned = today_earned + $2,
			updated_at = NOW()
		WHERE user_id = $1
	`, entry.UserID, result.Recorded)
	if err != nil {
		return repository.RecordResult{}, fmt.Errorf("%s: %w", ErrMsgFailedToCreditBalance, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return repository.RecordResult{}, fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return result, nil
}

const ledgerColumns = `entry_id, user_id, trend_id, entry_type, amount, description, status, created_at`

func scanLedgerEntry(row pgx.Row) (*domain.LedgerEntry, error) {
	var e domain.LedgerEntry
	var entryType, status string
	err := row.Scan(&e.ID, &e.UserID, &e.TrendID, &entryType, &e.Amount, &e.Description, &status, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	e.Type = domain.EntryType(entryType)
	e.Status = domain.EntryStatus(status)
	return &e, nil
}

// GetEntries returns a user's ledger entries, newest first
func (r *LedgerRepository) GetEntries(ctx context.Context, userID string, limit, offset int) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerColumns + `
		FROM earnings_ledger
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetEntries, err)
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		e, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanEntry, err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// GetEntry retrieves a single ledger entry by ID
func (r *LedgerRepository) GetEntry(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM earnings_ledger WHERE entry_id = $1`

	e, err := scanLedgerEntry(r.db.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetEntry, err)
	}
	return e, nil
}

// UpdateEntryStatus moves an entry through its payout lifecycle
func (r *LedgerRepository) UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus) error {
	query := `UPDATE earnings_ledger SET status = $2 WHERE entry_id = $1`

	tag, err := r.db.Exec(ctx, query, entryID, string(status))
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateEntryStatus, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

// Cashout debits the balance and inserts a pending cashout entry in one
// transaction. The entry amount is negative; the debit magnitude must not
// exceed the locked balance or the call fails with ErrInsufficientFunds.
func (r *LedgerRepository) Cashout(ctx context.Context, entry *domain.LedgerEntry) error {
	entryUUID, err := uuid.Parse(entry.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgInvalidEntryID, err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	var balance float64
	err = tx.QueryRow(ctx,
		`SELECT current_balance FROM user_profiles WHERE user_id = $1 FOR UPDATE`,
		entry.UserID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToLockProfile, err)
	}

	debit := -entry.Amount
	if balance < debit {
		return domain.ErrInsufficientFunds
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO earnings_ledger (entry_id, user_id, trend_id, entry_type, amount, description, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, entryUUID, entry.UserID, entry.TrendID, string(entry.Type), entry.Amount,
		entry.Description, string(entry.Status), entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertEntry, err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE user_profiles SET current_balance = current_balance - $2, updated_at = NOW()
		WHERE user_id = $1
	`, entry.UserID, debit)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDebitBalance, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

// EarnedSince sums credited amounts for a user from the given time, cashouts
// excluded
func (r *LedgerRepository) EarnedSince(ctx context.Context, userID string, since time.Time) (float64, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM earnings_ledger
		WHERE user_id = $1 AND entry_type <> $2 AND created_at >= $3
	`

	var total float64
	err := r.db.QueryRow(ctx, query, userID, string(domain.EntryCashout), since).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToSumEarnings, err)
	}
	return total, nil
}
