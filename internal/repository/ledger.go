package repository

import (
	"context"
	"time"

	"github.com/wavesight/earnings-service/internal/domain"
)

// RecordResult reports what a ledger write actually credited after daily-cap
// truncation.
type RecordResult struct {
	Recorded  float64
	Truncated bool
}

// Ledger defines the interface for earnings ledger data access
type Ledger interface {
	// RecordEntry inserts the entry and updates the owning profile's
	// current_balance, total_earned and today_earned in one transaction.
	// The entry amount is truncated to the remaining headroom under
	// dailyCap; a fully exhausted cap records nothing and returns
	// domain.ErrDailyCapReached.
	RecordEntry(ctx context.Context, entry *domain.LedgerEntry, dailyCap float64) (RecordResult, error)

	GetEntries(ctx context.Context, userID string, limit, offset int) ([]domain.LedgerEntry, error)
	GetEntry(ctx context.Context, entryID string) (*domain.LedgerEntry, error)
	UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus) error

	// Cashout debits the balance and inserts a pending cashout entry in one
	// transaction. Fails with domain.ErrInsufficientFunds when the balance
	// cannot cover the amount.
	Cashout(ctx context.Context, entry *domain.LedgerEntry) error

	// EarnedSince sums credited amounts for a user from the given time,
	// cashouts excluded.
	EarnedSince(ctx context.Context, userID string, since time.Time) (float64, error)
}
