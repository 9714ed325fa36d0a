package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/wavesight/earnings-service/internal/domain"
	"github.com/wavesight/earnings-service/internal/repository"
	"github.com/wavesight/earnings-service/internal/rewards"
)

// FakeRepository is a stateful in-memory implementation of repository.Ledger
// for tests. It mirrors the postgres implementation's cap-truncation and
// balance bookkeeping.
type FakeRepository struct {
	mu          sync.Mutex
	entries     []domain.LedgerEntry
	balances    map[string]float64
	todayEarned map[string]float64
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{
		balances:    make(map[string]float64),
		todayEarned: make(map[string]float64),
	}
}

func (f *FakeRepository) RecordEntry(ctx context.Context, entry *domain.LedgerEntry, dailyCap float64) (repository.RecordResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	headroom := dailyCap - f.todayEarned[entry.UserID]
	if headroom <= 0 {
		return repository.RecordResult{}, domain.ErrDailyCapReached
	}

	result := repository.RecordResult{Recorded: entry.Amount}
	if entry.Amount > headroom {
		result.Recorded = rewards.Round2(headroom)
		result.Truncated = true
	}

	stored := *entry
	stored.Amount = result.Recorded
	f.entries = append(f.entries, stored)
	f.balances[entry.UserID] += result.Recorded
	f.todayEarned[entry.UserID] += result.Recorded
	return result, nil
}

func (f *FakeRepository) GetEntries(ctx context.Context, userID string, limit, offset int) ([]domain.LedgerEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var mine []domain.LedgerEntry
	for i := len(f.entries) - 1; i >= 0; i-- {
		if f.entries[i].UserID == userID {
			mine = append(mine, f.entries[i])
		}
	}

	if offset >= len(mine) {
		return nil, nil
	}
	mine = mine[offset:]
	if len(mine) > limit {
		mine = mine[:limit]
	}
	return mine, nil
}

func (f *FakeRepository) GetEntry(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.entries {
		if f.entries[i].ID == entryID {
			cp := f.entries[i]
			return &cp, nil
		}
	}
	return nil, domain.ErrEntryNotFound
}

func (f *FakeRepository) UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.entries {
		if f.entries[i].ID == entryID {
			f.entries[i].Status = status
			return nil
		}
	}
	return domain.ErrEntryNotFound
}

func (f *FakeRepository) Cashout(ctx context.Context, entry *domain.LedgerEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	amount := -entry.Amount
	if f.balances[entry.UserID] < amount {
		return domain.ErrInsufficientFunds
	}

	f.balances[entry.UserID] -= amount
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *FakeRepository) EarnedSince(ctx context.Context, userID string, since time.Time) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var total float64
	for _, e := range f.entries {
		if e.UserID == userID && e.Type != domain.EntryCashout && !e.CreatedAt.Before(since) {
			total += e.Amount
		}
	}
	return total, nil
}

// SetTodayEarned seeds the daily counter for cap tests.
func (f *FakeRepository) SetTodayEarned(userID string, amount float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.todayEarned[userID] = amount
}

// Balance reads the tracked balance.
func (f *FakeRepository) Balance(userID string) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.balances[userID]
}
