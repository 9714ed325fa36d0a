package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wavesight/earnings-service/internal/domain"
	"github.com/wavesight/earnings-service/internal/event"
	"github.com/wavesight/earnings-service/internal/logger"
	"github.com/wavesight/earnings-service/internal/repository"
	"github.com/wavesight/earnings-service/internal/rewards"
)

// Reward is a recorded ledger write: the entry as persisted plus how much of
// the calculated amount actually landed after daily-cap truncation.
type Reward struct {
	Entry     domain.LedgerEntry `json:"entry"`
	Requested float64            `json:"requested"`
	Truncated bool               `json:"truncated"`
}

// Service defines the interface for ledger operations
type Service interface {
	// Record writes a calculated reward to the ledger. The amount credited
	// may be less than the breakdown's final amount when the user is near
	// the daily cap; a user at the cap gets domain.ErrDailyCapReached.
	Record(ctx context.Context, userID string, trendID *string, entryType domain.EntryType, b rewards.Breakdown) (*Reward, error)

	History(ctx context.Context, userID string, limit, offset int) ([]domain.LedgerEntry, error)

	// RequestCashout debits the balance into a pending cashout entry.
	RequestCashout(ctx context.Context, userID string, amount float64) (*domain.LedgerEntry, error)

	// SettleEntry moves an entry through the payout lifecycle. Allowed
	// transitions: pending to approved or cancelled, approved to paid or
	// cancelled. Anything else fails with domain.ErrInvalidStatusChange.
	SettleEntry(ctx context.Context, entryID string, status domain.EntryStatus) (*domain.LedgerEntry, error)
}

// service implements the Service interface
type service struct {
	repo  repository.Ledger
	rules rewards.Ruleset
	bus   event.Bus
}

// NewService creates a new ledger service
func NewService(repo repository.Ledger, rules rewards.Ruleset, bus event.Bus) Service {
	return &service{repo: repo, rules: rules, bus: bus}
}

func (s *service) Record(ctx context.Context, userID string, trendID *string, entryType domain.EntryType, b rewards.Breakdown) (*Reward, error) {
	log := logger.FromContext(ctx)

	entry := &domain.LedgerEntry{
		ID:          uuid.NewString(),
		UserID:      userID,
		TrendID:     trendID,
		Type:        entryType,
		Amount:      b.FinalAmount,
		Description: strings.Join(b.Lines, "; "),
		Status:      domain.EntryStatusApproved,
		CreatedAt:   time.Now().UTC(),
	}

	result, err := s.repo.RecordEntry(ctx, entry, s.rules.MaxDailyEarnings)
	if err != nil {
		if errors.Is(err, domain.ErrDailyCapReached) {
			log.Info("daily cap reached, nothing credited", "user_id", userID, "requested", b.FinalAmount)
		}
		return nil, err
	}

	if result.Truncated {
		log.Info("reward truncated to daily headroom",
			"user_id", userID,
			"requested", b.FinalAmount,
			"recorded", result.Recorded)
		entry.Amount = result.Recorded
	}

	if s.bus != nil {
		if perr := s.bus.Publish(ctx, event.NewRewardRecordedEvent(*entry, b.Capped)); perr != nil {
			log.Warn("reward event publish failed", "entry_id", entry.ID, "error", perr)
		}
	}

	return &Reward{
		Entry:     *entry,
		Requested: b.FinalAmount,
		Truncated: result.Truncated,
	}, nil
}

func (s *service) History(ctx context.Context, userID string, limit, offset int) ([]domain.LedgerEntry, error) {
	if limit <= 0 || limit > MaxHistoryPageSize {
		limit = DefaultHistoryPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.GetEntries(ctx, userID, limit, offset)
}

func (s *service) RequestCashout(ctx context.Context, userID string, amount float64) (*domain.LedgerEntry, error) {
	amount = rewards.Round2(amount)
	if amount < s.rules.MinCashout {
		return nil, domain.ErrBelowMinCashout
	}

	entry := &domain.LedgerEntry{
		ID:          uuid.NewString(),
		UserID:      userID,
		Type:        domain.EntryCashout,
		Amount:      -amount,
		Description: fmt.Sprintf("Cashout request: $%.2f", amount),
		Status:      domain.EntryStatusPending,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Cashout(ctx, entry); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("cashout requested", "user_id", userID, "amount", amount)
	return entry, nil
}

// settleTransitions is the payout lifecycle. Paid and cancelled entries are
// terminal.
var settleTransitions = map[domain.EntryStatus][]domain.EntryStatus{
	domain.EntryStatusPending:  {domain.EntryStatusApproved, domain.EntryStatusCancelled},
	domain.EntryStatusApproved: {domain.EntryStatusPaid, domain.EntryStatusCancelled},
}

func (s *service) SettleEntry(ctx context.Context, entryID string, status domain.EntryStatus) (*domain.LedgerEntry, error) {
	entry, err := s.repo.GetEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}

	allowed := false
	for _, next := range settleTransitions[entry.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("%s to %s: %w", entry.Status, status, domain.ErrInvalidStatusChange)
	}

	if err := s.repo.UpdateEntryStatus(ctx, entryID, status); err != nil {
		return nil, err
	}
	entry.Status = status

	logger.FromContext(ctx).Info("ledger entry settled",
		"entry_id", entryID,
		"user_id", entry.UserID,
		"status", status)
	return entry, nil
}
