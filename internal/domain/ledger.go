package domain

import "time"

// EntryType classifies a ledger transaction.
type EntryType string

const (
	EntrySubmission    EntryType = "trend_submission"
	EntryValidation    EntryType = "trend_validation"
	EntryApprovalBonus EntryType = "approval_bonus"
	EntryCashout       EntryType = "cashout"
)

// EntryStatus is the payout lifecycle of a ledger entry.
type EntryStatus string

const (
	EntryStatusPending   EntryStatus = "pending"
	EntryStatusApproved  EntryStatus = "approved"
	EntryStatusPaid      EntryStatus = "paid"
	EntryStatusCancelled EntryStatus = "cancelled"
)

// LedgerEntry is one recorded earning (or cashout) for a user.
// Amount is always the capped, rounded final amount from the calculator.
type LedgerEntry struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id"`
	TrendID     *string     `json:"trend_id,omitempty"`
	Type        EntryType   `json:"type"`
	Amount      float64     `json:"amount"`
	Description string      `json:"description"`
	Status      EntryStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
}

// EventType constants for ledger- and reset-related events.
const (
	EventTypeRewardRecorded     = "reward.recorded"
	EventTypeTrendSubmitted     = "trend.submitted"
	EventTypeTrendApproved      = "trend.approved"
	EventTypeTrendRejected      = "trend.rejected"
	EventTypeDailyResetComplete = "daily_reset.completed"
	EventTypeTierChanged        = "tier.changed"
)
