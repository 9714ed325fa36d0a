package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/wavesight/earnings-service/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

// Common event types
const (
	TrendSubmitted     Type = Type(domain.EventTypeTrendSubmitted)
	TrendApproved      Type = Type(domain.EventTypeTrendApproved)
	TrendRejected      Type = Type(domain.EventTypeTrendRejected)
	RewardRecorded     Type = Type(domain.EventTypeRewardRecorded)
	TierChanged        Type = Type(domain.EventTypeTierChanged)
	DailyResetComplete Type = Type(domain.EventTypeDailyResetComplete)
)

// Typed event payloads for type safety

// TrendSubmittedPayloadV1 is the typed payload for trend submission events
type TrendSubmittedPayloadV1 struct {
	TrendID   string  `json:"trend_id"`
	UserID    string  `json:"user_id"`
	Category  string  `json:"category,omitempty"`
	Amount    float64 `json:"amount"`
	Timestamp int64   `json:"timestamp"`
}

// RewardRecordedPayloadV1 is the typed payload for ledger write events
type RewardRecordedPayloadV1 struct {
	EntryID   string  `json:"entry_id"`
	UserID    string  `json:"user_id"`
	EntryType string  `json:"entry_type"`
	Amount    float64 `json:"amount"`
	Capped    bool    `json:"capped,omitempty"`
	Timestamp int64   `json:"timestamp"`
}

// TrendResolvedPayloadV1 is the typed payload for approval and rejection events
type TrendResolvedPayloadV1 struct {
	TrendID     string  `json:"trend_id"`
	SpotterID   string  `json:"spotter_id"`
	VerifyVotes int     `json:"verify_votes"`
	RejectVotes int     `json:"reject_votes"`
	BonusAmount float64 `json:"bonus_amount,omitempty"`
	Timestamp   int64   `json:"timestamp"`
}

// TierChangedPayloadV1 is the typed payload for tier transition events
type TierChangedPayloadV1 struct {
	UserID    string `json:"user_id"`
	OldTier   string `json:"old_tier"`
	NewTier   string `json:"new_tier"`
	Timestamp int64  `json:"timestamp"`
}

// DailyResetCompletePayloadV1 is the typed payload for daily reset complete events
type DailyResetCompletePayloadV1 struct {
	ResetTime     time.Time `json:"reset_time"`
	ProfilesReset int64     `json:"profiles_reset"`
	StreaksBroken int64     `json:"streaks_broken"`
}

// Type-safe event constructors

// NewTrendSubmittedEvent creates a new trend submission event
func NewTrendSubmittedEvent(trendID, userID, category string, amount float64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    TrendSubmitted,
		Payload: TrendSubmittedPayloadV1{
			TrendID:   trendID,
			UserID:    userID,
			Category:  category,
			Amount:    amount,
			Timestamp: time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewRewardRecordedEvent creates a new reward recorded event
func NewRewardRecordedEvent(entry domain.LedgerEntry, capped bool) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    RewardRecorded,
		Payload: RewardRecordedPayloadV1{
			EntryID:   entry.ID,
			UserID:    entry.UserID,
			EntryType: string(entry.Type),
			Amount:    entry.Amount,
			Capped:    capped,
			Timestamp: time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewTrendApprovedEvent creates a new trend approved event
func NewTrendApprovedEvent(trendID, spotterID string, verifyVotes, rejectVotes int, bonusAmount float64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    TrendApproved,
		Payload: TrendResolvedPayloadV1{
			TrendID:     trendID,
			SpotterID:   spotterID,
			VerifyVotes: verifyVotes,
			RejectVotes: rejectVotes,
			BonusAmount: bonusAmount,
			Timestamp:   time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewTrendRejectedEvent creates a new trend rejected event
func NewTrendRejectedEvent(trendID, spotterID string, verifyVotes, rejectVotes int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    TrendRejected,
		Payload: TrendResolvedPayloadV1{
			TrendID:     trendID,
			SpotterID:   spotterID,
			VerifyVotes: verifyVotes,
			RejectVotes: rejectVotes,
			Timestamp:   time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewTierChangedEvent creates a new tier transition event
func NewTierChangedEvent(userID string, oldTier, newTier domain.Tier) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    TierChanged,
		Payload: TierChangedPayloadV1{
			UserID:    userID,
			OldTier:   string(oldTier),
			NewTier:   string(newTier),
			Timestamp: time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewDailyResetCompleteEvent creates a new daily reset complete event
func NewDailyResetCompleteEvent(resetTime time.Time, profilesReset, streaksBroken int64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    DailyResetComplete,
		Payload: DailyResetCompletePayloadV1{
			ResetTime:     resetTime,
			ProfilesReset: profilesReset,
			StreaksBroken: streaksBroken,
		},
		Metadata: nil,
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	// Handlers run synchronously; a failing handler does not stop the rest.
	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
