package domain

import "errors"

// Sentinel errors for service and repository layers.
// Handlers map these to HTTP status codes and user-facing messages.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrTrendNotFound       = errors.New("trend not found")
	ErrDuplicateVote       = errors.New("user already voted on this trend")
	ErrSelfVote            = errors.New("cannot vote on your own trend")
	ErrVotingClosed        = errors.New("voting window for this trend has closed")
	ErrDailyCapReached     = errors.New("daily earnings cap reached")
	ErrInsufficientFunds   = errors.New("insufficient balance")
	ErrBelowMinCashout     = errors.New("balance below minimum cashout")
	ErrInvalidVoteType     = errors.New("invalid vote type")
	ErrInvalidEntryType    = errors.New("invalid ledger entry type")
	ErrEntryNotFound       = errors.New("ledger entry not found")
	ErrInvalidStatusChange = errors.New("invalid ledger status change")
	ErrDatabaseError       = errors.New("database error")
	ErrConnectionTimeout   = errors.New("connection timeout")
)
