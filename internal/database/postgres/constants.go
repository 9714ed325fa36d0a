package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
	// PgErrorCodeForeignKeyViolation is the PostgreSQL error code for foreign key violations
	PgErrorCodeForeignKeyViolation = "23503"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
)

// Error Messages - Profile Operations
const (
	ErrMsgFailedToGetProfile       = "failed to get profile"
	ErrMsgFailedToCreateProfile    = "failed to create profile"
	ErrMsgFailedToAdvanceSession   = "failed to advance session"
	ErrMsgFailedToRecordSubmission = "failed to record submission counters"
	ErrMsgFailedToRecordOutcome    = "failed to record submission outcome"
	ErrMsgFailedToUpdateTier       = "failed to update tier"
	ErrMsgFailedToResetDaily       = "failed to reset daily earnings"
	ErrMsgFailedToResetStreaks     = "failed to reset stale streaks"
	ErrMsgFailedToLockProfile      = "failed to lock profile row"
)

// Error Messages - Ledger Operations
const (
	ErrMsgInvalidEntryID            = "invalid entry id"
	ErrMsgFailedToInsertEntry       = "failed to insert ledger entry"
	ErrMsgFailedToGetEntries        = "failed to get ledger entries"
	ErrMsgFailedToScanEntry         = "failed to scan ledger entry"
	ErrMsgFailedToGetEntry          = "failed to get ledger entry"
	ErrMsgFailedToUpdateEntryStatus = "failed to update entry status"
	ErrMsgFailedToCreditBalance     = "failed to credit balance"
	ErrMsgFailedToDebitBalance      = "failed to debit balance"
	ErrMsgFailedToSumEarnings       = "failed to sum earnings"
)

// Error Messages - Trend Operations
const (
	ErrMsgInvalidTrendID            = "invalid trend id"
	ErrMsgInvalidVoteID             = "invalid vote id"
	ErrMsgFailedToInsertTrend       = "failed to insert trend"
	ErrMsgFailedToGetTrend          = "failed to get trend"
	ErrMsgFailedToMarshalSignals    = "failed to marshal content signals"
	ErrMsgFailedToUnmarshalSignals  = "failed to unmarshal content signals"
	ErrMsgFailedToInsertVote        = "failed to insert vote"
	ErrMsgFailedToTallyVotes        = "failed to tally votes"
	ErrMsgFailedToUpdateTrendStatus = "failed to update trend status"
	ErrMsgFailedToExpireTrends      = "failed to expire pending trends"
)
