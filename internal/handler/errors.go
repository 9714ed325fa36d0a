package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details for security reasons.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"

	// Trend operation error messages
	ErrMsgSubmitTrendFailed = "Failed to submit trend"
	ErrMsgCastVoteFailed    = "Failed to record vote"

	// Earnings operation error messages
	ErrMsgPreviewFailed    = "Failed to preview earnings"
	ErrMsgGetBalanceFailed = "Failed to get balance"
	ErrMsgGetLedgerFailed  = "Failed to get earnings history"
	ErrMsgCashoutFailed    = "Failed to request cashout"

	// Profile error messages
	ErrMsgGetTierFailed = "Failed to get tier status"

	// Admin error messages
	ErrMsgDailyResetFailed  = "Failed to run daily reset"
	ErrMsgSettleEntryFailed = "Failed to settle ledger entry"
)

// Success messages for API responses
const (
	MsgTrendSubmittedSuccess = "Trend submitted"
	MsgVoteRecordedSuccess   = "Vote recorded"
	MsgCashoutRequested      = "Cashout requested"
)
