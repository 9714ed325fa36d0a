package worker

// ============================================================================
// Log Messages - Daily Reset Worker
// ============================================================================

// Log messages for daily reset worker operations
const (
	LogMsgDailyResetStandby   = "Daily reset standby"
	LogMsgDailyResetApproach  = "Daily reset approach scheduled"
	LogMsgDailyResetStarting  = "Daily reset starting"
	LogMsgDailyResetCompleted = "Daily reset completed"
	LogMsgDailyResetFailed    = "Daily reset failed"
	LogMsgTrendExpiryFailed   = "Stale trend expiry failed"
)
