package config

// Environment variable names for earnings limit overrides
const (
	EnvMaxSingleSubmission = "MAX_SINGLE_SUBMISSION"
	EnvMaxDailyEarnings    = "MAX_DAILY_EARNINGS"
	EnvMinCashout          = "MIN_CASHOUT"
)
