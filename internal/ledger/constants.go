package ledger

// History pagination limits
const (
	DefaultHistoryPageSize = 50
	MaxHistoryPageSize     = 200
)
