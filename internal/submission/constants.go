package submission

import "time"

// Community validation thresholds
const (
	// ApproveThreshold is the number of verify votes that approves a trend
	ApproveThreshold = 3

	// RejectThreshold is the number of reject votes that rejects a trend
	RejectThreshold = 3

	// VotingWindow is how long a trend stays open for validation votes
	VotingWindow = 72 * time.Hour
)

// completenessSignalCount is the number of boolean completeness signals that
// feed the rolling quality score.
const completenessSignalCount = 7
