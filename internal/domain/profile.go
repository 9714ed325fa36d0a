package domain

import "time"

// Tier is a spotter's earning-multiplier class, derived from submission volume
// and quality history. It is always recomputed server-side from the stored
// performance counters and never accepted from a client.
type Tier string

const (
	TierMaster     Tier = "master"
	TierElite      Tier = "elite"
	TierVerified   Tier = "verified"
	TierLearning   Tier = "learning"
	TierRestricted Tier = "restricted"
)

// tierRanks orders tiers from lowest to highest earning power.
var tierRanks = map[Tier]int{
	TierRestricted: 0,
	TierLearning:   1,
	TierVerified:   2,
	TierElite:      3,
	TierMaster:     4,
}

// Rank returns the ordinal position of the tier, restricted lowest.
// Unknown tiers rank as learning.
func (t Tier) Rank() int {
	if r, ok := tierRanks[t]; ok {
		return r
	}
	return tierRanks[TierLearning]
}

// Valid reports whether t is one of the five known tiers.
func (t Tier) Valid() bool {
	_, ok := tierRanks[t]
	return ok
}

// PerformanceProfile is a spotter's earnings-relevant state. The engine reads
// it; only the profile store writes it.
type PerformanceProfile struct {
	UserID           string     `json:"user_id"`
	Tier             Tier       `json:"tier"`
	TrendsSubmitted  int        `json:"trends_submitted"`
	TrendsApproved   int        `json:"trends_approved"`
	ApprovalRate     float64    `json:"approval_rate"`
	QualityScore     float64    `json:"quality_score"`
	CurrentBalance   float64    `json:"current_balance"`
	TotalEarned      float64    `json:"total_earned"`
	TodayEarned      float64    `json:"today_earned"`
	DailyStreak      int        `json:"daily_streak"`
	SessionPosition  int        `json:"session_position"`
	LastSubmissionAt *time.Time `json:"last_submission_at,omitempty"`
}
