package domain

import "time"

// TrendStatus tracks a submission through community validation.
type TrendStatus string

const (
	TrendStatusPending  TrendStatus = "pending"
	TrendStatusApproved TrendStatus = "approved"
	TrendStatusRejected TrendStatus = "rejected"
	TrendStatusExpired  TrendStatus = "expired"
)

// VoteType is a validator's verdict on a pending trend.
type VoteType string

const (
	VoteVerify VoteType = "verify"
	VoteReject VoteType = "reject"
)

// ContentSignals are the completeness and performance attributes of a
// submission that drive quality bonuses. All fields are derived server-side
// from the submission payload and fetched metadata.
type ContentSignals struct {
	HasScreenshot       bool    `json:"has_screenshot"`
	HasTitleDescription bool    `json:"has_title_description"`
	HasDemographics     bool    `json:"has_demographics"`
	PlatformCount       int     `json:"platform_count"`
	HasCreatorHandle    bool    `json:"has_creator_handle"`
	HashtagCount        int     `json:"hashtag_count"`
	HasCaption          bool    `json:"has_caption"`
	ViewCount           int64   `json:"view_count"`
	EngagementRate      float64 `json:"engagement_rate"`
	WaveScore           float64 `json:"wave_score"`
	Category            string  `json:"category"`
}

// TrendVote is one validator's verdict on a pending trend. A voter gets one
// vote per trend, and never on their own submission.
type TrendVote struct {
	ID      string    `json:"id"`
	TrendID string    `json:"trend_id"`
	VoterID string    `json:"voter_id"`
	Vote    VoteType  `json:"vote"`
	CastAt  time.Time `json:"cast_at"`
}

// Trend is a submitted trend awaiting or past validation.
type Trend struct {
	ID          string         `json:"id"`
	SpotterID   string         `json:"spotter_id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	Status      TrendStatus    `json:"status"`
	Signals     ContentSignals `json:"signals"`
	VerifyVotes int            `json:"verify_votes"`
	RejectVotes int            `json:"reject_votes"`
	SubmittedAt time.Time      `json:"submitted_at"`
}
