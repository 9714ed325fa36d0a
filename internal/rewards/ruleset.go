package rewards

import "github.com/wavesight/earnings-service/internal/domain"

// Base earning rates in USD
const (
	BaseSubmissionAmount = 0.25
	BaseValidationAmount = 0.02
	BaseApprovalBonus    = 0.50
)

// System limits
const (
	DefaultMaxSingleSubmission = 5.00
	DefaultMaxDailyEarnings    = 50.00
	DefaultMinCashout          = 10.00
	SessionWindowMinutes       = 5
)

// Restricted band limits and the minimum history before the band applies.
// A genuinely new account must resolve to learning, not restricted.
const (
	RestrictedMaxApproval    = 0.30
	RestrictedMaxQuality     = 0.30
	RestrictedMinSubmissions = 5
)

// TierRequirement is the entry bar for a tier.
type TierRequirement struct {
	TrendsSubmitted int
	ApprovalRate    float64
	QualityScore    float64
}

// DailyStreakStep maps a minimum consecutive-day count to a multiplier.
type DailyStreakStep struct {
	MinDays    int
	Multiplier float64
}

// Ruleset is the complete earnings configuration: one immutable value shared
// by every call site so the formula cannot drift between surfaces.
type Ruleset struct {
	BaseSubmission float64
	BaseValidation float64
	ApprovalBonus  float64

	TierMultipliers  map[domain.Tier]float64
	TierRequirements map[domain.Tier]TierRequirement

	// SessionStreak is indexed by session position 1..5; positions past the
	// end flatten to the last entry.
	SessionStreak []float64
	// DailyStreak must be sorted by MinDays descending; the first qualifying
	// step wins.
	DailyStreak []DailyStreakStep

	QualityBonuses QualityBonusSchedule

	MaxSingleSubmission float64
	MaxDailyEarnings    float64
	MinCashout          float64
}

// QualityBonusSchedule holds the additive bonus amounts for content
// completeness and performance signals.
type QualityBonusSchedule struct {
	Screenshot     float64
	CompleteInfo   float64
	Demographics   float64
	MultiPlatform  float64
	CreatorHandle  float64
	RichHashtags   float64
	Caption        float64
	Viral          float64
	HighViews      float64
	HighEngagement float64
	HighWaveScore  float64
	FinanceTrend   float64
}

// Bonus thresholds
const (
	ViralViewThreshold     = 1_000_000
	HighViewThreshold      = 100_000
	HighEngagementRate     = 0.10
	HighWaveScoreThreshold = 70
	RichHashtagMinimum     = 3
)

// financeCategories is the allow-list for the finance trend bonus.
var financeCategories = map[string]bool{
	"finance": true,
	"crypto":  true,
	"stocks":  true,
	"trading": true,
}

// DefaultRuleset returns the canonical earnings ruleset: five tiers, $0.25
// submission base, flat validation pay, and the merged quality bonus catalog.
func DefaultRuleset() Ruleset {
	return Ruleset{
		BaseSubmission: BaseSubmissionAmount,
		BaseValidation: BaseValidationAmount,
		ApprovalBonus:  BaseApprovalBonus,

		TierMultipliers: map[domain.Tier]float64{
			domain.TierMaster:     3.0,
			domain.TierElite:      2.0,
			domain.TierVerified:   1.5,
			domain.TierLearning:   1.0,
			domain.TierRestricted: 0.5,
		},

		TierRequirements: map[domain.Tier]TierRequirement{
			domain.TierMaster:   {TrendsSubmitted: 100, ApprovalRate: 0.80, QualityScore: 0.80},
			domain.TierElite:    {TrendsSubmitted: 50, ApprovalRate: 0.70, QualityScore: 0.70},
			domain.TierVerified: {TrendsSubmitted: 10, ApprovalRate: 0.60, QualityScore: 0.60},
		},

		SessionStreak: []float64{1.0, 1.2, 1.5, 2.0, 2.5},

		DailyStreak: []DailyStreakStep{
			{MinDays: 30, Multiplier: 2.5},
			{MinDays: 14, Multiplier: 2.0},
			{MinDays: 7, Multiplier: 1.5},
			{MinDays: 2, Multiplier: 1.2},
			{MinDays: 0, Multiplier: 1.0},
		},

		QualityBonuses: QualityBonusSchedule{
			Screenshot:     0.15,
			CompleteInfo:   0.10,
			Demographics:   0.10,
			MultiPlatform:  0.10,
			CreatorHandle:  0.05,
			RichHashtags:   0.05,
			Caption:        0.05,
			Viral:          0.50,
			HighViews:      0.25,
			HighEngagement: 0.20,
			HighWaveScore:  0.20,
			FinanceTrend:   0.10,
		},

		MaxSingleSubmission: DefaultMaxSingleSubmission,
		MaxDailyEarnings:    DefaultMaxDailyEarnings,
		MinCashout:          DefaultMinCashout,
	}
}

// TierMultiplier returns the earning multiplier for a tier. Unknown tiers
// default to the learning multiplier rather than failing the calculation.
func (r Ruleset) TierMultiplier(tier domain.Tier) float64 {
	if m, ok := r.TierMultipliers[tier]; ok {
		return m
	}
	return r.TierMultipliers[domain.TierLearning]
}

// IsFinanceCategory reports whether the category qualifies for the finance
// trend bonus.
func IsFinanceCategory(category string) bool {
	return financeCategories[category]
}
