package rewards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wavesight/earnings-service/internal/domain"
)

func TestSubmission_NewUserFirstTrend(t *testing.T) {
	calc := NewCalculator(DefaultRuleset())

	// Bare submission, no bonuses, no streaks: just the base rate.
	b := calc.Submission(domain.TierLearning, domain.ContentSignals{}, 1, 0)

	assert.Equal(t, 0.25, b.FinalAmount)
	assert.Equal(t, 1.0, b.TierMultiplier)
	assert.Equal(t, 1.0, b.SessionMultiplier)
	assert.Equal(t, 1.0, b.DailyStreakMultiplier)
	assert.False(t, b.Capped)
	assert.Equal(t, []string{"Base submission: $0.25"}, b.Lines)
}

func TestSubmission_VerifiedWithStreaks(t *testing.T) {
	calc := NewCalculator(DefaultRuleset())

	// 0.25 * 1.5 (verified) * 1.5 (3rd in session) * 1.5 (7-day) = 0.84375
	b := calc.Submission(domain.TierVerified, domain.ContentSignals{}, 3, 7)

	assert.InDelta(t, 0.84375, b.RawTotal, 1e-9)
	assert.Equal(t, 0.84, b.FinalAmount)
	assert.False(t, b.Capped)
}

func TestSubmission_EliteMaxStreaks(t *testing.T) {
	calc := NewCalculator(DefaultRuleset())

	// 0.25 * 2.0 * 2.5 * 2.5 = 3.125
	b := calc.Submission(domain.TierElite, domain.ContentSignals{}, 5, 30)

	assert.InDelta(t, 3.125, b.RawTotal, 1e-9)
	assert.Equal(t, 3.13, b.FinalAmount)
	assert.False(t, b.Capped)
}

func TestSubmission_LearningWithBonuses(t *testing.T) {
	calc := NewCalculator(DefaultRuleset())

	// (0.25 + 0.15 screenshot + 0.50 viral + 0.20 engagement) * 1.0 = 1.10
	b := calc.Submission(domain.TierLearning, domain.ContentSignals{
		HasScreenshot:  true,
		ViewCount:      1_500_000,
		EngagementRate: 0.12,
	}, 1, 0)

	require.Len(t, b.Bonuses, 3)
	assert.InDelta(t, 1.10, b.FinalAmount, 1e-9)
	assert.Contains(t, b.Lines, "Screenshot: +$0.15")
	assert.Contains(t, b.Lines, "Viral (1M+ views): +$0.50")
	assert.Contains(t, b.Lines, "High engagement: +$0.20")
}

func TestSubmission_CappedAtMax(t *testing.T) {
	calc := NewCalculator(DefaultRuleset())

	// Every bonus plus master tier and max streaks blows past the cap:
	// (0.25 + 1.60) * 3.0 * 2.5 * 2.5 = 34.69
	b := calc.Submission(domain.TierMaster, domain.ContentSignals{
		HasScreenshot:       true,
		HasTitleDescription: true,
		HasDemographics:     true,
		PlatformCount:       4,
		HasCreatorHandle:    true,
		HashtagCount:        8,
		HasCaption:          true,
		ViewCount:           5_000_000,
		EngagementRate:      0.20,
		WaveScore:           90,
		Category:            "finance",
	}, 5, 30)

	assert.True(t, b.Capped)
	assert.Equal(t, 5.00, b.FinalAmount)
	assert.Greater(t, b.RawTotal, b.FinalAmount)
	assert.Contains(t, b.Lines, "Capped at max: $5.00")
}

func TestSubmission_CustomCap(t *testing.T) {
	rules := DefaultRuleset()
	rules.MaxSingleSubmission = 2.00
	calc := NewCalculator(rules)

	b := calc.Submission(domain.TierElite, domain.ContentSignals{}, 5, 30)
	assert.True(t, b.Capped)
	assert.Equal(t, 2.00, b.FinalAmount)
}

func TestSubmission_UnknownTierEarnsLearningRate(t *testing.T) {
	calc := NewCalculator(DefaultRuleset())

	b := calc.Submission(domain.Tier("wizard"), domain.ContentSignals{}, 1, 0)
	assert.Equal(t, 0.25, b.FinalAmount)
}

func TestSubmission_OutOfRangeInputsClamp(t *testing.T) {
	calc := NewCalculator(DefaultRuleset())

	b := calc.Submission(domain.TierLearning, domain.ContentSignals{}, -2, -10)
	assert.Equal(t, 1.0, b.SessionMultiplier)
	assert.Equal(t, 1.0, b.DailyStreakMultiplier)
	assert.Equal(t, 0.25, b.FinalAmount)
}

func TestSubmission_TierMonotonic(t *testing.T) {
	calc := NewCalculator(DefaultRuleset())
	signals := domain.ContentSignals{HasScreenshot: true}

	ladder := []domain.Tier{
		domain.TierRestricted,
		domain.TierLearning,
		domain.TierVerified,
		domain.TierElite,
		domain.TierMaster,
	}

	prev := 0.0
	for _, tier := range ladder {
		b := calc.Submission(tier, signals, 2, 7)
		assert.Greater(t, b.FinalAmount, prev, "tier=%s", tier)
		prev = b.FinalAmount
	}
}

func TestSubmission_NeverExceedsCap(t *testing.T) {
	calc := NewCalculator(DefaultRuleset())
	signals := domain.ContentSignals{
		HasScreenshot: true,
		ViewCount:     2_000_000,
		WaveScore:     95,
	}

	for _, tier := range []domain.Tier{domain.TierLearning, domain.TierVerified, domain.TierElite, domain.TierMaster} {
		for pos := 1; pos <= 8; pos++ {
			for _, days := range []int{0, 2, 7, 14, 30, 90} {
				b := calc.Submission(tier, signals, pos, days)
				assert.LessOrEqual(t, b.FinalAmount, calc.Rules().MaxSingleSubmission,
					"tier=%s pos=%d days=%d", tier, pos, days)
				assert.Equal(t, Round2(b.FinalAmount), b.FinalAmount,
					"amount must be whole cents: tier=%s pos=%d days=%d", tier, pos, days)
			}
		}
	}
}

func TestValidation_FlatAcrossTiers(t *testing.T) {
	calc := NewCalculator(DefaultRuleset())

	b := calc.Validation()
	assert.Equal(t, 0.02, b.FinalAmount)
	assert.Equal(t, 1.0, b.TierMultiplier)
	assert.Equal(t, []string{"Validation vote: $0.02"}, b.Lines)
}

func TestApprovalBonus(t *testing.T) {
	calc := NewCalculator(DefaultRuleset())

	tests := []struct {
		tier     domain.Tier
		expected float64
	}{
		{domain.TierMaster, 1.50},
		{domain.TierElite, 1.00},
		{domain.TierVerified, 0.75},
		{domain.TierLearning, 0.50},
		{domain.TierRestricted, 0.25},
	}

	for _, tt := range tests {
		b := calc.ApprovalBonus(tt.tier)
		assert.Equal(t, tt.expected, b.FinalAmount, "tier=%s", tt.tier)
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 0.84, Round2(0.84375))
	assert.Equal(t, 3.13, Round2(3.125))
	assert.Equal(t, 0.0, Round2(0.0))
	assert.Equal(t, -3.13, Round2(-3.125))
}
