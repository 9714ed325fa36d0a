package rewards

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wavesight/earnings-service/internal/domain"
)

func TestProgress_MasterIsTerminal(t *testing.T) {
	r := DefaultRuleset()

	p := r.Progress(domain.TierMaster, TierInput{TrendsSubmitted: 500, ApprovalRate: 0.9, QualityScore: 0.9})
	assert.Equal(t, 100, p.Percent)
	assert.Empty(t, p.NextTier)
	assert.Empty(t, p.Requirements)
}

func TestProgress_LearningTowardVerified(t *testing.T) {
	r := DefaultRuleset()

	// 5/10 submitted, 0.30/0.60 approval, 0.60/0.60 quality
	// = (0.5 + 0.5 + 1.0) / 3 = 66.67% -> 67
	p := r.Progress(domain.TierLearning, TierInput{TrendsSubmitted: 5, ApprovalRate: 0.30, QualityScore: 0.60})

	assert.Equal(t, domain.TierVerified, p.NextTier)
	assert.Equal(t, 67, p.Percent)
	assert.Contains(t, p.Requirements, "Submit 5 more trends")
	assert.Contains(t, p.Requirements, "Reach 60% approval rate")
	assert.NotContains(t, p.Requirements, "Reach 60% quality score")
}

func TestProgress_VerifiedTowardElite(t *testing.T) {
	r := DefaultRuleset()

	p := r.Progress(domain.TierVerified, TierInput{TrendsSubmitted: 50, ApprovalRate: 0.70, QualityScore: 0.70})
	assert.Equal(t, domain.TierElite, p.NextTier)
	assert.Equal(t, 100, p.Percent)
	assert.Empty(t, p.Requirements)
}

func TestProgress_RestrictedClimbsTowardVerified(t *testing.T) {
	r := DefaultRuleset()

	p := r.Progress(domain.TierRestricted, TierInput{TrendsSubmitted: 20, ApprovalRate: 0.20, QualityScore: 0.20})
	assert.Equal(t, domain.TierVerified, p.NextTier)
	assert.NotEmpty(t, p.Requirements)
}

func TestMonthly(t *testing.T) {
	m := Monthly(domain.TierMaster)
	assert.Equal(t, 500.0, m.Minimum)
	assert.Equal(t, 700.0, m.Average)
	assert.Equal(t, 900.0, m.Maximum)

	// Unknown tiers fall back to the learning range.
	assert.Equal(t, Monthly(domain.TierLearning), Monthly(domain.Tier("wizard")))
}

func TestCanCashOut(t *testing.T) {
	r := DefaultRuleset()

	assert.False(t, r.CanCashOut(0))
	assert.False(t, r.CanCashOut(9.99))
	assert.True(t, r.CanCashOut(10.00))
	assert.True(t, r.CanCashOut(250))
}
