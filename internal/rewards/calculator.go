package rewards

import (
	"fmt"
	"math"

	"github.com/wavesight/earnings-service/internal/domain"
)

// Breakdown is the itemized trace of one reward calculation. It is built
// fresh per call, never mutated afterward, and FinalAmount is the only value
// the ledger persists.
type Breakdown struct {
	Base                  float64     `json:"base"`
	Bonuses               []BonusLine `json:"bonuses,omitempty"`
	TierMultiplier        float64     `json:"tier_multiplier"`
	SessionMultiplier     float64     `json:"session_multiplier"`
	DailyStreakMultiplier float64     `json:"daily_streak_multiplier"`
	RawTotal              float64     `json:"raw_total"`
	FinalAmount           float64     `json:"final_amount"`
	Capped                bool        `json:"capped"`
	Lines                 []string    `json:"lines"`
}

// Calculator converts user actions into monetary rewards. It is pure: no
// I/O, no mutation, safe for concurrent use from any number of goroutines.
type Calculator struct {
	rules Ruleset
}

// NewCalculator creates a calculator over the given ruleset.
func NewCalculator(rules Ruleset) *Calculator {
	return &Calculator{rules: rules}
}

// Rules returns the calculator's ruleset.
func (c *Calculator) Rules() Ruleset {
	return c.rules
}

// Submission computes the reward for submitting a trend:
//
//	(base + sum(content bonuses)) x tier x session streak x daily streak
//
// capped at MaxSingleSubmission and rounded to cents. Out-of-range inputs
// are clamped, never rejected: an unknown tier earns at the learning rate,
// a session position below 1 counts as 1, a negative streak as 0.
func (c *Calculator) Submission(tier domain.Tier, signals domain.ContentSignals, sessionPosition, dailyStreak int) Breakdown {
	r := c.rules

	b := Breakdown{
		Base:                  r.BaseSubmission,
		Bonuses:               r.ContentBonuses(signals),
		TierMultiplier:        r.TierMultiplier(tier),
		SessionMultiplier:     r.SessionStreakMultiplier(sessionPosition),
		DailyStreakMultiplier: r.DailyStreakMultiplier(dailyStreak),
	}

	b.Lines = append(b.Lines, fmt.Sprintf("Base submission: $%.2f", b.Base))
	for _, bonus := range b.Bonuses {
		b.Lines = append(b.Lines, fmt.Sprintf("%s: +$%.2f", bonus.Label, bonus.Amount))
	}

	if !tier.Valid() {
		tier = domain.TierLearning
	}
	if b.TierMultiplier != 1.0 {
		b.Lines = append(b.Lines, fmt.Sprintf("%s tier: %gx", tier, b.TierMultiplier))
	}
	if b.SessionMultiplier > 1.0 {
		if sessionPosition > len(r.SessionStreak) {
			sessionPosition = len(r.SessionStreak)
		}
		b.Lines = append(b.Lines, fmt.Sprintf("Session #%d: %gx", sessionPosition, b.SessionMultiplier))
	}
	if b.DailyStreakMultiplier > 1.0 {
		b.Lines = append(b.Lines, fmt.Sprintf("%d-day streak: %gx", dailyStreak, b.DailyStreakMultiplier))
	}

	b.RawTotal = (b.Base + SumBonuses(b.Bonuses)) * b.TierMultiplier * b.SessionMultiplier * b.DailyStreakMultiplier
	b.FinalAmount = Round2(b.RawTotal)
	if b.FinalAmount > r.MaxSingleSubmission {
		b.FinalAmount = r.MaxSingleSubmission
		b.Capped = true
		b.Lines = append(b.Lines, fmt.Sprintf("Capped at max: $%.2f", r.MaxSingleSubmission))
	}

	return b
}

// Validation computes the reward for a validation vote: a flat rate,
// identical for every tier. An earlier version multiplied this by tier and
// let high-tier accounts farm votes; the rate is deliberately flat now.
func (c *Calculator) Validation() Breakdown {
	amount := Round2(c.rules.BaseValidation)
	return Breakdown{
		Base:                  c.rules.BaseValidation,
		TierMultiplier:        1.0,
		SessionMultiplier:     1.0,
		DailyStreakMultiplier: 1.0,
		RawTotal:              c.rules.BaseValidation,
		FinalAmount:           amount,
		Lines:                 []string{fmt.Sprintf("Validation vote: $%.2f", amount)},
	}
}

// ApprovalBonus computes the bonus paid to the spotter when their trend is
// approved by the community: base bonus times tier multiplier.
func (c *Calculator) ApprovalBonus(tier domain.Tier) Breakdown {
	mult := c.rules.TierMultiplier(tier)
	raw := c.rules.ApprovalBonus * mult
	b := Breakdown{
		Base:                  c.rules.ApprovalBonus,
		TierMultiplier:        mult,
		SessionMultiplier:     1.0,
		DailyStreakMultiplier: 1.0,
		RawTotal:              raw,
		FinalAmount:           Round2(raw),
	}
	b.Lines = append(b.Lines, fmt.Sprintf("Approval bonus: $%.2f", c.rules.ApprovalBonus))
	if mult != 1.0 {
		if !tier.Valid() {
			tier = domain.TierLearning
		}
		b.Lines = append(b.Lines, fmt.Sprintf("%s tier: %gx", tier, mult))
	}
	return b
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}
