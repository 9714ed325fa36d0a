package rewards

import (
	"fmt"
	"math"

	"github.com/wavesight/earnings-service/internal/domain"
)

// TierProgress describes how far a spotter is from the next tier.
type TierProgress struct {
	CurrentTier  domain.Tier `json:"current_tier"`
	NextTier     domain.Tier `json:"next_tier,omitempty"`
	Percent      int         `json:"percent"`
	Requirements []string    `json:"requirements,omitempty"`
}

// MonthlyPotential is the advertised earning range for a tier, for display.
type MonthlyPotential struct {
	Minimum float64 `json:"minimum"`
	Average float64 `json:"average"`
	Maximum float64 `json:"maximum"`
}

// monthlyRanges per tier, from the published tier sheet.
var monthlyRanges = map[domain.Tier][2]float64{
	domain.TierMaster:     {500, 900},
	domain.TierElite:      {300, 500},
	domain.TierVerified:   {150, 300},
	domain.TierLearning:   {50, 150},
	domain.TierRestricted: {20, 50},
}

// tierLadder orders the climbable tiers. Restricted is not on the ladder;
// a restricted spotter's next step is learning.
var tierLadder = []domain.Tier{domain.TierLearning, domain.TierVerified, domain.TierElite, domain.TierMaster}

// Progress computes progress toward the next tier as the average of the
// three requirement ratios, with the unmet requirements spelled out.
func (r Ruleset) Progress(current domain.Tier, in TierInput) TierProgress {
	p := TierProgress{CurrentTier: current}

	var next domain.Tier
	switch current {
	case domain.TierMaster:
		p.Percent = 100
		return p
	case domain.TierRestricted:
		next = domain.TierVerified
	default:
		for i, t := range tierLadder[:len(tierLadder)-1] {
			if t == current {
				next = tierLadder[i+1]
				break
			}
		}
	}
	if next == "" {
		next = domain.TierVerified
	}
	p.NextTier = next

	req := r.TierRequirements[next]
	ratio := func(have, want float64) float64 {
		if want <= 0 {
			return 1
		}
		return math.Min(have/want, 1)
	}

	total := ratio(float64(in.TrendsSubmitted), float64(req.TrendsSubmitted)) +
		ratio(in.ApprovalRate, req.ApprovalRate) +
		ratio(in.QualityScore, req.QualityScore)
	p.Percent = int(math.Round(total / 3 * 100))

	if in.TrendsSubmitted < req.TrendsSubmitted {
		p.Requirements = append(p.Requirements,
			fmt.Sprintf("Submit %d more trends", req.TrendsSubmitted-in.TrendsSubmitted))
	}
	if in.ApprovalRate < req.ApprovalRate {
		p.Requirements = append(p.Requirements,
			fmt.Sprintf("Reach %.0f%% approval rate", req.ApprovalRate*100))
	}
	if in.QualityScore < req.QualityScore {
		p.Requirements = append(p.Requirements,
			fmt.Sprintf("Reach %.0f%% quality score", req.QualityScore*100))
	}

	return p
}

// Monthly returns the advertised monthly earning range for a tier.
func Monthly(tier domain.Tier) MonthlyPotential {
	rng, ok := monthlyRanges[tier]
	if !ok {
		rng = monthlyRanges[domain.TierLearning]
	}
	return MonthlyPotential{
		Minimum: rng[0],
		Average: (rng[0] + rng[1]) / 2,
		Maximum: rng[1],
	}
}

// CanCashOut reports whether a balance meets the minimum cashout amount.
func (r Ruleset) CanCashOut(balance float64) bool {
	return balance >= r.MinCashout
}
