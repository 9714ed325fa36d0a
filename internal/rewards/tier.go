package rewards

import "github.com/wavesight/earnings-service/internal/domain"

// TierInput is the subset of a performance profile that determines tier.
type TierInput struct {
	TrendsSubmitted int
	ApprovalRate    float64
	QualityScore    float64
}

// ResolveTier derives a spotter's tier from their performance counters.
// Evaluation is top-down, first match wins:
//
//  1. Accounts with fewer than RestrictedMinSubmissions submissions are
//     always learning - a new account has no history to be restricted on.
//  2. Approval rate or quality score below the restricted band -> restricted.
//  3. Master, elite, verified requirements checked highest first.
//  4. Everything else -> learning.
//
// Negative counters are clamped to zero before evaluation.
func (r Ruleset) ResolveTier(in TierInput) domain.Tier {
	if in.TrendsSubmitted < 0 {
		in.TrendsSubmitted = 0
	}
	if in.ApprovalRate < 0 {
		in.ApprovalRate = 0
	}
	if in.QualityScore < 0 {
		in.QualityScore = 0
	}

	if in.TrendsSubmitted < RestrictedMinSubmissions {
		return domain.TierLearning
	}

	if in.ApprovalRate < RestrictedMaxApproval || in.QualityScore < RestrictedMaxQuality {
		return domain.TierRestricted
	}

	for _, tier := range []domain.Tier{domain.TierMaster, domain.TierElite, domain.TierVerified} {
		req := r.TierRequirements[tier]
		if in.TrendsSubmitted >= req.TrendsSubmitted &&
			in.ApprovalRate >= req.ApprovalRate &&
			in.QualityScore >= req.QualityScore {
			return tier
		}
	}

	return domain.TierLearning
}
