package rewards

import "github.com/wavesight/earnings-service/internal/domain"

// BonusLine is one applied bonus, labeled for the audit breakdown.
type BonusLine struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// Bonus labels, in evaluation order. These appear verbatim in ledger
// descriptions, so they are constants rather than inline literals.
const (
	LabelScreenshot     = "Screenshot"
	LabelCompleteInfo   = "Complete info"
	LabelDemographics   = "Demographics"
	LabelMultiPlatform  = "Multi-platform"
	LabelCreatorHandle  = "Creator info"
	LabelRichHashtags   = "Rich hashtags"
	LabelCaption        = "Caption"
	LabelViral          = "Viral (1M+ views)"
	LabelHighViews      = "High views (100k+)"
	LabelHighEngagement = "High engagement"
	LabelHighWaveScore  = "High wave score"
	LabelFinanceTrend   = "Finance trend"
)

// ContentBonuses evaluates every bonus rule against the submission's content
// signals and returns the applied bonuses in evaluation order. Rules are
// additive and independent, except viral and high-views which are mutually
// exclusive (viral wins). Negative counts are treated as zero.
func (r Ruleset) ContentBonuses(signals domain.ContentSignals) []BonusLine {
	sched := r.QualityBonuses
	var lines []BonusLine

	add := func(label string, amount float64) {
		lines = append(lines, BonusLine{Label: label, Amount: amount})
	}

	if signals.HashtagCount < 0 {
		signals.HashtagCount = 0
	}
	if signals.ViewCount < 0 {
		signals.ViewCount = 0
	}
	if signals.EngagementRate < 0 {
		signals.EngagementRate = 0
	}

	if signals.HasScreenshot {
		add(LabelScreenshot, sched.Screenshot)
	}
	if signals.HasTitleDescription {
		add(LabelCompleteInfo, sched.CompleteInfo)
	}
	if signals.HasDemographics {
		add(LabelDemographics, sched.Demographics)
	}
	if signals.PlatformCount > 1 {
		add(LabelMultiPlatform, sched.MultiPlatform)
	}
	if signals.HasCreatorHandle {
		add(LabelCreatorHandle, sched.CreatorHandle)
	}
	if signals.HashtagCount >= RichHashtagMinimum {
		add(LabelRichHashtags, sched.RichHashtags)
	}
	if signals.HasCaption {
		add(LabelCaption, sched.Caption)
	}

	switch {
	case signals.ViewCount >= ViralViewThreshold:
		add(LabelViral, sched.Viral)
	case signals.ViewCount >= HighViewThreshold:
		add(LabelHighViews, sched.HighViews)
	}

	if signals.EngagementRate >= HighEngagementRate {
		add(LabelHighEngagement, sched.HighEngagement)
	}
	if signals.WaveScore >= HighWaveScoreThreshold {
		add(LabelHighWaveScore, sched.HighWaveScore)
	}
	if IsFinanceCategory(signals.Category) {
		add(LabelFinanceTrend, sched.FinanceTrend)
	}

	return lines
}

// SumBonuses totals a bonus list.
func SumBonuses(lines []BonusLine) float64 {
	var total float64
	for _, l := range lines {
		total += l.Amount
	}
	return total
}
