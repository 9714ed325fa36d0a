package rewards

import "time"

// SessionStreakMultiplier returns the multiplier for the Nth submission in a
// rapid-fire session. Positions below 1 clamp to 1; positions past the table
// flatten to the final entry (no further growth past the 5th submission).
func (r Ruleset) SessionStreakMultiplier(position int) float64 {
	if position < 1 {
		position = 1
	}
	if position > len(r.SessionStreak) {
		position = len(r.SessionStreak)
	}
	return r.SessionStreak[position-1]
}

// DailyStreakMultiplier returns the multiplier for a consecutive-day
// submission streak. Steps are evaluated highest threshold first; negative
// day counts clamp to zero.
func (r Ruleset) DailyStreakMultiplier(days int) float64 {
	if days < 0 {
		days = 0
	}
	for _, step := range r.DailyStreak {
		if days >= step.MinDays {
			return step.Multiplier
		}
	}
	return 1.0
}

// SessionWindow is the duration within which a follow-up submission continues
// the current session.
func (r Ruleset) SessionWindow() time.Duration {
	return SessionWindowMinutes * time.Minute
}

// WithinSessionWindow reports whether a submission at now continues the
// session started by lastSubmissionAt. A nil last submission always starts a
// fresh session.
func (r Ruleset) WithinSessionWindow(lastSubmissionAt *time.Time, now time.Time) bool {
	if lastSubmissionAt == nil {
		return false
	}
	return now.Sub(*lastSubmissionAt) <= r.SessionWindow()
}
