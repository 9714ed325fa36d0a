package submission

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wavesight/earnings-service/internal/domain"
	"github.com/wavesight/earnings-service/internal/event"
	"github.com/wavesight/earnings-service/internal/ledger"
	"github.com/wavesight/earnings-service/internal/logger"
	"github.com/wavesight/earnings-service/internal/profile"
	"github.com/wavesight/earnings-service/internal/repository"
	"github.com/wavesight/earnings-service/internal/rewards"
)

// SubmitInput is a validated trend submission.
type SubmitInput struct {
	UserID      string
	Title       string
	Description string
	Category    string
	Signals     domain.ContentSignals
}

// SubmitResult is what a successful submission returns to the client: the
// created trend plus the itemized reward.
type SubmitResult struct {
	Trend     domain.Trend      `json:"trend"`
	Breakdown rewards.Breakdown `json:"breakdown"`
	Reward    ledger.Reward     `json:"reward"`
}

// VoteResult reports the state of a trend after a validation vote.
type VoteResult struct {
	Trend    domain.Trend  `json:"trend"`
	Reward   ledger.Reward `json:"reward"`
	Resolved bool          `json:"resolved"`
}

// Service defines the interface for trend submission operations
type Service interface {
	// SubmitTrend runs the full submission flow: profile load, tier
	// recompute, atomic session advance, reward calculation, ledger write
	// and counter updates.
	SubmitTrend(ctx context.Context, in SubmitInput) (*SubmitResult, error)

	// CastVote records a validation vote, pays the flat validation reward,
	// and resolves the trend when a vote threshold is crossed.
	CastVote(ctx context.Context, trendID, voterID string, vote domain.VoteType) (*VoteResult, error)

	// PreviewEarnings is a dry-run of SubmitTrend's calculation. Nothing
	// is persisted.
	PreviewEarnings(ctx context.Context, userID string, signals domain.ContentSignals) (*rewards.Breakdown, error)

	// ExpireStale marks pending trends older than the voting window as
	// expired. Returns how many were closed.
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
}

// service implements the Service interface
type service struct {
	trends   repository.Trend
	profiles profile.Service
	rewards  ledger.Service
	calc     *rewards.Calculator
	bus      event.Bus
}

// NewService creates a new submission service
func NewService(trends repository.Trend, profiles profile.Service, rewardLedger ledger.Service, calc *rewards.Calculator, bus event.Bus) Service {
	return &service{
		trends:   trends,
		profiles: profiles,
		rewards:  rewardLedger,
		calc:     calc,
		bus:      bus,
	}
}

// contentQuality scores a submission's completeness in [0,1] from its
// boolean signals. Performance signals (views, engagement) stay out of it;
// they reward reach, not effort.
func contentQuality(signals domain.ContentSignals) float64 {
	present := 0
	for _, ok := range []bool{
		signals.HasScreenshot,
		signals.HasTitleDescription,
		signals.HasDemographics,
		signals.PlatformCount > 1,
		signals.HasCreatorHandle,
		signals.HashtagCount >= rewards.RichHashtagMinimum,
		signals.HasCaption,
	} {
		if ok {
			present++
		}
	}
	return float64(present) / completenessSignalCount
}

func (s *service) SubmitTrend(ctx context.Context, in SubmitInput) (*SubmitResult, error) {
	log := logger.FromContext(ctx)
	now := time.Now().UTC()

	if _, err := s.profiles.EnsureProfile(ctx, in.UserID); err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	// Tier comes from stored counters, never from the request.
	tier, err := s.profiles.RecomputeTier(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("resolve tier: %w", err)
	}

	state, err := s.profiles.AdvanceSession(ctx, in.UserID, now)
	if err != nil {
		return nil, fmt.Errorf("advance session: %w", err)
	}

	breakdown := s.calc.Submission(tier, in.Signals, state.Position, state.DailyStreak)

	trend := domain.Trend{
		ID:          uuid.NewString(),
		SpotterID:   in.UserID,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Status:      domain.TrendStatusPending,
		Signals:     in.Signals,
		SubmittedAt: now,
	}
	if err := s.trends.CreateTrend(ctx, &trend); err != nil {
		return nil, fmt.Errorf("create trend: %w", err)
	}

	reward, err := s.rewards.Record(ctx, in.UserID, &trend.ID, domain.EntrySubmission, breakdown)
	if err != nil {
		if !isCapError(err) {
			return nil, err
		}
		// The trend row is already committed. A spotter at the daily cap
		// keeps their accepted trend and its counters; only the credit is
		// zero until the next reset.
		log.Info("submission accepted with no credit, daily cap exhausted",
			"trend_id", trend.ID, "user_id", in.UserID, "requested", breakdown.FinalAmount)
		reward = &ledger.Reward{
			Entry: domain.LedgerEntry{
				UserID:    in.UserID,
				TrendID:   &trend.ID,
				Type:      domain.EntrySubmission,
				Amount:    0,
				Status:    domain.EntryStatusCancelled,
				CreatedAt: now,
			},
			Requested: breakdown.FinalAmount,
			Truncated: true,
		}
	}

	if err := s.profiles.RecordSubmission(ctx, in.UserID, contentQuality(in.Signals)); err != nil {
		return nil, fmt.Errorf("record submission: %w", err)
	}

	log.Info("trend submitted",
		"trend_id", trend.ID,
		"user_id", in.UserID,
		"tier", tier,
		"session_position", state.Position,
		"daily_streak", state.DailyStreak,
		"amount", reward.Entry.Amount)

	if s.bus != nil {
		if perr := s.bus.Publish(ctx, event.NewTrendSubmittedEvent(trend.ID, in.UserID, in.Category, reward.Entry.Amount)); perr != nil {
			log.Warn("trend submitted event publish failed", "trend_id", trend.ID, "error", perr)
		}
	}

	return &SubmitResult{Trend: trend, Breakdown: breakdown, Reward: *reward}, nil
}

func (s *service) CastVote(ctx context.Context, trendID, voterID string, vote domain.VoteType) (*VoteResult, error) {
	log := logger.FromContext(ctx)

	if vote != domain.VoteVerify && vote != domain.VoteReject {
		return nil, domain.ErrInvalidVoteType
	}

	trend, err := s.trends.GetTrend(ctx, trendID)
	if err != nil {
		return nil, err
	}
	if trend.SpotterID == voterID {
		return nil, domain.ErrSelfVote
	}
	if trend.Status != domain.TrendStatusPending || time.Since(trend.SubmittedAt) > VotingWindow {
		return nil, domain.ErrVotingClosed
	}

	counts, err := s.trends.CastVote(ctx, &domain.TrendVote{
		ID:      uuid.NewString(),
		TrendID: trendID,
		VoterID: voterID,
		Vote:    vote,
		CastAt:  time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	trend.VerifyVotes = counts.Verify
	trend.RejectVotes = counts.Reject

	if _, err := s.profiles.EnsureProfile(ctx, voterID); err != nil {
		return nil, fmt.Errorf("load voter profile: %w", err)
	}

	// Flat rate for every voter, whatever their tier.
	reward, err := s.rewards.Record(ctx, voterID, &trendID, domain.EntryValidation, s.calc.Validation())
	if err != nil {
		return nil, err
	}

	resolved, err := s.resolve(ctx, trend)
	if err != nil {
		return nil, err
	}

	log.Info("vote cast",
		"trend_id", trendID,
		"voter_id", voterID,
		"vote", vote,
		"verify_votes", counts.Verify,
		"reject_votes", counts.Reject,
		"resolved", resolved)

	return &VoteResult{Trend: *trend, Reward: *reward, Resolved: resolved}, nil
}

// resolve closes a trend whose tally crossed a threshold and settles the
// spotter's counters and approval bonus.
func (s *service) resolve(ctx context.Context, trend *domain.Trend) (bool, error) {
	log := logger.FromContext(ctx)

	switch {
	case trend.VerifyVotes >= ApproveThreshold:
		won, err := s.trends.ResolveTrend(ctx, trend.ID, domain.TrendStatusApproved)
		if err != nil {
			return false, err
		}
		trend.Status = domain.TrendStatusApproved
		if !won {
			// A concurrent voter settled the trend; the bonus and the
			// spotter's counters were already paid exactly once.
			return true, nil
		}

		if err := s.profiles.RecordSubmissionOutcome(ctx, trend.SpotterID, true); err != nil {
			return false, err
		}

		// Bonus is paid at the spotter's post-approval tier.
		tier, err := s.profiles.RecomputeTier(ctx, trend.SpotterID)
		if err != nil {
			return false, err
		}
		bonus, err := s.rewards.Record(ctx, trend.SpotterID, &trend.ID, domain.EntryApprovalBonus, s.calc.ApprovalBonus(tier))
		if err != nil && !isCapError(err) {
			return false, err
		}

		var bonusAmount float64
		if bonus != nil {
			bonusAmount = bonus.Entry.Amount
		}
		log.Info("trend approved", "trend_id", trend.ID, "spotter_id", trend.SpotterID, "bonus", bonusAmount)
		if s.bus != nil {
			if perr := s.bus.Publish(ctx, event.NewTrendApprovedEvent(trend.ID, trend.SpotterID, trend.VerifyVotes, trend.RejectVotes, bonusAmount)); perr != nil {
				log.Warn("trend approved event publish failed", "trend_id", trend.ID, "error", perr)
			}
		}
		return true, nil

	case trend.RejectVotes >= RejectThreshold:
		won, err := s.trends.ResolveTrend(ctx, trend.ID, domain.TrendStatusRejected)
		if err != nil {
			return false, err
		}
		trend.Status = domain.TrendStatusRejected
		if !won {
			return true, nil
		}

		if err := s.profiles.RecordSubmissionOutcome(ctx, trend.SpotterID, false); err != nil {
			return false, err
		}

		log.Info("trend rejected", "trend_id", trend.ID, "spotter_id", trend.SpotterID)
		if s.bus != nil {
			if perr := s.bus.Publish(ctx, event.NewTrendRejectedEvent(trend.ID, trend.SpotterID, trend.VerifyVotes, trend.RejectVotes)); perr != nil {
				log.Warn("trend rejected event publish failed", "trend_id", trend.ID, "error", perr)
			}
		}
		return true, nil
	}

	return false, nil
}

// isCapError reports whether a ledger write failed only because the daily
// cap is exhausted; a capped-out spotter still gets their trend approved.
func isCapError(err error) bool {
	return errors.Is(err, domain.ErrDailyCapReached)
}

func (s *service) PreviewEarnings(ctx context.Context, userID string, signals domain.ContentSignals) (*rewards.Breakdown, error) {
	p, err := s.profiles.EnsureProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	rules := s.calc.Rules()
	tier := rules.ResolveTier(rewards.TierInput{
		TrendsSubmitted: p.TrendsSubmitted,
		ApprovalRate:    p.ApprovalRate,
		QualityScore:    p.QualityScore,
	})

	// Project the streak state this submission would land in.
	now := time.Now().UTC()
	position := 1
	if rules.WithinSessionWindow(p.LastSubmissionAt, now) {
		position = p.SessionPosition + 1
	}
	streak := 1
	if p.LastSubmissionAt != nil {
		switch {
		case sameUTCDay(*p.LastSubmissionAt, now):
			if p.DailyStreak > 1 {
				streak = p.DailyStreak
			}
		case sameUTCDay(p.LastSubmissionAt.AddDate(0, 0, 1), now):
			streak = p.DailyStreak + 1
		}
	}

	b := s.calc.Submission(tier, signals, position, streak)
	return &b, nil
}

func sameUTCDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

func (s *service) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	expired, err := s.trends.ExpirePending(ctx, now.Add(-VotingWindow))
	if err != nil {
		return 0, err
	}
	if expired > 0 {
		logger.FromContext(ctx).Info("stale trends expired", "count", expired)
	}
	return expired, nil
}
