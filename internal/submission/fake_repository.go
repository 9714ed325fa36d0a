package submission

import (
	"context"
	"sync"
	"time"

	"github.com/wavesight/earnings-service/internal/domain"
	"github.com/wavesight/earnings-service/internal/repository"
)

// FakeRepository is a stateful in-memory implementation of repository.Trend
// for tests.
type FakeRepository struct {
	mu     sync.Mutex
	trends map[string]*domain.Trend
	votes  map[string]map[string]domain.VoteType // trendID -> voterID -> vote
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{
		trends: make(map[string]*domain.Trend),
		votes:  make(map[string]map[string]domain.VoteType),
	}
}

func (f *FakeRepository) CreateTrend(ctx context.Context, trend *domain.Trend) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	cp := *trend
	f.trends[trend.ID] = &cp
	return nil
}

func (f *FakeRepository) GetTrend(ctx context.Context, trendID string) (*domain.Trend, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	t, ok := f.trends[trendID]
	if !ok {
		return nil, domain.ErrTrendNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *FakeRepository) CastVote(ctx context.Context, vote *domain.TrendVote) (repository.VoteCounts, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	t, ok := f.trends[vote.TrendID]
	if !ok {
		return repository.VoteCounts{}, domain.ErrTrendNotFound
	}

	voters := f.votes[vote.TrendID]
	if voters == nil {
		voters = make(map[string]domain.VoteType)
		f.votes[vote.TrendID] = voters
	}
	if _, voted := voters[vote.VoterID]; voted {
		return repository.VoteCounts{}, domain.ErrDuplicateVote
	}
	voters[vote.VoterID] = vote.Vote

	if vote.Vote == domain.VoteVerify {
		t.VerifyVotes++
	} else {
		t.RejectVotes++
	}
	return repository.VoteCounts{Verify: t.VerifyVotes, Reject: t.RejectVotes}, nil
}

func (f *FakeRepository) ResolveTrend(ctx context.Context, trendID string, status domain.TrendStatus) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	t, ok := f.trends[trendID]
	if !ok {
		return false, domain.ErrTrendNotFound
	}
	if t.Status != domain.TrendStatusPending {
		return false, nil
	}
	t.Status = status
	return true, nil
}

func (f *FakeRepository) ExpirePending(ctx context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var n int64
	for _, t := range f.trends {
		if t.Status == domain.TrendStatusPending && t.SubmittedAt.Before(cutoff) {
			t.Status = domain.TrendStatusExpired
			n++
		}
	}
	return n, nil
}

// Backdate moves a trend's submission time, for voting-window tests.
func (f *FakeRepository) Backdate(trendID string, submittedAt time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t, ok := f.trends[trendID]; ok {
		t.SubmittedAt = submittedAt
	}
}
