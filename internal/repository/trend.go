package repository

import (
	"context"
	"time"

	"github.com/wavesight/earnings-service/internal/domain"
)

// VoteCounts is the live tally for a trend after a vote lands.
type VoteCounts struct {
	Verify int
	Reject int
}

// Trend defines the interface for trend submission data access
type Trend interface {
	CreateTrend(ctx context.Context, trend *domain.Trend) error
	GetTrend(ctx context.Context, trendID string) (*domain.Trend, error)

	// CastVote inserts the vote and bumps the matching counter on the trend
	// row in one transaction, returning the updated tally. A second vote by
	// the same voter returns domain.ErrDuplicateVote.
	CastVote(ctx context.Context, vote *domain.TrendVote) (VoteCounts, error)

	// ResolveTrend flips a pending trend to status and reports whether this
	// call performed the flip. A trend another caller already settled
	// returns false with no error; an unknown trend returns
	// domain.ErrTrendNotFound.
	ResolveTrend(ctx context.Context, trendID string, status domain.TrendStatus) (bool, error)

	// ExpirePending marks pending trends submitted before cutoff as expired
	// and returns how many rows changed.
	ExpirePending(ctx context.Context, cutoff time.Time) (int64, error)
}
