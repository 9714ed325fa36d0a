package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/wavesight/earnings-service/internal/database"
	"github.com/wavesight/earnings-service/internal/domain"
)

// startTestDatabase spins up a disposable postgres container with the full
// schema applied. Tests skip when Docker is unavailable.
func startTestDatabase(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	var pgContainer *postgres.PostgresContainer
	var err error

	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Skipf("Skipping integration test due to panic (likely Docker issue): %v", r)
			}
		}()
		pgContainer, err = postgres.Run(ctx,
			"postgres:15-alpine",
			postgres.WithDatabase("testdb"),
			postgres.WithUsername("testuser"),
			postgres.WithPassword("testpass"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(5*time.Second)),
		)
	}()

	if err != nil || pgContainer == nil {
		t.Skipf("Skipping integration test: failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := database.NewPool(connStr, 5, time.Minute, 5*time.Minute)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, applyMigrations(ctx, t, pool, "../../../migrations"))
	return pool
}

func seedProfile(t *testing.T, repo *ProfileRepository, userID string) {
	t.Helper()
	err := repo.CreateProfile(context.Background(), &domain.PerformanceProfile{
		UserID: userID,
		Tier:   domain.TierLearning,
	})
	require.NoError(t, err)
}

func TestProfileRepository_Integration(t *testing.T) {
	pool := startTestDatabase(t)
	repo := NewProfileRepository(pool)
	ctx := context.Background()

	t.Run("Create And Get Profile", func(t *testing.T) {
		seedProfile(t, repo, "spotter-1")

		p, err := repo.GetProfile(ctx, "spotter-1")
		require.NoError(t, err)
		assert.Equal(t, domain.TierLearning, p.Tier)
		assert.Zero(t, p.TrendsSubmitted)
		assert.Nil(t, p.LastSubmissionAt)

		// duplicate create is a no-op
		require.NoError(t, repo.CreateProfile(ctx, &domain.PerformanceProfile{
			UserID: "spotter-1",
			Tier:   domain.TierMaster,
		}))
		p, err = repo.GetProfile(ctx, "spotter-1")
		require.NoError(t, err)
		assert.Equal(t, domain.TierLearning, p.Tier)
	})

	t.Run("Get Missing Profile", func(t *testing.T) {
		_, err := repo.GetProfile(ctx, "nobody")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("AdvanceSession Within Window", func(t *testing.T) {
		seedProfile(t, repo, "spotter-session")

		now := time.Now().UTC()
		window := 5 * time.Minute

		state, err := repo.AdvanceSession(ctx, "spotter-session", window, now)
		require.NoError(t, err)
		assert.Equal(t, 1, state.Position)
		assert.Equal(t, 1, state.DailyStreak)

		state, err = repo.AdvanceSession(ctx, "spotter-session", window, now.Add(2*time.Minute))
		require.NoError(t, err)
		assert.Equal(t, 2, state.Position)

		// a gap longer than the window resets the position
		state, err = repo.AdvanceSession(ctx, "spotter-session", window, now.Add(10*time.Minute))
		require.NoError(t, err)
		assert.Equal(t, 1, state.Position)
	})

	t.Run("RecordSubmission Rolling Quality", func(t *testing.T) {
		seedProfile(t, repo, "spotter-quality")

		require.NoError(t, repo.RecordSubmission(ctx, "spotter-quality", 0.8))
		require.NoError(t, repo.RecordSubmission(ctx, "spotter-quality", 0.4))

		p, err := repo.GetProfile(ctx, "spotter-quality")
		require.NoError(t, err)
		assert.Equal(t, 2, p.TrendsSubmitted)
		assert.InDelta(t, 0.6, p.QualityScore, 0.0001)
	})

	t.Run("RecordSubmissionOutcome Approval Rate", func(t *testing.T) {
		seedProfile(t, repo, "spotter-outcome")

		require.NoError(t, repo.RecordSubmission(ctx, "spotter-outcome", 0.5))
		require.NoError(t, repo.RecordSubmission(ctx, "spotter-outcome", 0.5))
		require.NoError(t, repo.RecordSubmissionOutcome(ctx, "spotter-outcome", true))
		require.NoError(t, repo.RecordSubmissionOutcome(ctx, "spotter-outcome", false))

		p, err := repo.GetProfile(ctx, "spotter-outcome")
		require.NoError(t, err)
		assert.Equal(t, 1, p.TrendsApproved)
		assert.InDelta(t, 0.5, p.ApprovalRate, 0.0001)
	})

	t.Run("UpdateTier", func(t *testing.T) {
		seedProfile(t, repo, "spotter-tier")

		require.NoError(t, repo.UpdateTier(ctx, "spotter-tier", domain.TierVerified))
		p, err := repo.GetProfile(ctx, "spotter-tier")
		require.NoError(t, err)
		assert.Equal(t, domain.TierVerified, p.Tier)

		assert.ErrorIs(t, repo.UpdateTier(ctx, "nobody", domain.TierElite), domain.ErrUserNotFound)
	})
}

func TestLedgerRepository_Integration(t *testing.T) {
	pool := startTestDatabase(t)
	profiles := NewProfileRepository(pool)
	repo := NewLedgerRepository(pool)
	ctx := context.Background()

	newEntry := func(userID string, amount float64) *domain.LedgerEntry {
		return &domain.LedgerEntry{
			ID:          uuid.NewString(),
			UserID:      userID,
			Type:        domain.EntrySubmission,
			Amount:      amount,
			Description: "Base submission reward",
			Status:      domain.EntryStatusApproved,
			CreatedAt:   time.Now().UTC(),
		}
	}

	t.Run("RecordEntry Credits Balance", func(t *testing.T) {
		seedProfile(t, profiles, "earner-1")

		result, err := repo.RecordEntry(ctx, newEntry("earner-1", 1.25), 50.00)
		require.NoError(t, err)
		assert.Equal(t, 1.25, result.Recorded)
		assert.False(t, result.Truncated)

		p, err := profiles.GetProfile(ctx, "earner-1")
		require.NoError(t, err)
		assert.Equal(t, 1.25, p.CurrentBalance)
		assert.Equal(t, 1.25, p.TotalEarned)
		assert.Equal(t, 1.25, p.TodayEarned)
	})

	t.Run("RecordEntry Truncates At Cap", func(t *testing.T) {
		seedProfile(t, profiles, "earner-cap")

		_, err := repo.RecordEntry(ctx, newEntry("earner-cap", 4.00), 5.00)
		require.NoError(t, err)

		result, err := repo.RecordEntry(ctx, newEntry("earner-cap", 3.00), 5.00)
		require.NoError(t, err)
		assert.Equal(t, 1.00, result.Recorded)
		assert.True(t, result.Truncated)

		_, err = repo.RecordEntry(ctx, newEntry("earner-cap", 0.25), 5.00)
		assert.ErrorIs(t, err, domain.ErrDailyCapReached)
	})

	t.Run("RecordEntry Unknown User", func(t *testing.T) {
		_, err := repo.RecordEntry(ctx, newEntry("nobody", 0.25), 50.00)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("GetEntries Newest First", func(t *testing.T) {
		seedProfile(t, profiles, "earner-history")

		for i := 0; i < 3; i++ {
			e := newEntry("earner-history", 0.25)
			e.CreatedAt = time.Now().UTC().Add(time.Duration(i) * time.Second)
			_, err := repo.RecordEntry(ctx, e, 50.00)
			require.NoError(t, err)
		}

		entries, err := repo.GetEntries(ctx, "earner-history", 2, 0)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.True(t, entries[0].CreatedAt.After(entries[1].CreatedAt))
	})

	t.Run("Entry Status Lifecycle", func(t *testing.T) {
		seedProfile(t, profiles, "earner-payout")

		entry := newEntry("earner-payout", 0.25)
		entry.Status = domain.EntryStatusPending
		_, err := repo.RecordEntry(ctx, entry, 50.00)
		require.NoError(t, err)

		require.NoError(t, repo.UpdateEntryStatus(ctx, entry.ID, domain.EntryStatusPaid))

		got, err := repo.GetEntry(ctx, entry.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.EntryStatusPaid, got.Status)

		_, err = repo.GetEntry(ctx, uuid.NewString())
		assert.ErrorIs(t, err, domain.ErrEntryNotFound)
		err = repo.UpdateEntryStatus(ctx, uuid.NewString(), domain.EntryStatusPaid)
		assert.ErrorIs(t, err, domain.ErrEntryNotFound)
	})

	t.Run("Cashout Debits Balance", func(t *testing.T) {
		seedProfile(t, profiles, "earner-cashout")

		for i := 0; i < 3; i++ {
			_, err := repo.RecordEntry(ctx, newEntry("earner-cashout", 4.50), 50.00)
			require.NoError(t, err)
		}

		cashout := &domain.LedgerEntry{
			ID:          uuid.NewString(),
			UserID:      "earner-cashout",
			Type:        domain.EntryCashout,
			Amount:      -12.00,
			Description: "Cashout request: $12.00",
			Status:      domain.EntryStatusPending,
			CreatedAt:   time.Now().UTC(),
		}
		require.NoError(t, repo.Cashout(ctx, cashout))

		p, err := profiles.GetProfile(ctx, "earner-cashout")
		require.NoError(t, err)
		assert.InDelta(t, 1.50, p.CurrentBalance, 0.0001)

		// second attempt overdraws
		cashout.ID = uuid.NewString()
		assert.ErrorIs(t, repo.Cashout(ctx, cashout), domain.ErrInsufficientFunds)
	})

	t.Run("EarnedSince Excludes Cashouts", func(t *testing.T) {
		seedProfile(t, profiles, "earner-since")
		since := time.Now().UTC().Add(-time.Hour)

		_, err := repo.RecordEntry(ctx, newEntry("earner-since", 3.00), 50.00)
		require.NoError(t, err)
		_, err = repo.RecordEntry(ctx, newEntry("earner-since", 9.00), 50.00)
		require.NoError(t, err)
		require.NoError(t, repo.Cashout(ctx, &domain.LedgerEntry{
			ID:        uuid.NewString(),
			UserID:    "earner-since",
			Type:      domain.EntryCashout,
			Amount:    -10.00,
			Status:    domain.EntryStatusPending,
			CreatedAt: time.Now().UTC(),
		}))

		total, err := repo.EarnedSince(ctx, "earner-since", since)
		require.NoError(t, err)
		assert.InDelta(t, 12.00, total, 0.0001)
	})
}

func TestTrendRepository_Integration(t *testing.T) {
	pool := startTestDatabase(t)
	profiles := NewProfileRepository(pool)
	repo := NewTrendRepository(pool)
	ctx := context.Background()

	newTrend := func(spotterID string) *domain.Trend {
		return &domain.Trend{
			ID:        uuid.NewString(),
			SpotterID: spotterID,
			Title:     "Glass skin routine",
			Category:  "beauty",
			Status:    domain.TrendStatusPending,
			Signals: domain.ContentSignals{
				HasScreenshot: true,
				PlatformCount: 2,
				WaveScore:     74,
				Category:      "beauty",
			},
			SubmittedAt: time.Now().UTC(),
		}
	}

	t.Run("Create And Get Trend", func(t *testing.T) {
		seedProfile(t, profiles, "spotter-t1")
		trend := newTrend("spotter-t1")
		require.NoError(t, repo.CreateTrend(ctx, trend))

		got, err := repo.GetTrend(ctx, trend.ID)
		require.NoError(t, err)
		assert.Equal(t, trend.Title, got.Title)
		assert.Equal(t, domain.TrendStatusPending, got.Status)
		assert.True(t, got.Signals.HasScreenshot)
		assert.Equal(t, 2, got.Signals.PlatformCount)
	})

	t.Run("Get Missing Trend", func(t *testing.T) {
		_, err := repo.GetTrend(ctx, uuid.NewString())
		assert.ErrorIs(t, err, domain.ErrTrendNotFound)
	})

	t.Run("CastVote Tally And Duplicate", func(t *testing.T) {
		seedProfile(t, profiles, "spotter-t2")
		trend := newTrend("spotter-t2")
		require.NoError(t, repo.CreateTrend(ctx, trend))

		counts, err := repo.CastVote(ctx, &domain.TrendVote{
			ID:      uuid.NewString(),
			TrendID: trend.ID,
			VoterID: "voter-1",
			Vote:    domain.VoteVerify,
			CastAt:  time.Now().UTC(),
		})
		require.NoError(t, err)
		assert.Equal(t, 1, counts.Verify)
		assert.Equal(t, 0, counts.Reject)

		_, err = repo.CastVote(ctx, &domain.TrendVote{
			ID:      uuid.NewString(),
			TrendID: trend.ID,
			VoterID: "voter-1",
			Vote:    domain.VoteReject,
			CastAt:  time.Now().UTC(),
		})
		assert.ErrorIs(t, err, domain.ErrDuplicateVote)

		counts, err = repo.CastVote(ctx, &domain.TrendVote{
			ID:      uuid.NewString(),
			TrendID: trend.ID,
			VoterID: "voter-2",
			Vote:    domain.VoteReject,
			CastAt:  time.Now().UTC(),
		})
		require.NoError(t, err)
		assert.Equal(t, 1, counts.Verify)
		assert.Equal(t, 1, counts.Reject)
	})

	t.Run("CastVote Missing Trend", func(t *testing.T) {
		_, err := repo.CastVote(ctx, &domain.TrendVote{
			ID:      uuid.NewString(),
			TrendID: uuid.NewString(),
			VoterID: "voter-1",
			Vote:    domain.VoteVerify,
			CastAt:  time.Now().UTC(),
		})
		assert.ErrorIs(t, err, domain.ErrTrendNotFound)
	})

	t.Run("ResolveTrend Settles Once", func(t *testing.T) {
		seedProfile(t, profiles, "spotter-t4")
		trend := newTrend("spotter-t4")
		require.NoError(t, repo.CreateTrend(ctx, trend))

		won, err := repo.ResolveTrend(ctx, trend.ID, domain.TrendStatusApproved)
		require.NoError(t, err)
		assert.True(t, won)

		// A second resolver loses the flip without error.
		won, err = repo.ResolveTrend(ctx, trend.ID, domain.TrendStatusApproved)
		require.NoError(t, err)
		assert.False(t, won)

		won, err = repo.ResolveTrend(ctx, trend.ID, domain.TrendStatusRejected)
		require.NoError(t, err)
		assert.False(t, won)

		got, err := repo.GetTrend(ctx, trend.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.TrendStatusApproved, got.Status)

		_, err = repo.ResolveTrend(ctx, uuid.NewString(), domain.TrendStatusApproved)
		assert.ErrorIs(t, err, domain.ErrTrendNotFound)
	})

	t.Run("ExpirePending", func(t *testing.T) {
		seedProfile(t, profiles, "spotter-t3")

		stale := newTrend("spotter-t3")
		stale.SubmittedAt = time.Now().UTC().Add(-80 * time.Hour)
		require.NoError(t, repo.CreateTrend(ctx, stale))

		fresh := newTrend("spotter-t3")
		require.NoError(t, repo.CreateTrend(ctx, fresh))

		expired, err := repo.ExpirePending(ctx, time.Now().UTC().Add(-72*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, int64(1), expired)

		got, err := repo.GetTrend(ctx, stale.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.TrendStatusExpired, got.Status)

		got, err = repo.GetTrend(ctx, fresh.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.TrendStatusPending, got.Status)
	})
}
