package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/wavesight/earnings-service/internal/domain"
	"github.com/wavesight/earnings-service/internal/ledger"
	"github.com/wavesight/earnings-service/internal/profile"
	"github.com/wavesight/earnings-service/internal/repository"
	"github.com/wavesight/earnings-service/internal/rewards"
)

// MockLedgerService mocks ledger.Service
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) Record(ctx context.Context, userID string, trendID *string, entryType domain.EntryType, b rewards.Breakdown) (*ledger.Reward, error) {
	args := m.Called(ctx, userID, trendID, entryType, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Reward), args.Error(1)
}

func (m *MockLedgerService) History(ctx context.Context, userID string, limit, offset int) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) RequestCashout(ctx context.Context, userID string, amount float64) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, userID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) SettleEntry(ctx context.Context, entryID string, status domain.EntryStatus) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

// MockProfileService mocks profile.Service
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) GetProfile(ctx context.Context, userID string) (*domain.PerformanceProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PerformanceProfile), args.Error(1)
}

func (m *MockProfileService) EnsureProfile(ctx context.Context, userID string) (*domain.PerformanceProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PerformanceProfile), args.Error(1)
}

func (m *MockProfileService) RecomputeTier(ctx context.Context, userID string) (domain.Tier, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.Tier), args.Error(1)
}

func (m *MockProfileService) AdvanceSession(ctx context.Context, userID string, now time.Time) (repository.SessionState, error) {
	args := m.Called(ctx, userID, now)
	return args.Get(0).(repository.SessionState), args.Error(1)
}

func (m *MockProfileService) RecordSubmission(ctx context.Context, userID string, quality float64) error {
	args := m.Called(ctx, userID, quality)
	return args.Error(0)
}

func (m *MockProfileService) RecordSubmissionOutcome(ctx context.Context, userID string, approved bool) error {
	args := m.Called(ctx, userID, approved)
	return args.Error(0)
}

func (m *MockProfileService) TierStatus(ctx context.Context, userID string) (*profile.TierStatus, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile.TierStatus), args.Error(1)
}

func (m *MockProfileService) ResetDaily(ctx context.Context, cutoff time.Time) (int64, int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *MockProfileService) GetCacheStats() profile.CacheStats {
	args := m.Called()
	return args.Get(0).(profile.CacheStats)
}

func TestHandleGetBalance(t *testing.T) {
	rules := rewards.DefaultRuleset()

	t.Run("Cashout Eligible", func(t *testing.T) {
		profiles := &MockProfileService{}
		profiles.On("GetProfile", mock.Anything, "user-1").Return(&domain.PerformanceProfile{
			UserID:         "user-1",
			CurrentBalance: 15.65,
			TotalEarned:    120.40,
			TodayEarned:    3.20,
		}, nil)

		h := NewEarningsHandler(nil, nil, profiles, rules)
		req := httptest.NewRequest("GET", "/api/v1/earnings/balance?user_id=user-1", nil)
		w := httptest.NewRecorder()
		h.HandleGetBalance(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"current_balance":15.65`)
		assert.Contains(t, w.Body.String(), `"can_cash_out":true`)
		assert.Contains(t, w.Body.String(), `"min_cashout":10`)
		profiles.AssertExpectations(t)
	})

	t.Run("Below Minimum", func(t *testing.T) {
		profiles := &MockProfileService{}
		profiles.On("GetProfile", mock.Anything, "user-2").Return(&domain.PerformanceProfile{
			UserID:         "user-2",
			CurrentBalance: 4.20,
		}, nil)

		h := NewEarningsHandler(nil, nil, profiles, rules)
		req := httptest.NewRequest("GET", "/api/v1/earnings/balance?user_id=user-2", nil)
		w := httptest.NewRecorder()
		h.HandleGetBalance(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"can_cash_out":false`)
	})

	t.Run("Missing User ID", func(t *testing.T) {
		h := NewEarningsHandler(nil, nil, &MockProfileService{}, rules)
		req := httptest.NewRequest("GET", "/api/v1/earnings/balance", nil)
		w := httptest.NewRecorder()
		h.HandleGetBalance(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Unknown User", func(t *testing.T) {
		profiles := &MockProfileService{}
		profiles.On("GetProfile", mock.Anything, "ghost").Return(nil, domain.ErrUserNotFound)

		h := NewEarningsHandler(nil, nil, profiles, rules)
		req := httptest.NewRequest("GET", "/api/v1/earnings/balance?user_id=ghost", nil)
		w := httptest.NewRecorder()
		h.HandleGetBalance(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgUserNotFoundError)
	})
}

func TestHandleGetLedger(t *testing.T) {
	rules := rewards.DefaultRuleset()

	t.Run("Returns Entries", func(t *testing.T) {
		ledgerSvc := &MockLedgerService{}
		ledgerSvc.On("History", mock.Anything, "user-1", 10, 0).Return([]domain.LedgerEntry{
			{ID: "e2", UserID: "user-1", Type: domain.EntryValidation, Amount: 0.02},
			{ID: "e1", UserID: "user-1", Type: domain.EntrySubmission, Amount: 0.25},
		}, nil)

		h := NewEarningsHandler(nil, ledgerSvc, nil, rules)
		req := httptest.NewRequest("GET", "/api/v1/earnings/ledger?user_id=user-1&limit=10", nil)
		w := httptest.NewRecorder()
		h.HandleGetLedger(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"id":"e2"`)
		assert.Contains(t, w.Body.String(), `"id":"e1"`)
		ledgerSvc.AssertExpectations(t)
	})

	t.Run("Garbage Limit Falls Back", func(t *testing.T) {
		ledgerSvc := &MockLedgerService{}
		ledgerSvc.On("History", mock.Anything, "user-1", 0, 0).Return([]domain.LedgerEntry{}, nil)

		h := NewEarningsHandler(nil, ledgerSvc, nil, rules)
		req := httptest.NewRequest("GET", "/api/v1/earnings/ledger?user_id=user-1&limit=banana", nil)
		w := httptest.NewRecorder()
		h.HandleGetLedger(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		ledgerSvc.AssertExpectations(t)
	})
}

func TestHandleCashout(t *testing.T) {
	rules := rewards.DefaultRuleset()

	t.Run("Success", func(t *testing.T) {
		ledgerSvc := &MockLedgerService{}
		ledgerSvc.On("RequestCashout", mock.Anything, "user-1", 12.00).Return(&domain.LedgerEntry{
			ID:     "cashout-1",
			UserID: "user-1",
			Type:   domain.EntryCashout,
			Amount: -12.00,
			Status: domain.EntryStatusPending,
		}, nil)

		h := NewEarningsHandler(nil, ledgerSvc, nil, rules)
		w := postJSON(t, h.HandleCashout, "/api/v1/earnings/cashout", CashoutRequest{UserID: "user-1", Amount: 12.00})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"amount":-12`)
		assert.Contains(t, w.Body.String(), `"status":"pending"`)
		ledgerSvc.AssertExpectations(t)
	})

	t.Run("Below Minimum", func(t *testing.T) {
		ledgerSvc := &MockLedgerService{}
		ledgerSvc.On("RequestCashout", mock.Anything, "user-1", 5.00).Return(nil, domain.ErrBelowMinCashout)

		h := NewEarningsHandler(nil, ledgerSvc, nil, rules)
		w := postJSON(t, h.HandleCashout, "/api/v1/earnings/cashout", CashoutRequest{UserID: "user-1", Amount: 5.00})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgBelowMinCashoutError)
	})

	t.Run("Insufficient Funds", func(t *testing.T) {
		ledgerSvc := &MockLedgerService{}
		ledgerSvc.On("RequestCashout", mock.Anything, "user-1", 25.00).Return(nil, domain.ErrInsufficientFunds)

		h := NewEarningsHandler(nil, ledgerSvc, nil, rules)
		w := postJSON(t, h.HandleCashout, "/api/v1/earnings/cashout", CashoutRequest{UserID: "user-1", Amount: 25.00})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgNotEnoughBalanceErr)
	})

	t.Run("Negative Amount Rejected", func(t *testing.T) {
		ledgerSvc := &MockLedgerService{}
		h := NewEarningsHandler(nil, ledgerSvc, nil, rules)
		w := postJSON(t, h.HandleCashout, "/api/v1/earnings/cashout", CashoutRequest{UserID: "user-1", Amount: -3})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		ledgerSvc.AssertNotCalled(t, "RequestCashout")
	})
}

func TestHandleGetTierStatus(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		profiles := &MockProfileService{}
		profiles.On("TierStatus", mock.Anything, "user-1").Return(&profile.TierStatus{
			Tier:       domain.TierVerified,
			Multiplier: 1.5,
			Progress: rewards.TierProgress{
				CurrentTier: domain.TierVerified,
				NextTier:    domain.TierElite,
				Percent:     40,
			},
			Monthly: rewards.MonthlyPotential{Minimum: 150, Average: 225, Maximum: 300},
		}, nil)

		h := NewProfileHandler(profiles)
		req := httptest.NewRequest("GET", "/api/v1/profile/tier?user_id=user-1", nil)
		w := httptest.NewRecorder()
		h.HandleGetTierStatus(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"tier":"verified"`)
		assert.Contains(t, w.Body.String(), `"multiplier":1.5`)
		assert.Contains(t, w.Body.String(), `"next_tier":"elite"`)
		profiles.AssertExpectations(t)
	})

	t.Run("Unknown User", func(t *testing.T) {
		profiles := &MockProfileService{}
		profiles.On("TierStatus", mock.Anything, "ghost").Return(nil, domain.ErrUserNotFound)

		h := NewProfileHandler(profiles)
		req := httptest.NewRequest("GET", "/api/v1/profile/tier?user_id=ghost", nil)
		w := httptest.NewRecorder()
		h.HandleGetTierStatus(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
