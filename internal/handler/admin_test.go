package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/wavesight/earnings-service/internal/domain"
	"github.com/wavesight/earnings-service/internal/profile"
)

func TestHandleManualReset(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		profiles := new(MockProfileService)
		submissions := new(MockSubmissionService)
		h := NewAdminHandler(profiles, submissions, new(MockLedgerService))

		profiles.On("ResetDaily", mock.Anything, mock.MatchedBy(func(cutoff time.Time) bool {
			return cutoff.Hour() == 0 && cutoff.Minute() == 0 && cutoff.Location() == time.UTC
		})).Return(int64(12), int64(4), nil)
		submissions.On("ExpireStale", mock.Anything, mock.Anything).Return(int64(3), nil)

		req := httptest.NewRequest("POST", "/api/v1/admin/reset-daily", nil)
		w := httptest.NewRecorder()

		h.HandleManualReset(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"success":true`)
		assert.Contains(t, w.Body.String(), `"profiles_reset":12`)
		assert.Contains(t, w.Body.String(), `"streaks_broken":4`)
		assert.Contains(t, w.Body.String(), `"trends_expired":3`)
		profiles.AssertExpectations(t)
		submissions.AssertExpectations(t)
	})

	t.Run("Reset Fails", func(t *testing.T) {
		profiles := new(MockProfileService)
		submissions := new(MockSubmissionService)
		h := NewAdminHandler(profiles, submissions, new(MockLedgerService))

		profiles.On("ResetDaily", mock.Anything, mock.Anything).Return(int64(0), int64(0), errors.New("db down"))

		req := httptest.NewRequest("POST", "/api/v1/admin/reset-daily", nil)
		w := httptest.NewRecorder()

		h.HandleManualReset(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgDailyResetFailed)
		submissions.AssertNotCalled(t, "ExpireStale", mock.Anything, mock.Anything)
	})

	t.Run("Expiry Failure Still Succeeds", func(t *testing.T) {
		profiles := new(MockProfileService)
		submissions := new(MockSubmissionService)
		h := NewAdminHandler(profiles, submissions, new(MockLedgerService))

		profiles.On("ResetDaily", mock.Anything, mock.Anything).Return(int64(5), int64(1), nil)
		submissions.On("ExpireStale", mock.Anything, mock.Anything).Return(int64(0), errors.New("timeout"))

		req := httptest.NewRequest("POST", "/api/v1/admin/reset-daily", nil)
		w := httptest.NewRecorder()

		h.HandleManualReset(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"profiles_reset":5`)
	})
}

func TestHandleSettleEntry(t *testing.T) {
	entryID := "7f9c34d2-9f1a-4f6e-bb3a-2f4f4e6a9c01"

	t.Run("Approve Pending Entry", func(t *testing.T) {
		ledgerSvc := new(MockLedgerService)
		h := NewAdminHandler(new(MockProfileService), new(MockSubmissionService), ledgerSvc)

		ledgerSvc.On("SettleEntry", mock.Anything, entryID, domain.EntryStatusApproved).Return(&domain.LedgerEntry{
			ID:     entryID,
			UserID: "spotter-1",
			Amount: 1.25,
			Status: domain.EntryStatusApproved,
		}, nil)

		w := postJSON(t, h.HandleSettleEntry, "/api/v1/admin/ledger/settle",
			SettleEntryRequest{EntryID: entryID, Status: "approved"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"approved"`)
		ledgerSvc.AssertExpectations(t)
	})

	t.Run("Unknown Entry", func(t *testing.T) {
		ledgerSvc := new(MockLedgerService)
		h := NewAdminHandler(new(MockProfileService), new(MockSubmissionService), ledgerSvc)

		ledgerSvc.On("SettleEntry", mock.Anything, entryID, domain.EntryStatusPaid).Return(nil, domain.ErrEntryNotFound)

		w := postJSON(t, h.HandleSettleEntry, "/api/v1/admin/ledger/settle",
			SettleEntryRequest{EntryID: entryID, Status: "paid"})

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgEntryNotFoundError)
	})

	t.Run("Refused Transition", func(t *testing.T) {
		ledgerSvc := new(MockLedgerService)
		h := NewAdminHandler(new(MockProfileService), new(MockSubmissionService), ledgerSvc)

		ledgerSvc.On("SettleEntry", mock.Anything, entryID, domain.EntryStatusCancelled).Return(nil, domain.ErrInvalidStatusChange)

		w := postJSON(t, h.HandleSettleEntry, "/api/v1/admin/ledger/settle",
			SettleEntryRequest{EntryID: entryID, Status: "cancelled"})

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgStatusChangeRefusedErr)
	})

	t.Run("Invalid Status Value", func(t *testing.T) {
		ledgerSvc := new(MockLedgerService)
		h := NewAdminHandler(new(MockProfileService), new(MockSubmissionService), ledgerSvc)

		w := postJSON(t, h.HandleSettleEntry, "/api/v1/admin/ledger/settle",
			SettleEntryRequest{EntryID: entryID, Status: "refunded"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		ledgerSvc.AssertNotCalled(t, "SettleEntry", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestHandleGetCacheStats(t *testing.T) {
	profiles := new(MockProfileService)
	h := NewAdminHandler(profiles, new(MockSubmissionService), new(MockLedgerService))

	profiles.On("GetCacheStats").Return(profile.CacheStats{Entries: 42})

	req := httptest.NewRequest("GET", "/api/v1/admin/cache/stats", nil)
	w := httptest.NewRecorder()

	h.HandleGetCacheStats(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"entries":42`)
}
