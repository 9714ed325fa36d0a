package handler

import (
	"net/http"
	"time"

	"github.com/wavesight/earnings-service/internal/domain"
	"github.com/wavesight/earnings-service/internal/ledger"
	"github.com/wavesight/earnings-service/internal/logger"
	"github.com/wavesight/earnings-service/internal/profile"
	"github.com/wavesight/earnings-service/internal/submission"
)

// AdminHandler handles operational admin endpoints
type AdminHandler struct {
	profileService    profile.Service
	submissionService submission.Service
	ledgerService     ledger.Service
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(profileService profile.Service, submissionService submission.Service, ledgerService ledger.Service) *AdminHandler {
	return &AdminHandler{
		profileService:    profileService,
		submissionService: submissionService,
		ledgerService:     ledgerService,
	}
}

// HandleManualReset manually triggers the daily reset
// POST /api/v1/admin/reset-daily
// @Summary Manually trigger the daily reset
// @Description Zeroes daily earnings counters, breaks stale streaks and expires pending trends past the voting window
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} ErrorResponse
// @Router /admin/reset-daily [post]
func (h *AdminHandler) HandleManualReset(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Info("Manual daily reset triggered")

	now := time.Now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	profilesReset, streaksBroken, err := h.profileService.ResetDaily(r.Context(), midnight)
	if err != nil {
		log.Error("Manual daily reset failed", "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgDailyResetFailed)
		return
	}

	expired, err := h.submissionService.ExpireStale(r.Context(), now)
	if err != nil {
		log.Error("Stale trend expiry failed", "error", err)
	}

	log.Info("Manual daily reset completed",
		"profiles_reset", profilesReset,
		"streaks_broken", streaksBroken,
		"trends_expired", expired)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":        true,
		"message":        "Daily reset completed",
		"profiles_reset": profilesReset,
		"streaks_broken": streaksBroken,
		"trends_expired": expired,
	})
}

// HandleGetCacheStats returns current profile cache statistics
// GET /api/v1/admin/cache/stats
// @Summary Get profile cache stats
// @Description Returns cache occupancy for monitoring (admin only)
// @Tags admin
// @Produce json
// @Success 200 {object} profile.CacheStats
// @Router /admin/cache/stats [get]
func (h *AdminHandler) HandleGetCacheStats(w http.ResponseWriter, r *http.Request) {
	stats := h.profileService.GetCacheStats()
	respondJSON(w, http.StatusOK, stats)
}

// SettleEntryRequest moves a ledger entry through the payout lifecycle.
type SettleEntryRequest struct {
	EntryID string `json:"entry_id" validate:"required,uuid4"`
	Status  string `json:"status" validate:"required,oneof=approved paid cancelled"`
}

// HandleSettleEntry updates a ledger entry's payout status
// POST /api/v1/admin/ledger/settle
// @Summary Settle a ledger entry
// @Description Approves, pays out or cancels a ledger entry (admin only)
// @Tags admin
// @Accept json
// @Produce json
// @Param request body SettleEntryRequest true "Payout status change"
// @Success 200 {object} domain.LedgerEntry
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /admin/ledger/settle [post]
func (h *AdminHandler) HandleSettleEntry(w http.ResponseWriter, r *http.Request) {
	var req SettleEntryRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Settle ledger entry"); err != nil {
		return
	}

	entry, err := h.ledgerService.SettleEntry(r.Context(), req.EntryID, domain.EntryStatus(req.Status))
	if err != nil {
		logger.FromContext(r.Context()).Error(ErrMsgSettleEntryFailed, "entry_id", req.EntryID, "status", req.Status, "error", err)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	respondJSON(w, http.StatusOK, entry)
}
