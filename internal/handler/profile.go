package handler

import (
	"net/http"

	"github.com/wavesight/earnings-service/internal/logger"
	"github.com/wavesight/earnings-service/internal/profile"
)

type ProfileHandler struct {
	service profile.Service
}

func NewProfileHandler(service profile.Service) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// HandleGetProfile returns a user's performance profile
// @Summary Get performance profile
// @Description Returns the stored counters that drive tier resolution
// @Tags profile
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} domain.PerformanceProfile
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/profile [get]
func (h *ProfileHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}

	p, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to get profile", "user_id", userID, "error", err)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	respondJSON(w, http.StatusOK, p)
}

// HandleGetTierStatus returns a user's tier, progress and monthly potential
// @Summary Get tier status
// @Description Returns the current tier multiplier, progress toward the next tier and estimated monthly earning range
// @Tags profile
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} profile.TierStatus
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/profile/tier [get]
func (h *ProfileHandler) HandleGetTierStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}

	status, err := h.service.TierStatus(r.Context(), userID)
	if err != nil {
		logger.FromContext(r.Context()).Error(ErrMsgGetTierFailed, "user_id", userID, "error", err)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	respondJSON(w, http.StatusOK, status)
}
