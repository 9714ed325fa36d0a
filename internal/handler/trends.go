package handler

import (
	"net/http"
	"strings"

	"github.com/wavesight/earnings-service/internal/domain"
	"github.com/wavesight/earnings-service/internal/logger"
	"github.com/wavesight/earnings-service/internal/metrics"
	"github.com/wavesight/earnings-service/internal/submission"
)

type TrendHandler struct {
	service submission.Service
}

func NewTrendHandler(service submission.Service) *TrendHandler {
	return &TrendHandler{service: service}
}

// ContentSignalsRequest carries the quality attributes of a submission.
// Counts and rates are clamped server-side; a malformed value costs the
// bonus, it never fails the submission.
type ContentSignalsRequest struct {
	HasScreenshot    bool    `json:"has_screenshot"`
	HasDemographics  bool    `json:"has_demographics"`
	PlatformCount    int     `json:"platform_count" validate:"min=0,max=50"`
	HasCreatorHandle bool    `json:"has_creator_handle"`
	HashtagCount     int     `json:"hashtag_count" validate:"min=0,max=500"`
	HasCaption       bool    `json:"has_caption"`
	ViewCount        int64   `json:"view_count" validate:"min=0"`
	EngagementRate   float64 `json:"engagement_rate" validate:"min=0,max=1"`
	WaveScore        float64 `json:"wave_score" validate:"min=0,max=100"`
}

type SubmitTrendRequest struct {
	UserID      string                `json:"user_id" validate:"required,max=100,excludesall=\x00\n\r\t"`
	Title       string                `json:"title" validate:"required,max=200"`
	Description string                `json:"description" validate:"max=2000"`
	Category    string                `json:"category" validate:"max=50"`
	Signals     ContentSignalsRequest `json:"signals"`
}

// toSignals maps request fields onto domain signals. HasTitleDescription is
// derived from the payload itself rather than trusted from the client.
func (req *SubmitTrendRequest) toSignals() domain.ContentSignals {
	return domain.ContentSignals{
		HasScreenshot:       req.Signals.HasScreenshot,
		HasTitleDescription: req.Title != "" && req.Description != "",
		HasDemographics:     req.Signals.HasDemographics,
		PlatformCount:       req.Signals.PlatformCount,
		HasCreatorHandle:    req.Signals.HasCreatorHandle,
		HashtagCount:        req.Signals.HashtagCount,
		HasCaption:          req.Signals.HasCaption,
		ViewCount:           req.Signals.ViewCount,
		EngagementRate:      req.Signals.EngagementRate,
		WaveScore:           req.Signals.WaveScore,
		Category:            req.Category,
	}
}

// HandleSubmitTrend submits a new trend and pays the submission reward
// @Summary Submit a trend
// @Description Creates a pending trend, calculates the submission reward and credits the spotter's ledger
// @Tags trends
// @Accept json
// @Produce json
// @Param request body SubmitTrendRequest true "Trend submission"
// @Success 201 {object} submission.SubmitResult
// @Failure 400 {object} ValidationErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /api/v1/trends/submit [post]
func (h *TrendHandler) HandleSubmitTrend(w http.ResponseWriter, r *http.Request) {
	var req SubmitTrendRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Submit trend"); err != nil {
		return
	}

	result, err := h.service.SubmitTrend(r.Context(), submission.SubmitInput{
		UserID:      req.UserID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Signals:     req.toSignals(),
	})
	if err != nil {
		logger.FromContext(r.Context()).Error(ErrMsgSubmitTrendFailed, "user_id", req.UserID, "error", err)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	metrics.RecordTrendSubmitted(req.Category, result.Reward.Entry.Amount)

	respondJSON(w, http.StatusCreated, result)
}

type VoteRequest struct {
	TrendID string `json:"trend_id" validate:"required,max=64"`
	VoterID string `json:"voter_id" validate:"required,max=100,excludesall=\x00\n\r\t"`
	Vote    string `json:"vote" validate:"required,vote"`
}

// HandleCastVote records a validation vote on a pending trend
// @Summary Vote on a trend
// @Description Records a verify or reject vote, pays the flat validation reward and resolves the trend when a threshold is reached
// @Tags trends
// @Accept json
// @Produce json
// @Param request body VoteRequest true "Validation vote"
// @Success 200 {object} submission.VoteResult
// @Failure 400 {object} ValidationErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/trends/vote [post]
func (h *TrendHandler) HandleCastVote(w http.ResponseWriter, r *http.Request) {
	var req VoteRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Cast vote"); err != nil {
		return
	}

	vote := domain.VoteType(strings.ToLower(req.Vote))
	result, err := h.service.CastVote(r.Context(), req.TrendID, req.VoterID, vote)
	if err != nil {
		logger.FromContext(r.Context()).Error(ErrMsgCastVoteFailed, "trend_id", req.TrendID, "voter_id", req.VoterID, "error", err)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	metrics.RecordVoteCast(string(vote), result.Resolved)

	respondJSON(w, http.StatusOK, result)
}
