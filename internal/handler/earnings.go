package handler

import (
	"net/http"

	"github.com/wavesight/earnings-service/internal/ledger"
	"github.com/wavesight/earnings-service/internal/logger"
	"github.com/wavesight/earnings-service/internal/profile"
	"github.com/wavesight/earnings-service/internal/rewards"
	"github.com/wavesight/earnings-service/internal/submission"
)

type EarningsHandler struct {
	submissions submission.Service
	ledger      ledger.Service
	profiles    profile.Service
	rules       rewards.Ruleset
}

func NewEarningsHandler(submissions submission.Service, ledgerSvc ledger.Service, profiles profile.Service, rules rewards.Ruleset) *EarningsHandler {
	return &EarningsHandler{
		submissions: submissions,
		ledger:      ledgerSvc,
		profiles:    profiles,
		rules:       rules,
	}
}

type PreviewEarningsRequest struct {
	UserID      string                `json:"user_id" validate:"required,max=100,excludesall=\x00\n\r\t"`
	Title       string                `json:"title" validate:"max=200"`
	Description string                `json:"description" validate:"max=2000"`
	Category    string                `json:"category" validate:"max=50"`
	Signals     ContentSignalsRequest `json:"signals"`
}

// HandlePreviewEarnings calculates what a submission would earn without recording anything
// @Summary Preview submission earnings
// @Description Dry-run of the reward calculation against the user's current tier and streak state
// @Tags earnings
// @Accept json
// @Produce json
// @Param request body PreviewEarningsRequest true "Submission to price"
// @Success 200 {object} rewards.Breakdown
// @Failure 400 {object} ValidationErrorResponse
// @Router /api/v1/earnings/preview [post]
func (h *EarningsHandler) HandlePreviewEarnings(w http.ResponseWriter, r *http.Request) {
	var req PreviewEarningsRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Preview earnings"); err != nil {
		return
	}

	submitReq := SubmitTrendRequest{
		UserID:      req.UserID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Signals:     req.Signals,
	}

	breakdown, err := h.submissions.PreviewEarnings(r.Context(), req.UserID, submitReq.toSignals())
	if err != nil {
		logger.FromContext(r.Context()).Error(ErrMsgPreviewFailed, "user_id", req.UserID, "error", err)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	respondJSON(w, http.StatusOK, breakdown)
}

// BalanceResponse reports a user's earnings totals and cashout eligibility.
type BalanceResponse struct {
	UserID         string  `json:"user_id"`
	CurrentBalance float64 `json:"current_balance"`
	TotalEarned    float64 `json:"total_earned"`
	TodayEarned    float64 `json:"today_earned"`
	DailyCap       float64 `json:"daily_cap"`
	CanCashOut     bool    `json:"can_cash_out"`
	MinCashout     float64 `json:"min_cashout"`
}

// HandleGetBalance returns a user's balance and cashout eligibility
// @Summary Get earnings balance
// @Description Returns current balance, lifetime and daily totals, and whether the balance clears the cashout minimum
// @Tags earnings
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} BalanceResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/earnings/balance [get]
func (h *EarningsHandler) HandleGetBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}

	p, err := h.profiles.GetProfile(r.Context(), userID)
	if err != nil {
		logger.FromContext(r.Context()).Error(ErrMsgGetBalanceFailed, "user_id", userID, "error", err)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	respondJSON(w, http.StatusOK, BalanceResponse{
		UserID:         p.UserID,
		CurrentBalance: p.CurrentBalance,
		TotalEarned:    p.TotalEarned,
		TodayEarned:    p.TodayEarned,
		DailyCap:       h.rules.MaxDailyEarnings,
		CanCashOut:     h.rules.CanCashOut(p.CurrentBalance),
		MinCashout:     h.rules.MinCashout,
	})
}

// HandleGetLedger returns a page of a user's earnings history
// @Summary Get earnings ledger
// @Description Returns ledger entries newest first, paginated by limit and offset
// @Tags earnings
// @Produce json
// @Param user_id query string true "User ID"
// @Param limit query int false "Page size (default 50, max 200)"
// @Param offset query int false "Entries to skip"
// @Success 200 {object} DataResponse
// @Router /api/v1/earnings/ledger [get]
func (h *EarningsHandler) HandleGetLedger(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}
	limit := GetIntQueryParam(r, "limit", 0)
	offset := GetIntQueryParam(r, "offset", 0)

	entries, err := h.ledger.History(r.Context(), userID, limit, offset)
	if err != nil {
		logger.FromContext(r.Context()).Error(ErrMsgGetLedgerFailed, "user_id", userID, "error", err)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: entries})
}

type CashoutRequest struct {
	UserID string  `json:"user_id" validate:"required,max=100,excludesall=\x00\n\r\t"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// HandleCashout debits the user's balance into a pending cashout entry
// @Summary Request a cashout
// @Description Creates a pending cashout entry if the amount clears the minimum and the balance covers it
// @Tags earnings
// @Accept json
// @Produce json
// @Param request body CashoutRequest true "Cashout request"
// @Success 200 {object} domain.LedgerEntry
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/earnings/cashout [post]
func (h *EarningsHandler) HandleCashout(w http.ResponseWriter, r *http.Request) {
	var req CashoutRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Cashout"); err != nil {
		return
	}

	entry, err := h.ledger.RequestCashout(r.Context(), req.UserID, req.Amount)
	if err != nil {
		logger.FromContext(r.Context()).Error(ErrMsgCashoutFailed, "user_id", req.UserID, "amount", req.Amount, "error", err)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	respondJSON(w, http.StatusOK, entry)
}
