package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/wavesight/earnings-service/internal/domain"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// Helper functions for responding

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Encode through a pooled buffer; headers are already sent, so an
	// encode failure can only be logged.
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
const (
	// Generic messages
	ErrMsgGenericServerError   = "Something went wrong"
	ErrMsgUnknownError         = "Unknown error"
	ErrMsgInvalidRequestError  = "Invalid request. Please check your inputs."
	ErrMsgAuthFailedError      = "Authentication failed. Please check your API key."
	ErrMsgTooManyRequestsError = "Too many requests. Please try again later."
	ErrMsgUnavailableError     = "Server is temporarily unavailable. Please try again later."

	// Profile messages
	ErrMsgUserNotFoundError = "User not found"

	// Trend and voting messages
	ErrMsgTrendNotFoundError = "Trend not found"
	ErrMsgAlreadyVotedError  = "You have already voted on this trend"
	ErrMsgSelfVoteError      = "You cannot vote on your own trend"
	ErrMsgVotingClosedError  = "Voting has closed for this trend"
	ErrMsgInvalidVoteError   = "Vote must be verify or reject"

	// Earnings messages
	ErrMsgDailyCapReachedError   = "Daily earnings limit reached. Come back tomorrow!"
	ErrMsgNotEnoughBalanceErr    = "Insufficient balance"
	ErrMsgBelowMinCashoutError   = "Balance is below the cashout minimum"
	ErrMsgEntryNotFoundError     = "Ledger entry not found"
	ErrMsgStatusChangeRefusedErr = "That status change is not allowed for this entry"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses
// This function converts internal service errors to appropriate HTTP status codes and messages
// that users can understand and act upon.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, ErrMsgUserNotFoundError
	case errors.Is(err, domain.ErrTrendNotFound):
		return http.StatusNotFound, ErrMsgTrendNotFoundError
	case errors.Is(err, domain.ErrDuplicateVote):
		return http.StatusConflict, ErrMsgAlreadyVotedError
	case errors.Is(err, domain.ErrSelfVote):
		return http.StatusBadRequest, ErrMsgSelfVoteError
	case errors.Is(err, domain.ErrVotingClosed):
		return http.StatusConflict, ErrMsgVotingClosedError
	case errors.Is(err, domain.ErrInvalidVoteType):
		return http.StatusBadRequest, ErrMsgInvalidVoteError
	case errors.Is(err, domain.ErrInvalidEntryType):
		return http.StatusBadRequest, ErrMsgInvalidRequestError
	case errors.Is(err, domain.ErrDailyCapReached):
		return http.StatusTooManyRequests, ErrMsgDailyCapReachedError
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest, ErrMsgNotEnoughBalanceErr
	case errors.Is(err, domain.ErrBelowMinCashout):
		return http.StatusBadRequest, ErrMsgBelowMinCashoutError
	case errors.Is(err, domain.ErrEntryNotFound):
		return http.StatusNotFound, ErrMsgEntryNotFoundError
	case errors.Is(err, domain.ErrInvalidStatusChange):
		return http.StatusConflict, ErrMsgStatusChangeRefusedErr
	case errors.Is(err, domain.ErrDatabaseError):
		return http.StatusInternalServerError, ErrMsgGenericServerError
	case errors.Is(err, domain.ErrConnectionTimeout):
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}

	// For wrapped errors with domain errors as the base, try unwrapping
	unwrapped := errors.Unwrap(err)
	if unwrapped != nil && unwrapped != err {
		return mapServiceErrorToUserMessage(unwrapped)
	}

	// Surface short custom messages (tests, mocks); hide anything longer.
	errMsg := err.Error()
	if errMsg != "" && len(errMsg) < 200 {
		return http.StatusInternalServerError, errMsg
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
