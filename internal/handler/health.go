package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/wavesight/earnings-service/internal/database"
)

const healthServiceName = "earnings-service"

// HealthResponse is the payload for the liveness and readiness probes.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Message string `json:"message,omitempty"`
}

// HandleHealthz reports liveness
// @Summary Liveness check
// @Description Returns OK if the service is running
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, http.StatusOK, HealthResponse{
			Status:  "ok",
			Service: healthServiceName,
		})
	}
}

// HandleReadyz reports readiness. The service is ready only when the ledger
// database answers a ping; without it every earning operation would fail.
// @Summary Readiness check
// @Description Returns OK if the service can reach its database
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readyz [get]
func HandleReadyz(dbPool database.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := dbPool.Ping(ctx); err != nil {
			slog.Error("Readiness check failed", "error", err)
			writeHealth(w, http.StatusServiceUnavailable, HealthResponse{
				Status:  "unavailable",
				Service: healthServiceName,
				Message: "database unreachable",
			})
			return
		}

		writeHealth(w, http.StatusOK, HealthResponse{
			Status:  "ok",
			Service: healthServiceName,
		})
	}
}

func writeHealth(w http.ResponseWriter, code int, resp HealthResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(resp)
}
