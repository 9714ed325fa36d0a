package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/wavesight/earnings-service/internal/database"
	"github.com/wavesight/earnings-service/internal/handler"
	"github.com/wavesight/earnings-service/internal/ledger"
	"github.com/wavesight/earnings-service/internal/logger"
	"github.com/wavesight/earnings-service/internal/metrics"
	"github.com/wavesight/earnings-service/internal/profile"
	"github.com/wavesight/earnings-service/internal/rewards"
	"github.com/wavesight/earnings-service/internal/submission"
)

type Server struct {
	httpServer        *http.Server
	dbPool            database.Pool
	submissionService submission.Service
	ledgerService     ledger.Service
	profileService    profile.Service
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool, submissionService submission.Service, ledgerService ledger.Service, profileService profile.Service, rules rewards.Ruleset) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewAbuseMonitor()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		trendHandler := handler.NewTrendHandler(submissionService)
		r.Route("/trends", func(r chi.Router) {
			r.Post("/submit", trendHandler.HandleSubmitTrend)
			r.Post("/vote", trendHandler.HandleCastVote)
		})

		earningsHandler := handler.NewEarningsHandler(submissionService, ledgerService, profileService, rules)
		r.Route("/earnings", func(r chi.Router) {
			r.Post("/preview", earningsHandler.HandlePreviewEarnings)
			r.Get("/balance", earningsHandler.HandleGetBalance)
			r.Get("/ledger", earningsHandler.HandleGetLedger)
			r.Post("/cashout", earningsHandler.HandleCashout)
		})

		profileHandler := handler.NewProfileHandler(profileService)
		r.Route("/profile", func(r chi.Router) {
			r.Get("/", profileHandler.HandleGetProfile)
			r.Get("/tier", profileHandler.HandleGetTierStatus)
		})

		adminHandler := handler.NewAdminHandler(profileService, submissionService, ledgerService)
		r.Route("/admin", func(r chi.Router) {
			r.Post("/reset-daily", adminHandler.HandleManualReset)
			r.Post("/ledger/settle", adminHandler.HandleSettleEntry)
			r.Get("/cache/stats", adminHandler.HandleGetCacheStats)
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool:            dbPool,
		submissionService: submissionService,
		ledgerService:     ledgerService,
		profileService:    profileService,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Probes and scrapes would drown out the submission traffic.
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Credentials never reach the log, even at debug level.
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
