package server

import (
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/wavesight/earnings-service/internal/logger"
)

const (
	authFailureAlertThreshold = 5
	abuseWindow               = 5 * time.Minute
	maxRequestsPerWindow      = 1000
	rateAlertSampleEvery      = 100
)

// AuthMiddleware checks the X-API-Key header on everything that is not a
// public path. Key comparison is constant-time.
func AuthMiddleware(apiKey string, trustedProxies []string, monitor *AbuseMonitor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, path := range PublicPaths {
				if strings.HasPrefix(r.URL.Path, path) {
					next.ServeHTTP(w, r)
					return
				}
			}

			providedKey := r.Header.Get(HeaderAPIKey)
			if subtle.ConstantTimeCompare([]byte(providedKey), []byte(apiKey)) != 1 {
				ip := clientIP(r, trustedProxies)
				monitor.RecordFailedAuth(ip)

				logger.FromContext(r.Context()).Warn(LogMsgAuthFailed,
					"remote_addr", r.RemoteAddr,
					"path", r.URL.Path,
					"has_key", providedKey != "",
					"ip", ip)

				http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequestSizeLimitMiddleware caps request body size. Submission payloads are
// small JSON; anything near the limit is not a real client.
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// AbuseMonitor counts auth failures and request volume per client IP over a
// rolling window so farming scripts hammering the submit endpoint show up in
// the logs before they show up in the ledger.
type AbuseMonitor struct {
	mu          sync.Mutex
	failedAuth  map[string]int
	requests    map[string]int
	windowStart time.Time
}

func NewAbuseMonitor() *AbuseMonitor {
	return &AbuseMonitor{
		failedAuth:  make(map[string]int),
		requests:    make(map[string]int),
		windowStart: time.Now(),
	}
}

// RecordFailedAuth counts an auth failure and alerts past the threshold.
func (m *AbuseMonitor) RecordFailedAuth(ip string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rollWindow()
	m.failedAuth[ip]++

	if m.failedAuth[ip] >= authFailureAlertThreshold {
		slog.Warn(SecurityAlertFailedAuth,
			"ip", ip,
			"count", m.failedAuth[ip])
	}
}

// Allow counts a request and reports whether the IP is still under the
// per-window budget. Alerts are sampled to keep the log readable.
func (m *AbuseMonitor) Allow(ip string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rollWindow()
	m.requests[ip]++

	if m.requests[ip] > maxRequestsPerWindow {
		if m.requests[ip]%rateAlertSampleEvery == 0 {
			slog.Warn(SecurityAlertHighRate,
				"ip", ip,
				"count_in_window", m.requests[ip])
		}
		return false
	}
	return true
}

// rollWindow clears the counters once the window has passed. Caller holds
// the mutex.
func (m *AbuseMonitor) rollWindow() {
	if time.Since(m.windowStart) > abuseWindow {
		m.requests = make(map[string]int)
		m.failedAuth = make(map[string]int)
		m.windowStart = time.Now()
	}
}

// SecurityLoggingMiddleware enforces the per-IP request budget.
func SecurityLoggingMiddleware(trustedProxies []string, monitor *AbuseMonitor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r, trustedProxies)
			if !monitor.Allow(ip) {
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP resolves the caller's address. X-Forwarded-For is honored only
// when the direct peer is a trusted proxy, and only its rightmost hop.
func clientIP(r *http.Request, trustedProxies []string) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}

	trusted := false
	for _, proxy := range trustedProxies {
		if proxy == remoteIP {
			trusted = true
			break
		}
	}

	if trusted {
		if forwarded := r.Header.Get(HeaderForwardedFor); forwarded != "" {
			hops := strings.Split(forwarded, ",")
			return strings.TrimSpace(hops[len(hops)-1])
		}
	}

	return remoteIP
}

// SecurityHeadersMiddleware sets the standard browser hardening headers.
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(HeaderContentType, HeaderValueNoSniff)
			w.Header().Set(HeaderFrameOptions, HeaderValueSameOrigin)
			w.Header().Set(HeaderXSSProtection, HeaderValueXSSBlock)
			w.Header().Set(HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin)

			next.ServeHTTP(w, r)
		})
	}
}
