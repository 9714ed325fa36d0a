package worker

import (
	"context"
	"sync"
	"time"

	"github.com/wavesight/earnings-service/internal/event"
	"github.com/wavesight/earnings-service/internal/logger"
	"github.com/wavesight/earnings-service/internal/profile"
	"github.com/wavesight/earnings-service/internal/submission"
)

// DailyResetWorker clears daily earnings totals and breaks lapsed streaks at
// 00:00 UTC, and expires pending trends whose voting window has closed.
type DailyResetWorker struct {
	profileService    profile.Service
	submissionService submission.Service
	publisher         *event.ResilientPublisher
	timer             *time.Timer
	shutdown          chan struct{}
	wg                sync.WaitGroup
	mu                sync.Mutex
}

// NewDailyResetWorker creates a new DailyResetWorker
func NewDailyResetWorker(profileService profile.Service, submissionService submission.Service, publisher *event.ResilientPublisher) *DailyResetWorker {
	return &DailyResetWorker{
		profileService:    profileService,
		submissionService: submissionService,
		shutdown:          make(chan struct{}),
		publisher:         publisher,
	}
}

// Start initializes the worker and schedules the first reset
func (w *DailyResetWorker) Start() {
	w.scheduleNext()
}

// scheduleNext calculates the time until the next 00:00 UTC and schedules the reset
func (w *DailyResetWorker) scheduleNext() {
	duration := timeUntilNextReset()
	log := logger.FromContext(context.Background())

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}

	// Two-stage scheduling to prevent "tight loop" rescheduling caused by early triggers
	if duration > 1*time.Hour {
		// Stage 1: Long-range (Standby). Wake up 45 minutes before reset.
		waitDuration := duration - 45*time.Minute
		w.timer = time.AfterFunc(waitDuration, func() {
			w.scheduleNext()
		})
		w.mu.Unlock()

		nextCheck := time.Now().UTC().Add(waitDuration)
		log.Info(LogMsgDailyResetStandby, "next_check_at", nextCheck)
		return
	}

	// Stage 2: Final approach. Schedule the actual reset.
	w.timer = time.AfterFunc(duration, func() {
		select {
		case <-w.shutdown:
			return
		default:
		}

		// Jitter protection: if the timer triggered early (jitter > 10s),
		// simply reschedule for the remaining time.
		// If duration is > 23h, it means we are actually on time or slightly LATE.
		rem := timeUntilNextReset()
		if rem > 10*time.Second && rem < 23*time.Hour {
			w.scheduleNext()
			return
		}

		w.executeReset()
		w.scheduleNext() // This will now calculate ~24h and jump back to Stage 1
	})
	w.mu.Unlock()

	nextReset := time.Now().UTC().Add(duration)
	log.Info(LogMsgDailyResetApproach, "next_reset_at", nextReset)
}

// executeReset performs the daily reset in a tracked goroutine
func (w *DailyResetWorker) executeReset() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.RunOnce(context.Background())
	}()
}

// RunOnce performs one daily reset pass. Exposed so operators can trigger a
// reset out of schedule.
func (w *DailyResetWorker) RunOnce(ctx context.Context) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgDailyResetStarting)

	resetTime := time.Now().UTC()
	midnight := time.Date(resetTime.Year(), resetTime.Month(), resetTime.Day(), 0, 0, 0, 0, time.UTC)

	profilesReset, streaksBroken, err := w.profileService.ResetDaily(ctx, midnight)
	if err != nil {
		log.Error(LogMsgDailyResetFailed, "error", err)
		return
	}

	expired, err := w.submissionService.ExpireStale(ctx, resetTime)
	if err != nil {
		// Profiles are already reset; report the partial failure and move on.
		log.Error(LogMsgTrendExpiryFailed, "error", err)
	}

	log.Info(LogMsgDailyResetCompleted,
		"profiles_reset", profilesReset,
		"streaks_broken", streaksBroken,
		"trends_expired", expired)

	// Publish event (ResilientPublisher will handle retry)
	if w.publisher != nil {
		w.publisher.PublishWithRetry(ctx, event.NewDailyResetCompleteEvent(resetTime, profilesReset, streaksBroken))
	}
}

// Shutdown gracefully shuts down the daily reset worker
// Cancels the pending timer and waits for any in-flight resets to complete
func (w *DailyResetWorker) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info("Shutting down daily reset worker")

	// Signal shutdown to timer callback (safe to close once)
	select {
	case <-w.shutdown:
		// Already closed, nothing to do
	default:
		close(w.shutdown)
	}

	// Cancel pending timer
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
		log.Info("Cancelled pending daily reset")
	}
	w.mu.Unlock()

	// Wait for any in-flight resets to complete
	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info("Daily reset worker shutdown complete")
		return nil
	case <-ctx.Done():
		log.Warn("Daily reset worker shutdown timeout, some resets may still be running")
		return ctx.Err()
	}
}

// timeUntilNextReset calculates the duration until the next 00:00 UTC
func timeUntilNextReset() time.Duration {
	now := time.Now().UTC()
	nextReset := time.Date(
		now.Year(), now.Month(), now.Day(),
		0, 0, 0, 0, time.UTC,
	)
	if !nextReset.After(now) {
		nextReset = nextReset.AddDate(0, 0, 1)
	}
	return nextReset.Sub(now)
}
