package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/wavesight/earnings-service/internal/event"
	"github.com/wavesight/earnings-service/internal/metrics"
)

// RegisterEventHandlers sets up all event subscribers.
// This includes the metrics collector, which translates domain events
// (rewards, trend resolutions, tier changes, daily resets) into
// Prometheus counters.
func RegisterEventHandlers(eventBus event.Bus) error {
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(eventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	return nil
}
