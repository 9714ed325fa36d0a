package metrics

import (
	"context"

	"github.com/wavesight/earnings-service/internal/event"
	"github.com/wavesight/earnings-service/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.TrendSubmitted,
		event.TrendApproved,
		event.TrendRejected,
		event.RewardRecorded,
		event.TierChanged,
		event.DailyResetComplete,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	// Always increment event counter
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch payload := evt.Payload.(type) {
	case event.RewardRecordedPayloadV1:
		RewardsRecorded.WithLabelValues(payload.EntryType).Inc()
		if payload.Capped {
			RewardsCapped.Inc()
		}

	case event.TrendResolvedPayloadV1:
		switch evt.Type {
		case event.TrendApproved:
			TrendsApproved.Inc()
		case event.TrendRejected:
			TrendsRejected.Inc()
		}

	case event.TierChangedPayloadV1:
		TierChanges.WithLabelValues(payload.OldTier, payload.NewTier).Inc()

	case event.DailyResetCompletePayloadV1:
		ProfilesReset.Add(float64(payload.ProfilesReset))
		StreaksBroken.Add(float64(payload.StreaksBroken))

	case event.TrendSubmittedPayloadV1:
		// Submission counters are recorded at the handler with the request
		// category; nothing extra to do here.

	default:
		log.Debug(LogMsgEventPayloadUnknown, "type", evt.Type)
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
