package event

import "time"

// EventSchemaVersion tags every published event. Consumers reject
// versions they do not understand instead of guessing at fields.
const EventSchemaVersion = "1.0"

// Retry tuning for the resilient publisher. A reward event that cannot
// be delivered is retried with exponential backoff before it falls
// through to the dead-letter file.
const (
	RetryQueueBufferSize     = 1000
	RetryInitialDelaySeconds = 2
	RetryMaxAttempts         = 5
)

const DeadLetterFilePermissions = 0644

const (
	LogMsgEventPublishFailed     = "Event publish failed, queuing for retry"
	LogMsgRetryQueueFull         = "Retry queue full, event dropped to dead-letter"
	LogMsgDeadLetterWriteFailed  = "Failed to write to dead letter"
	LogMsgEventRetryExhausted    = "Event retry exhausted, writing to dead-letter"
	LogMsgEventRetryFailed       = "Event retry failed, scheduling next attempt"
	LogMsgEventRetrySucceeded    = "Event retry succeeded"
	LogMsgEventDroppedShutdown   = "Event dropped during shutdown"
	LogMsgQueueDrainedShutdown   = "Drained retry queue during shutdown"
	LogMsgShutdownTimeout        = "Resilient publisher shutdown timed out"
	LogMsgDeadLetterWriteFailedS = "Failed to write to dead letter shutdown"

	LogMsgHandlerErrorFormat = "encountered %d errors while handling event %s: %v"
)

// CalculateRetryDelay doubles the delay each attempt: 2s, 4s, 8s, 16s, 32s.
func CalculateRetryDelay(baseDelay time.Duration, attempt int) time.Duration {
	return baseDelay * time.Duration(1<<(attempt-1))
}
