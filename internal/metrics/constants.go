package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameTrendsSubmitted  = "trends_submitted_total"
	MetricNameTrendsApproved   = "trends_approved_total"
	MetricNameTrendsRejected   = "trends_rejected_total"
	MetricNameVotesCast        = "votes_cast_total"
	MetricNameRewardsRecorded  = "rewards_recorded_total"
	MetricNameRewardsCapped    = "rewards_capped_total"
	MetricNameRewardAmount     = "reward_amount_usd_total"
	MetricNameTierChanges      = "tier_changes_total"
	MetricNameProfilesReset    = "daily_reset_profiles_total"
	MetricNameStreaksBroken    = "daily_reset_streaks_broken_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextTrendsSubmitted = "Total number of trends submitted"
	HelpTextTrendsApproved  = "Total number of trends approved by community vote"
	HelpTextTrendsRejected  = "Total number of trends rejected by community vote"
	HelpTextVotesCast       = "Total number of validation votes cast"
	HelpTextRewardsRecorded = "Total number of ledger entries recorded"
	HelpTextRewardsCapped   = "Total number of rewards truncated by the daily cap"
	HelpTextRewardAmount    = "Total reward dollars credited to user balances"
	HelpTextTierChanges     = "Total number of tier promotions and demotions"
	HelpTextProfilesReset   = "Total number of profiles reset at the daily boundary"
	HelpTextStreaksBroken   = "Total number of daily streaks broken at the daily boundary"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelType      = "type"
	LabelCategory  = "category"
	LabelVote      = "vote"
	LabelResolved  = "resolved"
	LabelEntryType = "entry_type"
	LabelFromTier  = "from_tier"
	LabelToTier    = "to_tier"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds. These buckets range from 1ms to 10s to capture various latency
// patterns: fast (1-10ms), normal (10-100ms), slow (100ms-1s), very slow (1-10s)
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgEventPayloadUnknown = "Event payload has unexpected type"
	LogMsgMetricsRecorded     = "Metrics recorded for event"
)
