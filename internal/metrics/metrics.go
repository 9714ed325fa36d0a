package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Business Metrics
var (
	TrendsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTrendsSubmitted,
			Help: HelpTextTrendsSubmitted,
		},
		[]string{LabelCategory},
	)

	TrendsApproved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTrendsApproved,
			Help: HelpTextTrendsApproved,
		},
	)

	TrendsRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTrendsRejected,
			Help: HelpTextTrendsRejected,
		},
	)

	VotesCast = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameVotesCast,
			Help: HelpTextVotesCast,
		},
		[]string{LabelVote, LabelResolved},
	)

	RewardsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRewardsRecorded,
			Help: HelpTextRewardsRecorded,
		},
		[]string{LabelEntryType},
	)

	RewardsCapped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRewardsCapped,
			Help: HelpTextRewardsCapped,
		},
	)

	RewardAmount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRewardAmount,
			Help: HelpTextRewardAmount,
		},
	)

	TierChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTierChanges,
			Help: HelpTextTierChanges,
		},
		[]string{LabelFromTier, LabelToTier},
	)

	ProfilesReset = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameProfilesReset,
			Help: HelpTextProfilesReset,
		},
	)

	StreaksBroken = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameStreaksBroken,
			Help: HelpTextStreaksBroken,
		},
	)
)

// RecordTrendSubmitted counts a submission and its credited amount.
func RecordTrendSubmitted(category string, amount float64) {
	if category == "" {
		category = "uncategorized"
	}
	TrendsSubmitted.WithLabelValues(category).Inc()
	RewardAmount.Add(amount)
}

// RecordVoteCast counts a validation vote and whether it resolved the trend.
func RecordVoteCast(vote string, resolved bool) {
	VotesCast.WithLabelValues(vote, strconv.FormatBool(resolved)).Inc()
}
