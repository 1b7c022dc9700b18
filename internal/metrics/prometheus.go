// Package metrics provides Prometheus exporters for application metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the meeting pulse service.
var (
	// Counters.
	MeetingsScoredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "meetings_scored_total",
			Help: "Total number of meeting scores computed",
		},
	)

	PredictionsComputedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "predictions_computed_total",
			Help: "Total number of weekly task predictions computed",
		},
		[]string{"risk_level"},
	)

	ChallengesCompletedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "challenges_completed_total",
			Help: "Total number of weekly challenges completed",
		},
		[]string{"criteria"},
	)

	// Gauges.
	WeeklyAvailableHours = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "weekly_available_hours",
			Help: "Most recently computed available hours for a user's week",
		},
		[]string{"user"},
	)

	SchedulerLastRunTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "scheduler_last_run_timestamp_seconds",
			Help: "Unix timestamp of the last scheduler job run",
		},
	)

	// Histograms.
	MeetingScoreDistribution = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "meeting_score_total",
			Help:    "Distribution of total meeting scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11), // 0 to 100
		},
	)

	SchedulerJobDurationSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "scheduler_job_duration_seconds",
			Help:    "Duration of scheduler jobs in seconds",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
	)
)

// RecordMeetingScored records a computed meeting score.
func RecordMeetingScored(totalScore int) {
	MeetingsScoredTotal.Inc()
	MeetingScoreDistribution.Observe(float64(totalScore))
}

// RecordPredictionComputed records a computed task prediction by risk level.
func RecordPredictionComputed(riskLevel string) {
	PredictionsComputedTotal.WithLabelValues(riskLevel).Inc()
}

// RecordChallengeCompleted records a completed weekly challenge.
func RecordChallengeCompleted(criteria string) {
	ChallengesCompletedTotal.WithLabelValues(criteria).Inc()
}

// SetWeeklyAvailableHours publishes the computed weekly budget for a user.
func SetWeeklyAvailableHours(user string, hours float64) {
	WeeklyAvailableHours.WithLabelValues(user).Set(hours)
}

// ObserveSchedulerJobDuration records how long a scheduler job took.
func ObserveSchedulerJobDuration(seconds float64) {
	SchedulerJobDurationSeconds.Observe(seconds)
}

// SetSchedulerLastRun marks the scheduler as having just run.
func SetSchedulerLastRun() {
	SchedulerLastRunTimestamp.Set(float64(time.Now().Unix()))
}
