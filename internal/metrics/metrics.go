// Package metrics provides Prometheus metrics for the publishing service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "easyfindshub"

var (
	// LoginTotal counts login attempts by outcome.
	LoginTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_total",
			Help:      "Total number of login attempts",
		},
		[]string{"status"},
	)

	// PublishTotal counts publish transactions by outcome.
	PublishTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_total",
			Help:      "Total number of publish transactions",
		},
		[]string{"status"},
	)

	// PublishDuration measures publish transaction duration.
	PublishDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "publish_duration_seconds",
			Help:      "Duration of publish transactions in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"status"},
	)

	// UploadBytes observes the size of uploaded cover images.
	UploadBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upload_bytes",
			Help:      "Size of uploaded cover images in bytes",
			Buckets:   prometheus.ExponentialBuckets(16*1024, 4, 7),
		},
	)

	// ValidationFailuresTotal counts failed submits by field.
	ValidationFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_failures_total",
			Help:      "Total number of field rule violations at submit",
		},
		[]string{"field", "rule"},
	)

	// ActiveSessions tracks sessions currently held in memory.
	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Number of live admin sessions",
		},
	)
)

// Publish outcome labels.
const (
	StatusSuccess       = "success"
	StatusUploadFailed  = "upload_failed"
	StatusPersistFailed = "persist_failed"
	StatusRejected      = "rejected"
)

// RecordPublish records a publish transaction.
func RecordPublish(status string, duration float64) {
	PublishTotal.WithLabelValues(status).Inc()
	PublishDuration.WithLabelValues(status).Observe(duration)
}

// RecordLogin records a login attempt.
func RecordLogin(status string) {
	LoginTotal.WithLabelValues(status).Inc()
}

// RecordViolation records one failed field rule.
func RecordViolation(field, rule string) {
	ValidationFailuresTotal.WithLabelValues(field, rule).Inc()
}
