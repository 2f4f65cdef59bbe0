package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "tpms"

// Ingestion outcomes used as the "outcome" label of ReadingsIngested.
const (
	OutcomeStored   = "stored"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// Metrics holds the Prometheus collectors for reading ingestion and
// notification emission.
type Metrics struct {
	ReadingsIngested    *prometheus.CounterVec // labels: outcome={stored,rejected,failed}
	AlertTransitions    *prometheus.CounterVec // labels: new_alert_type
	NotificationsFailed prometheus.Counter
	IngestDuration      prometheus.Histogram
}

func newMetrics() *Metrics {
	return &Metrics{
		ReadingsIngested: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "readings_ingested_total",
			Help:      "Pressure readings submitted, by outcome.",
		}, []string{"outcome"}),
		AlertTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alert_transitions_total",
			Help:      "Tire alert type transitions, by the new alert type.",
		}, []string{"new_alert_type"}),
		NotificationsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_failed_total",
			Help:      "Transitions whose notification could not be stored.",
		}),
		IngestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "reading_ingest_duration_seconds",
			Help:      "Duration of a complete reading ingestion, notification included.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.ReadingsIngested,
		m.AlertTransitions,
		m.NotificationsFailed,
		m.IngestDuration,
	)
	return m
}

// NewMetricsForTesting creates unregistered metrics so tests can build as many
// as they need without "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func (m *Metrics) ObserveReading(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.ReadingsIngested.WithLabelValues(outcome).Inc()
	m.IngestDuration.Observe(seconds)
}

func (m *Metrics) ObserveTransition(newAlertType string) {
	if m == nil {
		return
	}
	m.AlertTransitions.WithLabelValues(newAlertType).Inc()
}

func (m *Metrics) ObserveNotificationFailure() {
	if m == nil {
		return
	}
	m.NotificationsFailed.Inc()
}
