package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors of a pipeline.
//
// Metrics:
//   - shelflife_aggregation_passes_total{result} - passes run, by outcome
//   - shelflife_aggregation_duration_seconds - time spent aggregating
//   - shelflife_render_skipped_total - passes the render gate dropped
//   - shelflife_malformed_dates_total - items whose expiry did not parse
type Metrics struct {
	PassesTotal         *prometheus.CounterVec
	PassDuration        prometheus.Histogram
	RenderSkippedTotal  prometheus.Counter
	MalformedDatesTotal prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// leaves them unregistered, which keeps them usable but invisible.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		PassesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shelflife_aggregation_passes_total",
				Help: "Total number of aggregation passes",
			},
			[]string{"result"}, // "presented", "skipped", "failed"
		),
		PassDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "shelflife_aggregation_duration_seconds",
				Help:    "Duration of aggregation passes in seconds",
				Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12), // 100us to ~200ms
			},
		),
		RenderSkippedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "shelflife_render_skipped_total",
				Help: "Total number of passes whose result matched the last render",
			},
		),
		MalformedDatesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "shelflife_malformed_dates_total",
				Help: "Total number of items seen with an unparseable expiry date",
			},
		),
	}
}

// RecordPass records one aggregation pass.
func (m *Metrics) RecordPass(result string, durationSeconds float64) {
	m.PassesTotal.WithLabelValues(result).Inc()
	m.PassDuration.Observe(durationSeconds)
}

// RecordSkip records a pass the render gate dropped.
func (m *Metrics) RecordSkip() {
	m.RenderSkippedTotal.Inc()
}

// RecordMalformed records n items with malformed dates.
func (m *Metrics) RecordMalformed(n int) {
	if n > 0 {
		m.MalformedDatesTotal.Add(float64(n))
	}
}
