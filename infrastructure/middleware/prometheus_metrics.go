// Package middleware provides cross-cutting concerns for the indicator
// engine: Prometheus metrics collection and OpenTelemetry tracing around
// indicator evaluation.
package middleware

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/auto-optimization/mootools/internal/ports"
)

var _ ports.MetricsCollector = (*PrometheusMetrics)(nil)

// PrometheusMetrics implements the MetricsCollector interface using
// Prometheus. It provides real-time monitoring of evaluation throughput,
// latency, and dataset sizes for the indicator engine.
type PrometheusMetrics struct {
	evaluationLatency *prometheus.HistogramVec
	evaluationCounter *prometheus.CounterVec
	datasetGauges     *prometheus.GaugeVec
	valueHistograms   *prometheus.HistogramVec
}

// NewPrometheusMetrics creates a PrometheusMetrics instance and registers
// all required metrics with the given registerer. Pass
// prometheus.DefaultRegisterer for production use or a fresh registry in
// tests.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	factory := promauto.With(reg)
	return &PrometheusMetrics{
		evaluationLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "indicator_evaluation_duration_seconds",
				Help:    "Execution time of indicator evaluations.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "indicator"},
		),
		evaluationCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "indicator_evaluations_total",
				Help: "Total number of indicator evaluations performed.",
			},
			[]string{"indicator", "status"},
		),
		datasetGauges: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "dataset_size_points",
				Help: "Number of points in the dataset most recently evaluated.",
			},
			[]string{"dataset"},
		),
		valueHistograms: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "indicator_value",
				Help:    "Distribution of indicator values across evaluations.",
				Buckets: prometheus.ExponentialBuckets(0.001, 10, 8),
			},
			[]string{"indicator"},
		),
	}
}

// RecordLatency implements the MetricsCollector interface by recording
// evaluation latency in a Prometheus histogram.
func (pm *PrometheusMetrics) RecordLatency(
	operation string, duration time.Duration, labels map[string]string,
) {
	pm.evaluationLatency.WithLabelValues(operation, labelOr(labels, "indicator")).
		Observe(duration.Seconds())
}

// RecordCounter implements the MetricsCollector interface by incrementing
// the evaluation counter.
func (pm *PrometheusMetrics) RecordCounter(
	metric string, value float64, labels map[string]string,
) {
	pm.evaluationCounter.WithLabelValues(
		labelOr(labels, "indicator"), labelOr(labels, "status"),
	).Add(value)
}

// RecordGauge implements the MetricsCollector interface by setting the
// dataset-size gauge.
func (pm *PrometheusMetrics) RecordGauge(
	metric string, value float64, labels map[string]string,
) {
	pm.datasetGauges.WithLabelValues(labelOr(labels, "dataset")).Set(value)
}

// RecordHistogram implements the MetricsCollector interface by recording
// an indicator value observation.
func (pm *PrometheusMetrics) RecordHistogram(
	metric string, value float64, labels map[string]string,
) {
	pm.valueHistograms.WithLabelValues(labelOr(labels, "indicator")).Observe(value)
}

func labelOr(labels map[string]string, key string) string {
	if v, ok := labels[key]; ok {
		return v
	}
	return "unknown"
}
