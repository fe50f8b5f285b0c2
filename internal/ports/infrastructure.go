package ports

import (
	"context"
	"time"

	"github.com/auto-optimization/mootools/internal/domain"
)

// DatasetReader parses an external data source into the matrix plus
// run-boundary shape the core consumes. Implementations handle
// format-specific details; the core depends only on this contract.
type DatasetReader interface {
	// ReadFile parses the file at path into a dataset. Runs are
	// delimited the way the underlying format defines; the returned
	// dataset owns its buffer.
	ReadFile(path string) (*domain.Dataset, error)
}

// MetricsCollector defines the interface for collecting operational
// metrics. Implementations should integrate with observability platforms
// like Prometheus or custom monitoring solutions.
type MetricsCollector interface {
	// RecordLatency records the execution time of an operation.
	// The labels map provides additional context for the metric.
	RecordLatency(operation string, duration time.Duration, labels map[string]string)

	// RecordCounter increments a counter metric. This is useful for
	// tracking events like evaluations, errors, and cache activity.
	RecordCounter(metric string, value float64, labels map[string]string)

	// RecordGauge sets the current value of a gauge metric, such as the
	// number of points in the dataset being evaluated.
	RecordGauge(metric string, value float64, labels map[string]string)

	// RecordHistogram records a value in a histogram, such as the
	// distribution of indicator values across runs.
	RecordHistogram(metric string, value float64, labels map[string]string)
}

// ConfigLoader defines the interface for loading study configuration.
// Implementations could read from files, environment variables, or a
// combination of sources.
type ConfigLoader interface {
	// Load reads configuration from the underlying source into the
	// provided struct pointer.
	Load(ctx context.Context, config any) error
}
