package middleware

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auto-optimization/mootools/internal/domain"
	"github.com/auto-optimization/mootools/internal/ports"
)

func TestPrometheusMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	pm := NewPrometheusMetrics(reg)

	labels := map[string]string{"indicator": "hv", "status": "success"}
	pm.RecordLatency("indicator_evaluate", 25*time.Millisecond, labels)
	pm.RecordCounter("indicator_evaluations_total", 1, labels)
	pm.RecordCounter("indicator_evaluations_total", 1, labels)
	pm.RecordGauge("dataset_points", 128, map[string]string{"dataset": "algo1"})
	pm.RecordHistogram("indicator_value", 17.0, labels)

	count := testutil.ToFloat64(pm.evaluationCounter.WithLabelValues("hv", "success"))
	assert.Equal(t, 2.0, count)

	gauge := testutil.ToFloat64(pm.datasetGauges.WithLabelValues("algo1"))
	assert.Equal(t, 128.0, gauge)

	// Missing labels fall back to "unknown" rather than panicking.
	pm.RecordCounter("indicator_evaluations_total", 1, nil)
	unknown := testutil.ToFloat64(pm.evaluationCounter.WithLabelValues("unknown", "unknown"))
	assert.Equal(t, 1.0, unknown)
}

// stubIndicator is a minimal Indicator for middleware tests.
type stubIndicator struct {
	name string
	err  error
}

func (s *stubIndicator) Name() string { return s.name }

func (s *stubIndicator) Evaluate(ctx context.Context, req ports.Request) (ports.Result, error) {
	if s.err != nil {
		return ports.Result{}, s.err
	}
	return ports.Result{Indicator: s.name, Value: 1}, nil
}

func (s *stubIndicator) Validate() error { return nil }

func TestTracedIndicator(t *testing.T) {
	ds := domain.SingleRun(domain.MustMatrix([]float64{1, 2, 2, 1}, 2))
	req := ports.Request{Data: ds}

	t.Run("delegates on success", func(t *testing.T) {
		traced := NewTracedIndicator(&stubIndicator{name: "hv"})
		assert.Equal(t, "hv", traced.Name())
		require.NoError(t, traced.Validate())

		result, err := traced.Evaluate(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 1.0, result.Value)
	})

	t.Run("propagates errors", func(t *testing.T) {
		wantErr := errors.New("boom")
		traced := NewTracedIndicator(&stubIndicator{name: "hv", err: wantErr})

		_, err := traced.Evaluate(context.Background(), req)
		require.ErrorIs(t, err, wantErr)
	})
}
