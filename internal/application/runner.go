package application

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/auto-optimization/mootools/internal/domain"
	"github.com/auto-optimization/mootools/internal/ports"
)

// StudyResult is one (dataset, indicator) cell of a study's output.
type StudyResult struct {
	// Dataset is the name of the dataset that was scored.
	Dataset string
	// Result carries the indicator's output, labelled with the
	// indicator id.
	Result ports.Result
	// Elapsed is the wall-clock time of the evaluation.
	Elapsed time.Duration
}

// Runner executes studies: it resolves the configured indicators through
// the registry, loads every dataset, and evaluates the full dataset x
// indicator grid with bounded parallelism. Results are returned in
// configuration order regardless of execution order.
type Runner struct {
	registry ports.IndicatorRegistry
	reader   ports.DatasetReader
	metrics  ports.MetricsCollector
}

// NewRunner creates a study runner. The metrics collector may be nil, in
// which case no metrics are recorded.
func NewRunner(registry ports.IndicatorRegistry, reader ports.DatasetReader, metrics ports.MetricsCollector) *Runner {
	return &Runner{registry: registry, reader: reader, metrics: metrics}
}

// Run executes the study described by cfg. The first evaluation error
// cancels the remaining work and is returned; no partial results
// accompany an error.
func (r *Runner) Run(ctx context.Context, cfg *StudyConfig) ([]StudyResult, error) {
	indicators, err := r.buildIndicators(cfg)
	if err != nil {
		return nil, err
	}

	base := ports.Request{
		ReferencePoint: cfg.Evaluation.ReferencePoint,
		IdealPoint:     cfg.Evaluation.IdealPoint,
		Maximise:       domain.Orientation(cfg.Evaluation.Maximise),
	}
	if cfg.Evaluation.ReferenceSetPath != "" {
		refSet, err := r.reader.ReadFile(cfg.Evaluation.ReferenceSetPath)
		if err != nil {
			return nil, fmt.Errorf("loading reference set: %w", err)
		}
		base.Reference = refSet.Points()
	}

	datasets := make([]*domain.Dataset, len(cfg.Datasets))
	for i, dc := range cfg.Datasets {
		ds, err := r.reader.ReadFile(dc.Path)
		if err != nil {
			return nil, fmt.Errorf("loading dataset %q: %w", dc.Name, err)
		}
		datasets[i] = ds
	}

	results := make([]StudyResult, len(cfg.Datasets)*len(indicators))
	group, ctx := errgroup.WithContext(ctx)
	if cfg.Parallelism > 0 {
		group.SetLimit(cfg.Parallelism)
	} else {
		group.SetLimit(1)
	}

	for i := range cfg.Datasets {
		for j := range indicators {
			group.Go(func() error {
				req := base
				req.Data = datasets[i]
				start := time.Now()
				result, err := indicators[j].Evaluate(ctx, req)
				elapsed := time.Since(start)
				r.recordEvaluation(cfg.Datasets[i].Name, indicators[j].Name(), datasets[i], elapsed, err)
				if err != nil {
					return fmt.Errorf("dataset %q: %w", cfg.Datasets[i].Name, err)
				}
				results[i*len(indicators)+j] = StudyResult{
					Dataset: cfg.Datasets[i].Name,
					Result:  result,
					Elapsed: elapsed,
				}
				return nil
			})
		}
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// buildIndicators instantiates and validates every configured indicator.
func (r *Runner) buildIndicators(cfg *StudyConfig) ([]ports.Indicator, error) {
	indicators := make([]ports.Indicator, len(cfg.Indicators))
	for i, ic := range cfg.Indicators {
		params, err := decodeIndicatorParams(ic.Parameters)
		if err != nil {
			return nil, fmt.Errorf("indicator %q: %w", ic.ID, err)
		}
		indicator, err := r.registry.Create(ic.Type, ic.ID, params)
		if err != nil {
			return nil, fmt.Errorf("indicator %q: %w", ic.ID, err)
		}
		if err := indicator.Validate(); err != nil {
			return nil, fmt.Errorf("indicator %q: %w", ic.ID, err)
		}
		indicators[i] = indicator
	}
	return indicators, nil
}

func (r *Runner) recordEvaluation(dataset, indicator string, ds *domain.Dataset, elapsed time.Duration, err error) {
	if r.metrics == nil {
		return
	}
	labels := map[string]string{
		"dataset":   dataset,
		"indicator": indicator,
		"status":    statusLabel(err),
	}
	r.metrics.RecordLatency("indicator_evaluate", elapsed, labels)
	r.metrics.RecordCounter("indicator_evaluations_total", 1, labels)
	r.metrics.RecordGauge("dataset_points", float64(ds.NumPoints()), map[string]string{
		"dataset": dataset,
		"runs":    strconv.Itoa(ds.NumRuns()),
	})
}

func statusLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
