package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/auto-optimization/mootools/internal/ports"
)

var _ ports.Indicator = (*TracedIndicator)(nil)

// TracedIndicator wraps an Indicator with OpenTelemetry tracing. Each
// evaluation becomes a span carrying the indicator name and the shape of
// the dataset, with errors recorded on the span.
type TracedIndicator struct {
	next ports.Indicator
}

// NewTracedIndicator wraps the given indicator with tracing.
func NewTracedIndicator(next ports.Indicator) *TracedIndicator {
	return &TracedIndicator{next: next}
}

// Name returns the wrapped indicator's identifier.
func (ti *TracedIndicator) Name() string { return ti.next.Name() }

// Evaluate delegates to the wrapped indicator inside a span.
func (ti *TracedIndicator) Evaluate(ctx context.Context, req ports.Request) (ports.Result, error) {
	tracer := otel.Tracer("indicator-engine")
	ctx, span := tracer.Start(ctx, "Indicator.Evaluate")
	defer span.End()

	span.SetAttributes(
		attribute.String("indicator.name", ti.next.Name()),
		attribute.Int("dataset.points", req.Data.NumPoints()),
		attribute.Int("dataset.runs", req.Data.NumRuns()),
		attribute.Int("dataset.objectives", req.Data.NumObjectives()),
	)

	result, err := ti.next.Evaluate(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return ports.Result{}, err
	}
	span.SetStatus(codes.Ok, "")
	return result, nil
}

// Validate delegates to the wrapped indicator.
func (ti *TracedIndicator) Validate() error { return ti.next.Validate() }
