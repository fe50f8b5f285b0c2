// Package ports defines the core interfaces that form the contract between
// the domain/application layers and the infrastructure layer.
// These interfaces enable dependency inversion and make the system testable.
package ports

import (
	"context"

	"github.com/auto-optimization/mootools/internal/domain"
)

// Request carries the inputs of one indicator evaluation. Which fields are
// required depends on the indicator: hypervolume-family indicators need a
// reference point, distance-family indicators a reference set.
type Request struct {
	// Data holds the approximation set(s) under evaluation.
	Data *domain.Dataset

	// Reference is the reference point set for distance and epsilon
	// indicators. Empty when the indicator does not use one.
	Reference domain.Matrix

	// ReferencePoint bounds the dominated region for hypervolume-family
	// indicators. Nil when the indicator does not use one.
	ReferencePoint []float64

	// IdealPoint bounds the sampling box of estimators that need one.
	// Nil otherwise.
	IdealPoint []float64

	// Maximise flags which objectives are maximised. Nil means all
	// objectives are minimised.
	Maximise domain.Orientation
}

// Result is the outcome of one indicator evaluation. Scalar indicators
// populate Value; per-point indicators populate Values aligned to the
// input order; geometric indicators populate Points.
type Result struct {
	// Indicator is the name of the indicator that produced this result.
	Indicator string

	// Value is the scalar result, when the indicator produces one.
	Value float64

	// Values is the per-point vector result, when the indicator produces
	// one. Aligned to the input point order.
	Values []float64

	// Points is the geometric result, such as an attainment surface.
	Points domain.Matrix
}

// Indicator is the fundamental building block of an evaluation study.
// Each Indicator scores Pareto-front approximations in one specific way.
// Indicators must be stateless and safe for concurrent use: the same
// inputs always produce the same Result regardless of execution order.
type Indicator interface {
	// Name returns a unique identifier for this indicator instance.
	// The name is used for logging, result labelling, and configuration.
	Name() string

	// Evaluate scores the request's data. It must not modify the request
	// or retain references to it. Precondition violations are reported
	// as typed errors, never as partial results.
	//
	// The context parameter allows cancellation of long-running
	// evaluations such as Monte-Carlo estimation.
	Evaluate(ctx context.Context, req Request) (Result, error)

	// Validate checks that the indicator is properly configured and
	// ready for execution. It is called during study construction,
	// before any dataset is read. Return nil if validation passes, or
	// an error describing what is invalid.
	Validate() error
}

// IndicatorFactory creates a configured Indicator from its identifier and
// a parameter map, typically decoded from a study configuration file.
type IndicatorFactory func(id string, params map[string]any) (Indicator, error)

// IndicatorRegistry resolves indicator type names to factories, allowing
// studies to instantiate indicators by configuration alone.
type IndicatorRegistry interface {
	// Register adds a factory for the given indicator type. Registering
	// a type twice is an error.
	Register(indicatorType string, factory IndicatorFactory) error

	// Create instantiates an indicator of the given type. Unknown types
	// are an error.
	Create(indicatorType, id string, params map[string]any) (Indicator, error)

	// Types lists the registered indicator types in sorted order.
	Types() []string
}
