package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across the indicator engines. Typed error kinds
// wrap these so callers can match on either the kind or the condition.
var (
	// ErrEmptyFront indicates an operation that requires at least one point
	// received an empty point set.
	ErrEmptyFront = errors.New("empty point set where a front is required")

	// ErrReferenceNotDominated indicates a reference point that is strictly
	// better than some input point in at least one objective, so it cannot
	// bound the dominated region.
	ErrReferenceNotDominated = errors.New("reference point does not weakly dominate every input point")
)

// DomainError reports input that violates a mathematical precondition of an
// indicator: a non-bounding reference point, mixed dimensionality, malformed
// weighted regions, values outside the domain of the requested metric.
type DomainError struct {
	// Precondition names the violated requirement in plain language.
	Precondition string
	// Err carries the detail, often a sentinel for errors.Is matching.
	Err error
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	return fmt.Sprintf("domain error: %s: %v", e.Precondition, e.Err)
}

// Unwrap returns the underlying error.
func (e *DomainError) Unwrap() error { return e.Err }

// NewDomainError creates a DomainError for the named precondition.
func NewDomainError(precondition string, err error) *DomainError {
	return &DomainError{Precondition: precondition, Err: err}
}

// RangeError reports a parameter outside its permitted range, such as a
// percentile outside [0,100] or a Hausdorff exponent below one.
type RangeError struct {
	// Precondition names the violated requirement in plain language.
	Precondition string
	// Err carries the detail.
	Err error
}

// Error implements the error interface.
func (e *RangeError) Error() string {
	return fmt.Sprintf("range error: %s: %v", e.Precondition, e.Err)
}

// Unwrap returns the underlying error.
func (e *RangeError) Unwrap() error { return e.Err }

// NewRangeError creates a RangeError for the named precondition.
func NewRangeError(precondition string, err error) *RangeError {
	return &RangeError{Precondition: precondition, Err: err}
}

// ConfigError reports a structurally invalid request: unknown sampling
// distribution, non-positive sample counts, run boundaries that do not
// match the matrix, or unsupported dimensionality for an operation.
type ConfigError struct {
	// Precondition names the violated requirement in plain language.
	Precondition string
	// Err carries the detail.
	Err error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: %s: %v", e.Precondition, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error { return e.Err }

// NewConfigError creates a ConfigError for the named precondition.
func NewConfigError(precondition string, err error) *ConfigError {
	return &ConfigError{Precondition: precondition, Err: err}
}
