package units

import (
	"context"
	"fmt"

	"github.com/auto-optimization/mootools/internal/indicator"
	"github.com/auto-optimization/mootools/internal/ports"
)

var _ ports.Indicator = (*EpsilonUnit)(nil)

// EpsilonVariant selects the additive or multiplicative epsilon indicator.
type EpsilonVariant string

// Supported epsilon variants.
const (
	// EpsilonAdditive shifts approximation points by a constant offset.
	EpsilonAdditive EpsilonVariant = "additive"
	// EpsilonMultiplicative scales approximation points by a constant
	// factor; requires strictly positive objective values.
	EpsilonMultiplicative EpsilonVariant = "multiplicative"
)

// EpsilonUnit scores an approximation set by the smallest uniform shift
// or scaling that makes it weakly dominate a reference set. The reference
// set is taken from the evaluation request.
type EpsilonUnit struct {
	name   string
	config EpsilonConfig
}

// EpsilonConfig defines the configuration parameters for the EpsilonUnit.
type EpsilonConfig struct {
	// Variant selects the additive or multiplicative form.
	Variant EpsilonVariant `yaml:"variant" json:"variant" validate:"required,oneof=additive multiplicative"`
}

// NewEpsilonUnit creates a new EpsilonUnit with the specified
// configuration. Returns an error if configuration validation fails.
func NewEpsilonUnit(name string, config EpsilonConfig) (*EpsilonUnit, error) {
	if name == "" {
		return nil, ErrEmptyUnitName
	}
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &EpsilonUnit{name: name, config: config}, nil
}

// CreateEpsilonUnit builds an EpsilonUnit from a loosely typed parameter
// map, typically decoded from a study configuration file.
func CreateEpsilonUnit(name string, params map[string]any) (*EpsilonUnit, error) {
	var config EpsilonConfig
	if err := decodeParams(params, &config); err != nil {
		return nil, err
	}
	return NewEpsilonUnit(name, config)
}

// Name returns the unique identifier for this unit instance.
func (eu *EpsilonUnit) Name() string { return eu.name }

// Evaluate computes the configured epsilon indicator between the
// request's pooled points and its reference set.
func (eu *EpsilonUnit) Evaluate(ctx context.Context, req ports.Request) (ports.Result, error) {
	if err := ctx.Err(); err != nil {
		return ports.Result{}, err
	}
	var (
		value float64
		err   error
	)
	switch eu.config.Variant {
	case EpsilonMultiplicative:
		value, err = indicator.EpsilonMultiplicative(req.Data.Points(), req.Reference, req.Maximise)
	default:
		value, err = indicator.EpsilonAdditive(req.Data.Points(), req.Reference, req.Maximise)
	}
	if err != nil {
		return ports.Result{}, fmt.Errorf("unit %s: %w", eu.name, err)
	}
	return ports.Result{Indicator: eu.name, Value: value}, nil
}

// Validate checks that the unit is properly configured for execution.
func (eu *EpsilonUnit) Validate() error {
	if eu.name == "" {
		return ErrEmptyUnitName
	}
	if err := validate.Struct(eu.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}
