package units

import (
	"context"
	"fmt"

	"github.com/auto-optimization/mootools/internal/hypervolume"
	"github.com/auto-optimization/mootools/internal/ports"
)

var _ ports.Indicator = (*HypervolumeUnit)(nil)

// HypervolumeUnit scores an approximation set by the volume it dominates
// up to a configured reference point. With Contributions enabled it
// reports the per-point exclusive volumes instead of the total.
// The unit is stateless and thread-safe for concurrent execution.
type HypervolumeUnit struct {
	// name is the unique identifier for this unit instance.
	name string
	// config contains the validated configuration parameters.
	config HypervolumeConfig
}

// HypervolumeConfig defines the configuration parameters for the
// HypervolumeUnit. All fields are validated during unit creation and
// parameter decoding.
type HypervolumeConfig struct {
	// Reference is the reference point bounding the dominated region.
	// It must weakly dominate no input point: every input point must be
	// at least as good in every objective.
	Reference []float64 `yaml:"reference" json:"reference" validate:"required,min=2"`

	// Contributions switches the unit from the total volume to the
	// per-point exclusive contributions.
	Contributions bool `yaml:"contributions" json:"contributions"`
}

// NewHypervolumeUnit creates a new HypervolumeUnit with the specified
// configuration. Returns an error if configuration validation fails.
func NewHypervolumeUnit(name string, config HypervolumeConfig) (*HypervolumeUnit, error) {
	if name == "" {
		return nil, ErrEmptyUnitName
	}
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &HypervolumeUnit{name: name, config: config}, nil
}

// CreateHypervolumeUnit builds a HypervolumeUnit from a loosely typed
// parameter map, typically decoded from a study configuration file.
func CreateHypervolumeUnit(name string, params map[string]any) (*HypervolumeUnit, error) {
	var config HypervolumeConfig
	if err := decodeParams(params, &config); err != nil {
		return nil, err
	}
	return NewHypervolumeUnit(name, config)
}

// Name returns the unique identifier for this unit instance.
func (hu *HypervolumeUnit) Name() string { return hu.name }

// Evaluate computes the hypervolume of the request's pooled points, or
// their exclusive contributions when configured. The request's
// orientation flags are honoured; the configured reference point is
// interpreted under the same orientation.
func (hu *HypervolumeUnit) Evaluate(ctx context.Context, req ports.Request) (ports.Result, error) {
	if err := ctx.Err(); err != nil {
		return ports.Result{}, err
	}
	points := req.Data.Points()
	if hu.config.Contributions {
		contribs, err := hypervolume.Contributions(points, hu.config.Reference, req.Maximise)
		if err != nil {
			return ports.Result{}, fmt.Errorf("unit %s: %w", hu.name, err)
		}
		return ports.Result{Indicator: hu.name, Values: contribs}, nil
	}
	value, err := hypervolume.Compute(points, hu.config.Reference, req.Maximise)
	if err != nil {
		return ports.Result{}, fmt.Errorf("unit %s: %w", hu.name, err)
	}
	return ports.Result{Indicator: hu.name, Value: value}, nil
}

// Validate checks that the unit is properly configured for execution.
func (hu *HypervolumeUnit) Validate() error {
	if hu.name == "" {
		return ErrEmptyUnitName
	}
	if err := validate.Struct(hu.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}
