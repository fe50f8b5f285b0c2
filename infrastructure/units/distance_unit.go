package units

import (
	"context"
	"fmt"
	"math"

	"github.com/auto-optimization/mootools/internal/indicator"
	"github.com/auto-optimization/mootools/internal/ports"
)

var _ ports.Indicator = (*DistanceUnit)(nil)

// DistanceMetric selects which reference-distance indicator a
// DistanceUnit computes.
type DistanceMetric string

// Supported distance metrics.
const (
	// MetricIGD is the inverted generational distance.
	MetricIGD DistanceMetric = "igd"
	// MetricIGDPlus is the dominance-aware IGD variant.
	MetricIGDPlus DistanceMetric = "igd_plus"
	// MetricHausdorff is the averaged Hausdorff distance, parameterized
	// by the P exponent.
	MetricHausdorff DistanceMetric = "hausdorff"
)

// DistanceUnit scores an approximation set by its distance to a reference
// set taken from the evaluation request.
type DistanceUnit struct {
	name   string
	config DistanceConfig
}

// DistanceConfig defines the configuration parameters for the
// DistanceUnit.
type DistanceConfig struct {
	// Metric selects the distance indicator.
	Metric DistanceMetric `yaml:"metric" json:"metric" validate:"required,oneof=igd igd_plus hausdorff"`

	// P is the norm exponent of the averaged Hausdorff distance; zero
	// selects 1. Use "inf" via Infinite to request the classical
	// Hausdorff distance. Ignored by the other metrics.
	P float64 `yaml:"p" json:"p" validate:"omitempty,min=1"`

	// Infinite requests the p=inf special case of the averaged
	// Hausdorff distance.
	Infinite bool `yaml:"infinite" json:"infinite"`
}

// NewDistanceUnit creates a new DistanceUnit with the specified
// configuration. Returns an error if configuration validation fails.
func NewDistanceUnit(name string, config DistanceConfig) (*DistanceUnit, error) {
	if name == "" {
		return nil, ErrEmptyUnitName
	}
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &DistanceUnit{name: name, config: config}, nil
}

// CreateDistanceUnit builds a DistanceUnit from a loosely typed parameter
// map, typically decoded from a study configuration file.
func CreateDistanceUnit(name string, params map[string]any) (*DistanceUnit, error) {
	var config DistanceConfig
	if err := decodeParams(params, &config); err != nil {
		return nil, err
	}
	return NewDistanceUnit(name, config)
}

// Name returns the unique identifier for this unit instance.
func (du *DistanceUnit) Name() string { return du.name }

// Evaluate computes the configured distance indicator between the
// request's pooled points and its reference set.
func (du *DistanceUnit) Evaluate(ctx context.Context, req ports.Request) (ports.Result, error) {
	if err := ctx.Err(); err != nil {
		return ports.Result{}, err
	}
	var (
		value float64
		err   error
	)
	switch du.config.Metric {
	case MetricIGDPlus:
		value, err = indicator.IGDPlus(req.Data.Points(), req.Reference, req.Maximise)
	case MetricHausdorff:
		p := du.config.P
		if du.config.Infinite {
			p = math.Inf(1)
		} else if p == 0 {
			p = 1
		}
		value, err = indicator.AvgHausdorff(req.Data.Points(), req.Reference, req.Maximise, p)
	default:
		value, err = indicator.IGD(req.Data.Points(), req.Reference, req.Maximise)
	}
	if err != nil {
		return ports.Result{}, fmt.Errorf("unit %s: %w", du.name, err)
	}
	return ports.Result{Indicator: du.name, Value: value}, nil
}

// Validate checks that the unit is properly configured for execution.
func (du *DistanceUnit) Validate() error {
	if du.name == "" {
		return ErrEmptyUnitName
	}
	if err := validate.Struct(du.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}
