package units

import (
	"context"
	"fmt"

	"github.com/auto-optimization/mootools/internal/ports"
	"github.com/auto-optimization/mootools/internal/whv"
)

var _ ports.Indicator = (*WeightedHVUnit)(nil)

// RegionConfig is one weighted rectangle of a WeightedHVUnit
// configuration.
type RegionConfig struct {
	// Lower is the rectangle corner closer to the ideal point.
	Lower []float64 `yaml:"lower" json:"lower" validate:"required,len=2"`
	// Upper is the rectangle corner closer to the reference point.
	Upper []float64 `yaml:"upper" json:"upper" validate:"required,len=2"`
	// Weight scales the dominated area inside the rectangle.
	Weight float64 `yaml:"weight" json:"weight"`
}

// WeightedHVUnit scores a two-objective approximation set by its
// rectangle-weighted hypervolume: dominated area counts with the weight
// of the region it falls in.
type WeightedHVUnit struct {
	name   string
	config WeightedHVConfig
}

// WeightedHVConfig defines the configuration parameters for the
// WeightedHVUnit.
type WeightedHVConfig struct {
	// Regions are the weighted rectangles; at least one is required.
	Regions []RegionConfig `yaml:"regions" json:"regions" validate:"required,min=1,dive"`
}

// NewWeightedHVUnit creates a new WeightedHVUnit with the specified
// configuration. Returns an error if configuration validation fails.
func NewWeightedHVUnit(name string, config WeightedHVConfig) (*WeightedHVUnit, error) {
	if name == "" {
		return nil, ErrEmptyUnitName
	}
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &WeightedHVUnit{name: name, config: config}, nil
}

// CreateWeightedHVUnit builds a WeightedHVUnit from a loosely typed
// parameter map, typically decoded from a study configuration file.
func CreateWeightedHVUnit(name string, params map[string]any) (*WeightedHVUnit, error) {
	var config WeightedHVConfig
	if err := decodeParams(params, &config); err != nil {
		return nil, err
	}
	return NewWeightedHVUnit(name, config)
}

// Name returns the unique identifier for this unit instance.
func (wu *WeightedHVUnit) Name() string { return wu.name }

// Evaluate computes the rectangle-weighted hypervolume of the request's
// pooled points.
func (wu *WeightedHVUnit) Evaluate(ctx context.Context, req ports.Request) (ports.Result, error) {
	if err := ctx.Err(); err != nil {
		return ports.Result{}, err
	}
	regions := make([]whv.Region, len(wu.config.Regions))
	for i, rc := range wu.config.Regions {
		regions[i] = whv.Region{
			Lower:  [2]float64{rc.Lower[0], rc.Lower[1]},
			Upper:  [2]float64{rc.Upper[0], rc.Upper[1]},
			Weight: rc.Weight,
		}
	}
	value, err := whv.RectWeighted2D(req.Data.Points(), regions)
	if err != nil {
		return ports.Result{}, fmt.Errorf("unit %s: %w", wu.name, err)
	}
	return ports.Result{Indicator: wu.name, Value: value}, nil
}

// Validate checks that the unit is properly configured for execution.
func (wu *WeightedHVUnit) Validate() error {
	if wu.name == "" {
		return ErrEmptyUnitName
	}
	if err := validate.Struct(wu.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}
