package units

import (
	"context"
	"fmt"

	"github.com/auto-optimization/mootools/internal/eaf"
	"github.com/auto-optimization/mootools/internal/ports"
)

var _ ports.Indicator = (*AttainmentUnit)(nil)

// AttainmentUnit extracts one empirical attainment surface from a
// multi-run dataset: the boundary attained by at least the fraction of
// runs the configured percentile selects.
type AttainmentUnit struct {
	name   string
	config AttainmentConfig
}

// AttainmentConfig defines the configuration parameters for the
// AttainmentUnit.
type AttainmentConfig struct {
	// Percentile selects the attainment level in [0, 100]; 50 is the
	// median attainment surface, 100 the region attained by every run.
	Percentile float64 `yaml:"percentile" json:"percentile" validate:"min=0,max=100"`
}

// NewAttainmentUnit creates a new AttainmentUnit with the specified
// configuration. Returns an error if configuration validation fails.
func NewAttainmentUnit(name string, config AttainmentConfig) (*AttainmentUnit, error) {
	if name == "" {
		return nil, ErrEmptyUnitName
	}
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &AttainmentUnit{name: name, config: config}, nil
}

// CreateAttainmentUnit builds an AttainmentUnit from a loosely typed
// parameter map, typically decoded from a study configuration file.
func CreateAttainmentUnit(name string, params map[string]any) (*AttainmentUnit, error) {
	var config AttainmentConfig
	if err := decodeParams(params, &config); err != nil {
		return nil, err
	}
	return NewAttainmentUnit(name, config)
}

// Name returns the unique identifier for this unit instance.
func (au *AttainmentUnit) Name() string { return au.name }

// Evaluate computes the attainment surface at the configured percentile.
// The surface points are returned as the geometric result; the scalar
// result reports the attainment level the percentile mapped to.
func (au *AttainmentUnit) Evaluate(ctx context.Context, req ports.Request) (ports.Result, error) {
	if err := ctx.Err(); err != nil {
		return ports.Result{}, err
	}
	surfaces, err := eaf.Compute(req.Data, []float64{au.config.Percentile})
	if err != nil {
		return ports.Result{}, fmt.Errorf("unit %s: %w", au.name, err)
	}
	surface := surfaces[0]
	return ports.Result{
		Indicator: au.name,
		Value:     float64(surface.Level),
		Points:    surface.Points,
	}, nil
}

// Validate checks that the unit is properly configured for execution.
func (au *AttainmentUnit) Validate() error {
	if au.name == "" {
		return ErrEmptyUnitName
	}
	if err := validate.Struct(au.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}
