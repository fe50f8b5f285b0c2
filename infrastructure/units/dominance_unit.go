package units

import (
	"context"
	"fmt"

	"github.com/auto-optimization/mootools/internal/dominance"
	"github.com/auto-optimization/mootools/internal/ports"
)

var _ ports.Indicator = (*DominanceUnit)(nil)

// DominanceMode selects what a DominanceUnit reports about each point.
type DominanceMode string

// Supported dominance modes.
const (
	// ModeMask reports 1 for nondominated points and 0 otherwise.
	ModeMask DominanceMode = "mask"
	// ModeRanks reports each point's Pareto rank, 0 for the first front.
	ModeRanks DominanceMode = "ranks"
)

// DominanceUnit reports per-point dominance information for the pooled
// points of a dataset: a nondominated mask or Pareto ranks.
type DominanceUnit struct {
	name   string
	config DominanceConfig
}

// DominanceConfig defines the configuration parameters for the
// DominanceUnit.
type DominanceConfig struct {
	// Mode selects the mask or rank output.
	Mode DominanceMode `yaml:"mode" json:"mode" validate:"required,oneof=mask ranks"`

	// KeepWeakly retains points tied exactly with a retained point.
	// Only meaningful in mask mode; ranks always keep ties together.
	KeepWeakly bool `yaml:"keep_weakly" json:"keep_weakly"`
}

// NewDominanceUnit creates a new DominanceUnit with the specified
// configuration. Returns an error if configuration validation fails.
func NewDominanceUnit(name string, config DominanceConfig) (*DominanceUnit, error) {
	if name == "" {
		return nil, ErrEmptyUnitName
	}
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &DominanceUnit{name: name, config: config}, nil
}

// CreateDominanceUnit builds a DominanceUnit from a loosely typed
// parameter map, typically decoded from a study configuration file.
func CreateDominanceUnit(name string, params map[string]any) (*DominanceUnit, error) {
	var config DominanceConfig
	if err := decodeParams(params, &config); err != nil {
		return nil, err
	}
	return NewDominanceUnit(name, config)
}

// Name returns the unique identifier for this unit instance.
func (du *DominanceUnit) Name() string { return du.name }

// Evaluate reports the configured per-point dominance information,
// aligned to the input point order.
func (du *DominanceUnit) Evaluate(ctx context.Context, req ports.Request) (ports.Result, error) {
	if err := ctx.Err(); err != nil {
		return ports.Result{}, err
	}
	points := req.Data.Points()
	values := make([]float64, points.Rows())
	switch du.config.Mode {
	case ModeRanks:
		ranks, err := dominance.Ranks(points, req.Maximise)
		if err != nil {
			return ports.Result{}, fmt.Errorf("unit %s: %w", du.name, err)
		}
		for i, r := range ranks {
			values[i] = float64(r)
		}
	default:
		mask, err := dominance.IsNondominated(points, req.Maximise, du.config.KeepWeakly)
		if err != nil {
			return ports.Result{}, fmt.Errorf("unit %s: %w", du.name, err)
		}
		for i, keep := range mask {
			if keep {
				values[i] = 1
			}
		}
	}
	return ports.Result{Indicator: du.name, Values: values}, nil
}

// Validate checks that the unit is properly configured for execution.
func (du *DominanceUnit) Validate() error {
	if du.name == "" {
		return ErrEmptyUnitName
	}
	if err := validate.Struct(du.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}
