package units

import (
	"context"
	"fmt"

	"github.com/auto-optimization/mootools/internal/ports"
	"github.com/auto-optimization/mootools/internal/whv"
)

var _ ports.Indicator = (*HypeUnit)(nil)

// HypeUnit estimates a weighted hypervolume by Monte-Carlo sampling.
// The ideal and reference points spanning the sampling box come from the
// evaluation request; the sampling scheme is fixed by configuration so an
// estimate is reproducible across runs of the same study.
type HypeUnit struct {
	name   string
	config HypeUnitConfig
}

// HypeUnitConfig defines the configuration parameters for the HypeUnit.
type HypeUnitConfig struct {
	// Samples is the number of Monte-Carlo draws.
	Samples int `yaml:"samples" json:"samples" validate:"required,min=1"`

	// Distribution selects the sample-weighting scheme.
	Distribution string `yaml:"distribution" json:"distribution" validate:"required,oneof=uniform exponential point"`

	// Seed fixes the sample stream for reproducible estimates.
	Seed uint64 `yaml:"seed" json:"seed"`

	// Mu parameterizes the non-uniform schemes: a single mean for
	// exponential weighting, a full point for point weighting.
	Mu []float64 `yaml:"mu" json:"mu"`
}

// NewHypeUnit creates a new HypeUnit with the specified configuration.
// Returns an error if configuration validation fails.
func NewHypeUnit(name string, config HypeUnitConfig) (*HypeUnit, error) {
	if name == "" {
		return nil, ErrEmptyUnitName
	}
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &HypeUnit{name: name, config: config}, nil
}

// CreateHypeUnit builds a HypeUnit from a loosely typed parameter map,
// typically decoded from a study configuration file.
func CreateHypeUnit(name string, params map[string]any) (*HypeUnit, error) {
	var config HypeUnitConfig
	if err := decodeParams(params, &config); err != nil {
		return nil, err
	}
	return NewHypeUnit(name, config)
}

// Name returns the unique identifier for this unit instance.
func (hu *HypeUnit) Name() string { return hu.name }

// Evaluate estimates the weighted hypervolume of the request's pooled
// points over the box spanned by the request's ideal and reference
// points. The result is a statistical estimate, not an exact value.
func (hu *HypeUnit) Evaluate(ctx context.Context, req ports.Request) (ports.Result, error) {
	if err := ctx.Err(); err != nil {
		return ports.Result{}, err
	}
	value, err := whv.Hype(req.Data.Points(), req.IdealPoint, req.ReferencePoint, whv.HypeConfig{
		Samples: hu.config.Samples,
		Dist:    whv.Distribution(hu.config.Distribution),
		Seed:    hu.config.Seed,
		Mu:      hu.config.Mu,
	})
	if err != nil {
		return ports.Result{}, fmt.Errorf("unit %s: %w", hu.name, err)
	}
	return ports.Result{Indicator: hu.name, Value: value}, nil
}

// Validate checks that the unit is properly configured for execution.
func (hu *HypeUnit) Validate() error {
	if hu.name == "" {
		return ErrEmptyUnitName
	}
	if err := validate.Struct(hu.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}
