// Package application wires configured indicators and datasets into
// executable studies: it parses study configuration, resolves indicator
// factories through the registry, and fans evaluations out across a
// bounded worker pool.
package application

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// StudyConfig defines the complete specification of an evaluation study
// and serves as the primary configuration entry point for the system.
// A study scores every configured dataset with every configured
// indicator.
type StudyConfig struct {
	// Version specifies the configuration schema version using semantic
	// versioning to ensure compatibility across updates.
	Version string `yaml:"version" validate:"required,semver"`

	// Metadata contains descriptive information about the study.
	Metadata Metadata `yaml:"metadata" validate:"required"`

	// Datasets lists the approximation-set files to score.
	Datasets []DatasetConfig `yaml:"datasets" validate:"required,min=1,dive"`

	// Indicators lists the indicator instances to apply to every
	// dataset, each with its own type-specific parameters.
	Indicators []IndicatorConfig `yaml:"indicators" validate:"required,min=1,dive"`

	// Evaluation holds the shared evaluation inputs: reference points,
	// ideal point, reference set, and objective orientation.
	Evaluation EvaluationConfig `yaml:"evaluation"`

	// Parallelism bounds the number of concurrent evaluations; zero
	// selects sequential execution.
	Parallelism int `yaml:"parallelism" validate:"min=0,max=256"`
}

// Metadata provides descriptive information about a study to support
// organization and discovery.
type Metadata struct {
	// Name is the human-readable identifier for this study.
	Name string `yaml:"name" validate:"required,min=1,max=255"`

	// Description provides a detailed explanation of the study's
	// purpose.
	Description string `yaml:"description" validate:"max=1000"`

	// Tags are categorical labels for filtering and grouping studies.
	Tags []string `yaml:"tags" validate:"max=20,dive,min=1,max=50"`
}

// DatasetConfig identifies one approximation-set file within a study.
type DatasetConfig struct {
	// Name labels the dataset in results and metrics.
	Name string `yaml:"name" validate:"required,min=1,max=100"`

	// Path locates the dataset file to parse.
	Path string `yaml:"path" validate:"required"`
}

// IndicatorConfig defines one indicator instance within a study.
type IndicatorConfig struct {
	// ID is the unique identifier of this instance within the study.
	ID string `yaml:"id" validate:"required,alphanum,min=1,max=100"`

	// Type selects the indicator implementation to instantiate.
	Type string `yaml:"type" validate:"required,oneof=hypervolume epsilon distance dominance attainment weighted_hv hype"`

	// Parameters contains type-specific configuration as flexible YAML
	// validated by the indicator factory.
	Parameters yaml.Node `yaml:"parameters"`
}

// EvaluationConfig carries the shared inputs every evaluation request is
// built from.
type EvaluationConfig struct {
	// ReferencePoint bounds the dominated region for hypervolume-family
	// indicators.
	ReferencePoint []float64 `yaml:"reference_point" validate:"omitempty,min=2"`

	// IdealPoint bounds the sampling box of Monte-Carlo estimators.
	IdealPoint []float64 `yaml:"ideal_point" validate:"omitempty,min=2"`

	// ReferenceSetPath locates the reference set file for distance and
	// epsilon indicators.
	ReferenceSetPath string `yaml:"reference_set_path"`

	// Maximise flags which objectives are maximised; empty means all
	// objectives are minimised.
	Maximise []bool `yaml:"maximise"`
}

// Package-level validator instance for configuration validation.
var validate = validator.New()

// ParseStudyConfig decodes and validates a YAML study configuration.
func ParseStudyConfig(raw []byte) (*StudyConfig, error) {
	var config StudyConfig
	if err := yaml.Unmarshal(raw, &config); err != nil {
		return nil, fmt.Errorf("parsing study config: %w", err)
	}
	if err := validate.Struct(&config); err != nil {
		return nil, fmt.Errorf("study config validation failed: %w", err)
	}
	seen := make(map[string]bool, len(config.Indicators))
	for _, ic := range config.Indicators {
		if seen[ic.ID] {
			return nil, fmt.Errorf("study config validation failed: duplicate indicator id %q", ic.ID)
		}
		seen[ic.ID] = true
	}
	return &config, nil
}

// decodeIndicatorParams converts an indicator's flexible YAML parameters
// into the map shape indicator factories consume.
func decodeIndicatorParams(node yaml.Node) (map[string]any, error) {
	if node.IsZero() {
		return map[string]any{}, nil
	}
	params := map[string]any{}
	if err := node.Decode(&params); err != nil {
		return nil, fmt.Errorf("decoding indicator parameters: %w", err)
	}
	return params, nil
}
