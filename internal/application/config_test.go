package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validStudyYAML = `
version: "1.0.0"
metadata:
  name: zdt1-comparison
  description: Compare two optimizers on ZDT1.
  tags: [benchmark]
datasets:
  - name: algo1
    path: testdata/algo1.dat
  - name: algo2
    path: testdata/algo2.dat
indicators:
  - id: hv
    type: hypervolume
    parameters:
      reference: [6, 6]
  - id: eps
    type: epsilon
    parameters:
      variant: additive
evaluation:
  reference_point: [6, 6]
  reference_set_path: testdata/reference.dat
parallelism: 4
`

func TestParseStudyConfig(t *testing.T) {
	cfg, err := ParseStudyConfig([]byte(validStudyYAML))
	require.NoError(t, err)

	assert.Equal(t, "1.0.0", cfg.Version)
	assert.Equal(t, "zdt1-comparison", cfg.Metadata.Name)
	require.Len(t, cfg.Datasets, 2)
	require.Len(t, cfg.Indicators, 2)
	assert.Equal(t, "hypervolume", cfg.Indicators[0].Type)
	assert.Equal(t, []float64{6, 6}, cfg.Evaluation.ReferencePoint)
	assert.Equal(t, 4, cfg.Parallelism)

	params, err := decodeIndicatorParams(cfg.Indicators[0].Parameters)
	require.NoError(t, err)
	assert.Contains(t, params, "reference")
}

func TestParseStudyConfigRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "missing version",
			yaml: `
metadata: {name: s}
datasets: [{name: d, path: p}]
indicators: [{id: hv, type: hypervolume}]
`,
		},
		{
			name: "non-semver version",
			yaml: `
version: "one"
metadata: {name: s}
datasets: [{name: d, path: p}]
indicators: [{id: hv, type: hypervolume}]
`,
		},
		{
			name: "no datasets",
			yaml: `
version: "1.0.0"
metadata: {name: s}
datasets: []
indicators: [{id: hv, type: hypervolume}]
`,
		},
		{
			name: "unknown indicator type",
			yaml: `
version: "1.0.0"
metadata: {name: s}
datasets: [{name: d, path: p}]
indicators: [{id: x, type: spread}]
`,
		},
		{
			name: "duplicate indicator ids",
			yaml: `
version: "1.0.0"
metadata: {name: s}
datasets: [{name: d, path: p}]
indicators:
  - {id: hv, type: hypervolume}
  - {id: hv, type: epsilon}
`,
		},
		{
			name: "malformed yaml",
			yaml: "version: [",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStudyConfig([]byte(tt.yaml))
			require.Error(t, err)
		})
	}
}
