package domain

import "fmt"

// Dataset is a collection of independent runs stored as one contiguous point
// matrix plus a non-decreasing sequence of cumulative run sizes. Run k
// occupies rows [cumsizes[k-1], cumsizes[k]) of the matrix, with an implicit
// leading zero; the final cumulative size equals the total row count.
//
// This flat layout mirrors the boundary contract of the engine: callers hand
// over one numeric buffer plus run-boundary metadata, never nested
// containers. A run view is a non-owning slice of the shared buffer.
type Dataset struct {
	points   Matrix
	cumsizes []int
}

// NewDataset builds a Dataset from a point matrix and cumulative run sizes.
// It returns a ConfigError if cumsizes is empty, decreasing, starts below
// one point, or does not sum to the matrix row count.
func NewDataset(points Matrix, cumsizes []int) (*Dataset, error) {
	if len(cumsizes) == 0 {
		return nil, NewConfigError("dataset requires at least one run",
			fmt.Errorf("empty run-boundary sequence"))
	}
	prev := 0
	for i, c := range cumsizes {
		if c < prev {
			return nil, NewConfigError("run boundaries must be non-decreasing",
				fmt.Errorf("cumsizes[%d]=%d after %d", i, c, prev))
		}
		prev = c
	}
	if prev != points.Rows() {
		return nil, NewConfigError("run boundaries must cover the whole matrix",
			fmt.Errorf("final cumulative size %d, matrix has %d rows", prev, points.Rows()))
	}
	cs := make([]int, len(cumsizes))
	copy(cs, cumsizes)
	return &Dataset{points: points, cumsizes: cs}, nil
}

// SingleRun wraps one point matrix as a dataset with a single run.
func SingleRun(points Matrix) *Dataset {
	return &Dataset{points: points, cumsizes: []int{points.Rows()}}
}

// NumRuns returns the number of runs.
func (d *Dataset) NumRuns() int { return len(d.cumsizes) }

// NumPoints returns the total number of points across all runs.
func (d *Dataset) NumPoints() int { return d.points.Rows() }

// NumObjectives returns the shared dimensionality of every point.
func (d *Dataset) NumObjectives() int { return d.points.Cols() }

// Points returns the full concatenated point matrix.
func (d *Dataset) Points() Matrix { return d.points }

// Cumsizes returns a copy of the cumulative run sizes.
func (d *Dataset) Cumsizes() []int {
	cs := make([]int, len(d.cumsizes))
	copy(cs, d.cumsizes)
	return cs
}

// Run returns run k as a non-owning view of the shared point buffer.
func (d *Dataset) Run(k int) Matrix {
	start := 0
	if k > 0 {
		start = d.cumsizes[k-1]
	}
	return d.points.Slice(start, d.cumsizes[k])
}

// RunOf returns the index of the run containing point row i.
func (d *Dataset) RunOf(i int) int {
	for k, c := range d.cumsizes {
		if i < c {
			return k
		}
	}
	return len(d.cumsizes) - 1
}
