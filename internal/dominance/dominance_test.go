package dominance

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auto-optimization/mootools/internal/domain"
)

func TestIsNondominated2D(t *testing.T) {
	tests := []struct {
		name       string
		data       []float64
		maximise   domain.Orientation
		keepWeakly bool
		want       []bool
	}{
		{
			name: "duplicate keeps last occurrence when weak points dropped",
			data: []float64{1, 1, 0, 1, 1, 0, 1, 0},
			want: []bool{false, true, false, true},
		},
		{
			name:       "duplicates retained with keepWeakly",
			data:       []float64{1, 1, 0, 1, 1, 0, 1, 0},
			keepWeakly: true,
			want:       []bool{false, true, true, true},
		},
		{
			name:     "maximise flips the front",
			data:     []float64{1, 1, 0, 1, 1, 0, 1, 0},
			maximise: domain.Uniform(true, 2),
			want:     []bool{true, false, false, false},
		},
		{
			name: "equal coordinate with strict improvement dominates",
			data: []float64{1, 5, 1, 3},
			want: []bool{false, true},
		},
		{
			name: "staircase front all nondominated",
			data: []float64{1, 5, 2, 3, 3, 2, 5, 1},
			want: []bool{true, true, true, true},
		},
		{
			name: "empty set yields empty mask",
			data: nil,
			want: []bool{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := domain.MustMatrix(tt.data, 2)
			got, err := IsNondominated(m, tt.maximise, tt.keepWeakly)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsNondominated3D(t *testing.T) {
	tests := []struct {
		name string
		data []float64
		want []bool
	}{
		{
			name: "diagonal front",
			data: []float64{1, 2, 3, 3, 2, 1, 2, 3, 1},
			want: []bool{true, true, true},
		},
		{
			name: "interior point dominated",
			data: []float64{1, 1, 1, 2, 2, 2},
			want: []bool{true, false},
		},
		{
			name: "tie in one coordinate still dominates",
			data: []float64{1, 2, 2, 1, 2, 3},
			want: []bool{true, false},
		},
		{
			name: "exact 3d duplicates both kept before dedup",
			data: []float64{1, 2, 3, 4, 0, 2, 1, 2, 3},
			want: []bool{true, true, true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := domain.MustMatrix(tt.data, 3)
			got, err := IsNondominated(m, nil, true)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// The specialized 2D and 3D sweeps must agree with the generic pairwise
// check on random inputs.
func TestSweepMatchesGeneric(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	for _, nobj := range []int{2, 3} {
		for trial := 0; trial < 50; trial++ {
			n := 1 + rng.IntN(60)
			data := make([]float64, n*nobj)
			for i := range data {
				// Coarse grid to force ties and duplicates.
				data[i] = float64(rng.IntN(8))
			}
			m := domain.MustMatrix(data, nobj)
			got, err := IsNondominated(m, nil, true)
			require.NoError(t, err)
			want := nondominatedGeneric(m)
			require.Equal(t, want, got, "nobj=%d trial=%d data=%v", nobj, trial, data)
		}
	}
}

// Filtering is idempotent: refiltering an already nondominated set keeps
// every point.
func TestFilterIdempotent(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	for _, nobj := range []int{2, 3, 4} {
		data := make([]float64, 80*nobj)
		for i := range data {
			data[i] = rng.Float64()
		}
		m := domain.MustMatrix(data, nobj)

		once, err := Filter(m, nil, false)
		require.NoError(t, err)
		twice, err := Filter(once, nil, false)
		require.NoError(t, err)
		assert.Equal(t, once.Values(), twice.Values(), "nobj=%d", nobj)

		// No pairwise dominance may survive the filter.
		for i := 0; i < once.Rows(); i++ {
			for j := 0; j < once.Rows(); j++ {
				if i == j {
					continue
				}
				dominates := weaklyDominates(once.Row(i), once.Row(j)) && !equalRows(once.Row(i), once.Row(j))
				assert.False(t, dominates, "point %d dominates %d", i, j)
			}
		}
	}
}

func TestFilterSets(t *testing.T) {
	// Two runs: each filtered independently, so a point dominated only by a
	// point of the other run survives.
	points := domain.MustMatrix([]float64{
		1, 1, // run 0, dominates the next row
		2, 2, // run 0, dominated within its run
		3, 3, // run 1, dominated only by run 0 points: kept
	}, 2)
	ds, err := domain.NewDataset(points, []int{2, 3})
	require.NoError(t, err)

	got, err := FilterSets(ds, nil, false)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, got.Cumsizes())
	assert.Equal(t, []float64{1, 1, 3, 3}, got.Points().Values())
}

func TestRanks(t *testing.T) {
	tests := []struct {
		name string
		data []float64
		want []int
	}{
		{
			name: "nested fronts",
			data: []float64{1, 1, 2, 2, 3, 3},
			want: []int{0, 1, 2},
		},
		{
			name: "front plus one dominated",
			data: []float64{1, 5, 5, 1, 6, 6},
			want: []int{0, 0, 1},
		},
		{
			name: "duplicates share a rank",
			data: []float64{2, 2, 2, 2, 1, 1},
			want: []int{1, 1, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Ranks(domain.MustMatrix(tt.data, 2), nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Rank k must equal the set removed by the (k+1)-th filter-and-remove pass.
func TestRanksMatchIterativePeeling(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 9))
	data := make([]float64, 60*2)
	for i := range data {
		data[i] = float64(rng.IntN(10))
	}
	m := domain.MustMatrix(data, 2)

	ranks, err := Ranks(m, nil)
	require.NoError(t, err)

	remaining := m
	index := make([]int, m.Rows())
	for i := range index {
		index[i] = i
	}
	for rank := 0; remaining.Rows() > 0; rank++ {
		mask, err := IsNondominated(remaining, nil, true)
		require.NoError(t, err)
		var nextIdx []int
		var nextData []float64
		for i := 0; i < remaining.Rows(); i++ {
			if mask[i] {
				assert.Equal(t, rank, ranks[index[i]], "point %d", index[i])
			} else {
				nextIdx = append(nextIdx, index[i])
				nextData = append(nextData, remaining.Row(i)...)
			}
		}
		remaining = domain.MustMatrix(nextData, 2)
		index = nextIdx
	}
}
