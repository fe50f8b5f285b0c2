package hypervolume

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auto-optimization/mootools/internal/domain"
	"github.com/auto-optimization/mootools/internal/dominance"
)

// bruteForce integrates the dominated region on a uniform grid inside the
// box [origin, ref], with sub cells per unit interval. For integer-valued
// inputs every dominance boundary lands on a cell edge, so the grid count
// is exact, which makes it an independent cross-check of the sweep.
func bruteForce(m domain.Matrix, ref []float64, sub int) float64 {
	d := m.Cols()
	origin := make([]float64, d)
	cells := make([]int, d)
	steps := make([]float64, d)
	cellVol := 1.0
	for j := 0; j < d; j++ {
		origin[j] = ref[j]
		for i := 0; i < m.Rows(); i++ {
			if v := m.At(i, j); v < origin[j] {
				origin[j] = v
			}
		}
		span := ref[j] - origin[j]
		if span == 0 {
			return 0 // box has zero measure
		}
		cells[j] = int(span) * sub
		steps[j] = span / float64(cells[j])
		cellVol *= steps[j]
	}
	// Count cells whose centre is weakly dominated by some point.
	var count int
	idx := make([]int, d)
	centre := make([]float64, d)
	for {
		for j := 0; j < d; j++ {
			centre[j] = origin[j] + (float64(idx[j])+0.5)*steps[j]
		}
		for i := 0; i < m.Rows(); i++ {
			dominated := true
			for j := 0; j < d; j++ {
				if m.At(i, j) > centre[j] {
					dominated = false
					break
				}
			}
			if dominated {
				count++
				break
			}
		}
		k := 0
		for ; k < d; k++ {
			idx[k]++
			if idx[k] < cells[k] {
				break
			}
			idx[k] = 0
		}
		if k == d {
			break
		}
	}
	return float64(count) * cellVol
}

func TestCompute2D(t *testing.T) {
	tests := []struct {
		name string
		data []float64
		ref  []float64
		want float64
	}{
		{
			name: "simple front",
			data: []float64{5, 5, 4, 6, 2, 7, 7, 4},
			ref:  []float64{10, 10},
			want: 38,
		},
		{
			name: "single point",
			data: []float64{2, 3},
			ref:  []float64{4, 7},
			want: 8,
		},
		{
			name: "dominated point adds nothing",
			data: []float64{2, 3, 3, 4},
			ref:  []float64{4, 7},
			want: 8,
		},
		{
			name: "duplicate adds nothing",
			data: []float64{2, 3, 2, 3},
			ref:  []float64{4, 7},
			want: 8,
		},
		{
			name: "point on the reference boundary spans zero volume",
			data: []float64{2, 3, 4, 2},
			ref:  []float64{4, 7},
			want: 8,
		},
		{
			name: "empty set",
			data: nil,
			ref:  []float64{1, 1},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compute(domain.MustMatrix(tt.data, 2), tt.ref, nil)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

// The documented sweep must agree with independent brute-force grid
// integration on the canonical minimisation scenario.
func TestComputeMatchesGridIntegration(t *testing.T) {
	m := domain.MustMatrix([]float64{1, 5, 2, 3, 3, 2, 5, 1}, 2)
	ref := []float64{6, 6}

	got, err := Compute(m, ref, nil)
	require.NoError(t, err)

	// All coordinates are integers, so a unit-aligned grid is exact.
	want := bruteForce(m, ref, 4)
	assert.InDelta(t, want, got, 1e-9)
}

func TestComputeMaximise(t *testing.T) {
	// Maximising both objectives with reference at the origin.
	m := domain.MustMatrix([]float64{5, 5, 4, 6, 2, 7, 7, 4}, 2)
	got, err := Compute(m, []float64{0, 0}, domain.Uniform(true, 2))
	require.NoError(t, err)
	want := bruteForce(domain.Uniform(true, 2).ApplyToMatrix(m), []float64{0, 0}, 4)
	assert.InDelta(t, want, got, 1e-9)
}

func TestCompute3DMatchesGrid(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 4))
	for trial := 0; trial < 10; trial++ {
		n := 1 + rng.IntN(12)
		data := make([]float64, n*3)
		for i := range data {
			data[i] = float64(rng.IntN(8))
		}
		m := domain.MustMatrix(data, 3)
		ref := []float64{8, 8, 8}

		got, err := Compute(m, ref, nil)
		require.NoError(t, err)
		want := bruteForce(m, ref, 2) // integer coordinates: grid-exact
		require.InDelta(t, want, got, 1e-9, "trial=%d data=%v", trial, data)
	}
}

func TestCompute4DMatchesGrid(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 17))
	for trial := 0; trial < 5; trial++ {
		n := 1 + rng.IntN(8)
		data := make([]float64, n*4)
		for i := range data {
			data[i] = float64(rng.IntN(4))
		}
		m := domain.MustMatrix(data, 4)
		ref := []float64{4, 4, 4, 4}

		got, err := Compute(m, ref, nil)
		require.NoError(t, err)
		want := bruteForce(m, ref, 2)
		require.InDelta(t, want, got, 1e-9, "trial=%d data=%v", trial, data)
	}
}

func TestComputeRejectsBadReference(t *testing.T) {
	m := domain.MustMatrix([]float64{2, 3}, 2)
	_, err := Compute(m, []float64{1, 10}, nil)
	require.Error(t, err)
	var de *domain.DomainError
	assert.ErrorAs(t, err, &de)
	assert.ErrorIs(t, err, domain.ErrReferenceNotDominated)
}

// Adding a point never decreases the hypervolume; removing one never
// increases it.
func TestComputeMonotone(t *testing.T) {
	rng := rand.New(rand.NewPCG(23, 1))
	base := make([]float64, 10*2)
	for i := range base {
		base[i] = rng.Float64() * 5
	}
	ref := []float64{5, 5}
	m := domain.MustMatrix(base, 2)
	hvBase, err := Compute(m, ref, nil)
	require.NoError(t, err)

	grown, err := m.Append(domain.MustMatrix([]float64{0.1, 0.1}, 2))
	require.NoError(t, err)
	hvGrown, err := Compute(grown, ref, nil)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, hvGrown, hvBase)

	shrunk := m.Slice(0, m.Rows()-1)
	hvShrunk, err := Compute(shrunk, ref, nil)
	require.NoError(t, err)
	assert.LessOrEqual(t, hvShrunk, hvBase)
}

func TestContributions2D(t *testing.T) {
	m := domain.MustMatrix([]float64{1, 5, 2, 3, 3, 2, 5, 1, 4, 4}, 2)
	ref := []float64{6, 6}

	got, err := Contributions(m, ref, nil)
	require.NoError(t, err)
	require.Len(t, got, 5)

	// The dominated point (4,4) contributes exactly zero.
	assert.Zero(t, got[4])

	// Every nondominated point matches the leave-one-out definition.
	total, err := Compute(m, ref, nil)
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		rest := make([]float64, 0, 8)
		for j := 0; j < m.Rows(); j++ {
			if j != i {
				rest = append(rest, m.Row(j)...)
			}
		}
		without, err := Compute(domain.MustMatrix(rest, 2), ref, nil)
		require.NoError(t, err)
		assert.InDelta(t, total-without, got[i], 1e-12, "point %d", i)
	}
}

func TestContributionsDuplicatesAreZero(t *testing.T) {
	m := domain.MustMatrix([]float64{2, 3, 2, 3, 1, 4}, 2)
	got, err := Contributions(m, []float64{5, 5}, nil)
	require.NoError(t, err)
	assert.Zero(t, got[0])
	assert.Zero(t, got[1])
	assert.Greater(t, got[2], 0.0)
}

func TestContributions3DLeaveOneOut(t *testing.T) {
	rng := rand.New(rand.NewPCG(2, 8))
	data := make([]float64, 8*3)
	for i := range data {
		data[i] = rng.Float64() * 4
	}
	m := domain.MustMatrix(data, 3)
	ref := []float64{4, 4, 4}

	got, err := Contributions(m, ref, nil)
	require.NoError(t, err)

	total, err := Compute(m, ref, nil)
	require.NoError(t, err)
	mask, err := dominance.IsNondominated(m, nil, false)
	require.NoError(t, err)
	for i := 0; i < m.Rows(); i++ {
		if !mask[i] {
			assert.Zero(t, got[i], "dominated point %d", i)
			continue
		}
		rest := make([]float64, 0, len(data))
		for j := 0; j < m.Rows(); j++ {
			if j != i {
				rest = append(rest, m.Row(j)...)
			}
		}
		without, err := Compute(domain.MustMatrix(rest, 3), ref, nil)
		require.NoError(t, err)
		assert.InDelta(t, total-without, got[i], 1e-9, "point %d", i)
	}
}

func BenchmarkCompute2D(b *testing.B) {
	rng := rand.New(rand.NewPCG(1, 1))
	data := make([]float64, 1000*2)
	for i := range data {
		data[i] = rng.Float64()
	}
	m := domain.MustMatrix(data, 2)
	ref := []float64{1, 1}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Compute(m, ref, nil); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCompute3D(b *testing.B) {
	rng := rand.New(rand.NewPCG(1, 2))
	data := make([]float64, 500*3)
	for i := range data {
		data[i] = rng.Float64()
	}
	m := domain.MustMatrix(data, 3)
	ref := []float64{1, 1, 1}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Compute(m, ref, nil); err != nil {
			b.Fatal(err)
		}
	}
}
