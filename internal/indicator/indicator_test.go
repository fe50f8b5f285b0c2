package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auto-optimization/mootools/internal/domain"
)

// Fixture from the reference implementation's documentation; the expected
// values are the ones its C core produces.
var (
	fixtureData = domain.MustMatrix([]float64{3.5, 5.5, 3.6, 4.1, 4.1, 3.2, 5.5, 1.5}, 2)
	fixtureRef  = domain.MustMatrix([]float64{1, 6, 2, 5, 3, 4, 4, 3, 5, 2, 6, 1}, 2)
)

func TestEpsilonAdditive(t *testing.T) {
	got, err := EpsilonAdditive(fixtureData, fixtureRef, nil)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, got, 1e-12)
}

func TestEpsilonMultiplicative(t *testing.T) {
	got, err := EpsilonMultiplicative(fixtureData, fixtureRef, nil)
	require.NoError(t, err)
	assert.InDelta(t, 3.5, got, 1e-12)
}

func TestEpsilonZeroIffWeaklyDominating(t *testing.T) {
	front := domain.MustMatrix([]float64{1, 3, 2, 2, 3, 1}, 2)

	t.Run("set weakly dominating itself has zero additive epsilon", func(t *testing.T) {
		got, err := EpsilonAdditive(front, front, nil)
		require.NoError(t, err)
		assert.Zero(t, got)
	})

	t.Run("set weakly dominating itself has unit multiplicative epsilon", func(t *testing.T) {
		got, err := EpsilonMultiplicative(front, front, nil)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, got, 1e-12)
	})

	t.Run("non-dominating approximation has positive epsilon", func(t *testing.T) {
		worse := domain.MustMatrix([]float64{2, 4, 3, 3, 4, 2}, 2)
		got, err := EpsilonAdditive(worse, front, nil)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, got, 1e-12)
	})
}

func TestEpsilonMaximise(t *testing.T) {
	// Under maximisation the shift direction reverses: the approximation
	// must be raised to reach the reference.
	data := domain.MustMatrix([]float64{2, 2}, 2)
	ref := domain.MustMatrix([]float64{3, 4}, 2)
	got, err := EpsilonAdditive(data, ref, domain.Uniform(true, 2))
	require.NoError(t, err)
	assert.InDelta(t, 2.0, got, 1e-12)

	mult, err := EpsilonMultiplicative(data, ref, domain.Uniform(true, 2))
	require.NoError(t, err)
	assert.InDelta(t, 2.0, mult, 1e-12)
}

func TestEpsilonMultiplicativeRequiresPositive(t *testing.T) {
	data := domain.MustMatrix([]float64{1, -1}, 2)
	ref := domain.MustMatrix([]float64{1, 1}, 2)
	_, err := EpsilonMultiplicative(data, ref, nil)
	var de *domain.DomainError
	require.ErrorAs(t, err, &de)
}

func TestIGD(t *testing.T) {
	got, err := IGD(fixtureData, fixtureRef, nil)
	require.NoError(t, err)
	assert.InDelta(t, 1.0627908666722465, got, 1e-12)
}

func TestIGDPlus(t *testing.T) {
	got, err := IGDPlus(fixtureData, fixtureRef, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.9855036468106652, got, 1e-12)
}

func TestIGDPlusDominatingPointIsFree(t *testing.T) {
	// The single approximation point weakly dominates every reference
	// point, so the dominance-aware distance is zero while plain IGD
	// is not.
	data := domain.MustMatrix([]float64{0, 0}, 2)
	ref := domain.MustMatrix([]float64{1, 1, 2, 2}, 2)

	plus, err := IGDPlus(data, ref, nil)
	require.NoError(t, err)
	assert.Zero(t, plus)

	plain, err := IGD(data, ref, nil)
	require.NoError(t, err)
	assert.Greater(t, plain, 0.0)
}

func TestAvgHausdorff(t *testing.T) {
	t.Run("p=1 matches the reference value", func(t *testing.T) {
		got, err := AvgHausdorff(fixtureData, fixtureRef, nil, 1)
		require.NoError(t, err)
		assert.InDelta(t, 1.0627908666722465, got, 1e-12)
	})

	t.Run("p=inf equals the classical Hausdorff distance", func(t *testing.T) {
		got, err := AvgHausdorff(fixtureData, fixtureRef, nil, math.Inf(1))
		require.NoError(t, err)
		assert.InDelta(t, 2.5495097567963922, got, 1e-12)
	})

	t.Run("p below one is a range error", func(t *testing.T) {
		_, err := AvgHausdorff(fixtureData, fixtureRef, nil, 0.5)
		var re *domain.RangeError
		require.ErrorAs(t, err, &re)
	})

	t.Run("identical sets are at distance zero", func(t *testing.T) {
		got, err := AvgHausdorff(fixtureData, fixtureData, nil, 2)
		require.NoError(t, err)
		assert.Zero(t, got)
	})
}

func TestEmptySetsAreRangeErrors(t *testing.T) {
	empty := domain.MustMatrix(nil, 2)
	full := domain.MustMatrix([]float64{1, 1}, 2)

	for name, call := range map[string]func() error{
		"epsilon additive": func() error { _, err := EpsilonAdditive(empty, full, nil); return err },
		"igd":              func() error { _, err := IGD(full, empty, nil); return err },
		"avg hausdorff":    func() error { _, err := AvgHausdorff(empty, empty, nil, 1); return err },
	} {
		t.Run(name, func(t *testing.T) {
			err := call()
			var re *domain.RangeError
			require.ErrorAs(t, err, &re)
			assert.ErrorIs(t, err, domain.ErrEmptyFront)
		})
	}
}

func TestDimensionMismatch(t *testing.T) {
	a := domain.MustMatrix([]float64{1, 2}, 2)
	b := domain.MustMatrix([]float64{1, 2, 3}, 3)
	_, err := IGD(a, b, nil)
	var de *domain.DomainError
	require.ErrorAs(t, err, &de)
}
