// Package indicator implements the unary quality indicators that compare an
// approximation set against a reference set: additive and multiplicative
// epsilon, inverted generational distance (IGD), its Pareto-compliant
// variant IGD+, and the averaged Hausdorff distance.
//
// Every function is a pure stateless computation over two point sets and an
// orientation; nothing is mutated or retained.
package indicator

import (
	"fmt"
	"math"

	"github.com/auto-optimization/mootools/internal/domain"
)

// EpsilonAdditive returns the minimal offset epsilon such that shifting
// every approximation point by epsilon (toward better values) makes the set
// weakly dominate every reference point. It is non-negative whenever the
// reference is not dominated, and exactly zero iff the approximation
// already weakly dominates the reference set.
func EpsilonAdditive(data, ref domain.Matrix, maximise domain.Orientation) (float64, error) {
	return epsilon(data, ref, maximise, false)
}

// EpsilonMultiplicative returns the minimal factor epsilon such that
// scaling every approximation point by epsilon makes the set weakly
// dominate every reference point. Both sets must be strictly positive in
// every objective; a zero or negative coordinate is a DomainError because
// the ratio form is undefined there.
func EpsilonMultiplicative(data, ref domain.Matrix, maximise domain.Orientation) (float64, error) {
	return epsilon(data, ref, maximise, true)
}

func epsilon(data, ref domain.Matrix, maximise domain.Orientation, mult bool) (float64, error) {
	if err := validatePair(data, ref, maximise); err != nil {
		return 0, err
	}
	if mult {
		for _, m := range []domain.Matrix{data, ref} {
			for i := 0; i < m.Rows(); i++ {
				for _, v := range m.Row(i) {
					if v <= 0 {
						return 0, domain.NewDomainError(
							"multiplicative epsilon requires strictly positive coordinates",
							fmt.Errorf("found %g", v))
					}
				}
			}
		}
	}
	// eps = max over reference points of the smallest per-point shift that
	// makes some approximation point weakly dominate it.
	eps := math.Inf(-1)
	for r := 0; r < ref.Rows(); r++ {
		rp := ref.Row(r)
		best := math.Inf(1)
		for a := 0; a < data.Rows(); a++ {
			ap := data.Row(a)
			worst := math.Inf(-1)
			for k := range rp {
				var v float64
				switch {
				case mult && maximise.Maximised(k):
					v = rp[k] / ap[k]
				case mult:
					v = ap[k] / rp[k]
				case maximise.Maximised(k):
					v = rp[k] - ap[k]
				default:
					v = ap[k] - rp[k]
				}
				if v > worst {
					worst = v
				}
			}
			if worst < best {
				best = worst
			}
		}
		if best > eps {
			eps = best
		}
	}
	return eps, nil
}

// IGD returns the inverted generational distance: the mean, over reference
// points, of the Euclidean distance to the nearest approximation point. It
// measures how well the approximation covers the reference set; lower is
// better.
func IGD(data, ref domain.Matrix, maximise domain.Orientation) (float64, error) {
	if err := validatePair(data, ref, maximise); err != nil {
		return 0, err
	}
	return directed(ref, data, maximise, 1, plainDist), nil
}

// IGDPlus returns the Pareto-compliant IGD variant: distances count only the
// objectives in which the approximation point is worse than the reference
// point, so a point that already weakly dominates the reference point is at
// distance zero.
func IGDPlus(data, ref domain.Matrix, maximise domain.Orientation) (float64, error) {
	if err := validatePair(data, ref, maximise); err != nil {
		return 0, err
	}
	return directed(ref, data, maximise, 1, clampedDist), nil
}

// AvgHausdorff returns the averaged Hausdorff distance of Schuetze et al.:
// the maximum of the two directed p-averaged nearest-neighbour distances
// between the approximation and the reference. p must be at least one;
// p = +Inf degenerates to the classical Hausdorff distance, the maximum of
// the two directed maxima.
func AvgHausdorff(data, ref domain.Matrix, maximise domain.Orientation, p float64) (float64, error) {
	if err := validatePair(data, ref, maximise); err != nil {
		return 0, err
	}
	if math.IsNaN(p) || p < 1 {
		return 0, domain.NewRangeError("Hausdorff exponent must be at least one",
			fmt.Errorf("got %g", p))
	}
	gd := directed(data, ref, maximise, p, plainDist)
	igd := directed(ref, data, maximise, p, plainDist)
	return math.Max(gd, igd), nil
}

// directed computes the p-averaged nearest-neighbour distance from every
// point of from to the set to. p = +Inf yields the maximum instead of the
// mean.
func directed(from, to domain.Matrix, maximise domain.Orientation, p float64, dist distFunc) float64 {
	agg := 0.0
	worst := 0.0
	for i := 0; i < from.Rows(); i++ {
		fp := from.Row(i)
		nearest := math.Inf(1)
		for j := 0; j < to.Rows(); j++ {
			if d := dist(to.Row(j), fp, maximise); d < nearest {
				nearest = d
			}
		}
		if nearest > worst {
			worst = nearest
		}
		if !math.IsInf(p, 1) {
			agg += math.Pow(nearest, p)
		}
	}
	if math.IsInf(p, 1) {
		return worst
	}
	mean := agg / float64(from.Rows())
	if p == 1 {
		return mean
	}
	return math.Pow(mean, 1/p)
}

// distFunc measures how far the approximation point a is from covering the
// reference point r.
type distFunc func(a, r []float64, maximise domain.Orientation) float64

func plainDist(a, r []float64, _ domain.Orientation) float64 {
	s := 0.0
	for k := range a {
		d := a[k] - r[k]
		s += d * d
	}
	return math.Sqrt(s)
}

// clampedDist is the IGD+ distance: per objective, only the amount by which
// a falls short of r counts, honouring orientation.
func clampedDist(a, r []float64, maximise domain.Orientation) float64 {
	s := 0.0
	for k := range a {
		d := a[k] - r[k]
		if maximise.Maximised(k) {
			d = -d
		}
		if d > 0 {
			s += d * d
		}
	}
	return math.Sqrt(s)
}

func validatePair(data, ref domain.Matrix, maximise domain.Orientation) error {
	if data.IsEmpty() || ref.IsEmpty() {
		return domain.NewRangeError("both point sets must be non-empty",
			domain.ErrEmptyFront)
	}
	if data.Cols() != ref.Cols() {
		return domain.NewDomainError("approximation and reference must share dimensionality",
			fmt.Errorf("%d objectives vs %d", data.Cols(), ref.Cols()))
	}
	return maximise.Validate(data.Cols())
}
