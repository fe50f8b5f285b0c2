// Package whv computes weighted hypervolume indicators: an exact
// rectangle-weighted variant for two objectives and a Monte-Carlo
// estimator for arbitrary dimension with configurable sample weighting.
package whv

import (
	"fmt"
	"math"
	"sort"

	"github.com/auto-optimization/mootools/internal/domain"
	"github.com/auto-optimization/mootools/internal/dominance"
)

// Region is an axis-aligned rectangle with a weight that scales any
// dominated area falling inside it.
type Region struct {
	Lower  [2]float64
	Upper  [2]float64
	Weight float64
}

// RectWeighted2D computes the two-objective hypervolume where the area
// inside each region counts with that region's weight instead of one.
// Area outside every region contributes nothing; overlapping regions each
// contribute their own weighted share.
//
// The dominated area is swept as a staircase of the nondominated points;
// each region's intersection with the staircase is integrated over the
// merged x-breakpoints of the staircase and the region edges.
func RectWeighted2D(m domain.Matrix, regions []Region) (float64, error) {
	if m.IsEmpty() {
		return 0, domain.NewRangeError("weighted hypervolume requires at least one point",
			domain.ErrEmptyFront)
	}
	if m.Cols() != 2 {
		return 0, domain.NewConfigError("rectangle weighting supports exactly two objectives",
			fmt.Errorf("got %d", m.Cols()))
	}
	for i, r := range regions {
		if !(r.Lower[0] < r.Upper[0]) || !(r.Lower[1] < r.Upper[1]) {
			return 0, domain.NewDomainError("weighted region must have positive extent",
				fmt.Errorf("region %d: lower %v, upper %v", i, r.Lower, r.Upper))
		}
		if math.IsNaN(r.Weight) {
			return 0, domain.NewDomainError("weighted region weight must be a number",
				fmt.Errorf("region %d", i))
		}
	}

	front, err := dominance.Filter(m, nil, false)
	if err != nil {
		return 0, err
	}
	stairs := make([][2]float64, front.Rows())
	for i := range stairs {
		stairs[i] = [2]float64{front.At(i, 0), front.At(i, 1)}
	}
	sort.Slice(stairs, func(a, b int) bool { return stairs[a][0] < stairs[b][0] })

	total := 0.0
	for _, r := range regions {
		total += r.Weight * regionArea(stairs, r)
	}
	return total, nil
}

// regionArea integrates the overlap of one rectangle with the region
// weakly dominated by the staircase. stairs is sorted by ascending first
// objective with strictly descending second objective.
func regionArea(stairs [][2]float64, r Region) float64 {
	// Breakpoints: staircase x-coordinates clipped to the rectangle.
	xs := []float64{r.Lower[0], r.Upper[0]}
	for _, s := range stairs {
		if s[0] > r.Lower[0] && s[0] < r.Upper[0] {
			xs = append(xs, s[0])
		}
	}
	sort.Float64s(xs)

	area := 0.0
	for i := 0; i+1 < len(xs); i++ {
		x0, x1 := xs[i], xs[i+1]
		if x1 <= x0 {
			continue
		}
		// Dominated height over [x0, x1): best second objective among
		// points with first objective <= x0.
		floor := math.Inf(1)
		for _, s := range stairs {
			if s[0] > x0 {
				break
			}
			if s[1] < floor {
				floor = s[1]
			}
		}
		lo := math.Max(floor, r.Lower[1])
		if lo < r.Upper[1] {
			area += (x1 - x0) * (r.Upper[1] - lo)
		}
	}
	return area
}
