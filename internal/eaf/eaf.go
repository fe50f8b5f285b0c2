// Package eaf computes the empirical attainment function of a collection of
// independent optimisation runs: the attainment surfaces at requested
// percentiles, the signed pairwise difference between two run groups in
// three agreeing encodings, and the Vorob'ev expectation and deviation
// derived from them.
//
// All operations use the minimisation convention. Attainment surfaces are
// defined over two or three objectives; the pairwise difference is defined
// over two. Other dimensionalities return a ConfigError rather than a
// silent approximation.
package eaf

import (
	"fmt"
	"math"
	"sort"

	"github.com/auto-optimization/mootools/internal/domain"
)

// Surface is one empirical attainment surface: the minimal set of points
// weakly dominated by at least Level of the runs, labelled with the
// percentile that selected it.
type Surface struct {
	// Percentile is the requested percentile in [0, 100].
	Percentile float64
	// Level is the attainment count threshold the percentile maps to:
	// ceil(percentile * runs / 100), at least one.
	Level int
	// Points holds the surface's minimal points sorted by ascending first
	// objective. Empty when fewer than Level runs attain any point.
	Points domain.Matrix
}

// Compute returns the attainment surfaces of the dataset at the given
// percentiles. An empty percentile slice selects every level, percentile
// k*100/runs for k = 1..runs, matching the reference implementation.
// Percentiles outside [0, 100] are a RangeError; datasets with other than
// two or three objectives are a ConfigError.
//
// Two-objective surface points are sorted by ascending first objective;
// three-objective points by ascending third, then first objective.
func Compute(ds *domain.Dataset, percentiles []float64) ([]Surface, error) {
	if err := validateSurfaceInput(ds); err != nil {
		return nil, err
	}
	nruns := ds.NumRuns()
	if len(percentiles) == 0 {
		percentiles = make([]float64, nruns)
		for k := range percentiles {
			percentiles[k] = float64(k+1) * 100 / float64(nruns)
		}
	} else {
		percentiles = uniqueSorted(percentiles)
	}

	surfaces := make([]Surface, len(percentiles))
	for i, p := range percentiles {
		if p < 0 || p > 100 {
			return nil, domain.NewRangeError("percentile must lie in [0, 100]",
				fmt.Errorf("got %g", p))
		}
		surfaces[i] = Surface{Percentile: p, Level: percentileToLevel(p, nruns)}
	}

	if ds.NumObjectives() == 3 {
		compute3D(ds, surfaces)
		return surfaces, nil
	}
	compute2D(ds, surfaces)
	return surfaces, nil
}

// compute2D fills in the surface points of a two-objective dataset. The
// sweep processes the pooled points in ascending first objective while
// tracking each run's best second objective; a surface gains a point
// wherever its order statistic improves. Cost is O(n log n + n·runs) for n
// pooled points.
func compute2D(ds *domain.Dataset, surfaces []Surface) {
	nruns := ds.NumRuns()
	type event struct {
		x, y float64
		run  int
	}
	events := make([]event, 0, ds.NumPoints())
	for k := 0; k < nruns; k++ {
		run := ds.Run(k)
		for i := 0; i < run.Rows(); i++ {
			events = append(events, event{run.At(i, 0), run.At(i, 1), k})
		}
	}
	sort.Slice(events, func(a, b int) bool {
		if events[a].x != events[b].x {
			return events[a].x < events[b].x
		}
		return events[a].y < events[b].y
	})

	bestY := make([]float64, nruns)
	for k := range bestY {
		bestY[k] = math.Inf(1)
	}
	// lastY[i] is the current surface height of surfaces[i]; a surface
	// emits a point whenever its order statistic drops below it.
	lastY := make([]float64, len(surfaces))
	for i := range lastY {
		lastY[i] = math.Inf(1)
	}
	outs := make([][]float64, len(surfaces))
	ordered := make([]float64, nruns)

	for e := 0; e < len(events); {
		x := events[e].x
		for ; e < len(events) && events[e].x == x; e++ {
			if events[e].y < bestY[events[e].run] {
				bestY[events[e].run] = events[e].y
			}
		}
		copy(ordered, bestY)
		sort.Float64s(ordered)
		for i := range surfaces {
			y := ordered[surfaces[i].Level-1]
			if y < lastY[i] {
				outs[i] = append(outs[i], x, y)
				lastY[i] = y
			}
		}
	}
	for i := range surfaces {
		surfaces[i].Points = domain.MustMatrix(outs[i], 2)
	}
}

// compute3D fills in the surface points of a three-objective dataset. The
// pooled points are swept in ascending third objective; after each slab of
// equal third-objective values the two-objective surfaces of the points
// seen so far are recomputed, and every staircase point not already
// attained at a smaller third objective becomes a new surface point. A
// point is on the level-L surface exactly when its two-objective projection
// first reaches L attaining runs at that slab.
func compute3D(ds *domain.Dataset, surfaces []Surface) {
	nruns := ds.NumRuns()
	type event struct {
		x, y, z float64
		run     int
	}
	events := make([]event, 0, ds.NumPoints())
	for k := 0; k < nruns; k++ {
		run := ds.Run(k)
		for i := 0; i < run.Rows(); i++ {
			events = append(events, event{run.At(i, 0), run.At(i, 1), run.At(i, 2), k})
		}
	}
	sort.Slice(events, func(a, b int) bool {
		if events[a].x != events[b].x {
			return events[a].x < events[b].x
		}
		return events[a].y < events[b].y
	})
	zs := make([]float64, len(events))
	for i, e := range events {
		zs[i] = e.z
	}
	zs = uniqueSorted(zs)

	bestY := make([]float64, nruns)
	ordered := make([]float64, nruns)
	lastY := make([]float64, len(surfaces))
	// cur and prev hold per-surface staircases as (x, y) pairs with x
	// ascending and y strictly descending.
	cur := make([][]float64, len(surfaces))
	prev := make([][]float64, len(surfaces))
	outs := make([][]float64, len(surfaces))

	for _, z := range zs {
		for k := range bestY {
			bestY[k] = math.Inf(1)
		}
		for i := range surfaces {
			cur[i] = cur[i][:0]
			lastY[i] = math.Inf(1)
		}
		for e := 0; e < len(events); {
			x := events[e].x
			for ; e < len(events) && events[e].x == x; e++ {
				if events[e].z <= z && events[e].y < bestY[events[e].run] {
					bestY[events[e].run] = events[e].y
				}
			}
			copy(ordered, bestY)
			sort.Float64s(ordered)
			for i := range surfaces {
				y := ordered[surfaces[i].Level-1]
				if y < lastY[i] {
					cur[i] = append(cur[i], x, y)
					lastY[i] = y
				}
			}
		}
		for i := range surfaces {
			for k := 0; k+1 < len(cur[i]); k += 2 {
				x, y := cur[i][k], cur[i][k+1]
				if !stairAttains(prev[i], x, y) {
					outs[i] = append(outs[i], x, y, z)
				}
			}
			prev[i] = append(prev[i][:0], cur[i]...)
		}
	}
	for i := range surfaces {
		surfaces[i].Points = domain.MustMatrix(outs[i], 3)
	}
}

// stairAttains reports whether the staircase weakly dominates (x, y). The
// staircase is (x, y) pairs with x ascending and y descending, so the best
// y over all steps at or left of x sits at the last such step.
func stairAttains(stair []float64, x, y float64) bool {
	n := len(stair) / 2
	idx := sort.Search(n, func(k int) bool { return stair[2*k] > x })
	if idx == 0 {
		return false
	}
	return stair[2*(idx-1)+1] <= y
}

// percentileToLevel maps a percentile to the smallest attainment count
// covering it, never below one run.
func percentileToLevel(p float64, nruns int) int {
	level := int(math.Ceil(p * float64(nruns) / 100))
	if level < 1 {
		level = 1
	}
	if level > nruns {
		level = nruns
	}
	return level
}

func uniqueSorted(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	sort.Float64s(out)
	w := 0
	for i, v := range out {
		if i == 0 || v != out[w-1] {
			out[w] = v
			w++
		}
	}
	return out[:w]
}

func validateSurfaceInput(ds *domain.Dataset) error {
	if ds.NumPoints() == 0 {
		return domain.NewRangeError("attainment requires at least one point",
			domain.ErrEmptyFront)
	}
	if n := ds.NumObjectives(); n != 2 && n != 3 {
		return domain.NewConfigError("attainment surfaces support two or three objectives",
			fmt.Errorf("got %d", n))
	}
	return nil
}

func validate2D(ds *domain.Dataset) error {
	if ds.NumPoints() == 0 {
		return domain.NewRangeError("attainment requires at least one point",
			domain.ErrEmptyFront)
	}
	if ds.NumObjectives() != 2 {
		return domain.NewConfigError("attainment differences support exactly two objectives",
			fmt.Errorf("got %d", ds.NumObjectives()))
	}
	return nil
}
