package eaf

import (
	"fmt"
	"math"
	"sort"

	"github.com/auto-optimization/mootools/internal/domain"
)

// DiffOptions configures the bucketing of signed attainment differences.
// Exactly one of Intervals or Boundaries is used: explicit boundaries win
// when present.
type DiffOptions struct {
	// Intervals splits the absolute difference range (0, 1] into this many
	// equal buckets per sign. Zero selects the default, half the combined
	// number of runs.
	Intervals int
	// Boundaries are explicit strictly ascending bucket upper bounds in
	// (0, 1]. A final boundary of 1 is implied when missing.
	Boundaries []float64
}

// DiffPoint is one corner of the difference grid with its signed bucket.
type DiffPoint struct {
	X, Y  float64
	Level int
}

// Rect is an axis-aligned rectangle of the difference plane on which the
// signed bucket is constant. Xmax and Ymax may be +Inf on the outer border.
type Rect struct {
	Xmin, Ymin, Xmax, Ymax float64
	Level                  int
}

// Polygon is one closed rectilinear boundary loop of a constant-bucket
// region; the first vertex is repeated at the end. Coordinates on the outer
// border may be +Inf.
type Polygon struct {
	Level    int
	Vertices [][2]float64
}

// DiffResult carries the three encodings of one signed difference
// computation. All three derive from the same cell grid, so they agree
// exactly on which region belongs to which bucket.
type DiffResult struct {
	// Xs and Ys are the sorted distinct coordinates spanning the grid.
	Xs, Ys []float64
	// Levels[i][j] is the signed bucket of the cell with lower-left corner
	// (Xs[i], Ys[j]); positive means the first group attains it more often.
	Levels [][]int
	// Points lists every grid corner with its bucket.
	Points []DiffPoint
	// Rectangles is a cover of the nonzero-bucket area by maximal
	// axis-aligned rectangles.
	Rectangles []Rect
	// Polygons traces the boundary loops of each nonzero-bucket region.
	Polygons []Polygon
}

// Diff computes the signed difference between the empirical attainment
// functions of two run groups, bucketed per DiffOptions. The attainment
// fraction of each group is constant on the cells of the grid induced by
// all point coordinates; the difference of the two fractions is bucketed by
// magnitude and sign. A group diffed against itself is zero everywhere.
func Diff(a, b *domain.Dataset, opts DiffOptions) (*DiffResult, error) {
	if err := validate2D(a); err != nil {
		return nil, err
	}
	if err := validate2D(b); err != nil {
		return nil, err
	}
	bounds, err := resolveBoundaries(opts, a.NumRuns()+b.NumRuns())
	if err != nil {
		return nil, err
	}

	xs := gatherCoords(a, b, 0)
	ys := gatherCoords(a, b, 1)

	countA := attainCounts(a, xs, ys)
	countB := attainCounts(b, xs, ys)

	res := &DiffResult{Xs: xs, Ys: ys}
	res.Levels = make([][]int, len(xs))
	nA, nB := float64(a.NumRuns()), float64(b.NumRuns())
	for i := range xs {
		res.Levels[i] = make([]int, len(ys))
		for j := range ys {
			frac := float64(countA[i][j])/nA - float64(countB[i][j])/nB
			res.Levels[i][j] = bucket(frac, bounds)
		}
	}
	for i := range xs {
		for j := range ys {
			res.Points = append(res.Points, DiffPoint{xs[i], ys[j], res.Levels[i][j]})
		}
	}
	res.Rectangles = coverRectangles(res)
	res.Polygons = tracePolygons(res)
	return res, nil
}

func resolveBoundaries(opts DiffOptions, totalRuns int) ([]float64, error) {
	if len(opts.Boundaries) > 0 {
		bounds := make([]float64, len(opts.Boundaries))
		copy(bounds, opts.Boundaries)
		prev := 0.0
		for _, v := range bounds {
			if v <= prev || v > 1 {
				return nil, domain.NewConfigError(
					"difference boundaries must be strictly ascending in (0, 1]",
					fmt.Errorf("got %v", opts.Boundaries))
			}
			prev = v
		}
		if bounds[len(bounds)-1] < 1 {
			bounds = append(bounds, 1)
		}
		return bounds, nil
	}
	k := opts.Intervals
	if k == 0 {
		k = totalRuns / 2
		if k < 1 {
			k = 1
		}
	}
	if k < 0 {
		return nil, domain.NewConfigError("interval count must be positive",
			fmt.Errorf("got %d", k))
	}
	bounds := make([]float64, k)
	for i := range bounds {
		bounds[i] = float64(i+1) / float64(k)
	}
	return bounds, nil
}

// bucket maps a signed fraction to its signed bucket index; zero stays
// zero, and magnitudes land in the first boundary at or above them.
func bucket(frac float64, bounds []float64) int {
	if frac == 0 {
		return 0
	}
	mag := math.Abs(frac)
	idx := sort.SearchFloat64s(bounds, mag) // first boundary >= mag
	if idx == len(bounds) {
		idx = len(bounds) - 1 // guard against rounding past 1.0
	}
	if frac > 0 {
		return idx + 1
	}
	return -(idx + 1)
}

func gatherCoords(a, b *domain.Dataset, dim int) []float64 {
	var coords []float64
	for _, ds := range []*domain.Dataset{a, b} {
		pts := ds.Points()
		for i := 0; i < pts.Rows(); i++ {
			coords = append(coords, pts.At(i, dim))
		}
	}
	return uniqueSorted(coords)
}

// attainCounts returns, per grid corner, how many of the dataset's runs
// weakly dominate it. For each grid column the runs' staircase heights are
// sorted once so each corner costs one binary search.
func attainCounts(ds *domain.Dataset, xs, ys []float64) [][]int {
	nruns := ds.NumRuns()
	// stair[k][i]: best (lowest) second objective run k reaches with first
	// objective <= xs[i].
	stair := make([][]float64, nruns)
	for k := 0; k < nruns; k++ {
		run := ds.Run(k)
		order := make([]int, run.Rows())
		for i := range order {
			order[i] = i
		}
		sort.Slice(order, func(p, q int) bool { return run.At(order[p], 0) < run.At(order[q], 0) })
		heights := make([]float64, len(xs))
		best := math.Inf(1)
		pi := 0
		for i, x := range xs {
			for pi < len(order) && run.At(order[pi], 0) <= x {
				if y := run.At(order[pi], 1); y < best {
					best = y
				}
				pi++
			}
			heights[i] = best
		}
		stair[k] = heights
	}

	counts := make([][]int, len(xs))
	column := make([]float64, nruns)
	for i := range xs {
		for k := 0; k < nruns; k++ {
			column[k] = stair[k][i]
		}
		sort.Float64s(column)
		counts[i] = make([]int, len(ys))
		for j, y := range ys {
			// Runs whose staircase height is <= y attain the corner.
			counts[i][j] = sort.SearchFloat64s(column, math.Nextafter(y, math.Inf(1)))
		}
	}
	return counts
}

// coverRectangles merges same-level cells into maximal rectangles: first
// horizontal runs per grid row, then vertical merging of identical spans.
func coverRectangles(res *DiffResult) []Rect {
	type span struct {
		i0, i1 int // cell columns [i0, i1)
		level  int
	}
	nx, ny := len(res.Xs), len(res.Ys)
	upperX := func(i int) float64 {
		if i >= nx {
			return math.Inf(1)
		}
		return res.Xs[i]
	}
	upperY := func(j int) float64 {
		if j >= ny {
			return math.Inf(1)
		}
		return res.Ys[j]
	}

	var rects []Rect
	open := map[span]int{} // span -> starting cell row
	for j := 0; j <= ny; j++ {
		next := map[span]int{}
		if j < ny {
			for i := 0; i < nx; {
				level := res.Levels[i][j]
				i1 := i + 1
				for i1 < nx && res.Levels[i1][j] == level {
					i1++
				}
				if level != 0 {
					s := span{i, i1, level}
					if j0, ok := open[s]; ok {
						next[s] = j0 // same span continues into this row
					} else {
						next[s] = j
					}
				}
				i = i1
			}
		}
		// Close rectangles that did not continue into row j.
		for s, j0 := range open {
			if _, ok := next[s]; !ok || next[s] != j0 {
				rects = append(rects, Rect{
					Xmin: res.Xs[s.i0], Ymin: res.Ys[j0],
					Xmax: upperX(s.i1), Ymax: upperY(j),
					Level: s.level,
				})
			}
		}
		open = next
	}
	sort.Slice(rects, func(a, b int) bool {
		ra, rb := rects[a], rects[b]
		if ra.Xmin != rb.Xmin {
			return ra.Xmin < rb.Xmin
		}
		if ra.Ymin != rb.Ymin {
			return ra.Ymin < rb.Ymin
		}
		return ra.Level < rb.Level
	})
	return rects
}

// vertex is a corner of the cell grid in index space; index nx (or ny) is
// the open outer border.
type vertex struct{ i, j int }

// tracePolygons walks the boundary edges of each constant-level region.
// Edges are collected in cell-index space with the region kept on the left,
// then stitched into closed loops.
func tracePolygons(res *DiffResult) []Polygon {
	nx, ny := len(res.Xs), len(res.Ys)
	levelAt := func(i, j int) int {
		if i < 0 || j < 0 || i >= nx || j >= ny {
			return 0
		}
		return res.Levels[i][j]
	}
	coord := func(i, j int) [2]float64 {
		x, y := math.Inf(1), math.Inf(1)
		if i < nx {
			x = res.Xs[i]
		}
		if j < ny {
			y = res.Ys[j]
		}
		return [2]float64{x, y}
	}

	levels := map[int]bool{}
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			if l := res.Levels[i][j]; l != 0 {
				levels[l] = true
			}
		}
	}
	ordered := make([]int, 0, len(levels))
	for l := range levels {
		ordered = append(ordered, l)
	}
	sort.Ints(ordered)

	var polys []Polygon
	for _, level := range ordered {
		// Directed boundary edges with the region on the left. A vertex can
		// carry two outgoing edges when two cells of the level touch only at
		// a corner, so edges fan out rather than overwrite.
		edges := map[vertex][]vertex{}
		addEdge := func(a, b vertex) { edges[a] = append(edges[a], b) }
		for i := 0; i < nx; i++ {
			for j := 0; j < ny; j++ {
				if res.Levels[i][j] != level {
					continue
				}
				if levelAt(i, j-1) != level { // bottom edge, left to right
					addEdge(vertex{i, j}, vertex{i + 1, j})
				}
				if levelAt(i+1, j) != level { // right edge, bottom to top
					addEdge(vertex{i + 1, j}, vertex{i + 1, j + 1})
				}
				if levelAt(i, j+1) != level { // top edge, right to left
					addEdge(vertex{i + 1, j + 1}, vertex{i, j + 1})
				}
				if levelAt(i-1, j) != level { // left edge, top to bottom
					addEdge(vertex{i, j + 1}, vertex{i, j})
				}
			}
		}
		for len(edges) > 0 {
			// Deterministic loop start: smallest remaining vertex.
			var start vertex
			first := true
			for v := range edges {
				if first || v.i < start.i || (v.i == start.i && v.j < start.j) {
					start = v
					first = false
				}
			}
			loop := [][2]float64{coord(start.i, start.j)}
			cur := start
			var dir [2]int
			for {
				cands, ok := edges[cur]
				if !ok {
					break
				}
				k := chooseOutgoing(cur, cands, dir)
				nxt := cands[k]
				if len(cands) == 1 {
					delete(edges, cur)
				} else {
					edges[cur] = append(cands[:k:k], cands[k+1:]...)
				}
				dir = [2]int{nxt.i - cur.i, nxt.j - cur.j}
				loop = append(loop, coord(nxt.i, nxt.j))
				cur = nxt
				if cur == start {
					break
				}
			}
			polys = append(polys, Polygon{Level: level, Vertices: simplifyLoop(loop)})
		}
	}
	return polys
}

// chooseOutgoing picks the next directed edge at cur. With a single
// candidate the choice is forced. At a degenerate corner where two cells of
// the region touch diagonally, preferring the sharpest left turn relative
// to the incoming direction keeps each cell's loop separate instead of
// splicing the two regions together. At a loop start there is no incoming
// direction yet, so the smallest candidate vertex is taken for determinism.
func chooseOutgoing(cur vertex, cands []vertex, dir [2]int) int {
	if len(cands) == 1 {
		return 0
	}
	if dir == [2]int{} {
		best := 0
		for k := 1; k < len(cands); k++ {
			if cands[k].i < cands[best].i ||
				(cands[k].i == cands[best].i && cands[k].j < cands[best].j) {
				best = k
			}
		}
		return best
	}
	// Turn preference: left, then straight, then right.
	left := [2]int{-dir[1], dir[0]}
	for _, want := range [][2]int{left, dir, {dir[1], -dir[0]}} {
		for k, c := range cands {
			if c.i-cur.i == want[0] && c.j-cur.j == want[1] {
				return k
			}
		}
	}
	return 0
}

// simplifyLoop drops collinear intermediate vertices from a closed
// rectilinear loop.
func simplifyLoop(loop [][2]float64) [][2]float64 {
	if len(loop) < 3 {
		return loop
	}
	// Drop the duplicate closing vertex while simplifying, re-add after.
	pts := loop[:len(loop)-1]
	out := make([][2]float64, 0, len(pts))
	n := len(pts)
	for i := 0; i < n; i++ {
		prev := pts[(i-1+n)%n]
		cur := pts[i]
		next := pts[(i+1)%n]
		sameX := prev[0] == cur[0] && cur[0] == next[0]
		sameY := prev[1] == cur[1] && cur[1] == next[1]
		if !sameX && !sameY {
			out = append(out, cur)
		}
	}
	out = append(out, out[0])
	return out
}
