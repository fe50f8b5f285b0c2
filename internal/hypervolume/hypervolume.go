// Package hypervolume computes the exact hypervolume indicator and per-point
// exclusive contributions: the Lebesgue measure of the union of boxes spanned
// by each point and the reference point.
//
// Three exact algorithms cover the dimension range: an O(n log n) sweep for
// two objectives, a dimension sweep maintaining a 2D staircase for three,
// and recursive dimension slicing for four or more. The recursive algorithm
// is exact but its cost grows steeply with dimension and front size, up to
// O(n^(d-2) log n); it is never silently replaced by an approximation.
package hypervolume

import (
	"fmt"
	"math"
	"sort"

	"github.com/auto-optimization/mootools/internal/domain"
	"github.com/auto-optimization/mootools/internal/dominance"
)

// Compute returns the hypervolume of the region weakly dominated by the
// points and bounded by ref, under the given orientation. Dominated and
// duplicated points contribute nothing; overlapping boxes are never counted
// twice. An empty matrix has hypervolume zero.
//
// Every point must weakly dominate ref (be no worse in any objective under
// the orientation); a point lying exactly on the reference boundary is
// valid and spans zero volume. Violations return a DomainError.
func Compute(m domain.Matrix, ref []float64, maximise domain.Orientation) (float64, error) {
	w, wref, err := prepare(m, ref, maximise)
	if err != nil {
		return 0, err
	}
	if w.IsEmpty() {
		return 0, nil
	}
	return computeMin(rows(w), wref), nil
}

// Contributions returns, aligned to input order, the exclusive hypervolume
// contribution of every point: hv(S) - hv(S without the point). Dominated
// and duplicated points report exactly zero. For two objectives the whole
// vector falls out of a single sweep; for three or more each nondominated
// point costs one leave-one-out hypervolume computation, so the total is
// n+1 exact computations in the worst case.
func Contributions(m domain.Matrix, ref []float64, maximise domain.Orientation) ([]float64, error) {
	w, wref, err := prepare(m, ref, maximise)
	if err != nil {
		return nil, err
	}
	contrib := make([]float64, w.Rows())
	if w.IsEmpty() {
		return contrib, nil
	}

	// keepWeakly=false leaves exactly one of each duplicate group marked,
	// but a duplicated point has zero exclusive contribution: removing it
	// leaves its twin behind. uniqueMask clears those too.
	mask, err := dominance.IsNondominated(w, nil, false)
	if err != nil {
		return nil, err
	}
	clearDuplicates(w, mask)

	if w.Cols() == 2 {
		contrib2D(w, wref, mask, contrib)
		return contrib, nil
	}

	all := rows(w)
	total := computeMin(all, wref)
	rest := make([][]float64, 0, len(all)-1)
	for i, keep := range mask {
		if !keep {
			continue
		}
		rest = rest[:0]
		for j, r := range all {
			if j != i {
				rest = append(rest, r)
			}
		}
		c := total - computeMin(rest, wref)
		if c < 0 {
			c = 0 // guard against floating-point jitter
		}
		contrib[i] = c
	}
	return contrib, nil
}

// prepare validates shapes, applies the orientation, and checks that the
// reference point bounds every input point.
func prepare(m domain.Matrix, ref []float64, maximise domain.Orientation) (domain.Matrix, []float64, error) {
	if m.Cols() < 2 {
		return domain.Matrix{}, nil, domain.NewDomainError(
			"hypervolume requires at least two objectives",
			fmt.Errorf("got %d", m.Cols()))
	}
	if len(ref) != m.Cols() {
		return domain.Matrix{}, nil, domain.NewDomainError(
			"reference point must match the data dimensionality",
			fmt.Errorf("%d reference values for %d objectives", len(ref), m.Cols()))
	}
	if err := maximise.Validate(m.Cols()); err != nil {
		return domain.Matrix{}, nil, err
	}
	w := maximise.ApplyToMatrix(m)
	wref := maximise.ApplyToPoint(ref)
	for i := 0; i < w.Rows(); i++ {
		p := w.Row(i)
		for j, v := range p {
			if v > wref[j] {
				return domain.Matrix{}, nil, domain.NewDomainError(
					"reference point must be weakly dominated by every input point",
					fmt.Errorf("point %d exceeds reference in objective %d (%g > %g): %w",
						i, j, v, wref[j], domain.ErrReferenceNotDominated))
			}
		}
	}
	return w, wref, nil
}

func rows(m domain.Matrix) [][]float64 {
	out := make([][]float64, m.Rows())
	for i := range out {
		out[i] = m.Row(i)
	}
	return out
}

// computeMin dispatches on dimension. Points are under the minimisation
// convention and all weakly dominate ref.
func computeMin(points [][]float64, ref []float64) float64 {
	if len(points) == 0 {
		return 0
	}
	switch len(ref) {
	case 2:
		return hv2D(points, ref)
	case 3:
		return hv3D(points, ref)
	default:
		return hvSlicing(points, ref)
	}
}

// hv2D sweeps the points in ascending x, accumulating one horizontal slab
// per staircase step. Dominated points never improve the running minimum y
// and so add nothing.
func hv2D(points [][]float64, ref []float64) float64 {
	sorted := make([][]float64, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(a, b int) bool {
		if sorted[a][0] != sorted[b][0] {
			return sorted[a][0] < sorted[b][0]
		}
		return sorted[a][1] < sorted[b][1]
	})
	vol := 0.0
	prevY := ref[1]
	for _, p := range sorted {
		if p[1] < prevY {
			vol += (ref[0] - p[0]) * (prevY - p[1])
			prevY = p[1]
		}
	}
	return vol
}

// hv3D sweeps the points in ascending z, maintaining the staircase of their
// (x, y) projections together with the exact area it dominates. Each slab
// between consecutive z levels contributes area times height.
func hv3D(points [][]float64, ref []float64) float64 {
	sorted := make([][]float64, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(a, b int) bool { return sorted[a][2] < sorted[b][2] })

	st := newStaircase(ref[0], ref[1])
	vol := 0.0
	prevZ := sorted[0][2]
	for _, p := range sorted {
		if p[2] > prevZ {
			vol += st.area * (p[2] - prevZ)
			prevZ = p[2]
		}
		st.insert(p[0], p[1])
	}
	vol += st.area * (ref[2] - prevZ)
	return vol
}

// staircase maintains a mutually nondominated set of 2D points sorted by
// ascending x (hence strictly descending y) together with the area they
// dominate up to the reference corner (refX, refY).
type staircase struct {
	steps      []step
	refX, refY float64
	area       float64
}

type step struct{ x, y float64 }

func newStaircase(refX, refY float64) *staircase {
	return &staircase{refX: refX, refY: refY}
}

// insert adds the point (x, y), updating the dominated area. A point weakly
// dominated by the current staircase changes nothing. The area bookkeeping
// works on the vertical-strip decomposition: step i owns the strip from its
// x to the next step's x (or refX) with height refY - y_i.
func (s *staircase) insert(x, y float64) {
	pos := sort.Search(len(s.steps), func(i int) bool { return s.steps[i].x >= x })
	if pos > 0 && s.steps[pos-1].y <= y {
		return
	}
	if pos < len(s.steps) && s.steps[pos].x == x && s.steps[pos].y <= y {
		return
	}
	// The left neighbour's strip now ends at x instead of at the next step.
	if pos > 0 {
		oldRight := s.refX
		if pos < len(s.steps) {
			oldRight = s.steps[pos].x
		}
		s.area -= (oldRight - x) * (s.refY - s.steps[pos-1].y)
	}
	// Remove the steps the new point dominates, each with its full strip.
	end := pos
	for end < len(s.steps) && s.steps[end].y >= y {
		right := s.refX
		if end+1 < len(s.steps) {
			right = s.steps[end+1].x
		}
		s.area -= (right - s.steps[end].x) * (s.refY - s.steps[end].y)
		end++
	}
	right := s.refX
	if end < len(s.steps) {
		right = s.steps[end].x
	}
	s.area += (right - x) * (s.refY - y)
	s.steps = append(s.steps[:pos], append([]step{{x, y}}, s.steps[end:]...)...)
}

// hvSlicing is the recursive dimension-slicing algorithm for four or more
// objectives: slice along the last objective, recursing on the nondominated
// projection of the points seen so far.
func hvSlicing(points [][]float64, ref []float64) float64 {
	d := len(ref)
	if d == 3 {
		return hv3D(points, ref)
	}
	sorted := make([][]float64, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(a, b int) bool { return sorted[a][d-1] < sorted[b][d-1] })

	vol := 0.0
	for i := 0; i < len(sorted); {
		z := sorted[i][d-1]
		j := i + 1
		for j < len(sorted) && sorted[j][d-1] == z {
			j++
		}
		zNext := ref[d-1]
		if j < len(sorted) {
			zNext = sorted[j][d-1]
		}
		if zNext > z {
			proj := projectNondominated(sorted[:j], d-1)
			vol += hvSlicing(proj, ref[:d-1]) * (zNext - z)
		}
		i = j
	}
	return vol
}

// projectNondominated drops the last objective from each point and removes
// the dominated projections, shrinking the recursive subproblem.
func projectNondominated(points [][]float64, d int) [][]float64 {
	data := make([]float64, 0, len(points)*d)
	for _, p := range points {
		data = append(data, p[:d]...)
	}
	m := domain.MustMatrix(data, d)
	mask, _ := dominance.IsNondominated(m, nil, false)
	out := make([][]float64, 0, len(points))
	for i, keep := range mask {
		if keep {
			out = append(out, m.Row(i))
		}
	}
	return out
}

// contrib2D fills the exclusive contributions of the unique nondominated
// points in one pass over the sorted front: each point owns the rectangle
// between its coordinates and its staircase neighbours.
func contrib2D(m domain.Matrix, ref []float64, mask []bool, contrib []float64) {
	type fp struct {
		idx  int
		x, y float64
	}
	front := make([]fp, 0, m.Rows())
	for i, keep := range mask {
		if keep {
			front = append(front, fp{i, m.At(i, 0), m.At(i, 1)})
		}
	}
	sort.Slice(front, func(a, b int) bool { return front[a].x < front[b].x })
	for i, p := range front {
		leftY := ref[1]
		if i > 0 {
			leftY = front[i-1].y
		}
		rightX := ref[0]
		if i+1 < len(front) {
			rightX = front[i+1].x
		}
		contrib[p.idx] = (rightX - p.x) * (leftY - p.y)
	}
}

// clearDuplicates zeroes the mask for every point whose coordinates occur
// more than once in the matrix; duplicates have no exclusive volume.
func clearDuplicates(m domain.Matrix, mask []bool) {
	counts := make(map[string]int, m.Rows())
	key := func(i int) string {
		b := make([]byte, 0, m.Cols()*8)
		for _, v := range m.Row(i) {
			bits := math.Float64bits(v)
			for s := 0; s < 64; s += 8 {
				b = append(b, byte(bits>>s))
			}
		}
		return string(b)
	}
	for i := 0; i < m.Rows(); i++ {
		counts[key(i)]++
	}
	for i := range mask {
		if mask[i] && counts[key(i)] > 1 {
			mask[i] = false
		}
	}
}
