// Package dominance implements Pareto-dominance filtering: nondominated
// masking, dominated-point removal (per set or per run), and Pareto-rank
// peeling. Every downstream indicator that needs "is this point on the
// front" builds on this package.
//
// All comparisons run under the minimisation convention; maximised
// objectives are sign-flipped on entry via domain.Orientation.
package dominance

import (
	"encoding/binary"
	"fmt"
	"math"
	"sort"

	"github.com/auto-optimization/mootools/internal/domain"
)

// IsNondominated returns one boolean per point, true iff no other point in
// the matrix dominates it. A point a dominates b when a is no worse in every
// objective and strictly better in at least one, under the given
// orientation. Exact duplicates never dominate each other; when keepWeakly
// is false only the last occurrence of a duplicated nondominated point is
// retained, matching the reference behaviour of the C implementation.
//
// The mask is aligned to input order. The sweep is O(n log n) for two and
// three objectives and O(n^2) pairwise otherwise.
func IsNondominated(m domain.Matrix, maximise domain.Orientation, keepWeakly bool) ([]bool, error) {
	if err := maximise.Validate(m.Cols()); err != nil {
		return nil, err
	}
	w := maximise.ApplyToMatrix(m)

	var mask []bool
	switch w.Cols() {
	case 2:
		mask = nondominated2D(w)
	case 3:
		mask = nondominated3D(w)
	default:
		mask = nondominatedGeneric(w)
	}
	if !keepWeakly {
		dropDuplicates(w, mask)
	}
	return mask, nil
}

// Filter returns a matrix holding only the mutually nondominated points of
// m, in input order.
func Filter(m domain.Matrix, maximise domain.Orientation, keepWeakly bool) (domain.Matrix, error) {
	mask, err := IsNondominated(m, maximise, keepWeakly)
	if err != nil {
		return domain.Matrix{}, err
	}
	return m.Select(mask), nil
}

// FilterSets applies nondominated filtering independently to every run of a
// dataset and reassembles the surviving points into a new dataset with
// updated run boundaries.
func FilterSets(ds *domain.Dataset, maximise domain.Orientation, keepWeakly bool) (*domain.Dataset, error) {
	keep := make([]bool, 0, ds.NumPoints())
	cumsizes := make([]int, ds.NumRuns())
	total := 0
	for k := 0; k < ds.NumRuns(); k++ {
		mask, err := IsNondominated(ds.Run(k), maximise, keepWeakly)
		if err != nil {
			return nil, fmt.Errorf("run %d: %w", k, err)
		}
		for _, b := range mask {
			if b {
				total++
			}
		}
		keep = append(keep, mask...)
		cumsizes[k] = total
	}
	return domain.NewDataset(ds.Points().Select(keep), cumsizes)
}

// Ranks assigns each point its Pareto rank: rank 0 is the nondominated
// front, rank k the front after removing every point of rank below k.
// Duplicated points share a rank. The result is deterministic and aligned
// to input order.
func Ranks(m domain.Matrix, maximise domain.Orientation) ([]int, error) {
	if err := maximise.Validate(m.Cols()); err != nil {
		return nil, err
	}
	w := maximise.ApplyToMatrix(m)

	ranks := make([]int, w.Rows())
	remaining := make([]int, w.Rows())
	for i := range remaining {
		remaining[i] = i
	}
	for rank := 0; len(remaining) > 0; rank++ {
		sub := subMatrix(w, remaining)
		// keepWeakly is irrelevant here: duplicates are mutually
		// nondominated, so they peel off together.
		mask, err := IsNondominated(sub, nil, true)
		if err != nil {
			return nil, err
		}
		next := remaining[:0:0]
		for j, idx := range remaining {
			if mask[j] {
				ranks[idx] = rank
			} else {
				next = append(next, idx)
			}
		}
		remaining = next
	}
	return ranks, nil
}

func subMatrix(m domain.Matrix, rows []int) domain.Matrix {
	data := make([]float64, 0, len(rows)*m.Cols())
	for _, i := range rows {
		data = append(data, m.Row(i)...)
	}
	return domain.MustMatrix(data, m.Cols())
}

// weaklyDominates reports a <= b in every objective. Combined with a != b it
// gives strict dominance.
func weaklyDominates(a, b []float64) bool {
	for k := range a {
		if a[k] > b[k] {
			return false
		}
	}
	return true
}

func equalRows(a, b []float64) bool {
	for k := range a {
		if a[k] != b[k] {
			return false
		}
	}
	return true
}

// nondominatedGeneric is the O(n^2) pairwise check used for four or more
// objectives.
func nondominatedGeneric(m domain.Matrix) []bool {
	n := m.Rows()
	mask := make([]bool, n)
	for i := 0; i < n; i++ {
		mask[i] = true
	}
	for i := 0; i < n; i++ {
		if !mask[i] {
			continue
		}
		pi := m.Row(i)
		for j := 0; j < n; j++ {
			if i == j || !mask[j] {
				continue
			}
			pj := m.Row(j)
			if weaklyDominates(pi, pj) && !equalRows(pi, pj) {
				mask[j] = false
			}
		}
	}
	return mask
}

// nondominated2D runs the classic O(n log n) sweep: sort lexicographically
// by (x, y), then a point is dominated iff a previously seen point has a
// smaller-or-equal y that is not an exact duplicate.
func nondominated2D(m domain.Matrix) []bool {
	n := m.Rows()
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		pa, pb := m.Row(order[a]), m.Row(order[b])
		if pa[0] != pb[0] {
			return pa[0] < pb[0]
		}
		return pa[1] < pb[1]
	})

	mask := make([]bool, n)
	bestY := math.Inf(1)
	bestYminX := math.Inf(1)
	for _, idx := range order {
		p := m.Row(idx)
		switch {
		case p[1] < bestY:
			mask[idx] = true
			bestY, bestYminX = p[1], p[0]
		case p[1] == bestY && p[0] == bestYminX:
			// Exact duplicate of the current best; duplicates are mutually
			// nondominated and resolved by dropDuplicates if requested.
			mask[idx] = true
		default:
			mask[idx] = false
		}
	}
	return mask
}

// stairEntry is one step of the 2D lower envelope maintained by the 3D
// sweep: x ascending, y strictly descending, z of the first point that
// created the step.
type stairEntry struct{ x, y, z float64 }

// nondominated3D sorts by (z, x, y) and sweeps, maintaining the staircase
// of the (x, y) projections of accepted points. Every earlier point has
// z <= current, so a staircase entry weakly dominating the projection
// dominates the point unless it is an exact 3D duplicate.
func nondominated3D(m domain.Matrix) []bool {
	n := m.Rows()
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		pa, pb := m.Row(order[a]), m.Row(order[b])
		if pa[2] != pb[2] {
			return pa[2] < pb[2]
		}
		if pa[0] != pb[0] {
			return pa[0] < pb[0]
		}
		return pa[1] < pb[1]
	})

	mask := make([]bool, n)
	stairs := make([]stairEntry, 0, n)
	for _, idx := range order {
		p := m.Row(idx)
		// Largest staircase x <= p.x holds the minimal y over that prefix.
		pos := sort.Search(len(stairs), func(i int) bool { return stairs[i].x > p[0] })
		dominated := false
		if pos > 0 {
			e := stairs[pos-1]
			if e.y <= p[1] {
				dominated = !(e.x == p[0] && e.y == p[1] && e.z == p[2])
			}
		}
		if dominated {
			continue
		}
		mask[idx] = true
		if pos > 0 && stairs[pos-1].x == p[0] && stairs[pos-1].y == p[1] {
			continue // duplicate projection already on the envelope
		}
		// Remove steps whose projection p now weakly dominates.
		end := pos
		for end < len(stairs) && stairs[end].y >= p[1] {
			end++
		}
		stairs = append(stairs[:pos], append([]stairEntry{{p[0], p[1], p[2]}}, stairs[end:]...)...)
	}
	return mask
}

// dropDuplicates clears the mask for all but the last occurrence of each
// duplicated nondominated point.
func dropDuplicates(m domain.Matrix, mask []bool) {
	last := make(map[string]int, m.Rows())
	var key []byte
	for i := 0; i < m.Rows(); i++ {
		if !mask[i] {
			continue
		}
		key = key[:0]
		for _, v := range m.Row(i) {
			key = binary.LittleEndian.AppendUint64(key, math.Float64bits(v))
		}
		if prev, ok := last[string(key)]; ok {
			mask[prev] = false
		}
		last[string(key)] = i
	}
}
