// Package testutils provides deterministic Pareto-front generators for
// tests and benchmarks. All generators are seeded, so fixtures are
// reproducible across runs and machines.
package testutils

import (
	"math"
	"math/rand/v2"

	"github.com/auto-optimization/mootools/internal/domain"
)

// ConvexFront generates n nondominated points on the quarter circle of
// the given radius, ordered by ascending first objective. The front is
// convex under minimisation, the shape most benchmark problems produce.
func ConvexFront(n int, radius float64) domain.Matrix {
	flat := make([]float64, 0, 2*n)
	for i := 0; i < n; i++ {
		theta := (float64(i) + 0.5) / float64(n) * math.Pi / 2
		flat = append(flat, radius*(1-math.Cos(theta)), radius*(1-math.Sin(theta)))
	}
	return domain.MustMatrix(flat, 2)
}

// RandomPoints generates n points with nobj objectives drawn uniformly
// from [0, scale). The set generally contains dominated points.
func RandomPoints(n, nobj int, scale float64, seed uint64) domain.Matrix {
	rng := rand.New(rand.NewPCG(seed, seed^0xda3e39cb94b95bdb))
	flat := make([]float64, n*nobj)
	for i := range flat {
		flat[i] = rng.Float64() * scale
	}
	return domain.MustMatrix(flat, nobj)
}

// RandomDataset generates a multi-run dataset of runs x pointsPerRun
// random points, for exercising per-run operations such as attainment
// surfaces.
func RandomDataset(runs, pointsPerRun, nobj int, scale float64, seed uint64) *domain.Dataset {
	rng := rand.New(rand.NewPCG(seed, seed+1))
	flat := make([]float64, runs*pointsPerRun*nobj)
	for i := range flat {
		flat[i] = rng.Float64() * scale
	}
	cumsizes := make([]int, runs)
	for k := range cumsizes {
		cumsizes[k] = (k + 1) * pointsPerRun
	}
	ds, err := domain.NewDataset(domain.MustMatrix(flat, nobj), cumsizes)
	if err != nil {
		panic(err)
	}
	return ds
}
