package eaf

import (
	"github.com/auto-optimization/mootools/internal/domain"
	"github.com/auto-optimization/mootools/internal/hypervolume"
)

// VorobResult carries the Vorob'ev threshold of a run group together with
// the attainment surface at that threshold and the mean per-run
// hypervolume the threshold was matched against.
type VorobResult struct {
	// Threshold is the attainment percentile whose surface has
	// hypervolume equal to the group's mean per-run hypervolume.
	Threshold float64
	// Expectation is the attainment surface at Threshold.
	Expectation domain.Matrix
	// AvgHypervolume is the mean hypervolume of the individual runs.
	AvgHypervolume float64
}

// VorobT locates the Vorob'ev threshold by bisecting the attainment
// percentile until the hypervolume of the attained surface matches the
// mean per-run hypervolume.
func VorobT(ds *domain.Dataset, ref []float64) (*VorobResult, error) {
	if err := validate2D(ds); err != nil {
		return nil, err
	}
	avg, err := meanRunHypervolume(ds, ref)
	if err != nil {
		return nil, err
	}

	lo, hi := 0.0, 100.0
	var surface domain.Matrix
	for iter := 0; iter < 64 && hi-lo > 1e-9; iter++ {
		mid := (lo + hi) / 2
		surfaces, err := Compute(ds, []float64{mid})
		if err != nil {
			return nil, err
		}
		surface = surfaces[0].Points
		hv, err := hypervolume.Compute(surface, ref, nil)
		if err != nil {
			return nil, err
		}
		if hv > avg {
			lo = mid
		} else {
			hi = mid
		}
	}
	threshold := (lo + hi) / 2
	surfaces, err := Compute(ds, []float64{threshold})
	if err != nil {
		return nil, err
	}
	return &VorobResult{
		Threshold:      threshold,
		Expectation:    surfaces[0].Points,
		AvgHypervolume: avg,
	}, nil
}

// VorobDev measures the Vorob'ev deviation: the expected hypervolume of
// the symmetric difference between each run's attained region and the
// expectation surface ve.
func VorobDev(ds *domain.Dataset, ref []float64, ve domain.Matrix) (float64, error) {
	if err := validate2D(ds); err != nil {
		return 0, err
	}
	hvVE, err := hypervolume.Compute(ve, ref, nil)
	if err != nil {
		return 0, err
	}
	meanRun, err := meanRunHypervolume(ds, ref)
	if err != nil {
		return 0, err
	}
	sumUnion := 0.0
	for k := 0; k < ds.NumRuns(); k++ {
		union, err := ve.Append(ds.Run(k))
		if err != nil {
			return 0, err
		}
		hv, err := hypervolume.Compute(union, ref, nil)
		if err != nil {
			return 0, err
		}
		sumUnion += hv
	}
	meanUnion := sumUnion / float64(ds.NumRuns())
	dev := 2*meanUnion - hvVE - meanRun
	if dev < 0 {
		dev = 0 // rounding can push the estimate slightly negative
	}
	return dev, nil
}

func meanRunHypervolume(ds *domain.Dataset, ref []float64) (float64, error) {
	sum := 0.0
	for k := 0; k < ds.NumRuns(); k++ {
		hv, err := hypervolume.Compute(ds.Run(k), ref, nil)
		if err != nil {
			return 0, err
		}
		sum += hv
	}
	return sum / float64(ds.NumRuns()), nil
}
