package domain

import (
	"fmt"
	"math"
)

// Normalise rescales a flat row-major point buffer in place so that each
// objective maps linearly from its observed or supplied [lower, upper] bound
// onto [toLower, toUpper]. Objectives flagged as maximised map onto the
// reversed range [toUpper, toLower], so that "better" always lands at the
// same end regardless of direction.
//
// This is the only mutating operation in the engine. The caller owns data
// for its entire lifetime; no alias is retained after return.
//
// lower and upper may be nil or contain NaN entries, in which case the
// per-objective minimum and maximum observed in data fill the gaps. A bound
// pair with zero width is a DomainError: the affine map is undefined there
// and silently pinning values would hide degenerate input.
func Normalise(data []float64, nobj int, toLower, toUpper float64, lower, upper []float64, maximise Orientation) error {
	if nobj < 2 {
		return NewDomainError("normalisation requires at least two objectives",
			fmt.Errorf("got %d", nobj))
	}
	if len(data) == 0 || len(data)%nobj != 0 {
		return NewConfigError("matrix buffer must be a whole number of rows",
			fmt.Errorf("buffer length %d for %d objectives", len(data), nobj))
	}
	if err := maximise.Validate(nobj); err != nil {
		return err
	}
	if lower != nil && len(lower) != nobj {
		return NewConfigError("lower bound must have one value per objective",
			fmt.Errorf("%d values for %d objectives", len(lower), nobj))
	}
	if upper != nil && len(upper) != nobj {
		return NewConfigError("upper bound must have one value per objective",
			fmt.Errorf("%d values for %d objectives", len(upper), nobj))
	}

	npoints := len(data) / nobj
	lb := resolveBounds(data, nobj, npoints, lower, math.Min)
	ub := resolveBounds(data, nobj, npoints, upper, math.Max)

	for j := 0; j < nobj; j++ {
		width := ub[j] - lb[j]
		if width == 0 {
			return NewDomainError("objective range must have nonzero width",
				fmt.Errorf("objective %d has lower == upper == %g", j, lb[j]))
		}
		lo, hi := toLower, toUpper
		if maximise.Maximised(j) {
			lo, hi = hi, lo
		}
		scale := (hi - lo) / width
		for i := 0; i < npoints; i++ {
			k := i*nobj + j
			data[k] = lo + (data[k]-lb[j])*scale
		}
	}
	return nil
}

// resolveBounds fills missing (nil or NaN) bound entries with the observed
// per-objective extreme selected by pick.
func resolveBounds(data []float64, nobj, npoints int, given []float64, pick func(a, b float64) float64) []float64 {
	out := make([]float64, nobj)
	for j := range out {
		if given != nil && !math.IsNaN(given[j]) {
			out[j] = given[j]
			continue
		}
		v := data[j]
		for i := 1; i < npoints; i++ {
			v = pick(v, data[i*nobj+j])
		}
		out[j] = v
	}
	return out
}
