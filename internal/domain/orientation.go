package domain

import "fmt"

// Orientation selects, per objective, whether larger values are better.
// A nil Orientation means every objective is minimised, which is the
// convention all engine internals use; maximised objectives are sign-flipped
// on entry so that downstream comparisons only ever deal with minimisation.
type Orientation []bool

// MinimiseAll returns the default orientation: every objective minimised.
// A nil Orientation behaves identically.
func MinimiseAll() Orientation { return nil }

// Uniform returns an orientation applying the same direction to all nobj
// objectives.
func Uniform(maximise bool, nobj int) Orientation {
	o := make(Orientation, nobj)
	for i := range o {
		o[i] = maximise
	}
	return o
}

// Validate checks that the orientation length matches the objective count.
// A nil orientation is always valid.
func (o Orientation) Validate(nobj int) error {
	if o == nil || len(o) == nobj {
		return nil
	}
	return NewConfigError("orientation must name every objective",
		fmt.Errorf("%d flags for %d objectives", len(o), nobj))
}

// Maximised reports whether objective j is maximised.
func (o Orientation) Maximised(j int) bool { return o != nil && o[j] }

// AnyMaximised reports whether any objective is maximised.
func (o Orientation) AnyMaximised() bool {
	for _, m := range o {
		if m {
			return true
		}
	}
	return false
}

// ApplyToMatrix returns a minimisation-convention copy of m: maximised
// objectives are negated. When no objective is maximised the original view
// is returned unchanged, avoiding a copy.
func (o Orientation) ApplyToMatrix(m Matrix) Matrix {
	if !o.AnyMaximised() {
		return m
	}
	c := m.Clone()
	for i := 0; i < c.rows; i++ {
		row := c.data[i*c.cols : (i+1)*c.cols]
		for j, max := range o {
			if max {
				row[j] = -row[j]
			}
		}
	}
	return c
}

// ApplyToPoint returns a minimisation-convention copy of a single point.
func (o Orientation) ApplyToPoint(p []float64) []float64 {
	if !o.AnyMaximised() {
		return p
	}
	q := make([]float64, len(p))
	copy(q, p)
	for j, max := range o {
		if max {
			q[j] = -q[j]
		}
	}
	return q
}
