package whv

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/auto-optimization/mootools/internal/domain"
)

// Distribution selects the sample-weighting scheme of the Hype estimator.
type Distribution string

const (
	// DistUniform weights every sample equally; the estimate converges to
	// the plain hypervolume.
	DistUniform Distribution = "uniform"
	// DistExponential weights samples by an exponential density decaying
	// away from the ideal point in every objective; Mu[0] is the mean.
	DistExponential Distribution = "exponential"
	// DistPoint weights samples by a unit-variance Gaussian density
	// centred on the point Mu.
	DistPoint Distribution = "point"
)

// HypeConfig parameterizes one Monte-Carlo weighted-hypervolume estimate.
type HypeConfig struct {
	// Samples is the number of Monte-Carlo draws. Must be positive.
	Samples int
	// Dist selects the weighting scheme.
	Dist Distribution
	// Seed fixes the sample stream; identical seed, config, and inputs
	// reproduce a bit-identical estimate.
	Seed uint64
	// Mu parameterizes the non-uniform schemes: a single mean for
	// DistExponential, a full point for DistPoint. Ignored for
	// DistUniform.
	Mu []float64
}

// Hype estimates a weighted hypervolume by sampling the box spanned by the
// ideal and reference points, weighting each sample by the configured
// density, and scaling the mean weighted hit rate by the box volume.
//
// The result is a statistical estimate whose standard deviation shrinks as
// O(1/sqrt(Samples)), not an exact value. Each sample draws from its own
// generator keyed by (Seed, sample index), so partitioning the samples
// across goroutines cannot change the result.
func Hype(m domain.Matrix, ideal, ref []float64, cfg HypeConfig) (float64, error) {
	if m.IsEmpty() {
		return 0, domain.NewRangeError("weighted hypervolume requires at least one point",
			domain.ErrEmptyFront)
	}
	nobj := m.Cols()
	if len(ref) != nobj || len(ideal) != nobj {
		return 0, domain.NewDomainError("ideal and reference points must match the objective count",
			fmt.Errorf("%d objectives, ideal length %d, reference length %d", nobj, len(ideal), len(ref)))
	}
	boxVol := 1.0
	for j := 0; j < nobj; j++ {
		if !(ideal[j] < ref[j]) {
			return 0, domain.NewDomainError("ideal point must be strictly better than the reference in every objective",
				fmt.Errorf("objective %d: ideal %g, reference %g", j, ideal[j], ref[j]))
		}
		boxVol *= ref[j] - ideal[j]
	}
	if cfg.Samples <= 0 {
		return 0, domain.NewConfigError("sample count must be positive",
			fmt.Errorf("got %d", cfg.Samples))
	}
	weigh, err := sampleWeigher(cfg, ideal, nobj)
	if err != nil {
		return 0, err
	}

	sample := make([]float64, nobj)
	sum := 0.0
	for i := 0; i < cfg.Samples; i++ {
		rng := sampleRNG(cfg.Seed, uint64(i))
		for j := 0; j < nobj; j++ {
			sample[j] = ideal[j] + rng.Float64()*(ref[j]-ideal[j])
		}
		if dominated(m, sample) {
			sum += weigh(sample)
		}
	}
	return boxVol * sum / float64(cfg.Samples), nil
}

// sampleWeigher builds the per-sample weight function for the configured
// distribution, validating its parameters up front.
func sampleWeigher(cfg HypeConfig, ideal []float64, nobj int) (func([]float64) float64, error) {
	switch cfg.Dist {
	case DistUniform, "":
		return func([]float64) float64 { return 1 }, nil
	case DistExponential:
		if len(cfg.Mu) < 1 || !(cfg.Mu[0] > 0) {
			return nil, domain.NewConfigError("exponential weighting requires a positive mean",
				fmt.Errorf("got %v", cfg.Mu))
		}
		dist := distuv.Exponential{Rate: 1 / cfg.Mu[0]}
		return func(z []float64) float64 {
			w := 1.0
			for j, v := range z {
				w *= dist.Prob(v - ideal[j])
			}
			return w
		}, nil
	case DistPoint:
		if len(cfg.Mu) != nobj {
			return nil, domain.NewConfigError("point weighting requires a centre matching the objective count",
				fmt.Errorf("%d objectives, centre length %d", nobj, len(cfg.Mu)))
		}
		return func(z []float64) float64 {
			w := 1.0
			for j, v := range z {
				w *= distuv.Normal{Mu: cfg.Mu[j], Sigma: 1}.Prob(v)
			}
			return w
		}, nil
	default:
		return nil, domain.NewConfigError("unknown sampling distribution",
			fmt.Errorf("got %q", cfg.Dist))
	}
}

// sampleRNG derives an independent generator for one sample index. The
// seed and index pass through a splitmix finalizer so consecutive indices
// land far apart in the PCG state space.
func sampleRNG(seed, index uint64) *rand.Rand {
	return rand.New(rand.NewPCG(mix(seed, index), mix(index, seed^0x9e3779b97f4a7c15)))
}

func mix(a, b uint64) uint64 {
	z := a + 0x9e3779b97f4a7c15 + b*0xbf58476d1ce4e5b9
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// dominated reports whether any row of m weakly dominates z.
func dominated(m domain.Matrix, z []float64) bool {
	for i := 0; i < m.Rows(); i++ {
		row := m.Row(i)
		ok := true
		for j := range z {
			if row[j] > z[j] {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}
