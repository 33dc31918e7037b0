package workload

import (
	"fmt"
	"math"
	"math/rand"
)

// Sampler draws non-negative durations in seconds.
type Sampler interface {
	Sample(rng *rand.Rand) float64
}

// ExponentialSampler draws from an exponential distribution with the given mean (scale).
type ExponentialSampler struct {
	mean float64
}

func (s *ExponentialSampler) Sample(rng *rand.Rand) float64 {
	return rng.ExpFloat64() * s.mean
}

// ConstantSampler always returns the same value.
type ConstantSampler struct {
	value float64
}

func (s *ConstantSampler) Sample(_ *rand.Rand) float64 {
	return s.value
}

// GaussianSampler draws normal values clamped at zero.
type GaussianSampler struct {
	mean, stdDev float64
}

func (s *GaussianSampler) Sample(rng *rand.Rand) float64 {
	return math.Max(0, rng.NormFloat64()*s.stdDev+s.mean)
}

// EmpiricalSampler resamples uniformly from observed values, e.g. runtimes
// read from a cluster log.
type EmpiricalSampler struct {
	values []float64
}

// NewEmpiricalSampler copies values; negative observations are dropped.
func NewEmpiricalSampler(values []float64) *EmpiricalSampler {
	kept := make([]float64, 0, len(values))
	for _, v := range values {
		if v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v) {
			kept = append(kept, v)
		}
	}
	return &EmpiricalSampler{values: kept}
}

func (s *EmpiricalSampler) Sample(rng *rand.Rand) float64 {
	if len(s.values) == 0 {
		return 0
	}
	return s.values[rng.Intn(len(s.values))]
}

// requireParam checks that all required keys exist in a params map.
func requireParam(params map[string]float64, keys ...string) error {
	for _, k := range keys {
		if _, ok := params[k]; !ok {
			return fmt.Errorf("distribution requires parameter %q", k)
		}
	}
	return nil
}

// NewSampler creates a Sampler from a DistSpec.
func NewSampler(spec DistSpec) (Sampler, error) {
	switch spec.Type {
	case "exponential":
		if err := requireParam(spec.Params, "mean"); err != nil {
			return nil, err
		}
		return &ExponentialSampler{mean: spec.Params["mean"]}, nil

	case "constant":
		if err := requireParam(spec.Params, "value"); err != nil {
			return nil, err
		}
		return &ConstantSampler{value: spec.Params["value"]}, nil

	case "gaussian":
		if err := requireParam(spec.Params, "mean", "std_dev"); err != nil {
			return nil, err
		}
		return &GaussianSampler{mean: spec.Params["mean"], stdDev: spec.Params["std_dev"]}, nil

	case "empirical":
		if len(spec.Values) == 0 {
			return nil, fmt.Errorf("empirical distribution requires observed values")
		}
		return NewEmpiricalSampler(spec.Values), nil

	default:
		return nil, fmt.Errorf("unknown distribution type %q", spec.Type)
	}
}
