package analysis

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrNoData is returned when a statistic needs at least one observation.
var ErrNoData = errors.New("no observations")

// Description summarises a sample.
type Description struct {
	N    int     `json:"n"`
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"` // population standard deviation
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// Describe returns count, mean, population std, min and max of x.
func Describe(x []float64) (Description, error) {
	if len(x) == 0 {
		return Description{}, ErrNoData
	}
	mean, std := stat.PopMeanStdDev(x, nil)
	return Description{N: len(x), Mean: mean, Std: std, Min: floats.Min(x), Max: floats.Max(x)}, nil
}

// Histogram holds bin mid points and probability densities.
type Histogram struct {
	Mids    []float64 `json:"mids"`
	Density []float64 `json:"density"`
}

// DensityHistogram bins x into equal-width bins over [min, max] and normalises
// counts to a density (integral 1). A constant sample uses [v-0.5, v+0.5].
func DensityHistogram(x []float64, bins int) (*Histogram, error) {
	if len(x) == 0 {
		return nil, ErrNoData
	}
	if bins < 1 {
		return nil, fmt.Errorf("histogram needs at least one bin, got %d", bins)
	}
	sorted := append([]float64(nil), x...)
	sort.Float64s(sorted)
	lo, hi := sorted[0], sorted[len(sorted)-1]
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	edges := floats.Span(make([]float64, bins+1), lo, hi)
	dividers := append([]float64(nil), edges...)
	// The last bin is closed: lift its upper divider just above the maximum.
	dividers[bins] = math.Nextafter(hi, math.Inf(1))
	counts := stat.Histogram(nil, dividers, sorted, nil)

	width := (hi - lo) / float64(bins)
	h := &Histogram{Mids: make([]float64, bins), Density: make([]float64, bins)}
	for i := 0; i < bins; i++ {
		h.Mids[i] = (edges[i] + edges[i+1]) / 2
		h.Density[i] = counts[i] / (float64(len(sorted)) * width)
	}
	return h, nil
}

// CDF returns x sorted with the percentile 100*i/(n-1) of each value.
// A single observation maps to the 100th percentile.
func CDF(x []float64) (values, percentiles []float64) {
	values = append([]float64(nil), x...)
	sort.Float64s(values)
	percentiles = make([]float64, len(values))
	n := len(values)
	for i := range values {
		if n == 1 {
			percentiles[i] = 100
			continue
		}
		percentiles[i] = 100 * float64(i) / float64(n-1)
	}
	return values, percentiles
}

// ExponentialFit is the maximum likelihood shifted exponential.
type ExponentialFit struct {
	Loc    float64 `json:"loc"`
	Scale  float64 `json:"scale"`
	Lambda float64 `json:"lambda"` // 1/scale; 0 for a constant sample
}

// FitExponential fits loc = min(x), scale = mean(x) - loc.
func FitExponential(x []float64) (ExponentialFit, error) {
	if len(x) == 0 {
		return ExponentialFit{}, ErrNoData
	}
	loc := floats.Min(x)
	fit := ExponentialFit{Loc: loc, Scale: stat.Mean(x, nil) - loc}
	if fit.Scale > 0 {
		fit.Lambda = 1 / fit.Scale
	}
	return fit, nil
}

// NormalFit is the maximum likelihood normal distribution.
type NormalFit struct {
	Loc   float64 `json:"loc"`
	Scale float64 `json:"scale"`
}

// FitNormal fits loc = mean(x), scale = population std of x.
func FitNormal(x []float64) (NormalFit, error) {
	if len(x) == 0 {
		return NormalFit{}, ErrNoData
	}
	mean, std := stat.PopMeanStdDev(x, nil)
	return NormalFit{Loc: mean, Scale: std}, nil
}

// DistributionReport bundles the summary, fits and histogram of one metric.
type DistributionReport struct {
	Name        string         `json:"name"`
	Description Description    `json:"description"`
	Normal      NormalFit      `json:"normal"`
	Exponential ExponentialFit `json:"exponential"`
	Histogram   *Histogram     `json:"histogram"`
}

// Report describes, fits and bins x.
func Report(name string, x []float64, bins int) (*DistributionReport, error) {
	d, err := Describe(x)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	n, _ := FitNormal(x)
	e, _ := FitExponential(x)
	h, err := DensityHistogram(x, bins)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &DistributionReport{Name: name, Description: d, Normal: n, Exponential: e, Histogram: h}, nil
}
