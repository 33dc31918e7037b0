package analysis

import (
	"fmt"
	"sort"

	"github.com/inference-sim/scalesim/sim"
)

// InterArrivals returns the gaps between consecutive submissions in minutes,
// after sorting by submission time.
func InterArrivals(jobs []*sim.Job) []float64 {
	arrivals := make([]float64, len(jobs))
	for i, j := range jobs {
		arrivals[i] = j.SubmittedTime
	}
	sort.Float64s(arrivals)
	gaps := make([]float64, 0, len(arrivals))
	for i := 1; i < len(arrivals); i++ {
		gaps = append(gaps, (arrivals[i]-arrivals[i-1])/60)
	}
	return gaps
}

// ArrivalFit models inter-arrival times (minutes).
type ArrivalFit struct {
	Description Description    `json:"description"`
	PoissonMu   float64        `json:"poisson_mu"`
	Exponential ExponentialFit `json:"exponential"`
}

// FitArrivals fits a Poisson rate and a shifted exponential to the inter-arrival times.
func FitArrivals(jobs []*sim.Job) (*ArrivalFit, error) {
	gaps := InterArrivals(jobs)
	d, err := Describe(gaps)
	if err != nil {
		return nil, fmt.Errorf("inter-arrival times: %w", err)
	}
	e, err := FitExponential(gaps)
	if err != nil {
		return nil, err
	}
	return &ArrivalFit{Description: d, PoissonMu: d.Mean, Exponential: e}, nil
}

// Runtimes extracts job runtimes in seconds.
func Runtimes(jobs []*sim.Job) []float64 {
	out := make([]float64, len(jobs))
	for i, j := range jobs {
		out[i] = j.Runtime
	}
	return out
}

// FitRuntimes reports the runtime distribution with normal and exponential fits.
func FitRuntimes(jobs []*sim.Job) (*DistributionReport, error) {
	return Report("runtime", Runtimes(jobs), TimeBins)
}
