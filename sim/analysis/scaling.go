package analysis

import (
	"github.com/inference-sim/scalesim/sim"
)

// ScalingSummary collects per-job scale event counts and the gaps between
// consecutive events of the same kind.
type ScalingSummary struct {
	Jobs                 int       `json:"jobs"`
	NumScaleUps          []float64 `json:"num_scale_ups"`
	NumScaleDowns        []float64 `json:"num_scale_downs"`
	JobsWithoutScaleUp   int       `json:"jobs_without_scale_up"`
	JobsWithoutScaleDown int       `json:"jobs_without_scale_down"`
	JobsWithScaling      int       `json:"jobs_with_scaling"`
	InterScaleUpTimes    []float64 `json:"inter_scale_up_times"`
	InterScaleDownTimes  []float64 `json:"inter_scale_down_times"`
}

// ScalingStats summarises executed jobs. The first gap of a job is measured
// from its start time.
func ScalingStats(jobs []*sim.Job) *ScalingSummary {
	s := &ScalingSummary{
		Jobs:                len(jobs),
		NumScaleUps:         make([]float64, 0, len(jobs)),
		NumScaleDowns:       make([]float64, 0, len(jobs)),
		InterScaleUpTimes:   []float64{},
		InterScaleDownTimes: []float64{},
	}
	for _, j := range jobs {
		s.NumScaleUps = append(s.NumScaleUps, float64(len(j.ScaleUp)))
		s.NumScaleDowns = append(s.NumScaleDowns, float64(len(j.ScaleDown)))
		if len(j.ScaleUp) == 0 {
			s.JobsWithoutScaleUp++
		}
		if len(j.ScaleDown) == 0 {
			s.JobsWithoutScaleDown++
		}
		if j.HasScaling() {
			s.JobsWithScaling++
		}
		s.InterScaleUpTimes = appendGaps(s.InterScaleUpTimes, j.StartTime, j.ScaleUp)
		s.InterScaleDownTimes = appendGaps(s.InterScaleDownTimes, j.StartTime, j.ScaleDown)
	}
	return s
}

func appendGaps(dst []float64, start float64, events []float64) []float64 {
	prev := start
	for _, e := range events {
		dst = append(dst, e-prev)
		prev = e
	}
	return dst
}

// ScalingReport is the fitted view of a ScalingSummary.
type ScalingReport struct {
	Summary        *ScalingSummary     `json:"summary"`
	ScaleUps       *DistributionReport `json:"num_scale_ups"`
	ScaleDowns     *DistributionReport `json:"num_scale_downs"`
	InterScaleUp   *DistributionReport `json:"inter_scale_up_times,omitempty"`
	InterScaleDown *DistributionReport `json:"inter_scale_down_times,omitempty"`
}

// Histogram bin counts for frequency and duration metrics.
const (
	FrequencyBins = 50
	TimeBins      = 100
)

// FitScaling builds distribution reports for scale event counts and gaps.
// Gap reports are omitted when no job scaled in that direction.
func FitScaling(jobs []*sim.Job) (*ScalingReport, error) {
	s := ScalingStats(jobs)
	r := &ScalingReport{Summary: s}
	var err error
	if r.ScaleUps, err = Report("num_scale_ups", s.NumScaleUps, FrequencyBins); err != nil {
		return nil, err
	}
	if r.ScaleDowns, err = Report("num_scale_downs", s.NumScaleDowns, FrequencyBins); err != nil {
		return nil, err
	}
	if len(s.InterScaleUpTimes) > 0 {
		if r.InterScaleUp, err = Report("inter_scale_up_times", s.InterScaleUpTimes, TimeBins); err != nil {
			return nil, err
		}
	}
	if len(s.InterScaleDownTimes) > 0 {
		if r.InterScaleDown, err = Report("inter_scale_down_times", s.InterScaleDownTimes, TimeBins); err != nil {
			return nil, err
		}
	}
	return r, nil
}
