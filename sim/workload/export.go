package workload

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/inference-sim/scalesim/sim"
)

// OutputFileName names the executed-jobs file after the arrival transform in use.
func OutputFileName(cfg sim.PreprocessConfig) string {
	switch {
	case cfg.SubsampleStride > 1:
		return fmt.Sprintf("jobs_executed_subsampled%d.json", cfg.SubsampleStride)
	case cfg.StretchFactor > 1:
		return "jobs_executed_stretch" + strconv.FormatFloat(cfg.StretchFactor, 'f', -1, 64) + ".json"
	default:
		return "jobs_executed.json"
	}
}

// WriteJobsJSON writes jobs as an indented JSON array.
func WriteJobsJSON(path string, jobs []*sim.Job) error {
	data, err := json.MarshalIndent(jobs, "", "    ")
	if err != nil {
		return fmt.Errorf("marshaling jobs: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// ReadJobsJSON reads jobs written by WriteJobsJSON. Missing scale lists load as empty.
func ReadJobsJSON(path string) ([]*sim.Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var jobs []*sim.Job
	if err := json.Unmarshal(data, &jobs); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	for _, j := range jobs {
		if j == nil {
			continue
		}
		if j.ScaleUp == nil {
			j.ScaleUp = []float64{}
		}
		if j.ScaleDown == nil {
			j.ScaleDown = []float64{}
		}
		j.State = sim.StatePending
	}
	return jobs, nil
}
