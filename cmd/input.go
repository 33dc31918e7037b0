package cmd

import (
	"fmt"
	"os"

	"github.com/inference-sim/scalesim/sim"
	"github.com/inference-sim/scalesim/sim/workload"
)

// Input formats accepted by --input-format.
const (
	formatRecords = "records" // filtered cluster jobs file written by `convert`
	formatJobs    = "jobs"    // job JSON written by `sample` or `simulate`
	formatCSV     = "csv"     // job CSV written by `simulate --csv`
)

// loadJobs reads simulator jobs from path in the given format.
func loadJobs(path, format string) ([]*sim.Job, error) {
	switch format {
	case formatRecords:
		records, err := workload.LoadJobsFile(path)
		if err != nil {
			return nil, err
		}
		return workload.ToJobs(records)
	case formatJobs:
		return workload.ReadJobsJSON(path)
	case formatCSV:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		defer f.Close()
		return workload.ReadJobsCSV(f)
	default:
		return nil, fmt.Errorf("unknown input format %q; valid: records, jobs, csv", format)
	}
}
