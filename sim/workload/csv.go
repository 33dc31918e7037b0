package workload

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/zhangjyr/gocsv"

	"github.com/inference-sim/scalesim/sim"
)

// Timestamps is a list of instants stored in one CSV cell, ';'-separated.
type Timestamps []float64

func (ts Timestamps) MarshalCSV() (string, error) {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = strconv.FormatFloat(t, 'f', -1, 64)
	}
	return strings.Join(parts, ";"), nil
}

func (ts *Timestamps) UnmarshalCSV(cell string) error {
	*ts = Timestamps{}
	if cell == "" {
		return nil
	}
	for _, p := range strings.Split(cell, ";") {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return fmt.Errorf("timestamp %q: %w", p, err)
		}
		*ts = append(*ts, v)
	}
	return nil
}

// jobRow is the CSV form of an executed job.
type jobRow struct {
	ID            string     `csv:"id"`
	SubmittedTime float64    `csv:"submitted_time"`
	Runtime       float64    `csv:"runtime"`
	StartTime     float64    `csv:"start_time"`
	EndTime       float64    `csv:"end_time"`
	ScaleUp       Timestamps `csv:"scale_up"`
	ScaleDown     Timestamps `csv:"scale_down"`
	NumGPUs       int        `csv:"num_gpus"`
}

// WriteJobsCSV writes one row per job with a header.
func WriteJobsCSV(w io.Writer, jobs []*sim.Job) error {
	rows := make([]*jobRow, 0, len(jobs))
	for _, j := range jobs {
		rows = append(rows, &jobRow{
			ID:            j.ID,
			SubmittedTime: j.SubmittedTime,
			Runtime:       j.Runtime,
			StartTime:     j.StartTime,
			EndTime:       j.EndTime,
			ScaleUp:       Timestamps(j.ScaleUp),
			ScaleDown:     Timestamps(j.ScaleDown),
			NumGPUs:       j.NumGPUs,
		})
	}
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("writing jobs csv: %w", err)
	}
	return nil
}

// ReadJobsCSV reads jobs written by WriteJobsCSV.
func ReadJobsCSV(r io.Reader) ([]*sim.Job, error) {
	var rows []*jobRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("reading jobs csv: %w", err)
	}
	jobs := make([]*sim.Job, 0, len(rows))
	for _, row := range rows {
		j := sim.NewJob(row.ID, row.SubmittedTime, row.Runtime)
		j.StartTime = row.StartTime
		j.EndTime = row.EndTime
		j.ScaleUp = append(j.ScaleUp, row.ScaleUp...)
		j.ScaleDown = append(j.ScaleDown, row.ScaleDown...)
		j.NumGPUs = row.NumGPUs
		jobs = append(jobs, j)
	}
	return jobs, nil
}
