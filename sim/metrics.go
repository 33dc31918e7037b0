// Aggregates run-level statistics over an annotated job list.

package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// Metrics summarises one replay for reporting and for comparing sweep configurations.
type Metrics struct {
	Slots              int     `json:"capacity_slots"`
	Jobs               int     `json:"jobs"`
	DelayedJobs        int     `json:"delayed_jobs"`
	JobsWithScaling    int     `json:"jobs_with_scaling"`
	JobsWithScaleUp    int     `json:"jobs_with_scale_up"`
	JobsWithScaleDown  int     `json:"jobs_with_scale_down"`
	TotalScaleUps      int     `json:"total_scale_ups"`
	TotalScaleDowns    int     `json:"total_scale_downs"`
	MeanQueueingDelay  float64 `json:"mean_queueing_delay_s"`
	MaxQueueingDelay   float64 `json:"max_queueing_delay_s"`
	Makespan           float64 `json:"makespan_s"`
	PeakConcurrentJobs int     `json:"peak_concurrent_jobs"`
}

// TotalScalingEvents is the objective maximised by parameter sweeps.
func (m *Metrics) TotalScalingEvents() int {
	return m.TotalScaleUps + m.TotalScaleDowns
}

// ComputeMetrics derives Metrics from simulator output.
func ComputeMetrics(jobs []*Job, slots int) *Metrics {
	m := &Metrics{Slots: slots, Jobs: len(jobs)}
	if len(jobs) == 0 {
		return m
	}
	first := jobs[0].SubmittedTime
	delaySum := 0.0
	for _, j := range jobs {
		if j.SubmittedTime < first {
			first = j.SubmittedTime
		}
		d := j.QueueingDelay()
		if d > 0 {
			m.DelayedJobs++
		}
		delaySum += d
		if d > m.MaxQueueingDelay {
			m.MaxQueueingDelay = d
		}
		if j.HasScaling() {
			m.JobsWithScaling++
		}
		if len(j.ScaleUp) > 0 {
			m.JobsWithScaleUp++
		}
		if len(j.ScaleDown) > 0 {
			m.JobsWithScaleDown++
		}
		m.TotalScaleUps += len(j.ScaleUp)
		m.TotalScaleDowns += len(j.ScaleDown)
		if j.EndTime-first > m.Makespan {
			m.Makespan = j.EndTime - first
		}
	}
	m.MeanQueueingDelay = delaySum / float64(len(jobs))
	m.PeakConcurrentJobs = PeakConcurrency(jobs)
	return m
}

// PeakConcurrency returns the largest number of jobs whose [start, end) windows overlap.
func PeakConcurrency(jobs []*Job) int {
	type edge struct {
		t     float64
		delta int
	}
	edges := make([]edge, 0, 2*len(jobs))
	for _, j := range jobs {
		if j.EndTime <= j.StartTime {
			continue // zero-length windows never occupy the pool
		}
		edges = append(edges, edge{j.StartTime, 1}, edge{j.EndTime, -1})
	}
	// Ends sort before starts at the same instant: windows are half-open.
	sort.Slice(edges, func(a, b int) bool {
		if edges[a].t != edges[b].t {
			return edges[a].t < edges[b].t
		}
		return edges[a].delta < edges[b].delta
	})
	peak, cur := 0, 0
	for _, e := range edges {
		cur += e.delta
		if cur > peak {
			peak = cur
		}
	}
	return peak
}

// Print writes a human-readable report followed by the JSON form.
func (m *Metrics) Print(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "=== Simulation Metrics ==="); err != nil {
		return err
	}
	fmt.Fprintf(w, "Capacity Slots       : %d\n", m.Slots)
	fmt.Fprintf(w, "Jobs                 : %d\n", m.Jobs)
	fmt.Fprintf(w, "Delayed Jobs         : %d\n", m.DelayedJobs)
	fmt.Fprintf(w, "Jobs With Scaling    : %d\n", m.JobsWithScaling)
	fmt.Fprintf(w, "Scale Ups / Downs    : %d / %d\n", m.TotalScaleUps, m.TotalScaleDowns)
	fmt.Fprintf(w, "Mean Queueing Delay  : %.2f s\n", m.MeanQueueingDelay)
	fmt.Fprintf(w, "Makespan             : %.2f s\n", m.Makespan)
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling metrics: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
