// Defines the Job struct that models one workload instance replayed by the simulator.
// Tracks submission, runtime, the assigned execution window and inferred scale events.

package sim

import (
	"fmt"
)

// JobState represents the lifecycle state of a job inside one simulation run.
type JobState string

const (
	StatePending             JobState = "pending"
	StateAdmittedImmediately JobState = "admitted-immediately"
	StateAdmittedDelayed     JobState = "admitted-delayed"
	StateReleased            JobState = "released"
)

// Job models a single job record. Loaders populate ID, SubmittedTime and Runtime;
// the simulator is the only writer of the scheduling fields.
type Job struct {
	ID            string  `json:"id"`
	SubmittedTime float64 `json:"submitted_time"` // seconds, rebased to the first arrival after preprocessing
	Runtime       float64 `json:"runtime"`        // seconds, fixed and known in advance

	StartTime float64   `json:"start_time"`
	EndTime   float64   `json:"end_time"`
	ScaleUp   []float64 `json:"scale_up"`   // instants where a neighbour's departure freed capacity
	ScaleDown []float64 `json:"scale_down"` // instants where a newcomer took a share

	// Auxiliary trace fields. Carried through untouched; never read by the simulator.
	NumGPUs int    `json:"num_gpus,omitempty"`
	Status  string `json:"status,omitempty"`
	User    string `json:"user,omitempty"`

	State JobState `json:"-"`
}

// NewJob creates a pending Job with empty scale event lists.
func NewJob(id string, submittedTime, runtime float64) *Job {
	return &Job{
		ID:            id,
		SubmittedTime: submittedTime,
		Runtime:       runtime,
		ScaleUp:       []float64{},
		ScaleDown:     []float64{},
		State:         StatePending,
	}
}

// Clone returns a deep copy of the job. Scale event slices are never shared.
func (j *Job) Clone() *Job {
	c := *j
	c.ScaleUp = append(make([]float64, 0, len(j.ScaleUp)), j.ScaleUp...)
	c.ScaleDown = append(make([]float64, 0, len(j.ScaleDown)), j.ScaleDown...)
	return &c
}

// QueueingDelay is the time between submission and start.
func (j *Job) QueueingDelay() float64 {
	return j.StartTime - j.SubmittedTime
}

// HasScaling reports whether the job recorded any scale event.
func (j *Job) HasScaling() bool {
	return len(j.ScaleUp) > 0 || len(j.ScaleDown) > 0
}

func (j *Job) addScaleUp(t float64) {
	j.ScaleUp = appendEvent(j.ScaleUp, t)
}

func (j *Job) addScaleDown(t float64) {
	j.ScaleDown = appendEvent(j.ScaleDown, t)
}

// appendEvent records t unless it repeats the last recorded instant.
// Simultaneous departures or arrivals collapse into one event.
func appendEvent(events []float64, t float64) []float64 {
	if n := len(events); n > 0 && events[n-1] == t {
		return events
	}
	return append(events, t)
}

// CloneJobs deep-copies a job list.
func CloneJobs(jobs []*Job) []*Job {
	out := make([]*Job, len(jobs))
	for i, j := range jobs {
		out[i] = j.Clone()
	}
	return out
}

func (j Job) String() string {
	return fmt.Sprintf("Job: (ID: %s, State: %s, Submitted: %v, Start: %v, End: %v)", j.ID, j.State, j.SubmittedTime, j.StartTime, j.EndTime)
}
