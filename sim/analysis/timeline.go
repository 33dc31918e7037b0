package analysis

import (
	"fmt"

	"github.com/inference-sim/scalesim/sim"
)

// Timeline is one job's scale events relative to its start, truncated to whole seconds.
type Timeline struct {
	ID         string `json:"id"`
	Start      int    `json:"start_time"`
	Runtime    int    `json:"runtime"`
	ScaleUps   []int  `json:"scale_ups"`
	ScaleDowns []int  `json:"scale_downs"`
}

// NewTimeline builds the relative timeline of j.
func NewTimeline(j *sim.Job) *Timeline {
	start := int(j.StartTime)
	tl := &Timeline{
		ID:         j.ID,
		Start:      start,
		Runtime:    int(j.EndTime - float64(start)),
		ScaleUps:   relative(j.ScaleUp, float64(start)),
		ScaleDowns: relative(j.ScaleDown, float64(start)),
	}
	return tl
}

func relative(events []float64, start float64) []int {
	out := make([]int, len(events))
	for i, e := range events {
		out[i] = int(e - start)
	}
	return out
}

// PickJob selects one job uniformly with a seeded RNG and returns its index.
func PickJob(jobs []*sim.Job, seed int64) (int, *sim.Job, error) {
	if len(jobs) == 0 {
		return 0, nil, fmt.Errorf("pick job: %w", ErrNoData)
	}
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(seed)).ForSubsystem(sim.SubsystemPick)
	i := rng.Intn(len(jobs))
	return i, jobs[i], nil
}
