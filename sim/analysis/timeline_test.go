package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/scalesim/sim"
)

func TestNewTimeline_RelativeToStart(t *testing.T) {
	j := sim.NewJob("x", 0, 10)
	j.StartTime, j.EndTime = 10.7, 20.7
	j.ScaleUp = []float64{12.9}
	j.ScaleDown = []float64{15.2}

	tl := NewTimeline(j)

	assert.Equal(t, 10, tl.Start)
	assert.Equal(t, 10, tl.Runtime)
	assert.Equal(t, []int{2}, tl.ScaleUps)
	assert.Equal(t, []int{5}, tl.ScaleDowns)
}

func TestPickJob_DeterministicPerSeed(t *testing.T) {
	jobs := make([]*sim.Job, 25)
	for i := range jobs {
		jobs[i] = sim.NewJob(string(rune('a'+i)), float64(i), 1)
	}
	i1, j1, err := PickJob(jobs, 42)
	require.NoError(t, err)
	i2, j2, err := PickJob(jobs, 42)
	require.NoError(t, err)
	assert.Equal(t, i1, i2)
	assert.Same(t, j1, j2)
	assert.Same(t, jobs[i1], j1)
}

func TestPickJob_Empty(t *testing.T) {
	_, _, err := PickJob(nil, 1)
	assert.ErrorIs(t, err, ErrNoData)
}
