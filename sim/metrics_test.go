package sim

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeMetrics_CountsScalingAndDelay(t *testing.T) {
	// GIVEN the delayed-admission scenario
	res, err := Simulate(jobsAt([2]float64{0, 5}, [2]float64{1, 5}), Config{Capacity: capacity(1), Preprocess: IdentityPreprocess()})
	require.NoError(t, err)

	// WHEN metrics are computed
	m := ComputeMetrics(res.Jobs, res.Slots)

	// THEN delay and makespan reflect j2 waiting 4s
	assert.Equal(t, 2, m.Jobs)
	assert.Equal(t, 1, m.DelayedJobs)
	assert.Equal(t, 2.0, m.MeanQueueingDelay)
	assert.Equal(t, 4.0, m.MaxQueueingDelay)
	assert.Equal(t, 10.0, m.Makespan)
	assert.Equal(t, 0, m.TotalScalingEvents())
	assert.Equal(t, 1, m.PeakConcurrentJobs)
}

func TestComputeMetrics_TrailingFlushScenario(t *testing.T) {
	res, err := Simulate(jobsAt([2]float64{0, 5}, [2]float64{0, 10}, [2]float64{0, 15}), Config{Capacity: capacity(3), Preprocess: IdentityPreprocess()})
	require.NoError(t, err)
	m := ComputeMetrics(res.Jobs, res.Slots)
	assert.Equal(t, 3, m.TotalScaleUps)
	assert.Equal(t, 2, m.TotalScaleDowns)
	assert.Equal(t, 3, m.JobsWithScaling)
	assert.Equal(t, 2, m.JobsWithScaleUp)
	assert.Equal(t, 3, m.PeakConcurrentJobs)
}

func TestComputeMetrics_Empty(t *testing.T) {
	m := ComputeMetrics(nil, 4)
	assert.Equal(t, 0, m.Jobs)
	assert.Equal(t, 4, m.Slots)
}

func TestPeakConcurrency_HalfOpenWindows(t *testing.T) {
	a := NewJob("a", 0, 5)
	a.StartTime, a.EndTime = 0, 5
	b := NewJob("b", 0, 5)
	b.StartTime, b.EndTime = 5, 10
	assert.Equal(t, 1, PeakConcurrency([]*Job{a, b}), "back-to-back jobs never overlap")
}

func TestMetrics_Print_WritesHeaderAndJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&Metrics{Slots: 8, Jobs: 3}).Print(&buf))
	assert.Contains(t, buf.String(), "Simulation Metrics")
	assert.Contains(t, buf.String(), `"capacity_slots": 8`)
}
