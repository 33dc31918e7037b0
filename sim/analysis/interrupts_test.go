package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/scalesim/sim/workload"
)

func record(id string, gpus int, windows ...[2]string) workload.JobRecord {
	r := workload.JobRecord{ID: id, NumGPUs: gpus, SubmittedTime: "2017-10-03 08:00:00"}
	for _, w := range windows {
		r.Attempts = append(r.Attempts, workload.AttemptWindow{StartTime: w[0], EndTime: w[1]})
	}
	return r
}

func TestCountInterrupts_CountsBoundariesInsideOwnAttempts(t *testing.T) {
	// GIVEN a nested inside b's, c spanning both
	records := []workload.JobRecord{
		record("a", 2, [2]string{"2017-10-03 10:00:00", "2017-10-03 11:00:00"}),
		record("b", 4, [2]string{"2017-10-03 10:30:00", "2017-10-03 10:45:00"}),
		record("c", 8, [2]string{"2017-10-03 09:00:00", "2017-10-03 12:00:00"}),
	}

	// WHEN counted
	got, err := CountInterrupts(records)
	require.NoError(t, err)

	// THEN boundaries strictly inside each job's attempts are counted
	assert.Equal(t, map[string]int{"a": 2, "b": 0, "c": 4}, got)
	assert.Equal(t, 8, MaxNumGPUs(records))
}

func TestCountInterrupts_BadWindow_Error(t *testing.T) {
	_, err := CountInterrupts([]workload.JobRecord{record("x", 2, [2]string{"yesterday", "today"})})
	assert.Error(t, err)
}

func TestMaxNumGPUs_Empty(t *testing.T) {
	assert.Equal(t, 0, MaxNumGPUs(nil))
}
