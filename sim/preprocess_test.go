package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func submitted(jobs []*Job) []float64 {
	out := make([]float64, len(jobs))
	for i, j := range jobs {
		out[i] = j.SubmittedTime
	}
	return out
}

func ids(jobs []*Job) []string {
	out := make([]string, len(jobs))
	for i, j := range jobs {
		out[i] = j.ID
	}
	return out
}

func TestPreprocess_Identity_OnlyRebases(t *testing.T) {
	// GIVEN absolute submission times out of order
	jobs := jobsAt([2]float64{130, 1}, [2]float64{100, 1}, [2]float64{115, 1})

	// WHEN preprocessed with identity knobs
	out, err := Preprocess(jobs, IdentityPreprocess())
	require.NoError(t, err)

	// THEN jobs are sorted and rebased, nothing else changes
	assert.Equal(t, []string{"j2", "j3", "j1"}, ids(out))
	assert.Equal(t, []float64{0, 15, 30}, submitted(out))
}

func TestPreprocess_TiesKeepInputOrder(t *testing.T) {
	jobs := []*Job{NewJob("b", 5, 1), NewJob("a", 5, 1), NewJob("c", 1, 1)}
	out, err := Preprocess(jobs, IdentityPreprocess())
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b", "a"}, ids(out))
}

func TestPreprocess_SubsampleStride_KeepsEveryKth(t *testing.T) {
	// GIVEN seven jobs one second apart
	jobs := jobsAt([2]float64{10, 1}, [2]float64{11, 1}, [2]float64{12, 1}, [2]float64{13, 1},
		[2]float64{14, 1}, [2]float64{15, 1}, [2]float64{16, 1})

	// WHEN subsampled with stride 3
	out, err := Preprocess(jobs, PreprocessConfig{SubsampleStride: 3, StretchFactor: 1})
	require.NoError(t, err)

	// THEN jobs at positions 0, 3, 6 remain, rebased to the first kept job
	assert.Equal(t, []string{"j1", "j4", "j7"}, ids(out))
	assert.Equal(t, []float64{0, 3, 6}, submitted(out))
}

func TestPreprocess_Stretch_ScalesGaps(t *testing.T) {
	jobs := jobsAt([2]float64{50, 1}, [2]float64{52, 1}, [2]float64{57, 1})
	out, err := Preprocess(jobs, PreprocessConfig{SubsampleStride: 1, StretchFactor: 20})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 40, 140}, submitted(out))
}

func TestPreprocess_RejectsBadKnobs(t *testing.T) {
	tests := []struct {
		name string
		cfg  PreprocessConfig
	}{
		{"both transforms", PreprocessConfig{SubsampleStride: 2, StretchFactor: 2}},
		{"zero stride", PreprocessConfig{SubsampleStride: 0, StretchFactor: 1}},
		{"shrinking stretch", PreprocessConfig{SubsampleStride: 1, StretchFactor: 0.5}},
		{"zero value config", PreprocessConfig{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Preprocess(jobsAt([2]float64{0, 1}), tt.cfg)
			assert.ErrorIs(t, err, ErrConfig)
		})
	}
}

func TestSubsampleAndStretch_NeverMutateInput(t *testing.T) {
	// GIVEN caller-owned jobs
	jobs := jobsAt([2]float64{20, 1}, [2]float64{10, 1}, [2]float64{30, 1})
	before := CloneJobs(jobs)

	// WHEN both pure transforms run
	sub := Subsample(jobs, 2)
	str := Stretch(jobs, 2)

	// THEN the input is unchanged and results are independent copies
	assert.Equal(t, before, jobs)
	assert.Equal(t, []string{"j2", "j3"}, ids(sub))
	assert.Equal(t, []float64{10, 30}, submitted(sub), "Subsample alone does not rebase")
	assert.Equal(t, []float64{0, 20, 40}, submitted(str))
	str[0].ScaleUp = append(str[0].ScaleUp, 1)
	assert.Empty(t, jobs[1].ScaleUp)
}

func TestPreprocess_StrideOne_StretchOne_AreNoOps(t *testing.T) {
	jobs := randomJobs(3, 50)
	a, err := Preprocess(jobs, PreprocessConfig{SubsampleStride: 1, StretchFactor: 1})
	require.NoError(t, err)
	assert.Equal(t, submitted(Stretch(jobs, 1)), submitted(a))
	assert.Len(t, a, 50)
}
