// Package testutil provides shared test infrastructure for the scaling simulator.
// It holds the golden scenario types and assertion helpers used across
// sim/ and its subpackages.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is one scheduling scenario with its expected annotated output.
type GoldenTestCase struct {
	Name            string        `json:"name"`
	TotalUnits      int           `json:"total-units"`
	MinUnitsPerJob  int           `json:"min-units-per-job"`
	SubsampleStride int           `json:"subsample-stride"`
	StretchFactor   float64       `json:"stretch-factor"`
	Jobs            []GoldenJob   `json:"jobs"`
	Expected        []GoldenJob   `json:"expected"`
	Metrics         GoldenMetrics `json:"metrics"`
}

// GoldenJob is an input record or an expected executed record.
type GoldenJob struct {
	ID            string    `json:"id"`
	SubmittedTime float64   `json:"submitted_time"`
	Runtime       float64   `json:"runtime"`
	StartTime     float64   `json:"start_time,omitempty"`
	EndTime       float64   `json:"end_time,omitempty"`
	ScaleUp       []float64 `json:"scale_up,omitempty"`
	ScaleDown     []float64 `json:"scale_down,omitempty"`
}

// GoldenMetrics represents the expected run metrics of a scenario.
type GoldenMetrics struct {
	TotalScaleUps     int     `json:"total_scale_ups"`
	TotalScaleDowns   int     `json:"total_scale_downs"`
	DelayedJobs       int     `json:"delayed_jobs"`
	MeanQueueingDelay float64 `json:"mean_queueing_delay_s"`
	Makespan          float64 `json:"makespan_s"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

// AssertFloat64SliceEqual compares element-wise with AssertFloat64Equal.
// Nil and empty slices are equal.
func AssertFloat64SliceEqual(t *testing.T, name string, want, got []float64, relTol float64) {
	t.Helper()
	if len(want) != len(got) {
		t.Errorf("%s: got %v, want %v", name, got, want)
		return
	}
	for i := range want {
		AssertFloat64Equal(t, name, want[i], got[i], relTol)
	}
}
