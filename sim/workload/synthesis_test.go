package workload

import (
	"reflect"
	"testing"
)

func TestSample_DefaultSpec_ProducesOrderedStream(t *testing.T) {
	jobs, err := Sample(DefaultSampleSpec())
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != DefaultNumJobs {
		t.Fatalf("len = %d, want %d", len(jobs), DefaultNumJobs)
	}
	if jobs[0].SubmittedTime != 0 {
		t.Errorf("first arrival = %f, want 0", jobs[0].SubmittedTime)
	}
	seen := map[string]bool{}
	for i, j := range jobs {
		if i > 0 && j.SubmittedTime < jobs[i-1].SubmittedTime {
			t.Errorf("job %d arrives before job %d", i, i-1)
		}
		if j.Runtime < 0 {
			t.Errorf("job %d runtime %f < 0", i, j.Runtime)
		}
		if seen[j.ID] {
			t.Errorf("duplicate id %s", j.ID)
		}
		seen[j.ID] = true
	}
}

func TestSample_SameSeed_IdenticalJobs(t *testing.T) {
	a, err := Sample(DefaultSampleSpec())
	if err != nil {
		t.Fatal(err)
	}
	b, err := Sample(DefaultSampleSpec())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed produced different streams")
	}
}

func TestSample_MoreJobs_KeepsRuntimePrefix(t *testing.T) {
	// Arrival and runtime draw from separate partitions: extending the stream
	// never changes the runtimes already drawn.
	small := DefaultSampleSpec()
	large := DefaultSampleSpec()
	large.NumJobs = 40
	a, err := Sample(small)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Sample(large)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a {
		if a[i].Runtime != b[i].Runtime || a[i].SubmittedTime != b[i].SubmittedTime || a[i].ID != b[i].ID {
			t.Fatalf("job %d differs between 20- and 40-job streams", i)
		}
	}
}

func TestSample_ConstantArrivals_Cumulative(t *testing.T) {
	spec := &SampleSpec{
		NumJobs: 4,
		Seed:    1,
		Arrival: DistSpec{Type: "constant", Params: map[string]float64{"value": 10}},
		Runtime: DistSpec{Type: "constant", Params: map[string]float64{"value": 5}},
	}
	jobs, err := Sample(spec)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{0, 10, 20, 30}
	for i, j := range jobs {
		if j.SubmittedTime != want[i] {
			t.Errorf("job %d submitted = %f, want %f", i, j.SubmittedTime, want[i])
		}
	}
}

func TestSyntheticJobID_DeterministicAndDistinct(t *testing.T) {
	if SyntheticJobID(42, 0) != SyntheticJobID(42, 0) {
		t.Error("id not deterministic")
	}
	if SyntheticJobID(42, 0) == SyntheticJobID(42, 1) || SyntheticJobID(42, 0) == SyntheticJobID(43, 0) {
		t.Error("ids collide")
	}
}
