package workload

import (
	"math"
	"math/rand"
	"testing"
)

func TestExponentialSampler_MeanMatchesParam(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s, err := NewSampler(DistSpec{Type: "exponential", Params: map[string]float64{"mean": 200}})
	if err != nil {
		t.Fatal(err)
	}
	n := 20000
	sum := 0.0
	for i := 0; i < n; i++ {
		v := s.Sample(rng)
		if v < 0 {
			t.Fatalf("negative sample %f", v)
		}
		sum += v
	}
	mean := sum / float64(n)
	if math.Abs(mean-200)/200 > 0.05 {
		t.Errorf("exponential mean = %.1f, want ≈ 200 (within 5%%)", mean)
	}
}

func TestGaussianSampler_NeverNegative(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s, err := NewSampler(DistSpec{Type: "gaussian", Params: map[string]float64{"mean": 1, "std_dev": 10}})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5000; i++ {
		if v := s.Sample(rng); v < 0 {
			t.Fatalf("sample %d = %f, want >= 0", i, v)
		}
	}
}

func TestConstantSampler_ReturnsValue(t *testing.T) {
	s, err := NewSampler(DistSpec{Type: "constant", Params: map[string]float64{"value": 60}})
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Sample(nil); got != 60 {
		t.Errorf("constant sample = %f, want 60", got)
	}
}

func TestEmpiricalSampler_DrawsOnlyObservedValues(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s, err := NewSampler(DistSpec{Type: "empirical", Values: []float64{600, 1200, -5}})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 1000; i++ {
		v := s.Sample(rng)
		if v != 600 && v != 1200 {
			t.Fatalf("sample %f not among observations", v)
		}
	}
}

func TestNewSampler_Errors(t *testing.T) {
	tests := []struct {
		name string
		spec DistSpec
	}{
		{"unknown type", DistSpec{Type: "zipf"}},
		{"exponential without mean", DistSpec{Type: "exponential"}},
		{"gaussian without std_dev", DistSpec{Type: "gaussian", Params: map[string]float64{"mean": 1}}},
		{"empirical without values", DistSpec{Type: "empirical"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSampler(tt.spec); err == nil {
				t.Error("expected error")
			}
		})
	}
}
