package workload

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults fitted on the filtered cluster log (seconds).
const (
	DefaultNumJobs     = 20
	DefaultSeed        = 42
	DefaultArrivalMean = 168.23665708228316
	DefaultRuntimeMean = 19550.609413406524
)

// SampleSpec describes a synthetic job stream.
// Loaded from YAML via LoadSampleSpec(path).
type SampleSpec struct {
	NumJobs int      `yaml:"num_jobs"`
	Seed    int64    `yaml:"seed"`
	Arrival DistSpec `yaml:"arrival"` // inter-arrival time distribution
	Runtime DistSpec `yaml:"runtime"`
}

// DistSpec parameterizes a duration distribution.
type DistSpec struct {
	Type   string             `yaml:"type"`
	Params map[string]float64 `yaml:"params,omitempty"`
	Values []float64          `yaml:"values,omitempty"` // observations for "empirical"
}

var validDistTypes = map[string]bool{
	"exponential": true, "constant": true, "gaussian": true, "empirical": true,
}

// DefaultSampleSpec returns the exponential arrival and runtime model fitted on the trace.
func DefaultSampleSpec() *SampleSpec {
	return &SampleSpec{
		NumJobs: DefaultNumJobs,
		Seed:    DefaultSeed,
		Arrival: DistSpec{Type: "exponential", Params: map[string]float64{"mean": DefaultArrivalMean}},
		Runtime: DistSpec{Type: "exponential", Params: map[string]float64{"mean": DefaultRuntimeMean}},
	}
}

// LoadSampleSpec reads and parses a YAML sample specification file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
// Omitted sections keep their default values.
func LoadSampleSpec(path string) (*SampleSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sample spec: %w", err)
	}
	spec := DefaultSampleSpec()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(spec); err != nil {
		return nil, fmt.Errorf("parsing sample spec: %w", err)
	}
	return spec, nil
}

// Validate checks that all fields in the spec are valid.
func (s *SampleSpec) Validate() error {
	if s.NumJobs <= 0 {
		return fmt.Errorf("num_jobs must be positive, got %d", s.NumJobs)
	}
	if err := validateDistSpec("arrival", &s.Arrival); err != nil {
		return err
	}
	return validateDistSpec("runtime", &s.Runtime)
}

func validateDistSpec(prefix string, d *DistSpec) error {
	if !validDistTypes[d.Type] {
		return fmt.Errorf("%s: unknown distribution type %q; valid: exponential, constant, gaussian, empirical", prefix, d.Type)
	}
	for name, val := range d.Params {
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return fmt.Errorf("%s.params.%s must be a finite number, got %f", prefix, name, val)
		}
		if val < 0 {
			return fmt.Errorf("%s.params.%s must be non-negative, got %f", prefix, name, val)
		}
	}
	return nil
}
