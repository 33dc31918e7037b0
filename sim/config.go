package sim

import (
	"math"

	"github.com/inference-sim/scalesim/sim/trace"
)

// CapacityConfig describes the shared resource pool.
// Slots() jobs may be active at once, each assumed able to run on the minimum share.
type CapacityConfig struct {
	TotalUnits     int // total capacity units in the pool (must be > 0)
	MinUnitsPerJob int // minimum units any job can run on (must be > 0)
}

// Slots returns floor(TotalUnits / MinUnitsPerJob).
func (c CapacityConfig) Slots() int {
	if c.MinUnitsPerJob <= 0 {
		return 0
	}
	return c.TotalUnits / c.MinUnitsPerJob
}

// Validate rejects non-positive units and pools too small to host one job.
func (c CapacityConfig) Validate() error {
	if c.TotalUnits <= 0 {
		return configError("total capacity must be positive, got %d", c.TotalUnits)
	}
	if c.MinUnitsPerJob <= 0 {
		return configError("minimum units per job must be positive, got %d", c.MinUnitsPerJob)
	}
	if c.Slots() < 1 {
		return configError("total capacity %d cannot host a job needing %d units", c.TotalUnits, c.MinUnitsPerJob)
	}
	return nil
}

// PreprocessConfig selects at most one arrival transform.
type PreprocessConfig struct {
	SubsampleStride int     // keep every k-th job; 1 = identity
	StretchFactor   float64 // multiply rebased submission times; 1 = identity
}

// IdentityPreprocess leaves the arrival sequence untouched apart from rebasing.
func IdentityPreprocess() PreprocessConfig {
	return PreprocessConfig{SubsampleStride: 1, StretchFactor: 1}
}

// Validate enforces ranges and mutual exclusivity of the two transforms.
func (p PreprocessConfig) Validate() error {
	if p.SubsampleStride < 1 {
		return configError("subsample stride must be >= 1, got %d", p.SubsampleStride)
	}
	if math.IsNaN(p.StretchFactor) || math.IsInf(p.StretchFactor, 0) || p.StretchFactor < 1 {
		return configError("stretch factor must be a finite number >= 1, got %v", p.StretchFactor)
	}
	if p.SubsampleStride > 1 && p.StretchFactor > 1 {
		return configError("subsample stride %d and stretch factor %v are mutually exclusive",
			p.SubsampleStride, p.StretchFactor)
	}
	return nil
}

// Config groups everything one simulation run depends on.
type Config struct {
	Capacity   CapacityConfig
	Preprocess PreprocessConfig
	Trace      trace.TraceConfig // decision recording; zero value disables it
}

// Validate checks every section; all failures wrap ErrConfig.
func (c Config) Validate() error {
	if err := c.Capacity.Validate(); err != nil {
		return err
	}
	if err := c.Preprocess.Validate(); err != nil {
		return err
	}
	if !trace.IsValidTraceLevel(string(c.Trace.Level)) {
		return configError("unknown trace level %q", c.Trace.Level)
	}
	return nil
}
