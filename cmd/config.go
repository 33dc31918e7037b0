package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/scalesim/sim"
	"github.com/inference-sim/scalesim/sim/trace"
)

// RunConfig is the YAML form of one simulation run.
// Every section must be listed to satisfy KnownFields(true) strict parsing.
type RunConfig struct {
	Capacity    CapacitySection   `yaml:"capacity"`
	Preprocess  PreprocessSection `yaml:"preprocess"`
	Trace       string            `yaml:"trace"`
	Input       string            `yaml:"input"`
	InputFormat string            `yaml:"input_format"`
	OutputDir   string            `yaml:"output_dir"`
}

type CapacitySection struct {
	TotalUnits     int `yaml:"total_units"`
	MinUnitsPerJob int `yaml:"min_units_per_job"`
}

type PreprocessSection struct {
	SubsampleStride int     `yaml:"subsample_stride"`
	StretchFactor   float64 `yaml:"stretch_factor"`
}

// DefaultRunConfig is 16 capacity units with a 2-unit minimum per job (8 slots)
// and no arrival transform.
func DefaultRunConfig() *RunConfig {
	return &RunConfig{
		Capacity:    CapacitySection{TotalUnits: 16, MinUnitsPerJob: 2},
		Preprocess:  PreprocessSection{SubsampleStride: 1, StretchFactor: 1},
		Trace:       string(trace.TraceLevelNone),
		Input:       "jobs.json",
		InputFormat: formatRecords,
		OutputDir:   ".",
	}
}

// LoadRunConfig reads a run file over the defaults. Unknown keys are rejected.
func LoadRunConfig(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run config: %w", err)
	}
	cfg := DefaultRunConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parsing run config: %w", err)
	}
	return cfg, nil
}

// runFlags holds the simulate/sweep flags that can override a run file.
type runFlags struct {
	totalUnits      int
	minUnitsPerJob  int
	subsampleStride int
	stretchFactor   float64
	traceLevel      string
	input           string
	inputFormat     string
	outputDir       string
}

func (f *runFlags) register(fs *pflag.FlagSet) {
	fs.IntVar(&f.totalUnits, "total-units", 16, "Total capacity units in the pool")
	fs.IntVar(&f.minUnitsPerJob, "min-units", 2, "Minimum capacity units any job can run on")
	fs.IntVar(&f.subsampleStride, "subsample", 1, "Keep every k-th job (1 = all)")
	fs.Float64Var(&f.stretchFactor, "stretch", 1, "Multiply rebased submission times (1 = unchanged)")
	fs.StringVar(&f.traceLevel, "trace", string(trace.TraceLevelNone), "Decision trace level (none, decisions)")
	fs.StringVar(&f.input, "input", "jobs.json", "Input jobs file")
	fs.StringVar(&f.inputFormat, "input-format", formatRecords, "Input format (records, jobs, csv)")
	fs.StringVar(&f.outputDir, "output-dir", ".", "Directory for executed jobs output")
}

// apply overrides cfg with every flag set explicitly on the command line.
func (f *runFlags) apply(fs *pflag.FlagSet, cfg *RunConfig) {
	if fs.Changed("total-units") {
		cfg.Capacity.TotalUnits = f.totalUnits
	}
	if fs.Changed("min-units") {
		cfg.Capacity.MinUnitsPerJob = f.minUnitsPerJob
	}
	if fs.Changed("subsample") {
		cfg.Preprocess.SubsampleStride = f.subsampleStride
	}
	if fs.Changed("stretch") {
		cfg.Preprocess.StretchFactor = f.stretchFactor
	}
	if fs.Changed("trace") {
		cfg.Trace = f.traceLevel
	}
	if fs.Changed("input") {
		cfg.Input = f.input
	}
	if fs.Changed("input-format") {
		cfg.InputFormat = f.inputFormat
	}
	if fs.Changed("output-dir") {
		cfg.OutputDir = f.outputDir
	}
}

// resolve loads the run file (when given) and applies explicit flags on top.
func (f *runFlags) resolve(fs *pflag.FlagSet, configPath string) (*RunConfig, error) {
	cfg := DefaultRunConfig()
	if configPath != "" {
		var err error
		if cfg, err = LoadRunConfig(configPath); err != nil {
			return nil, err
		}
	}
	f.apply(fs, cfg)
	return cfg, nil
}

// SimConfig converts the run file to a simulator configuration.
func (c *RunConfig) SimConfig() sim.Config {
	return sim.Config{
		Capacity:   sim.CapacityConfig{TotalUnits: c.Capacity.TotalUnits, MinUnitsPerJob: c.Capacity.MinUnitsPerJob},
		Preprocess: sim.PreprocessConfig{SubsampleStride: c.Preprocess.SubsampleStride, StretchFactor: c.Preprocess.StretchFactor},
		Trace:      trace.TraceConfig{Level: trace.TraceLevel(c.Trace)},
	}
}
