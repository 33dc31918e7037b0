package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/scalesim/sim"
	"github.com/inference-sim/scalesim/sim/trace"
	"github.com/inference-sim/scalesim/sim/workload"
)

var (
	simulateFlags  runFlags
	simulateConfig string // optional YAML run file
	simulateCSV    string // optional CSV export path
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Replay a job trace and annotate scale-up/scale-down events",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := simulateFlags.resolve(cmd.Flags(), simulateConfig)
		if err != nil {
			logrus.Fatalf("Invalid run configuration: %v", err)
		}
		if err := runSimulate(cfg, simulateCSV, os.Stdout); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
	},
}

// runSimulate loads the input, replays it and writes the executed jobs file.
// Metrics (and the trace summary, when tracing) go to out.
func runSimulate(cfg *RunConfig, csvPath string, out io.Writer) error {
	jobs, err := loadJobs(cfg.Input, cfg.InputFormat)
	if err != nil {
		return err
	}
	simCfg := cfg.SimConfig()
	res, err := sim.Simulate(jobs, simCfg)
	if err != nil {
		return err
	}

	path := filepath.Join(cfg.OutputDir, workload.OutputFileName(simCfg.Preprocess))
	if err := workload.WriteJobsJSON(path, res.Jobs); err != nil {
		return err
	}
	logrus.Infof("Wrote %d executed jobs to %s", len(res.Jobs), path)

	if csvPath != "" {
		f, err := os.Create(csvPath)
		if err != nil {
			return fmt.Errorf("creating %s: %w", csvPath, err)
		}
		defer f.Close()
		if err := workload.WriteJobsCSV(f, res.Jobs); err != nil {
			return err
		}
	}

	if err := sim.ComputeMetrics(res.Jobs, res.Slots).Print(out); err != nil {
		return err
	}
	if res.Trace != nil {
		return writeJSON(out, trace.Summarize(res.Trace))
	}
	return nil
}

func init() {
	simulateFlags.register(simulateCmd.Flags())
	simulateCmd.Flags().StringVar(&simulateConfig, "config", "", "YAML run file; explicit flags override its values")
	simulateCmd.Flags().StringVar(&simulateCSV, "csv", "", "Also write executed jobs as CSV to this path")
}
