package cmd

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/scalesim/sim/analysis"
	"github.com/inference-sim/scalesim/sim/workload"
)

var (
	fitInput       string
	fitInputFormat string
	fitOutput      string
)

var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Fit distributions to cluster logs and simulator output",
	Long:  "Reports are written as JSON to stdout (or --output) for piping into plotting tools.",
}

// --- scalesim fit scaling ---

var fitScalingCmd = &cobra.Command{
	Use:   "scaling",
	Short: "Scale event counts and inter-scale times of executed jobs",
	Run: func(cmd *cobra.Command, args []string) {
		withOutput(func(w io.Writer) error { return runFitScaling(fitInput, fitInputFormat, w) })
	},
}

func runFitScaling(input, format string, w io.Writer) error {
	jobs, err := loadJobs(input, format)
	if err != nil {
		return err
	}
	report, err := analysis.FitScaling(jobs)
	if err != nil {
		return err
	}
	return writeJSON(w, report)
}

// --- scalesim fit runtime ---

var fitRuntimeCmd = &cobra.Command{
	Use:   "runtime",
	Short: "Runtime distribution with normal and exponential fits",
	Run: func(cmd *cobra.Command, args []string) {
		withOutput(func(w io.Writer) error {
			jobs, err := loadJobs(fitInput, fitInputFormat)
			if err != nil {
				return err
			}
			report, err := analysis.FitRuntimes(jobs)
			if err != nil {
				return err
			}
			return writeJSON(w, report)
		})
	},
}

// --- scalesim fit arrivals ---

var fitArrivalsCmd = &cobra.Command{
	Use:   "arrivals",
	Short: "Inter-arrival times (minutes) with Poisson and exponential fits",
	Run: func(cmd *cobra.Command, args []string) {
		withOutput(func(w io.Writer) error {
			jobs, err := loadJobs(fitInput, fitInputFormat)
			if err != nil {
				return err
			}
			fit, err := analysis.FitArrivals(jobs)
			if err != nil {
				return err
			}
			return writeJSON(w, fit)
		})
	},
}

// --- scalesim fit interrupts ---

var fitInterruptsCmd = &cobra.Command{
	Use:   "interrupts",
	Short: "Count attempt boundaries of other jobs inside each job's attempts",
	Run: func(cmd *cobra.Command, args []string) {
		withOutput(func(w io.Writer) error { return runFitInterrupts(fitInput, w) })
	},
}

type interruptsReport struct {
	MaxNumGPUs int            `json:"max_num_gpus"`
	Interrupts map[string]int `json:"interrupts"`
}

func runFitInterrupts(input string, w io.Writer) error {
	records, err := workload.LoadJobsFile(input)
	if err != nil {
		return err
	}
	counts, err := analysis.CountInterrupts(records)
	if err != nil {
		return err
	}
	return writeJSON(w, interruptsReport{MaxNumGPUs: analysis.MaxNumGPUs(records), Interrupts: counts})
}

// withOutput runs fn against --output (or stdout) and exits on failure.
func withOutput(fn func(w io.Writer) error) {
	w := io.Writer(os.Stdout)
	if fitOutput != "" {
		f, err := os.Create(fitOutput)
		if err != nil {
			logrus.Fatalf("Failed to create %s: %v", fitOutput, err)
		}
		defer f.Close()
		w = f
	}
	if err := fn(w); err != nil {
		logrus.Fatalf("Fit failed: %v", err)
	}
}

func init() {
	fitCmd.PersistentFlags().StringVar(&fitInput, "input", "jobs.json", "Input jobs file")
	fitCmd.PersistentFlags().StringVar(&fitInputFormat, "input-format", formatRecords, "Input format (records, jobs, csv); interrupts always reads records")
	fitCmd.PersistentFlags().StringVar(&fitOutput, "output", "", "Write the report here instead of stdout")

	fitCmd.AddCommand(fitScalingCmd)
	fitCmd.AddCommand(fitRuntimeCmd)
	fitCmd.AddCommand(fitArrivalsCmd)
	fitCmd.AddCommand(fitInterruptsCmd)
}
