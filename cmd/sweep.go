package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/scalesim/sim"
	"github.com/inference-sim/scalesim/sim/sweep"
)

var (
	sweepInput       string
	sweepInputFormat string
	sweepTotalUnits  []int
	sweepMinUnits    int
	sweepStrides     []int
	sweepStretches   []float64
	sweepWorkers     int
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Grid-search capacities and arrival transforms for the most scaling activity",
	Run: func(cmd *cobra.Command, args []string) {
		jobs, err := loadJobs(sweepInput, sweepInputFormat)
		if err != nil {
			logrus.Fatalf("Failed to load jobs: %v", err)
		}
		grid := sweep.Grid{Strides: sweepStrides, Stretches: sweepStretches}
		for _, u := range sweepTotalUnits {
			grid.Capacities = append(grid.Capacities, sim.CapacityConfig{TotalUnits: u, MinUnitsPerJob: sweepMinUnits})
		}
		if err := runSweep(cmd.Context(), jobs, grid, sweepWorkers, os.Stdout); err != nil {
			logrus.Fatalf("Sweep failed: %v", err)
		}
	},
}

func runSweep(ctx context.Context, jobs []*sim.Job, grid sweep.Grid, workers int, out io.Writer) error {
	outcomes, err := sweep.Run(ctx, jobs, grid, workers)
	if err != nil {
		return err
	}
	for _, o := range outcomes {
		fmt.Fprintf(out, "%-40s scale_ups=%-6d scale_downs=%-6d delayed=%d\n",
			o.Point, o.Metrics.TotalScaleUps, o.Metrics.TotalScaleDowns, o.Metrics.DelayedJobs)
	}
	best, _ := sweep.Best(outcomes)
	fmt.Fprintf(out, "best: %s (%d scale events)\n", best.Point, best.Metrics.TotalScalingEvents())
	return nil
}

func seq(lo, hi int) []int {
	out := make([]int, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		out = append(out, i)
	}
	return out
}

func init() {
	stretches := make([]float64, 0, 30)
	for _, s := range seq(1, 30) {
		stretches = append(stretches, float64(s))
	}
	sweepCmd.Flags().StringVar(&sweepInput, "input", "jobs.json", "Input jobs file")
	sweepCmd.Flags().StringVar(&sweepInputFormat, "input-format", formatRecords, "Input format (records, jobs, csv)")
	sweepCmd.Flags().IntSliceVar(&sweepTotalUnits, "total-units", []int{16}, "Comma-separated pool sizes")
	sweepCmd.Flags().IntVar(&sweepMinUnits, "min-units", 2, "Minimum capacity units any job can run on")
	sweepCmd.Flags().IntSliceVar(&sweepStrides, "strides", seq(1, 20), "Comma-separated subsample strides")
	sweepCmd.Flags().Float64SliceVar(&sweepStretches, "stretches", stretches, "Comma-separated stretch factors")
	sweepCmd.Flags().IntVar(&sweepWorkers, "workers", runtime.NumCPU(), "Concurrent simulations")
}
