package cmd

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/scalesim/sim/analysis"
)

var (
	pickInput       string
	pickInputFormat string
	pickSeed        int64
)

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Print the scale timeline of one randomly chosen executed job",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runPick(pickInput, pickInputFormat, pickSeed, os.Stdout); err != nil {
			logrus.Fatalf("Pick failed: %v", err)
		}
	},
}

type pickReport struct {
	Index    int                `json:"index"`
	Timeline *analysis.Timeline `json:"timeline"`
}

func runPick(input, format string, seed int64, w io.Writer) error {
	jobs, err := loadJobs(input, format)
	if err != nil {
		return err
	}
	i, j, err := analysis.PickJob(jobs, seed)
	if err != nil {
		return err
	}
	return writeJSON(w, pickReport{Index: i, Timeline: analysis.NewTimeline(j)})
}

func init() {
	pickCmd.Flags().StringVar(&pickInput, "input", "jobs_executed.json", "Executed jobs file")
	pickCmd.Flags().StringVar(&pickInputFormat, "input-format", formatJobs, "Input format (records, jobs, csv)")
	pickCmd.Flags().Int64Var(&pickSeed, "seed", 42, "Seed for job selection")
}
