package cmd

import (
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/scalesim/sim/workload"
)

var (
	convertLogPath string
	convertOutput  string
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Filter a raw cluster job log into a jobs file",
	Long:  "Keeps successful 2-16 GPU jobs that ran at least 10 minutes with complete attempts, sorted by submission time.",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runConvert(convertLogPath, convertOutput); err != nil {
			logrus.Fatalf("Conversion failed: %v", err)
		}
	},
}

func runConvert(logPath, output string) error {
	jobs, err := workload.LoadClusterLog(logPath)
	if err != nil {
		return err
	}
	kept := workload.FilterJobs(jobs)
	sort.SliceStable(kept, func(a, b int) bool {
		return kept[a].SubmittedTime.Before(*kept[b].SubmittedTime)
	})
	return workload.WriteJobsFile(output, workload.NewJobRecords(kept))
}

func init() {
	convertCmd.Flags().StringVar(&convertLogPath, "cluster-log", "trace-data/cluster_job_log", "Raw cluster job log (JSON)")
	convertCmd.Flags().StringVar(&convertOutput, "output", "jobs.json", "Output jobs file")
}
