package sim

import (
	"sort"
)

// Preprocess returns a deep copy of jobs, stable-sorted by submission time, with at most
// one arrival transform applied and submission times rebased so the first job arrives at 0.
// The caller's slice and records are never modified.
func Preprocess(jobs []*Job, cfg PreprocessConfig) ([]*Job, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := validateRecords(jobs); err != nil {
		return nil, err
	}
	out := sortBySubmission(CloneJobs(jobs))
	out = subsample(out, cfg.SubsampleStride)
	rebase(out)
	stretch(out, cfg.StretchFactor)
	return out, nil
}

// Subsample returns deep copies of every k-th job in submission order.
// k <= 1 keeps every job.
func Subsample(jobs []*Job, k int) []*Job {
	return subsample(sortBySubmission(CloneJobs(jobs)), k)
}

// Stretch returns deep copies of jobs in submission order, rebased to zero and with
// every submission time multiplied by s.
func Stretch(jobs []*Job, s float64) []*Job {
	out := sortBySubmission(CloneJobs(jobs))
	rebase(out)
	stretch(out, s)
	return out
}

func sortBySubmission(jobs []*Job) []*Job {
	sort.SliceStable(jobs, func(a, b int) bool {
		return jobs[a].SubmittedTime < jobs[b].SubmittedTime
	})
	return jobs
}

func subsample(jobs []*Job, k int) []*Job {
	if k <= 1 {
		return jobs
	}
	kept := make([]*Job, 0, (len(jobs)+k-1)/k)
	for i := 0; i < len(jobs); i += k {
		kept = append(kept, jobs[i])
	}
	return kept
}

// rebase shifts submission times so the earliest (first) job arrives at 0.
func rebase(jobs []*Job) {
	if len(jobs) == 0 {
		return
	}
	zero := jobs[0].SubmittedTime
	for _, j := range jobs {
		j.SubmittedTime -= zero
	}
}

func stretch(jobs []*Job, s float64) {
	if s == 1 {
		return
	}
	for _, j := range jobs {
		j.SubmittedTime *= s
	}
}
