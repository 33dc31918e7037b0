package workload

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/scalesim/sim"
)

// DateLayout is the timestamp format used by the cluster log and jobs files.
const DateLayout = "2006-01-02 15:04:05"

// Filter thresholds applied by FilterJobs.
const (
	MinFilterGPUs       = 2
	MaxFilterGPUs       = 16
	MinFilterRunMinutes = 10.0
	PassStatus          = "Pass"
)

// AttemptDetail lists the GPUs one server contributed to an attempt.
type AttemptDetail struct {
	IP   string   `json:"ip"`
	GPUs []string `json:"gpus"`
}

// Attempt is one execution attempt. Nil times were missing in the log.
type Attempt struct {
	StartTime *time.Time
	EndTime   *time.Time
	Detail    []AttemptDetail
}

// ClusterJob is a job from the raw cluster job log with derived metrics.
// NumGPUs, RunTime and QueueingDelay are nil when they cannot be derived.
type ClusterJob struct {
	Status        string
	VC            string
	JobID         string
	User          string
	SubmittedTime *time.Time
	Attempts      []Attempt

	NumGPUs       *int
	RunTime       *float64 // minutes from first attempt start to last attempt end
	QueueingDelay *float64 // minutes from submission to first attempt start
}

type rawAttempt struct {
	StartTime *string         `json:"start_time"`
	EndTime   *string         `json:"end_time"`
	Detail    []AttemptDetail `json:"detail"`
}

type rawClusterJob struct {
	Status        string       `json:"status"`
	VC            string       `json:"vc"`
	JobID         string       `json:"jobid"`
	Attempts      []rawAttempt `json:"attempts"`
	SubmittedTime *string      `json:"submitted_time"`
	User          string       `json:"user"`
}

// parseDate returns nil for missing dates ("", "None" or null).
func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" || *s == "None" {
		return nil, nil
	}
	t, err := time.ParseInLocation(DateLayout, *s, time.UTC)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// LoadClusterLog reads the raw cluster job log (a JSON array).
func LoadClusterLog(path string) ([]*ClusterJob, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening cluster log: %w", err)
	}
	defer f.Close()
	return ParseClusterLog(f)
}

// ParseClusterLog decodes a cluster job log and derives per-job metrics.
func ParseClusterLog(r io.Reader) ([]*ClusterJob, error) {
	var raws []rawClusterJob
	if err := json.NewDecoder(r).Decode(&raws); err != nil {
		return nil, fmt.Errorf("parsing cluster log: %w", err)
	}
	jobs := make([]*ClusterJob, 0, len(raws))
	for i := range raws {
		j, err := newClusterJob(&raws[i])
		if err != nil {
			return nil, fmt.Errorf("cluster log job[%d] %q: %w", i, raws[i].JobID, err)
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

func newClusterJob(raw *rawClusterJob) (*ClusterJob, error) {
	submitted, err := parseDate(raw.SubmittedTime)
	if err != nil {
		return nil, fmt.Errorf("submitted_time: %w", err)
	}
	j := &ClusterJob{
		Status:        raw.Status,
		VC:            raw.VC,
		JobID:         raw.JobID,
		User:          raw.User,
		SubmittedTime: submitted,
		Attempts:      make([]Attempt, 0, len(raw.Attempts)),
	}
	for k, ra := range raw.Attempts {
		start, err := parseDate(ra.StartTime)
		if err != nil {
			return nil, fmt.Errorf("attempt[%d].start_time: %w", k, err)
		}
		end, err := parseDate(ra.EndTime)
		if err != nil {
			return nil, fmt.Errorf("attempt[%d].end_time: %w", k, err)
		}
		j.Attempts = append(j.Attempts, Attempt{StartTime: start, EndTime: end, Detail: ra.Detail})
	}
	if len(j.Attempts) == 0 {
		return j, nil
	}

	gpus := 0
	for _, d := range j.Attempts[0].Detail {
		gpus += len(d.GPUs)
	}
	j.NumGPUs = &gpus

	first, last := j.Attempts[0], j.Attempts[len(j.Attempts)-1]
	if first.StartTime == nil {
		return j, nil
	}
	if last.EndTime != nil {
		rt := last.EndTime.Sub(*first.StartTime).Minutes()
		j.RunTime = &rt
	}
	if submitted != nil {
		qd := first.StartTime.Sub(*submitted).Minutes()
		j.QueueingDelay = &qd
	}
	return j, nil
}

// FilterJobs keeps successful multi-GPU jobs that ran at least ten minutes
// and whose attempts all have both timestamps.
func FilterJobs(jobs []*ClusterJob) []*ClusterJob {
	kept := make([]*ClusterJob, 0, len(jobs))
	for _, j := range jobs {
		if j.NumGPUs == nil || *j.NumGPUs < MinFilterGPUs || *j.NumGPUs > MaxFilterGPUs {
			continue
		}
		if j.Status != PassStatus {
			continue
		}
		if j.RunTime == nil || *j.RunTime < MinFilterRunMinutes {
			continue
		}
		if j.SubmittedTime == nil || !attemptsComplete(j.Attempts) {
			continue
		}
		kept = append(kept, j)
	}
	logrus.Infof("Kept %d of %d cluster jobs", len(kept), len(jobs))
	return kept
}

func attemptsComplete(attempts []Attempt) bool {
	for _, a := range attempts {
		if a.StartTime == nil || a.EndTime == nil {
			return false
		}
	}
	return true
}

// AttemptWindow is an attempt in the jobs file form.
type AttemptWindow struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// JobRecord is one entry of the filtered jobs file.
// Runtime is in whole seconds.
type JobRecord struct {
	ID            string          `json:"id"`
	NumGPUs       int             `json:"num_gpus"`
	Runtime       int             `json:"runtime"`
	Attempts      []AttemptWindow `json:"attempts"`
	SubmittedTime string          `json:"submitted_time"`
}

// NewJobRecords converts filtered cluster jobs to the jobs file form.
// Jobs without a run time or submission are skipped.
func NewJobRecords(jobs []*ClusterJob) []JobRecord {
	records := make([]JobRecord, 0, len(jobs))
	for _, j := range jobs {
		if j.RunTime == nil || j.SubmittedTime == nil {
			logrus.Warnf("skipping cluster job %q: no run time or submission", j.JobID)
			continue
		}
		rec := JobRecord{
			ID:            j.JobID,
			Runtime:       int(*j.RunTime * 60),
			Attempts:      make([]AttemptWindow, 0, len(j.Attempts)),
			SubmittedTime: j.SubmittedTime.Format(DateLayout),
		}
		if j.NumGPUs != nil {
			rec.NumGPUs = *j.NumGPUs
		}
		for _, a := range j.Attempts {
			var w AttemptWindow
			if a.StartTime != nil {
				w.StartTime = a.StartTime.Format(DateLayout)
			}
			if a.EndTime != nil {
				w.EndTime = a.EndTime.Format(DateLayout)
			}
			rec.Attempts = append(rec.Attempts, w)
		}
		records = append(records, rec)
	}
	return records
}

// WriteJobsFile writes records as an indented JSON array.
func WriteJobsFile(path string, records []JobRecord) error {
	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("marshaling jobs: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing jobs file: %w", err)
	}
	return nil
}

// LoadJobsFile reads a jobs file written by WriteJobsFile.
func LoadJobsFile(path string) ([]JobRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading jobs file: %w", err)
	}
	var records []JobRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing jobs file: %w", err)
	}
	return records, nil
}

// Submitted parses the record's submission time.
func (r JobRecord) Submitted() (time.Time, error) {
	return time.ParseInLocation(DateLayout, r.SubmittedTime, time.UTC)
}

// Windows parses every attempt window.
func (r JobRecord) Windows() ([][2]time.Time, error) {
	out := make([][2]time.Time, 0, len(r.Attempts))
	for k, a := range r.Attempts {
		start, err := time.ParseInLocation(DateLayout, a.StartTime, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("job %q attempt[%d].start_time: %w", r.ID, k, err)
		}
		end, err := time.ParseInLocation(DateLayout, a.EndTime, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("job %q attempt[%d].end_time: %w", r.ID, k, err)
		}
		out = append(out, [2]time.Time{start, end})
	}
	return out, nil
}

// ToJobs converts records to simulator jobs with absolute Unix submission seconds.
func ToJobs(records []JobRecord) ([]*sim.Job, error) {
	jobs := make([]*sim.Job, 0, len(records))
	for _, r := range records {
		submitted, err := r.Submitted()
		if err != nil {
			return nil, fmt.Errorf("job %q submitted_time: %w", r.ID, err)
		}
		j := sim.NewJob(r.ID, float64(submitted.Unix()), float64(r.Runtime))
		j.NumGPUs = r.NumGPUs
		jobs = append(jobs, j)
	}
	return jobs, nil
}
