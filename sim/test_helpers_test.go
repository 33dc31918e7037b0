package sim

import (
	"fmt"
	"math/rand"
)

// jobsAt builds jobs named j1..jn from (submit, runtime) pairs.
func jobsAt(pairs ...[2]float64) []*Job {
	jobs := make([]*Job, len(pairs))
	for i, p := range pairs {
		jobs[i] = NewJob(fmt.Sprintf("j%d", i+1), p[0], p[1])
	}
	return jobs
}

// randomJobs returns n jobs with integer-valued submissions in ascending order.
func randomJobs(seed int64, n int) []*Job {
	rng := rand.New(rand.NewSource(seed))
	jobs := make([]*Job, n)
	t := 0.0
	for i := range jobs {
		t += float64(rng.Intn(20))
		jobs[i] = NewJob(fmt.Sprintf("job_%d", i), t, float64(1+rng.Intn(100)))
	}
	return jobs
}

func capacity(slots int) CapacityConfig {
	return CapacityConfig{TotalUnits: 2 * slots, MinUnitsPerJob: 2}
}

func byID(jobs []*Job) map[string]*Job {
	m := make(map[string]*Job, len(jobs))
	for _, j := range jobs {
		m[j.ID] = j
	}
	return m
}
