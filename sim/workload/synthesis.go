package workload

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/scalesim/sim"
)

// jobNamespace scopes synthetic job IDs so they never collide with trace IDs.
var jobNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("scalesim/synthetic-job"))

// SyntheticJobID returns the deterministic ID of the i-th job sampled with seed.
func SyntheticJobID(seed int64, i int) string {
	return uuid.NewSHA1(jobNamespace, []byte(strconv.FormatInt(seed, 10)+"/"+strconv.Itoa(i))).String()
}

// Sample draws spec.NumJobs jobs. The first job arrives at 0 and every later
// arrival adds one inter-arrival draw. Arrival and runtime draws come from
// separate RNG partitions, so the same seed always yields the same stream.
func Sample(spec *SampleSpec) ([]*sim.Job, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	arrival, err := NewSampler(spec.Arrival)
	if err != nil {
		return nil, fmt.Errorf("arrival: %w", err)
	}
	runtime, err := NewSampler(spec.Runtime)
	if err != nil {
		return nil, fmt.Errorf("runtime: %w", err)
	}

	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(spec.Seed))
	arrivalRNG := rng.ForSubsystem(sim.SubsystemArrival)
	runtimeRNG := rng.ForSubsystem(sim.SubsystemRuntime)

	jobs := make([]*sim.Job, 0, spec.NumJobs)
	t := 0.0
	for i := 0; i < spec.NumJobs; i++ {
		if i > 0 {
			t += arrival.Sample(arrivalRNG)
		}
		jobs = append(jobs, sim.NewJob(SyntheticJobID(spec.Seed, i), t, runtime.Sample(runtimeRNG)))
	}
	logrus.Infof("Sampled %d jobs (seed %d), last arrival at %.1fs", len(jobs), spec.Seed, t)
	return jobs, nil
}
