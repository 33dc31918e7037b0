// sim/simulator.go
package sim

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/scalesim/sim/trace"
)

// Simulator replays an ordered job stream against a fixed number of capacity slots.
// One Simulator holds state for a single Run; it is not safe for concurrent use.
type Simulator struct {
	// Slots is the maximum number of jobs allowed in the active set.
	Slots int
	// Active holds the jobs currently occupying the pool, in insertion order.
	// Insertion order breaks end-time ties for eviction and release.
	Active []*Job
	// Trace records admission and release decisions; nil when tracing is off.
	Trace *trace.SimulationTrace
	// Clock is the submission instant of the arrival being processed.
	Clock float64
}

// NewSimulator creates a simulator for the given capacity.
func NewSimulator(capacity CapacityConfig, traceConfig trace.TraceConfig) (*Simulator, error) {
	if err := capacity.Validate(); err != nil {
		return nil, err
	}
	if !trace.IsValidTraceLevel(string(traceConfig.Level)) {
		return nil, configError("unknown trace level %q", traceConfig.Level)
	}
	s := &Simulator{
		Slots:  capacity.Slots(),
		Active: make([]*Job, 0, capacity.Slots()),
	}
	if traceConfig.Enabled() {
		s.Trace = trace.NewSimulationTrace(traceConfig)
	}
	return s, nil
}

// Run schedules jobs in input order and returns annotated deep copies.
// Input must already be sorted by submission time (see Preprocess).
func (sim *Simulator) Run(jobs []*Job) ([]*Job, error) {
	if err := ValidateJobs(jobs); err != nil {
		return nil, err
	}
	executed := CloneJobs(jobs)
	sim.Active = sim.Active[:0]

	logrus.Infof("Replaying %d jobs on %d slots", len(executed), sim.Slots)
	for _, j := range executed {
		j.ScaleUp = j.ScaleUp[:0]
		j.ScaleDown = j.ScaleDown[:0]
		j.State = StatePending
		sim.Clock = j.SubmittedTime
		sim.release(sim.Clock)
		if len(sim.Active) < sim.Slots {
			sim.admit(j)
		} else {
			sim.admitDelayed(j)
		}
	}
	sim.flush()

	if err := CheckInvariants(executed); err != nil {
		return nil, err
	}
	logrus.Infof("Replay finished at t=%v", sim.Clock)
	return executed, nil
}

// release removes every active job that ended strictly before t, in ascending end
// time, crediting its capacity to the remaining jobs that were already running.
func (sim *Simulator) release(t float64) {
	finished := make([]int, 0)
	for i, a := range sim.Active {
		if a.EndTime < t {
			finished = append(finished, i)
		}
	}
	if len(finished) == 0 {
		return
	}
	sort.SliceStable(finished, func(a, b int) bool {
		return sim.Active[finished[a]].EndTime < sim.Active[finished[b]].EndTime
	})

	released := make([]bool, len(sim.Active))
	for _, fi := range finished {
		f := sim.Active[fi]
		released[fi] = true
		var beneficiaries []string
		for oi, o := range sim.Active {
			if released[oi] {
				continue
			}
			if o.StartTime < f.EndTime {
				o.addScaleUp(f.EndTime)
				beneficiaries = append(beneficiaries, o.ID)
			}
		}
		f.State = StateReleased
		logrus.Debugf("[t=%v] released %s at %v, %d jobs scale up", t, f.ID, f.EndTime, len(beneficiaries))
		sim.Trace.RecordRelease(trace.ReleaseRecord{JobID: f.ID, Clock: f.EndTime, Beneficiaries: beneficiaries})
	}

	remaining := sim.Active[:0]
	for i, a := range sim.Active {
		if !released[i] {
			remaining = append(remaining, a)
		}
	}
	sim.Active = remaining
}

// admit starts j at its submission time; every current occupant loses a share.
func (sim *Simulator) admit(j *Job) {
	t := j.SubmittedTime
	j.StartTime = t
	j.EndTime = t + j.Runtime
	for _, a := range sim.Active {
		a.addScaleDown(t)
	}
	j.State = StateAdmittedImmediately
	logrus.Debugf("[t=%v] admitted %s, %d occupants scale down", t, j.ID, len(sim.Active))
	sim.Trace.RecordAdmission(trace.AdmissionRecord{
		JobID:     j.ID,
		Clock:     t,
		StartTime: j.StartTime,
		Displaced: len(sim.Active),
	})
	sim.Active = append(sim.Active, j)
}

// admitDelayed evicts the job finishing first and starts j when it ends.
func (sim *Simulator) admitDelayed(j *Job) {
	ei := 0
	for i, a := range sim.Active {
		if a.EndTime < sim.Active[ei].EndTime {
			ei = i
		}
	}
	e := sim.Active[ei]
	j.StartTime = e.EndTime
	j.EndTime = e.EndTime + j.Runtime
	j.State = StateAdmittedDelayed
	e.State = StateReleased

	sim.Active = append(sim.Active[:ei], sim.Active[ei+1:]...)
	sim.Active = append(sim.Active, j)

	logrus.Debugf("[t=%v] pool full, %s waits for %s until %v", j.SubmittedTime, j.ID, e.ID, j.StartTime)
	sim.Trace.RecordAdmission(trace.AdmissionRecord{
		JobID:     j.ID,
		Clock:     j.SubmittedTime,
		StartTime: j.StartTime,
		Delayed:   true,
		EvictedID: e.ID,
	})
}

// flush attributes the cascading scale-ups of jobs still running after the last arrival:
// each job absorbs the capacity of every job that finishes before it.
func (sim *Simulator) flush() {
	sort.SliceStable(sim.Active, func(a, b int) bool {
		return sim.Active[a].EndTime < sim.Active[b].EndTime
	})
	for i, c := range sim.Active {
		later := sim.Active[i+1:]
		beneficiaries := make([]string, 0, len(later))
		for _, o := range later {
			o.addScaleUp(c.EndTime)
			beneficiaries = append(beneficiaries, o.ID)
		}
		c.State = StateReleased
		sim.Trace.RecordRelease(trace.ReleaseRecord{JobID: c.ID, Clock: c.EndTime, Flush: true, Beneficiaries: beneficiaries})
		if c.EndTime > sim.Clock {
			sim.Clock = c.EndTime
		}
	}
	sim.Active = sim.Active[:0]
}

// Result is the outcome of one Simulate call.
type Result struct {
	Jobs  []*Job
	Slots int
	Trace *trace.SimulationTrace // nil unless decision tracing was enabled
}

// Simulate validates cfg, preprocesses a copy of jobs and replays it.
// The caller's records are left untouched.
func Simulate(jobs []*Job, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	prepared, err := Preprocess(jobs, cfg.Preprocess)
	if err != nil {
		return nil, err
	}
	sim, err := NewSimulator(cfg.Capacity, cfg.Trace)
	if err != nil {
		return nil, err
	}
	executed, err := sim.Run(prepared)
	if err != nil {
		return nil, err
	}
	return &Result{Jobs: executed, Slots: sim.Slots, Trace: sim.Trace}, nil
}
