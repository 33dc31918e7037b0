// Package sim provides the offline scheduling replay at the core of scalesim.
//
// # Reading Guide
//
//   - job.go: the Job record and its lifecycle (pending → admitted → released)
//   - preprocess.go: subsample / stretch transforms applied before a replay
//   - simulator.go: release pass, admission, delayed admission and trailing flush
//   - validate.go: input checks and the start + runtime == end invariant
//
// # Architecture
//
// The replay is a sequential fold over jobs sorted by submission time. At most
// CapacityConfig.Slots() jobs are active; a job arriving at a full pool starts when
// the earliest-finishing occupant ends. Scale events are inferred, never measured:
// a newcomer scales every occupant down, a departure scales up every occupant
// that was already running.
//
// Sub-packages:
//   - sim/workload/: trace loading, job file I/O, synthetic job streams
//   - sim/analysis/: scaling statistics, distribution fitting, histograms and CDFs
//   - sim/sweep/: parallel parameter sweeps over independent replays
//   - sim/trace/: decision trace recording
package sim
