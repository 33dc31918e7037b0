// Package trace provides decision-trace recording for scheduling replay analysis.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// AdmissionRecord captures how a single arriving job entered the active set.
type AdmissionRecord struct {
	JobID     string
	Clock     float64 // arrival instant
	StartTime float64
	Delayed   bool   // true when the pool was full and a job was evicted
	EvictedID string // job displaced by a delayed admission (empty otherwise)
	Displaced int    // occupants that recorded a scale-down (immediate admissions only)
}

// ReleaseRecord captures a job leaving the active set and who absorbed its capacity.
type ReleaseRecord struct {
	JobID         string
	Clock         float64 // release instant (the job's end time)
	Flush         bool    // true for releases attributed after the last arrival
	Beneficiaries []string
}
