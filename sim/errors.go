package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig marks a configuration rejected before any simulation work begins.
	ErrConfig = errors.New("invalid simulation configuration")
	// ErrMalformedInput marks job records the simulator refuses to schedule.
	ErrMalformedInput = errors.New("malformed simulator input")
)

// InvariantViolationError reports a job whose execution window does not match its runtime.
// It always indicates a bookkeeping defect in admission or eviction.
type InvariantViolationError struct {
	JobID     string
	StartTime float64
	Runtime   float64
	EndTime   float64
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("job %q violates start_time + runtime == end_time: %v + %v != %v",
		e.JobID, e.StartTime, e.Runtime, e.EndTime)
}

func configError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfig, fmt.Sprintf(format, args...))
}
