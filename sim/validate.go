package sim

import (
	"fmt"
	"math"

	"github.com/hashicorp/go-multierror"
)

// ValidateJobs checks that jobs can be fed to Simulator.Run: every record is
// well-formed and submission times never decrease. All problems are reported together.
func ValidateJobs(jobs []*Job) error {
	if err := validateRecords(jobs); err != nil {
		return err
	}
	var result *multierror.Error
	for i := 1; i < len(jobs); i++ {
		if jobs[i].SubmittedTime < jobs[i-1].SubmittedTime {
			result = multierror.Append(result, fmt.Errorf("job[%d] %q submitted at %v before job[%d] %q at %v",
				i, jobs[i].ID, jobs[i].SubmittedTime, i-1, jobs[i-1].ID, jobs[i-1].SubmittedTime))
		}
	}
	return wrapMalformed(result)
}

// validateRecords checks per-record fields and ID uniqueness, independent of order.
func validateRecords(jobs []*Job) error {
	var result *multierror.Error
	seen := make(map[string]int, len(jobs))
	for i, j := range jobs {
		if j == nil {
			result = multierror.Append(result, fmt.Errorf("job[%d] is nil", i))
			continue
		}
		if j.ID == "" {
			result = multierror.Append(result, fmt.Errorf("job[%d] has no id", i))
		} else if prev, dup := seen[j.ID]; dup {
			result = multierror.Append(result, fmt.Errorf("job[%d] repeats id %q of job[%d]", i, j.ID, prev))
		} else {
			seen[j.ID] = i
		}
		if !isFinite(j.SubmittedTime) {
			result = multierror.Append(result, fmt.Errorf("job[%d] %q has unresolvable submitted_time %v", i, j.ID, j.SubmittedTime))
		}
		if !isFinite(j.Runtime) {
			result = multierror.Append(result, fmt.Errorf("job[%d] %q has unresolvable runtime %v", i, j.ID, j.Runtime))
		} else if j.Runtime < 0 {
			result = multierror.Append(result, fmt.Errorf("job[%d] %q has negative runtime %v", i, j.ID, j.Runtime))
		}
	}
	return wrapMalformed(result)
}

func wrapMalformed(result *multierror.Error) error {
	if err := result.ErrorOrNil(); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}
	return nil
}

// CheckInvariants returns an *InvariantViolationError for the first job whose
// window does not equal its runtime.
func CheckInvariants(jobs []*Job) error {
	for _, j := range jobs {
		if j.StartTime+j.Runtime != j.EndTime {
			return &InvariantViolationError{
				JobID:     j.ID,
				StartTime: j.StartTime,
				Runtime:   j.Runtime,
				EndTime:   j.EndTime,
			}
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
