package analysis

import (
	"github.com/inference-sim/scalesim/sim/workload"
)

// CountInterrupts counts, for each job, how many attempt boundaries of other
// jobs fall strictly inside one of its own attempts. A start and an end inside
// the same attempt count twice.
func CountInterrupts(records []workload.JobRecord) (map[string]int, error) {
	windows := make([][][2]int64, len(records))
	for i, r := range records {
		ws, err := r.Windows()
		if err != nil {
			return nil, err
		}
		windows[i] = make([][2]int64, len(ws))
		for k, w := range ws {
			windows[i][k] = [2]int64{w[0].Unix(), w[1].Unix()}
		}
	}

	out := make(map[string]int, len(records))
	for i, r := range records {
		n := 0
		for _, own := range windows[i] {
			for o := range records {
				if o == i {
					continue
				}
				for _, other := range windows[o] {
					if own[0] < other[0] && other[0] < own[1] {
						n++
					}
					if own[0] < other[1] && other[1] < own[1] {
						n++
					}
				}
			}
		}
		out[r.ID] += n
	}
	return out, nil
}

// MaxNumGPUs returns the largest GPU count among records, 0 when empty.
func MaxNumGPUs(records []workload.JobRecord) int {
	most := 0
	for _, r := range records {
		if r.NumGPUs > most {
			most = r.NumGPUs
		}
	}
	return most
}
