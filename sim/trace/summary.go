package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalAdmissions     int            `json:"total_admissions"`
	ImmediateAdmissions int            `json:"immediate_admissions"`
	DelayedAdmissions   int            `json:"delayed_admissions"`
	TotalReleases       int            `json:"total_releases"`
	FlushReleases       int            `json:"flush_releases"`
	MeanBeneficiaries   float64        `json:"mean_beneficiaries"` // average number of jobs credited per release
	MaxBeneficiaries    int            `json:"max_beneficiaries"`
	EvictionsByJob      map[string]int `json:"evictions_by_job"` // evicted job ID → number of times displaced
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		EvictionsByJob: make(map[string]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalAdmissions = len(st.Admissions)
	for _, a := range st.Admissions {
		if a.Delayed {
			summary.DelayedAdmissions++
			summary.EvictionsByJob[a.EvictedID]++
		} else {
			summary.ImmediateAdmissions++
		}
	}

	if len(st.Releases) > 0 {
		total := 0
		for _, r := range st.Releases {
			if r.Flush {
				summary.FlushReleases++
			}
			n := len(r.Beneficiaries)
			total += n
			if n > summary.MaxBeneficiaries {
				summary.MaxBeneficiaries = n
			}
		}
		summary.TotalReleases = len(st.Releases)
		summary.MeanBeneficiaries = float64(total) / float64(len(st.Releases))
	}

	return summary
}
