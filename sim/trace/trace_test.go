package trace

import (
	"testing"
)

func TestSimulationTrace_RecordAdmission_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for decisions
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN an admission record is recorded
	st.RecordAdmission(AdmissionRecord{
		JobID:     "job_1",
		Clock:     10,
		StartTime: 10,
	})

	// THEN the trace contains one admission record with correct data
	if len(st.Admissions) != 1 {
		t.Fatalf("expected 1 admission, got %d", len(st.Admissions))
	}
	if st.Admissions[0].JobID != "job_1" {
		t.Errorf("expected job ID job_1, got %s", st.Admissions[0].JobID)
	}
	if st.Admissions[0].Delayed {
		t.Error("expected delayed=false")
	}
}

func TestSimulationTrace_RecordRelease_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for decisions
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN a release record is recorded
	st.RecordRelease(ReleaseRecord{
		JobID:         "job_1",
		Clock:         20,
		Beneficiaries: []string{"job_2"},
	})

	// THEN the trace contains one release record with correct data
	if len(st.Releases) != 1 {
		t.Fatalf("expected 1 release, got %d", len(st.Releases))
	}
	if st.Releases[0].Beneficiaries[0] != "job_2" {
		t.Errorf("expected beneficiary job_2, got %v", st.Releases[0].Beneficiaries)
	}
}

func TestSimulationTrace_NilReceiver_IsNoOp(t *testing.T) {
	// GIVEN no trace
	var st *SimulationTrace

	// WHEN records are added THEN nothing panics
	st.RecordAdmission(AdmissionRecord{JobID: "a"})
	st.RecordRelease(ReleaseRecord{JobID: "a"})
}

func TestSimulationTrace_MultipleRecords_PreservesOrder(t *testing.T) {
	// GIVEN a trace
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN multiple records are added
	st.RecordAdmission(AdmissionRecord{JobID: "j1", Clock: 0})
	st.RecordAdmission(AdmissionRecord{JobID: "j2", Clock: 1, Delayed: true, EvictedID: "j1"})
	st.RecordRelease(ReleaseRecord{JobID: "j1", Clock: 5})

	// THEN order is preserved
	if len(st.Admissions) != 2 {
		t.Fatalf("expected 2 admissions, got %d", len(st.Admissions))
	}
	if st.Admissions[0].JobID != "j1" || st.Admissions[1].JobID != "j2" {
		t.Error("admission order not preserved")
	}
	if len(st.Releases) != 1 || st.Releases[0].JobID != "j1" {
		t.Error("release record mismatch")
	}
}

func TestIsValidTraceLevel_ValidLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"none", true},
		{"decisions", true},
		{"", true}, // empty defaults to none
		{"detailed", false},
		{"foobar", false},
		{"NONE", false}, // case-sensitive
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			if got := IsValidTraceLevel(tt.level); got != tt.valid {
				t.Errorf("IsValidTraceLevel(%q) = %v, want %v", tt.level, got, tt.valid)
			}
		})
	}
}

func TestTraceConfig_Enabled(t *testing.T) {
	if (TraceConfig{}).Enabled() {
		t.Error("zero-value config must not record")
	}
	if (TraceConfig{Level: TraceLevelNone}).Enabled() {
		t.Error("none level must not record")
	}
	if !(TraceConfig{Level: TraceLevelDecisions}).Enabled() {
		t.Error("decisions level must record")
	}
}
