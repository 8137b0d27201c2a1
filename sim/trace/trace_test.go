package trace

import (
	"testing"
)

func TestJumpTrace_Record_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for jumps
	jt := NewJumpTrace(TraceConfig{Level: TraceLevelJumps})

	// WHEN a jump record is recorded
	jt.Record(JumpRecord{
		Clock:   0.25,
		Site:    3,
		Outcome: OutcomeMoved,
		Hops:    []Hop{{Layer: 0, From: 3, To: 5}},
	})

	// THEN the trace contains one record with correct data
	if len(jt.Jumps) != 1 {
		t.Fatalf("expected 1 jump, got %d", len(jt.Jumps))
	}
	if jt.Jumps[0].Site != 3 {
		t.Errorf("expected site 3, got %d", jt.Jumps[0].Site)
	}
	if jt.Jumps[0].Outcome != OutcomeMoved {
		t.Errorf("expected outcome moved, got %s", jt.Jumps[0].Outcome)
	}
}

func TestJumpTrace_LevelNone_RecordsNothing(t *testing.T) {
	// GIVEN a trace with tracing disabled
	jt := NewJumpTrace(TraceConfig{Level: TraceLevelNone})

	// WHEN a record is offered
	jt.Record(JumpRecord{Site: 1, Outcome: OutcomeNoop})

	// THEN nothing is kept
	if len(jt.Jumps) != 0 {
		t.Errorf("expected no jumps, got %d", len(jt.Jumps))
	}
}

func TestJumpTrace_NilTrace_RecordIsSafe(t *testing.T) {
	var jt *JumpTrace
	jt.Record(JumpRecord{Site: 1})
	if jt.Enabled() {
		t.Error("nil trace must report disabled")
	}
}

func TestJumpTrace_MultipleRecords_PreservesOrder(t *testing.T) {
	// GIVEN a trace
	jt := NewJumpTrace(TraceConfig{Level: TraceLevelJumps})

	// WHEN multiple records are added
	jt.Record(JumpRecord{Clock: 0.1, Site: 4, Outcome: OutcomeExited, Hops: []Hop{{Layer: 0, From: 4, To: -1}}})
	jt.Record(JumpRecord{Clock: 0.2, Site: 0, Outcome: OutcomeNoop})
	jt.Record(JumpRecord{Clock: 0.3, Site: 1, Outcome: OutcomeMoved, Hops: []Hop{{Layer: 0, From: 1, To: 4}}})

	// THEN order is preserved
	if len(jt.Jumps) != 3 {
		t.Fatalf("expected 3 jumps, got %d", len(jt.Jumps))
	}
	for i, want := range []int{4, 0, 1} {
		if jt.Jumps[i].Site != want {
			t.Errorf("jump %d: expected site %d, got %d", i, want, jt.Jumps[i].Site)
		}
	}
}

func TestJumpRecord_Distance_IgnoresExits(t *testing.T) {
	r := JumpRecord{Hops: []Hop{
		{Layer: 0, From: 1, To: 3},
		{Layer: 1, From: 3, To: 7},
		{Layer: 2, From: 7, To: -1},
	}}
	if got := r.Distance(); got != 6 {
		t.Errorf("Distance() = %d, want 6", got)
	}
}

func TestIsValidTraceLevel(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"", true},
		{"none", true},
		{"jumps", true},
		{"decisions", false},
		{"all", false},
	}
	for _, tt := range tests {
		if got := IsValidTraceLevel(tt.level); got != tt.valid {
			t.Errorf("IsValidTraceLevel(%q) = %v, want %v", tt.level, got, tt.valid)
		}
	}
}
