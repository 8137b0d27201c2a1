package trace

import "testing"

func TestSummarize_EmptyTrace_ZeroValues(t *testing.T) {
	// GIVEN an empty trace
	jt := NewJumpTrace(TraceConfig{Level: TraceLevelJumps})

	// WHEN summarized
	summary := Summarize(jt)

	// THEN all counts are zero
	if summary.TotalJumps != 0 {
		t.Errorf("expected 0 total jumps, got %d", summary.TotalJumps)
	}
	if summary.MeanDistance != 0 || summary.MaxCascadeDepth != 0 {
		t.Error("expected zero distance and depth")
	}
	if len(summary.OutcomeCounts) != 0 || len(summary.SiteDistribution) != 0 {
		t.Error("expected empty distributions")
	}
}

func TestSummarize_NilTrace_ZeroValues(t *testing.T) {
	summary := Summarize(nil)
	if summary.TotalJumps != 0 {
		t.Errorf("expected 0 total jumps, got %d", summary.TotalJumps)
	}
	if summary.OutcomeCounts == nil {
		t.Error("expected non-nil outcome map")
	}
}

func TestSummarize_PopulatedTrace_CorrectCounts(t *testing.T) {
	// GIVEN a trace with mixed outcomes
	jt := NewJumpTrace(TraceConfig{Level: TraceLevelJumps})
	jt.Record(JumpRecord{Site: 0, Outcome: OutcomeMoved, Hops: []Hop{{Layer: 0, From: 0, To: 2}}})
	jt.Record(JumpRecord{Site: 0, Outcome: OutcomeMoved, Hops: []Hop{{Layer: 0, From: 0, To: 1}, {Layer: 1, From: 1, To: 5}}})
	jt.Record(JumpRecord{Site: 4, Outcome: OutcomeExited, Hops: []Hop{{Layer: 0, From: 4, To: -1}}})
	jt.Record(JumpRecord{Site: 2, Outcome: OutcomeNoop})

	// WHEN summarized
	summary := Summarize(jt)

	// THEN counts match
	if summary.TotalJumps != 4 {
		t.Errorf("expected 4 total jumps, got %d", summary.TotalJumps)
	}
	if summary.OutcomeCounts[OutcomeMoved] != 2 {
		t.Errorf("expected 2 moved, got %d", summary.OutcomeCounts[OutcomeMoved])
	}
	if summary.OutcomeCounts[OutcomeExited] != 1 || summary.OutcomeCounts[OutcomeNoop] != 1 {
		t.Errorf("unexpected outcome counts %v", summary.OutcomeCounts)
	}
	if summary.SiteDistribution[0] != 2 {
		t.Errorf("expected site 0 twice, got %d", summary.SiteDistribution[0])
	}
	if summary.MaxCascadeDepth != 2 {
		t.Errorf("expected max cascade depth 2, got %d", summary.MaxCascadeDepth)
	}

	// distances 2, 5, 0 over three moving jumps
	if summary.MeanDistance < 2.333 || summary.MeanDistance > 2.334 {
		t.Errorf("expected mean distance ~2.333, got %f", summary.MeanDistance)
	}
}
