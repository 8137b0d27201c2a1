package trace

// TraceSummary aggregates statistics from a JumpTrace.
type TraceSummary struct {
	TotalJumps       int
	OutcomeCounts    map[string]int // outcome label → count
	MeanDistance     float64        // over jumps that moved at least one particle
	MaxCascadeDepth  int            // most hops in a single jump
	SiteDistribution map[int]int    // site → number of times its clock rang
}

// Summarize computes aggregate statistics from a JumpTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(jt *JumpTrace) *TraceSummary {
	summary := &TraceSummary{
		OutcomeCounts:    make(map[string]int),
		SiteDistribution: make(map[int]int),
	}
	if jt == nil {
		return summary
	}

	summary.TotalJumps = len(jt.Jumps)
	moving, totalDistance := 0, 0
	for _, j := range jt.Jumps {
		summary.OutcomeCounts[j.Outcome]++
		summary.SiteDistribution[j.Site]++
		if len(j.Hops) > summary.MaxCascadeDepth {
			summary.MaxCascadeDepth = len(j.Hops)
		}
		if len(j.Hops) > 0 {
			moving++
			totalDistance += j.Distance()
		}
	}
	if moving > 0 {
		summary.MeanDistance = float64(totalDistance) / float64(moving)
	}

	return summary
}
