package trace

// TraceLevel controls the verbosity of jump tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelJumps captures every resolved jump.
	TraceLevelJumps TraceLevel = "jumps"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:  true,
	TraceLevelJumps: true,
	"":              true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// JumpTrace collects jump records during a lattice simulation.
type JumpTrace struct {
	Config TraceConfig
	Jumps  []JumpRecord
}

// NewJumpTrace creates a JumpTrace ready for recording.
func NewJumpTrace(config TraceConfig) *JumpTrace {
	return &JumpTrace{
		Config: config,
		Jumps:  make([]JumpRecord, 0),
	}
}

// Enabled reports whether records should be collected.
func (jt *JumpTrace) Enabled() bool {
	return jt != nil && jt.Config.Level == TraceLevelJumps
}

// Record appends a jump record. No-op when tracing is disabled.
func (jt *JumpTrace) Record(record JumpRecord) {
	if !jt.Enabled() {
		return
	}
	jt.Jumps = append(jt.Jumps, record)
}
