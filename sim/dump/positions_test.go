package dump

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasep-sim/tasep-sim/sim"
)

func TestWritePositions_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePositions(&buf, []float64{0.25, 1, 1, 3.5}))
	assert.Equal(t, "{0.25, 1, 1, 3.5}", buf.String())
}

func TestPositions_RoundTripSimulatedRun(t *testing.T) {
	// GIVEN positions from a continuous-space run, with full float precision
	s, err := sim.NewContinuousSimulator(sim.ContinuousConfig{SourceRate: 1, JumpRate: 1}, sim.ConstantSpaceRate(1), sim.NewPartitionedRNG(sim.NewSimulationKey(8)))
	require.NoError(t, err)
	_, err = sim.Run(s, sim.StopCondition{MaxEvents: 300}, 0)
	require.NoError(t, err)
	positions := s.Positions()
	require.NotEmpty(t, positions)

	var buf bytes.Buffer
	require.NoError(t, WritePositions(&buf, positions))
	got, err := ParsePositions(&buf)

	require.NoError(t, err)
	assert.Equal(t, positions, got)
}

func TestParsePositions_TrailingComma(t *testing.T) {
	got, err := ParsePositions(strings.NewReader("{1.5, 2, }"))
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 2}, got)
}

func TestParsePositions_Empty(t *testing.T) {
	got, err := ParsePositions(strings.NewReader("{}"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParsePositions_Rejects(t *testing.T) {
	for _, input := range []string{"{1, x}", "{{1}}", "1.5", "{1,,2}"} {
		_, err := ParsePositions(strings.NewReader(input))
		assert.Error(t, err, "input %q", input)
	}
}
