package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasep-sim/tasep-sim/sim"
	"github.com/tasep-sim/tasep-sim/sim/dump"
	"github.com/tasep-sim/tasep-sim/sim/trace"
)

func TestPrintPushSummary(t *testing.T) {
	// GIVEN a push run with jump tracing
	s, err := sim.NewPushSimulator(sim.NewPushConfig(6, 2, "", "", "", ""), sim.ConstantRate(1), sim.NewPartitionedRNG(sim.NewSimulationKey(1)))
	require.NoError(t, err)
	jt := trace.NewJumpTrace(trace.TraceConfig{Level: trace.TraceLevelJumps})
	s.Observe(func(j sim.Jump) { jt.Record(jumpRecord(j)) })
	stats, err := sim.Run(s, sim.StopCondition{MaxEvents: 40}, 0)
	require.NoError(t, err)

	// WHEN the summary is printed
	var buf bytes.Buffer
	printPushSummary(&buf, s, stats, jt)

	// THEN the end-of-run figures and the trace summary appear
	out := buf.String()
	assert.Contains(t, out, "=== Simulation Summary ===")
	assert.Contains(t, out, "Events               : 40")
	assert.Contains(t, out, "Particles per layer")
	assert.Contains(t, out, "Max cascade depth")
}

func TestPrintPushSummary_NoTrace(t *testing.T) {
	s, err := sim.NewPushSimulator(sim.NewPushConfig(3, 1, "", "", "", ""), sim.ConstantRate(1), sim.NewPartitionedRNG(sim.NewSimulationKey(1)))
	require.NoError(t, err)

	var buf bytes.Buffer
	printPushSummary(&buf, s, sim.RunStats{}, trace.NewJumpTrace(trace.TraceConfig{Level: trace.TraceLevelNone}))

	assert.NotContains(t, buf.String(), "Outcomes")
}

func TestJumpRecord(t *testing.T) {
	j := sim.Jump{
		Time:    1.5,
		Site:    2,
		Outcome: sim.OutcomeMoved,
		Displacements: []sim.Displacement{
			{Layer: 0, From: 2, To: 4},
			{Layer: 1, From: 4, To: sim.Exit},
		},
	}
	assert.Equal(t, trace.JumpRecord{
		Clock:   1.5,
		Site:    2,
		Outcome: "moved",
		Hops:    []trace.Hop{{Layer: 0, From: 2, To: 4}, {Layer: 1, From: 4, To: sim.Exit}},
	}, jumpRecord(j))
}

func TestPrintContinuousSummary(t *testing.T) {
	s, err := sim.NewContinuousSimulator(sim.ContinuousConfig{SourceRate: 1, JumpRate: 1}, sim.ConstantSpaceRate(1), sim.NewPartitionedRNG(sim.NewSimulationKey(2)))
	require.NoError(t, err)
	stats, err := sim.Run(s, sim.StopCondition{MaxEvents: 25}, 0)
	require.NoError(t, err)

	var buf bytes.Buffer
	printContinuousSummary(&buf, s, stats)

	out := buf.String()
	assert.Contains(t, out, "Events               : 25")
	assert.Contains(t, out, "Positions            : min")
}

func TestPrintSixVertexSummary(t *testing.T) {
	g, err := sim.SampleSixVertex(4, 6, sim.VertexWeights{U: 0.1, V: 0.9, T: 0.5}, sim.NewPartitionedRNG(sim.NewSimulationKey(3)))
	require.NoError(t, err)

	var buf bytes.Buffer
	printSixVertexSummary(&buf, g)

	assert.Contains(t, buf.String(), "Grid                 : 4 × 6")
	assert.Contains(t, buf.String(), "Top-left height      : 4")
}

func TestPushCommand_WritesOccupancy(t *testing.T) {
	// GIVEN a small push run driven through the CLI with a YAML config
	dir := t.TempDir()
	out := filepath.Join(dir, "push.txt")
	cfgPath := filepath.Join(dir, "run.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("sites: 7\nlayers: 2\nmax_events: 30\n"), 0o644))

	// WHEN executed with an explicit layer count overriding the file
	rootCmd.SetArgs([]string{"push", "--config", cfgPath, "--layers", "3", "--horizon", "0", "--out", out})
	require.NoError(t, rootCmd.Execute())

	// THEN the dump has one row per layer and one column per site
	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	rows, err := dump.ParseOccupancy(f)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Len(t, rows[0], 7)
}

func TestContinuousCommand_WritesPositions(t *testing.T) {
	// GIVEN a continuous run bounded by events only
	out := filepath.Join(t.TempDir(), "cont.txt")

	// WHEN executed through the CLI
	rootCmd.SetArgs([]string{"continuous", "--horizon", "0", "--max-events", "50", "--seed", "7", "--out", out})
	require.NoError(t, rootCmd.Execute())

	// THEN the dump reads back as sorted nonnegative positions
	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	positions, err := dump.ParsePositions(f)
	require.NoError(t, err)
	require.NotEmpty(t, positions)
	assert.GreaterOrEqual(t, positions[0], 0.0)
	for i := 1; i < len(positions); i++ {
		assert.LessOrEqual(t, positions[i-1], positions[i])
	}
}

func TestSixVertexCommand_WritesVertices(t *testing.T) {
	out := filepath.Join(t.TempDir(), "six.txt")

	rootCmd.SetArgs([]string{"sixvertex", "--rows", "5", "--cols", "4", "--out", out})
	require.NoError(t, rootCmd.Execute())

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	cells, err := dump.ParseVertices(f)
	require.NoError(t, err)
	require.Len(t, cells, 5)
	assert.Len(t, cells[0], 4)
}

func TestSwapsCommand_WritesSample(t *testing.T) {
	// GIVEN a YAML file setting part of the swap parameters
	dir := t.TempDir()
	out := filepath.Join(dir, "swaps.txt")
	cfgPath := filepath.Join(dir, "run.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("swaps:\n  size: 24\n  coarse: 6\n"), 0o644))

	// WHEN executed with an explicit try count
	rootCmd.SetArgs([]string{"swaps", "--config", cfgPath, "--tries", "2", "--out", out})
	require.NoError(t, rootCmd.Execute())

	// THEN the dump holds two permutations of 1..24 and 4 × 4 count matrices
	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	s, err := dump.ParseSwaps(f)
	require.NoError(t, err)
	require.Len(t, s.Perms, 2)
	assert.Len(t, s.Perms[0], 24)
	require.Len(t, s.Coarse, 2)
	assert.Len(t, s.Coarse[1], 4)
	assert.Len(t, s.Sum, 4)
}

func TestPrintSwapsSummary(t *testing.T) {
	p := sim.SwapConfig{N: 4, Tries: 1, Coarse: 2, Prob: 1}
	s, err := sim.SampleSwaps(p, sim.NewPartitionedRNG(sim.NewSimulationKey(1)))
	require.NoError(t, err)

	var buf bytes.Buffer
	printSwapsSummary(&buf, p, s)

	out := buf.String()
	assert.Contains(t, out, "Steps per try        : 5")
	assert.Contains(t, out, "Coarse bins          : 2 × 2")
	// the reversal of 1..4 moves values by 3, 1, 1, 3
	assert.Contains(t, out, "Mean displacement 0  : 2.000")
}
