package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tasep-sim/tasep-sim/sim"
	"github.com/tasep-sim/tasep-sim/sim/dump"
	"github.com/tasep-sim/tasep-sim/sim/trace"
)

var (
	pushCommon commonFlags
	pushRun    runFlags

	// CLI flags for the lattice
	sites    int    // Size of the lattice
	layers   int    // Depth, number of layers
	boundary string // Policy for jumps off the last site
	overflow string // Policy for cascades that run out of room
	cascade  string // Push cascade mode
	initial  string // Initial condition

	// CLI flags for optional outputs
	pngPath    string // Raster image of the final occupancy
	pngScale   int    // Pixels per lattice cell
	plotPath   string // Height-function plot
	traceLevel string // Jump trace verbosity
)

// pushCmd simulates the multilayer PushTASEP
var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Simulate the multilayer PushTASEP on a finite lattice",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging(pushCommon.logLevel)
		cfg := loadConfigOrEmpty(pushCommon.configPath)

		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Invalid trace level: %s", traceLevel)
		}

		pushCfg := sim.NewPushConfig(
			resolveInt(cmd, "sites", sites, cfg.Sites),
			resolveInt(cmd, "layers", layers, cfg.Layers),
			sim.BoundaryPolicy(resolveString(cmd, "boundary", boundary, cfg.Boundary)),
			sim.BoundaryPolicy(resolveString(cmd, "overflow", overflow, cfg.Overflow)),
			sim.CascadeMode(resolveString(cmd, "cascade", cascade, cfg.Cascade)),
			sim.InitialCondition(resolveString(cmd, "initial", initial, cfg.Initial)),
		)
		stop := resolveStop(cmd, &pushRun, cfg)
		profile := resolveRate(cmd, pushRun.rate, cfg.Rate)
		if err := profile.Validate(); err != nil {
			logrus.Fatalf("%v", err)
		}

		s, err := sim.NewPushSimulator(pushCfg, profile.Discrete(), newRNG(cmd, &pushCommon, cfg))
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		jt := trace.NewJumpTrace(trace.TraceConfig{Level: trace.TraceLevel(traceLevel)})
		if jt.Enabled() {
			s.Observe(func(j sim.Jump) { jt.Record(jumpRecord(j)) })
		}

		logrus.Infof("Starting push simulation: %d sites × %d layers, horizon=%g, max-events=%d",
			pushCfg.Sites, pushCfg.Layers, stop.Horizon, stop.MaxEvents)
		stats, err := sim.Run(s, stop, sim.DefaultProgressInterval(pushCfg.Sites))
		if err != nil {
			logrus.Fatalf("Run aborted after %d events: %v", stats.Events, err)
		}

		rows := s.Lattice().Rows()
		if err := dump.WriteFile(pushCommon.outPath, func(w io.Writer) error {
			return dump.WriteOccupancy(w, rows)
		}); err != nil {
			logrus.Fatalf("%v", err)
		}
		if pngPath != "" {
			if err := dump.WriteFile(pngPath, func(w io.Writer) error {
				return dump.WriteRaster(w, rows, pngScale)
			}); err != nil {
				logrus.Fatalf("%v", err)
			}
		}
		if plotPath != "" {
			heights := make([][]int, s.Lattice().Layers)
			for layer := range heights {
				heights[layer] = sim.HeightFunction(s.Lattice(), layer)
			}
			if err := dump.SaveHeightPlot(plotPath, "PushTASEP height functions", dump.LatticeHeightSeries(heights)); err != nil {
				logrus.Fatalf("%v", err)
			}
		}

		printPushSummary(os.Stdout, s, stats, jt)
		logrus.Info("Simulation complete.")
	},
}

// jumpRecord converts a simulator jump into a trace record.
func jumpRecord(j sim.Jump) trace.JumpRecord {
	hops := make([]trace.Hop, len(j.Displacements))
	for i, d := range j.Displacements {
		hops[i] = trace.Hop{Layer: d.Layer, From: d.From, To: d.To}
	}
	return trace.JumpRecord{Clock: j.Time, Site: j.Site, Outcome: string(j.Outcome), Hops: hops}
}

// printPushSummary displays the end-of-run figures of a push simulation.
func printPushSummary(w io.Writer, s *sim.PushSimulator, stats sim.RunStats, jt *trace.JumpTrace) {
	fmt.Fprintln(w, "=== Simulation Summary ===")
	fmt.Fprintf(w, "Events               : %d\n", stats.Events)
	fmt.Fprintf(w, "Final time           : %.6f\n", stats.Clock)
	fmt.Fprintf(w, "Particles            : %d\n", s.Lattice().Count())
	fmt.Fprintf(w, "Exited particles     : %d\n", s.Exited())
	fmt.Fprintf(w, "Particles per layer  : %v\n", sim.LayerCounts(s.Lattice()))
	if jt.Enabled() {
		summary := trace.Summarize(jt)
		fmt.Fprintf(w, "Outcomes             : %v\n", summary.OutcomeCounts)
		fmt.Fprintf(w, "Mean jump distance   : %.3f\n", summary.MeanDistance)
		fmt.Fprintf(w, "Max cascade depth    : %d\n", summary.MaxCascadeDepth)
	}
	fmt.Fprintf(w, "Wall time            : %v\n", stats.Elapsed)
}

func init() {
	addCommonFlags(pushCmd, &pushCommon, "multilayer-pushtasep.txt")
	addRunFlags(pushCmd, &pushRun, 100, 0)

	pushCmd.Flags().IntVar(&sites, "sites", 100, "Size of the lattice")
	pushCmd.Flags().IntVar(&layers, "layers", 100, "Depth, number of layers")
	pushCmd.Flags().StringVar(&boundary, "boundary", string(sim.BoundaryDiscard), "Policy for jumps off the last site (discard, reflect, error)")
	pushCmd.Flags().StringVar(&overflow, "overflow", string(sim.BoundaryReflect), "Policy for pushes that find no empty site (discard, reflect, error)")
	pushCmd.Flags().StringVar(&cascade, "cascade", string(sim.CascadeRow), "Push cascade (row, column)")
	pushCmd.Flags().StringVar(&initial, "initial", string(sim.InitialFull), "Initial condition (full, empty)")

	pushCmd.Flags().StringVar(&pngPath, "png", "", "Write a raster PNG of the final occupancy")
	pushCmd.Flags().IntVar(&pngScale, "scale", 10, "Pixels per lattice cell in the raster PNG")
	pushCmd.Flags().StringVar(&plotPath, "plot", "", "Write a plot of the per-layer height functions")
	pushCmd.Flags().StringVar(&traceLevel, "trace", string(trace.TraceLevelNone), "Jump trace level (none, jumps)")
}
