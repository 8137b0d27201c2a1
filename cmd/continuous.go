package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tasep-sim/tasep-sim/sim"
	"github.com/tasep-sim/tasep-sim/sim/dump"
)

var (
	contCommon commonFlags
	contRun    runFlags

	// CLI flags for continuous space
	sourceRate   float64 // Rate a0 of incoming particles
	jumpRate     float64 // Rate ν of the exponential jump length
	contPlotPath string  // Height-function plot
)

// continuousCmd simulates continuous-space TASEP
var continuousCmd = &cobra.Command{
	Use:   "continuous",
	Short: "Simulate continuous-space TASEP with a particle source at the origin",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging(contCommon.logLevel)
		cfg := loadConfigOrEmpty(contCommon.configPath)

		contCfg := sim.ContinuousConfig{
			SourceRate: resolveFloat(cmd, "source-rate", sourceRate, cfg.SourceRate),
			JumpRate:   resolveFloat(cmd, "jump-rate", jumpRate, cfg.JumpRate),
		}
		stop := resolveStop(cmd, &contRun, cfg)
		profile := resolveRate(cmd, contRun.rate, cfg.Rate)
		if err := profile.Validate(); err != nil {
			logrus.Fatalf("%v", err)
		}

		s, err := sim.NewContinuousSimulator(contCfg, profile.Continuous(), newRNG(cmd, &contCommon, cfg))
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		logrus.Infof("Starting continuous simulation: a0=%g, ν=%g, horizon=%g, max-events=%d",
			contCfg.SourceRate, contCfg.JumpRate, stop.Horizon, stop.MaxEvents)
		stats, err := sim.Run(s, stop, 500)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		positions := s.Positions()
		if err := dump.WriteFile(contCommon.outPath, func(w io.Writer) error {
			return dump.WritePositions(w, positions)
		}); err != nil {
			logrus.Fatalf("%v", err)
		}
		if contPlotPath != "" {
			series := []dump.HeightSeries{dump.ContinuousHeightSeries(positions)}
			if err := dump.SaveHeightPlot(contPlotPath, "Continuous-space TASEP height function", series); err != nil {
				logrus.Fatalf("%v", err)
			}
		}

		printContinuousSummary(os.Stdout, s, stats)
		logrus.Info("Simulation complete.")
	},
}

// printContinuousSummary displays the end-of-run figures of a continuous-space run.
func printContinuousSummary(w io.Writer, s *sim.ContinuousSimulator, stats sim.RunStats) {
	summary := sim.Summarize(s.Positions())
	fmt.Fprintln(w, "=== Simulation Summary ===")
	fmt.Fprintf(w, "Events               : %d\n", stats.Events)
	fmt.Fprintf(w, "Final time           : %.6f\n", stats.Clock)
	fmt.Fprintf(w, "Particles            : %d\n", summary.Count)
	fmt.Fprintf(w, "Occupied locations   : %d\n", s.Len())
	fmt.Fprintf(w, "Blocked jumps        : %d\n", s.Merges())
	if summary.Count > 0 {
		fmt.Fprintf(w, "Positions            : min %.6f, max %.6f, mean %.6f, std %.6f\n",
			summary.Min, summary.Max, summary.Mean, summary.StdDev)
	}
	fmt.Fprintf(w, "Wall time            : %v\n", stats.Elapsed)
}

func init() {
	addCommonFlags(continuousCmd, &contCommon, "cont-space-tasep.txt")
	addRunFlags(continuousCmd, &contRun, 1000, 20_000_000)

	continuousCmd.Flags().Float64Var(&sourceRate, "source-rate", 1.0, "Rate a0 of incoming particles at the origin")
	continuousCmd.Flags().Float64Var(&jumpRate, "jump-rate", 1.0, "Rate of the exponential jump length (mean 1/rate)")
	continuousCmd.Flags().StringVar(&contPlotPath, "plot", "", "Write a plot of the height function")
}
