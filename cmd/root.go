package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tasep-sim/tasep-sim/sim"
)

// commonFlags are the CLI flags every simulation command carries. Each
// command owns its own copy so defaults never leak between commands.
type commonFlags struct {
	seed       int64  // Seed for all random draws
	logLevel   string // Log verbosity level
	configPath string // Optional YAML run configuration
	outPath    string // Text dump of the final state
}

// runFlags are the CLI flags of the continuous-time processes.
type runFlags struct {
	horizon   float64 // Time until which we simulate (0 = unbounded)
	maxEvents int64   // Maximum number of events (0 = unbounded)
	rate      float64 // Homogeneous jump rate
}

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "tasep-sim",
	Short: "Monte Carlo simulator for PushTASEP-family particle systems",
}

// setupLogging parses the --log flag and applies it to logrus.
func setupLogging(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", level)
	}
	logrus.SetLevel(lvl)
}

// loadConfigOrEmpty returns the --config file contents, or an empty config.
func loadConfigOrEmpty(path string) *RunConfig {
	if path == "" {
		return &RunConfig{}
	}
	cfg, err := loadRunConfig(path)
	if err != nil {
		logrus.Fatalf("%v", err)
	}
	logrus.Infof("Loaded run config from %s", path)
	return cfg
}

// newRNG builds the partitioned RNG for a run.
func newRNG(cmd *cobra.Command, f *commonFlags, cfg *RunConfig) *sim.PartitionedRNG {
	s := resolveInt64(cmd, "seed", f.seed, cfg.Seed)
	logrus.Infof("Seed: %d", s)
	return sim.NewPartitionedRNG(sim.NewSimulationKey(s))
}

// resolveStop merges the stopping flags with the run config.
func resolveStop(cmd *cobra.Command, f *runFlags, cfg *RunConfig) sim.StopCondition {
	return sim.StopCondition{
		Horizon:   resolveFloat(cmd, "horizon", f.horizon, cfg.Horizon),
		MaxEvents: resolveInt64(cmd, "max-events", f.maxEvents, cfg.MaxEvents),
	}
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// addCommonFlags registers flags every simulation command shares.
func addCommonFlags(c *cobra.Command, f *commonFlags, defaultOut string) {
	c.Flags().Int64Var(&f.seed, "seed", 42, "Seed for random draws")
	c.Flags().StringVar(&f.logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	c.Flags().StringVar(&f.configPath, "config", "", "Path to YAML run configuration")
	c.Flags().StringVar(&f.outPath, "out", defaultOut, "Output file for the final state")
}

// addRunFlags registers flags for the continuous-time processes.
func addRunFlags(c *cobra.Command, f *runFlags, defaultHorizon float64, defaultMaxEvents int64) {
	c.Flags().Float64Var(&f.horizon, "horizon", defaultHorizon, "Time until which we simulate (0 = unbounded)")
	c.Flags().Int64Var(&f.maxEvents, "max-events", defaultMaxEvents, "Maximum number of events (0 = unbounded)")
	c.Flags().Float64Var(&f.rate, "rate", 1.0, "Homogeneous jump rate; a config rate profile applies when unset")
}

// init attaches subcommands
func init() {
	rootCmd.AddCommand(pushCmd)
	rootCmd.AddCommand(continuousCmd)
	rootCmd.AddCommand(sixVertexCmd)
	rootCmd.AddCommand(swapsCmd)
}
