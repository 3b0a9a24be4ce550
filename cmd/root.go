package cmd

import (
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/decision-sim/decision-sim/sim"
)

var (
	// CLI flags for the run command
	scenarioPath string // Path to a YAML scenario; empty builds one from flags
	seed         int64  // Master seed for all RNG subsystems
	horizon      int64  // Total number of environment steps
	logLevel     string // Log verbosity level

	// Flags for the single-agent scenario built when no file is given
	decisionPeriod     int       // Steps between decision requests
	takeActionsBetween bool      // Repeat last action on non-decision steps
	policyName         string    // Agent policy name
	armMeans           []float64 // Bandit arm mean rewards
	rewardNoise        float64   // Stddev of Gaussian reward noise
)

// envOverrides are environment-variable defaults, applied only when the
// corresponding flag was not set explicitly.
type envOverrides struct {
	LogLevel string `env:"DECISION_SIM_LOG"`
	Scenario string `env:"DECISION_SIM_SCENARIO"`
}

// rootCmd is the base command for the CLI. Logging is configured here so
// DECISION_SIM_LOG and --log apply to every subcommand.
var rootCmd = &cobra.Command{
	Use:   "decision-sim",
	Short: "Step-driven simulator for RL decision request scheduling",
}

// runCmd executes the simulation using a scenario file or CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the decision cadence simulation",
	Run: func(cmd *cobra.Command, args []string) {
		spec, err := loadOrBuildScenario(cmd)
		if err != nil {
			logrus.Fatalf("unable to load scenario; %v", err)
		}

		logrus.Infof("Starting simulation with %d agents, horizon=%d steps, seed=%d",
			len(spec.Agents), spec.Horizon, spec.Seed)

		startTime := time.Now()

		s, err := sim.NewSimulator(spec)
		if err != nil {
			logrus.Fatalf("unable to build simulator; %v", err)
		}
		defer sim.DisposeAcademy()

		s.Run()
		s.Metrics.Print(spec.Horizon, startTime)

		logrus.Info("Simulation complete.")
	},
}

// validateCmd checks a scenario file without running it
var validateCmd = &cobra.Command{
	Use:   "validate <scenario.yaml>",
	Short: "Validate a scenario file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		spec, err := sim.LoadScenarioSpec(args[0])
		if err != nil {
			logrus.Fatalf("scenario invalid: %v", err)
		}
		logrus.Infof("scenario OK: %d agents, horizon=%d, seed=%d",
			len(spec.Agents), spec.Horizon, spec.Seed)
	},
}

// applyEnvOverrides fills flag defaults from DECISION_SIM_* environment
// variables. Explicit flags win.
func applyEnvOverrides() {
	var ov envOverrides
	if err := env.Parse(&ov); err != nil {
		logrus.Fatalf("unable to parse environment overrides; %v", err)
	}
	if ov.LogLevel != "" && !rootCmd.PersistentFlags().Changed("log") {
		logLevel = ov.LogLevel
	}
	if ov.Scenario != "" && !runCmd.Flags().Changed("scenario") {
		scenarioPath = ov.Scenario
	}
}

// loadOrBuildScenario loads the scenario file when one was given, otherwise
// assembles a single-agent scenario from the run flags. Seed and horizon
// flags override the file's values when set explicitly.
func loadOrBuildScenario(cmd *cobra.Command) (*sim.ScenarioSpec, error) {
	if scenarioPath == "" {
		return &sim.ScenarioSpec{
			Version: "1",
			Seed:    seed,
			Horizon: horizon,
			Environment: sim.EnvironmentSpec{
				Arms:  armMeans,
				Noise: rewardNoise,
			},
			Agents: []sim.AgentSpec{{
				ID:                          "agent-0",
				Policy:                      policyName,
				DecisionPeriod:              decisionPeriod,
				TakeActionsBetweenDecisions: takeActionsBetween,
			}},
		}, nil
	}

	spec, err := sim.LoadScenarioSpec(scenarioPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("seed") {
		spec.Seed = seed
	}
	if cmd.Flags().Changed("horizon") {
		spec.Horizon = horizon
	}
	return spec, nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	// Assigned here rather than in the composite literal to avoid an
	// initialization cycle (the hook references rootCmd via applyEnvOverrides).
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		applyEnvOverrides()

		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	runCmd.Flags().StringVar(&scenarioPath, "scenario", "", "Path to a YAML scenario file")
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for deterministic simulation")
	runCmd.Flags().Int64Var(&horizon, "horizon", 1000, "Total simulation horizon (in steps)")

	// Single-agent scenario flags (ignored when --scenario is given)
	runCmd.Flags().IntVar(&decisionPeriod, "decision-period", sim.DefaultDecisionPeriod,
		"Steps between decision requests (1-20)")
	runCmd.Flags().BoolVar(&takeActionsBetween, "take-actions-between-decisions", true,
		"Repeat the last action on steps without a new decision")
	runCmd.Flags().StringVar(&policyName, "policy", "greedy", "Agent policy (random, greedy)")
	runCmd.Flags().Float64SliceVar(&armMeans, "arms", []float64{0.1, 0.5, 0.9},
		"Comma-separated bandit arm mean rewards")
	runCmd.Flags().Float64Var(&rewardNoise, "noise", 0.1, "Stddev of Gaussian reward noise")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
}
