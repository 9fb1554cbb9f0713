package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/ChristopherRabotin/kepler"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"
)

const dateFormat = "2006-01-02 15:04:05"

var (
	cfgFile  string
	logLevel string
	workers  int
)

var rootCmd = &cobra.Command{
	Use:   "keplerbench",
	Short: "Keplerian orbit propagation harness",
	Long: `Propagate Keplerian orbits analytically.

The configuration is read from a TOML file (--config) and from the
environment: every key may be overridden with a KEPLER_ prefixed variable,
e.g. KEPLER_SOLVER_MAX_ITERATIONS=20.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides log.level)")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 0, "size of the worker pool (overrides propagator.workers)")
	rootCmd.AddCommand(benchCmd, sampleCmd)
}

// loadConfig reads the configuration and applies the persistent flags.
func loadConfig(cmd *cobra.Command) (kepler.Config, log.Logger, error) {
	conf, err := kepler.LoadConfig(cfgFile)
	if err != nil {
		return conf, nil, err
	}
	if cmd.Flags().Changed("log-level") {
		conf.LogLevel = logLevel
	}
	if cmd.Flags().Changed("workers") {
		if workers <= 0 {
			return conf, nil, fmt.Errorf("--workers must be positive, got %d", workers)
		}
		conf.Workers = workers
	}
	logger := kepler.NewLogger(os.Stderr, conf.LogLevel)
	logger = log.With(logger, "cmd", cmd.Name())
	level.Debug(logger).Log("msg", "configuration loaded", "file", cfgFile, "solver", fmt.Sprintf("%+v", conf.Solver), "workers", conf.Workers)
	return conf, logger, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		stop()
		os.Exit(1)
	}
}
