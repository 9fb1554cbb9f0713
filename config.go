package kepler

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the run-time configuration of the propagator and of its tooling.
type Config struct {
	Solver   Solver
	Workers  int    // Size of the batch worker pool
	LogLevel string // debug, info, warn or error
	Bench    BenchConfig
}

// BenchConfig configures the benchmark harness.
type BenchConfig struct {
	Orbits  int           // Number of random orbits
	Runs    int           // Number of timed queries of the whole set
	Horizon time.Duration // Query time, from the epoch
	Seed    uint64
}

// DefaultConfig returns the configuration used when no file is provided.
func DefaultConfig() Config {
	v := newViper()
	return configFromViper(v)
}

// LoadConfig reads the TOML (or any format viper knows from the extension)
// configuration file at path. Environment variables prefixed with KEPLER_
// override the file, e.g. KEPLER_SOLVER_MAX_ITERATIONS. An empty path only
// applies the defaults and the environment.
func LoadConfig(path string) (Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("could not read configuration %s: %w", path, err)
		}
	}
	conf := configFromViper(v)
	if conf.Workers <= 0 {
		return Config{}, fmt.Errorf("propagator.workers must be positive, got %d", conf.Workers)
	}
	if conf.Solver.MaxIterations < 0 || conf.Solver.Tolerance < 0 {
		return Config{}, fmt.Errorf("invalid solver configuration %+v", conf.Solver)
	}
	return conf, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("solver.max_iterations", MaxIterations)
	v.SetDefault("solver.tolerance", Tolerance)
	v.SetDefault("propagator.workers", runtime.NumCPU())
	v.SetDefault("log.level", "info")
	v.SetDefault("bench.orbits", 5000)
	v.SetDefault("bench.runs", 10)
	v.SetDefault("bench.horizon", 24*time.Hour)
	v.SetDefault("bench.seed", 1)
	v.SetEnvPrefix("kepler")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func configFromViper(v *viper.Viper) Config {
	return Config{
		Solver: Solver{
			MaxIterations: v.GetInt("solver.max_iterations"),
			Tolerance:     v.GetFloat64("solver.tolerance"),
		},
		Workers:  v.GetInt("propagator.workers"),
		LogLevel: v.GetString("log.level"),
		Bench: BenchConfig{
			Orbits:  v.GetInt("bench.orbits"),
			Runs:    v.GetInt("bench.runs"),
			Horizon: v.GetDuration("bench.horizon"),
			Seed:    v.GetUint64("bench.seed"),
		},
	}
}
