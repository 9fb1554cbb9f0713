package main

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/ChristopherRabotin/kepler"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Time the propagation of random orbits",
	Long: `Generate random orbits (period between one hour and one day, e in [0, 0.9),
a in [1e6, 1e8) m) and query all of them at the horizon, once per run.`,
	Args: cobra.NoArgs,
	RunE: runBench,
}

func init() {
	benchCmd.Flags().Int("orbits", 0, "number of random orbits (overrides bench.orbits)")
	benchCmd.Flags().Int("runs", 0, "number of runs (overrides bench.runs)")
	benchCmd.Flags().Duration("horizon", 0, "query time from now (overrides bench.horizon)")
	benchCmd.Flags().Uint64("seed", 0, "random seed (overrides bench.seed)")
}

func runBench(cmd *cobra.Command, args []string) error {
	conf, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("orbits") {
		conf.Bench.Orbits, _ = flags.GetInt("orbits")
	}
	if flags.Changed("runs") {
		conf.Bench.Runs, _ = flags.GetInt("runs")
	}
	if flags.Changed("horizon") {
		conf.Bench.Horizon, _ = flags.GetDuration("horizon")
	}
	if flags.Changed("seed") {
		conf.Bench.Seed, _ = flags.GetUint64("seed")
	}
	if conf.Bench.Orbits <= 0 || conf.Bench.Runs <= 0 {
		return fmt.Errorf("need at least one orbit and one run, got %d orbits and %d runs", conf.Bench.Orbits, conf.Bench.Runs)
	}

	orbits := randomOrbits(conf.Bench.Orbits, conf.Bench.Seed, conf.Solver, time.Now())
	level.Info(logger).Log("msg", "orbits generated", "orbits", len(orbits), "seed", conf.Bench.Seed, "workers", conf.Workers)

	reg := prometheus.NewRegistry()
	prop := kepler.NewPropagator(conf.Workers, logger, kepler.NewMetrics(reg))
	out := cmd.OutOrStdout()
	durations := make([]float64, 0, conf.Bench.Runs)
	for run := 1; run <= conf.Bench.Runs; run++ {
		start := time.Now()
		if _, err := prop.Positions(cmd.Context(), orbits, start.Add(conf.Bench.Horizon)); err != nil {
			return err
		}
		elapsed := time.Since(start)
		durations = append(durations, elapsed.Seconds())
		fmt.Fprintf(out, "Run %d: %s\n", run, elapsed)
	}

	nonConverged, err := countersByRegime(reg, "kepler_solves_nonconverged_total")
	if err != nil {
		return err
	}
	report(out, conf.Bench, durations, nonConverged)
	return nil
}

// randomOrbits draws n orbits from uniform distributions seeded with seed.
func randomOrbits(n int, seed uint64, solver kepler.Solver, epoch time.Time) []kepler.Orbit {
	src := rand.NewSource(seed)
	uniform := func(min, max float64) distuv.Uniform {
		return distuv.Uniform{Min: min, Max: max, Src: src}
	}
	period := uniform(3600, 86400)
	ecc := uniform(0, 0.9)
	angle := uniform(0, 2*math.Pi)
	meanMotion := uniform(0.1, 1)
	sma := uniform(1e6, 1e8)
	incl := uniform(0, math.Pi/2)

	orbits := make([]kepler.Orbit, n)
	for i := range orbits {
		orbits[i] = kepler.NewOrbitWithSolver(kepler.Elements{
			Epoch:         epoch,
			Period:        time.Duration(int64(period.Rand())) * time.Second,
			Eccentricity:  ecc.Rand(),
			MeanAnomaly:   angle.Rand(),
			MeanMotion:    meanMotion.Rand(),
			SemiMajorAxis: sma.Rand(),
			RAAN:          angle.Rand(),
			ArgPeriapsis:  angle.Rand(),
			Inclination:   incl.Rand(),
		}, solver)
	}
	return orbits
}

// countersByRegime sums the named counter per regime label.
func countersByRegime(g prometheus.Gatherer, name string) (map[string]float64, error) {
	mfs, err := g.Gather()
	if err != nil {
		return nil, err
	}
	counts := map[string]float64{}
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, label := range m.GetLabel() {
				if label.GetName() == "regime" {
					counts[label.GetValue()] += m.GetCounter().GetValue()
				}
			}
		}
	}
	return counts, nil
}

func report(out io.Writer, conf kepler.BenchConfig, durations []float64, nonConverged map[string]float64) {
	asDuration := func(s float64) time.Duration {
		return time.Duration(math.Round(s * float64(time.Second)))
	}
	mean, std := stat.MeanStdDev(durations, nil)
	if len(durations) < 2 {
		std = 0
	}
	fmt.Fprintf(out, "\nBenchmark Results for %d runs with %d orbits:\n", conf.Runs, conf.Orbits)
	fmt.Fprintf(out, "  Fastest run: %s\n", asDuration(floats.Min(durations)))
	fmt.Fprintf(out, "  Slowest run: %s\n", asDuration(floats.Max(durations)))
	fmt.Fprintf(out, "  Average duration: %s\n", asDuration(mean))
	fmt.Fprintf(out, "  Standard deviation: %s\n", asDuration(std))
	fmt.Fprintf(out, "  Total duration: %s\n", asDuration(floats.Sum(durations)))
	fmt.Fprintf(out, "  Non-converged solves: elliptical=%.0f hyperbolic=%.0f\n", nonConverged[kepler.Elliptical.String()], nonConverged[kepler.Hyperbolic.String()])
}
