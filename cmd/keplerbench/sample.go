package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ChristopherRabotin/kepler"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Write the ephemeris of one orbit as CSV",
	Long: `Sample the position of an orbit about a central body every step over a window.
The mean motion and period are derived from the semi major axis. Angles are in degrees.`,
	Args: cobra.NoArgs,
	RunE: runSample,
}

var sample struct {
	body                 string
	sma, ecc             float64
	ma, raan, argp, incl float64
	start                string
	duration, step       time.Duration
	output               string
}

func init() {
	f := sampleCmd.Flags()
	f.StringVar(&sample.body, "body", "Earth", "central body")
	f.Float64Var(&sample.sma, "sma", 7e6, "semi major axis (m)")
	f.Float64Var(&sample.ecc, "ecc", 0.1, "eccentricity")
	f.Float64Var(&sample.ma, "ma", 0, "mean anomaly at epoch (deg)")
	f.Float64Var(&sample.raan, "raan", 0, "right ascension of the ascending node (deg)")
	f.Float64Var(&sample.argp, "argp", 0, "argument of periapsis (deg)")
	f.Float64Var(&sample.incl, "incl", 0, "inclination (deg)")
	f.StringVar(&sample.start, "start", "", "epoch and start of the window, as "+dateFormat+" UTC (default now)")
	f.DurationVar(&sample.duration, "duration", 2*time.Hour, "length of the window")
	f.DurationVar(&sample.step, "step", time.Minute, "sampling step")
	f.StringVar(&sample.output, "output", "", "output file (default stdout)")
}

func runSample(cmd *cobra.Command, args []string) error {
	_, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	body, err := kepler.CelestialObjectFromString(sample.body)
	if err != nil {
		return err
	}
	start := time.Now().UTC()
	if sample.start != "" {
		if start, err = time.Parse(dateFormat, sample.start); err != nil {
			return fmt.Errorf("invalid --start: %w", err)
		}
	}
	o := kepler.NewOrbitAround(body, start, sample.sma, sample.ecc, kepler.Deg2rad(sample.ma), kepler.Deg2rad(sample.raan), kepler.Deg2rad(sample.argp), kepler.Deg2rad(sample.incl))
	states, err := kepler.Sample(o, start, start.Add(sample.duration), sample.step)
	if err != nil {
		return err
	}

	var out io.Writer = cmd.OutOrStdout()
	if sample.output != "" {
		f, err := os.Create(sample.output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	if err := kepler.WriteCSV(out, o, states); err != nil {
		return fmt.Errorf("could not write the ephemeris: %w", err)
	}
	level.Info(logger).Log("msg", "ephemeris written", "body", body.Name, "orbit", o, "states", len(states), "output", sample.output)
	return nil
}
