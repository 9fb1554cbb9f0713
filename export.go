package kepler

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

var (
	// ErrInvalidStep is returned when sampling with a non positive step.
	ErrInvalidStep = errors.New("sampling step must be positive")
	// ErrInvalidWindow is returned when the end of a sampling window precedes its start.
	ErrInvalidWindow = errors.New("sampling window ends before it starts")
)

// State is the position of a body at a given time.
type State struct {
	DT          time.Time
	TrueAnomaly float64
	Position    Vector3
}

// JD returns the Julian date of this state.
func (s State) JD() float64 {
	return julian.TimeToJD(s.DT)
}

// Sample returns the states of the orbit from start to end (inclusive) every step.
func Sample(o Orbit, start, end time.Time, step time.Duration) ([]State, error) {
	if step <= 0 {
		return nil, ErrInvalidStep
	}
	if end.Before(start) {
		return nil, ErrInvalidWindow
	}
	dcm := o.DCM()
	states := make([]State, 0, int(end.Sub(start)/step)+1)
	for dt := start; !dt.After(end); dt = dt.Add(step) {
		ν := o.TrueAnomaly(dt)
		states = append(states, State{dt, ν, MxV33(dcm, o.perifocalAt(ν))})
	}
	return states, nil
}

// WriteCSV writes the states as CSV records preceded by a commented header.
// Records are <time>,<jd>,<x>,<y>,<z>,<ν>; the true anomaly is in degrees.
func WriteCSV(w io.Writer, o Orbit, states []State) error {
	if _, err := fmt.Fprintf(w, `# Creation date (UTC): %s
# Orbit: %s
# Records are time, jd, x, y, z, nu. Angles are in degrees.
#   Time is a UTC Julian date
#   Position in the same unit as the semi major axis
`, time.Now().UTC().Format(time.RFC3339), o); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time", "jd", "x", "y", "z", "nu"}); err != nil {
		return err
	}
	for _, s := range states {
		record := []string{
			s.DT.UTC().Format("2006-01-02 15:04:05"),
			strconv.FormatFloat(s.JD(), 'f', 6, 64),
			strconv.FormatFloat(s.Position.X, 'f', 3, 64),
			strconv.FormatFloat(s.Position.Y, 'f', 3, 64),
			strconv.FormatFloat(s.Position.Z, 'f', 3, 64),
			strconv.FormatFloat(Rad2deg(s.TrueAnomaly), 'f', 3, 64),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
