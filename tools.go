package kepler

import (
	"fmt"
	"math"
	"time"
)

// Transfer is a coplanar two impulse transfer between circular orbits.
type Transfer struct {
	Orbit         Orbit // Transfer orbit, departing at its epoch
	DeltaVDepart  float64
	DeltaVArrival float64
	TimeOfFlight  time.Duration
}

// String implements the Stringer interface.
func (t Transfer) String() string {
	return fmt.Sprintf("Δv=%.3f+%.3f m/s tof=%s (%s)", t.DeltaVDepart, t.DeltaVArrival, t.TimeOfFlight, t.Orbit)
}

// Hohmann computes an Hohmann transfer from the circular orbit of radius rI to
// the one of radius rF about body, departing at epoch. The Δv are signed: they
// are negative when the spacecraft must brake, i.e. when rF < rI.
func Hohmann(rI, rF float64, body CelestialObject, epoch time.Time) Transfer {
	μ := body.GM()
	aTransfer := 0.5 * (rI + rF)
	vDeparture := math.Sqrt((2 * μ / rI) - (μ / aTransfer))
	vArrival := math.Sqrt((2 * μ / rF) - (μ / aTransfer))
	rA, rP := math.Max(rI, rF), math.Min(rI, rF)
	_, e := Radii2ae(rA, rP)
	M0 := 0.0
	if rI > rF {
		M0 = math.Pi // Departs from apoapsis
	}
	o := NewOrbitAround(body, epoch, aTransfer, e, M0, 0, 0, 0)
	return Transfer{
		Orbit:         o,
		DeltaVDepart:  vDeparture - math.Sqrt(μ/rI),
		DeltaVArrival: math.Sqrt(μ/rF) - vArrival,
		TimeOfFlight:  o.Elements().Period / 2,
	}
}
