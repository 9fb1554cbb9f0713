package kepler

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"
)

// Elements are the Keplerian elements of an orbit at its epoch.
// All angles are in radians.
type Elements struct {
	Epoch         time.Time     // Instant at which MeanAnomaly is valid
	Period        time.Duration // Zero disables the folding of the query time
	Eccentricity  float64
	MeanAnomaly   float64 // At epoch
	MeanMotion    float64 // rad/s
	SemiMajorAxis float64 // Magnitude, same unit as the returned positions
	RAAN          float64 // Longitude of the ascending node Ω
	ArgPeriapsis  float64 // ω
	Inclination   float64
}

// Orbit propagates a set of Elements. An Orbit is immutable: every query is a
// pure function of its elements and the query time, hence safe for concurrent use.
type Orbit struct {
	el     Elements
	solver Solver
}

// Anomaly is the phase of an orbit at a given time.
type Anomaly struct {
	TrueAnomaly float64
	Regime      Conic
	Solution    Solution // Eccentric or hyperbolic anomaly
}

// NewOrbit returns an orbit solved with the DefaultSolver.
func NewOrbit(el Elements) Orbit {
	return Orbit{el, DefaultSolver}
}

// NewOrbitWithSolver returns an orbit solved with the provided solver.
func NewOrbitWithSolver(el Elements, s Solver) Orbit {
	return Orbit{el, s}
}

// Elements returns a copy of the elements of this orbit.
func (o Orbit) Elements() Elements {
	return o.el
}

// Regime returns whether this orbit is elliptical or hyperbolic.
func (o Orbit) Regime() Conic {
	return ConicFor(o.el.Eccentricity)
}

// TrueAnomaly returns the true anomaly at dt in radians.
func (o Orbit) TrueAnomaly(dt time.Time) float64 {
	return o.Anomaly(dt).TrueAnomaly
}

// Anomaly returns the true anomaly at dt along with the solver outcome.
// Elliptical true anomalies are in [0, 2π); hyperbolic ones have the sign of
// the time since periapsis.
func (o Orbit) Anomaly(dt time.Time) Anomaly {
	t := o.secondsSinceEpoch(dt)
	e := o.el.Eccentricity
	if o.Regime() == Elliptical {
		M := MeanAnomalyAtTime(o.el.MeanAnomaly, o.el.MeanMotion, t)
		E := o.solver.EccentricAnomaly(e, M)
		return Anomaly{TrueAnomalyFromEccentricAnomaly(e, E.Anomaly), Elliptical, E}
	}
	Mh := HyperbolicMeanAnomalyAtTime(o.el.MeanMotion, t)
	F := o.solver.HyperbolicAnomaly(e, Mh)
	return Anomaly{TrueAnomalyFromHyperbolicAnomaly(e, F.Anomaly), Hyperbolic, F}
}

// Position returns the position vector at dt.
func (o Orbit) Position(dt time.Time) Vector3 {
	return o.PositionAt(o.TrueAnomaly(dt))
}

// PositionAt returns the position vector at the true anomaly ν.
func (o Orbit) PositionAt(ν float64) Vector3 {
	return PositionAtTrueAnomaly(o.el.SemiMajorAxis, o.el.Eccentricity, o.el.RAAN, o.el.ArgPeriapsis, o.el.Inclination, ν)
}

// Perifocal returns the position vector at dt in the PQW frame, i.e. with P
// towards periapsis and W along the orbit normal.
func (o Orbit) Perifocal(dt time.Time) Vector3 {
	return o.perifocalAt(o.TrueAnomaly(dt))
}

func (o Orbit) perifocalAt(ν float64) Vector3 {
	r := o.RadiusAt(ν)
	sinν, cosν := math.Sincos(ν)
	return Vector3{r * cosν, r * sinν, 0}
}

// DCM returns the direction cosine matrix from the PQW frame of this orbit to
// the reference frame.
func (o Orbit) DCM() *mat.Dense {
	return R3R1R3(o.el.Inclination, o.el.ArgPeriapsis, o.el.RAAN)
}

// RadiusAt returns the distance from the focus at the true anomaly ν.
func (o Orbit) RadiusAt(ν float64) float64 {
	c := o.Regime()
	p := c.SemiLatusRectum(o.el.SemiMajorAxis, o.el.Eccentricity)
	return c.Radius(ν, p, o.el.Eccentricity)
}

// Periapsis returns the periapsis radius.
func (o Orbit) Periapsis() float64 {
	return o.RadiusAt(0)
}

// Apoapsis returns the apoapsis radius, or +Inf for hyperbolic trajectories.
func (o Orbit) Apoapsis() float64 {
	if o.Regime() == Hyperbolic {
		return math.Inf(1)
	}
	return o.RadiusAt(math.Pi)
}

// String implements the Stringer interface.
func (o Orbit) String() string {
	return fmt.Sprintf("a=%.1f e=%.4f i=%.3f Ω=%.3f ω=%.3f M0=%.3f n=%g T=%s @ %s", o.el.SemiMajorAxis, o.el.Eccentricity, Rad2deg(o.el.Inclination), Rad2deg(o.el.RAAN), Rad2deg(o.el.ArgPeriapsis), Rad2deg(o.el.MeanAnomaly), o.el.MeanMotion, o.el.Period, o.el.Epoch.UTC().Format(time.RFC3339))
}

// secondsSinceEpoch returns the time since epoch, folded into one period and
// truncated to whole seconds. The truncation is deliberate: sub-second phase
// is dropped at this boundary.
func (o Orbit) secondsSinceEpoch(dt time.Time) float64 {
	Δt := foldPeriod(dt.Sub(o.el.Epoch), o.el.Period)
	return float64(int64(Δt / time.Second))
}

// foldPeriod removes whole periods from Δt so that the result is in
// [0, period), with a single division whatever the span. A zero period leaves
// Δt untouched.
func foldPeriod(Δt, period time.Duration) time.Duration {
	if period < 0 {
		period = -period
	}
	if period == 0 || (Δt >= 0 && Δt < period) {
		return Δt
	}
	k := Δt / period
	if Δt%period < 0 {
		k-- // floor for negative spans
	}
	return Δt - k*period
}

// PositionAtTrueAnomaly returns the position of a body at true anomaly ν on the
// orbit of semi major axis a, eccentricity e, RAAN Ω, argument of periapsis ω
// and inclination i.
func PositionAtTrueAnomaly(a, e, Ω, ω, i, ν float64) Vector3 {
	c := ConicFor(e)
	r := c.Radius(ν, c.SemiLatusRectum(a, e), e)
	θ := ν + ω
	sθ, cθ := math.Sincos(θ)
	sΩ, cΩ := math.Sincos(Ω)
	si, ci := math.Sincos(i)
	return NewVector3(cΩ*cθ-sΩ*sθ*ci, sΩ*cθ+cΩ*sθ*ci, si*sθ).Scale(r)
}
