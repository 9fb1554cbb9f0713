package kepler

import "math"

// Conic is the regime of a Keplerian trajectory.
type Conic uint8

const (
	// Elliptical covers circular and elliptical orbits (e < 1).
	Elliptical Conic = iota + 1
	// Hyperbolic covers open trajectories (e >= 1). Parabolic orbits are not supported.
	Hyperbolic
)

// ConicFor returns the regime of the provided eccentricity.
func ConicFor(e float64) Conic {
	if e < 1 {
		return Elliptical
	}
	return Hyperbolic
}

func (c Conic) String() string {
	switch c {
	case Elliptical:
		return "elliptical"
	case Hyperbolic:
		return "hyperbolic"
	}
	return "unknown"
}

// SemiLatusRectum returns the semi parameter of this conic.
// The semi major axis is a magnitude: its sign is ignored in both regimes.
func (c Conic) SemiLatusRectum(a, e float64) float64 {
	a = math.Abs(a)
	if c == Hyperbolic {
		return a * (e*e - 1)
	}
	if e == 0 {
		return a
	}
	return a * (1 - e*e)
}

// Radius returns the distance from the focus at true anomaly ν.
// It is positive for any ν the solver returns since the hyperbolic true
// anomaly is bounded by the asymptotes.
func (c Conic) Radius(ν, p, e float64) float64 {
	return p / (1 + e*math.Cos(ν))
}

// SemiLatusRectum returns a for a circle and a(1-e²) otherwise, for every
// eccentricity. Hyperbolic callers get a negative value for a positive a,
// which RadiusAtTrueAnomaly absorbs. Prefer Conic.SemiLatusRectum.
func SemiLatusRectum(a, e float64) float64 {
	if e == 0 {
		// i.e., a circle
		return a
	}
	return a * (1 - e*e)
}

// RadiusAtTrueAnomaly returns |p / (1 + e cos ν)|.
func RadiusAtTrueAnomaly(ν, p, e float64) float64 {
	return math.Abs(p / (1 + e*math.Cos(ν)))
}

// Radii2ae returns the semi major axis and the eccentricty from the radii.
func Radii2ae(rA, rP float64) (a, e float64) {
	if rA < rP {
		panic("periapsis cannot be greater than apoapsis")
	}
	a = (rP + rA) / 2
	e = (rA - rP) / (rA + rP)
	return
}
