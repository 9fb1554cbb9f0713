package kepler

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	// AU is one astronomical unit in meters.
	AU = 1.49597870700e11
)

// CelestialObject defines a central body. All values are in SI units.
type CelestialObject struct {
	Name   string
	Radius float64 // Mean equatorial radius (m)
	a      float64 // Semi major axis of its own heliocentric orbit (m)
	μ      float64 // Gravitational parameter (m^3/s^2)
	SOI    float64 // Sphere of influence radius with respect to the Sun (m)
}

// GM returns μ (which is unexported because it's a lowercase letter)
func (c CelestialObject) GM() float64 {
	return c.μ
}

// String implements the Stringer interface.
func (c CelestialObject) String() string {
	return c.Name + " body"
}

// Equals returns whether the provided celestial object is the same.
func (c CelestialObject) Equals(b CelestialObject) bool {
	return c.Name == b.Name && c.Radius == b.Radius && c.a == b.a && c.μ == b.μ && c.SOI == b.SOI
}

// MeanMotion returns √(μ/|a|³) in rad/s for an orbit of semi major axis a about this body.
func (c CelestialObject) MeanMotion(a float64) float64 {
	a = math.Abs(a)
	return math.Sqrt(c.μ / (a * a * a))
}

// Period returns the orbital period for a semi major axis a and eccentricity e
// about this body, or zero for hyperbolic trajectories which never repeat.
func (c CelestialObject) Period(a, e float64) time.Duration {
	if ConicFor(e) == Hyperbolic {
		return 0
	}
	return time.Duration(twoPi / c.MeanMotion(a) * float64(time.Second))
}

// NewOrbitAround returns an orbit about the provided body: the mean motion and
// period are derived from the semi major axis. Angles are in radians and are
// wrapped into [0, 2π).
func NewOrbitAround(body CelestialObject, epoch time.Time, a, e, M0, Ω, ω, i float64) Orbit {
	return NewOrbit(Elements{
		Epoch:         epoch,
		Period:        body.Period(a, e),
		Eccentricity:  e,
		MeanAnomaly:   wrapAngle(M0),
		MeanMotion:    body.MeanMotion(a),
		SemiMajorAxis: a,
		RAAN:          wrapAngle(Ω),
		ArgPeriapsis:  wrapAngle(ω),
		Inclination:   i,
	})
}

// CelestialObjectFromString returns the object from its name
func CelestialObjectFromString(name string) (CelestialObject, error) {
	switch strings.ToLower(name) {
	case "sun":
		return Sun, nil
	case "venus":
		return Venus, nil
	case "earth":
		return Earth, nil
	case "moon":
		return Moon, nil
	case "mars":
		return Mars, nil
	case "jupiter":
		return Jupiter, nil
	default:
		return CelestialObject{}, fmt.Errorf("undefined body '%s'", name)
	}
}

/* Definitions */

// Sun is our closest star.
var Sun = CelestialObject{"Sun", 695700e3, -1, 1.32712440017987e20, -1}

// Venus is poisonous.
var Venus = CelestialObject{"Venus", 6051.8e3, 108208601e3, 3.24858599e14, 0.616e9}

// Earth is home.
var Earth = CelestialObject{"Earth", 6378.1363e3, 149598023e3, 3.98600433e14, 924645.0e3}

// Moon is Earth's. Its semi major axis and sphere of influence are with respect to the Earth.
var Moon = CelestialObject{"Moon", 1737.4e3, 384400e3, 4.902800066e12, 66100e3}

// Mars is the vacation place.
var Mars = CelestialObject{"Mars", 3396.19e3, 227939282.5616e3, 4.28283100e13, 576000e3}

// Jupiter is big.
var Jupiter = CelestialObject{"Jupiter", 71492.0e3, 778298361e3, 1.266865361e17, 48.2e9}
