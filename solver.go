package kepler

import "math"

const (
	// MaxIterations is the default cap on Newton-Raphson iterations.
	MaxIterations = 10
	// Tolerance is the default absolute change in anomaly under which the solver stops.
	Tolerance = 1e-6
)

// DefaultSolver solves Kepler's equation with MaxIterations and Tolerance.
var DefaultSolver = Solver{MaxIterations, Tolerance}

// Solver solves Kepler's equation via Newton-Raphson with a fixed iteration
// budget. Zero fields fall back to the package defaults.
// NOTE: the Newton denominators (1-e·cosE and e·coshF-1) are not guarded; for
// e close to 1 near periapsis the update may blow up and the estimate is NaN or Inf.
type Solver struct {
	MaxIterations int
	Tolerance     float64
}

// Solution is the outcome of a solver run. When Converged is false, Anomaly is
// the last estimate computed before the iteration cap was hit.
type Solution struct {
	Anomaly    float64
	Iterations int
	Converged  bool
}

func (s Solver) limits() (int, float64) {
	n, tol := s.MaxIterations, s.Tolerance
	if n <= 0 {
		n = MaxIterations
	}
	if tol <= 0 {
		tol = Tolerance
	}
	return n, tol
}

// newton runs the Newton-Raphson iteration x ← x - f(x)/f'(x) seeded with x0.
func (s Solver) newton(x0 float64, f, fPrime func(x float64) float64) Solution {
	maxIter, tol := s.limits()
	x := x0
	for iter := 1; iter <= maxIter; iter++ {
		xNext := x - f(x)/fPrime(x)
		if math.Abs(xNext-x) < tol {
			return Solution{xNext, iter, true}
		}
		x = xNext
	}
	return Solution{x, maxIter, false}
}

// EccentricAnomaly solves E - e·sin(E) = M for E, with E0 = M.
func (s Solver) EccentricAnomaly(e, M float64) Solution {
	return s.newton(M,
		func(E float64) float64 { return E - e*math.Sin(E) - M },
		func(E float64) float64 { return 1 - e*math.Cos(E) })
}

// HyperbolicAnomaly solves e·sinh(F) - F = Mh for F, with F0 = Mh.
func (s Solver) HyperbolicAnomaly(e, Mh float64) Solution {
	return s.newton(Mh,
		func(F float64) float64 { return e*math.Sinh(F) - F - Mh },
		func(F float64) float64 { return e*math.Cosh(F) - 1 })
}

// EccentricAnomaly solves Kepler's equation with the DefaultSolver.
func EccentricAnomaly(e, M float64) Solution {
	return DefaultSolver.EccentricAnomaly(e, M)
}

// HyperbolicAnomaly solves the hyperbolic Kepler equation with the DefaultSolver.
func HyperbolicAnomaly(e, Mh float64) Solution {
	return DefaultSolver.HyperbolicAnomaly(e, Mh)
}

// MeanAnomalyAtTime returns (M0 + n·t) mod 2π. As with math.Mod, the result
// has the sign of M0 + n·t.
func MeanAnomalyAtTime(M0, n, t float64) float64 {
	return math.Mod(M0+n*t, twoPi)
}

// HyperbolicMeanAnomalyAtTime returns n·t. Hyperbolic trajectories are not
// periodic so there is no reduction.
func HyperbolicMeanAnomalyAtTime(n, t float64) float64 {
	return n * t
}

// MeanAnomalyFromEccentricAnomaly is the inverse of EccentricAnomaly.
func MeanAnomalyFromEccentricAnomaly(e, E float64) float64 {
	return E - e*math.Sin(E)
}

// MeanAnomalyFromHyperbolicAnomaly is the inverse of HyperbolicAnomaly.
func MeanAnomalyFromHyperbolicAnomaly(e, F float64) float64 {
	return e*math.Sinh(F) - F
}

// TrueAnomalyFromEccentricAnomaly returns the true anomaly in [0, 2π).
func TrueAnomalyFromEccentricAnomaly(e, E float64) float64 {
	sinE, cosE := math.Sincos(E)
	denom := 1 - e*cosE
	ν := math.Atan2(math.Sqrt((1+e)/(1-e))*sinE/denom, (cosE-e)/denom)
	return math.Mod(ν+twoPi, twoPi)
}

// TrueAnomalyFromHyperbolicAnomaly returns 2·atan(√((e+1)/(e-1))·tanh(F/2)).
// The result is not normalized: it has the sign of F.
func TrueAnomalyFromHyperbolicAnomaly(e, F float64) float64 {
	return 2 * math.Atan(math.Sqrt((e+1)/(e-1))*math.Tanh(F/2))
}
