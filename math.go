package kepler

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	deg2rad = math.Pi / 180
	twoPi   = 2 * math.Pi
)

// Vector3 is a position in three dimensions.
type Vector3 struct {
	X, Y, Z float64
}

// NewVector3 returns a new vector from its components.
func NewVector3(x, y, z float64) Vector3 {
	return Vector3{x, y, z}
}

// Add returns the component-wise sum of both vectors.
func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Scale returns the vector multiplied by s.
func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}

// Norm returns the Euclidean norm of the vector.
func (v Vector3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Dot performs the inner product via gonum/BLAS.
func (v Vector3) Dot(o Vector3) float64 {
	return mat.Dot(mat.NewVecDense(3, v.Slice()), mat.NewVecDense(3, o.Slice()))
}

// Cross performs the cross product.
func (v Vector3) Cross(o Vector3) Vector3 {
	return Vector3{v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X}
}

// Slice returns the components as a new []float64.
func (v Vector3) Slice() []float64 {
	return []float64{v.X, v.Y, v.Z}
}

// EqualApprox returns whether every component of both vectors is within tol,
// either absolutely or relatively.
func (v Vector3) EqualApprox(o Vector3, tol float64) bool {
	return floats.EqualApprox(v.Slice(), o.Slice(), tol)
}

// String implements the Stringer interface.
func (v Vector3) String() string {
	return fmt.Sprintf("[%.3f %.3f %.3f]", v.X, v.Y, v.Z)
}

// vector3FromSlice expects exactly three items.
func vector3FromSlice(s []float64) Vector3 {
	return Vector3{s[0], s[1], s[2]}
}

// Deg2rad converts degrees to radians, and enforced only positive numbers.
func Deg2rad(a float64) float64 {
	if a < 0 {
		a += 360
	}
	return math.Mod(a*deg2rad, twoPi)
}

// Rad2deg converts radians to degrees, and enforced only positive numbers.
func Rad2deg(a float64) float64 {
	if a < 0 {
		a += twoPi
	}
	return math.Mod(a/deg2rad, 360)
}

// wrapAngle returns the angle in [0, 2π).
func wrapAngle(a float64) float64 {
	a = math.Mod(a, twoPi)
	if a < 0 {
		a += twoPi
	}
	return a
}
