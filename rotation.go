package kepler

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// PQW2Ref converts a given vector from the perifocal (PQW) frame to the
// reference frame defined by the inclination i, argument of periapsis ω and RAAN Ω.
func PQW2Ref(i, ω, Ω float64, v Vector3) Vector3 {
	return MxV33(R3R1R3(i, ω, Ω), v)
}

// R3R1R3 returns the R3(-Ω)·R1(-i)·R3(-ω) direction cosine matrix, from the
// perifocal frame to the reference frame.
func R3R1R3(i, ω, Ω float64) *mat.Dense {
	si, ci := math.Sincos(i)
	sω, cω := math.Sincos(ω)
	sΩ, cΩ := math.Sincos(Ω)
	return mat.NewDense(3, 3, []float64{cΩ*cω - sΩ*sω*ci, -cΩ*sω - sΩ*cω*ci, sΩ * si,
		sΩ*cω + cΩ*sω*ci, cΩ*cω*ci - sΩ*sω, -cΩ * si,
		sω * si, cω * si, ci})
}

// R1 rotation about the 1st axis.
func R1(x float64) *mat.Dense {
	s, c := math.Sincos(x)
	return mat.NewDense(3, 3, []float64{1, 0, 0, 0, c, s, 0, -s, c})
}

// R3 rotation about the 3rd axis.
func R3(x float64) *mat.Dense {
	s, c := math.Sincos(x)
	return mat.NewDense(3, 3, []float64{c, s, 0, -s, c, 0, 0, 0, 1})
}

// MxV33 multiplies a 3x3 matrix with a vector. Note that there is no dimension check!
func MxV33(m mat.Matrix, v Vector3) Vector3 {
	var rVec mat.VecDense
	rVec.MulVec(m, mat.NewVecDense(3, v.Slice()))
	return vector3FromSlice(rVec.RawVector().Data)
}
