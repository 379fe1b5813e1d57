package vecmath

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Vec3 is a 3-D vector. All operations are free functions returning new
// values; nothing here holds state.
type Vec3 [3]float64

func Add(a, b Vec3) (v Vec3) {
	v[0] = a[0] + b[0]
	v[1] = a[1] + b[1]
	v[2] = a[2] + b[2]
	return
}

func Sub(a, b Vec3) (v Vec3) {
	v[0] = a[0] - b[0]
	v[1] = a[1] - b[1]
	v[2] = a[2] - b[2]
	return
}

func Scale(a Vec3, s float64) (v Vec3) {
	v[0] = s * a[0]
	v[1] = s * a[1]
	v[2] = s * a[2]
	return
}

// AddScaled returns s1*a + s2*b.
func AddScaled(a, b Vec3, s1, s2 float64) (v Vec3) {
	v[0] = s1*a[0] + s2*b[0]
	v[1] = s1*a[1] + s2*b[1]
	v[2] = s1*a[2] + s2*b[2]
	return
}

func Dot(a, b Vec3) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func Cross(a, b Vec3) (v Vec3) {
	v[0] = a[1]*b[2] - a[2]*b[1]
	v[1] = a[2]*b[0] - a[0]*b[2]
	v[2] = a[0]*b[1] - a[1]*b[0]
	return
}

func Magnitude(a Vec3) float64 {
	return math.Sqrt(a[0]*a[0] + a[1]*a[1] + a[2]*a[2])
}

// Normalise returns the unit vector in the direction of a, or the zero
// vector if a has zero magnitude.
func Normalise(a Vec3) (v Vec3) {
	mag := Magnitude(a)
	if mag == 0.0 {
		return
	}
	return Scale(a, 1.0/mag)
}

func SetMagnitude(a Vec3, mag float64) (v Vec3) {
	return Scale(Normalise(a), mag)
}

// AxisAngleRotationMatrix returns the 3x3 matrix rotating by theta
// radians about unit axis, via the Rodrigues formula.
func AxisAngleRotationMatrix(axis Vec3, theta float64) (m *mat.Dense) {
	var (
		cosTheta = math.Cos(theta)
		sinTheta = math.Sin(theta)
		C        = 1.0 - cosTheta
	)
	m = mat.NewDense(3, 3, []float64{
		axis[0]*axis[0]*C + cosTheta, axis[0]*axis[1]*C - axis[2]*sinTheta, axis[0]*axis[2]*C + axis[1]*sinTheta,
		axis[1]*axis[0]*C + axis[2]*sinTheta, axis[1]*axis[1]*C + cosTheta, axis[1]*axis[2]*C - axis[0]*sinTheta,
		axis[2]*axis[0]*C - axis[1]*sinTheta, axis[2]*axis[1]*C + axis[0]*sinTheta, axis[2]*axis[2]*C + cosTheta,
	})
	return
}

// IdentityMatrix returns a new 3x3 identity.
func IdentityMatrix() (m *mat.Dense) {
	m = mat.NewDense(3, 3, nil)
	m.Set(0, 0, 1)
	m.Set(1, 1, 1)
	m.Set(2, 2, 1)
	return
}

// RotateVector applies 3x3 matrix m to v.
func RotateVector(m *mat.Dense, v Vec3) (vo Vec3) {
	for j := 0; j < 3; j++ {
		vo[j] = m.At(j, 0)*v[0] + m.At(j, 1)*v[1] + m.At(j, 2)*v[2]
	}
	return
}

// RotateAboutZAxis rotates v by theta radians about the z-axis.
func RotateAboutZAxis(v Vec3, theta float64) (vo Vec3) {
	var (
		cosTheta = math.Cos(theta)
		sinTheta = math.Sin(theta)
	)
	vo[0] = v[0]*cosTheta - v[1]*sinTheta
	vo[1] = v[0]*sinTheta + v[1]*cosTheta
	vo[2] = v[2]
	return
}
