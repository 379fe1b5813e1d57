package vecmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVectorOps(t *testing.T) {
	var (
		a = Vec3{1, 2, 3}
		b = Vec3{4, -5, 6}
	)
	assert.Equal(t, Vec3{5, -3, 9}, Add(a, b))
	assert.Equal(t, Vec3{-3, 7, -3}, Sub(a, b))
	assert.Equal(t, Vec3{2, 4, 6}, Scale(a, 2))
	assert.True(t, near(Dot(a, b), 12))
	assert.Equal(t, Vec3{27, 6, -13}, Cross(a, b))
	assert.True(t, near(Magnitude(Vec3{3, 4, 0}), 5))
	assert.Equal(t, Vec3{6, -1, 12}, AddScaled(a, b, 2, 1))

	u := Normalise(Vec3{0, 0, 5})
	assert.Equal(t, Vec3{0, 0, 1}, u)
	assert.Equal(t, Vec3{}, Normalise(Vec3{}))
	assert.True(t, near(Magnitude(SetMagnitude(a, 2.5)), 2.5))
}

func TestAxisAngleRotation(t *testing.T) {
	{
		// quarter turn about z takes x onto y
		m := AxisAngleRotationMatrix(Vec3{0, 0, 1}, math.Pi/2)
		v := RotateVector(m, Vec3{1, 0, 0})
		assert.True(t, nearVec(v, Vec3{0, 1, 0}, 1.e-12))
	}
	{
		// arbitrary axis rotation preserves magnitude and axis
		axis := Normalise(Vec3{1, 1, 1})
		m := AxisAngleRotationMatrix(axis, 0.7)
		v := RotateVector(m, Vec3{0.3, -2, 1.4})
		assert.True(t, near(Magnitude(v), Magnitude(Vec3{0.3, -2, 1.4})))
		assert.True(t, nearVec(RotateVector(m, axis), axis, 1.e-12))
	}
	{
		// RotateAboutZAxis agrees with the general matrix
		m := AxisAngleRotationMatrix(Vec3{0, 0, 1}, 1.1)
		v := Vec3{0.5, -0.25, 2}
		assert.True(t, nearVec(RotateAboutZAxis(v, 1.1), RotateVector(m, v), 1.e-12))
	}
	{
		i := IdentityMatrix()
		v := Vec3{1, 2, 3}
		assert.Equal(t, v, RotateVector(i, v))
	}
}

func near(a, b float64) bool {
	return math.Abs(a-b) <= 1.e-9*math.Max(1, math.Abs(b))
}

func nearVec(a, b Vec3, tol float64) bool {
	for c := 0; c < 3; c++ {
		if math.Abs(a[c]-b[c]) > tol {
			return false
		}
	}
	return true
}
