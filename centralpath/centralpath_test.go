package centralpath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anatomesh/tubegen/vecmath"
)

func straightPath() []ControlPoint {
	return []ControlPoint{
		{X: Vec3{0, 0, 0}, D1: Vec3{0, 0, 3}, D2: Vec3{1, 0, 0}, D3: Vec3{0, 1, 0}},
		{X: Vec3{0, 0, 3}, D1: Vec3{0, 0, 3}, D2: Vec3{2, 0, 0}, D3: Vec3{0, 2, 0}},
	}
}

// quarterTurnPath bends from +z to +x over a quarter circle of radius 2.
func quarterTurnPath() []ControlPoint {
	r := 2.0
	return []ControlPoint{
		{X: Vec3{0, 0, 0}, D1: Vec3{0, 0, r * math.Pi / 2}, D2: Vec3{1, 0, 0}, D3: Vec3{0, 1, 0}},
		{X: Vec3{r, 0, r}, D1: Vec3{r * math.Pi / 2, 0, 0}, D2: Vec3{0, 0, -1}, D3: Vec3{0, 1, 0}},
	}
}

func TestSamplePathErrors(t *testing.T) {
	_, err := SamplePath(straightPath()[:1], 4)
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = SamplePath(straightPath(), 0)
	assert.ErrorIs(t, err, ErrConfiguration)

	bad := straightPath()
	bad[1].D1 = Vec3{}
	_, err = SamplePath(bad, 4)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestSamplePathStraight(t *testing.T) {
	samples, err := SamplePath(straightPath(), 4)
	assert.NoError(t, err)
	assert.Equal(t, 5, len(samples))
	for n, s := range samples {
		z := 0.75 * float64(n)
		assert.True(t, near(s.X[2], z, 1.e-6))
		assert.True(t, near(s.ArcLength, z, 1.e-6))
		assert.True(t, near(vecmath.Magnitude(s.D1), 0.75, 1.e-6))
		// cross derivatives interpolate linearly from 1 to 2
		assert.True(t, near(s.D2[0], 1+0.25*float64(n), 1.e-6))
		assert.True(t, near(s.D3[1], 1+0.25*float64(n), 1.e-6))
	}
}

func TestSamplePathEqualElements(t *testing.T) {
	samples, err := SamplePath(quarterTurnPath(), 6)
	assert.NoError(t, err)
	assert.Equal(t, 7, len(samples))
	spacing := samples[1].ArcLength - samples[0].ArcLength
	for n := 1; n < len(samples); n++ {
		assert.True(t, near(samples[n].ArcLength-samples[n-1].ArcLength, spacing, 5.e-3))
	}
	// the single-element Hermite fit of the quarter turn is a little
	// short of the true quadrant length
	assert.True(t, near(samples[6].ArcLength, 3.1174, 5.e-3))
	assert.True(t, near(samples[6].ArcLength, 2*math.Pi/2, 5.e-2))
}

func TestPropagateFramesOrthonormal(t *testing.T) {
	samples, err := SamplePath(quarterTurnPath(), 8)
	assert.NoError(t, err)
	frames := PropagateFrames(samples)
	assert.Equal(t, len(samples), len(frames))
	for _, f := range frames {
		assert.True(t, near(vecmath.Magnitude(f.Tangent), 1, 1.e-9))
		assert.True(t, near(vecmath.Magnitude(f.Normal), 1, 1.e-9))
		assert.True(t, near(vecmath.Magnitude(f.Binormal), 1, 1.e-9))
		assert.True(t, near(vecmath.Dot(f.Tangent, f.Normal), 0, 1.e-9))
		assert.True(t, near(vecmath.Dot(f.Tangent, f.Binormal), 0, 1.e-9))
		assert.True(t, near(vecmath.Dot(f.Normal, f.Binormal), 0, 1.e-9))
		// right-handed
		assert.True(t, near(vecmath.Dot(vecmath.Cross(f.Tangent, f.Normal), f.Binormal), 1, 1.e-9))
	}
}

func TestStraightPathFrameDoesNotRotate(t *testing.T) {
	path := []ControlPoint{
		{X: Vec3{0, 0, 0}, D1: Vec3{4, 0, 0}, D2: Vec3{0, 1, 0}, D3: Vec3{0, 0, 1}},
		{X: Vec3{4, 0, 0}, D1: Vec3{4, 0, 0}, D2: Vec3{0, 1, 0}, D3: Vec3{0, 0, 1}},
	}
	samples, err := SamplePath(path, 8)
	assert.NoError(t, err)
	frames := PropagateFrames(samples)
	for _, f := range frames {
		assert.True(t, nearVec(f.Binormal, frames[0].Binormal, 1.e-9))
		assert.True(t, nearVec(f.Normal, frames[0].Normal, 1.e-9))
	}
}

func TestLength(t *testing.T) {
	assert.True(t, near(Length(straightPath()), 3, 1.e-9))
}

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func nearVec(a, b Vec3, tol float64) bool {
	for c := 0; c < 3; c++ {
		if math.Abs(a[c]-b[c]) > tol {
			return false
		}
	}
	return true
}
