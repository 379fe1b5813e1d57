package tube

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anatomesh/tubegen/centralpath"
	"github.com/anatomesh/tubegen/profile"
	"github.com/anatomesh/tubegen/vecmath"
)

// straightTube builds a walled cylinder along z: inner radius, uniform
// wall thickness, length 3.
func straightTube(t *testing.T, radius, thickness float64, elementsCountAround,
	elementsCountAlong, elementsCountThroughWall int) (*InnerSurface, *Field3D) {
	path := []centralpath.ControlPoint{
		{X: Vec3{0, 0, 0}, D1: Vec3{0, 0, 3}, D2: Vec3{1, 0, 0}, D3: Vec3{0, 1, 0}},
		{X: Vec3{0, 0, 3}, D1: Vec3{0, 0, 3}, D2: Vec3{1, 0, 0}, D3: Vec3{0, 1, 0}},
	}
	samples, err := centralpath.SamplePath(path, elementsCountAlong)
	assert.NoError(t, err)
	frames := centralpath.PropagateFrames(samples)
	points := profile.CirclePoints(radius, elementsCountAround)
	profiles := make([][]profile.Point, len(samples))
	for n := range profiles {
		profiles[n] = points
	}
	inner := WarpProfiles(profiles, samples, frames)
	wallThickness := make([]float64, elementsCountAlong+1)
	for n := range wallThickness {
		wallThickness[n] = thickness
	}
	field := ExtrudeWall(inner, wallThickness, elementsCountThroughWall, nil,
		profile.TransitionFlags(points))
	return inner, field
}

func TestWarpStraightTube(t *testing.T) {
	inner, _ := straightTube(t, 1.0, 0.25, 8, 4, 1)
	assert.Equal(t, 8, inner.ElementsCountAround)
	assert.Equal(t, 4, inner.ElementsCountAlong)
	for n2 := 0; n2 <= 4; n2++ {
		z := 0.75 * float64(n2)
		for n1 := 0; n1 < 8; n1++ {
			n := inner.Index(n2, n1)
			assert.True(t, near(inner.X[n][2], z, 1.e-6))
			radial := Vec3{inner.X[n][0], inner.X[n][1], 0}
			assert.True(t, near(vecmath.Magnitude(radial), 1, 1.e-6))
			// d3 points outward
			assert.True(t, vecmath.Dot(inner.D3Unit[n], radial) > 0.99)
			// d2 runs along the tube with the element spacing
			assert.True(t, near(inner.D2[n][2], 0.75, 1.e-3))
		}
	}
}

func TestExtrudeZeroThickness(t *testing.T) {
	inner, field := straightTube(t, 1.0, 0.0, 8, 1, 1)
	for n2 := 0; n2 <= 1; n2++ {
		for n1 := 0; n1 < 8; n1++ {
			var (
				in  = inner.Index(n2, n1)
				out = field.Index(1, n2, n1)
			)
			assert.True(t, nearVec(field.X[out], inner.X[in], 1.e-9))
		}
	}
}

func TestCylinderBoundingBox(t *testing.T) {
	_, field := straightTube(t, 0.75, 0.25, 8, 1, 1)
	var min, max Vec3
	for c := 0; c < 3; c++ {
		min[c] = math.Inf(1)
		max[c] = math.Inf(-1)
	}
	for _, x := range field.X {
		for c := 0; c < 3; c++ {
			min[c] = math.Min(min[c], x[c])
			max[c] = math.Max(max[c], x[c])
		}
	}
	assert.True(t, nearVec(min, Vec3{-1, -1, 0}, 1.e-6))
	assert.True(t, nearVec(max, Vec3{1, 1, 3}, 1.e-6))
}

func TestCylinderShellVolume(t *testing.T) {
	var (
		elementsCountAround = 64
		_, field            = straightTube(t, 0.75, 0.25, elementsCountAround, 1, 1)
	)
	// straight cylinder: volume = radial cross-section area times length
	area := 0.0
	for n1 := 0; n1 < elementsCountAround; n1++ {
		var (
			np   = (n1 + 1) % elementsCountAround
			quad = []Vec3{
				field.X[field.Index(0, 0, n1)],
				field.X[field.Index(0, 0, np)],
				field.X[field.Index(1, 0, np)],
				field.X[field.Index(1, 0, n1)],
			}
		)
		for i := range quad {
			j := (i + 1) % 4
			area += 0.5 * (quad[i][0]*quad[j][1] - quad[j][0]*quad[i][1])
		}
	}
	var (
		// shoelace sign depends on the quad winding
		volume   = math.Abs(area) * 3.0
		analytic = math.Pi * (1.0 - 0.75*0.75) * 3.0
	)
	assert.True(t, near(volume/analytic, 1, 1.e-2))
}

func TestFieldIndexing(t *testing.T) {
	f := NewField3D(8, 2, 1)
	assert.Equal(t, 2*3*8, f.NodesCount())
	assert.Equal(t, 0, f.Index(0, 0, 0))
	assert.Equal(t, f.NodesCount()-1, f.Index(1, 2, 7))
	assert.Panics(t, func() { f.Index(2, 0, 0) })
	assert.Panics(t, func() { f.Index(0, 3, 0) })
	assert.Panics(t, func() { f.Index(0, 0, 8) })
}

func TestExtrudeCurvatureFactors(t *testing.T) {
	// quarter-turn tube: d2 on the outside of the bend must be longer
	// than on the inside at the same longitudinal index
	r := 2.0
	path := []centralpath.ControlPoint{
		{X: Vec3{0, 0, 0}, D1: Vec3{0, 0, r * math.Pi / 2}, D2: Vec3{1, 0, 0}, D3: Vec3{0, 1, 0}},
		{X: Vec3{r, 0, r}, D1: Vec3{r * math.Pi / 2, 0, 0}, D2: Vec3{0, 0, -1}, D3: Vec3{0, 1, 0}},
	}
	samples, err := centralpath.SamplePath(path, 6)
	assert.NoError(t, err)
	frames := centralpath.PropagateFrames(samples)
	points := profile.CirclePoints(0.5, 8)
	profiles := make([][]profile.Point, len(samples))
	for n := range profiles {
		profiles[n] = points
	}
	inner := WarpProfiles(profiles, samples, frames)
	var (
		n2     = 3
		maxMag = 0.0
		minMag = math.Inf(1)
	)
	for n1 := 0; n1 < 8; n1++ {
		mag := vecmath.Magnitude(inner.D2[inner.Index(n2, n1)])
		maxMag = math.Max(maxMag, mag)
		minMag = math.Min(minMag, mag)
	}
	assert.True(t, maxMag > minMag*1.2)
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
