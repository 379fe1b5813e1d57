package profile

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anatomesh/tubegen/interpolation"
	"github.com/anatomesh/tubegen/vecmath"
)

func TestCirclePoints(t *testing.T) {
	var (
		radius = 1.5
		n      = 8
		points = CirclePoints(radius, n)
	)
	assert.Equal(t, n, len(points))
	expectedD1 := 2 * math.Pi * radius / float64(n)
	for _, p := range points {
		assert.True(t, near(vecmath.Magnitude(p.X), radius, 1.e-9))
		assert.True(t, near(vecmath.Magnitude(p.D1), expectedD1, 1.e-9))
		// derivative is tangential
		assert.True(t, near(vecmath.Dot(p.X, p.D1), 0, 1.e-9))
		assert.Equal(t, ZoneRemainder, p.Zone)
	}
	// anticlockwise order
	for i := range points {
		ip := (i + 1) % n
		assert.True(t, vecmath.Cross(points[i].X, points[ip].X)[2] > 0)
	}
}

func TestZonedProfile(t *testing.T) {
	z := Zones{
		Shape:                   RoundedTriangle,
		Radius:                  1,
		CornerRadiusFactor:      0.3,
		NarrowBandWidth:         0.3,
		SectorsCount:            3,
		ElementsCountNarrowBand: 2,
		ElementsCountRemainder:  6,
	}
	points := Generate(z)
	assert.Equal(t, 24, len(points))
	assert.Equal(t, z.ElementsCountAround(), len(points))

	var (
		ids       = ZoneIDs(points)
		flags     = TransitionFlags(points)
		perSector = 8
	)
	for n := range points {
		var (
			inSector = n % perSector
			wantZone = ZoneRemainder
		)
		if (inSector == 0) || (inSector == perSector-1) {
			wantZone = ZoneNarrowBand
		}
		assert.Equal(t, wantZone, ids[n])
		assert.Equal(t, (inSector == 1) || (inSector == perSector-2), flags[n])
	}
	// all points on a closed anticlockwise loop of plausible size
	for n := range points {
		var (
			np  = (n + 1) % len(points)
			mag = vecmath.Magnitude(points[n].X)
		)
		assert.True(t, mag > 0.3*z.Radius)
		assert.True(t, mag < 1.1*z.Radius)
		assert.True(t, vecmath.Cross(points[n].X, points[np].X)[2] > 0)
	}
	// three-fold symmetry: points one sector apart match under rotation
	rot := 2 * math.Pi / 3
	for n := 0; n < perSector; n++ {
		want := vecmath.RotateAboutZAxis(points[n].X, rot)
		got := points[n+perSector].X
		for c := 0; c < 3; c++ {
			assert.True(t, near(got[c], want[c], 1.e-6))
		}
	}
}

func TestLocateZoneBoundary(t *testing.T) {
	var (
		radius          = 1.0
		narrowBandWidth = 0.4
		sectorsCount    = 3
	)
	xLoop, d1Loop := CircleLoop(Vec3{}, Vec3{radius, 0, 0}, Vec3{0, radius, 0}, 120, 0)
	nx := append(append([]Vec3{}, xLoop...), xLoop[0])
	nd1 := append(append([]Vec3{}, d1Loop...), d1Loop[0])

	arcEnd := 2 * math.Pi * radius / float64(2*sectorsCount)
	arcDistance := LocateZoneBoundary(nx, nd1, narrowBandWidth, 0, arcEnd)
	// the boundary reproduces the half band width laterally
	x, _, _, _ := interpolation.PointAtArcDistance(nx, nd1, arcDistance)
	assert.True(t, near(x[1], narrowBandWidth/2, 1.e-5))
	// on the unit circle the arc distance equals the subtended angle
	assert.True(t, near(arcDistance, math.Asin(narrowBandWidth/2), 1.e-3))
}

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
