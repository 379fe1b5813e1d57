package interpolation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anatomesh/tubegen/vecmath"
)

// quarterCircle returns the Hermite end conditions approximating the
// unit circle quadrant from (1,0,0) to (0,1,0).
func quarterCircle() (v1, d1, v2, d2 Vec3) {
	v1 = Vec3{1, 0, 0}
	d1 = Vec3{0, math.Pi / 2, 0}
	v2 = Vec3{0, 1, 0}
	d2 = Vec3{-math.Pi / 2, 0, 0}
	return
}

func TestCubicHermite(t *testing.T) {
	var (
		v1 = Vec3{0, 0, 0}
		d1 = Vec3{1, 0, 0}
		v2 = Vec3{1, 1, 0}
		d2 = Vec3{0, 1, 0}
	)
	assert.Equal(t, v1, InterpolateCubicHermite(v1, d1, v2, d2, 0))
	assert.Equal(t, v2, InterpolateCubicHermite(v1, d1, v2, d2, 1))
	assert.Equal(t, d1, InterpolateCubicHermiteDerivative(v1, d1, v2, d2, 0))
	assert.Equal(t, d2, InterpolateCubicHermiteDerivative(v1, d1, v2, d2, 1))

	// basis partition of unity on positions
	f1, _, f3, _ := CubicHermiteBasis(0.3)
	assert.True(t, near(f1+f3, 1, 1.e-12))
}

func TestQuadraticInterpolation(t *testing.T) {
	var (
		v1 = Vec3{0, 0, 0}
		d1 = Vec3{2, 0, 0}
		v2 = Vec3{1, 1, 0}
	)
	assert.Equal(t, v1, InterpolateHermiteLagrange(v1, d1, v2, 0))
	assert.Equal(t, v2, InterpolateHermiteLagrange(v1, d1, v2, 1))
	assert.Equal(t, d1, InterpolateHermiteLagrangeDerivative(v1, d1, v2, 0))

	d2 := Vec3{0, 2, 0}
	assert.Equal(t, v1, InterpolateLagrangeHermite(v1, v2, d2, 0))
	assert.Equal(t, v2, InterpolateLagrangeHermite(v1, v2, d2, 1))
	assert.Equal(t, d2, InterpolateLagrangeHermiteDerivative(v1, v2, d2, 1))
}

func TestArcLength(t *testing.T) {
	{
		// straight line, matched derivatives
		length := ArcLength(Vec3{0, 0, 0}, Vec3{2, 0, 0}, Vec3{2, 0, 0}, Vec3{2, 0, 0})
		assert.True(t, near(length, 2, 1.e-9))
	}
	{
		// a single Hermite element fit of a quadrant runs about 0.8%
		// short of the true length
		v1, d1, v2, d2 := quarterCircle()
		length := ArcLength(v1, d1, v2, d2)
		assert.True(t, near(length, 1.5587, 1.e-3))
		assert.True(t, near(length, math.Pi/2, 2.e-2))
		assert.True(t, near(ArcLengthToXi(v1, d1, v2, d2, 1.0), length, 1.e-6))

		rescaled := ComputeArcLengthRescaled(v1, d1, v2, d2)
		assert.True(t, near(rescaled, length, 1.e-2))
	}
	{
		v1, d1, v2, d2 := quarterCircle()
		length := CurvesLength([]Vec3{v1, v2}, []Vec3{d1, d2}, false)
		assert.True(t, near(length, math.Pi/2, 2.e-2))
	}
}

func TestPointAtArcDistance(t *testing.T) {
	nx := []Vec3{{0, 0, 0}, {1, 0, 0}, {3, 0, 0}}
	nd := []Vec3{{1, 0, 0}, {1.5, 0, 0}, {2, 0, 0}}
	{
		x, d, element, _ := PointAtArcDistance(nx, nd, 0.5)
		assert.True(t, near(x[0], 0.5, 1.e-4))
		assert.Equal(t, 0, element)
		assert.True(t, d[0] > 0)
	}
	{
		// beyond the end clamps to the last point
		x, _, _, xi := PointAtArcDistance(nx, nd, 10)
		assert.Equal(t, nx[2], x)
		assert.True(t, near(xi, 1, 1.e-12))
	}
	{
		x, _, _, _ := PointAtArcDistance(nx, nd, -1)
		assert.Equal(t, nx[0], x)
	}
}

func TestFindArcDistanceForCoordinate(t *testing.T) {
	nx := []Vec3{{0, 0, 0}, {0, 2, 0}}
	nd := []Vec3{{0, 2, 0}, {0, 2, 0}}
	arcDistance, err := FindArcDistanceForCoordinate(nx, nd, 1, 0.5, 0, 2)
	assert.NoError(t, err)
	assert.True(t, near(arcDistance, 0.5, 1.e-5))
}

func TestCurvatureCircle(t *testing.T) {
	// eighth of the unit circle, where the Hermite fit is close
	var (
		c  = math.Cos(math.Pi / 4)
		s  = math.Sin(math.Pi / 4)
		v1 = Vec3{1, 0, 0}
		d1 = Vec3{0, math.Pi / 4, 0}
		v2 = Vec3{c, s, 0}
		d2 = Vec3{-s * math.Pi / 4, c * math.Pi / 4, 0}
	)
	// radial towards the centre gives positive unit curvature
	kappa := Curvature(v1, d1, v2, d2, Vec3{-1, 0, 0}, 0)
	assert.True(t, near(kappa, 1, 6.e-2))
	assert.True(t, near(CurvatureSimple(v1, d1, v2, d2, 0.5), 1, 6.e-2))

	// straight line has no curvature
	assert.True(t, near(CurvatureSimple(Vec3{0, 0, 0}, Vec3{1, 0, 0}, Vec3{1, 0, 0}, Vec3{1, 0, 0}, 0.5),
		0, 1.e-9))
}

func TestSampleCurvesResample(t *testing.T) {
	v1, d1, v2, d2 := quarterCircle()
	px, pd1, _, _, _ := SampleCurves([]Vec3{v1, v2}, []Vec3{d1, d2}, 4,
		&SampleOptions{ArcLengthDerivatives: true})
	assert.Equal(t, 5, len(px))
	assert.Equal(t, 5, len(pd1))
	// points stay near the unit circle
	for _, x := range px {
		assert.True(t, near(vecmath.Magnitude(x), 1, 2.e-2))
	}
	// element lengths are equal up to the single-element measure error
	var lengths []float64
	for e := 0; e < 4; e++ {
		lengths = append(lengths, ArcLength(px[e], pd1[e], px[e+1], pd1[e+1]))
	}
	for e := 1; e < 4; e++ {
		assert.True(t, near(lengths[e], lengths[0], 5.e-3))
	}
	// resampling at the same count reproduces the points
	qx, _, _, _, _ := SampleCurves(px, pd1, 4, &SampleOptions{ArcLengthDerivatives: true})
	for n := range px {
		for c := 0; c < 3; c++ {
			assert.True(t, near(qx[n][c], px[n][c], 5.e-3))
		}
	}
}

func TestSampleCurvesStartEndOptions(t *testing.T) {
	nx := []Vec3{{0, 0, 0}, {4, 0, 0}}
	nd := []Vec3{{4, 0, 0}, {4, 0, 0}}
	{
		// StartEndRatio 2 makes the first element twice the last
		px, _, _, _, _ := SampleCurves(nx, nd, 4, &SampleOptions{StartEndRatio: 2})
		first := px[1][0] - px[0][0]
		last := px[4][0] - px[3][0]
		assert.True(t, near(first/last, 2, 1.e-3))
	}
	{
		// AddLengthStart enlarges the first element by the added length
		px, _, _, _, _ := SampleCurves(nx, nd, 4, &SampleOptions{AddLengthStart: 1})
		first := px[1][0] - px[0][0]
		mid := px[2][0] - px[1][0]
		assert.True(t, near(first-mid, 1, 1.e-3))
	}
}

func TestInterpolateSampleLinear(t *testing.T) {
	v := []Vec3{{0, 0, 0}, {2, 0, 0}}
	out := InterpolateSampleLinear(v, []int{0, 0, 0}, []float64{0, 0.5, 1})
	assert.Equal(t, Vec3{0, 0, 0}, out[0])
	assert.Equal(t, Vec3{1, 0, 0}, out[1])
	assert.Equal(t, Vec3{2, 0, 0}, out[2])
}

func TestSmoothDerivativesLine(t *testing.T) {
	nx := []Vec3{{0, 0, 0}, {1, 0, 0}, {3, 0, 0}}
	nd := []Vec3{{1, 0, 0}, {1, 0, 0}, {1, 0, 0}}
	md := SmoothDerivativesLine(nx, nd, SmoothOptions{MagnitudeScaling: ArithmeticMean})
	// interior derivative tends to the mean of adjacent element lengths
	assert.True(t, near(vecmath.Magnitude(md[1]), 1.5, 0.1))
	for _, d := range md {
		assert.True(t, d[0] > 0)
		assert.True(t, near(d[1], 0, 1.e-9))
	}
}

func TestSmoothDerivativesLoop(t *testing.T) {
	var (
		n  = 8
		nx []Vec3
		nd []Vec3
	)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		nx = append(nx, Vec3{math.Cos(theta), math.Sin(theta), 0})
		nd = append(nd, Vec3{-math.Sin(theta), math.Cos(theta), 0})
	}
	md := SmoothDerivativesLoop(nx, nd, false, ArithmeticMean)
	expected := 2 * math.Pi / float64(n)
	for _, d := range md {
		assert.True(t, near(vecmath.Magnitude(d), expected, 1.e-2))
	}
}

func TestDerivativeScaling(t *testing.T) {
	scaling := DerivativeScaling(Vec3{0, 0, 0}, Vec3{1, 0, 0}, Vec3{2, 0, 0}, Vec3{1, 0, 0})
	assert.True(t, near(scaling, 2, 1.e-3))
}

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
