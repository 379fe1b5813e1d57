package profile

import (
	"math"

	"github.com/anatomesh/tubegen/interpolation"
	"github.com/anatomesh/tubegen/vecmath"
)

type Vec3 = vecmath.Vec3

// Shape selects the overall closed cross-section outline.
type Shape int

const (
	// Circle of the configured radius.
	Circle Shape = iota
	// RoundedTriangle is an equilateral triangle with rounded corners
	// inscribed in a circle of the configured radius, corner roundness
	// set by CornerRadiusFactor. Used with three narrow-band sectors.
	RoundedTriangle
)

// CircleLoop returns points and derivatives of a circular ring centred
// at cx, from axis1 around through axis2, which must be orthogonal and
// of equal magnitude.
func CircleLoop(cx, axis1, axis2 Vec3, elementsCountAround int, startRadians float64) (px, pd1 []Vec3) {
	var (
		radiansPerElementAround = 2.0 * math.Pi / float64(elementsCountAround)
		radiansAround           = startRadians
	)
	for n := 0; n < elementsCountAround; n++ {
		cosRadiansAround := math.Cos(radiansAround)
		sinRadiansAround := math.Sin(radiansAround)
		px = append(px, vecmath.Add(cx,
			vecmath.AddScaled(axis1, axis2, cosRadiansAround, sinRadiansAround)))
		pd1 = append(pd1, vecmath.AddScaled(axis1, axis2,
			-radiansPerElementAround*sinRadiansAround, radiansPerElementAround*cosRadiansAround))
		radiansAround += radiansPerElementAround
	}
	return
}

// CirclePoints returns a plain circular profile with uniform elements
// and no zoning.
func CirclePoints(radius float64, elementsCountAround int) []Point {
	px, pd1 := CircleLoop(Vec3{}, Vec3{radius, 0.0, 0.0}, Vec3{0.0, radius, 0.0},
		elementsCountAround, 0.0)
	points := make([]Point, elementsCountAround)
	for n := range points {
		points[n] = Point{X: px[n], D1: pd1[n], Zone: ZoneRemainder}
	}
	return points
}

// roundedTriangleLoop builds a dense closed loop around an equilateral
// triangle with corner arcs of radius cornerRadiusFactor*radius. The
// loop starts on the positive x-axis at the middle of the first corner.
func roundedTriangleLoop(radius, cornerRadiusFactor float64, sampleElementsOut int) (px, pd1 []Vec3) {
	var (
		cornerR      = cornerRadiusFactor * radius
		radiansRange = []float64{7.0 * math.Pi / 4.0, 0.0, math.Pi / 4.0}
		xAround      []Vec3
		d1Around     []Vec3
	)
	for n1 := 0; n1 < 3; n1++ {
		radiansAround := float64(n1) * 2.0 * math.Pi / 3.0
		xc := Vec3{
			(radius - cornerR) * math.Cos(radiansAround),
			(radius - cornerR) * math.Sin(radiansAround),
			0.0,
		}
		for _, rc := range radiansRange {
			radiansRC := radiansAround + rc
			cosRC := math.Cos(radiansRC)
			sinRC := math.Sin(radiansRC)
			xAround = append(xAround, Vec3{xc[0] + cornerR*cosRC, xc[1] + cornerR*sinRC, 0.0})
			d1Around = append(d1Around, Vec3{
				cornerR * math.Pi / 4.0 * -sinRC,
				cornerR * math.Pi / 4.0 * cosRC,
				0.0,
			})
		}
	}
	// resample from the on-axis corner point once around
	var xSample, d1Sample []Vec3
	xSample = append(xSample, xAround[1:9]...)
	xSample = append(xSample, xAround[0], xAround[1])
	d1Sample = append(d1Sample, d1Around[1:9]...)
	d1Sample = append(d1Sample, d1Around[0], d1Around[1])
	sx, sd1, _, _, _ := interpolation.SampleCurves(xSample, d1Sample, sampleElementsOut, nil)
	px = sx[:len(sx)-1]
	pd1 = interpolation.SmoothDerivativesLoop(px, sd1[:len(sd1)-1], false, interpolation.ArithmeticMean)
	return
}
