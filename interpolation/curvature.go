package interpolation

import (
	"github.com/anatomesh/tubegen/vecmath"
)

// Curvature returns the scalar curvature (1/R) of the cubic Hermite
// curve at xi, resolved in the direction of radialVector, which is
// assumed unit and normal to the curve tangent at that point.
func Curvature(v1, d1, v2, d2, radialVector Vec3, xi float64) float64 {
	var (
		tangent    = InterpolateCubicHermiteDerivative(v1, d1, v2, d2, xi)
		dTangent   = InterpolateCubicHermiteSecondDerivative(v1, d1, v2, d2, xi)
		magTangent = vecmath.Magnitude(tangent)
	)
	radialCurvature := vecmath.Dot(dTangent, radialVector)
	return radialCurvature / (magTangent * magTangent)
}

// CurvatureSimple returns the unsigned scalar curvature (1/R) of the
// cubic Hermite curve at xi, independent of any radial direction.
func CurvatureSimple(v1, d1, v2, d2 Vec3, xi float64) float64 {
	var (
		tangent    = InterpolateCubicHermiteDerivative(v1, d1, v2, d2, xi)
		magTangent = vecmath.Magnitude(tangent)
	)
	if magTangent == 0.0 {
		return 0.0
	}
	dTangent := InterpolateCubicHermiteSecondDerivative(v1, d1, v2, d2, xi)
	cp := vecmath.Cross(tangent, dTangent)
	return vecmath.Magnitude(cp) / (magTangent * magTangent * magTangent)
}
