package interpolation

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate/quad"

	"github.com/anatomesh/tubegen/vecmath"
)

// ErrRootNotConverged reports that an iterative root search hit its
// iteration budget. The accompanying estimate is still usable;
// downstream geometry is approximate at that one boundary.
var ErrRootNotConverged = errors.New("interpolation: root search did not converge")

const arcLengthQuadraturePoints = 4

// ArcLength returns the arc length of the cubic Hermite curve from
// v1, d1 to v2, d2, by fixed Gauss-Legendre quadrature of the tangent
// magnitude. Approximate.
func ArcLength(v1, d1, v2, d2 Vec3) float64 {
	return quad.Fixed(func(xi float64) float64 {
		return vecmath.Magnitude(InterpolateCubicHermiteDerivative(v1, d1, v2, d2, xi))
	}, 0, 1, arcLengthQuadraturePoints, quad.Legendre{}, 0)
}

// ArcLengthToXi returns the arc length of the cubic curve up to the
// given xi coordinate.
func ArcLengthToXi(v1, d1, v2, d2 Vec3, xi float64) float64 {
	var (
		d1m = vecmath.Scale(d1, xi)
		v2m = InterpolateCubicHermite(v1, d1, v2, d2, xi)
		d2m = vecmath.Scale(InterpolateCubicHermiteDerivative(v1, d1, v2, d2, xi), xi)
	)
	return ArcLength(v1, d1m, v2m, d2m)
}

// ComputeArcLengthRescaled computes the arc length between v1 and v2
// with d1, d2 iteratively rescaled to the arc length itself, so the
// returned length matches derivatives of that magnitude.
func ComputeArcLengthRescaled(v1, d1, v2, d2 Vec3) float64 {
	var (
		lastArcLength = vecmath.Magnitude(vecmath.Sub(v2, v1))
		u1            = vecmath.Normalise(d1)
		u2            = vecmath.Normalise(d2)
		arcLength     float64
		tol           = 1.0e-6
	)
	for iter := 0; iter < 100; iter++ {
		d1s := vecmath.Scale(u1, lastArcLength)
		d2s := vecmath.Scale(u2, lastArcLength)
		arcLength = ArcLength(v1, d1s, v2, d2s)
		if iter > 9 {
			// damp oscillating estimates
			arcLength = 0.8*arcLength + 0.2*lastArcLength
		}
		if math.Abs(arcLength-lastArcLength) < tol*arcLength {
			return arcLength
		}
		lastArcLength = arcLength
	}
	fmt.Printf("ComputeArcLengthRescaled: Max iters reached, closeness %g\n",
		math.Abs(arcLength-lastArcLength))
	return arcLength
}

// CurvesLength returns the total arc length of the piecewise cubic
// Hermite curve through nx, nd1. If loop, the curve closes back to the
// first point.
func CurvesLength(nx, nd1 []Vec3, loop bool) (length float64) {
	elementsCount := len(nx)
	if !loop {
		elementsCount--
	}
	for e := 0; e < elementsCount; e++ {
		ep := (e + 1) % len(nx)
		length += ArcLength(nx[e], nd1[e], nx[ep], nd1[ep])
	}
	return
}

// PointAtArcDistance gets coordinates and derivative at arcDistance
// along the cubic Hermite curves through nx, nd. Supplied derivatives
// are used as-is, not rescaled to arc length. Newton iteration on xi
// with a step limit; non-convergence is a printed diagnostic and the
// element end is returned. Positions beyond either end clamp to the
// nearer end point.
func PointAtArcDistance(nx, nd []Vec3, arcDistance float64) (x, d Vec3, element int, xi float64) {
	elementsCount := len(nx) - 1
	if elementsCount < 1 {
		panic("PointAtArcDistance: invalid number of points")
	}
	if arcDistance < 0.0 {
		return nx[0], nd[0], 0, 0.0
	}
	var (
		length  float64
		xiDelta = 1.0e-6
		xiTol   = 1.0e-6
	)
	for e := 0; e < elementsCount; e++ {
		var (
			partDistance = arcDistance - length
			v1, d1       = nx[e], nd[e]
			v2, d2       = nx[e+1], nd[e+1]
			arcLength    = ArcLength(v1, d1, v2, d2)
		)
		if partDistance <= arcLength {
			var (
				dist     float64
				dxiLimit = 0.1
			)
			xi = partDistance / arcLength
			for iter := 0; iter < 100; iter++ {
				xiLast := xi
				dist = ArcLengthToXi(v1, d1, v2, d2, xi)
				distp := ArcLengthToXi(v1, d1, v2, d2, xi+xiDelta)
				distm := ArcLengthToXi(v1, d1, v2, d2, xi-xiDelta)
				if (xi - xiDelta) < 0.0 {
					distm = -distm
				}
				dxiDdist := 2.0 * xiDelta / (distp - distm)
				dxi := dxiDdist * (partDistance - dist)
				if dxi > dxiLimit {
					dxi = dxiLimit
				} else if dxi < -dxiLimit {
					dxi = -dxiLimit
				}
				xi += dxi
				if math.Abs(xi-xiLast) <= xiTol {
					return InterpolateCubicHermite(v1, d1, v2, d2, xi),
						InterpolateCubicHermiteDerivative(v1, d1, v2, d2, xi), e, xi
				}
				switch iter {
				case 4, 10, 25, 62:
					dxiLimit *= 0.5
				}
			}
			fmt.Printf("PointAtArcDistance: Max iters reached: e %d xi %g closeness %g\n",
				e, xi, math.Abs(dist-partDistance))
			return v2, d2, e, xi
		}
		length += arcLength
	}
	return nx[elementsCount], nd[elementsCount], elementsCount - 1, 1.0
}

// FindArcDistanceForCoordinate bisects for the arc distance along the
// curve through nx, nd1 at which the given coordinate component equals
// target. The search assumes the component is monotonic over
// [arcStart, arcEnd]. Capped at 100 iterations; on failure the last
// estimate is returned along with ErrRootNotConverged, which callers
// may treat as non-fatal.
func FindArcDistanceForCoordinate(nx, nd1 []Vec3, component int, target,
	arcStart, arcEnd float64) (arcDistance float64, err error) {
	xTol := 1.0e-6
	for iter := 0; iter < 100; iter++ {
		arcDistance = (arcStart + arcEnd) * 0.5
		x, _, _, _ := PointAtArcDistance(nx, nd1, arcDistance)
		diff := x[component] - target
		if math.Abs(diff) <= xTol {
			return arcDistance, nil
		}
		if diff < 0.0 {
			arcStart = arcDistance
		} else {
			arcEnd = arcDistance
		}
	}
	fmt.Printf("FindArcDistanceForCoordinate: Max iters reached, estimate %g\n", arcDistance)
	return arcDistance, ErrRootNotConverged
}
