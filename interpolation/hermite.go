package interpolation

import (
	"github.com/anatomesh/tubegen/vecmath"
)

type Vec3 = vecmath.Vec3

// CubicHermiteBasis returns the 4 cubic Hermite basis function values
// for v1, d1, v2, d2 at xi.
func CubicHermiteBasis(xi float64) (f1, f2, f3, f4 float64) {
	var (
		xi2 = xi * xi
		xi3 = xi2 * xi
	)
	f1 = 1.0 - 3.0*xi2 + 2.0*xi3
	f2 = xi - 2.0*xi2 + xi3
	f3 = 3.0*xi2 - 2.0*xi3
	f4 = -xi2 + xi3
	return
}

// CubicHermiteBasisDerivatives returns the first derivatives of the 4
// cubic Hermite basis functions at xi.
func CubicHermiteBasisDerivatives(xi float64) (df1, df2, df3, df4 float64) {
	xi2 := xi * xi
	df1 = -6.0*xi + 6.0*xi2
	df2 = 1.0 - 4.0*xi + 3.0*xi2
	df3 = 6.0*xi - 6.0*xi2
	df4 = -2.0*xi + 3.0*xi2
	return
}

// InterpolateCubicHermite evaluates the cubic Hermite curve from v1, d1
// to v2, d2 at xi in [0,1].
func InterpolateCubicHermite(v1, d1, v2, d2 Vec3, xi float64) (x Vec3) {
	f1, f2, f3, f4 := CubicHermiteBasis(xi)
	for c := 0; c < 3; c++ {
		x[c] = f1*v1[c] + f2*d1[c] + f3*v2[c] + f4*d2[c]
	}
	return
}

// InterpolateCubicHermiteDerivative evaluates the curve derivative
// w.r.t. xi.
func InterpolateCubicHermiteDerivative(v1, d1, v2, d2 Vec3, xi float64) (d Vec3) {
	df1, df2, df3, df4 := CubicHermiteBasisDerivatives(xi)
	for c := 0; c < 3; c++ {
		d[c] = df1*v1[c] + df2*d1[c] + df3*v2[c] + df4*d2[c]
	}
	return
}

// InterpolateCubicHermiteSecondDerivative evaluates the curve second
// derivative w.r.t. xi.
func InterpolateCubicHermiteSecondDerivative(v1, d1, v2, d2 Vec3, xi float64) (d Vec3) {
	var (
		f1 = -6.0 + 12.0*xi
		f2 = -4.0 + 6.0*xi
		f3 = 6.0 - 12.0*xi
		f4 = -2.0 + 6.0*xi
	)
	for c := 0; c < 3; c++ {
		d[c] = f1*v1[c] + f2*d1[c] + f3*v2[c] + f4*d2[c]
	}
	return
}

// InterpolateHermiteLagrange gets the value at xi for quadratic
// Hermite-Lagrange interpolation from v1, d1 to v2.
func InterpolateHermiteLagrange(v1, d1, v2 Vec3, xi float64) (x Vec3) {
	var (
		f1 = 1.0 - xi*xi
		f2 = xi - xi*xi
		f3 = xi * xi
	)
	for c := 0; c < 3; c++ {
		x[c] = f1*v1[c] + f2*d1[c] + f3*v2[c]
	}
	return
}

// InterpolateHermiteLagrangeDerivative gets the derivative at xi for
// quadratic Hermite-Lagrange interpolation from v1, d1 to v2.
func InterpolateHermiteLagrangeDerivative(v1, d1, v2 Vec3, xi float64) (d Vec3) {
	var (
		df1 = -2.0 * xi
		df2 = 1.0 - 2.0*xi
		df3 = 2.0 * xi
	)
	for c := 0; c < 3; c++ {
		d[c] = df1*v1[c] + df2*d1[c] + df3*v2[c]
	}
	return
}

// InterpolateLagrangeHermite gets the value at xi for quadratic
// Lagrange-Hermite interpolation from v1 to v2, d2.
func InterpolateLagrangeHermite(v1, v2, d2 Vec3, xi float64) (x Vec3) {
	var (
		f1 = 1.0 - 2.0*xi + xi*xi
		f2 = 2.0*xi - xi*xi
		f3 = -xi + xi*xi
	)
	for c := 0; c < 3; c++ {
		x[c] = f1*v1[c] + f2*v2[c] + f3*d2[c]
	}
	return
}

// InterpolateLagrangeHermiteDerivative gets the derivative at xi for
// quadratic Lagrange-Hermite interpolation from v1 to v2, d2.
func InterpolateLagrangeHermiteDerivative(v1, v2, d2 Vec3, xi float64) (d Vec3) {
	var (
		df1 = -2.0 + 2.0*xi
		df2 = 2.0 - 2.0*xi
		df3 = -1.0 + 2.0*xi
	)
	for c := 0; c < 3; c++ {
		d[c] = df1*v1[c] + df2*v2[c] + df3*d2[c]
	}
	return
}
