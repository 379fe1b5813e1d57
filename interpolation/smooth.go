package interpolation

import (
	"fmt"
	"math"

	"github.com/anatomesh/tubegen/vecmath"
)

// DerivativeScalingMode selects the expression used to get a node's
// derivative magnitude from the arc lengths on either side.
type DerivativeScalingMode int

const (
	// ArithmeticMean: derivative is half the sum of adjacent arc lengths.
	ArithmeticMean DerivativeScalingMode = iota
	// HarmonicMean: reciprocal of the mean of reciprocals, weighting each
	// arc length by the proportion from the other side.
	HarmonicMean
)

// SmoothOptions controls SmoothDerivativesLine.
type SmoothOptions struct {
	FixAllDirections   bool
	FixStartDerivative bool
	FixEndDerivative   bool
	FixStartDirection  bool
	FixEndDirection    bool
	MagnitudeScaling   DerivativeScalingMode
}

// SmoothDerivativesLine returns a copy of nd1 modified to vary smoothly
// and lie near arc length over the open curve through nx. Initial
// derivatives are assumed zero or reasonable.
func SmoothDerivativesLine(nx, nd1 []Vec3, opts SmoothOptions) []Vec3 {
	var (
		nodesCount    = len(nx)
		elementsCount = nodesCount - 1
	)
	if elementsCount < 1 {
		panic("SmoothDerivativesLine: too few nodes")
	}
	if len(nd1) != nodesCount {
		panic("SmoothDerivativesLine: mismatched number of derivatives")
	}
	md1 := make([]Vec3, nodesCount)
	copy(md1, nd1)
	if elementsCount == 1 {
		if !(opts.FixStartDerivative || opts.FixEndDerivative ||
			opts.FixStartDirection || opts.FixEndDirection || opts.FixAllDirections) {
			delta := vecmath.Sub(nx[1], nx[0])
			return []Vec3{delta, delta}
		}
		if opts.FixAllDirections || (opts.FixStartDirection && opts.FixEndDirection) {
			arcLength := ComputeArcLengthRescaled(nx[0], nd1[0], nx[1], nd1[1])
			return []Vec3{vecmath.SetMagnitude(nd1[0], arcLength), vecmath.SetMagnitude(nd1[1], arcLength)}
		}
	}
	var (
		tol        = 1.0e-6
		arcLengths = make([]float64, elementsCount)
		lastmd1    = make([]Vec3, nodesCount)
		dtol       float64
	)
	for iter := 0; iter < 100; iter++ {
		copy(lastmd1, md1)
		sumArcLengths := 0.0
		for e := 0; e < elementsCount; e++ {
			arcLengths[e] = ArcLength(nx[e], md1[e], nx[e+1], md1[e+1])
			sumArcLengths += arcLengths[e]
		}
		if !opts.FixStartDerivative {
			if opts.FixAllDirections || opts.FixStartDirection {
				mag := 2.0*arcLengths[0] - vecmath.Magnitude(lastmd1[1])
				if mag > 0.0 {
					md1[0] = vecmath.SetMagnitude(nd1[0], mag)
				} else {
					md1[0] = Vec3{}
				}
			} else {
				md1[0] = InterpolateLagrangeHermiteDerivative(nx[0], nx[1], lastmd1[1], 0.0)
			}
		}
		for n := 1; n < nodesCount-1; n++ {
			nm := n - 1
			if !opts.FixAllDirections {
				// direction is the mean towards each neighbour, weighted by
				// fraction towards that end (equivalent to harmonic mean)
				np := n + 1
				dirm := vecmath.Sub(nx[n], nx[nm])
				dirp := vecmath.Sub(nx[np], nx[n])
				arcLengthmp := arcLengths[nm] + arcLengths[n]
				wm := arcLengths[n] / arcLengthmp
				wp := arcLengths[nm] / arcLengthmp
				md1[n] = vecmath.AddScaled(dirm, dirp, wm, wp)
			}
			var mag float64
			if opts.MagnitudeScaling == ArithmeticMean {
				mag = 0.5 * (arcLengths[nm] + arcLengths[n])
			} else {
				mag = 2.0 / (1.0/arcLengths[nm] + 1.0/arcLengths[n])
			}
			md1[n] = vecmath.SetMagnitude(md1[n], mag)
		}
		if !opts.FixEndDerivative {
			if opts.FixAllDirections || opts.FixEndDirection {
				mag := 2.0*arcLengths[elementsCount-1] - vecmath.Magnitude(lastmd1[nodesCount-2])
				if mag > 0.0 {
					md1[nodesCount-1] = vecmath.SetMagnitude(nd1[nodesCount-1], mag)
				} else {
					md1[nodesCount-1] = Vec3{}
				}
			} else {
				md1[nodesCount-1] = InterpolateHermiteLagrangeDerivative(
					nx[nodesCount-2], lastmd1[nodesCount-2], nx[nodesCount-1], 1.0)
			}
		}
		dtol = tol * sumArcLengths / float64(elementsCount)
		if maxComponentChange(md1, lastmd1) <= dtol {
			return md1
		}
	}
	fmt.Printf("SmoothDerivativesLine: Max iters reached, closeness %.2f x tolerance\n",
		maxComponentChange(md1, lastmd1)/dtol)
	return md1
}

// SmoothDerivativesLoop is as SmoothDerivativesLine for a closed curve,
// where the first point follows the last.
func SmoothDerivativesLoop(nx, nd1 []Vec3, fixAllDirections bool,
	magnitudeScaling DerivativeScalingMode) []Vec3 {
	nodesCount := len(nx)
	if nodesCount < 2 {
		panic("SmoothDerivativesLoop: too few nodes")
	}
	if len(nd1) != nodesCount {
		panic("SmoothDerivativesLoop: mismatched number of derivatives")
	}
	var (
		elementsCount = nodesCount
		md1           = make([]Vec3, nodesCount)
		lastmd1       = make([]Vec3, nodesCount)
		arcLengths    = make([]float64, elementsCount)
		tol           = 1.0e-6
		dtol          float64
	)
	copy(md1, nd1)
	for iter := 0; iter < 100; iter++ {
		copy(lastmd1, md1)
		sumArcLengths := 0.0
		for e := 0; e < elementsCount; e++ {
			ep := (e + 1) % elementsCount
			arcLengths[e] = ArcLength(nx[e], md1[e], nx[ep], md1[ep])
			sumArcLengths += arcLengths[e]
		}
		for n := 0; n < nodesCount; n++ {
			nm := (n - 1 + nodesCount) % nodesCount
			if !fixAllDirections {
				np := (n + 1) % nodesCount
				dirm := vecmath.Sub(nx[n], nx[nm])
				dirp := vecmath.Sub(nx[np], nx[n])
				arcLengthmp := arcLengths[nm] + arcLengths[n]
				wm := arcLengths[n] / arcLengthmp
				wp := arcLengths[nm] / arcLengthmp
				md1[n] = vecmath.AddScaled(dirm, dirp, wm, wp)
			}
			var mag float64
			if magnitudeScaling == ArithmeticMean {
				mag = 0.5 * (arcLengths[nm] + arcLengths[n])
			} else {
				mag = 2.0 / (1.0/arcLengths[nm] + 1.0/arcLengths[n])
			}
			md1[n] = vecmath.SetMagnitude(md1[n], mag)
		}
		dtol = tol * sumArcLengths / float64(elementsCount)
		if maxComponentChange(md1, lastmd1) <= dtol {
			return md1
		}
	}
	fmt.Printf("SmoothDerivativesLoop: Max iters reached, closeness %.2f x tolerance\n",
		maxComponentChange(md1, lastmd1)/dtol)
	return md1
}

// DerivativeScaling computes the factor to multiply d1, d2 by so their
// mean magnitude equals the curve arc length.
func DerivativeScaling(v1, d1, v2, d2 Vec3) (scaling float64) {
	var (
		origMag   = 0.5 * (vecmath.Magnitude(d1) + vecmath.Magnitude(d2))
		mag       float64
		arcLength float64
	)
	scaling = 1.0
	for iter := 0; iter < 100; iter++ {
		mag = origMag * scaling
		arcLength = ArcLength(v1, vecmath.Scale(d1, scaling), v2, vecmath.Scale(d2, scaling))
		if math.Abs(arcLength-mag) < 1.0e-6*arcLength {
			return scaling
		}
		scaling *= arcLength / mag
	}
	fmt.Printf("DerivativeScaling: Max iters reached, mag %g arc %g\n", mag, arcLength)
	return scaling
}

func maxComponentChange(a, b []Vec3) (cmax float64) {
	for n := range a {
		for c := 0; c < 3; c++ {
			diff := math.Abs(a[n][c] - b[n][c])
			if diff > cmax {
				cmax = diff
			}
		}
	}
	return
}
