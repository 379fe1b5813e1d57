package interpolation

import (
	"github.com/anatomesh/tubegen/vecmath"
)

// SampleOptions controls SampleCurves point distribution. The zero
// value of numeric fields means "default": length fractions and the
// start/end ratio default to 1.0.
type SampleOptions struct {
	// AddLengthStart, AddLengthEnd add extra length to the first and
	// last elements.
	AddLengthStart, AddLengthEnd float64
	// LengthFractionStart, LengthFractionEnd scale the first and last
	// element lengths relative to the mid element length. Combined with
	// AddLength these blend into a known derivative at either end.
	LengthFractionStart, LengthFractionEnd float64
	// StartEndRatio is the first/last element length ratio, with
	// lengths varying smoothly in between. Needs at least 2 elements.
	StartEndRatio float64
	// ArcLengthDerivatives rescales each input section's derivatives to
	// its arc length before evaluating.
	ArcLengthDerivatives bool
}

func (o *SampleOptions) withDefaults() SampleOptions {
	opts := SampleOptions{LengthFractionStart: 1.0, LengthFractionEnd: 1.0, StartEndRatio: 1.0}
	if o != nil {
		opts = *o
		if opts.LengthFractionStart == 0.0 {
			opts.LengthFractionStart = 1.0
		}
		if opts.LengthFractionEnd == 0.0 {
			opts.LengthFractionEnd = 1.0
		}
		if opts.StartEndRatio == 0.0 {
			opts.StartEndRatio = 1.0
		}
	}
	return opts
}

// SampleCurves redistributes points over the piecewise cubic Hermite
// curve through nx, nd1 so that element arc lengths follow the
// requested distribution. Derivatives are rescaled, not merely
// re-evaluated, to match the new spacing.
// Returns new points px, derivatives pd1, and the input element index
// pe, xi coordinate pxi and derivative scale factor psf of each sample,
// for interpolating partner fields over the same distribution.
func SampleCurves(nx, nd1 []Vec3, elementsCountOut int, options *SampleOptions) (
	px, pd1 []Vec3, pe []int, pxi, psf []float64) {
	elementsCountIn := len(nx) - 1
	if (elementsCountIn < 1) || (len(nd1) != elementsCountIn+1) || (elementsCountOut < 1) {
		panic("SampleCurves: invalid arguments")
	}
	var (
		opts       = options.withDefaults()
		lengths    = make([]float64, 1, elementsCountIn+1)
		nd1a, nd1b []Vec3
		length     float64
	)
	for e := 0; e < elementsCountIn; e++ {
		var arcLength float64
		if opts.ArcLengthDerivatives {
			arcLength = ComputeArcLengthRescaled(nx[e], nd1[e], nx[e+1], nd1[e+1])
			nd1a = append(nd1a, vecmath.SetMagnitude(nd1[e], arcLength))
			nd1b = append(nd1b, vecmath.SetMagnitude(nd1[e+1], arcLength))
		} else {
			arcLength = ArcLength(nx[e], nd1[e], nx[e+1], nd1[e+1])
		}
		length += arcLength
		lengths = append(lengths, length)
	}
	var (
		proportionEnd    = 2.0 / (opts.StartEndRatio + 1.0)
		proportionStart  = opts.StartEndRatio * proportionEnd
		elementLengthMid float64
	)
	if elementsCountOut == 1 {
		elementLengthMid = length
	} else {
		elementLengthMid = (length - opts.AddLengthStart - opts.AddLengthEnd) /
			(float64(elementsCountOut) - 2.0 +
				proportionStart*opts.LengthFractionStart + proportionEnd*opts.LengthFractionEnd)
	}
	var (
		elementLengthProportionStart = proportionStart * opts.LengthFractionStart * elementLengthMid
		elementLengthProportionEnd   = proportionEnd * opts.LengthFractionEnd * elementLengthMid
		elementLengths               = make([]float64, elementsCountOut)
	)
	if (elementsCountOut == 1) || (opts.StartEndRatio == 1.0) {
		for eOut := range elementLengths {
			elementLengths[eOut] = elementLengthMid
		}
	} else {
		for eOut := range elementLengths {
			xi := float64(eOut) / float64(elementsCountOut-1)
			elementLengths[eOut] = ((1.0-xi)*proportionStart + xi*proportionEnd) * elementLengthMid
		}
	}
	// middle derivative magnitudes, then fix up ends
	nodeDerivativeMagnitudes := make([]float64, elementsCountOut+1)
	for n := 1; n < elementsCountOut; n++ {
		nodeDerivativeMagnitudes[n] = 0.5 * (elementLengths[n-1] + elementLengths[n])
	}
	elementLengths[0] = opts.AddLengthStart + elementLengthProportionStart
	elementLengths[elementsCountOut-1] = opts.AddLengthEnd + elementLengthProportionEnd
	if elementsCountOut == 1 {
		nodeDerivativeMagnitudes[0] = elementLengths[0]
		nodeDerivativeMagnitudes[1] = elementLengths[0]
	} else {
		nodeDerivativeMagnitudes[0] = elementLengths[0]*2.0 - nodeDerivativeMagnitudes[1]
		nodeDerivativeMagnitudes[elementsCountOut] =
			elementLengths[elementsCountOut-1]*2.0 - nodeDerivativeMagnitudes[elementsCountOut-1]
	}

	var (
		distance float64
		e        int
	)
	for eOut := 0; eOut < elementsCountOut; eOut++ {
		for e < elementsCountIn {
			if distance < lengths[e+1] {
				var (
					partDistance = distance - lengths[e]
					x, d1        Vec3
					xi           float64
				)
				if opts.ArcLengthDerivatives {
					xi = partDistance / (lengths[e+1] - lengths[e])
					x = InterpolateCubicHermite(nx[e], nd1a[e], nx[e+1], nd1b[e], xi)
					d1 = InterpolateCubicHermiteDerivative(nx[e], nd1a[e], nx[e+1], nd1b[e], xi)
				} else {
					x, d1, _, xi = PointAtArcDistance(nx[e:e+2], nd1[e:e+2], partDistance)
				}
				sf := nodeDerivativeMagnitudes[eOut] / vecmath.Magnitude(d1)
				px = append(px, x)
				pd1 = append(pd1, vecmath.Scale(d1, sf))
				pe = append(pe, e)
				pxi = append(pxi, xi)
				psf = append(psf, sf)
				break
			}
			e++
		}
		distance += elementLengths[eOut]
	}
	// last node is the curve end point exactly
	endSf := nodeDerivativeMagnitudes[elementsCountOut] / vecmath.Magnitude(nd1[elementsCountIn])
	px = append(px, nx[elementsCountIn])
	pd1 = append(pd1, vecmath.Scale(nd1[elementsCountIn], endSf))
	pe = append(pe, elementsCountIn-1)
	pxi = append(pxi, 1.0)
	psf = append(psf, endSf)
	return
}

// InterpolateSampleLinear linearly interpolates a partner field v at
// the element indexes and xi coordinates returned by SampleCurves.
// Used for quantities that hint at a frame rather than being physical
// tangents, such as path cross-axis derivatives.
func InterpolateSampleLinear(v []Vec3, pe []int, pxi []float64) (vOut []Vec3) {
	if len(v) < 2 {
		panic("InterpolateSampleLinear: not enough data")
	}
	if (len(pe) == 0) || (len(pxi) != len(pe)) {
		panic("InterpolateSampleLinear: mismatched element, xi")
	}
	vOut = make([]Vec3, len(pe))
	for n := range pe {
		wp := pxi[n]
		wm := 1.0 - wp
		vOut[n] = vecmath.AddScaled(v[pe[n]], v[pe[n]+1], wm, wp)
	}
	return
}
