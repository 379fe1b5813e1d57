package centralpath

import (
	"errors"
	"fmt"

	"github.com/anatomesh/tubegen/interpolation"
	"github.com/anatomesh/tubegen/vecmath"
)

type Vec3 = vecmath.Vec3

// ErrConfiguration reports an invalid path description or sample count.
var ErrConfiguration = errors.New("centralpath: invalid configuration")

// ControlPoint is one node of a central path: position, tangent
// derivative D1 and two cross-section derivatives D2, D3 hinting at the
// cross-axis frame. D1 must never be zero length.
type ControlPoint struct {
	X, D1, D2, D3 Vec3
}

// PathSample is an evenly-spaced-by-element sample of a central path.
// Samples are immutable once returned and owned by the caller.
type PathSample struct {
	X         Vec3
	D1        Vec3 // derivative along path, arc-length scaled
	D2, D3    Vec3 // linearly interpolated cross-axis hints
	ArcLength float64
}

// UnitTangent returns the normalised path tangent at the sample.
func (s PathSample) UnitTangent() Vec3 {
	return vecmath.Normalise(s.D1)
}

// Length returns the total arc length of the path.
func Length(path []ControlPoint) (length float64) {
	for e := 0; e < len(path)-1; e++ {
		length += interpolation.ArcLength(path[e].X, path[e].D1, path[e+1].X, path[e+1].D1)
	}
	return
}

// SamplePath returns elementsCount+1 samples over the path, spaced so
// element arc lengths are equal. Path x and d1 are resampled with
// arc-length derivative rescaling; d2 and d3 are propagated by linear
// interpolation on the curve parameter since they encode a frame hint,
// not a physical tangent.
func SamplePath(path []ControlPoint, elementsCount int) ([]PathSample, error) {
	if len(path) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 control points, got %d", ErrConfiguration, len(path))
	}
	if elementsCount < 1 {
		return nil, fmt.Errorf("%w: need at least 1 element, got %d", ErrConfiguration, elementsCount)
	}
	for i, cp := range path {
		if vecmath.Magnitude(cp.D1) == 0.0 {
			return nil, fmt.Errorf("%w: zero tangent at control point %d", ErrConfiguration, i)
		}
	}
	var (
		cx  = make([]Vec3, len(path))
		cd1 = make([]Vec3, len(path))
		cd2 = make([]Vec3, len(path))
		cd3 = make([]Vec3, len(path))
	)
	for i, cp := range path {
		cx[i] = cp.X
		cd1[i] = cp.D1
		cd2[i] = cp.D2
		cd3[i] = cp.D3
	}
	sx, sd1, pe, pxi, _ := interpolation.SampleCurves(cx, cd1, elementsCount,
		&interpolation.SampleOptions{ArcLengthDerivatives: true})
	sd2 := interpolation.InterpolateSampleLinear(cd2, pe, pxi)
	sd3 := interpolation.InterpolateSampleLinear(cd3, pe, pxi)

	samples := make([]PathSample, elementsCount+1)
	arcLength := 0.0
	for n := range samples {
		if n > 0 {
			arcLength += interpolation.ArcLength(sx[n-1], sd1[n-1], sx[n], sd1[n])
		}
		samples[n] = PathSample{X: sx[n], D1: sd1[n], D2: sd2[n], D3: sd3[n], ArcLength: arcLength}
	}
	return samples, nil
}
