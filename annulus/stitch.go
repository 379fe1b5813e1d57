package annulus

import (
	"fmt"

	"github.com/anatomesh/tubegen/interpolation"
	"github.com/anatomesh/tubegen/vecmath"
)

// StitchOptions controls StitchRings. The rescale flags blend the two
// end derivative magnitudes to their mean and scale both to match the
// per-curve arc length before sampling, for callers whose ring
// derivative magnitudes do not match the radial distance being spanned;
// without them visible stretching appears in the first and last radial
// elements.
type StitchOptions struct {
	ElementsCountRadial     int
	RescaleStartDerivatives bool
	RescaleEndDerivatives   bool
}

// Stitch is the sampled transition region between two boundary rings of
// equal around count: row 0 is the start ring, row ElementsCountRadial
// the end ring, with the interior rows in between. D1 runs around each
// row, D2 radially across rows. D3 is filled by StitchWall.
type Stitch struct {
	ElementsCountAround, ElementsCountRadial int
	X, D1, D2, D3                            []Vec3
}

func (s *Stitch) Index(row, n1 int) int {
	if (row < 0) || (row > s.ElementsCountRadial) || (n1 < 0) || (n1 >= s.ElementsCountAround) {
		panic(fmt.Sprintf("Stitch.Index: out of range (%d,%d)", row, n1))
	}
	return row*s.ElementsCountAround + n1
}

// Quads returns the element connectivity of the stitched grid as node
// index quadruples per Index, anticlockwise with the lower row first.
func (s *Stitch) Quads() [][4]int {
	var quads [][4]int
	for row := 0; row < s.ElementsCountRadial; row++ {
		for e := 0; e < s.ElementsCountAround; e++ {
			ep := (e + 1) % s.ElementsCountAround
			quads = append(quads, [4]int{
				s.Index(row, e), s.Index(row, ep), s.Index(row+1, ep), s.Index(row+1, e),
			})
		}
	}
	return quads
}

// StitchRings samples the transition mesh between two rings of equal
// around count. Each around index gets a cubic Hermite curve from the
// start point and its off-ring derivative to the end point and its
// off-ring derivative, resampled into ElementsCountRadial arc-length
// elements. Around derivatives on interior rows are blended from the
// two rings and loop-smoothed.
func StitchRings(start, end Ring, opts StitchOptions) *Stitch {
	var (
		elementsCountAround = start.Count()
		elementsCountRadial = opts.ElementsCountRadial
	)
	if end.Count() != elementsCountAround {
		panic(fmt.Sprintf("StitchRings: around counts differ (%d != %d)",
			elementsCountAround, end.Count()))
	}
	if elementsCountRadial < 1 {
		panic("StitchRings: need at least one radial element")
	}
	s := &Stitch{
		ElementsCountAround: elementsCountAround,
		ElementsCountRadial: elementsCountRadial,
		X:                   make([]Vec3, (elementsCountRadial+1)*elementsCountAround),
		D1:                  make([]Vec3, (elementsCountRadial+1)*elementsCountAround),
		D2:                  make([]Vec3, (elementsCountRadial+1)*elementsCountAround),
		D3:                  make([]Vec3, (elementsCountRadial+1)*elementsCountAround),
	}
	for n1 := 0; n1 < elementsCountAround; n1++ {
		var (
			sd = start.D2[n1]
			ed = end.D2[n1]
		)
		if opts.RescaleStartDerivatives || opts.RescaleEndDerivatives {
			var (
				mag      = 0.5 * (vecmath.Magnitude(sd) + vecmath.Magnitude(ed))
				sdScaled = vecmath.SetMagnitude(sd, mag)
				edScaled = vecmath.SetMagnitude(ed, mag)
				scaling  = interpolation.DerivativeScaling(start.X[n1], sdScaled, end.X[n1], edScaled)
			)
			if opts.RescaleStartDerivatives {
				sd = vecmath.Scale(sdScaled, scaling)
			}
			if opts.RescaleEndDerivatives {
				ed = vecmath.Scale(edScaled, scaling)
			}
		}
		px, pd, _, _, _ := interpolation.SampleCurves(
			[]Vec3{start.X[n1], end.X[n1]}, []Vec3{sd, ed}, elementsCountRadial,
			&interpolation.SampleOptions{ArcLengthDerivatives: true})
		for row := 0; row <= elementsCountRadial; row++ {
			n := s.Index(row, n1)
			s.X[n] = px[row]
			s.D2[n] = pd[row]
		}
	}
	// around derivatives: rings keep theirs; interior rows blend them by
	// row fraction then loop-smooth over the row positions
	for n1 := 0; n1 < elementsCountAround; n1++ {
		s.D1[s.Index(0, n1)] = start.D1[n1]
		s.D1[s.Index(elementsCountRadial, n1)] = end.D1[n1]
	}
	for row := 1; row < elementsCountRadial; row++ {
		var (
			xi   = float64(row) / float64(elementsCountRadial)
			rowX = make([]Vec3, elementsCountAround)
			seed = make([]Vec3, elementsCountAround)
		)
		for n1 := 0; n1 < elementsCountAround; n1++ {
			rowX[n1] = s.X[s.Index(row, n1)]
			seed[n1] = vecmath.AddScaled(start.D1[n1], end.D1[n1], 1.0-xi, xi)
		}
		smooth := interpolation.SmoothDerivativesLoop(rowX, seed, false, interpolation.ArithmeticMean)
		for n1 := 0; n1 < elementsCountAround; n1++ {
			s.D1[s.Index(row, n1)] = smooth[n1]
		}
	}
	return s
}

// StitchWall builds the through-wall layers of a stitched region by
// stitching the inner and outer ring pairs and linearly interpolating
// the layers between, with D3 set to the per-node through-wall step.
// Layer 0 is the inner stitch.
func StitchWall(innerStart, innerEnd, outerStart, outerEnd Ring,
	elementsCountThroughWall int, opts StitchOptions) []*Stitch {
	var (
		inner  = StitchRings(innerStart, innerEnd, opts)
		outer  = StitchRings(outerStart, outerEnd, opts)
		layers = make([]*Stitch, elementsCountThroughWall+1)
	)
	for n := range inner.X {
		step := vecmath.Scale(vecmath.Sub(outer.X[n], inner.X[n]),
			1.0/float64(elementsCountThroughWall))
		inner.D3[n] = step
		outer.D3[n] = step
	}
	layers[0] = inner
	layers[elementsCountThroughWall] = outer
	for n3 := 1; n3 < elementsCountThroughWall; n3++ {
		var (
			xi    = float64(n3) / float64(elementsCountThroughWall)
			layer = &Stitch{
				ElementsCountAround: inner.ElementsCountAround,
				ElementsCountRadial: inner.ElementsCountRadial,
				X:                   make([]Vec3, len(inner.X)),
				D1:                  make([]Vec3, len(inner.X)),
				D2:                  make([]Vec3, len(inner.X)),
				D3:                  make([]Vec3, len(inner.X)),
			}
		)
		for n := range inner.X {
			layer.X[n] = vecmath.AddScaled(inner.X[n], outer.X[n], 1.0-xi, xi)
			layer.D1[n] = vecmath.AddScaled(inner.D1[n], outer.D1[n], 1.0-xi, xi)
			layer.D2[n] = vecmath.AddScaled(inner.D2[n], outer.D2[n], 1.0-xi, xi)
			layer.D3[n] = inner.D3[n]
		}
		layers[n3] = layer
	}
	return layers
}
