package tube

import (
	"fmt"

	"github.com/anatomesh/tubegen/interpolation"
	"github.com/anatomesh/tubegen/vecmath"
)

// minDerivativeScale is the floor applied to curvature-correction
// factors. A factor at or below zero means the offset surface has
// crossed the centre of curvature and the element would be degenerate
// or self-intersecting; clamping keeps the geometry usable and a
// diagnostic is printed so the caller can reduce thickness or
// curvature.
const minDerivativeScale = 0.01

// ExtrudeWall offsets the inner surface outward through the wall
// thickness, producing coordinates and derivatives for every
// through-wall layer. wallThickness holds one value per longitudinal
// sample. relativeThickness optionally gives each layer's share of the
// wall (nil for uniform layers). transition marks around elements
// spanning a zone boundary, where around-curvature is taken one-sided
// to avoid blending across the derivative discontinuity.
func ExtrudeWall(inner *InnerSurface, wallThickness []float64, elementsCountThroughWall int,
	relativeThickness []float64, transition []bool) *Field3D {
	var (
		elementsCountAround = inner.ElementsCountAround
		elementsCountAlong  = inner.ElementsCountAlong
		field               = NewField3D(elementsCountAround, elementsCountAlong, elementsCountThroughWall)
		xOuter              = make([]Vec3, len(inner.X))
		curvatureAround     = make([]float64, len(inner.X))
		curvatureAlong      = make([]float64, len(inner.X))
	)
	if len(wallThickness) != elementsCountAlong+1 {
		panic("ExtrudeWall: need one wall thickness per longitudinal sample")
	}
	if transition == nil {
		transition = make([]bool, elementsCountAround)
	}
	xi3List := layerXi(elementsCountThroughWall, relativeThickness)

	for n2 := 0; n2 <= elementsCountAlong; n2++ {
		thickness := wallThickness[n2]
		for n1 := 0; n1 < elementsCountAround; n1++ {
			n := inner.Index(n2, n1)
			norm := inner.D3Unit[n]
			xOuter[n] = vecmath.Add(inner.X[n], vecmath.Scale(norm, thickness))

			prevIdx := inner.Index(n2, (n1-1+elementsCountAround)%elementsCountAround)
			nextIdx := inner.Index(n2, (n1+1)%elementsCountAround)
			kappam := interpolation.CurvatureSimple(inner.X[prevIdx], inner.D1[prevIdx],
				inner.X[n], inner.D1[n], 1.0)
			kappap := interpolation.CurvatureSimple(inner.X[n], inner.D1[n],
				inner.X[nextIdx], inner.D1[nextIdx], 0.0)
			prevTransition := transition[(n1-1+elementsCountAround)%elementsCountAround]
			switch {
			case transition[n1]:
				curvatureAround[n] = kappam
			case prevTransition:
				curvatureAround[n] = kappap
			default:
				curvatureAround[n] = 0.5 * (kappam + kappap)
			}
			curvatureAlong[n] = alongCurvature(inner, n2, n1)
		}
	}

	for n3 := 0; n3 <= elementsCountThroughWall; n3++ {
		for n2 := 0; n2 <= elementsCountAlong; n2++ {
			var (
				thickness = wallThickness[n2]
				xi3       = xi3List[n3]
			)
			for n1 := 0; n1 < elementsCountAround; n1++ {
				var (
					n     = inner.Index(n2, n1)
					out   = field.Index(n3, n2, n1)
					norm  = inner.D3Unit[n]
					dWall = vecmath.Scale(norm, thickness)
				)
				x := interpolation.InterpolateCubicHermite(inner.X[n], dWall, xOuter[n], dWall, xi3)
				field.X[out] = x

				factor1 := clampScale(1.0+thickness*xi3*curvatureAround[n], "around")
				field.D1[out] = vecmath.Scale(inner.D1[n], factor1)

				distance := vecmath.Magnitude(vecmath.Sub(x, inner.X[n]))
				factor2 := clampScale(1.0-curvatureAlong[n]*distance, "along")
				field.D2[out] = vecmath.Scale(inner.D2[n], factor2)

				layerShare := 1.0 / float64(elementsCountThroughWall)
				if relativeThickness != nil {
					layerShare = relativeThickness[min(n3, elementsCountThroughWall-1)]
				}
				field.D3[out] = vecmath.Scale(norm, thickness*layerShare)
			}
		}
	}
	return field
}

// layerXi returns the xi3 coordinate of each through-wall layer.
func layerXi(elementsCountThroughWall int, relativeThickness []float64) []float64 {
	xi3List := make([]float64, elementsCountThroughWall+1)
	if relativeThickness != nil {
		if len(relativeThickness) != elementsCountThroughWall {
			panic("ExtrudeWall: need one relative thickness per through-wall element")
		}
		xi3 := 0.0
		for n3 := 0; n3 < elementsCountThroughWall; n3++ {
			xi3 += relativeThickness[n3]
			xi3List[n3+1] = xi3
		}
	} else {
		for n3 := range xi3List {
			xi3List[n3] = float64(n3) / float64(elementsCountThroughWall)
		}
	}
	return xi3List
}

// alongCurvature is the along-tube curvature at a point resolved in the
// through-wall direction, averaged over the neighbouring elements at
// interior samples.
func alongCurvature(inner *InnerSurface, n2, n1 int) float64 {
	var (
		n      = inner.Index(n2, n1)
		radial = vecmath.Normalise(inner.D3Unit[n])
	)
	switch n2 {
	case 0:
		np := inner.Index(n2+1, n1)
		return interpolation.Curvature(inner.X[n], inner.D2[n], inner.X[np], inner.D2[np], radial, 0.0)
	case inner.ElementsCountAlong:
		nm := inner.Index(n2-1, n1)
		return interpolation.Curvature(inner.X[nm], inner.D2[nm], inner.X[n], inner.D2[n], radial, 1.0)
	default:
		nm := inner.Index(n2-1, n1)
		np := inner.Index(n2+1, n1)
		return 0.5 * (interpolation.Curvature(inner.X[nm], inner.D2[nm], inner.X[n], inner.D2[n], radial, 1.0) +
			interpolation.Curvature(inner.X[n], inner.D2[n], inner.X[np], inner.D2[np], radial, 0.0))
	}
}

func clampScale(factor float64, direction string) float64 {
	if factor < minDerivativeScale {
		fmt.Printf("ExtrudeWall: %s curvature correction factor %g clamped; "+
			"wall too thick for curvature\n", direction, factor)
		return minDerivativeScale
	}
	return factor
}
