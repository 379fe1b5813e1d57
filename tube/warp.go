package tube

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/anatomesh/tubegen/centralpath"
	"github.com/anatomesh/tubegen/interpolation"
	"github.com/anatomesh/tubegen/profile"
	"github.com/anatomesh/tubegen/vecmath"
)

// WarpProfiles maps per-sample 2-D cross-section profiles into 3-D
// along the sampled central path, producing the inner surface point and
// derivative field. profiles holds one profile per longitudinal sample
// (repeat the same slice for a constant cross-section); all must share
// one around count.
//
// Each profile is rotated so its plane normal (z) lies along the sample
// tangent, spun about the tangent so its first node direction lies
// along the frame binormal, then translated to the sample position.
// The along-tube derivative d2 is then rebuilt per around index from
// the warped positions, since the tangent alone misrepresents spacing
// where the tube bends.
func WarpProfiles(profiles [][]profile.Point, samples []centralpath.PathSample,
	frames []centralpath.Frame) *InnerSurface {
	var (
		elementsCountAlong  = len(samples) - 1
		elementsCountAround = len(profiles[0])
		surface             = &InnerSurface{
			ElementsCountAround: elementsCountAround,
			ElementsCountAlong:  elementsCountAlong,
		}
	)
	if (len(profiles) != len(samples)) || (len(frames) != len(samples)) {
		panic("WarpProfiles: mismatched profiles, samples, frames")
	}

	// rotate and translate each ring into place
	for n2 := 0; n2 <= elementsCountAlong; n2++ {
		var (
			unitTangent = samples[n2].UnitTangent()
			rot1        = rotationOntoTangent(unitTangent)
			rot2        *mat.Dense
		)
		for n1 := 0; n1 < elementsCountAround; n1++ {
			p := profiles[n2][n1]
			x := vecmath.RotateVector(rot1, p.X)
			d1 := vecmath.RotateVector(rot1, p.D1)
			if n1 == 0 {
				rot2 = rotationAboutTangent(x, unitTangent, frames[n2].Binormal)
			}
			x = vecmath.RotateVector(rot2, x)
			d1 = vecmath.RotateVector(rot2, d1)
			surface.X = append(surface.X, vecmath.Add(x, samples[n2].X))
			surface.D1 = append(surface.D1, d1)
		}
	}

	surface.D2 = alongDerivatives(surface, samples)
	for n := range surface.X {
		surface.D3Unit = append(surface.D3Unit, vecmath.Normalise(vecmath.Cross(
			vecmath.Normalise(surface.D1[n]), vecmath.Normalise(surface.D2[n]))))
	}
	return surface
}

// rotationOntoTangent returns the minimal rotation taking the profile
// plane normal (z-axis) onto unitTangent. Parallel tangent is the
// identity; antiparallel flips about the x-axis.
func rotationOntoTangent(unitTangent Vec3) *mat.Dense {
	var (
		axis = Vec3{0.0, 0.0, 1.0}
		cp   = vecmath.Cross(axis, unitTangent)
	)
	if vecmath.Magnitude(cp) > 0.0 {
		theta := math.Acos(math.Max(-1.0, math.Min(1.0, vecmath.Dot(axis, unitTangent))))
		return vecmath.AxisAngleRotationMatrix(vecmath.Normalise(cp), theta)
	}
	if vecmath.Dot(axis, unitTangent) < 0.0 {
		return vecmath.AxisAngleRotationMatrix(Vec3{1.0, 0.0, 0.0}, math.Pi)
	}
	return vecmath.IdentityMatrix()
}

// rotationAboutTangent returns the rotation about unitTangent taking
// the warped first-node direction onto the frame binormal.
func rotationAboutTangent(firstNode, unitTangent, binormal Vec3) *mat.Dense {
	if vecmath.Magnitude(firstNode) == 0.0 {
		return vecmath.IdentityMatrix()
	}
	cp := vecmath.Cross(vecmath.Normalise(firstNode), binormal)
	if vecmath.Magnitude(cp) <= 1.0e-7 {
		if vecmath.Dot(vecmath.Normalise(firstNode), binormal) < 0.0 {
			return vecmath.AxisAngleRotationMatrix(unitTangent, math.Pi)
		}
		return vecmath.IdentityMatrix()
	}
	var (
		sign  = vecmath.Dot(unitTangent, vecmath.Normalise(cp))
		theta = math.Acos(math.Max(-1.0, math.Min(1.0,
			vecmath.Dot(vecmath.Normalise(firstNode), binormal))))
	)
	return vecmath.AxisAngleRotationMatrix(unitTangent, sign*theta)
}

// alongDerivatives builds d2 for every surface point: seed with the
// path tangent over the local element spacing, scale by path curvature
// resolved towards each point, then smooth a Hermite derivative line
// through the warped positions at each around index with both ends
// fixed.
func alongDerivatives(surface *InnerSurface, samples []centralpath.PathSample) []Vec3 {
	var (
		elementsCountAlong  = surface.ElementsCountAlong
		elementsCountAround = surface.ElementsCountAround
		seeded              = make([]Vec3, len(surface.X))
	)
	for n2 := 0; n2 <= elementsCountAlong; n2++ {
		var spacing float64
		switch n2 {
		case 0:
			spacing = samples[1].ArcLength - samples[0].ArcLength
		case elementsCountAlong:
			spacing = samples[n2].ArcLength - samples[n2-1].ArcLength
		default:
			spacing = 0.5 * (samples[n2+1].ArcLength - samples[n2-1].ArcLength)
		}
		unitTangent := samples[n2].UnitTangent()
		for n1 := 0; n1 < elementsCountAround; n1++ {
			n := surface.Index(n2, n1)
			// radial direction from path to point, projected normal to the
			// tangent
			v := vecmath.Sub(surface.X[n], samples[n2].X)
			vProjected := vecmath.Sub(v, vecmath.Scale(unitTangent, vecmath.Dot(v, unitTangent)))
			var radial Vec3
			if vecmath.Magnitude(vProjected) > 0.0 {
				radial = vecmath.Normalise(vProjected)
			}
			curvature := pathCurvature(samples, n2, radial)
			factor := 1.0 - curvature*vecmath.Magnitude(vProjected)
			seeded[n] = vecmath.Scale(unitTangent, spacing*factor)
		}
	}
	// smooth along each around-index line, ends held
	d2 := make([]Vec3, len(surface.X))
	for n1 := 0; n1 < elementsCountAround; n1++ {
		var nx, nd2 []Vec3
		for n2 := 0; n2 <= elementsCountAlong; n2++ {
			n := surface.Index(n2, n1)
			nx = append(nx, surface.X[n])
			nd2 = append(nd2, seeded[n])
		}
		smooth := interpolation.SmoothDerivativesLine(nx, nd2, interpolation.SmoothOptions{
			FixStartDerivative: true,
			FixEndDerivative:   true,
		})
		for n2 := 0; n2 <= elementsCountAlong; n2++ {
			d2[surface.Index(n2, n1)] = smooth[n2]
		}
	}
	return d2
}

// pathCurvature is the path curvature at sample n2 resolved along
// radial, averaging the curvatures of the neighbouring path elements at
// interior samples.
func pathCurvature(samples []centralpath.PathSample, n2 int, radial Vec3) float64 {
	last := len(samples) - 1
	switch n2 {
	case 0:
		return interpolation.Curvature(samples[0].X, samples[0].D1,
			samples[1].X, samples[1].D1, radial, 0.0)
	case last:
		return interpolation.Curvature(samples[last-1].X, samples[last-1].D1,
			samples[last].X, samples[last].D1, radial, 1.0)
	default:
		return 0.5 * (interpolation.Curvature(samples[n2-1].X, samples[n2-1].D1,
			samples[n2].X, samples[n2].D1, radial, 1.0) +
			interpolation.Curvature(samples[n2].X, samples[n2].D1,
				samples[n2+1].X, samples[n2+1].D1, radial, 0.0))
	}
}
