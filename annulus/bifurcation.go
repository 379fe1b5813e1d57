package annulus

import (
	"github.com/anatomesh/tubegen/interpolation"
	"github.com/anatomesh/tubegen/vecmath"
)

// TriplePoint computes the position and two derivatives of a point
// where three tube walls meet. p1x..p3x are the adjacent ring points on
// each tube, numbered anticlockwise around the triple point, p1d..p3d
// their derivatives directed away from it. The position is the mean of
// the three pairwise mid-curve points; the returned d1 points from the
// triple point towards p2 and d2 towards p3, blended from the three
// smoothed directions flattened into the plane normal to the mean of
// the pairwise curve normals, so both remain tangent-continuous with
// all three meeting curves.
func TriplePoint(p1x, p1d, p2x, p2d, p3x, p3d Vec3) (x, d1, d2 Vec3) {
	var (
		trx1 = interpolation.InterpolateCubicHermite(p1x, vecmath.Scale(p1d, -2.0),
			p2x, vecmath.Scale(p2d, 2.0), 0.5)
		trx2 = interpolation.InterpolateCubicHermite(p2x, vecmath.Scale(p2d, -2.0),
			p3x, vecmath.Scale(p3d, 2.0), 0.5)
		trx3 = interpolation.InterpolateCubicHermite(p3x, vecmath.Scale(p3d, -2.0),
			p1x, vecmath.Scale(p1d, 2.0), 0.5)
	)
	x = vecmath.Scale(vecmath.Add(vecmath.Add(trx1, trx2), trx3), 1.0/3.0)
	var (
		td1  = interpolation.InterpolateLagrangeHermiteDerivative(x, p1x, p1d, 0.0)
		td2  = interpolation.InterpolateLagrangeHermiteDerivative(x, p2x, p2d, 0.0)
		td3  = interpolation.InterpolateLagrangeHermiteDerivative(x, p3x, p3d, 0.0)
		n12  = vecmath.Cross(td1, td2)
		n23  = vecmath.Cross(td2, td3)
		n31  = vecmath.Cross(td3, td1)
		norm = vecmath.Normalise(vecmath.Add(vecmath.Add(n12, n23), n31))
		sd1  = smoothTowards(x, td1, norm, p1x, p1d)
		sd2  = smoothTowards(x, td2, norm, p2x, p2d)
		sd3  = smoothTowards(x, td3, norm, p3x, p3d)
	)
	d1 = vecmath.Scale(vecmath.Sub(sd2, vecmath.Add(sd3, sd1)), 0.5)
	d2 = vecmath.Scale(vecmath.Sub(sd3, vecmath.Add(sd1, sd2)), 0.5)
	return
}

// smoothTowards returns the triple-point-end derivative of the smoothed
// two-point curve from x to px, with the start direction fixed in the
// wall plane (td flattened normal to norm) and the far derivative held.
func smoothTowards(x, td, norm, px, pd Vec3) Vec3 {
	direction := vecmath.Normalise(vecmath.Cross(norm, vecmath.Cross(td, norm)))
	return interpolation.SmoothDerivativesLine(
		[]Vec3{x, px}, []Vec3{direction, pd},
		interpolation.SmoothOptions{FixStartDirection: true, FixEndDerivative: true})[0]
}

// MakeBifurcationPoints builds the two interior rows of a bifurcation:
// the rim row joining the parent ring to the outward halves of both
// child rings, and the crotch row joining the two child rings between
// the triple points. Conventions: parent d2 points towards the
// bifurcation, child d2 away from it; ring index 0 of parent, child 1
// and child 2 all meet at the first triple point, and child 2 runs
// along the crotch first (indices 0..C1C2Count) then back along the
// rim.
//
// The rim row has PaCount nodes with the triple points at indices 0 and
// Pac1Count; the crotch row has C1C2Count+1 nodes running from the
// second triple point to the first, sharing both with the rim. Around
// derivatives are smoothed along two loop curves through the triple
// points with the directions held at their ends, so the rim d1 matches
// the triple-point derivatives exactly there.
func MakeBifurcationPoints(pa, c1, c2 Ring) (rim, crotch Ring, topo Topology, err error) {
	topo, err = NewTopology(pa.Count(), c1.Count(), c2.Count())
	if err != nil {
		return
	}
	var (
		pac1X, pac1D2 = midCurvePoints(pa, c1, topo.Pac1Count, func(n int) (int, int) {
			return n % topo.PaCount, n % topo.C1Count
		})
		pac2X, pac2D2 = midCurvePoints(pa, c2, topo.Pac2Count, func(n int) (int, int) {
			return (topo.Pac1Count + n) % topo.PaCount, (topo.C1C2Count + n) % topo.C2Count
		})
		// crotch curves run from child 2 into child 1, against child 2's
		// outward derivative
		c1c2X, c1c2D2 = midCurvePoints(reversedOffRing(c2), c1, topo.C1C2Count, func(n int) (int, int) {
			return (topo.C1C2Count - n) % topo.C2Count, (topo.Pac1Count + n) % topo.C1Count
		})
	)
	hex1x, hex1d1, hex1d2 := TriplePoint(
		pa.X[0], vecmath.Scale(pa.D2[0], -1.0),
		c1.X[0], c1.D2[0],
		c2.X[0], c2.D2[0])
	hex2x, hex2d1, hex2d2 := TriplePoint(
		pa.X[topo.Pac1Count], vecmath.Scale(pa.D2[topo.Pac1Count], -1.0),
		c2.X[topo.C1C2Count], c2.D2[topo.C1C2Count],
		c1.X[topo.Pac1Count], c1.D2[topo.Pac1Count])

	// smooth the two around loops through the triple points to get d1
	var (
		loopOpts = interpolation.SmoothOptions{
			FixStartDirection: true,
			FixEndDirection:   true,
			MagnitudeScaling:  interpolation.HarmonicMean,
		}
		loop1X    = append(append([]Vec3{hex2x}, pac2X[1:topo.Pac2Count]...), hex1x)
		loop1Seed = make([]Vec3, len(loop1X))
		loop2X    = append(append([]Vec3{hex1x}, pac1X[1:topo.Pac1Count]...), hex2x)
		loop2Seed = make([]Vec3, len(loop2X))
	)
	loop1Seed[0] = vecmath.Scale(hex2d2, -1.0)
	loop1Seed[len(loop1Seed)-1] = hex1d1
	loop1D1 := interpolation.SmoothDerivativesLine(loop1X, loop1Seed, loopOpts)
	loop2Seed[0] = vecmath.Scale(hex1d2, -1.0)
	loop2Seed[len(loop2Seed)-1] = hex2d1
	loop2D1 := interpolation.SmoothDerivativesLine(loop2X, loop2Seed, loopOpts)

	// rim row: triple points with the pac1/pac2 mid points between them
	rim.X = append(rim.X, hex1x)
	rim.X = append(rim.X, pac1X[1:topo.Pac1Count]...)
	rim.X = append(rim.X, hex2x)
	rim.X = append(rim.X, pac2X[1:topo.Pac2Count]...)
	rim.D1 = append(rim.D1, loop1D1[len(loop1D1)-1])
	rim.D1 = append(rim.D1, loop2D1[1:]...)
	rim.D1 = append(rim.D1, loop1D1[1:len(loop1D1)-1]...)
	rim.D2 = append(rim.D2, vecmath.Scale(loop2D1[0], -1.0))
	rim.D2 = append(rim.D2, pac1D2[1:topo.Pac1Count]...)
	rim.D2 = append(rim.D2, vecmath.Scale(loop1D1[0], -1.0))
	rim.D2 = append(rim.D2, pac2D2[1:topo.Pac2Count]...)

	// crotch row: second triple point through the c1c2 mid points to the
	// first, tangential derivative smoothed with the end derivatives held
	// to the triple-point blends so it leaves both walls continuously
	crotch.X = append(crotch.X, hex2x)
	crotch.X = append(crotch.X, c1c2X[1:topo.C1C2Count]...)
	crotch.X = append(crotch.X, hex1x)
	seed := make([]Vec3, len(crotch.X))
	seed[0] = vecmath.Add(hex2d1, hex2d2)
	seed[len(seed)-1] = vecmath.Scale(vecmath.Add(hex1d1, hex1d2), -1.0)
	crotch.D1 = interpolation.SmoothDerivativesLine(crotch.X, seed, interpolation.SmoothOptions{
		FixStartDerivative: true,
		FixEndDerivative:   true,
		MagnitudeScaling:   interpolation.HarmonicMean,
	})
	crotch.D2 = append(crotch.D2, c1c2D2...)
	return
}

// midCurvePoints evaluates the halfway point and derivative of the
// cubic Hermite curve joining paired points of two rings, for node
// count+1 pairs selected by pair. Derivatives are doubled so each half
// of the curve spans one element.
func midCurvePoints(r1, r2 Ring, count int, pair func(n int) (n1, n2 int)) (px, pd2 []Vec3) {
	for n := 0; n <= count; n++ {
		i1, i2 := pair(n)
		var (
			d1 = vecmath.Scale(r1.D2[i1], 2.0)
			d2 = vecmath.Scale(r2.D2[i2], 2.0)
		)
		px = append(px, interpolation.InterpolateCubicHermite(r1.X[i1], d1, r2.X[i2], d2, 0.5))
		pd2 = append(pd2, vecmath.Scale(
			interpolation.InterpolateCubicHermiteDerivative(r1.X[i1], d1, r2.X[i2], d2, 0.5), 0.5))
	}
	return
}

// reversedOffRing returns the ring with its off-ring derivatives
// negated, used where a child ring's outward derivative must point into
// a mid curve.
func reversedOffRing(r Ring) Ring {
	d2 := make([]Vec3, len(r.D2))
	for n := range d2 {
		d2[n] = vecmath.Scale(r.D2[n], -1.0)
	}
	return Ring{X: r.X, D1: r.D1, D2: d2}
}
