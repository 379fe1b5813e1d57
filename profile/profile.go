package profile

import (
	"math"

	"github.com/anatomesh/tubegen/interpolation"
	"github.com/anatomesh/tubegen/vecmath"
)

// ZoneID labels which zone of a cross-section a point belongs to.
type ZoneID int

const (
	ZoneNarrowBand ZoneID = iota
	ZoneRemainder
)

// Point is one node of a 2-D cross-section profile (z = 0), with its
// derivative along the profile curve, the zone it lies in, and whether
// the element starting at this point transitions between zones.
// Transition elements get one-sided curvature treatment downstream so
// derivative discontinuities at zone boundaries are not blended across.
type Point struct {
	X, D1      Vec3
	Zone       ZoneID
	Transition bool
}

// Zones describes a zoned profile: SectorsCount identical sectors, each
// holding one narrow band of width NarrowBandWidth centred on the
// sector start, with the rest of the sector as remainder.
// Input is assumed pre-clamped and self-consistent: element counts even
// and >= 2, NarrowBandWidth within the sector half-circumference.
type Zones struct {
	Shape                   Shape
	Radius                  float64
	CornerRadiusFactor      float64
	NarrowBandWidth         float64
	SectorsCount            int
	ElementsCountNarrowBand int
	ElementsCountRemainder  int
	// SampleResolution is the dense element count used to approximate
	// the shape before arc-length resampling. Zero selects the default.
	SampleResolution int
}

const defaultSampleResolution = 120

// ElementsCountAround returns the total element count of the assembled
// profile.
func (z Zones) ElementsCountAround() int {
	return z.SectorsCount * (z.ElementsCountNarrowBand + z.ElementsCountRemainder)
}

// Generate builds the arc-length-ordered profile points for the zone
// description, starting at the middle of the first narrow band on the
// positive x-axis and proceeding anticlockwise.
func Generate(z Zones) []Point {
	var (
		resolution = z.SampleResolution
	)
	if resolution == 0 {
		resolution = defaultSampleResolution
	}
	var xLoop, d1Loop []Vec3
	if z.Shape == RoundedTriangle {
		xLoop, d1Loop = roundedTriangleLoop(z.Radius, z.CornerRadiusFactor, resolution)
	} else {
		xLoop, d1Loop = CircleLoop(Vec3{}, Vec3{z.Radius, 0.0, 0.0}, Vec3{0.0, z.Radius, 0.0},
			resolution, 0.0)
	}
	var (
		arcLength = interpolation.CurvesLength(xLoop, d1Loop, true)
		arcEnd    = arcLength / float64(2*z.SectorsCount)
	)
	// open out the loop so arc distances beyond the first dense element
	// can be evaluated
	nx := append(append([]Vec3{}, xLoop...), xLoop[0])
	nd1 := append(append([]Vec3{}, d1Loop...), d1Loop[0])

	arcDistanceBandEdge := LocateZoneBoundary(nx, nd1, z.NarrowBandWidth, 0.0, arcEnd)
	xBand, d1Band := sampleNarrowBand(nx, nd1, arcDistanceBandEdge, z.ElementsCountNarrowBand)
	xRem, d1Rem := sampleRemainder(nx, nd1, xBand[len(xBand)-1], d1Band[len(d1Band)-1],
		arcEnd, arcDistanceBandEdge, z.ElementsCountRemainder)

	halfX := append(xBand, xRem[1:]...)
	halfD1 := append(d1Band, d1Rem[1:]...)
	fullX, fullD1 := assembleFromHalfSector(halfX, halfD1, z.SectorsCount)
	return tagZones(fullX, fullD1, z)
}

// LocateZoneBoundary bisects for the arc distance at which the profile
// curve's lateral (y) coordinate crosses half the narrow band width.
// Root non-convergence is non-fatal: the last estimate is used.
func LocateZoneBoundary(nx, nd1 []Vec3, narrowBandWidth, arcStart, arcEnd float64) float64 {
	arcDistance, _ := interpolation.FindArcDistanceForCoordinate(nx, nd1, 1,
		narrowBandWidth*0.5, arcStart, arcEnd)
	return arcDistance
}

// sampleNarrowBand places equally sized elements over the half narrow
// band from the sector start to the band edge.
func sampleNarrowBand(nx, nd1 []Vec3, arcDistanceBandEdge float64, elementsCountNarrowBand int) (
	px, pd1 []Vec3) {
	arcDistancePerElement := arcDistanceBandEdge / (float64(elementsCountNarrowBand) * 0.5)
	for e := 0; e <= elementsCountNarrowBand/2; e++ {
		arcDistance := arcDistancePerElement * float64(e)
		x, d1, _, _ := interpolation.PointAtArcDistance(nx, nd1, arcDistance)
		px = append(px, x)
		pd1 = append(pd1, vecmath.SetMagnitude(d1, arcDistancePerElement))
	}
	return
}

// sampleRemainder places elements over the rest of the half sector,
// blending element size away from the narrow-band edge so the
// transition element matches the band derivative.
func sampleRemainder(nx, nd1 []Vec3, xBandLast, d1BandLast Vec3, arcEnd,
	arcDistanceBandEdge float64, elementsCountRemainder int) (px, pd1 []Vec3) {
	var (
		length           = arcEnd - arcDistanceBandEdge
		elementsCountOut = elementsCountRemainder / 2
		addLengthStart   = 0.5 * vecmath.Magnitude(d1BandLast)
		elementLengthMid = (length - addLengthStart) / (float64(elementsCountOut) - 1.0 + 0.5)
		elementLengths   = make([]float64, elementsCountOut)
	)
	for e := range elementLengths {
		elementLengths[e] = elementLengthMid
	}
	elementLengths[0] = addLengthStart + 0.5*elementLengthMid
	elementLengths[elementsCountOut-1] = elementLengthMid

	px = append(px, xBandLast)
	pd1 = append(pd1, vecmath.SetMagnitude(d1BandLast, elementLengths[0]))
	arcDistance := arcDistanceBandEdge
	for e := 0; e < elementsCountOut; e++ {
		arcDistance += elementLengths[e]
		x, d1, _, _ := interpolation.PointAtArcDistance(nx, nd1, arcDistance)
		mag := elementLengths[e]
		if e == 0 {
			mag = elementLengths[1]
		}
		px = append(px, x)
		pd1 = append(pd1, vecmath.SetMagnitude(d1, mag))
	}
	return
}

// assembleFromHalfSector mirrors the first half sector across the
// x-axis (negating the lateral position component and, to preserve
// orientation, the tangential derivative components), rotates it into
// the second half, then rotates whole sectors into place.
func assembleFromHalfSector(halfX, halfD1 []Vec3, sectorsCount int) (px, pd1 []Vec3) {
	var (
		rotAng  = 2.0 * math.Pi / float64(sectorsCount)
		half2X  []Vec3
		half2D1 []Vec3
	)
	for n := 1; n < len(halfX); n++ {
		idx := len(halfX) - 1 - n
		x := halfX[idx]
		d1 := halfD1[idx]
		xReflect := Vec3{x[0], -x[1], x[2]}
		d1Reflect := Vec3{d1[0], -d1[1], d1[2]}
		half2X = append(half2X, vecmath.RotateAboutZAxis(xReflect, rotAng))
		half2D1 = append(half2D1, vecmath.Scale(vecmath.RotateAboutZAxis(d1Reflect, rotAng), -1.0))
	}
	sectorX := append(append([]Vec3{}, halfX...), half2X...)
	sectorD1 := append(append([]Vec3{}, halfD1...), half2D1...)
	// sector's last point is the next sector's first; drop it
	px = append(px, sectorX[:len(sectorX)-1]...)
	pd1 = append(pd1, sectorD1[:len(sectorD1)-1]...)
	for i := 1; i < sectorsCount; i++ {
		ang := rotAng * float64(i)
		for n := 0; n < len(sectorX)-1; n++ {
			px = append(px, vecmath.RotateAboutZAxis(sectorX[n], ang))
			pd1 = append(pd1, vecmath.RotateAboutZAxis(sectorD1[n], ang))
		}
	}
	return
}

// tagZones assigns zone ids and transition flags around the assembled
// profile. Within each sector the first and last half narrow band
// elements surround the sector start; the remainder elements abutting
// the band edge are transition elements.
func tagZones(px, pd1 []Vec3, z Zones) []Point {
	var (
		points    = make([]Point, len(px))
		perSector = z.ElementsCountNarrowBand + z.ElementsCountRemainder
		halfBand  = z.ElementsCountNarrowBand / 2
	)
	for n := range points {
		var (
			inSector = n % perSector
			zone     = ZoneRemainder
		)
		if (inSector < halfBand) || (inSector >= perSector-halfBand) {
			zone = ZoneNarrowBand
		}
		// elements starting at the band edge or ending at the next band
		// edge interpolate between zones
		transition := (inSector == halfBand) || (inSector == perSector-halfBand-1)
		points[n] = Point{X: px[n], D1: pd1[n], Zone: zone, Transition: transition}
	}
	return points
}

// ZoneIDs returns the parallel zone-id-per-around-index array.
func ZoneIDs(points []Point) []ZoneID {
	ids := make([]ZoneID, len(points))
	for n, p := range points {
		ids[n] = p.Zone
	}
	return ids
}

// TransitionFlags returns the parallel transition-element boolean
// array, indexed by the element starting at each around index.
func TransitionFlags(points []Point) []bool {
	flags := make([]bool, len(points))
	for n, p := range points {
		flags[n] = p.Transition
	}
	return flags
}
