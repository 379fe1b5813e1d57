package centralpath

import (
	"math"

	"github.com/anatomesh/tubegen/vecmath"
)

// Frame is a right-handed orthonormal basis at a path sample.
type Frame struct {
	Tangent, Normal, Binormal Vec3
}

const parallelTol = 1.0e-12

// PropagateFrames computes a frame at each sample by discrete parallel
// transport: frame[i] is frame[i-1] rotated by the minimal rotation
// taking tangent[i-1] onto tangent[i]. Minimal relative rotation keeps
// cross-sections from spiralling along curving paths; any fixed
// reference frame would not.
func PropagateFrames(samples []PathSample) []Frame {
	frames := make([]Frame, len(samples))
	if len(samples) == 0 {
		return frames
	}
	frames[0] = seedFrame(samples[0].UnitTangent())
	for i := 1; i < len(samples); i++ {
		frames[i] = transportFrame(frames[i-1], samples[i].UnitTangent())
	}
	return frames
}

// seedFrame builds the initial frame from the world-up axis, falling
// back to the x-axis when the tangent is near vertical.
func seedFrame(tangent Vec3) Frame {
	seed := Vec3{0.0, 0.0, 1.0}
	cp := vecmath.Cross(tangent, seed)
	if vecmath.Magnitude(cp) < parallelTol {
		seed = Vec3{1.0, 0.0, 0.0}
		cp = vecmath.Cross(tangent, seed)
	}
	binormal := vecmath.Normalise(cp)
	normal := vecmath.Cross(binormal, tangent)
	return Frame{Tangent: tangent, Normal: normal, Binormal: binormal}
}

// transportFrame rotates prev by the angle between its tangent and the
// new tangent, about their mutual perpendicular. Parallel tangents keep
// the previous normal; antiparallel tangents flip 180 degrees about the
// previous normal, which is orthogonal to both tangents.
func transportFrame(prev Frame, tangent Vec3) Frame {
	cp := vecmath.Cross(prev.Tangent, tangent)
	magCp := vecmath.Magnitude(cp)
	if magCp < parallelTol {
		if vecmath.Dot(prev.Tangent, tangent) < 0.0 {
			return Frame{
				Tangent:  tangent,
				Normal:   prev.Normal,
				Binormal: vecmath.Cross(tangent, prev.Normal),
			}
		}
		return Frame{Tangent: tangent, Normal: prev.Normal, Binormal: prev.Binormal}
	}
	var (
		axis  = vecmath.Scale(cp, 1.0/magCp)
		dp    = vecmath.Dot(prev.Tangent, tangent)
		theta = math.Acos(math.Max(-1.0, math.Min(1.0, dp)))
		rot   = vecmath.AxisAngleRotationMatrix(axis, theta)
	)
	normal := vecmath.Normalise(vecmath.RotateVector(rot, prev.Normal))
	// re-orthogonalise against accumulated rounding
	normal = vecmath.Normalise(vecmath.Sub(normal, vecmath.Scale(tangent, vecmath.Dot(normal, tangent))))
	binormal := vecmath.Cross(tangent, normal)
	return Frame{Tangent: tangent, Normal: normal, Binormal: binormal}
}
