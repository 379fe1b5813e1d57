package annulus

import (
	"fmt"

	"github.com/anatomesh/tubegen/vecmath"
)

type Vec3 = vecmath.Vec3

// Ring is an ordered cyclic boundary ring: positions with around (d1)
// and off-ring (d2) derivatives, anticlockwise viewed from the parent
// side.
type Ring struct {
	X, D1, D2 []Vec3
}

func (r Ring) Count() int {
	return len(r.X)
}

// RingKind labels a node on a stitched row by its local topology, so
// the mesh builder resolves element collapse once per ring instead of
// re-deriving it at each element.
type RingKind int

const (
	RingRegular RingKind = iota
	// RingCollapsingLeft marks an element whose leading top node is a
	// triple point, collapsing that edge through the wall.
	RingCollapsingLeft
	// RingCollapsingRight is the mirror case on the trailing node.
	RingCollapsingRight
	// RingTriplePoint marks the node where three tube walls meet.
	RingTriplePoint
)

// Topology holds the around counts of the three rings meeting at a
// bifurcation and the derived partition counts. The partitions satisfy
// Pac1Count+Pac2Count = PaCount, Pac1Count+C1C2Count = C1Count and
// Pac2Count+C1C2Count = C2Count.
type Topology struct {
	PaCount, C1Count, C2Count       int
	Pac1Count, Pac2Count, C1C2Count int
}

// NewTopology derives the partition counts for the given ring counts.
// The count sum must be even and each partition must get at least one
// element.
func NewTopology(paCount, c1Count, c2Count int) (Topology, error) {
	if (paCount+c1Count+c2Count)%2 != 0 {
		return Topology{}, fmt.Errorf("annulus: ring counts %d,%d,%d have odd sum",
			paCount, c1Count, c2Count)
	}
	t := Topology{
		PaCount:   paCount,
		C1Count:   c1Count,
		C2Count:   c2Count,
		Pac1Count: (paCount + c1Count - c2Count) / 2,
	}
	t.Pac2Count = paCount - t.Pac1Count
	t.C1C2Count = c1Count - t.Pac1Count
	if (t.Pac1Count < 1) || (t.Pac2Count < 1) || (t.C1C2Count < 1) {
		return Topology{}, fmt.Errorf("annulus: ring counts %d,%d,%d give empty partition",
			paCount, c1Count, c2Count)
	}
	return t, nil
}

// RimKinds returns the node kind at each rim row index: triple points
// where the partitions meet, regular elsewhere.
func (t Topology) RimKinds() []RingKind {
	kinds := make([]RingKind, t.PaCount)
	kinds[0] = RingTriplePoint
	kinds[t.Pac1Count] = RingTriplePoint
	return kinds
}

// CrotchKinds returns the node kind at each crotch row index. The
// crotch row runs between the two triple points, which it shares with
// the rim row.
func (t Topology) CrotchKinds() []RingKind {
	kinds := make([]RingKind, t.C1C2Count+1)
	kinds[0] = RingTriplePoint
	kinds[t.C1C2Count] = RingTriplePoint
	return kinds
}
