package annulus

// RingID names the rings and rows of a bifurcation region.
type RingID int

const (
	RingParent RingID = iota
	RingChild1
	RingChild2
	RingRim
	RingCrotch
)

// NodeRef identifies one node by its ring and around index. Crotch
// indices 0 and C1C2Count alias the rim triple points at indices
// Pac1Count and 0; the mesh builder is expected to merge them.
type NodeRef struct {
	Ring  RingID
	Index int
}

// Quad is one element face of the bifurcation surface: its corner nodes
// anticlockwise with the input-ring edge first, and the kind telling
// the mesh builder whether an edge collapses through the wall at a
// triple point.
type Quad struct {
	Nodes [4]NodeRef
	Kind  RingKind
}

// Connectivity lists the element faces joining each input ring to the
// rim and crotch rows.
func Connectivity(t Topology) (parent, child1, child2 []Quad) {
	parent = ringBand(RingParent, t.PaCount, func(n int) NodeRef {
		return NodeRef{RingRim, n % t.PaCount}
	}, t)
	child1 = ringBand(RingChild1, t.C1Count, func(n int) NodeRef {
		n = n % t.C1Count
		if n <= t.Pac1Count {
			return NodeRef{RingRim, n}
		}
		return NodeRef{RingCrotch, n - t.Pac1Count}
	}, t)
	child2 = ringBand(RingChild2, t.C2Count, func(n int) NodeRef {
		n = n % t.C2Count
		if n <= t.C1C2Count {
			return NodeRef{RingCrotch, t.C1C2Count - n}
		}
		return NodeRef{RingRim, (t.Pac1Count + n - t.C1C2Count) % t.PaCount}
	}, t)
	return
}

// ringBand builds the band of quads joining an input ring of count
// nodes to the row nodes selected by edge.
func ringBand(ring RingID, count int, edge func(n int) NodeRef, t Topology) []Quad {
	quads := make([]Quad, count)
	for e := 0; e < count; e++ {
		var (
			lead  = edge(e)
			trail = edge(e + 1)
			kind  = RingRegular
		)
		switch {
		case t.isTriplePoint(lead):
			kind = RingCollapsingLeft
		case t.isTriplePoint(trail):
			kind = RingCollapsingRight
		}
		quads[e] = Quad{
			Nodes: [4]NodeRef{
				{ring, e}, {ring, (e + 1) % count}, trail, lead,
			},
			Kind: kind,
		}
	}
	return quads
}

func (t Topology) isTriplePoint(n NodeRef) bool {
	switch n.Ring {
	case RingRim:
		return (n.Index == 0) || (n.Index == t.Pac1Count)
	case RingCrotch:
		return (n.Index == 0) || (n.Index == t.C1C2Count)
	}
	return false
}
