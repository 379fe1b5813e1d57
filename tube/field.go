package tube

import (
	"fmt"

	"github.com/anatomesh/tubegen/vecmath"
)

type Vec3 = vecmath.Vec3

// InnerSurface is the warped inner tube surface: one ring of points per
// longitudinal sample, flat-indexed by Index.
type InnerSurface struct {
	ElementsCountAround, ElementsCountAlong int
	X, D1, D2, D3Unit                       []Vec3
}

func (s *InnerSurface) Index(n2, n1 int) int {
	if (n1 < 0) || (n1 >= s.ElementsCountAround) || (n2 < 0) || (n2 > s.ElementsCountAlong) {
		panic(fmt.Sprintf("InnerSurface.Index: out of range (%d,%d)", n2, n1))
	}
	return n2*s.ElementsCountAround + n1
}

// Ring returns the cyclic point and derivative slices at longitudinal
// index n2.
func (s *InnerSurface) Ring(n2 int) (x, d1, d2 []Vec3) {
	start := s.Index(n2, 0)
	end := start + s.ElementsCountAround
	return s.X[start:end], s.D1[start:end], s.D2[start:end]
}

// Field3D is the complete node/derivative field over
// [throughWallLayer][longitudinalIndex][aroundIndex], stored as flat
// buffers with a computed index. Dimensions are fixed at construction
// and consistent across X, D1, D2 and D3.
type Field3D struct {
	ElementsCountAround      int
	ElementsCountAlong       int
	ElementsCountThroughWall int
	X, D1, D2, D3            []Vec3
}

func NewField3D(elementsCountAround, elementsCountAlong, elementsCountThroughWall int) *Field3D {
	n := (elementsCountThroughWall + 1) * (elementsCountAlong + 1) * elementsCountAround
	return &Field3D{
		ElementsCountAround:      elementsCountAround,
		ElementsCountAlong:       elementsCountAlong,
		ElementsCountThroughWall: elementsCountThroughWall,
		X:                        make([]Vec3, n),
		D1:                       make([]Vec3, n),
		D2:                       make([]Vec3, n),
		D3:                       make([]Vec3, n),
	}
}

// Index maps (layer, along, around) onto the flat buffers, panicking on
// out-of-range indices rather than silently wrapping.
func (f *Field3D) Index(n3, n2, n1 int) int {
	if (n3 < 0) || (n3 > f.ElementsCountThroughWall) ||
		(n2 < 0) || (n2 > f.ElementsCountAlong) ||
		(n1 < 0) || (n1 >= f.ElementsCountAround) {
		panic(fmt.Sprintf("Field3D.Index: out of range (%d,%d,%d)", n3, n2, n1))
	}
	return (n3*(f.ElementsCountAlong+1)+n2)*f.ElementsCountAround + n1
}

// NodesCount returns the total node count of the field.
func (f *Field3D) NodesCount() int {
	return len(f.X)
}
