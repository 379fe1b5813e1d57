package export

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/anatomesh/tubegen/tube"
	"github.com/anatomesh/tubegen/vecmath"
)

// WriteVTK writes the field as a legacy ASCII VTK unstructured grid of
// hexahedral cells, with the three derivative fields attached as point
// vectors. Around connectivity wraps, so the tube surface is closed.
func WriteVTK(w io.Writer, title string, f *tube.Field3D) error {
	var (
		bw     = bufio.NewWriter(w)
		around = f.ElementsCountAround
		along  = f.ElementsCountAlong
		wall   = f.ElementsCountThroughWall
	)
	fmt.Fprintf(bw, "# vtk DataFile Version 2.0\n%s\nASCII\nDATASET UNSTRUCTURED_GRID\n", title)
	fmt.Fprintf(bw, "POINTS %d double\n", f.NodesCount())
	for _, x := range f.X {
		fmt.Fprintf(bw, "%g %g %g\n", x[0], x[1], x[2])
	}
	cellsCount := wall * along * around
	fmt.Fprintf(bw, "CELLS %d %d\n", cellsCount, cellsCount*9)
	for n3 := 0; n3 < wall; n3++ {
		for n2 := 0; n2 < along; n2++ {
			for n1 := 0; n1 < around; n1++ {
				np := (n1 + 1) % around
				fmt.Fprintf(bw, "8 %d %d %d %d %d %d %d %d\n",
					f.Index(n3, n2, n1), f.Index(n3, n2, np),
					f.Index(n3, n2+1, np), f.Index(n3, n2+1, n1),
					f.Index(n3+1, n2, n1), f.Index(n3+1, n2, np),
					f.Index(n3+1, n2+1, np), f.Index(n3+1, n2+1, n1))
			}
		}
	}
	fmt.Fprintf(bw, "CELL_TYPES %d\n", cellsCount)
	for n := 0; n < cellsCount; n++ {
		fmt.Fprintf(bw, "12\n")
	}
	fmt.Fprintf(bw, "POINT_DATA %d\n", f.NodesCount())
	for _, field := range []struct {
		name string
		v    []tube.Vec3
	}{{"d1", f.D1}, {"d2", f.D2}, {"d3", f.D3}} {
		fmt.Fprintf(bw, "VECTORS %s double\n", field.name)
		for _, d := range field.v {
			fmt.Fprintf(bw, "%g %g %g\n", d[0], d[1], d[2])
		}
	}
	return bw.Flush()
}

// WriteSurfaceVTK writes a quad surface as a legacy ASCII VTK
// unstructured grid, for stitched regions that are not regular tube
// fields.
func WriteSurfaceVTK(w io.Writer, title string, points []vecmath.Vec3, quads [][4]int) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# vtk DataFile Version 2.0\n%s\nASCII\nDATASET UNSTRUCTURED_GRID\n", title)
	fmt.Fprintf(bw, "POINTS %d double\n", len(points))
	for _, x := range points {
		fmt.Fprintf(bw, "%g %g %g\n", x[0], x[1], x[2])
	}
	fmt.Fprintf(bw, "CELLS %d %d\n", len(quads), len(quads)*5)
	for _, q := range quads {
		fmt.Fprintf(bw, "4 %d %d %d %d\n", q[0], q[1], q[2], q[3])
	}
	fmt.Fprintf(bw, "CELL_TYPES %d\n", len(quads))
	for range quads {
		fmt.Fprintf(bw, "9\n")
	}
	return bw.Flush()
}

// WriteVTKFile writes the field to the named file.
func WriteVTKFile(fileName, title string, f *tube.Field3D) error {
	file, err := os.Create(fileName)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteVTK(file, title, f)
}
