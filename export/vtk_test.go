package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anatomesh/tubegen/tube"
	"github.com/anatomesh/tubegen/vecmath"
)

func TestWriteVTK(t *testing.T) {
	f := tube.NewField3D(4, 1, 1)
	for n := range f.X {
		f.X[n] = tube.Vec3{float64(n), 0, 0}
		f.D1[n] = tube.Vec3{1, 0, 0}
	}
	var buf bytes.Buffer
	assert.NoError(t, WriteVTK(&buf, "tube", f))

	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, "# vtk DataFile Version 2.0", lines[0])
	assert.Equal(t, "tube", lines[1])
	assert.Equal(t, "ASCII", lines[2])
	assert.Equal(t, "DATASET UNSTRUCTURED_GRID", lines[3])
	assert.Equal(t, "POINTS 16 double", lines[4])
	out := buf.String()
	assert.Contains(t, out, "CELLS 4 36")
	assert.Contains(t, out, "CELL_TYPES 4")
	assert.Contains(t, out, "POINT_DATA 16")
	assert.Contains(t, out, "VECTORS d1 double")
	assert.Contains(t, out, "VECTORS d2 double")
	assert.Contains(t, out, "VECTORS d3 double")
	// the four cell lines each list a node count of 8 then 8 node numbers
	cellsAt := -1
	for n, line := range lines {
		if line == "CELLS 4 36" {
			cellsAt = n
		}
	}
	assert.True(t, cellsAt > 0)
	for _, line := range lines[cellsAt+1 : cellsAt+5] {
		fields := strings.Fields(line)
		assert.Equal(t, 9, len(fields))
		assert.Equal(t, "8", fields[0])
	}
}

func TestWriteSurfaceVTK(t *testing.T) {
	points := []vecmath.Vec3{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
	}
	quads := [][4]int{{0, 1, 2, 3}}
	var buf bytes.Buffer
	assert.NoError(t, WriteSurfaceVTK(&buf, "surface", points, quads))

	out := buf.String()
	assert.Contains(t, out, "POINTS 4 double")
	assert.Contains(t, out, "CELLS 1 5")
	assert.Contains(t, out, "4 0 1 2 3")
	assert.Contains(t, out, "CELL_TYPES 1")
	assert.Contains(t, out, "9")
}
