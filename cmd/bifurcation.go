/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/spf13/cobra"

	"github.com/anatomesh/tubegen/annulus"
	"github.com/anatomesh/tubegen/config"
	"github.com/anatomesh/tubegen/export"
	"github.com/anatomesh/tubegen/profile"
	"github.com/anatomesh/tubegen/vecmath"
)

type ModelBifurcation struct {
	InputFile  string
	OutputFile string
}

// BifurcationCmd represents the bifurcation command
var BifurcationCmd = &cobra.Command{
	Use:   "bifurcation",
	Short: "Stitch a bifurcation between one parent and two child tube rings",
	Long: `
Builds the transition surface where one parent tube splits into two
children: partitions the three boundary rings, locates the two triple
points, builds the rim and crotch rows and writes the stitched surface.

tubegen bifurcation -I bifurcation.yaml -o bifurcation.vtk`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		fmt.Println("bifurcation called")
		mb := &ModelBifurcation{}
		if mb.InputFile, err = cmd.Flags().GetString("inputFile"); err != nil {
			panic(err)
		}
		if mb.OutputFile, err = cmd.Flags().GetString("outputFile"); err != nil {
			panic(err)
		}
		ip := processBifurcationInput(mb)
		RunBifurcation(mb, ip)
	},
}

func processBifurcationInput(mb *ModelBifurcation) (ip *config.BifurcationParameters) {
	var (
		err error
	)
	if len(mb.InputFile) == 0 {
		err := fmt.Errorf("must supply a parameters file (-I, --inputFile) in YAML format")
		fmt.Printf("error: %s\n", err.Error())
		exampleFile := `
########################################
Title: "Symmetric bifurcation"
ParentRadius: 1.
Child1Radius: 0.75
Child2Radius: 0.75
ParentElementsCountAround: 8
Child1ElementsCountAround: 8
Child2ElementsCountAround: 8
ElementsCountRadial: 2
ParentCentre: [0, 0, -1]
Child1Centre: [-1, 0, 1]
Child2Centre: [1, 0, 1]
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		os.Exit(1)
	}
	var data []byte
	if data, err = ioutil.ReadFile(mb.InputFile); err != nil {
		panic(err)
	}
	ip = &config.BifurcationParameters{}
	if err = ip.Parse(data); err != nil {
		panic(err)
	}
	checked := ip.Check()
	ip = &checked
	ip.Print()
	return
}

func init() {
	rootCmd.AddCommand(BifurcationCmd)
	BifurcationCmd.Flags().StringP("inputFile", "I", "", "YAML file of bifurcation parameters")
	BifurcationCmd.Flags().StringP("outputFile", "o", "bifurcation.vtk", "output surface file in legacy VTK format")
}

func RunBifurcation(mb *ModelBifurcation, ip *config.BifurcationParameters) {
	var (
		pa = boundaryRing(ip.ParentCentre, ip.ParentRadius, ip.ParentElementsCountAround, false)
		c1 = boundaryRing(ip.Child1Centre, ip.Child1Radius, ip.Child1ElementsCountAround, true)
		c2 = boundaryRing(ip.Child2Centre, ip.Child2Radius, ip.Child2ElementsCountAround, true)
	)
	rim, crotch, topo, err := annulus.MakeBifurcationPoints(pa, c1, c2)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	fmt.Printf("partition: pac1 %d, pac2 %d, c1c2 %d\n", topo.Pac1Count, topo.Pac2Count, topo.C1C2Count)

	stitch := annulus.StitchRings(pa, rim, annulus.StitchOptions{
		ElementsCountRadial:     ip.ElementsCountRadial,
		RescaleStartDerivatives: true,
		RescaleEndDerivatives:   true,
	})

	points, quads := assembleBifurcationSurface(pa, c1, c2, rim, crotch, topo, stitch)
	file, err := os.Create(mb.OutputFile)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	defer file.Close()
	if err = export.WriteSurfaceVTK(file, ip.Title, points, quads); err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	fmt.Printf("wrote %d nodes, %d cells to %s\n", len(points), len(quads), mb.OutputFile)
}

// boundaryRing builds a circular ring in a plane normal to the
// direction from the origin to centre, with the off-ring derivative
// along that direction: towards the bifurcation for the parent, away
// for children.
func boundaryRing(centre vecmath.Vec3, radius float64, elementsCountAround int, child bool) annulus.Ring {
	var (
		axis = vecmath.Normalise(centre)
		r    = annulus.Ring{}
	)
	if vecmath.Magnitude(centre) == 0.0 {
		axis = vecmath.Vec3{0.0, 0.0, 1.0}
	}
	// orthogonal in-plane axes from a non-parallel seed
	seed := vecmath.Vec3{0.0, 1.0, 0.0}
	if vecmath.Magnitude(vecmath.Cross(axis, seed)) < 1.0e-6 {
		seed = vecmath.Vec3{1.0, 0.0, 0.0}
	}
	var (
		axis1 = vecmath.Normalise(vecmath.Cross(seed, axis))
		axis2 = vecmath.Cross(axis, axis1)
	)
	px, pd1 := profile.CircleLoop(centre, vecmath.Scale(axis1, radius), vecmath.Scale(axis2, radius),
		elementsCountAround, 0.0)
	d2 := vecmath.Scale(axis, vecmath.Magnitude(centre))
	if !child {
		d2 = vecmath.Scale(d2, -1.0)
	}
	r.X = px
	r.D1 = pd1
	for range px {
		r.D2 = append(r.D2, d2)
	}
	return r
}

// assembleBifurcationSurface flattens the rings, interior rows and
// stitched grid into one point list with quad connectivity for export.
func assembleBifurcationSurface(pa, c1, c2, rim, crotch annulus.Ring, topo annulus.Topology,
	stitch *annulus.Stitch) (points []vecmath.Vec3, quads [][4]int) {
	offsets := map[annulus.RingID]int{}
	for _, r := range []struct {
		id   annulus.RingID
		ring annulus.Ring
	}{
		{annulus.RingParent, pa}, {annulus.RingChild1, c1}, {annulus.RingChild2, c2},
		{annulus.RingRim, rim}, {annulus.RingCrotch, crotch},
	} {
		offsets[r.id] = len(points)
		points = append(points, r.ring.X...)
	}
	flat := func(ref annulus.NodeRef) int {
		return offsets[ref.Ring] + ref.Index
	}
	// the parent-to-rim band is covered by the stitched rows below, so
	// only the child bands come from the connectivity maps
	_, child1, child2 := annulus.Connectivity(topo)
	for _, band := range [][]annulus.Quad{child1, child2} {
		for _, q := range band {
			quads = append(quads, [4]int{
				flat(q.Nodes[0]), flat(q.Nodes[1]), flat(q.Nodes[2]), flat(q.Nodes[3]),
			})
		}
	}
	// interior stitched rows between parent ring and rim
	stitchOffset := len(points)
	for row := 1; row < stitch.ElementsCountRadial; row++ {
		for n1 := 0; n1 < stitch.ElementsCountAround; n1++ {
			points = append(points, stitch.X[stitch.Index(row, n1)])
		}
	}
	stitchNode := func(row, n1 int) int {
		switch row {
		case 0:
			return offsets[annulus.RingParent] + n1
		case stitch.ElementsCountRadial:
			return offsets[annulus.RingRim] + n1
		}
		return stitchOffset + (row-1)*stitch.ElementsCountAround + n1
	}
	for row := 0; row < stitch.ElementsCountRadial; row++ {
		for n1 := 0; n1 < stitch.ElementsCountAround; n1++ {
			np := (n1 + 1) % stitch.ElementsCountAround
			quads = append(quads, [4]int{
				stitchNode(row, n1), stitchNode(row, np), stitchNode(row+1, np), stitchNode(row+1, n1),
			})
		}
	}
	return
}
