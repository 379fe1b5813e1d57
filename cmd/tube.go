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

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/anatomesh/tubegen/centralpath"
	"github.com/anatomesh/tubegen/config"
	"github.com/anatomesh/tubegen/export"
	profilegen "github.com/anatomesh/tubegen/profile"
	"github.com/anatomesh/tubegen/tube"
)

type ModelTube struct {
	InputFile  string
	OutputFile string
	Profile    bool
}

// TubeCmd represents the tube command
var TubeCmd = &cobra.Command{
	Use:   "tube",
	Short: "Generate a tubular mesh from a central path and cross-section",
	Long: `
Generates a walled tubular mesh: the central path is sampled into even
arc-length elements, a twist-free frame is propagated along it, the
cross-section profile is warped into place at each sample and the wall
is extruded with curvature correction.

tubegen tube -I tube.yaml -o tube.vtk`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		fmt.Println("tube called")
		mt := &ModelTube{}
		if mt.InputFile, err = cmd.Flags().GetString("inputFile"); err != nil {
			panic(err)
		}
		if mt.OutputFile, err = cmd.Flags().GetString("outputFile"); err != nil {
			panic(err)
		}
		mt.Profile, _ = cmd.Root().PersistentFlags().GetBool("profile")
		ip := processTubeInput(mt)
		RunTube(mt, ip)
	},
}

func processTubeInput(mt *ModelTube) (ip *config.TubeParameters) {
	var (
		err error
	)
	if len(mt.InputFile) == 0 {
		err := fmt.Errorf("must supply a parameters file (-I, --inputFile) in YAML format")
		fmt.Printf("error: %s\n", err.Error())
		exampleFile := `
########################################
Title: "Straight tube"
Shape: Circle
Radius: 1.
WallThickness: 0.25
ElementsCountAround: 8
ElementsCountAlong: 4
ElementsCountThroughWall: 1
Path:
  - X: [0, 0, 0]
    D1: [0, 0, 3]
    D2: [1, 0, 0]
    D3: [0, 1, 0]
  - X: [0, 0, 3]
    D1: [0, 0, 3]
    D2: [1, 0, 0]
    D3: [0, 1, 0]
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		os.Exit(1)
	}
	var data []byte
	if data, err = ioutil.ReadFile(mt.InputFile); err != nil {
		panic(err)
	}
	ip = &config.TubeParameters{}
	if err = ip.Parse(data); err != nil {
		panic(err)
	}
	checked := ip.Check()
	ip = &checked
	ip.Print()
	return
}

func init() {
	rootCmd.AddCommand(TubeCmd)
	TubeCmd.Flags().StringP("inputFile", "I", "", "YAML file of tube parameters")
	TubeCmd.Flags().StringP("outputFile", "o", "tube.vtk", "output mesh file in legacy VTK format")
}

func RunTube(mt *ModelTube, ip *config.TubeParameters) {
	if mt.Profile {
		defer profile.Start().Stop()
	}
	path := make([]centralpath.ControlPoint, len(ip.Path))
	for n, cp := range ip.Path {
		path[n] = centralpath.ControlPoint{X: cp.X, D1: cp.D1, D2: cp.D2, D3: cp.D3}
	}
	samples, err := centralpath.SamplePath(path, ip.ElementsCountAlong)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	frames := centralpath.PropagateFrames(samples)

	var points []profilegen.Point
	if ip.Shape == "RoundedTriangle" {
		points = profilegen.Generate(profilegen.Zones{
			Shape:                   profilegen.RoundedTriangle,
			Radius:                  ip.Radius,
			CornerRadiusFactor:      ip.CornerRadiusFactor,
			NarrowBandWidth:         ip.NarrowBandWidth,
			SectorsCount:            ip.SectorsCount,
			ElementsCountNarrowBand: ip.ElementsCountNarrowBand,
			ElementsCountRemainder:  ip.ElementsCountRemainder,
		})
	} else {
		points = profilegen.CirclePoints(ip.Radius, ip.ElementsCountAround)
	}
	profiles := make([][]profilegen.Point, len(samples))
	for n := range profiles {
		profiles[n] = points
	}

	inner := tube.WarpProfiles(profiles, samples, frames)
	field := tube.ExtrudeWall(inner, ip.WallThicknessPerSample(), ip.ElementsCountThroughWall,
		ip.RelativeThickness, profilegen.TransitionFlags(points))

	if err = export.WriteVTKFile(mt.OutputFile, ip.Title, field); err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	fmt.Printf("wrote %d nodes, %d cells to %s\n", field.NodesCount(),
		field.ElementsCountThroughWall*field.ElementsCountAlong*field.ElementsCountAround,
		mt.OutputFile)
}
