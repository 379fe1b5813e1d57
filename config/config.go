package config

import (
	"fmt"
	"math"

	"github.com/ghodss/yaml"

	"github.com/anatomesh/tubegen/vecmath"
)

// PathControlPoint is one central path control point in the YAML input:
// position, tangent and the two cross-section derivatives.
type PathControlPoint struct {
	X  vecmath.Vec3 `yaml:"X"`
	D1 vecmath.Vec3 `yaml:"D1"`
	D2 vecmath.Vec3 `yaml:"D2"`
	D3 vecmath.Vec3 `yaml:"D3"`
}

// Parameters obtained from the YAML input file
type TubeParameters struct {
	Title                    string             `yaml:"Title"`
	Shape                    string             `yaml:"Shape"` // "Circle" or "RoundedTriangle"
	Radius                   float64            `yaml:"Radius"`
	CornerRadiusFactor       float64            `yaml:"CornerRadiusFactor"`
	NarrowBandWidth          float64            `yaml:"NarrowBandWidth"`
	SectorsCount             int                `yaml:"SectorsCount"`
	ElementsCountNarrowBand  int                `yaml:"ElementsCountNarrowBand"`
	ElementsCountRemainder   int                `yaml:"ElementsCountRemainder"`
	ElementsCountAround      int                `yaml:"ElementsCountAround"`
	ElementsCountAlong       int                `yaml:"ElementsCountAlong"`
	ElementsCountThroughWall int                `yaml:"ElementsCountThroughWall"`
	WallThickness            float64            `yaml:"WallThickness"`
	WallThicknessAlong       []float64          `yaml:"WallThicknessAlong"` // optional, overrides WallThickness per sample
	RelativeThickness        []float64          `yaml:"RelativeThickness"`  // optional, per through-wall layer
	Path                     []PathControlPoint `yaml:"Path"`
}

func (tp *TubeParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, tp)
}

func (tp *TubeParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", tp.Title)
	fmt.Printf("[%s]\t\t= Shape\n", tp.Shape)
	fmt.Printf("%8.5f\t\t= Radius\n", tp.Radius)
	fmt.Printf("%8.5f\t\t= WallThickness\n", tp.WallThickness)
	fmt.Printf("[%d]\t\t\t= ElementsCountAround\n", tp.ElementsCountAround)
	fmt.Printf("[%d]\t\t\t= ElementsCountAlong\n", tp.ElementsCountAlong)
	fmt.Printf("[%d]\t\t\t= ElementsCountThroughWall\n", tp.ElementsCountThroughWall)
	fmt.Printf("[%d]\t\t\t= Path control points\n", len(tp.Path))
}

// Check returns a copy with every numeric option clamped to its nearest
// valid value, printing a diagnostic per clamp. Geometry code assumes
// checked input and does not re-validate.
func (tp TubeParameters) Check() TubeParameters {
	cp := tp
	clampIntMin(&cp.ElementsCountAlong, 1, "ElementsCountAlong")
	clampIntMin(&cp.ElementsCountThroughWall, 1, "ElementsCountThroughWall")
	clampFloatMin(&cp.Radius, 1.0e-6, "Radius")
	if cp.WallThickness < 0.0 {
		fmt.Printf("Check: WallThickness %g clamped to 0\n", cp.WallThickness)
		cp.WallThickness = 0.0
	}
	for n, wt := range cp.WallThicknessAlong {
		if wt < 0.0 {
			fmt.Printf("Check: WallThicknessAlong[%d] %g clamped to 0\n", n, wt)
			cp.WallThicknessAlong[n] = 0.0
		}
	}
	if cp.Shape == "RoundedTriangle" {
		clampIntMin(&cp.SectorsCount, 1, "SectorsCount")
		clampEvenMin(&cp.ElementsCountNarrowBand, 2, "ElementsCountNarrowBand")
		clampEvenMin(&cp.ElementsCountRemainder, 4, "ElementsCountRemainder")
		clampFloatRange(&cp.CornerRadiusFactor, 0.1, 1.0, "CornerRadiusFactor")
		// narrow band must fit well inside the sector half-circumference
		maxWidth := 1.8 * math.Pi * cp.Radius / float64(cp.SectorsCount)
		clampFloatRange(&cp.NarrowBandWidth, 1.0e-6, maxWidth, "NarrowBandWidth")
		cp.ElementsCountAround = cp.SectorsCount * (cp.ElementsCountNarrowBand + cp.ElementsCountRemainder)
	} else {
		clampIntMin(&cp.ElementsCountAround, 4, "ElementsCountAround")
	}
	return cp
}

// WallThicknessPerSample expands the wall thickness to one value per
// longitudinal sample.
func (tp TubeParameters) WallThicknessPerSample() []float64 {
	n := tp.ElementsCountAlong + 1
	if len(tp.WallThicknessAlong) == n {
		return tp.WallThicknessAlong
	}
	wt := make([]float64, n)
	for i := range wt {
		wt[i] = tp.WallThickness
	}
	return wt
}

// Parameters for a bifurcation junction between one parent and two
// child tubes, each a circular ring.
type BifurcationParameters struct {
	Title                     string       `yaml:"Title"`
	ParentRadius              float64      `yaml:"ParentRadius"`
	Child1Radius              float64      `yaml:"Child1Radius"`
	Child2Radius              float64      `yaml:"Child2Radius"`
	ParentElementsCountAround int          `yaml:"ParentElementsCountAround"`
	Child1ElementsCountAround int          `yaml:"Child1ElementsCountAround"`
	Child2ElementsCountAround int          `yaml:"Child2ElementsCountAround"`
	ElementsCountRadial       int          `yaml:"ElementsCountRadial"`
	ParentCentre              vecmath.Vec3 `yaml:"ParentCentre"`
	Child1Centre              vecmath.Vec3 `yaml:"Child1Centre"`
	Child2Centre              vecmath.Vec3 `yaml:"Child2Centre"`
}

func (bp *BifurcationParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, bp)
}

func (bp *BifurcationParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", bp.Title)
	fmt.Printf("%8.5f\t\t= ParentRadius\n", bp.ParentRadius)
	fmt.Printf("%8.5f\t\t= Child1Radius\n", bp.Child1Radius)
	fmt.Printf("%8.5f\t\t= Child2Radius\n", bp.Child2Radius)
	fmt.Printf("[%d %d %d]\t\t= ElementsCountAround (parent, child1, child2)\n",
		bp.ParentElementsCountAround, bp.Child1ElementsCountAround, bp.Child2ElementsCountAround)
	fmt.Printf("[%d]\t\t\t= ElementsCountRadial\n", bp.ElementsCountRadial)
}

// Check clamps counts so the ring partition is valid: all counts at
// least 4, even, and satisfying the triangle conditions so each
// partition gets at least one element.
func (bp BifurcationParameters) Check() BifurcationParameters {
	cp := bp
	clampFloatMin(&cp.ParentRadius, 1.0e-6, "ParentRadius")
	clampFloatMin(&cp.Child1Radius, 1.0e-6, "Child1Radius")
	clampFloatMin(&cp.Child2Radius, 1.0e-6, "Child2Radius")
	clampIntMin(&cp.ElementsCountRadial, 1, "ElementsCountRadial")
	clampEvenMin(&cp.ParentElementsCountAround, 4, "ParentElementsCountAround")
	clampEvenMin(&cp.Child1ElementsCountAround, 4, "Child1ElementsCountAround")
	clampEvenMin(&cp.Child2ElementsCountAround, 4, "Child2ElementsCountAround")
	// each partition needs pa+c1>c2 etc.; grow the parent count to cover
	for (cp.ParentElementsCountAround+cp.Child1ElementsCountAround-cp.Child2ElementsCountAround < 2) ||
		(cp.ParentElementsCountAround+cp.Child2ElementsCountAround-cp.Child1ElementsCountAround < 2) {
		fmt.Printf("Check: ParentElementsCountAround %d too small for children, increased\n",
			cp.ParentElementsCountAround)
		cp.ParentElementsCountAround += 2
	}
	for cp.Child1ElementsCountAround+cp.Child2ElementsCountAround-cp.ParentElementsCountAround < 2 {
		fmt.Printf("Check: child counts too small for parent, increased\n")
		cp.Child1ElementsCountAround += 2
		cp.Child2ElementsCountAround += 2
	}
	return cp
}

func clampIntMin(v *int, min int, name string) {
	if *v < min {
		fmt.Printf("Check: %s %d clamped to %d\n", name, *v, min)
		*v = min
	}
}

func clampEvenMin(v *int, min int, name string) {
	old := *v
	if *v < min {
		*v = min
	}
	if *v%2 != 0 {
		*v++
	}
	if *v != old {
		fmt.Printf("Check: %s %d clamped to %d\n", name, old, *v)
	}
}

func clampFloatMin(v *float64, min float64, name string) {
	if *v < min {
		fmt.Printf("Check: %s %g clamped to %g\n", name, *v, min)
		*v = min
	}
}

func clampFloatRange(v *float64, min, max float64, name string) {
	old := *v
	if *v < min {
		*v = min
	} else if *v > max {
		*v = max
	}
	if *v != old {
		fmt.Printf("Check: %s %g clamped to %g\n", name, old, *v)
	}
}
