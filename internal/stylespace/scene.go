package stylespace

import (
	"fmt"

	"github.com/YeenieBeans/Tools-For-Artists/internal/colour"
)

// Size is the half extent of the style space along every axis.
const Size = 10

// Palette.
const (
	Lavender         = "#9876b6"
	Obsidian         = "#222326"
	DesaturatedCream = "#e6e7c9"
	Lime             = "#d6dc82"
	Cherry           = "#de6072"
	UserPoint        = "#3d2fd0"
	FriendPoint      = "#b469c4"
)

// PlaneOpacity is the opacity of the half planes.
const PlaneOpacity = 0.85

// PositivePlaneColour tints the positive half of every plane.
var PositivePlaneColour = RGBA("#d3d3d3", PlaneOpacity)

// Axis titles.
const (
	XAxisTitle = "Realistic — Cartoony"
	YAxisTitle = "Feral — Anthro"
	ZAxisTitle = "Simple — Detailed"
)

// Axis end labels in x+, x-, y+, y-, z+, z- order.
var axisLabels = []string{"Realistic", "Cartoony", "Anthro", "Feral", "Detailed", "Simple"}

const (
	axisLineWidth = 4
	edgeLineWidth = 2
	labelFontSize = 18
	titleFontSize = 30

	figureWidth  = 1280
	figureHeight = 720
	cameraEye    = 1.5

	credit = `Made by <a href="https://x.com/yeeniebeans" style="color:#9876B6; size=18"><b>YeenieBeans</b></a>`
)

// cubeVertices are the corners of the [-Size, Size] cube.
var cubeVertices = [8][3]float64{
	{-Size, -Size, -Size}, {-Size, -Size, Size}, {-Size, Size, -Size}, {-Size, Size, Size},
	{Size, -Size, -Size}, {Size, -Size, Size}, {Size, Size, -Size}, {Size, Size, Size},
}

// cubeEdges index pairs of cubeVertices.
var cubeEdges = [12][2]int{
	{0, 1}, {1, 3}, {3, 2}, {2, 0},
	{4, 5}, {5, 7}, {7, 6}, {6, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// RGBA formats a hex colour as a CSS rgba() string. Invalid hex input is
// treated as black.
func RGBA(hex string, alpha float64) string {
	c, err := colour.ParseHex(hex)
	if err != nil {
		c = colour.RGB{}
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %g)", c.R, c.G, c.B, alpha)
}

// NewScene returns the static style space: six half axes, the twelve cube
// edges, six translucent half planes, the axis end labels and the layout.
func NewScene() *Figure {
	f := &Figure{Layout: sceneLayout()}

	for _, t := range axisTraces() {
		f.AddTrace(t)
	}
	for _, e := range cubeEdges {
		a, b := cubeVertices[e[0]], cubeVertices[e[1]]
		f.AddTrace(&Scatter3D{
			Type:      TraceScatter3D,
			Mode:      ModeLines,
			X:         []float64{a[0], b[0]},
			Y:         []float64{a[1], b[1]},
			Z:         []float64{a[2], b[2]},
			Line:      &Line{Color: DesaturatedCream, Width: edgeLineWidth},
			HoverInfo: "none",
		})
	}
	for _, t := range planeTraces() {
		f.AddTrace(t)
	}
	f.AddTrace(&Scatter3D{
		Type:         TraceScatter3D,
		Mode:         ModeText,
		X:            []float64{Size, -Size, 0, 0, 0, 0},
		Y:            []float64{0, 0, Size, -Size, 0, 0},
		Z:            []float64{0, 0, 0, 0, Size, -Size},
		Text:         append([]string(nil), axisLabels...),
		TextFont:     &Font{Family: "Arial, sans-serif", Size: labelFontSize, Color: DesaturatedCream},
		TextPosition: "top center",
		HoverInfo:    "none",
	})
	return f
}

func axisTraces() []Trace {
	axes := []struct {
		end   [3]float64
		color string
	}{
		{[3]float64{Size, 0, 0}, Lavender},
		{[3]float64{-Size, 0, 0}, Lavender},
		{[3]float64{0, Size, 0}, Lime},
		{[3]float64{0, -Size, 0}, Lime},
		{[3]float64{0, 0, Size}, Cherry},
		{[3]float64{0, 0, -Size}, Cherry},
	}

	traces := make([]Trace, 0, len(axes))
	for _, a := range axes {
		traces = append(traces, &Scatter3D{
			Type:      TraceScatter3D,
			Mode:      ModeLines,
			X:         []float64{0, a.end[0]},
			Y:         []float64{0, a.end[1]},
			Z:         []float64{0, a.end[2]},
			Line:      &Line{Color: a.color, Width: axisLineWidth},
			HoverInfo: "none",
		})
	}
	return traces
}

func planeTraces() []Trace {
	zero := [][]float64{{0, 0}, {0, 0}}
	span := [][]float64{{-Size, Size}, {-Size, Size}}
	negative := [][]float64{{-Size, -Size}, {0, 0}}
	positive := [][]float64{{0, 0}, {Size, Size}}

	planes := []struct {
		x, y, z [][]float64
		color   string
	}{
		// x-y
		{negative, span, zero, RGBA(Lavender, PlaneOpacity)},
		{positive, span, zero, PositivePlaneColour},
		// y-z
		{zero, negative, span, RGBA(Lime, PlaneOpacity)},
		{zero, positive, span, PositivePlaneColour},
		// x-z
		{span, zero, negative, RGBA(Cherry, PlaneOpacity)},
		{span, zero, positive, PositivePlaneColour},
	}

	traces := make([]Trace, 0, len(planes))
	for _, p := range planes {
		traces = append(traces, &Surface{
			Type:       TraceSurface,
			X:          p.x,
			Y:          p.y,
			Z:          p.z,
			ColorScale: [][]any{{0, p.color}, {1, p.color}},
			Opacity:    PlaneOpacity,
			ShowScale:  false,
			HoverInfo:  "none",
		})
	}
	return traces
}

func sceneLayout() Layout {
	axis := func(title string) Axis {
		return Axis{
			Title: Title{
				Text: "<b>" + title + "</b>",
				Font: Font{Size: labelFontSize, Color: DesaturatedCream},
			},
			NTicks:         4,
			Range:          [2]float64{-Size, Size},
			TickVals:       []float64{-Size, Size},
			TickText:       []string{"", ""},
			TickFont:       Font{Color: DesaturatedCream},
			ShowTickLabels: false,
		}
	}

	return Layout{
		Title: Title{
			Text:    "<b>3D Representation of Artistic Styles</b>",
			Font:    Font{Size: titleFontSize, Color: DesaturatedCream},
			X:       0.5,
			Y:       0.95,
			XAnchor: "center",
			YAnchor: "top",
		},
		Scene: Scene{
			XAxis: axis(XAxisTitle),
			YAxis: axis(YAxisTitle),
			ZAxis: axis(ZAxisTitle),
			Camera: Camera{
				Eye:        Eye{X: cameraEye, Y: cameraEye, Z: cameraEye},
				Projection: Projection{Type: "perspective"},
			},
			DragMode: "orbit",
			BgColor:  Obsidian,
		},
		Annotations: []Annotation{{
			Text:  credit,
			X:     0.5,
			Y:     0.01,
			XRef:  "paper",
			YRef:  "paper",
			Font:  Font{Size: 14, Color: "#fafae9"},
			Align: "center",
		}},
		Width:  figureWidth,
		Height: figureHeight,
		Margin: Margin{R: 3, L: 3, B: 3, T: 3},
	}
}
