// Package stylespace builds the three-dimensional artistic style space: a
// static scene of axes, a cube wireframe and translucent half planes, plus
// markers for a user and their friends.
//
// Figures are declarative and serialise to the JSON trace format understood
// by plotly.js compatible chart renderers. Nothing here draws pixels.
package stylespace

import (
	"encoding/json"
	"fmt"
)

// Trace types.
const (
	TraceScatter3D = "scatter3d"
	TraceSurface   = "surface"
)

// Scatter trace modes.
const (
	ModeLines       = "lines"
	ModeText        = "text"
	ModeMarkersText = "markers+text"
)

// Trace is a single element of a figure's data.
type Trace interface {
	TraceType() string
}

// Line styles a scatter line.
type Line struct {
	Color string `json:"color"`
	Width int    `json:"width"`
}

// Marker styles a scatter point.
type Marker struct {
	Size  int    `json:"size"`
	Color string `json:"color"`
}

// Font styles text.
type Font struct {
	Family string `json:"family,omitempty"`
	Size   int    `json:"size"`
	Color  string `json:"color"`
}

// Scatter3D is a set of points, lines or text in 3D space.
type Scatter3D struct {
	Type         string    `json:"type"`
	Mode         string    `json:"mode"`
	Name         string    `json:"name,omitempty"`
	X            []float64 `json:"x"`
	Y            []float64 `json:"y"`
	Z            []float64 `json:"z"`
	Text         []string  `json:"text,omitempty"`
	TextPosition string    `json:"textposition,omitempty"`
	TextFont     *Font     `json:"textfont,omitempty"`
	Line         *Line     `json:"line,omitempty"`
	Marker       *Marker   `json:"marker,omitempty"`
	HoverInfo    string    `json:"hoverinfo"`
}

// TraceType implements Trace.
func (s *Scatter3D) TraceType() string { return TraceScatter3D }

// Surface is a flat coloured patch given by 2x2 coordinate grids.
type Surface struct {
	Type       string      `json:"type"`
	X          [][]float64 `json:"x"`
	Y          [][]float64 `json:"y"`
	Z          [][]float64 `json:"z"`
	ColorScale [][]any     `json:"colorscale"`
	Opacity    float64     `json:"opacity"`
	ShowScale  bool        `json:"showscale"`
	HoverInfo  string      `json:"hoverinfo"`
}

// TraceType implements Trace.
func (s *Surface) TraceType() string { return TraceSurface }

// Color returns the uniform colour of the surface.
func (s *Surface) Color() string {
	if len(s.ColorScale) == 0 || len(s.ColorScale[0]) < 2 {
		return ""
	}
	c, _ := s.ColorScale[0][1].(string)
	return c
}

// Title is a figure or axis title.
type Title struct {
	Text    string  `json:"text"`
	Font    Font    `json:"font"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	XAnchor string  `json:"xanchor,omitempty"`
	YAnchor string  `json:"yanchor,omitempty"`
}

// Axis configures one scene axis.
type Axis struct {
	Title          Title      `json:"title"`
	NTicks         int        `json:"nticks"`
	Range          [2]float64 `json:"range"`
	ShowBackground bool       `json:"showbackground"`
	TickVals       []float64  `json:"tickvals"`
	TickText       []string   `json:"ticktext"`
	TickFont       Font       `json:"tickfont"`
	ShowTickLabels bool       `json:"showticklabels"`
}

// Eye is a camera position.
type Eye struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Projection is a camera projection.
type Projection struct {
	Type string `json:"type"`
}

// Camera positions the viewer.
type Camera struct {
	Eye        Eye        `json:"eye"`
	Projection Projection `json:"projection"`
}

// Scene configures the 3D viewport.
type Scene struct {
	XAxis    Axis   `json:"xaxis"`
	YAxis    Axis   `json:"yaxis"`
	ZAxis    Axis   `json:"zaxis"`
	Camera   Camera `json:"camera"`
	DragMode string `json:"dragmode"`
	BgColor  string `json:"bgcolor"`
}

// Annotation is free text placed on the paper.
type Annotation struct {
	Text      string  `json:"text"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	XRef      string  `json:"xref"`
	YRef      string  `json:"yref"`
	ShowArrow bool    `json:"showarrow"`
	Font      Font    `json:"font"`
	Align     string  `json:"align"`
}

// Margin is the plot margin in pixels.
type Margin struct {
	R int `json:"r"`
	L int `json:"l"`
	B int `json:"b"`
	T int `json:"t"`
}

// Layout holds figure level settings.
type Layout struct {
	Title       Title        `json:"title"`
	Scene       Scene        `json:"scene"`
	Annotations []Annotation `json:"annotations,omitempty"`
	Width       int          `json:"width"`
	Height      int          `json:"height"`
	Margin      Margin       `json:"margin"`
	ShowLegend  bool         `json:"showlegend"`
}

// Figure is a complete chart: traces drawn in order plus layout.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// AddTrace appends t to the figure.
func (f *Figure) AddTrace(t Trace) {
	f.Data = append(f.Data, t)
}

// ToJSON serialises the figure.
func (f *Figure) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal figure: %w", err)
	}
	return data, nil
}
