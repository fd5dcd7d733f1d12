// Package render lays out a ranked colour distribution as a single horizontal
// bar spanning [0, 1] and draws it to a terminal or a PNG image.
package render

import (
	"fmt"
	"math"

	"github.com/YeenieBeans/Tools-For-Artists/internal/colour"
)

// Label colours chosen for contrast against a segment.
var (
	Black = colour.RGB{R: 0, G: 0, B: 0}
	White = colour.RGB{R: 255, G: 255, B: 255}
)

// luminanceCutoff is the perceived brightness above which labels are black.
const luminanceCutoff = 186

// Luminance returns the perceived brightness 0.299R + 0.587G + 0.114B of an
// 8-bit colour, in [0, 255].
func Luminance(c colour.RGB) float64 {
	return 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
}

// LabelColour returns black for bright backgrounds and white otherwise.
func LabelColour(background colour.RGB) colour.RGB {
	if Luminance(background) > luminanceCutoff {
		return Black
	}
	return White
}

// Segment is one coloured span of the bar.
type Segment struct {
	Colour      colour.RGB
	LabelColour colour.RGB
	// Start and Width are fractions of the bar.
	Start float64
	Width float64
	// Percent is floor(Width * 100).
	Percent int
}

// Hex returns the segment colour as "#rrggbb".
func (s Segment) Hex() string {
	return s.Colour.Hex()
}

// Label returns the two-line segment label: hex colour and integer percent.
func (s Segment) Label() string {
	return fmt.Sprintf("%s\n%d%%", s.Hex(), s.Percent)
}

// Layout places shares left to right in the order given.
func Layout(shares []colour.Share) []Segment {
	segments := make([]Segment, len(shares))
	start := 0.0
	for i, s := range shares {
		segments[i] = Segment{
			Colour:      s.Colour,
			LabelColour: LabelColour(s.Colour),
			Start:       start,
			Width:       s.Percentage,
			Percent:     int(math.Floor(s.Percentage * 100)),
		}
		start += s.Percentage
	}
	return segments
}

// columns splits total cells among segments in proportion to their widths,
// using largest remainders so the parts always add up to total.
func columns(segments []Segment, total int) []int {
	cols := make([]int, len(segments))
	if len(segments) == 0 || total <= 0 {
		return cols
	}

	sum := 0.0
	for _, s := range segments {
		sum += s.Width
	}
	if sum <= 0 {
		return cols
	}

	type remainder struct {
		index int
		frac  float64
	}
	used := 0
	rems := make([]remainder, len(segments))
	for i, s := range segments {
		exact := s.Width / sum * float64(total)
		cols[i] = int(exact)
		used += cols[i]
		rems[i] = remainder{index: i, frac: exact - float64(cols[i])}
	}

	for left := total - used; left > 0; left-- {
		best := -1
		for i, r := range rems {
			if best < 0 || r.frac > rems[best].frac {
				best = i
			}
		}
		cols[rems[best].index]++
		rems[best].frac = -1
	}
	return cols
}
