// Package colour reduces an image to a ranked colour distribution: k-means
// clustering over its pixels, a first-fit merge of visually similar cluster
// colours and a proportion ranking of the resulting buckets.
package colour

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB represents a colour in 8-bit RGB.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB colour as a lowercase hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// ParseHex parses a "#rrggbb" string in either case.
func ParseHex(s string) (RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

// truncateChannel converts a real-valued channel mean to 8 bits by truncating
// toward zero, clamped into [0, 255].
func truncateChannel(v float64) uint8 {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}

// absDiff returns |a-b| for 8-bit channels.
func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
