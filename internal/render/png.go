package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/YeenieBeans/Tools-For-Artists/internal/colour"
)

// Default PNG dimensions, a 3:1 strip.
const (
	DefaultPNGWidth  = 1500
	DefaultPNGHeight = 500
)

var edgeColour = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// Bar rasterises segments into an image of the given size. Each segment is
// filled with its colour, outlined in white and labelled in its centre when
// the label fits.
func Bar(segments []Segment, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid bar size %dx%d", width, height)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(edgeColour), image.Point{}, draw.Src)

	cols := columns(segments, width)
	x := 0
	for i, s := range segments {
		if cols[i] == 0 {
			continue
		}
		rect := image.Rect(x, 0, x+cols[i], height)
		x += cols[i]

		inner := rect.Inset(1)
		if inner.Empty() {
			inner = rect
		}
		draw.Draw(img, inner, image.NewUniform(toColor(s.Colour)), image.Point{}, draw.Src)
		drawLabel(img, inner, s)
	}
	return img, nil
}

// PNG encodes the bar for segments as a PNG image.
func PNG(w io.Writer, segments []Segment, width, height int) error {
	img, err := Bar(segments, width, height)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

func drawLabel(dst draw.Image, rect image.Rectangle, s Segment) {
	face := basicfont.Face7x13
	lines := strings.Split(s.Label(), "\n")

	lineHeight := face.Metrics().Height.Ceil()
	blockHeight := lineHeight * len(lines)
	if blockHeight > rect.Dy() {
		return
	}

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(toColor(s.LabelColour)),
		Face: face,
	}
	for _, line := range lines {
		if d.MeasureString(line).Ceil() > rect.Dx() {
			return
		}
	}

	top := rect.Min.Y + (rect.Dy()-blockHeight)/2
	for i, line := range lines {
		advance := d.MeasureString(line).Ceil()
		x := rect.Min.X + (rect.Dx()-advance)/2
		y := top + i*lineHeight + face.Metrics().Ascent.Ceil()
		d.Dot = fixed.P(x, y)
		d.DrawString(line)
	}
}

func toColor(c colour.RGB) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}
