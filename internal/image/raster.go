package image

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

var (
	// ErrInvalidImage reports a zero-size raster or a pixel buffer that does not
	// match its declared dimensions.
	ErrInvalidImage = errors.New("invalid image")

	// ErrInvalidChannelCount reports a raster whose channel count is not 1, 3 or 4.
	ErrInvalidChannelCount = errors.New("invalid channel count")
)

// Canonical analysis resolution. Every image is resampled to this size before
// clustering so the cost of clustering does not depend on the input size.
const (
	CanonicalWidth  = 600
	CanonicalHeight = 400
)

// Raster is an 8-bit interleaved pixel matrix with 1 (gray), 3 (RGB) or
// 4 (RGBA, non-premultiplied) channels per pixel.
type Raster struct {
	Width    int
	Height   int
	Channels int
	Pix      []uint8
}

// NewRaster allocates a zeroed raster.
func NewRaster(width, height, channels int) (*Raster, error) {
	r := &Raster{Width: width, Height: height, Channels: channels}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidImage, width, height)
	}
	if !validChannels(channels) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannelCount, channels)
	}
	r.Pix = make([]uint8, width*height*channels)
	return r, nil
}

// Validate checks dimensions, channel count and buffer length.
func (r *Raster) Validate() error {
	if r == nil {
		return fmt.Errorf("%w: nil raster", ErrInvalidImage)
	}
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidImage, r.Width, r.Height)
	}
	if !validChannels(r.Channels) {
		return fmt.Errorf("%w: %d (supported: 1, 3, 4)", ErrInvalidChannelCount, r.Channels)
	}
	if want := r.Width * r.Height * r.Channels; len(r.Pix) != want {
		return fmt.Errorf("%w: pixel buffer has %d bytes, want %d", ErrInvalidImage, len(r.Pix), want)
	}
	return nil
}

// Len returns the number of pixels.
func (r *Raster) Len() int {
	return r.Width * r.Height
}

func validChannels(n int) bool {
	return n == 1 || n == 3 || n == 4
}

// FromImage converts a decoded image into a raster, keeping the channel layout
// implied by its colour model: gray models become 1 channel, models carrying
// alpha become 4 channels and everything else becomes 3 channels.
func FromImage(img image.Image) (*Raster, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidImage)
	}
	b := img.Bounds()
	r, err := NewRaster(b.Dx(), b.Dy(), channelsFor(img))
	if err != nil {
		return nil, err
	}

	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.At(x, y)
			switch r.Channels {
			case 1:
				r.Pix[i] = color.GrayModel.Convert(c).(color.Gray).Y
			case 3:
				n := color.NRGBAModel.Convert(c).(color.NRGBA)
				r.Pix[i], r.Pix[i+1], r.Pix[i+2] = n.R, n.G, n.B
			case 4:
				n := color.NRGBAModel.Convert(c).(color.NRGBA)
				r.Pix[i], r.Pix[i+1], r.Pix[i+2], r.Pix[i+3] = n.R, n.G, n.B, n.A
			}
			i += r.Channels
		}
	}
	return r, nil
}

// channelsFor maps an image's colour model to a channel count.
func channelsFor(img image.Image) int {
	switch m := img.ColorModel(); m {
	case color.GrayModel, color.Gray16Model:
		return 1
	case color.RGBAModel, color.RGBA64Model, color.NRGBAModel, color.NRGBA64Model, color.AlphaModel, color.Alpha16Model:
		return 4
	default:
		if p, ok := m.(color.Palette); ok {
			for _, c := range p {
				if _, _, _, a := c.RGBA(); a != 0xffff {
					return 4
				}
			}
		}
		return 3
	}
}

// Normalize returns a 3-channel copy of r. Gray samples are replicated into
// R, G and B; alpha is dropped without compositing.
func Normalize(r *Raster) (*Raster, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	out, err := NewRaster(r.Width, r.Height, 3)
	if err != nil {
		return nil, err
	}

	switch r.Channels {
	case 3:
		copy(out.Pix, r.Pix)
	case 1:
		for i, v := range r.Pix {
			out.Pix[i*3], out.Pix[i*3+1], out.Pix[i*3+2] = v, v, v
		}
	case 4:
		for p := 0; p < r.Len(); p++ {
			copy(out.Pix[p*3:p*3+3], r.Pix[p*4:p*4+3])
		}
	}
	return out, nil
}

// ToImage wraps a 3-channel raster as an opaque *image.RGBA.
func (r *Raster) ToImage() (*image.RGBA, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if r.Channels != 3 {
		return nil, fmt.Errorf("%w: ToImage needs 3 channels, got %d", ErrInvalidChannelCount, r.Channels)
	}

	img := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	for p := 0; p < r.Len(); p++ {
		copy(img.Pix[p*4:p*4+3], r.Pix[p*3:p*3+3])
		img.Pix[p*4+3] = 0xff
	}
	return img, nil
}

// Resize resamples a 3-channel raster to width x height with bilinear
// interpolation.
func Resize(r *Raster, width, height int) (*Raster, error) {
	src, err := r.ToImage()
	if err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: target dimensions %dx%d", ErrInvalidImage, width, height)
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	out, err := NewRaster(width, height, 3)
	if err != nil {
		return nil, err
	}
	for p := 0; p < out.Len(); p++ {
		copy(out.Pix[p*3:p*3+3], dst.Pix[p*4:p*4+3])
	}
	return out, nil
}

// Canonical normalises r to RGB and resamples it to the canonical analysis
// resolution.
func Canonical(r *Raster) (*Raster, error) {
	rgb, err := Normalize(r)
	if err != nil {
		return nil, err
	}
	return Resize(rgb, CanonicalWidth, CanonicalHeight)
}
