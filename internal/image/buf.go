// Package image holds the source images that kaleido samples from.
//
// An ImageBuf is an immutable-after-load RGBA8 raster (non-premultiplied,
// tightly packed rows). It is sampled in pixel coordinates: pixel (i, j)
// covers [i, i+1) × [j, j+1), so its centre is at (i+0.5, j+0.5).
package image

import (
	"errors"
	"image"
	"image/color"
)

// Common errors for image operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("image: invalid dimensions")

	// ErrOutOfBounds is returned when pixel coordinates are outside image bounds.
	ErrOutOfBounds = errors.New("image: coordinates out of bounds")
)

// bytesPerPixel is the size of one RGBA8 pixel.
const bytesPerPixel = 4

// ImageBuf is an RGBA8 image buffer.
//
// Thread safety: ImageBuf is safe for concurrent read access. SetRGBA and
// Fill require external synchronization.
type ImageBuf struct {
	data   []byte
	width  int
	height int
}

// NewImageBuf creates a transparent image buffer with the given dimensions.
func NewImageBuf(width, height int) (*ImageBuf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &ImageBuf{
		data:   make([]byte, width*height*bytesPerPixel),
		width:  width,
		height: height,
	}, nil
}

// Clone creates a deep copy of the image buffer.
func (b *ImageBuf) Clone() *ImageBuf {
	data := make([]byte, len(b.data))
	copy(data, b.data)
	return &ImageBuf{data: data, width: b.width, height: b.height}
}

// Width returns the image width in pixels.
func (b *ImageBuf) Width() int {
	return b.width
}

// Height returns the image height in pixels.
func (b *ImageBuf) Height() int {
	return b.height
}

// Bounds returns the image dimensions as (width, height).
func (b *ImageBuf) Bounds() (int, int) {
	return b.width, b.height
}

// Stride returns the number of bytes per row.
func (b *ImageBuf) Stride() int {
	return b.width * bytesPerPixel
}

// Data returns the raw pixel data slice.
func (b *ImageBuf) Data() []byte {
	return b.data
}

// RowBytes returns a slice of the pixel data for row y.
// Returns nil if y is out of bounds.
func (b *ImageBuf) RowBytes(y int) []byte {
	if y < 0 || y >= b.height {
		return nil
	}
	start := y * b.Stride()
	return b.data[start : start+b.Stride()]
}

// PixelOffset returns the byte offset of pixel (x, y) in the data slice.
// Returns -1 if coordinates are out of bounds.
func (b *ImageBuf) PixelOffset(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return -1
	}
	return (y*b.width + x) * bytesPerPixel
}

// GetRGBA returns the color at (x, y). Returns (0,0,0,0) if coordinates are
// out of bounds.
func (b *ImageBuf) GetRGBA(x, y int) (r, g, bl, a uint8) {
	off := b.PixelOffset(x, y)
	if off < 0 {
		return 0, 0, 0, 0
	}
	p := b.data[off : off+bytesPerPixel : off+bytesPerPixel]
	return p[0], p[1], p[2], p[3]
}

// At returns the color at (x, y) as color.NRGBA.
func (b *ImageBuf) At(x, y int) color.NRGBA {
	r, g, bl, a := b.GetRGBA(x, y)
	return color.NRGBA{R: r, G: g, B: bl, A: a}
}

// SetRGBA sets the color at (x, y).
// Returns ErrOutOfBounds if coordinates are outside image bounds.
func (b *ImageBuf) SetRGBA(x, y int, r, g, bl, a uint8) error {
	off := b.PixelOffset(x, y)
	if off < 0 {
		return ErrOutOfBounds
	}
	b.data[off] = r
	b.data[off+1] = g
	b.data[off+2] = bl
	b.data[off+3] = a
	return nil
}

// Fill sets all pixels to c.
func (b *ImageBuf) Fill(c color.NRGBA) {
	for i := 0; i < len(b.data); i += bytesPerPixel {
		b.data[i] = c.R
		b.data[i+1] = c.G
		b.data[i+2] = c.B
		b.data[i+3] = c.A
	}
}

// AverageColor returns the channel-wise mean of all pixels, rounded to the
// nearest integer. It is the usual colour for samples that fall off the
// image.
func (b *ImageBuf) AverageColor() color.NRGBA {
	var sum [bytesPerPixel]uint64
	for i := 0; i < len(b.data); i += bytesPerPixel {
		sum[0] += uint64(b.data[i])
		sum[1] += uint64(b.data[i+1])
		sum[2] += uint64(b.data[i+2])
		sum[3] += uint64(b.data[i+3])
	}
	n := uint64(b.width * b.height)
	if n == 0 {
		return color.NRGBA{}
	}
	avg := func(s uint64) uint8 { return uint8((s + n/2) / n) }
	return color.NRGBA{R: avg(sum[0]), G: avg(sum[1]), B: avg(sum[2]), A: avg(sum[3])}
}

// ByteSize returns the total size of the image data in bytes.
func (b *ImageBuf) ByteSize() int {
	return len(b.data)
}

// FromStdImage creates an ImageBuf from a standard library image.Image.
func FromStdImage(img image.Image) *ImageBuf {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= 0 || height <= 0 {
		return &ImageBuf{}
	}

	buf, _ := NewImageBuf(width, height)

	// Fast path for NRGBA images
	if nrgba, ok := img.(*image.NRGBA); ok {
		for y := range height {
			srcStart := nrgba.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(buf.RowBytes(y), nrgba.Pix[srcStart:srcStart+width*bytesPerPixel])
		}
		return buf
	}

	// Generic path; color.NRGBAModel undoes premultiplication
	for y := range height {
		for x := range width {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			_ = buf.SetRGBA(x, y, c.R, c.G, c.B, c.A)
		}
	}
	return buf
}

// ToStdImage converts the ImageBuf to an *image.NRGBA sharing no memory
// with b.
func (b *ImageBuf) ToStdImage() *image.NRGBA {
	nrgba := image.NewNRGBA(image.Rect(0, 0, b.width, b.height))
	copy(nrgba.Pix, b.data)
	return nrgba
}
