package kaleido

import (
	"image"

	intImage "github.com/gogpu/kaleido/internal/image"
)

// ImageBuf is a public alias for the internal source image buffer: RGBA8,
// non-premultiplied, sampled in pixel coordinates.
type ImageBuf = intImage.ImageBuf

// InterpolationMode defines how the input image is sampled.
type InterpolationMode = intImage.InterpolationMode

// Image interpolation modes.
const (
	// InterpNearest selects the pixel containing the sample point.
	InterpNearest = intImage.InterpNearest

	// InterpBilinear interpolates between the 4 nearest pixel centres.
	InterpBilinear = intImage.InterpBilinear

	// InterpBicubic uses Catmull-Rom weights over a 4x4 neighbourhood and
	// fails within one pixel of the image border.
	InterpBicubic = intImage.InterpBicubic
)

// ParseInterpolation parses "nearest", "linear"/"bilinear" or
// "cubic"/"bicubic".
func ParseInterpolation(s string) (InterpolationMode, error) {
	return intImage.ParseInterpolationMode(s)
}

// LoadImage loads an input image. PNG, JPEG, GIF, BMP, TIFF and WebP are
// recognised by content.
func LoadImage(path string) (*ImageBuf, error) {
	return intImage.LoadImage(path)
}

// LoadImageMax loads an input image and shrinks it so that neither edge
// exceeds maxEdge. maxEdge <= 0 loads the image at full size.
func LoadImageMax(path string, maxEdge int) (*ImageBuf, error) {
	return intImage.LoadImageMax(path, maxEdge)
}

// ImageFromStd converts a standard library image to an ImageBuf.
func ImageFromStd(img image.Image) *ImageBuf {
	return intImage.FromStdImage(img)
}
