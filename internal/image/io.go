package image

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when the image format is not supported.
	ErrUnsupportedFormat = errors.New("image: unsupported format")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("image: empty data")
)

// DefaultJPEGQuality is used by Save for .jpg and .jpeg files.
const DefaultJPEGQuality = 90

// LoadImage loads an image from the given file path. The format is detected
// from the content: PNG, JPEG, GIF, BMP, TIFF and WebP are supported.
func LoadImage(path string) (*ImageBuf, error) {
	return LoadImageMax(path, 0)
}

// LoadImageMax loads an image and shrinks it so that neither edge exceeds
// maxEdge, keeping the aspect ratio. maxEdge <= 0 disables the bound.
func LoadImageMax(path string, maxEdge int) (*ImageBuf, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("image: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	img, err := decodeStd(f)
	if err != nil {
		return nil, err
	}
	return FromStdImage(Downscale(img, maxEdge)), nil
}

// LoadImageFromBytes decodes an image from a byte slice.
func LoadImageFromBytes(data []byte) (*ImageBuf, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	return Decode(bytes.NewReader(data))
}

// Decode decodes an image from the given reader, auto-detecting the format.
func Decode(r io.Reader) (*ImageBuf, error) {
	img, err := decodeStd(r)
	if err != nil {
		return nil, err
	}
	return FromStdImage(img), nil
}

func decodeStd(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("image: decode: %w", ErrUnsupportedFormat)
		}
		return nil, fmt.Errorf("image: decode: %w", err)
	}
	return img, nil
}

// Downscale returns img shrunk with Lanczos3 resampling so that neither
// edge exceeds maxEdge. Images that already fit, and maxEdge <= 0, return
// img itself.
func Downscale(img image.Image, maxEdge int) image.Image {
	if maxEdge <= 0 {
		return img
	}
	b := img.Bounds()
	if b.Dx() <= maxEdge && b.Dy() <= maxEdge {
		return img
	}
	return resize.Thumbnail(uint(maxEdge), uint(maxEdge), img, resize.Lanczos3)
}

// Format is an output encoding.
type Format uint8

const (
	// FormatPNG encodes lossless PNG.
	FormatPNG Format = iota

	// FormatJPEG encodes JPEG with DefaultJPEGQuality.
	FormatJPEG
)

// FormatFromPath picks the output format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG, nil
	case ".jpg", ".jpeg":
		return FormatJPEG, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case FormatPNG:
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("image: encode PNG: %w", err)
		}
	case FormatJPEG:
		if err := jpeg.Encode(w, img, &jpeg.Options{Quality: DefaultJPEGQuality}); err != nil {
			return fmt.Errorf("image: encode JPEG: %w", err)
		}
	default:
		return ErrUnsupportedFormat
	}
	return nil
}

// Save writes img to path, choosing PNG or JPEG from the extension.
func Save(path string, img image.Image) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("image: create file: %w", err)
	}

	if err := Encode(f, img, format); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
