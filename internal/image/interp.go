package image

import (
	"fmt"
	"image/color"
	"math"
	"strings"
)

// InterpolationMode defines how the source image is sampled.
type InterpolationMode uint8

const (
	// InterpNearest selects the pixel containing the sample point.
	InterpNearest InterpolationMode = iota

	// InterpBilinear performs linear interpolation between 4 neighboring
	// pixel centres.
	InterpBilinear

	// InterpBicubic performs Catmull-Rom interpolation over a 4x4
	// neighborhood. It needs a one pixel border inside the image.
	InterpBicubic
)

// String returns a string representation of the interpolation mode.
func (m InterpolationMode) String() string {
	switch m {
	case InterpNearest:
		return "Nearest"
	case InterpBilinear:
		return "Bilinear"
	case InterpBicubic:
		return "Bicubic"
	default:
		return "Unknown"
	}
}

// ParseInterpolationMode parses a mode name. Both the String form and the
// short names "nearest", "linear" and "cubic" are accepted, in any case.
func ParseInterpolationMode(s string) (InterpolationMode, error) {
	switch strings.ToLower(s) {
	case "nearest":
		return InterpNearest, nil
	case "bilinear", "linear":
		return InterpBilinear, nil
	case "bicubic", "cubic":
		return InterpBicubic, nil
	default:
		return 0, fmt.Errorf("image: unknown interpolation %q", s)
	}
}

// Sample samples the image at pixel coordinates (x, y) with the given mode.
// The boolean result is false when (x, y) lies outside the region the mode
// can serve; the colour is then zero.
func Sample(img *ImageBuf, x, y float64, mode InterpolationMode) (color.NRGBA, bool) {
	switch mode {
	case InterpNearest:
		return img.Nearest(x, y)
	case InterpBilinear:
		return img.Linear(x, y)
	case InterpBicubic:
		return img.Cubic(x, y)
	default:
		return color.NRGBA{}, false
	}
}

// inside reports whether (x, y) lies in [lo, w-lo) × [lo, h-lo). NaN fails.
func (b *ImageBuf) inside(x, y, lo float64) bool {
	return x >= lo && x < float64(b.width)-lo && y >= lo && y < float64(b.height)-lo
}

// Nearest returns the pixel containing (x, y).
func (b *ImageBuf) Nearest(x, y float64) (color.NRGBA, bool) {
	if !b.inside(x, y, 0) {
		return color.NRGBA{}, false
	}
	return b.At(int(x), int(y)), true
}

// Linear interpolates between the four pixel centres around (x, y). Edge
// pixels are extended by half a pixel so that the whole image rectangle is
// covered.
func (b *ImageBuf) Linear(x, y float64) (color.NRGBA, bool) {
	if !b.inside(x, y, 0) {
		return color.NRGBA{}, false
	}
	w, h := b.Bounds()

	fx := x - 0.5
	fy := y - 0.5
	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	x1 := clamp(x0+1, 0, w-1)
	y1 := clamp(y0+1, 0, h-1)
	x0 = clamp(x0, 0, w-1)
	y0 = clamp(y0, 0, h-1)

	r00, g00, b00, a00 := b.GetRGBA(x0, y0)
	r10, g10, b10, a10 := b.GetRGBA(x1, y0)
	r01, g01, b01, a01 := b.GetRGBA(x0, y1)
	r11, g11, b11, a11 := b.GetRGBA(x1, y1)

	return color.NRGBA{
		R: toByte(lerp2D(float64(r00), float64(r10), float64(r01), float64(r11), tx, ty)),
		G: toByte(lerp2D(float64(g00), float64(g10), float64(g01), float64(g11), tx, ty)),
		B: toByte(lerp2D(float64(b00), float64(b10), float64(b01), float64(b11), tx, ty)),
		A: toByte(lerp2D(float64(a00), float64(a10), float64(a01), float64(a11), tx, ty)),
	}, true
}

// Cubic performs Catmull-Rom interpolation around (x, y). Points closer
// than one pixel to the border fail.
func (b *ImageBuf) Cubic(x, y float64) (color.NRGBA, bool) {
	if !b.inside(x, y, 1) {
		return color.NRGBA{}, false
	}
	w, h := b.Bounds()

	fx := x - 0.5
	fy := y - 0.5
	ix := int(math.Floor(fx))
	iy := int(math.Floor(fy))
	tx := fx - float64(ix)
	ty := fy - float64(iy)

	var rVals, gVals, bVals, aVals [4][4]float64
	for dy := -1; dy <= 2; dy++ {
		for dx := -1; dx <= 2; dx++ {
			pr, pg, pb, pa := b.GetRGBA(clamp(ix+dx, 0, w-1), clamp(iy+dy, 0, h-1))
			rVals[dy+1][dx+1] = float64(pr)
			gVals[dy+1][dx+1] = float64(pg)
			bVals[dy+1][dx+1] = float64(pb)
			aVals[dy+1][dx+1] = float64(pa)
		}
	}

	return color.NRGBA{
		R: toByte(bicubicInterp(rVals, tx, ty)),
		G: toByte(bicubicInterp(gVals, tx, ty)),
		B: toByte(bicubicInterp(bVals, tx, ty)),
		A: toByte(bicubicInterp(aVals, tx, ty)),
	}, true
}

// clamp clamps an integer value to [minVal, maxVal].
//
//nolint:unparam // minVal is always 0 currently, but function is general-purpose
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// toByte rounds v to the nearest byte, saturating outside [0, 255].
func toByte(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v + 0.5)
	}
}

// lerp performs linear interpolation between a and b.
func lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// lerp2D performs bilinear interpolation on a 2x2 grid.
func lerp2D(v00, v10, v01, v11, tx, ty float64) float64 {
	v0 := lerp(v00, v10, tx)
	v1 := lerp(v01, v11, tx)
	return lerp(v0, v1, ty)
}

// cubicWeight computes the Catmull-Rom cubic weight for distance t.
func cubicWeight(t float64) float64 {
	// Catmull-Rom spline (Mitchell-Netravali with B=0, C=0.5):
	// |t| < 1: (1.5|t|³ - 2.5|t|² + 1)
	// 1 ≤ |t| < 2: (-0.5|t|³ + 2.5|t|² - 4|t| + 2)
	// |t| ≥ 2: 0
	absT := math.Abs(t)
	if absT < 1 {
		return 1.5*absT*absT*absT - 2.5*absT*absT + 1.0
	}
	if absT < 2 {
		return -0.5*absT*absT*absT + 2.5*absT*absT - 4.0*absT + 2.0
	}
	return 0
}

// bicubicInterp performs bicubic interpolation on a 4x4 grid using Catmull-Rom weights.
func bicubicInterp(vals [4][4]float64, tx, ty float64) float64 {
	wx := [4]float64{
		cubicWeight(tx + 1),
		cubicWeight(tx),
		cubicWeight(tx - 1),
		cubicWeight(tx - 2),
	}
	wy := [4]float64{
		cubicWeight(ty + 1),
		cubicWeight(ty),
		cubicWeight(ty - 1),
		cubicWeight(ty - 2),
	}

	var result float64
	for i := range 4 {
		for j := range 4 {
			//nolint:gosec // G602: False positive - arrays are fixed size [4][4] and loop is bounded by 4
			result += vals[i][j] * wx[j] * wy[i]
		}
	}
	return result
}
