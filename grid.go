package kaleido

import (
	"errors"
	"fmt"
	"math"
)

// Structure codes stored in Grid.Structure.
//
// Codes below StructureExcluded are free for the geometry maps: sector
// index, reflection parity or iteration count. Codes at or above
// StructureExcluded mark pixels that further mapping stages skip.
const (
	// StructureExcluded marks a pixel as already resolved.
	StructureExcluded uint8 = 128

	// StructureInvalid marks a pixel that fell outside a map's domain.
	StructureInvalid uint8 = 200
)

// ErrInvalidSize is returned when a grid or canvas dimension is not positive.
var ErrInvalidSize = errors.New("kaleido: invalid size")

// PixelStatus classifies a grid entry after mapping.
type PixelStatus uint8

const (
	// StatusValid means the coordinates can be sampled.
	StatusValid PixelStatus = iota

	// StatusOutOfDomain means the structure code is StructureExcluded or above.
	StatusOutOfDomain

	// StatusDiverged means a coordinate is infinite or NaN.
	StatusDiverged
)

// String returns a string representation of the status.
func (s PixelStatus) String() string {
	switch s {
	case StatusValid:
		return "Valid"
	case StatusOutOfDomain:
		return "OutOfDomain"
	case StatusDiverged:
		return "Diverged"
	default:
		return "Unknown"
	}
}

// Grid holds one map-space sample per output pixel in parallel flat arrays.
// Entry i belongs to pixel (i%Width, i/Width).
//
// A Grid is owned by a single Renderer; geometry maps borrow it for the
// duration of one Apply call.
type Grid struct {
	Width, Height int

	X, Y      []float64
	Structure []uint8

	// Lyapunov accumulates the local expansion of the geometry maps.
	// Negative values mark points whose iteration did not settle.
	Lyapunov []float64
}

// NewGrid allocates a grid for width x height pixels.
func NewGrid(width, height int) (*Grid, error) {
	g := &Grid{}
	if _, err := g.Resize(width, height); err != nil {
		return nil, err
	}
	return g, nil
}

// Resize sets the grid dimensions. The arrays are reallocated only when the
// pixel count changes; Resize reports whether that happened.
func (g *Grid) Resize(width, height int) (bool, error) {
	if width <= 0 || height <= 0 {
		return false, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	g.Width, g.Height = width, height

	n := width * height
	if len(g.X) == n {
		return false, nil
	}
	g.X = make([]float64, n)
	g.Y = make([]float64, n)
	g.Structure = make([]uint8, n)
	g.Lyapunov = make([]float64, n)
	return true, nil
}

// Len returns the number of samples.
func (g *Grid) Len() int {
	return len(g.X)
}

// Index returns the flat index of pixel (col, row).
func (g *Grid) Index(col, row int) int {
	return row*g.Width + col
}

// Fill writes t.Apply(col, row) into every sample, resets the structure code
// to structure and the Lyapunov coefficient to 1.
func (g *Grid) Fill(t Transform, structure uint8) {
	g.fillRows(t, structure, 0, g.Height)
}

func (g *Grid) fillRows(t Transform, structure uint8, rowStart, rowEnd int) {
	for row := rowStart; row < rowEnd; row++ {
		i := row * g.Width
		for col := range g.Width {
			g.X[i], g.Y[i] = t.ApplyXY(float64(col), float64(row))
			g.Structure[i] = structure
			g.Lyapunov[i] = 1
			i++
		}
	}
}

// Point returns the coordinates of sample i.
func (g *Grid) Point(i int) Point {
	return Point{X: g.X[i], Y: g.Y[i]}
}

// Status classifies sample i. Out-of-domain structure codes take precedence
// over diverged coordinates.
func (g *Grid) Status(i int) PixelStatus {
	if g.Structure[i] >= StructureExcluded {
		return StatusOutOfDomain
	}
	if x, y := g.X[i], g.Y[i]; math.IsInf(x, 0) || math.IsInf(y, 0) || math.IsNaN(x) || math.IsNaN(y) {
		return StatusDiverged
	}
	return StatusValid
}

// StatusCounts returns the number of samples in each PixelStatus.
func (g *Grid) StatusCounts() (valid, outOfDomain, diverged int) {
	for i := range g.Len() {
		switch g.Status(i) {
		case StatusValid:
			valid++
		case StatusOutOfDomain:
			outOfDomain++
		case StatusDiverged:
			diverged++
		}
	}
	return valid, outOfDomain, diverged
}
