package kaleido

import (
	"fmt"
	"math"
)

// Circle is a circle in map space.
type Circle struct {
	Center Point
	Radius float64
}

// Contains reports whether p lies strictly inside the circle.
func (c Circle) Contains(p Point) bool {
	return p.Sub(c.Center).LengthSquared() < c.Radius*c.Radius
}

// Invert returns the image of p under inversion in the circle:
// center + radius²/|p-center|² · (p-center). The center itself has no image;
// Invert returns Infinity() and false for it.
func (c Circle) Invert(p Point) (Point, bool) {
	d := p.Sub(c.Center)
	d2 := d.LengthSquared()
	if d2 == 0 {
		return Infinity(), false
	}
	return c.Center.Add(d.Mul(c.Radius * c.Radius / d2)), true
}

// InversionMode selects which side of the circle is inverted.
type InversionMode uint8

const (
	// InsideOut inverts points inside the circle to the outside.
	InsideOut InversionMode = iota

	// OutsideIn inverts points outside the circle to the inside.
	OutsideIn
)

// String returns a string representation of the mode.
func (m InversionMode) String() string {
	switch m {
	case InsideOut:
		return "InsideOut"
	case OutsideIn:
		return "OutsideIn"
	default:
		return "Unknown"
	}
}

// CircleInversion inverts the points on one side of a circle and leaves the
// others alone. The structure code is 1 for inverted points and 0 otherwise;
// the Lyapunov coefficient is multiplied by the local scale factor r²/d².
type CircleInversion struct {
	Circle Circle
	Mode   InversionMode
}

// Name returns "inversion".
func (c CircleInversion) Name() string { return "inversion" }

// Prepare validates the radius and mode.
func (c CircleInversion) Prepare() (Kernel, error) {
	r := c.Circle.Radius
	if !(r > 0) || math.IsInf(r, 0) {
		return nil, fmt.Errorf("%w: inversion radius %v", ErrInvalidParameter, r)
	}
	if c.Mode > OutsideIn {
		return nil, fmt.Errorf("%w: inversion mode %d", ErrInvalidParameter, c.Mode)
	}

	cx, cy := c.Circle.Center.X, c.Circle.Center.Y
	r2 := r * r
	insideOut := c.Mode == InsideOut
	return func(s *Sample) {
		dx, dy := s.X-cx, s.Y-cy
		d2 := dx*dx + dy*dy
		if insideOut != (d2 < r2) || d2 == r2 {
			s.Structure = 0
			return
		}
		if d2 == 0 {
			markDiverged(s)
			return
		}
		f := r2 / d2
		s.X, s.Y = cx+f*dx, cy+f*dy
		s.Structure = 1
		s.Lyapunov *= f
	}, nil
}
