package kaleido

import (
	"fmt"
	"math"
)

// DefaultMaxIterations bounds the reflection loop of the Kaleidoscope map.
const DefaultMaxIterations = 100

// angleSumTolerance separates the three triangle geometries.
const angleSumTolerance = 1e-6

// TriangleGeometry is the curvature class of a triangle group.
type TriangleGeometry uint8

const (
	// Elliptic triangle groups have 1/k+1/m+1/n > 1 and tile the sphere.
	Elliptic TriangleGeometry = iota

	// Euclidean triangle groups have 1/k+1/m+1/n = 1 and tile the plane.
	Euclidean

	// Hyperbolic triangle groups have 1/k+1/m+1/n < 1 and tile the
	// Poincaré disc.
	Hyperbolic
)

// String returns a string representation of the geometry.
func (g TriangleGeometry) String() string {
	switch g {
	case Elliptic:
		return "Elliptic"
	case Euclidean:
		return "Euclidean"
	case Hyperbolic:
		return "Hyperbolic"
	default:
		return "Unknown"
	}
}

// ClassifyTriangle returns the geometry of the (k, m, n) triangle group.
func ClassifyTriangle(k, m, n int) TriangleGeometry {
	sum := 1/float64(k) + 1/float64(m) + 1/float64(n)
	switch {
	case sum > 1+angleSumTolerance:
		return Elliptic
	case sum < 1-angleSumTolerance:
		return Hyperbolic
	default:
		return Euclidean
	}
}

// triangle holds the three mirrors of a (k, m, n) triangle.
//
// The first two mirrors are the x-axis and the line through the origin at
// angle π/k; together they generate the dihedral group of order k. The third
// mirror meets them at angles π/n and π/m. It is a circle orthogonal to the
// unit circle (hyperbolic), a circle meeting the unit circle in antipodal
// points (elliptic, stereographic projection of a great circle) or the line
// p·normal = 1 (Euclidean).
type triangle struct {
	geometry TriangleGeometry
	dihedral Dihedral

	circle Circle
	normal Point
}

func newTriangle(k, m, n int) (triangle, error) {
	if k < 2 || m < 2 || n < 2 {
		return triangle{}, fmt.Errorf("%w: triangle (%d, %d, %d)", ErrInvalidParameter, k, m, n)
	}

	alpha := math.Pi / float64(k)
	// Centre direction for a unit radius third mirror: its distance to the
	// x-axis is cos(π/n), its distance to the second mirror is cos(π/m).
	cy := math.Cos(math.Pi / float64(n))
	cx := (math.Cos(math.Pi/float64(m)) + cy*math.Cos(alpha)) / math.Sin(alpha)
	c2 := cx*cx + cy*cy

	t := triangle{
		geometry: ClassifyTriangle(k, m, n),
		dihedral: Dihedral{N: k, Mirror: true},
	}
	switch t.geometry {
	case Hyperbolic:
		r := 1 / math.Sqrt(c2-1)
		t.circle = Circle{Center: Pt(r*cx, r*cy), Radius: r}
	case Elliptic:
		r := 1 / math.Sqrt(1-c2)
		t.circle = Circle{Center: Pt(r*cx, r*cy), Radius: r}
	default:
		l := math.Sqrt(c2)
		t.normal = Pt(cx/l, cy/l)
	}
	return t, nil
}

// Kaleidoscope folds the plane into the fundamental triangle of the (K, M, N)
// triangle group. Each iteration reduces the point by the dihedral group of
// order K and then reflects it in the third mirror if it lies on the wrong
// side, until no reflection is needed or MaxIterations is reached.
//
// The structure code is the parity of the number of reflections, which
// gives the classic two-coloured tiling. The Lyapunov coefficient is
// multiplied by the product of the inversion scale factors, or set to -1 when
// the iteration budget runs out. In the hyperbolic case points outside the
// Poincaré disc are marked StructureInvalid.
type Kaleidoscope struct {
	K, M, N       int
	MaxIterations int
}

// Name returns "kaleidoscope".
func (k Kaleidoscope) Name() string { return "kaleidoscope" }

// Geometry returns the curvature class of the triangle group.
func (k Kaleidoscope) Geometry() TriangleGeometry {
	return ClassifyTriangle(k.K, k.M, k.N)
}

// Prepare solves the triangle and validates the iteration budget.
func (k Kaleidoscope) Prepare() (Kernel, error) {
	t, err := newTriangle(k.K, k.M, k.N)
	if err != nil {
		return nil, err
	}
	maxIter := k.MaxIterations
	if maxIter == 0 {
		maxIter = DefaultMaxIterations
	}
	if maxIter < 0 {
		return nil, fmt.Errorf("%w: max iterations %d", ErrInvalidParameter, maxIter)
	}

	cx, cy := t.circle.Center.X, t.circle.Center.Y
	r2 := t.circle.Radius * t.circle.Radius
	nx, ny := t.normal.X, t.normal.Y

	return func(s *Sample) {
		x, y := s.X, s.Y
		if t.geometry == Hyperbolic && x*x+y*y >= 1 {
			s.Structure = StructureInvalid
			return
		}

		lyapunov := 1.0
		reflections := 0
		settled := false
		for range maxIter {
			var sector int
			x, y, sector = t.dihedral.Reduce(x, y)
			reflections += sector

			switch t.geometry {
			case Euclidean:
				d := x*nx + y*ny - 1
				if d <= 0 {
					settled = true
				} else {
					x -= 2 * d * nx
					y -= 2 * d * ny
					reflections++
				}
			default:
				dx, dy := x-cx, y-cy
				d2 := dx*dx + dy*dy
				// The fundamental triangle lies outside the hyperbolic mirror
				// and inside the elliptic one.
				if t.geometry == Hyperbolic {
					settled = d2 >= r2
				} else {
					settled = d2 <= r2
				}
				if !settled {
					f := r2 / d2
					x, y = cx+f*dx, cy+f*dy
					lyapunov *= f
					reflections++
				}
			}
			if settled {
				break
			}
		}

		s.X, s.Y = x, y
		s.Structure = uint8(reflections & 1)
		if settled {
			s.Lyapunov *= lyapunov
		} else {
			s.Lyapunov = -1
		}
	}, nil
}
