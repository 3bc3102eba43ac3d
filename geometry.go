package kaleido

import (
	"errors"
	"strings"

	"github.com/gogpu/kaleido/internal/parallel"
)

// Geometry configuration errors.
var (
	// ErrInvalidParameter is returned when a geometry parameter is out of range.
	ErrInvalidParameter = errors.New("kaleido: invalid geometry parameter")

	// ErrNotHyperbolic is returned when a triangle group signature does not
	// describe a hyperbolic tiling.
	ErrNotHyperbolic = errors.New("kaleido: triangle group is not hyperbolic")

	// ErrUnknownGeometry is returned by NewGeometry for an unregistered name.
	ErrUnknownGeometry = errors.New("kaleido: unknown geometry")
)

// Sample is one grid entry lent to a Kernel. Kernels rewrite it in place.
type Sample struct {
	X, Y      float64
	Structure uint8
	Lyapunov  float64
}

// Kernel maps a single sample. Kernels are pure: they read nothing but their
// own precomputed parameters, so disjoint parts of a grid can be mapped
// concurrently.
//
// Numerical degeneracies never fail a kernel. A kernel marks them by writing
// a structure code of StructureExcluded or above, or infinite coordinates.
type Kernel func(s *Sample)

// GeometryMap is a non-linear map from map space to map space.
//
// Prepare validates the parameters and precomputes everything that does not
// depend on the pixel. A Prepare error is a configuration error: callers must
// not touch the grid when it fails.
type GeometryMap interface {
	Name() string
	Prepare() (Kernel, error)
}

// Apply maps every sample of g whose structure code is below
// StructureExcluded. The map is prepared before the grid is touched, so a
// configuration error leaves g unchanged.
func Apply(g *Grid, m GeometryMap) error {
	k, err := prepare(m)
	if err != nil {
		return err
	}
	applyRange(g, k, 0, g.Len())
	return nil
}

// ApplyParallel is Apply with the rows of g split into bands that are
// mapped on workers goroutines (GOMAXPROCS when workers <= 0). Kernels are
// pure, so the result equals Apply.
func ApplyParallel(g *Grid, m GeometryMap, workers int) error {
	k, err := prepare(m)
	if err != nil {
		return err
	}
	pool := parallel.NewWorkerPool(workers)
	defer pool.Close()

	pool.ForEachBand(g.Height, pool.BandSize(g.Height), func(rowStart, rowEnd int) {
		applyRange(g, k, rowStart*g.Width, rowEnd*g.Width)
	})
	return nil
}

// prepare wraps GeometryMap.Prepare and logs rejected configurations once.
func prepare(m GeometryMap) (Kernel, error) {
	k, err := m.Prepare()
	if err != nil {
		Logger().Error("kaleido: geometry rejected", "geometry", m.Name(), "err", err)
		return nil, err
	}
	return k, nil
}

// applyRange runs k over samples [start, end).
func applyRange(g *Grid, k Kernel, start, end int) {
	var s Sample
	for i := start; i < end; i++ {
		if g.Structure[i] >= StructureExcluded {
			continue
		}
		s = Sample{X: g.X[i], Y: g.Y[i], Structure: g.Structure[i], Lyapunov: g.Lyapunov[i]}
		k(&s)
		g.X[i], g.Y[i] = s.X, s.Y
		g.Structure[i] = s.Structure
		g.Lyapunov[i] = s.Lyapunov
	}
}

// markDiverged writes infinite coordinates into s.
func markDiverged(s *Sample) {
	p := Infinity()
	s.X, s.Y = p.X, p.Y
}

// Identity leaves every sample unchanged.
type Identity struct{}

// Name returns "identity".
func (Identity) Name() string { return "identity" }

// Prepare returns a kernel that does nothing.
func (Identity) Prepare() (Kernel, error) {
	return func(*Sample) {}, nil
}

// Compose applies Maps in order. A sample that a stage marks excluded or
// diverged is not passed to the following stages.
type Compose struct {
	Maps []GeometryMap
}

// Name joins the stage names with "+".
func (c Compose) Name() string {
	names := make([]string, len(c.Maps))
	for i, m := range c.Maps {
		names[i] = m.Name()
	}
	return strings.Join(names, "+")
}

// Prepare prepares every stage; the first stage error is returned.
func (c Compose) Prepare() (Kernel, error) {
	kernels := make([]Kernel, 0, len(c.Maps))
	for _, m := range c.Maps {
		k, err := m.Prepare()
		if err != nil {
			return nil, err
		}
		kernels = append(kernels, k)
	}
	return func(s *Sample) {
		for _, k := range kernels {
			k(s)
			if s.Structure >= StructureExcluded || !isFinite(s.X) || !isFinite(s.Y) {
				return
			}
		}
	}, nil
}
