package kaleido

import (
	"fmt"
	"slices"
	"strings"
)

// Params collects the parameters of every geometry variant so that a map
// can be selected by name from configuration. Each variant reads only the
// fields it needs.
type Params struct {
	// Triangle group signature for kaleidoscope and bulatov.
	K, M, N int

	// Dihedral mirror switch.
	Mirror bool

	// Circle and Mode for inversion.
	Circle Circle
	Mode   InversionMode

	// Periods around the ring for bulatov.
	Periods int

	// MaxIterations for kaleidoscope.
	MaxIterations int

	// Singularity and exponential parameters. Order doubles as the
	// dihedral order.
	Amplitude  float64
	Constant   complex128
	ZPow       float64
	Order      int
	Roots      []complex128
	A, B, C, D complex128
}

// DefaultParams returns parameters that give a valid map for every
// registered name.
func DefaultParams() Params {
	return Params{
		K:             7,
		M:             3,
		N:             2,
		Mirror:        true,
		Circle:        Circle{Center: Pt(0, 0), Radius: 1},
		Mode:          InsideOut,
		Periods:       1,
		MaxIterations: DefaultMaxIterations,
		Amplitude:     1,
		ZPow:          1,
		Order:         1,
		Roots:         []complex128{1},
		A:             1,
		D:             1,
	}
}

var geometryBuilders = map[string]func(Params) GeometryMap{
	"identity": func(Params) GeometryMap {
		return Identity{}
	},
	"dihedral": func(p Params) GeometryMap {
		return Dihedral{N: p.Order, Mirror: p.Mirror}
	},
	"inversion": func(p Params) GeometryMap {
		return CircleInversion{Circle: p.Circle, Mode: p.Mode}
	},
	"kaleidoscope": func(p Params) GeometryMap {
		return Kaleidoscope{K: p.K, M: p.M, N: p.N, MaxIterations: p.MaxIterations}
	},
	"bulatov": func(p Params) GeometryMap {
		return Bulatov{K: p.K, M: p.M, N: p.N, Periods: p.Periods}
	},
	"singularity": func(p Params) GeometryMap {
		return Singularity{
			Amplitude: p.Amplitude, Constant: p.Constant, ZPow: p.ZPow,
			Order: p.Order, Roots: slices.Clone(p.Roots),
		}
	},
	"exponential": func(p Params) GeometryMap {
		return Exponential{ZPower: p.ZPow, Order: p.Order, A: p.A, B: p.B, C: p.C, D: p.D}
	},
}

// geometryAliases maps alternative names to registered ones.
var geometryAliases = map[string]string{
	"donothing": "identity",
	"none":      "identity",
	"band":      "bulatov",
}

// GeometryNames returns the registered geometry names in sorted order.
func GeometryNames() []string {
	names := make([]string, 0, len(geometryBuilders))
	for name := range geometryBuilders {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// NewGeometry builds the map registered under name from p. Names joined
// with "+" build a Compose of the stages, e.g. "bulatov+kaleidoscope".
// Names are case-insensitive. Parameters are only validated when the map is
// prepared.
func NewGeometry(name string, p Params) (GeometryMap, error) {
	parts := strings.Split(name, "+")
	maps := make([]GeometryMap, 0, len(parts))
	for _, part := range parts {
		key := strings.ToLower(strings.TrimSpace(part))
		if alias, ok := geometryAliases[key]; ok {
			key = alias
		}
		build, ok := geometryBuilders[key]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownGeometry, part)
		}
		maps = append(maps, build(p))
	}
	if len(maps) == 1 {
		return maps[0], nil
	}
	return Compose{Maps: maps}, nil
}
