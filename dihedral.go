package kaleido

import (
	"fmt"
	"math"
)

// Dihedral folds the plane into the fundamental sector of a rotation group.
//
// With Mirror set the group is the dihedral group of order N (N rotations and
// N reflections) and the fundamental sector is [0, π/N). Without Mirror only
// the N rotations are used and the sector is [0, 2π/N).
//
// The kernel stores the sector index in the structure code. For the mirrored
// group the index counts half-sectors, so its parity tells whether a
// reflection was applied.
type Dihedral struct {
	N      int
	Mirror bool
}

// Name returns "dihedral".
func (d Dihedral) Name() string { return "dihedral" }

// Prepare validates the order.
func (d Dihedral) Prepare() (Kernel, error) {
	if d.N < 1 {
		return nil, fmt.Errorf("%w: dihedral order %d", ErrInvalidParameter, d.N)
	}
	return func(s *Sample) {
		var sector int
		s.X, s.Y, sector = d.Reduce(s.X, s.Y)
		s.Structure = uint8(sector % int(StructureExcluded))
	}, nil
}

// SectorAngle returns the opening angle of the fundamental sector.
func (d Dihedral) SectorAngle() float64 {
	if d.Mirror {
		return math.Pi / float64(d.N)
	}
	return 2 * math.Pi / float64(d.N)
}

// Reduce maps (x, y) into the fundamental sector and returns the index of the
// sector it came from, in [0, 2N) with Mirror and [0, N) without. Points
// already inside the sector are returned unchanged with index 0.
func (d Dihedral) Reduce(x, y float64) (float64, float64, int) {
	width := d.SectorAngle()
	theta := math.Atan2(y, x)
	if theta >= 0 && theta < width {
		return x, y, 0
	}

	sector := int(math.Floor(theta / width))
	theta -= float64(sector) * width
	theta = math.Max(0, math.Min(theta, math.Nextafter(width, 0)))
	if d.Mirror && sector&1 != 0 {
		theta = width - theta
	}

	sectors := d.N
	if d.Mirror {
		sectors = 2 * d.N
	}
	sector %= sectors
	if sector < 0 {
		sector += sectors
	}

	r := math.Hypot(x, y)
	return r * math.Cos(theta), r * math.Sin(theta), sector
}
