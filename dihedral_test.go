package kaleido

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"
)

func TestDihedral_ReduceIntoSector(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	for _, mirror := range []bool{true, false} {
		for _, n := range []int{1, 2, 3, 5, 8} {
			d := Dihedral{N: n, Mirror: mirror}
			width := d.SectorAngle()
			sectors := n
			if mirror {
				sectors = 2 * n
			}
			for range 500 {
				x, y := 4*rng.Float64()-2, 4*rng.Float64()-2
				rx, ry, sector := d.Reduce(x, y)

				if theta := math.Atan2(ry, rx); theta < -1e-12 || theta > width+1e-12 {
					t.Fatalf("N=%d mirror=%v: (%v, %v) reduced to angle %v, want [0, %v)", n, mirror, x, y, theta, width)
				}
				if r0, r1 := math.Hypot(x, y), math.Hypot(rx, ry); math.Abs(r0-r1) > 1e-12 {
					t.Fatalf("N=%d mirror=%v: radius changed from %v to %v", n, mirror, r0, r1)
				}
				if sector < 0 || sector >= sectors {
					t.Fatalf("N=%d mirror=%v: sector %d out of [0, %d)", n, mirror, sector, sectors)
				}
			}
		}
	}
}

func TestDihedral_FundamentalSectorIsFixed(t *testing.T) {
	d := Dihedral{N: 6, Mirror: true}
	for _, p := range []Point{{0.5, 0}, {1, 0.2}, {0.3, 0.1}} {
		x, y, sector := d.Reduce(p.X, p.Y)
		if x != p.X || y != p.Y || sector != 0 {
			t.Errorf("Reduce(%v) = (%v, %v, %d), want unchanged with sector 0", p, x, y, sector)
		}
	}
}

func TestDihedral_MirrorParity(t *testing.T) {
	d := Dihedral{N: 4, Mirror: true}

	// Angle 3π/8 lies in the second half-sector, the mirror image of π/8.
	a := 3 * math.Pi / 8
	x, y, sector := d.Reduce(math.Cos(a), math.Sin(a))
	if sector != 1 {
		t.Errorf("sector = %d, want 1", sector)
	}
	if math.Abs(x-math.Cos(math.Pi/8)) > 1e-12 || math.Abs(y-math.Sin(math.Pi/8)) > 1e-12 {
		t.Errorf("Reduce = (%v, %v), want angle π/8", x, y)
	}

	// Rotation only: 3π/8 + π/2 rotates back to 3π/8.
	r := Dihedral{N: 4}
	a += math.Pi / 2
	x, y, sector = r.Reduce(math.Cos(a), math.Sin(a))
	if sector != 1 {
		t.Errorf("rotation sector = %d, want 1", sector)
	}
	if math.Abs(math.Atan2(y, x)-3*math.Pi/8) > 1e-12 {
		t.Errorf("rotation angle = %v, want 3π/8", math.Atan2(y, x))
	}
}

func TestDihedral_KernelStructure(t *testing.T) {
	s := mapPoint(t, Dihedral{N: 3, Mirror: true}, -1, 0.1)
	if s.Structure >= StructureExcluded {
		t.Fatalf("Structure = %d, want a sector index", s.Structure)
	}
	if theta := math.Atan2(s.Y, s.X); theta < 0 || theta >= math.Pi/3 {
		t.Errorf("angle = %v, want [0, π/3)", theta)
	}
}

func TestDihedral_InvalidOrder(t *testing.T) {
	for _, n := range []int{0, -3} {
		if _, err := (Dihedral{N: n}).Prepare(); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("Prepare(N=%d) error = %v, want ErrInvalidParameter", n, err)
		}
	}
}
