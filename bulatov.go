package kaleido

import (
	"fmt"
	"math"
)

// hyperbolicLimit is the largest angle sum 1/k+1/m+1/n accepted as
// hyperbolic by the band transform.
const hyperbolicLimit = 0.999

// BulatovPeriod returns the translation period, in band coordinates, of the
// (k, m, n) hyperbolic triangle tiling along the x-axis. n must be 2.
//
// The period is twice the band distance between the mirror through the
// origin and the third mirror, which crosses the x-axis at x0:
// 2 · (4/π) · atanh(x0).
//
// For a signature that is not hyperbolic BulatovPeriod logs an error and
// returns -1.
func BulatovPeriod(k, m, n int) float64 {
	p, err := bulatovPeriod(k, m, n)
	if err != nil {
		Logger().Error("kaleido: no band period", "k", k, "m", m, "n", n, "err", err)
		return -1
	}
	return p
}

func bulatovPeriod(k, m, n int) (float64, error) {
	if k < 2 || m < 2 || n != 2 {
		return 0, fmt.Errorf("%w: band transform needs (k, m, 2), got (%d, %d, %d)", ErrInvalidParameter, k, m, n)
	}
	if sum := 1/float64(k) + 1/float64(m) + 1/float64(n); sum >= hyperbolicLimit {
		return 0, fmt.Errorf("%w: (%d, %d, %d) has angle sum %.4f", ErrNotHyperbolic, k, m, n, sum)
	}
	t, err := newTriangle(k, m, n)
	if err != nil {
		return 0, err
	}
	x0 := t.circle.Center.X - t.circle.Radius
	return 8 / math.Pi * math.Atanh(x0), nil
}

// Bulatov is the hyperbolic band transform. It unrolls the plane around the
// origin into the band model of the hyperbolic plane and rolls the band up
// into the Poincaré disc, so that a hyperbolic tiling rendered downstream
// appears as a ring repeating Periods times.
//
// For z = x + i·y it computes w = -i·s·log z with s = Periods·period/(2π),
// reduces Re w modulo the period of the (K, M, N) tiling and returns
// tanh(π·w/4). Points with |Im w| ≥ 1 are outside the band and marked
// StructureInvalid, as is the origin.
type Bulatov struct {
	K, M, N int
	Periods int
}

// Name returns "bulatov".
func (b Bulatov) Name() string { return "bulatov" }

// Prepare computes the band period. It fails with ErrNotHyperbolic before
// any sample is touched when the signature is not hyperbolic.
func (b Bulatov) Prepare() (Kernel, error) {
	period, err := bulatovPeriod(b.K, b.M, b.N)
	if err != nil {
		return nil, err
	}
	if b.Periods < 1 {
		return nil, fmt.Errorf("%w: band periods %d", ErrInvalidParameter, b.Periods)
	}
	scale := float64(b.Periods) * period / (2 * math.Pi)

	return func(s *Sample) {
		r2 := s.X*s.X + s.Y*s.Y
		if r2 == 0 {
			s.Structure = StructureInvalid
			return
		}
		u := scale * math.Atan2(s.Y, s.X)
		v := -scale * 0.5 * math.Log(r2)
		if math.Abs(v) >= 1 {
			s.Structure = StructureInvalid
			return
		}
		u -= period * math.Floor(u/period+0.5)

		// tanh(a + i·b) = (sinh 2a + i·sin 2b) / (cosh 2a + cos 2b)
		a2 := math.Pi / 2 * u
		b2 := math.Pi / 2 * v
		e := math.Exp(a2)
		den := 0.5*(e+1/e) + math.Cos(b2)
		s.X = 0.5 * (e - 1/e) / den
		s.Y = math.Sin(b2) / den
	}, nil
}
