package kaleido

import (
	"fmt"
	"math"
)

// singularityEps decides when a squared magnitude counts as exactly zero;
// its reciprocal decides when one counts as infinite.
const singularityEps = 1e-100

// Singularity evaluates a rational function with poles on a symmetric set
// of points:
//
//	w = Amplitude · z^ZPow · (Constant + Σ_i Σ_j 1/(z·conj(Roots[i]·ω^j) − 1))
//
// where ω = exp(2πi/Order) and j runs over [0, Order). Each root therefore
// contributes Order poles at conj(root·ω^j)⁻¹ arranged with Order-fold
// rotational symmetry.
//
// The kernel never fails. The origin is singular when ZPow < 0, infinity is
// resolved from the sign of ZPow, and a denominator below singularityEps (a
// pixel on a pole) or a non-finite result yields infinite coordinates.
type Singularity struct {
	Amplitude float64
	Constant  complex128
	ZPow      float64
	Order     int
	Roots     []complex128
}

// Name returns "singularity".
func (sg Singularity) Name() string { return "singularity" }

// Prepare expands the roots by the rotational symmetry.
func (sg Singularity) Prepare() (Kernel, error) {
	if sg.Order < 1 {
		return nil, fmt.Errorf("%w: singularity order %d", ErrInvalidParameter, sg.Order)
	}
	if math.IsNaN(sg.ZPow) || math.IsInf(sg.ZPow, 0) {
		return nil, fmt.Errorf("%w: singularity power %v", ErrInvalidParameter, sg.ZPow)
	}

	// conjugated coefficients c = conj(root·ω^j), split into parts
	coeffs := make([]float64, 0, 2*len(sg.Roots)*sg.Order)
	for _, root := range sg.Roots {
		for j := range sg.Order {
			phi := 2 * math.Pi * float64(j) / float64(sg.Order)
			cr, ci := cmul(real(root), imag(root), math.Cos(phi), math.Sin(phi))
			coeffs = append(coeffs, cr, -ci)
		}
	}

	amp := sg.Amplitude
	constR, constI := real(sg.Constant), imag(sg.Constant)
	zPow := sg.ZPow
	poles := float64(len(coeffs) / 2)

	return func(s *Sample) {
		x, y := s.X, s.Y
		r2 := x*x + y*y

		switch {
		case r2 < singularityEps:
			switch {
			case zPow < 0:
				markDiverged(s)
			case zPow > 0:
				s.X, s.Y = 0, 0
			default:
				// every term is 1/(0-1)
				s.X, s.Y = amp*(constR-poles), amp*constI
			}
			return
		case r2 > 1/singularityEps || math.IsInf(r2, 0):
			switch {
			case zPow > 0:
				markDiverged(s)
			case zPow < 0:
				s.X, s.Y = 0, 0
			default:
				s.X, s.Y = amp*constR, amp*constI
			}
			return
		}

		sumR, sumI := constR, constI
		for i := 0; i < len(coeffs); i += 2 {
			dr, di := cmul(x, y, coeffs[i], coeffs[i+1])
			dr--
			d2 := dr*dr + di*di
			if d2 < singularityEps {
				markDiverged(s)
				return
			}
			if d2 > 1/singularityEps {
				// term vanishes
				continue
			}
			sumR += dr / d2
			sumI -= di / d2
		}

		pr, pi := cpow(x, y, r2, zPow)
		wr, wi := cmul(pr, pi, sumR, sumI)
		wr *= amp
		wi *= amp
		if !isFinite(wr) || !isFinite(wi) {
			markDiverged(s)
			return
		}
		s.X, s.Y = wr, wi
	}, nil
}
