package kaleido

import (
	"fmt"
	"math"
)

// Bounds on Re(v) for which e^v is computed explicitly. Beyond them e^v is
// treated as infinite or zero and the Möbius transform takes its limit.
const (
	expOverflow  = 709
	expUnderflow = -745
)

// Exponential computes w = exp((z^ZPower)^Order) followed by the Möbius
// transform (A·w + B)/(C·w + D).
//
// The values at z → 0 and z → ∞ are taken from the analytic limits, which
// depend only on the sign of ZPower·Order: the inner power tends to 0, to 1
// or diverges with an oscillating phase (the sample is then marked
// diverged).
type Exponential struct {
	ZPower     float64
	Order      int
	A, B, C, D complex128
}

// Name returns "exponential".
func (e Exponential) Name() string { return "exponential" }

// mobiusLimit is the precomputed image of one limit point.
type mobiusLimit struct {
	x, y     float64
	diverged bool
}

// Prepare checks that the Möbius transform is invertible and evaluates the
// limit values.
func (e Exponential) Prepare() (Kernel, error) {
	if e.Order < 1 {
		return nil, fmt.Errorf("%w: exponential order %d", ErrInvalidParameter, e.Order)
	}
	if math.IsNaN(e.ZPower) || math.IsInf(e.ZPower, 0) {
		return nil, fmt.Errorf("%w: exponential power %v", ErrInvalidParameter, e.ZPower)
	}
	if det := e.A*e.D - e.B*e.C; real(det)*real(det)+imag(det)*imag(det) < singularityEps {
		return nil, fmt.Errorf("%w: degenerate Möbius transform", ErrInvalidParameter)
	}

	ar, ai := real(e.A), imag(e.A)
	br, bi := real(e.B), imag(e.B)
	cr, ci := real(e.C), imag(e.C)
	dr, di := real(e.D), imag(e.D)

	mobius := func(wr, wi float64) mobiusLimit {
		nr, ni := cmul(ar, ai, wr, wi)
		mr, mi := cmul(cr, ci, wr, wi)
		qr, qi, ok := cdiv(nr+br, ni+bi, mr+dr, mi+di, singularityEps)
		if !ok {
			return mobiusLimit{diverged: true}
		}
		return mobiusLimit{x: qr, y: qi}
	}
	ratio := func(pr, pi, qr, qi float64) mobiusLimit {
		x, y, ok := cdiv(pr, pi, qr, qi, singularityEps)
		if !ok {
			return mobiusLimit{diverged: true}
		}
		return mobiusLimit{x: x, y: y}
	}

	// inner power → 0 gives w → 1; inner power ≡ 1 gives w = e
	atOne := mobius(1, 0)
	atE := mobius(math.E, 0)
	// limits of the Möbius transform for w → ∞ and w → 0
	atWInf := ratio(ar, ai, cr, ci)
	atWZero := ratio(br, bi, dr, di)
	diverged := mobiusLimit{diverged: true}

	var zero, inf mobiusLimit
	switch p := e.ZPower * float64(e.Order); {
	case p > 0:
		zero, inf = atOne, diverged
	case p < 0:
		zero, inf = diverged, atOne
	default:
		zero, inf = atE, atE
	}

	apply := func(s *Sample, l mobiusLimit) {
		if l.diverged {
			markDiverged(s)
			return
		}
		s.X, s.Y = l.x, l.y
	}

	zPower := e.ZPower
	order := e.Order
	return func(s *Sample) {
		x, y := s.X, s.Y
		r2 := x*x + y*y
		switch {
		case r2 < singularityEps:
			apply(s, zero)
			return
		case r2 > 1/singularityEps || math.IsInf(r2, 0):
			apply(s, inf)
			return
		}

		ur, ui := cpow(x, y, r2, zPower)
		vr, vi := cpowInt(ur, ui, order)
		switch {
		case math.IsNaN(vr) || math.IsNaN(vi):
			markDiverged(s)
			return
		case vr > expOverflow:
			apply(s, atWInf)
			return
		case vr < expUnderflow:
			apply(s, atWZero)
			return
		}

		wr, wi := cexp(vr, vi)
		apply(s, mobius(wr, wi))
	}, nil
}
