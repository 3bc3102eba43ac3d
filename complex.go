package kaleido

import "math"

// Complex helpers on separate real and imaginary parts. The geometry kernels
// need explicit control over when a value counts as zero or infinite, which
// complex128 division hides.

// cmul returns (ar + i·ai)(br + i·bi).
func cmul(ar, ai, br, bi float64) (float64, float64) {
	return ar*br - ai*bi, ar*bi + ai*br
}

// cdiv returns (ar + i·ai)/(br + i·bi) and false when |b|² is below eps.
func cdiv(ar, ai, br, bi, eps float64) (float64, float64, bool) {
	d := br*br + bi*bi
	if d < eps {
		return 0, 0, false
	}
	return (ar*br + ai*bi) / d, (ai*br - ar*bi) / d, true
}

// cpow returns z^p for real p with the principal branch. r2 is |z|², which
// callers already have. Small integer exponents use repeated multiplication
// so that they stay exact on the negative real axis.
func cpow(x, y, r2, p float64) (float64, float64) {
	if n := math.Trunc(p); n == p && math.Abs(n) <= 16 {
		return cpowInt(x, y, int(n))
	}
	rp := math.Exp(0.5 * p * math.Log(r2))
	phi := p * math.Atan2(y, x)
	return rp * math.Cos(phi), rp * math.Sin(phi)
}

// cpowInt returns z^n by binary exponentiation. z must be non-zero when n<0.
func cpowInt(x, y float64, n int) (float64, float64) {
	if n < 0 {
		d := x*x + y*y
		x, y = x/d, -y/d
		n = -n
	}
	rx, ry := 1.0, 0.0
	for n > 0 {
		if n&1 != 0 {
			rx, ry = cmul(rx, ry, x, y)
		}
		x, y = cmul(x, y, x, y)
		n >>= 1
	}
	return rx, ry
}

// cexp returns e^(x + i·y).
func cexp(x, y float64) (float64, float64) {
	e := math.Exp(x)
	return e * math.Cos(y), e * math.Sin(y)
}
