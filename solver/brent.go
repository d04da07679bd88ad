package solver

import "math"

// Brent finds a root of fn within rng using the Brent-Dekker method: inverse
// quadratic interpolation or secant steps, falling back to bisection whenever
// the interpolated point is not trusted.
// The search stops once the bracket is narrower than tol.
func Brent(fn Function, rng Range, tol float64) (float64, error) {
	a, b := rng.Low(), rng.High()
	fa, fb := fn.F(a), fn.F(b)
	tol2 := tol * tol

	if fa*fa <= tol2 {
		return a, nil
	}
	if fb*fb <= tol2 {
		return b, nil
	}
	if fa*fb > 0 {
		return b, ErrNotBracketed
	}

	// b is always the best estimate.
	if math.Abs(fa) < math.Abs(fb) {
		a, b = b, a
		fa, fb = fb, fa
	}
	c, fc := a, fa
	d := 0.0
	bisected := true

	for fb != 0 && math.Abs(b-a) >= tol {
		var s float64
		if fa != fc && fb != fc {
			// Inverse quadratic interpolation
			s = a*fb*fc/((fa-fb)*(fa-fc)) +
				b*fa*fc/((fb-fa)*(fb-fc)) +
				c*fa*fb/((fc-fa)*(fc-fb))
		} else {
			// Secant
			s = b - fb*(b-a)/(fb-fa)
		}

		q := (3*a + b) * 0.25
		switch {
		case !((s > q && s < b) || (s < q && s > b)),
			bisected && math.Abs(s-b) >= math.Abs(b-c)*0.5,
			!bisected && math.Abs(s-b) >= math.Abs(c-d)*0.5,
			bisected && math.Abs(b-c) < tol,
			!bisected && math.Abs(c-d) < tol:
			s = (a + b) * 0.5
			bisected = true
		default:
			bisected = false
		}

		fs := fn.F(s)
		d = c
		c, fc = b, fb
		if fa*fs < 0 {
			b, fb = s, fs
		} else {
			a, fa = s, fs
		}
		if math.Abs(fa) < math.Abs(fb) {
			a, b = b, a
			fa, fb = fb, fa
		}
	}
	return b, nil
}
