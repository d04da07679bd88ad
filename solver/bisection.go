package solver

// Bisection finds a root of fn within rng by halving the interval until
// fn(x)² <= tol².
func Bisection(fn Function, rng Range, tol float64) (float64, error) {
	x0, x1 := rng.Low(), rng.High()
	y0, y1 := fn.F(x0), fn.F(x1)
	tol2 := tol * tol

	if y0*y0 <= tol2 {
		return x0, nil
	}
	if y1*y1 <= tol2 {
		return x1, nil
	}
	if y0*y1 > 0 {
		return x1, ErrNotBracketed
	}

	x, y := x1, y1
	for y*y > tol2 {
		x = (x0 + x1) * 0.5
		if x == x0 || x == x1 {
			return x, ErrStagnation
		}
		y = fn.F(x)
		if y*y0 > 0 {
			x0 = x
		} else {
			x1 = x
		}
	}
	return x, nil
}
