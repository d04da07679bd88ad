package solver

import "math"

// LinearRoot solves ax + b = 0.
func LinearRoot(a, b float64) (float64, error) {
	if a == 0 {
		return math.NaN(), ErrConstant
	}
	return -b / a, nil
}

// FirstRealQuadraticRoot solves ax² + bx + c = 0 and returns the root of the
// positive square root branch. It degrades to LinearRoot if a is zero.
func FirstRealQuadraticRoot(a, b, c float64) (float64, error) {
	if a == 0 {
		return LinearRoot(b, c)
	}
	Δ := b*b - 4*a*c
	if Δ < 0 {
		return math.NaN(), ErrNoRealRoot
	}
	return (-b + math.Sqrt(Δ)) / (2 * a), nil
}

// FirstRealCubicRoot solves ax³ + bx² + cx + d = 0 with Cardano's method, and
// degrades to FirstRealQuadraticRoot if a is zero.
// Only one real root is returned: when there are three, the one given by the
// first trigonometric branch is used. This is meant to seed iterative solvers.
func FirstRealCubicRoot(a, b, c, d float64) (float64, error) {
	if a == 0 {
		return FirstRealQuadraticRoot(b, c, d)
	}
	b /= a
	c /= a
	d /= a

	q := (b*b - 3*c) / 9
	q3 := q * q * q
	r := (2*b*b*b + 27*d - 9*b*c) / 54
	r2 := r * r

	if r2 < q3 {
		θ := math.Acos(r / math.Sqrt(q3))
		return -2*math.Sqrt(q)*math.Cos(θ/3) - b/3, nil
	}

	w := math.Sqrt(r2 - q3)
	m := math.Cbrt(math.Abs(r) + w) // s or t, without its sign
	if m == 0 {
		return -b / 3, nil
	}
	n := q / m
	return -math.Copysign(1, r)*(m+n) - b/3, nil
}
