package solver

import "math"

// MaxNewtonIterations bounds the number of Newton-Raphson steps.
const MaxNewtonIterations = 50

// derivativeε is the derivative magnitude under which a Newton step is meaningless.
const derivativeε = 1e-300

// NewtonRaphson refines guess until two consecutive iterates are within tol.
// It returns a *ConvergenceError if that does not happen within
// MaxNewtonIterations steps, if an iterate is not finite, or if the derivative
// vanishes away from a root. Callers are expected to fall back to a bracketing
// solver in that case.
func NewtonRaphson(fn Function, guess, tol float64) (float64, error) {
	x := guess
	for i := 1; i <= MaxNewtonIterations; i++ {
		y := fn.F(x)
		dy := fn.DF(x)
		if math.Abs(dy) < derivativeε {
			if math.Abs(y) <= tol {
				return x, nil
			}
			return x, &ConvergenceError{Iterations: i}
		}
		x1 := x - y/dy
		if math.IsNaN(x1) || math.IsInf(x1, 0) {
			return x, &ConvergenceError{Iterations: i}
		}
		if math.Abs(x1-x) <= tol {
			return x1, nil
		}
		x = x1
	}
	return x, &ConvergenceError{Iterations: MaxNewtonIterations}
}
