package solver

// Finder finds the root of a function within a range.
type Finder interface {
	FindRoot(fn Function, rng Range, tol float64) (float64, error)
}

// BisectionFinder implements Finder with Bisection.
type BisectionFinder struct{}

// FindRoot implements the Finder interface.
func (BisectionFinder) FindRoot(fn Function, rng Range, tol float64) (float64, error) {
	return Bisection(fn, rng, tol)
}

// BrentFinder implements Finder with Brent.
type BrentFinder struct{}

// FindRoot implements the Finder interface.
func (BrentFinder) FindRoot(fn Function, rng Range, tol float64) (float64, error) {
	return Brent(fn, rng, tol)
}

// NewtonFinder implements Finder with NewtonRaphson started at the middle of the range.
// The range is not enforced: the root may lie outside of it.
type NewtonFinder struct{}

// FindRoot implements the Finder interface.
func (NewtonFinder) FindRoot(fn Function, rng Range, tol float64) (float64, error) {
	return NewtonRaphson(fn, rng.Mid(), tol)
}
