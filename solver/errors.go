package solver

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRange is returned when a range does not verify low < high.
	ErrInvalidRange = errors.New("solver: range must have low < high")
	// ErrConstant is returned when looking for the root of a constant.
	ErrConstant = errors.New("solver: constant value does not have meaningful roots")
	// ErrNoRealRoot is returned when a polynomial has no real root.
	ErrNoRealRoot = errors.New("solver: no real root")
	// ErrNotBracketed is returned when both ends of the search interval evaluate to the same sign.
	ErrNotBracketed = errors.New("solver: both limits evaluate to positive or negative, won't search for a root here")
	// ErrStagnation is returned when the interval cannot be split any further before reaching the tolerance.
	ErrStagnation = errors.New("solver: no root in range")
	// ErrNoConvergence is matched by every ConvergenceError.
	ErrNoConvergence = errors.New("solver: failed to converge")
)

// ConvergenceError is returned by iterative solvers which ran out of iterations.
type ConvergenceError struct {
	Iterations int
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("%s after %d iterations", ErrNoConvergence, e.Iterations)
}

// Unwrap allows errors.Is(err, ErrNoConvergence).
func (e *ConvergenceError) Unwrap() error {
	return ErrNoConvergence
}
