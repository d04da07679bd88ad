package solver

import (
	"fmt"
	"math"
)

// Range is a closed interval [Low, High] with Low < High.
type Range struct {
	lo, hi float64
}

// NewRange returns the range [low, high], or an error unless low < high.
func NewRange(low, high float64) (Range, error) {
	if !(low < high) {
		return Range{}, fmt.Errorf("%w: low=%g high=%g", ErrInvalidRange, low, high)
	}
	return Range{low, high}, nil
}

// MakeRange returns the range spanning a and b regardless of their order.
func MakeRange(a, b float64) (Range, error) {
	return NewRange(math.Min(a, b), math.Max(a, b))
}

// MustRange is like NewRange but panics on invalid bounds.
func MustRange(low, high float64) Range {
	r, err := NewRange(low, high)
	if err != nil {
		panic(err)
	}
	return r
}

// Positive returns [0, MaxFloat64].
func Positive() Range { return Range{0, math.MaxFloat64} }

// Negative returns [-MaxFloat64, 0].
func Negative() Range { return Range{-math.MaxFloat64, 0} }

// ZeroOne returns [0, 1].
func ZeroOne() Range { return Range{0, 1} }

// Radians returns [0, 2π].
func Radians() Range { return Range{0, 2 * math.Pi} }

// Low returns the lower bound.
func (r Range) Low() float64 { return r.lo }

// High returns the upper bound.
func (r Range) High() float64 { return r.hi }

// Mid returns the middle of the range.
func (r Range) Mid() float64 { return (r.lo + r.hi) * 0.5 }

// Width returns High - Low.
func (r Range) Width() float64 { return r.hi - r.lo }

// Includes returns whether v lies within the bounds (inclusive).
func (r Range) Includes(v float64) bool {
	return v >= r.lo && v <= r.hi
}

// Clamp returns v limited to the bounds.
func (r Range) Clamp(v float64) float64 {
	return math.Max(r.lo, math.Min(r.hi, v))
}

// Modulo wraps v into [Low, High).
func (r Range) Modulo(v float64) float64 {
	if v >= r.lo && v < r.hi {
		return v
	}
	w := r.Width()
	m := v - w*math.Floor((v-r.lo)/w)
	if m >= r.hi {
		// Rounding can land exactly on the upper bound.
		return r.lo
	}
	return m
}

// String implements the Stringer interface.
func (r Range) String() string {
	return fmt.Sprintf("[%g, %g]", r.lo, r.hi)
}
