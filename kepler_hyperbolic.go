package orbit

import (
	"math"

	"github.com/galaxias/orbit/solver"
)

type hyperbolicConic struct {
	universal
}

func (c hyperbolicConic) sinhcosh(s float64) (s2, c2 float64) {
	x := c.sb * s / 2
	return math.Sinh(x), math.Cosh(x)
}

func (c hyperbolicConic) f(s float64) float64 {
	s2, c2 := c.sinhcosh(s)
	return (2*s2*(c2*(c.sb*c.r0+c.k/c.sb)+c.η*s2) - c.k*s) / -c.β
}

func (c hyperbolicConic) df(s float64) float64 {
	s2, c2 := c.sinhcosh(s)
	return c.r0 + 2*c.η*s2*c2/c.sb + 2*s2*s2*(c.r0-c.k/c.β)
}

func (c hyperbolicConic) factors(s float64) Factors {
	s2, c2 := c.sinhcosh(s)
	r := c.df(s)
	ks2 := 2 * c.k * s2 * s2
	return Factors{
		F:  1 + ks2/(c.r0*c.β),
		G:  2 * s2 * (c.r0*c2/c.sb - c.η*s2/c.β),
		DF: -2 * c.k * s2 * c2 / (c.r0 * r * c.sb),
		DG: 1 + ks2/(r*c.β),
	}
}

// bracket tries [guess/2, 10·guess] first, then falls back on the
// monotonicity of the time equation.
func (c hyperbolicConic) bracket(h, guess float64, fn solver.Function) (solver.Range, error) {
	if rng, err := solver.MakeRange(0.5*guess, 10*guess); err == nil && fn.F(rng.Low())*fn.F(rng.High()) <= 0 {
		return rng, nil
	}
	return monotonicBracket(h, guess, fn)
}
