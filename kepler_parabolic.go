package orbit

import "github.com/galaxias/orbit/solver"

// parabolicConic has β = 0: the time equation is Barker's cubic, which the
// initial guess solves exactly.
type parabolicConic struct {
	universal
}

func (c parabolicConic) f(s float64) float64 {
	return s * (c.r0 + c.η*s/2 + c.k*s*s/6)
}

func (c parabolicConic) df(s float64) float64 {
	return c.r0 + c.η*s + c.k*s*s/2
}

func (c parabolicConic) factors(s float64) Factors {
	r := c.df(s)
	return Factors{
		F:  1 - c.k*s*s/(2*c.r0),
		G:  s * (c.r0 + c.η*s/2),
		DF: -c.k * s / (r * c.r0),
		DG: 1 - c.k*s*s/(2*r),
	}
}

func (c parabolicConic) bracket(h, guess float64, fn solver.Function) (solver.Range, error) {
	return monotonicBracket(h, guess, fn)
}
