package orbit

import (
	"math"

	"github.com/galaxias/orbit/solver"
)

// ellipticConic also covers circular orbits.
type ellipticConic struct {
	universal
	period solver.Range
}

func (c ellipticConic) sincos(s float64) (s2, c2 float64) {
	return math.Sincos(c.sb * s / 2)
}

func (c ellipticConic) f(s float64) float64 {
	s2, c2 := c.sincos(s)
	return (2*s2*(c2*(c.sb*c.r0-c.k/c.sb)+c.η*s2) + c.k*s) / c.β
}

func (c ellipticConic) df(s float64) float64 {
	s2, c2 := c.sincos(s)
	return c.r0 + 2*c.η*s2*c2/c.sb + 2*s2*s2*(c.k/c.β-c.r0)
}

func (c ellipticConic) factors(s float64) Factors {
	s2, c2 := c.sincos(s)
	r := c.df(s)
	ks2 := 2 * c.k * s2 * s2
	return Factors{
		F:  1 - ks2/(c.r0*c.β),
		G:  2 * s2 * (c.r0*c2/c.sb + c.η*s2/c.β),
		DF: -2 * c.k * s2 * c2 / (c.r0 * r * c.sb),
		DG: 1 - ks2/(r*c.β),
	}
}

// wrap reduces h to [0, P).
func (c ellipticConic) wrap(h float64) float64 {
	return c.period.Modulo(h)
}

// bracket returns the anomalies of the orbital period containing h.
func (c ellipticConic) bracket(h, _ float64, _ solver.Function) (solver.Range, error) {
	sPer := 2 * math.Pi / c.sb
	lo := sPer * math.Floor(h/c.period.High())
	return solver.NewRange(lo, lo+sPer)
}
