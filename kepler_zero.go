package orbit

import "github.com/galaxias/orbit/solver"

// zeroConic is a body at rest: the anomaly is the time itself and the state never changes.
type zeroConic struct{}

func (zeroConic) f(s float64) float64    { return s }
func (zeroConic) df(float64) float64     { return 1 }
func (zeroConic) wrap(h float64) float64 { return h }

func (zeroConic) factors(float64) Factors {
	return Factors{F: 1, DG: 1}
}

func (zeroConic) initialGuess(float64) (float64, error) {
	return 0, nil
}

func (zeroConic) bracket(float64, float64, solver.Function) (solver.Range, error) {
	return solver.Range{}, solver.ErrNotBracketed
}
