package tools

import (
	"errors"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/galaxias/orbit"
	"github.com/galaxias/orbit/integrator"
)

// TwoBody is the point mass two body problem as an integrator.Integrable.
// The state is the position followed by the velocity.
type TwoBody struct {
	μ     float64
	state []float64
	steps uint64
}

// State implements the integrator.Integrable interface.
func (tb *TwoBody) State() []float64 {
	return tb.state
}

// SetState implements the integrator.Integrable interface.
func (tb *TwoBody) SetState(i uint64, t float64, s []float64) {
	tb.state = s
}

// Stop implements the integrator.Integrable interface.
func (tb *TwoBody) Stop(i uint64, t float64) bool {
	return i >= tb.steps
}

// Func implements the integrator.Integrable interface.
func (tb *TwoBody) Func(t float64, s []float64) []float64 {
	r := mat.NewVecDense(3, []float64{s[0], s[1], s[2]})
	rn := mat.Norm(r, 2)
	r.ScaleVec(-tb.μ/(rn*rn*rn), r)
	return []float64{s[3], s[4], s[5], r.AtVec(0), r.AtVec(1), r.AtVec(2)}
}

// IntegrateTwoBody propagates the state around a body of gravitational
// parameter μ by dt with a fixed step RK4, in the given number of steps.
func IntegrateTwoBody(μ float64, state orbit.Cartesian, dt float64, steps uint64) (orbit.Cartesian, error) {
	if steps == 0 || dt == 0 {
		return state, nil
	}
	if state.RNorm() == 0 {
		return state, errors.New("cannot integrate from the center of attraction")
	}
	r, v := state.Position, state.Velocity
	tb := &TwoBody{μ: μ, state: []float64{r.X, r.Y, r.Z, v.X, v.Y, v.Z}, steps: steps}
	if _, _, err := integrator.NewRK4(0, dt/float64(steps), tb).Solve(); err != nil {
		return state, err
	}
	s := tb.State()
	return orbit.Cartesian{
		Position: r3.Vec{X: s[0], Y: s[1], Z: s[2]},
		Velocity: r3.Vec{X: s[3], Y: s[4], Z: s[5]},
	}, nil
}
