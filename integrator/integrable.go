package integrator

// Integrable is a first order system y' = f(t, y) which owns its state.
// The integrator reads the state with State and hands the next one back
// through SetState, so implementations may keep a history if they need one.
type Integrable interface {
	State() []float64                          // Current state vector.
	SetState(i uint64, t float64, s []float64) // State s reached after iteration i, at time t.
	Stop(i uint64, t float64) bool             // Whether to stop before iteration i, at time t.
	Func(t float64, s []float64) []float64     // Derivative at (t, s), in a new slice.
}
