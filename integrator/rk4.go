package integrator

import "errors"

// ErrStateSize is returned when the derivative does not match the state.
var ErrStateSize = errors.New("ODE function must return a state of the same size")

// RK4 defines a fixed step fourth order Runge-Kutta integrator.
type RK4 struct {
	X0         float64    // The initial x0.
	StepSize   float64    // The step size, negative to integrate backward.
	Integrator Integrable // What is to be integrated.
}

// NewRK4 returns a new RK4 integrator instance.
func NewRK4(x0 float64, stepSize float64, inte Integrable) (r *RK4) {
	if stepSize == 0 {
		panic("config StepSize may not be zero")
	}
	if inte == nil {
		panic("config Integrator may not be nil")
	}
	r = &RK4{X0: x0, StepSize: stepSize, Integrator: inte}
	return
}

// Solve solves the configured RK4.
// Returns the number of iterations performed and the last X_i, or an error.
func (r *RK4) Solve() (uint64, float64, error) {
	var (
		iterNum uint64
		xi      = r.X0
		k       rk4Stages
	)
	for !r.Integrator.Stop(iterNum, xi) {
		next, err := k.step(r.Integrator, xi, r.StepSize, r.Integrator.State())
		if err != nil {
			return iterNum, xi, err
		}
		xi += r.StepSize
		r.Integrator.SetState(iterNum, xi, next)
		iterNum++
	}
	return iterNum, xi, nil
}

// rk4Stages holds the slopes of one step, reused across steps of equal size.
type rk4Stages struct {
	k1, k2, k3, k4, tmp []float64
}

func (k *rk4Stages) resize(n int) {
	if len(k.k1) == n {
		return
	}
	k.k1 = make([]float64, n)
	k.k2 = make([]float64, n)
	k.k3 = make([]float64, n)
	k.k4 = make([]float64, n)
	k.tmp = make([]float64, n)
}

// eval stores h·f(t, y) in dst and returns it.
func eval(f Integrable, t, h float64, y, dst []float64) error {
	dy := f.Func(t, y)
	if len(dy) != len(dst) {
		return ErrStateSize
	}
	for i := range dy {
		dst[i] = h * dy[i]
	}
	return nil
}

// step returns the state after one step of size h from (t, y). The returned
// slice is newly allocated since the Integrable keeps it.
func (k *rk4Stages) step(f Integrable, t, h float64, y []float64) ([]float64, error) {
	n := len(y)
	k.resize(n)
	if err := eval(f, t, h, y, k.k1); err != nil {
		return nil, err
	}
	for i := range y {
		k.tmp[i] = y[i] + k.k1[i]/2
	}
	if err := eval(f, t+h/2, h, k.tmp, k.k2); err != nil {
		return nil, err
	}
	for i := range y {
		k.tmp[i] = y[i] + k.k2[i]/2
	}
	if err := eval(f, t+h/2, h, k.tmp, k.k3); err != nil {
		return nil, err
	}
	for i := range y {
		k.tmp[i] = y[i] + k.k3[i]
	}
	if err := eval(f, t+h, h, k.tmp, k.k4); err != nil {
		return nil, err
	}
	next := make([]float64, n)
	for i := range y {
		next[i] = y[i] + (k.k1[i]+2*k.k2[i]+2*k.k3[i]+k.k4[i])/6
	}
	return next, nil
}
