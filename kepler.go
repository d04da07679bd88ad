package orbit

import (
	"errors"
	"fmt"
	"math"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/galaxias/orbit/solver"
)

// Factors are the Lagrange coefficients which map the initial state to the
// state at another time: r = F·r0 + G·v0 and v = DF·r0 + DG·v0.
type Factors struct {
	F, G, DF, DG float64
}

// Wronskian returns F·DG - DF·G, which is one for any exact solution.
func (f Factors) Wronskian() float64 {
	return f.F*f.DG - f.DF*f.G
}

// conic is the universal Kepler equation of one type of orbit, in terms of the
// universal anomaly s (in the G-function formulation of Wisdom & Hernandez).
type conic interface {
	// f returns the time elapsed since the epoch at anomaly s.
	f(s float64) float64
	// df returns dt/ds, i.e. the radius at anomaly s.
	df(s float64) float64
	factors(s float64) Factors
	// wrap reduces the time since epoch, e.g. modulo the period.
	wrap(h float64) float64
	initialGuess(h float64) (float64, error)
	// bracket returns a range which contains the root of fn.
	bracket(h, guess float64, fn solver.Function) (solver.Range, error)
}

// universal holds the quantities shared by all conics.
type universal struct {
	r0 float64 // |r0|
	η  float64 // r0·v0
	k  float64 // central μ
	β  float64 // kα
	sb float64 // √|β|
}

func (u universal) wrap(h float64) float64 {
	return h
}

// initialGuess returns the first real root of the third order expansion of
// the universal time equation.
func (u universal) initialGuess(h float64) (float64, error) {
	return solver.FirstRealCubicRoot((u.k-u.β*u.r0)/6, u.η/2, u.r0, -h)
}

// monotonicBracket returns [0, s] or [s, 0] containing the root of fn, for a
// time equation which increases with s and is zero at s = 0.
func monotonicBracket(h, guess float64, fn solver.Function) (solver.Range, error) {
	step := math.Abs(guess)
	if step == 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		step = 1
	}
	dir := sign(h)
	for !math.IsInf(step, 0) {
		if dir*fn.F(dir*step) >= 0 {
			return solver.MakeRange(0, dir*step)
		}
		step *= 2
	}
	return solver.Range{}, solver.ErrNotBracketed
}

// KeplerSolver propagates the initial state of a CenterOfMass by solving the
// universal Kepler equation for the universal anomaly s.
// It is not safe for concurrent use: each call overwrites the last target
// time, initial guess and root.
type KeplerSolver struct {
	conic     conic
	orbitType OrbitType
	state     Cartesian
	t0        float64
	tolerance float64
	logger    kitlog.Logger
	metrics   *Metrics

	h, guess, root float64
}

// NewKeplerSolver returns the solver matching the orbit type of c.
// Degenerate orbits are only supported for a body at rest.
func NewKeplerSolver(c *CenterOfMass) (*KeplerSolver, error) {
	state := c.InitialCoordinates()
	u := universal{
		r0: state.RNorm(),
		η:  r3.Dot(state.Position, state.Velocity),
		k:  c.CentralMu(),
	}
	u.β = u.k * c.OrbitalElements().Alpha
	u.sb = math.Sqrt(math.Abs(u.β))

	var eq conic
	switch c.OrbitType() {
	case Circular, Elliptic:
		period, err := c.OrbitalPeriod()
		if err != nil {
			return nil, err
		}
		eq = ellipticConic{u, period}
	case Parabolic:
		eq = parabolicConic{u}
	case Hyperbolic:
		eq = hyperbolicConic{u}
	case Degenerate:
		if !state.IsZero() {
			return nil, ErrNotImplemented
		}
		eq = zeroConic{}
	default:
		return nil, fmt.Errorf("unknown orbit type %d", c.OrbitType())
	}

	logger := kitlog.With(c.logger, "subsys", "kepler", "type", c.OrbitType())
	if c.name != "" {
		logger = kitlog.With(logger, "body", c.name)
	}
	level.Debug(logger).Log("status", "solver created", "r0", u.r0, "β", u.β)
	return &KeplerSolver{
		conic:     eq,
		orbitType: c.OrbitType(),
		state:     state,
		t0:        c.InitialTime(),
		tolerance: c.tolerance,
		logger:    logger,
		metrics:   c.metrics,
	}, nil
}

// OrbitType returns the type of orbit this solver propagates.
func (k *KeplerSolver) OrbitType() OrbitType {
	return k.orbitType
}

// F implements solver.Function: the time equation minus the time to reach.
func (k *KeplerSolver) F(s float64) float64 {
	return k.conic.f(s) - k.h
}

// DF implements solver.Function.
func (k *KeplerSolver) DF(s float64) float64 {
	return k.conic.df(s)
}

// InitialGuess returns the guess used by the last SolveForInternal call.
func (k *KeplerSolver) InitialGuess() float64 {
	return k.guess
}

// ComputedS returns the root found by the last SolveForInternal call.
func (k *KeplerSolver) ComputedS() float64 {
	return k.root
}

// FactorsAt returns the Lagrange coefficients at anomaly s.
func (k *KeplerSolver) FactorsAt(s float64) Factors {
	return k.conic.factors(s)
}

// SolveForInternal returns the universal anomaly at time t.
// Newton-Raphson is tried first, from the cubic guess; if it does not
// converge, Brent's method is used on a bracket of the root.
func (k *KeplerSolver) SolveForInternal(t float64) (float64, error) {
	k.h = k.conic.wrap(t - k.t0)
	if k.h == 0 {
		k.guess, k.root = 0, 0
		return 0, nil
	}
	guess, err := k.conic.initialGuess(k.h)
	if err != nil {
		return 0, fmt.Errorf("initial guess: %w", err)
	}
	k.guess = guess

	s, err := solver.NewtonRaphson(k, guess, k.tolerance*math.Abs(guess))
	if errors.Is(err, solver.ErrNoConvergence) {
		level.Warn(k.logger).Log("t", t, "guess", guess, "err", err, "fallback", "brent")
		k.metrics.RecordFallback(k.orbitType)
		rng, berr := k.conic.bracket(k.h, guess, k)
		if berr != nil {
			return 0, fmt.Errorf("%v: %w", err, berr)
		}
		s, err = solver.Brent(k, rng, k.tolerance*math.Max(math.Abs(guess), math.Abs(rng.Mid())))
	}
	if err != nil {
		return 0, err
	}
	k.root = s
	return s, nil
}

// CoordinatesAt returns the state at time t.
func (k *KeplerSolver) CoordinatesAt(t float64) (Cartesian, error) {
	start := time.Now()
	s, err := k.SolveForInternal(t)
	if err != nil {
		k.metrics.RecordFailure(k.orbitType)
		return Cartesian{}, err
	}
	f := k.FactorsAt(s)
	r0, v0 := k.state.Position, k.state.Velocity
	state := Cartesian{
		Position: r3.Add(r3.Scale(f.F, r0), r3.Scale(f.G, v0)),
		Velocity: r3.Add(r3.Scale(f.DF, r0), r3.Scale(f.DG, v0)),
	}
	k.metrics.RecordPropagation(k.orbitType, time.Since(start))
	return state, nil
}
