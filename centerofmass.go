package orbit

import (
	"errors"
	"fmt"
	"math"
	"sync"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/galaxias/orbit/solver"
)

// OrbitType is the kind of conic a body follows.
type OrbitType uint8

const (
	// Circular orbits have e = 0.
	Circular OrbitType = iota + 1
	// Elliptic orbits have 0 < e < 1.
	Elliptic
	// Parabolic orbits have e = 1 and a non zero angular momentum.
	Parabolic
	// Hyperbolic orbits have e > 1.
	Hyperbolic
	// Degenerate orbits are rectilinear, including a body at rest.
	Degenerate
)

// IsClosed returns whether the body comes back to its initial state.
func (t OrbitType) IsClosed() bool {
	return t == Circular || t == Elliptic
}

func (t OrbitType) String() string {
	switch t {
	case Circular:
		return "circular"
	case Elliptic:
		return "elliptic"
	case Parabolic:
		return "parabolic"
	case Hyperbolic:
		return "hyperbolic"
	case Degenerate:
		return "degenerate"
	default:
		panic("unknown orbit type")
	}
}

// classify returns the orbit type from the eccentricity, using the angular
// momentum to tell parabolas from rectilinear orbits when e = 1.
func classify(e float64, state Cartesian) OrbitType {
	switch {
	case e == 0:
		return Circular
	case e < 1:
		return Elliptic
	case e > 1:
		return Hyperbolic
	case state.H() == r3.Vec{}:
		return Degenerate
	default:
		return Parabolic
	}
}

// Option configures a CenterOfMass.
type Option func(*CenterOfMass)

// WithLogger sets the logger used by the Kepler solver.
func WithLogger(logger kitlog.Logger) Option {
	return func(c *CenterOfMass) {
		c.logger = logger
	}
}

// WithMetrics sets the metrics updated on each propagation.
func WithMetrics(m *Metrics) Option {
	return func(c *CenterOfMass) {
		c.metrics = m
	}
}

// WithTolerance sets the tolerance of the anomaly search, relative to the initial guess.
func WithTolerance(rel float64) Option {
	return func(c *CenterOfMass) {
		c.tolerance = rel
	}
}

// WithName sets the name of the body, used in logs.
func WithName(name string) Option {
	return func(c *CenterOfMass) {
		c.name = name
	}
}

// DefaultTolerance is the default relative tolerance of the anomaly search.
const DefaultTolerance = 1e-9

// CenterOfMass is a body of gravitational parameter μ following a Keplerian
// orbit around its parent, or at rest if it has none.
// It is safe for concurrent use.
type CenterOfMass struct {
	name      string
	μ         float64
	t0        float64
	state     Cartesian
	parent    *CenterOfMass
	elements  OrbitalElements
	orbitType OrbitType
	logger    kitlog.Logger
	metrics   *Metrics
	tolerance float64
	lock      sync.Mutex
	solver    *KeplerSolver
}

// NewCentralBody returns a body at rest at the origin, at t = 0.
func NewCentralBody(μ float64, opts ...Option) (*CenterOfMass, error) {
	return NewCenterOfMass(μ, 0, ZeroCartesian(), nil, opts...)
}

// NewCenterOfMass returns a body of gravitational parameter μ whose state
// relative to its parent is state at time t0 (in seconds).
// The orbital elements are computed with the parent's μ if there is a parent.
func NewCenterOfMass(μ, t0 float64, state Cartesian, parent *CenterOfMass, opts ...Option) (*CenterOfMass, error) {
	if μ < 0 || math.IsNaN(μ) {
		return nil, fmt.Errorf("%w: μ=%g", ErrNegativeMu, μ)
	}
	c := &CenterOfMass{
		μ:         μ,
		t0:        t0,
		state:     state,
		parent:    parent,
		logger:    kitlog.NewNopLogger(),
		tolerance: DefaultTolerance,
	}
	for _, opt := range opts {
		opt(c)
	}
	if state.IsZero() {
		// Point conic
		c.elements = OrbitalElements{Eccentricity: 1}
		c.orbitType = Degenerate
		return c, nil
	}
	elements, err := DeriveElements(c.CentralMu(), state.Position, state.Velocity)
	switch {
	case errors.Is(err, ErrLinearOrbit):
		// Rectilinear state or no attraction at all: degenerate, whatever r×v is.
		c.elements = rectilinearElements(c.CentralMu(), state)
		c.orbitType = Degenerate
		level.Warn(c.logger).Log("subsys", "kepler", "body", c.name, "μ", c.CentralMu(), "err", err)
		return c, nil
	case err != nil:
		return nil, err
	}
	c.elements = elements
	c.orbitType = classify(elements.Eccentricity, state)
	level.Debug(c.logger).Log("subsys", "kepler", "body", c.name, "type", c.orbitType, "elements", c.elements)
	return c, nil
}

// rectilinearElements returns the elements of a radial trajectory, which only
// carries its energy.
func rectilinearElements(μ float64, state Cartesian) OrbitalElements {
	el := OrbitalElements{Eccentricity: 1}
	if r := state.RNorm(); μ > 0 && r > 0 {
		el.Alpha = -2 * state.Energy(μ) / μ
	}
	return el
}

// Name returns the name of the body.
func (c *CenterOfMass) Name() string {
	return c.name
}

// Mu returns the gravitational parameter of this body.
func (c *CenterOfMass) Mu() float64 {
	return c.μ
}

// CentralMu returns the gravitational parameter which drives this body's
// motion: its parent's if it has one, else its own.
func (c *CenterOfMass) CentralMu() float64 {
	if c.parent != nil {
		return c.parent.μ
	}
	return c.μ
}

// InitialTime returns the epoch of the initial state, in seconds.
func (c *CenterOfMass) InitialTime() float64 {
	return c.t0
}

// InitialCoordinates returns the state at InitialTime, relative to the parent.
func (c *CenterOfMass) InitialCoordinates() Cartesian {
	return c.state
}

// Parent returns the body this one orbits, or nil.
func (c *CenterOfMass) Parent() *CenterOfMass {
	return c.parent
}

// OrbitalElements returns the elements of the orbit.
func (c *CenterOfMass) OrbitalElements() OrbitalElements {
	return c.elements
}

// OrbitType returns the type of the orbit.
func (c *CenterOfMass) OrbitType() OrbitType {
	return c.orbitType
}

// OrbitalPeriod returns [0, P) where P = 2π/√(α³μ), for closed orbits only.
func (c *CenterOfMass) OrbitalPeriod() (solver.Range, error) {
	if c.elements.Eccentricity >= 1 {
		return solver.Range{}, fmt.Errorf("%w: e=%g", ErrOpenOrbit, c.elements.Eccentricity)
	}
	α := c.elements.Alpha
	return solver.NewRange(0, 2*math.Pi/math.Sqrt(α*α*α*c.CentralMu()))
}

// Solver returns the Kepler solver of this body, creating it if needed.
// The returned solver is not safe for concurrent use: prefer CoordinatesAt.
func (c *CenterOfMass) Solver() (*KeplerSolver, error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.lazySolver()
}

func (c *CenterOfMass) lazySolver() (*KeplerSolver, error) {
	if c.solver == nil {
		s, err := NewKeplerSolver(c)
		if err != nil {
			return nil, err
		}
		c.solver = s
	}
	return c.solver, nil
}

// CoordinatesAt returns the state at time t relative to the parent.
func (c *CenterOfMass) CoordinatesAt(t float64) (Cartesian, error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	s, err := c.lazySolver()
	if err != nil {
		c.metrics.RecordFailure(c.orbitType)
		return Cartesian{}, err
	}
	return s.CoordinatesAt(t)
}

// AbsoluteCoordinatesAt returns the state at time t in the frame of the root
// of the parent chain.
func (c *CenterOfMass) AbsoluteCoordinatesAt(t float64) (Cartesian, error) {
	state, err := c.CoordinatesAt(t)
	if err != nil {
		return Cartesian{}, err
	}
	if c.parent == nil {
		return state, nil
	}
	parentState, err := c.parent.AbsoluteCoordinatesAt(t)
	if err != nil {
		return Cartesian{}, fmt.Errorf("parent %q: %w", c.parent.name, err)
	}
	return state.Add(parentState), nil
}

// String implements the Stringer interface.
func (c *CenterOfMass) String() string {
	name := c.name
	if name == "" {
		name = "body"
	}
	return fmt.Sprintf("%s (μ=%g, %s orbit: %s)", name, c.μ, c.orbitType, c.elements)
}
