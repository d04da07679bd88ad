package orbit

import "errors"

var (
	// ErrNegativeMu is returned when a gravitational parameter is negative.
	ErrNegativeMu = errors.New("gravitational parameter must be non-negative")
	// ErrNegativeEccentricity is returned when building elements with e < 0.
	ErrNegativeEccentricity = errors.New("eccentricity must be non-negative")
	// ErrInvalidInclination is returned when building elements with i outside of [0, π].
	ErrInvalidInclination = errors.New("inclination must be within [0, π]")
	// ErrLinearOrbit is returned when deriving elements of a rectilinear state (r×v = 0 or μ = 0).
	ErrLinearOrbit = errors.New("linear orbits are not supported")
	// ErrOpenOrbit is returned when requesting the period of a parabolic or hyperbolic orbit.
	ErrOpenOrbit = errors.New("orbital period is only defined for closed orbits")
	// ErrNotImplemented is returned when propagating a degenerate orbit which is not a body at rest.
	ErrNotImplemented = errors.New("propagation of degenerate orbits is not implemented")
)
