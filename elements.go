package orbit

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/galaxias/orbit/solver"
)

const (
	eccentricityε = 5e-5                         // 0.00005
	angleε        = (5e-3 / 360) * (2 * math.Pi) // 0.005 degrees
	alphaε        = 1e-6                         // relative
)

// OrbitalElements are the classical orbital elements of a conic.
// Alpha is the inverse of the semi-major axis (1/m): it is positive for closed
// orbits, zero for parabolic ones and negative for hyperbolic ones, and is
// never inverted so that it stays finite across the parabolic boundary.
type OrbitalElements struct {
	Eccentricity float64 // e ≥ 0
	Alpha        float64 // α = 1/a
	Inclination  float64 // i ∈ [0, π]
	Longitude    float64 // Ω, longitude of the ascending node ∈ [0, 2π)
	Periapsis    float64 // ω, argument of periapsis ∈ [0, 2π)
}

// NewOrbitalElements validates the elements and wraps both longitudes into [0, 2π).
func NewOrbitalElements(e, α, i, Ω, ω float64) (OrbitalElements, error) {
	if e < 0 || math.IsNaN(e) {
		return OrbitalElements{}, fmt.Errorf("%w: e=%g", ErrNegativeEccentricity, e)
	}
	if !(i >= 0 && i <= math.Pi) {
		return OrbitalElements{}, fmt.Errorf("%w: i=%g", ErrInvalidInclination, i)
	}
	rad := solver.Radians()
	return OrbitalElements{e, α, i, rad.Modulo(Ω), rad.Modulo(ω)}, nil
}

// DeriveElements returns the orbital elements of the state (r0, v0) around a
// body of gravitational parameter μ (from Vallado's RV2COE, page 113).
// Rectilinear orbits, i.e. μ = 0 or r0×v0 = 0, are not supported.
func DeriveElements(μ float64, r0, v0 r3.Vec) (OrbitalElements, error) {
	hVec := r3.Cross(r0, v0)
	h2 := r3.Dot(hVec, hVec)
	if μ == 0 || h2 == 0 {
		return OrbitalElements{}, ErrLinearOrbit
	}
	r := r3.Norm(r0)
	v2 := r3.Dot(v0, v0)
	w := r3.Sub(r3.Scale(v2-μ/r, r0), r3.Scale(r3.Dot(r0, v0), v0))
	eVec := r3.Vec{X: w.X / μ, Y: w.Y / μ, Z: w.Z / μ}
	e := r3.Norm(eVec)
	p := h2 / μ
	α := (1 - e*e) / p
	i := math.Acos(hVec.Z / math.Sqrt(h2))

	n := r3.Cross(r3.Vec{Z: 1}, hVec)
	nNorm := r3.Norm(n)
	var Ω, ω float64
	if nNorm != 0 {
		Ω = sign(n.Y) * acos(n.X/nNorm)
	}
	switch {
	case e == 0:
		// Circular: periapsis is undefined.
	case nNorm == 0:
		// Equatorial: measured from the X axis.
		ω = sign(eVec.Y) * acos(eVec.X/e)
	default:
		ω = sign(eVec.Z) * acos(r3.Dot(n, eVec)/(nNorm*e))
	}
	return NewOrbitalElements(e, α, i, Ω, ω)
}

// SemiMajorAxis returns a = 1/α, which is undefined for parabolic orbits.
func (o OrbitalElements) SemiMajorAxis() (float64, error) {
	if o.Alpha == 0 {
		return math.Inf(1), errors.New("semi-major axis of a parabolic orbit is infinite")
	}
	return 1 / o.Alpha, nil
}

// SemiParameter returns the semi-latus rectum p = (1 - e²)/α, or NaN for a parabola.
func (o OrbitalElements) SemiParameter() float64 {
	if o.Alpha == 0 {
		return math.NaN()
	}
	return (1 - o.Eccentricity*o.Eccentricity) / o.Alpha
}

// String implements the Stringer interface (angles in degrees).
func (o OrbitalElements) String() string {
	return fmt.Sprintf("e=%.6f α=%.6e i=%.3f Ω=%.3f ω=%.3f", o.Eccentricity, o.Alpha, Rad2deg(o.Inclination), Rad2deg(o.Longitude), Rad2deg(o.Periapsis))
}

// Equals returns whether two sets of elements describe the same conic.
// The argument of periapsis is ignored for circular orbits and the longitude
// of the ascending node for equatorial ones.
func (o OrbitalElements) Equals(o1 OrbitalElements) (bool, error) {
	if !scalar.EqualWithinAbs(o.Eccentricity, o1.Eccentricity, eccentricityε) {
		return false, errors.New("eccentricity invalid")
	}
	if !scalar.EqualWithinAbsOrRel(o.Alpha, o1.Alpha, 1e-15, alphaε) {
		return false, errors.New("alpha invalid")
	}
	if !scalar.EqualWithinAbs(o.Inclination, o1.Inclination, angleε) {
		return false, errors.New("inclination invalid")
	}
	equatorial := o.Inclination < angleε || math.Pi-o.Inclination < angleε
	if !equatorial && angleDiff(o.Longitude, o1.Longitude) > angleε {
		return false, errors.New("RAAN invalid")
	}
	if o.Eccentricity >= eccentricityε && angleDiff(o.Periapsis, o1.Periapsis) > angleε {
		return false, errors.New("argument of periapsis invalid")
	}
	return true, nil
}

// angleDiff returns the smallest absolute difference between two angles.
func angleDiff(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 2*math.Pi)
	return math.Min(d, 2*math.Pi-d)
}

// StateAt returns the state at true anomaly ν on the conic described by the
// elements around a body of gravitational parameter μ (from Vallado's COE2RV).
// As in DeriveElements, ν is measured from the ascending node for circular
// orbits and the periapsis from the X axis for equatorial ones.
// Parabolic elements do not define the semi-parameter and are not supported.
func (o OrbitalElements) StateAt(μ, ν float64) (Cartesian, error) {
	switch {
	case μ < 0:
		return Cartesian{}, fmt.Errorf("%w: μ=%g", ErrNegativeMu, μ)
	case μ == 0:
		return Cartesian{}, ErrLinearOrbit
	}
	p := o.SemiParameter()
	if math.IsNaN(p) || p <= 0 {
		return Cartesian{}, fmt.Errorf("%w: no semi-parameter for e=%g α=%g", ErrNotImplemented, o.Eccentricity, o.Alpha)
	}
	sinν, cosν := math.Sincos(ν)
	den := 1 + o.Eccentricity*cosν
	if den <= 0 {
		return Cartesian{}, fmt.Errorf("true anomaly %.3f is beyond the asymptotes", Rad2deg(ν))
	}
	vp := math.Sqrt(μ / p)
	r := r3.Vec{X: p * cosν / den, Y: p * sinν / den}
	v := r3.Vec{X: -vp * sinν, Y: vp * (o.Eccentricity + cosν)}
	if o.Inclination == math.Pi {
		// Retrograde equatorial: the periapsis is measured from the X axis.
		sω, cω := math.Sincos(o.Periapsis)
		P, Q := r3.Vec{X: cω, Y: sω}, r3.Vec{X: sω, Y: -cω}
		return Cartesian{
			Position: r3.Add(r3.Scale(r.X, P), r3.Scale(r.Y, Q)),
			Velocity: r3.Add(r3.Scale(v.X, P), r3.Scale(v.Y, Q)),
		}, nil
	}
	return Cartesian{
		Position: PQW2Inertial(o.Inclination, o.Periapsis, o.Longitude, r),
		Velocity: PQW2Inertial(o.Inclination, o.Periapsis, o.Longitude, v),
	}, nil
}
