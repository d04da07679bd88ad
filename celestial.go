package orbit

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/pluto"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// AU is one astronomical unit in meters.
	AU = 1.495978707e11

	// plutoΔt is the half span of the central difference giving the velocity of Pluto, in seconds.
	plutoΔt = 3600.
)

// ErrNoEphemeris is returned for bodies without a built-in heliocentric theory.
var ErrNoEphemeris = errors.New("no ephemeris available")

// CelestialObject defines a celestial object used as a central body.
type CelestialObject struct {
	Name   string
	Radius float64 // m
	μ      float64 // m³/s²
}

// GM returns the gravitational parameter in m³/s².
func (c CelestialObject) GM() float64 {
	return c.μ
}

func (c CelestialObject) String() string {
	return c.Name
}

// Equals compares the name, radius and gravitational parameter.
func (c CelestialObject) Equals(b CelestialObject) bool {
	return c.Name == b.Name && c.Radius == b.Radius && c.μ == b.μ
}

// CentralBody returns a body at rest at the root of a hierarchy with the gravitational parameter of c.
func (c CelestialObject) CentralBody(opts ...Option) (*CenterOfMass, error) {
	return NewCentralBody(c.μ, append(opts, WithName(c.Name))...)
}

// HeliocentricState returns the position and velocity of c at dt in the
// heliocentric ecliptic frame of J2000.
// Only the Sun and Pluto (Meeus, chapter 37, valid from 1885 to 2099) are supported.
func (c CelestialObject) HeliocentricState(dt time.Time) (Cartesian, error) {
	switch c.Name {
	case "Sun":
		return ZeroCartesian(), nil
	case "Pluto":
		if dt.Year() < 1885 || dt.Year() > 2099 {
			return Cartesian{}, fmt.Errorf("%w: Pluto in %d", ErrNoEphemeris, dt.Year())
		}
		jde := julian.TimeToJD(dt)
		Δjd := plutoΔt / 86400
		before, after := plutoPosition(jde-Δjd), plutoPosition(jde+Δjd)
		return Cartesian{
			Position: plutoPosition(jde),
			Velocity: r3.Scale(1/(2*plutoΔt), r3.Sub(after, before)),
		}, nil
	default:
		return Cartesian{}, fmt.Errorf("%w: %s", ErrNoEphemeris, c.Name)
	}
}

func plutoPosition(jde float64) r3.Vec {
	l, b, r := pluto.Heliocentric(jde)
	sB, cB := math.Sincos(b.Rad())
	sL, cL := math.Sincos(l.Rad())
	return r3.Scale(r*AU, r3.Vec{X: cB * cL, Y: cB * sL, Z: sB})
}

// CelestialObjectFromString looks up a built-in object by name, ignoring case.
func CelestialObjectFromString(name string) (CelestialObject, error) {
	switch strings.ToLower(name) {
	case "sun":
		return Sun, nil
	case "earth":
		return Earth, nil
	case "moon":
		return Moon, nil
	case "venus":
		return Venus, nil
	case "mars":
		return Mars, nil
	case "jupiter":
		return Jupiter, nil
	case "saturn":
		return Saturn, nil
	case "uranus":
		return Uranus, nil
	case "pluto":
		return Pluto, nil
	default:
		return CelestialObject{}, fmt.Errorf("unknown celestial object %q", name)
	}
}

// Sun (IAU 2015 nominal radius).
var Sun = CelestialObject{"Sun", 695700e3, 1.32712440018e20}

// Venus
var Venus = CelestialObject{"Venus", 6051.8e3, 3.24858599e14}

// Earth (WGS-84 μ, IERS radius).
var Earth = CelestialObject{"Earth", 6378.1363e3, 3.986004418e14}

// Moon
var Moon = CelestialObject{"Moon", 1737.4e3, 4.9028e12}

// Mars
var Mars = CelestialObject{"Mars", 3396.19e3, 4.28283100e13}

// Jupiter
var Jupiter = CelestialObject{"Jupiter", 71492.0e3, 1.266865361e17}

// Saturn
var Saturn = CelestialObject{"Saturn", 60268.0e3, 3.7931208e16}

// Uranus
var Uranus = CelestialObject{"Uranus", 25559.0e3, 5.7939513e15}

// Pluto (New Horizons μ).
var Pluto = CelestialObject{"Pluto", 1188.3e3, 8.71e11}
