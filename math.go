package orbit

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	deg2rad = math.Pi / 180
)

// unit returns the unit vector of a given vector, or the zero vector for a (near) zero norm.
func unit(a r3.Vec) r3.Vec {
	n := r3.Norm(a)
	if scalar.EqualWithinAbs(n, 0, 1e-12) {
		return r3.Vec{}
	}
	return r3.Scale(1/n, a)
}

// sign returns the sign of a given number, zero being positive.
func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

// acos is math.Acos with its argument clamped to [-1, 1], since a cosine
// computed from norms may overshoot by a few ULPs.
func acos(x float64) float64 {
	return math.Acos(math.Max(-1, math.Min(1, x)))
}

// Spherical2Cartesian returns the provided spherical coordinates (r, θ, φ) in Cartesian.
func Spherical2Cartesian(a r3.Vec) r3.Vec {
	sθ, cθ := math.Sincos(a.Y)
	sφ, cφ := math.Sincos(a.Z)
	return r3.Vec{X: a.X * sθ * cφ, Y: a.X * sθ * sφ, Z: a.X * cθ}
}

// Cartesian2Spherical returns the provided Cartesian coordinates vector in spherical (r, θ, φ).
func Cartesian2Spherical(a r3.Vec) r3.Vec {
	r := r3.Norm(a)
	if r == 0 {
		return r3.Vec{}
	}
	return r3.Vec{X: r, Y: math.Acos(a.Z / r), Z: math.Atan2(a.Y, a.X)}
}

// Deg2rad converts degrees to radians, and enforced only positive numbers.
func Deg2rad(a float64) float64 {
	if a < 0 {
		a += 360
	}
	return math.Mod(a*deg2rad, 2*math.Pi)
}

// Rad2deg converts radians to degrees, and enforced only positive numbers.
func Rad2deg(a float64) float64 {
	if a < 0 {
		a += 2 * math.Pi
	}
	return math.Mod(a/deg2rad, 360)
}
