package orbit

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Cartesian is a state vector: position in meters and velocity in meters per second.
// It is a value type: propagation always returns a new Cartesian.
type Cartesian struct {
	Position r3.Vec
	Velocity r3.Vec
}

// ZeroCartesian returns the state of a body at rest at the origin.
func ZeroCartesian() Cartesian {
	return Cartesian{}
}

// IsZero returns whether both position and velocity are exactly zero.
func (c Cartesian) IsZero() bool {
	return c.Position == r3.Vec{} && c.Velocity == r3.Vec{}
}

// RNorm returns the norm of the position vector.
func (c Cartesian) RNorm() float64 {
	return r3.Norm(c.Position)
}

// VNorm returns the norm of the velocity vector.
func (c Cartesian) VNorm() float64 {
	return r3.Norm(c.Velocity)
}

// H returns the specific angular momentum vector r×v.
func (c Cartesian) H() r3.Vec {
	return r3.Cross(c.Position, c.Velocity)
}

// Energy returns the specific mechanical energy ξ around a body of gravitational parameter μ.
func (c Cartesian) Energy(μ float64) float64 {
	v := c.VNorm()
	return v*v/2 - μ/c.RNorm()
}

// Add returns the sum of both states, e.g. to move a relative state into its parent's frame.
func (c Cartesian) Add(o Cartesian) Cartesian {
	return Cartesian{r3.Add(c.Position, o.Position), r3.Add(c.Velocity, o.Velocity)}
}

// Sub returns c - o.
func (c Cartesian) Sub(o Cartesian) Cartesian {
	return Cartesian{r3.Sub(c.Position, o.Position), r3.Sub(c.Velocity, o.Velocity)}
}

// String implements the Stringer interface.
func (c Cartesian) String() string {
	return fmt.Sprintf("r=(%.3f, %.3f, %.3f) v=(%.6f, %.6f, %.6f)",
		c.Position.X, c.Position.Y, c.Position.Z, c.Velocity.X, c.Velocity.Y, c.Velocity.Z)
}
