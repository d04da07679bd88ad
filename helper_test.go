package orbit

import (
	"fmt"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"
)

func assertPanic(t *testing.T, f func()) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("code did not panic")
		}
	}()
	f()
}

// vectorsEqual returns whether both vectors are equal within a relative tolerance.
func vectorsEqual(a, b r3.Vec, tol float64) bool {
	return scalar.EqualWithinAbsOrRel(a.X, b.X, tol, tol) &&
		scalar.EqualWithinAbsOrRel(a.Y, b.Y, tol, tol) &&
		scalar.EqualWithinAbsOrRel(a.Z, b.Z, tol, tol)
}

// anglesEqual returns whether two angles in radians are equal.
func anglesEqual(a, b float64) (bool, error) {
	if angleDiff(a, b) < angleε {
		return true, nil
	}
	return false, fmt.Errorf("difference of %3.10f degrees", Rad2deg(angleDiff(a, b)))
}

func statesEqual(t *testing.T, got, exp Cartesian, tol float64) {
	t.Helper()
	if !vectorsEqual(got.Position, exp.Position, tol) {
		t.Fatalf("position: got %+v exp %+v", got.Position, exp.Position)
	}
	if !vectorsEqual(got.Velocity, exp.Velocity, tol) {
		t.Fatalf("velocity: got %+v exp %+v", got.Velocity, exp.Velocity)
	}
}

const earthμ = 3.986004418e14

func vec(x, y, z float64) r3.Vec {
	return r3.Vec{X: x, Y: y, Z: z}
}

var twoπ = 2 * math.Pi
