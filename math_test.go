package orbit

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestAngles(t *testing.T) {
	for i := 0.0; i <= 360; i += 0.5 {
		if ok, _ := anglesEqual(Deg2rad(i), Deg2rad(Rad2deg(Deg2rad(i)))); !ok {
			t.Fatalf("incorrect conversion for %3.2f", i)
		}
		if i == 360 && Rad2deg(Deg2rad(i)) != 0 {
			t.Fatalf("incorrect conversion for %3.2f", i)
		}
	}
	for _, tc := range []struct{ deg, expPi float64 }{{0, 0}, {30, 1 / 6.}, {90, 1 / 2.}, {180, 1}, {270, 3 / 2.}} {
		if !scalar.EqualWithinAbs(Deg2rad(tc.deg)/math.Pi, tc.expPi, 1e-10) {
			t.Fatalf("%f deg = %f π rad", tc.deg, Deg2rad(tc.deg)/math.Pi)
		}
	}
	if !scalar.EqualWithinAbs(Rad2deg(Deg2rad(-359.)), 1, 1e-10) {
		t.Fatal("incorrect conversion for -359")
	}
	if !scalar.EqualWithinAbs(Rad2deg(Deg2rad(-180.)), 180, 1e-10) {
		t.Fatal("incorrect conversion for -180")
	}
}

func TestSpherical2Cartesian(t *testing.T) {
	incr := math.Pi / 10
	for r := 0.0; r < 1000; r += 100 {
		for θ := incr; θ < math.Pi; θ += incr {
			for φ := incr; φ < math.Pi; φ += incr {
				a := r3.Vec{X: r, Y: θ, Z: φ}
				b := Cartesian2Spherical(Spherical2Cartesian(a))
				if r == 0 {
					if b != (r3.Vec{}) {
						t.Fatal("zero norm should return zero vector")
					}
					continue
				}
				if !scalar.EqualWithinAbs(a.X, b.X, 1e-10) {
					t.Fatalf("r incorrect (%f != %f)", a.X, b.X)
				}
				if ok, err := anglesEqual(a.Y, b.Y); !ok {
					t.Fatalf("θ incorrect (%f != %f) %s", a.Y, b.Y, err)
				}
				if ok, err := anglesEqual(a.Z, b.Z); !ok {
					t.Fatalf("φ incorrect (%f != %f) %s", a.Z, b.Z, err)
				}
			}
		}
	}
}

func TestMisc(t *testing.T) {
	if sign(10) != 1 || sign(-10) != -1 || sign(0) != 1 {
		t.Fatal("invalid sign")
	}
	if unit(r3.Vec{}) != (r3.Vec{}) {
		t.Fatal("unit of a nil vector was not nil")
	}
	if u := unit(r3.Vec{X: 3, Y: 0, Z: 4}); !vectorsEqual(u, r3.Vec{X: 0.6, Y: 0, Z: 0.8}, 1e-15) {
		t.Fatalf("invalid unit vector %+v", u)
	}
	if acos(1+1e-15) != 0 || acos(-1-1e-15) != math.Pi {
		t.Fatal("acos should clamp its argument")
	}
}
