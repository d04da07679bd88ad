package solver

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestLinearRoot(t *testing.T) {
	if x, err := LinearRoot(2, -4); err != nil || x != 2 {
		t.Fatalf("2x - 4 = 0: got %f (%v)", x, err)
	}
	if _, err := LinearRoot(0, 1); !errors.Is(err, ErrConstant) {
		t.Fatalf("expected ErrConstant, got %v", err)
	}
}

func TestFirstRealQuadraticRoot(t *testing.T) {
	x, err := FirstRealQuadraticRoot(1, -3, -6)
	if err != nil {
		t.Fatal(err)
	}
	if !scalar.EqualWithinAbs(x, quadraticRight, 1e-12) {
		t.Fatalf("expected the positive branch %f, got %f", quadraticRight, x)
	}
	// Degrades to linear
	if x, err = FirstRealQuadraticRoot(0, 2, -4); err != nil || x != 2 {
		t.Fatalf("2x - 4 = 0: got %f (%v)", x, err)
	}
	if _, err = FirstRealQuadraticRoot(1, 0, 1); !errors.Is(err, ErrNoRealRoot) {
		t.Fatalf("expected ErrNoRealRoot, got %v", err)
	}
	if _, err = FirstRealQuadraticRoot(0, 0, 1); !errors.Is(err, ErrConstant) {
		t.Fatalf("expected ErrConstant, got %v", err)
	}
}

func TestFirstRealCubicRoot(t *testing.T) {
	for _, tc := range []struct {
		name       string
		a, b, c, d float64
		want       float64
	}{
		{"(x-1)(x-2)(x-3)", 1, -6, 11, -6, 1},
		{"2(x-1)(x-2)(x-3)", 2, -12, 22, -12, 1},
		{"x³-1", 1, 0, 0, -1, 1},
		{"x³+x", 1, 0, 1, 0, 0},
		{"x³+3x²+3x+1", 1, 3, 3, 1, -1},
		{"degrades to quadratic", 0, 1, -3, -6, quadraticRight},
	} {
		x, err := FirstRealCubicRoot(tc.a, tc.b, tc.c, tc.d)
		if err != nil {
			t.Fatalf("%s: %s", tc.name, err)
		}
		if !scalar.EqualWithinAbs(x, tc.want, 1e-9) {
			t.Fatalf("%s: got %.12f want %.12f", tc.name, x, tc.want)
		}
	}
}

func TestFirstRealCubicRootIsRoot(t *testing.T) {
	for _, coeffs := range [][4]float64{
		{1, -2, 3, -4},
		{-3, 1, 7, 2},
		{0.5, 10, -1, -50},
		{1e-3, 1, 1e3, -1e6},
	} {
		a, b, c, d := coeffs[0], coeffs[1], coeffs[2], coeffs[3]
		x, err := FirstRealCubicRoot(a, b, c, d)
		if err != nil {
			t.Fatal(err)
		}
		y := ((a*x+b)*x+c)*x + d
		scale := math.Abs(a*x*x*x) + math.Abs(b*x*x) + math.Abs(c*x) + math.Abs(d)
		if math.Abs(y) > 1e-9*scale {
			t.Fatalf("%v: p(%f) = %e", coeffs, x, y)
		}
	}
}
