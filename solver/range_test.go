package solver

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestRange(t *testing.T) {
	if _, err := NewRange(1, 1); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	if _, err := NewRange(2, 1); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	r, err := MakeRange(3, 1)
	if err != nil {
		t.Fatal(err)
	}
	if r.Low() != 1 || r.High() != 3 || r.Mid() != 2 || r.Width() != 2 {
		t.Fatalf("incorrect range %s", r)
	}
	for _, v := range []float64{1, 2, 3} {
		if !r.Includes(v) {
			t.Fatalf("%s should include %f", r, v)
		}
	}
	if r.Includes(0.999) || r.Includes(3.001) {
		t.Fatalf("%s includes values out of bounds", r)
	}
	if r.Clamp(-5) != 1 || r.Clamp(5) != 3 || r.Clamp(2.5) != 2.5 {
		t.Fatal("incorrect clamping")
	}
	assertPanic(t, func() {
		MustRange(1, 0)
	})
}

func TestRangeModulo(t *testing.T) {
	for _, tc := range []struct {
		rng      Range
		in, want float64
	}{
		{Radians(), 0, 0},
		{Radians(), 2 * math.Pi, 0},
		{Radians(), -math.Pi / 2, 3 * math.Pi / 2},
		{Radians(), 5 * math.Pi, math.Pi},
		{Radians(), -7 * math.Pi, math.Pi},
		{ZeroOne(), 1.25, 0.25},
		{ZeroOne(), -0.25, 0.75},
		{MustRange(-1, 1), 1.5, -0.5},
		{MustRange(0, 10), 3, 3},
	} {
		got := tc.rng.Modulo(tc.in)
		if !scalar.EqualWithinAbs(got, tc.want, 1e-12) {
			t.Fatalf("%s modulo %f = %f, want %f", tc.rng, tc.in, got, tc.want)
		}
		if got < tc.rng.Low() || got >= tc.rng.High() {
			t.Fatalf("%s modulo %f = %f is out of bounds", tc.rng, tc.in, got)
		}
	}
}

func TestRangePresets(t *testing.T) {
	if Positive().Low() != 0 || Positive().High() != math.MaxFloat64 {
		t.Fatal("invalid positive range")
	}
	if Negative().Low() != -math.MaxFloat64 || Negative().High() != 0 {
		t.Fatal("invalid negative range")
	}
	if ZeroOne().Low() != 0 || ZeroOne().High() != 1 {
		t.Fatal("invalid zero-one range")
	}
	if Radians().High() != 2*math.Pi {
		t.Fatal("invalid radians range")
	}
}

func assertPanic(t *testing.T, f func()) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("code did not panic")
		}
	}()
	f()
}
