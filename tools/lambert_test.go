package tools

import (
	"testing"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

const earthμkm = 3.98600433e5

func TestLambert(t *testing.T) {
	// From Vallado 4th edition, page 497
	Ri := mat.NewVecDense(3, []float64{15945.34, 0, 0})
	Rf := mat.NewVecDense(3, []float64{12214.83899, 10249.46731, 0})
	ViExp := mat.NewVecDense(3, []float64{2.058913, 2.915965, 0})
	VfExp := mat.NewVecDense(3, []float64{-3.451565, 0.910315, 0})
	for _, dm := range []float64{0, 1} {
		Vi, Vf, ψ, err := Lambert(Ri, Rf, 76.0*60, dm, earthμkm)
		if err != nil {
			t.Fatalf("err %s", err)
		}
		if !mat.EqualApprox(Vi, ViExp, 1e-6) {
			t.Logf("ψ=%f", ψ)
			t.Logf("\nGot %v\nExp %v\n", mat.Formatted(Vi.T()), mat.Formatted(ViExp.T()))
			t.Fatalf("[dm=%f] incorrect Vi computed", dm)
		}
		if !mat.EqualApprox(Vf, VfExp, 1e-6) {
			t.Logf("ψ=%f", ψ)
			t.Logf("\nGot %v\nExp %v\n", mat.Formatted(Vf.T()), mat.Formatted(VfExp.T()))
			t.Fatalf("[dm=%f] incorrect Vf computed", dm)
		}
	}
	// Test with dm=-1
	ViExp = mat.NewVecDense(3, []float64{-3.811158, -2.003854, 0})
	VfExp = mat.NewVecDense(3, []float64{4.207569, 0.914724, 0})

	Vi, Vf, ψ, err := Lambert(Ri, Rf, 76.0*60, -1, earthμkm)
	if err != nil {
		t.Fatalf("err %s", err)
	}
	if !mat.EqualApprox(Vi, ViExp, 1e-6) {
		t.Logf("ψ=%f", ψ)
		t.Fatal("[dm=-1] incorrect Vi computed")
	}
	if !mat.EqualApprox(Vf, VfExp, 1e-6) {
		t.Logf("ψ=%f", ψ)
		t.Fatal("[dm=-1] incorrect Vf computed")
	}
}

func TestLambertPropagation(t *testing.T) {
	Ri := mat.NewVecDense(3, []float64{15945.34, 0, 0})
	Rf := mat.NewVecDense(3, []float64{12214.83899, 10249.46731, 0})
	Vi, Vf, _, err := Lambert(Ri, Rf, 76.0*60, 1, earthμkm)
	if err != nil {
		t.Fatal(err)
	}
	toVec := func(v *mat.VecDense) r3.Vec {
		return r3.Vec{X: v.AtVec(0), Y: v.AtVec(1), Z: v.AtVec(2)}
	}
	state := propagate(t, earthμkm, toVec(Ri), toVec(Vi), 76.0*60)
	if !vecEqual(state.Position, toVec(Rf), 1e-6) {
		t.Fatalf("reached %+v instead of %+v", state.Position, toVec(Rf))
	}
	if !vecEqual(state.Velocity, toVec(Vf), 1e-6) {
		t.Fatalf("arrival velocity %+v instead of %+v", state.Velocity, toVec(Vf))
	}
}

func TestLambertErrors(t *testing.T) {
	Ri := mat.NewVecDense(3, []float64{15945.34, 0, 0})
	Rf := mat.NewVecDense(3, []float64{12214.83899, 10249.46731, 0})
	if _, _, _, err := Lambert(Ri, Rf, 76.0*60, 2, earthμkm); err == nil {
		t.Fatal("err should not be nil if dm == 2")
	}
	if _, _, _, err := Lambert(mat.NewVecDense(2, []float64{15945.34, 0}), Rf, 76.0*60, 1, earthμkm); err == nil {
		t.Fatal("err should not be nil if the R vectors are of different dimensions")
	}
	if _, _, _, err := Lambert(mat.NewVecDense(2, []float64{15945.34, 0}), mat.NewVecDense(2, []float64{12214.83899, 10249.46731}), 76.0*60, 1, earthμkm); err == nil {
		t.Fatal("err should not be nil if the R vectors are of not of dimension 3x1")
	}
	if _, _, _, err := Lambert(Ri, Rf, -1, 1, earthμkm); err == nil {
		t.Fatal("err should not be nil with a negative time of flight")
	}
	if _, _, _, err := Lambert(Ri, Rf, 76.0*60, 1, 0); err == nil {
		t.Fatal("err should not be nil with a zero gravitational parameter")
	}
}
