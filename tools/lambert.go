package tools

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

const (
	lambertTimeε  = 1e-6                   // s
	lambertAngleε = (5e-5 / 180) * math.Pi // rad
	stumpffε      = 1e-6

	maxLambertIterations = 10000
)

// ErrLambertNoConvergence is returned when the bisection on ψ does not reach the time of flight.
var ErrLambertNoConvergence = errors.New("lambert: no convergence")

// lambertGeometry is the universal variable time of flight of a transfer
// between two fixed positions, as a function of ψ.
type lambertGeometry struct {
	rI, rF, a, sqrtμ float64
}

// y returns the auxiliary variable y(ψ) given the Stumpff functions at ψ.
func (lg lambertGeometry) y(ψ, c2, c3 float64) float64 {
	return lg.rI + lg.rF + lg.a*(ψ*c3-1)/math.Sqrt(c2)
}

func (lg lambertGeometry) tof(y, c2, c3 float64) float64 {
	χ := math.Sqrt(y / c2)
	return (χ*χ*χ*c3 + lg.a*math.Sqrt(y)) / lg.sqrtμ
}

// Lambert solves the Lambert boundary problem with universal variables (Vallado, algorithm 58):
// it returns the initial and final velocities of the transfer from Ri to Rf in Δt0 seconds
// around a body of gravitational parameter μ, along with ψ, the square of the change in
// eccentric anomaly. The direction of motion dm is 1 for the short way, -1 for the long
// way and 0 to pick the way by the change in longitude. Multiple revolutions are not supported.
func Lambert(Ri, Rf *mat.VecDense, Δt0, dm, μ float64) (Vi, Vf *mat.VecDense, ψ float64, err error) {
	Vi = mat.NewVecDense(3, nil)
	Vf = mat.NewVecDense(3, nil)
	if Ri.Len() != 3 || Rf.Len() != 3 {
		return Vi, Vf, 0, errors.New("lambert: positions must be 3x1 vectors")
	}
	if μ <= 0 || Δt0 <= 0 {
		return Vi, Vf, 0, errors.New("lambert: gravitational parameter and time of flight must be positive")
	}
	lg := lambertGeometry{rI: mat.Norm(Ri, 2), rF: mat.Norm(Rf, 2), sqrtμ: math.Sqrt(μ)}
	cosΔν := mat.Dot(Ri, Rf) / (lg.rI * lg.rF)
	Δν := math.Atan2(Rf.AtVec(1), Rf.AtVec(0)) - math.Atan2(Ri.AtVec(1), Ri.AtVec(0))
	switch dm {
	case 0:
		dm = 1
		if math.Mod(Δν+2*math.Pi, 2*math.Pi) >= math.Pi {
			dm = -1
		}
	case 1, -1:
	default:
		return Vi, Vf, 0, fmt.Errorf("lambert: direction of motion must be 0, -1 or 1, got %f", dm)
	}
	lg.a = dm * math.Sqrt(lg.rI*lg.rF*(1+cosΔν))
	if math.Abs(Δν) < lambertAngleε && scalar.EqualWithinAbs(lg.a, 0, stumpffε) {
		return Vi, Vf, 0, errors.New("lambert: Δν and A are zero, the transfer is undefined")
	}

	// Bisection on ψ between the parabola-like lower bound and one revolution.
	ψLow, ψUp := -4*math.Pi, 4*math.Pi*math.Pi
	c2, c3 := stumpff(ψ)
	var y float64
	for iter, Δt := 0, 0.; math.Abs(Δt-Δt0) > lambertTimeε; iter++ {
		if iter > maxLambertIterations {
			return Vi, Vf, ψ, fmt.Errorf("%w after %d iterations", ErrLambertNoConvergence, iter)
		}
		y = lg.y(ψ, c2, c3)
		if lg.a > 0 && y < 0 {
			// y must be positive: raise ψ until it is, and use it as the new lower bound.
			for n := 0; y < 0; n++ {
				if n > maxLambertIterations {
					return Vi, Vf, ψ, fmt.Errorf("%w: y stays negative up to ψ=%f", ErrLambertNoConvergence, ψ)
				}
				ψ += 0.1
				c2, c3 = stumpff(ψ)
				y = lg.y(ψ, c2, c3)
			}
			ψLow = ψ
		}
		if Δt = lg.tof(y, c2, c3); Δt < Δt0 {
			ψLow = ψ
		} else {
			ψUp = ψ
		}
		ψ = (ψUp + ψLow) / 2
		c2, c3 = stumpff(ψ)
	}

	// Lagrange coefficients.
	f := 1 - y/lg.rI
	g := lg.a * math.Sqrt(y/μ)
	gDot := 1 - y/lg.rF
	Vi.AddScaledVec(Rf, -f, Ri)
	Vi.ScaleVec(1/g, Vi)
	Vf.ScaleVec(gDot, Rf)
	Vf.SubVec(Vf, Ri)
	Vf.ScaleVec(1/g, Vf)
	return Vi, Vf, ψ, nil
}

// stumpff returns the c2 and c3 Stumpff functions of ψ.
func stumpff(ψ float64) (c2, c3 float64) {
	switch {
	case ψ > stumpffε:
		sψ := math.Sqrt(ψ)
		sin, cos := math.Sincos(sψ)
		return (1 - cos) / ψ, (sψ - sin) / (ψ * sψ)
	case ψ < -stumpffε:
		sψ := math.Sqrt(-ψ)
		return (1 - math.Cosh(sψ)) / ψ, (math.Sinh(sψ) - sψ) / (-ψ * sψ)
	default:
		return 1 / 2., 1 / 6.
	}
}
