package tools

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/galaxias/orbit/solver"
)

// ErrCollinear is returned when the two positions of a GaussProblem do not define a plane.
var ErrCollinear = errors.New("positions are collinear")

// GaussProblem finds the orbit linking two positions in a given time of
// flight by iterating on the semi-parameter p (Bate, Mueller & White, 5.3).
// It implements solver.Function of p: the time of flight at p minus the target.
type GaussProblem struct {
	μ            float64
	r1, r2       r3.Vec
	n1, n2       float64
	cosΔν        float64
	tanΔν2       float64
	sinΔν        float64
	k, l, m      float64
	minP, limitP float64
	target       float64

	// State at the last p.
	p, f, g, df, α, t, dtdp float64
}

// NewGaussProblem returns the problem of going from r1 to r2 around a body of
// gravitational parameter μ, the long way round if longWay is set.
func NewGaussProblem(μ float64, r1, r2 r3.Vec, longWay bool) (*GaussProblem, error) {
	if μ <= 0 {
		return nil, fmt.Errorf("invalid gravitational parameter %f", μ)
	}
	g := &GaussProblem{μ: μ, r1: r1, r2: r2, n1: r3.Norm(r1), n2: r3.Norm(r2)}
	if g.n1 == 0 || g.n2 == 0 || r3.Norm(r3.Cross(r1, r2)) <= 1e-12*g.n1*g.n2 {
		return nil, ErrCollinear
	}
	n1n2 := g.n1 * g.n2
	g.cosΔν = r3.Dot(r1, r2) / n1n2
	Δν := math.Acos(math.Max(-1, math.Min(1, g.cosΔν)))
	if longWay {
		Δν = 2*math.Pi - Δν
	}
	g.sinΔν = math.Sin(Δν)
	g.tanΔν2 = math.Tan(Δν / 2)
	g.k = n1n2 * (1 - g.cosΔν)
	g.l = g.n1 + g.n2
	g.m = n1n2 * (1 + g.cosΔν)
	g.minP = g.k / (g.l + math.Sqrt(2*g.m))
	g.limitP = g.k / (g.l - math.Sqrt(2*g.m))
	return g, nil
}

// MinP is the semi-parameter of the parabola going the long way.
func (gp *GaussProblem) MinP() float64 { return gp.minP }

// LimitP is the semi-parameter of the parabola going the short way.
func (gp *GaussProblem) LimitP() float64 { return gp.limitP }

// InitialGuess returns the middle of the elliptic semi-parameters.
func (gp *GaussProblem) InitialGuess() float64 {
	return (gp.minP + gp.limitP) / 2
}

// SetTargetTime sets the time of flight to reach.
func (gp *GaussProblem) SetTargetTime(t float64) {
	gp.target = t
}

// Alpha returns the inverse of the semi major axis at the last evaluated p.
func (gp *GaussProblem) Alpha() float64 { return gp.α }

func (gp *GaussProblem) set(p float64) {
	gp.p = p
	k, l, m := gp.k, gp.l, gp.m
	gp.f = 1 - gp.n2*(1-gp.cosΔν)/p
	gp.g = gp.n1 * gp.n2 * gp.sinΔν / math.Sqrt(gp.μ*p)
	gp.df = -math.Sqrt(gp.μ/p) * gp.tanΔν2 * ((gp.cosΔν-1)/p + 1/gp.n1 + 1/gp.n2)
	gp.α = ((2*m-l*l)*p*p + 2*k*l*p - k*k) / (m * k * p)
	cosΔE := 1 - gp.α*gp.n1*(1-gp.f)
	dtdpFactor := 1.5 * (k*k + (2*m-l*l)*p*p) / (gp.α * m * k * p * p)
	if gp.α >= 0 {
		sinΔE := -gp.n1 * gp.n2 * gp.df / math.Sqrt(gp.μ/gp.α)
		ΔE := math.Atan2(sinΔE, cosΔE)
		if sinΔE < 0 {
			ΔE += 2 * math.Pi
		}
		sa3 := math.Sqrt(gp.μ * gp.α * gp.α * gp.α)
		gp.t = gp.g + (ΔE-sinΔE)/sa3
		gp.dtdp = -gp.g/(2*p) - dtdpFactor*(gp.t-gp.g) + 2*k*sinΔE/(p*(k-l*p)*sa3)
	} else {
		ΔF := math.Acosh(cosΔE)
		sinhΔF := math.Sinh(ΔF)
		sa3 := math.Sqrt(-gp.μ * gp.α * gp.α * gp.α)
		gp.t = gp.g + (sinhΔF-ΔF)/sa3
		gp.dtdp = -gp.g/(2*p) - dtdpFactor*(gp.t-gp.g) - 2*k*sinhΔF/(p*(k-l*p)*sa3)
	}
	// Keep the next Newton iterate at a positive p.
	if p-(gp.t-gp.target)/gp.dtdp <= 0 {
		gp.dtdp = (gp.t - gp.target) * 2 / p
	}
}

// F returns the time of flight at p minus the target time.
func (gp *GaussProblem) F(p float64) float64 {
	gp.set(p)
	return gp.t - gp.target
}

// DF returns the derivative of the time of flight with respect to p.
func (gp *GaussProblem) DF(p float64) float64 {
	gp.set(p)
	return gp.dtdp
}

// Solve returns the semi-parameter of the orbit reaching r2 in t.
// It starts Newton-Raphson from guess, falling back on Brent within the
// elliptic semi-parameters.
func (gp *GaussProblem) Solve(t, guess, tol float64) (float64, error) {
	gp.SetTargetTime(t)
	p, err := solver.NewtonRaphson(gp, guess, tol*math.Abs(guess))
	if err == nil {
		return p, nil
	}
	// The bounds themselves are parabolic.
	rng, rerr := solver.MakeRange(gp.minP*(1+1e-9), gp.limitP*(1-1e-9))
	if rerr != nil {
		return 0, rerr
	}
	p, berr := solver.Brent(gp, rng, tol*rng.Mid())
	if berr != nil {
		return 0, fmt.Errorf("%v, then %w", err, berr)
	}
	return p, nil
}

// VelocitiesAt returns the velocities at r1 and r2 on the orbit of semi-parameter p.
func (gp *GaussProblem) VelocitiesAt(p float64) (v1, v2 r3.Vec) {
	gp.set(p)
	dg := 1 - gp.n1*(1-gp.cosΔν)/p
	v1 = r3.Scale(1/gp.g, r3.Sub(gp.r2, r3.Scale(gp.f, gp.r1)))
	v2 = r3.Add(r3.Scale(gp.df, gp.r1), r3.Scale(dg, v1))
	return
}
