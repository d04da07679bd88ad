package tools

import (
	"fmt"
	"math"
	"time"
)

// Hohmann computes an Hohmann transfer between the circular coplanar orbits of
// radii rI and rF around a body of gravitational parameter μ. It returns the
// departure and arrival velocities on the transfer orbit, and the time of flight.
// To get final computations:
// ΔvInit = vDepature - vI
// ΔvFinal = vArrival - vF
func Hohmann(rI, rF, μ float64) (vDeparture, vArrival float64, tof time.Duration, err error) {
	if rI <= 0 || rF <= 0 || μ <= 0 {
		err = fmt.Errorf("invalid Hohmann transfer from %f to %f with μ=%f", rI, rF, μ)
		return
	}
	aTransfer := 0.5 * (rI + rF)
	vDeparture = math.Sqrt((2 * μ / rI) - (μ / aTransfer))
	vArrival = math.Sqrt((2 * μ / rF) - (μ / aTransfer))
	tof = time.Duration(math.Pi * math.Sqrt(math.Pow(aTransfer, 3)/μ) * float64(time.Second))
	return
}
