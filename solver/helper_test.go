package solver

import "math"

// linear is y = x.
var linear = FuncOf(func(x float64) float64 { return x }, func(float64) float64 { return 1 })

// quadratic is y = x² - 3x - 6, with roots (3 ± √33)/2.
var quadratic = FuncOf(func(x float64) float64 { return x*x - 3*x - 6 }, func(x float64) float64 { return 2*x - 3 })

// cycling is y = x³ - 2x + 2, on which Newton-Raphson started at zero oscillates between 0 and 1.
var cycling = FuncOf(func(x float64) float64 { return x*x*x - 2*x + 2 }, func(x float64) float64 { return 3*x*x - 2 })

var (
	quadraticLeft  = (3 - math.Sqrt(33)) / 2
	quadraticRight = (3 + math.Sqrt(33)) / 2
	cyclingRoot    = -1.7692923542386314
)
