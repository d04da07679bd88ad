package solver

// Function is a scalar function along with its derivative.
type Function interface {
	F(x float64) float64
	DF(x float64) float64
}

type funcOf struct {
	f, df func(float64) float64
}

func (fn funcOf) F(x float64) float64  { return fn.f(x) }
func (fn funcOf) DF(x float64) float64 { return fn.df(x) }

// FuncOf builds a Function from a function and its derivative.
// The derivative may be nil if the Function is only used by bracketing solvers.
func FuncOf(f, df func(float64) float64) Function {
	if df == nil {
		df = func(float64) float64 { return 0 }
	}
	return funcOf{f, df}
}
