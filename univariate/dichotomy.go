package univariate

import "math"

// Dichotomy compares f at two probes tol/2 either side of the bracket
// midpoint and keeps the half containing the smaller value, until the
// bracket is narrower than tol. It returns the last midpoint.
type Dichotomy struct{}

func (Dichotomy) Search(f Func, left, right, tol float64) float64 {
	var x float64
	for {
		x = middle(left, right)
		if x == left || x == right {
			return x
		}
		f1 := f(x - tol/2)
		f2 := f(x + tol/2)
		if f1 < f2 {
			right = x
		} else {
			left = x
		}
		if !(math.Abs(left-right) >= tol) {
			return x
		}
	}
}
