package univariate

import "math"

// maxSearchIterations bounds the interpolating searches, whose bracket is
// not guaranteed to shrink geometrically.
const maxSearchIterations = 10000

// parabolicMinimum returns the abscissa of the vertex of the parabola through
// (a, fa), (b, fb), (c, fc). The result is NaN or ±Inf when the points are
// collinear.
func parabolicMinimum(a, b, c, fa, fb, fc float64) float64 {
	return b + 0.5*((fa-fb)*(c-b)*(c-b)-(fc-fb)*(b-a)*(b-a))/
		((fa-fb)*(c-b)+(fc-fb)*(b-a))
}

// Parabolic keeps three points a < b < c with f(b) lowest, and replaces one of
// them by the vertex of the parabola through all three until the bracket
// [a, c] is narrower than tol. It returns b.
//
// Collinear points are not guarded against: the vertex is then not finite,
// the bracket collapses and the current b is returned.
type Parabolic struct{}

func (Parabolic) Search(f Func, a, c, tol float64) float64 {
	b := middle(a, c)
	fa, fb, fc := f(a), f(b), f(c)
	for i := 0; math.Abs(a-c) >= tol && i < maxSearchIterations; i++ {
		x := parabolicMinimum(a, b, c, fa, fb, fc)
		fx := f(x)
		if fx < fb {
			if x < b {
				c, fc = b, fb
			} else {
				a, fa = b, fb
			}
			b, fb = x, fx
			continue
		}
		if x < b {
			a, fa = x, fx
		} else {
			c, fc = x, fx
		}
	}
	return b
}
