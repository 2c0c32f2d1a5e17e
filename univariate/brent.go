package univariate

import "math"

func distinct(a, b, c float64) bool {
	return a != b && b != c && c != a
}

// Brent combines parabolic interpolation with golden section steps. The
// parabolic step through the three best points x, w, v is accepted only when
// the points and their values are distinct, the vertex lies in the bracket,
// and the step is less than half of the step taken two iterations ago.
// Otherwise a golden section step is taken into the larger part of the
// bracket. It returns the best point found once the bracket is narrower
// than tol.
type Brent struct{}

func (Brent) Search(f Func, a, c, tol float64) float64 {
	x := a + invPhi*(c-a)
	w, v := x, x
	fx := f(x)
	fw, fv := fx, fx
	d := c - a
	e := d

	for i := 0; math.Abs(a-c) >= tol && i < maxSearchIterations; i++ {
		g := e
		e = d

		var u float64
		accepted := false
		if distinct(w, x, v) && distinct(fw, fx, fv) {
			u = parabolicMinimum(w, x, v, fw, fx, fv)
			accepted = !math.IsNaN(u) && a <= u && u <= c && math.Abs(u-x) < g/2
		}
		if !accepted {
			if x < middle(a, c) {
				e = c - x
				u = x + invPhi*e
			} else {
				e = x - a
				u = x - invPhi*e
			}
		}

		fu := f(u)
		if fu <= fx {
			if u >= x {
				a = x
			} else {
				c = x
			}
			v, w, x = w, x, u
			fv, fw, fx = fw, fx, fu
		} else {
			if u >= x {
				c = u
			} else {
				a = u
			}
			switch {
			case fu <= fw || w == x:
				v, w = w, u
				fv, fw = fw, fu
			case fu <= fv || v == x || v == w:
				v, fv = u, fu
			}
		}
		d = c - a
	}
	return x
}
