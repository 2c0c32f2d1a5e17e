package univariate

// GoldenSection shrinks the bracket by the golden ratio at every step,
// reusing one interior point so that each step costs a single evaluation.
// It returns the midpoint of the final bracket, whose width is at most tol.
type GoldenSection struct{}

func (GoldenSection) Search(f Func, left, right, tol float64) float64 {
	delta := (right - left) * invPhi
	x2 := left + delta
	x1 := right - delta
	f2 := f(x2)
	f1 := f(x1)

	for right-left > tol {
		delta *= invPhi
		if f1 >= f2 {
			left = x1
			x1 = x2
			f1 = f2
			x2 = left + delta
			f2 = f(x2)
		} else {
			right = x2
			x2 = x1
			f2 = f1
			x1 = right - delta
			f1 = f(x1)
		}
		if delta == 0 {
			// The bracket can no longer be represented more finely.
			break
		}
	}
	return middle(left, right)
}
