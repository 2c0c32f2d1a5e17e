package univariate

import "sort"

// fibTableSize is the number of Fibonacci numbers representable as float64.
const fibTableSize = 1476

// fibonacci holds F₀ = F₁ = 1, Fᵢ = Fᵢ₋₁ + Fᵢ₋₂ for i < fibTableSize.
var fibonacci = fibonacciTable(fibTableSize)

func fibonacciTable(n int) []float64 {
	fib := make([]float64, n)
	fib[0], fib[1] = 1, 1
	for i := 2; i < n; i++ {
		fib[i] = fib[i-1] + fib[i-2]
	}
	return fib
}

// fibonacciSteps returns the number of steps n such that Fₙ is the first
// Fibonacci number exceeding (right−left)/tol, capped at the table size.
func fibonacciSteps(left, right, tol float64) int {
	ratio := (right - left) / tol
	i := sort.SearchFloat64s(fibonacci, ratio)
	n := i + 2
	if i < len(fibonacci) && fibonacci[i] == ratio {
		n = i + 1
	}
	if n > fibTableSize-1 {
		n = fibTableSize - 1
	}
	return n
}

// fibonacciPoint returns a + F[n-i]/F[n-j]*(b-a).
func fibonacciPoint(a, b float64, n, i, j int) float64 {
	return a + fibonacci[n-i]/fibonacci[n-j]*(b-a)
}

// Fibonacci narrows the bracket using ratios of consecutive Fibonacci
// numbers, fixing the number of evaluations in advance from
// (right−left)/tol. The final step compares the two points tol apart to
// decide the last interval, and the midpoint of that interval is returned.
type Fibonacci struct{}

func (Fibonacci) Search(f Func, left, right, tol float64) float64 {
	n := fibonacciSteps(left, right, tol)
	if n < 3 {
		return middle(left, right)
	}
	lambda := fibonacciPoint(left, right, n, 2, 0)
	mu := fibonacciPoint(left, right, n, 1, 0)
	fLambda := f(lambda)
	fMu := f(mu)

	for k := 1; k < n-2; k++ {
		if fLambda > fMu {
			left = lambda
			lambda = mu
			fLambda = fMu
			mu = fibonacciPoint(left, right, n, k+1, k)
			fMu = f(mu)
		} else {
			right = mu
			mu = lambda
			fMu = fLambda
			lambda = fibonacciPoint(left, right, n, k+2, k)
			fLambda = f(lambda)
		}
	}

	mu = lambda + tol
	fMu = f(mu)
	if fMu >= fLambda {
		return middle(lambda, right)
	}
	return middle(left, mu)
}
