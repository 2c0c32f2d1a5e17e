// Package univariate minimizes a function of one variable over a bracket
// [left, right] known to contain the minimum.
//
// All searchers are stateless and safe for concurrent use.
package univariate

import (
	"fmt"
	"math"
	"strings"
)

// Func is a one-dimensional objective.
type Func func(x float64) float64

// Searcher finds an approximate minimizer of f in [left, right] to the
// absolute tolerance tol.
type Searcher interface {
	Search(f Func, left, right, tol float64) float64
}

// invPhi is the reciprocal of the golden ratio, (√5−1)/2.
var invPhi = 1 / math.Phi

func middle(a, b float64) float64 {
	return (a-b)/2 + b
}

// Method selects a Searcher. The zero value is GoldenSectionMethod.
type Method int

const (
	GoldenSectionMethod Method = iota
	DichotomyMethod
	FibonacciMethod
	ParabolicMethod
	BrentMethod
)

var methodNames = []string{
	GoldenSectionMethod: "Golden Section",
	DichotomyMethod:     "Dichotomy",
	FibonacciMethod:     "Fibonacci",
	ParabolicMethod:     "Parabolic",
	BrentMethod:         "Brent",
}

func (m Method) String() string {
	if m < 0 || int(m) >= len(methodNames) {
		return fmt.Sprintf("Method(%d)", int(m))
	}
	return methodNames[m]
}

// Methods returns every Method in declaration order.
func Methods() []Method {
	return []Method{GoldenSectionMethod, DichotomyMethod, FibonacciMethod, ParabolicMethod, BrentMethod}
}

// ParseMethod returns the Method with the given name. Case, spaces, dashes
// and underscores are ignored, so "golden-section" and "GoldenSection" both
// match. "golden" is accepted as a short form.
func ParseMethod(s string) (Method, error) {
	key := normalize(s)
	if key == "golden" {
		return GoldenSectionMethod, nil
	}
	for _, m := range Methods() {
		if normalize(m.String()) == key {
			return m, nil
		}
	}
	return 0, fmt.Errorf("univariate: unknown method %q", s)
}

func normalize(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, strings.ToLower(s))
}

// Searcher returns the Searcher for m. It panics for an unknown Method.
func (m Method) Searcher() Searcher {
	switch m {
	case GoldenSectionMethod:
		return GoldenSection{}
	case DichotomyMethod:
		return Dichotomy{}
	case FibonacciMethod:
		return Fibonacci{}
	case ParabolicMethod:
		return Parabolic{}
	case BrentMethod:
		return Brent{}
	}
	panic("univariate: unknown method " + m.String())
}

// Minimize runs the search selected by m.
func Minimize(m Method, f Func, left, right, tol float64) float64 {
	return m.Searcher().Search(f, left, right, tol)
}
