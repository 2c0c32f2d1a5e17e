package univariate

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	// ErrBadBracket is returned when the bracket is not a finite interval
	// with left < right.
	ErrBadBracket = errors.New("univariate: invalid bracket")

	// ErrBadTolerance is returned when the tolerance is not a positive
	// finite number.
	ErrBadTolerance = errors.New("univariate: tolerance must be positive")
)

// DefaultTol is the tolerance used when Settings is nil.
const DefaultTol = 1e-6

// Settings is a structure containing settings for univariate optimizers.
type Settings struct {
	Tol float64 // Absolute tolerance on the location of the minimum
}

func DefaultSettings() *Settings {
	return &Settings{Tol: DefaultTol}
}

// Result is the outcome of a search.
type Result struct {
	Loc                 float64 // Approximate minimizer
	Obj                 float64 // Objective at Loc
	FunctionEvaluations int     // Evaluations made by the search, excluding the one at Loc
	Runtime             time.Duration
	Method              Method
}

// Optimize validates its inputs, runs the search selected by m, and reports
// the minimizer, its value and the number of evaluations used.
func Optimize(f Func, left, right float64, settings *Settings, m Method) (*Result, error) {
	if f == nil {
		return nil, errors.New("univariate: objective function is nil")
	}
	if settings == nil {
		settings = DefaultSettings()
	}
	if math.IsNaN(left) || math.IsNaN(right) || math.IsInf(left, 0) || math.IsInf(right, 0) || !(left < right) {
		return nil, fmt.Errorf("%w: [%v, %v]", ErrBadBracket, left, right)
	}
	if !(settings.Tol > 0) || math.IsInf(settings.Tol, 1) {
		return nil, fmt.Errorf("%w: %v", ErrBadTolerance, settings.Tol)
	}
	if m < 0 || int(m) >= len(methodNames) {
		return nil, fmt.Errorf("univariate: unknown method %v", m)
	}

	var evals int
	counted := func(x float64) float64 {
		evals++
		return f(x)
	}

	start := time.Now()
	loc := m.Searcher().Search(counted, left, right, settings.Tol)
	return &Result{
		Loc:                 loc,
		Obj:                 f(loc),
		FunctionEvaluations: evals,
		Runtime:             time.Since(start),
		Method:              m,
	}, nil
}
