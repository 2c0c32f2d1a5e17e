package multivariate

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/btracey/quadopt/common"
	"github.com/btracey/quadopt/quadratic"
	"github.com/btracey/quadopt/univariate"
)

// stepBound returns 2/λmax, the largest step for which gradient descent on f
// does not diverge.
func stepBound(f *quadratic.Function) (float64, error) {
	lambda, err := f.MaxEigenValue()
	if err != nil {
		return 0, err
	}
	if !(lambda > 0) {
		return 0, fmt.Errorf("multivariate: largest eigenvalue %v is not positive", lambda)
	}
	return 2 / lambda, nil
}

// GradientDescent moves against the gradient with an adaptive step. The
// step starts at 2/λmax and is halved whenever it fails to decrease the
// objective; the halving is retried along the same gradient within a single
// iteration, so every iteration ends at a strictly lower objective.
type GradientDescent struct {
	f      *quadratic.Function
	x      []float64
	y      []float64
	grad   []float64
	obj    float64
	step   float64
	status common.Status
}

func (g *GradientDescent) Init(f *quadratic.Function, initLoc []float64, initObj float64, initGrad []float64) error {
	step, err := stepBound(f)
	if err != nil {
		return err
	}
	g.f = f
	g.step = step
	g.obj = initObj
	g.x = append(g.x[:0], initLoc...)
	g.grad = append(g.grad[:0], initGrad...)
	g.y = resize(g.y, len(initLoc))
	g.status = common.Continue
	return nil
}

func (g *GradientDescent) Status() common.Status {
	return g.status
}

// Step returns the current step size.
func (g *GradientDescent) Step() float64 {
	return g.step
}

func (g *GradientDescent) Iterate(loc, grad []float64) (obj float64, nFunEvals, nGradEvals int, err error) {
	for {
		floats.AddScaledTo(g.y, g.x, -g.step, g.grad)
		if floats.Equal(g.y, g.x) {
			// The step is too small to move x.
			g.status = common.StepUnderflow
			copy(loc, g.x)
			copy(grad, g.grad)
			return g.obj, nFunEvals, nGradEvals, nil
		}
		fy := g.f.Obj(g.y)
		nFunEvals++
		if fy < g.obj {
			g.x, g.y = g.y, g.x
			g.obj = fy
			break
		}
		g.step /= 2
	}
	g.f.Grad(g.x, g.grad)
	nGradEvals++
	copy(loc, g.x)
	copy(grad, g.grad)
	return g.obj, nFunEvals, nGradEvals, nil
}

// SteepestDescent moves against the gradient by the step that minimizes the
// objective along it, found by a one-dimensional search over [0, 2/λmax]
// to the tolerance Tol.
type SteepestDescent struct {
	Linesearch univariate.Method
	// Tol is the tolerance of the line search. If zero, the search uses
	// univariate.DefaultTol.
	Tol float64

	f     *quadratic.Function
	x     []float64
	trial []float64
	grad  []float64
	bound float64
}

func (s *SteepestDescent) Init(f *quadratic.Function, initLoc []float64, initObj float64, initGrad []float64) error {
	bound, err := stepBound(f)
	if err != nil {
		return err
	}
	s.f = f
	s.bound = bound
	s.x = append(s.x[:0], initLoc...)
	s.grad = append(s.grad[:0], initGrad...)
	s.trial = resize(s.trial, len(initLoc))
	return nil
}

func (s *SteepestDescent) Status() common.Status {
	return common.Continue
}

func (s *SteepestDescent) Iterate(loc, grad []float64) (obj float64, nFunEvals, nGradEvals int, err error) {
	line := func(alpha float64) float64 {
		floats.AddScaledTo(s.trial, s.x, -alpha, s.grad)
		return s.f.Obj(s.trial)
	}
	tol := s.Tol
	if tol == 0 {
		tol = univariate.DefaultTol
	}
	search, err := univariate.Optimize(line, 0, s.bound, &univariate.Settings{Tol: tol}, s.Linesearch)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("line search: %w", err)
	}
	// Optimize also evaluates the line at the returned step.
	nFunEvals = search.FunctionEvaluations + 1

	floats.AddScaled(s.x, -search.Loc, s.grad)
	obj = s.f.ObjGrad(s.x, s.grad)
	nFunEvals++
	nGradEvals++
	copy(loc, s.x)
	copy(grad, s.grad)
	return obj, nFunEvals, nGradEvals, nil
}

func resize(x []float64, n int) []float64 {
	if cap(x) < n {
		return make([]float64, n)
	}
	return x[:n]
}
