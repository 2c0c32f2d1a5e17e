package multivariate

import (
	"gonum.org/v1/gonum/floats"

	"github.com/btracey/quadopt/common"
	"github.com/btracey/quadopt/quadratic"
)

// ConjugateGradient is the linear conjugate gradient method. The step along
// each direction p is the exact minimizer ‖g‖²/(pᵀAp), the gradient is
// updated incrementally as g ← g + α·Ap, and the next direction is
// −g + β·p with the Fletcher–Reeves β = ‖g_new‖²/‖g_old‖². On a symmetric
// positive definite n-dimensional problem it converges in at most n
// iterations in exact arithmetic.
//
// Iterate needs one product with A and no objective evaluations: the
// objective is recovered from the gradient as ½xᵀ(g − b) + c.
type ConjugateGradient struct {
	f      *quadratic.Function
	x      []float64
	grad   []float64
	dir    []float64
	b      []float64
	normSq float64
	status common.Status
}

func (cg *ConjugateGradient) Init(f *quadratic.Function, initLoc []float64, initObj float64, initGrad []float64) error {
	cg.f = f
	cg.b = f.B()
	cg.x = append(cg.x[:0], initLoc...)
	cg.grad = append(cg.grad[:0], initGrad...)
	cg.dir = resize(cg.dir, len(initGrad))
	floats.ScaleTo(cg.dir, -1, cg.grad)
	cg.normSq = floats.Dot(cg.grad, cg.grad)
	cg.status = common.Continue
	return nil
}

func (cg *ConjugateGradient) Status() common.Status {
	return cg.status
}

func (cg *ConjugateGradient) Iterate(loc, grad []float64) (obj float64, nFunEvals, nGradEvals int, err error) {
	ap := cg.f.MulA(cg.dir)
	nGradEvals++
	curv := floats.Dot(cg.dir, ap)
	if !(curv > 0) {
		cg.status = common.NonPositiveCurvature
		copy(loc, cg.x)
		copy(grad, cg.grad)
		return cg.objective(), 0, nGradEvals, nil
	}
	alpha := cg.normSq / curv
	floats.AddScaled(cg.x, alpha, cg.dir)
	floats.AddScaled(cg.grad, alpha, ap)

	newNormSq := floats.Dot(cg.grad, cg.grad)
	beta := newNormSq / cg.normSq
	cg.normSq = newNormSq
	floats.Scale(beta, cg.dir)
	floats.Sub(cg.dir, cg.grad)

	copy(loc, cg.x)
	copy(grad, cg.grad)
	return cg.objective(), 0, nGradEvals, nil
}

// objective returns f(x) using Ax = g + b, so that
// ½xᵀAx − bᵀx + c = ½xᵀ(g − b) + c.
func (cg *ConjugateGradient) objective() float64 {
	return 0.5*(floats.Dot(cg.x, cg.grad)-floats.Dot(cg.x, cg.b)) + cg.f.C()
}
