// Package multivariate minimizes quadratic functions with gradient descent,
// steepest descent and conjugate gradient.
package multivariate

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/btracey/quadopt/common"
	"github.com/btracey/quadopt/univariate"
	"github.com/btracey/quadopt/write"
)

// DefaultTolerance is the default bound on the gradient norm.
const DefaultTolerance = 1e-5

// Settings is a structure containing settings for multivariate optimizers.
type Settings struct {
	*common.CommonSettings
	Tolerance  float64           // The run converges once the gradient norm is at most Tolerance
	Linesearch univariate.Method // One-dimensional search used by steepest descent
}

// DefaultSettings returns the default settings for multivariate optimizers.
// Runs stop at convergence or after common.DefaultMaximumIterations
// iterations and write nothing.
func DefaultSettings() *Settings {
	return &Settings{
		CommonSettings: common.DefaultCommonSettings(),
		Tolerance:      DefaultTolerance,
		Linesearch:     univariate.GoldenSectionMethod,
	}
}

// Method selects a descent algorithm.
type Method int

const (
	GradientDescentMethod Method = iota
	SteepestDescentMethod
	ConjugateGradientMethod
)

var methodNames = []string{
	GradientDescentMethod:   "Gradient Descent",
	SteepestDescentMethod:   "Fastest Descent",
	ConjugateGradientMethod: "Conjugate Gradient",
}

func (m Method) String() string {
	if m < 0 || int(m) >= len(methodNames) {
		return fmt.Sprintf("Method(%d)", int(m))
	}
	return methodNames[m]
}

// Methods returns every Method in declaration order.
func Methods() []Method {
	return []Method{GradientDescentMethod, SteepestDescentMethod, ConjugateGradientMethod}
}

var methodAliases = map[string]Method{
	"gd":              GradientDescentMethod,
	"gradient":        GradientDescentMethod,
	"sd":              SteepestDescentMethod,
	"steepestdescent": SteepestDescentMethod,
	"steepest":        SteepestDescentMethod,
	"fastest":         SteepestDescentMethod,
	"cg":              ConjugateGradientMethod,
	"conjugate":       ConjugateGradientMethod,
}

// ParseMethod returns the Method with the given name or alias ("gd", "sd",
// "cg", "steepest-descent", ...). Case, spaces, dashes and underscores are
// ignored.
func ParseMethod(s string) (Method, error) {
	key := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, strings.ToLower(s))
	if m, ok := methodAliases[key]; ok {
		return m, nil
	}
	for _, m := range Methods() {
		if strings.ReplaceAll(strings.ToLower(m.String()), " ", "") == key {
			return m, nil
		}
	}
	return 0, fmt.Errorf("multivariate: unknown method %q", s)
}

// Optimizer returns a new Optimizer implementing m.
func (m Method) Optimizer(settings *Settings) (Optimizer, error) {
	switch m {
	case GradientDescentMethod:
		return &GradientDescent{}, nil
	case SteepestDescentMethod:
		if settings == nil {
			return &SteepestDescent{}, nil
		}
		return &SteepestDescent{Linesearch: settings.Linesearch, Tol: settings.Tolerance}, nil
	case ConjugateGradientMethod:
		return &ConjugateGradient{}, nil
	}
	return nil, fmt.Errorf("multivariate: unknown method %v", m)
}

// Helper tracks the state shared by every multivariate optimizer: the
// gradient tolerance, the current objective and the step length, on top of
// the counters in common.Common.
type Helper struct {
	*common.Common

	grad common.AbsToler

	objCurr  float64
	gradNorm float64
	stepNorm float64
	prevLoc  []float64
}

// NewHelper creates a new Helper and adds itself to the data adders
func NewHelper() *Helper {
	h := &Helper{
		Common: common.NewCommon(),
	}
	h.AddDataAdder(h)
	return h
}

func (h *Helper) AppendWriteData(v []*write.Value) []*write.Value {
	v = append(v, &write.Value{Heading: "Obj", Value: h.objCurr})
	v = append(v, &write.Value{Heading: "GradNorm", Value: h.gradNorm})
	v = append(v, &write.Value{Heading: "Step", Value: h.stepNorm})
	return v
}

func (h *Helper) Init(s *Settings, initLoc []float64, initObj float64, initGrad []float64) error {
	h.objCurr = initObj
	h.gradNorm = floats.Norm(initGrad, 2)
	h.stepNorm = 0
	h.prevLoc = append(h.prevLoc[:0], initLoc...)
	h.grad.Init(s.Tolerance, h.gradNorm)
	// The initial point costs one objective and one gradient evaluation.
	return h.Common.Init(s.CommonSettings, 1, 1)
}

func (h *Helper) Iterate(loc []float64, obj float64, grad []float64, nFunEvals, nGradEvals int) error {
	h.objCurr = obj
	h.gradNorm = floats.Norm(grad, 2)
	h.stepNorm = floats.Distance(loc, h.prevLoc, 2)
	copy(h.prevLoc, loc)
	h.grad.Add(h.gradNorm)
	return h.Common.Iterate(nFunEvals, nGradEvals)
}

// Status reports GradAbsTol once the gradient norm is within tolerance and
// otherwise the limits checked by common.Common.
func (h *Helper) Status() common.Status {
	if h.grad.Converged() {
		return common.GradAbsTol
	}
	return h.Common.Status()
}

// GradNorm returns the norm of the most recent gradient.
func (h *Helper) GradNorm() float64 {
	return h.gradNorm
}

// Result is the outcome of a multivariate optimization.
type Result struct {
	*common.CommonResult
	X          []float64   // Final location
	Y          float64     // Objective at X
	GradNorm   float64     // Norm of the gradient at X
	Trajectory [][]float64 // Every location an iteration started from, in order
	Method     Method
}

// Converged reports whether the run ended because the gradient norm reached
// the tolerance, as opposed to hitting a limit.
func (r *Result) Converged() bool {
	return r.Status == common.GradAbsTol
}
