package multivariate

import (
	"errors"
	"fmt"
	"math"

	"github.com/btracey/quadopt/common"
	"github.com/btracey/quadopt/quadratic"
	"github.com/btracey/quadopt/univariate"
)

// Optimizer is a descent method written as a state machine: Init sets the
// starting state and each call to Iterate advances it by one iteration.
type Optimizer interface {
	Init(f *quadratic.Function, initLoc []float64, initObj float64, initGrad []float64) error
	// Status reports a stop condition detected by the optimizer itself.
	Status() common.Status
	// Iterate takes one step, putting the new location and its gradient in
	// loc and grad.
	Iterate(loc, grad []float64) (obj float64, nFunEvals, nGradEvals int, err error)
}

// GradWrapper is a convenience wrapper around an Optimizer that allows
// fine-grained control over optimization progress. See Optimize for example
// usage.
type GradWrapper struct {
	optimizer Optimizer
	helper    *Helper
	f         *quadratic.Function
}

func NewGradWrapper(optimizer Optimizer) *GradWrapper {
	return &GradWrapper{
		optimizer: optimizer,
		helper:    NewHelper(),
	}
}

// Init evaluates f at initLoc and initializes the optimizer. It returns the
// initial gradient.
func (g *GradWrapper) Init(settings *Settings, f *quadratic.Function, initLoc []float64) (initGrad []float64, err error) {
	g.f = f
	initGrad = make([]float64, len(initLoc))
	initObj := f.ObjGrad(initLoc, initGrad)
	if err := g.helper.Init(settings, initLoc, initObj, initGrad); err != nil {
		return nil, err
	}
	if err := g.optimizer.Init(f, initLoc, initObj, initGrad); err != nil {
		return nil, err
	}
	return initGrad, nil
}

func (g *GradWrapper) Status() common.Status {
	return common.CheckStatus(g.helper, g.optimizer)
}

func (g *GradWrapper) Iterate(loc, grad []float64) (obj float64, err error) {
	obj, nFunEvals, nGradEvals, err := g.optimizer.Iterate(loc, grad)
	if err != nil {
		return obj, errors.New("error iterating optimizer: " + err.Error())
	}
	if err := g.helper.Iterate(loc, obj, grad, nFunEvals, nGradEvals); err != nil {
		return obj, err
	}
	return obj, nil
}

func (g *GradWrapper) Result(status common.Status, loc []float64) (*Result, error) {
	cr, err := g.helper.Result(status)
	if err != nil {
		return nil, err
	}
	return &Result{
		CommonResult: cr,
		X:            loc,
		Y:            g.f.Obj(loc),
		GradNorm:     g.helper.GradNorm(),
	}, nil
}

// Optimize minimizes f from initLoc with the given method. A nil settings
// uses DefaultSettings.
//
// Each iteration first appends a copy of the current location to the
// trajectory and then moves it, so the trajectory holds one entry per
// iteration and does not include the final location. Reaching the iteration
// limit is not an error; inspect Result.Status or Result.Converged.
func Optimize(f *quadratic.Function, initLoc []float64, settings *Settings, method Method) (*Result, error) {
	if settings == nil {
		settings = DefaultSettings()
	}
	optimizer, err := method.Optimizer(settings)
	if err != nil {
		return nil, err
	}
	result, err := OptimizeWith(f, initLoc, settings, optimizer)
	if err != nil {
		return nil, err
	}
	result.Method = method
	return result, nil
}

// OptimizeWith runs a user supplied Optimizer.
func OptimizeWith(f *quadratic.Function, initLoc []float64, settings *Settings, optimizer Optimizer) (*Result, error) {
	if f == nil {
		return nil, errors.New("multivariate: objective function is nil")
	}
	if optimizer == nil {
		return nil, errors.New("multivariate: no optimizer provided")
	}
	if settings == nil {
		settings = DefaultSettings()
	}
	if settings.CommonSettings == nil {
		s := *settings
		s.CommonSettings = common.DefaultCommonSettings()
		settings = &s
	}
	if len(initLoc) != f.Dim() {
		return nil, fmt.Errorf("%w: initial location has length %d, function has dimension %d",
			quadratic.ErrDimensionMismatch, len(initLoc), f.Dim())
	}
	if math.IsNaN(settings.Tolerance) || settings.Tolerance < 0 {
		return nil, fmt.Errorf("multivariate: invalid tolerance %v", settings.Tolerance)
	}

	wrapper := NewGradWrapper(optimizer)
	initGrad, err := wrapper.Init(settings, f, initLoc)
	if err != nil {
		return nil, errors.New("error initializing: " + err.Error())
	}
	loc := make([]float64, len(initLoc))
	copy(loc, initLoc)
	grad := initGrad

	var trajectory [][]float64
	var status common.Status
	for {
		status = wrapper.Status()
		if status != common.Continue {
			break
		}
		trajectory = append(trajectory, append([]float64(nil), loc...))
		if _, err := wrapper.Iterate(loc, grad); err != nil {
			return nil, err
		}
	}
	result, err := wrapper.Result(status, loc)
	if err != nil {
		return nil, err
	}
	result.Trajectory = trajectory
	return result, nil
}

// Params holds the optional parameters of an Algorithm.
type Params struct {
	Linesearch univariate.Method // Used by steepest descent
}

// Algorithm is the uniform calling convention shared by every method.
// A nil params selects the defaults.
type Algorithm func(f *quadratic.Function, initLoc []float64, eps float64, params *Params) (*Result, error)

// Algorithm returns m with the uniform calling convention.
func (m Method) Algorithm() Algorithm {
	return func(f *quadratic.Function, initLoc []float64, eps float64, params *Params) (*Result, error) {
		settings := DefaultSettings()
		settings.Tolerance = eps
		if params != nil {
			settings.Linesearch = params.Linesearch
		}
		return Optimize(f, initLoc, settings, m)
	}
}

// Registry returns every algorithm keyed by its display name.
func Registry() map[string]Algorithm {
	reg := make(map[string]Algorithm, len(methodNames))
	for _, m := range Methods() {
		reg[m.String()] = m.Algorithm()
	}
	return reg
}
