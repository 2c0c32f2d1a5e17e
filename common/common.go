package common

import (
	"time"

	"github.com/btracey/quadopt/write"
)

// DefaultMaximumIterations caps every multidimensional run. Hitting the cap
// is not an error: the optimizer returns the last point it reached.
const DefaultMaximumIterations = 10000

// CommonSettings is a set of options available to all optimizers
type CommonSettings struct {
	MaximumIterations int           // Sets the maximum number of major iterations. Negative means no maximum
	MaximumRuntime    time.Duration // Sets the maximum runtime that can elapse. Negative means no maximum
	*write.Settings
}

// DefaultCommonSettings returns the default settings for the common structure
func DefaultCommonSettings() *CommonSettings {
	return &CommonSettings{
		MaximumIterations: DefaultMaximumIterations,
		MaximumRuntime:    -1,
		Settings:          write.DefaultSettings(),
	}
}

// CommonResult is a list of results from the common structure
type CommonResult struct {
	Iterations          int           // Total number of iterations taken by the optimizer
	FunctionEvaluations int           // Total number of objective evaluations
	GradientEvaluations int           // Total number of gradient evaluations
	Runtime             time.Duration // Total runtime elapsed during the optimization
	Status              Status        // How did the optimizer end
}

// Common counts iterations and evaluations, enforces the limits in
// CommonSettings and drives the display.
type Common struct {
	iter      int
	funEvals  int
	gradEvals int
	startTime time.Time

	settings *CommonSettings

	*write.Display
}

// NewCommon creates a new Common structure and adds itself to the display
func NewCommon() *Common {
	c := &Common{
		Display: write.NewDisplay(),
	}
	c.AddDataAdder(c)
	return c
}

// Init initializes all of the values in common at the start of the
// optimization. The initial evaluations are counted here.
func (c *Common) Init(settings *CommonSettings, nFunEvals, nGradEvals int) error {
	c.iter = 0
	c.funEvals = nFunEvals
	c.gradEvals = nGradEvals
	c.startTime = time.Now()
	c.settings = settings
	return c.Display.Init(settings.Settings)
}

func (c *Common) AppendWriteData(d []*write.Value) []*write.Value {
	d = append(d, &write.Value{Heading: "Iter", Value: c.iter})
	d = append(d, &write.Value{Heading: "FnEval", Value: c.funEvals})
	d = append(d, &write.Value{Heading: "GradEval", Value: c.gradEvals})
	return d
}

// Status checks the iteration and runtime limits.
func (c *Common) Status() Status {
	if c.settings.MaximumIterations > -1 && c.iter >= c.settings.MaximumIterations {
		return MaximumIterations
	}
	if c.settings.MaximumRuntime > -1 && time.Since(c.startTime) > c.settings.MaximumRuntime {
		return MaximumRuntime
	}
	return Continue
}

// Iterate performs an iteration of the common structure, incrementing
// the iteration, adding the evaluations, and writing to the writers
func (c *Common) Iterate(nFunEvals, nGradEvals int) error {
	c.iter++
	c.funEvals += nFunEvals
	c.gradEvals += nGradEvals
	return c.Display.Iterate()
}

// Result returns the results from the common structure
func (c *Common) Result(status Status) (*CommonResult, error) {
	if err := c.Display.Flush(); err != nil {
		return nil, err
	}
	return &CommonResult{
		Iterations:          c.iter,
		FunctionEvaluations: c.funEvals,
		GradientEvaluations: c.gradEvals,
		Runtime:             time.Since(c.startTime),
		Status:              status,
	}, nil
}
