package main

import (
	"github.com/spf13/cobra"

	"github.com/btracey/quadopt/config"
)

// problemFlags are the flags shared by solve and plot. Each one that is set
// overrides the matching field of the problem file.
type problemFlags struct {
	config        string
	method        string
	linesearch    string
	epsilon       float64
	start         []float64
	maxIterations int
}

func (f *problemFlags) register(cmd *cobra.Command) {
	d := config.Defaults()
	cmd.Flags().StringVar(&f.config, "config", "", "YAML problem file")
	cmd.Flags().StringVar(&f.method, "method", d.Method, "gradient-descent, steepest-descent or conjugate-gradient")
	cmd.Flags().StringVar(&f.linesearch, "linesearch", d.Linesearch, "one-dimensional search used by steepest descent")
	cmd.Flags().Float64Var(&f.epsilon, "epsilon", d.Epsilon, "stop once the gradient norm is at most epsilon")
	cmd.Flags().Float64SliceVar(&f.start, "start", d.Start, "starting point")
	cmd.Flags().IntVar(&f.maxIterations, "max-iterations", d.MaxIterations, "iteration cap, at most 10000 (0 for the default)")
}

func (f *problemFlags) load(cmd *cobra.Command) (*config.Problem, error) {
	p := config.Defaults()
	if f.config != "" {
		var err error
		if p, err = config.Load(f.config); err != nil {
			return nil, err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("method") {
		p.Method = f.method
	}
	if flags.Changed("linesearch") {
		p.Linesearch = f.linesearch
	}
	if flags.Changed("epsilon") {
		p.Epsilon = f.epsilon
	}
	if flags.Changed("start") {
		p.Start = f.start
	}
	if flags.Changed("max-iterations") {
		p.MaxIterations = f.maxIterations
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
