// Package config loads problem descriptions from YAML.
//
// A problem file lists any subset of the fields of Problem; fields that are
// absent keep the values from Defaults:
//
//	kind: dense
//	n: 2
//	a: [20, 0, 1, 1]
//	b: [0, 0]
//	start: [10, 10]
//	method: conjugate-gradient
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/btracey/quadopt/common"
	"github.com/btracey/quadopt/matrix"
	"github.com/btracey/quadopt/multivariate"
	"github.com/btracey/quadopt/quadratic"
	"github.com/btracey/quadopt/univariate"
)

var ErrInvalid = errors.New("config: invalid problem")

// Problem describes f(x) = ½xᵀAx − bᵀx + c, where to start, and how to
// minimize it.
type Problem struct {
	Kind string    `yaml:"kind"` // dense or diagonal
	N    int       `yaml:"n"`
	A    []float64 `yaml:"a"` // Row-major n×n, or the n diagonal entries
	B    []float64 `yaml:"b"`
	C    float64   `yaml:"c"`

	Start         []float64 `yaml:"start"`
	Epsilon       float64   `yaml:"epsilon"`
	Method        string    `yaml:"method"`
	Linesearch    string    `yaml:"linesearch"`
	MaxIterations int       `yaml:"max_iterations"`

	// Radius is half the side of the plotted square.
	Radius float64 `yaml:"radius"`
}

// Defaults returns the two-dimensional problem
// A = [[20, 0], [1, 1]], b = 0, c = 0 started from (10, 10).
func Defaults() *Problem {
	return &Problem{
		Kind:          matrix.DenseKind.String(),
		N:             2,
		A:             []float64{20, 0, 1, 1},
		B:             []float64{0, 0},
		C:             0,
		Start:         []float64{10, 10},
		Epsilon:       multivariate.DefaultTolerance,
		Method:        multivariate.GradientDescentMethod.String(),
		Linesearch:    univariate.GoldenSectionMethod.String(),
		MaxIterations: common.DefaultMaximumIterations,
		Radius:        30,
	}
}

// Load reads the problem file at path on top of Defaults and validates it.
func Load(path string) (*Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read problem file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML on top of Defaults and validates the result. Unknown
// fields are rejected.
func Parse(data []byte) (*Problem, error) {
	p := Defaults()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(p); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse problem file: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate reports the first inconsistency in p.
func (p *Problem) Validate() error {
	kind, err := matrix.ParseKind(p.Kind)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if kind == matrix.VectorKind {
		return fmt.Errorf("%w: kind %v cannot hold a quadratic form", ErrInvalid, kind)
	}
	if p.N < 1 {
		return fmt.Errorf("%w: n must be positive, got %d", ErrInvalid, p.N)
	}
	switch {
	case kind == matrix.DenseKind && len(p.A) != p.N*p.N:
		return fmt.Errorf("%w: dense a needs %d values, got %d", ErrInvalid, p.N*p.N, len(p.A))
	case kind == matrix.DiagonalKind && len(p.A) != p.N && len(p.A) != p.N*p.N:
		return fmt.Errorf("%w: diagonal a needs %d or %d values, got %d", ErrInvalid, p.N, p.N*p.N, len(p.A))
	}
	if len(p.B) != p.N {
		return fmt.Errorf("%w: b needs %d values, got %d", ErrInvalid, p.N, len(p.B))
	}
	if len(p.Start) != p.N {
		return fmt.Errorf("%w: start needs %d values, got %d", ErrInvalid, p.N, len(p.Start))
	}
	if math.IsNaN(p.Epsilon) || p.Epsilon < 0 {
		return fmt.Errorf("%w: epsilon must be non-negative, got %v", ErrInvalid, p.Epsilon)
	}
	if p.MaxIterations < 0 || p.MaxIterations > common.DefaultMaximumIterations {
		return fmt.Errorf("%w: max_iterations must be in [0, %d], got %d",
			ErrInvalid, common.DefaultMaximumIterations, p.MaxIterations)
	}
	if _, err := multivariate.ParseMethod(p.Method); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := univariate.ParseMethod(p.Linesearch); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if !(p.Radius > 0) || math.IsInf(p.Radius, 1) {
		return fmt.Errorf("%w: radius must be positive, got %v", ErrInvalid, p.Radius)
	}
	return nil
}

// Function builds the quadratic described by p.
func (p *Problem) Function() (*quadratic.Function, error) {
	kind, err := matrix.ParseKind(p.Kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return quadratic.New(kind, p.N, p.A, p.B, p.C)
}

// Settings returns the optimizer settings and method selected by p.
// MaxIterations of zero selects common.DefaultMaximumIterations.
func (p *Problem) Settings() (*multivariate.Settings, multivariate.Method, error) {
	method, err := multivariate.ParseMethod(p.Method)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	ls, err := univariate.ParseMethod(p.Linesearch)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	s := multivariate.DefaultSettings()
	s.Tolerance = p.Epsilon
	s.Linesearch = ls
	s.MaximumIterations = p.MaxIterations
	if p.MaxIterations == 0 {
		s.MaximumIterations = common.DefaultMaximumIterations
	}
	return s, method, nil
}
