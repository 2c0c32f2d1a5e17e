package multivariate

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/btracey/quadopt/common"
	"github.com/btracey/quadopt/matrix"
	"github.com/btracey/quadopt/quadratic"
	"github.com/btracey/quadopt/univariate"
	"github.com/btracey/quadopt/write"
)

type testProblem struct {
	name string
	f    *quadratic.Function
	x0   []float64
}

func mustFunction(t *testing.T, kind matrix.Kind, n int, a, b []float64, c float64) *quadratic.Function {
	t.Helper()
	f, err := quadratic.New(kind, n, a, b, c)
	require.NoError(t, err)
	return f
}

func testProblems(t *testing.T) []testProblem {
	return []testProblem{
		{
			name: "diag(2,1)",
			f:    mustFunction(t, matrix.DiagonalKind, 2, []float64{2, 1}, []float64{0, 0}, 0),
			x0:   []float64{10, 10},
		},
		{
			name: "shifted diagonal",
			f:    mustFunction(t, matrix.DiagonalKind, 4, []float64{1, 3, 5, 8}, []float64{1, -2, 0.5, 4}, 2),
			x0:   []float64{3, 1, -4, 2},
		},
		{
			name: "dense 2x2",
			f:    mustFunction(t, matrix.DenseKind, 2, []float64{4, 1, 1, 3}, []float64{1, 2}, 0),
			x0:   []float64{-5, 7},
		},
		{
			name: "dense tridiagonal",
			f:    mustFunction(t, matrix.DenseKind, 5, tridiagonal(5, 4, -1), []float64{1, 0, -1, 2, 0}, -3),
			x0:   []float64{1, 2, 3, 4, 5},
		},
	}
}

// tridiagonal returns the n×n row-major matrix with d on the diagonal and e
// on the first off-diagonals.
func tridiagonal(n int, d, e float64) []float64 {
	a := make([]float64, n*n)
	for i := 0; i < n; i++ {
		a[i*n+i] = d
		if i > 0 {
			a[i*n+i-1] = e
			a[(i-1)*n+i] = e
		}
	}
	return a
}

func TestOptimizeConverges(t *testing.T) {
	const eps = 1e-5
	for _, m := range Methods() {
		for _, test := range testProblems(t) {
			t.Run(m.String()+"/"+test.name, func(t *testing.T) {
				settings := DefaultSettings()
				settings.Tolerance = eps
				result, err := Optimize(test.f, test.x0, settings, m)
				require.NoError(t, err)
				require.Equal(t, common.GradAbsTol, result.Status)
				assert.True(t, result.Converged())
				assert.Equal(t, m, result.Method)
				assert.LessOrEqual(t, result.GradNorm, eps)
				assert.Less(t, result.Iterations, common.DefaultMaximumIterations)

				// Every eigenvalue of the test matrices is at least 1, so a
				// gradient below eps puts x within eps of the minimizer.
				want, err := test.f.Minimizer()
				require.NoError(t, err)
				for i := range want {
					assert.InDelta(t, want[i], result.X[i], eps)
				}
				assert.InDelta(t, test.f.Obj(result.X), result.Y, 1e-12)

				require.Len(t, result.Trajectory, result.Iterations)
				if result.Iterations > 0 {
					assert.Equal(t, test.x0, result.Trajectory[0])
				}
			})
		}
	}
}

func TestOptimizeDoesNotModifyStart(t *testing.T) {
	f := mustFunction(t, matrix.DiagonalKind, 2, []float64{2, 1}, []float64{0, 0}, 0)
	x0 := []float64{10, 10}
	for _, m := range Methods() {
		_, err := Optimize(f, x0, nil, m)
		require.NoError(t, err)
		assert.Equal(t, []float64{10, 10}, x0, m.String())
	}
}

func TestGradientDescentExample(t *testing.T) {
	f := mustFunction(t, matrix.DiagonalKind, 2, []float64{2, 1}, []float64{0, 0}, 0)
	result, err := Optimize(f, []float64{10, 10}, nil, GradientDescentMethod)
	require.NoError(t, err)

	// The first step of 2/λmax = 1 lands on (-10, 0); the second fails at
	// step 1, is halved, and reaches the origin exactly.
	assert.Equal(t, []float64{0, 0}, result.X)
	assert.Equal(t, 2, result.Iterations)
	assert.Equal(t, 4, result.FunctionEvaluations)
	assert.Equal(t, 3, result.GradientEvaluations)
	assert.Equal(t, [][]float64{{10, 10}, {-10, 0}}, result.Trajectory)
}

func TestGradientDescentMonotone(t *testing.T) {
	for _, test := range testProblems(t) {
		result, err := Optimize(test.f, test.x0, nil, GradientDescentMethod)
		require.NoError(t, err)
		objs := make([]float64, 0, len(result.Trajectory)+1)
		for _, x := range result.Trajectory {
			objs = append(objs, test.f.Obj(x))
		}
		objs = append(objs, result.Y)
		for i := 1; i < len(objs); i++ {
			assert.Less(t, objs[i], objs[i-1], "%s: iteration %d", test.name, i)
		}
	}
}

func TestGradientDescentStepUnderflow(t *testing.T) {
	f := mustFunction(t, matrix.DiagonalKind, 2, []float64{2, 1}, []float64{2, 1}, 0)
	gd := &GradientDescent{}
	x0 := []float64{1, 1}
	require.NoError(t, gd.Init(f, x0, f.Obj(x0), f.Gradient(x0)))
	assert.Equal(t, 1.0, gd.Step())

	loc := make([]float64, 2)
	grad := make([]float64, 2)
	obj, nFun, nGrad, err := gd.Iterate(loc, grad)
	require.NoError(t, err)
	assert.Equal(t, common.StepUnderflow, gd.Status())
	assert.Equal(t, x0, loc)
	assert.Equal(t, []float64{0, 0}, grad)
	assert.Equal(t, f.Obj(x0), obj)
	assert.Zero(t, nFun)
	assert.Zero(t, nGrad)
}

func TestGradientDescentRejectsNonConvex(t *testing.T) {
	f := mustFunction(t, matrix.DiagonalKind, 2, []float64{-1, -2}, []float64{0, 0}, 0)
	for _, m := range []Method{GradientDescentMethod, SteepestDescentMethod} {
		_, err := Optimize(f, []float64{1, 1}, nil, m)
		assert.Error(t, err, m.String())
	}
}

func TestConjugateGradientFiniteTermination(t *testing.T) {
	for _, n := range []int{1, 2, 5, 10} {
		diag := make([]float64, n)
		b := make([]float64, n)
		for i := range diag {
			diag[i] = float64(i + 1)
			b[i] = 1
		}
		problems := []testProblem{
			{name: "diagonal", f: mustFunction(t, matrix.DiagonalKind, n, diag, b, 0)},
			{name: "dense", f: mustFunction(t, matrix.DenseKind, n, tridiagonal(n, 4, -1), b, 0)},
		}
		for _, test := range problems {
			result, err := Optimize(test.f, make([]float64, n), nil, ConjugateGradientMethod)
			require.NoError(t, err)
			assert.True(t, result.Converged(), "%s n=%d", test.name, n)
			assert.LessOrEqual(t, result.Iterations, n+1, "%s n=%d", test.name, n)
			assert.Zero(t, result.FunctionEvaluations-1, "only the initial point is evaluated")
		}
	}
}

func TestConjugateGradientStep(t *testing.T) {
	f := mustFunction(t, matrix.DiagonalKind, 2, []float64{2, 1}, []float64{0, 0}, 0)
	wrapper := NewGradWrapper(&ConjugateGradient{})
	x := []float64{10, 10}
	grad, err := wrapper.Init(DefaultSettings(), f, x)
	require.NoError(t, err)
	assert.Equal(t, []float64{20, 10}, grad)
	assert.Equal(t, common.Continue, wrapper.Status())

	// α = ‖g‖²/(pᵀAp) = 500/900.
	obj, err := wrapper.Iterate(x, grad)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{-10.0 / 9, 40.0 / 9}, x, 1e-12)
	assert.InDeltaSlice(t, f.Gradient(x), grad, 1e-12)
	assert.InDelta(t, f.Obj(x), obj, 1e-12)

	_, err = wrapper.Iterate(x, grad)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 0}, x, 1e-12)
	assert.Equal(t, common.GradAbsTol, wrapper.Status())
}

func TestConjugateGradientNonPositiveCurvature(t *testing.T) {
	f := mustFunction(t, matrix.DiagonalKind, 2, []float64{1, -1}, []float64{0, 0}, 0)
	result, err := Optimize(f, []float64{1, 1}, nil, ConjugateGradientMethod)
	require.NoError(t, err)
	assert.Equal(t, common.NonPositiveCurvature, result.Status)
	assert.False(t, result.Converged())
	assert.Equal(t, []float64{1, 1}, result.X)
	assert.Equal(t, 1, result.Iterations)
}

func TestSteepestDescentLinesearches(t *testing.T) {
	f := mustFunction(t, matrix.DiagonalKind, 2, []float64{2, 1}, []float64{0, 0}, 0)
	for _, ls := range univariate.Methods() {
		settings := DefaultSettings()
		settings.Linesearch = ls
		result, err := Optimize(f, []float64{10, 10}, settings, SteepestDescentMethod)
		require.NoError(t, err, ls.String())
		assert.True(t, result.Converged(), ls.String())
		assert.InDeltaSlice(t, []float64{0, 0}, result.X, 1e-5, ls.String())
	}
}

func TestMaximumIterations(t *testing.T) {
	f := mustFunction(t, matrix.DiagonalKind, 2, []float64{100, 1}, []float64{0, 0}, 0)
	for _, m := range []Method{GradientDescentMethod, SteepestDescentMethod} {
		settings := DefaultSettings()
		settings.MaximumIterations = 3
		result, err := Optimize(f, []float64{10, 10}, settings, m)
		require.NoError(t, err, m.String())
		assert.Equal(t, common.MaximumIterations, result.Status, m.String())
		assert.False(t, result.Converged())
		assert.Equal(t, 3, result.Iterations)
		assert.Len(t, result.Trajectory, 3)
	}
}

func TestOptimizeErrors(t *testing.T) {
	f := mustFunction(t, matrix.DiagonalKind, 2, []float64{2, 1}, []float64{0, 0}, 0)

	_, err := Optimize(f, []float64{1, 2, 3}, nil, GradientDescentMethod)
	assert.ErrorIs(t, err, quadratic.ErrDimensionMismatch)

	_, err = Optimize(nil, []float64{1, 2}, nil, GradientDescentMethod)
	assert.Error(t, err)

	_, err = Optimize(f, []float64{1, 2}, nil, Method(7))
	assert.Error(t, err)

	settings := DefaultSettings()
	settings.Tolerance = -1
	_, err = Optimize(f, []float64{1, 2}, settings, GradientDescentMethod)
	assert.Error(t, err)

	_, err = OptimizeWith(f, []float64{1, 2}, nil, nil)
	assert.Error(t, err)
}

func TestOptimizeNilCommonSettings(t *testing.T) {
	f := mustFunction(t, matrix.DiagonalKind, 2, []float64{2, 1}, []float64{0, 0}, 0)
	settings := &Settings{Tolerance: 1e-5}
	result, err := Optimize(f, []float64{10, 10}, settings, ConjugateGradientMethod)
	require.NoError(t, err)
	assert.True(t, result.Converged())
	assert.Nil(t, settings.CommonSettings)
}

func TestRegistry(t *testing.T) {
	reg := Registry()
	require.Len(t, reg, 3)
	f := mustFunction(t, matrix.DiagonalKind, 2, []float64{2, 1}, []float64{0, 0}, 0)
	for _, name := range []string{"Gradient Descent", "Fastest Descent", "Conjugate Gradient"} {
		alg, ok := reg[name]
		require.True(t, ok, name)
		result, err := alg(f, []float64{10, 10}, 1e-5, nil)
		require.NoError(t, err, name)
		assert.True(t, result.Converged(), name)
		assert.Equal(t, name, result.Method.String())
		assert.InDeltaSlice(t, []float64{0, 0}, result.X, 1e-5, name)
	}

	result, err := SteepestDescentMethod.Algorithm()(f, []float64{10, 10}, 1e-5,
		&Params{Linesearch: univariate.BrentMethod})
	require.NoError(t, err)
	assert.True(t, result.Converged())
}

func TestParseMethod(t *testing.T) {
	for _, m := range Methods() {
		got, err := ParseMethod(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	for in, want := range map[string]Method{
		"gd":                 GradientDescentMethod,
		"gradient-descent":   GradientDescentMethod,
		"SD":                 SteepestDescentMethod,
		"steepest_descent":   SteepestDescentMethod,
		"fastest descent":    SteepestDescentMethod,
		"cg":                 ConjugateGradientMethod,
		"Conjugate-Gradient": ConjugateGradientMethod,
	} {
		got, err := ParseMethod(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseMethod("newton")
	assert.Error(t, err)
	assert.Equal(t, "Method(5)", Method(5).String())
}

func TestLogger(t *testing.T) {
	f := mustFunction(t, matrix.DiagonalKind, 2, []float64{2, 1}, []float64{0, 0}, 0)
	var buf bytes.Buffer
	settings := DefaultSettings()
	settings.CommonSettings.Settings = &write.Settings{
		Writers: []write.Writer{{Writer: &buf, T: write.Logger}},
	}
	result, err := Optimize(f, []float64{10, 10}, settings, GradientDescentMethod)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, result.Iterations+2)
	assert.Equal(t, "Iter,FnEval,GradEval,Obj,GradNorm,Step", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "0,1,1,1.500000e+02,"), lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "1,2,2,"), lines[2])
	assert.True(t, strings.HasPrefix(lines[3], fmt.Sprintf("%d,4,3,", result.Iterations)), lines[3])
}

func TestHelperStepNorm(t *testing.T) {
	h := NewHelper()
	s := DefaultSettings()
	require.NoError(t, h.Init(s, []float64{0, 0}, 1, []float64{3, 4}))
	assert.Equal(t, 5.0, h.GradNorm())
	require.NoError(t, h.Iterate([]float64{3, 4}, 0, []float64{0, 0}, 1, 1))
	assert.Equal(t, 5.0, h.stepNorm)
	assert.Equal(t, common.GradAbsTol, h.Status())
	assert.True(t, floats.Equal(h.prevLoc, []float64{3, 4}))
}

func TestSteepestDescentCountsLinesearch(t *testing.T) {
	f := mustFunction(t, matrix.DiagonalKind, 2, []float64{2, 1}, []float64{0, 0}, 0)
	x0 := []float64{10, 10}
	g0 := f.Gradient(x0)
	sd := &SteepestDescent{Linesearch: univariate.FibonacciMethod, Tol: 1e-5}
	require.NoError(t, sd.Init(f, x0, f.Obj(x0), g0))

	loc := make([]float64, 2)
	grad := make([]float64, 2)
	_, nFun, nGrad, err := sd.Iterate(loc, grad)
	require.NoError(t, err)

	trial := make([]float64, 2)
	line := func(alpha float64) float64 {
		floats.AddScaledTo(trial, x0, -alpha, g0)
		return f.Obj(trial)
	}
	search, err := univariate.Optimize(line, 0, 1, &univariate.Settings{Tol: 1e-5}, univariate.FibonacciMethod)
	require.NoError(t, err)
	// The search, its value at the chosen step, and the new point.
	assert.Equal(t, search.FunctionEvaluations+2, nFun)
	assert.Equal(t, 1, nGrad)
	assert.InDelta(t, 5.0/9, search.Loc, 1e-5)
}

func TestSteepestDescentUnknownLinesearch(t *testing.T) {
	f := mustFunction(t, matrix.DiagonalKind, 2, []float64{2, 1}, []float64{0, 0}, 0)
	settings := DefaultSettings()
	settings.Linesearch = univariate.Method(9)
	_, err := Optimize(f, []float64{10, 10}, settings, SteepestDescentMethod)
	assert.Error(t, err)
}

func TestLoggerStartAtMinimum(t *testing.T) {
	f := mustFunction(t, matrix.DiagonalKind, 2, []float64{2, 1}, []float64{0, 0}, 0)
	var buf bytes.Buffer
	settings := DefaultSettings()
	settings.CommonSettings.Settings = &write.Settings{
		Writers: []write.Writer{{Writer: &buf, T: write.Logger}},
	}
	result, err := Optimize(f, []float64{0, 0}, settings, ConjugateGradientMethod)
	require.NoError(t, err)
	assert.Zero(t, result.Iterations)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "0,1,1,0.000000e+00,0.000000e+00,"), lines[1])
}
