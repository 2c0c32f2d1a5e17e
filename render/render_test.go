package render

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/btracey/quadopt/matrix"
	"github.com/btracey/quadopt/multivariate"
	"github.com/btracey/quadopt/quadratic"
)

func solve(t *testing.T, m multivariate.Method) (*quadratic.Function, *multivariate.Result) {
	t.Helper()
	f, err := quadratic.New(matrix.DenseKind, 2, []float64{1, 0, 0, 1}, []float64{0, 0}, 0)
	require.NoError(t, err)
	result, err := multivariate.Optimize(f, []float64{10, 10}, nil, m)
	require.NoError(t, err)
	return f, result
}

func TestLevels(t *testing.T) {
	f, err := quadratic.New(matrix.DiagonalKind, 2, []float64{2, 1}, []float64{0, 0}, 0)
	require.NoError(t, err)
	result := &multivariate.Result{
		Trajectory: [][]float64{{10, 10}, {-10, 0}, {-10, 1e-9}},
		X:          []float64{0, 0},
		Y:          0,
	}
	// f(10,10) = 150 and f(-10,0) = f(-10,1e-9) = 100 within the precision.
	assert.Equal(t, []float64{0, 100, 150}, Levels(f, result))
}

func TestPlot(t *testing.T) {
	for _, m := range multivariate.Methods() {
		f, result := solve(t, m)
		p, err := Plot(f, result, nil)
		require.NoError(t, err, m.String())
		assert.Equal(t, m.String(), p.Title.Text)
		assert.InDelta(t, -float64(DefaultRadius), p.X.Min, 1e-3)
		assert.InDelta(t, float64(DefaultRadius), p.Y.Max, 1e-3)

		var buf bytes.Buffer
		require.NoError(t, Write(&buf, p, "png", nil))
		assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")), m.String())
	}
}

func TestSave(t *testing.T) {
	f, result := solve(t, multivariate.ConjugateGradientMethod)
	opts := DefaultOptions()
	opts.Title = "identity"
	opts.Radius = 15
	p, err := Plot(f, result, opts)
	require.NoError(t, err)
	assert.Equal(t, "identity", p.Title.Text)

	path := filepath.Join(t.TempDir(), "run.svg")
	require.NoError(t, Save(p, path, opts))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
}

func TestPlotErrors(t *testing.T) {
	f3, err := quadratic.New(matrix.DiagonalKind, 3, []float64{1, 2, 3}, []float64{0, 0, 0}, 0)
	require.NoError(t, err)
	result, err := multivariate.Optimize(f3, []float64{1, 1, 1}, nil, multivariate.ConjugateGradientMethod)
	require.NoError(t, err)
	_, err = Plot(f3, result, nil)
	assert.ErrorIs(t, err, ErrNotPlanar)

	f, result := solve(t, multivariate.GradientDescentMethod)
	_, err = Plot(f, result, &Options{Radius: 0, Resolution: 10})
	assert.Error(t, err)
	_, err = Plot(f, result, &Options{Radius: 1, Resolution: 1})
	assert.Error(t, err)
}
