package common

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/btracey/quadopt/write"
)

func TestCommonIterationCap(t *testing.T) {
	s := DefaultCommonSettings()
	s.MaximumIterations = 3
	c := NewCommon()
	require.NoError(t, c.Init(s, 1, 1))

	for c.Status() == Continue {
		require.NoError(t, c.Iterate(2, 1))
	}
	r, err := c.Result(c.Status())
	require.NoError(t, err)
	assert.Equal(t, 3, r.Iterations)
	assert.Equal(t, 7, r.FunctionEvaluations)
	assert.Equal(t, 4, r.GradientEvaluations)
	assert.Equal(t, MaximumIterations, r.Status)
	assert.False(t, r.Status.Converged())
}

func TestCommonNoCap(t *testing.T) {
	s := DefaultCommonSettings()
	s.MaximumIterations = -1
	c := NewCommon()
	require.NoError(t, c.Init(s, 0, 0))
	for i := 0; i < 2*DefaultMaximumIterations; i++ {
		require.NoError(t, c.Iterate(0, 0))
	}
	assert.Equal(t, Continue, c.Status())
}

func TestCommonLogsColumns(t *testing.T) {
	var buf bytes.Buffer
	s := DefaultCommonSettings()
	s.Writers = []write.Writer{{Writer: &buf, T: write.Logger}}
	c := NewCommon()
	require.NoError(t, c.Init(s, 1, 0))
	require.NoError(t, c.Iterate(1, 1))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Iter,FnEval,GradEval", lines[0])
	assert.Equal(t, "1,2,1", lines[1])
}

func TestStatus(t *testing.T) {
	assert.Equal(t, "GradAbsTol", GradAbsTol.String())
	assert.Equal(t, "UnregisteredStatus", Status(99).String())
	// GradAbsTol is the only successful termination.
	assert.Equal(t, "UnregisteredStatus", (GradAbsTol + 1).String())
	assert.True(t, GradAbsTol.Converged())
	assert.False(t, StepUnderflow.Converged())
	assert.Equal(t, StepUnderflow, CheckStatus(statusFunc(Continue), statusFunc(StepUnderflow), statusFunc(GradAbsTol)))
}

type statusFunc Status

func (s statusFunc) Status() Status { return Status(s) }

func TestAbsToler(t *testing.T) {
	var tol AbsToler
	tol.Init(1e-3, 1)
	assert.False(t, tol.Converged())
	tol.Add(1e-3)
	assert.True(t, tol.Converged())
	tol.Add(math.NaN())
	assert.False(t, tol.Converged())
}
