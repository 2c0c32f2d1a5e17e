package common

import "math"

// AbsToler checks a non-negative quantity, typically a gradient norm,
// against an absolute tolerance.
type AbsToler struct {
	tol    float64
	recent float64
}

func (t *AbsToler) Init(tol, initVal float64) {
	t.tol = tol
	t.recent = initVal
}

func (t *AbsToler) Add(v float64) {
	t.recent = v
}

// Converged returns true once the most recent value is at most the
// tolerance. A NaN value never converges.
func (t *AbsToler) Converged() bool {
	if math.IsNaN(t.recent) {
		return false
	}
	return t.recent <= t.tol
}
