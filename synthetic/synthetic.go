// Package synthetic builds random diagonal benchmark problems with a given
// condition number, and random starting points for them.
package synthetic

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/btracey/quadopt/matrix"
	"github.com/btracey/quadopt/multivariate"
	"github.com/btracey/quadopt/quadratic"
)

// Bounds of the coordinates drawn by RandomStart.
const (
	StartMin = 1
	StartMax = 10
)

var ErrBadSize = errors.New("synthetic: dimension and condition number must be positive")

// Spectrum returns n diagonal entries drawn uniformly from the integers in
// [1, k), with the first entry set to 1 and the last to k so that the
// condition number is exactly k. For n == 1 the single entry is k.
func Spectrum(n, k int, src rand.Source) ([]float64, error) {
	if n < 1 || k < 1 {
		return nil, fmt.Errorf("%w: n=%d k=%d", ErrBadSize, n, k)
	}
	diag := make([]float64, n)
	u := distuv.Uniform{Min: 1, Max: float64(k), Src: src}
	for i := range diag {
		if k == 1 {
			diag[i] = 1
			continue
		}
		diag[i] = math.Floor(u.Rand())
	}
	diag[0] = 1
	diag[n-1] = float64(k)
	return diag, nil
}

// NewDiagonal returns f(x) = ½xᵀDx with D = diag(Spectrum(n, k, src)).
// Its minimizer is the origin.
func NewDiagonal(n, k int, src rand.Source) (*quadratic.Function, error) {
	diag, err := Spectrum(n, k, src)
	if err != nil {
		return nil, err
	}
	return quadratic.New(matrix.DiagonalKind, n, diag, make([]float64, n), 0)
}

// RandomStart returns a vector of length n with coordinates drawn uniformly
// from [StartMin, StartMax).
func RandomStart(n int, src rand.Source) []float64 {
	u := distuv.Uniform{Min: StartMin, Max: StartMax, Src: src}
	x := make([]float64, n)
	for i := range x {
		x[i] = u.Rand()
	}
	return x
}

// Record is the outcome of one method on one synthetic problem.
type Record struct {
	N, K   int
	Method multivariate.Method
	Result *multivariate.Result
}

// Bench runs every method in methods on one synthetic problem for each pair
// of dimension in ns and condition number in ks. All methods on a problem
// start from the same random point. A nil settings uses
// multivariate.DefaultSettings.
func Bench(ns, ks []int, methods []multivariate.Method, src rand.Source, settings *multivariate.Settings) ([]Record, error) {
	var records []Record
	for _, n := range ns {
		for _, k := range ks {
			f, err := NewDiagonal(n, k, src)
			if err != nil {
				return nil, err
			}
			x0 := RandomStart(n, src)
			for _, m := range methods {
				result, err := multivariate.Optimize(f, x0, settings, m)
				if err != nil {
					return nil, fmt.Errorf("synthetic: %v on n=%d k=%d: %w", m, n, k, err)
				}
				records = append(records, Record{N: n, K: k, Method: m, Result: result})
			}
		}
	}
	return records, nil
}
