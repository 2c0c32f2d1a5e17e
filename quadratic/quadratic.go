// Package quadratic implements the objective
//
//	f(x) = 0.5 xᵀAx − bᵀx + c
//
// with A stored symmetrized, A = 0.5(A₀+A₀ᵀ), so that the gradient is
// exactly Ax − b.
package quadratic

import (
	"errors"
	"fmt"
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/btracey/quadopt/matrix"
)

var (
	// ErrDimensionMismatch is returned when A, b or a point do not have
	// the dimension of the function.
	ErrDimensionMismatch = errors.New("quadratic: dimension mismatch")

	// ErrSingular is returned by Minimizer when A is singular.
	ErrSingular = errors.New("quadratic: singular matrix")
)

// Function is a quadratic objective. It is immutable after construction and
// safe for concurrent use.
type Function struct {
	n int
	a matrix.Matrix
	b []float64
	c float64

	eigOnce sync.Once
	maxEig  float64
	eigErr  error
}

// New creates a quadratic function of dimension n. The values of A are
// interpreted according to kind: a row-major n×n array for a dense matrix, and
// either the n diagonal entries or a full n×n array for a diagonal one.
func New(kind matrix.Kind, n int, a, b []float64, c float64) (*Function, error) {
	if kind == matrix.VectorKind {
		return nil, fmt.Errorf("quadratic: %w: A cannot be a vector", matrix.ErrUnsupported)
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: n = %d", ErrDimensionMismatch, n)
	}
	m, err := matrix.New(kind, n, a)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDimensionMismatch, err)
	}
	return NewFromMatrix(m, b, c)
}

// NewFromMatrix creates a quadratic function from an already built square
// matrix. a is not modified.
func NewFromMatrix(a matrix.Matrix, b []float64, c float64) (*Function, error) {
	r, cols := a.Dims()
	if r != cols {
		return nil, fmt.Errorf("%w: A is %d×%d", ErrDimensionMismatch, r, cols)
	}
	if len(b) != r {
		return nil, fmt.Errorf("%w: A is %d×%d but b has length %d", ErrDimensionMismatch, r, r, len(b))
	}
	sym, err := a.Symmetrize()
	if err != nil {
		return nil, err
	}
	return &Function{
		n: r,
		a: sym,
		b: append([]float64(nil), b...),
		c: c,
	}, nil
}

// Dim returns the dimension of the domain.
func (f *Function) Dim() int { return f.n }

// Kind returns the backing kind of A.
func (f *Function) Kind() matrix.Kind { return f.a.Kind() }

// A returns the symmetrized coefficient matrix.
func (f *Function) A() matrix.Matrix { return f.a }

// B returns a copy of b.
func (f *Function) B() []float64 { return append([]float64(nil), f.b...) }

func (f *Function) C() float64 { return f.c }

func (f *Function) checkDim(x []float64) {
	if len(x) != f.n {
		panic(fmt.Errorf("%w: point has length %d, function has dimension %d", ErrDimensionMismatch, len(x), f.n))
	}
}

// MulA returns Ax. It panics if len(x) != f.Dim().
func (f *Function) MulA(x []float64) []float64 {
	f.checkDim(x)
	ax, err := f.a.Mul(matrix.NewVector(x))
	if err != nil {
		panic(err)
	}
	return ax.Data()
}

// Obj returns f(x). It panics if len(x) != f.Dim().
func (f *Function) Obj(x []float64) float64 {
	ax := f.MulA(x)
	return f.value(x, ax)
}

func (f *Function) value(x, ax []float64) float64 {
	return 0.5*floats.Dot(x, ax) - floats.Dot(f.b, x) + f.c
}

// Grad stores Ax − b in grad. It panics if either slice does not have
// length f.Dim().
func (f *Function) Grad(x, grad []float64) {
	f.checkDim(grad)
	floats.SubTo(grad, f.MulA(x), f.b)
}

// Gradient returns Ax − b in a new slice.
func (f *Function) Gradient(x []float64) []float64 {
	grad := make([]float64, f.n)
	f.Grad(x, grad)
	return grad
}

// ObjGrad returns f(x) and stores the gradient in grad, computing Ax once.
func (f *Function) ObjGrad(x, grad []float64) float64 {
	f.checkDim(grad)
	ax := f.MulA(x)
	floats.SubTo(grad, ax, f.b)
	return f.value(x, ax)
}

// MaxEigenValue returns the largest eigenvalue of A. It is computed once.
// 2/MaxEigenValue bounds the step size for which gradient descent does
// not diverge.
func (f *Function) MaxEigenValue() (float64, error) {
	f.eigOnce.Do(func() {
		f.maxEig, f.eigErr = f.a.MaxEigenValue()
	})
	return f.maxEig, f.eigErr
}

// Minimizer returns the analytic minimizer A⁻¹b.
func (f *Function) Minimizer() ([]float64, error) {
	switch a := f.a.(type) {
	case *matrix.Diagonal:
		x := a.Data()
		for i, d := range x {
			if d == 0 {
				return nil, ErrSingular
			}
			x[i] = f.b[i] / d
		}
		return x, nil
	default:
		sym := mat.NewSymDense(f.n, a.Data())
		b := mat.NewVecDense(f.n, f.B())
		var x mat.VecDense
		var chol mat.Cholesky
		if chol.Factorize(sym) {
			if err := chol.SolveVecTo(&x, b); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrSingular, err)
			}
			return x.RawVector().Data, nil
		}
		if err := x.SolveVec(sym, b); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSingular, err)
		}
		return x.RawVector().Data, nil
	}
}
