// Package matrix provides the small linear algebra layer used by the
// quadratic objectives. A Matrix is one of three backings: a general dense
// matrix, a diagonal matrix storing only its diagonal, or a column vector.
// Operations never modify their operands; every result owns fresh storage.
package matrix

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupported is returned when an operation is requested between
	// incompatible backings or on a backing that cannot provide it.
	ErrUnsupported = errors.New("matrix: unsupported operation")

	// ErrDimensionMismatch is returned when operand shapes are incompatible.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrIndex is returned by At for indices outside the matrix or for a
	// non-zero column index on a vector.
	ErrIndex = errors.New("matrix: index out of range")

	// ErrNotSquare is returned when a square matrix is required.
	ErrNotSquare = errors.New("matrix: matrix is not square")

	// ErrShape is returned by constructors when the data length does not
	// match the requested shape.
	ErrShape = errors.New("matrix: data length does not match shape")

	// ErrEigenFailed is returned when the symmetric eigen decomposition
	// does not converge.
	ErrEigenFailed = errors.New("matrix: eigen decomposition failed")

	// ErrUnknownKind is returned for an unrecognized backing kind.
	ErrUnknownKind = errors.New("matrix: unknown kind")
)

const (
	opAt         = "At"
	opMul        = "Mul"
	opAdd        = "Add"
	opSub        = "Sub"
	opEigen      = "MaxEigenValue"
	opSymmetrize = "Symmetrize"
	opNew        = "New"
)

func opError(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// Kind identifies the backing of a Matrix.
type Kind int

const (
	DenseKind Kind = iota
	DiagonalKind
	VectorKind
)

var kindNames = map[Kind]string{
	DenseKind:    "dense",
	DiagonalKind: "diagonal",
	VectorKind:   "vector",
}

func (k Kind) String() string {
	s, ok := kindNames[k]
	if !ok {
		return "unknown"
	}
	return s
}

// ParseKind returns the Kind with the given name. Matching ignores case.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Matrix is implemented by *Dense, *Diagonal and *Vector only.
type Matrix interface {
	Kind() Kind

	// Dims returns the number of rows and columns.
	Dims() (r, c int)

	// At returns the element at row i and column j.
	At(i, j int) (float64, error)

	// T returns the transpose. The transpose of a column vector is a
	// 1×n Dense.
	T() Matrix

	// Mul returns the product of the receiver and b.
	Mul(b Matrix) (Matrix, error)

	// Scale returns the receiver with every element multiplied by f.
	Scale(f float64) Matrix

	// Add and Sub are elementwise and require the same kind and shape.
	Add(b Matrix) (Matrix, error)
	Sub(b Matrix) (Matrix, error)

	// MaxEigenValue returns the largest eigenvalue of a symmetric matrix.
	MaxEigenValue() (float64, error)

	// Symmetrize returns 0.5*(M+Mᵀ).
	Symmetrize() (Matrix, error)

	// Data returns a copy of the stored values: row-major for Dense, the
	// diagonal for Diagonal and the elements for Vector.
	Data() []float64

	sealed()
}

// New builds a square n×n matrix of the given kind, or a length n vector
// for VectorKind. A Diagonal accepts either its n diagonal entries or a
// full row-major n×n array, of which only the diagonal is kept.
func New(kind Kind, n int, values []float64) (Matrix, error) {
	if n <= 0 {
		return nil, opError(opNew, ErrShape)
	}
	switch kind {
	case DenseKind:
		if len(values) != n*n {
			return nil, opError(opNew, fmt.Errorf("%w: dense %d×%d needs %d values, got %d", ErrShape, n, n, n*n, len(values)))
		}
		return NewDense(n, n, values), nil
	case DiagonalKind:
		switch len(values) {
		case n:
			return NewDiagonal(values), nil
		case n * n:
			diag := make([]float64, n)
			for i := range diag {
				diag[i] = values[i*(n+1)]
			}
			return NewDiagonal(diag), nil
		}
		return nil, opError(opNew, fmt.Errorf("%w: diagonal of size %d needs %d or %d values, got %d", ErrShape, n, n, n*n, len(values)))
	case VectorKind:
		if len(values) != n {
			return nil, opError(opNew, fmt.Errorf("%w: vector of length %d, got %d values", ErrShape, n, len(values)))
		}
		return NewVector(values), nil
	}
	return nil, opError(opNew, ErrUnknownKind)
}

func checkSameKind(a, b Matrix) error {
	if a.Kind() != b.Kind() {
		return fmt.Errorf("%w: %v with %v", ErrUnsupported, a.Kind(), b.Kind())
	}
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != br || ac != bc {
		return fmt.Errorf("%w: %d×%d with %d×%d", ErrDimensionMismatch, ar, ac, br, bc)
	}
	return nil
}

func checkIndex(m Matrix, i, j int) error {
	r, c := m.Dims()
	if i < 0 || i >= r || j < 0 || j >= c {
		return opError(opAt, fmt.Errorf("%w: (%d, %d) in %d×%d", ErrIndex, i, j, r, c))
	}
	return nil
}

func mulShapeError(a, b Matrix) error {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	return opError(opMul, fmt.Errorf("%w: %d×%d times %d×%d", ErrDimensionMismatch, ar, ac, br, bc))
}

func mulKindError(a, b Matrix) error {
	return opError(opMul, fmt.Errorf("%w: %v times %v", ErrUnsupported, a.Kind(), b.Kind()))
}
