package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Diagonal is an n×n diagonal matrix. Only the n diagonal entries are
// stored, so products, the eigenvalue bound and symmetrization are O(n).
type Diagonal struct {
	mat *mat.DiagDense
}

// NewDiagonal creates a diagonal matrix with the given diagonal. The data is
// copied. NewDiagonal panics if diag is empty.
func NewDiagonal(diag []float64) *Diagonal {
	return &Diagonal{mat: mat.NewDiagDense(len(diag), append([]float64(nil), diag...))}
}

func (d *Diagonal) sealed() {}

func (d *Diagonal) Kind() Kind { return DiagonalKind }

func (d *Diagonal) Dims() (r, c int) { return d.mat.Dims() }

// Size returns the number of diagonal entries.
func (d *Diagonal) Size() int { return d.mat.Diag() }

func (d *Diagonal) At(i, j int) (float64, error) {
	if err := checkIndex(d, i, j); err != nil {
		return 0, err
	}
	if i != j {
		return 0, nil
	}
	return d.mat.At(i, i), nil
}

func (d *Diagonal) T() Matrix {
	return NewDiagonal(d.Data())
}

func (d *Diagonal) Mul(b Matrix) (Matrix, error) {
	br, _ := b.Dims()
	if d.Size() != br {
		return nil, mulShapeError(d, b)
	}
	switch b := b.(type) {
	case *Diagonal:
		diag := d.Data()
		for i := range diag {
			diag[i] *= b.mat.At(i, i)
		}
		return NewDiagonal(diag), nil
	case *Vector:
		v := b.Data()
		for i := range v {
			v[i] *= d.mat.At(i, i)
		}
		return NewVector(v), nil
	case *Dense:
		var m mat.Dense
		m.Mul(d.mat, b.mat)
		return &Dense{mat: &m}, nil
	}
	return nil, mulKindError(d, b)
}

func (d *Diagonal) Scale(f float64) Matrix {
	diag := d.Data()
	floats.Scale(f, diag)
	return NewDiagonal(diag)
}

func (d *Diagonal) Add(b Matrix) (Matrix, error) {
	if err := checkSameKind(d, b); err != nil {
		return nil, opError(opAdd, err)
	}
	diag := d.Data()
	floats.Add(diag, b.Data())
	return NewDiagonal(diag), nil
}

func (d *Diagonal) Sub(b Matrix) (Matrix, error) {
	if err := checkSameKind(d, b); err != nil {
		return nil, opError(opSub, err)
	}
	diag := d.Data()
	floats.Sub(diag, b.Data())
	return NewDiagonal(diag), nil
}

// MaxEigenValue returns the largest diagonal entry.
func (d *Diagonal) MaxEigenValue() (float64, error) {
	return floats.Max(d.Data()), nil
}

// Symmetrize returns a copy of d, which is already symmetric.
func (d *Diagonal) Symmetrize() (Matrix, error) {
	return NewDiagonal(d.Data()), nil
}

func (d *Diagonal) Data() []float64 {
	diag := make([]float64, d.Size())
	for i := range diag {
		diag[i] = d.mat.At(i, i)
	}
	return diag
}

func (d *Diagonal) String() string {
	return fmt.Sprintf("diag%v", d.Data())
}
