package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Vector is an n×1 column vector.
type Vector struct {
	vec *mat.VecDense
}

// NewVector creates a column vector holding a copy of data. NewVector
// panics if data is empty.
func NewVector(data []float64) *Vector {
	return &Vector{vec: mat.NewVecDense(len(data), append([]float64(nil), data...))}
}

func (v *Vector) sealed() {}

func (v *Vector) Kind() Kind { return VectorKind }

func (v *Vector) Dims() (r, c int) { return v.vec.Len(), 1 }

// Len returns the number of elements.
func (v *Vector) Len() int { return v.vec.Len() }


func (v *Vector) At(i, j int) (float64, error) {
	if j != 0 {
		return 0, opError(opAt, fmt.Errorf("%w: vector has a single column, got column %d", ErrIndex, j))
	}
	if err := checkIndex(v, i, j); err != nil {
		return 0, err
	}
	return v.vec.AtVec(i), nil
}

// T returns the 1×n row form of v as a Dense.
func (v *Vector) T() Matrix {
	return NewDense(1, v.Len(), v.Data())
}

// Mul supports only the outer product with a 1×c Dense.
func (v *Vector) Mul(b Matrix) (Matrix, error) {
	bd, ok := b.(*Dense)
	if !ok {
		return nil, mulKindError(v, b)
	}
	if r, _ := bd.Dims(); r != 1 {
		return nil, mulShapeError(v, b)
	}
	var m mat.Dense
	m.Mul(v.vec, bd.mat)
	return &Dense{mat: &m}, nil
}

func (v *Vector) Scale(f float64) Matrix {
	var s mat.VecDense
	s.ScaleVec(f, v.vec)
	return &Vector{vec: &s}
}

func (v *Vector) Add(b Matrix) (Matrix, error) {
	if err := checkSameKind(v, b); err != nil {
		return nil, opError(opAdd, err)
	}
	var s mat.VecDense
	s.AddVec(v.vec, b.(*Vector).vec)
	return &Vector{vec: &s}, nil
}

func (v *Vector) Sub(b Matrix) (Matrix, error) {
	if err := checkSameKind(v, b); err != nil {
		return nil, opError(opSub, err)
	}
	var s mat.VecDense
	s.SubVec(v.vec, b.(*Vector).vec)
	return &Vector{vec: &s}, nil
}

func (v *Vector) MaxEigenValue() (float64, error) {
	return 0, opError(opEigen, fmt.Errorf("%w: vector has no eigenvalues", ErrUnsupported))
}

func (v *Vector) Symmetrize() (Matrix, error) {
	return nil, opError(opSymmetrize, fmt.Errorf("%w: cannot symmetrize a vector", ErrUnsupported))
}

func (v *Vector) Data() []float64 {
	data := make([]float64, v.Len())
	copy(data, v.vec.RawVector().Data)
	return data
}

// Dot returns the inner product of v and b. It panics if the lengths differ.
func (v *Vector) Dot(b *Vector) float64 {
	return mat.Dot(v.vec, b.vec)
}

// Norm returns the Euclidean norm of v.
func (v *Vector) Norm() float64 {
	return mat.Norm(v.vec, 2)
}

func (v *Vector) String() string {
	return fmt.Sprintf("%v", v.Data())
}
