package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Dense is a general r×c matrix.
type Dense struct {
	mat *mat.Dense
}

// NewDense creates an r×c matrix from row-major data. The data is copied.
// A nil slice yields a zero matrix. NewDense panics if len(data) != r*c.
func NewDense(r, c int, data []float64) *Dense {
	if data != nil {
		data = append([]float64(nil), data...)
	}
	return &Dense{mat: mat.NewDense(r, c, data)}
}

func (d *Dense) sealed() {}

func (d *Dense) Kind() Kind { return DenseKind }

func (d *Dense) Dims() (r, c int) { return d.mat.Dims() }

func (d *Dense) At(i, j int) (float64, error) {
	if err := checkIndex(d, i, j); err != nil {
		return 0, err
	}
	return d.mat.At(i, j), nil
}

func (d *Dense) T() Matrix {
	return &Dense{mat: mat.DenseCopyOf(d.mat.T())}
}

func (d *Dense) Mul(b Matrix) (Matrix, error) {
	_, c := d.Dims()
	br, _ := b.Dims()
	if c != br {
		return nil, mulShapeError(d, b)
	}
	switch b := b.(type) {
	case *Dense:
		var m mat.Dense
		m.Mul(d.mat, b.mat)
		return &Dense{mat: &m}, nil
	case *Diagonal:
		var m mat.Dense
		m.Mul(d.mat, b.mat)
		return &Dense{mat: &m}, nil
	case *Vector:
		var v mat.VecDense
		v.MulVec(d.mat, b.vec)
		return &Vector{vec: &v}, nil
	}
	return nil, mulKindError(d, b)
}

func (d *Dense) Scale(f float64) Matrix {
	var m mat.Dense
	m.Scale(f, d.mat)
	return &Dense{mat: &m}
}

func (d *Dense) Add(b Matrix) (Matrix, error) {
	if err := checkSameKind(d, b); err != nil {
		return nil, opError(opAdd, err)
	}
	var m mat.Dense
	m.Add(d.mat, b.(*Dense).mat)
	return &Dense{mat: &m}, nil
}

func (d *Dense) Sub(b Matrix) (Matrix, error) {
	if err := checkSameKind(d, b); err != nil {
		return nil, opError(opSub, err)
	}
	var m mat.Dense
	m.Sub(d.mat, b.(*Dense).mat)
	return &Dense{mat: &m}, nil
}

// MaxEigenValue returns the largest eigenvalue of the symmetric part of d.
func (d *Dense) MaxEigenValue() (float64, error) {
	sym, err := d.symDense()
	if err != nil {
		return 0, opError(opEigen, err)
	}
	var es mat.EigenSym
	if ok := es.Factorize(sym, false); !ok {
		return 0, opError(opEigen, ErrEigenFailed)
	}
	return floats.Max(es.Values(nil)), nil
}

func (d *Dense) Symmetrize() (Matrix, error) {
	sym, err := d.symDense()
	if err != nil {
		return nil, opError(opSymmetrize, err)
	}
	return &Dense{mat: mat.DenseCopyOf(sym)}, nil
}

// symDense returns 0.5*(d+dᵀ) as a SymDense.
func (d *Dense) symDense() (*mat.SymDense, error) {
	r, c := d.Dims()
	if r != c {
		return nil, fmt.Errorf("%w: %d×%d", ErrNotSquare, r, c)
	}
	sym := mat.NewSymDense(r, nil)
	for i := 0; i < r; i++ {
		for j := i; j < r; j++ {
			sym.SetSym(i, j, 0.5*(d.mat.At(i, j)+d.mat.At(j, i)))
		}
	}
	return sym, nil
}

func (d *Dense) Data() []float64 {
	r, c := d.Dims()
	data := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		data = append(data, d.mat.RawRowView(i)...)
	}
	return data
}

func (d *Dense) String() string {
	return fmt.Sprintf("%v", mat.Formatted(d.mat))
}
