package solver

import (
	"gonum.org/v1/gonum/mat"

	"github.com/dvtyurin/mnaspice/pkg/matrix"
)

// RealFactorization is a reusable real factorization: assembled once
// against the A matrix, solved against as many right-hand sides as the
// caller needs (the DC-sweep factorization-reuse contract).
type RealFactorization interface {
	SolveVec(b []float64) ([]float64, error)
}

func denseFromReal(a matrix.RealMatrix) *mat.Dense {
	switch t := a.(type) {
	case *matrix.DenseReal:
		return t.Dense()
	case *matrix.SparseReal:
		return t.Dense()
	}
	n := a.Dim()
	d := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if v := a.At(i, j); v != 0 {
				d.Set(i, j, v)
			}
		}
	}
	return d
}

func symDenseFromReal(a matrix.RealMatrix) *mat.SymDense {
	n := a.Dim()
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sym.SetSym(i, j, a.At(i, j))
		}
	}
	return sym
}

type denseLUFactorization struct {
	lu  mat.LU
	dim int
}

// FactorDenseLU factors a real matrix (dense or densified-sparse) with
// partial-pivot LU, the non-SPD direct path.
func FactorDenseLU(a matrix.RealMatrix) (RealFactorization, error) {
	var lu mat.LU
	lu.Factorize(denseFromReal(a))
	if lu.Det() == 0 {
		return nil, &SingularMatrixError{Row: -1}
	}
	return &denseLUFactorization{lu: lu, dim: a.Dim()}, nil
}

func (f *denseLUFactorization) SolveVec(b []float64) ([]float64, error) {
	bv := mat.NewVecDense(f.dim, append([]float64(nil), b...))
	var xv mat.VecDense
	if err := f.lu.SolveVecTo(&xv, false, bv); err != nil {
		return nil, &SingularMatrixError{Row: -1}
	}
	return append([]float64(nil), xv.RawVector().Data...), nil
}

type denseCholFactorization struct {
	chol mat.Cholesky
	dim  int
}

// FactorDenseCholesky factors a symmetric positive-definite real matrix
// (dense or densified-sparse) with LLᵀ, the SPD direct path.
func FactorDenseCholesky(a matrix.RealMatrix) (RealFactorization, error) {
	var chol mat.Cholesky
	if ok := chol.Factorize(symDenseFromReal(a)); !ok {
		return nil, &SingularMatrixError{Row: -1}
	}
	return &denseCholFactorization{chol: chol, dim: a.Dim()}, nil
}

func (f *denseCholFactorization) SolveVec(b []float64) ([]float64, error) {
	bv := mat.NewVecDense(f.dim, append([]float64(nil), b...))
	var xv mat.VecDense
	if err := f.chol.SolveVecTo(&xv, bv); err != nil {
		return nil, &SingularMatrixError{Row: -1}
	}
	return append([]float64(nil), xv.RawVector().Data...), nil
}
