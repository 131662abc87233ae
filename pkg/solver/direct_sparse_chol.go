package solver

import (
	"gonum.org/v1/gonum/mat"

	"github.com/james-bowman/sparse"

	"github.com/dvtyurin/mnaspice/pkg/matrix"
)

type sparseCholFactorization struct {
	chol sparse.Cholesky
	dim  int
}

// FactorSparseCholesky factors a sparse SPD real matrix using
// github.com/james-bowman/sparse's CSR-backed Cholesky.
func FactorSparseCholesky(a *matrix.SparseReal) (RealFactorization, error) {
	var chol sparse.Cholesky
	chol.Factorize(a.CSR())
	return &sparseCholFactorization{chol: chol, dim: a.Dim()}, nil
}

func (f *sparseCholFactorization) SolveVec(b []float64) ([]float64, error) {
	bv := mat.NewVecDense(f.dim, append([]float64(nil), b...))
	var xv mat.VecDense
	xv.ReuseAsVec(f.dim)
	if err := f.chol.SolveVecTo(&xv, bv); err != nil {
		return nil, &SingularMatrixError{Row: -1}
	}
	return append([]float64(nil), xv.RawVector().Data...), nil
}
