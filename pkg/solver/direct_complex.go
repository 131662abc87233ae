package solver

import (
	"math"
	"math/cmplx"

	"github.com/dvtyurin/mnaspice/internal/consts"
	"github.com/dvtyurin/mnaspice/pkg/matrix"
)

// ComplexFactorization is the complex counterpart of RealFactorization.
type ComplexFactorization interface {
	SolveVec(b []complex128) ([]complex128, error)
}

func denseFromComplex(a matrix.ComplexMatrix) [][]complex128 {
	n := a.Dim()
	d := make([][]complex128, n)
	for i := range d {
		d[i] = make([]complex128, n)
		for j := 0; j < n; j++ {
			d[i][j] = a.At(i, j)
		}
	}
	return d
}

// complexLUFactorization is a Doolittle LU with partial pivoting over a
// dense complex128 matrix.
type complexLUFactorization struct {
	lu   [][]complex128
	perm []int
	dim  int
}

// FactorComplexLU factors a complex matrix (dense or densified-sparse)
// with partial-pivot LU, the non-SPD AC direct path.
func FactorComplexLU(a matrix.ComplexMatrix) (ComplexFactorization, error) {
	n := a.Dim()
	lu := denseFromComplex(a)
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	for k := 0; k < n; k++ {
		piv := k
		best := cmplx.Abs(lu[k][k])
		for i := k + 1; i < n; i++ {
			if m := cmplx.Abs(lu[i][k]); m > best {
				best, piv = m, i
			}
		}
		if best < consts.SingularPivotTol {
			return nil, &SingularMatrixError{Row: k}
		}
		if piv != k {
			lu[k], lu[piv] = lu[piv], lu[k]
			perm[k], perm[piv] = perm[piv], perm[k]
		}
		for i := k + 1; i < n; i++ {
			lu[i][k] /= lu[k][k]
			for j := k + 1; j < n; j++ {
				lu[i][j] -= lu[i][k] * lu[k][j]
			}
		}
	}

	return &complexLUFactorization{lu: lu, perm: perm, dim: n}, nil
}

func (f *complexLUFactorization) SolveVec(b []complex128) ([]complex128, error) {
	n := f.dim
	y := make([]complex128, n)
	for i := 0; i < n; i++ {
		sum := b[f.perm[i]]
		for j := 0; j < i; j++ {
			sum -= f.lu[i][j] * y[j]
		}
		y[i] = sum
	}
	x := make([]complex128, n)
	for i := n - 1; i >= 0; i-- {
		sum := y[i]
		for j := i + 1; j < n; j++ {
			sum -= f.lu[i][j] * x[j]
		}
		x[i] = sum / f.lu[i][i]
	}
	return x, nil
}

// complexCholFactorization is a Hermitian dot-product Cholesky (A =
// LL^H) over a dense complex128 matrix.
type complexCholFactorization struct {
	l   [][]complex128
	dim int
}

// FactorComplexCholesky factors a Hermitian positive-definite complex
// matrix (dense or densified-sparse), the SPD AC direct path.
func FactorComplexCholesky(a matrix.ComplexMatrix) (ComplexFactorization, error) {
	n := a.Dim()
	dense := denseFromComplex(a)
	l := make([][]complex128, n)
	for i := range l {
		l[i] = make([]complex128, n)
	}

	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			var sum complex128
			for k := 0; k < j; k++ {
				sum += l[i][k] * cmplx.Conj(l[j][k])
			}
			if i == j {
				diag := real(dense[i][i]) - real(sum)
				if diag <= consts.SingularPivotTol {
					return nil, &SingularMatrixError{Row: i}
				}
				l[i][i] = complex(math.Sqrt(diag), 0)
			} else {
				l[i][j] = (dense[i][j] - sum) / l[j][j]
			}
		}
	}
	return &complexCholFactorization{l: l, dim: n}, nil
}

func (f *complexCholFactorization) SolveVec(b []complex128) ([]complex128, error) {
	n := f.dim
	y := make([]complex128, n)
	for i := 0; i < n; i++ {
		sum := b[i]
		for k := 0; k < i; k++ {
			sum -= f.l[i][k] * y[k]
		}
		y[i] = sum / f.l[i][i]
	}
	x := make([]complex128, n)
	for i := n - 1; i >= 0; i-- {
		sum := y[i]
		for k := i + 1; k < n; k++ {
			sum -= cmplx.Conj(f.l[k][i]) * x[k]
		}
		x[i] = sum / f.l[i][i]
	}
	return x, nil
}
