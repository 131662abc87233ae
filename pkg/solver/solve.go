package solver

import (
	"fmt"

	"github.com/dvtyurin/mnaspice/pkg/matrix"
)

// IsIterative reports whether m is one of the Krylov paths, which have
// no reusable factorization.
func (m Method) IsIterative() bool { return m == CG || m == BiCG }

// FactorReal builds the reusable direct factorization for a real
// system under method m. The sparse LU path densifies first: non-SPD
// sparse systems run partial-pivot LU on a dense copy of the compacted
// triplets.
func FactorReal(m Method, a matrix.RealMatrix) (RealFactorization, error) {
	switch m {
	case DenseLU, SparseLU:
		return FactorDenseLU(a)
	case DenseChol:
		return FactorDenseCholesky(a)
	case SparseChol:
		if sr, ok := a.(*matrix.SparseReal); ok {
			return FactorSparseCholesky(sr)
		}
		return FactorDenseCholesky(a)
	default:
		return nil, fmt.Errorf("solver: %s is not a direct method", m)
	}
}

// FactorComplex builds the reusable direct factorization for a complex
// system under method m. Both sparse paths densify before factoring.
func FactorComplex(m Method, a matrix.ComplexMatrix) (ComplexFactorization, error) {
	switch m {
	case DenseLU, SparseLU:
		return FactorComplexLU(a)
	case DenseChol, SparseChol:
		return FactorComplexCholesky(a)
	default:
		return nil, fmt.Errorf("solver: %s is not a direct method", m)
	}
}

// SolveIterativeReal dispatches a real Krylov solve: CG on SPD
// systems, BiCG otherwise.
func SolveIterativeReal(m Method, a matrix.RealMatrix, b, x []float64, o Options) (IterResult, error) {
	switch m {
	case CG:
		return SolveCG(a, b, x, o)
	case BiCG:
		return SolveBiCG(a, b, x, o)
	default:
		return IterResult{}, fmt.Errorf("solver: %s is not an iterative method", m)
	}
}

// SolveIterativeComplex dispatches a complex Krylov solve.
func SolveIterativeComplex(m Method, a matrix.ComplexMatrix, b, x []complex128, o Options) (IterResult, error) {
	switch m {
	case CG:
		return SolveComplexCG(a, b, x, o)
	case BiCG:
		return SolveComplexBiCG(a, b, x, o)
	default:
		return IterResult{}, fmt.Errorf("solver: %s is not an iterative method", m)
	}
}
