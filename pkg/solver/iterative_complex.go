package solver

import (
	"math"
	"math/cmplx"

	"github.com/dvtyurin/mnaspice/internal/consts"
	"github.com/dvtyurin/mnaspice/pkg/matrix"
)

// dotc is the Hermitian inner product ⟨u,v⟩ = Σ conj(u_i)·v_i.
func dotc(u, v []complex128) complex128 {
	var sum complex128
	for i := range u {
		sum += cmplx.Conj(u[i]) * v[i]
	}
	return sum
}

func norm2c(v []complex128) float64 {
	var sum float64
	for _, z := range v {
		sum += real(z)*real(z) + imag(z)*imag(z)
	}
	return math.Sqrt(sum)
}

func jacobiComplex(a matrix.ComplexMatrix) []complex128 {
	d := make([]complex128, a.Dim())
	for i := range d {
		v := a.Diag(i)
		if v == 0 {
			d[i] = 1
			continue
		}
		d[i] = v
	}
	return d
}

func rhsNormComplex(b []complex128) float64 {
	n := norm2c(b)
	if n == 0 {
		return 1
	}
	return n
}

// SolveComplexCG is the complex (Hermitian positive-definite) variant
// of SolveCG: the same recurrence with the dot product replaced by the
// Hermitian inner product.
func SolveComplexCG(a matrix.ComplexMatrix, b, x []complex128, o Options) (IterResult, error) {
	n := a.Dim()
	diag := jacobiComplex(a)
	r := make([]complex128, n)
	z := make([]complex128, n)
	p := make([]complex128, n)
	q := make([]complex128, n)

	a.MatVec(x, r)
	for i := range r {
		r[i] = b[i] - r[i]
	}
	bnorm := rhsNormComplex(b)
	itol := o.itol()
	if norm2c(r)/bnorm <= itol {
		return IterResult{Iterations: 0, Status: Converged}, nil
	}

	var rho, rhoPrev complex128
	maxIter := o.maxIter()
	for iter := 1; iter <= maxIter; iter++ {
		for i := range z {
			z[i] = r[i] / diag[i]
		}
		rho = dotc(r, z)
		if iter == 1 {
			copy(p, z)
		} else {
			beta := rho / rhoPrev
			for i := range p {
				p[i] = z[i] + beta*p[i]
			}
		}
		rhoPrev = rho

		a.MatVec(p, q)
		alpha := rho / dotc(p, q)
		for i := range x {
			x[i] += alpha * p[i]
			r[i] -= alpha * q[i]
		}

		if norm2c(r)/bnorm <= itol {
			return IterResult{Iterations: iter, Status: Converged}, nil
		}
	}
	return IterResult{Iterations: maxIter, Status: NotConverged},
		&NonConvergenceError{Iterations: maxIter, Residual: norm2c(r) / bnorm}
}

// SolveComplexBiCG is the complex variant of SolveBiCG: Hermitian
// inner products, A^H in place of Aᵀ, and conjugated β and α in the
// shadow recurrences.
func SolveComplexBiCG(a matrix.ComplexMatrix, b, x []complex128, o Options) (IterResult, error) {
	n := a.Dim()
	diag := jacobiComplex(a)
	r := make([]complex128, n)
	rt := make([]complex128, n)
	z := make([]complex128, n)
	zt := make([]complex128, n)
	p := make([]complex128, n)
	pt := make([]complex128, n)
	q := make([]complex128, n)
	qt := make([]complex128, n)

	a.MatVec(x, r)
	for i := range r {
		r[i] = b[i] - r[i]
	}
	copy(rt, r)
	bnorm := rhsNormComplex(b)
	itol := o.itol()
	if norm2c(r)/bnorm <= itol {
		return IterResult{Iterations: 0, Status: Converged}, nil
	}

	maxIter := o.maxIter()
	if maxIter < consts.BiCGMinIter {
		maxIter = consts.BiCGMinIter
	}

	var rho, rhoPrev complex128
	for iter := 1; iter <= maxIter; iter++ {
		// The shadow system is preconditioned by M^H, which for a
		// diagonal M is the conjugated divisor.
		for i := range z {
			z[i] = r[i] / diag[i]
			zt[i] = rt[i] / cmplx.Conj(diag[i])
		}
		rho = dotc(rt, z)
		if cmplx.Abs(rho) < consts.BreakdownTol {
			return IterResult{Iterations: iter - 1, Status: NotConverged},
				&IterativeBreakdownError{Kind: BreakdownRho, Iteration: iter, Magnitude: cmplx.Abs(rho)}
		}
		if iter == 1 {
			copy(p, z)
			copy(pt, zt)
		} else {
			beta := rho / rhoPrev
			betaConj := cmplx.Conj(beta)
			for i := range p {
				p[i] = z[i] + beta*p[i]
				pt[i] = zt[i] + betaConj*pt[i]
			}
		}
		rhoPrev = rho

		a.MatVec(p, q)
		a.MatVecHerm(pt, qt)
		omega := dotc(pt, q)
		if cmplx.Abs(omega) < consts.BreakdownTol {
			return IterResult{Iterations: iter - 1, Status: NotConverged},
				&IterativeBreakdownError{Kind: BreakdownOmega, Iteration: iter, Magnitude: cmplx.Abs(omega)}
		}
		alpha := rho / omega
		alphaConj := cmplx.Conj(alpha)
		for i := range x {
			x[i] += alpha * p[i]
			r[i] -= alpha * q[i]
			rt[i] -= alphaConj * qt[i]
		}

		if norm2c(r)/bnorm <= itol {
			return IterResult{Iterations: iter, Status: Converged}, nil
		}
	}
	return IterResult{Iterations: maxIter, Status: NotConverged},
		&NonConvergenceError{Iterations: maxIter, Residual: norm2c(r) / bnorm}
}
