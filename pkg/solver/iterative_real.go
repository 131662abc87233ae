package solver

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/dvtyurin/mnaspice/internal/consts"
	"github.com/dvtyurin/mnaspice/pkg/matrix"
)

// jacobiReal extracts the Jacobi preconditioner diag(A). A zero
// diagonal entry becomes 1, so the preconditioner solve is the
// identity on that coordinate (MNA branch rows have a zero diagonal at
// DC and must not poison the solve).
func jacobiReal(a matrix.RealMatrix) []float64 {
	d := make([]float64, a.Dim())
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

// rhsNorm is the convergence denominator ‖b‖₂, forced to 1 when the
// forcing vector is null so the residual ratio stays well-defined.
func rhsNorm(b []float64) float64 {
	n := floats.Norm(b, 2)
	if n == 0 {
		return 1
	}
	return n
}

// SolveCG runs Jacobi-preconditioned Conjugate Gradient on a symmetric
// positive-definite system. x carries the initial guess in and the
// solution out. The recurrence follows the preconditioned CG of
// Templates (Barrett et al., section 2.3.1).
func SolveCG(a matrix.RealMatrix, b, x []float64, o Options) (IterResult, error) {
	n := a.Dim()
	diag := jacobiReal(a)
	r := make([]float64, n)
	z := make([]float64, n)
	p := make([]float64, n)
	q := make([]float64, n)

	a.MatVec(x, r)
	for i := range r {
		r[i] = b[i] - r[i]
	}
	bnorm := rhsNorm(b)
	itol := o.itol()
	if floats.Norm(r, 2)/bnorm <= itol {
		return IterResult{Iterations: 0, Status: Converged}, nil
	}

	var rho, rhoPrev float64
	maxIter := o.maxIter()
	for iter := 1; iter <= maxIter; iter++ {
		for i := range z {
			z[i] = r[i] / diag[i]
		}
		rho = floats.Dot(r, z)
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
		alpha := rho / floats.Dot(p, q)
		floats.AddScaled(x, alpha, p)
		floats.AddScaled(r, -alpha, q)

		if floats.Norm(r, 2)/bnorm <= itol {
			return IterResult{Iterations: iter, Status: Converged}, nil
		}
	}
	return IterResult{Iterations: maxIter, Status: NotConverged},
		&NonConvergenceError{Iterations: maxIter, Residual: floats.Norm(r, 2) / bnorm}
}

// SolveBiCG runs Jacobi-preconditioned Bi-Conjugate Gradient on a
// general (non-SPD) system, the Templates section 2.3.5 recurrence.
// The iteration cap is floored at consts.BiCGMinIter: BiCG stagnates
// on ill-conditioned systems given too few iterations.
func SolveBiCG(a matrix.RealMatrix, b, x []float64, o Options) (IterResult, error) {
	n := a.Dim()
	diag := jacobiReal(a)
	r := make([]float64, n)
	rt := make([]float64, n)
	z := make([]float64, n)
	zt := make([]float64, n)
	p := make([]float64, n)
	pt := make([]float64, n)
	q := make([]float64, n)
	qt := make([]float64, n)

	a.MatVec(x, r)
	for i := range r {
		r[i] = b[i] - r[i]
	}
	copy(rt, r)
	bnorm := rhsNorm(b)
	itol := o.itol()
	if floats.Norm(r, 2)/bnorm <= itol {
		return IterResult{Iterations: 0, Status: Converged}, nil
	}

	maxIter := o.maxIter()
	if maxIter < consts.BiCGMinIter {
		maxIter = consts.BiCGMinIter
	}

	var rho, rhoPrev float64
	for iter := 1; iter <= maxIter; iter++ {
		// M is diagonal, so Mᵀ = M and both preconditioner solves
		// share the same divisor.
		for i := range z {
			z[i] = r[i] / diag[i]
			zt[i] = rt[i] / diag[i]
		}
		rho = floats.Dot(rt, z)
		if math.Abs(rho) < consts.BreakdownTol {
			return IterResult{Iterations: iter - 1, Status: NotConverged},
				&IterativeBreakdownError{Kind: BreakdownRho, Iteration: iter, Magnitude: math.Abs(rho)}
		}
		if iter == 1 {
			copy(p, z)
			copy(pt, zt)
		} else {
			beta := rho / rhoPrev
			for i := range p {
				p[i] = z[i] + beta*p[i]
				pt[i] = zt[i] + beta*pt[i]
			}
		}
		rhoPrev = rho

		a.MatVec(p, q)
		a.MatVecTrans(pt, qt)
		omega := floats.Dot(pt, q)
		if math.Abs(omega) < consts.BreakdownTol {
			return IterResult{Iterations: iter - 1, Status: NotConverged},
				&IterativeBreakdownError{Kind: BreakdownOmega, Iteration: iter, Magnitude: math.Abs(omega)}
		}
		alpha := rho / omega
		floats.AddScaled(x, alpha, p)
		floats.AddScaled(r, -alpha, q)
		floats.AddScaled(rt, -alpha, qt)

		if floats.Norm(r, 2)/bnorm <= itol {
			return IterResult{Iterations: iter, Status: Converged}, nil
		}
	}
	return IterResult{Iterations: maxIter, Status: NotConverged},
		&NonConvergenceError{Iterations: maxIter, Residual: floats.Norm(r, 2) / bnorm}
}
