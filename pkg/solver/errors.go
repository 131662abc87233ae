package solver

import "fmt"

// SingularMatrixError reports a direct factorization that hit a
// numerically zero pivot.
type SingularMatrixError struct {
	Row int
}

func (e *SingularMatrixError) Error() string {
	if e.Row >= 0 {
		return fmt.Sprintf("solver: singular matrix, zero pivot at row %d", e.Row)
	}
	return "solver: singular matrix"
}

// BreakdownKind names which BiCG scalar degenerated.
type BreakdownKind int

const (
	BreakdownRho BreakdownKind = iota
	BreakdownOmega
)

func (k BreakdownKind) String() string {
	if k == BreakdownRho {
		return "rho"
	}
	return "omega"
}

// IterativeBreakdownError reports a BiCG recurrence whose rho or omega
// scalar collapsed to numerically zero before convergence, replacing
// the sentinel -1 iteration-count return the redesign note flags.
type IterativeBreakdownError struct {
	Kind      BreakdownKind
	Iteration int
	Magnitude float64
}

func (e *IterativeBreakdownError) Error() string {
	return fmt.Sprintf("solver: bicg breakdown (%s collapsed to %g) at iteration %d", e.Kind, e.Magnitude, e.Iteration)
}

// NonConvergenceError reports an iterative solve that exhausted its
// iteration budget without reaching the requested tolerance.
type NonConvergenceError struct {
	Iterations int
	Residual   float64
}

func (e *NonConvergenceError) Error() string {
	return fmt.Sprintf("solver: did not converge in %d iterations (residual ratio %g)", e.Iterations, e.Residual)
}

// IterStatus is the outcome of an iterative solve.
type IterStatus int

const (
	Converged IterStatus = iota
	NotConverged
)

// IterResult reports how an iterative solve concluded.
type IterResult struct {
	Iterations int
	Status     IterStatus
}
