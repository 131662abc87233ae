// Package consts holds the small numeric constants shared across the
// assembler and solver layers.
package consts

const (
	// GroundNode is the reserved node id of the circuit reference node.
	// It never gets a row/column in the assembled system.
	GroundNode = 0

	// DefaultITol is the default iterative-solver convergence tolerance
	// used when a netlist omits ITOL=.
	DefaultITol = 1e-3

	// DefaultMaxIter is the default iteration cap for CG/BiCG when a
	// netlist does not size it explicitly.
	DefaultMaxIter = 200

	// BiCGMinIter is the conservative floor BiCG forces maxiter up to:
	// BiCG stagnates on ill-conditioned systems given too few iterations.
	BiCGMinIter = 100

	// BreakdownTol is the magnitude below which BiCG declares rho or
	// omega degenerate and reports a breakdown.
	BreakdownTol = 1e-14

	// DirectResidualTol is the residual tolerance used when judging a
	// direct solve (LU/Cholesky) against the round-trip invariant.
	DirectResidualTol = 1e-9

	// SingularPivotTol is the pivot magnitude below which a direct
	// factorization reports the matrix singular instead of dividing by
	// a near-zero pivot.
	SingularPivotTol = 1e-300
)
