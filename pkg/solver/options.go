// Package solver implements the six-way linear solver dispatch
// (dense/sparse x direct/iterative x real/complex) over the matrix
// package's RealMatrix/ComplexMatrix abstraction.
package solver

import "github.com/dvtyurin/mnaspice/internal/consts"

// Options is derived once from a netlist's .OPTIONS line and threaded
// through a whole analysis run.
type Options struct {
	SPD     bool
	Iter    bool
	Sparse  bool
	ITol    float64
	MaxIter int
}

// DefaultOptions returns the options a netlist with a bare (or absent)
// .OPTIONS line gets.
func DefaultOptions() Options {
	return Options{ITol: consts.DefaultITol, MaxIter: consts.DefaultMaxIter}
}

// Method is the explicit tagged solver path, derived once from Options
// instead of re-deciding SPD/ITER/SPARSE at every call site.
type Method int

const (
	DenseLU Method = iota
	DenseChol
	SparseLU
	SparseChol
	CG
	BiCG
)

func (m Method) String() string {
	switch m {
	case DenseLU:
		return "dense-lu"
	case DenseChol:
		return "dense-cholesky"
	case SparseLU:
		return "sparse-lu"
	case SparseChol:
		return "sparse-cholesky"
	case CG:
		return "cg"
	case BiCG:
		return "bicg"
	default:
		return "unknown"
	}
}

// SelectMethod derives the Method from Options: ITER takes priority
// over SPARSE/SPD (an iterative request always picks CG or BiCG), then
// SPARSE, then SPD.
func SelectMethod(o Options) Method {
	switch {
	case o.Iter && o.SPD:
		return CG
	case o.Iter:
		return BiCG
	case o.Sparse && o.SPD:
		return SparseChol
	case o.Sparse:
		return SparseLU
	case o.SPD:
		return DenseChol
	default:
		return DenseLU
	}
}

func (o Options) maxIter() int {
	if o.MaxIter > 0 {
		return o.MaxIter
	}
	return consts.DefaultMaxIter
}

func (o Options) itol() float64 {
	if o.ITol > 0 {
		return o.ITol
	}
	return consts.DefaultITol
}
