// Package matrix implements the MNA system storage layer: four
// interchangeable backends (dense/sparse, real/complex) behind two small
// interfaces, so the solver package never needs to know how a system was
// assembled.
package matrix

// Accumulator is the contract elements stamp into. AddAt/AddRHS add a
// real contribution; AddComplexAt/AddComplexRHS add a complex one. A
// real backend is free to reject the complex calls (DC analysis never
// issues them); a complex backend folds a real call in with a zero
// imaginary part.
//
// i or j equal to -1 (the ground row/column) is always a silent no-op,
// matching the assembler convention that ground has no row.
type Accumulator interface {
	Dim() int
	AddAt(i, j int, v float64)
	AddRHS(i int, v float64)
	AddComplexAt(i, j int, re, im float64)
	AddComplexRHS(i int, re, im float64)
}

// RealMatrix is the contract the solver package factors and solves
// against for DC analysis. Both DenseReal and SparseReal satisfy it.
type RealMatrix interface {
	Accumulator
	At(i, j int) float64
	RHS() []float64
	Diag(i int) float64
	MatVec(x, dst []float64)
	MatVecTrans(x, dst []float64)
	Reset()
}

// ComplexMatrix is the contract the solver package factors and solves
// against for AC analysis. Both DenseComplex and SparseComplex satisfy
// it.
type ComplexMatrix interface {
	Accumulator
	At(i, j int) complex128
	RHS() []complex128
	Diag(i int) complex128
	MatVec(x, dst []complex128)
	MatVecHerm(x, dst []complex128)
	Reset()
}

var (
	_ RealMatrix    = (*DenseReal)(nil)
	_ RealMatrix    = (*SparseReal)(nil)
	_ ComplexMatrix = (*DenseComplex)(nil)
	_ ComplexMatrix = (*SparseComplex)(nil)
)
