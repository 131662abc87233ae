package solver

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/dvtyurin/mnaspice/pkg/matrix"
)

func buildReal(t *testing.T, dim int, entries [][3]float64, b []float64, sparse bool) matrix.RealMatrix {
	t.Helper()
	var m matrix.RealMatrix
	if sparse {
		m = matrix.NewSparseReal(dim)
	} else {
		m = matrix.NewDenseReal(dim)
	}
	for _, e := range entries {
		m.AddAt(int(e[0]), int(e[1]), e[2])
	}
	for i, v := range b {
		m.AddRHS(i, v)
	}
	return m
}

// spdSystem is the 3x3 SPD system used across the direct tests, with
// solution x = (1, 2, 3).
func spdSystem(t *testing.T, sparse bool) matrix.RealMatrix {
	entries := [][3]float64{
		{0, 0, 4}, {0, 1, -1}, {0, 2, 1},
		{1, 0, -1}, {1, 1, 4}, {1, 2, -2},
		{2, 0, 1}, {2, 1, -2}, {2, 2, 4},
	}
	b := []float64{5, 1, 9}
	return buildReal(t, 3, entries, b, sparse)
}

func residualReal(a matrix.RealMatrix, x []float64) float64 {
	n := a.Dim()
	ax := make([]float64, n)
	a.MatVec(x, ax)
	var rnorm, bnorm float64
	for i, bi := range a.RHS() {
		d := ax[i] - bi
		rnorm += d * d
		bnorm += bi * bi
	}
	return math.Sqrt(rnorm) / math.Sqrt(bnorm)
}

func TestDenseLURoundTrip(t *testing.T) {
	entries := [][3]float64{
		{0, 0, 2}, {0, 1, 1}, {0, 2, -1},
		{1, 0, -3}, {1, 1, -1}, {1, 2, 2},
		{2, 0, -2}, {2, 1, 1}, {2, 2, 2},
	}
	b := []float64{8, -11, -3}
	a := buildReal(t, 3, entries, b, false)

	fact, err := FactorDenseLU(a)
	if err != nil {
		t.Fatalf("FactorDenseLU: %v", err)
	}
	x, err := fact.SolveVec(a.RHS())
	if err != nil {
		t.Fatalf("SolveVec: %v", err)
	}

	want := []float64{2, 3, -1}
	for i := range want {
		if math.Abs(x[i]-want[i]) > 1e-9 {
			t.Errorf("x[%d] = %g, want %g", i, x[i], want[i])
		}
	}
	if r := residualReal(a, x); r > 1e-9 {
		t.Errorf("residual ratio %g, want <= 1e-9", r)
	}
}

func TestDenseCholeskyMatchesLU(t *testing.T) {
	a := spdSystem(t, false)

	lu, err := FactorDenseLU(a)
	if err != nil {
		t.Fatalf("FactorDenseLU: %v", err)
	}
	chol, err := FactorDenseCholesky(a)
	if err != nil {
		t.Fatalf("FactorDenseCholesky: %v", err)
	}

	xLU, err := lu.SolveVec(a.RHS())
	if err != nil {
		t.Fatalf("lu solve: %v", err)
	}
	xChol, err := chol.SolveVec(a.RHS())
	if err != nil {
		t.Fatalf("cholesky solve: %v", err)
	}

	for i := range xLU {
		if math.Abs(xLU[i]-xChol[i]) > 1e-9 {
			t.Errorf("x[%d]: lu %g vs cholesky %g", i, xLU[i], xChol[i])
		}
	}
}

func TestSparseCholeskyMatchesDense(t *testing.T) {
	dense := spdSystem(t, false)
	sp := spdSystem(t, true)

	dfact, err := FactorDenseCholesky(dense)
	if err != nil {
		t.Fatalf("FactorDenseCholesky: %v", err)
	}
	sfact, err := FactorSparseCholesky(sp.(*matrix.SparseReal))
	if err != nil {
		t.Fatalf("FactorSparseCholesky: %v", err)
	}

	xd, err := dfact.SolveVec(dense.RHS())
	if err != nil {
		t.Fatalf("dense solve: %v", err)
	}
	xs, err := sfact.SolveVec(sp.RHS())
	if err != nil {
		t.Fatalf("sparse solve: %v", err)
	}

	for i := range xd {
		if math.Abs(xd[i]-xs[i]) > 1e-9 {
			t.Errorf("x[%d]: dense %g vs sparse %g", i, xd[i], xs[i])
		}
	}
}

func TestDenseLUSingularMatrix(t *testing.T) {
	a := matrix.NewDenseReal(2)
	a.AddAt(0, 0, 1)
	a.AddAt(0, 1, 2)
	a.AddAt(1, 0, 2)
	a.AddAt(1, 1, 4)

	_, err := FactorDenseLU(a)
	var sing *SingularMatrixError
	if !errors.As(err, &sing) {
		t.Fatalf("got %v, want SingularMatrixError", err)
	}
}

func TestComplexLUSolve(t *testing.T) {
	a := matrix.NewDenseComplex(2)
	a.AddComplexAt(0, 0, 1, 1)
	a.AddComplexAt(0, 1, 2, 0)
	a.AddComplexAt(1, 0, 0, -1)
	a.AddComplexAt(1, 1, 3, 0)

	// x = (1+1i, 2), b = A x.
	want := []complex128{1 + 1i, 2}
	b := []complex128{
		(1+1i)*(1+1i) + 4,
		(0-1i)*(1+1i) + 6,
	}

	fact, err := FactorComplexLU(a)
	if err != nil {
		t.Fatalf("FactorComplexLU: %v", err)
	}
	x, err := fact.SolveVec(b)
	if err != nil {
		t.Fatalf("SolveVec: %v", err)
	}
	for i := range want {
		if cmplx.Abs(x[i]-want[i]) > 1e-12 {
			t.Errorf("x[%d] = %v, want %v", i, x[i], want[i])
		}
	}
}

func TestComplexLUSingularMatrix(t *testing.T) {
	a := matrix.NewDenseComplex(2)
	a.AddComplexAt(0, 0, 1, 0)
	a.AddComplexAt(0, 1, 1, 0)
	a.AddComplexAt(1, 0, 1, 0)
	a.AddComplexAt(1, 1, 1, 0)

	_, err := FactorComplexLU(a)
	var sing *SingularMatrixError
	if !errors.As(err, &sing) {
		t.Fatalf("got %v, want SingularMatrixError", err)
	}
	if sing.Row != 1 {
		t.Errorf("offending row %d, want 1", sing.Row)
	}
}

func TestComplexCholeskyMatchesLU(t *testing.T) {
	// Hermitian positive definite.
	a := matrix.NewDenseComplex(2)
	a.AddComplexAt(0, 0, 4, 0)
	a.AddComplexAt(0, 1, 1, -1)
	a.AddComplexAt(1, 0, 1, 1)
	a.AddComplexAt(1, 1, 5, 0)
	b := []complex128{1 + 2i, 3}

	lu, err := FactorComplexLU(a)
	if err != nil {
		t.Fatalf("FactorComplexLU: %v", err)
	}
	chol, err := FactorComplexCholesky(a)
	if err != nil {
		t.Fatalf("FactorComplexCholesky: %v", err)
	}

	xLU, err := lu.SolveVec(b)
	if err != nil {
		t.Fatalf("lu solve: %v", err)
	}
	xChol, err := chol.SolveVec(b)
	if err != nil {
		t.Fatalf("cholesky solve: %v", err)
	}
	for i := range xLU {
		if cmplx.Abs(xLU[i]-xChol[i]) > 1e-12 {
			t.Errorf("x[%d]: lu %v vs cholesky %v", i, xLU[i], xChol[i])
		}
	}
}

func TestFactorizationReuseAcrossRHS(t *testing.T) {
	a := spdSystem(t, false)
	fact, err := FactorDenseLU(a)
	if err != nil {
		t.Fatalf("FactorDenseLU: %v", err)
	}

	for _, scale := range []float64{1, 2, 0.5} {
		b := make([]float64, a.Dim())
		for i, v := range a.RHS() {
			b[i] = v * scale
		}
		x, err := fact.SolveVec(b)
		if err != nil {
			t.Fatalf("SolveVec (scale %g): %v", scale, err)
		}
		want := []float64{1 * scale, 2 * scale, 3 * scale}
		for i := range want {
			if math.Abs(x[i]-want[i]) > 1e-9 {
				t.Errorf("scale %g: x[%d] = %g, want %g", scale, i, x[i], want[i])
			}
		}
	}
}

func TestSelectMethod(t *testing.T) {
	cases := []struct {
		opts Options
		want Method
	}{
		{Options{}, DenseLU},
		{Options{SPD: true}, DenseChol},
		{Options{Sparse: true}, SparseLU},
		{Options{Sparse: true, SPD: true}, SparseChol},
		{Options{Iter: true}, BiCG},
		{Options{Iter: true, SPD: true}, CG},
		{Options{Iter: true, Sparse: true}, BiCG},
		{Options{Iter: true, Sparse: true, SPD: true}, CG},
	}
	for _, c := range cases {
		if got := SelectMethod(c.opts); got != c.want {
			t.Errorf("SelectMethod(%+v) = %s, want %s", c.opts, got, c.want)
		}
	}
}
