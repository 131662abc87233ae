package matrix

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestGroundIndexIsDropped(t *testing.T) {
	for name, m := range map[string]RealMatrix{
		"dense":  NewDenseReal(2),
		"sparse": NewSparseReal(2),
	} {
		m.AddAt(-1, 0, 5)
		m.AddAt(0, -1, 5)
		m.AddAt(-1, -1, 5)
		m.AddRHS(-1, 7)
		m.AddAt(0, 0, 3)
		m.AddRHS(1, 2)

		if got := m.At(0, 0); got != 3 {
			t.Errorf("%s: At(0,0) = %g, want 3", name, got)
		}
		if got := m.At(0, 1); got != 0 {
			t.Errorf("%s: At(0,1) = %g, want 0", name, got)
		}
		if got := m.RHS()[1]; got != 2 {
			t.Errorf("%s: RHS()[1] = %g, want 2", name, got)
		}
	}
}

func TestDuplicateEntriesAreSummed(t *testing.T) {
	for name, m := range map[string]RealMatrix{
		"dense":  NewDenseReal(3),
		"sparse": NewSparseReal(3),
	} {
		m.AddAt(1, 2, 2.5)
		m.AddAt(1, 2, -1.0)
		m.AddAt(1, 2, 0.5)
		if got := m.At(1, 2); got != 2.0 {
			t.Errorf("%s: At(1,2) = %g, want 2", name, got)
		}
	}
}

func TestDenseSparseMatVecAgree(t *testing.T) {
	entries := [][3]float64{
		{0, 0, 2}, {0, 2, -1},
		{1, 1, 3}, {1, 0, 0.5},
		{2, 2, 4}, {2, 0, -2},
	}
	dense := NewDenseReal(3)
	sp := NewSparseReal(3)
	for _, e := range entries {
		dense.AddAt(int(e[0]), int(e[1]), e[2])
		sp.AddAt(int(e[0]), int(e[1]), e[2])
	}

	x := []float64{1, -2, 3}
	yd := make([]float64, 3)
	ys := make([]float64, 3)

	dense.MatVec(x, yd)
	sp.MatVec(x, ys)
	for i := range yd {
		if math.Abs(yd[i]-ys[i]) > 1e-15 {
			t.Errorf("MatVec[%d]: dense %g vs sparse %g", i, yd[i], ys[i])
		}
	}

	dense.MatVecTrans(x, yd)
	sp.MatVecTrans(x, ys)
	for i := range yd {
		if math.Abs(yd[i]-ys[i]) > 1e-15 {
			t.Errorf("MatVecTrans[%d]: dense %g vs sparse %g", i, yd[i], ys[i])
		}
	}
}

func TestMatVecTransIsTranspose(t *testing.T) {
	m := NewSparseReal(2)
	m.AddAt(0, 1, 3)
	m.AddAt(1, 0, -2)
	m.AddAt(1, 1, 5)

	x := []float64{1, 1}
	y := make([]float64, 2)
	m.MatVecTrans(x, y)

	// Aᵀ = [[0, -2], [3, 5]]
	if y[0] != -2 || y[1] != 8 {
		t.Errorf("MatVecTrans = %v, want [-2 8]", y)
	}
}

func TestComplexMatVecHermIsConjugateTranspose(t *testing.T) {
	for name, m := range map[string]ComplexMatrix{
		"dense":  NewDenseComplex(2),
		"sparse": NewSparseComplex(2),
	} {
		m.AddComplexAt(0, 0, 1, 2)
		m.AddComplexAt(0, 1, 0, -3)
		m.AddComplexAt(1, 1, 4, 1)

		x := []complex128{1 + 1i, 2}
		y := make([]complex128, 2)
		m.MatVecHerm(x, y)

		// A^H = [[1-2i, 0], [3i, 4-1i]]
		want := []complex128{
			(1 - 2i) * (1 + 1i),
			(0 + 3i)*(1 + 1i) + (4-1i)*2,
		}
		for i := range want {
			if cmplx.Abs(y[i]-want[i]) > 1e-15 {
				t.Errorf("%s: MatVecHerm[%d] = %v, want %v", name, i, y[i], want[i])
			}
		}
	}
}

func TestSparseCompactIsStable(t *testing.T) {
	build := func() *SparseReal {
		m := NewSparseReal(3)
		m.AddAt(2, 0, 1)
		m.AddAt(0, 2, 2)
		m.AddAt(1, 1, 3)
		m.AddAt(0, 0, 4)
		m.AddAt(2, 0, 1) // duplicate, summed to 2
		return m
	}

	a, b := build(), build()
	a.Compact()
	b.Compact()

	da, db := a.Dense(), b.Dense()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if da.At(i, j) != db.At(i, j) {
				t.Fatalf("compaction not deterministic at (%d,%d)", i, j)
			}
		}
	}
	if got := a.At(2, 0); got != 2 {
		t.Errorf("At(2,0) = %g, want 2 after duplicate summing", got)
	}
}

func TestAddAfterCompactRecompacts(t *testing.T) {
	m := NewSparseReal(2)
	m.AddAt(0, 0, 1)
	x := []float64{1, 1}
	y := make([]float64, 2)
	m.MatVec(x, y) // forces a compaction

	m.AddAt(0, 0, 1)
	m.AddAt(1, 1, 2)
	m.MatVec(x, y)
	if y[0] != 2 || y[1] != 2 {
		t.Errorf("MatVec after re-add = %v, want [2 2]", y)
	}
}

func TestResetZeroesSystem(t *testing.T) {
	for name, m := range map[string]RealMatrix{
		"dense":  NewDenseReal(2),
		"sparse": NewSparseReal(2),
	} {
		m.AddAt(0, 0, 1)
		m.AddAt(1, 0, 2)
		m.AddRHS(0, 3)
		m.Reset()

		if m.At(0, 0) != 0 || m.At(1, 0) != 0 || m.RHS()[0] != 0 {
			t.Errorf("%s: Reset left nonzero state", name)
		}
	}
}

func TestSparseCSRRoundTrip(t *testing.T) {
	m := NewSparseReal(3)
	m.AddAt(0, 0, 4)
	m.AddAt(0, 1, -1)
	m.AddAt(1, 0, -1)
	m.AddAt(1, 1, 4)
	m.AddAt(2, 2, 2)

	csr := m.CSR()
	r, c := csr.Dims()
	if r != 3 || c != 3 {
		t.Fatalf("CSR dims = %dx%d, want 3x3", r, c)
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if csr.At(i, j) != m.At(i, j) {
				t.Errorf("CSR At(%d,%d) = %g, want %g", i, j, csr.At(i, j), m.At(i, j))
			}
		}
	}
}
