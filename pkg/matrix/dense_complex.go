package matrix

import "math/cmplx"

// DenseComplex is the dense-complex backend, a row-major
// slice-of-slices with an RHS vector.
type DenseComplex struct {
	dim int
	a   [][]complex128
	b   []complex128
}

// NewDenseComplex allocates a dim x dim zeroed dense complex system.
func NewDenseComplex(dim int) *DenseComplex {
	a := make([][]complex128, dim)
	for i := range a {
		a[i] = make([]complex128, dim)
	}
	return &DenseComplex{dim: dim, a: a, b: make([]complex128, dim)}
}

func (m *DenseComplex) Dim() int { return m.dim }

func (m *DenseComplex) AddAt(i, j int, v float64) { m.AddComplexAt(i, j, v, 0) }

func (m *DenseComplex) AddRHS(i int, v float64) { m.AddComplexRHS(i, v, 0) }

func (m *DenseComplex) AddComplexAt(i, j int, re, im float64) {
	if i < 0 || j < 0 {
		return
	}
	m.a[i][j] += complex(re, im)
}

func (m *DenseComplex) AddComplexRHS(i int, re, im float64) {
	if i < 0 {
		return
	}
	m.b[i] += complex(re, im)
}

func (m *DenseComplex) At(i, j int) complex128 { return m.a[i][j] }

func (m *DenseComplex) RHS() []complex128 { return m.b }

func (m *DenseComplex) Diag(i int) complex128 { return m.a[i][i] }

func (m *DenseComplex) MatVec(x, dst []complex128) {
	for i := 0; i < m.dim; i++ {
		var sum complex128
		for j, v := range m.a[i] {
			if v != 0 {
				sum += v * x[j]
			}
		}
		dst[i] = sum
	}
}

// MatVecHerm computes dst = A^H x, the adjoint product BiCG needs for
// its shadow residual recurrence.
func (m *DenseComplex) MatVecHerm(x, dst []complex128) {
	for i := range dst {
		dst[i] = 0
	}
	for i := 0; i < m.dim; i++ {
		for j, v := range m.a[i] {
			if v != 0 {
				dst[j] += cmplx.Conj(v) * x[i]
			}
		}
	}
}

func (m *DenseComplex) Reset() {
	for i := range m.a {
		for j := range m.a[i] {
			m.a[i][j] = 0
		}
	}
	for i := range m.b {
		m.b[i] = 0
	}
}
