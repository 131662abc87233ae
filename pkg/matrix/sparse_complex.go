package matrix

import (
	"math/cmplx"
	"sort"
)

// SparseComplex is the sparse-complex backend, mirroring SparseReal's
// triplet-to-CSR-order shape with complex128 values.
type SparseComplex struct {
	dim int
	acc map[[2]int]complex128
	b   []complex128

	rowPtr []int
	colIdx []int
	vals   []complex128
}

// NewSparseComplex allocates an empty dim x dim sparse complex system.
func NewSparseComplex(dim int) *SparseComplex {
	return &SparseComplex{dim: dim, acc: make(map[[2]int]complex128), b: make([]complex128, dim)}
}

func (m *SparseComplex) Dim() int { return m.dim }

func (m *SparseComplex) AddAt(i, j int, v float64) { m.AddComplexAt(i, j, v, 0) }

func (m *SparseComplex) AddRHS(i int, v float64) { m.AddComplexRHS(i, v, 0) }

func (m *SparseComplex) AddComplexAt(i, j int, re, im float64) {
	if i < 0 || j < 0 {
		return
	}
	m.acc[[2]int{i, j}] += complex(re, im)
	m.rowPtr = nil
}

func (m *SparseComplex) AddComplexRHS(i int, re, im float64) {
	if i < 0 {
		return
	}
	m.b[i] += complex(re, im)
}

func (m *SparseComplex) At(i, j int) complex128 { return m.acc[[2]int{i, j}] }

func (m *SparseComplex) RHS() []complex128 { return m.b }

func (m *SparseComplex) Diag(i int) complex128 { return m.acc[[2]int{i, i}] }

func (m *SparseComplex) Reset() {
	m.acc = make(map[[2]int]complex128)
	for i := range m.b {
		m.b[i] = 0
	}
	m.rowPtr = nil
}

// Compact sorts the accumulated triplets into row-major CSR order.
func (m *SparseComplex) Compact() {
	if m.rowPtr != nil {
		return
	}
	type entry struct {
		i, j int
		v    complex128
	}
	entries := make([]entry, 0, len(m.acc))
	for k, v := range m.acc {
		entries = append(entries, entry{k[0], k[1], v})
	}
	sort.Slice(entries, func(a, b int) bool {
		if entries[a].i != entries[b].i {
			return entries[a].i < entries[b].i
		}
		return entries[a].j < entries[b].j
	})

	rowPtr := make([]int, m.dim+1)
	colIdx := make([]int, 0, len(entries))
	vals := make([]complex128, 0, len(entries))
	for _, e := range entries {
		rowPtr[e.i+1]++
		colIdx = append(colIdx, e.j)
		vals = append(vals, e.v)
	}
	for i := 0; i < m.dim; i++ {
		rowPtr[i+1] += rowPtr[i]
	}

	m.rowPtr, m.colIdx, m.vals = rowPtr, colIdx, vals
}

func (m *SparseComplex) MatVec(x, dst []complex128) {
	m.Compact()
	for i := 0; i < m.dim; i++ {
		var sum complex128
		for k := m.rowPtr[i]; k < m.rowPtr[i+1]; k++ {
			sum += m.vals[k] * x[m.colIdx[k]]
		}
		dst[i] = sum
	}
}

func (m *SparseComplex) MatVecHerm(x, dst []complex128) {
	m.Compact()
	for i := range dst {
		dst[i] = 0
	}
	for i := 0; i < m.dim; i++ {
		for k := m.rowPtr[i]; k < m.rowPtr[i+1]; k++ {
			dst[m.colIdx[k]] += cmplx.Conj(m.vals[k]) * x[i]
		}
	}
}

// Dense densifies the compacted matrix for the sparse-complex LU and
// Cholesky solver paths.
func (m *SparseComplex) Dense() [][]complex128 {
	m.Compact()
	d := make([][]complex128, m.dim)
	for i := range d {
		d[i] = make([]complex128, m.dim)
	}
	for i := 0; i < m.dim; i++ {
		for k := m.rowPtr[i]; k < m.rowPtr[i+1]; k++ {
			d[i][m.colIdx[k]] = m.vals[k]
		}
	}
	return d
}
