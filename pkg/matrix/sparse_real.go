package matrix

import (
	"sort"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// SparseReal is the sparse-real backend: a triplet accumulator (map
// keyed by row/col) compacted to CSR order on first read. Compaction is
// invalidated lazily on the next AddAt.
type SparseReal struct {
	dim int
	acc map[[2]int]float64
	b   []float64

	rowPtr []int
	colIdx []int
	vals   []float64
}

// NewSparseReal allocates an empty dim x dim sparse real system.
func NewSparseReal(dim int) *SparseReal {
	return &SparseReal{dim: dim, acc: make(map[[2]int]float64), b: make([]float64, dim)}
}

func (m *SparseReal) Dim() int { return m.dim }

func (m *SparseReal) AddAt(i, j int, v float64) {
	if i < 0 || j < 0 {
		return
	}
	m.acc[[2]int{i, j}] += v
	m.rowPtr = nil
}

func (m *SparseReal) AddRHS(i int, v float64) {
	if i < 0 {
		return
	}
	m.b[i] += v
}

func (m *SparseReal) AddComplexAt(i, j int, re, im float64) {
	panic("matrix: AddComplexAt on a real system")
}

func (m *SparseReal) AddComplexRHS(i int, re, im float64) {
	panic("matrix: AddComplexRHS on a real system")
}

func (m *SparseReal) At(i, j int) float64 { return m.acc[[2]int{i, j}] }

func (m *SparseReal) RHS() []float64 { return m.b }

func (m *SparseReal) Diag(i int) float64 { return m.acc[[2]int{i, i}] }

func (m *SparseReal) Reset() {
	m.acc = make(map[[2]int]float64)
	for i := range m.b {
		m.b[i] = 0
	}
	m.rowPtr = nil
}

// Compact sorts the accumulated triplets into row-major CSR order.
// A no-op once already compacted and nothing has been added since.
func (m *SparseReal) Compact() {
	if m.rowPtr != nil {
		return
	}
	type entry struct {
		i, j int
		v    float64
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
	vals := make([]float64, 0, len(entries))
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

func (m *SparseReal) MatVec(x, dst []float64) {
	m.Compact()
	for i := 0; i < m.dim; i++ {
		var sum float64
		for k := m.rowPtr[i]; k < m.rowPtr[i+1]; k++ {
			sum += m.vals[k] * x[m.colIdx[k]]
		}
		dst[i] = sum
	}
}

func (m *SparseReal) MatVecTrans(x, dst []float64) {
	m.Compact()
	for i := range dst {
		dst[i] = 0
	}
	for i := 0; i < m.dim; i++ {
		for k := m.rowPtr[i]; k < m.rowPtr[i+1]; k++ {
			dst[m.colIdx[k]] += m.vals[k] * x[i]
		}
	}
}

// Dense densifies the compacted matrix. The sparse-LU solver path
// factors this dense copy instead of the triplets directly.
func (m *SparseReal) Dense() *mat.Dense {
	m.Compact()
	d := mat.NewDense(m.dim, m.dim, nil)
	for i := 0; i < m.dim; i++ {
		for k := m.rowPtr[i]; k < m.rowPtr[i+1]; k++ {
			d.Set(i, m.colIdx[k], m.vals[k])
		}
	}
	return d
}

// CSR adapts the compacted matrix into a github.com/james-bowman/sparse
// CSR, the type its Cholesky factorization operates on.
func (m *SparseReal) CSR() *sparse.CSR {
	m.Compact()
	rows := make([]int, 0, len(m.vals))
	cols := make([]int, 0, len(m.vals))
	for i := 0; i < m.dim; i++ {
		for k := m.rowPtr[i]; k < m.rowPtr[i+1]; k++ {
			rows = append(rows, i)
			cols = append(cols, m.colIdx[k])
		}
	}
	coo := sparse.NewCOO(m.dim, m.dim, rows, cols, append([]float64{}, m.vals...))
	return coo.ToCSR()
}
