package matrix

import "gonum.org/v1/gonum/mat"

// DenseReal is the dense-real backend, a thin accumulator over
// gonum's *mat.Dense plus an RHS vector.
type DenseReal struct {
	dim int
	a   *mat.Dense
	b   []float64
}

// NewDenseReal allocates a dim x dim zeroed dense real system.
func NewDenseReal(dim int) *DenseReal {
	return &DenseReal{dim: dim, a: mat.NewDense(dim, dim, nil), b: make([]float64, dim)}
}

func (m *DenseReal) Dim() int { return m.dim }

func (m *DenseReal) AddAt(i, j int, v float64) {
	if i < 0 || j < 0 {
		return
	}
	m.a.Set(i, j, m.a.At(i, j)+v)
}

func (m *DenseReal) AddRHS(i int, v float64) {
	if i < 0 {
		return
	}
	m.b[i] += v
}

func (m *DenseReal) AddComplexAt(i, j int, re, im float64) {
	panic("matrix: AddComplexAt on a real system")
}

func (m *DenseReal) AddComplexRHS(i int, re, im float64) {
	panic("matrix: AddComplexRHS on a real system")
}

func (m *DenseReal) At(i, j int) float64 { return m.a.At(i, j) }

func (m *DenseReal) RHS() []float64 { return m.b }

func (m *DenseReal) Diag(i int) float64 { return m.a.At(i, i) }

func (m *DenseReal) MatVec(x, dst []float64) {
	xv := mat.NewVecDense(m.dim, x)
	dv := mat.NewVecDense(m.dim, dst)
	dv.MulVec(m.a, xv)
}

func (m *DenseReal) MatVecTrans(x, dst []float64) {
	xv := mat.NewVecDense(m.dim, x)
	dv := mat.NewVecDense(m.dim, dst)
	dv.MulVec(m.a.T(), xv)
}

func (m *DenseReal) Reset() {
	m.a = mat.NewDense(m.dim, m.dim, nil)
	for i := range m.b {
		m.b[i] = 0
	}
}

// Dense exposes the backing gonum matrix, used by the solver package's
// direct-LU path to skip a copy.
func (m *DenseReal) Dense() *mat.Dense { return m.a }
