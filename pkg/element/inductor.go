package element

import (
	"math"

	"github.com/dvtyurin/mnaspice/pkg/matrix"
)

// Inductor is a linear two-terminal inductance, value in henries. It
// reserves an auxiliary branch row/column (G2) for its branch current:
// a short at DC, -jωL at AC.
type Inductor struct {
	BaseElement
	Value float64
}

func NewInductor(name string, nodes []int, value float64) *Inductor {
	return &Inductor{BaseElement: BaseElement{name: name, nodes: nodes}, Value: value}
}

func (l *Inductor) Kind() Kind { return KindInductor }
func (l *Inductor) IsG2() bool { return true }

func (l *Inductor) Stamp(m matrix.Accumulator, st *Status) error {
	i, j := Index(l.Nodes()[0]), Index(l.Nodes()[1])
	k := l.BranchIndex()

	if st.Mode == AC {
		m.AddComplexAt(i, k, 1, 0)
		m.AddComplexAt(k, i, 1, 0)
		m.AddComplexAt(j, k, -1, 0)
		m.AddComplexAt(k, j, -1, 0)
		omega := 2 * math.Pi * st.Frequency
		m.AddComplexAt(k, k, 0, -omega*l.Value)
		return nil
	}

	m.AddAt(i, k, 1)
	m.AddAt(k, i, 1)
	m.AddAt(j, k, -1)
	m.AddAt(k, j, -1)
	// DC: inductor is a short, A[k,k] += 0.
	return nil
}
