package element

import "github.com/dvtyurin/mnaspice/pkg/matrix"

// Resistor is a linear two-terminal resistance, value in ohms.
type Resistor struct {
	BaseElement
	Value float64
}

// NewResistor builds a resistor between nodes[0] (n+) and nodes[1] (n-).
func NewResistor(name string, nodes []int, value float64) *Resistor {
	return &Resistor{BaseElement: BaseElement{name: name, nodes: nodes}, Value: value}
}

func (r *Resistor) Kind() Kind { return KindResistor }
func (r *Resistor) IsG2() bool { return false }

func (r *Resistor) Stamp(m matrix.Accumulator, st *Status) error {
	i, j := Index(r.Nodes()[0]), Index(r.Nodes()[1])
	g := 1.0 / r.Value
	if st.Mode == AC {
		m.AddComplexAt(i, i, g, 0)
		m.AddComplexAt(j, j, g, 0)
		m.AddComplexAt(i, j, -g, 0)
		m.AddComplexAt(j, i, -g, 0)
		return nil
	}
	m.AddAt(i, i, g)
	m.AddAt(j, j, g)
	m.AddAt(i, j, -g)
	m.AddAt(j, i, -g)
	return nil
}
