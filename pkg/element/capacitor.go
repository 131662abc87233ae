package element

import (
	"math"

	"github.com/dvtyurin/mnaspice/pkg/matrix"
)

// Capacitor is a linear two-terminal capacitance, value in farads. DC
// analysis treats it as an open circuit; AC analysis stamps jωC.
type Capacitor struct {
	BaseElement
	Value float64
}

func NewCapacitor(name string, nodes []int, value float64) *Capacitor {
	return &Capacitor{BaseElement: BaseElement{name: name, nodes: nodes}, Value: value}
}

func (c *Capacitor) Kind() Kind { return KindCapacitor }
func (c *Capacitor) IsG2() bool { return false }

func (c *Capacitor) Stamp(m matrix.Accumulator, st *Status) error {
	if st.Mode != AC {
		return nil
	}
	i, j := Index(c.Nodes()[0]), Index(c.Nodes()[1])
	b := 2 * math.Pi * st.Frequency * c.Value
	m.AddComplexAt(i, i, 0, b)
	m.AddComplexAt(j, j, 0, b)
	m.AddComplexAt(i, j, 0, -b)
	m.AddComplexAt(j, i, 0, -b)
	return nil
}
