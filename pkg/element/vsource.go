package element

import (
	"math"

	"github.com/dvtyurin/mnaspice/pkg/matrix"
)

// VoltageSource is an independent two-terminal voltage source. DCValue
// drives DC analysis; ACMag/ACPhase (volts, degrees) drive AC analysis.
// Like the inductor it is a G2 element with an auxiliary branch current.
type VoltageSource struct {
	BaseElement
	DCValue float64
	ACMag   float64
	ACPhase float64
}

func NewVoltageSource(name string, nodes []int, dcValue, acMag, acPhase float64) *VoltageSource {
	return &VoltageSource{
		BaseElement: BaseElement{name: name, nodes: nodes},
		DCValue:     dcValue,
		ACMag:       acMag,
		ACPhase:     acPhase,
	}
}

func (v *VoltageSource) Kind() Kind { return KindVoltageSource }
func (v *VoltageSource) IsG2() bool { return true }

func (v *VoltageSource) Stamp(m matrix.Accumulator, st *Status) error {
	i, j := Index(v.Nodes()[0]), Index(v.Nodes()[1])
	k := v.BranchIndex()

	if st.Mode == AC {
		m.AddComplexAt(i, k, 1, 0)
		m.AddComplexAt(k, i, 1, 0)
		m.AddComplexAt(j, k, -1, 0)
		m.AddComplexAt(k, j, -1, 0)
		phase := v.ACPhase * math.Pi / 180
		m.AddComplexRHS(k, v.ACMag*math.Cos(phase), v.ACMag*math.Sin(phase))
		return nil
	}

	m.AddAt(i, k, 1)
	m.AddAt(k, i, 1)
	m.AddAt(j, k, -1)
	m.AddAt(k, j, -1)
	m.AddRHS(k, v.DCValue)
	return nil
}
