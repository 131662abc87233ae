package element

import (
	"math"

	"github.com/dvtyurin/mnaspice/pkg/matrix"
)

// CurrentSource is an independent two-terminal current source whose
// current flows through it from n+ to n- (it pulls current out of n+
// and pushes it into n-). DCValue drives DC analysis; ACMag/ACPhase
// (amps, degrees) drive AC analysis.
type CurrentSource struct {
	BaseElement
	DCValue float64
	ACMag   float64
	ACPhase float64
}

func NewCurrentSource(name string, nodes []int, dcValue, acMag, acPhase float64) *CurrentSource {
	return &CurrentSource{
		BaseElement: BaseElement{name: name, nodes: nodes},
		DCValue:     dcValue,
		ACMag:       acMag,
		ACPhase:     acPhase,
	}
}

func (c *CurrentSource) Kind() Kind { return KindCurrentSource }
func (c *CurrentSource) IsG2() bool { return false }

func (c *CurrentSource) Stamp(m matrix.Accumulator, st *Status) error {
	i, j := Index(c.Nodes()[0]), Index(c.Nodes()[1])

	if st.Mode == AC {
		phase := c.ACPhase * math.Pi / 180
		re, im := c.ACMag*math.Cos(phase), c.ACMag*math.Sin(phase)
		m.AddComplexRHS(i, -re, -im)
		m.AddComplexRHS(j, re, im)
		return nil
	}

	m.AddRHS(i, -c.DCValue)
	m.AddRHS(j, c.DCValue)
	return nil
}
