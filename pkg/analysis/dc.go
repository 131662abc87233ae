package analysis

import (
	"fmt"
	"math"

	"github.com/dvtyurin/mnaspice/pkg/circuit"
	"github.com/dvtyurin/mnaspice/pkg/element"
	"github.com/dvtyurin/mnaspice/pkg/netlist"
	"github.com/dvtyurin/mnaspice/pkg/solver"
)

// DCSweep re-solves the DC system across a range of values of one
// named independent source. Only b changes between steps, so direct
// methods factor A once and reuse the factorization for every step.
type DCSweep struct {
	BaseAnalysis
	spec netlist.DCSweepSpec

	vsrc *element.VoltageSource
	isrc *element.CurrentSource
}

func NewDCSweep(spec *netlist.DCSweepSpec, opts solver.Options) *DCSweep {
	return &DCSweep{BaseAnalysis: *NewBaseAnalysis(opts), spec: *spec}
}

func (dc *DCSweep) Setup(ckt *circuit.Circuit) error {
	dc.Circuit = ckt

	if v, ok := ckt.FindVoltageSource(dc.spec.Source); ok {
		dc.vsrc = v
		return nil
	}
	if i, ok := ckt.FindCurrentSource(dc.spec.Source); ok {
		dc.isrc = i
		return nil
	}
	return fmt.Errorf("dc sweep: source %q not found in netlist", dc.spec.Source)
}

// SweepValues generates the inclusive-endpoint sample points. Each
// value is computed as start + k*step rather than accumulated, so the
// last point cannot drift past the endpoint.
func (dc *DCSweep) SweepValues() []float64 {
	// The small slack keeps a step count like 1/0.1 = 9.999... from
	// flooring one short of the endpoint.
	nSteps := int(math.Floor((dc.spec.Stop-dc.spec.Start)/dc.spec.Step + 1e-9))
	vals := make([]float64, 0, nSteps+1)
	for k := 0; k <= nSteps; k++ {
		vals = append(vals, dc.spec.Start+float64(k)*dc.spec.Step)
	}
	return vals
}

func (dc *DCSweep) Execute() error {
	ckt := dc.Circuit
	sys := ckt.NewRealSystem(dc.opts.Sparse)
	st := &element.Status{Mode: element.DC}
	if err := ckt.Stamp(sys, st); err != nil {
		return fmt.Errorf("assembling dc sweep system: %w", err)
	}

	plotNodes := dc.plotNodesOrAll(dc.spec.PlotNodes)
	b := sys.RHS()
	x := make([]float64, ckt.Dim())

	var fact solver.RealFactorization
	for _, v := range dc.SweepValues() {
		dc.applySourceValue(b, v)

		var err error
		fact, err = dc.solveReal(sys, fact, x)
		if err != nil {
			return fmt.Errorf("dc sweep at %s=%g: %w", dc.spec.Source, v, err)
		}

		dc.appendResult("SWEEP", v)
		for _, name := range plotNodes {
			idx := ckt.NodeIndex(name)
			if idx < 0 {
				dc.appendResult(fmt.Sprintf("V(%s)", name), 0)
				continue
			}
			dc.appendResult(fmt.Sprintf("V(%s)", name), x[idx])
		}
	}
	return nil
}

// applySourceValue overwrites the swept source's RHS contribution with
// the current step value: the branch row for a voltage source, the two
// node rows (skipping ground) for a current source.
func (dc *DCSweep) applySourceValue(b []float64, v float64) {
	if dc.vsrc != nil {
		b[dc.vsrc.BranchIndex()] = v
		return
	}
	i := element.Index(dc.isrc.Nodes()[0])
	j := element.Index(dc.isrc.Nodes()[1])
	if i >= 0 {
		b[i] = -v
	}
	if j >= 0 {
		b[j] = v
	}
}
