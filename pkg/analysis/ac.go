package analysis

import (
	"fmt"
	"math"

	"github.com/dvtyurin/mnaspice/pkg/circuit"
	"github.com/dvtyurin/mnaspice/pkg/element"
	"github.com/dvtyurin/mnaspice/pkg/netlist"
	"github.com/dvtyurin/mnaspice/pkg/solver"
)

// ACAnalysis sweeps the complex system A(ω) = G + jωC across a linear
// or logarithmic frequency grid. A changes with ω, so the system is
// re-assembled and re-factored at every point.
type ACAnalysis struct {
	BaseAnalysis
	spec        netlist.ACSweepSpec
	frequencies []float64
}

func NewAC(spec *netlist.ACSweepSpec, opts solver.Options) *ACAnalysis {
	return &ACAnalysis{BaseAnalysis: *NewBaseAnalysis(opts), spec: *spec}
}

func (ac *ACAnalysis) Setup(ckt *circuit.Circuit) error {
	ac.Circuit = ckt

	freqs, err := SweepPoints(ac.spec.Sweep, ac.spec.FStart, ac.spec.FStop, ac.spec.Points)
	if err != nil {
		return err
	}
	ac.frequencies = freqs
	return nil
}

// SweepPoints generates n frequency sample points between fStart and
// fStop, spaced linearly for "LIN" and evenly in log10 for "LOG".
func SweepPoints(sweep string, fStart, fStop float64, n int) ([]float64, error) {
	if n < 2 {
		return nil, fmt.Errorf("ac sweep: need at least 2 points, got %d", n)
	}
	points := make([]float64, n)
	switch sweep {
	case "LIN":
		step := (fStop - fStart) / float64(n-1)
		for k := range points {
			points[k] = fStart + float64(k)*step
		}
	case "LOG":
		start, end := math.Log10(fStart), math.Log10(fStop)
		step := (end - start) / float64(n-1)
		for k := range points {
			points[k] = math.Pow(10, start+float64(k)*step)
		}
	default:
		return nil, fmt.Errorf("ac sweep: unknown sweep type %q", sweep)
	}
	return points, nil
}

func (ac *ACAnalysis) Execute() error {
	ckt := ac.Circuit
	sys := ckt.NewComplexSystem(ac.opts.Sparse)
	plotNodes := ac.plotNodesOrAll(ac.spec.PlotNodes)
	logMag := ac.spec.Sweep == "LOG"
	x := make([]complex128, ckt.Dim())

	for _, f := range ac.frequencies {
		sys.Reset()
		st := &element.Status{Mode: element.AC, Frequency: f}
		if err := ckt.Stamp(sys, st); err != nil {
			return fmt.Errorf("assembling ac system at %g Hz: %w", f, err)
		}

		if err := ac.solveComplex(sys, x); err != nil {
			return fmt.Errorf("ac sweep at %g Hz: %w", f, err)
		}

		solution := make(map[string]complex128, len(plotNodes))
		for _, name := range plotNodes {
			idx := ckt.NodeIndex(name)
			if idx < 0 {
				solution[fmt.Sprintf("V(%s)", name)] = 0
				continue
			}
			solution[fmt.Sprintf("V(%s)", name)] = x[idx]
		}
		ac.StoreACResult(f, solution, logMag)
	}
	return nil
}
