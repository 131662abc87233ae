package analysis

import (
	"fmt"

	"github.com/dvtyurin/mnaspice/pkg/circuit"
	"github.com/dvtyurin/mnaspice/pkg/element"
	"github.com/dvtyurin/mnaspice/pkg/solver"
)

// OperatingPoint solves the DC steady state: assemble once, solve
// once, store every non-ground node voltage and G2 branch current.
type OperatingPoint struct{ BaseAnalysis }

func NewOP(opts solver.Options) *OperatingPoint {
	return &OperatingPoint{BaseAnalysis: *NewBaseAnalysis(opts)}
}

func (op *OperatingPoint) Setup(ckt *circuit.Circuit) error {
	op.Circuit = ckt
	return nil
}

func (op *OperatingPoint) Execute() error {
	ckt := op.Circuit
	sys := ckt.NewRealSystem(op.opts.Sparse)
	st := &element.Status{Mode: element.DC}
	if err := ckt.Stamp(sys, st); err != nil {
		return fmt.Errorf("assembling operating point system: %w", err)
	}

	x := make([]float64, ckt.Dim())
	if _, err := op.solveReal(sys, nil, x); err != nil {
		return fmt.Errorf("solving operating point: %w", err)
	}

	op.storeResults(x)
	return nil
}

func (op *OperatingPoint) storeResults(x []float64) {
	for nodeName, nodeID := range op.Circuit.NodeIDs {
		op.results[fmt.Sprintf("V(%s)", nodeName)] = []float64{x[nodeID-1]}
	}
	for devName, branchIdx := range op.Circuit.BranchIDs {
		op.results[fmt.Sprintf("I(%s)", devName)] = []float64{x[branchIdx]}
	}
}
