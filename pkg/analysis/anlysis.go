// Package analysis implements the three analysis drivers: DC operating
// point, DC sweep, and AC frequency sweep. Each driver owns the MNA
// system, the RHS, and the solution vector for the duration of a single
// run and starts from freshly zeroed state.
package analysis

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/dvtyurin/mnaspice/pkg/circuit"
	"github.com/dvtyurin/mnaspice/pkg/matrix"
	"github.com/dvtyurin/mnaspice/pkg/solver"
)

type Analysis interface {
	Setup(ckt *circuit.Circuit) error
	Execute() error
	GetResults() map[string][]float64
}

// BaseAnalysis carries the solver configuration and the result store
// shared by all three drivers. Results are keyed by variable name
// ("V(2)", "I(V1)", "SWEEP", "FREQ", "V(2)_MAG", ...), each holding one
// value per solve.
type BaseAnalysis struct {
	Circuit *circuit.Circuit
	opts    solver.Options
	method  solver.Method
	results map[string][]float64
}

func NewBaseAnalysis(opts solver.Options) *BaseAnalysis {
	return &BaseAnalysis{
		opts:    opts,
		method:  solver.SelectMethod(opts),
		results: make(map[string][]float64),
	}
}

func (a *BaseAnalysis) GetResults() map[string][]float64 {
	return a.results
}

// Method exposes the derived solver path, mostly for the CLI banner.
func (a *BaseAnalysis) Method() solver.Method { return a.method }

// solveReal runs one real solve into x. For direct methods fact is
// factored on first use and reused on later calls (the DC-sweep
// contract: only b changes between steps); for iterative methods fact
// stays nil and x doubles as the warm-start guess. Non-convergence is
// a warning, not an error: the last iterate is still emitted.
func (a *BaseAnalysis) solveReal(sys matrix.RealMatrix, fact solver.RealFactorization, x []float64) (solver.RealFactorization, error) {
	if a.method.IsIterative() {
		_, err := solver.SolveIterativeReal(a.method, sys, sys.RHS(), x, a.opts)
		if err != nil {
			var nc *solver.NonConvergenceError
			if errors.As(err, &nc) {
				fmt.Printf("Warning: %v\n", nc)
				return nil, nil
			}
			return nil, err
		}
		return nil, nil
	}

	if fact == nil {
		var err error
		fact, err = solver.FactorReal(a.method, sys)
		if err != nil {
			return nil, err
		}
	}
	sol, err := fact.SolveVec(sys.RHS())
	if err != nil {
		return nil, err
	}
	copy(x, sol)
	return fact, nil
}

// solveComplex runs one complex solve into x. AC re-assembles A at
// every frequency, so there is no factorization reuse to speak of.
func (a *BaseAnalysis) solveComplex(sys matrix.ComplexMatrix, x []complex128) error {
	if a.method.IsIterative() {
		_, err := solver.SolveIterativeComplex(a.method, sys, sys.RHS(), x, a.opts)
		if err != nil {
			var nc *solver.NonConvergenceError
			if errors.As(err, &nc) {
				fmt.Printf("Warning: %v\n", nc)
				return nil
			}
			return err
		}
		return nil
	}

	fact, err := solver.FactorComplex(a.method, sys)
	if err != nil {
		return err
	}
	sol, err := fact.SolveVec(sys.RHS())
	if err != nil {
		return err
	}
	copy(x, sol)
	return nil
}

// plotNodesOrAll returns the requested plot list, defaulting to every
// non-ground node when a netlist carries no .PLOT/.PRINT line.
func (a *BaseAnalysis) plotNodesOrAll(plotNodes []string) []string {
	if len(plotNodes) > 0 {
		return plotNodes
	}
	names := make([]string, 0, len(a.Circuit.NodeIDs))
	for name := range a.Circuit.NodeIDs {
		names = append(names, name)
	}
	return names
}

func (a *BaseAnalysis) appendResult(key string, v float64) {
	a.results[key] = append(a.results[key], v)
}

// StoreACResult converts one frequency point's node voltages from
// rectangular to polar and appends them under "<name>_MAG" /
// "<name>_PHASE" keys. logMag switches the magnitude to decibels, the
// reporting convention for logarithmic sweeps.
func (a *BaseAnalysis) StoreACResult(freq float64, solution map[string]complex128, logMag bool) {
	a.appendResult("FREQ", freq)
	for name, value := range solution {
		magnitude := cmplx.Abs(value)
		if logMag {
			magnitude = 20 * math.Log10(magnitude)
		}
		a.appendResult(name+"_MAG", magnitude)

		phase := cmplx.Phase(value) * 180.0 / math.Pi
		a.appendResult(name+"_PHASE", phase)
	}
}
