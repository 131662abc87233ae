// Package element implements the five lumped elements of the data model
// (resistor, capacitor, inductor, voltage source, current source) and
// their MNA stamping rules.
package element

import "github.com/dvtyurin/mnaspice/pkg/matrix"

// Kind identifies an element's letter prefix, matching the netlist
// convention (R, C, L, V, I).
type Kind string

const (
	KindResistor      Kind = "R"
	KindCapacitor     Kind = "C"
	KindInductor      Kind = "L"
	KindVoltageSource Kind = "V"
	KindCurrentSource Kind = "I"
)

// Mode selects which stamping rule a Status carries: DC values (a
// real system) or a single AC frequency point (a complex system).
type Mode int

const (
	DC Mode = iota
	AC
)

// Status is the small piece of analysis context every Stamp call
// receives.
type Status struct {
	Mode      Mode
	Frequency float64 // Hz, meaningful only when Mode == AC
}

// Element is satisfied by every lumped device kind. Nodes are returned
// as circuit node ids (ground = 0); BranchIndex is meaningful only for
// G2 elements (inductor, voltage source), which reserve an auxiliary
// row/column for their branch current.
type Element interface {
	Name() string
	Kind() Kind
	Nodes() []int
	IsG2() bool
	BranchIndex() int
	SetBranchIndex(i int)
	Stamp(m matrix.Accumulator, st *Status) error
}

// BaseElement carries the fields every element kind shares.
type BaseElement struct {
	name        string
	nodes       []int
	branchIndex int
}

func (b *BaseElement) Name() string         { return b.name }
func (b *BaseElement) Nodes() []int         { return b.nodes }
func (b *BaseElement) BranchIndex() int     { return b.branchIndex }
func (b *BaseElement) SetBranchIndex(i int) { b.branchIndex = i }

// Index converts a circuit node id to its matrix row/column: ground
// (id 0) maps to -1, which every Accumulator treats as "no entry".
func Index(nodeID int) int { return nodeID - 1 }
