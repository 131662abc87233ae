// Package circuit ties a parsed netlist's ElementList to the matrix
// layer: it assigns the node/branch symbol table and stamps every
// element into an assembled system.
package circuit

import (
	"fmt"
	"strings"

	"github.com/dvtyurin/mnaspice/pkg/element"
	"github.com/dvtyurin/mnaspice/pkg/matrix"
	"github.com/dvtyurin/mnaspice/pkg/netlist"
)

// Circuit holds the resolved ElementList and the node/branch symbol
// table built from a parsed netlist.
type Circuit struct {
	Title     string
	Elements  []element.Element
	NodeIDs   map[string]int // node name -> id, ground excluded
	BranchIDs map[string]int // G2 element name -> branch row (0-based)
	numNodes  int
}

func isGround(name string) bool {
	return name == "0" || strings.EqualFold(name, "gnd")
}

// Build assigns the node/branch symbol table (ground excluded, node
// ids in first-seen order, G2 branch rows appended after the N node
// rows in declaration order) and constructs the ElementList from a
// parsed netlist, resolving node names to ids.
func Build(title string, parsed []netlist.Element) (*Circuit, error) {
	c := &Circuit{
		Title:     title,
		NodeIDs:   make(map[string]int),
		BranchIDs: make(map[string]int),
	}

	for _, pe := range parsed {
		for _, name := range pe.Nodes {
			if isGround(name) {
				continue
			}
			if _, ok := c.NodeIDs[name]; !ok {
				c.numNodes++
				c.NodeIDs[name] = c.numNodes
			}
		}
	}

	branch := c.numNodes
	for _, pe := range parsed {
		if pe.Type == element.KindVoltageSource || pe.Type == element.KindInductor {
			c.BranchIDs[pe.Name] = branch
			branch++
		}
	}

	for _, pe := range parsed {
		nodeIDs := make([]int, len(pe.Nodes))
		for i, name := range pe.Nodes {
			if isGround(name) {
				nodeIDs[i] = 0
				continue
			}
			nodeIDs[i] = c.NodeIDs[name]
		}

		el, err := newElement(pe, nodeIDs)
		if err != nil {
			return nil, fmt.Errorf("building element %s: %w", pe.Name, err)
		}
		if br, ok := c.BranchIDs[pe.Name]; ok {
			el.SetBranchIndex(br)
		}
		c.Elements = append(c.Elements, el)
	}

	return c, nil
}

func newElement(pe netlist.Element, nodeIDs []int) (element.Element, error) {
	switch pe.Type {
	case element.KindResistor:
		return element.NewResistor(pe.Name, nodeIDs, pe.Value), nil
	case element.KindCapacitor:
		return element.NewCapacitor(pe.Name, nodeIDs, pe.Value), nil
	case element.KindInductor:
		return element.NewInductor(pe.Name, nodeIDs, pe.Value), nil
	case element.KindVoltageSource:
		return element.NewVoltageSource(pe.Name, nodeIDs, pe.Value, pe.ACMag, pe.ACPhase), nil
	case element.KindCurrentSource:
		return element.NewCurrentSource(pe.Name, nodeIDs, pe.Value, pe.ACMag, pe.ACPhase), nil
	default:
		return nil, fmt.Errorf("unsupported element type %q", pe.Type)
	}
}

// Dim is the total MNA system dimension D = N + M.
func (c *Circuit) Dim() int { return c.numNodes + len(c.BranchIDs) }

// NumNodes is N, the number of non-ground nodes.
func (c *Circuit) NumNodes() int { return c.numNodes }

// NodeIndex resolves a node name to its matrix row (-1 for ground or an
// unknown name).
func (c *Circuit) NodeIndex(name string) int {
	if isGround(name) {
		return -1
	}
	id, ok := c.NodeIDs[name]
	if !ok {
		return -1
	}
	return id - 1
}

// FindVoltageSource locates a declared voltage source by name, for the
// DC sweep driver.
func (c *Circuit) FindVoltageSource(name string) (*element.VoltageSource, bool) {
	for _, e := range c.Elements {
		if e.Name() == name {
			v, ok := e.(*element.VoltageSource)
			return v, ok
		}
	}
	return nil, false
}

// FindCurrentSource locates a declared current source by name, for the
// DC sweep driver.
func (c *Circuit) FindCurrentSource(name string) (*element.CurrentSource, bool) {
	for _, e := range c.Elements {
		if e.Name() == name {
			i, ok := e.(*element.CurrentSource)
			return i, ok
		}
	}
	return nil, false
}

// Stamp assembles every element into m under the given analysis status.
func (c *Circuit) Stamp(m matrix.Accumulator, st *element.Status) error {
	for _, e := range c.Elements {
		if err := e.Stamp(m, st); err != nil {
			return fmt.Errorf("stamping %s: %w", e.Name(), err)
		}
	}
	return nil
}

// NewRealSystem allocates the real (DC) system backend for this
// circuit, dense or sparse per the SPARSE option.
func (c *Circuit) NewRealSystem(sparse bool) matrix.RealMatrix {
	if sparse {
		return matrix.NewSparseReal(c.Dim())
	}
	return matrix.NewDenseReal(c.Dim())
}

// NewComplexSystem allocates the complex (AC) system backend for this
// circuit, dense or sparse per the SPARSE option.
func (c *Circuit) NewComplexSystem(sparse bool) matrix.ComplexMatrix {
	if sparse {
		return matrix.NewSparseComplex(c.Dim())
	}
	return matrix.NewDenseComplex(c.Dim())
}
