// Package netlist implements a line-oriented SPICE-subset parser: the
// five element kinds of the data model plus .OPTIONS/.DC/.AC/.PLOT
// directives. It exists to drive the core assembler/solver end-to-end,
// not as the subject of this module.
package netlist

import (
	"bufio"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dvtyurin/mnaspice/internal/consts"
	"github.com/dvtyurin/mnaspice/pkg/element"
)

// Element is one parsed netlist line, node names not yet resolved to ids.
type Element struct {
	Type    element.Kind
	Name    string
	Nodes   []string // [n+, n-]
	Value   float64  // ohms / farads / henries / DC volts / DC amps
	ACMag   float64
	ACPhase float64
}

// Options holds the .OPTIONS line flags the solver package consumes.
type Options struct {
	SPD    bool
	Iter   bool
	Sparse bool
	ITol   float64
}

// DCSweepSpec is a parsed .DC directive.
type DCSweepSpec struct {
	Source            string
	Start, Stop, Step float64
	PlotNodes         []string
}

// ACSweepSpec is a parsed .AC directive.
type ACSweepSpec struct {
	Sweep         string // LIN or LOG
	Points        int
	FStart, FStop float64
	PlotNodes     []string
}

// Netlist is the fully parsed input: an ElementList plus analysis
// directives.
type Netlist struct {
	Title     string
	Elements  []Element
	Options   Options
	DC        *DCSweepSpec
	AC        *ACSweepSpec
	PlotNodes []string
}

var unitMap = map[string]float64{
	"T":   1e12,
	"G":   1e9,
	"meg": 1e6,
	"K":   1e3,
	"k":   1e3,
	"m":   1e-3,
	"u":   1e-6,
	"n":   1e-9,
	"p":   1e-12,
	"f":   1e-15,
}

var valueRe = regexp.MustCompile(`^([-+]?\d*\.?\d+)(meg|[TGKkmunpf])?$`)

// ParseValue parses a SPICE-style numeric literal with an optional unit
// suffix (k, meg, u, n, p, ...).
func ParseValue(val string) (float64, error) {
	matches := valueRe.FindStringSubmatch(strings.TrimSpace(val))
	if matches == nil {
		return 0, fmt.Errorf("invalid value format: %q", val)
	}
	num, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return 0, err
	}
	if matches[2] != "" {
		num *= unitMap[matches[2]]
	}
	return num, nil
}

// Parse reads a netlist from input. The first line, blank or not, is
// the title; lines starting with '*' are comments; lines starting with '.'
// are directives; everything else is an element line.
func Parse(input string) (*Netlist, error) {
	scanner := bufio.NewScanner(strings.NewReader(input))
	n := &Netlist{Options: Options{ITol: consts.DefaultITol}}

	if scanner.Scan() {
		n.Title = strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "*"))
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "*") {
			continue
		}
		if strings.HasPrefix(line, ".") {
			if err := parseDirective(n, line); err != nil {
				return nil, err
			}
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		el, err := parseElement(fields)
		if err != nil {
			return nil, err
		}
		n.Elements = append(n.Elements, el)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading netlist: %w", err)
	}

	if n.DC != nil {
		n.DC.PlotNodes = n.PlotNodes
	}
	if n.AC != nil {
		n.AC.PlotNodes = n.PlotNodes
	}

	return n, nil
}

func parseElement(fields []string) (Element, error) {
	if len(fields) < 4 {
		return Element{}, fmt.Errorf("invalid element line: %v", fields)
	}
	name := fields[0]
	kind := element.Kind(strings.ToUpper(name[:1]))
	switch kind {
	case element.KindResistor, element.KindCapacitor, element.KindInductor,
		element.KindVoltageSource, element.KindCurrentSource:
	default:
		return Element{}, fmt.Errorf("unsupported element type %q in %s", kind, name)
	}

	e := Element{Type: kind, Name: name, Nodes: []string{fields[1], fields[2]}}
	rest := fields[3:]
	idx := 0

	if idx < len(rest) && !strings.EqualFold(rest[idx], "AC") {
		if strings.EqualFold(rest[idx], "DC") {
			idx++
		}
		if idx >= len(rest) {
			return Element{}, fmt.Errorf("%s: missing value", name)
		}
		v, err := ParseValue(rest[idx])
		if err != nil {
			return Element{}, fmt.Errorf("%s: %w", name, err)
		}
		e.Value = v
		idx++
	}

	if idx < len(rest) && strings.EqualFold(rest[idx], "AC") {
		idx++
		if idx >= len(rest) {
			return Element{}, fmt.Errorf("%s: missing AC magnitude", name)
		}
		mag, err := ParseValue(rest[idx])
		if err != nil {
			return Element{}, fmt.Errorf("%s: invalid AC magnitude: %w", name, err)
		}
		e.ACMag = mag
		idx++

		if idx < len(rest) {
			phase, err := strconv.ParseFloat(rest[idx], 64)
			if err != nil {
				return Element{}, fmt.Errorf("%s: invalid AC phase: %w", name, err)
			}
			e.ACPhase = phase
		}
	}

	return e, nil
}

func parseDirective(n *Netlist, line string) error {
	fields := strings.Fields(line)
	switch strings.ToUpper(fields[0]) {
	case ".OPTIONS":
		n.Options = parseOptions(fields[1:])
	case ".DC":
		spec, err := parseDCDirective(fields[1:])
		if err != nil {
			return err
		}
		n.DC = spec
	case ".AC":
		spec, err := parseACDirective(fields[1:])
		if err != nil {
			return err
		}
		n.AC = spec
	case ".PLOT", ".PRINT":
		for _, f := range fields[1:] {
			if name, ok := parsePlotNode(f); ok {
				n.PlotNodes = append(n.PlotNodes, name)
			}
		}
	default:
		return fmt.Errorf("unsupported directive %q", fields[0])
	}
	return nil
}

func parseOptions(fields []string) Options {
	o := Options{ITol: consts.DefaultITol}
	for _, f := range fields {
		switch {
		case strings.EqualFold(f, "SPD"):
			o.SPD = true
		case strings.EqualFold(f, "ITER"):
			o.Iter = true
		case strings.EqualFold(f, "SPARSE"):
			o.Sparse = true
		case strings.HasPrefix(strings.ToUpper(f), "ITOL="):
			if v, err := strconv.ParseFloat(f[len("ITOL="):], 64); err == nil {
				o.ITol = v
			}
		}
	}
	return o
}

func parseDCDirective(fields []string) (*DCSweepSpec, error) {
	if len(fields) < 4 {
		return nil, fmt.Errorf(".DC: need source, start, stop, step")
	}
	start, err := ParseValue(fields[1])
	if err != nil {
		return nil, fmt.Errorf(".DC: invalid start: %w", err)
	}
	stop, err := ParseValue(fields[2])
	if err != nil {
		return nil, fmt.Errorf(".DC: invalid stop: %w", err)
	}
	step, err := ParseValue(fields[3])
	if err != nil {
		return nil, fmt.Errorf(".DC: invalid step: %w", err)
	}
	if step == 0 {
		return nil, fmt.Errorf(".DC: step must be nonzero")
	}
	return &DCSweepSpec{Source: fields[0], Start: start, Stop: stop, Step: step}, nil
}

func parseACDirective(fields []string) (*ACSweepSpec, error) {
	if len(fields) < 4 {
		return nil, fmt.Errorf(".AC: need sweep type, points, fstart, fstop")
	}
	sweep := strings.ToUpper(fields[0])
	if sweep != "LIN" && sweep != "LOG" {
		return nil, fmt.Errorf(".AC: unsupported sweep type %q, want LIN or LOG", fields[0])
	}
	points, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, fmt.Errorf(".AC: invalid point count: %w", err)
	}
	fstart, err := ParseValue(fields[2])
	if err != nil {
		return nil, fmt.Errorf(".AC: invalid start frequency: %w", err)
	}
	fstop, err := ParseValue(fields[3])
	if err != nil {
		return nil, fmt.Errorf(".AC: invalid stop frequency: %w", err)
	}
	return &ACSweepSpec{Sweep: sweep, Points: points, FStart: fstart, FStop: fstop}, nil
}

func parsePlotNode(tok string) (string, bool) {
	upper := strings.ToUpper(tok)
	if !strings.HasPrefix(upper, "V(") || !strings.HasSuffix(tok, ")") {
		return "", false
	}
	return tok[2 : len(tok)-1], true
}
