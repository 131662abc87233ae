// Package output writes the per-analysis result tables: a single
// operating-point file, and one file per plotted node for DC and AC
// sweeps, using the simulator's long-standing filename conventions.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dvtyurin/mnaspice/pkg/netlist"
)

const opFileName = "dc_operating_point.txt"

// nodesFromResults recovers the plotted node names from a driver's
// result keys ("V(2)" or "V(2)_MAG"), sorted for stable output order.
func nodesFromResults(results map[string][]float64, suffix string) []string {
	var nodes []string
	for key := range results {
		if !strings.HasPrefix(key, "V(") || !strings.HasSuffix(key, ")"+suffix) {
			continue
		}
		nodes = append(nodes, key[2:len(key)-1-len(suffix)])
	}
	sort.Strings(nodes)
	return nodes
}

// WriteOperatingPoint writes the Node | Voltage table of a DC
// operating point and returns the created file's path.
func WriteOperatingPoint(dir string, results map[string][]float64) (string, error) {
	path := filepath.Join(dir, opFileName)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	fmt.Fprintf(f, "%-30s%-30s\n", "Node", "Voltage (V)")
	fmt.Fprintln(f, "-----------------------------------------")
	for _, node := range nodesFromResults(results, "") {
		vals := results[fmt.Sprintf("V(%s)", node)]
		if len(vals) == 0 {
			continue
		}
		fmt.Fprintf(f, "%-30s%-30.12g\n", node, vals[0])
	}
	return path, nil
}

// DCSweepFileName builds the per-node output filename for a DC sweep.
func DCSweepFileName(node string, spec netlist.DCSweepSpec) string {
	return fmt.Sprintf("dc_sweep_analysis_V(%s)_%s_%g_%g_%g.txt",
		node, spec.Source, spec.Start, spec.Stop, spec.Step)
}

// WriteDCSweep writes one SweepValue | Voltage file per plotted node
// and returns the created paths.
func WriteDCSweep(dir string, spec netlist.DCSweepSpec, results map[string][]float64) ([]string, error) {
	sweep := results["SWEEP"]
	var paths []string
	for _, node := range nodesFromResults(results, "") {
		path := filepath.Join(dir, DCSweepFileName(node, spec))
		f, err := os.Create(path)
		if err != nil {
			return paths, fmt.Errorf("creating %s: %w", path, err)
		}

		fmt.Fprintf(f, "%-30s%-30s\n", "Voltage Sweep (V)", "Voltage (V)")
		fmt.Fprintln(f, "-----------------------------------------")
		vals := results[fmt.Sprintf("V(%s)", node)]
		for i, sv := range sweep {
			if i >= len(vals) {
				break
			}
			fmt.Fprintf(f, "%-30.12g%-30.12g\n", sv, vals[i])
		}

		if err := f.Close(); err != nil {
			return paths, fmt.Errorf("closing %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// ACSweepFileName builds the per-node output filename for an AC sweep.
func ACSweepFileName(node string, spec netlist.ACSweepSpec) string {
	return fmt.Sprintf("ac_analysis_V(%s)_%g_%g_%s.txt",
		node, spec.FStart, spec.FStop, spec.Sweep)
}

// WriteACSweep writes one Frequency | Magnitude | Phase file per
// plotted node and returns the created paths. Logarithmic sweeps
// carry magnitudes in decibels, linear sweeps in volts.
func WriteACSweep(dir string, spec netlist.ACSweepSpec, results map[string][]float64) ([]string, error) {
	freqs := results["FREQ"]
	magnHeader := "Magnitude (V)"
	if spec.Sweep == "LOG" {
		magnHeader = "Magnitude (dB)"
	}

	var paths []string
	for _, node := range nodesFromResults(results, "_MAG") {
		path := filepath.Join(dir, ACSweepFileName(node, spec))
		f, err := os.Create(path)
		if err != nil {
			return paths, fmt.Errorf("creating %s: %w", path, err)
		}

		fmt.Fprintf(f, "%-30s%-30s%-30s\n", "Frequency (Hz)", magnHeader, "Phase (degrees)")
		fmt.Fprintln(f, "---------------------------------------------------------------------------")
		mags := results[fmt.Sprintf("V(%s)_MAG", node)]
		phases := results[fmt.Sprintf("V(%s)_PHASE", node)]
		for i, freq := range freqs {
			if i >= len(mags) || i >= len(phases) {
				break
			}
			fmt.Fprintf(f, "%-30.12g%-30.12g%-30.12g\n", freq, mags[i], phases[i])
		}

		if err := f.Close(); err != nil {
			return paths, fmt.Errorf("closing %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
