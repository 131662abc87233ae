package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dvtyurin/mnaspice/pkg/netlist"
)

func TestWriteOperatingPoint(t *testing.T) {
	dir := t.TempDir()
	results := map[string][]float64{
		"V(1)":  {10},
		"V(2)":  {5},
		"I(V1)": {-5e-3},
	}

	path, err := WriteOperatingPoint(dir, results)
	if err != nil {
		t.Fatalf("WriteOperatingPoint: %v", err)
	}
	if filepath.Base(path) != "dc_operating_point.txt" {
		t.Errorf("file name %q", filepath.Base(path))
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	// Header, separator, two node rows; branch currents are not node
	// voltages and stay out of the table.
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), content)
	}
	if !strings.HasPrefix(lines[0], "Node") || !strings.Contains(lines[0], "Voltage (V)") {
		t.Errorf("header %q", lines[0])
	}
	if !strings.HasPrefix(lines[2], "1") || !strings.Contains(lines[2], "10") {
		t.Errorf("row %q", lines[2])
	}
}

func TestWriteDCSweep(t *testing.T) {
	dir := t.TempDir()
	spec := netlist.DCSweepSpec{Source: "I1", Start: 0, Stop: 10, Step: 1}
	results := map[string][]float64{"SWEEP": make([]float64, 11), "V(1)": make([]float64, 11)}
	for k := 0; k < 11; k++ {
		results["SWEEP"][k] = float64(k)
		results["V(1)"][k] = float64(k) * 100
	}

	paths, err := WriteDCSweep(dir, spec, results)
	if err != nil {
		t.Fatalf("WriteDCSweep: %v", err)
	}
	if len(paths) != 1 {
		t.Fatalf("got %d files, want 1", len(paths))
	}
	if got := filepath.Base(paths[0]); got != "dc_sweep_analysis_V(1)_I1_0_10_1.txt" {
		t.Errorf("file name %q", got)
	}

	content, err := os.ReadFile(paths[0])
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	if len(lines) != 13 { // header + separator + 11 data rows
		t.Fatalf("got %d lines, want 13", len(lines))
	}
	if !strings.Contains(lines[12], "1000") {
		t.Errorf("last row %q, want V = 1000", lines[12])
	}
}

func TestWriteACSweep(t *testing.T) {
	dir := t.TempDir()
	spec := netlist.ACSweepSpec{Sweep: "LOG", Points: 3, FStart: 159.15, FStop: 15915}
	results := map[string][]float64{
		"FREQ":       {159.15, 1591.5, 15915},
		"V(2)_MAG":   {-3.01, -20.04, -40.00},
		"V(2)_PHASE": {-45, -84.3, -89.4},
	}

	paths, err := WriteACSweep(dir, spec, results)
	if err != nil {
		t.Fatalf("WriteACSweep: %v", err)
	}
	if len(paths) != 1 {
		t.Fatalf("got %d files, want 1", len(paths))
	}
	if got := filepath.Base(paths[0]); got != "ac_analysis_V(2)_159.15_15915_LOG.txt" {
		t.Errorf("file name %q", got)
	}

	content, err := os.ReadFile(paths[0])
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "Magnitude (dB)") {
		t.Error("log sweep header must report magnitude in dB")
	}
	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	if len(lines) != 5 { // header + separator + 3 data rows
		t.Fatalf("got %d lines, want 5", len(lines))
	}
}

func TestWriteACSweepLinearHeader(t *testing.T) {
	dir := t.TempDir()
	spec := netlist.ACSweepSpec{Sweep: "LIN", Points: 2, FStart: 1, FStop: 10}
	results := map[string][]float64{
		"FREQ":       {1, 10},
		"V(1)_MAG":   {0.9, 0.5},
		"V(1)_PHASE": {-10, -60},
	}

	paths, err := WriteACSweep(dir, spec, results)
	if err != nil {
		t.Fatalf("WriteACSweep: %v", err)
	}
	content, err := os.ReadFile(paths[0])
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "Magnitude (V)") {
		t.Error("linear sweep header must report magnitude in volts")
	}
}
