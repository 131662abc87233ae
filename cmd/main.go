package main // import "mnaspice"

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/dvtyurin/mnaspice/pkg/analysis"
	"github.com/dvtyurin/mnaspice/pkg/circuit"
	"github.com/dvtyurin/mnaspice/pkg/netlist"
	"github.com/dvtyurin/mnaspice/pkg/output"
	"github.com/dvtyurin/mnaspice/pkg/solver"
	"github.com/dvtyurin/mnaspice/pkg/util"
)

var outDir = flag.String("out", ".", "directory for result files")

func printResults(results map[string][]float64) {
	fmt.Println("\nAnalysis Results:")
	fmt.Println("================")

	// AC
	if freqs, isAC := results["FREQ"]; isAC {
		fmt.Printf("\nAC Analysis Results (%d frequency points):\n", len(freqs))
		fmt.Println("Frequency      Node Voltages (Magnitude/Phase)")
		fmt.Println("-----------------------------------------------------------------------------")

		var voltageNames []string
		for name := range results {
			if strings.HasSuffix(name, "_MAG") {
				voltageNames = append(voltageNames, strings.TrimSuffix(name, "_MAG"))
			}
		}
		sort.Strings(voltageNames)

		for i, freq := range freqs {
			fmt.Printf("%-13s", util.FormatFrequency(freq))
			for _, name := range voltageNames {
				mag := results[name+"_MAG"]
				phase := results[name+"_PHASE"]
				fmt.Printf("%s=%s<%sdeg  ", name, util.FormatMagnitude(mag[i]), util.FormatPhase(phase[i]))
			}
			fmt.Println()
		}
		return
	}

	// DC sweep
	if sweep, isDC := results["SWEEP"]; isDC {
		fmt.Printf("\nDC Sweep Analysis Results (%d points):\n", len(sweep))
		fmt.Println("Sweep Value    Node Voltages")
		fmt.Println("------------------------------------------------")

		var voltageNames []string
		for name := range results {
			if strings.HasPrefix(name, "V(") {
				voltageNames = append(voltageNames, name)
			}
		}
		sort.Strings(voltageNames)

		for i := range sweep {
			fmt.Printf("%-12s  ", util.FormatValueFactor(sweep[i], ""))
			for _, name := range voltageNames {
				fmt.Printf("%s=%s  ", name, util.FormatValueFactor(results[name][i], "V"))
			}
			fmt.Println()
		}
		return
	}

	// Operating point
	fmt.Println("\nNode Voltages:")
	for _, name := range sortedKeys(results) {
		if strings.HasPrefix(name, "V(") {
			fmt.Printf("%s = %s\n", name, util.FormatValueFactor(results[name][0], "V"))
		}
	}
	fmt.Println("\nBranch Currents:")
	for _, name := range sortedKeys(results) {
		if strings.HasPrefix(name, "I(") {
			fmt.Printf("%s = %s\n", name, util.FormatValueFactor(results[name][0], "A"))
		}
	}
}

func sortedKeys(m map[string][]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func run(netlistPath string) error {
	content, err := os.ReadFile(netlistPath)
	if err != nil {
		return fmt.Errorf("reading netlist file: %w", err)
	}

	parsed, err := netlist.Parse(string(content))
	if err != nil {
		return fmt.Errorf("parsing netlist: %w", err)
	}

	ckt, err := circuit.Build(parsed.Title, parsed.Elements)
	if err != nil {
		return fmt.Errorf("building circuit: %w", err)
	}

	opts := solver.Options{
		SPD:    parsed.Options.SPD,
		Iter:   parsed.Options.Iter,
		Sparse: parsed.Options.Sparse,
		ITol:   parsed.Options.ITol,
	}
	fmt.Printf("Circuit: %s (%d nodes, dimension %d, solver %s)\n",
		ckt.Title, ckt.NumNodes(), ckt.Dim(), solver.SelectMethod(opts))

	op := analysis.NewOP(opts)
	if err := op.Setup(ckt); err != nil {
		return fmt.Errorf("operating point setup: %w", err)
	}
	if err := op.Execute(); err != nil {
		return fmt.Errorf("operating point: %w", err)
	}
	printResults(op.GetResults())
	if _, err := output.WriteOperatingPoint(*outDir, op.GetResults()); err != nil {
		return err
	}

	if parsed.DC != nil {
		dc := analysis.NewDCSweep(parsed.DC, opts)
		if err := dc.Setup(ckt); err != nil {
			return fmt.Errorf("dc sweep setup: %w", err)
		}
		if err := dc.Execute(); err != nil {
			return fmt.Errorf("dc sweep: %w", err)
		}
		printResults(dc.GetResults())
		if _, err := output.WriteDCSweep(*outDir, *parsed.DC, dc.GetResults()); err != nil {
			return err
		}
	}

	if parsed.AC != nil {
		ac := analysis.NewAC(parsed.AC, opts)
		if err := ac.Setup(ckt); err != nil {
			return fmt.Errorf("ac sweep setup: %w", err)
		}
		if err := ac.Execute(); err != nil {
			return fmt.Errorf("ac sweep: %w", err)
		}
		printResults(ac.GetResults())
		if _, err := output.WriteACSweep(*outDir, *parsed.AC, ac.GetResults()); err != nil {
			return err
		}
	}

	return nil
}

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatal("Usage: mnaspice [-out dir] <netlist_file>")
	}

	if err := run(flag.Arg(0)); err != nil {
		log.Fatalf("Error: %v", err)
	}
}
