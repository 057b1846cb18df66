// Command spicetran runs a transient circuit simulation from a netlist
// file and writes the resulting trajectory to a results file.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/lassenlab/spicetran/pkg/circuit"
	"github.com/lassenlab/spicetran/pkg/device"
	"github.com/lassenlab/spicetran/pkg/netlist"
	"github.com/lassenlab/spicetran/pkg/result"
	"github.com/lassenlab/spicetran/pkg/util"
)

func main() {
	flag.Parse()
	if flag.NArg() != 2 {
		log.Fatal("Usage: spicetran <netlist_in> <results_out>")
	}

	if err := run(flag.Arg(0), flag.Arg(1)); err != nil {
		log.Fatal(err)
	}
}

func run(netlistPath, resultsPath string) error {
	raw, err := os.ReadFile(netlistPath)
	if err != nil {
		return fmt.Errorf("%w: %v", netlist.ErrIO, err)
	}

	nl, err := netlist.Parse(string(raw))
	if err != nil {
		return err
	}

	log.Printf("loaded %d components, stepper %s", len(nl.Components), nl.Stepper.String())
	logSummary(nl.Components)

	ckt := circuit.FromNetlist(nl)

	tr, err := ckt.Run()
	if err != nil {
		return err
	}

	if err := os.WriteFile(resultsPath, []byte(result.Export(tr)), 0644); err != nil {
		return fmt.Errorf("%w: %v", result.ErrIO, err)
	}

	log.Printf("wrote %d samples to %s", len(tr.Samples), resultsPath)
	return nil
}

// logSummary prints one line per reactive/resistive component in SI-prefixed
// form, the way a verbose netlist load report would.
func logSummary(components []device.Device) {
	for _, c := range components {
		switch v := c.(type) {
		case *device.Resistor:
			log.Printf("  %s: %s", v.GetName(), util.FormatValueFactor(v.Value, "Ohm"))
		case *device.Capacitor:
			log.Printf("  %s: %s", v.GetName(), util.FormatValueFactor(v.Value, "F"))
		case *device.Inductor:
			log.Printf("  %s: %s", v.GetName(), util.FormatValueFactor(v.Value, "H"))
		}
	}
}
