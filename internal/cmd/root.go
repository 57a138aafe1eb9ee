// Package cmd wires the CLI surface: flag parsing, input-mode resolution,
// and the mapping of failures onto stderr messages with exit code 1.
package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates the scflite root command. The whole tool is a
// single command: one invocation performs one calculation (or one scan).
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scflite",
		Short: "Single-point Hartree-Fock SCF calculations via PySCF",
		Long: `scflite runs single-point Hartree-Fock SCF calculations, delegating the
numerical work to PySCF through a python subprocess.

A molecule is given either as a file (-f molecule.json or -f molecule.xyz)
or directly on the command line (-s for symbols, -c for a flat coordinate
list). The input is validated, solved with RHF (spin 0) or UHF (spin > 0),
and the energy, convergence flag and iteration count are reported as JSON.

Scan modes sweep one bond length across 30 distances, print the energy
table, fit a Morse curve when possible, and render a plot image.

Examples:
  # Water from a JSON file
  scflite -f examples/water.json

  # H2 given inline, written to a result file
  scflite -s H,H -c 0,0,0,0.74,0,0 -o result.json

  # Triplet O2 with a bigger basis
  scflite -s O,O -c 0,0,0,1.21,0,0 --spin 2 --basis 6-31g

  # Scan the bond between atoms 1 and 2 of a loaded geometry
  scflite -f examples/water.json --scan-bond 1,2

  # Fixed convenience scans (no molecule input needed)
  scflite --scan-h2
  scflite --scan-oh`,
		Version:      Version,
		RunE:         runRoot,
		SilenceUsage: true,
	}

	flags := cmd.Flags()
	flags.StringP("file", "f", "", "molecule file (.json or .xyz)")
	flags.StringSliceP("symbols", "s", nil, "element symbols (e.g. O,H,H)")
	flags.Float64SliceP("coordinates", "c", nil, "flat coordinate list, 3 values per atom")
	flags.Int("charge", 0, "total charge (direct input mode only)")
	flags.Int("spin", 0, "twice the number of unpaired electrons (direct input mode only)")
	flags.String("basis", "sto-3g", "basis set (direct input mode only)")
	flags.Bool("scan-h2", false, "scan the H-H distance of H2 and plot the curve")
	flags.Bool("scan-oh", false, "scan one O-H distance of water and plot the curve")
	flags.IntSlice("scan-bond", nil, "scan the bond between atoms I,J (1-based)")
	flags.StringP("output", "o", "", "write the JSON result to this file")
	flags.String("format", "json", "output shape: dict or json")
	flags.String("config", "", "path to config file (default: .scflite/config.yaml)")
	flags.Bool("verbose", false, "show per-sample scan progress")

	return cmd
}
