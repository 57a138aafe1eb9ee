package scan

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// HartreeToKcal converts Hartree to kcal/mol for the relative-energy column.
const HartreeToKcal = 627.509

// WriteReport prints the tabulated scan curve to w: one row per sample in
// generation order, energies in Hartree, relative energies in kcal/mol, and
// the minimum row marked. A successful Morse fit is echoed after the table.
func WriteReport(w io.Writer, curve *Curve) {
	min := curve.Min()

	fmt.Fprintf(w, "Bond scan %s (basis %s)\n", curve.Label, curve.Basis)
	fmt.Fprintf(w, "R (Å)      E (Hartree)     ΔE (kcal/mol)   note\n")
	for n, s := range curve.Samples {
		mark := ""
		if n == curve.MinIndex {
			mark = color.New(color.FgGreen).Sprint("<-- minimum")
		}
		deltaE := (s.Energy - min.Energy) * HartreeToKcal
		fmt.Fprintf(w, "%7.3f   % .8f   %10.3f   %s\n", s.Distance, s.Energy, deltaE, mark)
	}

	if curve.Fit != nil {
		fmt.Fprintf(w, "\nMorse fit (approx.):\n")
		fmt.Fprintf(w, "E(R) = E0 + De (1 - exp(-a (R-Re)))^2\n")
		fmt.Fprintf(w, "De  = %.6f Ha\n", curve.Fit.De)
		fmt.Fprintf(w, "Re  = %.6f Å\n", curve.Fit.Re)
		fmt.Fprintf(w, "a   = %.6f Å^-1\n", curve.Fit.A)
		fmt.Fprintf(w, "E0  = %.6f Ha\n", curve.Fit.E0)
	}
}
