// Package scan sweeps one interatomic distance across a range of values,
// running an SCF solve at each step, and summarizes the resulting energy
// curve: tabulated samples, the minimum-energy point, and a best-effort
// Morse-potential fit.
package scan

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/juanalytics/scf-lite/internal/logger"
	"github.com/juanalytics/scf-lite/internal/molecule"
	"github.com/juanalytics/scf-lite/internal/scf"
)

// SampleCount is the fixed number of distances evaluated per scan.
const SampleCount = 30

// Sample pairs a scanned bond distance (Angstrom) with its SCF energy
// (Hartree).
type Sample struct {
	Distance float64
	Energy   float64
}

// Curve is the outcome of a scan: the samples in generation order, the
// first-occurrence minimum, and the Morse fit when one could be obtained.
type Curve struct {
	Label    string
	Basis    string
	Samples  []Sample
	MinIndex int
	Fit      *MorseFit
}

// Min returns the minimum-energy sample.
func (c *Curve) Min() Sample {
	return c.Samples[c.MinIndex]
}

// BondError reports a bond that cannot be scanned: indices out of range or
// a degenerate (zero-length) separation.
type BondError struct {
	I, J      int // 0-based atom indices
	AtomCount int
	Reason    string
}

// Error implements the error interface for BondError.
func (e *BondError) Error() string {
	return fmt.Sprintf("cannot scan bond %d-%d of %d atoms: %s", e.I+1, e.J+1, e.AtomCount, e.Reason)
}

// Bond scans the distance between atoms i and j (0-based) of a validated
// spec. Atom i stays fixed while atom j moves along the original bond
// direction through SampleCount distances spanning 70% to 130% of the
// current separation. Charge, spin and basis are carried unchanged into
// every solve. The geometry checks run before any solver call; a failed
// solve aborts the whole scan.
func Bond(ctx context.Context, solver scf.Solver, log *logger.ConsoleLogger, spec *molecule.Spec, i, j int) (*Curve, error) {
	natom := spec.AtomCount()
	if i < 0 || i >= natom || j < 0 || j >= natom {
		return nil, &BondError{I: i, J: j, AtomCount: natom, Reason: "atom index out of range"}
	}
	r0 := spec.Distance(i, j)
	if r0 == 0 {
		return nil, &BondError{I: i, J: j, AtomCount: natom, Reason: "atoms share the same position"}
	}

	label := fmt.Sprintf("%s%d-%s%d", spec.Symbols[i], i+1, spec.Symbols[j], j+1)
	distances := linspace(0.7*r0, 1.3*r0, SampleCount)
	return run(ctx, solver, log, spec, i, j, label, distances, 1.5)
}

// H2 runs the fixed hydrogen-molecule convenience scan: two H atoms at the
// STO-3G level, swept from 0.4 to 2.5 Angstrom.
func H2(ctx context.Context, solver scf.Solver, log *logger.ConsoleLogger) (*Curve, error) {
	spec := &molecule.Spec{
		Name:    "h2",
		Symbols: []string{"H", "H"},
		Coordinates: [][]float64{
			{0, 0, 0},
			{0.74, 0, 0},
		},
		Basis: molecule.DefaultBasis,
	}
	return run(ctx, solver, log, spec, 0, 1, "H1-H2", linspace(0.4, 2.5, SampleCount), 1.5)
}

// OH runs the fixed water convenience scan: one O-H bond of a rigid H2O
// geometry swept around its equilibrium length at the STO-3G level.
func OH(ctx context.Context, solver scf.Solver, log *logger.ConsoleLogger) (*Curve, error) {
	spec := &molecule.Spec{
		Name:    "water",
		Symbols: []string{"O", "H", "H"},
		Coordinates: [][]float64{
			{0, 0, 0},
			{0, -0.757, 0.587},
			{0, 0.757, 0.587},
		},
		Basis: molecule.DefaultBasis,
	}
	r0 := spec.Distance(0, 1)
	return run(ctx, solver, log, spec, 0, 1, "O1-H2", linspace(0.7*r0, 1.3*r0, SampleCount), 2.0)
}

// run executes the solves sequentially, in distance order, and assembles the
// curve. aSeed is the initial Morse width parameter for the fit.
func run(ctx context.Context, solver scf.Solver, log *logger.ConsoleLogger, spec *molecule.Spec, i, j int, label string, distances []float64, aSeed float64) (*Curve, error) {
	origin := spec.Coordinates[i]
	direction := make([]float64, 3)
	r0 := spec.Distance(i, j)
	for k := 0; k < 3; k++ {
		direction[k] = (spec.Coordinates[j][k] - origin[k]) / r0
	}

	curve := &Curve{Label: label, Basis: spec.Basis, Samples: make([]Sample, 0, len(distances))}
	for n, r := range distances {
		step := spec.Clone()
		for k := 0; k < 3; k++ {
			step.Coordinates[j][k] = origin[k] + direction[k]*r
		}

		res, err := scf.Calculate(ctx, solver, step)
		if err != nil {
			return nil, fmt.Errorf("scan aborted at R=%.3f: %w", r, err)
		}
		curve.Samples = append(curve.Samples, Sample{Distance: r, Energy: res.Energy})
		if log != nil {
			log.Debugf("scan %s sample %d/%d: R=%.3f E=%.8f converged=%v",
				label, n+1, len(distances), r, res.Energy, res.Converged)
		}
	}

	curve.MinIndex = minIndex(curve.Samples)

	// Best effort: a failed fit leaves curve.Fit nil and is never fatal.
	if fit, err := FitMorse(curve.Samples, aSeed); err == nil {
		curve.Fit = fit
	} else if log != nil {
		log.Debugf("scan %s: Morse fit skipped: %v", label, err)
	}

	return curve, nil
}

// minIndex returns the index of the lowest-energy sample, keeping the first
// occurrence on exact ties.
func minIndex(samples []Sample) int {
	idx := 0
	for n, s := range samples {
		if s.Energy < samples[idx].Energy {
			idx = n
		}
	}
	return idx
}

// linspace returns n evenly spaced values covering [lo, hi] inclusive.
func linspace(lo, hi float64, n int) []float64 {
	dst := make([]float64, n)
	floats.Span(dst, lo, hi)
	return dst
}
