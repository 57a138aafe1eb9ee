// Package scf orchestrates single-point SCF calculations. The numerical
// work is delegated to an external solver backend; this package selects the
// method, times the solve, and normalizes the backend's report into a plain
// result record.
package scf

import (
	"context"
	"time"

	"github.com/juanalytics/scf-lite/internal/molecule"
)

// Method identifies the SCF variant used for a solve.
type Method string

const (
	// RHF is restricted closed-shell Hartree-Fock, used when spin == 0.
	RHF Method = "RHF"
	// UHF is unrestricted open-shell Hartree-Fock, used when spin != 0.
	UHF Method = "UHF"
)

// MethodFor returns the SCF method appropriate for a spin value.
func MethodFor(spin int) Method {
	if spin == 0 {
		return RHF
	}
	return UHF
}

// Job is the solver-facing description of one calculation: the geometry as
// input-deck atom lines plus the physical parameters.
type Job struct {
	AtomLines []string
	Basis     string
	Charge    int
	Spin      int
	Method    Method
}

// Report is the raw solver output before normalization. Iterations may be
// negative when the backend reports no usable counter.
type Report struct {
	Energy     float64
	Converged  bool
	Iterations int
}

// Solver runs one SCF calculation. Implementations block until the solve
// finishes; there is no timeout and a pathological input may run forever.
// Non-convergence is reported through Report.Converged, not through the
// error return.
type Solver interface {
	Solve(ctx context.Context, job Job) (Report, error)
}

// Result is the normalized record of one SCF solve. It echoes the input
// parameters alongside the solver outputs; the public output layer narrows
// it down further.
type Result struct {
	Energy         float64
	Converged      bool
	Iterations     int
	Method         Method
	Charge         int
	Spin           int
	Basis          string
	AtomCount      int
	AlphaElectrons int
	BetaElectrons  int
	ElapsedSeconds float64
}

// Calculate builds a solver job from a validated spec, selects RHF or UHF
// from the spin, and runs the solve. The elapsed time covers the solver call
// only, not the job construction. Solver failures come back as a
// *ComputationError.
func Calculate(ctx context.Context, solver Solver, spec *molecule.Spec) (*Result, error) {
	job := Job{
		AtomLines: spec.AtomLines(),
		Basis:     spec.Basis,
		Charge:    spec.Charge,
		Spin:      spec.Spin,
		Method:    MethodFor(spec.Spin),
	}

	start := time.Now()
	report, err := solver.Solve(ctx, job)
	elapsed := time.Since(start)
	if err != nil {
		return nil, &ComputationError{Message: "SCF solve failed", Err: err}
	}

	alpha, beta := spec.ElectronCounts()
	return &Result{
		Energy:         report.Energy,
		Converged:      report.Converged,
		Iterations:     report.Iterations,
		Method:         job.Method,
		Charge:         spec.Charge,
		Spin:           spec.Spin,
		Basis:          spec.Basis,
		AtomCount:      spec.AtomCount(),
		AlphaElectrons: alpha,
		BetaElectrons:  beta,
		ElapsedSeconds: elapsed.Seconds(),
	}, nil
}
