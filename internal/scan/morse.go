package scan

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/optimize"
)

// MorseFit holds the four parameters of the Morse model
//
//	E(R) = E0 + De * (1 - exp(-a*(R-Re)))^2
//
// fitted to a scan curve.
type MorseFit struct {
	De float64 // well depth, Hartree
	A  float64 // width, 1/Angstrom
	Re float64 // equilibrium distance, Angstrom
	E0 float64 // energy offset, Hartree
}

// Eval evaluates the fitted model at distance r.
func (f *MorseFit) Eval(r float64) float64 {
	d := 1 - math.Exp(-f.A*(r-f.Re))
	return f.E0 + f.De*d*d
}

// FitMorse fits the Morse model to the samples by nonlinear least squares,
// minimizing the sum of squared residuals with Nelder-Mead. The start point
// follows the usual heuristics: the well depth from the spread between the
// minimum and the last sample, the equilibrium distance from the minimum,
// and the offset from the last sample; aSeed seeds the width.
//
// Fitting is best effort. Degenerate sample sets, optimizer failures and
// non-finite solutions all come back as errors for the caller to ignore.
func FitMorse(samples []Sample, aSeed float64) (*MorseFit, error) {
	if len(samples) < 4 {
		return nil, errors.New("not enough samples to fit four parameters")
	}

	last := samples[len(samples)-1]
	min := samples[minIndex(samples)]
	p0 := []float64{min.Energy - last.Energy, aSeed, min.Distance, last.Energy}

	problem := optimize.Problem{
		Func: func(p []float64) float64 {
			de, a, re, e0 := p[0], p[1], p[2], p[3]
			var sum float64
			for _, s := range samples {
				d := 1 - math.Exp(-a*(s.Distance-re))
				r := e0 + de*d*d - s.Energy
				sum += r * r
			}
			return sum
		},
	}

	result, err := optimize.Minimize(problem, p0, nil, &optimize.NelderMead{})
	if err != nil {
		return nil, err
	}
	if err := result.Status.Err(); err != nil {
		return nil, err
	}
	for _, v := range result.X {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errors.New("fit produced non-finite parameters")
		}
	}

	return &MorseFit{De: result.X[0], A: result.X[1], Re: result.X[2], E0: result.X[3]}, nil
}
