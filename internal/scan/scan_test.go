package scan

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juanalytics/scf-lite/internal/molecule"
	"github.com/juanalytics/scf-lite/internal/scf"
)

// morseSolver returns energies from an exact Morse well over the distance
// between the first two atoms of the job, so scans see a realistic curve
// without a real SCF backend.
type morseSolver struct {
	de, a, re, e0 float64
	calls         int
	failAt        int // 1-based call number to fail on; 0 disables
}

func (m *morseSolver) Solve(ctx context.Context, job scf.Job) (scf.Report, error) {
	m.calls++
	if m.failAt > 0 && m.calls == m.failAt {
		return scf.Report{}, errors.New("backend blew up")
	}
	r := jobDistance(job)
	d := 1 - math.Exp(-m.a*(r-m.re))
	return scf.Report{Energy: m.e0 + m.de*d*d, Converged: true, Iterations: 8}, nil
}

// jobDistance parses the first two atom lines back into coordinates.
func jobDistance(job scf.Job) float64 {
	var coords [2][3]float64
	for i := 0; i < 2; i++ {
		fields := strings.Fields(job.AtomLines[i])
		for k := 0; k < 3; k++ {
			coords[i][k], _ = strconv.ParseFloat(fields[k+1], 64)
		}
	}
	var sum float64
	for k := 0; k < 3; k++ {
		diff := coords[1][k] - coords[0][k]
		sum += diff * diff
	}
	return math.Sqrt(sum)
}

func newMorseSolver() *morseSolver {
	return &morseSolver{de: 0.17, a: 1.8, re: 0.95, e0: -1.12}
}

func waterSpec() *molecule.Spec {
	return &molecule.Spec{
		Name:    "water",
		Symbols: []string{"O", "H", "H"},
		Coordinates: [][]float64{
			{0, 0, 0},
			{0, -0.757, 0.587},
			{0, 0.757, 0.587},
		},
		Basis: "sto-3g",
	}
}

func TestBondRejectsOutOfRangeIndices(t *testing.T) {
	solver := newMorseSolver()
	for _, pair := range [][2]int{{-1, 1}, {0, 3}, {5, 0}} {
		_, err := Bond(context.Background(), solver, nil, waterSpec(), pair[0], pair[1])
		var berr *BondError
		require.ErrorAs(t, err, &berr, "indices %v", pair)
	}
	assert.Zero(t, solver.calls, "no solve may run for invalid indices")
}

func TestBondRejectsCoincidentAtoms(t *testing.T) {
	solver := newMorseSolver()

	_, err := Bond(context.Background(), solver, nil, waterSpec(), 1, 1)
	var berr *BondError
	require.ErrorAs(t, err, &berr)
	assert.Contains(t, berr.Error(), "same position")
	assert.Zero(t, solver.calls)
}

func TestBondSamplesSeventyToOneThirtyPercent(t *testing.T) {
	solver := newMorseSolver()
	spec := waterSpec()
	r0 := spec.Distance(0, 1)

	curve, err := Bond(context.Background(), solver, nil, spec, 0, 1)
	require.NoError(t, err)

	require.Len(t, curve.Samples, SampleCount)
	assert.InDelta(t, 0.7*r0, curve.Samples[0].Distance, 1e-12)
	assert.InDelta(t, 1.3*r0, curve.Samples[SampleCount-1].Distance, 1e-12)
	assert.Equal(t, SampleCount, solver.calls)
}

func TestBondSamplesStayInGenerationOrder(t *testing.T) {
	curve, err := Bond(context.Background(), newMorseSolver(), nil, waterSpec(), 0, 1)
	require.NoError(t, err)

	for n := 1; n < len(curve.Samples); n++ {
		assert.Greater(t, curve.Samples[n].Distance, curve.Samples[n-1].Distance)
	}
}

func TestBondKeepsOtherAtomsFixed(t *testing.T) {
	spec := waterSpec()
	before := spec.Clone()

	_, err := Bond(context.Background(), newMorseSolver(), nil, spec, 0, 1)
	require.NoError(t, err)

	// The scan works on clones; the validated input must stay untouched.
	assert.Equal(t, before.Coordinates, spec.Coordinates)
}

func TestBondAbortsWholeScanOnSolverFailure(t *testing.T) {
	solver := newMorseSolver()
	solver.failAt = 4

	_, err := Bond(context.Background(), solver, nil, waterSpec(), 0, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scan aborted")
	assert.Equal(t, 4, solver.calls, "no further solve may run after a failure")
}

func TestBondLocatesMinimum(t *testing.T) {
	solver := newMorseSolver()

	curve, err := Bond(context.Background(), solver, nil, waterSpec(), 0, 1)
	require.NoError(t, err)

	// The sampled minimum must be the grid point nearest the true well.
	min := curve.Min()
	for _, s := range curve.Samples {
		assert.GreaterOrEqual(t, s.Energy, min.Energy)
	}
	assert.InDelta(t, solver.re, min.Distance, 0.05)
}

// constantSolver yields a flat curve, so every sample ties for the minimum.
type constantSolver struct{}

func (constantSolver) Solve(ctx context.Context, job scf.Job) (scf.Report, error) {
	return scf.Report{Energy: -1.0, Converged: true}, nil
}

func TestMinIndexFirstOccurrenceOnTies(t *testing.T) {
	curve, err := Bond(context.Background(), constantSolver{}, nil, waterSpec(), 0, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, curve.MinIndex)
}

func TestBondFitsMorseCurve(t *testing.T) {
	solver := newMorseSolver()

	curve, err := Bond(context.Background(), solver, nil, waterSpec(), 0, 1)
	require.NoError(t, err)

	require.NotNil(t, curve.Fit, "exact Morse samples should fit")
	for _, s := range curve.Samples {
		assert.InDelta(t, s.Energy, curve.Fit.Eval(s.Distance), 1e-3)
	}
}

func TestH2ScanUsesFixedRange(t *testing.T) {
	curve, err := H2(context.Background(), newMorseSolver(), nil)
	require.NoError(t, err)

	require.Len(t, curve.Samples, SampleCount)
	assert.InDelta(t, 0.4, curve.Samples[0].Distance, 1e-12)
	assert.InDelta(t, 2.5, curve.Samples[SampleCount-1].Distance, 1e-12)
	assert.Equal(t, "H1-H2", curve.Label)
	assert.Equal(t, "sto-3g", curve.Basis)
}

func TestOHScanSweepsAroundEquilibrium(t *testing.T) {
	curve, err := OH(context.Background(), newMorseSolver(), nil)
	require.NoError(t, err)

	r0 := waterSpec().Distance(0, 1)
	require.Len(t, curve.Samples, SampleCount)
	assert.InDelta(t, 0.7*r0, curve.Samples[0].Distance, 1e-12)
	assert.InDelta(t, 1.3*r0, curve.Samples[SampleCount-1].Distance, 1e-12)
	assert.Equal(t, "O1-H2", curve.Label)
}
