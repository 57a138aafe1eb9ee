package scan

import (
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCurve() *Curve {
	return &Curve{
		Label: "H1-H2",
		Basis: "sto-3g",
		Samples: []Sample{
			{Distance: 0.6, Energy: -1.05},
			{Distance: 0.7, Energy: -1.11},
			{Distance: 0.8, Energy: -1.08},
		},
		MinIndex: 1,
	}
}

func TestWriteReportTabulatesAllSamples(t *testing.T) {
	color.NoColor = true
	var sb strings.Builder

	WriteReport(&sb, testCurve())
	out := sb.String()

	assert.Contains(t, out, "Bond scan H1-H2 (basis sto-3g)")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	// header + title + one row per sample
	require.Len(t, lines, 2+3)
	assert.Contains(t, lines[3], "<-- minimum")
	assert.NotContains(t, lines[2], "minimum")
	assert.NotContains(t, lines[4], "minimum")
}

func TestWriteReportDeltaEIsRelativeToMinimum(t *testing.T) {
	color.NoColor = true
	var sb strings.Builder

	WriteReport(&sb, testCurve())

	// The minimum row has delta 0; the first row sits 0.06 Ha above it.
	assert.Contains(t, sb.String(), "0.000")
	assert.Contains(t, sb.String(), "37.651") // 0.06 * 627.509
}

func TestWriteReportIncludesFitWhenPresent(t *testing.T) {
	color.NoColor = true
	curve := testCurve()
	curve.Fit = &MorseFit{De: 0.17, A: 1.8, Re: 0.95, E0: -1.12}

	var sb strings.Builder
	WriteReport(&sb, curve)

	assert.Contains(t, sb.String(), "Morse fit")
	assert.Contains(t, sb.String(), "Re  = 0.950000")
}

func TestWriteReportOmitsFitWhenAbsent(t *testing.T) {
	color.NoColor = true
	var sb strings.Builder

	WriteReport(&sb, testCurve())
	assert.NotContains(t, sb.String(), "Morse fit")
}
