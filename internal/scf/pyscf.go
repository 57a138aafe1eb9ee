package scf

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// driverScript is the python program that performs the actual solve. It
// reads a job description from the file named by its first argument and
// prints a JSON report on stdout.
//
//go:embed driver.py
var driverScript []byte

// PySCF runs SCF calculations by launching a python driver around the PySCF
// library. Each solve gets its own scratch directory holding the driver
// script and the job file; the directory is removed when the solve ends.
type PySCF struct {
	// PythonPath is the python interpreter to launch. Defaults to "python3".
	PythonPath string

	// ScratchDir is the parent directory for per-job scratch directories.
	// Defaults to the system temp directory.
	ScratchDir string
}

// NewPySCF returns a PySCF backend with default settings.
func NewPySCF() *PySCF {
	return &PySCF{
		PythonPath: "python3",
		ScratchDir: os.TempDir(),
	}
}

// pyscfJob is the wire format written for the driver.
type pyscfJob struct {
	Atom   string `json:"atom"`
	Basis  string `json:"basis"`
	Charge int    `json:"charge"`
	Spin   int    `json:"spin"`
	Method string `json:"method"`
}

// pyscfReport is the wire format the driver prints. Iterations uses a
// pointer so a missing counter is distinguishable from zero; SCFCycles is
// the summary-level fallback reported by older PySCF versions.
type pyscfReport struct {
	Energy     float64 `json:"energy"`
	Converged  bool    `json:"converged"`
	Iterations *int    `json:"iterations"`
	SCFCycles  *int    `json:"scf_cycles"`
	Error      string  `json:"error"`
}

// Solve implements the Solver interface by running the embedded driver as a
// subprocess. The call blocks until the driver exits; cancellation through
// ctx kills the subprocess.
func (p *PySCF) Solve(ctx context.Context, job Job) (Report, error) {
	python := p.PythonPath
	if python == "" {
		python = "python3"
	}
	scratch := p.ScratchDir
	if scratch == "" {
		scratch = os.TempDir()
	}

	jobDir := filepath.Join(scratch, "scflite-"+uuid.NewString())
	if err := os.MkdirAll(jobDir, 0755); err != nil {
		return Report{}, fmt.Errorf("failed to create scratch directory: %w", err)
	}
	defer os.RemoveAll(jobDir)

	driverPath := filepath.Join(jobDir, "driver.py")
	if err := os.WriteFile(driverPath, driverScript, 0644); err != nil {
		return Report{}, fmt.Errorf("failed to write solver driver: %w", err)
	}

	jobPath := filepath.Join(jobDir, "job.json")
	payload, err := json.Marshal(pyscfJob{
		Atom:   strings.Join(job.AtomLines, "\n"),
		Basis:  job.Basis,
		Charge: job.Charge,
		Spin:   job.Spin,
		Method: string(job.Method),
	})
	if err != nil {
		return Report{}, fmt.Errorf("failed to encode solver job: %w", err)
	}
	if err := os.WriteFile(jobPath, payload, 0644); err != nil {
		return Report{}, fmt.Errorf("failed to write solver job: %w", err)
	}

	cmd := exec.CommandContext(ctx, python, driverPath, jobPath)
	cmd.Dir = jobDir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	runErr := cmd.Run()

	report, parseErr := parseDriverOutput(stdout.Bytes())
	if parseErr != nil {
		if runErr != nil {
			return Report{}, fmt.Errorf("solver backend failed: %v: %s", runErr, firstLine(stderr.String()))
		}
		return Report{}, parseErr
	}
	if report.Error != "" {
		return Report{}, fmt.Errorf("solver backend: %s", report.Error)
	}
	if runErr != nil {
		return Report{}, fmt.Errorf("solver backend exited abnormally: %v: %s", runErr, firstLine(stderr.String()))
	}

	return normalizeReport(report), nil
}

// parseDriverOutput decodes the last JSON object printed by the driver.
// PySCF writes its own progress chatter to stdout before the report, so the
// report is looked for on the final non-blank line.
func parseDriverOutput(output []byte) (pyscfReport, error) {
	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" || !strings.HasPrefix(line, "{") {
			continue
		}
		var report pyscfReport
		if err := json.Unmarshal([]byte(line), &report); err != nil {
			return pyscfReport{}, fmt.Errorf("unparseable solver report %q: %w", line, err)
		}
		return report, nil
	}
	return pyscfReport{}, fmt.Errorf("solver produced no report")
}

// normalizeReport coerces the wire report into the fixed Report shape,
// falling back to the summary cycle count when the dedicated iteration
// counter is absent.
func normalizeReport(r pyscfReport) Report {
	iterations := 0
	switch {
	case r.Iterations != nil:
		iterations = *r.Iterations
	case r.SCFCycles != nil:
		iterations = *r.SCFCycles
	}
	return Report{
		Energy:     r.Energy,
		Converged:  r.Converged,
		Iterations: iterations,
	}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
