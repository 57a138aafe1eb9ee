// Package output projects SCF results down to the public report schema and
// serializes them. The schema is deliberately narrow: consumers get the
// energy, the convergence flag, the iteration count and the method name,
// and nothing else, regardless of what the calculation recorded. The field
// names keep the tool's historical output contract.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/juanalytics/scf-lite/internal/filelock"
	"github.com/juanalytics/scf-lite/internal/scf"
)

// Format selects the shape returned to library callers. The serialized file
// content is JSON either way.
type Format string

const (
	// FormatDict returns the report as a native map.
	FormatDict Format = "dict"
	// FormatJSON returns the report as a pretty-printed JSON string.
	FormatJSON Format = "json"
)

// Valid reports whether f is a known output format.
func (f Format) Valid() bool {
	return f == FormatDict || f == FormatJSON
}

// Report is the public result schema.
type Report struct {
	Energy     float64 `json:"energia"`
	Converged  bool    `json:"convergio"`
	Iterations int     `json:"iteraciones"`
	Method     string  `json:"metodo,omitempty"`
}

// New projects a calculation result onto the public schema. Echoed inputs
// (charge, spin, basis, atom and electron counts) and the elapsed time are
// dropped here and do not reach the user-facing report.
func New(res *scf.Result) Report {
	return Report{
		Energy:     res.Energy,
		Converged:  res.Converged,
		Iterations: res.Iterations,
		Method:     string(res.Method),
	}
}

// Map returns the report as a native mapping, the "dict" output mode.
// The method key is present only when a method was recorded.
func (r Report) Map() map[string]interface{} {
	m := map[string]interface{}{
		"energia":     r.Energy,
		"convergio":   r.Converged,
		"iteraciones": r.Iterations,
	}
	if r.Method != "" {
		m["metodo"] = r.Method
	}
	return m
}

// JSON serializes the report with 2-space indentation. Non-ASCII characters
// are emitted literally, not escaped.
func (r Report) JSON() (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", fmt.Errorf("failed to serialize report: %w", err)
	}
	// Encode appends a newline; the returned string should not carry it.
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// WriteFile serializes the report and writes it to path, overwriting any
// existing file. The write is atomic and guarded by a sidecar lock so
// concurrent runs sharing an output path cannot interleave.
func (r Report) WriteFile(path string) error {
	s, err := r.JSON()
	if err != nil {
		return err
	}
	if err := filelock.LockAndWrite(path, []byte(s)); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
