package molecule

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// FormatError reports a molecule file whose extension is outside the
// supported set.
type FormatError struct {
	Ext string
}

// Error implements the error interface for FormatError.
func (e *FormatError) Error() string {
	return fmt.Sprintf("unsupported molecule file format %q: use .json or .xyz", e.Ext)
}

// ParseError reports a molecule file that could be read but not understood:
// invalid syntax, missing required keys, or a malformed XYZ body.
type ParseError struct {
	Path string // file that failed to parse
	Msg  string // what was wrong with it
	Err  error  // underlying decoder error, if any
}

// Error implements the error interface for ParseError.
func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed molecule file %s: %s: %v", e.Path, e.Msg, e.Err)
	}
	return fmt.Sprintf("malformed molecule file %s: %s", e.Path, e.Msg)
}

// Unwrap returns the underlying decoder error for errors.Is/As support.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// LoadFile reads a molecule description from path, dispatching on the file
// extension. JSON files carry the full record; XYZ files carry geometry only,
// with charge, spin and basis taking their defaults (callers may override
// them afterwards). The returned spec is unvalidated.
func LoadFile(path string) (*Spec, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return loadJSON(path)
	case ".xyz":
		return loadXYZ(path)
	}
	return nil, &FormatError{Ext: filepath.Ext(path)}
}

// jsonMolecule mirrors the on-disk JSON schema. Required keys use pointers
// so their absence is distinguishable from zero values.
type jsonMolecule struct {
	Name        string       `json:"name"`
	Symbols     *[]string    `json:"symbols"`
	Coordinates *[][]float64 `json:"coordinates"`
	Charge      *int         `json:"charge"`
	Spin        *int         `json:"spin"`
	Basis       *string      `json:"basis"`
}

func loadJSON(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc jsonMolecule
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Path: path, Msg: "invalid JSON", Err: err}
	}
	if doc.Symbols == nil {
		return nil, &ParseError{Path: path, Msg: `missing required key "symbols"`}
	}
	if doc.Coordinates == nil {
		return nil, &ParseError{Path: path, Msg: `missing required key "coordinates"`}
	}

	spec := &Spec{
		Name:        doc.Name,
		Symbols:     *doc.Symbols,
		Coordinates: *doc.Coordinates,
		Basis:       DefaultBasis,
	}
	if doc.Charge != nil {
		spec.Charge = *doc.Charge
	}
	if doc.Spin != nil {
		spec.Spin = *doc.Spin
	}
	if doc.Basis != nil {
		spec.Basis = *doc.Basis
	}
	return spec, nil
}

// loadXYZ parses the standard XYZ layout: an atom-count line, a free-form
// comment line, then one "symbol x y z" line per atom. Blank lines are
// skipped throughout. Charge, spin and basis are not part of the format and
// take their defaults.
func loadXYZ(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	if len(lines) < 3 {
		return nil, &ParseError{Path: path, Msg: "XYZ file too short"}
	}

	n, err := strconv.Atoi(lines[0])
	if err != nil || n <= 0 {
		return nil, &ParseError{Path: path, Msg: fmt.Sprintf("first XYZ line must be a positive atom count, got %q", lines[0])}
	}

	// lines[1] is the comment line, discarded.
	atomLines := lines[2:]
	if len(atomLines) < n {
		return nil, &ParseError{
			Path: path,
			Msg:  fmt.Sprintf("XYZ header declares %d atoms but only %d coordinate lines follow", n, len(atomLines)),
		}
	}
	atomLines = atomLines[:n]

	spec := &Spec{
		Name:  strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Basis: DefaultBasis,
	}
	for _, line := range atomLines {
		fields := strings.Fields(line)
		if len(fields) != 4 {
			return nil, &ParseError{
				Path: path,
				Msg:  fmt.Sprintf("invalid XYZ line %q: expected \"symbol x y z\"", line),
			}
		}
		coord := make([]float64, 3)
		for k, tok := range fields[1:4] {
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, &ParseError{
					Path: path,
					Msg:  fmt.Sprintf("invalid coordinate %q on line %q", tok, line),
					Err:  err,
				}
			}
			coord[k] = v
		}
		spec.Symbols = append(spec.Symbols, fields[0])
		spec.Coordinates = append(spec.Coordinates, coord)
	}
	return spec, nil
}
