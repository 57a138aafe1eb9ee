// Package molecule defines the molecular input record shared by the loader,
// the validator and the SCF layer, together with the element and basis-set
// whitelists the tool supports.
package molecule

import (
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// DefaultBasis is applied whenever an input source does not name a basis set.
const DefaultBasis = "sto-3g"

// Bases lists the supported basis-set identifiers, in the order they are
// reported to the user when validation rejects an unknown one.
var Bases = []string{"sto-3g", "6-31g", "cc-pvdz", "def2-svp"}

// elements maps the supported element symbols (H through Ca) to their atomic
// numbers. Heavier elements need basis sets outside the supported whitelist,
// so they are rejected up front.
var elements = map[string]int{
	"H": 1, "He": 2,
	"Li": 3, "Be": 4, "B": 5, "C": 6, "N": 7, "O": 8, "F": 9, "Ne": 10,
	"Na": 11, "Mg": 12, "Al": 13, "Si": 14, "P": 15, "S": 16, "Cl": 17, "Ar": 18,
	"K": 19, "Ca": 20,
}

// SupportedElement reports whether sym is in the element whitelist.
func SupportedElement(sym string) bool {
	_, ok := elements[sym]
	return ok
}

// AtomicNumber returns the nuclear charge for a whitelisted element symbol,
// or 0 for anything else.
func AtomicNumber(sym string) int {
	return elements[sym]
}

// SupportedBasis reports whether basis is in the basis-set whitelist.
func SupportedBasis(basis string) bool {
	for _, b := range Bases {
		if b == basis {
			return true
		}
	}
	return false
}

// Spec is the canonical molecule record consumed by the SCF layer. It is
// built by the loader or assembled from CLI arguments, validated once, and
// read-only afterwards.
type Spec struct {
	// Name is informational only (JSON "name" key or XYZ file stem).
	Name string

	// Symbols holds one element symbol per atom.
	Symbols []string

	// Coordinates holds one Cartesian position per atom, in Angstrom.
	// Arity is checked by Validate, not by the type system, so malformed
	// input can be reported with the offending index.
	Coordinates [][]float64

	// Charge is the total molecular charge.
	Charge int

	// Spin is twice the number of unpaired electrons (0 = closed shell).
	Spin int

	// Basis is one of the identifiers in Bases.
	Basis string
}

// AtomCount returns the number of atoms in the spec.
func (s *Spec) AtomCount() int {
	return len(s.Symbols)
}

// ElectronCount returns the total electron count: the sum of atomic numbers
// minus the molecular charge.
func (s *Spec) ElectronCount() int {
	n := 0
	for _, sym := range s.Symbols {
		n += AtomicNumber(sym)
	}
	return n - s.Charge
}

// ElectronCounts splits the electron count into alpha and beta populations
// according to the spin value.
func (s *Spec) ElectronCounts() (alpha, beta int) {
	n := s.ElectronCount()
	alpha = (n + s.Spin) / 2
	beta = n - alpha
	return alpha, beta
}

// Distance returns the Euclidean distance in Angstrom between atoms i and j.
// Both coordinates must have three components; callers are expected to have
// validated the spec first.
func (s *Spec) Distance(i, j int) float64 {
	return floats.Distance(s.Coordinates[i], s.Coordinates[j], 2)
}

// AtomLines renders the geometry as "symbol x y z" strings, one per atom,
// the common input-deck form consumed by external quantum-chemistry codes.
func (s *Spec) AtomLines() []string {
	lines := make([]string, len(s.Symbols))
	for i, sym := range s.Symbols {
		parts := []string{sym}
		for _, c := range s.Coordinates[i] {
			parts = append(parts, strconv.FormatFloat(c, 'f', 10, 64))
		}
		lines[i] = strings.Join(parts, " ")
	}
	return lines
}

// Clone returns a deep copy of the spec. Scans mutate coordinates of the
// copy while the validated original stays untouched.
func (s *Spec) Clone() *Spec {
	out := &Spec{
		Name:    s.Name,
		Symbols: append([]string(nil), s.Symbols...),
		Charge:  s.Charge,
		Spin:    s.Spin,
		Basis:   s.Basis,
	}
	out.Coordinates = make([][]float64, len(s.Coordinates))
	for i, c := range s.Coordinates {
		out.Coordinates[i] = append([]float64(nil), c...)
	}
	return out
}

// String returns a short human-readable description, e.g. "H2O (3 atoms, sto-3g)".
func (s *Spec) String() string {
	name := s.Name
	if name == "" {
		name = "molecule"
	}
	return fmt.Sprintf("%s (%d atoms, %s)", name, s.AtomCount(), s.Basis)
}
