package molecule

import (
	"fmt"
	"math"
	"strings"
)

// Validation is the outcome of checking a Spec. A failed validation carries
// the reason for the first violation found; it is a result value, not an
// error, because an invalid molecule is an expected input condition.
type Validation struct {
	Valid  bool
	Reason string
}

func invalid(format string, args ...interface{}) Validation {
	return Validation{Valid: false, Reason: fmt.Sprintf(format, args...)}
}

// Validate checks a spec for structural and chemical consistency. Checks run
// in a fixed order and stop at the first violation, so the reason always
// names exactly one problem:
//
//  1. symbol and coordinate counts match
//  2. every symbol is a supported element
//  3. every coordinate has exactly three components
//  4. every coordinate component is a finite number
//  5. the basis set is supported
//
// Validate never fails on a valid spec and never panics on a malformed one.
func Validate(s *Spec) Validation {
	if len(s.Symbols) != len(s.Coordinates) {
		return invalid("number of symbols (%d) does not match number of coordinates (%d)",
			len(s.Symbols), len(s.Coordinates))
	}

	for _, sym := range s.Symbols {
		if !SupportedElement(sym) {
			return invalid("unsupported element symbol: %s", sym)
		}
	}

	for i, coord := range s.Coordinates {
		if len(coord) != 3 {
			return invalid("coordinate %d must have 3 components, has %d", i, len(coord))
		}
	}

	for i, coord := range s.Coordinates {
		for j, v := range coord {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return invalid("coordinate %d[%d] must be a finite number, got %v", i, j, v)
			}
		}
	}

	if !SupportedBasis(s.Basis) {
		return invalid("unsupported basis: %s. valid bases: %s", s.Basis, strings.Join(Bases, ", "))
	}

	return Validation{Valid: true}
}
