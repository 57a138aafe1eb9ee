package scf

import "fmt"

// ComputationError represents a failure inside the external SCF solver:
// a crashed backend, an unbuildable molecule, or unparseable output. It does
// not cover non-convergence, which is a valid result.
type ComputationError struct {
	Message string // what the invoker was doing
	Err     error  // the solver's own error
}

// Error implements the error interface for ComputationError.
func (e *ComputationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying solver error for error wrapping support.
func (e *ComputationError) Unwrap() error {
	return e.Err
}
