package solver

import "github.com/pkg/errors"

// Unsatisfiable is returned up through the cache/extender call chain once
// the solver's ok flag has gone false: a propagation or a delayed clause
// insertion showed the formula is unsatisfiable. Per ERROR HANDLING
// DESIGN this is a global-halt condition, not a recoverable one.
var Unsatisfiable = errors.New("formula is unsatisfiable")

// InvariantViolation wraps an assertion-level failure: the solver was at a
// non-zero decision level when cache cleaning was invoked, the extender
// hit a conflict it should never be able to reach by construction, or a
// variable index was out of range. These are fatal bugs, not data errors.
func InvariantViolation(msg string) error {
	return errors.Wrap(errors.New(msg), "invariant violation")
}
