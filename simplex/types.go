// Package simplex: statuses and result types.

package simplex

import "errors"

// Status is the outcome of one LP solve.
type Status uint8

const (
	// StatusOptimal — primal and dual feasible within tolerances.
	StatusOptimal Status = iota

	// StatusInfeasible — the dual ratio test found no entering column: the
	// node's feasible region is empty. A pruning verdict, not an error.
	StatusInfeasible

	// StatusIterationLimit — the iteration budget ran out; Result carries
	// the best available point and bound.
	StatusIterationLimit

	// StatusTimeLimit — the cooperative deadline expired between
	// iterations; Result carries the best available point and bound.
	StatusTimeLimit
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusInfeasible:
		return "infeasible"
	case StatusIterationLimit:
		return "iteration-limit"
	case StatusTimeLimit:
		return "time-limit"
	default:
		return "unknown"
	}
}

// VStatus tracks where a variable of the computational form currently sits.
type VStatus uint8

const (
	Basic VStatus = iota
	AtLower
	AtUpper
	AtZero // free nonbasic variable parked at zero
)

// Result of one LP solve.
type Result struct {
	Status     Status
	Objective  float64   // structural objective value at X
	X          []float64 // structural variable values, len NumCols
	Iterations int
}

// ErrNotDualFeasible is returned when the all-slack start cannot be made
// dual feasible by bound flipping (an attractive objective on a variable
// with no finite bound); the dual simplex cannot start from such a point.
var ErrNotDualFeasible = errors.New("simplex: initial basis is not dual feasible")
