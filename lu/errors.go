// Package lu: sentinel error set.

package lu

import (
	"errors"
	"fmt"
)

var (
	// ErrNotSquare is returned when the input matrix is not square; only
	// basis-shaped (m==n) matrices are factorized here.
	ErrNotSquare = errors.New("lu: matrix is not square")

	// ErrBadColumnList indicates the prescribed column order is not a
	// bijection on [0,n).
	ErrBadColumnList = errors.New("lu: column list is not a permutation")

	// ErrSingular is the sentinel every *SingularColumnError matches via
	// errors.Is. Callers must treat it as recoverable (retry with a relaxed
	// tolerance or another ordering), never as fatal to the whole solve.
	ErrSingular = errors.New("lu: matrix is numerically singular")

	// ErrTimeLimit is returned by RowPermutationOnly when its deadline
	// expires between columns.
	ErrTimeLimit = errors.New("lu: time limit exceeded")

	// ErrVectorLength indicates an FTran/BTran right-hand side whose length
	// does not match the factorized dimension.
	ErrVectorLength = errors.New("lu: vector length mismatch")
)

// SingularColumnError reports the first column that could not be pivoted
// safely: no remaining candidate row reached tol in absolute value.
type SingularColumnError struct {
	Column   int // column index in the original matrix numbering
	Position int // position within the prescribed column list
}

func (e *SingularColumnError) Error() string {
	return fmt.Sprintf("lu: column %d (position %d) has no pivot above tolerance", e.Column, e.Position)
}

// Unwrap lets errors.Is(err, ErrSingular) match.
func (e *SingularColumnError) Unwrap() error { return ErrSingular }
