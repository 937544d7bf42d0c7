// Package basis: sentinel error set.

package basis

import "errors"

var (
	// ErrBadPartition indicates Basic/Nonbasic do not partition [0,n)
	// exactly, or len(Basic) != m.
	ErrBadPartition = errors.New("basis: basic/nonbasic lists are not a partition")

	// ErrUnstablePivot is returned by Replace when the eta pivot element is
	// too small to absorb the swap; the caller must refactorize instead.
	ErrUnstablePivot = errors.New("basis: eta pivot below tolerance")

	// ErrNoFactorization indicates FTran/BTran/Replace were called before a
	// successful Refactorize.
	ErrNoFactorization = errors.New("basis: no current factorization")

	// ErrPositionOutOfRange indicates a basis position outside [0,m).
	ErrPositionOutOfRange = errors.New("basis: position out of range")
)
