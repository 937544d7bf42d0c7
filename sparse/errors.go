// Package sparse: sentinel error set.
// Algorithms MUST return these sentinels (optionally wrapped with context via
// fmt.Errorf("...: %w", ErrX)); tests match them with errors.Is.

package sparse

import "errors"

var (
	// ErrBadShape is returned when a requested shape is invalid (m<=0, n<=0,
	// or a negative nonzero capacity).
	ErrBadShape = errors.New("sparse: invalid shape")

	// ErrIndexOutOfRange indicates a stored or supplied index outside
	// [0,M) x [0,N).
	ErrIndexOutOfRange = errors.New("sparse: index out of range")

	// ErrBadOffsets indicates a corrupt offset array: ColStart/RowStart must
	// start at 0, be non-decreasing, and end at len(Values).
	ErrBadOffsets = errors.New("sparse: offsets not monotonic")

	// ErrTripletMismatch indicates rows/cols/vals of different lengths were
	// passed to FromTriplets.
	ErrTripletMismatch = errors.New("sparse: triplet arrays length mismatch")
)
