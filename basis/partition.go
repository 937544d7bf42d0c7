// Package basis: basic/nonbasic column partition.

package basis

import "fmt"

// Partition tracks which columns of an n-column problem are basic. The
// basis has exactly one column per row, so len(Basic) == m always.
type Partition struct {
	Basic    []int // len m, basis position -> column
	Nonbasic []int // len n-m
}

// NewPartition builds a partition from an initial basic list; the nonbasic
// list is the complement in ascending column order.
func NewPartition(n int, basic []int) (*Partition, error) {
	inBasis := make([]bool, n)
	for _, j := range basic {
		if j < 0 || j >= n || inBasis[j] {
			return nil, fmt.Errorf("NewPartition: column %d: %w", j, ErrBadPartition)
		}
		inBasis[j] = true
	}
	pt := &Partition{
		Basic:    append([]int(nil), basic...),
		Nonbasic: make([]int, 0, n-len(basic)),
	}
	for j := 0; j < n; j++ {
		if !inBasis[j] {
			pt.Nonbasic = append(pt.Nonbasic, j)
		}
	}

	return pt, nil
}

// Swap exchanges the basic column at basis position r with the nonbasic
// column at list position s — the bookkeeping half of a simplex pivot.
func (pt *Partition) Swap(r, s int) error {
	if r < 0 || r >= len(pt.Basic) || s < 0 || s >= len(pt.Nonbasic) {
		return fmt.Errorf("Swap: (%d,%d): %w", r, s, ErrPositionOutOfRange)
	}
	pt.Basic[r], pt.Nonbasic[s] = pt.Nonbasic[s], pt.Basic[r]

	return nil
}

// Validate checks the partition invariant against an n-column problem with
// m rows: every column in exactly one list and len(Basic) == m.
func (pt *Partition) Validate(n, m int) error {
	if len(pt.Basic) != m || len(pt.Basic)+len(pt.Nonbasic) != n {
		return fmt.Errorf("Validate: |basic|=%d |nonbasic|=%d n=%d m=%d: %w",
			len(pt.Basic), len(pt.Nonbasic), n, m, ErrBadPartition)
	}
	seen := make([]bool, n)
	for _, list := range [][]int{pt.Basic, pt.Nonbasic} {
		for _, j := range list {
			if j < 0 || j >= n || seen[j] {
				return fmt.Errorf("Validate: column %d: %w", j, ErrBadPartition)
			}
			seen[j] = true
		}
	}

	return nil
}

// Clone returns an independent copy.
func (pt *Partition) Clone() *Partition {
	return &Partition{
		Basic:    append([]int(nil), pt.Basic...),
		Nonbasic: append([]int(nil), pt.Nonbasic...),
	}
}
