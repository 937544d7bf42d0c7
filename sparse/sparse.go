// Package sparse: constructors, validation and layout conversions.

package sparse

import "fmt"

// NewCSC allocates an m-by-n CSC matrix with capacity for nnz nonzeros.
// ColStart is zeroed: the matrix starts structurally empty and is meant to
// be filled column by column. Returns ErrBadShape on nonsensical sizes.
func NewCSC(m, n, nnz int) (*CSC, error) {
	if m <= 0 || n <= 0 || nnz < 0 {
		return nil, fmt.Errorf("NewCSC: %dx%d nnz=%d: %w", m, n, nnz, ErrBadShape)
	}

	return &CSC{
		M:        m,
		N:        n,
		ColStart: make([]int, n+1),
		RowIndex: make([]int, 0, nnz),
		Values:   make([]float64, 0, nnz),
	}, nil
}

// FromTriplets builds a CSC matrix from coordinate-form input, summing
// duplicate entries. rows/cols/vals must have equal length; indices must lie
// in [0,m) x [0,n). Complexity: O(m + n + nnz).
func FromTriplets(m, n int, rows, cols []int, vals []float64) (*CSC, error) {
	if m <= 0 || n <= 0 {
		return nil, fmt.Errorf("FromTriplets: %dx%d: %w", m, n, ErrBadShape)
	}
	if len(rows) != len(cols) || len(cols) != len(vals) {
		return nil, fmt.Errorf("FromTriplets: %d/%d/%d: %w",
			len(rows), len(cols), len(vals), ErrTripletMismatch)
	}

	// Stage 1: count entries per column (duplicates still counted here).
	count := make([]int, n)
	var k int
	for k = 0; k < len(rows); k++ {
		if rows[k] < 0 || rows[k] >= m || cols[k] < 0 || cols[k] >= n {
			return nil, fmt.Errorf("FromTriplets: entry %d at (%d,%d): %w",
				k, rows[k], cols[k], ErrIndexOutOfRange)
		}
		count[cols[k]]++
	}

	// Stage 2: offsets by cumulative sum.
	colStart := make([]int, n+1)
	cumulativeSum(count, colStart)

	// Stage 3: scatter entries; next[j] tracks the write head of column j.
	next := make([]int, n)
	copy(next, colStart[:n])
	rowIndex := make([]int, len(rows))
	values := make([]float64, len(rows))
	var p int
	for k = 0; k < len(rows); k++ {
		p = next[cols[k]]
		next[cols[k]] = p + 1
		rowIndex[p] = rows[k]
		values[p] = vals[k]
	}

	a := &CSC{M: m, N: n, ColStart: colStart, RowIndex: rowIndex, Values: values}
	a.sumDuplicates()

	return a, nil
}

// Identity returns the n-by-n identity matrix in CSC form.
func Identity(n int) (*CSC, error) {
	if n <= 0 {
		return nil, fmt.Errorf("Identity: n=%d: %w", n, ErrBadShape)
	}
	a := &CSC{
		M:        n,
		N:        n,
		ColStart: make([]int, n+1),
		RowIndex: make([]int, n),
		Values:   make([]float64, n),
	}
	for j := 0; j < n; j++ {
		a.ColStart[j] = j
		a.RowIndex[j] = j
		a.Values[j] = 1.0
	}
	a.ColStart[n] = n

	return a, nil
}

// Clone returns a deep copy, independent of the receiver.
func (a *CSC) Clone() *CSC {
	b := &CSC{
		M:        a.M,
		N:        a.N,
		ColStart: make([]int, len(a.ColStart)),
		RowIndex: make([]int, len(a.RowIndex)),
		Values:   make([]float64, len(a.Values)),
	}
	copy(b.ColStart, a.ColStart)
	copy(b.RowIndex, a.RowIndex)
	copy(b.Values, a.Values)

	return b
}

// Validate checks the structural invariants: strictly consistent offsets
// (ColStart[0]==0, non-decreasing, ColStart[N]==NNZ) and in-range row
// indices. Returns the first violated sentinel. Complexity: O(n + nnz).
func (a *CSC) Validate() error {
	if a.M <= 0 || a.N <= 0 || len(a.ColStart) != a.N+1 {
		return fmt.Errorf("Validate: %dx%d: %w", a.M, a.N, ErrBadShape)
	}
	if a.ColStart[0] != 0 || a.ColStart[a.N] != len(a.Values) {
		return fmt.Errorf("Validate: boundary offsets: %w", ErrBadOffsets)
	}
	var j int
	for j = 0; j < a.N; j++ {
		if a.ColStart[j+1] < a.ColStart[j] {
			return fmt.Errorf("Validate: column %d: %w", j, ErrBadOffsets)
		}
	}
	var p int
	for p = 0; p < len(a.RowIndex); p++ {
		if a.RowIndex[p] < 0 || a.RowIndex[p] >= a.M {
			return fmt.Errorf("Validate: entry %d row %d: %w", p, a.RowIndex[p], ErrIndexOutOfRange)
		}
	}

	return nil
}

// ToCSR converts the matrix to row-major layout via a counting sort over row
// indices. Column indices within each row come out sorted ascending.
// Complexity: O(m + n + nnz).
func (a *CSC) ToCSR() (*CSR, error) {
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("ToCSR: %w", err)
	}

	nnz := a.NNZ()
	count := make([]int, a.M)
	var p int
	for p = 0; p < nnz; p++ {
		count[a.RowIndex[p]]++
	}
	rowStart := make([]int, a.M+1)
	cumulativeSum(count, rowStart)

	next := make([]int, a.M)
	copy(next, rowStart[:a.M])
	colIndex := make([]int, nnz)
	values := make([]float64, nnz)
	var j, q int
	for j = 0; j < a.N; j++ {
		for p = a.ColStart[j]; p < a.ColStart[j+1]; p++ {
			q = next[a.RowIndex[p]]
			next[a.RowIndex[p]] = q + 1
			colIndex[q] = j
			values[q] = a.Values[p]
		}
	}

	return &CSR{M: a.M, N: a.N, RowStart: rowStart, ColIndex: colIndex, Values: values}, nil
}

// sumDuplicates collapses repeated (row,col) entries in place, keeping the
// first slot and adding later values into it. Uses a dense row workspace.
func (a *CSC) sumDuplicates() {
	seen := make([]int, a.M) // seen[i]-1 = slot of row i in current column
	var j, p, dst int
	colEnd := 0
	for j = 0; j < a.N; j++ {
		start := dst
		end := a.ColStart[j+1]
		for p = colEnd; p < end; p++ {
			i := a.RowIndex[p]
			if seen[i] > start {
				a.Values[seen[i]-1] += a.Values[p]
				continue
			}
			a.RowIndex[dst] = i
			a.Values[dst] = a.Values[p]
			dst++
			seen[i] = dst
		}
		colEnd = end
		a.ColStart[j+1] = dst
		// reset workspace for rows touched in this column
		for p = start; p < dst; p++ {
			seen[a.RowIndex[p]] = 0
		}
	}
	a.RowIndex = a.RowIndex[:dst]
	a.Values = a.Values[:dst]
}

// cumulativeSum writes the exclusive prefix sum of count into offsets
// (len(offsets) == len(count)+1), mirroring the classic CSparse helper.
func cumulativeSum(count, offsets []int) {
	total := 0
	for k := 0; k < len(count); k++ {
		offsets[k] = total
		total += count[k]
	}
	offsets[len(count)] = total
}
