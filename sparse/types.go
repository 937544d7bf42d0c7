// Package sparse: domain types. Constructors and conversions live in
// sparse.go; errors in errors.go.

package sparse

// CSC is a compressed-sparse-column matrix with M rows, N columns and
// len(Values) stored nonzeros. Column j occupies the half-open range
// ColStart[j]:ColStart[j+1] of RowIndex/Values.
//
// Fields are exported because the ordering/factorization kernels index them
// directly in hot loops; mutate them only through the package constructors
// unless you re-run Validate afterwards.
type CSC struct {
	M, N     int
	ColStart []int // len N+1, ColStart[0]==0, non-decreasing
	RowIndex []int // len NNZ, each in [0,M)
	Values   []float64
}

// CSR is the row-major mirror of CSC. Row i occupies
// RowStart[i]:RowStart[i+1] of ColIndex/Values.
type CSR struct {
	M, N     int
	RowStart []int // len M+1
	ColIndex []int // len NNZ, each in [0,N)
	Values   []float64
}

// NNZ returns the number of stored nonzeros.
func (a *CSC) NNZ() int { return len(a.Values) }

// NNZ returns the number of stored nonzeros.
func (r *CSR) NNZ() int { return len(r.Values) }

// Column returns the row-index and value slices of column j, aliasing the
// matrix storage. Complexity: O(1).
func (a *CSC) Column(j int) (rows []int, vals []float64) {
	start, end := a.ColStart[j], a.ColStart[j+1]
	return a.RowIndex[start:end], a.Values[start:end]
}

// Row returns the column-index and value slices of row i, aliasing the
// matrix storage. Complexity: O(1).
func (r *CSR) Row(i int) (cols []int, vals []float64) {
	start, end := r.RowStart[i], r.RowStart[i+1]
	return r.ColIndex[start:end], r.Values[start:end]
}
