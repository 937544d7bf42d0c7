// Package basis: LU factors plus the product-form eta chain.

package basis

import (
	"fmt"
	"math"
	"time"

	"github.com/katalvlaran/dusim/lu"
	"github.com/katalvlaran/dusim/singletons"
	"github.com/katalvlaran/dusim/sparse"
)

// eta is one product-form update: the basis column at position r was
// replaced, and w = B⁻¹·(entering column) describes the change. Off-pivot
// entries are stored sparsely; the pivot w[r] separately.
type eta struct {
	r     int
	ind   []int
	val   []float64
	pivot float64
}

// Factors is the incrementally maintained basis factorization.
type Factors struct {
	m        int
	fact     *lu.Factorization
	etas     []eta
	maxEtas  int
	pivotTol float64
}

// NewFactors prepares an updater for an m-row basis. maxEtas bounds the eta
// chain before NeedsRefactorization triggers; pivotTol is handed to the LU
// and guards Replace pivots.
func NewFactors(m, maxEtas int, pivotTol float64) *Factors {
	return &Factors{m: m, maxEtas: maxEtas, pivotTol: pivotTol}
}

// Refactorize rebuilds the factorization from scratch for the given basic
// column list: gather the basis matrix, preorder it with the singleton
// orderer, factorize, drop the eta chain. A *lu.SingularColumnError from the
// factorization is passed through untouched so callers can recover.
func (f *Factors) Refactorize(a *sparse.CSC, basic []int) error {
	return f.refactorize(a, basic, f.pivotTol)
}

// RefactorizeRelaxed is Refactorize with an explicit pivot tolerance for
// this one rebuild; the configured tolerance keeps guarding Replace. It is
// the recovery step after Refactorize reported numerical singularity.
func (f *Factors) RefactorizeRelaxed(a *sparse.CSC, basic []int, tol float64) error {
	return f.refactorize(a, basic, tol)
}

func (f *Factors) refactorize(a *sparse.CSC, basic []int, tol float64) error {
	if len(basic) != f.m {
		return fmt.Errorf("Refactorize: %d basic columns want %d: %w", len(basic), f.m, ErrBadPartition)
	}

	bm := gatherColumns(a, basic)
	ord, err := singletons.FindSingletons(bm)
	if err != nil {
		return fmt.Errorf("Refactorize: %w", err)
	}
	fact, err := lu.Factorize(bm, ord.ColPerm, tol)
	if err != nil {
		return err
	}
	f.fact = fact
	f.etas = f.etas[:0]

	return nil
}

// Probe checks whether the basis admits a complete pivot sequence at tol
// without building factors (permutations only). It answers "would a rebuild
// at this tolerance succeed" at a fraction of the factorization cost; the
// current factors are left untouched.
func (f *Factors) Probe(a *sparse.CSC, basic []int, tol float64) error {
	if len(basic) != f.m {
		return fmt.Errorf("Probe: %d basic columns want %d: %w", len(basic), f.m, ErrBadPartition)
	}

	bm := gatherColumns(a, basic)
	ord, err := singletons.FindSingletons(bm)
	if err != nil {
		return fmt.Errorf("Probe: %w", err)
	}
	_, _, err = lu.RowPermutationOnly(bm, ord.ColPerm, tol, time.Time{})

	return err
}

// NeedsRefactorization reports whether the eta chain reached its budget (or
// no factorization exists yet). Policy only — correctness never depends on
// when the owner acts on it.
func (f *Factors) NeedsRefactorization() bool {
	return f.fact == nil || len(f.etas) >= f.maxEtas
}

// Updates returns the current eta-chain length.
func (f *Factors) Updates() int { return len(f.etas) }

// FTran solves B x = b against the current basis (LU solve, then the eta
// chain in application order).
func (f *Factors) FTran(b []float64) ([]float64, error) {
	if f.fact == nil {
		return nil, ErrNoFactorization
	}
	x, err := f.fact.FTran(b)
	if err != nil {
		return nil, err
	}
	for k := range f.etas {
		e := &f.etas[k]
		t := x[e.r] / e.pivot
		for idx, i := range e.ind {
			x[i] -= e.val[idx] * t
		}
		x[e.r] = t
	}

	return x, nil
}

// BTran solves Bᵀ y = c (eta chain transposed in reverse order, then the LU
// transpose solve).
func (f *Factors) BTran(c []float64) ([]float64, error) {
	if f.fact == nil {
		return nil, ErrNoFactorization
	}
	y := append([]float64(nil), c...)
	for k := len(f.etas) - 1; k >= 0; k-- {
		e := &f.etas[k]
		s := y[e.r]
		for idx, i := range e.ind {
			s -= e.val[idx] * y[i]
		}
		y[e.r] = s / e.pivot
	}

	return f.fact.BTran(y)
}

// Replace absorbs a single basic/nonbasic column swap at basis position r,
// where w must be FTran(entering column) against the CURRENT basis. A pivot
// |w[r]| at or below the tolerance is refused with ErrUnstablePivot — the
// caller refactorizes instead of stacking a bad eta.
func (f *Factors) Replace(r int, w []float64) error {
	if f.fact == nil {
		return ErrNoFactorization
	}
	if r < 0 || r >= f.m {
		return fmt.Errorf("Replace: %d: %w", r, ErrPositionOutOfRange)
	}
	if math.Abs(w[r]) <= f.pivotTol {
		return fmt.Errorf("Replace: position %d pivot %g: %w", r, w[r], ErrUnstablePivot)
	}

	e := eta{r: r, pivot: w[r]}
	for i, v := range w {
		if i == r || v == 0 {
			continue
		}
		e.ind = append(e.ind, i)
		e.val = append(e.val, v)
	}
	f.etas = append(f.etas, e)

	return nil
}

// gatherColumns extracts the m×m basis matrix A[:, basic] in list order.
func gatherColumns(a *sparse.CSC, basic []int) *sparse.CSC {
	nnz := 0
	for _, j := range basic {
		nnz += a.ColStart[j+1] - a.ColStart[j]
	}
	bm := &sparse.CSC{
		M:        a.M,
		N:        len(basic),
		ColStart: make([]int, len(basic)+1),
		RowIndex: make([]int, 0, nnz),
		Values:   make([]float64, 0, nnz),
	}
	for k, j := range basic {
		bm.ColStart[k] = len(bm.Values)
		rows, vals := a.Column(j)
		bm.RowIndex = append(bm.RowIndex, rows...)
		bm.Values = append(bm.Values, vals...)
	}
	bm.ColStart[len(basic)] = len(bm.Values)

	return bm
}
