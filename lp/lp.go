// Package lp: problem type, validation and deep copy.

package lp

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/dusim/sparse"
)

// VarType classifies a decision variable.
type VarType uint8

const (
	Continuous VarType = iota
	Integer
	Binary
)

var (
	// ErrDimensionMismatch indicates vector lengths inconsistent with the
	// constraint matrix shape.
	ErrDimensionMismatch = errors.New("lp: dimension mismatch")

	// ErrCrossedBounds indicates Lower[j] > Upper[j] (or the row analogue)
	// in the root problem; nodes with crossed bounds are a pruning verdict,
	// a root with crossed bounds is a modelling error.
	ErrCrossedBounds = errors.New("lp: lower bound exceeds upper bound")
)

// Problem is one LP instance. See the package documentation for the
// mathematical form. All slices are len NumCols except the row bounds.
type Problem struct {
	A        *sparse.CSC // m x n constraint matrix
	RowLower []float64   // len m, -Inf for unbounded below
	RowUpper []float64   // len m, +Inf for unbounded above
	Lower    []float64   // len n
	Upper    []float64   // len n
	Obj      []float64   // len n, minimization sense
	VarTypes []VarType   // len n
}

// NumRows returns m.
func (p *Problem) NumRows() int { return p.A.M }

// NumCols returns the number of structural variables n.
func (p *Problem) NumCols() int { return p.A.N }

// Validate checks shape consistency and that no bound pair is crossed.
func (p *Problem) Validate() error {
	if err := p.A.Validate(); err != nil {
		return fmt.Errorf("lp: %w", err)
	}
	m, n := p.A.M, p.A.N
	if len(p.RowLower) != m || len(p.RowUpper) != m {
		return fmt.Errorf("lp: row bounds %d/%d want %d: %w",
			len(p.RowLower), len(p.RowUpper), m, ErrDimensionMismatch)
	}
	if len(p.Lower) != n || len(p.Upper) != n || len(p.Obj) != n || len(p.VarTypes) != n {
		return fmt.Errorf("lp: column arrays want %d: %w", n, ErrDimensionMismatch)
	}
	for j := 0; j < n; j++ {
		if p.Lower[j] > p.Upper[j] {
			return fmt.Errorf("lp: variable %d [%g,%g]: %w", j, p.Lower[j], p.Upper[j], ErrCrossedBounds)
		}
	}
	for i := 0; i < m; i++ {
		if p.RowLower[i] > p.RowUpper[i] {
			return fmt.Errorf("lp: row %d [%g,%g]: %w", i, p.RowLower[i], p.RowUpper[i], ErrCrossedBounds)
		}
	}

	return nil
}

// Clone returns a deep copy; mutating the clone never touches the receiver.
func (p *Problem) Clone() *Problem {
	q := &Problem{
		A:        p.A.Clone(),
		RowLower: append([]float64(nil), p.RowLower...),
		RowUpper: append([]float64(nil), p.RowUpper...),
		Lower:    append([]float64(nil), p.Lower...),
		Upper:    append([]float64(nil), p.Upper...),
		Obj:      append([]float64(nil), p.Obj...),
		VarTypes: append([]VarType(nil), p.VarTypes...),
	}

	return q
}

// IsIntegral reports whether x is integer-feasible for this problem within
// tol: every Integer/Binary variable sits within tol of an integer point.
func (p *Problem) IsIntegral(x []float64, tol float64) bool {
	for j, vt := range p.VarTypes {
		if vt == Continuous {
			continue
		}
		if math.Abs(x[j]-math.Round(x[j])) > tol {
			return false
		}
	}

	return true
}
