// Package simplex: solver configuration, shared by the factorization, the
// simplex loop and the branch-and-bound driver.

package simplex

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// Settings carries every numerical threshold and resource limit recognized
// by the solving core. Zero-valued limits mean "unlimited". Settings are
// read-only once a solve starts: tolerances and deadlines only, no other
// side effects.
type Settings struct {
	// PivotTol is the LU pivoting tolerance: the relative threshold for
	// accepting the structural candidate and the absolute floor below which
	// a column counts as numerically singular.
	PivotTol float64 `toml:"pivot_tol"`

	// FeasTol is the primal feasibility tolerance on variable/row bounds.
	FeasTol float64 `toml:"feas_tol"`

	// DualTol is the dual feasibility (optimality) tolerance on reduced
	// costs.
	DualTol float64 `toml:"dual_tol"`

	// IntegralityTol decides how close to an integer an integer variable
	// must land before a node counts as integral.
	IntegralityTol float64 `toml:"integrality_tol"`

	// TimeLimit bounds one whole solve; polled cooperatively between
	// simplex iterations (never a preemptive interrupt).
	TimeLimit time.Duration `toml:"time_limit"`

	// IterationLimit bounds simplex iterations per LP solve.
	IterationLimit int `toml:"iteration_limit"`

	// RefactorInterval is the eta-chain budget before the basis is
	// refactorized from scratch.
	RefactorInterval int `toml:"refactor_interval"`

	// MaxPresolveRounds bounds bound-strengthening sweeps per node.
	MaxPresolveRounds int `toml:"max_presolve_rounds"`

	// Workers is the fixed size of the branch-and-bound worker pool.
	Workers int `toml:"workers"`

	// MaxNodes bounds tree exploration; 0 means unlimited.
	MaxNodes int `toml:"max_nodes"`

	// Logger receives structured progress reporting; nil silences it.
	Logger *log.Logger `toml:"-"`
}

// Default returns the documented defaults. They favor robustness on
// well-scaled inputs; callers tune per solve.
func Default() *Settings {
	return &Settings{
		PivotTol:          1e-11,
		FeasTol:           1e-7,
		DualTol:           1e-7,
		IntegralityTol:    1e-6,
		TimeLimit:         0,
		IterationLimit:    20000,
		RefactorInterval:  64,
		MaxPresolveRounds: 16,
		Workers:           1,
		MaxNodes:          0,
	}
}

// Load reads Settings from a TOML file on top of the defaults; fields
// absent from the file keep their default values.
func Load(path string) (*Settings, error) {
	s := Default()
	if _, err := toml.DecodeFile(path, s); err != nil {
		return nil, fmt.Errorf("simplex: load settings: %w", err)
	}

	return s, nil
}

// Deadline converts TimeLimit into an absolute deadline from start; the
// zero time means no limit.
func (s *Settings) Deadline(start time.Time) time.Time {
	if s.TimeLimit <= 0 {
		return time.Time{}
	}

	return start.Add(s.TimeLimit)
}

// Logf logs through the configured logger, if any.
func (s *Settings) Logf(msg string, kv ...any) {
	if s.Logger != nil {
		s.Logger.Info(msg, kv...)
	}
}
