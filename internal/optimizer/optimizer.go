// Package optimizer builds and solves the unit commitment MILP, in its
// single-period and multi-period variants, against the solver.Problem
// capability set. Both variants validate their inputs before building
// anything, and independently audit the solver's answer before handing
// it back.
package optimizer

import (
	"context"

	"unit-commitment/internal/model"
	"unit-commitment/internal/solver"
)

// Optimizer maps a fleet of units and a demand profile to a committed,
// dispatched Solution. Implementations must validate their inputs before
// building a problem and must audit the solver's reported solution
// before returning it, so an optimal-but-wrong answer is never surfaced.
type Optimizer interface {
	// Name identifies the optimizer variant, for logging and metadata.
	Name() string

	// ValidateInputs checks that units and demand are shaped correctly
	// for this variant and that the fleet can physically meet demand,
	// without invoking the solver.
	ValidateInputs(units []model.Unit, demand model.Demand) error

	// Optimize solves the unit commitment problem and returns the
	// audited solution.
	Optimize(ctx context.Context, units []model.Unit, demand model.Demand) (*model.Solution, error)
}

// Tolerance is the default numerical tolerance used across variants for
// capacity pre-checks, matching audit.DefaultTolerance.
const Tolerance = 1e-6
