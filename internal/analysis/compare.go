// Package analysis compares multiple unit commitment scenarios (fleet +
// demand pairs) by running each through an Optimizer and ranking the
// results, the way a planner deciding between candidate fleets would.
package analysis

import (
	"context"
	"fmt"
	"sort"

	"unit-commitment/internal/model"
	"unit-commitment/internal/optimizer"
)

// NamedScenario pairs a label with the inputs to an optimize() call, so
// a batch of candidate fleets or demand profiles can be compared in one
// pass.
type NamedScenario struct {
	Name   string
	Units  []model.Unit
	Demand model.Demand
}

// Comparison is one scenario's solved outcome.
type Comparison struct {
	Name     string
	Solution *model.Solution
}

// RankByTotalCost solves every scenario with opt and returns them sorted
// ascending by total cost, cheapest first. A scenario whose solver
// reports infeasibility sorts after every feasible one, in the order
// encountered.
func RankByTotalCost(ctx context.Context, opt optimizer.Optimizer, scenarios []NamedScenario) ([]Comparison, error) {
	out := make([]Comparison, 0, len(scenarios))
	for _, s := range scenarios {
		sol, err := opt.Optimize(ctx, s.Units, s.Demand)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
		}
		out = append(out, Comparison{Name: s.Name, Solution: sol})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Solution.IsOptimal != out[j].Solution.IsOptimal {
			return out[i].Solution.IsOptimal
		}
		return out[i].Solution.TotalCost < out[j].Solution.TotalCost
	})
	return out, nil
}
