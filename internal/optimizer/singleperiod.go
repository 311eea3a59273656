package optimizer

import (
	"context"
	"fmt"
	"time"

	"unit-commitment/internal/audit"
	"unit-commitment/internal/model"
	"unit-commitment/internal/solver"
)

// SinglePeriod solves the unit commitment problem for exactly one demand
// period: which units to turn on and at what power level, with no
// temporal coupling between periods since there is only one.
//
// Decision variables: u[i] (binary, unit i on), p[i] (continuous, unit i
// dispatch in MW). Objective: minimize startup_cost[i]*u[i] +
// fuel_cost[i]*p[i] summed over units. Constraints: power balance
// (sum p[i] == demand) and capacity limits (min_power[i]*u[i] <= p[i] <=
// max_power[i]*u[i]).
type SinglePeriod struct {
	NewProblem solver.Factory
	Auditor    audit.Auditor
}

func (o SinglePeriod) Name() string { return "single_period" }

func (o SinglePeriod) ValidateInputs(units []model.Unit, demand model.Demand) error {
	if len(units) == 0 {
		return &model.InputShapeError{Reason: "no units provided"}
	}
	if demand.Periods() != 1 {
		return &model.InputShapeError{
			Reason: fmt.Sprintf("single_period optimizer requires exactly 1 demand period, got %d", demand.Periods()),
		}
	}

	totalCapacity := 0.0
	for _, u := range units {
		totalCapacity += u.MaxPowerMW
	}
	required := demand.At(0)
	if totalCapacity < required-Tolerance {
		return &model.InfeasibleCapacityError{TotalCapacity: totalCapacity, Required: required}
	}
	return nil
}

func (o SinglePeriod) Optimize(ctx context.Context, units []model.Unit, demand model.Demand) (*model.Solution, error) {
	if err := o.ValidateInputs(units, demand); err != nil {
		return nil, err
	}

	start := time.Now()
	n := len(units)
	D := demand.At(0)

	prob := o.NewProblem()

	uVars := make([]solver.VarRef, n)
	pVars := make([]solver.VarRef, n)
	for i, unit := range units {
		uVars[i] = prob.AddVariable(fmt.Sprintf("u_%d", i), 0, 1, solver.Binary)
		pVars[i] = prob.AddVariable(fmt.Sprintf("p_%d", i), 0, unit.MaxPowerMW, solver.Continuous)
	}

	objective := make(map[solver.VarRef]float64, 2*n)
	for i, unit := range units {
		objective[uVars[i]] += unit.StartupCost
		objective[pVars[i]] += unit.FuelCost
	}
	prob.SetObjective(objective)

	balance := make(map[solver.VarRef]float64, n)
	for i := range units {
		balance[pVars[i]] = 1
	}
	prob.AddConstraint("power_balance", balance, solver.EQ, D)

	for i, unit := range units {
		prob.AddConstraint(fmt.Sprintf("min_power_%d", i),
			map[solver.VarRef]float64{pVars[i]: -1, uVars[i]: unit.MinPowerMW}, solver.LE, 0)
		prob.AddConstraint(fmt.Sprintf("max_power_%d", i),
			map[solver.VarRef]float64{pVars[i]: 1, uVars[i]: -unit.MaxPowerMW}, solver.LE, 0)
	}

	status, err := prob.Solve(ctx)
	if err != nil {
		return nil, &model.SolverError{Reason: "single_period solve failed", Err: err}
	}
	if status == solver.StatusInfeasible {
		return infeasibleSolution(n, 1, status, time.Since(start)), nil
	}
	if status != solver.StatusOptimal {
		return nil, &model.SolverError{Reason: fmt.Sprintf("solver returned status %s", status)}
	}

	unitsOn := 0
	statusRows := make([][]int, n)
	powerRows := make([][]float64, n)
	for i := range units {
		uVal := round01(prob.Value(uVars[i]))
		statusRows[i] = []int{uVal}
		powerRows[i] = []float64{prob.Value(pVars[i])}
		unitsOn += uVal
	}

	sol := &model.Solution{
		Status:    statusRows,
		Power:     powerRows,
		TotalCost: prob.ObjectiveValue(),
		IsOptimal: true,
		SolveTime: time.Since(start),
		Metadata: map[string]any{
			"solver_status": status.String(),
			"num_units":     n,
			"demand":        D,
			"units_on":      unitsOn,
		},
	}

	if err := o.Auditor.Validate(sol, units, demand); err != nil {
		return nil, err
	}
	return sol, nil
}

// round01 rounds a solver value that should be 0 or 1 to the nearer
// integer, absorbing simplex floating point noise at the boundary.
func round01(v float64) int {
	if v >= 0.5 {
		return 1
	}
	return 0
}

// infeasibleSolution builds the Solution a solver-reported infeasibility
// produces: zeroed status/power tables, is_optimal = false, and no
// audit, per the failure semantics every variant shares.
func infeasibleSolution(n, T int, status solver.Status, elapsed time.Duration) *model.Solution {
	statusRows := make([][]int, n)
	powerRows := make([][]float64, n)
	for i := 0; i < n; i++ {
		statusRows[i] = make([]int, T)
		powerRows[i] = make([]float64, T)
	}
	return &model.Solution{
		Status:    statusRows,
		Power:     powerRows,
		IsOptimal: false,
		SolveTime: elapsed,
		Metadata: map[string]any{
			"solver_status": status.String(),
		},
	}
}
