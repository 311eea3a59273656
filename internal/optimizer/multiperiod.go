package optimizer

import (
	"context"
	"fmt"
	"math"
	"time"

	"unit-commitment/internal/audit"
	"unit-commitment/internal/model"
	"unit-commitment/internal/solver"
)

// MultiPeriod solves the full temporally-coupled unit commitment problem
// across T >= 2 periods: commitment, dispatch, and the startup/shutdown
// transitions between them, subject to minimum up/down time and ramp
// rate limits.
//
// Decision variables: u[i][t] (binary, on), p[i][t] (continuous,
// dispatch MW), v[i][t] (binary, starts up at t), w[i][t] (binary, shuts
// down at t). Objective: minimize startup_cost[i]*v[i][t] +
// shutdown_cost[i]*w[i][t] + fuel_cost[i]*p[i][t] summed over units and
// periods.
type MultiPeriod struct {
	NewProblem solver.Factory
	Auditor    audit.Auditor
}

func (o MultiPeriod) Name() string { return "multi_period" }

func (o MultiPeriod) ValidateInputs(units []model.Unit, demand model.Demand) error {
	if len(units) == 0 {
		return &model.InputShapeError{Reason: "no units provided"}
	}
	if demand.Periods() < 2 {
		return &model.InputShapeError{
			Reason: fmt.Sprintf("multi_period optimizer requires at least 2 demand periods, got %d", demand.Periods()),
		}
	}

	totalCapacity := 0.0
	for _, u := range units {
		totalCapacity += u.MaxPowerMW
	}
	peak := demand.Peak()
	if totalCapacity < peak-Tolerance {
		return &model.InfeasibleCapacityError{TotalCapacity: totalCapacity, Required: peak}
	}
	return nil
}

func (o MultiPeriod) Optimize(ctx context.Context, units []model.Unit, demand model.Demand) (*model.Solution, error) {
	if err := o.ValidateInputs(units, demand); err != nil {
		return nil, err
	}

	start := time.Now()
	n := len(units)
	T := demand.Periods()

	prob := o.NewProblem()

	u := make([][]solver.VarRef, n)
	p := make([][]solver.VarRef, n)
	v := make([][]solver.VarRef, n)
	w := make([][]solver.VarRef, n)
	for i, unit := range units {
		u[i] = make([]solver.VarRef, T)
		p[i] = make([]solver.VarRef, T)
		v[i] = make([]solver.VarRef, T)
		w[i] = make([]solver.VarRef, T)
		for t := 0; t < T; t++ {
			u[i][t] = prob.AddVariable(fmt.Sprintf("u_%d_%d", i, t), 0, 1, solver.Binary)
			p[i][t] = prob.AddVariable(fmt.Sprintf("p_%d_%d", i, t), 0, unit.MaxPowerMW, solver.Continuous)
			v[i][t] = prob.AddVariable(fmt.Sprintf("v_%d_%d", i, t), 0, 1, solver.Binary)
			w[i][t] = prob.AddVariable(fmt.Sprintf("w_%d_%d", i, t), 0, 1, solver.Binary)
		}
	}

	objective := map[solver.VarRef]float64{}
	for i, unit := range units {
		for t := 0; t < T; t++ {
			objective[v[i][t]] += unit.StartupCost
			objective[w[i][t]] += unit.ShutdownCost
			objective[p[i][t]] += unit.FuelCost
		}
	}
	prob.SetObjective(objective)

	// 1. Power balance.
	for t := 0; t < T; t++ {
		terms := make(map[solver.VarRef]float64, n)
		for i := range units {
			terms[p[i][t]] = 1
		}
		prob.AddConstraint(fmt.Sprintf("power_balance_%d", t), terms, solver.EQ, demand.At(t))
	}

	// 2. Capacity limits.
	for i, unit := range units {
		for t := 0; t < T; t++ {
			prob.AddConstraint(fmt.Sprintf("min_power_%d_%d", i, t),
				map[solver.VarRef]float64{p[i][t]: -1, u[i][t]: unit.MinPowerMW}, solver.LE, 0)
			prob.AddConstraint(fmt.Sprintf("max_power_%d_%d", i, t),
				map[solver.VarRef]float64{p[i][t]: 1, u[i][t]: -unit.MaxPowerMW}, solver.LE, 0)
		}
	}

	// 3. Startup/shutdown logic: v[i][t] - w[i][t] == u[i][t] - u[i][t-1].
	for i, unit := range units {
		for t := 0; t < T; t++ {
			if t == 0 {
				prob.AddConstraint(fmt.Sprintf("startup_shutdown_%d_%d", i, t),
					map[solver.VarRef]float64{v[i][t]: 1, w[i][t]: -1, u[i][t]: -1},
					solver.EQ, -float64(unit.InitialStatus))
			} else {
				prob.AddConstraint(fmt.Sprintf("startup_shutdown_%d_%d", i, t),
					map[solver.VarRef]float64{v[i][t]: 1, w[i][t]: -1, u[i][t]: -1, u[i][t-1]: 1},
					solver.EQ, 0)
			}
		}
	}

	// 4. Minimum uptime: sum(u[i][t..t+minUp-1]) >= minUp * v[i][t], whenever
	// the window fits entirely within the horizon.
	for i, unit := range units {
		minUp := unit.MinUptime
		for t := 0; t < T; t++ {
			if t+minUp > T {
				continue
			}
			terms := map[solver.VarRef]float64{v[i][t]: -float64(minUp)}
			for tau := t; tau < t+minUp; tau++ {
				terms[u[i][tau]] += 1
			}
			prob.AddConstraint(fmt.Sprintf("min_uptime_%d_%d", i, t), terms, solver.GE, 0)
		}
	}

	// 5. Minimum downtime: sum(1 - u[i][t..t+minDown-1]) >= minDown * w[i][t].
	for i, unit := range units {
		minDown := unit.MinDowntime
		for t := 0; t < T; t++ {
			if t+minDown > T {
				continue
			}
			terms := map[solver.VarRef]float64{w[i][t]: -float64(minDown)}
			for tau := t; tau < t+minDown; tau++ {
				terms[u[i][tau]] -= 1
			}
			prob.AddConstraint(fmt.Sprintf("min_downtime_%d_%d", i, t), terms, solver.GE, -float64(minDown))
		}
	}

	// 6. Ramp rate limits, relative to the previous period's dispatch (or
	// initial power for t == 0). Skipped entirely for a direction with no
	// finite limit.
	for i, unit := range units {
		if !unit.HasRampUpLimit() && !unit.HasRampDownLimit() {
			continue
		}
		for t := 0; t < T; t++ {
			if unit.HasRampUpLimit() {
				if t == 0 {
					prob.AddConstraint(fmt.Sprintf("ramp_up_%d_%d", i, t),
						map[solver.VarRef]float64{p[i][t]: 1}, solver.LE, unit.RampUpRate+unit.InitialPowerMW)
				} else {
					prob.AddConstraint(fmt.Sprintf("ramp_up_%d_%d", i, t),
						map[solver.VarRef]float64{p[i][t]: 1, p[i][t-1]: -1}, solver.LE, unit.RampUpRate)
				}
			}
			if unit.HasRampDownLimit() {
				if t == 0 {
					prob.AddConstraint(fmt.Sprintf("ramp_down_%d_%d", i, t),
						map[solver.VarRef]float64{p[i][t]: -1}, solver.LE, unit.RampDownRate-unit.InitialPowerMW)
				} else {
					prob.AddConstraint(fmt.Sprintf("ramp_down_%d_%d", i, t),
						map[solver.VarRef]float64{p[i][t-1]: 1, p[i][t]: -1}, solver.LE, unit.RampDownRate)
				}
			}
		}
	}

	status, err := prob.Solve(ctx)
	if err != nil {
		return nil, &model.SolverError{Reason: "multi_period solve failed", Err: err}
	}
	if status == solver.StatusInfeasible {
		return infeasibleSolution(n, T, status, time.Since(start)), nil
	}
	if status != solver.StatusOptimal {
		return nil, &model.SolverError{Reason: fmt.Sprintf("solver returned status %s", status)}
	}

	statusRows := make([][]int, n)
	powerRows := make([][]float64, n)
	totalStartups := 0
	totalShutdowns := 0
	unitPeriodsOn := 0
	for i := range units {
		statusRows[i] = make([]int, T)
		powerRows[i] = make([]float64, T)
		for t := 0; t < T; t++ {
			uVal := round01(prob.Value(u[i][t]))
			statusRows[i][t] = uVal
			powerRows[i][t] = prob.Value(p[i][t])
			unitPeriodsOn += uVal
			totalStartups += round01(prob.Value(v[i][t]))
			totalShutdowns += round01(prob.Value(w[i][t]))
		}
	}

	sol := &model.Solution{
		Status:    statusRows,
		Power:     powerRows,
		TotalCost: prob.ObjectiveValue(),
		IsOptimal: true,
		SolveTime: time.Since(start),
		Metadata: map[string]any{
			"solver_status":   status.String(),
			"num_units":       n,
			"num_periods":     T,
			"total_demand":    demand.Total(),
			"peak_demand":     demand.Peak(),
			"total_startups":  totalStartups,
			"total_shutdowns": totalShutdowns,
			"avg_units_on":    float64(unitPeriodsOn) / math.Max(float64(T), 1),
		},
	}

	if err := o.Auditor.Validate(sol, units, demand); err != nil {
		return nil, err
	}
	return sol, nil
}
