package fake

import (
	"context"
	"math"
	"testing"

	"unit-commitment/internal/solver"
)

func TestSolveSimpleKnapsack(t *testing.T) {
	// Two binary items: item0 costs 3 profit 4, item1 costs 2 profit 3.
	// Capacity 3. Optimal is item0 alone (profit 4) over item1 alone
	// (profit 3); maximizing profit is minimizing -profit.
	p := New()
	x0 := p.AddVariable("x0", 0, 1, solver.Binary)
	x1 := p.AddVariable("x1", 0, 1, solver.Binary)

	p.AddConstraint("capacity", map[solver.VarRef]float64{x0: 3, x1: 2}, solver.LE, 3)
	p.SetObjective(map[solver.VarRef]float64{x0: -4, x1: -3})

	status, err := p.Solve(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != solver.StatusOptimal {
		t.Fatalf("expected optimal, got %v", status)
	}
	if math.Abs(p.ObjectiveValue()-(-4)) > 1e-6 {
		t.Fatalf("expected objective -4, got %v", p.ObjectiveValue())
	}
	if p.Value(x0) < 0.5 || p.Value(x1) > 0.5 {
		t.Fatalf("expected x0=1, x1=0, got x0=%v x1=%v", p.Value(x0), p.Value(x1))
	}
}

func TestSolveInfeasible(t *testing.T) {
	p := New()
	x := p.AddVariable("x", 0, 1, solver.Binary)
	p.AddConstraint("impossible", map[solver.VarRef]float64{x: 1}, solver.GE, 2)
	p.SetObjective(map[solver.VarRef]float64{x: 1})

	status, err := p.Solve(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != solver.StatusInfeasible {
		t.Fatalf("expected infeasible, got %v", status)
	}
}

func TestSolveMixedContinuousAndBinary(t *testing.T) {
	// Minimize p subject to p >= 5, p <= 10*u, u binary. Cheapest is u=1, p=5.
	p := New()
	power := p.AddVariable("power", 0, 10, solver.Continuous)
	u := p.AddVariable("u", 0, 1, solver.Binary)

	p.AddConstraint("meet-demand", map[solver.VarRef]float64{power: 1}, solver.GE, 5)
	p.AddConstraint("capacity", map[solver.VarRef]float64{power: 1, u: -10}, solver.LE, 0)
	p.SetObjective(map[solver.VarRef]float64{power: 1})

	status, err := p.Solve(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != solver.StatusOptimal {
		t.Fatalf("expected optimal, got %v", status)
	}
	if math.Abs(p.Value(power)-5) > 1e-6 {
		t.Fatalf("expected power=5, got %v", p.Value(power))
	}
	if p.Value(u) < 0.5 {
		t.Fatalf("expected u=1, got %v", p.Value(u))
	}
}
