// Package bnb is a branch-and-bound MILP backend for the solver.Problem
// capability set, built directly on gonum's dense matrices and simplex
// solver. Its tree-search shape (relax, branch on a fractional binary
// variable, prune by bound) follows the enumeration-tree approach used by
// jjhbw/GoMILP's internal ilp package; this adapter rebuilds the standard
// form it feeds to gonum from scratch, so it does not need that package's
// unexported subProblem/enumerationTree machinery.
package bnb

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"unit-commitment/internal/solver"
)

const infeasibleGap = 1e-7

type variable struct {
	name  string
	lower float64
	upper float64
	kind  solver.Kind
}

type constraint struct {
	terms map[solver.VarRef]float64
	sense solver.Sense
	rhs   float64
}

// Problem is a solver.Problem backed by branch-and-bound over gonum's
// simplex. It is built once per optimize() call and discarded after Solve.
type Problem struct {
	vars        []variable
	constraints []constraint
	objective   map[solver.VarRef]float64

	status solver.Status
	values []float64
	objVal float64
}

// New returns an empty Problem. It satisfies solver.Factory.
func New() solver.Problem {
	return &Problem{objective: map[solver.VarRef]float64{}}
}

func (p *Problem) AddVariable(name string, lower, upper float64, kind solver.Kind) solver.VarRef {
	p.vars = append(p.vars, variable{name: name, lower: lower, upper: upper, kind: kind})
	return solver.VarRef(len(p.vars) - 1)
}

func (p *Problem) AddConstraint(name string, terms map[solver.VarRef]float64, sense solver.Sense, rhs float64) {
	cp := make(map[solver.VarRef]float64, len(terms))
	for k, v := range terms {
		cp[k] = v
	}
	p.constraints = append(p.constraints, constraint{terms: cp, sense: sense, rhs: rhs})
}

func (p *Problem) SetObjective(terms map[solver.VarRef]float64) {
	p.objective = make(map[solver.VarRef]float64, len(terms))
	for k, v := range terms {
		p.objective[k] = v
	}
}

func (p *Problem) Value(v solver.VarRef) float64 {
	return p.values[v]
}

func (p *Problem) ObjectiveValue() float64 { return p.objVal }

// node is one branch-and-bound subproblem: the variable bound overrides
// relative to the Problem's declared bounds.
type node struct {
	lower []float64
	upper []float64
}

func (p *Problem) Solve(ctx context.Context) (solver.Status, error) {
	n := len(p.vars)
	root := node{lower: make([]float64, n), upper: make([]float64, n)}
	for j, v := range p.vars {
		root.lower[j] = v.lower
		root.upper[j] = v.upper
	}

	var best *relaxation
	stack := []node{root}
	explored := 0
	const maxNodes = 200000

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			p.status = solver.StatusError
			return p.status, err
		}
		explored++
		if explored > maxNodes {
			p.status = solver.StatusError
			return p.status, errors.New("bnb: node limit exceeded")
		}

		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		rel, err := p.solveRelaxation(cur)
		if err != nil {
			// Infeasible or singular relaxation: prune this branch.
			continue
		}

		if best != nil && rel.objVal >= best.objVal-infeasibleGap {
			// Cannot improve on the incumbent; prune.
			continue
		}

		branchVar, frac := firstFractionalBinary(p.vars, cur, rel.x)
		if branchVar < 0 {
			// Integer-feasible: candidate incumbent.
			if best == nil || rel.objVal < best.objVal {
				best = rel
			}
			continue
		}
		_ = frac

		downLower := append([]float64{}, cur.lower...)
		downUpper := append([]float64{}, cur.upper...)
		downUpper[branchVar] = 0
		stack = append(stack, node{lower: downLower, upper: downUpper})

		upLower := append([]float64{}, cur.lower...)
		upUpper := append([]float64{}, cur.upper...)
		upLower[branchVar] = 1
		stack = append(stack, node{lower: upLower, upper: upUpper})
	}

	if best == nil {
		p.status = solver.StatusInfeasible
		return p.status, nil
	}

	p.values = best.x
	p.objVal = best.objVal
	p.status = solver.StatusOptimal
	return p.status, nil
}

type relaxation struct {
	x      []float64
	objVal float64
}

// solveRelaxation builds the standard-form LP for the given bound overrides
// and solves it with gonum's simplex, returning the original-space solution
// (slacks and shifts removed) and true objective value.
func (p *Problem) solveRelaxation(n node) (*relaxation, error) {
	nv := len(p.vars)
	for j := 0; j < nv; j++ {
		if n.lower[j] > n.upper[j]+infeasibleGap {
			return nil, errors.New("bnb: empty bound range")
		}
	}

	// y_j = x_j - lower_j, y_j >= 0. One extra row per finite upper bound
	// (y_j + s = upper_j - lower_j), plus one row per declared constraint.
	var rows [][]float64
	var rhs []float64
	cols := nv // plus slack columns appended below, one per inequality row

	type pendingRow struct {
		coefs []float64
		rhs   float64
		slack float64 // +1, -1, or 0 (equality, no slack)
	}
	var pending []pendingRow

	for j := 0; j < nv; j++ {
		if !math.IsInf(n.upper[j], 1) {
			row := make([]float64, nv)
			row[j] = 1
			pending = append(pending, pendingRow{coefs: row, rhs: n.upper[j] - n.lower[j], slack: 1})
		}
	}

	for _, c := range p.constraints {
		row := make([]float64, nv)
		shiftedRHS := c.rhs
		for ref, coef := range c.terms {
			row[ref] += coef
			shiftedRHS -= coef * n.lower[ref]
		}
		switch c.sense {
		case solver.LE:
			pending = append(pending, pendingRow{coefs: row, rhs: shiftedRHS, slack: 1})
		case solver.GE:
			pending = append(pending, pendingRow{coefs: row, rhs: shiftedRHS, slack: -1})
		case solver.EQ:
			pending = append(pending, pendingRow{coefs: row, rhs: shiftedRHS, slack: 0})
		}
	}

	numSlacks := 0
	for _, pr := range pending {
		if pr.slack != 0 {
			numSlacks++
		}
	}
	cols = nv + numSlacks

	slackIdx := nv
	for _, pr := range pending {
		row := make([]float64, cols)
		copy(row, pr.coefs)
		if pr.slack != 0 {
			row[slackIdx] = pr.slack
			slackIdx++
		}
		rows = append(rows, row)
		rhs = append(rhs, pr.rhs)
	}

	if len(rows) == 0 {
		// No constraints at all: trivially optimal at the lower bounds.
		x := make([]float64, nv)
		copy(x, n.lower)
		return &relaxation{x: x, objVal: p.objectiveAt(x)}, nil
	}

	flat := make([]float64, 0, len(rows)*cols)
	for _, r := range rows {
		flat = append(flat, r...)
	}
	A := mat.NewDense(len(rows), cols, flat)

	c := make([]float64, cols)
	for ref, coef := range p.objective {
		c[ref] = coef
	}

	_, yFull, err := lp.Simplex(c, A, rhs, 0, nil)
	if err != nil {
		if errors.Is(err, lp.ErrInfeasible) || errors.Is(err, lp.ErrSingular) {
			return nil, err
		}
		return nil, fmt.Errorf("bnb: simplex failed: %w", err)
	}

	x := make([]float64, nv)
	for j := 0; j < nv; j++ {
		x[j] = yFull[j] + n.lower[j]
	}

	return &relaxation{x: x, objVal: p.objectiveAt(x)}, nil
}

func (p *Problem) objectiveAt(x []float64) float64 {
	total := 0.0
	for ref, coef := range p.objective {
		total += coef * x[ref]
	}
	return total
}

// firstFractionalBinary returns the index of the first binary variable
// whose relaxed value is not within tolerance of 0 or 1 in the current
// node's bounds, or -1 if every binary variable is integral (the node's
// bounds may already have fixed a binary variable, in which case it is
// skipped).
func firstFractionalBinary(vars []variable, n node, x []float64) (int, float64) {
	const tol = 1e-6
	for j, v := range vars {
		if v.kind != solver.Binary {
			continue
		}
		if n.lower[j] == n.upper[j] {
			continue // already fixed by an ancestor branch
		}
		frac := x[j] - math.Floor(x[j])
		if frac > tol && frac < 1-tol {
			return j, frac
		}
	}
	return -1, 0
}
