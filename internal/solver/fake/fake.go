// Package fake is a brute-force MILP backend used only by tests. It
// enumerates every combination of the problem's binary variables and
// solves the remaining continuous relaxation exactly with gonum's
// simplex, keeping the first strictly-best feasible assignment in a
// fixed enumeration order. That makes it fully deterministic, unlike
// bnb's tree search, which is the property the package tests in
// internal/optimizer and internal/analysis need from their fixtures (spec scenarios are all small enough to brute-force: at most
// two units and four periods).
package fake

import (
	"context"
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"unit-commitment/internal/solver"
)

// MaxBinaryVariables bounds how large a problem this backend will accept,
// so a misuse in production code fails loudly instead of enumerating for
// an impractical amount of time.
const MaxBinaryVariables = 24

type variable struct {
	lower float64
	upper float64
	kind  solver.Kind
}

type constraint struct {
	terms map[solver.VarRef]float64
	sense solver.Sense
	rhs   float64
}

// Problem is a brute-force solver.Problem.
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
	p.vars = append(p.vars, variable{lower: lower, upper: upper, kind: kind})
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

func (p *Problem) Value(v solver.VarRef) float64 { return p.values[v] }

func (p *Problem) ObjectiveValue() float64 { return p.objVal }

func (p *Problem) Solve(ctx context.Context) (solver.Status, error) {
	var binaryIdx []int
	for j, v := range p.vars {
		if v.kind == solver.Binary {
			binaryIdx = append(binaryIdx, j)
		}
	}
	if len(binaryIdx) > MaxBinaryVariables {
		p.status = solver.StatusError
		return p.status, errors.New("fake: too many binary variables for brute force")
	}

	combos := 1 << len(binaryIdx)
	bestObj := math.Inf(1)
	var bestX []float64

	for combo := 0; combo < combos; combo++ {
		if err := ctx.Err(); err != nil {
			p.status = solver.StatusError
			return p.status, err
		}

		lower := make([]float64, len(p.vars))
		upper := make([]float64, len(p.vars))
		for j, v := range p.vars {
			lower[j] = v.lower
			upper[j] = v.upper
		}
		for bit, j := range binaryIdx {
			val := float64((combo >> bit) & 1)
			lower[j] = val
			upper[j] = val
		}

		x, obj, ok := p.solveFixed(lower, upper)
		if !ok {
			continue
		}
		if obj < bestObj {
			bestObj = obj
			bestX = x
		}
	}

	if bestX == nil {
		p.status = solver.StatusInfeasible
		return p.status, nil
	}

	p.values = bestX
	p.objVal = bestObj
	p.status = solver.StatusOptimal
	return p.status, nil
}

// solveFixed solves the continuous LP relaxation for one fixed assignment
// of binary variables, returning the original-space solution.
func (p *Problem) solveFixed(lower, upper []float64) ([]float64, float64, bool) {
	nv := len(p.vars)

	type pendingRow struct {
		coefs []float64
		rhs   float64
		slack float64
	}
	var pending []pendingRow

	for j := 0; j < nv; j++ {
		if !math.IsInf(upper[j], 1) {
			row := make([]float64, nv)
			row[j] = 1
			pending = append(pending, pendingRow{coefs: row, rhs: upper[j] - lower[j], slack: 1})
		}
	}

	for _, c := range p.constraints {
		row := make([]float64, nv)
		shiftedRHS := c.rhs
		for ref, coef := range c.terms {
			row[ref] += coef
			shiftedRHS -= coef * lower[ref]
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

	if len(pending) == 0 {
		x := make([]float64, nv)
		copy(x, lower)
		return x, p.objectiveAt(x), true
	}

	numSlacks := 0
	for _, pr := range pending {
		if pr.slack != 0 {
			numSlacks++
		}
	}
	cols := nv + numSlacks

	rows := make([][]float64, len(pending))
	rhs := make([]float64, len(pending))
	slackIdx := nv
	for i, pr := range pending {
		row := make([]float64, cols)
		copy(row, pr.coefs)
		if pr.slack != 0 {
			row[slackIdx] = pr.slack
			slackIdx++
		}
		rows[i] = row
		rhs[i] = pr.rhs
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
		return nil, 0, false
	}

	x := make([]float64, nv)
	for j := 0; j < nv; j++ {
		x[j] = yFull[j] + lower[j]
	}
	return x, p.objectiveAt(x), true
}

func (p *Problem) objectiveAt(x []float64) float64 {
	total := 0.0
	for ref, coef := range p.objective {
		total += coef * x[ref]
	}
	return total
}
