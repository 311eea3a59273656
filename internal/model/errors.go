package model

import "fmt"

// InvalidUnitError is raised when a Unit is constructed with out-of-range
// attributes. It is raised eagerly, at construction time.
type InvalidUnitError struct {
	UnitID int
	Reason string
}

func (e *InvalidUnitError) Error() string {
	return fmt.Sprintf("unit %d invalid: %s", e.UnitID, e.Reason)
}

// InvalidDemandError is raised when a Demand is constructed from an empty
// or negative values slice.
type InvalidDemandError struct {
	Reason string
}

func (e *InvalidDemandError) Error() string {
	return fmt.Sprintf("demand invalid: %s", e.Reason)
}

// InputShapeError is raised when the number of demand periods does not
// match what the chosen optimizer variant requires, or when no units were
// supplied.
type InputShapeError struct {
	Reason string
}

func (e *InputShapeError) Error() string {
	return fmt.Sprintf("input shape invalid: %s", e.Reason)
}

// InfeasibleCapacityError is raised when the fleet's combined max_power
// cannot meet the relevant demand, prior to any solver invocation.
type InfeasibleCapacityError struct {
	TotalCapacity float64
	Required      float64
}

func (e *InfeasibleCapacityError) Error() string {
	return fmt.Sprintf("insufficient capacity: total %.2f MW, required %.2f MW", e.TotalCapacity, e.Required)
}

// SolverError wraps a failure raised by the solver backend itself, as
// opposed to an infeasible-but-valid solver outcome.
type SolverError struct {
	Reason string
	Err    error
}

func (e *SolverError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("solver error: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("solver error: %s", e.Reason)
}

func (e *SolverError) Unwrap() error { return e.Err }

// ConstraintViolation is raised by the constraint auditor when a solution
// that a solver reported as optimal fails to satisfy a physical or
// operational constraint. This always indicates a model or solver bug and
// must never be silenced.
type ConstraintViolation struct {
	Kind   string
	UnitID *int
	Period *int
	Detail string
}

func (e *ConstraintViolation) Error() string {
	switch {
	case e.UnitID != nil && e.Period != nil:
		return fmt.Sprintf("constraint violation (%s) unit=%d period=%d: %s", e.Kind, *e.UnitID, *e.Period, e.Detail)
	case e.Period != nil:
		return fmt.Sprintf("constraint violation (%s) period=%d: %s", e.Kind, *e.Period, e.Detail)
	case e.UnitID != nil:
		return fmt.Sprintf("constraint violation (%s) unit=%d: %s", e.Kind, *e.UnitID, e.Detail)
	default:
		return fmt.Sprintf("constraint violation (%s): %s", e.Kind, e.Detail)
	}
}

// IntPtr is a small helper for constructing the optional UnitID/Period
// fields of ConstraintViolation.
func IntPtr(i int) *int { return &i }
