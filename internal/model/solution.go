package model

import "time"

// Solution is the immutable result of an optimizer run. It owns its own
// status/power tables; the Unit/Demand values used to build it are only
// borrowed during construction.
//
// Status and Power are rectangular: len(Status) == len(Power) == NumUnits,
// and every row has length NumPeriods.
type Solution struct {
	Status [][]int
	Power  [][]float64

	TotalCost float64
	IsOptimal bool
	SolveTime time.Duration

	Metadata map[string]any
}

// NumUnits returns n, the number of units in the solution.
func (s *Solution) NumUnits() int { return len(s.Status) }

// NumPeriods returns T, the number of periods in the solution.
func (s *Solution) NumPeriods() int {
	if len(s.Status) == 0 {
		return 0
	}
	return len(s.Status[0])
}

// UnitStatus returns the commitment of unit i at period t.
func (s *Solution) UnitStatus(i, t int) int { return s.Status[i][t] }

// UnitPower returns the dispatch of unit i at period t.
func (s *Solution) UnitPower(i, t int) float64 { return s.Power[i][t] }

// TotalPower returns the aggregate dispatch across all units at period t.
func (s *Solution) TotalPower(t int) float64 {
	sum := 0.0
	for i := range s.Power {
		sum += s.Power[i][t]
	}
	return sum
}

// SolveTimeSeconds returns SolveTime as a float64 number of seconds, for
// JSON serialization at the HTTP boundary.
func (s *Solution) SolveTimeSeconds() float64 { return s.SolveTime.Seconds() }
