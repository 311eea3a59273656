package model

import "math"

// Unit represents a single dispatchable generation unit with its physical
// and economic operating characteristics. A Unit is immutable after
// construction; NewUnit validates its arguments and fails fast.
type Unit struct {
	ID   int
	Name string

	MinPowerMW float64
	MaxPowerMW float64

	StartupCost  float64
	ShutdownCost float64
	FuelCost     float64 // $/MWh

	MinUptime   int // periods
	MinDowntime int // periods

	RampUpRate   float64 // MW/period, math.Inf(1) = unbounded
	RampDownRate float64 // MW/period, math.Inf(1) = unbounded

	InitialStatus int // 0 or 1
	InitialPowerMW float64
}

// UnitParams is the argument struct for NewUnit. Zero-value MinUptime,
// MinDowntime default to 1, matching original_source's dataclass
// defaults, which apply only when a constructor argument is omitted.
//
// RampUpRate/RampDownRate use the same omitted-vs-explicit distinction,
// but Go's zero value for float64 is itself a meaningful ramp rate (no
// power change allowed between periods), so they cannot default on a
// zero value the way MinUptime/MinDowntime do. A nil pointer means
// "omitted, default to unbounded"; a non-nil pointer is used verbatim,
// including an explicit 0. Use RampRate to build one inline.
type UnitParams struct {
	ID   int
	Name string

	MinPowerMW float64
	MaxPowerMW float64

	StartupCost  float64
	ShutdownCost float64
	FuelCost     float64

	MinUptime   int
	MinDowntime int

	RampUpRate   *float64
	RampDownRate *float64

	InitialStatus  int
	InitialPowerMW float64
}

// RampRate returns a pointer to rate, for populating UnitParams.RampUpRate
// / RampDownRate inline, e.g. RampRate(0) to require no change between
// periods or RampRate(20) for a 20 MW/period limit.
func RampRate(rate float64) *float64 { return &rate }

// NewUnit validates p and returns an immutable Unit, or an *InvalidUnitError.
func NewUnit(p UnitParams) (Unit, error) {
	if p.MinUptime == 0 {
		p.MinUptime = 1
	}
	if p.MinDowntime == 0 {
		p.MinDowntime = 1
	}

	rampUp := math.Inf(1)
	if p.RampUpRate != nil {
		rampUp = *p.RampUpRate
	}
	rampDown := math.Inf(1)
	if p.RampDownRate != nil {
		rampDown = *p.RampDownRate
	}

	u := Unit{
		ID:             p.ID,
		Name:           p.Name,
		MinPowerMW:     p.MinPowerMW,
		MaxPowerMW:     p.MaxPowerMW,
		StartupCost:    p.StartupCost,
		ShutdownCost:   p.ShutdownCost,
		FuelCost:       p.FuelCost,
		MinUptime:      p.MinUptime,
		MinDowntime:    p.MinDowntime,
		RampUpRate:     rampUp,
		RampDownRate:   rampDown,
		InitialStatus:  p.InitialStatus,
		InitialPowerMW: p.InitialPowerMW,
	}

	if err := u.validate(); err != nil {
		return Unit{}, err
	}
	return u, nil
}

func (u Unit) validate() error {
	if u.MinPowerMW < 0 {
		return &InvalidUnitError{UnitID: u.ID, Reason: "min_power must be non-negative"}
	}
	if u.MaxPowerMW < u.MinPowerMW {
		return &InvalidUnitError{UnitID: u.ID, Reason: "max_power must be >= min_power"}
	}
	if u.StartupCost < 0 || u.ShutdownCost < 0 {
		return &InvalidUnitError{UnitID: u.ID, Reason: "startup_cost/shutdown_cost must be non-negative"}
	}
	if u.FuelCost < 0 {
		return &InvalidUnitError{UnitID: u.ID, Reason: "fuel_cost must be non-negative"}
	}
	if u.MinUptime < 1 || u.MinDowntime < 1 {
		return &InvalidUnitError{UnitID: u.ID, Reason: "min_uptime/min_downtime must be >= 1"}
	}
	if u.RampUpRate < 0 || u.RampDownRate < 0 {
		return &InvalidUnitError{UnitID: u.ID, Reason: "ramp_up_rate/ramp_down_rate must be non-negative"}
	}
	if u.InitialStatus != 0 && u.InitialStatus != 1 {
		return &InvalidUnitError{UnitID: u.ID, Reason: "initial_status must be 0 or 1"}
	}
	if u.InitialPowerMW < 0 {
		return &InvalidUnitError{UnitID: u.ID, Reason: "initial_power must be non-negative"}
	}
	return nil
}

// HasRampUpLimit reports whether the unit's ramp-up rate is finite.
func (u Unit) HasRampUpLimit() bool { return !math.IsInf(u.RampUpRate, 1) }

// HasRampDownLimit reports whether the unit's ramp-down rate is finite.
func (u Unit) HasRampDownLimit() bool { return !math.IsInf(u.RampDownRate, 1) }

// CanProduce reports whether powerMW is within [MinPowerMW, MaxPowerMW].
func (u Unit) CanProduce(powerMW float64) bool {
	return powerMW >= u.MinPowerMW && powerMW <= u.MaxPowerMW
}

// ProductionCost returns the linear fuel cost of producing powerMW for one period.
func (u Unit) ProductionCost(powerMW float64) float64 {
	return powerMW * u.FuelCost
}
