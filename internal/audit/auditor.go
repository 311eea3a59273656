// Package audit independently verifies that a Solution the optimizer
// reports as optimal actually satisfies every physical and operational
// constraint. It never trusts the solver's own feasibility claim.
package audit

import (
	"fmt"

	"unit-commitment/internal/model"
)

// DefaultTolerance is the absolute slack allowed when comparing floating
// point quantities against a limit, matching the 1e-6 used throughout
// the constraint checks this package is grounded on.
const DefaultTolerance = 1e-6

// Auditor checks a Solution against the units and demand it was built
// from. The zero value uses DefaultTolerance.
type Auditor struct {
	// Tolerance overrides DefaultTolerance when positive.
	Tolerance float64
}

func (a Auditor) tolerance() float64 {
	if a.Tolerance > 0 {
		return a.Tolerance
	}
	return DefaultTolerance
}

// Validate runs every check in turn and returns the first violation
// found, wrapped as a *model.ConstraintViolation. A nil return means the
// solution is fully consistent with units and demand.
func (a Auditor) Validate(sol *model.Solution, units []model.Unit, demand model.Demand) error {
	if err := a.validatePowerBalance(sol, demand); err != nil {
		return err
	}
	if err := a.validateCapacityLimits(sol, units); err != nil {
		return err
	}
	if err := a.validateRampRates(sol, units); err != nil {
		return err
	}
	if err := a.validateMinUpDownTime(sol, units); err != nil {
		return err
	}
	return nil
}

func (a Auditor) validatePowerBalance(sol *model.Solution, demand model.Demand) error {
	tol := a.tolerance()
	for t := 0; t < demand.Periods(); t++ {
		total := sol.TotalPower(t)
		required := demand.At(t)
		if diff := total - required; diff > tol || diff < -tol {
			return &model.ConstraintViolation{
				Kind:   "power_balance",
				Period: model.IntPtr(t),
				Detail: fmt.Sprintf("generated %.4f MW, required %.4f MW", total, required),
			}
		}
	}
	return nil
}

func (a Auditor) validateCapacityLimits(sol *model.Solution, units []model.Unit) error {
	tol := a.tolerance()
	for i, u := range units {
		for t := 0; t < sol.NumPeriods(); t++ {
			status := sol.UnitStatus(i, t)
			power := sol.UnitPower(i, t)

			switch status {
			case 1:
				if power < u.MinPowerMW-tol || power > u.MaxPowerMW+tol {
					return &model.ConstraintViolation{
						Kind:   "capacity_limit",
						UnitID: model.IntPtr(u.ID),
						Period: model.IntPtr(t),
						Detail: fmt.Sprintf("power %.4f MW outside [%.4f, %.4f] MW", power, u.MinPowerMW, u.MaxPowerMW),
					}
				}
			case 0:
				if power > tol {
					return &model.ConstraintViolation{
						Kind:   "capacity_limit",
						UnitID: model.IntPtr(u.ID),
						Period: model.IntPtr(t),
						Detail: fmt.Sprintf("unit is off but producing %.4f MW", power),
					}
				}
			}
		}
	}
	return nil
}

func (a Auditor) validateRampRates(sol *model.Solution, units []model.Unit) error {
	if sol.NumPeriods() <= 1 {
		return nil
	}
	tol := a.tolerance()

	for i, u := range units {
		prevPower := u.InitialPowerMW
		for t := 0; t < sol.NumPeriods(); t++ {
			currPower := sol.UnitPower(i, t)
			change := currPower - prevPower

			if u.HasRampUpLimit() && change > u.RampUpRate+tol {
				return &model.ConstraintViolation{
					Kind:   "ramp_up",
					UnitID: model.IntPtr(u.ID),
					Period: model.IntPtr(t),
					Detail: fmt.Sprintf("change %.4f MW exceeds ramp-up limit %.4f MW", change, u.RampUpRate),
				}
			}
			if u.HasRampDownLimit() && change < -u.RampDownRate-tol {
				return &model.ConstraintViolation{
					Kind:   "ramp_down",
					UnitID: model.IntPtr(u.ID),
					Period: model.IntPtr(t),
					Detail: fmt.Sprintf("change %.4f MW exceeds ramp-down limit %.4f MW", -change, u.RampDownRate),
				}
			}
			prevPower = currPower
		}
	}
	return nil
}

func (a Auditor) validateMinUpDownTime(sol *model.Solution, units []model.Unit) error {
	for i, u := range units {
		// The run in progress before period 0 is treated as already
		// satisfying its minimum, since the model places no constraint on
		// it either; only transitions inside the horizon are checked.
		prevStatus := u.InitialStatus
		consecutiveOn := 0
		consecutiveOff := 0
		if prevStatus == 0 {
			consecutiveOff = u.MinDowntime
		} else {
			consecutiveOn = u.MinUptime
		}

		for t := 0; t < sol.NumPeriods(); t++ {
			currStatus := sol.UnitStatus(i, t)

			if currStatus == 1 {
				consecutiveOn++
				if prevStatus == 0 {
					if consecutiveOff < u.MinDowntime {
						return &model.ConstraintViolation{
							Kind:   "min_downtime",
							UnitID: model.IntPtr(u.ID),
							Period: model.IntPtr(t),
							Detail: fmt.Sprintf("was off for %d periods, need %d", consecutiveOff, u.MinDowntime),
						}
					}
					consecutiveOff = 0
				}
			} else {
				consecutiveOff++
				if prevStatus == 1 {
					if consecutiveOn < u.MinUptime {
						return &model.ConstraintViolation{
							Kind:   "min_uptime",
							UnitID: model.IntPtr(u.ID),
							Period: model.IntPtr(t),
							Detail: fmt.Sprintf("was on for %d periods, need %d", consecutiveOn, u.MinUptime),
						}
					}
					consecutiveOn = 0
				}
			}
			prevStatus = currStatus
		}
	}
	return nil
}
