// Package scenario loads unit commitment scenarios (a fleet plus a
// demand profile) from JSON, using the same field names as the CLI's
// YAML config. The HTTP request body has the same shape except that its
// ramp fields are named ramp_up_rate_mw/ramp_down_rate_mw.
package scenario

import (
	"encoding/json"
	"fmt"
	"os"

	"unit-commitment/internal/model"
)

// Unit is the wire shape of a single generation unit.
type Unit struct {
	ID   int    `json:"id"`
	Name string `json:"name"`

	MinPowerMW float64 `json:"min_power_mw"`
	MaxPowerMW float64 `json:"max_power_mw"`

	StartupCost  float64 `json:"startup_cost"`
	ShutdownCost float64 `json:"shutdown_cost"`
	FuelCost     float64 `json:"fuel_cost"`

	MinUptime   int `json:"min_uptime"`
	MinDowntime int `json:"min_downtime"`

	// RampUpRate/RampDownRate are pointers so an omitted field (nil,
	// defaults to unbounded in NewUnit) can be told apart from an
	// explicit 0 (no change between periods allowed).
	RampUpRate   *float64 `json:"ramp_up_rate"`
	RampDownRate *float64 `json:"ramp_down_rate"`

	InitialStatus  int     `json:"initial_status"`
	InitialPowerMW float64 `json:"initial_power_mw"`
}

func (u Unit) toParams() model.UnitParams {
	return model.UnitParams{
		ID:             u.ID,
		Name:           u.Name,
		MinPowerMW:     u.MinPowerMW,
		MaxPowerMW:     u.MaxPowerMW,
		StartupCost:    u.StartupCost,
		ShutdownCost:   u.ShutdownCost,
		FuelCost:       u.FuelCost,
		MinUptime:      u.MinUptime,
		MinDowntime:    u.MinDowntime,
		RampUpRate:     u.RampUpRate,
		RampDownRate:   u.RampDownRate,
		InitialStatus:  u.InitialStatus,
		InitialPowerMW: u.InitialPowerMW,
	}
}

// Scenario is the wire shape of a scenario file: a fleet, a demand
// profile, and which optimizer variant it targets.
type Scenario struct {
	Variant string    `json:"variant"`
	Units   []Unit    `json:"units"`
	Demand  []float64 `json:"demand"`
}

// Load reads path, parses it as JSON, and constructs the domain Units
// and Demand it describes.
func Load(path string) ([]model.Unit, model.Demand, string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, model.Demand{}, "", err
	}
	return Parse(raw)
}

// Parse builds the domain Units and Demand from raw scenario JSON.
func Parse(raw []byte) ([]model.Unit, model.Demand, string, error) {
	var s Scenario
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, model.Demand{}, "", err
	}

	units := make([]model.Unit, 0, len(s.Units))
	for _, uc := range s.Units {
		u, err := model.NewUnit(uc.toParams())
		if err != nil {
			return nil, model.Demand{}, "", fmt.Errorf("scenario invalid: %w", err)
		}
		units = append(units, u)
	}

	demand, err := model.NewDemand(s.Demand)
	if err != nil {
		return nil, model.Demand{}, "", fmt.Errorf("scenario invalid: %w", err)
	}

	return units, demand, s.Variant, nil
}
