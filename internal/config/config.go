// Package config loads the YAML fleet/demand/variant configuration used
// by the CLI command.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"unit-commitment/internal/model"
)

// Config is the on-disk configuration shape.
type Config struct {
	Variant   string       `yaml:"variant"` // "single_period" or "multi_period"
	Tolerance float64      `yaml:"tolerance"`
	Units     []UnitConfig `yaml:"units"`
	Demand    []float64    `yaml:"demand"`
}

type UnitConfig struct {
	ID   int    `yaml:"id"`
	Name string `yaml:"name"`

	MinPowerMW float64 `yaml:"min_power_mw"`
	MaxPowerMW float64 `yaml:"max_power_mw"`

	StartupCost  float64 `yaml:"startup_cost"`
	ShutdownCost float64 `yaml:"shutdown_cost"`
	FuelCost     float64 `yaml:"fuel_cost"`

	MinUptime   int `yaml:"min_uptime"`
	MinDowntime int `yaml:"min_downtime"`

	// RampUpRate/RampDownRate are pointers so an omitted key (nil,
	// defaults to unbounded in NewUnit) can be told apart from an
	// explicit 0 (no change between periods allowed).
	RampUpRate   *float64 `yaml:"ramp_up_rate"`
	RampDownRate *float64 `yaml:"ramp_down_rate"`

	InitialStatus  int     `yaml:"initial_status"`
	InitialPowerMW float64 `yaml:"initial_power_mw"`
}

func (u UnitConfig) toParams() model.UnitParams {
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

// Load reads path, parses it as YAML, and validates it by constructing
// the domain types it describes.
func Load(path string) (*Config, []model.Unit, model.Demand, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, nil, model.Demand{}, err
	}
	units, demand, err := c.Validate()
	if err != nil {
		return nil, nil, model.Demand{}, err
	}
	return c, units, demand, nil
}

// LoadUnchecked parses path as YAML without constructing or validating
// the domain types it describes. Useful for inspecting a partial or
// in-progress config.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate constructs the domain Units and Demand the config describes,
// so a malformed config fails with the same error kinds validate_inputs
// would raise rather than surfacing later, deep inside an optimizer run.
func (c *Config) Validate() ([]model.Unit, model.Demand, error) {
	if c == nil {
		return nil, model.Demand{}, errors.New("config is nil")
	}
	if c.Variant != "single_period" && c.Variant != "multi_period" {
		return nil, model.Demand{}, fmt.Errorf("config invalid: variant must be single_period or multi_period, got %q", c.Variant)
	}

	units := make([]model.Unit, 0, len(c.Units))
	for _, uc := range c.Units {
		u, err := model.NewUnit(uc.toParams())
		if err != nil {
			return nil, model.Demand{}, fmt.Errorf("config invalid: %w", err)
		}
		units = append(units, u)
	}

	demand, err := model.NewDemand(c.Demand)
	if err != nil {
		return nil, model.Demand{}, fmt.Errorf("config invalid: %w", err)
	}

	return units, demand, nil
}
