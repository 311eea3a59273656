package model

import (
	"errors"
	"math"
	"testing"
)

func TestNewUnit(t *testing.T) {
	tests := []struct {
		name    string
		params  UnitParams
		wantErr bool
	}{
		{
			name: "valid minimal unit gets default uptime/downtime/ramps",
			params: UnitParams{
				ID: 1, MinPowerMW: 0, MaxPowerMW: 100, FuelCost: 10,
			},
			wantErr: false,
		},
		{
			name:    "negative min power",
			params:  UnitParams{ID: 1, MinPowerMW: -1, MaxPowerMW: 100},
			wantErr: true,
		},
		{
			name:    "max below min",
			params:  UnitParams{ID: 1, MinPowerMW: 50, MaxPowerMW: 10},
			wantErr: true,
		},
		{
			name:    "negative startup cost",
			params:  UnitParams{ID: 1, MinPowerMW: 0, MaxPowerMW: 10, StartupCost: -5},
			wantErr: true,
		},
		{
			name:    "zero min uptime defaults to 1, not an error",
			params:  UnitParams{ID: 1, MinPowerMW: 0, MaxPowerMW: 10},
			wantErr: false,
		},
		{
			name:    "negative min uptime explicit is invalid",
			params:  UnitParams{ID: 1, MinPowerMW: 0, MaxPowerMW: 10, MinUptime: -1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := NewUnit(tt.params)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got none")
				}
				var invalid *InvalidUnitError
				if !errors.As(err, &invalid) {
					t.Fatalf("expected *InvalidUnitError, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if u.MinUptime != 1 || u.MinDowntime != 1 {
				t.Fatalf("expected default min up/down time of 1, got %d/%d", u.MinUptime, u.MinDowntime)
			}
			if !math.IsInf(u.RampUpRate, 1) || !math.IsInf(u.RampDownRate, 1) {
				t.Fatalf("expected default unbounded ramps")
			}
		})
	}
}

func TestUnitHasRampLimits(t *testing.T) {
	u, err := NewUnit(UnitParams{ID: 1, MinPowerMW: 0, MaxPowerMW: 10, RampUpRate: RampRate(5)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !u.HasRampUpLimit() {
		t.Fatalf("expected ramp up limit to be finite")
	}
	if u.HasRampDownLimit() {
		t.Fatalf("expected ramp down limit to remain unbounded")
	}
}

func TestUnitExplicitZeroRampRateIsPreservedNotDefaulted(t *testing.T) {
	u, err := NewUnit(UnitParams{ID: 1, MinPowerMW: 0, MaxPowerMW: 10, RampUpRate: RampRate(0), RampDownRate: RampRate(0)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !u.HasRampUpLimit() || u.RampUpRate != 0 {
		t.Fatalf("expected an explicit ramp_up_rate=0 to be enforced as 0, got %v", u.RampUpRate)
	}
	if !u.HasRampDownLimit() || u.RampDownRate != 0 {
		t.Fatalf("expected an explicit ramp_down_rate=0 to be enforced as 0, got %v", u.RampDownRate)
	}
}

func TestUnitNegativeRampRateIsInvalid(t *testing.T) {
	_, err := NewUnit(UnitParams{ID: 1, MinPowerMW: 0, MaxPowerMW: 10, RampUpRate: RampRate(-1)})
	if err == nil {
		t.Fatalf("expected an error for a negative ramp_up_rate")
	}
	var invalid *InvalidUnitError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected *InvalidUnitError, got %T", err)
	}
}
