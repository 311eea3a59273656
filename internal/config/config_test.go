package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempYAML(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestLoadValidConfig(t *testing.T) {
	path := writeTempYAML(t, `
variant: single_period
tolerance: 0.000001
units:
  - id: 1
    min_power_mw: 0
    max_power_mw: 100
    fuel_cost: 10
demand: [50]
`)

	_, units, demand, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(units) != 1 {
		t.Fatalf("expected 1 unit, got %d", len(units))
	}
	if demand.Periods() != 1 {
		t.Fatalf("expected 1 demand period, got %d", demand.Periods())
	}
}

func TestLoadRejectsUnknownVariant(t *testing.T) {
	path := writeTempYAML(t, `
variant: hourly
units:
  - id: 1
    max_power_mw: 100
demand: [50]
`)

	_, _, _, err := Load(path)
	if err == nil {
		t.Fatalf("expected an error for an unknown variant")
	}
}

func TestLoadRejectsInvalidUnit(t *testing.T) {
	path := writeTempYAML(t, `
variant: single_period
units:
  - id: 1
    min_power_mw: 50
    max_power_mw: 10
demand: [5]
`)

	_, _, _, err := Load(path)
	if err == nil {
		t.Fatalf("expected an error for max_power < min_power")
	}
}
