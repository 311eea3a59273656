package scenario

import "testing"

func TestParseValidScenario(t *testing.T) {
	raw := []byte(`{
		"variant": "multi_period",
		"units": [
			{"id": 1, "min_power_mw": 0, "max_power_mw": 100, "fuel_cost": 10, "min_uptime": 1, "min_downtime": 1}
		],
		"demand": [50, 60]
	}`)

	units, demand, variant, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if variant != "multi_period" {
		t.Fatalf("expected variant multi_period, got %q", variant)
	}
	if len(units) != 1 {
		t.Fatalf("expected 1 unit, got %d", len(units))
	}
	if demand.Periods() != 2 {
		t.Fatalf("expected 2 demand periods, got %d", demand.Periods())
	}
}

func TestParseRejectsInvalidUnit(t *testing.T) {
	raw := []byte(`{
		"variant": "single_period",
		"units": [{"id": 1, "min_power_mw": -5, "max_power_mw": 100}],
		"demand": [50]
	}`)

	_, _, _, err := Parse(raw)
	if err == nil {
		t.Fatalf("expected an error for a negative min_power_mw")
	}
}

func TestParseRejectsMalformedJSON(t *testing.T) {
	_, _, _, err := Parse([]byte("not json"))
	if err == nil {
		t.Fatalf("expected a JSON parse error")
	}
}
