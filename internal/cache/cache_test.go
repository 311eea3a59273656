package cache

import (
	"testing"
	"time"

	"unit-commitment/internal/model"
)

func TestKeyIsDeterministicAndSensitiveToInputs(t *testing.T) {
	u, _ := model.NewUnit(model.UnitParams{ID: 1, MinPowerMW: 0, MaxPowerMW: 100, FuelCost: 10})
	demand, _ := model.NewDemand([]float64{50})

	k1 := Key([]model.Unit{u}, demand, "single_period", 1e-6)
	k2 := Key([]model.Unit{u}, demand, "single_period", 1e-6)
	if k1 != k2 {
		t.Fatalf("expected identical inputs to produce identical keys")
	}

	demand2, _ := model.NewDemand([]float64{60})
	k3 := Key([]model.Unit{u}, demand2, "single_period", 1e-6)
	if k1 == k3 {
		t.Fatalf("expected different demand to produce a different key")
	}
}

func TestSetGetAndClear(t *testing.T) {
	c := &SolutionCache{store: make(map[string]*Entry), ttl: time.Second}

	sol := &model.Solution{Status: [][]int{{1}}, Power: [][]float64{{50}}}
	c.Set("key", sol)

	got, ok := c.Get("key")
	if !ok || got != sol {
		t.Fatalf("expected cached solution to be retrievable")
	}

	c.Clear()
	if _, ok := c.Get("key"); ok {
		t.Fatalf("expected cache to be empty after Clear")
	}
}
