package main

import (
	"context"
	"flag"
	"fmt"

	"unit-commitment/internal/audit"
	"unit-commitment/internal/model"
	"unit-commitment/internal/optimizer"
	"unit-commitment/internal/scenario"
	"unit-commitment/internal/solver/bnb"
)

// Demo:
// - Build a small three-unit fleet and a demand profile inline (or load
//   one from a JSON scenario file)
// - Solve it with the multi-period optimizer (or, for a scenario file
//   whose variant is single_period, the single-period one)
// - Print the resulting commitment/dispatch schedule
func main() {
	scenarioPath := flag.String("scenario", "", "Path to JSON scenario file (optional; a built-in fleet is used otherwise)")
	flag.Parse()

	var units []model.Unit
	var demand model.Demand
	variant := "multi_period"

	if *scenarioPath != "" {
		var err error
		units, demand, variant, err = scenario.Load(*scenarioPath)
		if err != nil {
			panic(err)
		}
	} else {
		units, demand = builtinFleet()
	}

	var opt optimizer.Optimizer
	aud := audit.Auditor{}
	switch variant {
	case "single_period":
		opt = optimizer.SinglePeriod{NewProblem: bnb.New, Auditor: aud}
	default:
		opt = optimizer.MultiPeriod{NewProblem: bnb.New, Auditor: aud}
	}

	sol, err := opt.Optimize(context.Background(), units, demand)
	if err != nil {
		panic(err)
	}

	fmt.Printf("Loaded %d units, %d demand periods\n", len(units), demand.Periods())
	fmt.Printf("Optimal=%t TotalCost=$%.2f SolveTime=%s\n\n", sol.IsOptimal, sol.TotalCost, sol.SolveTime)

	for t := 0; t < sol.NumPeriods(); t++ {
		fmt.Printf("period %d (demand=%.1f MW):\n", t, demand.At(t))
		for i, u := range units {
			fmt.Printf("  unit %-4d status=%d power=%7.2f MW\n", u.ID, sol.UnitStatus(i, t), sol.UnitPower(i, t))
		}
	}
}

func builtinFleet() ([]model.Unit, model.Demand) {
	mustUnit := func(p model.UnitParams) model.Unit {
		u, err := model.NewUnit(p)
		if err != nil {
			panic(err)
		}
		return u
	}

	units := []model.Unit{
		mustUnit(model.UnitParams{ID: 1, Name: "baseload-coal", MinPowerMW: 100, MaxPowerMW: 400, StartupCost: 5000, FuelCost: 18, MinUptime: 4, MinDowntime: 4, RampUpRate: model.RampRate(80), RampDownRate: model.RampRate(80)}),
		mustUnit(model.UnitParams{ID: 2, Name: "mid-merit-gas", MinPowerMW: 50, MaxPowerMW: 250, StartupCost: 1500, FuelCost: 35, MinUptime: 2, MinDowntime: 2, RampUpRate: model.RampRate(120), RampDownRate: model.RampRate(120)}),
		mustUnit(model.UnitParams{ID: 3, Name: "peaker-gas", MinPowerMW: 0, MaxPowerMW: 150, StartupCost: 300, FuelCost: 70}),
	}

	demand, err := model.NewDemand([]float64{350, 500, 650, 600, 400})
	if err != nil {
		panic(err)
	}
	return units, demand
}
