package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"unit-commitment/internal/analysis"
	"unit-commitment/internal/audit"
	"unit-commitment/internal/config"
	"unit-commitment/internal/optimizer"
	"unit-commitment/internal/report"
	"unit-commitment/internal/solver"
	"unit-commitment/internal/solver/bnb"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "optimize":
		cmdOptimize(os.Args[2:])
	case "validate":
		cmdValidate(os.Args[2:])
	case "audit":
		cmdAudit(os.Args[2:])
	case "compare":
		cmdCompare(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli optimize --config scenario.yaml --out results/schedule.csv")
	fmt.Println("  cli validate --config scenario.yaml")
	fmt.Println("  cli audit --config scenario.yaml")
	fmt.Println("  cli compare --config a.yaml,b.yaml,...")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - optimize solves the MILP and writes a per-unit-per-period CSV schedule")
	fmt.Println("  - validate checks a scenario file's inputs without invoking the solver")
	fmt.Println("  - audit re-runs the constraint auditor against a freshly solved solution")
	fmt.Println("  - compare solves multiple scenarios and ranks them by total cost")
}

func buildOptimizer(variant string, tolerance float64, newProblem solver.Factory) (optimizer.Optimizer, error) {
	aud := audit.Auditor{Tolerance: tolerance}
	switch variant {
	case "single_period":
		return optimizer.SinglePeriod{NewProblem: newProblem, Auditor: aud}, nil
	case "multi_period":
		return optimizer.MultiPeriod{NewProblem: newProblem, Auditor: aud}, nil
	default:
		return nil, fmt.Errorf("unsupported variant: %q", variant)
	}
}

func cmdOptimize(args []string) {
	fs := flag.NewFlagSet("optimize", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML scenario config")
	outPath := fs.String("out", "results/schedule.csv", "Output CSV path")
	_ = fs.Parse(args)

	if *cfgPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}

	cfg, units, demand, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}

	tolerance := cfg.Tolerance
	if tolerance == 0 {
		tolerance = optimizer.Tolerance
	}
	opt, err := buildOptimizer(cfg.Variant, tolerance, bnb.New)
	if err != nil {
		panic(err)
	}

	sol, err := opt.Optimize(context.Background(), units, demand)
	if err != nil {
		panic(err)
	}

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		panic(err)
	}
	if err := report.WriteScheduleCSV(*outPath, units, sol); err != nil {
		panic(err)
	}

	fmt.Printf("Wrote schedule to %s\n", *outPath)
	fmt.Printf("Optimal=%t TotalCost=$%.2f SolveTime=%s\n", sol.IsOptimal, sol.TotalCost, sol.SolveTime)
}

func cmdValidate(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML scenario config")
	_ = fs.Parse(args)

	if *cfgPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}

	_, units, demand, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Printf("invalid: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("valid: %d units, %d demand periods\n", len(units), demand.Periods())
}

func cmdAudit(args []string) {
	fs := flag.NewFlagSet("audit", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML scenario config")
	_ = fs.Parse(args)

	if *cfgPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}

	cfg, units, demand, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}

	tolerance := cfg.Tolerance
	if tolerance == 0 {
		tolerance = optimizer.Tolerance
	}
	opt, err := buildOptimizer(cfg.Variant, tolerance, bnb.New)
	if err != nil {
		panic(err)
	}

	sol, err := opt.Optimize(context.Background(), units, demand)
	if err != nil {
		fmt.Printf("solver error: %v\n", err)
		os.Exit(1)
	}
	if !sol.IsOptimal {
		fmt.Println("solver reported infeasible; no audit performed")
		return
	}

	aud := audit.Auditor{Tolerance: tolerance}
	if err := aud.Validate(sol, units, demand); err != nil {
		fmt.Printf("audit failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("audit passed")
}

func cmdCompare(args []string) {
	fs := flag.NewFlagSet("compare", flag.ExitOnError)
	cfgPaths := fs.String("config", "", "Comma-separated YAML scenario config paths")
	_ = fs.Parse(args)

	paths := splitPaths(*cfgPaths)
	if len(paths) == 0 {
		fmt.Println("--config is required")
		os.Exit(2)
	}

	scenarios := make([]analysis.NamedScenario, 0, len(paths))
	var variant string
	var tolerance float64
	for _, p := range paths {
		cfg, units, demand, err := config.Load(p)
		if err != nil {
			panic(err)
		}
		variant = cfg.Variant
		tolerance = cfg.Tolerance
		scenarios = append(scenarios, analysis.NamedScenario{Name: p, Units: units, Demand: demand})
	}
	if tolerance == 0 {
		tolerance = optimizer.Tolerance
	}

	opt, err := buildOptimizer(variant, tolerance, bnb.New)
	if err != nil {
		panic(err)
	}

	ranked, err := analysis.RankByTotalCost(context.Background(), opt, scenarios)
	if err != nil {
		panic(err)
	}

	fmt.Printf("%-4s %-30s %-10s %-12s\n", "rank", "scenario", "optimal", "total_cost")
	for i, r := range ranked {
		fmt.Printf("%-4d %-30s %-10t %-12.2f\n", i+1, r.Name, r.Solution.IsOptimal, r.Solution.TotalCost)
	}
}

func splitPaths(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
