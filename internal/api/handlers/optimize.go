package handlers

import (
	"net/http"

	"unit-commitment/internal/analysis"
	"unit-commitment/internal/api/models"
	"unit-commitment/internal/audit"
	"unit-commitment/internal/cache"
	"unit-commitment/internal/model"
	"unit-commitment/internal/optimizer"
	"unit-commitment/internal/solver"

	"github.com/gin-gonic/gin"
)

// OptimizeHandler handles unit commitment optimization requests.
type OptimizeHandler struct {
	newProblem solver.Factory
	cache      *cache.SolutionCache
}

// NewOptimizeHandler creates a new optimize handler backed by newProblem
// (the MILP solver factory) and the process-wide solution cache.
func NewOptimizeHandler(newProblem solver.Factory) *OptimizeHandler {
	return &OptimizeHandler{newProblem: newProblem, cache: cache.GetCache()}
}

func (h *OptimizeHandler) buildOptimizer(variant string, tolerance float64) (optimizer.Optimizer, error) {
	aud := audit.Auditor{Tolerance: tolerance}
	switch variant {
	case "single_period":
		return optimizer.SinglePeriod{NewProblem: h.newProblem, Auditor: aud}, nil
	case "multi_period":
		return optimizer.MultiPeriod{NewProblem: h.newProblem, Auditor: aud}, nil
	default:
		return nil, &model.InputShapeError{Reason: "variant must be \"single_period\" or \"multi_period\""}
	}
}

func unitsFromRequest(reqs []models.UnitRequest) ([]model.Unit, error) {
	units := make([]model.Unit, 0, len(reqs))
	for _, r := range reqs {
		u, err := model.NewUnit(model.UnitParams{
			ID:             r.ID,
			Name:           r.Name,
			MinPowerMW:     r.MinPowerMW,
			MaxPowerMW:     r.MaxPowerMW,
			StartupCost:    r.StartupCost,
			ShutdownCost:   r.ShutdownCost,
			FuelCost:       r.FuelCost,
			MinUptime:      r.MinUptime,
			MinDowntime:    r.MinDowntime,
			RampUpRate:     r.RampUpRateMW,
			RampDownRate:   r.RampDownRateMW,
			InitialStatus:  r.InitialStatus,
			InitialPowerMW: r.InitialPowerMW,
		})
		if err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	return units, nil
}

func solutionResponse(sol *model.Solution) models.SolutionResponse {
	return models.SolutionResponse{
		Status:    sol.Status,
		Power:     sol.Power,
		TotalCost: sol.TotalCost,
		IsOptimal: sol.IsOptimal,
		SolveTime: sol.SolveTimeSeconds(),
		Metadata:  sol.Metadata,
	}
}

// Optimize handles POST /api/v1/optimize.
func (h *OptimizeHandler) Optimize(c *gin.Context) {
	var req models.OptimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(&model.InputShapeError{Reason: err.Error()})
		return
	}

	units, err := unitsFromRequest(req.Units)
	if err != nil {
		c.Error(err)
		return
	}
	demand, err := model.NewDemand(req.Demand)
	if err != nil {
		c.Error(err)
		return
	}

	tolerance := req.Tolerance
	if tolerance == 0 {
		tolerance = optimizer.Tolerance
	}
	opt, err := h.buildOptimizer(req.Variant, tolerance)
	if err != nil {
		c.Error(err)
		return
	}

	key := cache.Key(units, demand, req.Variant, tolerance)
	sol, ok := h.cache.Get(key)
	if !ok {
		sol, err = opt.Optimize(c.Request.Context(), units, demand)
		if err != nil {
			c.Error(err)
			return
		}
		h.cache.Set(key, sol)
	}

	c.JSON(http.StatusOK, models.OptimizeResponse{Variant: req.Variant, Solution: solutionResponse(sol)})
}

// Compare handles POST /api/v1/compare: solves every named scenario with
// the same variant and tolerance and returns them ranked cheapest first.
func (h *OptimizeHandler) Compare(c *gin.Context) {
	var req models.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(&model.InputShapeError{Reason: err.Error()})
		return
	}

	tolerance := req.Tolerance
	if tolerance == 0 {
		tolerance = optimizer.Tolerance
	}
	opt, err := h.buildOptimizer(req.Variant, tolerance)
	if err != nil {
		c.Error(err)
		return
	}

	scenarios := make([]analysis.NamedScenario, 0, len(req.Scenarios))
	for _, s := range req.Scenarios {
		units, err := unitsFromRequest(s.Units)
		if err != nil {
			c.Error(err)
			return
		}
		demand, err := model.NewDemand(s.Demand)
		if err != nil {
			c.Error(err)
			return
		}
		scenarios = append(scenarios, analysis.NamedScenario{Name: s.Name, Units: units, Demand: demand})
	}

	ranked, err := analysis.RankByTotalCost(c.Request.Context(), opt, scenarios)
	if err != nil {
		c.Error(err)
		return
	}

	out := make([]models.ComparisonResult, len(ranked))
	for i, r := range ranked {
		out[i] = models.ComparisonResult{Rank: i + 1, Name: r.Name, Solution: solutionResponse(r.Solution)}
	}
	c.JSON(http.StatusOK, models.CompareResponse{Variant: req.Variant, Comparison: out})
}

// Variants handles GET /api/v1/variants.
func Variants(c *gin.Context) {
	c.JSON(http.StatusOK, models.VariantsResponse{Variants: []models.VariantInfo{
		{Name: "single_period", Description: "No temporal coupling; one commitment/dispatch decision per unit.", MinPeriods: 1},
		{Name: "multi_period", Description: "Full temporal coupling: startup/shutdown tracking, min up/down time, ramp limits.", MinPeriods: 2},
	}})
}
