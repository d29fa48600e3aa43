// Package portfolio allocates a shared water budget across competing sites
// with an exact 0/1 knapsack and reports selection insights.
package portfolio

import (
	"fmt"
	"math"

	"github.com/sagm07/SolarOS/internal/model"
)

// Mode selects the objective the allocator maximizes.
type Mode string

const (
	// ModeProfit maximizes net economic value.
	ModeProfit Mode = "PROFIT"
	// ModeCarbon maximizes CO2 offset, weighted so carbon dominates cost
	// tie-breaks.
	ModeCarbon Mode = "CARBON"
	// ModeWaterScarcity maximizes value per liter under a shrunk budget,
	// for drought operation.
	ModeWaterScarcity Mode = "WATER_SCARCITY"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeProfit, ModeCarbon, ModeWaterScarcity:
		return Mode(s), nil
	case "":
		return ModeProfit, nil
	default:
		return "", fmt.Errorf("unknown allocation mode %q", s)
	}
}

// Modes lists the recognized allocation modes for discovery endpoints.
func Modes() []Mode {
	return []Mode{ModeProfit, ModeCarbon, ModeWaterScarcity}
}

type Config struct {
	Mode Mode

	// CapacityLiters is the shared water budget for the planning window.
	CapacityLiters float64

	// CarbonPriorityWeight scales CO2 kg into objective units in ModeCarbon.
	// Default 10.
	CarbonPriorityWeight float64

	// ScarcityFactor shrinks the budget before solving in ModeWaterScarcity.
	// Default 0.70.
	ScarcityFactor float64
}

func (c Config) withDefaults() Config {
	if c.Mode == "" {
		c.Mode = ModeProfit
	}
	if c.CarbonPriorityWeight <= 0 {
		c.CarbonPriorityWeight = 10.0
	}
	if c.ScarcityFactor <= 0 || c.ScarcityFactor > 1 {
		c.ScarcityFactor = 0.70
	}
	return c
}

// objectiveValue maps one candidate to the knapsack objective for the mode.
func (c Config) objectiveValue(s model.SiteScore) float64 {
	switch c.Mode {
	case ModeCarbon:
		return s.CO2OffsetKg * c.CarbonPriorityWeight
	case ModeWaterScarcity:
		if s.WaterLiters <= 0 {
			return 0
		}
		return s.NetValue / s.WaterLiters
	default:
		return s.NetValue
	}
}

// Allocate selects the objective-maximizing subset of candidates whose total
// water cost fits the budget.
//
// The solve is an exact DP over integer liter units. Costs round up to whole
// liters and the capacity floors, so discretization never admits a selection
// the real budget cannot cover. Greedy-by-ratio is deliberately not used: it
// is suboptimal on realistic inputs.
//
// Zero candidates or zero capacity yield an empty selection, not an error.
func Allocate(candidates []model.SiteScore, cfg Config) (*model.PortfolioSelection, error) {
	cfg = cfg.withDefaults()
	if cfg.CapacityLiters < 0 {
		return nil, fmt.Errorf("capacity must be >= 0, got %f", cfg.CapacityLiters)
	}

	sel := &model.PortfolioSelection{}

	capacityLiters := cfg.CapacityLiters
	if cfg.Mode == ModeWaterScarcity {
		capacityLiters *= cfg.ScarcityFactor
	}
	capacityUnits := int(math.Floor(capacityLiters))

	// Candidates with nothing to gain never enter the solve; recording them
	// as deferred keeps the response explainable per site.
	type item struct {
		score model.SiteScore
		cost  int
		value float64
	}
	items := make([]item, 0, len(candidates))
	for _, s := range candidates {
		if len(s.Calendar) == 0 {
			sel.Deferred = append(sel.Deferred, model.DeferredSite{
				SiteID: s.SiteID,
				Reason: "no economical cleaning action over the horizon",
			})
			continue
		}
		v := cfg.objectiveValue(s)
		if v <= 0 {
			sel.Deferred = append(sel.Deferred, model.DeferredSite{
				SiteID: s.SiteID,
				Reason: "non-positive objective value",
			})
			continue
		}
		cost := int(math.Ceil(s.WaterLiters))
		if cost > capacityUnits {
			sel.Deferred = append(sel.Deferred, model.DeferredSite{
				SiteID: s.SiteID,
				Reason: "water cost exceeds total budget",
			})
			continue
		}
		items = append(items, item{score: s, cost: cost, value: v})
	}

	if len(items) == 0 || capacityUnits == 0 {
		for _, it := range items {
			sel.Deferred = append(sel.Deferred, model.DeferredSite{
				SiteID: it.score.SiteID,
				Reason: "water budget exhausted",
			})
		}
		return sel, nil
	}

	n := len(items)
	dp := make([][]float64, n+1)
	for i := 0; i <= n; i++ {
		dp[i] = make([]float64, capacityUnits+1)
	}
	for i := 1; i <= n; i++ {
		it := items[i-1]
		for w := 0; w <= capacityUnits; w++ {
			dp[i][w] = dp[i-1][w]
			if it.cost <= w {
				if take := dp[i-1][w-it.cost] + it.value; take > dp[i][w] {
					dp[i][w] = take
				}
			}
		}
	}

	// Reconstruct: an item is in the selection iff keeping it changed the
	// optimum at the remaining budget.
	w := capacityUnits
	taken := make([]bool, n)
	for i := n; i >= 1; i-- {
		if dp[i][w] != dp[i-1][w] {
			taken[i-1] = true
			w -= items[i-1].cost
		}
	}

	for i, it := range items {
		if !taken[i] {
			sel.Deferred = append(sel.Deferred, model.DeferredSite{
				SiteID: it.score.SiteID,
				Reason: "water budget exhausted",
			})
			continue
		}
		sel.Selected = append(sel.Selected, it.score)
		sel.ResourceUsedLiters += it.score.WaterLiters
		sel.TotalValue += it.value
		sel.TotalNetValue += it.score.NetValue
		sel.AggregateEnergyKWh += it.score.EnergyRecoveredKWh
		sel.AggregateCO2Kg += it.score.CO2OffsetKg
	}

	return sel, nil
}
