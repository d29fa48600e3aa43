package models

import (
	"github.com/sagm07/SolarOS/internal/model"
)

// OptimizeRequest represents the request body for a single-site optimization.
// EconomicsFile names a server-side preset; explicit Economics fields
// override the preset.
type OptimizeRequest struct {
	SiteID        string           `json:"site_id,omitempty"`
	Series        []model.TimeStep `json:"series" binding:"required"`
	EconomicsFile string           `json:"economics_file,omitempty"`
	Economics     EconomicsConfig  `json:"economics,omitempty"`
	Options       OptimizeOptions  `json:"options,omitempty"`
}

// OptimizeOptions contains optional optimization parameters
type OptimizeOptions struct {
	IncludeLedger bool `json:"include_ledger,omitempty"` // default: false
}

// EconomicsConfig defines per-request economic parameter overrides.
// Zero-valued fields fall back to the fleet defaults.
type EconomicsConfig struct {
	ElectricityPrice   float64 `json:"electricity_price,omitempty"`
	CleaningCost       float64 `json:"cleaning_cost,omitempty"`
	CarbonPricePerKg   float64 `json:"carbon_price_per_kg,omitempty"`
	WaterPricePerLiter float64 `json:"water_price_per_liter,omitempty"`
	WaterUsagePerClean float64 `json:"water_usage_per_clean,omitempty"`

	MinDaysBetweenClean   int `json:"min_days_between_clean,omitempty"`
	MinDirtinessThreshold int `json:"min_dirtiness_threshold,omitempty"`
	MaxDirtyDays          int `json:"max_dirty_days,omitempty"`

	RainThresholdMM     float64 `json:"rain_threshold_mm,omitempty"`
	RainLookaheadDays   int     `json:"rain_lookahead_days,omitempty"`
	RainLookaheadVolMM  float64 `json:"rain_lookahead_vol_mm,omitempty"`
	RainPenaltyFraction float64 `json:"rain_penalty_fraction,omitempty"`
	RainCleaningGamma   float64 `json:"rain_cleaning_gamma,omitempty"`

	DailyLossRate  float64 `json:"daily_loss_rate,omitempty"`
	MinEfficiency  float64 `json:"min_efficiency,omitempty"`
	CarbonFactorKg float64 `json:"carbon_factor_kg,omitempty"`
}

// ToModelParams overlays non-zero override fields onto the fleet defaults.
func (e EconomicsConfig) ToModelParams() model.EconomicParameters {
	return e.Overlay(model.DefaultEconomicParameters())
}

// Overlay applies the non-zero override fields onto p.
func (e EconomicsConfig) Overlay(p model.EconomicParameters) model.EconomicParameters {
	if e.ElectricityPrice != 0 {
		p.ElectricityPrice = e.ElectricityPrice
	}
	if e.CleaningCost != 0 {
		p.CleaningCost = e.CleaningCost
	}
	if e.CarbonPricePerKg != 0 {
		p.CarbonPricePerKg = e.CarbonPricePerKg
	}
	if e.WaterPricePerLiter != 0 {
		p.WaterPricePerLiter = e.WaterPricePerLiter
	}
	if e.WaterUsagePerClean != 0 {
		p.WaterUsagePerClean = e.WaterUsagePerClean
	}
	if e.MinDaysBetweenClean != 0 {
		p.MinDaysBetweenClean = e.MinDaysBetweenClean
	}
	if e.MinDirtinessThreshold != 0 {
		p.MinDirtinessThreshold = e.MinDirtinessThreshold
	}
	if e.MaxDirtyDays != 0 {
		p.MaxDirtyDays = e.MaxDirtyDays
	}
	if e.RainThresholdMM != 0 {
		p.RainThresholdMM = e.RainThresholdMM
	}
	if e.RainLookaheadDays != 0 {
		p.RainLookaheadDays = e.RainLookaheadDays
	}
	if e.RainLookaheadVolMM != 0 {
		p.RainLookaheadVolMM = e.RainLookaheadVolMM
	}
	if e.RainPenaltyFraction != 0 {
		p.RainPenaltyFraction = e.RainPenaltyFraction
	}
	if e.RainCleaningGamma != 0 {
		p.RainCleaningGamma = e.RainCleaningGamma
	}
	if e.DailyLossRate != 0 {
		p.DailyLossRate = e.DailyLossRate
	}
	if e.MinEfficiency != 0 {
		p.MinEfficiency = e.MinEfficiency
	}
	if e.CarbonFactorKg != 0 {
		p.CarbonFactorKg = e.CarbonFactorKg
	}
	return p
}

// CompareRequest represents a request to compare economics variations over
// the same series
type CompareRequest struct {
	SiteID        string               `json:"site_id,omitempty"`
	Series        []model.TimeStep     `json:"series" binding:"required"`
	BaseEconomics EconomicsConfig      `json:"base_economics,omitempty"`
	Variations    []EconomicsVariation `json:"variations" binding:"required"`
}

// EconomicsVariation defines a variation to test
type EconomicsVariation struct {
	Name      string          `json:"name" binding:"required"`
	Economics EconomicsConfig `json:"economics,omitempty"`
}

// ReplayRequest represents a request to replay a fixed calendar over three
// yield curves
type ReplayRequest struct {
	Calendar        []int             `json:"calendar"`
	Curves          model.YieldCurves `json:"curves" binding:"required"`
	PrecipitationMM []float64         `json:"precipitation_mm" binding:"required"`
	Economics       EconomicsConfig   `json:"economics,omitempty"`
}

// UncertaintyRequest represents a Monte Carlo uncertainty run
type UncertaintyRequest struct {
	SiteID         string              `json:"site_id,omitempty"`
	Weather        []model.WeatherStep `json:"weather" binding:"required"`
	PanelAreaM2    float64             `json:"panel_area_m2,omitempty"`    // default: 1000
	BaseEfficiency float64             `json:"base_efficiency,omitempty"`  // default: 0.20
	Economics      EconomicsConfig     `json:"economics,omitempty"`
	Simulation     SimulationConfig    `json:"simulation,omitempty"`
}

// SimulationConfig defines Monte Carlo parameters
type SimulationConfig struct {
	Trials           int     `json:"trials,omitempty"`
	IrradianceSigma  float64 `json:"irradiance_sigma,omitempty"`
	TemperatureSigma float64 `json:"temperature_sigma,omitempty"`
	Seed             uint64  `json:"seed,omitempty"`
	Workers          int     `json:"workers,omitempty"`
}

// PortfolioRequest represents a water-allocation request across sites
type PortfolioRequest struct {
	Candidates           []model.SiteScore `json:"candidates" binding:"required"`
	Mode                 string            `json:"mode,omitempty"` // default: PROFIT
	CapacityLiters       float64           `json:"capacity_liters"`
	CarbonPriorityWeight float64           `json:"carbon_priority_weight,omitempty"`
	ScarcityFactor       float64           `json:"scarcity_factor,omitempty"`
	IncludeInsights      bool              `json:"include_insights,omitempty"`
}
