package models

import (
	"time"

	"github.com/sagm07/SolarOS/internal/model"
	"github.com/sagm07/SolarOS/internal/portfolio"
)

// OptimizeResponse represents the response from an optimization run
type OptimizeResponse struct {
	ID      string          `json:"id,omitempty"`
	Status  string          `json:"status"`
	Summary OptimizeSummary `json:"summary"`
	Ledger  []LedgerRow     `json:"ledger,omitempty"`
}

// OptimizeSummary contains aggregated optimization results
type OptimizeSummary struct {
	SiteID             string  `json:"site_id,omitempty"`
	Calendar           []int   `json:"calendar"`
	TotalNetValue      float64 `json:"total_net_value"`
	BaselineValue      float64 `json:"baseline_value"` // never-clean value
	UpliftValue        float64 `json:"uplift_value"`
	HorizonSteps       int     `json:"horizon_steps"`
	Cleanings          int     `json:"cleanings"`
	WaterLiters        float64 `json:"water_liters"`
	EnergyRecoveredKWh float64 `json:"energy_recovered_kwh"`
	CO2OffsetKg        float64 `json:"co2_offset_kg"`
}

// LedgerRow represents one time step of replay output
type LedgerRow struct {
	Index           int       `json:"index"`
	Timestamp       time.Time `json:"timestamp,omitempty"`
	Action          string    `json:"action"` // "CLEAN", "WAIT"
	PotentialKWh    float64   `json:"potential_kwh"`
	PrecipitationMM float64   `json:"precipitation_mm"`
	Efficiency      float64   `json:"efficiency"`
	EnergyKWh       float64   `json:"energy_kwh"`
	GainKWh         float64   `json:"gain_kwh"`
	CarbonKg        float64   `json:"carbon_kg"`
	DirtyStart      int       `json:"dirty_start"`
	DirtyEnd        int       `json:"dirty_end"`
	Value           float64   `json:"value"`
	CumValue        float64   `json:"cum_value"`
}

// CompareResponse represents the response from a comparison
type CompareResponse struct {
	Comparison []ComparisonResult `json:"comparison"`
}

// ComparisonResult contains results for one variation
type ComparisonResult struct {
	Name    string          `json:"name"`
	Summary OptimizeSummary `json:"summary"`
}

// ReplayResponse represents the response from a scenario replay
type ReplayResponse struct {
	Band   model.UncertaintyBand `json:"band"`
	Totals CurveTotals           `json:"totals"`
}

// CurveTotals holds the per-curve net values behind a replay band
type CurveTotals struct {
	Pessimistic float64 `json:"pessimistic"`
	Median      float64 `json:"median"`
	Optimistic  float64 `json:"optimistic"`
}

// UncertaintyResponse represents the response from a Monte Carlo run.
// The band is over total produced energy (kWh); RiskAdjustedValue converts
// the conservative p10 into currency at the request's electricity price.
type UncertaintyResponse struct {
	ID                string                `json:"id,omitempty"`
	Band              model.UncertaintyBand `json:"band"`
	Mean              float64               `json:"mean"`
	StdDev            float64               `json:"std_dev"`
	SimulationsRun    int                   `json:"simulations_run"`
	RiskAdjustedValue float64               `json:"risk_adjusted_value"`
}

// PortfolioResponse represents the response from a water allocation
type PortfolioResponse struct {
	Selection *model.PortfolioSelection `json:"selection"`
	Insights  []portfolio.SiteInsight   `json:"insights,omitempty"`
}

// SiteInfo represents one catalog entry
type SiteInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Region string `json:"region"`
}

// ModeInfo describes an allocation mode
type ModeInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
