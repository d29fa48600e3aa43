package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sagm07/SolarOS/internal/api/models"
	"github.com/sagm07/SolarOS/internal/config"
	"github.com/sagm07/SolarOS/internal/model"
	"github.com/sagm07/SolarOS/internal/optimizer"
	"github.com/sagm07/SolarOS/internal/replay"
)

// resolveParams builds the effective parameters for a request: fleet
// defaults, then the named server-side preset, then explicit overrides.
func resolveParams(economicsFile string, override models.EconomicsConfig) (model.EconomicParameters, error) {
	base := model.DefaultEconomicParameters()
	if economicsFile != "" {
		dir := os.Getenv("ECONOMICS_PRESET_DIR")
		if dir == "" {
			dir = "./examples/economics"
		}
		// Base strips any path components so requests can only name presets
		// inside the configured directory.
		preset, err := config.LoadEconomicsPreset(filepath.Join(dir, filepath.Base(economicsFile)))
		if err != nil {
			return model.EconomicParameters{}, fmt.Errorf("economics preset %q: %w", economicsFile, err)
		}
		base = preset.ToModelParams()
	}
	return override.Overlay(base), nil
}

// OptimizeHandler handles schedule-optimization requests
type OptimizeHandler struct{}

// NewOptimizeHandler creates a new optimize handler
func NewOptimizeHandler() *OptimizeHandler {
	return &OptimizeHandler{}
}

// RunOptimize handles POST /api/v1/optimize
func (h *OptimizeHandler) RunOptimize(c *gin.Context) {
	var req models.OptimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	params, err := resolveParams(req.EconomicsFile, req.Economics)
	if err != nil {
		respondError(c, http.StatusBadRequest, "UNKNOWN_PRESET", err.Error())
		return
	}
	series := model.YieldSeries(req.Series)

	summary, ledger, err := optimizeSeries(req.SiteID, series, params, req.Options.IncludeLedger)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}

	c.JSON(http.StatusOK, models.OptimizeResponse{
		ID:      uuid.NewString(),
		Status:  "completed",
		Summary: summary,
		Ledger:  ledger,
	})
}

// CompareOptimize handles POST /api/v1/optimize/compare
func (h *OptimizeHandler) CompareOptimize(c *gin.Context) {
	var req models.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if len(req.Variations) == 0 {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "at least one variation is required")
		return
	}

	series := model.YieldSeries(req.Series)
	results := make([]models.ComparisonResult, 0, len(req.Variations)+1)

	baseSummary, _, err := optimizeSeries(req.SiteID, series, req.BaseEconomics.ToModelParams(), false)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}
	results = append(results, models.ComparisonResult{Name: "base", Summary: baseSummary})

	for _, v := range req.Variations {
		merged := mergeEconomics(req.BaseEconomics, v.Economics)
		summary, _, err := optimizeSeries(req.SiteID, series, merged.ToModelParams(), false)
		if err != nil {
			respondError(c, http.StatusBadRequest, "INVALID_INPUT", "variation "+v.Name+": "+err.Error())
			return
		}
		results = append(results, models.ComparisonResult{Name: v.Name, Summary: summary})
	}

	c.JSON(http.StatusOK, models.CompareResponse{Comparison: results})
}

// optimizeSeries runs one optimization plus its never-clean baseline and,
// optionally, a replay of the chosen calendar for the per-step ledger.
func optimizeSeries(siteID string, series model.YieldSeries, params model.EconomicParameters, includeLedger bool) (models.OptimizeSummary, []models.LedgerRow, error) {
	res, err := optimizer.Optimize(series, params)
	if err != nil {
		return models.OptimizeSummary{}, nil, err
	}
	baseline, err := optimizer.AlwaysWaitValue(series, params)
	if err != nil {
		return models.OptimizeSummary{}, nil, err
	}

	summary := models.OptimizeSummary{
		SiteID:             siteID,
		Calendar:           res.Calendar,
		TotalNetValue:      res.TotalNetValue,
		BaselineValue:      baseline,
		UpliftValue:        res.TotalNetValue - baseline,
		HorizonSteps:       res.HorizonSteps,
		Cleanings:          res.Cleanings,
		WaterLiters:        res.WaterLiters,
		EnergyRecoveredKWh: res.EnergyRecoveredKWh,
		CO2OffsetKg:        res.CO2OffsetKg,
	}

	var ledger []models.LedgerRow
	if includeLedger && len(series) > 0 {
		eng, err := replay.New(params)
		if err != nil {
			return models.OptimizeSummary{}, nil, err
		}
		rep, err := eng.ReplaySeries(series, res.Calendar)
		if err != nil {
			return models.OptimizeSummary{}, nil, err
		}
		ledger = toLedgerRows(rep.Ledger)
	}

	return summary, ledger, nil
}

func toLedgerRows(rows []replay.LedgerRow) []models.LedgerRow {
	out := make([]models.LedgerRow, len(rows))
	for i, r := range rows {
		out[i] = models.LedgerRow{
			Index:           r.Index,
			Timestamp:       r.Timestamp,
			Action:          string(r.Action),
			PotentialKWh:    r.PotentialKWh,
			PrecipitationMM: r.PrecipitationMM,
			Efficiency:      r.Efficiency,
			EnergyKWh:       r.EnergyKWh,
			GainKWh:         r.GainKWh,
			CarbonKg:        r.CarbonKg,
			DirtyStart:      r.DirtyStart,
			DirtyEnd:        r.DirtyEnd,
			Value:           r.Value,
			CumValue:        r.CumValue,
		}
	}
	return out
}

// mergeEconomics overlays non-zero variation fields onto the base override.
func mergeEconomics(base, override models.EconomicsConfig) models.EconomicsConfig {
	out := base
	if override.ElectricityPrice != 0 {
		out.ElectricityPrice = override.ElectricityPrice
	}
	if override.CleaningCost != 0 {
		out.CleaningCost = override.CleaningCost
	}
	if override.CarbonPricePerKg != 0 {
		out.CarbonPricePerKg = override.CarbonPricePerKg
	}
	if override.WaterPricePerLiter != 0 {
		out.WaterPricePerLiter = override.WaterPricePerLiter
	}
	if override.WaterUsagePerClean != 0 {
		out.WaterUsagePerClean = override.WaterUsagePerClean
	}
	if override.MinDaysBetweenClean != 0 {
		out.MinDaysBetweenClean = override.MinDaysBetweenClean
	}
	if override.MinDirtinessThreshold != 0 {
		out.MinDirtinessThreshold = override.MinDirtinessThreshold
	}
	if override.MaxDirtyDays != 0 {
		out.MaxDirtyDays = override.MaxDirtyDays
	}
	if override.RainThresholdMM != 0 {
		out.RainThresholdMM = override.RainThresholdMM
	}
	if override.RainLookaheadDays != 0 {
		out.RainLookaheadDays = override.RainLookaheadDays
	}
	if override.RainLookaheadVolMM != 0 {
		out.RainLookaheadVolMM = override.RainLookaheadVolMM
	}
	if override.RainPenaltyFraction != 0 {
		out.RainPenaltyFraction = override.RainPenaltyFraction
	}
	if override.RainCleaningGamma != 0 {
		out.RainCleaningGamma = override.RainCleaningGamma
	}
	if override.DailyLossRate != 0 {
		out.DailyLossRate = override.DailyLossRate
	}
	if override.MinEfficiency != 0 {
		out.MinEfficiency = override.MinEfficiency
	}
	if override.CarbonFactorKg != 0 {
		out.CarbonFactorKg = override.CarbonFactorKg
	}
	return out
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}
