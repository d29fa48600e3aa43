package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sagm07/SolarOS/internal/api/models"
	"github.com/sagm07/SolarOS/internal/forecast"
	"github.com/sagm07/SolarOS/internal/model"
	"github.com/sagm07/SolarOS/internal/montecarlo"
	"github.com/sagm07/SolarOS/internal/optimizer"
	"github.com/sagm07/SolarOS/internal/replay"
)

const (
	defaultPanelAreaM2    = 1000.0
	defaultBaseEfficiency = 0.20
)

// UncertaintyHandler handles Monte Carlo uncertainty requests
type UncertaintyHandler struct{}

// NewUncertaintyHandler creates a new uncertainty handler
func NewUncertaintyHandler() *UncertaintyHandler {
	return &UncertaintyHandler{}
}

// RunUncertainty handles POST /api/v1/uncertainty
//
// Each trial perturbs the weather, converts it to a yield series, optimizes a
// calendar for it, and records the total energy produced under that calendar.
// The resulting band is an energy band; risk-adjusted value prices its p10.
func (h *UncertaintyHandler) RunUncertainty(c *gin.Context) {
	var req models.UncertaintyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	area := req.PanelAreaM2
	if area <= 0 {
		area = defaultPanelAreaM2
	}
	baseEff := req.BaseEfficiency
	if baseEff <= 0 {
		baseEff = defaultBaseEfficiency
	}
	params := req.Economics.ToModelParams()
	if err := params.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}

	pipeline := func(steps []model.WeatherStep) (float64, error) {
		series := forecast.YieldFromWeather(steps, area, baseEff)
		res, err := optimizer.Optimize(series, params)
		if err != nil {
			return 0, err
		}
		eng, err := replay.New(params)
		if err != nil {
			return 0, err
		}
		rep, err := eng.ReplaySeries(series, res.Calendar)
		if err != nil {
			return 0, err
		}
		total := 0.0
		for _, row := range rep.Ledger {
			total += row.EnergyKWh
		}
		return total, nil
	}

	outcome, err := montecarlo.Run(c.Request.Context(), req.Weather, montecarlo.Config{
		Trials:           req.Simulation.Trials,
		IrradianceSigma:  req.Simulation.IrradianceSigma,
		TemperatureSigma: req.Simulation.TemperatureSigma,
		Seed:             req.Simulation.Seed,
		Workers:          req.Simulation.Workers,
	}, pipeline)
	if err != nil {
		respondError(c, http.StatusBadRequest, "SIMULATION_ERROR", fmt.Sprintf("monte carlo run failed: %v", err))
		return
	}

	c.JSON(http.StatusOK, models.UncertaintyResponse{
		ID:                uuid.NewString(),
		Band:              outcome.Band,
		Mean:              outcome.Mean,
		StdDev:            outcome.StdDev,
		SimulationsRun:    outcome.SimulationsRun,
		RiskAdjustedValue: montecarlo.RiskAdjustedValue(outcome.Band.P10, params.ElectricityPrice),
	})
}
