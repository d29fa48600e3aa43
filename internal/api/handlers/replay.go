package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sagm07/SolarOS/internal/api/models"
	"github.com/sagm07/SolarOS/internal/replay"
)

// ReplayHandler handles scenario-replay requests
type ReplayHandler struct{}

// NewReplayHandler creates a new replay handler
func NewReplayHandler() *ReplayHandler {
	return &ReplayHandler{}
}

// RunReplay handles POST /api/v1/replay
func (h *ReplayHandler) RunReplay(c *gin.Context) {
	var req models.ReplayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	eng, err := replay.New(req.Economics.ToModelParams())
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}

	band, err := eng.Band(req.Curves, req.PrecipitationMM, req.Calendar)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}

	// Per-curve totals for explainability; the band alone hides which curve
	// produced which bound.
	totals := models.CurveTotals{}
	for _, cv := range []struct {
		curve []float64
		dst   *float64
	}{
		{req.Curves.Pessimistic, &totals.Pessimistic},
		{req.Curves.Median, &totals.Median},
		{req.Curves.Optimistic, &totals.Optimistic},
	} {
		res, err := eng.ReplayCurve(cv.curve, req.PrecipitationMM, nil, req.Calendar)
		if err != nil {
			respondError(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
			return
		}
		*cv.dst = res.TotalNetValue
	}

	c.JSON(http.StatusOK, models.ReplayResponse{Band: band, Totals: totals})
}
