package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sagm07/SolarOS/internal/api/models"
	"github.com/sagm07/SolarOS/internal/portfolio"
)

// PortfolioHandler handles multi-site water-allocation requests
type PortfolioHandler struct{}

// NewPortfolioHandler creates a new portfolio handler
func NewPortfolioHandler() *PortfolioHandler {
	return &PortfolioHandler{}
}

// RunAllocation handles POST /api/v1/portfolio
func (h *PortfolioHandler) RunAllocation(c *gin.Context) {
	var req models.PortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	mode, err := portfolio.ParseMode(req.Mode)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_MODE", err.Error())
		return
	}

	sel, err := portfolio.Allocate(req.Candidates, portfolio.Config{
		Mode:                 mode,
		CapacityLiters:       req.CapacityLiters,
		CarbonPriorityWeight: req.CarbonPriorityWeight,
		ScarcityFactor:       req.ScarcityFactor,
	})
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}

	resp := models.PortfolioResponse{Selection: sel}
	if req.IncludeInsights {
		resp.Insights = portfolio.Insights(req.Candidates)
	}

	c.JSON(http.StatusOK, resp)
}

// ListModes handles GET /api/v1/modes
func ListModes(c *gin.Context) {
	descriptions := map[portfolio.Mode]string{
		portfolio.ModeProfit:        "Maximize net economic value across the fleet",
		portfolio.ModeCarbon:        "Maximize CO2 offset, weighted above cost",
		portfolio.ModeWaterScarcity: "Maximize value per liter under a reduced budget",
	}

	modes := make([]models.ModeInfo, 0, len(descriptions))
	for _, m := range portfolio.Modes() {
		modes = append(modes, models.ModeInfo{Name: string(m), Description: descriptions[m]})
	}
	c.JSON(http.StatusOK, gin.H{"modes": modes})
}
