package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagm07/SolarOS/internal/api/models"
	"github.com/sagm07/SolarOS/internal/model"
)

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	optimize := NewOptimizeHandler()
	portfolioH := NewPortfolioHandler()
	replayH := NewReplayHandler()

	api := r.Group("/api/v1")
	api.POST("/optimize", optimize.RunOptimize)
	api.POST("/replay", replayH.RunReplay)
	api.POST("/portfolio", portfolioH.RunAllocation)
	api.GET("/modes", ListModes)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestOptimizeEndpoint(t *testing.T) {
	r := testRouter()

	series := make([]model.TimeStep, 360)
	for i := range series {
		series[i].PotentialKWh = 5000
	}

	w := postJSON(t, r, "/api/v1/optimize", models.OptimizeRequest{
		SiteID: "desert-east",
		Series: series,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.OptimizeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "completed", resp.Status)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "desert-east", resp.Summary.SiteID)
	assert.Equal(t, 360, resp.Summary.HorizonSteps)
	assert.NotEmpty(t, resp.Summary.Calendar)
	assert.GreaterOrEqual(t, resp.Summary.UpliftValue, 0.0)
	assert.Empty(t, resp.Ledger) // not requested
}

func TestOptimizeEndpointUsesNamedPreset(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "expensive.yaml"), []byte(`
economics:
  cleaning_cost: 999999
`), 0644))
	t.Setenv("ECONOMICS_PRESET_DIR", dir)

	r := testRouter()
	series := make([]model.TimeStep, 360)
	for i := range series {
		series[i].PotentialKWh = 5000
	}

	w := postJSON(t, r, "/api/v1/optimize", models.OptimizeRequest{
		Series:        series,
		EconomicsFile: "expensive.yaml",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// An absurd cleaning cost makes every calendar empty.
	var resp models.OptimizeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Summary.Calendar)

	w = postJSON(t, r, "/api/v1/optimize", models.OptimizeRequest{
		Series:        series,
		EconomicsFile: "missing.yaml",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	var errResp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, "UNKNOWN_PRESET", errResp.Error.Code)
}

func TestOptimizeEndpointRejectsBadBody(t *testing.T) {
	r := testRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/optimize", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_REQUEST", resp.Error.Code)
}

func TestReplayEndpoint(t *testing.T) {
	r := testRouter()

	n := 120
	curve := func(v float64) []float64 {
		out := make([]float64, n)
		for i := range out {
			out[i] = v
		}
		return out
	}

	w := postJSON(t, r, "/api/v1/replay", models.ReplayRequest{
		Calendar:        []int{30, 60},
		PrecipitationMM: make([]float64, n),
		Curves: model.YieldCurves{
			Pessimistic: curve(2400),
			Median:      curve(3000),
			Optimistic:  curve(3600),
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.ReplayResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.LessOrEqual(t, resp.Band.P10, resp.Band.P50)
	assert.LessOrEqual(t, resp.Band.P50, resp.Band.P90)
	assert.Equal(t, resp.Band.P10, resp.Totals.Pessimistic)
	assert.Equal(t, resp.Band.P90, resp.Totals.Optimistic)
}

func TestPortfolioEndpoint(t *testing.T) {
	r := testRouter()

	w := postJSON(t, r, "/api/v1/portfolio", models.PortfolioRequest{
		CapacityLiters: 50,
		Candidates: []model.SiteScore{
			{SiteID: "a", Calendar: model.Calendar{5}, NetValue: 60, WaterLiters: 10},
			{SiteID: "b", Calendar: model.Calendar{5}, NetValue: 100, WaterLiters: 20},
			{SiteID: "c", Calendar: model.Calendar{5}, NetValue: 120, WaterLiters: 30},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.PortfolioResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Selection)
	assert.ElementsMatch(t, []string{"b", "c"}, resp.Selection.SelectedIDs())
	assert.InDelta(t, 220.0, resp.Selection.TotalNetValue, 1e-9)
}

func TestPortfolioEndpointRejectsBadMode(t *testing.T) {
	r := testRouter()

	w := postJSON(t, r, "/api/v1/portfolio", models.PortfolioRequest{
		Mode:           "GREEDY",
		CapacityLiters: 50,
		Candidates:     []model.SiteScore{{SiteID: "a", Calendar: model.Calendar{1}, NetValue: 10, WaterLiters: 5}},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_MODE", resp.Error.Code)
}

func TestModesEndpoint(t *testing.T) {
	r := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/modes", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Modes []models.ModeInfo `json:"modes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Modes, 3)
	names := make([]string, 0, 3)
	for _, m := range resp.Modes {
		names = append(names, m.Name)
	}
	assert.ElementsMatch(t, []string{"PROFIT", "CARBON", "WATER_SCARCITY"}, names)
}
