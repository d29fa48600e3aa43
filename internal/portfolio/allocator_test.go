package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagm07/SolarOS/internal/model"
)

func candidate(id string, waterLiters, netValue, co2 float64) model.SiteScore {
	return model.SiteScore{
		SiteID:      id,
		Calendar:    model.Calendar{10},
		NetValue:    netValue,
		WaterLiters: waterLiters,
		CO2OffsetKg: co2,
	}
}

func TestAllocateExactOverGreedy(t *testing.T) {
	// Greedy-by-ratio takes a (60) then b (100) and stops at 160.
	// The exact optimum is b+c = 220.
	candidates := []model.SiteScore{
		candidate("a", 10, 60, 1),
		candidate("b", 20, 100, 1),
		candidate("c", 30, 120, 1),
	}

	sel, err := Allocate(candidates, Config{Mode: ModeProfit, CapacityLiters: 50})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"b", "c"}, sel.SelectedIDs())
	assert.InDelta(t, 220.0, sel.TotalNetValue, 1e-9)
	assert.InDelta(t, 50.0, sel.ResourceUsedLiters, 1e-9)
}

func TestAllocateRespectsCapacity(t *testing.T) {
	candidates := []model.SiteScore{
		candidate("a", 500, 900, 10),
		candidate("b", 500, 800, 10),
		candidate("c", 500, 700, 10),
	}

	sel, err := Allocate(candidates, Config{Mode: ModeProfit, CapacityLiters: 1000})
	require.NoError(t, err)

	assert.LessOrEqual(t, sel.ResourceUsedLiters, 1000.0)
	assert.ElementsMatch(t, []string{"a", "b"}, sel.SelectedIDs())
	assert.Len(t, sel.Deferred, 1)
	assert.Equal(t, "c", sel.Deferred[0].SiteID)
}

func TestAllocateEdgeCases(t *testing.T) {
	// Zero candidates.
	sel, err := Allocate(nil, Config{Mode: ModeProfit, CapacityLiters: 100})
	require.NoError(t, err)
	assert.Empty(t, sel.Selected)
	assert.Zero(t, sel.TotalNetValue)

	// Zero capacity.
	sel, err = Allocate([]model.SiteScore{candidate("a", 10, 50, 1)}, Config{Mode: ModeProfit})
	require.NoError(t, err)
	assert.Empty(t, sel.Selected)

	// A candidate larger than the whole budget is never selected.
	sel, err = Allocate([]model.SiteScore{
		candidate("big", 5000, 9999, 1),
		candidate("small", 100, 50, 1),
	}, Config{Mode: ModeProfit, CapacityLiters: 500})
	require.NoError(t, err)
	assert.Equal(t, []string{"small"}, sel.SelectedIDs())

	// Negative capacity is a caller error.
	_, err = Allocate(nil, Config{CapacityLiters: -1})
	assert.Error(t, err)
}

func TestAllocateDefersNonActionableCandidates(t *testing.T) {
	noCalendar := model.SiteScore{SiteID: "idle", NetValue: 100, WaterLiters: 10}
	negative := candidate("loss", 10, -50, 1)

	sel, err := Allocate([]model.SiteScore{noCalendar, negative}, Config{Mode: ModeProfit, CapacityLiters: 100})
	require.NoError(t, err)

	assert.Empty(t, sel.Selected)
	require.Len(t, sel.Deferred, 2)
	ids := []string{sel.Deferred[0].SiteID, sel.Deferred[1].SiteID}
	assert.ElementsMatch(t, []string{"idle", "loss"}, ids)
}

func TestAllocateCarbonMode(t *testing.T) {
	// Profit prefers a; carbon prefers b.
	candidates := []model.SiteScore{
		candidate("a", 100, 500, 5),
		candidate("b", 100, 100, 80),
	}

	sel, err := Allocate(candidates, Config{Mode: ModeCarbon, CapacityLiters: 100})
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, sel.SelectedIDs())

	sel, err = Allocate(candidates, Config{Mode: ModeProfit, CapacityLiters: 100})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, sel.SelectedIDs())
}

func TestAllocateWaterScarcityShrinksBudget(t *testing.T) {
	// 1000 L budget shrinks to 700 under scarcity, so only one 500 L site
	// fits; the denser site wins.
	candidates := []model.SiteScore{
		candidate("dense", 500, 900, 10),
		candidate("sparse", 500, 600, 10),
	}

	sel, err := Allocate(candidates, Config{Mode: ModeWaterScarcity, CapacityLiters: 1000})
	require.NoError(t, err)
	assert.Equal(t, []string{"dense"}, sel.SelectedIDs())
	assert.LessOrEqual(t, sel.ResourceUsedLiters, 700.0)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeProfit, m)

	m, err = ParseMode("WATER_SCARCITY")
	require.NoError(t, err)
	assert.Equal(t, ModeWaterScarcity, m)

	_, err = ParseMode("YOLO")
	assert.Error(t, err)
}

func TestInsightsFlagsOutlier(t *testing.T) {
	mk := func(id string, recovered float64, cleans int) model.SiteScore {
		cal := make(model.Calendar, cleans)
		for i := range cal {
			cal[i] = i * 20
		}
		return model.SiteScore{
			SiteID:             id,
			Calendar:           cal,
			NetValue:           1000,
			WaterLiters:        float64(cleans) * 500,
			EnergyRecoveredKWh: recovered,
		}
	}

	candidates := []model.SiteScore{
		mk("s1", 200, 2), mk("s2", 210, 2), mk("s3", 190, 2),
		mk("s4", 205, 2), mk("s5", 195, 2), mk("s6", 198, 2),
		mk("s7", 202, 2), mk("s8", 1200, 2), // clear outlier
	}

	insights := Insights(candidates)
	require.Len(t, insights, len(candidates))

	byID := map[string]SiteInsight{}
	for _, in := range insights {
		byID[in.SiteID] = in
	}
	assert.True(t, byID["s8"].Anomalous)
	assert.False(t, byID["s1"].Anomalous)
	assert.InDelta(t, 100.0, byID["s1"].RecoveryPerCleanKWh, 1e-9)
	assert.Greater(t, byID["s1"].ValuePerLiter, 0.0)
}
