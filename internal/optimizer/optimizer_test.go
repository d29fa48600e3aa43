package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagm07/SolarOS/internal/model"
)

// constantSeries builds a dry series with uniform hourly potential.
func constantSeries(n int, potentialKWh float64) model.YieldSeries {
	s := make(model.YieldSeries, n)
	for i := range s {
		s[i].PotentialKWh = potentialKWh
	}
	return s
}

func TestOptimizeEmptySeries(t *testing.T) {
	res, err := Optimize(model.YieldSeries{}, model.DefaultEconomicParameters())
	require.NoError(t, err)
	assert.Empty(t, res.Calendar)
	assert.Zero(t, res.TotalNetValue)
	assert.Zero(t, res.HorizonSteps)
}

func TestOptimizeRejectsInvalidInput(t *testing.T) {
	p := model.DefaultEconomicParameters()
	p.MaxDirtyDays = 0
	_, err := Optimize(constantSeries(10, 100), p)
	assert.Error(t, err)

	_, err = Optimize(model.YieldSeries{{PotentialKWh: -5}}, model.DefaultEconomicParameters())
	assert.Error(t, err)
}

func TestOptimizeBeatsAlwaysWait(t *testing.T) {
	params := model.DefaultEconomicParameters()
	series := constantSeries(720, 5000)
	// A rain burst partway through exercises the natural-cleaning branch.
	series[300].PrecipitationMM = 8

	res, err := Optimize(series, params)
	require.NoError(t, err)
	baseline, err := AlwaysWaitValue(series, params)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, res.TotalNetValue, baseline)
	// High uniform yield makes cleaning clearly profitable here.
	assert.NotEmpty(t, res.Calendar)
	assert.Greater(t, res.TotalNetValue, baseline)
}

func TestOptimizeSkipsUneconomicalCleaning(t *testing.T) {
	params := model.DefaultEconomicParameters()
	// Tiny yield: the recovery gain can never pay for a crew.
	series := constantSeries(720, 10)

	res, err := Optimize(series, params)
	require.NoError(t, err)
	baseline, err := AlwaysWaitValue(series, params)
	require.NoError(t, err)

	assert.Empty(t, res.Calendar)
	assert.InDelta(t, baseline, res.TotalNetValue, 1e-6)
}

func TestOptimizeDeterministic(t *testing.T) {
	params := model.DefaultEconomicParameters()
	series := constantSeries(720, 5000)
	series[100].PrecipitationMM = 3
	series[400].PrecipitationMM = 12

	a, err := Optimize(series, params)
	require.NoError(t, err)
	b, err := Optimize(series, params)
	require.NoError(t, err)

	assert.Equal(t, a.Calendar, b.Calendar)
	assert.Equal(t, a.TotalNetValue, b.TotalNetValue)
	assert.Equal(t, a.EnergyRecoveredKWh, b.EnergyRecoveredKWh)
}

func TestOptimizeEligibilityGates(t *testing.T) {
	params := model.DefaultEconomicParameters()
	series := constantSeries(720, 5000)
	series[250].PrecipitationMM = 2

	res, err := Optimize(series, params)
	require.NoError(t, err)
	require.NotEmpty(t, res.Calendar)

	// No two cleanings fewer than the minimum spacing apart.
	for i := 1; i < len(res.Calendar); i++ {
		assert.GreaterOrEqual(t, res.Calendar[i]-res.Calendar[i-1], params.MinDaysBetweenClean)
	}

	// Every cleaning fires at or above the dirtiness threshold.
	dirty := 0
	next := 0
	for t2 := 0; t2 < len(series); t2++ {
		if next < len(res.Calendar) && res.Calendar[next] == t2 {
			assert.GreaterOrEqual(t, dirty, params.MinDirtinessThreshold,
				"cleaning at step %d with dirty=%d", t2, dirty)
			dirty = 0
			next++
		} else {
			dirty = params.NextDirtyAfterWait(dirty, series[t2].PrecipitationMM)
		}
	}
}

func TestRainMonotonicity(t *testing.T) {
	params := model.DefaultEconomicParameters()

	dry := constantSeries(720, 5000)
	wet := constantSeries(720, 5000)
	wet[240].PrecipitationMM = 20 // day 10

	// Under identical wait-only bookkeeping, the rain-bearing series carries
	// strictly less soiling at day 11.
	dirtyDry, dirtyWet := 0, 0
	for i := 0; i < 264; i++ {
		dirtyDry = params.NextDirtyAfterWait(dirtyDry, dry[i].PrecipitationMM)
		dirtyWet = params.NextDirtyAfterWait(dirtyWet, wet[i].PrecipitationMM)
	}
	assert.Less(t, dirtyWet, dirtyDry)

	// The rain-bearing series never needs cleaning earlier.
	resDry, err := Optimize(dry, params)
	require.NoError(t, err)
	resWet, err := Optimize(wet, params)
	require.NoError(t, err)
	if len(resDry.Calendar) > 0 && len(resWet.Calendar) > 0 {
		assert.GreaterOrEqual(t, resWet.Calendar[0], resDry.Calendar[0])
	}
}

func TestOptimizeAggregates(t *testing.T) {
	params := model.DefaultEconomicParameters()
	series := constantSeries(720, 5000)

	res, err := Optimize(series, params)
	require.NoError(t, err)
	require.NotEmpty(t, res.Calendar)

	assert.Equal(t, len(res.Calendar), res.Cleanings)
	assert.InDelta(t, float64(res.Cleanings)*params.WaterUsagePerClean, res.WaterLiters, 1e-9)
	assert.Greater(t, res.EnergyRecoveredKWh, 0.0)
	assert.InDelta(t, res.EnergyRecoveredKWh*params.CarbonFactorKg, res.CO2OffsetKg, 1e-6)
}
