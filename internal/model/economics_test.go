package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultParametersValidate(t *testing.T) {
	require.NoError(t, DefaultEconomicParameters().Validate())
}

func TestValidateRejectsBadParameters(t *testing.T) {
	p := DefaultEconomicParameters()
	p.ElectricityPrice = 0
	assert.Error(t, p.Validate())

	p = DefaultEconomicParameters()
	p.MaxDirtyDays = 0
	assert.Error(t, p.Validate())

	p = DefaultEconomicParameters()
	p.RainPenaltyFraction = 1.5
	assert.Error(t, p.Validate())
}

func TestReward(t *testing.T) {
	p := DefaultEconomicParameters()

	// Plain production: energy revenue only.
	assert.InDelta(t, 600.0, p.Reward(100, false, 0), 1e-9)

	// Cleaning charges mobilization plus water.
	want := 100*p.ElectricityPrice + 70*p.CarbonPricePerKg - p.EffectiveCleaningCost()
	assert.InDelta(t, want, p.Reward(100, true, 70), 1e-9)
}

func TestEffectiveCleaningCostIncludesWater(t *testing.T) {
	p := DefaultEconomicParameters()
	assert.InDelta(t, 1500.0+500*0.05, p.EffectiveCleaningCost(), 1e-9)
}

func TestEfficiencyFloor(t *testing.T) {
	p := DefaultEconomicParameters()

	assert.InDelta(t, 1.0, p.Efficiency(0), 1e-9)
	assert.InDelta(t, 0.95, p.Efficiency(10), 1e-9)
	// 0.5%/day bottoms out at the floor after 20 days.
	assert.InDelta(t, 0.90, p.Efficiency(20), 1e-9)
	assert.InDelta(t, 0.90, p.Efficiency(60), 1e-9)
}

func TestNextDirtyAfterWait(t *testing.T) {
	p := DefaultEconomicParameters()

	// Dry step: plain accumulation.
	assert.Equal(t, 1, p.NextDirtyAfterWait(0, 0))
	assert.Equal(t, 11, p.NextDirtyAfterWait(10, 0))

	// Drizzle below the threshold does nothing.
	assert.Equal(t, 11, p.NextDirtyAfterWait(10, 0.1))

	// 1mm rain washes 40%: floor(10*0.6)=6, then +1.
	assert.Equal(t, 7, p.NextDirtyAfterWait(10, 1.0))

	// Heavy rain caps at 95% reduction: floor(20*0.05)=1, then +1.
	assert.Equal(t, 2, p.NextDirtyAfterWait(20, 50.0))

	// Accumulation clamps at the cap.
	assert.Equal(t, 60, p.NextDirtyAfterWait(60, 0))
}

func TestCleanEligibleBothGates(t *testing.T) {
	p := DefaultEconomicParameters()

	assert.False(t, p.CleanEligible(0))
	assert.False(t, p.CleanEligible(7)) // spacing ok, dirtiness too low
	assert.False(t, p.CleanEligible(9))
	assert.True(t, p.CleanEligible(10))
	assert.True(t, p.CleanEligible(60))
}

func TestRainAhead(t *testing.T) {
	p := DefaultEconomicParameters()
	precip := []float64{0, 0, 3, 4, 0, 0}

	// Steps 1 and 2 look ahead into the 3+4mm burst.
	assert.True(t, p.RainAhead(precip, 1))
	assert.False(t, p.RainAhead(precip, 0)) // sees 0+3=3 <= 5
	assert.False(t, p.RainAhead(precip, 3))

	// Lookahead truncates at the horizon edge.
	assert.False(t, p.RainAhead(precip, 5))
	assert.False(t, p.RainAhead(precip, 10))
}

func TestCleanOutcomeRainDiscount(t *testing.T) {
	p := DefaultEconomicParameters()

	energy, gain, carbon := p.CleanOutcome(1000, 10, false)
	assert.InDelta(t, 1000.0, energy, 1e-9)
	assert.InDelta(t, 50.0, gain, 1e-9)
	assert.InDelta(t, 35.0, carbon, 1e-9)

	_, gainWet, carbonWet := p.CleanOutcome(1000, 10, true)
	assert.InDelta(t, 25.0, gainWet, 1e-9)
	assert.InDelta(t, 17.5, carbonWet, 1e-9)
}
