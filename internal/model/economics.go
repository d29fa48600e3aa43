package model

import (
	"errors"
	"math"
)

// EconomicParameters defines the economic and soiling-proxy parameters for
// one optimization call. Every constant used by the reward and decay formulas
// is an explicit field here; there is no module-level tuning state, so
// concurrent calls with different parameters cannot interfere.
//
// Units:
// - ElectricityPrice: currency per kWh
// - CleaningCost: currency per cleaning action (mobilization, labor)
// - CarbonPricePerKg: currency per kg CO2
// - WaterPricePerLiter: currency per liter
// - WaterUsagePerClean: liters per cleaning action
// - DailyLossRate: efficiency fraction lost per dirty day
// - rain fields: mm and fractions
type EconomicParameters struct {
	ElectricityPrice   float64
	CleaningCost       float64
	CarbonPricePerKg   float64
	WaterPricePerLiter float64
	WaterUsagePerClean float64

	MinDaysBetweenClean   int
	MinDirtinessThreshold int
	MaxDirtyDays          int

	RainThresholdMM     float64
	RainLookaheadDays   int
	RainLookaheadVolMM  float64
	RainPenaltyFraction float64
	RainCleaningGamma   float64

	DailyLossRate   float64
	MinEfficiency   float64
	CarbonFactorKg  float64
}

// DefaultEconomicParameters returns the calibration used across the fleet.
func DefaultEconomicParameters() EconomicParameters {
	return EconomicParameters{
		ElectricityPrice:   6.0,
		CleaningCost:       1500.0,
		CarbonPricePerKg:   5.0,
		WaterPricePerLiter: 0.05,
		WaterUsagePerClean: 500.0,

		MinDaysBetweenClean:   7,
		MinDirtinessThreshold: 10,
		MaxDirtyDays:          60,

		RainThresholdMM:     0.1,
		RainLookaheadDays:   2,
		RainLookaheadVolMM:  5.0,
		RainPenaltyFraction: 0.5,
		RainCleaningGamma:   0.4,

		DailyLossRate:  0.005,
		MinEfficiency:  0.90,
		CarbonFactorKg: 0.7,
	}
}

func (p EconomicParameters) Validate() error {
	if p.ElectricityPrice <= 0 {
		return errors.New("ElectricityPrice must be > 0")
	}
	if p.CleaningCost < 0 {
		return errors.New("CleaningCost must be >= 0")
	}
	if p.CarbonPricePerKg < 0 {
		return errors.New("CarbonPricePerKg must be >= 0")
	}
	if p.WaterPricePerLiter < 0 || p.WaterUsagePerClean < 0 {
		return errors.New("water price and usage must be >= 0")
	}
	if p.MinDaysBetweenClean < 0 || p.MinDirtinessThreshold < 0 {
		return errors.New("cleaning eligibility thresholds must be >= 0")
	}
	if p.MaxDirtyDays <= 0 {
		return errors.New("MaxDirtyDays must be > 0")
	}
	if p.RainThresholdMM < 0 || p.RainLookaheadDays < 0 || p.RainLookaheadVolMM < 0 {
		return errors.New("rain thresholds must be >= 0")
	}
	if p.RainPenaltyFraction < 0 || p.RainPenaltyFraction > 1 {
		return errors.New("RainPenaltyFraction must be in [0, 1]")
	}
	if p.RainCleaningGamma < 0 {
		return errors.New("RainCleaningGamma must be >= 0")
	}
	if p.DailyLossRate < 0 || p.DailyLossRate > 1 {
		return errors.New("DailyLossRate must be in [0, 1]")
	}
	if p.MinEfficiency < 0 || p.MinEfficiency > 1 {
		return errors.New("MinEfficiency must be in [0, 1]")
	}
	if p.CarbonFactorKg < 0 {
		return errors.New("CarbonFactorKg must be >= 0")
	}
	return nil
}

// EffectiveCleaningCost is the full charge for one cleaning action:
// mobilization plus the water it consumes.
func (p EconomicParameters) EffectiveCleaningCost() float64 {
	return p.CleaningCost + p.WaterUsagePerClean*p.WaterPricePerLiter
}

// Reward converts one time step's outcome into monetary value. Pure.
func (p EconomicParameters) Reward(energyKWh float64, isCleaning bool, carbonKg float64) float64 {
	v := energyKWh*p.ElectricityPrice + carbonKg*p.CarbonPricePerKg
	if isCleaning {
		v -= p.EffectiveCleaningCost()
	}
	return v
}

// Efficiency returns the realized efficiency fraction for a dirty-day count,
// floored at MinEfficiency.
func (p EconomicParameters) Efficiency(dirtyDays int) float64 {
	return math.Max(p.MinEfficiency, 1.0-float64(dirtyDays)*p.DailyLossRate)
}

// NextDirtyAfterWait advances the dirty-day counter across one WAIT step.
// Rain above the threshold applies natural cleaning first:
// dirty' = floor(dirty * (1 - min(gamma*rain, 0.95))), then the step's own
// accumulation is added. The result is clamped to [0, MaxDirtyDays].
//
// This discrete jump is a coarse proxy and intentionally does not invert the
// external physics model's continuous hourly dust reduction.
func (p EconomicParameters) NextDirtyAfterWait(dirtyDays int, rainMM float64) int {
	d := dirtyDays
	if rainMM > p.RainThresholdMM {
		reduction := math.Min(p.RainCleaningGamma*rainMM, 0.95)
		d = int(float64(d) * (1.0 - reduction))
	}
	d++
	if d > p.MaxDirtyDays {
		d = p.MaxDirtyDays
	}
	if d < 0 {
		d = 0
	}
	return d
}

// CleanEligible reports whether a CLEAN action is permitted in a state.
// Both gates must hold: enough time since the last clean, and enough
// accumulated soiling to justify mobilizing a crew at all.
func (p EconomicParameters) CleanEligible(dirtyDays int) bool {
	return dirtyDays >= p.MinDaysBetweenClean && dirtyDays >= p.MinDirtinessThreshold
}

// RainAhead reports whether significant rain is forecast within the lookahead
// window after step: total precipitation over the next RainLookaheadDays
// steps exceeding RainLookaheadVolMM. Cleaning right before such rain has
// little marginal value.
func (p EconomicParameters) RainAhead(precip []float64, step int) bool {
	if p.RainLookaheadDays <= 0 {
		return false
	}
	total := 0.0
	for i := step + 1; i <= step+p.RainLookaheadDays && i < len(precip); i++ {
		total += precip[i]
	}
	return total > p.RainLookaheadVolMM
}

// CleanOutcome quantifies a CLEAN action at a step: the full-recovery energy,
// the marginal gain over waiting (rain-discounted when rainAhead), and the
// carbon offset attributed to that gain.
func (p EconomicParameters) CleanOutcome(potentialKWh float64, dirtyDays int, rainAhead bool) (energyKWh, gainKWh, carbonKg float64) {
	energyKWh = potentialKWh
	gainKWh = potentialKWh - potentialKWh*p.Efficiency(dirtyDays)
	if rainAhead {
		gainKWh *= 1.0 - p.RainPenaltyFraction
	}
	carbonKg = gainKWh * p.CarbonFactorKg
	return energyKWh, gainKWh, carbonKg
}
