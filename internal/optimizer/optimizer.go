// Package optimizer finds the value-maximizing cleaning calendar for a
// single site over a yield horizon using dynamic programming on the
// (step, dirty-days) state space.
package optimizer

import (
	"fmt"

	"github.com/sagm07/SolarOS/internal/model"
)

// Result is the optimizer's terminal artifact for one site. TotalNetValue is
// the DP optimum; the remaining aggregates are recomputed along the optimal
// path with the same transition bookkeeping, so a replay of the calendar over
// the same curve reproduces them.
type Result struct {
	Calendar           model.Calendar `json:"calendar"`
	TotalNetValue      float64        `json:"total_net_value"`
	HorizonSteps       int            `json:"horizon_steps"`
	Cleanings          int            `json:"cleanings"`
	WaterLiters        float64        `json:"water_liters"`
	EnergyRecoveredKWh float64        `json:"energy_recovered_kwh"`
	CO2OffsetKg        float64        `json:"co2_offset_kg"`
}

// Optimize computes the optimal cleaning calendar for one site.
//
// The DP table is dp[t][d] = best cumulative value after t steps ending in
// dirty-day state d, seeded with dp[0][0] = 0 and -inf elsewhere. Each step
// expands WAIT (soiling accrues, rain may wash part of it away) and, where
// eligibility gates allow, CLEAN (full recovery, dirty resets to 0).
// Backpointers are recorded only on strict improvement, so ties resolve to
// the transition found first and results are deterministic.
//
// An empty series is a legitimate input: the result is an empty calendar
// with zero value, not an error.
func Optimize(series model.YieldSeries, params model.EconomicParameters) (*Result, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid economic parameters: %w", err)
	}
	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("invalid yield series: %w", err)
	}

	nSteps := len(series)
	res := &Result{Calendar: model.Calendar{}, HorizonSteps: nSteps}
	if nSteps == 0 {
		return res, nil
	}

	potentials := series.Potentials()
	precip := series.Precipitation()

	nStates := params.MaxDirtyDays + 1
	negInf := -1e100

	dp := make([][]float64, nSteps+1)
	parent := make([][]int, nSteps+1)
	cleaned := make([][]bool, nSteps+1)
	for t := 0; t <= nSteps; t++ {
		dp[t] = make([]float64, nStates)
		parent[t] = make([]int, nStates)
		cleaned[t] = make([]bool, nStates)
		for d := 0; d < nStates; d++ {
			dp[t][d] = negInf
			parent[t][d] = -1
		}
	}
	dp[0][0] = 0

	for t := 0; t < nSteps; t++ {
		pot := potentials[t]
		rainAhead := params.RainAhead(precip, t)
		for d := 0; d < nStates; d++ {
			if dp[t][d] <= negInf/2 {
				continue
			}

			// WAIT: produce at degraded efficiency, then advance soiling.
			waitEnergy := pot * params.Efficiency(d)
			waitVal := dp[t][d] + params.Reward(waitEnergy, false, 0)
			nd := params.NextDirtyAfterWait(d, precip[t])
			if waitVal > dp[t+1][nd] {
				dp[t+1][nd] = waitVal
				parent[t+1][nd] = d
				cleaned[t+1][nd] = false
			}

			// CLEAN: full recovery, gated on both eligibility thresholds.
			if params.CleanEligible(d) {
				energy, _, carbon := params.CleanOutcome(pot, d, rainAhead)
				cleanVal := dp[t][d] + params.Reward(energy, true, carbon)
				if cleanVal > dp[t+1][0] {
					dp[t+1][0] = cleanVal
					parent[t+1][0] = d
					cleaned[t+1][0] = true
				}
			}
		}
	}

	bestVal := negInf
	bestState := 0
	for d := 0; d < nStates; d++ {
		if dp[nSteps][d] > bestVal {
			bestVal = dp[nSteps][d]
			bestState = d
		}
	}
	res.TotalNetValue = bestVal

	// Walk backpointers from the arg-max terminal state, collecting the steps
	// reached via CLEAN.
	var reversed []int
	state := bestState
	for t := nSteps; t >= 1; t-- {
		if cleaned[t][state] {
			reversed = append(reversed, t-1)
		}
		state = parent[t][state]
	}
	for i := len(reversed) - 1; i >= 0; i-- {
		res.Calendar = append(res.Calendar, reversed[i])
	}
	res.Cleanings = len(res.Calendar)
	res.WaterLiters = float64(res.Cleanings) * params.WaterUsagePerClean

	// Recompute the physical aggregates along the optimal path.
	dirty := 0
	for t := 0; t < nSteps; t++ {
		if res.Calendar.Contains(t) {
			_, gain, carbon := params.CleanOutcome(potentials[t], dirty, params.RainAhead(precip, t))
			res.EnergyRecoveredKWh += gain
			res.CO2OffsetKg += carbon
			dirty = 0
		} else {
			dirty = params.NextDirtyAfterWait(dirty, precip[t])
		}
	}

	return res, nil
}

// AlwaysWaitValue computes the cumulative value of never cleaning over the
// horizon. It is the natural baseline for reporting the marginal value of an
// optimized calendar.
func AlwaysWaitValue(series model.YieldSeries, params model.EconomicParameters) (float64, error) {
	if err := params.Validate(); err != nil {
		return 0, fmt.Errorf("invalid economic parameters: %w", err)
	}
	if err := series.Validate(); err != nil {
		return 0, fmt.Errorf("invalid yield series: %w", err)
	}
	total := 0.0
	dirty := 0
	for _, ts := range series {
		energy := ts.PotentialKWh * params.Efficiency(dirty)
		total += params.Reward(energy, false, 0)
		dirty = params.NextDirtyAfterWait(dirty, ts.PrecipitationMM)
	}
	return total, nil
}
