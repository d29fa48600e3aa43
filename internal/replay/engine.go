// Package replay evaluates a fixed cleaning calendar against alternative
// yield curves. It shares the optimizer's transition bookkeeping, so a replay
// of a calendar over the curve it was optimized for reproduces the
// optimizer's total.
package replay

import (
	"fmt"
	"time"

	"github.com/sagm07/SolarOS/internal/model"
)

type Engine struct {
	params model.EconomicParameters
}

func New(params model.EconomicParameters) (*Engine, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid economic parameters: %w", err)
	}
	return &Engine{params: params}, nil
}

// ReplaySeries replays a calendar over the site's own yield series.
func (e *Engine) ReplaySeries(series model.YieldSeries, calendar model.Calendar) (*Result, error) {
	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("invalid yield series: %w", err)
	}
	stamps := make([]time.Time, len(series))
	for i, ts := range series {
		stamps[i] = ts.Timestamp
	}
	return e.ReplayCurve(series.Potentials(), series.Precipitation(), stamps, calendar)
}

// ReplayCurve replays a calendar over one energy curve. The calendar is
// taken as given: CLEAN eligibility is not re-checked, because the decision
// was already made against the planning curve. stamps may be nil.
func (e *Engine) ReplayCurve(potentials, precip []float64, stamps []time.Time, calendar model.Calendar) (*Result, error) {
	if len(precip) != len(potentials) {
		return nil, fmt.Errorf("precipitation length %d does not match curve length %d", len(precip), len(potentials))
	}
	if stamps != nil && len(stamps) != len(potentials) {
		return nil, fmt.Errorf("timestamp length %d does not match curve length %d", len(stamps), len(potentials))
	}
	if err := calendar.Validate(len(potentials)); err != nil {
		return nil, fmt.Errorf("invalid calendar: %w", err)
	}

	cleanAt := make(map[int]bool, len(calendar))
	for _, step := range calendar {
		cleanAt[step] = true
	}

	res := &Result{Ledger: make([]LedgerRow, 0, len(potentials))}
	cum := 0.0
	dirty := 0

	for t, pot := range potentials {
		row := LedgerRow{
			Index:           t,
			PotentialKWh:    pot,
			PrecipitationMM: precip[t],
			DirtyStart:      dirty,
		}
		if stamps != nil {
			row.Timestamp = stamps[t]
		}

		if cleanAt[t] {
			energy, gain, carbon := e.params.CleanOutcome(pot, dirty, e.params.RainAhead(precip, t))
			row.Action = model.ActionClean
			row.Efficiency = 1.0
			row.EnergyKWh = energy
			row.GainKWh = gain
			row.CarbonKg = carbon
			row.Value = e.params.Reward(energy, true, carbon)
			dirty = 0

			res.Cleanings++
			res.EnergyRecoveredKWh += gain
			res.CO2OffsetKg += carbon
		} else {
			eff := e.params.Efficiency(dirty)
			energy := pot * eff
			row.Action = model.ActionWait
			row.Efficiency = eff
			row.EnergyKWh = energy
			row.Value = e.params.Reward(energy, false, 0)
			dirty = e.params.NextDirtyAfterWait(dirty, precip[t])
		}

		cum += row.Value
		row.DirtyEnd = dirty
		row.CumValue = cum
		res.Ledger = append(res.Ledger, row)
	}

	res.TotalNetValue = cum
	res.WaterLiters = float64(res.Cleanings) * e.params.WaterUsagePerClean
	res.FinalDirtyDays = dirty
	return res, nil
}

// Band replays the same calendar over pessimistic, median and optimistic
// curves and summarizes the three totals. The precipitation path is shared:
// weather is the same world in all three scenarios, only the energy outlook
// differs.
func (e *Engine) Band(curves model.YieldCurves, precip []float64, calendar model.Calendar) (model.UncertaintyBand, error) {
	if err := curves.Validate(len(precip)); err != nil {
		return model.UncertaintyBand{}, err
	}

	totals := make([]float64, 0, 3)
	for _, curve := range [][]float64{curves.Pessimistic, curves.Median, curves.Optimistic} {
		res, err := e.ReplayCurve(curve, precip, nil, calendar)
		if err != nil {
			return model.UncertaintyBand{}, err
		}
		totals = append(totals, res.TotalNetValue)
	}
	return model.NewUncertaintyBand(totals[0], totals[1], totals[2]), nil
}
