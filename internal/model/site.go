package model

import (
	"fmt"
	"sort"
)

// Calendar is the set of time-step indices where cleaning occurs for one
// site, strictly increasing.
type Calendar []int

func (c Calendar) Validate(horizon int) error {
	for i, step := range c {
		if step < 0 || step >= horizon {
			return fmt.Errorf("calendar entry %d: step %d outside horizon %d", i, step, horizon)
		}
		if i > 0 && step <= c[i-1] {
			return fmt.Errorf("calendar entry %d: steps must be strictly increasing", i)
		}
	}
	return nil
}

// Contains reports whether step is a cleaning step. Calendars are small
// (a handful of cleanings per month), so a linear scan is fine; callers on a
// hot path should build a set instead.
func (c Calendar) Contains(step int) bool {
	for _, s := range c {
		if s == step {
			return true
		}
	}
	return false
}

// SiteScore is one site's already-optimized outcome, as consumed by the
// portfolio allocator.
type SiteScore struct {
	SiteID             string   `json:"site_id"`
	Calendar           Calendar `json:"calendar"`
	NetValue           float64  `json:"net_value"`
	WaterLiters        float64  `json:"water_liters"`
	EnergyRecoveredKWh float64  `json:"energy_recovered_kwh"`
	CO2OffsetKg        float64  `json:"co2_offset_kg"`
}

// DeferredSite records a candidate the allocator did not select, with the
// reason (budget constraint vs. no economical action at all).
type DeferredSite struct {
	SiteID string `json:"site_id"`
	Reason string `json:"reason"`
}

// PortfolioSelection is the allocator's terminal artifact. ResourceUsedLiters
// never exceeds the configured capacity.
type PortfolioSelection struct {
	Selected           []SiteScore    `json:"selected"`
	Deferred           []DeferredSite `json:"deferred,omitempty"`
	ResourceUsedLiters float64        `json:"resource_used_liters"`
	TotalValue         float64        `json:"total_value"`
	TotalNetValue      float64        `json:"total_net_value"`
	AggregateEnergyKWh float64        `json:"aggregate_energy_kwh"`
	AggregateCO2Kg     float64        `json:"aggregate_co2_kg"`
}

// SelectedIDs returns the site ids of the selection, in selection order.
func (s PortfolioSelection) SelectedIDs() []string {
	ids := make([]string, len(s.Selected))
	for i, sc := range s.Selected {
		ids[i] = sc.SiteID
	}
	return ids
}

// UncertaintyBand summarizes a scalar outcome distribution. p10 <= p50 <= p90
// always holds; NewUncertaintyBand enforces it post-hoc.
type UncertaintyBand struct {
	P10    float64 `json:"p10"`
	P50    float64 `json:"p50"`
	P90    float64 `json:"p90"`
	Spread float64 `json:"spread"`
}

// NewUncertaintyBand builds a band from three percentile estimates, sorting
// them so the ordering invariant holds even when the sources cross (e.g. a
// "pessimistic" curve that outperforms the median on a given horizon).
func NewUncertaintyBand(p10, p50, p90 float64) UncertaintyBand {
	vals := []float64{p10, p50, p90}
	sort.Float64s(vals)
	return UncertaintyBand{
		P10:    vals[0],
		P50:    vals[1],
		P90:    vals[2],
		Spread: vals[2] - vals[0],
	}
}
