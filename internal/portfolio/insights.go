package portfolio

import (
	"math"

	"github.com/sagm07/SolarOS/internal/analysis"
	"github.com/sagm07/SolarOS/internal/model"
)

// dustAnomalySigma flags sites whose implied soiling rate sits far from the
// fleet distribution. Such sites usually have a sensor fault or a local dust
// source worth a field inspection.
const dustAnomalySigma = 2.0

// SiteInsight is a per-candidate diagnostic computed across the whole fleet
// submission, independent of the knapsack solve.
type SiteInsight struct {
	SiteID string `json:"site_id"`

	// ValuePerLiter is net value per liter of water, the scarcity-mode
	// ranking signal.
	ValuePerLiter float64 `json:"value_per_liter"`

	// RecoveryPerCleanKWh is the average energy recovered by one cleaning,
	// a proxy for how fast the site soils.
	RecoveryPerCleanKWh float64 `json:"recovery_per_clean_kwh"`

	DustZScore float64 `json:"dust_z_score"`
	Anomalous  bool    `json:"anomalous"`
}

// Insights computes fleet-relative diagnostics for a candidate set. Sites
// with no cleanings contribute zero recovery and are never flagged.
func Insights(candidates []model.SiteScore) []SiteInsight {
	out := make([]SiteInsight, len(candidates))
	recovery := make([]float64, len(candidates))

	for i, s := range candidates {
		in := SiteInsight{SiteID: s.SiteID}
		if s.WaterLiters > 0 {
			in.ValuePerLiter = s.NetValue / s.WaterLiters
		}
		if n := len(s.Calendar); n > 0 {
			in.RecoveryPerCleanKWh = s.EnergyRecoveredKWh / float64(n)
		}
		recovery[i] = in.RecoveryPerCleanKWh
		out[i] = in
	}

	for i, z := range analysis.ZScores(recovery) {
		out[i].DustZScore = z
		out[i].Anomalous = len(candidates[i].Calendar) > 0 && math.Abs(z) > dustAnomalySigma
	}
	return out
}
