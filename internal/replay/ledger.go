package replay

import (
	"time"

	"github.com/sagm07/SolarOS/internal/model"
)

// LedgerRow is one row of per-step replay output.
// This is the primary artifact for "what happened" under a fixed calendar.
type LedgerRow struct {
	Index int

	Timestamp time.Time

	Action model.Action

	PotentialKWh    float64
	PrecipitationMM float64

	Efficiency float64
	EnergyKWh  float64
	GainKWh    float64
	CarbonKg   float64

	DirtyStart int
	DirtyEnd   int

	Value    float64
	CumValue float64
}

// Result is a single-curve replay outcome.
type Result struct {
	Ledger             []LedgerRow
	TotalNetValue      float64
	Cleanings          int
	WaterLiters        float64
	EnergyRecoveredKWh float64
	CO2OffsetKg        float64
	FinalDirtyDays     int
}
