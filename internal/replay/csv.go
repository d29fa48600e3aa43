package replay

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

func WriteLedgerCSV(path string, ledger []LedgerRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"index",
		"timestamp",
		"action",
		"potential_kwh",
		"precipitation_mm",
		"efficiency",
		"energy_kwh",
		"gain_kwh",
		"carbon_kg",
		"dirty_start",
		"dirty_end",
		"value",
		"cum_value",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range ledger {
		row := []string{
			strconv.Itoa(r.Index),
			fmtTime(r.Timestamp),
			string(r.Action),
			fmtFloat(r.PotentialKWh),
			fmtFloat(r.PrecipitationMM),
			fmtFloat(r.Efficiency),
			fmtFloat(r.EnergyKWh),
			fmtFloat(r.GainKWh),
			fmtFloat(r.CarbonKg),
			strconv.Itoa(r.DirtyStart),
			strconv.Itoa(r.DirtyEnd),
			fmtFloat(r.Value),
			fmtFloat(r.CumValue),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
