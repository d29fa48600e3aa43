package model

import (
	"fmt"
	"time"
)

// TimeStep is one hourly record of the yield series supplied by the external
// yield forecaster. All energies are kWh for the hour, precipitation is mm.
type TimeStep struct {
	Timestamp       time.Time `json:"timestamp"`
	PotentialKWh    float64   `json:"potential_clean_energy_kwh"`
	RealizedKWh     float64   `json:"realized_energy_kwh,omitempty"`
	PrecipitationMM float64   `json:"precipitation_mm"`
}

// YieldSeries is the full planning horizon for one site: ordered, hourly,
// contiguous. The soiling loss-rate proxy is calibrated against hourly steps;
// coarser series are rejected at the boundary rather than silently rescaled.
type YieldSeries []TimeStep

// Validate rejects series the engine cannot plan over. An empty series is
// allowed here: downstream components treat it as a legitimate zero-action
// input, not an error.
func (s YieldSeries) Validate() error {
	for i, ts := range s {
		if ts.PotentialKWh < 0 {
			return fmt.Errorf("step %d: negative potential energy", i)
		}
		if ts.PrecipitationMM < 0 {
			return fmt.Errorf("step %d: negative precipitation", i)
		}
		if i == 0 {
			continue
		}
		dt := ts.Timestamp.Sub(s[i-1].Timestamp)
		if !ts.Timestamp.IsZero() && !s[i-1].Timestamp.IsZero() && dt != time.Hour {
			return fmt.Errorf("step %d: series is not hourly-contiguous (gap %s)", i, dt)
		}
	}
	return nil
}

// Potentials returns the potential-clean-yield vector.
func (s YieldSeries) Potentials() []float64 {
	out := make([]float64, len(s))
	for i, ts := range s {
		out[i] = ts.PotentialKWh
	}
	return out
}

// Precipitation returns the precipitation vector.
func (s YieldSeries) Precipitation() []float64 {
	out := make([]float64, len(s))
	for i, ts := range s {
		out[i] = ts.PrecipitationMM
	}
	return out
}

// YieldCurves holds three index-aligned energy vectors for scenario replay:
// a pessimistic, a median and an optimistic view of the same horizon.
type YieldCurves struct {
	Pessimistic []float64 `json:"pessimistic"`
	Median      []float64 `json:"median"`
	Optimistic  []float64 `json:"optimistic"`
}

// Validate ensures all three curves cover exactly the given horizon.
func (c YieldCurves) Validate(horizon int) error {
	if len(c.Pessimistic) != horizon || len(c.Median) != horizon || len(c.Optimistic) != horizon {
		return fmt.Errorf("curves must all have length %d (got %d/%d/%d)",
			horizon, len(c.Pessimistic), len(c.Median), len(c.Optimistic))
	}
	return nil
}

// WeatherStep is one hour of raw weather input, upstream of the yield
// forecaster. The Monte Carlo engine perturbs these directly.
type WeatherStep struct {
	Timestamp       time.Time `json:"timestamp"`
	IrradianceWM2   float64   `json:"irradiance_wm2"`
	TemperatureC    float64   `json:"temperature_c"`
	PrecipitationMM float64   `json:"precipitation_mm"`
}
