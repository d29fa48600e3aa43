// Package forecast provides a reference weather-to-yield adapter and a
// synthetic weather generator for demos and fixtures. The production yield
// forecaster is an external system; this adapter exists so the engine can be
// exercised end to end without it.
package forecast

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/sagm07/SolarOS/internal/model"
)

// tempDeratePerC is the output loss per degree above the reference cell
// temperature, a standard crystalline-silicon coefficient.
const (
	refTemperatureC = 25.0
	tempDeratePerC  = 0.004
)

// YieldFromWeather converts a weather series into a potential-clean-yield
// series for a site: hourly kWh = irradiance (W/m2) x panel area (m2) x
// base efficiency / 1000, derated linearly for cell temperature above the
// reference.
func YieldFromWeather(weather []model.WeatherStep, panelAreaM2, baseEfficiency float64) model.YieldSeries {
	series := make(model.YieldSeries, len(weather))
	for i, w := range weather {
		derate := 1.0
		if w.TemperatureC > refTemperatureC {
			derate = 1.0 - (w.TemperatureC-refTemperatureC)*tempDeratePerC
			if derate < 0 {
				derate = 0
			}
		}
		series[i] = model.TimeStep{
			Timestamp:       w.Timestamp,
			PotentialKWh:    w.IrradianceWM2 * panelAreaM2 * baseEfficiency * derate / 1000.0,
			PrecipitationMM: w.PrecipitationMM,
		}
	}
	return series
}

// GeneratorConfig shapes the synthetic weather.
type GeneratorConfig struct {
	Start time.Time
	Hours int

	// PeakIrradianceWM2 is the clear-sky noon irradiance. Default 900.
	PeakIrradianceWM2 float64

	// MeanTemperatureC is the daily mean temperature. Default 28.
	MeanTemperatureC float64

	// RainProbability is the per-day chance of a rain event. Default 0.08.
	RainProbability float64

	Seed uint64
}

func (c GeneratorConfig) withDefaults() GeneratorConfig {
	if c.Hours <= 0 {
		c.Hours = 720
	}
	if c.PeakIrradianceWM2 <= 0 {
		c.PeakIrradianceWM2 = 900.0
	}
	if c.MeanTemperatureC == 0 {
		c.MeanTemperatureC = 28.0
	}
	if c.RainProbability <= 0 {
		c.RainProbability = 0.08
	}
	if c.Start.IsZero() {
		c.Start = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	}
	return c
}

// GenerateWeather produces a deterministic synthetic hourly weather series:
// a half-sine diurnal irradiance profile with day-to-day cloudiness, a
// temperature cycle lagging the sun, and occasional multi-hour rain events.
func GenerateWeather(cfg GeneratorConfig) []model.WeatherStep {
	cfg = cfg.withDefaults()
	rng := rand.New(rand.NewPCG(cfg.Seed, 0))

	steps := make([]model.WeatherStep, cfg.Hours)
	cloudiness := 1.0
	rainHoursLeft := 0
	rainRateMM := 0.0

	for h := 0; h < cfg.Hours; h++ {
		hourOfDay := h % 24

		if hourOfDay == 0 {
			// Day-scale weather regime.
			cloudiness = 0.6 + 0.4*rng.Float64()
			if rng.Float64() < cfg.RainProbability {
				rainHoursLeft = 2 + rng.IntN(5)
				rainRateMM = 1.0 + 6.0*rng.Float64()
				cloudiness *= 0.5
			}
		}

		var irradiance float64
		if hourOfDay >= 6 && hourOfDay <= 18 {
			angle := math.Pi * float64(hourOfDay-6) / 12.0
			irradiance = cfg.PeakIrradianceWM2 * math.Sin(angle) * cloudiness
		}

		temp := cfg.MeanTemperatureC + 6.0*math.Sin(math.Pi*float64(hourOfDay-8)/12.0)

		precip := 0.0
		if rainHoursLeft > 0 {
			precip = rainRateMM * (0.5 + rng.Float64())
			rainHoursLeft--
		}

		steps[h] = model.WeatherStep{
			Timestamp:       cfg.Start.Add(time.Duration(h) * time.Hour),
			IrradianceWM2:   irradiance,
			TemperatureC:    temp,
			PrecipitationMM: precip,
		}
	}
	return steps
}
