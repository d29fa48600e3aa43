// Package config loads engine configuration from YAML: economics presets,
// portfolio settings, and server options.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/sagm07/SolarOS/internal/model"
	"github.com/sagm07/SolarOS/internal/portfolio"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// Optional: load economic parameters from a separate YAML preset
	// (e.g. examples/economics/*.yaml). Explicit Economics fields override
	// the preset.
	EconomicsFile string          `yaml:"economics_file"`
	Economics     EconomicsConfig `yaml:"economics"`

	Portfolio  PortfolioConfig  `yaml:"portfolio"`
	Simulation SimulationConfig `yaml:"simulation"`
	Server     ServerConfig     `yaml:"server"`
}

type EconomicsConfig struct {
	ElectricityPrice   float64 `yaml:"electricity_price"`
	CleaningCost       float64 `yaml:"cleaning_cost"`
	CarbonPricePerKg   float64 `yaml:"carbon_price_per_kg"`
	WaterPricePerLiter float64 `yaml:"water_price_per_liter"`
	WaterUsagePerClean float64 `yaml:"water_usage_per_clean"`

	MinDaysBetweenClean   int `yaml:"min_days_between_clean"`
	MinDirtinessThreshold int `yaml:"min_dirtiness_threshold"`
	MaxDirtyDays          int `yaml:"max_dirty_days"`

	RainThresholdMM     float64 `yaml:"rain_threshold_mm"`
	RainLookaheadDays   int     `yaml:"rain_lookahead_days"`
	RainLookaheadVolMM  float64 `yaml:"rain_lookahead_vol_mm"`
	RainPenaltyFraction float64 `yaml:"rain_penalty_fraction"`
	RainCleaningGamma   float64 `yaml:"rain_cleaning_gamma"`

	DailyLossRate  float64 `yaml:"daily_loss_rate"`
	MinEfficiency  float64 `yaml:"min_efficiency"`
	CarbonFactorKg float64 `yaml:"carbon_factor_kg"`
}

type PortfolioConfig struct {
	Mode                 string  `yaml:"mode"`
	CapacityLiters       float64 `yaml:"capacity_liters"`
	CarbonPriorityWeight float64 `yaml:"carbon_priority_weight"`
	ScarcityFactor       float64 `yaml:"scarcity_factor"`
}

type SimulationConfig struct {
	Trials           int     `yaml:"trials"`
	IrradianceSigma  float64 `yaml:"irradiance_sigma"`
	TemperatureSigma float64 `yaml:"temperature_sigma"`
	Seed             uint64  `yaml:"seed"`
	Workers          int     `yaml:"workers"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Load reads, merges and validates a config file.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	// If economics_file is set, load the preset and overlay any explicit
	// overrides from c.Economics on top.
	if c.EconomicsFile != "" {
		presetPath := c.EconomicsFile
		if !filepath.IsAbs(presetPath) {
			// Prefer interpreting relative paths as relative to the config
			// file directory, falling back to cwd-relative.
			cand := filepath.Join(filepath.Dir(path), presetPath)
			if _, err := os.Stat(cand); err == nil {
				presetPath = cand
			}
		}
		loaded, err := loadEconomicsFile(presetPath)
		if err != nil {
			return nil, err
		}
		c.Economics = MergeEconomics(loaded, c.Economics)
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if err := c.Economics.ToModelParams().Validate(); err != nil {
		return fmt.Errorf("economics config invalid: %w", err)
	}
	if _, err := portfolio.ParseMode(c.Portfolio.Mode); err != nil {
		return fmt.Errorf("portfolio config invalid: %w", err)
	}
	if c.Portfolio.CapacityLiters < 0 {
		return errors.New("portfolio.capacity_liters must be >= 0")
	}
	if c.Simulation.Trials < 0 {
		return errors.New("simulation.trials must be >= 0")
	}
	return nil
}

// ToModelParams overlays the config's non-zero fields onto the fleet
// defaults, so a preset only needs to state what it changes.
func (e EconomicsConfig) ToModelParams() model.EconomicParameters {
	p := model.DefaultEconomicParameters()
	if e.ElectricityPrice != 0 {
		p.ElectricityPrice = e.ElectricityPrice
	}
	if e.CleaningCost != 0 {
		p.CleaningCost = e.CleaningCost
	}
	if e.CarbonPricePerKg != 0 {
		p.CarbonPricePerKg = e.CarbonPricePerKg
	}
	if e.WaterPricePerLiter != 0 {
		p.WaterPricePerLiter = e.WaterPricePerLiter
	}
	if e.WaterUsagePerClean != 0 {
		p.WaterUsagePerClean = e.WaterUsagePerClean
	}
	if e.MinDaysBetweenClean != 0 {
		p.MinDaysBetweenClean = e.MinDaysBetweenClean
	}
	if e.MinDirtinessThreshold != 0 {
		p.MinDirtinessThreshold = e.MinDirtinessThreshold
	}
	if e.MaxDirtyDays != 0 {
		p.MaxDirtyDays = e.MaxDirtyDays
	}
	if e.RainThresholdMM != 0 {
		p.RainThresholdMM = e.RainThresholdMM
	}
	if e.RainLookaheadDays != 0 {
		p.RainLookaheadDays = e.RainLookaheadDays
	}
	if e.RainLookaheadVolMM != 0 {
		p.RainLookaheadVolMM = e.RainLookaheadVolMM
	}
	if e.RainPenaltyFraction != 0 {
		p.RainPenaltyFraction = e.RainPenaltyFraction
	}
	if e.RainCleaningGamma != 0 {
		p.RainCleaningGamma = e.RainCleaningGamma
	}
	if e.DailyLossRate != 0 {
		p.DailyLossRate = e.DailyLossRate
	}
	if e.MinEfficiency != 0 {
		p.MinEfficiency = e.MinEfficiency
	}
	if e.CarbonFactorKg != 0 {
		p.CarbonFactorKg = e.CarbonFactorKg
	}
	return p
}

// LoadEconomicsPreset loads a standalone economics preset file, as referenced
// by economics_file or by API requests naming a server-side preset.
func LoadEconomicsPreset(path string) (EconomicsConfig, error) {
	return loadEconomicsFile(path)
}

type economicsFileWrapper struct {
	Economics EconomicsConfig `yaml:"economics"`
}

func loadEconomicsFile(path string) (EconomicsConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return EconomicsConfig{}, err
	}
	var w economicsFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return EconomicsConfig{}, err
	}
	return w.Economics, nil
}

// MergeEconomics overlays non-zero fields from override onto base.
// Used when a preset file is combined with per-request overrides.
func MergeEconomics(base, override EconomicsConfig) EconomicsConfig {
	out := base
	if override.ElectricityPrice != 0 {
		out.ElectricityPrice = override.ElectricityPrice
	}
	if override.CleaningCost != 0 {
		out.CleaningCost = override.CleaningCost
	}
	if override.CarbonPricePerKg != 0 {
		out.CarbonPricePerKg = override.CarbonPricePerKg
	}
	if override.WaterPricePerLiter != 0 {
		out.WaterPricePerLiter = override.WaterPricePerLiter
	}
	if override.WaterUsagePerClean != 0 {
		out.WaterUsagePerClean = override.WaterUsagePerClean
	}
	if override.MinDaysBetweenClean != 0 {
		out.MinDaysBetweenClean = override.MinDaysBetweenClean
	}
	if override.MinDirtinessThreshold != 0 {
		out.MinDirtinessThreshold = override.MinDirtinessThreshold
	}
	if override.MaxDirtyDays != 0 {
		out.MaxDirtyDays = override.MaxDirtyDays
	}
	if override.RainThresholdMM != 0 {
		out.RainThresholdMM = override.RainThresholdMM
	}
	if override.RainLookaheadDays != 0 {
		out.RainLookaheadDays = override.RainLookaheadDays
	}
	if override.RainLookaheadVolMM != 0 {
		out.RainLookaheadVolMM = override.RainLookaheadVolMM
	}
	if override.RainPenaltyFraction != 0 {
		out.RainPenaltyFraction = override.RainPenaltyFraction
	}
	if override.RainCleaningGamma != 0 {
		out.RainCleaningGamma = override.RainCleaningGamma
	}
	if override.DailyLossRate != 0 {
		out.DailyLossRate = override.DailyLossRate
	}
	if override.MinEfficiency != 0 {
		out.MinEfficiency = override.MinEfficiency
	}
	if override.CarbonFactorKg != 0 {
		out.CarbonFactorKg = override.CarbonFactorKg
	}
	return out
}
