package data

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sagm07/SolarOS/internal/model"
)

// ForecastFile is the on-disk shape of one site's forecast bundle, produced
// by the external yield forecaster (or cmd/gen-forecast for fixtures).
type ForecastFile struct {
	SiteID      string              `json:"site_id"`
	GeneratedAt string              `json:"generated_at"` // ISO 8601
	Series      model.YieldSeries   `json:"series"`
	Weather     []model.WeatherStep `json:"weather,omitempty"`
}

// LoadForecastJSON loads and boundary-checks one forecast bundle.
func LoadForecastJSON(path string) (*ForecastFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read forecast file: %w", err)
	}
	var f ForecastFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("failed to parse forecast file: %w", err)
	}
	if err := f.Series.Validate(); err != nil {
		return nil, fmt.Errorf("forecast series invalid: %w", err)
	}
	return &f, nil
}

// LoadForecastJSONCached loads a forecast bundle through the process-wide
// cache when caching is enabled, falling through to a plain load otherwise.
func LoadForecastJSONCached(siteID, path string) (*ForecastFile, error) {
	cache := GetCache()
	key := GenerateCacheKey(siteID, path, 0)
	if f, ok := cache.Get(key); ok {
		return f, nil
	}
	f, err := LoadForecastJSON(path)
	if err != nil {
		return nil, err
	}
	cache.Set(key, f)
	return f, nil
}

// SaveForecastJSON writes a forecast bundle, pretty-printed for diffability.
func SaveForecastJSON(f *ForecastFile, path string) error {
	raw, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal forecast: %w", err)
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("failed to write forecast file: %w", err)
	}
	return nil
}
