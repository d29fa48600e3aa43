package data

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Site is one generation asset in the fleet catalog.
type Site struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Region         string  `json:"region"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	PanelAreaM2    float64 `json:"panel_area_m2"`
	BaseEfficiency float64 `json:"base_efficiency"`
	ForecastFile   string  `json:"forecast_file"` // relative to the catalog file
}

// SiteCatalog is a collection of sites sharing one water budget.
type SiteCatalog struct {
	UpdatedAt string `json:"updated_at"` // ISO 8601 timestamp
	Sites     []Site `json:"sites"`
}

// LoadSiteCatalog loads the fleet catalog from a JSON file.
func LoadSiteCatalog(filePath string) (*SiteCatalog, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read site catalog: %w", err)
	}

	var cat SiteCatalog
	if err := json.Unmarshal(raw, &cat); err != nil {
		return nil, fmt.Errorf("failed to parse site catalog: %w", err)
	}

	return &cat, nil
}

// SaveSiteCatalog saves the fleet catalog to a JSON file.
func SaveSiteCatalog(cat *SiteCatalog, filePath string) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	raw, err := json.MarshalIndent(cat, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal site catalog: %w", err)
	}

	if err := os.WriteFile(filePath, raw, 0644); err != nil {
		return fmt.Errorf("failed to write site catalog: %w", err)
	}

	return nil
}

// Find returns the site with the given id.
func (c *SiteCatalog) Find(id string) (*Site, bool) {
	for i := range c.Sites {
		if c.Sites[i].ID == id {
			return &c.Sites[i], true
		}
	}
	return nil, false
}

// GetDefaultCatalogPath returns the default path for the site catalog.
func GetDefaultCatalogPath() string {
	if path := os.Getenv("SITE_CATALOG_FILE"); path != "" {
		return path
	}
	return "./data/sites.json"
}
