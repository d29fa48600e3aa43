package data

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagm07/SolarOS/internal/model"
)

func TestForecastRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.json")

	f := &ForecastFile{
		SiteID:      "desert-east",
		GeneratedAt: "2025-06-01T00:00:00Z",
		Series: model.YieldSeries{
			{PotentialKWh: 100, PrecipitationMM: 0},
			{PotentialKWh: 120, PrecipitationMM: 1.5},
		},
	}
	require.NoError(t, SaveForecastJSON(f, path))

	loaded, err := LoadForecastJSON(path)
	require.NoError(t, err)
	assert.Equal(t, "desert-east", loaded.SiteID)
	require.Len(t, loaded.Series, 2)
	assert.Equal(t, 1.5, loaded.Series[1].PrecipitationMM)
}

func TestLoadForecastRejectsInvalidSeries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"site_id": "x",
		"series": [{"potential_clean_energy_kwh": -5, "precipitation_mm": 0}]
	}`), 0644))

	_, err := LoadForecastJSON(path)
	assert.Error(t, err)
}

func TestSiteCatalogRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sites.json")

	cat := &SiteCatalog{
		UpdatedAt: "2025-06-01T00:00:00Z",
		Sites: []Site{
			{ID: "a", Name: "Alpha", Region: "east", PanelAreaM2: 1500, BaseEfficiency: 0.21},
			{ID: "b", Name: "Beta", Region: "west", PanelAreaM2: 1000, BaseEfficiency: 0.20},
		},
	}
	require.NoError(t, SaveSiteCatalog(cat, path))

	loaded, err := LoadSiteCatalog(path)
	require.NoError(t, err)
	require.Len(t, loaded.Sites, 2)

	s, ok := loaded.Find("b")
	require.True(t, ok)
	assert.Equal(t, "Beta", s.Name)

	_, ok = loaded.Find("nope")
	assert.False(t, ok)
}

func TestForecastCacheNilSafe(t *testing.T) {
	var c *ForecastCache

	_, ok := c.Get("k")
	assert.False(t, ok)
	c.Set("k", &ForecastFile{}) // must not panic
	c.Clear()
}

func TestLoadForecastJSONCachedHit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.json")
	require.NoError(t, SaveForecastJSON(&ForecastFile{
		SiteID: "a",
		Series: model.YieldSeries{{PotentialKWh: 100}},
	}, path))

	c := &ForecastCache{store: make(map[string]*CacheEntry), ttl: time.Hour}

	key := GenerateCacheKey("a", path, 0)
	_, ok := c.Get(key)
	assert.False(t, ok)

	f, err := LoadForecastJSON(path)
	require.NoError(t, err)
	c.Set(key, f)

	// A cache hit must survive deletion of the backing file.
	require.NoError(t, os.Remove(path))
	got, ok := c.Get(key)
	require.True(t, ok)
	assert.Equal(t, "a", got.SiteID)
}

func TestGenerateCacheKeyDeterministic(t *testing.T) {
	a := GenerateCacheKey("site", "/tmp/f.json", 720)
	b := GenerateCacheKey("site", "/tmp/f.json", 720)
	c := GenerateCacheKey("site", "/tmp/f.json", 24)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}
