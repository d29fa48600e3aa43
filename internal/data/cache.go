package data

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"sync"
	"time"
)

// CacheEntry holds one cached forecast bundle.
type CacheEntry struct {
	Forecast  *ForecastFile
	ExpiresAt time.Time
}

// ForecastCache is an in-memory TTL cache for forecast bundles, so repeated
// API calls against the same site and horizon do not re-read and re-validate
// the same file. Enabled via ENABLE_FORECAST_CACHE=true.
type ForecastCache struct {
	mu    sync.RWMutex
	store map[string]*CacheEntry
	ttl   time.Duration
}

var globalCache *ForecastCache
var cacheOnce sync.Once

// GetCache returns the process-wide cache instance, or nil when caching is
// disabled. All methods are nil-safe, so callers never need to branch.
func GetCache() *ForecastCache {
	if os.Getenv("ENABLE_FORECAST_CACHE") != "true" {
		return nil
	}

	cacheOnce.Do(func() {
		ttl := 1 * time.Hour
		if ttlStr := os.Getenv("FORECAST_CACHE_TTL"); ttlStr != "" {
			if parsed, err := time.ParseDuration(ttlStr); err == nil {
				ttl = parsed
			}
		}

		globalCache = &ForecastCache{
			store: make(map[string]*CacheEntry),
			ttl:   ttl,
		}

		go globalCache.cleanup()
	})

	return globalCache
}

// Get retrieves a cached forecast if present and not expired.
func (c *ForecastCache) Get(key string) (*ForecastFile, bool) {
	if c == nil {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.store[key]
	if !exists {
		return nil, false
	}
	if time.Now().After(entry.ExpiresAt) {
		return nil, false
	}
	return entry.Forecast, true
}

// Set stores a forecast bundle.
func (c *ForecastCache) Set(key string, f *ForecastFile) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[key] = &CacheEntry{
		Forecast:  f,
		ExpiresAt: time.Now().Add(c.ttl),
	}
}

// Clear removes all entries.
func (c *ForecastCache) Clear() {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store = make(map[string]*CacheEntry)
}

// cleanup periodically removes expired entries.
func (c *ForecastCache) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		now := time.Now()
		for key, entry := range c.store {
			if now.After(entry.ExpiresAt) {
				delete(c.store, key)
			}
		}
		c.mu.Unlock()
	}
}

// GenerateCacheKey builds a deterministic key for a site and horizon.
func GenerateCacheKey(siteID, path string, horizon int) string {
	keyStr := fmt.Sprintf("%s:%s:%d", siteID, path, horizon)
	hash := sha256.Sum256([]byte(keyStr))
	return hex.EncodeToString(hash[:])
}
