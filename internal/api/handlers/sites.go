package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sagm07/SolarOS/internal/api/models"
	"github.com/sagm07/SolarOS/internal/data"
)

// SiteHandler serves the fleet catalog
type SiteHandler struct {
	catalogPath string
}

// NewSiteHandler creates a new site handler reading from the given catalog
// path, falling back to the default location when empty.
func NewSiteHandler(catalogPath string) *SiteHandler {
	if catalogPath == "" {
		catalogPath = data.GetDefaultCatalogPath()
	}
	return &SiteHandler{catalogPath: catalogPath}
}

// ListSites handles GET /api/v1/sites
func (h *SiteHandler) ListSites(c *gin.Context) {
	cat, err := data.LoadSiteCatalog(h.catalogPath)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "CATALOG_ERROR", err.Error())
		return
	}

	sites := make([]models.SiteInfo, 0, len(cat.Sites))
	for _, s := range cat.Sites {
		sites = append(sites, models.SiteInfo{
			ID:     s.ID,
			Name:   s.Name,
			Region: s.Region,
		})
	}
	c.JSON(http.StatusOK, gin.H{"sites": sites, "updated_at": cat.UpdatedAt})
}
