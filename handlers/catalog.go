package handlers

import (
	"net/http"

	"hussboss/services/catalog"
	"hussboss/utils"

	"github.com/gin-gonic/gin"
)

// CatalogHandler answers the dropdown lookups of the search bar.
type CatalogHandler struct {
	Catalog *catalog.Loader
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(loader *catalog.Loader) *CatalogHandler {
	return &CatalogHandler{Catalog: loader}
}

// Services handles GET /api/catalog/services?q=.
func (h *CatalogHandler) Services(c *gin.Context) {
	cat, err := h.Catalog.Load(c.Request.Context())
	if err != nil && len(cat.Services) == 0 {
		utils.JSONError(c, http.StatusBadGateway, "Failed to load services", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": cat.FilterServices(c.Query("q"))})
}

// Locations handles GET /api/catalog/locations?q=.
func (h *CatalogHandler) Locations(c *gin.Context) {
	cat, err := h.Catalog.Load(c.Request.Context())
	if err != nil && len(cat.Locations) == 0 {
		utils.JSONError(c, http.StatusBadGateway, "Failed to load locations", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": cat.FilterLocations(c.Query("q"))})
}
