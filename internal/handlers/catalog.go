package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pandeptwidyaop/webretro-server/internal/catalog"
)

// CatalogHandler exposes the supported systems.
type CatalogHandler struct {
	catalog *catalog.Catalog
}

// NewCatalogHandler creates a new CatalogHandler instance.
func NewCatalogHandler(c *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: c}
}

// Systems returns every system descriptor keyed by id.
// GET /api/systems
func (h *CatalogHandler) Systems(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.All())
}
