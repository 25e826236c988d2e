package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vitrinelabs/storefront_api/internal/catalog"
	"github.com/vitrinelabs/storefront_api/internal/utils"
)

var startTime = time.Now()

// HealthHandler provides health endpoint.
type HealthHandler struct {
	catalog *catalog.Catalog
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(cat *catalog.Catalog) *HealthHandler {
	return &HealthHandler{catalog: cat}
}

// GetHealth responds with service status and catalog size.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	utils.Success(c, 200, "Service is healthy", gin.H{
		"status":   "healthy",
		"version":  "1.0.0",
		"uptime":   int(time.Since(startTime).Seconds()),
		"products": h.catalog.Len(),
	})
}
