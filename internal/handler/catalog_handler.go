package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/vitrinelabs/storefront_api/internal/middleware"
	"github.com/vitrinelabs/storefront_api/internal/models"
	"github.com/vitrinelabs/storefront_api/internal/session"
	"github.com/vitrinelabs/storefront_api/internal/utils"
)

// sessionFrom resolves the caller's session from the request context.
func sessionFrom(c *gin.Context, m *session.Manager) *session.Session {
	return m.Get(c.Request.Context(), c.GetString(middleware.SessionKey))
}

// ProductResponse is the outward-facing payload for product listings.
type ProductResponse struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Price       float64            `json:"price"`
	Stock       int                `json:"stock"`
	StockStatus models.StockStatus `json:"stockStatus"`
	Images      []string           `json:"images"`
}

func toProductResponses(products []models.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, ProductResponse{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Stock:       p.Stock,
			StockStatus: p.StockStatus(),
			Images:      p.Images,
		})
	}
	return out
}

// CatalogHandler handles product listing and search endpoints.
type CatalogHandler struct {
	sessions *session.Manager
}

// NewCatalogHandler constructs a CatalogHandler.
func NewCatalogHandler(sessions *session.Manager) *CatalogHandler {
	return &CatalogHandler{sessions: sessions}
}

// GetProducts returns the catalog filtered by the search query. The query
// becomes the session's active one so later re-render passes reuse it.
// An empty result set is a valid outcome, not an error.
func (h *CatalogHandler) GetProducts(c *gin.Context) {
	sess := sessionFrom(c, h.sessions)
	products := sess.Search(c.Query("search"))

	utils.Success(c, 200, "Products retrieved successfully", gin.H{
		"products":    toProductResponses(products),
		"displayMode": sess.View().DisplayMode,
	})
}

// GetProduct returns a single product by id.
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	sess := sessionFrom(c, h.sessions)

	p, slider, err := sess.SelectProduct(c.Param("id"))
	if err != nil {
		utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
		return
	}

	utils.Success(c, 200, "Product retrieved successfully", gin.H{
		"product": toProductResponses([]models.Product{p})[0],
		"slider":  slider,
	})
}
