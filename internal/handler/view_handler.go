package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/vitrinelabs/storefront_api/internal/models"
	"github.com/vitrinelabs/storefront_api/internal/session"
	"github.com/vitrinelabs/storefront_api/internal/utils"
)

// ViewHandler handles view-state endpoints: detail selection, the image
// slider and the persisted display-mode/theme preferences.
type ViewHandler struct {
	sessions *session.Manager
}

// NewViewHandler constructs a ViewHandler.
func NewViewHandler(sessions *session.Manager) *ViewHandler {
	return &ViewHandler{sessions: sessions}
}

// GetView returns the current view-state snapshot.
func (h *ViewHandler) GetView(c *gin.Context) {
	sess := sessionFrom(c, h.sessions)
	utils.Success(c, 200, "View state retrieved", sess.View())
}

// SelectRequest is the body for opening a product detail view.
type SelectRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

// Select opens a product in the detail view, resetting the image cursor.
func (h *ViewHandler) Select(c *gin.Context) {
	var req SelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "productId is required")
		return
	}

	sess := sessionFrom(c, h.sessions)
	p, slider, err := sess.SelectProduct(req.ProductID)
	if err != nil {
		utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
		return
	}

	utils.Success(c, 200, "Product selected", gin.H{
		"product": toProductResponses([]models.Product{p})[0],
		"slider":  slider,
	})
}

// CloseDetail clears the detail-view selection.
func (h *ViewHandler) CloseDetail(c *gin.Context) {
	sess := sessionFrom(c, h.sessions)
	sess.CloseDetail()
	utils.Success(c, 200, "Detail view closed", sess.View())
}

// NextImage advances the detail-view image cursor, clamping at the end.
func (h *ViewHandler) NextImage(c *gin.Context) {
	h.navigate(c, func(s *session.Session) (models.SliderState, error) { return s.NextImage() })
}

// PrevImage moves the detail-view image cursor back, clamping at the start.
func (h *ViewHandler) PrevImage(c *gin.Context) {
	h.navigate(c, func(s *session.Session) (models.SliderState, error) { return s.PrevImage() })
}

func (h *ViewHandler) navigate(c *gin.Context, move func(*session.Session) (models.SliderState, error)) {
	sess := sessionFrom(c, h.sessions)
	slider, err := move(sess)
	if err != nil {
		if errors.Is(err, utils.ErrNoSelection) {
			utils.Error(c, 409, "NO_SELECTION", "No product is open in the detail view")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Slider navigation failed")
		return
	}
	utils.Success(c, 200, "Slider updated", gin.H{"slider": slider})
}

// SetModeRequest is the body for a display mode change.
type SetModeRequest struct {
	Mode models.DisplayMode `json:"mode" binding:"required"`
}

// SetMode persists the display mode and returns the product set re-filtered
// with the active query, so the client can redraw mode and results in one
// pass.
func (h *ViewHandler) SetMode(c *gin.Context) {
	var req SetModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "mode is required")
		return
	}

	sess := sessionFrom(c, h.sessions)
	products, err := sess.SetDisplayMode(c.Request.Context(), req.Mode)
	if err != nil {
		utils.Error(c, 400, "INVALID_MODE", "mode must be grid or list")
		return
	}

	utils.Success(c, 200, "Display mode updated", gin.H{
		"displayMode": req.Mode,
		"products":    toProductResponses(products),
	})
}

// SetThemeRequest is the body for a theme change.
type SetThemeRequest struct {
	Theme models.Theme `json:"theme" binding:"required"`
}

// SetTheme persists the theme preference.
func (h *ViewHandler) SetTheme(c *gin.Context) {
	var req SetThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "theme is required")
		return
	}

	sess := sessionFrom(c, h.sessions)
	if err := sess.SetTheme(c.Request.Context(), req.Theme); err != nil {
		utils.Error(c, 400, "INVALID_THEME", "theme must be light or dark")
		return
	}

	utils.Success(c, 200, "Theme updated", gin.H{"theme": req.Theme})
}
