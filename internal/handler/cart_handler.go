package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/vitrinelabs/storefront_api/internal/session"
	"github.com/vitrinelabs/storefront_api/internal/utils"
)

// CartHandler handles cart intent endpoints. The handlers only translate
// HTTP to core intents; the cart engine owns all mutation rules.
type CartHandler struct {
	sessions *session.Manager
}

// NewCartHandler constructs a CartHandler.
func NewCartHandler(sessions *session.Manager) *CartHandler {
	return &CartHandler{sessions: sessions}
}

// GetCart returns the cart lines and freshly computed totals.
func (h *CartHandler) GetCart(c *gin.Context) {
	sess := sessionFrom(c, h.sessions)
	utils.Success(c, 200, "Cart retrieved successfully", sess.Cart())
}

// AddItemRequest is the body for adding a product to the cart.
type AddItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

// AddItem adds one unit of a product to the cart.
func (h *CartHandler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "productId is required")
		return
	}

	sess := sessionFrom(c, h.sessions)
	if err := sess.AddToCart(c.Request.Context(), req.ProductID); err != nil {
		h.writeCartError(c, err)
		return
	}

	utils.Success(c, 200, "Product added to cart", sess.Cart())
}

// ChangeQuantityRequest is the body for a quantity adjustment.
type ChangeQuantityRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// ChangeQuantity adjusts a cart line quantity by ±1. Decrementing the last
// unit removes the line; that is an expected transition and reported as
// success.
func (h *CartHandler) ChangeQuantity(c *gin.Context) {
	var req ChangeQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "delta is required")
		return
	}

	sess := sessionFrom(c, h.sessions)
	if err := sess.ChangeQuantity(c.Request.Context(), c.Param("productId"), req.Delta); err != nil {
		h.writeCartError(c, err)
		return
	}

	utils.Success(c, 200, "Cart updated", sess.Cart())
}

// RemoveItem deletes a cart line. Removing an absent line is a no-op and
// still succeeds.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	sess := sessionFrom(c, h.sessions)
	sess.RemoveFromCart(c.Request.Context(), c.Param("productId"))
	utils.Success(c, 200, "Cart item removed", sess.Cart())
}

// RequestClear opens a pending clear confirmation. The actual clear only
// happens once the client confirms via ConfirmClear.
func (h *CartHandler) RequestClear(c *gin.Context) {
	sess := sessionFrom(c, h.sessions)
	token := sess.RequestClear()
	utils.Success(c, 200, "Clear confirmation pending", gin.H{"token": token})
}

// ConfirmClearRequest resolves a pending clear confirmation.
type ConfirmClearRequest struct {
	Token     string `json:"token" binding:"required"`
	Confirmed *bool  `json:"confirmed" binding:"required"`
}

// ConfirmClear resolves a pending clear with the user's answer.
func (h *CartHandler) ConfirmClear(c *gin.Context) {
	var req ConfirmClearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "token and confirmed are required")
		return
	}

	sess := sessionFrom(c, h.sessions)
	if err := sess.ResolveClear(c.Request.Context(), req.Token, *req.Confirmed); err != nil {
		utils.Error(c, 404, "UNKNOWN_CLEAR_TOKEN", "No pending clear for this token")
		return
	}

	utils.Success(c, 200, "Clear resolved", sess.Cart())
}

// writeCartError maps core cart errors onto the response envelope.
func (h *CartHandler) writeCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, utils.ErrProductNotFound):
		utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
	case errors.Is(err, utils.ErrOutOfStock):
		utils.Error(c, 409, "OUT_OF_STOCK", "Product is out of stock")
	case errors.Is(err, utils.ErrStockLimitReached):
		utils.Error(c, 409, "STOCK_LIMIT_REACHED", "Stock limit reached")
	case errors.Is(err, utils.ErrInvalidDelta):
		utils.Error(c, 400, "INVALID_DELTA", "delta must be +1 or -1")
	default:
		utils.Error(c, 500, "INTERNAL_ERROR", "Cart operation failed")
	}
}
