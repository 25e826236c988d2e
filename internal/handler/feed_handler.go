package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/vitrinelabs/storefront_api/internal/feed"
	"github.com/vitrinelabs/storefront_api/internal/utils"
)

// FeedHandler handles feed management endpoints.
type FeedHandler struct {
	loader *feed.Loader
}

// NewFeedHandler constructs a FeedHandler.
func NewFeedHandler(loader *feed.Loader) *FeedHandler {
	return &FeedHandler{loader: loader}
}

// Refresh re-fetches and re-parses the feed, replacing the catalog. Only
// one fetch may be outstanding; a concurrent refresh is rejected rather
// than duplicated.
func (h *FeedHandler) Refresh(c *gin.Context) {
	count, err := h.loader.Load(c.Request.Context())
	if err != nil {
		if errors.Is(err, utils.ErrFetchInFlight) {
			utils.Error(c, 409, "FETCH_IN_FLIGHT", "A feed fetch is already in progress")
			return
		}
		utils.Error(c, 502, "FEED_UNAVAILABLE", "Could not load the product feed")
		return
	}

	utils.Success(c, 200, "Feed refreshed", gin.H{"products": count})
}
