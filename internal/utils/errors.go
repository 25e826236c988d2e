package utils

import "errors"

// Common application errors used across services.
var (
	ErrProductNotFound   = errors.New("PRODUCT_NOT_FOUND")
	ErrOutOfStock        = errors.New("OUT_OF_STOCK")
	ErrStockLimitReached = errors.New("STOCK_LIMIT_REACHED")
	ErrNoSelection       = errors.New("NO_SELECTION")
	ErrInvalidMode       = errors.New("INVALID_MODE")
	ErrInvalidTheme      = errors.New("INVALID_THEME")
	ErrInvalidDelta      = errors.New("INVALID_DELTA")
	ErrUnknownClearToken = errors.New("UNKNOWN_CLEAR_TOKEN")
	ErrFetchInFlight     = errors.New("FETCH_IN_FLIGHT")
)
