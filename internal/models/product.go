package models

// StockStatus enumerates the coarse stock levels exposed to clients.
type StockStatus string

const (
	StockStatusOut  StockStatus = "out"
	StockStatusLow  StockStatus = "low"
	StockStatusHigh StockStatus = "high"
)

// Stock counts at or below this threshold are reported as "low".
const lowStockThreshold = 5

// Product represents one catalog entry built from a feed row.
// Price and Stock are always valid non-negative numbers after parsing;
// consumers never see an unparsed or negative value.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Stock       int      `json:"stock"`
	Images      []string `json:"images"`
}

// StockStatus classifies the product's stock count for display.
func (p Product) StockStatus() StockStatus {
	switch {
	case p.Stock == 0:
		return StockStatusOut
	case p.Stock <= lowStockThreshold:
		return StockStatusLow
	default:
		return StockStatusHigh
	}
}

// InStock reports whether at least one unit can be added to a cart.
func (p Product) InStock() bool {
	return p.Stock > 0
}
