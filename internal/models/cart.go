package models

// CartLine pairs a product snapshot with the quantity in the cart.
// The snapshot is kept in full so a restored cart renders without the
// catalog being loaded, matching how the stored cart is rehydrated.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Subtotal returns price times quantity for this line.
func (l CartLine) Subtotal() float64 {
	return l.Product.Price * float64(l.Quantity)
}

// CartTotals holds the derived cart aggregates. They are recomputed from
// the lines on every request, never stored.
type CartTotals struct {
	TotalItems int     `json:"totalItems"`
	TotalPrice float64 `json:"totalPrice"`
}
