package cart

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vitrinelabs/storefront_api/internal/metrics"
	"github.com/vitrinelabs/storefront_api/internal/models"
	"github.com/vitrinelabs/storefront_api/internal/notify"
	"github.com/vitrinelabs/storefront_api/internal/store"
	"github.com/vitrinelabs/storefront_api/internal/utils"
)

// Mutation outcome labels for metrics.
const (
	outcomeSuccess  = "success"
	outcomeRejected = "rejected"
	outcomeNoop     = "noop"
)

// Cart owns the line items for one session and is their sole mutator.
// Every mutation follows the same fixed order: validate, mutate-or-reject,
// persist (on success or removal only), notify. Callers serialize access;
// the engine itself assumes single-threaded use, matching the event-driven
// model of the storefront client.
type Cart struct {
	sessionID string
	lines     []models.CartLine
	store     store.Store
	notifier  notify.Notifier
	metrics   *metrics.Metrics

	// pending clear confirmations, keyed by token
	pendingClear map[string]struct{}
}

// New constructs an empty Cart for the given session. The metrics argument
// may be nil.
func New(sessionID string, st store.Store, n notify.Notifier, m *metrics.Metrics) *Cart {
	if n == nil {
		n = notify.NopNotifier{}
	}
	return &Cart{
		sessionID:    sessionID,
		store:        st,
		notifier:     n,
		metrics:      m,
		pendingClear: make(map[string]struct{}),
	}
}

// Add puts one unit of the product in the cart: a new line with quantity 1,
// or an increment of the existing line. It is rejected when the product has
// no stock or the existing line already sits at the stock limit.
func (c *Cart) Add(ctx context.Context, p models.Product) error {
	if !p.InStock() {
		c.metrics.IncCartMutation("add", outcomeRejected)
		c.notifier.Emit(notify.KindError, fmt.Sprintf("%s is out of stock", p.Name))
		return utils.ErrOutOfStock
	}

	if i := c.findLine(p.ID); i >= 0 {
		if c.lines[i].Quantity >= p.Stock {
			c.metrics.IncCartMutation("add", outcomeRejected)
			c.notifier.Emit(notify.KindError, fmt.Sprintf("no more stock of %s", p.Name))
			return utils.ErrStockLimitReached
		}
		c.lines[i].Quantity++
		c.persist(ctx)
		c.metrics.IncCartMutation("add", outcomeSuccess)
		c.notifier.Emit(notify.KindSuccess, fmt.Sprintf("%s +1 in cart", p.Name))
		return nil
	}

	c.lines = append(c.lines, models.CartLine{Product: p, Quantity: 1})
	c.persist(ctx)
	c.metrics.IncCartMutation("add", outcomeSuccess)
	c.notifier.Emit(notify.KindSuccess, fmt.Sprintf("%s added to cart", p.Name))
	return nil
}

// ChangeQuantity adjusts a line's quantity by delta, which must be +1 or -1.
// Dropping to zero or below removes the line; exceeding the stock limit is
// rejected without mutation or persistence. An unknown product id is a
// no-op, not an error.
func (c *Cart) ChangeQuantity(ctx context.Context, productID string, delta int) error {
	if delta != 1 && delta != -1 {
		return utils.ErrInvalidDelta
	}

	i := c.findLine(productID)
	if i < 0 {
		c.metrics.IncCartMutation("change_quantity", outcomeNoop)
		return nil
	}

	line := c.lines[i]
	newQty := line.Quantity + delta

	switch {
	case newQty <= 0:
		// Removal via decrement is an expected transition, not an error.
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
		c.persist(ctx)
		c.metrics.IncCartMutation("change_quantity", outcomeSuccess)
		c.notifier.Emit(notify.KindSuccess, fmt.Sprintf("%s removed from cart", line.Product.Name))
		return nil
	case newQty > line.Product.Stock:
		c.metrics.IncCartMutation("change_quantity", outcomeRejected)
		c.notifier.Emit(notify.KindError, fmt.Sprintf("stock limit reached for %s", line.Product.Name))
		return utils.ErrStockLimitReached
	default:
		c.lines[i].Quantity = newQty
		c.persist(ctx)
		c.metrics.IncCartMutation("change_quantity", outcomeSuccess)
		c.notifier.Emit(notify.KindSuccess, fmt.Sprintf("quantity of %s updated to %d", line.Product.Name, newQty))
		return nil
	}
}

// Remove deletes the line for the given product id. It is idempotent:
// removing an absent line is a no-op.
func (c *Cart) Remove(ctx context.Context, productID string) {
	i := c.findLine(productID)
	if i < 0 {
		c.metrics.IncCartMutation("remove", outcomeNoop)
		return
	}

	name := c.lines[i].Product.Name
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	c.persist(ctx)
	c.metrics.IncCartMutation("remove", outcomeSuccess)
	c.notifier.Emit(notify.KindSuccess, fmt.Sprintf("%s removed from cart", name))
}

// RequestClear opens a pending clear confirmation and returns its token.
// The presentation layer asks the user and resolves via ResolveClear; the
// core itself never blocks on a confirmation.
func (c *Cart) RequestClear() string {
	token := uuid.NewString()
	c.pendingClear[token] = struct{}{}
	return token
}

// ResolveClear resolves a pending clear. When confirmed, the clear is
// unconditional: all lines are dropped, persisted and reported.
func (c *Cart) ResolveClear(ctx context.Context, token string, confirmed bool) error {
	if _, ok := c.pendingClear[token]; !ok {
		return utils.ErrUnknownClearToken
	}
	delete(c.pendingClear, token)

	if !confirmed {
		c.metrics.IncCartMutation("clear", outcomeNoop)
		return nil
	}

	c.lines = nil
	c.persist(ctx)
	c.metrics.IncCartMutation("clear", outcomeSuccess)
	c.notifier.Emit(notify.KindSuccess, "cart cleared")
	return nil
}

// Totals recomputes the cart aggregates from the current lines. They are
// never cached, so they cannot go stale relative to the last mutation.
func (c *Cart) Totals() models.CartTotals {
	var t models.CartTotals
	for _, l := range c.lines {
		t.TotalItems += l.Quantity
		t.TotalPrice += l.Subtotal()
	}
	return t
}

// Lines returns a snapshot of the cart lines in insertion order.
func (c *Cart) Lines() []models.CartLine {
	out := make([]models.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len returns the number of lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) findLine(productID string) int {
	for i, l := range c.lines {
		if l.Product.ID == productID {
			return i
		}
	}
	return -1
}

// persist writes the serialized line set through the store. Store failures
// are logged and swallowed: losing a persisted cart must never fail the
// mutation that already happened.
func (c *Cart) persist(ctx context.Context) {
	payload, err := c.Serialize()
	if err != nil {
		log.Error().Err(err).Str("session_id", c.sessionID).Msg("cart serialization failed")
		return
	}
	if err := c.store.SaveCart(ctx, c.sessionID, payload); err != nil {
		log.Warn().Err(err).Str("session_id", c.sessionID).Msg("cart persistence failed")
	}
}

// Serialize returns the durable form of the cart: the line set as JSON,
// each line carrying the full product snapshot and its quantity.
func (c *Cart) Serialize() (string, error) {
	data, err := json.Marshal(c.lines)
	if err != nil {
		return "", fmt.Errorf("marshal cart lines: %w", err)
	}
	return string(data), nil
}

// Restore rehydrates the cart from the store. Malformed stored data is never
// fatal: an undecodable payload discards the whole stored cart, and lines
// with an unusable product reference are dropped silently.
func (c *Cart) Restore(ctx context.Context) {
	payload, err := c.store.LoadCart(ctx, c.sessionID)
	if err != nil {
		log.Warn().Err(err).Str("session_id", c.sessionID).Msg("cart load failed, starting empty")
		return
	}
	c.lines = decodeLines(c.sessionID, payload)
}

// decodeLines turns a stored payload back into cart lines, re-coercing
// numeric fields and filtering structurally invalid entries.
func decodeLines(sessionID, payload string) []models.CartLine {
	if payload == "" {
		return nil
	}

	var stored []storedLine
	if err := json.Unmarshal([]byte(payload), &stored); err != nil {
		log.Warn().Err(err).Str("session_id", sessionID).Msg("stored cart unreadable, discarding")
		return nil
	}

	var lines []models.CartLine
	for _, sl := range stored {
		if sl.Product.ID == "" {
			continue
		}
		qty := int(sl.Quantity)
		if qty < 1 {
			continue
		}
		lines = append(lines, models.CartLine{
			Product: models.Product{
				ID:          sl.Product.ID,
				Name:        sl.Product.Name,
				Description: sl.Product.Description,
				Price:       float64(sl.Product.Price),
				Stock:       int(sl.Product.Stock),
				Images:      sl.Product.Images,
			},
			Quantity: qty,
		})
	}
	return lines
}
