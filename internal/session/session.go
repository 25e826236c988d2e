package session

import (
	"context"
	"sync"

	"github.com/vitrinelabs/storefront_api/internal/cart"
	"github.com/vitrinelabs/storefront_api/internal/catalog"
	"github.com/vitrinelabs/storefront_api/internal/models"
	"github.com/vitrinelabs/storefront_api/internal/utils"
	"github.com/vitrinelabs/storefront_api/internal/view"
)

// Session is the owned state object for one storefront client: its cart and
// view state, plus a reference to the shared catalog. It is created on the
// first request carrying a session id, rehydrated from the durable store,
// and torn down with the process. All operations on one session are
// serialized by its mutex, which gives each mutation the atomic
// validate-mutate-persist-notify shape the engine relies on.
type Session struct {
	ID string

	mu      sync.Mutex
	catalog *catalog.Catalog
	cart    *cart.Cart
	view    *view.State
}

// ViewPayload is the renderable view-state snapshot handed to the
// presentation layer.
type ViewPayload struct {
	SelectedProductID string             `json:"selectedProductId,omitempty"`
	Slider            models.SliderState `json:"slider"`
	DisplayMode       models.DisplayMode `json:"displayMode"`
	Theme             models.Theme       `json:"theme"`
	Query             string             `json:"query"`
}

// CartPayload is the renderable cart snapshot: the lines plus freshly
// recomputed totals.
type CartPayload struct {
	Lines  []models.CartLine `json:"lines"`
	Totals models.CartTotals `json:"totals"`
}

// Search records the query as the active one and returns the filtered
// product set.
func (s *Session) Search(query string) []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.SetQuery(query)
	return s.catalog.Filter(query)
}

// Refilter re-runs the active query without changing it.
func (s *Session) Refilter() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Filter(s.view.Query())
}

// SelectProduct opens a product in the detail view.
func (s *Session) SelectProduct(productID string) (models.Product, models.SliderState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.catalog.Get(productID)
	if !ok {
		return models.Product{}, models.SliderState{}, utils.ErrProductNotFound
	}
	s.view.Select(p)
	return p, s.view.Slider(), nil
}

// CloseDetail clears the detail-view selection.
func (s *Session) CloseDetail() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.Deselect()
}

// NextImage advances the detail-view image cursor.
func (s *Session) NextImage() (models.SliderState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.view.NextImage(); err != nil {
		return models.SliderState{}, err
	}
	return s.view.Slider(), nil
}

// PrevImage moves the detail-view image cursor back.
func (s *Session) PrevImage() (models.SliderState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.view.PrevImage(); err != nil {
		return models.SliderState{}, err
	}
	return s.view.Slider(), nil
}

// SetDisplayMode persists the mode and returns the product set re-filtered
// with the active query, so the displayed set stays consistent with both.
func (s *Session) SetDisplayMode(ctx context.Context, mode models.DisplayMode) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.view.SetDisplayMode(ctx, mode); err != nil {
		return nil, err
	}
	return s.catalog.Filter(s.view.Query()), nil
}

// SetTheme persists the theme preference.
func (s *Session) SetTheme(ctx context.Context, theme models.Theme) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view.SetTheme(ctx, theme)
}

// View returns the current view-state snapshot.
func (s *Session) View() ViewPayload {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload := ViewPayload{
		Slider:      s.view.Slider(),
		DisplayMode: s.view.DisplayMode(),
		Theme:       s.view.Theme(),
		Query:       s.view.Query(),
	}
	if p, ok := s.view.Selected(); ok {
		payload.SelectedProductID = p.ID
	}
	return payload
}

// AddToCart adds one unit of a catalog product to the cart.
func (s *Session) AddToCart(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.catalog.Get(productID)
	if !ok {
		return utils.ErrProductNotFound
	}
	return s.cart.Add(ctx, p)
}

// ChangeQuantity adjusts a cart line by ±1.
func (s *Session) ChangeQuantity(ctx context.Context, productID string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.ChangeQuantity(ctx, productID, delta)
}

// RemoveFromCart deletes a cart line; absent lines are a no-op.
func (s *Session) RemoveFromCart(ctx context.Context, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Remove(ctx, productID)
}

// RequestClear opens a pending clear confirmation and returns its token.
func (s *Session) RequestClear() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.RequestClear()
}

// ResolveClear resolves a pending clear confirmation.
func (s *Session) ResolveClear(ctx context.Context, token string, confirmed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.ResolveClear(ctx, token, confirmed)
}

// Cart returns the renderable cart snapshot.
func (s *Session) Cart() CartPayload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CartPayload{
		Lines:  s.cart.Lines(),
		Totals: s.cart.Totals(),
	}
}
