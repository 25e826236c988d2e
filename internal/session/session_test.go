package session

import (
	"context"
	"errors"
	"testing"

	"github.com/vitrinelabs/storefront_api/internal/catalog"
	"github.com/vitrinelabs/storefront_api/internal/models"
	"github.com/vitrinelabs/storefront_api/internal/store"
	"github.com/vitrinelabs/storefront_api/internal/utils"
)

func newTestManager() (*Manager, *store.MemoryStore) {
	cat := catalog.New()
	cat.Replace([]models.Product{
		{ID: "p-1", Name: "Blue Widget", Description: "a widget", Price: 10, Stock: 2, Images: []string{"http://x/1.png", "http://x/2.png"}},
		{ID: "p-2", Name: "Red Gadget", Description: "a gadget", Price: 5, Stock: 1},
	})
	st := store.NewMemoryStore()
	return NewManager(cat, st, nil, nil), st
}

func TestManagerReturnsSameSessionForSameID(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()

	a := m.Get(ctx, "sid-1")
	b := m.Get(ctx, "sid-1")
	if a != b {
		t.Fatal("same session id should return the same session")
	}
	if m.Count() != 1 {
		t.Errorf("Count() = %d, want 1", m.Count())
	}

	m.Get(ctx, "sid-2")
	if m.Count() != 2 {
		t.Errorf("Count() = %d, want 2", m.Count())
	}
}

func TestSessionRehydratesCartFromStore(t *testing.T) {
	m, st := newTestManager()
	ctx := context.Background()

	sess := m.Get(ctx, "sid-1")
	if err := sess.AddToCart(ctx, "p-1"); err != nil {
		t.Fatalf("AddToCart() error = %v", err)
	}
	if err := sess.AddToCart(ctx, "p-1"); err != nil {
		t.Fatalf("AddToCart() error = %v", err)
	}

	// A new manager over the same store simulates a restart.
	cat := catalog.New()
	fresh := NewManager(cat, st, nil, nil).Get(ctx, "sid-1")

	cartState := fresh.Cart()
	if len(cartState.Lines) != 1 {
		t.Fatalf("restored cart has %d lines, want 1", len(cartState.Lines))
	}
	if cartState.Lines[0].Quantity != 2 {
		t.Errorf("restored quantity = %d, want 2", cartState.Lines[0].Quantity)
	}
	if cartState.Totals.TotalItems != 2 {
		t.Errorf("restored TotalItems = %d, want 2", cartState.Totals.TotalItems)
	}
}

func TestAddToCartUnknownProduct(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()

	sess := m.Get(ctx, "sid-1")
	if err := sess.AddToCart(ctx, "ghost"); !errors.Is(err, utils.ErrProductNotFound) {
		t.Fatalf("AddToCart(ghost) error = %v, want ErrProductNotFound", err)
	}
}

func TestSearchSetsActiveQuery(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()
	sess := m.Get(ctx, "sid-1")

	got := sess.Search("widget")
	if len(got) != 1 || got[0].ID != "p-1" {
		t.Fatalf("Search(widget) = %v, want p-1 only", got)
	}
	if q := sess.View().Query; q != "widget" {
		t.Errorf("active query = %q, want widget", q)
	}
}

func TestSetDisplayModeRefiltersWithActiveQuery(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()
	sess := m.Get(ctx, "sid-1")

	sess.Search("gadget")

	products, err := sess.SetDisplayMode(ctx, models.DisplayModeList)
	if err != nil {
		t.Fatalf("SetDisplayMode() error = %v", err)
	}
	if len(products) != 1 || products[0].ID != "p-2" {
		t.Fatalf("re-filtered products = %v, want p-2 only", products)
	}
	if mode := sess.View().DisplayMode; mode != models.DisplayModeList {
		t.Errorf("display mode = %q, want list", mode)
	}
}

func TestSelectProductDrivesViewState(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()
	sess := m.Get(ctx, "sid-1")

	p, slider, err := sess.SelectProduct("p-1")
	if err != nil {
		t.Fatalf("SelectProduct() error = %v", err)
	}
	if p.ID != "p-1" {
		t.Errorf("selected product = %q, want p-1", p.ID)
	}
	if slider.Hidden || !slider.PrevDisabled || slider.NextDisabled {
		t.Errorf("slider = %+v, want visible, prev disabled, next enabled", slider)
	}

	if _, _, err := sess.SelectProduct("ghost"); !errors.Is(err, utils.ErrProductNotFound) {
		t.Fatalf("SelectProduct(ghost) error = %v, want ErrProductNotFound", err)
	}

	slider, err = sess.NextImage()
	if err != nil {
		t.Fatalf("NextImage() error = %v", err)
	}
	if slider.Index != 1 || !slider.NextDisabled {
		t.Errorf("slider after next = %+v, want index 1 at end", slider)
	}

	sess.CloseDetail()
	if sel := sess.View().SelectedProductID; sel != "" {
		t.Errorf("selection after close = %q, want empty", sel)
	}
}

func TestClearFlowThroughSession(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()
	sess := m.Get(ctx, "sid-1")

	sess.AddToCart(ctx, "p-1")
	token := sess.RequestClear()
	if err := sess.ResolveClear(ctx, token, true); err != nil {
		t.Fatalf("ResolveClear() error = %v", err)
	}
	if got := sess.Cart(); len(got.Lines) != 0 || got.Totals.TotalItems != 0 {
		t.Errorf("cart after clear = %+v, want empty", got)
	}
}
