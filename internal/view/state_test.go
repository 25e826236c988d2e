package view

import (
	"context"
	"errors"
	"testing"

	"github.com/vitrinelabs/storefront_api/internal/models"
	"github.com/vitrinelabs/storefront_api/internal/store"
	"github.com/vitrinelabs/storefront_api/internal/utils"
)

const testSession = "sess-1"

func productWithImages(n int) models.Product {
	p := models.Product{ID: "p-1", Name: "Widget"}
	for i := 0; i < n; i++ {
		p.Images = append(p.Images, "http://x/img.png")
	}
	return p
}

func TestSelectResetsImageIndex(t *testing.T) {
	s := NewState(testSession, store.NewMemoryStore())
	s.Select(productWithImages(3))

	if err := s.NextImage(); err != nil {
		t.Fatalf("NextImage() error = %v", err)
	}
	if got := s.Slider().Index; got != 1 {
		t.Fatalf("index = %d, want 1", got)
	}

	// Re-opening a product starts the slider over.
	s.Select(productWithImages(3))
	if got := s.Slider().Index; got != 0 {
		t.Errorf("index after reselect = %d, want 0", got)
	}
}

func TestSliderClampsAtBoundaries(t *testing.T) {
	s := NewState(testSession, store.NewMemoryStore())
	s.Select(productWithImages(2))

	if err := s.PrevImage(); err != nil {
		t.Fatalf("PrevImage() error = %v", err)
	}
	if got := s.Slider().Index; got != 0 {
		t.Errorf("index after prev at start = %d, want 0", got)
	}

	s.NextImage()
	s.NextImage()
	s.NextImage()
	if got := s.Slider().Index; got != 1 {
		t.Errorf("index after repeated next = %d, want 1", got)
	}
}

func TestSliderAffordances(t *testing.T) {
	tests := []struct {
		name         string
		images       int
		moves        int
		wantPrevDis  bool
		wantNextDis  bool
		wantHidden   bool
		wantPosition int
	}{
		{name: "no images", images: 0, wantPrevDis: true, wantNextDis: true, wantHidden: true},
		{name: "single image is hidden not disabled", images: 1, wantPrevDis: true, wantNextDis: true, wantHidden: true},
		{name: "start of multi-image sequence", images: 3, wantPrevDis: true, wantNextDis: false},
		{name: "middle of sequence", images: 3, moves: 1, wantPosition: 1},
		{name: "end of sequence", images: 3, moves: 2, wantPrevDis: false, wantNextDis: true, wantPosition: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState(testSession, store.NewMemoryStore())
			s.Select(productWithImages(tt.images))
			for i := 0; i < tt.moves; i++ {
				s.NextImage()
			}

			got := s.Slider()
			if got.Hidden != tt.wantHidden {
				t.Errorf("Hidden = %v, want %v", got.Hidden, tt.wantHidden)
			}
			if got.PrevDisabled != tt.wantPrevDis {
				t.Errorf("PrevDisabled = %v, want %v", got.PrevDisabled, tt.wantPrevDis)
			}
			if got.NextDisabled != tt.wantNextDis {
				t.Errorf("NextDisabled = %v, want %v", got.NextDisabled, tt.wantNextDis)
			}
			if got.Index != tt.wantPosition {
				t.Errorf("Index = %d, want %d", got.Index, tt.wantPosition)
			}
		})
	}
}

func TestNavigationWithoutSelection(t *testing.T) {
	s := NewState(testSession, store.NewMemoryStore())

	if err := s.NextImage(); !errors.Is(err, utils.ErrNoSelection) {
		t.Errorf("NextImage() error = %v, want ErrNoSelection", err)
	}
	if err := s.PrevImage(); !errors.Is(err, utils.ErrNoSelection) {
		t.Errorf("PrevImage() error = %v, want ErrNoSelection", err)
	}
	if got := s.Slider(); !got.Hidden {
		t.Errorf("Slider() without selection = %+v, want hidden", got)
	}
}

func TestSetDisplayModePersists(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()

	s := NewState(testSession, st)
	if got := s.DisplayMode(); got != models.DisplayModeGrid {
		t.Fatalf("default mode = %q, want grid", got)
	}

	if err := s.SetDisplayMode(ctx, models.DisplayModeList); err != nil {
		t.Fatalf("SetDisplayMode() error = %v", err)
	}

	// A fresh state for the same session restores the persisted mode.
	restored := NewState(testSession, st)
	restored.Restore(ctx)
	if got := restored.DisplayMode(); got != models.DisplayModeList {
		t.Errorf("restored mode = %q, want list", got)
	}
}

func TestSetDisplayModeRejectsUnknownMode(t *testing.T) {
	s := NewState(testSession, store.NewMemoryStore())
	if err := s.SetDisplayMode(context.Background(), "carousel"); !errors.Is(err, utils.ErrInvalidMode) {
		t.Fatalf("SetDisplayMode(carousel) error = %v, want ErrInvalidMode", err)
	}
}

func TestThemePersistsAndValidates(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()

	s := NewState(testSession, st)
	if err := s.SetTheme(ctx, models.ThemeDark); err != nil {
		t.Fatalf("SetTheme() error = %v", err)
	}
	if err := s.SetTheme(ctx, "sepia"); !errors.Is(err, utils.ErrInvalidTheme) {
		t.Fatalf("SetTheme(sepia) error = %v, want ErrInvalidTheme", err)
	}

	restored := NewState(testSession, st)
	restored.Restore(ctx)
	if got := restored.Theme(); got != models.ThemeDark {
		t.Errorf("restored theme = %q, want dark", got)
	}
}

func TestRestoreDegradesCorruptPreferences(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()
	st.SaveDisplayMode(ctx, testSession, "????")
	st.SaveTheme(ctx, testSession, "neon")

	s := NewState(testSession, st)
	s.Restore(ctx)

	if got := s.DisplayMode(); got != models.DisplayModeGrid {
		t.Errorf("mode = %q, want default grid", got)
	}
	if got := s.Theme(); got != models.ThemeLight {
		t.Errorf("theme = %q, want default light", got)
	}
}

func TestQueryRoundTrip(t *testing.T) {
	s := NewState(testSession, store.NewMemoryStore())
	s.SetQuery("widget")
	if got := s.Query(); got != "widget" {
		t.Errorf("Query() = %q, want widget", got)
	}
}
