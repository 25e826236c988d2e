package view

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/vitrinelabs/storefront_api/internal/models"
	"github.com/vitrinelabs/storefront_api/internal/store"
	"github.com/vitrinelabs/storefront_api/internal/utils"
)

// State tracks the transient UI selection for one session: the product open
// in the detail view, the image cursor, the active search query, and the
// persisted display-mode and theme preferences. The core exposes this state
// but never renders it.
type State struct {
	sessionID string
	store     store.Store

	selected    *models.Product
	imageIndex  int
	query       string
	displayMode models.DisplayMode
	theme       models.Theme
}

// NewState constructs a State with default preferences (grid, light).
func NewState(sessionID string, st store.Store) *State {
	return &State{
		sessionID:   sessionID,
		store:       st,
		displayMode: models.DisplayModeGrid,
		theme:       models.ThemeLight,
	}
}

// Restore loads the persisted display mode and theme. Corrupt or missing
// values degrade to the defaults, never to an error.
func (s *State) Restore(ctx context.Context) {
	if raw, err := s.store.LoadDisplayMode(ctx, s.sessionID); err != nil {
		log.Warn().Err(err).Str("session_id", s.sessionID).Msg("display mode load failed, using default")
	} else if mode := models.DisplayMode(raw); models.ValidDisplayMode(mode) {
		s.displayMode = mode
	}

	if raw, err := s.store.LoadTheme(ctx, s.sessionID); err != nil {
		log.Warn().Err(err).Str("session_id", s.sessionID).Msg("theme load failed, using default")
	} else if theme := models.Theme(raw); models.ValidTheme(theme) {
		s.theme = theme
	}
}

// Select opens a product in the detail view and resets the image cursor.
func (s *State) Select(p models.Product) {
	s.selected = &p
	s.imageIndex = 0
}

// Deselect closes the detail view.
func (s *State) Deselect() {
	s.selected = nil
	s.imageIndex = 0
}

// Selected returns the product currently open in the detail view.
func (s *State) Selected() (models.Product, bool) {
	if s.selected == nil {
		return models.Product{}, false
	}
	return *s.selected, true
}

// NextImage advances the image cursor, clamping at the last image.
func (s *State) NextImage() error {
	if s.selected == nil {
		return utils.ErrNoSelection
	}
	if s.imageIndex < len(s.selected.Images)-1 {
		s.imageIndex++
	}
	return nil
}

// PrevImage moves the image cursor back, clamping at the first image.
func (s *State) PrevImage() error {
	if s.selected == nil {
		return utils.ErrNoSelection
	}
	if s.imageIndex > 0 {
		s.imageIndex--
	}
	return nil
}

// Slider reports the navigation affordances for the current selection.
// With one image or none both affordances are hidden outright, a distinct
// signal from being disabled at a boundary.
func (s *State) Slider() models.SliderState {
	if s.selected == nil {
		return models.SliderState{Hidden: true, PrevDisabled: true, NextDisabled: true}
	}
	count := len(s.selected.Images)
	return models.SliderState{
		Index:        s.imageIndex,
		Count:        count,
		PrevDisabled: s.imageIndex == 0,
		NextDisabled: s.imageIndex >= count-1,
		Hidden:       count <= 1,
	}
}

// SetQuery records the active search query so re-render passes (for example
// after a display-mode change) reuse it.
func (s *State) SetQuery(query string) {
	s.query = query
}

// Query returns the active search query.
func (s *State) Query() string {
	return s.query
}

// SetDisplayMode validates and persists the display mode. The caller is
// expected to re-run the active filter afterwards so mode and query stay
// consistent.
func (s *State) SetDisplayMode(ctx context.Context, mode models.DisplayMode) error {
	if !models.ValidDisplayMode(mode) {
		return utils.ErrInvalidMode
	}
	s.displayMode = mode
	if err := s.store.SaveDisplayMode(ctx, s.sessionID, string(mode)); err != nil {
		log.Warn().Err(err).Str("session_id", s.sessionID).Msg("display mode persistence failed")
	}
	return nil
}

// DisplayMode returns the active display mode.
func (s *State) DisplayMode() models.DisplayMode {
	return s.displayMode
}

// SetTheme validates and persists the theme preference.
func (s *State) SetTheme(ctx context.Context, theme models.Theme) error {
	if !models.ValidTheme(theme) {
		return utils.ErrInvalidTheme
	}
	s.theme = theme
	if err := s.store.SaveTheme(ctx, s.sessionID, string(theme)); err != nil {
		log.Warn().Err(err).Str("session_id", s.sessionID).Msg("theme persistence failed")
	}
	return nil
}

// Theme returns the active theme preference.
func (s *State) Theme() models.Theme {
	return s.theme
}
