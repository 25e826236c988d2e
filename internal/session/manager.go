package session

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/vitrinelabs/storefront_api/internal/cart"
	"github.com/vitrinelabs/storefront_api/internal/catalog"
	"github.com/vitrinelabs/storefront_api/internal/metrics"
	"github.com/vitrinelabs/storefront_api/internal/notify"
	"github.com/vitrinelabs/storefront_api/internal/store"
	"github.com/vitrinelabs/storefront_api/internal/view"
)

// Manager creates and holds sessions by id. Each new session is rehydrated
// from the durable store on first sight.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	catalog *catalog.Catalog
	store   store.Store
	hub     *notify.Hub
	metrics *metrics.Metrics
}

// NewManager constructs a Manager. The metrics argument may be nil.
func NewManager(cat *catalog.Catalog, st store.Store, hub *notify.Hub, m *metrics.Metrics) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		catalog:  cat,
		store:    st,
		hub:      hub,
		metrics:  m,
	}
}

// Get returns the session for the given id, creating and rehydrating it if
// this is the first request carrying the id.
func (m *Manager) Get(ctx context.Context, sessionID string) *Session {
	m.mu.RLock()
	s, ok := m.sessions[sessionID]
	m.mu.RUnlock()
	if ok {
		return s
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[sessionID]; ok {
		return s
	}

	var notifier notify.Notifier = notify.NopNotifier{}
	if m.hub != nil {
		notifier = m.hub.NotifierFor(sessionID)
	}
	s = &Session{
		ID:      sessionID,
		catalog: m.catalog,
		cart:    cart.New(sessionID, m.store, notifier, m.metrics),
		view:    view.NewState(sessionID, m.store),
	}
	s.cart.Restore(ctx)
	s.view.Restore(ctx)
	m.sessions[sessionID] = s

	log.Debug().Str("session_id", sessionID).Msg("session created")
	return s
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
