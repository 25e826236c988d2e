package notify

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vitrinelabs/storefront_api/internal/metrics"
)

// Client represents one connected event-stream consumer, bound to a session.
type Client struct {
	ID        string
	SessionID string
	Events    chan []byte
}

// Hub fans notifications out to connected event-stream clients. A session
// may have several open tabs, so delivery targets every client registered
// under the session id.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	metrics *metrics.Metrics
}

// NewHub creates a new Hub. The metrics argument may be nil.
func NewHub(m *metrics.Metrics) *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		metrics: m,
	}
}

// Register adds a new client and returns it for streaming.
func (h *Hub) Register(clientID, sessionID string) *Client {
	h.mu.Lock()
	defer h.mu.Unlock()

	c := &Client{
		ID:        clientID,
		SessionID: sessionID,
		Events:    make(chan []byte, 64),
	}
	h.clients[clientID] = c
	log.Info().Str("client_id", clientID).Str("session_id", sessionID).Int("total_clients", len(h.clients)).Msg("event stream client connected")
	return c
}

// Unregister removes a client and closes its channel.
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if c, ok := h.clients[clientID]; ok {
		close(c.Events)
		delete(h.clients, clientID)
		log.Info().Str("client_id", clientID).Int("total_clients", len(h.clients)).Msg("event stream client disconnected")
	}
}

// EmitTo delivers an event to every client of the given session.
// Non-blocking: drops the message if a client buffer is full.
func (h *Hub) EmitTo(sessionID string, kind Kind, message string) {
	h.metrics.IncNotification(string(kind))

	data, err := json.Marshal(Event{Kind: kind, Message: message, Timestamp: time.Now()})
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal notification")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, c := range h.clients {
		if c.SessionID != sessionID {
			continue
		}
		select {
		case c.Events <- data:
		default:
			log.Warn().Str("client_id", c.ID).Msg("event stream client buffer full, dropping event")
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// NotifierFor returns a Notifier that delivers to the given session's clients.
func (h *Hub) NotifierFor(sessionID string) Notifier {
	return &sessionNotifier{hub: h, sessionID: sessionID}
}

type sessionNotifier struct {
	hub       *Hub
	sessionID string
}

func (n *sessionNotifier) Emit(kind Kind, message string) {
	n.hub.EmitTo(n.sessionID, kind, message)
}
