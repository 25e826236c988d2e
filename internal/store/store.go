package store

import (
	"context"
	"sync"
)

// Store is the durable storage boundary for per-session state: one logical
// key for the serialized cart, one for the display mode and one for the
// theme preference. A missing key reads back as an empty string, never an
// error; corrupt values are the caller's problem to degrade gracefully.
type Store interface {
	SaveCart(ctx context.Context, sessionID, payload string) error
	LoadCart(ctx context.Context, sessionID string) (string, error)
	DeleteCart(ctx context.Context, sessionID string) error

	SaveDisplayMode(ctx context.Context, sessionID, mode string) error
	LoadDisplayMode(ctx context.Context, sessionID string) (string, error)

	SaveTheme(ctx context.Context, sessionID, theme string) error
	LoadTheme(ctx context.Context, sessionID string) (string, error)
}

// MemoryStore is an in-process Store used in tests and when Redis is not
// reachable. State does not survive a restart.
type MemoryStore struct {
	mu     sync.RWMutex
	carts  map[string]string
	modes  map[string]string
	themes map[string]string
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		carts:  make(map[string]string),
		modes:  make(map[string]string),
		themes: make(map[string]string),
	}
}

func (s *MemoryStore) SaveCart(_ context.Context, sessionID, payload string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[sessionID] = payload
	return nil
}

func (s *MemoryStore) LoadCart(_ context.Context, sessionID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.carts[sessionID], nil
}

func (s *MemoryStore) DeleteCart(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
	return nil
}

func (s *MemoryStore) SaveDisplayMode(_ context.Context, sessionID, mode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modes[sessionID] = mode
	return nil
}

func (s *MemoryStore) LoadDisplayMode(_ context.Context, sessionID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modes[sessionID], nil
}

func (s *MemoryStore) SaveTheme(_ context.Context, sessionID, theme string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.themes[sessionID] = theme
	return nil
}

func (s *MemoryStore) LoadTheme(_ context.Context, sessionID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.themes[sessionID], nil
}
