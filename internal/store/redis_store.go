package store

import (
	"context"
	"fmt"
	"time"
)

// Session state lives as long as an abandoned cart stays interesting.
const sessionTTL = 30 * 24 * time.Hour

// RedisStore implements Store on a Redis backend.
// Key scheme: cart:{sessionID}, view:mode:{sessionID}, view:theme:{sessionID}.
type RedisStore struct {
	redis *RedisClient
}

// NewRedisStore creates a Store backed by the given Redis client.
func NewRedisStore(redis *RedisClient) *RedisStore {
	return &RedisStore{redis: redis}
}

func (s *RedisStore) cartKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}

func (s *RedisStore) modeKey(sessionID string) string {
	return fmt.Sprintf("view:mode:%s", sessionID)
}

func (s *RedisStore) themeKey(sessionID string) string {
	return fmt.Sprintf("view:theme:%s", sessionID)
}

func (s *RedisStore) SaveCart(ctx context.Context, sessionID, payload string) error {
	return s.redis.Set(ctx, s.cartKey(sessionID), payload, sessionTTL)
}

func (s *RedisStore) LoadCart(ctx context.Context, sessionID string) (string, error) {
	return s.redis.Get(ctx, s.cartKey(sessionID))
}

func (s *RedisStore) DeleteCart(ctx context.Context, sessionID string) error {
	return s.redis.Delete(ctx, s.cartKey(sessionID))
}

func (s *RedisStore) SaveDisplayMode(ctx context.Context, sessionID, mode string) error {
	return s.redis.Set(ctx, s.modeKey(sessionID), mode, sessionTTL)
}

func (s *RedisStore) LoadDisplayMode(ctx context.Context, sessionID string) (string, error) {
	return s.redis.Get(ctx, s.modeKey(sessionID))
}

func (s *RedisStore) SaveTheme(ctx context.Context, sessionID, theme string) error {
	return s.redis.Set(ctx, s.themeKey(sessionID), theme, sessionTTL)
}

func (s *RedisStore) LoadTheme(ctx context.Context, sessionID string) (string, error) {
	return s.redis.Get(ctx, s.themeKey(sessionID))
}
