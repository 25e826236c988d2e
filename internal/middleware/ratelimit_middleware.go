package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vitrinelabs/storefront_api/internal/utils"
)

// RefreshRateLimiter throttles manual feed refreshes per client IP. The
// feed endpoint replaces the whole catalog, so a misbehaving client must
// not be able to hammer the upstream feed host.
type RefreshRateLimiter struct {
	mu       sync.Mutex
	window   time.Duration
	limit    int
	attempts map[string]*attemptInfo
}

type attemptInfo struct {
	count   int
	firstAt time.Time
}

func NewRefreshRateLimiter(limit int, window time.Duration) *RefreshRateLimiter {
	rl := &RefreshRateLimiter{
		window:   window,
		limit:    limit,
		attempts: make(map[string]*attemptInfo),
	}
	go rl.cleanup()
	return rl
}

// Allow checks whether ip may trigger another refresh inside the window.
func (r *RefreshRateLimiter) Allow(ip string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	info, exists := r.attempts[ip]
	if !exists {
		r.attempts[ip] = &attemptInfo{count: 1, firstAt: now}
		return true
	}

	// Reset if window expired
	if now.Sub(info.firstAt) > r.window {
		r.attempts[ip] = &attemptInfo{count: 1, firstAt: now}
		return true
	}

	if info.count >= r.limit {
		return false
	}
	info.count++
	return true
}

// Middleware rejects requests past the limit with 429.
func (r *RefreshRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !r.Allow(c.ClientIP()) {
			utils.Error(c, 429, "RATE_LIMITED", "Too many refresh requests, try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (r *RefreshRateLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	for range ticker.C {
		r.mu.Lock()
		now := time.Now()
		for ip, info := range r.attempts {
			if now.Sub(info.firstAt) > r.window {
				delete(r.attempts, ip)
			}
		}
		r.mu.Unlock()
	}
}
