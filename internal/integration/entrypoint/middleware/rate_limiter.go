// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	domainerror "github.com/avecbanker/backend/internal/domain/error"
	"github.com/avecbanker/backend/internal/integration/entrypoint/dto"
)

// HitCounter counts requests per key within the current window.
type HitCounter interface {
	Hit(ctx context.Context, key string) (int64, error)
}

// RateLimiter limits requests per client IP. Counts live in the HitCounter so every
// API instance shares them.
type RateLimiter struct {
	counter     HitCounter
	maxAttempts int64
	enabled     bool
}

// NewRateLimiter creates a rate limiter allowing maxAttempts per counter window.
// A disabled limiter lets every request through.
func NewRateLimiter(counter HitCounter, maxAttempts int, enabled bool) *RateLimiter {
	return &RateLimiter{
		counter:     counter,
		maxAttempts: int64(maxAttempts),
		enabled:     enabled,
	}
}

// Middleware returns a Gin middleware handler that enforces rate limiting.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.enabled {
			c.Next()
			return
		}

		clientIP := c.ClientIP()
		if clientIP == "" {
			clientIP = c.Request.RemoteAddr
		}

		hits, err := rl.counter.Hit(c.Request.Context(), c.FullPath()+"|"+clientIP)
		if err != nil {
			// Fail open: a broken counter must not lock users out.
			slog.Warn("Rate limiter unavailable", "error", err)
			c.Next()
			return
		}

		if hits > rl.maxAttempts {
			c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// MemoryCounter is an in-process HitCounter for single instance deployments and tests.
type MemoryCounter struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	window  time.Duration
}

type memoryEntry struct {
	hits      int64
	resetTime time.Time
}

// NewMemoryCounter creates a MemoryCounter with the given window.
func NewMemoryCounter(window time.Duration) *MemoryCounter {
	return &MemoryCounter{
		entries: make(map[string]*memoryEntry),
		window:  window,
	}
}

// Hit records a hit for key.
func (m *MemoryCounter) Hit(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	entry, exists := m.entries[key]
	if !exists || now.After(entry.resetTime) {
		m.entries[key] = &memoryEntry{hits: 1, resetTime: now.Add(m.window)}
		return 1, nil
	}
	entry.hits++
	return entry.hits, nil
}

// Reset clears all counts.
func (m *MemoryCounter) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]*memoryEntry)
}
