package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/marketpulse/internal/domain/dto"
)

const (
	DefaultRateLimit  = 120
	DefaultRateWindow = time.Minute
)

// client is one caller's fixed-window counter.
type client struct {
	windowStart time.Time
	count       int
}

type rateLimiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	clients map[string]*client
}

func newRateLimiter(limit int, window time.Duration) *rateLimiter {
	if limit <= 0 {
		limit = DefaultRateLimit
	}
	if window <= 0 {
		window = DefaultRateWindow
	}
	return &rateLimiter{limit: limit, window: window, now: time.Now, clients: make(map[string]*client)}
}

// allow counts one request for key and reports whether it is within budget.
func (l *rateLimiter) allow(key string) bool {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	cl, ok := l.clients[key]
	if !ok || now.Sub(cl.windowStart) >= l.window {
		if len(l.clients) > 10_000 {
			l.prune(now)
		}
		cl = &client{windowStart: now}
		l.clients[key] = cl
	}
	cl.count++
	return cl.count <= l.limit
}

func (l *rateLimiter) prune(now time.Time) {
	for k, cl := range l.clients {
		if now.Sub(cl.windowStart) >= l.window {
			delete(l.clients, k)
		}
	}
}

// RateLimiter allows up to limit requests per window for each client IP and
// answers 429 beyond that. It protects the shared vendor budget from a single
// noisy caller; it is per-process, not cluster-wide.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	l := newRateLimiter(limit, window)
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP()) {
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse("rate limit exceeded", nil))
			return
		}
		c.Next()
	}
}
