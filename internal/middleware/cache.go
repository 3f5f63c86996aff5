package middleware

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/marketpulse/internal/cache"
	"github.com/guttosm/marketpulse/internal/logger"
)

// CacheHeader reports HIT or MISS on cacheable responses.
const CacheHeader = "X-Cache"

const cacheOpTimeout = 200 * time.Millisecond

type bodyRecorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyRecorder) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// CacheKey identifies a GET by path and query. url.Values.Encode sorts keys,
// so parameter order does not matter.
func CacheKey(r *http.Request) string {
	return r.Method + " " + r.URL.Path + "?" + r.URL.Query().Encode()
}

// ResponseCache serves repeated GETs from store for ttl. Only 200 responses
// are stored. Store failures are logged and the request proceeds uncached. A
// nil store disables the middleware.
func ResponseCache(store cache.Store, ttl time.Duration) gin.HandlerFunc {
	log := logger.With("cache")
	return func(c *gin.Context) {
		if store == nil || ttl <= 0 || c.Request.Method != http.MethodGet {
			c.Next()
			return
		}
		key := CacheKey(c.Request)

		ctx, cancel := context.WithTimeout(c.Request.Context(), cacheOpTimeout)
		body, hit, err := store.Get(ctx, key)
		cancel()
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("cache read failed")
		}
		if hit {
			c.Header(CacheHeader, "HIT")
			c.Data(http.StatusOK, "application/json; charset=utf-8", body)
			c.Abort()
			return
		}

		rec := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = rec
		c.Header(CacheHeader, "MISS")
		c.Next()

		if rec.Status() != http.StatusOK || rec.body.Len() == 0 {
			return
		}
		ctx, cancel = context.WithTimeout(context.WithoutCancel(c.Request.Context()), cacheOpTimeout)
		defer cancel()
		if err := store.Set(ctx, key, rec.body.Bytes(), ttl); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("cache write failed")
		}
	}
}
