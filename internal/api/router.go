package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/marketpulse/internal/cache"
	"github.com/guttosm/marketpulse/internal/middleware"
)

// DefaultRequestTimeout bounds a whole request, batch quotes included.
const DefaultRequestTimeout = 30 * time.Second

// RouterOptions tunes the middleware stack. Zero values use defaults; a nil
// Cache disables response caching.
type RouterOptions struct {
	Cache          cache.Store
	CacheTTL       time.Duration
	RateLimit      int
	RateWindow     time.Duration
	RequestTimeout time.Duration
}

// NewRouter builds the gin engine with the middleware stack, Swagger UI and
// the /api/v1 routes. Health endpoints are mounted by the caller through
// HealthHandler.Register.
func NewRouter(handler *Handler, opts RouterOptions) *gin.Engine {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = DefaultRequestTimeout
	}
	router := gin.New()

	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
	)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")
	v1.Use(
		middleware.RateLimiter(opts.RateLimit, opts.RateWindow),
		requestTimeout(opts.RequestTimeout),
		middleware.ResponseCache(opts.Cache, opts.CacheTTL),
	)
	{
		v1.GET("/chart/:symbol", handler.GetChart)
		v1.GET("/quote/:symbol", handler.GetQuote)
		v1.GET("/quotes", handler.GetQuotes)
		v1.GET("/crypto/:symbol/chart", handler.GetCryptoChart)
		v1.GET("/news", handler.GetMarketNews)
		v1.GET("/news/:symbol", handler.GetSymbolNews)
		v1.GET("/search", handler.Search)
	}

	return router
}

func requestTimeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
