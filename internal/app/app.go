package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/marketpulse/config"
	"github.com/guttosm/marketpulse/internal/api"
	"github.com/guttosm/marketpulse/internal/cache"
	"github.com/guttosm/marketpulse/internal/crypto"
	"github.com/guttosm/marketpulse/internal/httpx"
	"github.com/guttosm/marketpulse/internal/news"
	"github.com/guttosm/marketpulse/internal/service"
	"github.com/guttosm/marketpulse/internal/session"
	"github.com/guttosm/marketpulse/internal/throttle"
	"github.com/guttosm/marketpulse/internal/yahoo"
)

// refreshMargin is how close to expiry the warm-up job replaces a session.
const refreshMargin = 5 * time.Minute

// indirection for unit testing
var cacheOpener = cache.New

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Builds one shared HTTP client, session manager and throttler per vendor.
//   - Wires the primary, crypto and news clients into the market service.
//   - Opens the response cache (memory, Redis or none).
//   - Configures the Gin router and registers health and readiness probes.
//   - Schedules the session warm-up job when WARMUP_CRON is set.
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp() (*gin.Engine, func(), error) {
	// Load global configuration
	cfg := config.AppConfig

	httpClient := httpx.New(cfg.Vendor.UserAgent)

	sessions := session.NewManager(session.Config{
		BootstrapURL: cfg.Vendor.SessionURL,
		TokenURL:     cfg.Vendor.TokenURL,
		TTL:          cfg.Vendor.SessionTTL,
	}, httpClient)

	primaryQueue := throttle.New(throttle.Config{
		Name:          "primary",
		MaxConcurrent: cfg.Vendor.MaxConcurrent,
		MinDelay:      cfg.Vendor.MinDelay,
	})
	cryptoQueue := throttle.New(throttle.Config{
		Name:          "crypto",
		MaxConcurrent: cfg.Crypto.MaxConcurrent,
		MinDelay:      cfg.Crypto.MinDelay,
	})

	feeds, err := news.ParseFeeds(cfg.News.Feeds)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid NEWS_FEEDS: %w", err)
	}

	store, err := cacheOpener(cache.Options{
		Backend:       cfg.Cache.Backend,
		MaxItems:      cfg.Cache.MaxItems,
		RedisAddr:     cfg.Cache.RedisAddr,
		RedisPassword: cfg.Cache.RedisPassword,
		RedisDB:       cfg.Cache.RedisDB,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize cache: %w", err)
	}

	var warmer *Warmer
	if cfg.Vendor.WarmupCron != "" {
		warmer, err = NewWarmer(cfg.Vendor.WarmupCron, sessionRefresher(sessions, refreshMargin))
		if err != nil {
			closeStore(store)
			return nil, nil, err
		}
	}

	primary := yahoo.New(yahoo.Config{BaseURL: cfg.Vendor.BaseURL}, httpClient, sessions, primaryQueue)
	cryptoClient := crypto.New(crypto.Config{BaseURL: cfg.Crypto.BaseURL, Lookback: cfg.Crypto.Lookback}, httpClient, cryptoQueue)
	aggregator := news.NewAggregator(
		news.Config{Feeds: feeds, Limit: cfg.News.Limit},
		httpClient,
		news.TagParser{},
		news.NewThumbnailScraper(httpClient),
	)

	// Initialize service layer (validation and defaults)
	svc := service.NewMarketService(primary, cryptoClient, aggregator)

	// Initialize HTTP handler layer (business logic to HTTP mapping)
	handler := api.NewHandler(svc)

	// Setup Gin router with routes
	router := api.NewRouter(handler, api.RouterOptions{
		Cache:          store,
		CacheTTL:       cfg.Cache.TTL,
		RateLimit:      cfg.Server.RateLimit,
		RateWindow:     cfg.Server.RateWindow,
		RequestTimeout: cfg.Server.RequestTimeout,
	})

	// Register health and readiness probes
	checks := []api.Check{{Name: "session", Fn: sessionCheck(sessions)}}
	if store != nil {
		checks = append(checks, api.Check{Name: "cache", Fn: store.Ping})
	}
	info := func() map[string]any {
		return map[string]any{
			"session": gin.H{
				"valid":        sessions.IsValid(),
				"expires_at":   sessions.ExpiresAt(),
				"acquisitions": sessions.Acquisitions(),
			},
			"queues": gin.H{
				"primary": primaryQueue.Stats(),
				"crypto":  cryptoQueue.Stats(),
			},
		}
	}
	api.NewHealthHandler(info, checks...).Register(router)

	if warmer != nil {
		warmer.Start()
	}

	// Cleanup resources on shutdown
	cleanup := func() {
		if warmer != nil {
			warmer.Stop()
		}
		closeStore(store)
	}

	return router, cleanup, nil
}

// sessionCheck reports ready when a session is cached or can be acquired now.
func sessionCheck(m *session.Manager) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if m.IsValid() {
			return nil
		}
		_, err := m.Get(ctx)
		return err
	}
}

// sessionRefresher replaces the cached session once it is within margin of
// expiry, and acquires one when none is cached.
func sessionRefresher(m *session.Manager, margin time.Duration) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if m.IsValid() {
			if time.Until(m.ExpiresAt()) > margin {
				return nil
			}
			creds, err := m.Get(ctx)
			if err != nil {
				return err
			}
			m.Invalidate(creds.Token)
		}
		_, err := m.Get(ctx)
		return err
	}
}

func closeStore(store cache.Store) {
	if store == nil {
		return
	}
	_ = store.Close()
}
