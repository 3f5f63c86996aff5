package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// It is composed of smaller structs that represent different concerns of the system:
// the HTTP server, the primary quote vendor, the crypto candle vendor, the news
// feeds and the response cache.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	VENDOR_BASE_URL=https://query1.finance.yahoo.com
//	SESSION_TTL=30m
//	THROTTLE_MAX_CONCURRENT=5
//	THROTTLE_MIN_DELAY=150ms
//	NEWS_FEEDS=CNBC|generic|https://www.cnbc.com/id/100003114/device/rss/rss.html
//	CACHE_BACKEND=redis
//	REDIS_ADDR=localhost:6379
type Config struct {
	Server ServerConfig // HTTP server configuration
	Vendor VendorConfig // Primary vendor (chart, quote, search)
	Crypto CryptoConfig // Crypto candle vendor
	News   NewsConfig   // RSS feeds
	Cache  CacheConfig  // Response cache
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           string        // The TCP port the HTTP server will listen on (e.g., "8080")
	RateLimit      int           // Requests per client per RateWindow on /api/v1
	RateWindow     time.Duration // Fixed window used by the rate limiter
	RequestTimeout time.Duration // Upper bound for a whole /api/v1 request
}

// VendorConfig defines how the primary vendor is reached.
//
// Fields:
//   - BaseURL: root of the chart/quote/search API.
//   - SessionURL: page whose Set-Cookie headers seed the session.
//   - TokenURL: endpoint that exchanges the cookie for a token.
//   - UserAgent: browser-like agent sent on every outbound request.
//   - SessionTTL: how long an acquired session is trusted.
//   - MaxConcurrent / MinDelay: throttler settings shared by every vendor call.
//   - WarmupCron: optional cron spec that refreshes the session ahead of traffic.
type VendorConfig struct {
	BaseURL       string
	SessionURL    string
	TokenURL      string
	UserAgent     string
	SessionTTL    time.Duration
	MaxConcurrent int
	MinDelay      time.Duration
	WarmupCron    string
}

// CryptoConfig configures the crypto candle vendor and its own throttler.
type CryptoConfig struct {
	BaseURL       string
	Lookback      time.Duration
	MaxConcurrent int
	MinDelay      time.Duration
}

// NewsConfig lists the RSS feeds as "name|provider|url" entries separated by
// ";". An empty Feeds uses the built-in list.
type NewsConfig struct {
	Feeds string
	Limit int
}

// CacheConfig selects the response cache backend ("memory", "redis" or "none").
type CacheConfig struct {
	Backend       string
	TTL           time.Duration
	MaxItems      int
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
// All services should import this package and read from AppConfig instead of
// reloading environment variables directly.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If required variables are missing, validateConfig() will terminate the app
//     with a descriptive log message.
func LoadConfig() {
	// Default values
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("RATE_LIMIT", 120)
	viper.SetDefault("RATE_WINDOW", "1m")
	viper.SetDefault("REQUEST_TIMEOUT", "30s")

	viper.SetDefault("VENDOR_BASE_URL", "https://query1.finance.yahoo.com")
	viper.SetDefault("VENDOR_SESSION_URL", "https://fc.yahoo.com")
	viper.SetDefault("VENDOR_TOKEN_URL", "https://query1.finance.yahoo.com/v1/test/getcrumb")
	viper.SetDefault("VENDOR_USER_AGENT", "")
	viper.SetDefault("SESSION_TTL", "30m")
	viper.SetDefault("THROTTLE_MAX_CONCURRENT", 5)
	viper.SetDefault("THROTTLE_MIN_DELAY", "150ms")
	viper.SetDefault("WARMUP_CRON", "")

	viper.SetDefault("CRYPTO_BASE_URL", "https://api.exchange.coinbase.com")
	viper.SetDefault("CRYPTO_LOOKBACK", "168h")
	viper.SetDefault("CRYPTO_MAX_CONCURRENT", 3)
	viper.SetDefault("CRYPTO_MIN_DELAY", "100ms")

	viper.SetDefault("NEWS_FEEDS", "")
	viper.SetDefault("NEWS_LIMIT", 30)

	viper.SetDefault("CACHE_BACKEND", "memory")
	viper.SetDefault("CACHE_TTL", "15s")
	viper.SetDefault("CACHE_MAX_ITEMS", 1000)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	// Read environment variables automatically
	viper.AutomaticEnv()

	// Populate global config instance
	AppConfig = Config{
		Server: ServerConfig{
			Port:           viper.GetString("SERVER_PORT"),
			RateLimit:      viper.GetInt("RATE_LIMIT"),
			RateWindow:     viper.GetDuration("RATE_WINDOW"),
			RequestTimeout: viper.GetDuration("REQUEST_TIMEOUT"),
		},
		Vendor: VendorConfig{
			BaseURL:       viper.GetString("VENDOR_BASE_URL"),
			SessionURL:    viper.GetString("VENDOR_SESSION_URL"),
			TokenURL:      viper.GetString("VENDOR_TOKEN_URL"),
			UserAgent:     viper.GetString("VENDOR_USER_AGENT"),
			SessionTTL:    viper.GetDuration("SESSION_TTL"),
			MaxConcurrent: viper.GetInt("THROTTLE_MAX_CONCURRENT"),
			MinDelay:      viper.GetDuration("THROTTLE_MIN_DELAY"),
			WarmupCron:    viper.GetString("WARMUP_CRON"),
		},
		Crypto: CryptoConfig{
			BaseURL:       viper.GetString("CRYPTO_BASE_URL"),
			Lookback:      viper.GetDuration("CRYPTO_LOOKBACK"),
			MaxConcurrent: viper.GetInt("CRYPTO_MAX_CONCURRENT"),
			MinDelay:      viper.GetDuration("CRYPTO_MIN_DELAY"),
		},
		News: NewsConfig{
			Feeds: viper.GetString("NEWS_FEEDS"),
			Limit: viper.GetInt("NEWS_LIMIT"),
		},
		Cache: CacheConfig{
			Backend:       viper.GetString("CACHE_BACKEND"),
			TTL:           viper.GetDuration("CACHE_TTL"),
			MaxItems:      viper.GetInt("CACHE_MAX_ITEMS"),
			RedisAddr:     viper.GetString("REDIS_ADDR"),
			RedisPassword: viper.GetString("REDIS_PASSWORD"),
			RedisDB:       viper.GetInt("REDIS_DB"),
		},
	}

	// Validate critical fields
	validateConfig()
}

// validateConfig ensures required variables are present and terminates
// the application if they are missing.
func validateConfig() {
	var missing []string

	if AppConfig.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if AppConfig.Vendor.BaseURL == "" {
		missing = append(missing, "VENDOR_BASE_URL")
	}
	if AppConfig.Vendor.SessionURL == "" {
		missing = append(missing, "VENDOR_SESSION_URL")
	}
	if AppConfig.Vendor.TokenURL == "" {
		missing = append(missing, "VENDOR_TOKEN_URL")
	}
	if AppConfig.Crypto.BaseURL == "" {
		missing = append(missing, "CRYPTO_BASE_URL")
	}
	if AppConfig.Cache.Backend == "redis" && AppConfig.Cache.RedisAddr == "" {
		missing = append(missing, "REDIS_ADDR")
	}

	if len(missing) > 0 {
		log.Fatalf("❌ Missing required environment variables: %v\n", missing)
	}
}
