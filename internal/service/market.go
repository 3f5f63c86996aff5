package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/guttosm/marketpulse/internal/crypto"
	"github.com/guttosm/marketpulse/internal/domain/models"
	"github.com/guttosm/marketpulse/internal/yahoo"
)

const (
	DefaultRange       = "1d"
	DefaultInterval    = "5m"
	DefaultGranularity = 300
	// MaxBatchSymbols caps one batch request; the vendor client chunks below it.
	MaxBatchSymbols = 1000
	MaxNewsCount    = 50
	maxQueryLen     = 64
)

var symbolPattern = regexp.MustCompile(`^[A-Za-z0-9^=.\-]{1,24}$`)

// ValidationError reports a caller mistake, as opposed to an upstream failure.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string { return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason) }

// PrimaryVendor is the chart/quote/search vendor.
type PrimaryVendor interface {
	FetchChart(ctx context.Context, symbol, rng, interval string, includePrePost bool) (*models.Chart, error)
	FetchQuote(ctx context.Context, symbol string) (models.Quote, error)
	FetchBatchQuotes(ctx context.Context, symbols []string) (map[string]models.Quote, error)
	Search(ctx context.Context, query string) ([]models.SearchResult, error)
	FetchNews(ctx context.Context, symbol string, count int) ([]models.Article, error)
}

// CryptoVendor serves long candle history for crypto pairs.
type CryptoVendor interface {
	FetchCryptoChart(ctx context.Context, symbol string, granularity int) ([]models.Candle, error)
}

// NewsSource aggregates general market headlines.
type NewsSource interface {
	FetchMarketNews(ctx context.Context) ([]models.Article, error)
}

// MarketService is what the HTTP layer calls. It validates input and
// delegates to the vendor clients.
type MarketService interface {
	GetChart(ctx context.Context, symbol, rng, interval string, includePrePost bool) (*models.Chart, error)
	GetQuote(ctx context.Context, symbol string) (*models.Quote, error)
	GetQuotes(ctx context.Context, symbols []string) (map[string]models.Quote, error)
	GetCryptoChart(ctx context.Context, symbol string, granularity int) ([]models.Candle, error)
	GetMarketNews(ctx context.Context) ([]models.Article, error)
	GetSymbolNews(ctx context.Context, symbol string, count int) ([]models.Article, error)
	Search(ctx context.Context, query string) ([]models.SearchResult, error)
}

type marketService struct {
	primary PrimaryVendor
	crypto  CryptoVendor
	news    NewsSource
}

// NewMarketService creates the MarketService used by the HTTP handlers.
//
// Parameters:
//   - primary (PrimaryVendor): charts, quotes, batch quotes, search and symbol news.
//   - cryptoVendor (CryptoVendor): long crypto candle history.
//   - news (NewsSource): aggregated market headlines.
//
// Returns:
//   - MarketService: validates input, applies defaults and delegates.
func NewMarketService(primary PrimaryVendor, cryptoVendor CryptoVendor, news NewsSource) MarketService {
	return &marketService{primary: primary, crypto: cryptoVendor, news: news}
}

func normalizeSymbol(symbol string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if !symbolPattern.MatchString(s) {
		return "", &ValidationError{Field: "symbol", Reason: fmt.Sprintf("%q is not a ticker", symbol)}
	}
	return s, nil
}

// GetChart validates range and interval (defaults 1d/5m) and fetches the
// normalized series.
func (s *marketService) GetChart(ctx context.Context, symbol, rng, interval string, includePrePost bool) (*models.Chart, error) {
	sym, err := normalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	if rng == "" {
		rng = DefaultRange
	}
	if interval == "" {
		interval = DefaultInterval
	}
	if !yahoo.ValidRange(rng) {
		return nil, &ValidationError{Field: "range", Reason: fmt.Sprintf("unsupported range %q", rng)}
	}
	if !yahoo.ValidInterval(interval) {
		return nil, &ValidationError{Field: "interval", Reason: fmt.Sprintf("unsupported interval %q", interval)}
	}
	return s.primary.FetchChart(ctx, sym, strings.ToLower(rng), strings.ToLower(interval), includePrePost)
}

// GetQuote fetches a single quote for a normalized symbol.
func (s *marketService) GetQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	sym, err := normalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	q, err := s.primary.FetchQuote(ctx, sym)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// GetQuotes cleans and bounds the symbol list, then fetches it in chunks.
// Symbols the vendor does not return are absent from the map.
func (s *marketService) GetQuotes(ctx context.Context, symbols []string) (map[string]models.Quote, error) {
	cleaned := yahoo.CleanSymbols(symbols)
	if len(cleaned) == 0 {
		return nil, &ValidationError{Field: "symbols", Reason: "at least one symbol is required"}
	}
	if len(cleaned) > MaxBatchSymbols {
		return nil, &ValidationError{Field: "symbols", Reason: fmt.Sprintf("at most %d symbols per request", MaxBatchSymbols)}
	}
	for _, sym := range cleaned {
		if _, err := normalizeSymbol(sym); err != nil {
			return nil, err
		}
	}
	return s.primary.FetchBatchQuotes(ctx, cleaned)
}

// GetCryptoChart checks the granularity (default 300s) before paging the
// exchange.
func (s *marketService) GetCryptoChart(ctx context.Context, symbol string, granularity int) ([]models.Candle, error) {
	sym, err := normalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	if granularity == 0 {
		granularity = DefaultGranularity
	}
	if !crypto.SupportedGranularity(granularity) {
		return nil, &ValidationError{Field: "granularity", Reason: fmt.Sprintf("unsupported granularity %d", granularity)}
	}
	return s.crypto.FetchCryptoChart(ctx, sym, granularity)
}

func (s *marketService) GetMarketNews(ctx context.Context) ([]models.Article, error) {
	return s.news.FetchMarketNews(ctx)
}

// GetSymbolNews fetches vendor news for symbol. A zero count uses the
// vendor client default.
func (s *marketService) GetSymbolNews(ctx context.Context, symbol string, count int) ([]models.Article, error) {
	sym, err := normalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	if count < 0 || count > MaxNewsCount {
		return nil, &ValidationError{Field: "count", Reason: fmt.Sprintf("must be between 0 (default) and %d", MaxNewsCount)}
	}
	return s.primary.FetchNews(ctx, sym, count)
}

// Search rejects blank and overlong queries.
func (s *marketService) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, &ValidationError{Field: "q", Reason: "query is required"}
	}
	if len(q) > maxQueryLen {
		return nil, &ValidationError{Field: "q", Reason: fmt.Sprintf("longer than %d characters", maxQueryLen)}
	}
	return s.primary.Search(ctx, q)
}
