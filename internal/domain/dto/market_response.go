package dto

import "github.com/guttosm/marketpulse/internal/domain/models"

// ChartResponse is returned by GET /api/v1/chart/{symbol}.
type ChartResponse struct {
	Symbol         string           `json:"symbol" example:"AAPL"`
	Range          string           `json:"range" example:"1d"`
	Interval       string           `json:"interval" example:"5m"`
	IncludePrePost bool             `json:"includePrePost"`
	Meta           models.ChartMeta `json:"meta"`
	Candles        []models.Candle  `json:"candles"`
}

// QuotesResponse is returned by GET /api/v1/quotes. Symbols the vendor did
// not return are simply absent from Quotes.
type QuotesResponse struct {
	Requested int                     `json:"requested" example:"3"`
	Returned  int                     `json:"returned" example:"2"`
	Quotes    map[string]models.Quote `json:"quotes"`
}

// CryptoChartResponse is returned by GET /api/v1/crypto/{symbol}/chart.
type CryptoChartResponse struct {
	Symbol      string          `json:"symbol" example:"BTC-USD"`
	Granularity int             `json:"granularity" example:"300"`
	Candles     []models.Candle `json:"candles"`
}

// NewsResponse is returned by the news endpoints.
type NewsResponse struct {
	Symbol   string           `json:"symbol,omitempty" example:"NVDA"`
	Count    int              `json:"count" example:"30"`
	Articles []models.Article `json:"articles"`
}

// SearchResponse is returned by GET /api/v1/search.
type SearchResponse struct {
	Query   string                `json:"query" example:"apple"`
	Results []models.SearchResult `json:"results"`
}
