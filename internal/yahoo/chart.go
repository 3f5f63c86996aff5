package yahoo

import (
	"context"
	"net/url"
	"strings"

	"github.com/guttosm/marketpulse/internal/domain/models"
	"github.com/guttosm/marketpulse/internal/market"
)

// FetchChart returns the normalized series for symbol.
//
// Extended-hours bars are always requested from the vendor and filtered
// locally: the vendor's own pre/post flag is not reliable.
func (c *Client) FetchChart(ctx context.Context, symbol, rng, interval string, includePrePost bool) (*models.Chart, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	meta, candles, err := c.rawChart(ctx, "fetch chart", symbol, rng, interval)
	if err != nil {
		return nil, err
	}

	candles = market.Normalize(symbol, interval, includePrePost, candles)
	c.log.Debug().
		Str("symbol", symbol).
		Str("range", rng).
		Str("interval", interval).
		Int("candles", len(candles)).
		Msg("chart fetched")
	return &models.Chart{Meta: meta, Candles: candles}, nil
}

func (c *Client) rawChart(ctx context.Context, op, symbol, rng, interval string) (models.ChartMeta, []models.Candle, error) {
	params := url.Values{}
	params.Set("range", rng)
	params.Set("interval", interval)
	params.Set("includePrePost", "true")

	body, err := c.get(ctx, op, "/v8/finance/chart/"+url.PathEscape(symbol), params, ChartTimeout)
	if err != nil {
		return models.ChartMeta{}, nil, err
	}
	meta, candles, err := parseChart(op, body)
	if err != nil {
		return models.ChartMeta{}, nil, err
	}
	if meta.Symbol == "" {
		meta.Symbol = symbol
	}
	return meta, candles, nil
}
