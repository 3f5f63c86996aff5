package yahoo

import (
	"context"
	"strings"

	"github.com/guttosm/marketpulse/internal/domain/models"
	"github.com/guttosm/marketpulse/internal/market"
)

// FetchQuote derives a quote, extended-hours fields included, from a single
// one-day minute chart. A payload without metadata is a *vendorerr.DataError.
func (c *Client) FetchQuote(ctx context.Context, symbol string) (models.Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	meta, candles, err := c.rawChart(ctx, "fetch quote", symbol, "1d", "1m")
	if err != nil {
		return models.Quote{}, err
	}
	return market.BuildQuote(meta, candles, c.now()), nil
}
