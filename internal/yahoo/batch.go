package yahoo

import (
	"context"
	"net/url"
	"strings"

	"github.com/guttosm/marketpulse/internal/domain/models"
)

// MaxSymbolsPerRequest is the vendor's hard limit on symbols per quote request.
const MaxSymbolsPerRequest = 150

// FetchBatchQuotes quotes many symbols in chunks of MaxSymbolsPerRequest.
//
// Chunks run sequentially. A failing chunk is logged and skipped, so the map
// holds only symbols some successful chunk returned. The error is non-nil only
// when ctx ends between chunks.
func (c *Client) FetchBatchQuotes(ctx context.Context, symbols []string) (map[string]models.Quote, error) {
	symbols = CleanSymbols(symbols)
	out := make(map[string]models.Quote, len(symbols))

	chunks := Chunk(symbols, MaxSymbolsPerRequest)
	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		records, err := c.batchChunk(ctx, chunk)
		if err != nil {
			c.log.Error().
				Err(err).
				Int("chunk", i+1).
				Int("chunks", len(chunks)).
				Int("symbols", len(chunk)).
				Msg("batch quote chunk failed, skipping")
			continue
		}
		for _, r := range records {
			q := r.quote
			if ext := extendedFromState(r.state, r.pre, r.post); ext != nil {
				q.SetExtended(*ext)
			}
			out[q.Symbol] = q
		}
	}
	return out, nil
}

func (c *Client) batchChunk(ctx context.Context, symbols []string) ([]batchRecord, error) {
	params := url.Values{}
	params.Set("symbols", strings.Join(symbols, ","))
	body, err := c.get(ctx, "fetch batch quotes", "/v7/finance/quote", params, BatchTimeout)
	if err != nil {
		return nil, err
	}
	return parseBatch("fetch batch quotes", body)
}

// extendedFromState classifies extended-hours data from the vendor's market
// state rather than from the clock.
func extendedFromState(state models.MarketState, pre, post *models.Extended) *models.Extended {
	switch state {
	case models.MarketPost, models.MarketPostPost, models.MarketClosed:
		return post
	case models.MarketPre:
		return pre
	default:
		return nil
	}
}

// Chunk splits items into consecutive slices of at most size elements.
func Chunk[T any](items []T, size int) [][]T {
	if size <= 0 || len(items) == 0 {
		return nil
	}
	out := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		out = append(out, items[start:end])
	}
	return out
}
