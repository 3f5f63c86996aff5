// Package crypto fetches candle history for crypto pairs from the secondary
// exchange vendor, which serves at most PageSize rows per request.
package crypto

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/guttosm/marketpulse/internal/domain/models"
	"github.com/guttosm/marketpulse/internal/httpx"
	"github.com/guttosm/marketpulse/internal/logger"
	"github.com/guttosm/marketpulse/internal/market"
	"github.com/guttosm/marketpulse/internal/throttle"
	"github.com/guttosm/marketpulse/internal/vendorerr"
)

const (
	DefaultBaseURL  = "https://api.exchange.coinbase.com"
	DefaultLookback = 7 * 24 * time.Hour
	PageSize        = 300
	PageTimeout     = 10 * time.Second

	maxBody = 2 << 20
)

// ErrUnsupportedGranularity is returned for a bar size the vendor does not serve.
var ErrUnsupportedGranularity = errors.New("unsupported granularity")

var granularities = map[int]struct{}{60: {}, 300: {}, 900: {}, 3600: {}, 21600: {}, 86400: {}}

// SupportedGranularity reports whether seconds is a bar size the vendor serves.
func SupportedGranularity(seconds int) bool {
	_, ok := granularities[seconds]
	return ok
}

// Config points the client at the exchange. Zero values use DefaultBaseURL
// and DefaultLookback.
type Config struct {
	BaseURL  string
	Lookback time.Duration
}

// Client is safe for concurrent use. Its throttler is separate from the
// primary vendor's.
type Client struct {
	baseURL   string
	lookback  time.Duration
	http      *httpx.Client
	throttler *throttle.Throttler
	log       zerolog.Logger
	now       func() time.Time
}

// New creates a crypto candle client.
//
// Parameters:
//   - cfg (Config): base URL and lookback window.
//   - client (*httpx.Client): shared outbound client; a private one is built when nil.
//   - t (*throttle.Throttler): queue for this vendor only; a default one is built when nil.
//
// Returns:
//   - *Client: safe for concurrent use.
func New(cfg Config, client *httpx.Client, t *throttle.Throttler) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Lookback <= 0 {
		cfg.Lookback = DefaultLookback
	}
	if client == nil {
		client = httpx.New("")
	}
	if t == nil {
		t = throttle.New(throttle.Config{Name: "crypto"})
	}
	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		lookback:  cfg.Lookback,
		http:      client,
		throttler: t,
		log:       logger.With("crypto"),
		now:       time.Now,
	}
}

// FetchCryptoChart walks backwards from now in pages of PageSize bars until
// the lookback cutoff or an empty page. The result is ascending and unique by
// timestamp even though consecutive page windows share their boundary bar.
func (c *Client) FetchCryptoChart(ctx context.Context, symbol string, granularity int) ([]models.Candle, error) {
	if !SupportedGranularity(granularity) {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedGranularity, granularity)
	}
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	span := int64(granularity) * PageSize
	end := c.now().Unix()
	cutoff := end - int64(c.lookback/time.Second)

	var all []models.Candle
	pages := 0
	for end > cutoff {
		start := max(end-span, cutoff)
		rows, err := c.page(ctx, symbol, granularity, start, end)
		if err != nil {
			return nil, err
		}
		pages++
		if len(rows) == 0 {
			break
		}
		all = append(all, rows...)
		end = start
	}

	candles := market.SortDedupe(all)
	c.log.Debug().Str("symbol", symbol).Int("granularity", granularity).Int("pages", pages).Int("candles", len(candles)).Msg("crypto chart fetched")
	return candles, nil
}

func (c *Client) page(ctx context.Context, symbol string, granularity int, start, end int64) ([]models.Candle, error) {
	const op = "fetch crypto chart"
	params := url.Values{}
	params.Set("granularity", strconv.Itoa(granularity))
	params.Set("start", time.Unix(start, 0).UTC().Format(time.RFC3339))
	params.Set("end", time.Unix(end, 0).UTC().Format(time.RFC3339))
	endpoint := c.baseURL + "/products/" + url.PathEscape(symbol) + "/candles"

	return throttle.Do(ctx, c.throttler, func(ctx context.Context) ([]models.Candle, error) {
		h := http.Header{}
		h.Set("Accept", "application/json")
		resp, err := c.http.Get(ctx, op, endpoint+"?"+params.Encode(), PageTimeout, h, maxBody)
		if err != nil {
			return nil, err
		}
		if err := resp.Err(endpoint); err != nil {
			return nil, err
		}
		return parseRows(op, resp.Body)
	})
}

// parseRows remaps vendor tuples [time, low, high, open, close, volume].
func parseRows(op string, body []byte) ([]models.Candle, error) {
	if !gjson.ValidBytes(body) {
		return nil, &vendorerr.DataError{Op: op, Reason: "response is not valid JSON"}
	}
	root := gjson.ParseBytes(body)
	if !root.IsArray() {
		reason := root.Get("message").String()
		if reason == "" {
			reason = "expected an array of candles"
		}
		return nil, &vendorerr.DataError{Op: op, Reason: reason}
	}

	var out []models.Candle
	for _, row := range root.Array() {
		f := row.Array()
		if len(f) < 5 {
			continue
		}
		c := models.Candle{
			Time:  f[0].Int(),
			Low:   f[1].Float(),
			High:  f[2].Float(),
			Open:  f[3].Float(),
			Close: f[4].Float(),
		}
		if len(f) > 5 && f[5].Type != gjson.Null {
			v := f[5].Float()
			c.Volume = &v
		}
		out = append(out, c)
	}
	return out, nil
}
