// Package yahoo is the primary market-data vendor client: charts, quotes,
// batch quotes, symbol search and symbol news.
//
// Every call is authenticated with the shared session and funnelled through
// the shared throttler. A 401/403 invalidates the session and the call is
// retried exactly once with fresh credentials.
package yahoo

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/guttosm/marketpulse/internal/httpx"
	"github.com/guttosm/marketpulse/internal/logger"
	"github.com/guttosm/marketpulse/internal/session"
	"github.com/guttosm/marketpulse/internal/throttle"
	"github.com/guttosm/marketpulse/internal/vendorerr"
)

const (
	DefaultBaseURL = "https://query1.finance.yahoo.com"

	ChartTimeout  = 10 * time.Second
	QuoteTimeout  = 8 * time.Second
	BatchTimeout  = 15 * time.Second
	SearchTimeout = 8 * time.Second

	// maxBody caps how much of a vendor response is read.
	maxBody = 8 << 20
)

// Sessions is the part of session.Manager the client depends on.
type Sessions interface {
	Get(ctx context.Context) (session.Credentials, error)
	Invalidate(token string)
}

// Config holds the vendor endpoint.
type Config struct {
	BaseURL string
}

// Client talks to the primary vendor. It is safe for concurrent use.
type Client struct {
	baseURL   string
	http      *httpx.Client
	sessions  Sessions
	throttler *throttle.Throttler
	log       zerolog.Logger
	now       func() time.Time
}

// New builds a Client. The throttler must be the one shared by every caller
// of this vendor.
func New(cfg Config, client *httpx.Client, sessions Sessions, t *throttle.Throttler) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	if client == nil {
		client = httpx.New("")
	}
	if t == nil {
		t = throttle.New(throttle.Config{Name: "yahoo"})
	}
	return &Client{
		baseURL:   base,
		http:      client,
		sessions:  sessions,
		throttler: t,
		log:       logger.With("yahoo"),
		now:       time.Now,
	}
}

// get performs one authenticated, throttled GET and returns the body of a 2xx
// response. Non-2xx statuses come back as *vendorerr.HTTPError.
func (c *Client) get(ctx context.Context, op, path string, params url.Values, timeout time.Duration) ([]byte, error) {
	body, token, err := c.attempt(ctx, op, path, params, timeout)
	if err == nil || !vendorerr.IsAuth(err) {
		return body, err
	}

	c.log.Warn().Str("op", op).Err(err).Msg("credentials rejected, refreshing session")
	c.sessions.Invalidate(token)
	body, _, err = c.attempt(ctx, op, path, params, timeout)
	return body, err
}

type attemptResult struct {
	body  []byte
	token string
}

func (c *Client) attempt(ctx context.Context, op, path string, params url.Values, timeout time.Duration) ([]byte, string, error) {
	res, err := throttle.Do(ctx, c.throttler, func(ctx context.Context) (attemptResult, error) {
		creds, err := c.sessions.Get(ctx)
		if err != nil {
			return attemptResult{}, err
		}

		q := url.Values{}
		for k, vs := range params {
			q[k] = append([]string(nil), vs...)
		}
		q.Set("crumb", creds.Token)
		endpoint := c.baseURL + path

		h := http.Header{}
		h.Set("Cookie", creds.Cookie)
		h.Set("Accept", "application/json")

		resp, err := c.http.Get(ctx, op, endpoint+"?"+q.Encode(), timeout, h, maxBody)
		if err != nil {
			return attemptResult{token: creds.Token}, err
		}
		// the token is left out of the URL carried by the error
		if herr := resp.Err(endpoint); herr != nil {
			return attemptResult{token: creds.Token}, herr
		}
		return attemptResult{body: resp.Body, token: creds.Token}, nil
	})
	return res.body, res.token, err
}
