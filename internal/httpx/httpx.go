package httpx

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/guttosm/marketpulse/internal/vendorerr"
)

// DefaultUserAgent is sent when a request carries no User-Agent of its own.
// The primary vendor rejects obvious non-browser agents.
const DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// Client wraps http.Client with a pooled transport and default headers.
//
// Deadlines are not set on the client itself: every call carries its own
// absolute timeout through the request context (see Get).
type Client struct {
	HTTP      *http.Client
	UserAgent string
	Headers   map[string]string
}

// New builds a Client with a transport sized for a handful of upstream hosts.
func New(userAgent string) *Client {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: 3 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   20,
		ForceAttemptHTTP2:     true,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   3 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return &Client{
		HTTP:      &http.Client{Transport: transport},
		UserAgent: userAgent,
		Headers:   map[string]string{"Accept": "*/*"},
	}
}

// Do sends req with the client's default headers applied.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if c.UserAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	for k, v := range c.Headers {
		if req.Header.Get(k) == "" {
			req.Header.Set(k, v)
		}
	}
	return c.HTTP.Do(req)
}

// Response is a fully read upstream response.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Get issues a GET with an absolute timeout and reads at most limit bytes of
// the body (limit <= 0 means unbounded). Transport failures are classified via
// vendorerr.FromTransport; status codes are returned as-is for the caller to judge.
func (c *Client) Get(ctx context.Context, op, url string, timeout time.Duration, header http.Header, limit int64) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", op, err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.Do(req)
	if err != nil {
		return nil, vendorerr.FromTransport(op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	var r io.Reader = resp.Body
	if limit > 0 {
		r = io.LimitReader(resp.Body, limit)
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, vendorerr.FromTransport(op, err)
	}
	return &Response{Status: resp.StatusCode, Header: resp.Header, Body: body}, nil
}

// OK reports whether the status is 2xx.
func (r *Response) OK() bool { return r.Status >= 200 && r.Status < 300 }

// Err returns a *vendorerr.HTTPError for a non-2xx response, nil otherwise.
// The body is truncated so a large HTML error page does not flood the logs.
func (r *Response) Err(url string) error {
	if r.OK() {
		return nil
	}
	body := string(r.Body)
	if len(body) > 256 {
		body = body[:256]
	}
	return &vendorerr.HTTPError{Status: r.Status, URL: url, Body: body}
}
