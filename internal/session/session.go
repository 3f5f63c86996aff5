// Package session owns the vendor authentication pair (session cookie plus
// short-lived token) shared by every caller in the process.
//
// Lifecycle:
//   - Get returns the cached pair while it is valid, otherwise acquires a new
//     one. Concurrent callers that find the session invalid share a single
//     acquisition.
//   - Invalidate expires the pair after the vendor rejected it (401/403).
//   - IsValid reports whether a Get would be served from cache.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/guttosm/marketpulse/internal/httpx"
	"github.com/guttosm/marketpulse/internal/logger"
	"github.com/guttosm/marketpulse/internal/vendorerr"
)

const (
	// DefaultTTL is how long an acquired pair is trusted.
	DefaultTTL = 30 * time.Minute
	// DefaultTimeout bounds each of the two acquisition requests.
	DefaultTimeout = 5 * time.Second

	flightKey = "session"
)

var (
	errNoCookie     = errors.New("bootstrap response set no cookies")
	errBadToken     = errors.New("token response looks malformed")
	errTokenRequest = errors.New("token endpoint returned a non-success status")
)

// Config holds the vendor endpoints used to acquire a session.
type Config struct {
	BootstrapURL string
	TokenURL     string
	TTL          time.Duration
	Timeout      time.Duration
}

// Credentials is the pair attached to authenticated vendor requests.
type Credentials struct {
	Token  string
	Cookie string
}

// Manager caches Credentials process-wide. It is safe for concurrent use.
type Manager struct {
	cfg  Config
	http *httpx.Client
	now  func() time.Time
	log  zerolog.Logger

	group        singleflight.Group
	acquisitions atomic.Int64

	mu         sync.RWMutex
	creds      Credentials
	expiresAt  time.Time
	lastExpiry time.Time
}

// NewManager builds a Manager. client may be shared with the vendor client.
func NewManager(cfg Config, client *httpx.Client) *Manager {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if client == nil {
		client = httpx.New("")
	}
	return &Manager{
		cfg:  cfg,
		http: client,
		now:  time.Now,
		log:  logger.With("session"),
	}
}

// Get returns valid credentials, acquiring a fresh pair when the cached one
// is missing or expired. Failures are *vendorerr.SessionError.
func (m *Manager) Get(ctx context.Context) (Credentials, error) {
	if c, ok := m.cached(); ok {
		return c, nil
	}

	// The acquisition outlives any single caller: others may be waiting on it.
	detached := context.WithoutCancel(ctx)
	v, err, shared := m.group.Do(flightKey, func() (any, error) {
		if c, ok := m.cached(); ok {
			return c, nil
		}
		return m.acquire(detached)
	})
	if err != nil {
		return Credentials{}, err
	}
	if shared {
		m.log.Debug().Msg("joined in-flight session acquisition")
	}
	return v.(Credentials), nil
}

// Invalidate expires the cached pair if it still carries token. A caller
// holding a stale token therefore cannot expire a pair someone else already
// refreshed.
func (m *Manager) Invalidate(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.creds.Token == "" || m.creds.Token != token {
		return
	}
	m.expiresAt = m.now().Add(-time.Second)
	m.log.Info().Msg("session invalidated")
}

// IsValid reports whether the cached pair can be served without a network call.
func (m *Manager) IsValid() bool {
	_, ok := m.cached()
	return ok
}

// ExpiresAt returns the expiry of the cached pair (zero if none).
func (m *Manager) ExpiresAt() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.expiresAt
}

// Acquisitions returns how many bootstrap+token round trips have completed.
func (m *Manager) Acquisitions() int64 { return m.acquisitions.Load() }

func (m *Manager) cached() (Credentials, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.creds.Token == "" || m.creds.Cookie == "" {
		return Credentials{}, false
	}
	if !m.now().Before(m.expiresAt) {
		return Credentials{}, false
	}
	return m.creds, true
}

func (m *Manager) acquire(ctx context.Context) (Credentials, error) {
	start := m.now()

	cookie, err := m.bootstrap(ctx)
	if err != nil {
		m.log.Warn().Err(err).Msg("session bootstrap failed")
		return Credentials{}, &vendorerr.SessionError{Step: "cookie", Err: err}
	}
	token, err := m.token(ctx, cookie)
	if err != nil {
		m.log.Warn().Err(err).Msg("session token request failed")
		return Credentials{}, &vendorerr.SessionError{Step: "token", Err: err}
	}

	creds := Credentials{Token: token, Cookie: cookie}
	m.store(creds)
	m.acquisitions.Add(1)
	m.log.Info().Dur("elapsed", m.now().Sub(start)).Time("expires_at", m.ExpiresAt()).Msg("session acquired")
	return creds, nil
}

func (m *Manager) store(creds Credentials) {
	m.mu.Lock()
	defer m.mu.Unlock()

	exp := m.now().Add(m.cfg.TTL)
	if !exp.After(m.lastExpiry) {
		exp = m.lastExpiry.Add(time.Nanosecond)
	}
	m.creds = creds
	m.expiresAt = exp
	m.lastExpiry = exp
}

func (m *Manager) bootstrap(ctx context.Context) (string, error) {
	resp, err := m.http.Get(ctx, "session bootstrap", m.cfg.BootstrapURL, m.cfg.Timeout, nil, 64<<10)
	if err != nil {
		return "", err
	}
	// The bootstrap endpoint answers with an error page more often than not;
	// only the cookies matter.
	cookie := JoinCookies(resp.Header)
	if cookie == "" {
		return "", fmt.Errorf("%w (status %d)", errNoCookie, resp.Status)
	}
	return cookie, nil
}

func (m *Manager) token(ctx context.Context, cookie string) (string, error) {
	h := http.Header{}
	h.Set("Cookie", cookie)
	resp, err := m.http.Get(ctx, "session token", m.cfg.TokenURL, m.cfg.Timeout, h, 4<<10)
	if err != nil {
		return "", err
	}
	if !resp.OK() {
		return "", fmt.Errorf("%w: %d", errTokenRequest, resp.Status)
	}
	token := strings.TrimSpace(string(resp.Body))
	if !ValidToken(token) {
		return "", fmt.Errorf("%w: %q", errBadToken, truncate(token, 64))
	}
	return token, nil
}

// JoinCookies collapses every Set-Cookie header into a single Cookie header
// value of name=value pairs separated by "; ".
func JoinCookies(h http.Header) string {
	cookies := (&http.Response{Header: h}).Cookies()
	parts := make([]string, 0, len(cookies))
	for _, c := range cookies {
		if c.Name == "" {
			continue
		}
		parts = append(parts, c.Name+"="+c.Value)
	}
	return strings.Join(parts, "; ")
}

// ValidToken rejects empty tokens and bodies that are error pages or JSON
// error envelopes rather than a bare token.
func ValidToken(token string) bool {
	if token == "" {
		return false
	}
	if strings.ContainsAny(token, "<{") {
		return false
	}
	return !strings.Contains(strings.ToLower(token), "error")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
