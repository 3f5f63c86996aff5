package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/marketpulse/internal/vendorerr"
)

type fakeVendor struct {
	srv        *httptest.Server
	bootstraps atomic.Int64
	tokens     atomic.Int64
	tokenBody  atomic.Value
	tokenCode  atomic.Int64
	noCookies  atomic.Bool
	tokenDelay time.Duration
}

func newFakeVendor(t *testing.T) *fakeVendor {
	t.Helper()
	f := &fakeVendor{}
	f.tokenBody.Store("crumb123")
	f.tokenCode.Store(http.StatusOK)

	mux := http.NewServeMux()
	mux.HandleFunc("/bootstrap", func(w http.ResponseWriter, r *http.Request) {
		f.bootstraps.Add(1)
		if !f.noCookies.Load() {
			w.Header().Add("Set-Cookie", "A3=abc123; Path=/")
			w.Header().Add("Set-Cookie", "GUC=xyz; Path=/")
		}
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		f.tokens.Add(1)
		if f.tokenDelay > 0 {
			time.Sleep(f.tokenDelay)
		}
		if r.Header.Get("Cookie") != "A3=abc123; GUC=xyz" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(int(f.tokenCode.Load()))
		_, _ = w.Write([]byte(f.tokenBody.Load().(string)))
	})
	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeVendor) manager() *Manager {
	return NewManager(Config{BootstrapURL: f.srv.URL + "/bootstrap", TokenURL: f.srv.URL + "/token"}, nil)
}

func TestJoinCookies(t *testing.T) {
	h := http.Header{}
	h.Add("Set-Cookie", "A3=abc123; Path=/")
	h.Add("Set-Cookie", "GUC=xyz; Path=/")
	assert.Equal(t, "A3=abc123; GUC=xyz", JoinCookies(h))
	assert.Equal(t, "", JoinCookies(http.Header{}))
}

func TestValidToken(t *testing.T) {
	cases := map[string]bool{
		"crumb123":                     true,
		"a/b.c":                        true,
		"":                             false,
		"<html>blocked</html>":         false,
		`{"finance":{"error":"nope"}}`: false,
		"Invalid Cookie Error":         false,
	}
	for in, want := range cases {
		assert.Equal(t, want, ValidToken(in), "ValidToken(%q)", in)
	}
}

func TestGet_CachesWithinTTL(t *testing.T) {
	f := newFakeVendor(t)
	m := f.manager()

	first, err := m.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Credentials{Token: "crumb123", Cookie: "A3=abc123; GUC=xyz"}, first)

	second, err := m.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)

	assert.EqualValues(t, 1, f.bootstraps.Load())
	assert.EqualValues(t, 1, f.tokens.Load())
	assert.EqualValues(t, 1, m.Acquisitions())
	assert.True(t, m.IsValid())
}

func TestGet_ConcurrentCallersShareOneAcquisition(t *testing.T) {
	f := newFakeVendor(t)
	f.tokenDelay = 50 * time.Millisecond
	m := f.manager()

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.Get(context.Background())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
	assert.EqualValues(t, 1, f.bootstraps.Load())
	assert.EqualValues(t, 1, f.tokens.Load())
}

func TestGet_RefreshesAfterExpiry(t *testing.T) {
	f := newFakeVendor(t)
	m := f.manager()
	now := time.Unix(1_700_000_000, 0)
	m.now = func() time.Time { return now }

	_, err := m.Get(context.Background())
	require.NoError(t, err)
	firstExpiry := m.ExpiresAt()
	assert.Equal(t, now.Add(DefaultTTL), firstExpiry)

	now = now.Add(DefaultTTL)
	assert.False(t, m.IsValid(), "session must expire exactly at expiresAt")

	_, err = m.Get(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, m.Acquisitions())
	assert.True(t, m.ExpiresAt().After(firstExpiry))
}

func TestInvalidate(t *testing.T) {
	f := newFakeVendor(t)
	m := f.manager()

	creds, err := m.Get(context.Background())
	require.NoError(t, err)

	m.Invalidate("someone-elses-token")
	assert.True(t, m.IsValid(), "stale token must not invalidate the current session")

	m.Invalidate(creds.Token)
	assert.False(t, m.IsValid())

	_, err = m.Get(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, f.bootstraps.Load())
}

func TestGet_Failures(t *testing.T) {
	cases := []struct {
		name     string
		setup    func(f *fakeVendor)
		wantStep string
	}{
		{name: "no cookies", setup: func(f *fakeVendor) { f.noCookies.Store(true) }, wantStep: "cookie"},
		{name: "token error status", setup: func(f *fakeVendor) { f.tokenCode.Store(http.StatusTooManyRequests) }, wantStep: "token"},
		{name: "token empty", setup: func(f *fakeVendor) { f.tokenBody.Store("  ") }, wantStep: "token"},
		{name: "token error marker", setup: func(f *fakeVendor) { f.tokenBody.Store(`{"error":"x"}`) }, wantStep: "token"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFakeVendor(t)
			tc.setup(f)
			m := f.manager()

			_, err := m.Get(context.Background())
			var serr *vendorerr.SessionError
			require.True(t, errors.As(err, &serr), "expected SessionError, got %v", err)
			assert.Equal(t, tc.wantStep, serr.Step)
			assert.False(t, m.IsValid())
		})
	}
}

func TestStore_ExpiryNeverMovesBackwards(t *testing.T) {
	m := NewManager(Config{TTL: time.Minute}, nil)
	now := time.Unix(2_000, 0)
	m.now = func() time.Time { return now }
	m.store(Credentials{Token: "a", Cookie: "c"})
	first := m.ExpiresAt()

	now = now.Add(-time.Hour) // clock stepped back
	m.store(Credentials{Token: "b", Cookie: "c"})
	assert.True(t, m.ExpiresAt().After(first))
}
