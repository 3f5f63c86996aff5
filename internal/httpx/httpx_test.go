package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/guttosm/marketpulse/internal/vendorerr"
)

func TestGet_AppliesDefaultHeadersAndReadsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "ua-test" {
			t.Errorf("user agent=%q", r.Header.Get("User-Agent"))
		}
		if r.Header.Get("X-Extra") != "1" {
			t.Errorf("missing per-call header")
		}
		_, _ = w.Write([]byte("hello world"))
	}))
	defer srv.Close()

	c := New("ua-test")
	h := http.Header{}
	h.Set("X-Extra", "1")
	resp, err := c.Get(context.Background(), "test", srv.URL, time.Second, h, 5)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(resp.Body) != "hello" {
		t.Fatalf("limit not applied, body=%q", resp.Body)
	}
	if !resp.OK() || resp.Err(srv.URL) != nil {
		t.Fatalf("expected OK response")
	}
}

func TestGet_TimeoutBecomesTimeoutError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	_, err := New("").Get(context.Background(), "slow", srv.URL, 20*time.Millisecond, nil, 0)
	var terr *vendorerr.TimeoutError
	if !errors.As(err, &terr) {
		t.Fatalf("expected TimeoutError, got %v", err)
	}
}

func TestResponseErr_TruncatesBody(t *testing.T) {
	r := &Response{Status: http.StatusBadGateway, Body: []byte(strings.Repeat("x", 1000))}
	err := r.Err("http://u")
	var herr *vendorerr.HTTPError
	if !errors.As(err, &herr) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if herr.Status != http.StatusBadGateway || len(herr.Body) != 256 {
		t.Fatalf("unexpected error %+v", herr)
	}
}
