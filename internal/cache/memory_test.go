package cache

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestMemory_GetSetExpiry(t *testing.T) {
	m := NewMemory(0)
	now := time.Unix(1_000, 0)
	m.now = func() time.Time { return now }
	ctx := context.Background()

	if _, ok, err := m.Get(ctx, "k"); ok || err != nil {
		t.Fatalf("empty store should miss, got ok=%v err=%v", ok, err)
	}

	src := []byte("payload")
	if err := m.Set(ctx, "k", src, time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	src[0] = 'X'

	got, ok, err := m.Get(ctx, "k")
	if err != nil || !ok || string(got) != "payload" {
		t.Fatalf("Get=%q ok=%v err=%v", got, ok, err)
	}

	now = now.Add(time.Minute)
	if _, ok, _ := m.Get(ctx, "k"); ok {
		t.Fatalf("entry must expire at its TTL")
	}
	if m.Len() != 0 {
		t.Fatalf("expired entry should be dropped on read")
	}
}

func TestMemory_NonPositiveTTLIsNotStored(t *testing.T) {
	m := NewMemory(0)
	_ = m.Set(context.Background(), "k", []byte("v"), 0)
	if m.Len() != 0 {
		t.Fatalf("zero TTL must not store")
	}
}

func TestMemory_CapEvicts(t *testing.T) {
	m := NewMemory(3)
	now := time.Unix(1_000, 0)
	m.now = func() time.Time { return now }
	ctx := context.Background()

	_ = m.Set(ctx, "old", []byte("v"), time.Second)
	now = now.Add(2 * time.Second)
	for i := 0; i < 5; i++ {
		_ = m.Set(ctx, fmt.Sprintf("k%d", i), []byte("v"), time.Minute)
	}
	if m.Len() > 3 {
		t.Fatalf("store grew past cap: %d", m.Len())
	}
	if _, ok, _ := m.Get(ctx, "k4"); !ok {
		t.Fatalf("newest key must survive eviction")
	}
}

func TestNew_Backends(t *testing.T) {
	if s, err := New(Options{}); err != nil || s == nil {
		t.Fatalf("default backend should be memory, got %v %v", s, err)
	}
	if s, err := New(Options{Backend: "none"}); err != nil || s != nil {
		t.Fatalf("none backend should disable caching, got %v %v", s, err)
	}
	if _, err := New(Options{Backend: "redis"}); err == nil {
		t.Fatalf("redis without address should fail")
	}
	if s, err := New(Options{Backend: "redis", RedisAddr: "127.0.0.1:6379"}); err != nil {
		t.Fatalf("redis backend: %v", err)
	} else {
		_ = s.Close()
	}
	if _, err := New(Options{Backend: "memcached"}); err == nil {
		t.Fatalf("unknown backend should fail")
	}
}
