package cache

import (
	"context"
	"sync"
	"time"
)

// DefaultMaxItems bounds the memory store when no cap is configured.
const DefaultMaxItems = 10_000

type entry struct {
	expiresAt time.Time
	value     []byte
}

// Memory is an in-process Store. Expired entries are dropped lazily and when
// the store grows past its cap.
type Memory struct {
	maxItems int
	now      func() time.Time

	mu    sync.RWMutex
	items map[string]entry
}

// NewMemory creates an empty store holding at most maxItems entries
// (DefaultMaxItems when maxItems <= 0).
func NewMemory(maxItems int) *Memory {
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}
	return &Memory{maxItems: maxItems, now: time.Now, items: make(map[string]entry)}
}

// Get returns the value for key unless it is missing or expired.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	e, ok := m.items[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !m.now().Before(e.expiresAt) {
		m.mu.Lock()
		if cur, still := m.items[key]; still && !m.now().Before(cur.expiresAt) {
			delete(m.items, key)
		}
		m.mu.Unlock()
		return nil, false, nil
	}
	return e.value, true, nil
}

// Set stores value under key for ttl, evicting entries when the store is full.
func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items[key] = entry{expiresAt: now.Add(ttl), value: append([]byte(nil), value...)}
	if len(m.items) <= m.maxItems {
		return nil
	}
	// expired first, then arbitrary keys
	for k, e := range m.items {
		if !now.Before(e.expiresAt) {
			delete(m.items, k)
		}
	}
	for k := range m.items {
		if len(m.items) <= m.maxItems {
			break
		}
		if k != key {
			delete(m.items, k)
		}
	}
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// Ping always succeeds.
func (m *Memory) Ping(context.Context) error { return nil }

// Close is a no-op.
func (m *Memory) Close() error { return nil }
