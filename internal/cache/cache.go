// Package cache stores serialized API responses for a short TTL. The memory
// store serves single-instance deployments; the Redis store is shared across
// replicas.
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Store is a byte-oriented TTL cache. A miss is (nil, false, nil).
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Ping(ctx context.Context) error
	Close() error
}

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendNone   = "none"
)

// Options selects and configures a backend.
type Options struct {
	Backend       string
	MaxItems      int
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Prefix        string
}

// New builds the configured Store. BackendNone returns (nil, nil).
func New(opts Options) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case "", BackendMemory:
		return NewMemory(opts.MaxItems), nil
	case BackendRedis:
		if opts.RedisAddr == "" {
			return nil, fmt.Errorf("cache: redis backend needs an address")
		}
		return NewRedis(opts.RedisAddr, opts.RedisPassword, opts.RedisDB, opts.Prefix), nil
	case BackendNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("cache: unknown backend %q", opts.Backend)
	}
}
