// Package cache stores JSON-encodable values under string keys with a TTL.
package cache

import (
	"context"
	"fmt"
	"time"
)

// DashboardKey holds the cached dashboard summary.
const DashboardKey = "reports:dashboard"

type Cache interface {
	// Get decodes the value stored under key into dst and reports whether
	// it was found.
	Get(ctx context.Context, key string, dst interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type Options struct {
	// Driver is "memory" or "redis".
	Driver     string
	DefaultTTL time.Duration
	Redis      RedisConfig
}

// New opens the configured backend. The returned close func releases it.
func New(ctx context.Context, opts Options) (Cache, func() error, error) {
	switch opts.Driver {
	case "", "memory":
		return NewMemory(opts.DefaultTTL, 2*opts.DefaultTTL), func() error { return nil }, nil
	case "redis":
		client := NewRedisClient(opts.Redis)
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to reach redis at %s: %w", opts.Redis.Addr, err)
		}
		return NewRedis(client), client.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown cache driver %q", opts.Driver)
}
