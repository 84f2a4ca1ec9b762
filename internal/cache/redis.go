package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jwalitptl/vetclinic-api/pkg/circuitbreaker"
)

// Redis shares cached values between API replicas. Calls are guarded by a
// circuit breaker so an unreachable server costs one fast failure per call.
type Redis struct {
	client redis.UniversalClient
	cb     *circuitbreaker.CircuitBreaker
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func NewRedisClient(cfg RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func NewRedis(client redis.UniversalClient) *Redis {
	return &Redis{
		client: client,
		cb: circuitbreaker.NewCircuitBreaker(circuitbreaker.Settings{
			Name:        "redis-cache",
			MaxFailures: 5,
			Timeout:     30 * time.Second,
		}),
	}
}

func (r *Redis) Get(ctx context.Context, key string, dst interface{}) (bool, error) {
	var data []byte
	err := r.cb.Execute(func() error {
		var err error
		data, err = r.client.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return err
	})
	if err != nil {
		return false, fmt.Errorf("failed to read cache entry %s: %w", key, err)
	}
	if data == nil {
		return false, nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("failed to decode cache entry %s: %w", key, err)
	}
	return true, nil
}

func (r *Redis) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry %s: %w", key, err)
	}
	return r.cb.Execute(func() error {
		return r.client.Set(ctx, key, data, ttl).Err()
	})
}

func (r *Redis) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.cb.Execute(func() error {
		return r.client.Del(ctx, keys...).Err()
	})
}
