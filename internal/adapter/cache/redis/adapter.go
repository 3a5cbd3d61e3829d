package redis

import (
	"context"
	"errors"
	"time"

	"go-expense-tracker/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

type Adapter struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAdapter returns a cache whose entries expire after ttl.
func NewAdapter(addr string, ttl time.Duration) *Adapter {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &Adapter{client: rdb, ttl: ttl}
}

// Ensure Adapter implements ports.Cache
var _ ports.Cache = (*Adapter)(nil)

func (a *Adapter) Ping(ctx context.Context) error {
	return a.client.Ping(ctx).Err()
}

func (a *Adapter) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := a.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ports.ErrCacheMiss
	}
	return data, err
}

func (a *Adapter) Set(ctx context.Context, key string, data []byte) error {
	return a.client.Set(ctx, key, data, a.ttl).Err()
}

// Generation reads a counter written by Incr. Counters carry no expiry.
func (a *Adapter) Generation(ctx context.Context, key string) (int64, error) {
	n, err := a.client.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}

func (a *Adapter) Incr(ctx context.Context, key string) (int64, error) {
	return a.client.Incr(ctx, key).Result()
}

func (a *Adapter) Close() error {
	return a.client.Close()
}
