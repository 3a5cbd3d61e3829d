package observability

import (
	"context"
	"errors"

	"go-expense-tracker/internal/core/ports"
)

// InstrumentedCache is a decorator to intercept cache calls and record metrics.
type InstrumentedCache struct {
	inner ports.Cache
}

var _ ports.Cache = (*InstrumentedCache)(nil)

// NewInstrumentedCache creates a new instrumented cache wrapper.
func NewInstrumentedCache(inner ports.Cache) *InstrumentedCache {
	return &InstrumentedCache{inner: inner}
}

func (c *InstrumentedCache) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.inner.Get(ctx, key)
	switch {
	case err == nil:
		cacheHits.Inc()
	case errors.Is(err, ports.ErrCacheMiss):
		cacheMisses.Inc()
	}
	return data, err
}

func (c *InstrumentedCache) Set(ctx context.Context, key string, data []byte) error {
	return c.inner.Set(ctx, key, data)
}

func (c *InstrumentedCache) Generation(ctx context.Context, key string) (int64, error) {
	return c.inner.Generation(ctx, key)
}

func (c *InstrumentedCache) Incr(ctx context.Context, key string) (int64, error) {
	return c.inner.Incr(ctx, key)
}
