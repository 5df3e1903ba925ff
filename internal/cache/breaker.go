package cache

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

const (
	breakerFailures = 5
	breakerCooldown = 30 * time.Second
)

// Breaker wraps a CatalogCache and stops calling it after repeated
// failures. While open, Get misses and Set is skipped. Delete still reports
// the open state so invalidations are not silently lost.
type Breaker struct {
	inner CatalogCache
	cb    *gobreaker.CircuitBreaker[struct{}]
}

func NewBreaker(inner CatalogCache, lg *zap.Logger) *Breaker {
	return &Breaker{
		inner: inner,
		cb: gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
			Name:        "catalog-cache",
			MaxRequests: 1,
			Timeout:     breakerCooldown,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= breakerFailures
			},
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, ErrCacheMiss)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				lg.Warn("Cache breaker state changed",
					zap.String("breaker", name),
					zap.Stringer("from", from),
					zap.Stringer("to", to),
				)
			},
		}),
	}
}

func (b *Breaker) Get(ctx context.Context, key string, dst interface{}) error {
	_, err := b.cb.Execute(func() (struct{}, error) {
		return struct{}{}, b.inner.Get(ctx, key, dst)
	})
	if isOpen(err) {
		return ErrCacheMiss
	}
	return err
}

func (b *Breaker) Set(ctx context.Context, key string, v interface{}) error {
	_, err := b.cb.Execute(func() (struct{}, error) {
		return struct{}{}, b.inner.Set(ctx, key, v)
	})
	if isOpen(err) {
		return nil
	}
	return err
}

func (b *Breaker) Delete(ctx context.Context, keys ...string) error {
	_, err := b.cb.Execute(func() (struct{}, error) {
		return struct{}{}, b.inner.Delete(ctx, keys...)
	})
	return err
}

func isOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
