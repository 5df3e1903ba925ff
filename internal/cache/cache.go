package cache

import (
	"context"

	"github.com/go-faster/errors"
)

// CatalogCache stores JSON encoded catalog reads under a key.
type CatalogCache interface {
	Get(ctx context.Context, key string, dst interface{}) error
	Set(ctx context.Context, key string, v interface{}) error
	Delete(ctx context.Context, keys ...string) error
}

var ErrCacheMiss = errors.New("cache miss")

// Nop is used when no Redis address is configured. Every Get misses.
type Nop struct{}

func (Nop) Get(context.Context, string, interface{}) error { return ErrCacheMiss }
func (Nop) Set(context.Context, string, interface{}) error { return nil }
func (Nop) Delete(context.Context, ...string) error        { return nil }

func ListKey(collection string) string {
	return "catalog:" + collection
}

func ProductKey(id string) string {
	return "catalog:product:" + id
}
