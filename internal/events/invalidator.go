package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-faster/errors"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Shahriar-Fardows/snowfye-server/internal/cache"
)

// CatalogChange is published by whatever edits the catalog collections. ID
// names a single product when Collection is the product collection.
type CatalogChange struct {
	Collection string `json:"collection"`
	ID         string `json:"id,omitempty"`
}

type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// Invalidator drops cached catalog reads when a CatalogChange arrives.
type Invalidator struct {
	reader            messageReader
	cache             cache.CatalogCache
	productCollection string
	lg                *zap.Logger
	retryDelay        time.Duration
}

func NewInvalidator(c cache.CatalogCache, lg *zap.Logger, productCollection, topic, groupID string, brokers ...string) *Invalidator {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MaxBytes: 10e6, // 10MB
	})
	return &Invalidator{
		reader:            reader,
		cache:             c,
		productCollection: productCollection,
		lg:                lg,
		retryDelay:        time.Second,
	}
}

// Run consumes until ctx is done.
func (i *Invalidator) Run(ctx context.Context) {
	for ctx.Err() == nil {
		if err := i.handleNext(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			i.lg.Warn("Catalog invalidation failed", zap.Error(err))
		}
	}
}

func (i *Invalidator) Close() error {
	return i.reader.Close()
}

func (i *Invalidator) handleNext(ctx context.Context) error {
	m, err := i.reader.ReadMessage(ctx)
	if err != nil {
		// broker trouble, back off before reading again
		select {
		case <-ctx.Done():
		case <-time.After(i.retryDelay):
		}
		return errors.Wrap(err, "read message")
	}

	var change CatalogChange
	if err := json.Unmarshal(m.Value, &change); err != nil {
		return errors.Wrapf(err, "parse message at offset %d", m.Offset)
	}
	keys := i.keysFor(change)
	if len(keys) == 0 {
		return errors.Errorf("message at offset %d names no collection", m.Offset)
	}

	if err := i.cache.Delete(ctx, keys...); err != nil {
		return errors.Wrap(err, "delete cached reads")
	}
	i.lg.Debug("Catalog cache invalidated", zap.Strings("keys", keys))
	return nil
}

// keysFor lists the cache entries a change makes stale. A product change
// without an id only drops the list; single product entries then age out.
func (i *Invalidator) keysFor(change CatalogChange) []string {
	if change.Collection == "" {
		return nil
	}
	keys := []string{cache.ListKey(change.Collection)}
	if change.Collection == i.productCollection && change.ID != "" {
		keys = append(keys, cache.ProductKey(change.ID))
	}
	return keys
}
