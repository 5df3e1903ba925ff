package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Shahriar-Fardows/snowfye-server/internal/cache"
	"github.com/Shahriar-Fardows/snowfye-server/internal/domain"
	"github.com/Shahriar-Fardows/snowfye-server/internal/repository"
)

type mockCatalogRepository struct {
	products     []domain.Product
	slider       []domain.SliderItem
	banners      []domain.AdBanner
	testimonials []domain.Testimonial
	err          error
	calls        atomic.Int32
}

func (m *mockCatalogRepository) ListProducts(context.Context) ([]domain.Product, error) {
	m.calls.Add(1)
	if m.err != nil {
		return nil, m.err
	}
	return m.products, nil
}

func (m *mockCatalogRepository) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	m.calls.Add(1)
	if m.err != nil {
		return nil, m.err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	for _, p := range m.products {
		if p.ID == oid {
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockCatalogRepository) ListSlider(context.Context) ([]domain.SliderItem, error) {
	m.calls.Add(1)
	return m.slider, m.err
}

func (m *mockCatalogRepository) ListAdBanners(context.Context) ([]domain.AdBanner, error) {
	m.calls.Add(1)
	return m.banners, m.err
}

func (m *mockCatalogRepository) ListTestimonials(context.Context) ([]domain.Testimonial, error) {
	m.calls.Add(1)
	return m.testimonials, m.err
}

// mockCache keeps JSON blobs like the Redis implementation does.
type mockCache struct {
	m      sync.RWMutex
	data   map[string][]byte
	getErr error
}

func newMockCache() *mockCache {
	return &mockCache{data: map[string][]byte{}}
}

func (c *mockCache) Get(_ context.Context, key string, dst interface{}) error {
	c.m.RLock()
	defer c.m.RUnlock()
	if c.getErr != nil {
		return c.getErr
	}
	data, ok := c.data[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(data, dst)
}

func (c *mockCache) Set(_ context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.m.Lock()
	defer c.m.Unlock()
	c.data[key] = data
	return nil
}

func (c *mockCache) Delete(_ context.Context, keys ...string) error {
	c.m.Lock()
	defer c.m.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *mockCache) has(key string) bool {
	c.m.RLock()
	defer c.m.RUnlock()
	_, ok := c.data[key]
	return ok
}

func TestListProducts_MissThenHit(t *testing.T) {
	id := primitive.NewObjectID()
	repo := &mockCatalogRepository{
		products: []domain.Product{{ID: id, Extra: bson.M{"name": "Lamp"}}},
	}
	c := newMockCache()
	sut := NewCatalogService(repo, c, zap.NewNop())

	got, err := sut.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, id, got[0].ID)

	key := cache.ListKey(repository.ProductsCollection)
	require.Eventually(t, func() bool {
		return c.has(key)
	}, 100*time.Millisecond, 10*time.Millisecond, "products were not cached")

	got, err = sut.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Lamp", got[0].Extra["name"])
	assert.Equal(t, int32(1), repo.calls.Load(), "second read should come from cache")
}

func TestListProducts_CacheErrorFallsThrough(t *testing.T) {
	repo := &mockCatalogRepository{products: []domain.Product{{ID: primitive.NewObjectID()}}}
	c := newMockCache()
	c.getErr = fmt.Errorf("redis down")
	sut := NewCatalogService(repo, c, zap.NewNop())

	got, err := sut.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestListProducts_RepoError(t *testing.T) {
	repo := &mockCatalogRepository{err: fmt.Errorf("database error")}
	sut := NewCatalogService(repo, cache.Nop{}, zap.NewNop())

	got, err := sut.ListProducts(context.Background())
	require.ErrorContains(t, err, "database error")
	assert.Nil(t, got)
}

func TestGetProduct(t *testing.T) {
	id := primitive.NewObjectID()
	repo := &mockCatalogRepository{products: []domain.Product{{ID: id, Extra: bson.M{"name": "Lamp"}}}}
	sut := NewCatalogService(repo, newMockCache(), zap.NewNop())

	got, err := sut.GetProduct(context.Background(), id.Hex())
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
}

func TestGetProduct_NotFound(t *testing.T) {
	repo := &mockCatalogRepository{}
	c := newMockCache()
	sut := NewCatalogService(repo, c, zap.NewNop())

	missing := primitive.NewObjectID().Hex()
	got, err := sut.GetProduct(context.Background(), missing)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, got)
	assert.False(t, c.has(cache.ProductKey(missing)))
}

func TestGetProduct_InvalidID(t *testing.T) {
	sut := NewCatalogService(&mockCatalogRepository{}, cache.Nop{}, zap.NewNop())

	_, err := sut.GetProduct(context.Background(), "bad")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestOtherCollections(t *testing.T) {
	repo := &mockCatalogRepository{
		slider:       []domain.SliderItem{{Extra: bson.M{"title": "Sale"}}},
		banners:      []domain.AdBanner{{}, {}},
		testimonials: []domain.Testimonial{{Extra: bson.M{"author": "Ana"}}},
	}
	sut := NewCatalogService(repo, cache.Nop{}, zap.NewNop())
	ctx := context.Background()

	slider, err := sut.ListSlider(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Sale", slider[0].Extra["title"])

	banners, err := sut.ListAdBanners(ctx)
	require.NoError(t, err)
	assert.Len(t, banners, 2)

	testimonials, err := sut.ListTestimonials(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ana", testimonials[0].Extra["author"])
}
