package service

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/Shahriar-Fardows/snowfye-server/internal/cache"
	"github.com/Shahriar-Fardows/snowfye-server/internal/domain"
	"github.com/Shahriar-Fardows/snowfye-server/internal/repository"
)

// CatalogService serves the read-only content collections, read-through
// cached.
type CatalogService struct {
	repo  repository.CatalogRepository
	cache cache.CatalogCache
	sfg   singleflight.Group // Prevents cache stampede
	lg    *zap.Logger
}

func NewCatalogService(repo repository.CatalogRepository, c cache.CatalogCache, lg *zap.Logger) *CatalogService {
	return &CatalogService{
		repo:  repo,
		cache: c,
		lg:    lg,
	}
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return cached(ctx, s, cache.ListKey(repository.ProductsCollection), s.repo.ListProducts)
}

// GetProduct returns ErrNotFound for an unknown id and ErrInvalidArgument for
// one that is not a valid identifier.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return cached(ctx, s, cache.ProductKey(id), func(ctx context.Context) (*domain.Product, error) {
		return s.repo.GetProduct(ctx, id)
	})
}

func (s *CatalogService) ListSlider(ctx context.Context) ([]domain.SliderItem, error) {
	return cached(ctx, s, cache.ListKey(repository.SliderCollection), s.repo.ListSlider)
}

func (s *CatalogService) ListAdBanners(ctx context.Context) ([]domain.AdBanner, error) {
	return cached(ctx, s, cache.ListKey(repository.AdBannersCollection), s.repo.ListAdBanners)
}

func (s *CatalogService) ListTestimonials(ctx context.Context) ([]domain.Testimonial, error) {
	return cached(ctx, s, cache.ListKey(repository.TestimonialsCollection), s.repo.ListTestimonials)
}

func cached[T any](ctx context.Context, s *CatalogService, key string, load func(context.Context) (T, error)) (T, error) {
	// Use singleflight to prevent multiple concurrent cache misses for same key
	v, err, _ := s.sfg.Do(key, func() (interface{}, error) {
		var out T
		err := s.cache.Get(ctx, key, &out)
		if err == nil {
			return out, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.lg.Warn("Cache get failed", zap.String("key", key), zap.Error(err))
		}

		out, err = load(ctx)
		if err != nil {
			return nil, errors.Wrapf(translate(err), "load %s", key)
		}

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if err := s.cache.Set(ctx, key, out); err != nil {
				s.lg.Warn("Cache set failed", zap.String("key", key), zap.Error(err))
			}
		}()

		return out, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
