package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/Shahriar-Fardows/snowfye-server/internal/domain"
	"github.com/Shahriar-Fardows/snowfye-server/internal/service"
)

type CatalogService interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	ListSlider(ctx context.Context) ([]domain.SliderItem, error)
	ListAdBanners(ctx context.Context) ([]domain.AdBanner, error)
	ListTestimonials(ctx context.Context) ([]domain.Testimonial, error)
}

type CatalogHandler struct {
	catalog CatalogService
	timeout time.Duration
	lg      *zap.Logger
}

func NewCatalogHandler(catalog CatalogService, timeout time.Duration, lg *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		timeout: timeout,
		lg:      lg,
	}
}

func (h *CatalogHandler) Products(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.catalog.ListProducts(ctx)
	if err != nil {
		handleServiceError(w, r, h.lg, err, "failed to fetch products")
		return
	}
	respondJSON(w, http.StatusOK, products)
}

// Product writes null for an id that matches nothing.
func (h *CatalogHandler) Product(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	product, err := h.catalog.GetProduct(ctx, chi.URLParam(r, "id"))
	if errors.Is(err, service.ErrNotFound) {
		respondJSON(w, http.StatusOK, nil)
		return
	}
	if err != nil {
		handleServiceError(w, r, h.lg, err, "failed to fetch product")
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *CatalogHandler) Slider(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	slider, err := h.catalog.ListSlider(ctx)
	if err != nil {
		handleServiceError(w, r, h.lg, err, "failed to fetch slider")
		return
	}
	respondJSON(w, http.StatusOK, slider)
}

func (h *CatalogHandler) AdBanners(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	banners, err := h.catalog.ListAdBanners(ctx)
	if err != nil {
		handleServiceError(w, r, h.lg, err, "failed to fetch ad banners")
		return
	}
	respondJSON(w, http.StatusOK, banners)
}

func (h *CatalogHandler) Testimonials(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	testimonials, err := h.catalog.ListTestimonials(ctx)
	if err != nil {
		handleServiceError(w, r, h.lg, err, "failed to fetch testimonials")
		return
	}
	respondJSON(w, http.StatusOK, testimonials)
}

var _ CatalogService = (*service.CatalogService)(nil)
