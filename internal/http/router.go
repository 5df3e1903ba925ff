package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

type RouterConfig struct {
	RequestTimeout     time.Duration
	MaxRequestBodySize int64
	CORSOrigins        []string
}

type Handlers struct {
	Cart    *CartHandler
	Catalog *CatalogHandler
	Promo   *PromoHandler
	Auth    *AuthHandler
	// Ping reports whether the document store is reachable.
	Ping func(ctx context.Context) error
}

func NewRouter(cfg RouterConfig, lg *zap.Logger, hs Handlers) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RealIP)
	r.Use(RequestIDMiddleware)
	r.Use(LoggerMiddleware(lg))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))
	r.Use(MaxBodySize(cfg.MaxRequestBodySize))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("Hello World!"))
	})

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if hs.Ping != nil {
			if err := hs.Ping(ctx); err != nil {
				lg.Warn("Health check failed", zap.Error(err))
				respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/login", hs.Auth.Login)

	r.Get("/slider", hs.Catalog.Slider)
	r.Get("/products", hs.Catalog.Products)
	r.Get("/products/{id}", hs.Catalog.Product)
	r.Get("/ad-banner", hs.Catalog.AdBanners)
	r.Get("/testimonials", hs.Catalog.Testimonials)

	r.Get("/cart", hs.Cart.List)
	r.Post("/cart", hs.Cart.Add)
	r.Patch("/cart/{id}", hs.Cart.UpdateQuantity)
	r.Delete("/cart/{id}", hs.Cart.Remove)

	r.Get("/promo-codes", hs.Promo.List)
	r.Post("/promo-codes", hs.Promo.Add)

	return otelhttp.NewHandler(r, "snowfye-server")
}
