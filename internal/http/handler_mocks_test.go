package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Shahriar-Fardows/snowfye-server/internal/domain"
)

type CartMock struct {
	items     []domain.CartItem
	adjust    domain.AdjustResult
	deleted   int64
	err       error
	lastID    string
	lastDelta int64
	added     *domain.CartItem
}

func (c *CartMock) List(context.Context) ([]domain.CartItem, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.items, nil
}

func (c *CartMock) Add(_ context.Context, item domain.CartItem) (domain.InsertResult, error) {
	if c.err != nil {
		return domain.InsertResult{}, c.err
	}
	c.added = &item
	return domain.InsertResult{Acknowledged: true, InsertedID: primitive.NewObjectID()}, nil
}

func (c *CartMock) AdjustQuantity(_ context.Context, id string, delta int64) (domain.AdjustResult, error) {
	c.lastID = id
	c.lastDelta = delta
	if c.err != nil {
		return domain.AdjustResult{}, c.err
	}
	return c.adjust, nil
}

func (c *CartMock) Delete(_ context.Context, id string) (domain.DeleteResult, error) {
	c.lastID = id
	if c.err != nil {
		return domain.DeleteResult{}, c.err
	}
	return domain.DeleteResult{Acknowledged: true, DeletedCount: c.deleted}, nil
}

type CatalogMock struct {
	products []domain.Product
	product  *domain.Product
	err      error
}

func (c *CatalogMock) ListProducts(context.Context) ([]domain.Product, error) {
	return c.products, c.err
}

func (c *CatalogMock) GetProduct(context.Context, string) (*domain.Product, error) {
	return c.product, c.err
}

func (c *CatalogMock) ListSlider(context.Context) ([]domain.SliderItem, error) {
	if c.err != nil {
		return nil, c.err
	}
	return []domain.SliderItem{}, nil
}

func (c *CatalogMock) ListAdBanners(context.Context) ([]domain.AdBanner, error) {
	if c.err != nil {
		return nil, c.err
	}
	return []domain.AdBanner{}, nil
}

func (c *CatalogMock) ListTestimonials(context.Context) ([]domain.Testimonial, error) {
	if c.err != nil {
		return nil, c.err
	}
	return []domain.Testimonial{}, nil
}

type PromoMock struct {
	codes []domain.PromoCode
	err   error
}

func (p *PromoMock) List(context.Context) ([]domain.PromoCode, error) {
	return p.codes, p.err
}

func (p *PromoMock) Add(_ context.Context, code domain.PromoCode) (domain.InsertResult, error) {
	if p.err != nil {
		return domain.InsertResult{}, p.err
	}
	p.codes = append(p.codes, code)
	return domain.InsertResult{Acknowledged: true, InsertedID: primitive.NewObjectID()}, nil
}

type IssuerMock struct {
	claims map[string]interface{}
	err    error
}

func (i *IssuerMock) Issue(claims map[string]interface{}) (string, error) {
	i.claims = claims
	if i.err != nil {
		return "", i.err
	}
	return "signed.token.value", nil
}

// kindErr builds an error that matches one of the service error kinds.
func kindErr(kind error, msg string) error {
	return errors.Join(kind, errors.New(msg))
}

var errStore = errors.New("server selection error: context deadline exceeded")

const defaultTestTimeout = 5 * time.Second

var testLogger = zap.NewNop()

type testDeps struct {
	cart    *CartMock
	catalog *CatalogMock
	promo   *PromoMock
	issuer  *IssuerMock
	ping    error
}

func newTestRouter(d *testDeps) http.Handler {
	if d.cart == nil {
		d.cart = &CartMock{}
	}
	if d.catalog == nil {
		d.catalog = &CatalogMock{}
	}
	if d.promo == nil {
		d.promo = &PromoMock{}
	}
	if d.issuer == nil {
		d.issuer = &IssuerMock{}
	}
	lg := testLogger
	timeout := defaultTestTimeout
	return NewRouter(RouterConfig{
		RequestTimeout:     timeout,
		MaxRequestBodySize: 1 << 20,
		CORSOrigins:        []string{"*"},
	}, lg, Handlers{
		Cart:    NewCartHandler(d.cart, timeout, lg),
		Catalog: NewCatalogHandler(d.catalog, timeout, lg),
		Promo:   NewPromoHandler(d.promo, timeout, lg),
		Auth:    NewAuthHandler(d.issuer, lg),
		Ping: func(context.Context) error {
			return d.ping
		},
	})
}
