package repository

import (
	"context"

	"github.com/go-faster/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Shahriar-Fardows/snowfye-server/internal/domain"
)

// Collection names as they exist in the Content database.
const (
	ProductsCollection     = "all-products"
	SliderCollection       = "slider-data"
	AdBannersCollection    = "ad-bennar"
	TestimonialsCollection = "testimonials"
	CartCollection         = "cart"
	PromoCodesCollection   = "promo-codes"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrInvalidID = errors.New("invalid document id")
)

// CartRepository defines the interface for cart data operations.
// Quantity changes are compare-and-set on the quantity the caller last read.
type CartRepository interface {
	List(ctx context.Context) ([]domain.CartItem, error)
	Get(ctx context.Context, id string) (*domain.CartItem, error)
	Insert(ctx context.Context, item domain.CartItem) (primitive.ObjectID, error)
	SetQuantity(ctx context.Context, id string, expected, quantity int64, totalPrice float64) (bool, error)
	DeleteIfQuantity(ctx context.Context, id string, expected int64) (bool, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type CatalogRepository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	ListSlider(ctx context.Context) ([]domain.SliderItem, error)
	ListAdBanners(ctx context.Context) ([]domain.AdBanner, error)
	ListTestimonials(ctx context.Context) ([]domain.Testimonial, error)
}

type PromoRepository interface {
	List(ctx context.Context) ([]domain.PromoCode, error)
	Insert(ctx context.Context, code domain.PromoCode) (primitive.ObjectID, error)
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, errors.Wrapf(ErrInvalidID, "%q", id)
	}
	return oid, nil
}
