package repository

import (
	"context"

	"github.com/go-faster/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Shahriar-Fardows/snowfye-server/internal/domain"
)

type mongoCatalogRepository struct {
	products     *mongo.Collection
	slider       *mongo.Collection
	adBanners    *mongo.Collection
	testimonials *mongo.Collection
}

func NewMongoCatalogRepository(db *mongo.Database) CatalogRepository {
	return &mongoCatalogRepository{
		products:     db.Collection(ProductsCollection),
		slider:       db.Collection(SliderCollection),
		adBanners:    db.Collection(AdBannersCollection),
		testimonials: db.Collection(TestimonialsCollection),
	}
}

func (m *mongoCatalogRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return findAll[domain.Product](ctx, m.products)
}

func (m *mongoCatalogRepository) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var product domain.Product
	err = m.products.FindOne(ctx, bson.M{"_id": oid}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "get product")
	}
	return &product, nil
}

func (m *mongoCatalogRepository) ListSlider(ctx context.Context) ([]domain.SliderItem, error) {
	return findAll[domain.SliderItem](ctx, m.slider)
}

func (m *mongoCatalogRepository) ListAdBanners(ctx context.Context) ([]domain.AdBanner, error) {
	return findAll[domain.AdBanner](ctx, m.adBanners)
}

func (m *mongoCatalogRepository) ListTestimonials(ctx context.Context) ([]domain.Testimonial, error) {
	return findAll[domain.Testimonial](ctx, m.testimonials)
}

// findAll returns every document of the collection in store order. The result
// is never nil so that an empty collection encodes as [].
func findAll[T any](ctx context.Context, coll *mongo.Collection) ([]T, error) {
	cursor, err := coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrapf(err, "find %s", coll.Name())
	}

	docs := []T{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Wrapf(err, "decode %s", coll.Name())
	}
	return docs, nil
}
