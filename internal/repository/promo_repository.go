package repository

import (
	"context"

	"github.com/go-faster/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Shahriar-Fardows/snowfye-server/internal/domain"
)

type mongoPromoRepository struct {
	collection *mongo.Collection
}

func NewMongoPromoRepository(db *mongo.Database) PromoRepository {
	return &mongoPromoRepository{
		collection: db.Collection(PromoCodesCollection),
	}
}

func (m *mongoPromoRepository) List(ctx context.Context) ([]domain.PromoCode, error) {
	return findAll[domain.PromoCode](ctx, m.collection)
}

func (m *mongoPromoRepository) Insert(ctx context.Context, code domain.PromoCode) (primitive.ObjectID, error) {
	code.ID = primitive.NewObjectID()
	if _, err := m.collection.InsertOne(ctx, code); err != nil {
		return primitive.NilObjectID, errors.Wrap(err, "insert promo code")
	}
	return code.ID, nil
}
